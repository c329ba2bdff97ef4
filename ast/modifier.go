// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"fmt"
	"slices"
)

// Modifier is a declaration modifier keyword.
type Modifier int8

const (
	Public Modifier = iota + 1
	Private
	Protected
	Internal
	File
	Static
	Abstract
	Sealed
	Virtual
	Override
	Readonly
	Volatile
	Const
	Unsafe
	Extern
	New
	Partial
	Async
	Required
	Ref
	Out
	In
	Params
	Fixed
	Scoped
)

var modifiers = [...]struct {
	keyword string
	rank    int
}{
	Public:    {"public", 1},
	Private:   {"private", 1},
	Protected: {"protected", 1},
	Internal:  {"internal", 1},
	File:      {"file", 1},
	Static:    {"static", 2},
	Abstract:  {"abstract", 3},
	Sealed:    {"sealed", 3},
	Virtual:   {"virtual", 3},
	Override:  {"override", 3},
	Readonly:  {"readonly", 4},
	Volatile:  {"volatile", 4},
	Const:     {"const", 4},
	Unsafe:    {"unsafe", 5},
	Extern:    {"extern", 5},
	New:       {"new", 5},
	Partial:   {"partial", 5},
	Async:     {"async", 5},
	Required:  {"required", 5},
	Ref:       {"ref", 6},
	Out:       {"out", 6},
	In:        {"in", 6},
	Params:    {"params", 6},
	Scoped:    {"scoped", 6},
	Fixed:     {"fixed", 7},
}

// Modifiers returns every modifier, in declaration order.
func Modifiers() []Modifier {
	out := make([]Modifier, 0, len(modifiers)-1)
	for m := Public; int(m) < len(modifiers); m++ {
		out = append(out, m)
	}
	return out
}

// LookupModifier returns the modifier spelled kw.
func LookupModifier(kw string) (Modifier, bool) {
	for i, m := range modifiers {
		if i > 0 && m.keyword == kw {
			return Modifier(i), true
		}
	}
	return 0, false
}

// String implements [fmt.Stringer]. It returns the keyword.
func (m Modifier) String() string {
	if int(m) <= 0 || int(m) >= len(modifiers) {
		return fmt.Sprintf("Modifier(%d)", int(m))
	}
	return modifiers[m].keyword
}

// Rank is the position of m in the conventional modifier order: access,
// then static, then inheritance, then storage, then the rest.
func (m Modifier) Rank() int {
	if int(m) <= 0 || int(m) >= len(modifiers) {
		return 0
	}
	return modifiers[m].rank
}

// IncompatibleWith returns whether m and other cannot appear on the same
// declaration.
//
// protected internal, private protected, static readonly and sealed
// override are valid combinations.
func (m Modifier) IncompatibleWith(other Modifier) bool {
	a, b := min(m, other), max(m, other)
	switch [2]Modifier{a, b} {
	case [2]Modifier{Public, Private},
		[2]Modifier{Public, Protected},
		[2]Modifier{Public, Internal},
		[2]Modifier{Private, Internal},
		[2]Modifier{Abstract, Sealed},
		[2]Modifier{Static, Abstract},
		[2]Modifier{Abstract, Virtual},
		[2]Modifier{Abstract, Override},
		[2]Modifier{Sealed, Virtual},
		[2]Modifier{Static, Virtual},
		[2]Modifier{Virtual, Override},
		[2]Modifier{Static, Override},
		[2]Modifier{Ref, Out},
		[2]Modifier{Ref, In},
		[2]Modifier{Ref, Params},
		[2]Modifier{Out, In},
		[2]Modifier{Out, Params},
		[2]Modifier{In, Params},
		[2]Modifier{Static, Const},
		[2]Modifier{Readonly, Const}:
		return true
	}
	return false
}

// SortModifiers puts mods into canonical order. Modifiers of the same rank
// keep their relative order.
func SortModifiers(mods []Modifier) {
	slices.SortStableFunc(mods, func(a, b Modifier) int {
		return a.Rank() - b.Rank()
	})
}

// Conflicts returns every incompatible pair in mods, each pair once, plus
// every modifier that appears more than once, paired with itself.
func Conflicts(mods []Modifier) [][2]Modifier {
	var out [][2]Modifier
	for i, a := range mods {
		for _, b := range mods[i+1:] {
			if a == b || a.IncompatibleWith(b) {
				out = append(out, [2]Modifier{a, b})
			}
		}
	}
	return out
}

// ModifiersOf returns the modifiers written on n, or nil if n is not a
// node that takes modifiers.
func ModifiersOf(n Node) []Modifier {
	switch n := n.(type) {
	case *TypeDecl:
		return n.Modifiers
	case *EnumDecl:
		return n.Modifiers
	case *DelegateDecl:
		return n.Modifiers
	case *FieldDecl:
		return n.Modifiers
	case *MethodDecl:
		return n.Modifiers
	case *ConstructorDecl:
		return n.Modifiers
	case *DestructorDecl:
		return n.Modifiers
	case *PropertyDecl:
		return n.Modifiers
	case *IndexerDecl:
		return n.Modifiers
	case *EventDecl:
		return n.Modifiers
	case *OperatorDecl:
		return n.Modifiers
	case *Accessor:
		return n.Modifiers
	case *LocalFuncStmt:
		return n.Modifiers
	case *LocalDeclStmt:
		return n.Modifiers
	}
	return nil
}
