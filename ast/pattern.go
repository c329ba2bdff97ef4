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

// DiscardPattern is _.
type DiscardPattern struct{ Range }

// VarPattern is var designation.
type VarPattern struct {
	Range
	Designation Designation
}

// TypePattern matches a type, optionally binding the value: string s.
type TypePattern struct {
	Range
	Type        Type
	Designation Designation
}

// PositionalPattern deconstructs a value: Point(var x, 0) p. Properties
// holds the member checks of Point(var x, 0) { Y: 1 }, if any.
type PositionalPattern struct {
	Range
	Type        Type
	Subpatterns []*Subpattern
	Properties  []*Subpattern
	Designation Designation
}

// PropertyPattern matches members: Point { X: 0, Y: var y } p. Type may be
// nil.
type PropertyPattern struct {
	Range
	Type        Type
	Subpatterns []*Subpattern
	Designation Designation
}

// Subpattern is an element of a positional, tuple or property pattern.
// Member is nil for a positional element, and may be a dotted path for an
// extended property pattern.
type Subpattern struct {
	Range
	Member  Expr
	Pattern Pattern
}

// ListPattern is [a, .., b] designation.
type ListPattern struct {
	Range
	Elems       []Pattern
	Designation Designation
}

// SlicePattern is .. or .. pattern inside a list pattern.
type SlicePattern struct {
	Range
	Pattern Pattern
}

// RelationalPattern is < x, <= x, > x or >= x.
type RelationalPattern struct {
	Range
	Op    BinaryOp
	Value Expr
}

// ConstantPattern matches a constant value.
type ConstantPattern struct {
	Range
	Value Expr
}

// PatternOp is a pattern combinator.
type PatternOp int8

const (
	PatternAnd PatternOp = iota + 1
	PatternOr
)

// String implements [fmt.Stringer].
func (op PatternOp) String() string {
	if op == PatternAnd {
		return "And"
	}
	return "Or"
}

// BinaryPattern is x and y, or x or y.
type BinaryPattern struct {
	Range
	Op   PatternOp
	X, Y Pattern
}

// NotPattern is not x.
type NotPattern struct {
	Range
	X Pattern
}

// ParenPattern is (x).
type ParenPattern struct {
	Range
	X Pattern
}

// TuplePattern is (a, b) with at least two elements and no type.
type TuplePattern struct {
	Range
	Subpatterns []*Subpattern
	Designation Designation
}

func (*DiscardPattern) patternNode()    {}
func (*VarPattern) patternNode()        {}
func (*TypePattern) patternNode()       {}
func (*PositionalPattern) patternNode() {}
func (*PropertyPattern) patternNode()   {}
func (*ListPattern) patternNode()       {}
func (*SlicePattern) patternNode()      {}
func (*RelationalPattern) patternNode() {}
func (*ConstantPattern) patternNode()   {}
func (*BinaryPattern) patternNode()     {}
func (*NotPattern) patternNode()        {}
func (*ParenPattern) patternNode()      {}
func (*TuplePattern) patternNode()      {}
