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

// Package ast defines the syntax tree produced by package parser.
//
// The tree is made of pointers to the structs in this package. Each family of
// nodes is a sealed interface: [Type], [Expr], [Pattern], [Stmt] and [Decl].
// A node owns its children; there is no sharing and there are no back
// references, so a tree can be handed to other goroutines once parsing is
// done.
//
// Every node records the [source.Span] of the text it was parsed from. That
// span is always a contiguous slice of the input, never includes surrounding
// whitespace or comments, and contains the spans of all of the node's
// children.
//
// Optional children are nil when absent.
package ast

import "github.com/bufbuild/bsharp/source"

// Node is any syntax tree node.
type Node interface {
	source.Spanner
}

// Range is embedded in every node to record its span.
type Range struct {
	span source.Span
}

// At returns a Range covering span.
func At(span source.Span) Range {
	return Range{span: span}
}

// Span implements [source.Spanner].
func (r Range) Span() source.Span {
	return r.span
}

// Ident is an identifier. A verbatim identifier such as @class has Verbatim
// set and Name "class".
type Ident struct {
	Range
	Name     string
	Verbatim bool
}

// String implements [fmt.Stringer].
func (i *Ident) String() string {
	if i == nil {
		return ""
	}
	if i.Verbatim {
		return "@" + i.Name
	}
	return i.Name
}

// Type is a type expression.
type Type interface {
	Node
	typeNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a pattern, as used by is-expressions and switches.
type Pattern interface {
	Node
	patternNode()
}

// Designation is the variable part of a declaration pattern or declaration
// expression, like the x in "int x" or the (a, b) in "var (a, b)".
type Designation interface {
	Node
	designationNode()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a declaration that can appear in a namespace or type body.
type Decl interface {
	Node
	declNode()
}
