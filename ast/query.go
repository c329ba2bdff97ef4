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

// QueryExpr is a query expression: from x in xs ... select y.
type QueryExpr struct {
	Range
	From *FromClause
	Body *QueryBody
}

// QueryBody is the part of a query after its first from clause.
type QueryBody struct {
	Range
	Clauses []QueryClause
	// The terminating *SelectClause or *GroupClause.
	Final        QueryClause
	Continuation *QueryContinuation
}

// QueryClause is a clause of a [QueryBody].
type QueryClause interface {
	Node
	queryClause()
}

// FromClause is from T x in xs.
type FromClause struct {
	Range
	Type Type
	Name *Ident
	In   Expr
}

// LetClause is let x = v.
type LetClause struct {
	Range
	Name  *Ident
	Value Expr
}

// WhereClause is where cond.
type WhereClause struct {
	Range
	Cond Expr
}

// JoinClause is join T x in xs on a equals b into g.
type JoinClause struct {
	Range
	Type       Type
	Name       *Ident
	In         Expr
	On, Equals Expr
	Into       *Ident
}

// OrderByClause is orderby a, b descending.
type OrderByClause struct {
	Range
	Orderings []*Ordering
}

// Ordering is one key of an [OrderByClause].
type Ordering struct {
	Range
	X          Expr
	Descending bool
}

// SelectClause is select x.
type SelectClause struct {
	Range
	X Expr
}

// GroupClause is group x by k.
type GroupClause struct {
	Range
	X, By Expr
}

// QueryContinuation is into g followed by another query body.
type QueryContinuation struct {
	Range
	Name *Ident
	Body *QueryBody
}

func (*FromClause) queryClause()    {}
func (*LetClause) queryClause()     {}
func (*WhereClause) queryClause()   {}
func (*JoinClause) queryClause()    {}
func (*OrderByClause) queryClause() {}
func (*SelectClause) queryClause()  {}
func (*GroupClause) queryClause()   {}
