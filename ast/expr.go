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

// LiteralKind is the kind of a [Literal].
type LiteralKind int8

const (
	IntLiteral LiteralKind = iota + 1
	RealLiteral
	CharLiteral
	StringLiteral
	BoolLiteral
	NullLiteral
)

// String implements [fmt.Stringer].
func (k LiteralKind) String() string {
	switch k {
	case IntLiteral:
		return "int"
	case RealLiteral:
		return "real"
	case CharLiteral:
		return "char"
	case StringLiteral:
		return "string"
	case BoolLiteral:
		return "bool"
	case NullLiteral:
		return "null"
	default:
		return "literal(?)"
	}
}

// Literal is a literal value.
//
// Value holds the decoded value: uint64 for integers, float64 for reals
// (decimal literals are decoded as float64 too), rune for chars, string for
// all string forms, bool, or nil. Raw is the exact source text.
type Literal struct {
	Range
	Kind  LiteralKind
	Raw   string
	Value any
	// Type suffix of a numeric literal, lowercased, such as "ul" or "m".
	Suffix string
}

// InterpolatedString is $"..." or $@"...".
type InterpolatedString struct {
	Range
	Verbatim bool
	Raw      bool
	Parts    []*InterpolatedPart
}

// InterpolatedPart is either a run of text or an interpolation hole. Exactly
// one of Text and Expr is set.
type InterpolatedPart struct {
	Range
	Text      string
	Expr      Expr
	Alignment Expr
	Format    string
}

// NameExpr is a simple name, optionally generic and alias-qualified:
// x, List<int>, global::System.
type NameExpr struct {
	Range
	Alias    *Ident
	Name     *Ident
	TypeArgs []Type
}

// PredefinedTypeExpr is a primitive type used as an expression, as in
// int.Parse or string.Empty.
type PredefinedTypeExpr struct {
	Range
	Type *PrimitiveType
}

// ThisExpr is this.
type ThisExpr struct{ Range }

// BaseExpr is base.
type BaseExpr struct{ Range }

// UnaryExpr is a prefix operator applied to an operand.
type UnaryExpr struct {
	Range
	Op UnaryOp
	X  Expr
}

// PostfixExpr is a suffix operator applied to an operand.
type PostfixExpr struct {
	Range
	Op PostfixOp
	X  Expr
}

// BinaryExpr is an infix operator.
type BinaryExpr struct {
	Range
	Op   BinaryOp
	X, Y Expr
}

// AssignExpr is a simple or compound assignment.
type AssignExpr struct {
	Range
	Op          AssignOp
	Left, Right Expr
	// Set for "x = ref y".
	Ref bool
}

// ConditionalExpr is cond ? then : else.
type ConditionalExpr struct {
	Range
	Cond, Then, Else Expr
}

// RangeExpr is start..end. Either bound may be nil.
type RangeExpr struct {
	Range
	Start, End Expr
}

// MemberAccessExpr is x.y, x->y or x?.y, possibly with type arguments.
type MemberAccessExpr struct {
	Range
	X        Expr
	Access   AccessKind
	Name     *Ident
	TypeArgs []Type
}

// Argument is an argument to an invocation, element access, tuple or
// attribute.
type Argument struct {
	Range
	// Set for name: value, or for name = value in attributes.
	Name *Ident
	// Set when the name was followed by '=' rather than ':'.
	NameEquals bool
	// ref, out, in or empty.
	Modifier string
	Value    Expr
}

// InvocationExpr is a call.
type InvocationExpr struct {
	Range
	Func Expr
	Args []*Argument
}

// ElementAccessExpr is x[args] or x?[args]. X is nil for the implicit
// receiver of [k] = v inside an object initializer.
type ElementAccessExpr struct {
	Range
	X               Expr
	Args            []*Argument
	NullConditional bool
}

// ObjectCreationExpr is new T(args) { init }. Type is nil for a
// target-typed new().
type ObjectCreationExpr struct {
	Range
	Type Type
	Args []*Argument
	Init *InitializerExpr
}

// ArrayCreationExpr creates an array.
//
// new int[3][] has Elem int, Sizes [3] and Ranks [1]; new[] { 1 } has a nil
// Elem and Ranks [1].
type ArrayCreationExpr struct {
	Range
	Elem  Type
	Sizes []Expr
	Ranks []int
	Init  *InitializerExpr
}

// AnonymousObjectExpr is new { A = 1, B }.
type AnonymousObjectExpr struct {
	Range
	Members []*AnonymousMember
}

// AnonymousMember is a member of an [AnonymousObjectExpr]. Name is nil when
// the name is projected from Value.
type AnonymousMember struct {
	Range
	Name  *Ident
	Value Expr
}

// InitializerExpr is a braced object, collection or array initializer.
// Object members appear as [AssignExpr] elements.
type InitializerExpr struct {
	Range
	Elems []Expr
}

// CollectionExpr is [a, b, ..c].
type CollectionExpr struct {
	Range
	Elems []Expr
}

// SpreadExpr is ..x inside a collection expression.
type SpreadExpr struct {
	Range
	X Expr
}

// TupleExpr is (a, b) with at least two elements.
type TupleExpr struct {
	Range
	Elems []*Argument
}

// ParenExpr is (x).
type ParenExpr struct {
	Range
	X Expr
}

// CastExpr is (T)x.
type CastExpr struct {
	Range
	Type Type
	X    Expr
}

// LambdaExpr is params => body. Exactly one of Body and Block is set.
type LambdaExpr struct {
	Range
	Async, Static bool
	// Whether the parameters were parenthesized.
	Parenthesized bool
	Params        []*Parameter
	Body          Expr
	Block         *BlockStmt
}

// AnonymousMethodExpr is delegate (params) { body }. Params is nil if the
// parameter list was omitted entirely.
type AnonymousMethodExpr struct {
	Range
	Async, Static bool
	Params        []*Parameter
	HasParams     bool
	Block         *BlockStmt
}

// AwaitExpr is await x.
type AwaitExpr struct {
	Range
	X Expr
}

// SwitchExpr is x switch { arms }.
type SwitchExpr struct {
	Range
	X    Expr
	Arms []*SwitchArm
}

// SwitchArm is pattern when guard => value.
type SwitchArm struct {
	Range
	Pattern Pattern
	When    Expr
	Value   Expr
}

// IsPatternExpr is x is pattern.
type IsPatternExpr struct {
	Range
	X       Expr
	Pattern Pattern
}

// AsExpr is x as T.
type AsExpr struct {
	Range
	X    Expr
	Type Type
}

// ThrowExpr is a throw in expression position, as in x ?? throw e.
type ThrowExpr struct {
	Range
	X Expr
}

// NameofExpr is nameof(x).
type NameofExpr struct {
	Range
	X Expr
}

// TypeofExpr is typeof(T).
type TypeofExpr struct {
	Range
	Type Type
}

// SizeofExpr is sizeof(T).
type SizeofExpr struct {
	Range
	Type Type
}

// DefaultExpr is default(T), or the default literal when Type is nil.
type DefaultExpr struct {
	Range
	Type Type
}

// StackallocExpr is stackalloc T[n] or stackalloc T[] { ... }.
type StackallocExpr struct {
	Range
	Elem Type
	Size Expr
	Init *InitializerExpr
}

// RefExpr is ref x.
type RefExpr struct {
	Range
	X Expr
}

// CheckedExpr is checked(x) or unchecked(x).
type CheckedExpr struct {
	Range
	Unchecked bool
	X         Expr
}

// WithExpr is x with { ... }.
type WithExpr struct {
	Range
	X    Expr
	Init *InitializerExpr
}

// DeclarationExpr declares variables inline, as in out var x or
// var (a, b) = t.
type DeclarationExpr struct {
	Range
	Type        Type
	Designation Designation
}

// SingleDesignation names one variable.
type SingleDesignation struct {
	Range
	Name *Ident
}

// DiscardDesignation is _.
type DiscardDesignation struct{ Range }

// ParenDesignation is (a, b).
type ParenDesignation struct {
	Range
	Elems []Designation
}

func (*Literal) exprNode()             {}
func (*InterpolatedString) exprNode()  {}
func (*NameExpr) exprNode()            {}
func (*PredefinedTypeExpr) exprNode()  {}
func (*ThisExpr) exprNode()            {}
func (*BaseExpr) exprNode()            {}
func (*UnaryExpr) exprNode()           {}
func (*PostfixExpr) exprNode()         {}
func (*BinaryExpr) exprNode()          {}
func (*AssignExpr) exprNode()          {}
func (*ConditionalExpr) exprNode()     {}
func (*RangeExpr) exprNode()           {}
func (*MemberAccessExpr) exprNode()    {}
func (*InvocationExpr) exprNode()      {}
func (*ElementAccessExpr) exprNode()   {}
func (*ObjectCreationExpr) exprNode()  {}
func (*ArrayCreationExpr) exprNode()   {}
func (*AnonymousObjectExpr) exprNode() {}
func (*InitializerExpr) exprNode()     {}
func (*CollectionExpr) exprNode()      {}
func (*SpreadExpr) exprNode()          {}
func (*TupleExpr) exprNode()           {}
func (*ParenExpr) exprNode()           {}
func (*CastExpr) exprNode()            {}
func (*LambdaExpr) exprNode()          {}
func (*AnonymousMethodExpr) exprNode() {}
func (*AwaitExpr) exprNode()           {}
func (*QueryExpr) exprNode()           {}
func (*SwitchExpr) exprNode()          {}
func (*IsPatternExpr) exprNode()       {}
func (*AsExpr) exprNode()              {}
func (*ThrowExpr) exprNode()           {}
func (*NameofExpr) exprNode()          {}
func (*TypeofExpr) exprNode()          {}
func (*SizeofExpr) exprNode()          {}
func (*DefaultExpr) exprNode()         {}
func (*StackallocExpr) exprNode()      {}
func (*RefExpr) exprNode()             {}
func (*CheckedExpr) exprNode()         {}
func (*WithExpr) exprNode()            {}
func (*DeclarationExpr) exprNode()     {}

func (*SingleDesignation) designationNode()  {}
func (*DiscardDesignation) designationNode() {}
func (*ParenDesignation) designationNode()   {}
