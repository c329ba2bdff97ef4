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

import "fmt"

// UnaryOp is a prefix operator.
type UnaryOp int8

const (
	Plus         UnaryOp = iota + 1 // +x
	Minus                           // -x
	Not                             // !x
	Complement                      // ~x
	PreIncrement                    // ++x
	PreDecrement                    // --x
	AddressOf                       // &x
	Deref                           // *x
	IndexFromEnd                    // ^x
)

var unaryOps = [...]struct{ name, token string }{
	Plus:         {"Plus", "+"},
	Minus:        {"Minus", "-"},
	Not:          {"Not", "!"},
	Complement:   {"Complement", "~"},
	PreIncrement: {"PreIncrement", "++"},
	PreDecrement: {"PreDecrement", "--"},
	AddressOf:    {"AddressOf", "&"},
	Deref:        {"Deref", "*"},
	IndexFromEnd: {"IndexFromEnd", "^"},
}

// String implements [fmt.Stringer].
func (op UnaryOp) String() string {
	if int(op) <= 0 || int(op) >= len(unaryOps) {
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
	return unaryOps[op].name
}

// Token returns the source spelling of op.
func (op UnaryOp) Token() string {
	if int(op) <= 0 || int(op) >= len(unaryOps) {
		return ""
	}
	return unaryOps[op].token
}

// PostfixOp is a suffix operator.
type PostfixOp int8

const (
	PostIncrement PostfixOp = iota + 1 // x++
	PostDecrement                      // x--
	NullForgiving                      // x!
)

// String implements [fmt.Stringer].
func (op PostfixOp) String() string {
	switch op {
	case PostIncrement:
		return "PostIncrement"
	case PostDecrement:
		return "PostDecrement"
	case NullForgiving:
		return "NullForgiving"
	default:
		return fmt.Sprintf("PostfixOp(%d)", int(op))
	}
}

// BinaryOp is an infix operator.
type BinaryOp int8

const (
	Add BinaryOp = iota + 1
	Sub
	Mul
	Div
	Mod
	ShiftLeft
	ShiftRight
	UnsignedShiftRight
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	LogicalAnd
	LogicalOr
	NullCoalescing
)

var binaryOps = [...]struct{ name, token string }{
	Add:                {"Add", "+"},
	Sub:                {"Sub", "-"},
	Mul:                {"Mul", "*"},
	Div:                {"Div", "/"},
	Mod:                {"Mod", "%"},
	ShiftLeft:          {"ShiftLeft", "<<"},
	ShiftRight:         {"ShiftRight", ">>"},
	UnsignedShiftRight: {"UnsignedShiftRight", ">>>"},
	Less:               {"Less", "<"},
	Greater:            {"Greater", ">"},
	LessEqual:          {"LessEqual", "<="},
	GreaterEqual:       {"GreaterEqual", ">="},
	Equal:              {"Equal", "=="},
	NotEqual:           {"NotEqual", "!="},
	BitwiseAnd:         {"BitwiseAnd", "&"},
	BitwiseOr:          {"BitwiseOr", "|"},
	BitwiseXor:         {"BitwiseXor", "^"},
	LogicalAnd:         {"LogicalAnd", "&&"},
	LogicalOr:          {"LogicalOr", "||"},
	NullCoalescing:     {"NullCoalescing", "??"},
}

// String implements [fmt.Stringer].
func (op BinaryOp) String() string {
	if int(op) <= 0 || int(op) >= len(binaryOps) {
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
	return binaryOps[op].name
}

// Token returns the source spelling of op.
func (op BinaryOp) Token() string {
	if int(op) <= 0 || int(op) >= len(binaryOps) {
		return ""
	}
	return binaryOps[op].token
}

// AssignOp is an assignment operator.
type AssignOp int8

const (
	Assign AssignOp = iota + 1
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
	AndAssign
	OrAssign
	XorAssign
	ShiftLeftAssign
	ShiftRightAssign
	UnsignedShiftRightAssign
	NullCoalescingAssign
)

var assignOps = [...]struct{ name, token string }{
	Assign:                   {"Assign", "="},
	AddAssign:                {"AddAssign", "+="},
	SubAssign:                {"SubAssign", "-="},
	MulAssign:                {"MulAssign", "*="},
	DivAssign:                {"DivAssign", "/="},
	ModAssign:                {"ModAssign", "%="},
	AndAssign:                {"AndAssign", "&="},
	OrAssign:                 {"OrAssign", "|="},
	XorAssign:                {"XorAssign", "^="},
	ShiftLeftAssign:          {"ShiftLeftAssign", "<<="},
	ShiftRightAssign:         {"ShiftRightAssign", ">>="},
	UnsignedShiftRightAssign: {"UnsignedShiftRightAssign", ">>>="},
	NullCoalescingAssign:     {"NullCoalescingAssign", "??="},
}

// String implements [fmt.Stringer].
func (op AssignOp) String() string {
	if int(op) <= 0 || int(op) >= len(assignOps) {
		return fmt.Sprintf("AssignOp(%d)", int(op))
	}
	return assignOps[op].name
}

// Token returns the source spelling of op.
func (op AssignOp) Token() string {
	if int(op) <= 0 || int(op) >= len(assignOps) {
		return ""
	}
	return assignOps[op].token
}

// AssignOps returns every assignment operator, longest spelling first.
func AssignOps() []AssignOp {
	return []AssignOp{
		UnsignedShiftRightAssign,
		ShiftLeftAssign, ShiftRightAssign, NullCoalescingAssign,
		AddAssign, SubAssign, MulAssign, DivAssign, ModAssign,
		AndAssign, OrAssign, XorAssign,
		Assign,
	}
}

// AccessKind is the operator of a member access.
type AccessKind int8

const (
	Dot             AccessKind = iota // x.y
	Arrow                             // x->y
	NullConditional                   // x?.y
)

// String implements [fmt.Stringer].
func (k AccessKind) String() string {
	switch k {
	case Dot:
		return "."
	case Arrow:
		return "->"
	case NullConditional:
		return "?."
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}
