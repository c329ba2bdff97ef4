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

// BlockStmt is { stmts }.
type BlockStmt struct {
	Range
	Stmts []Stmt
}

// EmptyStmt is a lone semicolon.
type EmptyStmt struct{ Range }

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Range
	X Expr
}

// LocalDeclStmt declares local variables.
type LocalDeclStmt struct {
	Range
	Const bool
	// Set for using declarations, "using var x = ...;".
	Using bool
	Await bool
	// Modifiers such as scoped or readonly on ref locals.
	Modifiers []Modifier
	Type      Type
	Vars      []*VarDeclarator
}

// VarDeclarator is name = init. Init may be nil.
type VarDeclarator struct {
	Range
	Name *Ident
	// Size of a fixed-size buffer field, as in fixed int buf[16].
	Size Expr
	Init Expr
}

// LocalFuncStmt is a local function.
type LocalFuncStmt struct {
	Range
	Attributes  []*AttributeSection
	Modifiers   []Modifier
	Return      Type
	Name        *Ident
	TypeParams  []*TypeParameter
	Params      []*Parameter
	Constraints []*ConstraintClause
	Body        *BlockStmt
	ExprBody    Expr
}

// IfStmt is if (cond) then else els.
type IfStmt struct {
	Range
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is while (cond) body.
type WhileStmt struct {
	Range
	Cond Expr
	Body Stmt
}

// DoStmt is do body while (cond);.
type DoStmt struct {
	Range
	Body Stmt
	Cond Expr
}

// ForStmt is for (init; cond; update) body. The initializer is either a
// declaration or a list of expressions.
type ForStmt struct {
	Range
	Decl   *LocalDeclStmt
	Init   []Expr
	Cond   Expr
	Update []Expr
	Body   Stmt
}

// ForeachStmt is foreach (T x in xs) body.
type ForeachStmt struct {
	Range
	Await       bool
	Type        Type
	Designation Designation
	// Set instead of Type and Designation for foreach ((a, b) in xs).
	Target Expr
	In     Expr
	Body   Stmt
}

// SwitchStmt is switch (x) { sections }.
type SwitchStmt struct {
	Range
	X        Expr
	Sections []*SwitchSection
}

// SwitchSection is one or more labels followed by statements.
type SwitchSection struct {
	Range
	Labels []SwitchLabel
	Stmts  []Stmt
}

// SwitchLabel is a case or default label.
type SwitchLabel interface {
	Node
	switchLabel()
}

// CaseLabel is case value:, the classic constant form.
type CaseLabel struct {
	Range
	Value Expr
}

// PatternLabel is case pattern when guard:.
type PatternLabel struct {
	Range
	Pattern Pattern
	When    Expr
}

// DefaultLabel is default:.
type DefaultLabel struct{ Range }

// TryStmt is try { } catch { } finally { }.
type TryStmt struct {
	Range
	Block   *BlockStmt
	Catches []*CatchClause
	Finally *BlockStmt
}

// CatchClause is catch (T e) when (cond) { }. Type is nil for a bare catch.
type CatchClause struct {
	Range
	Type  Type
	Name  *Ident
	When  Expr
	Block *BlockStmt
}

// UsingStmt is using (resource) body. Exactly one of Decl and X is set.
type UsingStmt struct {
	Range
	Await bool
	Decl  *LocalDeclStmt
	X     Expr
	Body  Stmt
}

// LockStmt is lock (x) body.
type LockStmt struct {
	Range
	X    Expr
	Body Stmt
}

// FixedStmt is fixed (T* p = ...) body.
type FixedStmt struct {
	Range
	Decl *LocalDeclStmt
	Body Stmt
}

// UnsafeStmt is unsafe { }.
type UnsafeStmt struct {
	Range
	Block *BlockStmt
}

// CheckedStmt is checked { } or unchecked { }.
type CheckedStmt struct {
	Range
	Unchecked bool
	Block     *BlockStmt
}

// GotoKind is the target of a [GotoStmt].
type GotoKind int8

const (
	GotoLabel GotoKind = iota
	GotoCase
	GotoDefault
)

// GotoStmt is goto label;, goto case x; or goto default;.
type GotoStmt struct {
	Range
	Kind  GotoKind
	Label *Ident
	Case  Expr
}

// LabeledStmt is label: stmt.
type LabeledStmt struct {
	Range
	Label *Ident
	Stmt  Stmt
}

// YieldStmt is yield return x; or yield break;.
type YieldStmt struct {
	Range
	Break bool
	X     Expr
}

// ReturnStmt is return x;. X may be nil.
type ReturnStmt struct {
	Range
	X Expr
}

// ThrowStmt is throw x;. X is nil for a rethrow.
type ThrowStmt struct {
	Range
	X Expr
}

// BreakStmt is break;.
type BreakStmt struct{ Range }

// ContinueStmt is continue;.
type ContinueStmt struct{ Range }

func (*BlockStmt) stmtNode()     {}
func (*EmptyStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()      {}
func (*LocalDeclStmt) stmtNode() {}
func (*LocalFuncStmt) stmtNode() {}
func (*IfStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()     {}
func (*DoStmt) stmtNode()        {}
func (*ForStmt) stmtNode()       {}
func (*ForeachStmt) stmtNode()   {}
func (*SwitchStmt) stmtNode()    {}
func (*TryStmt) stmtNode()       {}
func (*UsingStmt) stmtNode()     {}
func (*LockStmt) stmtNode()      {}
func (*FixedStmt) stmtNode()     {}
func (*UnsafeStmt) stmtNode()    {}
func (*CheckedStmt) stmtNode()   {}
func (*GotoStmt) stmtNode()      {}
func (*LabeledStmt) stmtNode()   {}
func (*YieldStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()    {}
func (*ThrowStmt) stmtNode()     {}
func (*BreakStmt) stmtNode()     {}
func (*ContinueStmt) stmtNode()  {}

func (*CaseLabel) switchLabel()    {}
func (*PatternLabel) switchLabel() {}
func (*DefaultLabel) switchLabel() {}
