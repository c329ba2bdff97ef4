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

// CompilationUnit is a whole source file.
type CompilationUnit struct {
	Range
	Externs    []*ExternAlias
	Usings     []*UsingDirective
	Attributes []*AttributeSection
	// Namespaces, types and, for a file-scoped namespace, the single
	// [NamespaceDecl] holding everything after it.
	Members []Decl
	// Top-level statements.
	Stmts []Stmt
}

// ExternAlias is extern alias name;.
type ExternAlias struct {
	Range
	Name *Ident
}

// UsingDirective is using X;, using static X;, global using X; or
// using A = X;.
type UsingDirective struct {
	Range
	Global bool
	Static bool
	Unsafe bool
	Alias  *Ident
	Target Type
}

// NamespaceDecl is namespace A.B { ... } or namespace A.B;.
type NamespaceDecl struct {
	Range
	Name       *NamedType
	FileScoped bool
	Externs    []*ExternAlias
	Usings     []*UsingDirective
	Members    []Decl
}

// TypeKind distinguishes the declarations sharing [TypeDecl].
type TypeKind int8

const (
	Class TypeKind = iota + 1
	Struct
	Interface
	Record
	RecordStruct
)

// String implements [fmt.Stringer]. It returns the declaring keywords.
func (k TypeKind) String() string {
	switch k {
	case Class:
		return "class"
	case Struct:
		return "struct"
	case Interface:
		return "interface"
	case Record:
		return "record"
	case RecordStruct:
		return "record struct"
	default:
		return "type"
	}
}

// TypeDecl is a class, struct, interface or record.
type TypeDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Kind       TypeKind
	Name       *Ident
	TypeParams []*TypeParameter
	// The primary constructor parameters, if HasPrimary.
	PrimaryParams []*Parameter
	HasPrimary    bool
	Bases         []*BaseType
	Constraints   []*ConstraintClause
	Members       []Decl
}

// BaseType is an entry in a base type list. Args is only set for a record
// or primary-constructor base call, as in record B(int X) : A(X).
type BaseType struct {
	Range
	Type Type
	Args []*Argument
}

// EnumDecl is enum E : byte { A, B = 2 }.
type EnumDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Name       *Ident
	Base       Type
	Members    []*EnumMember
}

// EnumMember is an enumerator.
type EnumMember struct {
	Range
	Attributes []*AttributeSection
	Name       *Ident
	Value      Expr
}

// DelegateDecl is delegate R Name<T>(params);.
type DelegateDecl struct {
	Range
	Attributes  []*AttributeSection
	Modifiers   []Modifier
	Return      Type
	Name        *Ident
	TypeParams  []*TypeParameter
	Params      []*Parameter
	Constraints []*ConstraintClause
}

// FieldDecl declares one or more fields, or constants if Modifiers
// contains [Const].
type FieldDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Type       Type
	Vars       []*VarDeclarator
}

// MethodDecl is a method. Body and ExprBody are both nil for an abstract,
// extern, partial or interface method.
type MethodDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Return     Type
	// The interface in an explicit implementation, as in void IFoo.Bar().
	Interface   *NamedType
	Name        *Ident
	TypeParams  []*TypeParameter
	Params      []*Parameter
	Constraints []*ConstraintClause
	Body        *BlockStmt
	ExprBody    Expr
}

// ConstructorDecl is a constructor.
type ConstructorDecl struct {
	Range
	Attributes  []*AttributeSection
	Modifiers   []Modifier
	Name        *Ident
	Params      []*Parameter
	Initializer *ConstructorInitializer
	Body        *BlockStmt
	ExprBody    Expr
}

// ConstructorInitializer is : base(args) or : this(args).
type ConstructorInitializer struct {
	Range
	Base bool
	Args []*Argument
}

// DestructorDecl is ~Name() { }.
type DestructorDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Name       *Ident
	Body       *BlockStmt
	ExprBody   Expr
}

// PropertyDecl is a property.
type PropertyDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Type       Type
	Interface  *NamedType
	Name       *Ident
	Accessors  []*Accessor
	// Set for an expression-bodied property, int X => 1;.
	ExprBody Expr
	// Set for an initialized auto-property, int X { get; } = 1;.
	Init Expr
}

// IndexerDecl is T this[params] { accessors }.
type IndexerDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Type       Type
	Interface  *NamedType
	Params     []*Parameter
	Accessors  []*Accessor
	ExprBody   Expr
}

// EventDecl is either a field-like event with Vars, or an event with
// add/remove Accessors.
type EventDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Type       Type
	Interface  *NamedType
	Name       *Ident
	Vars       []*VarDeclarator
	Accessors  []*Accessor
}

// OperatorDecl is a user-defined operator or conversion.
type OperatorDecl struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	// "implicit" or "explicit" for a conversion, empty otherwise.
	Conversion string
	Checked    bool
	// The result type; the target type of a conversion.
	Return Type
	// The operator token; empty for a conversion.
	Op       string
	Params   []*Parameter
	Body     *BlockStmt
	ExprBody Expr
}

// AccessorKind is the kind of an [Accessor].
type AccessorKind int8

const (
	Get AccessorKind = iota + 1
	Set
	Init
	AddAccessor
	RemoveAccessor
)

// String implements [fmt.Stringer]. It returns the keyword.
func (k AccessorKind) String() string {
	switch k {
	case Get:
		return "get"
	case Set:
		return "set"
	case Init:
		return "init"
	case AddAccessor:
		return "add"
	case RemoveAccessor:
		return "remove"
	default:
		return "accessor"
	}
}

// Accessor is a get, set, init, add or remove accessor. Body and ExprBody
// are both nil for an auto-accessor.
type Accessor struct {
	Range
	Attributes []*AttributeSection
	Modifiers  []Modifier
	Kind       AccessorKind
	Body       *BlockStmt
	ExprBody   Expr
}

// Parameter is a method, lambda, indexer or delegate parameter. Type is nil
// for an implicitly typed lambda parameter.
type Parameter struct {
	Range
	Attributes []*AttributeSection
	// Parameter modifiers: this, ref, out, in, params, scoped, readonly.
	Modifiers []string
	Type      Type
	Name      *Ident
	Default   Expr
}

// TypeParameter is a generic type parameter, with optional variance.
type TypeParameter struct {
	Range
	Attributes []*AttributeSection
	// "in", "out" or empty.
	Variance string
	Name     *Ident
}

// ConstraintClause is where T : constraints.
type ConstraintClause struct {
	Range
	Param       *Ident
	Constraints []*Constraint
}

// Constraint is one constraint in a [ConstraintClause]: either a keyword
// such as class, class?, struct, unmanaged, notnull, default or new(), or a
// type.
type Constraint struct {
	Range
	Keyword string
	Type    Type
}

// AttributeSection is [target: A, B(1)].
type AttributeSection struct {
	Range
	// "assembly", "return" and so on, or empty.
	Target string
	Attrs  []*Attribute
}

// Attribute is a single attribute.
type Attribute struct {
	Range
	Name *NamedType
	Args []*Argument
}

func (*NamespaceDecl) declNode()   {}
func (*TypeDecl) declNode()        {}
func (*EnumDecl) declNode()        {}
func (*DelegateDecl) declNode()    {}
func (*FieldDecl) declNode()       {}
func (*MethodDecl) declNode()      {}
func (*ConstructorDecl) declNode() {}
func (*DestructorDecl) declNode()  {}
func (*PropertyDecl) declNode()    {}
func (*IndexerDecl) declNode()     {}
func (*EventDecl) declNode()       {}
func (*OperatorDecl) declNode()    {}
