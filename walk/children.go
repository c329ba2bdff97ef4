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

package walk

import "github.com/bufbuild/bsharp/ast"

// Children returns the direct children of n in source order.
func Children(n ast.Node) []ast.Node {
	var c children
	switch n := n.(type) {
	// Types.
	case *ast.NamedType:
		ptr(&c, n.Alias)
		ptrs(&c, n.Segments)
	case *ast.TypeSegment:
		ptr(&c, n.Name)
		nodes(&c, n.TypeArgs)
	case *ast.ArrayType:
		node(&c, n.Elem)
	case *ast.PointerType:
		node(&c, n.Elem)
	case *ast.NullableType:
		node(&c, n.Elem)
	case *ast.FunctionPointerType:
		ptrs(&c, n.CallingConventions)
		ptrs(&c, n.Params)
	case *ast.FunctionPointerParam:
		node(&c, n.Type)
	case *ast.RefType:
		node(&c, n.Elem)
	case *ast.TupleType:
		ptrs(&c, n.Elems)
	case *ast.TupleTypeElem:
		node(&c, n.Type)
		ptr(&c, n.Name)

	// Expressions.
	case *ast.InterpolatedString:
		ptrs(&c, n.Parts)
	case *ast.InterpolatedPart:
		node(&c, n.Expr)
		node(&c, n.Alignment)
	case *ast.NameExpr:
		ptr(&c, n.Alias)
		ptr(&c, n.Name)
		nodes(&c, n.TypeArgs)
	case *ast.PredefinedTypeExpr:
		ptr(&c, n.Type)
	case *ast.UnaryExpr:
		node(&c, n.X)
	case *ast.PostfixExpr:
		node(&c, n.X)
	case *ast.BinaryExpr:
		node(&c, n.X)
		node(&c, n.Y)
	case *ast.AssignExpr:
		node(&c, n.Left)
		node(&c, n.Right)
	case *ast.ConditionalExpr:
		node(&c, n.Cond)
		node(&c, n.Then)
		node(&c, n.Else)
	case *ast.RangeExpr:
		node(&c, n.Start)
		node(&c, n.End)
	case *ast.MemberAccessExpr:
		node(&c, n.X)
		ptr(&c, n.Name)
		nodes(&c, n.TypeArgs)
	case *ast.Argument:
		ptr(&c, n.Name)
		node(&c, n.Value)
	case *ast.InvocationExpr:
		node(&c, n.Func)
		ptrs(&c, n.Args)
	case *ast.ElementAccessExpr:
		node(&c, n.X)
		ptrs(&c, n.Args)
	case *ast.ObjectCreationExpr:
		node(&c, n.Type)
		ptrs(&c, n.Args)
		ptr(&c, n.Init)
	case *ast.ArrayCreationExpr:
		node(&c, n.Elem)
		nodes(&c, n.Sizes)
		ptr(&c, n.Init)
	case *ast.AnonymousObjectExpr:
		ptrs(&c, n.Members)
	case *ast.AnonymousMember:
		ptr(&c, n.Name)
		node(&c, n.Value)
	case *ast.InitializerExpr:
		nodes(&c, n.Elems)
	case *ast.CollectionExpr:
		nodes(&c, n.Elems)
	case *ast.SpreadExpr:
		node(&c, n.X)
	case *ast.TupleExpr:
		ptrs(&c, n.Elems)
	case *ast.ParenExpr:
		node(&c, n.X)
	case *ast.CastExpr:
		node(&c, n.Type)
		node(&c, n.X)
	case *ast.LambdaExpr:
		ptrs(&c, n.Params)
		node(&c, n.Body)
		ptr(&c, n.Block)
	case *ast.AnonymousMethodExpr:
		ptrs(&c, n.Params)
		ptr(&c, n.Block)
	case *ast.AwaitExpr:
		node(&c, n.X)
	case *ast.QueryExpr:
		ptr(&c, n.From)
		ptr(&c, n.Body)
	case *ast.QueryBody:
		nodes(&c, n.Clauses)
		node(&c, n.Final)
		ptr(&c, n.Continuation)
	case *ast.FromClause:
		node(&c, n.Type)
		ptr(&c, n.Name)
		node(&c, n.In)
	case *ast.LetClause:
		ptr(&c, n.Name)
		node(&c, n.Value)
	case *ast.WhereClause:
		node(&c, n.Cond)
	case *ast.JoinClause:
		node(&c, n.Type)
		ptr(&c, n.Name)
		node(&c, n.In)
		node(&c, n.On)
		node(&c, n.Equals)
		ptr(&c, n.Into)
	case *ast.OrderByClause:
		ptrs(&c, n.Orderings)
	case *ast.Ordering:
		node(&c, n.X)
	case *ast.SelectClause:
		node(&c, n.X)
	case *ast.GroupClause:
		node(&c, n.X)
		node(&c, n.By)
	case *ast.QueryContinuation:
		ptr(&c, n.Name)
		ptr(&c, n.Body)
	case *ast.SwitchExpr:
		node(&c, n.X)
		ptrs(&c, n.Arms)
	case *ast.SwitchArm:
		node(&c, n.Pattern)
		node(&c, n.When)
		node(&c, n.Value)
	case *ast.IsPatternExpr:
		node(&c, n.X)
		node(&c, n.Pattern)
	case *ast.AsExpr:
		node(&c, n.X)
		node(&c, n.Type)
	case *ast.ThrowExpr:
		node(&c, n.X)
	case *ast.NameofExpr:
		node(&c, n.X)
	case *ast.TypeofExpr:
		node(&c, n.Type)
	case *ast.SizeofExpr:
		node(&c, n.Type)
	case *ast.DefaultExpr:
		node(&c, n.Type)
	case *ast.StackallocExpr:
		node(&c, n.Elem)
		node(&c, n.Size)
		ptr(&c, n.Init)
	case *ast.RefExpr:
		node(&c, n.X)
	case *ast.CheckedExpr:
		node(&c, n.X)
	case *ast.WithExpr:
		node(&c, n.X)
		ptr(&c, n.Init)
	case *ast.DeclarationExpr:
		node(&c, n.Type)
		node(&c, n.Designation)
	case *ast.SingleDesignation:
		ptr(&c, n.Name)
	case *ast.ParenDesignation:
		nodes(&c, n.Elems)

	// Patterns.
	case *ast.VarPattern:
		node(&c, n.Designation)
	case *ast.TypePattern:
		node(&c, n.Type)
		node(&c, n.Designation)
	case *ast.PositionalPattern:
		node(&c, n.Type)
		ptrs(&c, n.Subpatterns)
		ptrs(&c, n.Properties)
		node(&c, n.Designation)
	case *ast.PropertyPattern:
		node(&c, n.Type)
		ptrs(&c, n.Subpatterns)
		node(&c, n.Designation)
	case *ast.TuplePattern:
		ptrs(&c, n.Subpatterns)
		node(&c, n.Designation)
	case *ast.Subpattern:
		node(&c, n.Member)
		node(&c, n.Pattern)
	case *ast.ListPattern:
		nodes(&c, n.Elems)
		node(&c, n.Designation)
	case *ast.SlicePattern:
		node(&c, n.Pattern)
	case *ast.RelationalPattern:
		node(&c, n.Value)
	case *ast.ConstantPattern:
		node(&c, n.Value)
	case *ast.BinaryPattern:
		node(&c, n.X)
		node(&c, n.Y)
	case *ast.NotPattern:
		node(&c, n.X)
	case *ast.ParenPattern:
		node(&c, n.X)

	// Statements.
	case *ast.BlockStmt:
		nodes(&c, n.Stmts)
	case *ast.ExprStmt:
		node(&c, n.X)
	case *ast.LocalDeclStmt:
		node(&c, n.Type)
		ptrs(&c, n.Vars)
	case *ast.VarDeclarator:
		ptr(&c, n.Name)
		node(&c, n.Size)
		node(&c, n.Init)
	case *ast.LocalFuncStmt:
		ptrs(&c, n.Attributes)
		node(&c, n.Return)
		ptr(&c, n.Name)
		ptrs(&c, n.TypeParams)
		ptrs(&c, n.Params)
		ptrs(&c, n.Constraints)
		ptr(&c, n.Body)
		node(&c, n.ExprBody)
	case *ast.IfStmt:
		node(&c, n.Cond)
		node(&c, n.Then)
		node(&c, n.Else)
	case *ast.WhileStmt:
		node(&c, n.Cond)
		node(&c, n.Body)
	case *ast.DoStmt:
		node(&c, n.Body)
		node(&c, n.Cond)
	case *ast.ForStmt:
		ptr(&c, n.Decl)
		nodes(&c, n.Init)
		node(&c, n.Cond)
		nodes(&c, n.Update)
		node(&c, n.Body)
	case *ast.ForeachStmt:
		node(&c, n.Type)
		node(&c, n.Designation)
		node(&c, n.Target)
		node(&c, n.In)
		node(&c, n.Body)
	case *ast.SwitchStmt:
		node(&c, n.X)
		ptrs(&c, n.Sections)
	case *ast.SwitchSection:
		nodes(&c, n.Labels)
		nodes(&c, n.Stmts)
	case *ast.CaseLabel:
		node(&c, n.Value)
	case *ast.PatternLabel:
		node(&c, n.Pattern)
		node(&c, n.When)
	case *ast.TryStmt:
		ptr(&c, n.Block)
		ptrs(&c, n.Catches)
		ptr(&c, n.Finally)
	case *ast.CatchClause:
		node(&c, n.Type)
		ptr(&c, n.Name)
		node(&c, n.When)
		ptr(&c, n.Block)
	case *ast.UsingStmt:
		ptr(&c, n.Decl)
		node(&c, n.X)
		node(&c, n.Body)
	case *ast.LockStmt:
		node(&c, n.X)
		node(&c, n.Body)
	case *ast.FixedStmt:
		ptr(&c, n.Decl)
		node(&c, n.Body)
	case *ast.UnsafeStmt:
		ptr(&c, n.Block)
	case *ast.CheckedStmt:
		ptr(&c, n.Block)
	case *ast.GotoStmt:
		ptr(&c, n.Label)
		node(&c, n.Case)
	case *ast.LabeledStmt:
		ptr(&c, n.Label)
		node(&c, n.Stmt)
	case *ast.YieldStmt:
		node(&c, n.X)
	case *ast.ReturnStmt:
		node(&c, n.X)
	case *ast.ThrowStmt:
		node(&c, n.X)

	// Declarations.
	case *ast.CompilationUnit:
		ptrs(&c, n.Externs)
		ptrs(&c, n.Usings)
		ptrs(&c, n.Attributes)
		nodes(&c, n.Members)
		nodes(&c, n.Stmts)
	case *ast.ExternAlias:
		ptr(&c, n.Name)
	case *ast.UsingDirective:
		ptr(&c, n.Alias)
		node(&c, n.Target)
	case *ast.NamespaceDecl:
		ptr(&c, n.Name)
		ptrs(&c, n.Externs)
		ptrs(&c, n.Usings)
		nodes(&c, n.Members)
	case *ast.TypeDecl:
		ptrs(&c, n.Attributes)
		ptr(&c, n.Name)
		ptrs(&c, n.TypeParams)
		ptrs(&c, n.PrimaryParams)
		ptrs(&c, n.Bases)
		ptrs(&c, n.Constraints)
		nodes(&c, n.Members)
	case *ast.BaseType:
		node(&c, n.Type)
		ptrs(&c, n.Args)
	case *ast.EnumDecl:
		ptrs(&c, n.Attributes)
		ptr(&c, n.Name)
		node(&c, n.Base)
		ptrs(&c, n.Members)
	case *ast.EnumMember:
		ptrs(&c, n.Attributes)
		ptr(&c, n.Name)
		node(&c, n.Value)
	case *ast.DelegateDecl:
		ptrs(&c, n.Attributes)
		node(&c, n.Return)
		ptr(&c, n.Name)
		ptrs(&c, n.TypeParams)
		ptrs(&c, n.Params)
		ptrs(&c, n.Constraints)
	case *ast.FieldDecl:
		ptrs(&c, n.Attributes)
		node(&c, n.Type)
		ptrs(&c, n.Vars)
	case *ast.MethodDecl:
		ptrs(&c, n.Attributes)
		node(&c, n.Return)
		ptr(&c, n.Interface)
		ptr(&c, n.Name)
		ptrs(&c, n.TypeParams)
		ptrs(&c, n.Params)
		ptrs(&c, n.Constraints)
		ptr(&c, n.Body)
		node(&c, n.ExprBody)
	case *ast.ConstructorDecl:
		ptrs(&c, n.Attributes)
		ptr(&c, n.Name)
		ptrs(&c, n.Params)
		ptr(&c, n.Initializer)
		ptr(&c, n.Body)
		node(&c, n.ExprBody)
	case *ast.ConstructorInitializer:
		ptrs(&c, n.Args)
	case *ast.DestructorDecl:
		ptrs(&c, n.Attributes)
		ptr(&c, n.Name)
		ptr(&c, n.Body)
		node(&c, n.ExprBody)
	case *ast.PropertyDecl:
		ptrs(&c, n.Attributes)
		node(&c, n.Type)
		ptr(&c, n.Interface)
		ptr(&c, n.Name)
		ptrs(&c, n.Accessors)
		node(&c, n.ExprBody)
		node(&c, n.Init)
	case *ast.IndexerDecl:
		ptrs(&c, n.Attributes)
		node(&c, n.Type)
		ptr(&c, n.Interface)
		ptrs(&c, n.Params)
		ptrs(&c, n.Accessors)
		node(&c, n.ExprBody)
	case *ast.EventDecl:
		ptrs(&c, n.Attributes)
		node(&c, n.Type)
		ptr(&c, n.Interface)
		ptr(&c, n.Name)
		ptrs(&c, n.Vars)
		ptrs(&c, n.Accessors)
	case *ast.OperatorDecl:
		ptrs(&c, n.Attributes)
		node(&c, n.Return)
		ptrs(&c, n.Params)
		ptr(&c, n.Body)
		node(&c, n.ExprBody)
	case *ast.Accessor:
		ptrs(&c, n.Attributes)
		ptr(&c, n.Body)
		node(&c, n.ExprBody)
	case *ast.Parameter:
		ptrs(&c, n.Attributes)
		node(&c, n.Type)
		ptr(&c, n.Name)
		node(&c, n.Default)
	case *ast.TypeParameter:
		ptrs(&c, n.Attributes)
		ptr(&c, n.Name)
	case *ast.ConstraintClause:
		ptr(&c, n.Param)
		ptrs(&c, n.Constraints)
	case *ast.Constraint:
		node(&c, n.Type)
	case *ast.AttributeSection:
		ptrs(&c, n.Attrs)
	case *ast.Attribute:
		ptr(&c, n.Name)
		ptrs(&c, n.Args)
	}
	return c
}

type children = []ast.Node

// node appends n unless it is a nil interface.
func node(c *children, n ast.Node) {
	if n != nil {
		*c = append(*c, n)
	}
}

// nodes appends every element of ns.
func nodes[N ast.Node](c *children, ns []N) {
	for _, n := range ns {
		node(c, n)
	}
}

// ptr appends p unless it is nil.
func ptr[T any, P interface {
	*T
	ast.Node
}](c *children, p P) {
	if p != nil {
		*c = append(*c, p)
	}
}

// ptrs appends every non-nil element of ps.
func ptrs[T any, P interface {
	*T
	ast.Node
}](c *children, ps []P) {
	for _, p := range ps {
		ptr(c, p)
	}
}
