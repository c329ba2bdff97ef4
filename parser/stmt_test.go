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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/ast/printer"
)

func TestStatementKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want ast.Stmt
	}{
		{"{ }", &ast.BlockStmt{}},
		{";", &ast.EmptyStmt{}},
		{"x++;", &ast.ExprStmt{}},
		{"int x = 1, y;", &ast.LocalDeclStmt{}},
		{"const int N = 4;", &ast.LocalDeclStmt{}},
		{"var (a, b) = t;", &ast.ExprStmt{}},
		{"List<int> xs = new();", &ast.LocalDeclStmt{}},
		{"int[] xs = { 1, 2 };", &ast.LocalDeclStmt{}},
		{"ref int r = ref x;", &ast.LocalDeclStmt{}},
		{"int Add(int a, int b) => a + b;", &ast.LocalFuncStmt{}},
		{"static async Task<int> F() { return 1; }", &ast.LocalFuncStmt{}},
		{"if (a) b(); else c();", &ast.IfStmt{}},
		{"while (true) { break; }", &ast.WhileStmt{}},
		{"do { continue; } while (x);", &ast.DoStmt{}},
		{"for (int i = 0; i < n; i++) { }", &ast.ForStmt{}},
		{"for (;;) ;", &ast.ForStmt{}},
		{"foreach (var x in xs) Use(x);", &ast.ForeachStmt{}},
		{"await foreach (var x in xs) { }", &ast.ForeachStmt{}},
		{"switch (x) { case 1: break; default: return; }", &ast.SwitchStmt{}},
		{"try { } catch (E e) when (e.Code == 1) { } finally { }", &ast.TryStmt{}},
		{"using (var f = Open()) { }", &ast.UsingStmt{}},
		{"using (f) Use(f);", &ast.UsingStmt{}},
		{"using var f = Open();", &ast.LocalDeclStmt{}},
		{"await using var f = Open();", &ast.LocalDeclStmt{}},
		{"lock (this) { }", &ast.LockStmt{}},
		{"fixed (int* p = &x) { }", &ast.FixedStmt{}},
		{"unsafe { }", &ast.UnsafeStmt{}},
		{"checked { x++; }", &ast.CheckedStmt{}},
		{"unchecked(x + 1);", &ast.ExprStmt{}},
		{"goto done;", &ast.GotoStmt{}},
		{"goto case 1;", &ast.GotoStmt{}},
		{"goto default;", &ast.GotoStmt{}},
		{"done: return;", &ast.LabeledStmt{}},
		{"yield return x;", &ast.YieldStmt{}},
		{"yield break;", &ast.YieldStmt{}},
		{"yield = 1;", &ast.ExprStmt{}},
		{"return;", &ast.ReturnStmt{}},
		{"throw;", &ast.ThrowStmt{}},
		{"throw new E();", &ast.ThrowStmt{}},
		{"await Task.Delay(1);", &ast.ExprStmt{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.IsType(t, tt.want, mustParse(t, statement, tt.text))
		})
	}
}

func TestBlock(t *testing.T) {
	t.Parallel()

	stmt := mustParse(t, statement, "{ a; b; }")
	block, ok := stmt.(*ast.BlockStmt)
	require.True(t, ok, "%T", stmt)
	require.Len(t, block.Stmts, 2)
	assert.Equal(t, 0, block.Span().Start)
	assert.Equal(t, 9, block.Span().End)

	err := parseErr(t, statement, "{ a;")
	assert.True(t, err.Fatal)
	assert.Equal(t, 4, err.Deepest().Span.Start)
	assert.Contains(t, err.Error(), "end of input")
	assert.Contains(t, err.Stages(), "block")
}

func TestLocalDeclaration(t *testing.T) {
	t.Parallel()

	stmt := mustParse(t, statement, "var x = 1, y = 2;")
	decl, ok := stmt.(*ast.LocalDeclStmt)
	require.True(t, ok, "%T", stmt)
	assert.IsType(t, &ast.VarType{}, decl.Type)
	require.Len(t, decl.Vars, 2)
	assert.Equal(t, "y", decl.Vars[1].Name.Name)
	assert.Equal(t, "2", printer.Print(decl.Vars[1].Init))

	stmt = mustParse(t, statement, "const int N = 4;")
	decl, ok = stmt.(*ast.LocalDeclStmt)
	require.True(t, ok, "%T", stmt)
	assert.True(t, decl.Const)

	stmt = mustParse(t, statement, "await using var f = Open();")
	decl, ok = stmt.(*ast.LocalDeclStmt)
	require.True(t, ok, "%T", stmt)
	assert.True(t, decl.Using)
	assert.True(t, decl.Await)

	// A generic type is a declaration, a comparison chain is an expression.
	stmt = mustParse(t, statement, "Dictionary<string, int> counts = new();")
	assert.IsType(t, &ast.LocalDeclStmt{}, stmt)
	stmt = mustParse(t, statement, "a < b;")
	assert.IsType(t, &ast.ExprStmt{}, stmt)
	stmt = mustParse(t, statement, "a * b;")
	decl, ok = stmt.(*ast.LocalDeclStmt)
	require.True(t, ok, "a * b; declares a pointer: %T", stmt)
	assert.Equal(t, "a*", printer.Type(decl.Type))
	assert.Equal(t, "b", decl.Vars[0].Name.Name)
	stmt = mustParse(t, statement, "a * b + c;")
	assert.IsType(t, &ast.ExprStmt{}, stmt)
	stmt = mustParse(t, statement, "x = a * b;")
	assert.IsType(t, &ast.ExprStmt{}, stmt)
}

func TestIf(t *testing.T) {
	t.Parallel()

	stmt := mustParse(t, statement, "if (a) if (b) x(); else y();")
	outer, ok := stmt.(*ast.IfStmt)
	require.True(t, ok, "%T", stmt)
	assert.Nil(t, outer.Else)
	inner, ok := outer.Then.(*ast.IfStmt)
	require.True(t, ok, "%T", outer.Then)
	assert.NotNil(t, inner.Else)
}

func TestFor(t *testing.T) {
	t.Parallel()

	stmt := mustParse(t, statement, "for (int i = 0, j = 1; i < j; i++, j--) { }")
	loop, ok := stmt.(*ast.ForStmt)
	require.True(t, ok, "%T", stmt)
	require.NotNil(t, loop.Decl)
	assert.Len(t, loop.Decl.Vars, 2)
	assert.Equal(t, "Less(i, j)", printer.Print(loop.Cond))
	assert.Len(t, loop.Update, 2)

	stmt = mustParse(t, statement, "for (i = 0; ; ) ;")
	loop, ok = stmt.(*ast.ForStmt)
	require.True(t, ok, "%T", stmt)
	assert.Nil(t, loop.Decl)
	assert.Len(t, loop.Init, 1)
	assert.Nil(t, loop.Cond)
	assert.IsType(t, &ast.EmptyStmt{}, loop.Body)
}

func TestForeach(t *testing.T) {
	t.Parallel()

	stmt := mustParse(t, statement, "foreach (var (k, v) in pairs) { }")
	loop, ok := stmt.(*ast.ForeachStmt)
	require.True(t, ok, "%T", stmt)
	assert.IsType(t, &ast.VarType{}, loop.Type)
	assert.IsType(t, &ast.ParenDesignation{}, loop.Designation)
	assert.Equal(t, "pairs", printer.Print(loop.In))

	stmt = mustParse(t, statement, "foreach ((a, b) in pairs) { }")
	loop, ok = stmt.(*ast.ForeachStmt)
	require.True(t, ok, "%T", stmt)
	assert.Nil(t, loop.Type)
	assert.IsType(t, &ast.TupleExpr{}, loop.Target)
}

func TestSwitchStatement(t *testing.T) {
	t.Parallel()

	stmt := mustParse(t, statement, `
		switch (shape) {
		case 0:
		case 1:
			Small();
			break;
		case Circle c when c.Radius > 10:
			Big(c);
			break;
		case > 100:
			break;
		default:
			return;
		}`)
	sw, ok := stmt.(*ast.SwitchStmt)
	require.True(t, ok, "%T", stmt)
	assert.Equal(t, "shape", printer.Print(sw.X))
	require.Len(t, sw.Sections, 4)

	first := sw.Sections[0]
	require.Len(t, first.Labels, 2)
	assert.IsType(t, &ast.CaseLabel{}, first.Labels[0])
	assert.Len(t, first.Stmts, 2)

	guarded, ok := sw.Sections[1].Labels[0].(*ast.PatternLabel)
	require.True(t, ok, "%T", sw.Sections[1].Labels[0])
	assert.IsType(t, &ast.TypePattern{}, guarded.Pattern)
	assert.NotNil(t, guarded.When)

	assert.IsType(t, &ast.PatternLabel{}, sw.Sections[2].Labels[0])
	assert.IsType(t, &ast.DefaultLabel{}, sw.Sections[3].Labels[0])
}

func TestTry(t *testing.T) {
	t.Parallel()

	stmt := mustParse(t, statement, "try { } catch (IOException e) { } catch { } finally { }")
	try, ok := stmt.(*ast.TryStmt)
	require.True(t, ok, "%T", stmt)
	require.Len(t, try.Catches, 2)
	assert.Equal(t, "e", try.Catches[0].Name.Name)
	assert.Nil(t, try.Catches[1].Type)
	assert.NotNil(t, try.Finally)

	err := parseErr(t, statement, "try { }")
	assert.True(t, err.Fatal)
}

func TestGoto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		kind ast.GotoKind
	}{
		{"goto done;", ast.GotoLabel},
		{"goto case 1;", ast.GotoCase},
		{"goto default;", ast.GotoDefault},
	}
	for _, tt := range tests {
		stmt := mustParse(t, statement, tt.text)
		g, ok := stmt.(*ast.GotoStmt)
		require.True(t, ok, "%T", stmt)
		assert.Equal(t, tt.kind, g.Kind, tt.text)
	}
}

func TestStatementErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		stages []string
	}{
		{"if (a", []string{"if statement"}},
		{"while (a) ", []string{"while statement"}},
		{"for (int i = 0; i < n", []string{"for statement"}},
		{"return x", []string{"return statement"}},
		{"switch (x) { case : }", []string{"switch statement"}},
		{"do x(); while", []string{"do statement"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			err := parseErr(t, statement, tt.text)
			assert.True(t, err.Fatal, "%s", err)
			stages := err.Stages()
			for _, stage := range tt.stages {
				assert.Contains(t, stages, stage)
			}
		})
	}
}
