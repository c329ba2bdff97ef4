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
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
)

func TestDeclarationKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want ast.Decl
	}{
		{"namespace A.B { }", &ast.NamespaceDecl{}},
		{"namespace A.B;", &ast.NamespaceDecl{}},
		{"public class C { }", &ast.TypeDecl{}},
		{"struct P(int X, int Y);", &ast.TypeDecl{}},
		{"interface I<in T> where T : class { }", &ast.TypeDecl{}},
		{"public record Person(string Name);", &ast.TypeDecl{}},
		{"record struct R { }", &ast.TypeDecl{}},
		{"enum Color : byte { Red, Green = 2, }", &ast.EnumDecl{}},
		{"delegate void Handler(object sender);", &ast.DelegateDecl{}},
		{"private int x, y = 1;", &ast.FieldDecl{}},
		{"public static void Main(string[] args) { }", &ast.MethodDecl{}},
		{"T Get<T>() where T : new() => default;", &ast.MethodDecl{}},
		{"public C(int x) : base(x) { }", &ast.ConstructorDecl{}},
		{"~C() { }", &ast.DestructorDecl{}},
		{"public int X { get; private set; } = 1;", &ast.PropertyDecl{}},
		{"int Y => 2;", &ast.PropertyDecl{}},
		{"public int this[int i] { get => i; }", &ast.IndexerDecl{}},
		{"public event EventHandler Changed;", &ast.EventDecl{}},
		{"event EventHandler E { add { } remove { } }", &ast.EventDecl{}},
		{"public static C operator +(C a, C b) => a;", &ast.OperatorDecl{}},
		{"public static implicit operator int(C c) => 0;", &ast.OperatorDecl{}},
		{"public static bool operator true(C c) => true;", &ast.OperatorDecl{}},
		{"void IDisposable.Dispose() { }", &ast.MethodDecl{}},
		{"int IList<int>.this[int i] => i;", &ast.IndexerDecl{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.IsType(t, tt.want, mustParse(t, declaration, tt.text))
		})
	}
}

func TestTypeDeclaration(t *testing.T) {
	t.Parallel()

	decl := mustParse(t, declaration, `
		[Serializable, Obsolete("old")]
		public sealed partial class Box<T> : Base<T>, IEquatable<Box<T>>
			where T : struct, IComparable<T>
		{
			private readonly T value;
			public Box(T value) { this.value = value; }
			public T Value => value;
			public override string ToString() => value.ToString();
			public class Nested { }
		}`)
	typ, ok := decl.(*ast.TypeDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, ast.Class, typ.Kind)
	assert.Equal(t, "Box", typ.Name.Name)
	assert.Equal(t, []ast.Modifier{ast.Public, ast.Sealed, ast.Partial}, typ.Modifiers)
	require.Len(t, typ.Attributes, 1)
	require.Len(t, typ.Attributes[0].Attrs, 2)
	require.Len(t, typ.TypeParams, 1)
	require.Len(t, typ.Bases, 2)
	assert.Equal(t, "IEquatable<Box<T>>", printer.Type(typ.Bases[1].Type))
	require.Len(t, typ.Constraints, 1)
	require.Len(t, typ.Constraints[0].Constraints, 2)
	assert.Equal(t, "struct", typ.Constraints[0].Constraints[0].Keyword)
	require.Len(t, typ.Members, 5)
	assert.IsType(t, &ast.FieldDecl{}, typ.Members[0])
	assert.IsType(t, &ast.ConstructorDecl{}, typ.Members[1])
	assert.IsType(t, &ast.PropertyDecl{}, typ.Members[2])
	assert.IsType(t, &ast.MethodDecl{}, typ.Members[3])
	assert.IsType(t, &ast.TypeDecl{}, typ.Members[4])
}

func TestRecord(t *testing.T) {
	t.Parallel()

	decl := mustParse(t, declaration, "public record Point(int X, int Y) : Shape(X);")
	typ, ok := decl.(*ast.TypeDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, ast.Record, typ.Kind)
	assert.True(t, typ.HasPrimary)
	require.Len(t, typ.PrimaryParams, 2)
	require.Len(t, typ.Bases, 1)
	assert.Len(t, typ.Bases[0].Args, 1)

	decl = mustParse(t, declaration, "readonly record struct Pair(int A, int B);")
	typ, ok = decl.(*ast.TypeDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, ast.RecordStruct, typ.Kind)
}

func TestMembers(t *testing.T) {
	t.Parallel()

	decl := mustParse(t, declaration, "public int X { get; private set; } = 1;")
	prop, ok := decl.(*ast.PropertyDecl)
	require.True(t, ok, "%T", decl)
	require.Len(t, prop.Accessors, 2)
	assert.Equal(t, ast.Get, prop.Accessors[0].Kind)
	assert.Equal(t, ast.Set, prop.Accessors[1].Kind)
	assert.Equal(t, []ast.Modifier{ast.Private}, prop.Accessors[1].Modifiers)
	assert.Equal(t, "1", printer.Print(prop.Init))

	decl = mustParse(t, declaration, "event EventHandler E { add { } remove { } }")
	event, ok := decl.(*ast.EventDecl)
	require.True(t, ok, "%T", decl)
	require.Len(t, event.Accessors, 2)
	assert.Equal(t, ast.AddAccessor, event.Accessors[0].Kind)
	assert.Equal(t, ast.RemoveAccessor, event.Accessors[1].Kind)
	assert.Equal(t, "remove", event.Accessors[1].Kind.String())

	decl = mustParse(t, declaration, "void IDisposable.Dispose() { }")
	method, ok := decl.(*ast.MethodDecl)
	require.True(t, ok, "%T", decl)
	require.NotNil(t, method.Interface)
	assert.Equal(t, "IDisposable", printer.Type(method.Interface))
	assert.Equal(t, "Dispose", method.Name.Name)

	decl = mustParse(t, declaration, "public C() : this(0) { }")
	ctor, ok := decl.(*ast.ConstructorDecl)
	require.True(t, ok, "%T", decl)
	require.NotNil(t, ctor.Initializer)
	assert.False(t, ctor.Initializer.Base)

	decl = mustParse(t, declaration, "public static Vec operator -(Vec v) => v;")
	op, ok := decl.(*ast.OperatorDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, "-", op.Op)
	require.Len(t, op.Params, 1)

	decl = mustParse(t, declaration, "public static explicit operator checked byte(Vec v) => 0;")
	op, ok = decl.(*ast.OperatorDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, "explicit", op.Conversion)
	assert.True(t, op.Checked)
	assert.Equal(t, "byte", printer.Type(op.Return))

	decl = mustParse(t, declaration, "static int Sum(this int[] xs, params int[] more) => 0;")
	method, ok = decl.(*ast.MethodDecl)
	require.True(t, ok, "%T", decl)
	require.Len(t, method.Params, 2)
	assert.Equal(t, []string{"this"}, method.Params[0].Modifiers)
	assert.Equal(t, []string{"params"}, method.Params[1].Modifiers)
}

func TestModifierOrder(t *testing.T) {
	t.Parallel()

	decl := mustParse(t, declaration, "static public async Task Run() { }")
	method, ok := decl.(*ast.MethodDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, []ast.Modifier{ast.Public, ast.Static, ast.Async}, method.Modifiers)

	// A contextual modifier that is not followed by a name is a name.
	decl = mustParse(t, declaration, "int async = 1;")
	field, ok := decl.(*ast.FieldDecl)
	require.True(t, ok, "%T", decl)
	assert.Empty(t, field.Modifiers)
	assert.Equal(t, "async", field.Vars[0].Name.Name)

	decl = mustParse(t, declaration, "partial void Hook();")
	method, ok = decl.(*ast.MethodDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, []ast.Modifier{ast.Partial}, method.Modifiers)
	assert.Nil(t, method.Body)
}

func TestEnum(t *testing.T) {
	t.Parallel()

	decl := mustParse(t, declaration, "[Flags] enum Perm : byte { None = 0, Read = 1 << 0, Write = 1 << 1, }")
	enum, ok := decl.(*ast.EnumDecl)
	require.True(t, ok, "%T", decl)
	assert.Equal(t, "byte", printer.Type(enum.Base))
	require.Len(t, enum.Members, 3)
	assert.Equal(t, "ShiftLeft(1, 1)", printer.Print(enum.Members[2].Value))
}

func TestCompilationUnit(t *testing.T) {
	t.Parallel()

	cu := mustParse(t, unit, `
		extern alias Legacy;
		using System;
		using static System.Math;
		using Json = System.Text.Json;
		global using System.Linq;
		[assembly: InternalsVisibleTo("Tests")]

		namespace App;

		public class Program
		{
			public static void Main() => Console.WriteLine(Max(1, 2));
		}`)
	require.Len(t, cu.Externs, 1)
	require.Len(t, cu.Usings, 4)
	assert.True(t, cu.Usings[1].Static)
	assert.Equal(t, "Json", cu.Usings[2].Alias.Name)
	assert.True(t, cu.Usings[3].Global)
	require.Len(t, cu.Attributes, 1)
	assert.Equal(t, "assembly", cu.Attributes[0].Target)
	require.Len(t, cu.Members, 1)
	ns, ok := cu.Members[0].(*ast.NamespaceDecl)
	require.True(t, ok, "%T", cu.Members[0])
	assert.True(t, ns.FileScoped)
	require.Len(t, ns.Members, 1)
}

func TestTopLevelStatements(t *testing.T) {
	t.Parallel()

	cu := mustParse(t, unit, `
		using System;

		var name = args[0];
		Console.WriteLine($"Hello, {name}!");
		static int Square(int x) => x * x;
		using var scope = Begin();

		record Greeting(string Text);`)
	require.Len(t, cu.Usings, 1)
	require.Len(t, cu.Stmts, 4)
	assert.IsType(t, &ast.LocalDeclStmt{}, cu.Stmts[0])
	assert.IsType(t, &ast.ExprStmt{}, cu.Stmts[1])
	assert.IsType(t, &ast.LocalFuncStmt{}, cu.Stmts[2])
	assert.IsType(t, &ast.LocalDeclStmt{}, cu.Stmts[3])
	require.Len(t, cu.Members, 1)
	assert.IsType(t, &ast.TypeDecl{}, cu.Members[0])
}

func TestDeclarationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		stage string
	}{
		{"class C { int x }", "class declaration"},
		{"enum E { A B }", "enum declaration"},
		{"namespace N { class }", "namespace declaration"},
		{"interface I { void M( }", "interface declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			err := parseErr(t, declaration, tt.text)
			assert.True(t, err.Fatal, "%s", err)
			assert.Contains(t, err.Stages(), tt.stage)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	var r report.Report
	cu := parser.Parse(source.NewFile("ok.cs", "class C { }"), &r)
	require.NotNil(t, cu)
	assert.Empty(t, r)

	cu = parser.Parse(source.NewFile("bad.cs", "class C {"), &r)
	assert.Nil(t, cu)
	require.Len(t, r, 1)
	assert.Equal(t, report.Error, r[0].Level)
	assert.Equal(t, "bad.cs", r[0].Primary().Path())
}
