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

package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/ast/printer"
	"github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/source"
)

func parse[T any](t *testing.T, p combinator.Parser[T], text string) T {
	t.Helper()
	v, err := parser.Complete(p, source.NewFile("test.cs", text))
	require.Nil(t, err, "%v", err)
	return v
}

func TestPrint(t *testing.T) {
	t.Parallel()

	expr := combinator.Parser[ast.Expr](parser.Expression)
	tests := []struct {
		text, want string
	}{
		{"x", "x"},
		{"@class", "@class"},
		{`"s"`, `"s"`},
		{"a + b", "Add(a, b)"},
		{"a = ref b", "AssignRef(a, b)"},
		{"x?.y", "Member(x, ?.y)"},
		{"global::A<int>", "global::A<int>"},
		{"int.Parse(s)", "Invocation(func: Member(int, .Parse), args: [Argument(value: s)])"},
		{"F(ref x)", `Invocation(func: F, args: [Argument(modifier: "ref", value: x)])`},
		{"typeof(int[,])", "Typeof(type: int[,])"},
		{"x is null", "IsPattern(x: x, pattern: ConstantPattern(value: null))"},
		{"async () => 1", "Lambda(async, parenthesized, body: 1)"},
		{"(a, b: 2)", "Tuple(elems: [Argument(value: a), Argument(name: b, value: 2)])"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, printer.Print(parse(t, expr, tt.text)))
		})
	}

	assert.Equal(t, "nil", printer.Print(nil))
	var lit *ast.Literal
	assert.Equal(t, "nil", printer.Print(lit))
}

func TestType(t *testing.T) {
	t.Parallel()

	typ := combinator.Parser[ast.Type](parser.Type)
	for _, text := range []string{
		"int",
		"List<int>",
		"global::System.Int32",
		"int[]",
		"int[,,]",
		"string?",
		"int*",
		"(int, string Name)",
		"A.B<C>.D",
		"delegate* unmanaged[Cdecl]<int, void>",
	} {
		assert.Equal(t, text, printer.Type(parse(t, typ, text)))
	}
}

func TestYAML(t *testing.T) {
	t.Parallel()

	x := parse(t, combinator.Parser[ast.Expr](parser.Expression), "1 + x")

	out, err := printer.YAML(x, printer.YAMLOptions{})
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, yaml.Unmarshal(out, &tree))
	assert.Equal(t, "BinaryExpr", tree["node"])
	assert.Equal(t, "Add", tree["op"])
	assert.NotContains(t, tree, "span")

	lhs, ok := tree["x"].(map[string]any)
	require.True(t, ok, "%T", tree["x"])
	assert.Equal(t, "Literal", lhs["node"])
	assert.Equal(t, "int", lhs["kind"])
	assert.Equal(t, "1", lhs["raw"])

	rhs, ok := tree["y"].(map[string]any)
	require.True(t, ok, "%T", tree["y"])
	assert.Equal(t, "NameExpr", rhs["node"])
	assert.Equal(t, "x", rhs["name"])

	out, err = printer.YAML(x, printer.YAMLOptions{Spans: true})
	require.NoError(t, err)
	tree = nil
	require.NoError(t, yaml.Unmarshal(out, &tree))
	assert.Equal(t, []any{0, 5}, tree["span"])
	rhs, ok = tree["y"].(map[string]any)
	require.True(t, ok, "%T", tree["y"])
	assert.Equal(t, []any{4, 5}, rhs["span"])
}

func TestYAMLDeterministic(t *testing.T) {
	t.Parallel()

	cu := parse(t, combinator.Parser[*ast.CompilationUnit](parser.CompilationUnit),
		"class C { int F(int x) => x switch { 0 => 1, _ => x }; }")
	first, err := printer.YAML(cu, printer.YAMLOptions{Spans: true})
	require.NoError(t, err)
	second, err := printer.YAML(cu, printer.YAMLOptions{Spans: true})
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
