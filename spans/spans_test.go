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

package spans_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
	"github.com/bufbuild/bsharp/spans"
	"github.com/bufbuild/bsharp/walk"
)

const shapes = `namespace Acme.Shapes
{
    public class Circle
    {
        public Circle(double r) { R = r; }
        public double R { get; }
        public double Area() => R * R;
        public double Area(int scale) => scale;
        class Inner { int x, y; }
    }
    enum Color { Red, Green }
}
`

func build(t *testing.T, text string) (*spans.Index, *ast.CompilationUnit) {
	t.Helper()
	var r report.Report
	cu := parser.Parse(source.NewFile("shapes.cs", text), &r)
	require.Empty(t, r)
	require.NotNil(t, cu)
	return spans.Build(cu), cu
}

func TestAt(t *testing.T) {
	t.Parallel()

	idx, cu := build(t, shapes)
	assert.Positive(t, idx.Len())
	assert.LessOrEqual(t, idx.Len(), walk.Count(cu))

	offset := strings.Index(shapes, "R * R")
	stack := idx.At(offset)
	require.NotEmpty(t, stack)
	assert.Same(t, cu, stack[0])
	_, ok := stack[1].(*ast.NamespaceDecl)
	assert.True(t, ok, "%T", stack[1])

	ident, ok := idx.Innermost(offset).(*ast.Ident)
	require.True(t, ok, "%T", idx.Innermost(offset))
	assert.Equal(t, "R", ident.Name)

	for i := 1; i < len(stack); i++ {
		outer, inner := stack[i-1].Span(), stack[i].Span()
		assert.LessOrEqual(t, outer.Start, inner.Start)
		assert.GreaterOrEqual(t, outer.End, inner.End)
	}

	method, ok := spans.Enclosing[*ast.MethodDecl](idx, offset)
	require.True(t, ok)
	assert.Empty(t, method.Params)
	typ, ok := spans.Enclosing[*ast.TypeDecl](idx, offset)
	require.True(t, ok)
	assert.Equal(t, "Circle", typ.Name.Name)
	_, ok = spans.Enclosing[*ast.EnumDecl](idx, offset)
	assert.False(t, ok)

	assert.Nil(t, idx.Innermost(-1))
	assert.Nil(t, idx.Innermost(len(shapes)))
	assert.Empty(t, idx.At(len(shapes)+10))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	idx, _ := build(t, shapes)

	one := func(key string) ast.Node {
		t.Helper()
		nodes := idx.Lookup(key)
		require.Len(t, nodes, 1, key)
		return nodes[0]
	}

	assert.IsType(t, &ast.NamespaceDecl{}, one("namespace::Acme.Shapes"))
	assert.IsType(t, &ast.TypeDecl{}, one("type::Acme.Shapes.Circle"))
	assert.IsType(t, &ast.ConstructorDecl{}, one("ctor::Acme.Shapes.Circle"))
	assert.IsType(t, &ast.PropertyDecl{}, one("property::Acme.Shapes.Circle::R"))
	assert.IsType(t, &ast.TypeDecl{}, one("type::Acme.Shapes.Circle.Inner"))
	assert.IsType(t, &ast.FieldDecl{}, one("field::Acme.Shapes.Circle.Inner::y"))
	assert.IsType(t, &ast.EnumDecl{}, one("type::Acme.Shapes.Color"))
	assert.IsType(t, &ast.EnumMember{}, one("field::Acme.Shapes.Color::Green"))

	overloads := idx.Lookup("method::Acme.Shapes.Circle::Area")
	require.Len(t, overloads, 2)
	assert.Less(t, overloads[0].Span().Start, overloads[1].Span().Start)
	assert.Equal(t, "public double Area() => R * R;", overloads[0].Span().Text())

	assert.Empty(t, idx.Lookup("type::Circle"))

	var keys []string
	for key := range idx.Declarations() {
		keys = append(keys, key)
	}
	assert.Equal(t, []string{
		"ctor::Acme.Shapes.Circle",
		"field::Acme.Shapes.Circle.Inner::x",
		"field::Acme.Shapes.Circle.Inner::y",
		"field::Acme.Shapes.Color::Green",
		"field::Acme.Shapes.Color::Red",
		"method::Acme.Shapes.Circle::Area",
		"namespace::Acme.Shapes",
		"property::Acme.Shapes.Circle::R",
		"type::Acme.Shapes.Circle",
		"type::Acme.Shapes.Circle.Inner",
		"type::Acme.Shapes.Color",
	}, keys)
}

func TestFileScopedNamespace(t *testing.T) {
	t.Parallel()

	idx, _ := build(t, "namespace A.B;\n\nclass C { void M() { } event System.Action E; }\n")
	assert.Len(t, idx.Lookup("namespace::A.B"), 1)
	assert.Len(t, idx.Lookup("type::A.B.C"), 1)
	assert.Len(t, idx.Lookup("method::A.B.C::M"), 1)
	assert.Len(t, idx.Lookup("event::A.B.C::E"), 1)
}
