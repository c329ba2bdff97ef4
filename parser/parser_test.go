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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/ast/printer"
	"github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/source"
	"github.com/bufbuild/bsharp/walk"
)

const program = `
using System;
using System.Collections.Generic;

namespace Shapes
{
    public abstract record Shape
    {
        public abstract double Area { get; }
    }

    public sealed record Circle(double Radius) : Shape
    {
        public override double Area => Math.PI * Radius * Radius;
    }

    public static class Report
    {
        // Prints every shape larger than min.
        public static int Print(IEnumerable<Shape> shapes, double min = 0)
        {
            var count = 0;
            foreach (var shape in shapes)
            {
                if (shape is Circle { Radius: > 1 } c && c.Area >= min)
                {
                    Console.WriteLine($"circle {c.Radius:F2}");
                    count++;
                }
            }
            return count;
        }
    }
}
`

func TestProgram(t *testing.T) {
	t.Parallel()

	cu := mustParse(t, unit, program)
	require.Len(t, cu.Members, 1)
	ns, ok := cu.Members[0].(*ast.NamespaceDecl)
	require.True(t, ok)
	assert.Len(t, ns.Members, 3)
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	file := source.NewFile("program.cs", program)
	first, err := parser.Complete(unit, file)
	require.Nil(t, err)
	second, err := parser.Complete(unit, file)
	require.Nil(t, err)
	assert.Equal(t, printer.Print(first), printer.Print(second))
}

// Every node's span must lie within its parent's, and must not begin or end
// with whitespace. The literal text of an interpolated string is exempt.
func TestSpansNest(t *testing.T) {
	t.Parallel()

	cu := mustParse(t, unit, program)
	var stack []source.Span
	err := walk.Walk(cu, func(n ast.Node) error {
		span := n.Span()
		if !span.IsZero() {
			text := span.Text()
			if part, ok := n.(*ast.InterpolatedPart); !ok || part.Expr != nil {
				assert.Equal(t, strings.TrimSpace(text), text, "%T at %v", n, span)
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				assert.LessOrEqual(t, parent.Start, span.Start, "%T at %v", n, span)
				assert.GreaterOrEqual(t, parent.End, span.End, "%T at %v", n, span)
			}
		}
		stack = append(stack, span)
		return nil
	}, func(ast.Node) error {
		stack = stack[:len(stack)-1]
		return nil
	})
	require.NoError(t, err)
}

// Malformed input must always produce an error rather than hang or panic.
func TestMalformed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"{",
		"}",
		"class",
		"class C {",
		"namespace",
		"((((",
		"a.",
		"a?.",
		"x => ",
		"new",
		"new int[",
		"from x",
		"$\"{",
		"@",
		"[assembly:",
		"using",
		"case 1:",
		"int x = ;",
		"if (a) else b;",
		"a ? : b;",
		"switch (x) { case 1 }",
	}
	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			if text == "" {
				cu := mustParse(t, unit, text)
				assert.Empty(t, cu.Members)
				return
			}
			err := parseErr(t, unit, text)
			assert.NotEmpty(t, err.Error())
			assert.NotEmpty(t, err.Expectations())
		})
	}
}

func TestEntryPoints(t *testing.T) {
	t.Parallel()

	ty := mustParse(t, typ, "Dictionary<string, List<int>>[]?")
	assert.Equal(t, "Dictionary<string, List<int>>[]?", printer.Type(ty))

	ty = mustParse(t, typ, "(int Count, string Name)")
	assert.IsType(t, &ast.TupleType{}, ty)

	ty = mustParse(t, typ, "delegate* unmanaged<int, void>")
	assert.IsType(t, &ast.FunctionPointerType{}, ty)

	ty = mustParse(t, typ, "int*[]")
	arr, ok := ty.(*ast.ArrayType)
	require.True(t, ok, "%T", ty)
	assert.IsType(t, &ast.PointerType{}, arr.Elem)

	// Trailing input is rejected by Complete but not by the entry point.
	file := source.NewFile("test.cs", "a b")
	rest, x, err := parser.Expression(combinator.NewInput(file))
	require.Nil(t, err)
	assert.Equal(t, "a", printer.Print(x))
	assert.Equal(t, "b", strings.TrimSpace(rest.Rest()))

	_, cerr := parser.Complete(expression, file)
	require.NotNil(t, cerr)
	assert.Equal(t, 2, cerr.Deepest().Span.Start)
}

func TestTriviaIgnored(t *testing.T) {
	t.Parallel()

	unit := combinator.Parser[*ast.CompilationUnit](parser.CompilationUnit)
	tests := []struct{ plain, spaced string }{
		{"x=a+b*c;", "x /* assign */ = a\n  + b * // mul\n c ;"},
		{"class C{int x;void M(){}}", "class C\n{\n    // field\n    int x;\n\n    void M() { }\n}\n"},
		{"if(a)b();else{c();}", "#region r\nif (a)\n    b();\nelse\n{\n    c();\n}\n#endregion\n"},
	}

	for _, tt := range tests {
		t.Run(tt.plain, func(t *testing.T) {
			t.Parallel()
			want := mustParse(t, unit, tt.plain)
			got := mustParse(t, unit, tt.spaced)
			if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(ast.Range{})); diff != "" {
				t.Errorf("trees differ (-plain +spaced):\n%s", diff)
			}
		})
	}
}
