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

func TestPatternKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want ast.Pattern
	}{
		{"_", &ast.DiscardPattern{}},
		{"var x", &ast.VarPattern{}},
		{"var (a, b)", &ast.VarPattern{}},
		{"string s", &ast.TypePattern{}},
		{"int", &ast.TypePattern{}},
		{"int[]", &ast.TypePattern{}},
		{"List<int>", &ast.TypePattern{}},
		{"Color.Red", &ast.ConstantPattern{}},
		{"42", &ast.ConstantPattern{}},
		{"-1", &ast.ConstantPattern{}},
		{`"text"`, &ast.ConstantPattern{}},
		{"null", &ast.ConstantPattern{}},
		{">= 10", &ast.RelationalPattern{}},
		{"not null", &ast.NotPattern{}},
		{"(> 0)", &ast.ParenPattern{}},
		{"(1, _)", &ast.TuplePattern{}},
		{"Point(0, var y) p", &ast.PositionalPattern{}},
		{"Point { X: 0, Y: > 1 }", &ast.PropertyPattern{}},
		{"{ Length: 0 }", &ast.PropertyPattern{}},
		{"{ A.B: 1, }", &ast.PropertyPattern{}},
		{"[1, .., var last]", &ast.ListPattern{}},
		{"[]", &ast.ListPattern{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.IsType(t, tt.want, mustParse(t, pattern, tt.text))
		})
	}
}

func TestPatternCombinators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{
			"> 0 and < 10",
			"And(RelationalPattern(op: Greater, value: 0), RelationalPattern(op: Less, value: 10))",
		},
		{
			"1 or 2 and 3",
			"Or(ConstantPattern(value: 1), And(ConstantPattern(value: 2), ConstantPattern(value: 3)))",
		},
		{
			"not 1 or 2",
			"Or(NotPattern(x: ConstantPattern(value: 1)), ConstantPattern(value: 2))",
		},
		{
			"< 1 << 2",
			"RelationalPattern(op: Less, value: ShiftLeft(1, 2))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, printer.Print(mustParse(t, pattern, tt.text)))
		})
	}
}

func TestRecursivePattern(t *testing.T) {
	t.Parallel()

	p := mustParse(t, pattern, "Point(var x, 0) { Z: 1 } pt")
	pos, ok := p.(*ast.PositionalPattern)
	require.True(t, ok, "%T", p)
	assert.Equal(t, "Point", printer.Type(pos.Type))
	require.Len(t, pos.Subpatterns, 2)
	require.Len(t, pos.Properties, 1)
	assert.Equal(t, "Z", printer.Print(pos.Properties[0].Member))
	assert.Equal(t, "pt", pos.Designation.(*ast.SingleDesignation).Name.Name)

	p = mustParse(t, pattern, "{ Inner.Value: > 0 }")
	prop, ok := p.(*ast.PropertyPattern)
	require.True(t, ok, "%T", p)
	assert.Nil(t, prop.Type)
	require.Len(t, prop.Subpatterns, 1)
	assert.Equal(t, "Member(Inner, .Value)", printer.Print(prop.Subpatterns[0].Member))

	p = mustParse(t, pattern, "[var first, .. var rest]")
	list, ok := p.(*ast.ListPattern)
	require.True(t, ok, "%T", p)
	require.Len(t, list.Elems, 2)
	slice, ok := list.Elems[1].(*ast.SlicePattern)
	require.True(t, ok, "%T", list.Elems[1])
	assert.IsType(t, &ast.VarPattern{}, slice.Pattern)
}

func TestSwitchExpression(t *testing.T) {
	t.Parallel()

	x := mustParse(t, expression, `shape switch
	{
		Circle { Radius: var r } => r * r,
		Square s when s.Side > 0 => s.Side,
		null => throw new ArgumentNullException(),
		_ => 0,
	}`)
	sw, ok := x.(*ast.SwitchExpr)
	require.True(t, ok, "%T", x)
	require.Len(t, sw.Arms, 4)
	assert.IsType(t, &ast.PropertyPattern{}, sw.Arms[0].Pattern)
	assert.NotNil(t, sw.Arms[1].When)
	assert.IsType(t, &ast.ThrowExpr{}, sw.Arms[2].Value)
	assert.IsType(t, &ast.DiscardPattern{}, sw.Arms[3].Pattern)
}

func TestPatternErrors(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"> ",
		"1 and",
		"not",
		"{ X: }",
		"Point(1, ",
		"[1, ..",
	} {
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			err := parseErr(t, pattern, text)
			assert.True(t, err.Fatal, "%s", err)
		})
	}
}
