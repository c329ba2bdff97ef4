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

package combinator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/source"
)

func input(text string) c.Input {
	return c.NewInput(source.NewFile("test.cs", text))
}

func TestKeywordBoundary(t *testing.T) {
	t.Parallel()

	is := c.Keyword("is")

	_, _, err := is(input("isValid"))
	require.NotNil(t, err)
	assert.False(t, err.Fatal)

	out, v, err := is(input("  is x"))
	require.Nil(t, err)
	assert.Equal(t, "is", v)
	assert.Equal(t, "x", out.Rest())

	out, _, err = is(input("is(x)"))
	require.Nil(t, err)
	assert.Equal(t, "(x)", out.Rest())
}

func TestPunctLookahead(t *testing.T) {
	t.Parallel()

	amp := c.Punct("&", "&", "=")

	_, _, err := amp(input("&&b"))
	assert.NotNil(t, err)
	_, _, err = amp(input("&=b"))
	assert.NotNil(t, err)

	out, _, err := amp(input("& -b"))
	require.Nil(t, err)
	assert.Equal(t, "-b", out.Rest())
}

func TestTrivia(t *testing.T) {
	t.Parallel()

	text := "  // line\n  /* block\n */\n#region foo\n\tx #y"
	out := c.SkipTrivia(input(text))
	assert.Equal(t, "x #y", out.Rest())

	// A '#' that does not start a line is not a directive.
	out = c.SkipTrivia(out.Advance(2))
	assert.Equal(t, "#y", out.Rest())
}

func TestSpanTo(t *testing.T) {
	t.Parallel()

	in := input("  foo  bar  ;")
	p := c.Preceded(c.Keyword("foo"), c.Keyword("bar"))
	out, _, err := p(in)
	require.Nil(t, err)
	assert.Equal(t, ";", out.Rest())
	assert.Equal(t, "foo  bar", in.SpanTo(out).Text())
}

func TestFailPosition(t *testing.T) {
	t.Parallel()

	in := input("\"line\n  break\"").Advance(5)
	assert.Equal(t, 5, c.FailAt(in, "closing '\"'").Span.Start)
	assert.Equal(t, 8, c.Fail(in, "closing '\"'").Span.Start)
	assert.False(t, c.FailAt(in, "x").Fatal)
}

func TestAltAndCut(t *testing.T) {
	t.Parallel()

	ifStmt := c.Preceded(c.Keyword("if"), c.Cut(c.Punct("(")))
	other := c.Keyword("if")
	p := c.Alt(ifStmt, other)

	_, _, err := p(input("if x"))
	require.NotNil(t, err)
	assert.True(t, err.Fatal)
	assert.Equal(t, "'('", err.Deepest().Expected)
	assert.Equal(t, 3, err.Deepest().Span.Start)

	q := c.Alt(c.Keyword("while"), c.Keyword("do"))
	_, _, err = q(input("for"))
	require.NotNil(t, err)
	assert.False(t, err.Fatal)
	assert.Equal(t, c.Alternatives, err.Kind)
	assert.Equal(t, []string{"'while'", "'do'"}, err.Expectations())
	assert.Equal(t, "unexpected 'for', expected 'while' or 'do'", err.Error())
}

func TestErrorStages(t *testing.T) {
	t.Parallel()

	cond := c.Named("if condition", c.Delimited(c.Punct("("), c.Keyword("x"), c.Cut(c.Punct(")"))))
	stmt := c.Named("if statement", c.Preceded(c.Keyword("if"), c.Cut(cond)))
	p := c.Alt(stmt, c.Keyword("y"))

	_, _, err := p(input("if (x {"))
	require.NotNil(t, err)
	assert.True(t, err.Fatal)
	assert.Equal(t, []string{"if statement", "if condition"}, err.Stages())
	assert.Equal(t, "'{'", err.Error()[len("unexpected "):len("unexpected '{'")])
	assert.Equal(t, source.Location{Offset: 6, Line: 1, Column: 7}, err.Location())
}

func TestDeepestAlternative(t *testing.T) {
	t.Parallel()

	long := c.Preceded(c.Keyword("a"), c.Preceded(c.Keyword("b"), c.Keyword("c")))
	short := c.Preceded(c.Keyword("a"), c.Keyword("x"))
	p := c.Alt(short, long)

	_, _, err := p(input("a b d"))
	require.NotNil(t, err)
	assert.Equal(t, "'c'", err.Deepest().Expected)
	assert.Equal(t, 4, err.Deepest().Span.Start)
}

func TestMany0Progress(t *testing.T) {
	t.Parallel()

	_, _, err := c.Many0(c.Opt(c.Keyword("x")))(input("y"))
	require.NotNil(t, err, "zero-width repetition must fail, not hang")

	out, xs, err := c.Many0(c.Keyword("x"))(input("x x x y"))
	require.Nil(t, err)
	assert.Len(t, xs, 3)
	assert.Equal(t, "y", out.Rest())
}

func TestManyTill(t *testing.T) {
	t.Parallel()

	stmt := c.Terminated(c.Keyword("s"), c.Punct(";"))
	block := c.Delimited(c.Punct("{"), c.Cut(c.ManyTill(stmt, c.Punct("}"))), c.Cut(c.Punct("}")))

	out, stmts, err := block(input("{ s; s; } rest"))
	require.Nil(t, err)
	assert.Len(t, stmts, 2)
	assert.Equal(t, "rest", out.Rest())

	text := "{ s;"
	_, _, err = block(input(text))
	require.NotNil(t, err)
	assert.True(t, err.Fatal)
	assert.Equal(t, len(text), err.Deepest().Span.Start)
}

func TestSeparatedList(t *testing.T) {
	t.Parallel()

	list := c.SeparatedList0(c.Keyword("a"), c.Punct(","))

	out, xs, err := list(input("a, a, a, )"))
	require.Nil(t, err)
	assert.Len(t, xs, 3)
	assert.Equal(t, ", )", out.Rest())

	out, xs, err = list(input(")"))
	require.Nil(t, err)
	assert.Empty(t, xs)
	assert.Equal(t, ")", out.Rest())

	_, _, err = c.SeparatedList1(c.Keyword("a"), c.Punct(","))(input(")"))
	assert.NotNil(t, err)
}

func TestNotAndPeek(t *testing.T) {
	t.Parallel()

	p := c.Preceded(c.Peek(c.Keyword("a")), c.Keyword("a"))
	_, _, err := p(input("a"))
	assert.Nil(t, err)

	notEq := c.Preceded(c.Punct("="), c.Not(c.Punct(">"), "'>'"))
	_, _, err = notEq(input("=> x"))
	assert.NotNil(t, err)
	out, _, err := notEq(input("= x"))
	require.Nil(t, err)
	assert.Equal(t, "x", out.Rest())
}
