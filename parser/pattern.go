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

package parser

import (
	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/combinator"
)

// parseConstant parses the constant of a constant or relational pattern. It
// stops at the shift level, so that the relational operators and the pattern
// combinators are never mistaken for part of the constant.
func parseConstant(in input) (input, ast.Expr, *perr) {
	return parseShift(in)
}

// parsePattern parses a pattern.
func parsePattern(in input) (input, ast.Pattern, *perr) {
	return parseOrPattern(in)
}

func parseOrPattern(in input) (input, ast.Pattern, *perr) {
	return foldPattern(in, "or", ast.PatternOr, parseAndPattern)
}

func parseAndPattern(in input) (input, ast.Pattern, *perr) {
	return foldPattern(in, "and", ast.PatternAnd, parseNotPattern)
}

// foldPattern parses a left-associative chain of patterns joined by kw.
func foldPattern(
	in input,
	kw string,
	op ast.PatternOp,
	operand func(input) (input, ast.Pattern, *perr),
) (input, ast.Pattern, *perr) {
	start := combinator.SkipTrivia(in)
	out, x, err := operand(in)
	if err != nil {
		return in, nil, err
	}
	for {
		next, ok := keyword(out, kw)
		if !ok {
			return out, x, nil
		}
		after, y, err := operand(next)
		if err != nil {
			return in, nil, cut(err).Wrap("pattern after '"+kw+"'", next)
		}
		out, x = after, &ast.BinaryPattern{Range: span(start, after), Op: op, X: x, Y: y}
	}
}

func parseNotPattern(in input) (input, ast.Pattern, *perr) {
	start := combinator.SkipTrivia(in)
	next, ok := keyword(in, "not")
	if !ok {
		return parsePrimaryPattern(in)
	}
	out, x, err := parseNotPattern(next)
	if err != nil {
		return in, nil, cut(err).Wrap("pattern after 'not'", next)
	}
	return out, &ast.NotPattern{Range: span(start, out), X: x}, nil
}

var relationalPatternOps = []binaryOp{
	{ast.LessEqual, nil},
	{ast.GreaterEqual, nil},
	{ast.Less, []string{"<", "="}},
	{ast.Greater, []string{">", "="}},
}

// parsePrimaryPattern parses a pattern without combinators.
//
// Forms with a distinctive first token come first. Then a type is tried: it
// is a pattern if something type-like follows it (a deconstruction, a
// property list or a designation), or if it could not be a constant.
// Anything else is a constant.
func parsePrimaryPattern(in input) (input, ast.Pattern, *perr) {
	start := combinator.SkipTrivia(in)

	switch {
	case atPunct(in, "("):
		return parseParenPattern(in)
	case atPunct(in, "["):
		return parseListPattern(in)
	case atPunct(in, "{"):
		return parseRecursivePattern(start, in, nil)
	}

	for _, op := range relationalPatternOps {
		next, ok := punct(in, op.op.Token(), op.longer...)
		if !ok {
			continue
		}
		out, x, err := parseConstant(next)
		if err != nil {
			return in, nil, cut(err).Wrap("relational pattern", start)
		}
		return out, &ast.RelationalPattern{Range: span(start, out), Op: op.op, Value: x}, nil
	}

	if next, ok := keyword(in, "var"); ok {
		if out, d, err := parseDesignation(next); err == nil {
			return out, &ast.VarPattern{Range: span(start, out), Designation: d}, nil
		}
	}

	if word(in) == "_" {
		out := combinator.SkipTrivia(start.Advance(1))
		if !atPunct(out, ".") && !atPunct(out, "(") {
			return out, &ast.DiscardPattern{Range: span(start, out)}, nil
		}
	}

	if next, t, err := parseTypeMode(in, exprType); err == nil {
		if atPunct(next, "(") || atPunct(next, "{") {
			return parseRecursivePattern(start, next, t)
		}
		if out, d, err := parseDesignation(next); err == nil {
			if _, paren := d.(*ast.ParenDesignation); !paren {
				return out, &ast.TypePattern{Range: span(start, out), Type: t, Designation: d}, nil
			}
		}
		if !constantLike(t) {
			return next, &ast.TypePattern{Range: span(start, next), Type: t}, nil
		}
	}

	out, x, err := parseConstant(in)
	if err != nil {
		return in, nil, err.Wrap("pattern", in)
	}
	return out, &ast.ConstantPattern{Range: span(start, out), Value: x}, nil
}

// constantLike returns whether a type could also be read as the name of a
// constant, such as Color.Red.
func constantLike(t ast.Type) bool {
	named, ok := t.(*ast.NamedType)
	if !ok {
		return false
	}
	for _, seg := range named.Segments {
		if len(seg.TypeArgs) > 0 {
			return false
		}
	}
	return true
}

// parseRecursivePattern parses the positional and property parts of a
// pattern, and its designation. in is just after the type, if any.
func parseRecursivePattern(start, in input, t ast.Type) (input, ast.Pattern, *perr) {
	var (
		positional, property []*ast.Subpattern
		hasPositional        bool
		err                  *perr
	)
	out := in
	if atPunct(out, "(") {
		out, positional, err = parseSubpatterns(out, "(", ")")
		if err != nil {
			return start, nil, err
		}
		hasPositional = true
	}
	if atPunct(out, "{") {
		out, property, err = parseSubpatterns(out, "{", "}")
		if err != nil {
			return start, nil, err
		}
	}

	var d ast.Designation
	if after, des, err := parseDesignation(out); err == nil {
		if _, paren := des.(*ast.ParenDesignation); !paren {
			d, out = des, after
		}
	}

	if hasPositional {
		return out, &ast.PositionalPattern{
			Range:       span(start, out),
			Type:        t,
			Subpatterns: positional,
			Properties:  property,
			Designation: d,
		}, nil
	}
	return out, &ast.PropertyPattern{
		Range:       span(start, out),
		Type:        t,
		Subpatterns: property,
		Designation: d,
	}, nil
}

// parseSubpatterns parses a delimited, comma-separated list of subpatterns.
// A trailing comma is allowed in a property list.
func parseSubpatterns(in input, opening, closing string) (input, []*ast.Subpattern, *perr) {
	start := combinator.SkipTrivia(in)
	next, err := expect(in, opening)
	if err != nil {
		return in, nil, err
	}
	var subs []*ast.Subpattern
	for !atPunct(next, closing) {
		after, sub, err := parseSubpattern(next)
		if err != nil {
			return in, nil, cut(err).Wrap("subpattern", start)
		}
		subs = append(subs, sub)
		next = after
		if after, ok := punct(next, ","); ok {
			next = after
			continue
		}
		break
	}
	out, err := need(next, closing)
	if err != nil {
		return in, nil, err.Wrap("subpattern list", start)
	}
	return out, subs, nil
}

// parseSubpattern parses name: pattern, a.b: pattern or pattern.
func parseSubpattern(in input) (input, *ast.Subpattern, *perr) {
	start := combinator.SkipTrivia(in)
	sub := &ast.Subpattern{}

	next := in
	if after, member, ok := parseMemberPath(in); ok {
		if after, ok := punct(after, ":", ":"); ok {
			sub.Member, next = member, after
		}
	}
	out, pat, err := parsePattern(next)
	if err != nil {
		return in, nil, err
	}
	sub.Pattern = pat
	sub.Range = span(start, out)
	return out, sub, nil
}

// parseMemberPath parses a.b.c as a chain of member accesses.
func parseMemberPath(in input) (input, ast.Expr, bool) {
	start := combinator.SkipTrivia(in)
	out, name, err := parseIdent(in)
	if err != nil {
		return in, nil, false
	}
	var x ast.Expr = &ast.NameExpr{Range: name.Range, Name: name}
	for {
		next, ok := punct(out, ".", ".")
		if !ok {
			return out, x, true
		}
		after, member, err := parseIdent(next)
		if err != nil {
			return out, x, true
		}
		out = after
		x = &ast.MemberAccessExpr{Range: span(start, out), X: x, Access: ast.Dot, Name: member}
	}
}

// parseParenPattern parses (p), or a tuple pattern (a, b) with an optional
// designation.
func parseParenPattern(in input) (input, ast.Pattern, *perr) {
	start := combinator.SkipTrivia(in)
	out, subs, err := parseSubpatterns(in, "(", ")")
	if err != nil {
		return in, nil, err
	}
	if len(subs) == 1 && subs[0].Member == nil {
		if atPunct(out, "{") {
			return parseRecursivePattern(start, in, nil)
		}
		return out, &ast.ParenPattern{Range: span(start, out), X: subs[0].Pattern}, nil
	}
	if atPunct(out, "{") {
		return parseRecursivePattern(start, in, nil)
	}

	pat := &ast.TuplePattern{Subpatterns: subs}
	if after, d, err := parseDesignation(out); err == nil {
		if _, paren := d.(*ast.ParenDesignation); !paren {
			pat.Designation, out = d, after
		}
	}
	pat.Range = span(start, out)
	return out, pat, nil
}

// parseListPattern parses [a, .., b] with an optional designation.
func parseListPattern(in input) (input, ast.Pattern, *perr) {
	start := combinator.SkipTrivia(in)
	next, _ := punct(in, "[")

	pat := &ast.ListPattern{}
	for !atPunct(next, "]") {
		elemStart := combinator.SkipTrivia(next)
		var (
			after input
			elem  ast.Pattern
			err   *perr
		)
		if a, ok := punct(next, "..", "."); ok {
			slice := &ast.SlicePattern{}
			after = a
			if !atPunct(a, ",") && !atPunct(a, "]") {
				if after, slice.Pattern, err = parsePattern(a); err != nil {
					return in, nil, cut(err).Wrap("slice pattern", elemStart)
				}
			}
			slice.Range = span(elemStart, after)
			elem = slice
		} else if after, elem, err = parsePattern(next); err != nil {
			return in, nil, cut(err).Wrap("list pattern", start)
		}
		pat.Elems = append(pat.Elems, elem)
		next = after
		if a, ok := punct(next, ","); ok {
			next = a
			continue
		}
		break
	}
	out, err := need(next, "]")
	if err != nil {
		return in, nil, err.Wrap("list pattern", start)
	}
	if after, d, err := parseDesignation(out); err == nil {
		if _, paren := d.(*ast.ParenDesignation); !paren {
			pat.Designation, out = d, after
		}
	}
	pat.Range = span(start, out)
	return out, pat, nil
}
