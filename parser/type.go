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

// typeMode selects how a type's suffixes are read.
type typeMode int8

const (
	// declType is a type in declaration position, where every suffix
	// belongs to the type.
	declType typeMode = iota
	// exprType is a type embedded in an expression, after is, as or inside
	// a cast, where '?' and '*' may instead be operators.
	exprType
	// bareType stops before any array rank specifier, for new and
	// stackalloc.
	bareType
)

var primitives = map[string]bool{
	"bool": true, "byte": true, "sbyte": true, "char": true, "decimal": true,
	"double": true, "float": true, "int": true, "uint": true, "long": true,
	"ulong": true, "short": true, "ushort": true, "object": true,
	"string": true, "nint": true, "nuint": true,
}

// parseType parses a type in declaration position.
func parseType(in input) (input, ast.Type, *perr) {
	return parseTypeMode(in, declType)
}

// parseTypeMode parses a type: a base type followed by any number of
// nullable, pointer and array suffixes.
func parseTypeMode(in input, mode typeMode) (input, ast.Type, *perr) {
	start := combinator.SkipTrivia(in)
	out, t, err := parseBaseType(in)
	if err != nil {
		return in, nil, err.Wrap("type", in)
	}

	for {
		switch {
		case atPunct(out, "?", "?", "."):
			after, _ := punct(out, "?")
			if mode == exprType && !nullableFollows(after) {
				return out, t, nil
			}
			out, t = after, &ast.NullableType{Range: span(start, after), Elem: t}

		case atPunct(out, "*", "="):
			after, _ := punct(out, "*")
			if mode == exprType && !pointerFollows(after) {
				return out, t, nil
			}
			out, t = after, &ast.PointerType{Range: span(start, after), Elem: t}

		case mode != bareType && atPunct(out, "["):
			next, rank, ok := parseRankSpecifier(out)
			if !ok {
				return out, t, nil
			}
			out, t = next, &ast.ArrayType{Range: span(start, next), Elem: t, Rank: rank}

		default:
			return out, t, nil
		}
	}
}

// parseRankSpecifier parses [] or [,,].
func parseRankSpecifier(in input) (input, int, bool) {
	next, ok := punct(in, "[")
	if !ok {
		return in, 0, false
	}
	rank := 1
	for {
		if after, ok := punct(next, ","); ok {
			next = after
			rank++
			continue
		}
		if after, ok := punct(next, "]"); ok {
			return after, rank, true
		}
		return in, 0, false
	}
}

// nullableFollows returns whether a '?' after a type in an expression is a
// nullable suffix rather than the start of a conditional.
func nullableFollows(in input) bool {
	if combinator.SkipTrivia(in).Done() {
		return true
	}
	for _, op := range []string{")", "]", "}", ",", ";", ">", "[", "?", "&&", "||", "==", "!=", "=>", "{"} {
		if atPunct(in, op) {
			return true
		}
	}
	if atPunct(in, "=", "=") {
		return true
	}
	return atWord(in, "and", "or", "when")
}

// pointerFollows returns whether a '*' after a type in an expression is a
// pointer suffix rather than multiplication.
func pointerFollows(in input) bool {
	for _, op := range []string{")", "*", "[", ">", ","} {
		if atPunct(in, op) {
			return true
		}
	}
	return false
}

// parseBaseType parses a type without suffixes.
func parseBaseType(in input) (input, ast.Type, *perr) {
	start := combinator.SkipTrivia(in)
	w := word(in)

	switch {
	case primitives[w]:
		out := combinator.SkipTrivia(start.Advance(len(w)))
		return out, &ast.PrimitiveType{Range: span(start, out), Name: w}, nil
	case w == "void":
		out := combinator.SkipTrivia(start.Advance(len(w)))
		return out, &ast.VoidType{Range: span(start, out)}, nil
	case w == "dynamic" && !atPunct(start.Advance(len(w)), ".") && !atPunct(start.Advance(len(w)), "::") && !atPunct(start.Advance(len(w)), "<"):
		out := combinator.SkipTrivia(start.Advance(len(w)))
		return out, &ast.DynamicType{Range: span(start, out)}, nil
	case w == "delegate":
		if next, ok := keyword(in, "delegate"); ok && atPunct(next, "*") {
			return parseFunctionPointerType(in)
		}
		return in, nil, combinator.Fail(in, "type")
	case atPunct(in, "("):
		return parseTupleType(in)
	}

	out, t, err := parseNamedType(in)
	if err != nil {
		return in, nil, err
	}
	return out, t, nil
}

// parseNamedType parses a possibly qualified, possibly generic type name.
func parseNamedType(in input) (input, *ast.NamedType, *perr) {
	return namedType(in, false)
}

// namedType is [parseNamedType], optionally also accepting unbound generic
// segments such as List<>.
func namedType(in input, unbound bool) (input, *ast.NamedType, *perr) {
	start := combinator.SkipTrivia(in)
	t := &ast.NamedType{}

	out := in
	if next, alias, err := parseIdent(in); err == nil {
		if after, ok := punct(next, "::"); ok {
			t.Alias, out = alias, after
		}
	}

	for {
		segStart := combinator.SkipTrivia(out)
		next, name, err := parseIdent(out)
		if err != nil {
			if len(t.Segments) == 0 {
				return in, nil, err
			}
			return in, nil, cut(err)
		}
		seg := &ast.TypeSegment{Name: name}
		if after, args, ok := parseTypeArgs(next); ok {
			next, seg.TypeArgs = after, args
		} else if after, arity, ok := parseOmittedTypeArgs(next); ok && unbound {
			next, seg.Unbound = after, arity
		}
		seg.Range = span(segStart, next)
		t.Segments = append(t.Segments, seg)
		out = next

		// A dot only continues the name if an identifier follows it.
		after, ok := punct(out, ".")
		if !ok || word(after) == "" || reserved[word(after)] {
			break
		}
		out = after
	}

	t.Range = span(start, out)
	return out, t, nil
}

// parseTypeArgs parses <T, U>. It never fails fatally: a '<' that does not
// open a well-formed argument list is left alone.
func parseTypeArgs(in input) (input, []ast.Type, bool) {
	next, ok := punct(in, "<", "<", "=")
	if !ok {
		return in, nil, false
	}
	var args []ast.Type
	for {
		after, t, err := parseType(next)
		if err != nil {
			return in, nil, false
		}
		args = append(args, t)
		next = after
		if after, ok := punct(next, ","); ok {
			next = after
			continue
		}
		if after, ok := punct(next, ">", "="); ok {
			return after, args, true
		}
		return in, nil, false
	}
}

// parseOmittedTypeArgs parses <> or <,,> and returns the number of slots.
func parseOmittedTypeArgs(in input) (input, int, bool) {
	next, ok := punct(in, "<", "<", "=")
	if !ok {
		return in, 0, false
	}
	arity := 1
	for {
		if after, ok := punct(next, ","); ok {
			next = after
			arity++
			continue
		}
		if after, ok := punct(next, ">", "="); ok {
			return after, arity, true
		}
		return in, 0, false
	}
}

// parseTupleType parses (T1 a, T2 b), which needs at least two elements.
func parseTupleType(in input) (input, ast.Type, *perr) {
	start := combinator.SkipTrivia(in)
	next, err := expect(in, "(")
	if err != nil {
		return in, nil, err
	}

	t := &ast.TupleType{}
	for {
		elemStart := combinator.SkipTrivia(next)
		after, elemType, err := parseType(next)
		if err != nil {
			return in, nil, err
		}
		elem := &ast.TupleTypeElem{Type: elemType}
		if afterName, name, err := parseIdent(after); err == nil {
			elem.Name, after = name, afterName
		}
		elem.Range = span(elemStart, after)
		t.Elems = append(t.Elems, elem)
		next = after

		if after, ok := punct(next, ","); ok {
			next = after
			continue
		}
		break
	}
	if len(t.Elems) < 2 {
		return in, nil, combinator.Fail(next, "',' in tuple type")
	}
	out, err := expect(next, ")")
	if err != nil {
		return in, nil, err
	}
	t.Range = span(start, out)
	return out, t, nil
}

// parseFunctionPointerType parses delegate* managed<int, void>.
func parseFunctionPointerType(in input) (input, ast.Type, *perr) {
	start := combinator.SkipTrivia(in)
	next, _ := keyword(in, "delegate")
	next, _ = punct(next, "*")

	t := &ast.FunctionPointerType{}
	for _, conv := range []string{"managed", "unmanaged"} {
		if after, ok := keyword(next, conv); ok {
			t.Convention, next = conv, after
			break
		}
	}
	if t.Convention == "unmanaged" {
		if after, ok := punct(next, "["); ok {
			after, convs, err := combinator.SeparatedList1(combinator.Parser[*ast.Ident](parseIdent), combinator.Punct(","))(after)
			if err != nil {
				return in, nil, cut(err)
			}
			if after, err = need(after, "]"); err != nil {
				return in, nil, err
			}
			t.CallingConventions, next = convs, after
		}
	}

	next, err := need(next, "<")
	if err != nil {
		return in, nil, err.Wrap("function pointer type", start)
	}
	for {
		paramStart := combinator.SkipTrivia(next)
		param := &ast.FunctionPointerParam{}
		after := next
		switch {
		case atWord(after, "ref"):
			after, _ = keyword(after, "ref")
			param.Modifier = "ref"
			if a, ok := keyword(after, "readonly"); ok {
				after, param.Modifier = a, "ref readonly"
			}
		case atWord(after, "out", "in"):
			param.Modifier = word(after)
			after, _ = keyword(after, param.Modifier)
		}
		after, pt, err := parseType(after)
		if err != nil {
			return in, nil, cut(err).Wrap("function pointer type", start)
		}
		param.Type = pt
		param.Range = span(paramStart, after)
		t.Params = append(t.Params, param)
		next = after

		if after, ok := punct(next, ","); ok {
			next = after
			continue
		}
		break
	}
	out, err := need(next, ">")
	if err != nil {
		return in, nil, err.Wrap("function pointer type", start)
	}
	t.Range = span(start, out)
	return out, t, nil
}

// parseReturnType parses a type that may be by-reference: ref T or
// ref readonly T.
func parseReturnType(in input) (input, ast.Type, *perr) {
	start := combinator.SkipTrivia(in)
	next, ok := keyword(in, "ref")
	if !ok {
		return parseType(in)
	}
	t := &ast.RefType{}
	if after, ok := keyword(next, "readonly"); ok {
		t.ReadOnly, next = true, after
	}
	out, elem, err := parseType(next)
	if err != nil {
		return in, nil, err
	}
	t.Elem = elem
	t.Range = span(start, out)
	return out, t, nil
}

// inferVar turns the name var into [ast.VarType], where a declaration
// permits inference.
func inferVar(t ast.Type) ast.Type {
	if named, ok := t.(*ast.NamedType); ok && named.Simple() && !named.Segments[0].Name.Verbatim && named.Segments[0].Name.Name == "var" {
		return &ast.VarType{Range: named.Range}
	}
	return t
}
