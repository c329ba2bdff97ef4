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
	"slices"
	"unicode/utf8"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/internal/ext/unicodex"
)

type (
	input = combinator.Input
	perr  = combinator.Error
)

// reserved is the set of keywords that can never be used as a plain
// identifier. Contextual keywords such as var, async or where are not here.
var reserved = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true,
	"default": true, "delegate": true, "do": true, "double": true, "else": true,
	"enum": true, "event": true, "explicit": true, "extern": true,
	"false": true, "finally": true, "fixed": true, "float": true, "for": true,
	"foreach": true, "goto": true, "if": true, "implicit": true, "in": true,
	"int": true, "interface": true, "internal": true, "is": true, "lock": true,
	"long": true, "namespace": true, "new": true, "null": true, "object": true,
	"operator": true, "out": true, "override": true, "params": true,
	"private": true, "protected": true, "public": true, "readonly": true,
	"ref": true, "return": true, "sbyte": true, "sealed": true, "short": true,
	"sizeof": true, "stackalloc": true, "static": true, "string": true,
	"struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true,
	"unchecked": true, "unsafe": true, "ushort": true, "using": true,
	"virtual": true, "void": true, "volatile": true, "while": true,
}

// IsReserved returns whether word is a reserved keyword.
func IsReserved(word string) bool {
	return reserved[word]
}

// word returns the identifier-like word at the start of in, after trivia,
// without consuming it. A verbatim identifier is returned with its '@'.
func word(in input) string {
	in = combinator.SkipTrivia(in)
	rest := in.Rest()
	start := 0
	if rest != "" && rest[0] == '@' {
		start = 1
	}
	r, n := utf8.DecodeRuneInString(rest[start:])
	if n == 0 || !unicodex.IsIdentStart(r) {
		return ""
	}
	end := start + n
	for end < len(rest) {
		r, n := utf8.DecodeRuneInString(rest[end:])
		if !unicodex.IsIdentPart(r) {
			break
		}
		end += n
	}
	return rest[:end]
}

// atWord returns whether the next word is exactly one of words.
func atWord(in input, words ...string) bool {
	w := word(in)
	return w != "" && slices.Contains(words, w)
}

// keyword consumes the keyword kw, if it is next.
func keyword(in input, kw string) (input, bool) {
	out, _, err := combinator.Keyword(kw)(in)
	return out, err == nil
}

// punct consumes the operator op, if it is next and not followed by any of
// longer.
func punct(in input, op string, longer ...string) (input, bool) {
	out, _, err := combinator.Punct(op, longer...)(in)
	return out, err == nil
}

// atPunct returns whether op is next, without consuming it.
func atPunct(in input, op string, longer ...string) bool {
	_, ok := punct(in, op, longer...)
	return ok
}

// expect consumes the operator op, failing recoverably if it is missing.
func expect(in input, op string, longer ...string) (input, *perr) {
	out, _, err := combinator.Punct(op, longer...)(in)
	return out, err
}

// expectKeyword consumes the keyword kw, failing recoverably if it is
// missing.
func expectKeyword(in input, kw string) (input, *perr) {
	out, _, err := combinator.Keyword(kw)(in)
	return out, err
}

// need is like expect, but a missing op is fatal. It is used once a
// construct has been recognized.
func need(in input, op string, longer ...string) (input, *perr) {
	out, err := expect(in, op, longer...)
	if err != nil {
		return in, err.AsFatal()
	}
	return out, nil
}

// cut makes err fatal, unless it is nil.
func cut(err *perr) *perr {
	if err == nil {
		return nil
	}
	return err.AsFatal()
}

// span returns the span between two positions as a node range.
func span(start, end input) ast.Range {
	return ast.At(start.SpanTo(end))
}

// parseIdent parses an identifier that is not a reserved keyword.
func parseIdent(in input) (input, *ast.Ident, *perr) {
	return parseIdentExcept(in)
}

// parseIdentExcept parses an identifier, additionally rejecting any of the
// given contextual keywords unless written verbatim.
func parseIdentExcept(in input, except ...string) (input, *ast.Ident, *perr) {
	w := word(in)
	if w == "" {
		return in, nil, combinator.Fail(in, "identifier")
	}

	verbatim := w[0] == '@'
	name := w
	if verbatim {
		name = w[1:]
	} else if reserved[w] || slices.Contains(except, w) {
		return in, nil, combinator.Failf(in, "identifier, found keyword '%s'", w)
	}

	start := combinator.SkipTrivia(in)
	end := start.Advance(len(w))
	return combinator.SkipTrivia(end), &ast.Ident{
		Range:    ast.At(start.SpanTo(end)),
		Name:     name,
		Verbatim: verbatim,
	}, nil
}

// contextual returns whether the contextual keyword kw is next, as a plain
// word rather than a verbatim identifier.
func contextual(in input, kw string) bool {
	return word(in) == kw
}
