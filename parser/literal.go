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
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/internal/ext/stringsx"
	"github.com/bufbuild/bsharp/internal/ext/unicodex"
)

// parseLiteral parses any literal, including interpolated strings.
func parseLiteral(in input) (input, ast.Expr, *perr) {
	return combinator.Named("literal", combinator.Alt(
		parseKeywordLiteral,
		parseInterpolatedString,
		parseStringLiteral,
		parseCharLiteral,
		parseNumber,
	))(in)
}

// parseKeywordLiteral parses true, false and null.
func parseKeywordLiteral(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	for _, lit := range []struct {
		word  string
		kind  ast.LiteralKind
		value any
	}{
		{"true", ast.BoolLiteral, true},
		{"false", ast.BoolLiteral, false},
		{"null", ast.NullLiteral, nil},
	} {
		if out, ok := keyword(start, lit.word); ok {
			return out, &ast.Literal{
				Range: span(start, out),
				Kind:  lit.kind,
				Raw:   lit.word,
				Value: lit.value,
			}, nil
		}
	}
	return in, nil, combinator.Fail(in, "literal")
}

// parseNumber parses an integer or real literal.
func parseNumber(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	rest := start.Rest()

	base, i := 10, 0
	switch {
	case stringsx.HasPrefixFold(rest, "0x"):
		base, i = 16, 2
	case stringsx.HasPrefixFold(rest, "0b"):
		base, i = 2, 2
	}

	isReal := false
	if base != 10 {
		n := scanDigits(rest[i:], byte(base))
		if n == 0 {
			return in, nil, combinator.Fail(start, "digits after base prefix").AsFatal()
		}
		i += n
	} else {
		i = scanDigits(rest, 10)
		if i < len(rest)-1 && rest[i] == '.' && isDigit(rest[i+1]) {
			isReal = true
			i++
			i += scanDigits(rest[i:], 10)
		}
		if i == 0 {
			return in, nil, combinator.Fail(start, "numeric literal")
		}
		if i < len(rest) && (rest[i] == 'e' || rest[i] == 'E') {
			j := i + 1
			if j < len(rest) && (rest[j] == '+' || rest[j] == '-') {
				j++
			}
			if n := scanDigits(rest[j:], 10); n > 0 {
				isReal = true
				i = j + n
			}
		}
	}
	digits := rest[:i]

	var suffix string
	if base == 10 {
		if r := rest[i:]; r != "" && strings.ContainsRune("fFdDmM", rune(r[0])) {
			suffix, isReal = strings.ToLower(r[:1]), true
		}
	}
	if suffix == "" {
		for _, s := range []string{"ul", "lu", "u", "l"} {
			if stringsx.HasPrefixFold(rest[i:], s) {
				suffix = s
				break
			}
		}
	}
	end := i + len(suffix)
	if r, _ := utf8.DecodeRuneInString(rest[end:]); end < len(rest) && unicodex.IsIdentPart(r) {
		return in, nil, combinator.FailAt(start.Advance(end), "end of numeric literal").AsFatal()
	}

	clean := strings.ReplaceAll(digits, "_", "")
	lit := &ast.Literal{Raw: rest[:end], Suffix: suffix}
	if isReal {
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return in, nil, combinator.Fail(start, "real literal").AsFatal()
		}
		lit.Kind, lit.Value = ast.RealLiteral, v
	} else {
		if base != 10 {
			clean = clean[2:]
		}
		v, err := strconv.ParseUint(clean, base, 64)
		if err != nil {
			return in, nil, combinator.Fail(start, "integer literal that fits in 64 bits").AsFatal()
		}
		lit.Kind, lit.Value = ast.IntLiteral, v
	}

	out := start.Advance(end)
	lit.Range = span(start, out)
	return combinator.SkipTrivia(out), lit, nil
}

// scanDigits returns the length of the run of digits in the given base at
// the start of s, including digit separators between digits.
func scanDigits(s string, base byte) int {
	n := 0
	for i, r := range s {
		if r == '_' {
			continue
		}
		if _, ok := unicodex.Digit(r, base); !ok {
			break
		}
		n = i + 1
	}
	return n
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseCharLiteral parses 'c'.
func parseCharLiteral(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	rest := start.Rest()
	if !strings.HasPrefix(rest, "'") {
		return in, nil, combinator.Fail(start, "character literal")
	}

	var (
		value rune
		n     int
	)
	switch {
	case strings.HasPrefix(rest[1:], `\`):
		runes, m, ok := decodeEscape(rest[1:])
		if !ok || len(runes) != 1 {
			return in, nil, combinator.FailAt(start.Advance(1), "escape sequence").AsFatal()
		}
		value, n = runes[0], m
	default:
		value, n = utf8.DecodeRuneInString(rest[1:])
		if n == 0 || value == '\'' || value == '\n' {
			return in, nil, combinator.FailAt(start.Advance(1), "character").AsFatal()
		}
	}
	if !strings.HasPrefix(rest[1+n:], "'") {
		return in, nil, combinator.FailAt(start.Advance(1+n), "closing '''").AsFatal()
	}

	out := start.Advance(n + 2)
	return combinator.SkipTrivia(out), &ast.Literal{
		Range: span(start, out),
		Kind:  ast.CharLiteral,
		Raw:   rest[:n+2],
		Value: value,
	}, nil
}

// decodeEscape decodes the escape sequence at the start of s, which must
// begin with a backslash. It returns the decoded runes (two for a surrogate
// pair spelled with \U) and the length of the escape.
func decodeEscape(s string) ([]rune, int, bool) {
	if len(s) < 2 {
		return nil, 0, false
	}
	switch s[1] {
	case '\'', '"', '\\':
		return []rune{rune(s[1])}, 2, true
	case '0':
		return []rune{0}, 2, true
	case 'a':
		return []rune{'\a'}, 2, true
	case 'b':
		return []rune{'\b'}, 2, true
	case 'e':
		return []rune{0x1b}, 2, true
	case 'f':
		return []rune{'\f'}, 2, true
	case 'n':
		return []rune{'\n'}, 2, true
	case 'r':
		return []rune{'\r'}, 2, true
	case 't':
		return []rune{'\t'}, 2, true
	case 'v':
		return []rune{'\v'}, 2, true
	case 'u', 'U', 'x':
		want := map[byte]int{'u': 4, 'U': 8, 'x': 4}[s[1]]
		var v rune
		n := 0
		for n < want && 2+n < len(s) {
			d, ok := unicodex.Digit(rune(s[2+n]), 16)
			if !ok {
				break
			}
			v = v*16 + rune(d)
			n++
		}
		if n == 0 || (s[1] != 'x' && n != want) || !utf8.ValidRune(v) {
			return nil, 0, false
		}
		return []rune{v}, 2 + n, true
	}
	return nil, 0, false
}

// parseStringLiteral parses regular, verbatim and raw string literals,
// with an optional u8 suffix.
func parseStringLiteral(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	rest := start.Rest()

	var (
		n     int
		value string
		err   *perr
	)
	switch {
	case strings.HasPrefix(rest, `"""`):
		n, value, err = scanRawString(start, rest)
	case strings.HasPrefix(rest, `@"`):
		n, value, err = scanVerbatimString(start, rest, 1)
	case strings.HasPrefix(rest, `"`):
		n, value, err = scanRegularString(start, rest)
	default:
		return in, nil, combinator.Fail(start, "string literal")
	}
	if err != nil {
		return in, nil, err
	}

	lit := &ast.Literal{Kind: ast.StringLiteral, Value: value}
	if stringsx.HasPrefixFold(rest[n:], "u8") {
		lit.Suffix = "u8"
		n += 2
	}
	lit.Raw = rest[:n]

	out := start.Advance(n)
	lit.Range = span(start, out)
	return combinator.SkipTrivia(out), lit, nil
}

func scanRegularString(start input, rest string) (int, string, *perr) {
	var b strings.Builder
	i := 1
	for {
		if i >= len(rest) || rest[i] == '\n' {
			return 0, "", combinator.FailAt(start.Advance(i), "closing '\"'").AsFatal()
		}
		switch rest[i] {
		case '"':
			return i + 1, b.String(), nil
		case '\\':
			runes, n, ok := decodeEscape(rest[i:])
			if !ok {
				return 0, "", combinator.FailAt(start.Advance(i), "escape sequence").AsFatal()
			}
			for _, r := range runes {
				b.WriteRune(r)
			}
			i += n
		default:
			b.WriteByte(rest[i])
			i++
		}
	}
}

// scanVerbatimString scans @"...", where the opening quote is at offset
// quote.
func scanVerbatimString(start input, rest string, quote int) (int, string, *perr) {
	var b strings.Builder
	i := quote + 1
	for {
		if i >= len(rest) {
			return 0, "", combinator.FailAt(start.Advance(i), "closing '\"'").AsFatal()
		}
		if rest[i] == '"' {
			if i+1 < len(rest) && rest[i+1] == '"' {
				b.WriteByte('"')
				i += 2
				continue
			}
			return i + 1, b.String(), nil
		}
		b.WriteByte(rest[i])
		i++
	}
}

// scanRawString scans a """raw""" string. The closing delimiter has as many
// quotes as the opening one. In a multi-line raw string, the first and last
// lines are dropped and the indentation of the closing line is removed from
// every line.
func scanRawString(start input, rest string) (int, string, *perr) {
	quotes := len(rest) - len(strings.TrimLeft(rest, `"`))
	delim := rest[:quotes]
	end := strings.Index(rest[quotes:], delim)
	if end < 0 {
		return 0, "", combinator.Failf(start.Advance(len(rest)), "closing %s", delim).AsFatal()
	}
	content := rest[quotes : quotes+end]
	return quotes + end + quotes, dedentRaw(content), nil
}

func dedentRaw(content string) string {
	if !strings.ContainsRune(content, '\n') {
		return content
	}
	nl := strings.IndexByte(content, '\n')
	last := strings.LastIndexByte(content, '\n')
	indent := content[last+1:]
	body := content[nl+1 : last]
	body = strings.TrimSuffix(body, "\r")

	var b strings.Builder
	first := true
	for line := range stringsx.Lines(body) {
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(strings.TrimPrefix(line, indent))
	}
	return b.String()
}

// parseInterpolatedString parses $"...", $@"...", @$"..." and $"""...""".
func parseInterpolatedString(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	rest := start.Rest()

	dollars := len(rest) - len(strings.TrimLeft(rest, "$"))
	lit := &ast.InterpolatedString{}
	var i int
	switch {
	case dollars == 0 && strings.HasPrefix(rest, `@$"`):
		lit.Verbatim, i = true, 3
	case dollars == 1 && strings.HasPrefix(rest[1:], `@"`):
		lit.Verbatim, i = true, 3
	case dollars > 0 && strings.HasPrefix(rest[dollars:], `"""`):
		lit.Raw = true
		i = dollars
	case dollars == 1 && strings.HasPrefix(rest[1:], `"`):
		i = 2
	default:
		return in, nil, combinator.Fail(start, "interpolated string")
	}

	// Raw strings open holes with as many braces as there are dollars.
	braces, closing := 1, `"`
	if lit.Raw {
		quotes := len(rest[i:]) - len(strings.TrimLeft(rest[i:], `"`))
		closing = rest[i : i+quotes]
		braces = dollars
		i += quotes
	}
	open := strings.Repeat("{", braces)
	closeHole := strings.Repeat("}", braces)

	var text strings.Builder
	textStart := i
	flush := func(end int) {
		if text.Len() > 0 {
			lit.Parts = append(lit.Parts, &ast.InterpolatedPart{
				Range: ast.At(start.File().Span(start.Offset()+textStart, start.Offset()+end)),
				Text:  text.String(),
			})
			text.Reset()
		}
	}

	for {
		if i >= len(rest) || (!lit.Raw && !lit.Verbatim && rest[i] == '\n') {
			return in, nil, combinator.FailAt(start.Advance(i), "closing '"+closing+"'").AsFatal()
		}
		r := rest[i:]
		switch {
		case strings.HasPrefix(r, closing) && !(lit.Verbatim && strings.HasPrefix(r, `""`)):
			flush(i)
			out := start.Advance(i + len(closing))
			lit.Range = span(start, out)
			return combinator.SkipTrivia(out), lit, nil

		case !lit.Raw && (strings.HasPrefix(r, "{{") || strings.HasPrefix(r, "}}")):
			text.WriteByte(r[0])
			i += 2

		case lit.Verbatim && strings.HasPrefix(r, `""`):
			text.WriteByte('"')
			i += 2

		case strings.HasPrefix(r, open) && !strings.HasPrefix(r, open+"{"):
			flush(i)
			next, hole, err := parseInterpolation(start.Advance(i), braces, closeHole)
			if err != nil {
				return in, nil, err
			}
			lit.Parts = append(lit.Parts, hole)
			i = next.Offset() - start.Offset()
			textStart = i

		case !lit.Raw && !lit.Verbatim && r[0] == '\\':
			runes, n, ok := decodeEscape(r)
			if !ok {
				return in, nil, combinator.FailAt(start.Advance(i), "escape sequence").AsFatal()
			}
			for _, r := range runes {
				text.WriteRune(r)
			}
			i += n

		default:
			text.WriteByte(r[0])
			i++
		}
	}
}

// parseInterpolation parses a {expr,alignment:format} hole. in is positioned
// at the opening braces.
func parseInterpolation(in input, braces int, closeHole string) (input, *ast.InterpolatedPart, *perr) {
	start := in
	in = in.Advance(braces)

	in, x, err := parseExpr(in)
	if err != nil {
		return start, nil, cut(err.Wrap("interpolation", in))
	}
	part := &ast.InterpolatedPart{Expr: x}

	if next, ok := punct(in, ","); ok {
		in, part.Alignment, err = parseExpr(next)
		if err != nil {
			return start, nil, cut(err.Wrap("interpolation alignment", next))
		}
	}

	in = combinator.SkipTrivia(in)
	if strings.HasPrefix(in.Rest(), ":") {
		rest := in.Rest()[1:]
		end := strings.Index(rest, closeHole)
		if end < 0 {
			return start, nil, combinator.Failf(in, "'%s'", closeHole).AsFatal()
		}
		part.Format = rest[:end]
		in = in.Advance(1 + end)
	}

	if !strings.HasPrefix(in.Rest(), closeHole) {
		return start, nil, combinator.Failf(in, "'%s'", closeHole).AsFatal()
	}
	in = in.Advance(len(closeHole))
	part.Range = ast.At(start.File().Span(start.Offset(), in.Offset()))
	return in, part, nil
}
