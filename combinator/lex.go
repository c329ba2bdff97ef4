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

package combinator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bufbuild/bsharp/internal/ext/unicodex"
)

// SkipTrivia skips whitespace, comments and preprocessor directive lines.
func SkipTrivia(in Input) Input {
	for {
		rest := in.Rest()
		switch {
		case rest == "":
			return in

		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			in = in.skip(end)

		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				in = in.skip(len(rest))
			} else {
				in = in.skip(end + 4)
			}

		case rest[0] == '#' && atLineStart(in):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			in = in.skip(end)

		default:
			r, n := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				return in
			}
			in = in.skip(n)
		}
	}
}

// atLineStart returns whether only horizontal whitespace precedes in on its
// line.
func atLineStart(in Input) bool {
	before := in.file.Text()[:in.off]
	line := before[strings.LastIndexByte(before, '\n')+1:]
	return strings.TrimLeft(line, " \t\v\f\r") == ""
}

// BWS skips trivia before and after p.
func BWS[T any](p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		out, v, err := p(SkipTrivia(in))
		if err != nil {
			return in, v, err
		}
		return SkipTrivia(out), v, nil
	}
}

// Tag matches s exactly, with no trivia skipping.
//
// If s ends in an identifier character, the match is rejected when another
// identifier character follows, so that Tag("is") does not match the start
// of "isValid".
func Tag(s string) Parser[string] {
	expected := "'" + s + "'"
	return func(in Input) (Input, string, *Error) {
		if !matchWord(in, s) {
			return in, "", Fail(in, expected)
		}
		return in.Advance(len(s)), s, nil
	}
}

// Char matches a single byte c, with no trivia skipping.
func Char(c byte) Parser[byte] {
	expected := "'" + string(rune(c)) + "'"
	return func(in Input) (Input, byte, *Error) {
		if in.PeekByte(0) != c || (isWordByte(c) && isWordStart(in.Rest()[1:])) {
			return in, 0, Fail(in, expected)
		}
		return in.Advance(1), c, nil
	}
}

// Keyword matches the word kw surrounded by trivia.
func Keyword(kw string) Parser[string] {
	return BWS(Tag(kw))
}

// Punct matches the operator op surrounded by trivia.
//
// The match is rejected if op is immediately followed by any of longer;
// for example, Punct("&", "&", "=") does not match the start of "&&" or
// "&=".
func Punct(op string, longer ...string) Parser[string] {
	expected := "'" + op + "'"
	return func(in Input) (Input, string, *Error) {
		start := SkipTrivia(in)
		if !start.HasPrefix(op) {
			return in, "", Fail(start, expected)
		}
		after := start.Rest()[len(op):]
		for _, l := range longer {
			if strings.HasPrefix(after, l) {
				return in, "", Fail(start, expected)
			}
		}
		return SkipTrivia(start.Advance(len(op))), op, nil
	}
}

// OneOf tries each operator in order and returns the one that matched. Order
// longer operators first.
func OneOf(ops ...string) Parser[string] {
	parsers := make([]Parser[string], len(ops))
	for i, op := range ops {
		parsers[i] = Punct(op)
	}
	return Alt(parsers...)
}

// TakeWhile consumes the longest prefix whose runes satisfy pred, with no
// trivia skipping. It never fails.
func TakeWhile(pred func(rune) bool) Parser[string] {
	return func(in Input) (Input, string, *Error) {
		rest := in.Rest()
		n := len(rest) - len(strings.TrimLeftFunc(rest, pred))
		return in.Advance(n), rest[:n], nil
	}
}

// isWordStart reports whether s begins with an identifier character.
func isWordStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicodex.IsIdentPart(r)
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func matchWord(in Input, s string) bool {
	if !in.HasPrefix(s) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(s)
	return !unicodex.IsIdentPart(last) || !isWordStart(in.Rest()[len(s):])
}
