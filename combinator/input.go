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
	"unicode/utf8"

	"github.com/bufbuild/bsharp/source"
)

// Input is an immutable position within a [source.File].
//
// The zero Input is an empty input with no file.
type Input struct {
	file *source.File
	// The current position.
	off int
	// The end of the last token consumed, ignoring any trivia after it.
	tokEnd int
}

// NewInput returns an input positioned at the start of file.
func NewInput(file *source.File) Input {
	return Input{file: file}
}

// File returns the file being parsed.
func (in Input) File() *source.File {
	return in.file
}

// Offset returns the byte offset of this position.
func (in Input) Offset() int {
	return in.off
}

// Rest returns the unconsumed text.
func (in Input) Rest() string {
	return in.file.Text()[in.off:]
}

// Done returns whether all input has been consumed.
func (in Input) Done() bool {
	return in.off >= in.file.Len()
}

// HasPrefix returns whether the unconsumed text starts with s.
func (in Input) HasPrefix(s string) bool {
	return strings.HasPrefix(in.Rest(), s)
}

// PeekRune returns the next rune and its length, or -1 at end of input.
func (in Input) PeekRune() (rune, int) {
	if in.Done() {
		return -1, 0
	}
	return utf8.DecodeRuneInString(in.Rest())
}

// PeekByte returns the byte at offset i past the current position, or zero
// if that is out of bounds.
func (in Input) PeekByte(i int) byte {
	rest := in.Rest()
	if i < 0 || i >= len(rest) {
		return 0
	}
	return rest[i]
}

// Advance consumes n bytes as part of a token.
func (in Input) Advance(n int) Input {
	in.off = min(in.off+n, in.file.Len())
	in.tokEnd = in.off
	return in
}

// skip consumes n bytes of trivia.
func (in Input) skip(n int) Input {
	in.off = min(in.off+n, in.file.Len())
	return in
}

// Point returns an empty span at the current position.
func (in Input) Point() source.Span {
	return in.file.Span(in.off, in.off)
}

// SpanTo returns the span of the tokens consumed between in and out.
//
// Leading trivia after in and trailing trivia before out are excluded.
func (in Input) SpanTo(out Input) source.Span {
	start := SkipTrivia(in).off
	end := max(start, out.tokEnd)
	return in.file.Span(start, end)
}
