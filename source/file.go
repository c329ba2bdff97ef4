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

package source

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"

	"github.com/bufbuild/bsharp/internal/ext/unicodex"
)

// Unit is a unit of measurement for the column of a [Location].
type Unit int

const (
	// Bytes measures columns in UTF-8 bytes.
	Bytes Unit = iota
	// Runes measures columns in Unicode code points.
	Runes
	// UTF16 measures columns in UTF-16 code units, which is what most
	// editors speak.
	UTF16
	// TermWidth measures columns as they would appear in a terminal, with
	// tabstops expanded and wide characters taking two columns.
	TermWidth
)

// String implements [fmt.Stringer].
func (u Unit) String() string {
	switch u {
	case Bytes:
		return "bytes"
	case Runes:
		return "runes"
	case UTF16:
		return "utf16"
	case TermWidth:
		return "width"
	default:
		return "unit(?)"
	}
}

// File is a source file handed to the parser.
//
// Files are immutable once created. A nil *File behaves like an empty file
// with the path "".
type File struct {
	path, text string

	once sync.Once
	// Byte offset of the start of each line. lines[0] is always zero.
	lines []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path. It is only used for display.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Len returns the length of the file in bytes.
func (f *File) Len() int {
	return len(f.Text())
}

// Span is a shorthand for creating a new [Span] in this file.
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{File: f, Start: start, End: end}
}

// EOF returns an empty span just past the last non-whitespace character.
func (f *File) EOF() Span {
	if f == nil {
		return Span{}
	}
	eof := strings.LastIndexFunc(f.Text(), func(r rune) bool {
		return !unicode.IsSpace(r)
	})
	return f.Span(eof+1, eof+1)
}

// Lines returns the number of lines in this file.
func (f *File) Lines() int {
	return len(f.lineStarts())
}

// Line returns the given 1-indexed line, without its line terminator.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	text := f.Text()[start:end]
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

// LineOffsets returns the byte range of the given 1-indexed line, including
// its trailing newline.
func (f *File) LineOffsets(line int) (start, end int) {
	starts := f.lineStarts()
	if line <= 0 || line > len(starts) {
		return 0, 0
	}
	if line == len(starts) {
		return starts[line-1], f.Len()
	}
	return starts[line-1], starts[line]
}

// Location converts a byte offset into a line and column.
//
// This operation is O(log n) in the number of lines.
func (f *File) Location(offset int, units Unit) Location {
	if f == nil || offset <= 0 {
		return Location{Offset: 0, Line: 1, Column: 1}
	}
	offset = min(offset, f.Len())

	starts := f.lineStarts()
	line, exact := slices.BinarySearch(starts, offset)
	if !exact {
		line--
	}

	chunk := f.Text()[starts[line]:offset]
	var column int
	switch units {
	case Bytes:
		column = len(chunk)
	case Runes:
		for range chunk {
			column++
		}
	case UTF16:
		for _, r := range chunk {
			column += utf16.RuneLen(r)
		}
	case TermWidth:
		column = unicodex.StringWidth(chunk)
	}

	return Location{Offset: offset, Line: line + 1, Column: column + 1}
}

// Offset converts a 1-indexed line and column, measured in runes, into a
// byte offset. Out-of-range values are clamped to the file.
func (f *File) Offset(line, column int) int {
	if line > f.Lines() {
		return f.Len()
	}
	start, end := f.LineOffsets(line)
	for i := range f.Text()[start:end] {
		if column <= 1 {
			return start + i
		}
		column--
	}
	return end
}

func (f *File) lineStarts() []int {
	if f == nil {
		return []int{0}
	}

	f.once.Do(func() {
		f.lines = append(f.lines, 0)
		for i := range len(f.text) {
			if f.text[i] == '\n' {
				f.lines = append(f.lines, i+1)
			}
		}
	})
	return f.lines
}
