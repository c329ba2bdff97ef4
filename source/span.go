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
	"fmt"
	"math"
)

// Spanner is any type with a [Span].
type Spanner interface {
	// Returns the zero [Span] to indicate that there is no span information.
	Span() Span
}

// Span is a byte range within a [File].
type Span struct {
	*File

	// The start and end byte offsets for this span.
	Start, End int
}

// Location is a user-displayable location within a file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column, 1-indexed. The unit of Column depends on the [Unit]
	// used to construct it.
	Line, Column int
}

// IsZero returns whether this is the zero span.
func (s Span) IsZero() bool {
	return s.File == nil
}

// Text returns the text covered by this span.
func (s Span) Text() string {
	return s.File.Text()[s.Start:s.End]
}

// Before returns all text before this span.
func (s Span) Before() string {
	return s.File.Text()[:s.Start]
}

// After returns all text after this span.
func (s Span) After() string {
	return s.File.Text()[s.End:]
}

// Len returns the length of this span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns whether offset lies within this span. The end of the span
// counts as inside it, so that an empty span contains its own position.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset <= s.End
}

// StartLoc returns the start location for this span, in terminal columns.
func (s Span) StartLoc() Location {
	return s.File.Location(s.Start, TermWidth)
}

// EndLoc returns the end location for this span, in terminal columns.
func (s Span) EndLoc() Location {
	return s.File.Location(s.End, TermWidth)
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	start := s.StartLoc()
	return fmt.Sprintf("%s:%d:%d[%d:%d]", s.Path(), start.Line, start.Column, s.Start, s.End)
}

// Join returns the smallest span containing every non-zero span given.
//
// Panics if the spans are from different files.
func Join(spans ...Spanner) Span {
	joined := Span{Start: math.MaxInt}
	for _, sp := range spans {
		span := GetSpan(sp)
		if span.IsZero() {
			continue
		}

		if joined.File == nil {
			joined.File = span.File
		} else if joined.File != span.File {
			panic(fmt.Sprintf(
				"bsharp/source: joined spans from distinct files: %q != %q",
				joined.Path(), span.Path(),
			))
		}
		joined.Start = min(joined.Start, span.Start)
		joined.End = max(joined.End, span.End)
	}

	if joined.File == nil {
		return Span{}
	}
	return joined
}

// GetSpan extracts a span from a Spanner, returning the zero span for nil.
func GetSpan(s Spanner) Span {
	if s == nil {
		return Span{}
	}
	return s.Span()
}
