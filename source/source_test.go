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

package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/bsharp/source"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.cs", "int x;\n\tvar 日本 = 1;\r\nfoo")

	tests := []struct {
		offset int
		units  source.Unit
		want   source.Location
	}{
		{offset: 0, units: source.Bytes, want: source.Location{Offset: 0, Line: 1, Column: 1}},
		{offset: 4, units: source.Bytes, want: source.Location{Offset: 4, Line: 1, Column: 5}},
		{offset: 7, units: source.Bytes, want: source.Location{Offset: 7, Line: 2, Column: 1}},
		{offset: 8, units: source.TermWidth, want: source.Location{Offset: 8, Line: 2, Column: 5}},
		{offset: 18, units: source.Bytes, want: source.Location{Offset: 18, Line: 2, Column: 12}},
		{offset: 18, units: source.Runes, want: source.Location{Offset: 18, Line: 2, Column: 8}},
		{offset: 18, units: source.UTF16, want: source.Location{Offset: 18, Line: 2, Column: 8}},
		{offset: 18, units: source.TermWidth, want: source.Location{Offset: 18, Line: 2, Column: 13}},
		{offset: 28, units: source.Bytes, want: source.Location{Offset: 28, Line: 3, Column: 4}},
	}

	for _, tt := range tests {
		got := file.Location(tt.offset, tt.units)
		assert.Equal(t, tt.want, got, "offset %d in %v", tt.offset, tt.units)
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.cs", "a\r\nbc\n\nd")
	assert.Equal(t, 4, file.Lines())
	assert.Equal(t, "a", file.Line(1))
	assert.Equal(t, "bc", file.Line(2))
	assert.Empty(t, file.Line(3))
	assert.Equal(t, "d", file.Line(4))

	assert.Equal(t, 3, file.Offset(2, 1))
	assert.Equal(t, 4, file.Offset(2, 2))
	assert.Equal(t, 8, file.Offset(9, 1))
}

func TestSpan(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.cs", "return x + y;")
	a := file.Span(7, 8)
	b := file.Span(11, 12)

	assert.Equal(t, "x", a.Text())
	assert.Equal(t, "return ", a.Before())

	joined := source.Join(a, source.Span{}, b)
	assert.Equal(t, "x + y", joined.Text())
	assert.True(t, joined.Contains(12))
	assert.False(t, joined.Contains(6))
	assert.True(t, source.Join().IsZero())

	assert.Equal(t, file.Span(13, 13), file.EOF())
	assert.Equal(t, "test.cs:1:8[7:8]", a.String())
}
