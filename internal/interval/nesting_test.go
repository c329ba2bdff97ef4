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

package interval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNesting(t *testing.T) {
	t.Parallel()

	var n Nesting[int, string]
	require.True(t, n.Insert(0, 20, "file"))
	require.True(t, n.Insert(0, 9, "class"))
	require.True(t, n.Insert(10, 20, "enum"))
	require.True(t, n.Insert(2, 5, "method"))
	require.True(t, n.Insert(2, 5, "body"))
	require.True(t, n.Insert(6, 8, "field"))

	assert.Equal(t, 6, n.Len())
	assert.Equal(t, 4, n.Depth())

	values := func(stack []Entry[int, string]) []string {
		var out []string
		for _, e := range stack {
			out = append(out, e.Value)
		}
		return out
	}

	assert.Equal(t, []string{"file", "class", "method", "body"}, values(n.Stack(2)))
	assert.Equal(t, []string{"file", "class", "method", "body"}, values(n.Stack(4)))
	assert.Equal(t, []string{"file", "class"}, values(n.Stack(5)))
	assert.Equal(t, []string{"file", "class", "field"}, values(n.Stack(7)))
	assert.Equal(t, []string{"file"}, values(n.Stack(9)))
	assert.Equal(t, []string{"file", "enum"}, values(n.Stack(19)))
	assert.Empty(t, n.Stack(20))
	assert.Empty(t, n.Stack(-1))

	e, ok := n.Innermost(3)
	require.True(t, ok)
	assert.Equal(t, Entry[int, string]{Start: 2, End: 5, Value: "body"}, e)
	_, ok = n.Innermost(25)
	assert.False(t, ok)
}

func TestNestingRejects(t *testing.T) {
	t.Parallel()

	var n Nesting[uint32, int]
	require.True(t, n.Insert(5, 10, 0))

	assert.False(t, n.Insert(3, 3, 1), "empty")
	assert.False(t, n.Insert(7, 3, 1), "reversed")
	assert.False(t, n.Insert(8, 12, 1), "crosses end")
	assert.False(t, n.Insert(2, 6, 1), "crosses start")
	assert.False(t, n.Insert(0, 20, 1), "contains existing")
	assert.True(t, n.Insert(10, 12, 1), "adjacent")
	assert.True(t, n.Insert(0, 5, 2), "adjacent before")

	require.True(t, n.Insert(6, 8, 3))
	assert.False(t, n.Insert(7, 9, 4), "crosses sibling")
	assert.True(t, n.Insert(8, 10, 4))
	assert.Equal(t, 5, n.Len())
}

func TestNestingEntries(t *testing.T) {
	t.Parallel()

	var n Nesting[int, string]
	n.Insert(0, 10, "a")
	n.Insert(6, 8, "c")
	n.Insert(1, 3, "b")
	n.Insert(20, 30, "d")

	var got []string
	for e := range n.Entries() {
		got = append(got, e.Value)
	}
	assert.Equal(t, []string{"a", "d", "b", "c"}, got)
	assert.Equal(t, "[{[0, 10): a, [20, 30): d}, {[1, 3): b, [6, 8): c}]", fmt.Sprintf("%v", &n))

	got = got[:0]
	for e := range n.Entries() {
		got = append(got, e.Value)
		if e.Value == "d" {
			break
		}
	}
	assert.Equal(t, []string{"a", "d"}, got)

	n.Clear()
	assert.Zero(t, n.Len())
	assert.Empty(t, n.Stack(1))
	assert.True(t, n.Insert(0, 1, "e"))
}
