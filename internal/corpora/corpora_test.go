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

package corpora

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := map[string]string{
		"a.txt":           "hello",
		"a.txt.upper":     "HELLO",
		"sub/b.txt":       "x y",
		"sub/b.txt.upper": "X Y",
		"sub/b.txt.words": "2",
		"ignored.md":      "not a case",
	}
	for name, text := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}

	var (
		mu   sync.Mutex
		seen []string
	)
	Corpus{
		Root:      root,
		Extension: "txt",
		Outputs: []Output{
			{Extension: "upper"},
			{Extension: "words", Compare: func(got, want string) string {
				if want == "" || got == want {
					return ""
				}
				return "word count " + got + " != " + want
			}},
		},
		Test: func(t *testing.T, path, text string) []string {
			mu.Lock()
			seen = append(seen, path)
			mu.Unlock()
			return []string{strings.ToUpper(text), "2"}
		},
	}.Run(t)

	t.Cleanup(func() {
		assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, seen)
	})
}

func TestCases(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"b.cs", "a.cs", "a.cs.ast", "z/c.cs"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	cases, err := Corpus{Extension: "cs"}.cases(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.cs", "b.cs", filepath.Join("z", "c.cs")}, cases)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	golden := filepath.Join(t.TempDir(), "x.cs.ast")
	require.NoError(t, write(golden, "out\n"))
	assert.Empty(t, Output{}.compare(golden, "out\n"))
	assert.NotEmpty(t, Output{}.compare(golden, "other\n"))

	require.NoError(t, write(golden, ""))
	_, err := os.Stat(golden)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, Output{}.compare(golden, ""))
	require.NoError(t, write(golden, ""))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Diff("a\nb\n", "a\nb\n"))

	diff := Diff("a\nc\n", "a\nb\n")
	assert.Contains(t, diff, "--- want")
	assert.Contains(t, diff, "+++ got")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")
}
