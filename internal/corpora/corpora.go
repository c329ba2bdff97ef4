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

// Package corpora runs golden-file tests.
//
// A corpus is a directory of input files. Each input is passed to a test
// function, and each string it returns is compared to a file next to the
// input, named after it plus an output extension: the AST of parse.cs is
// kept in parse.cs.ast. A missing output file is expected to be empty.
//
// Setting the corpus's Refresh environment variable to a glob rewrites the
// outputs of every matching input instead of comparing them.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a table-driven test whose table lives in the file system.
type Corpus struct {
	// Root is the directory holding the inputs. A relative path is resolved
	// against the directory of the file that calls [Corpus.Run].
	Root string

	// Refresh names the environment variable holding the refresh glob.
	Refresh string

	// Extension selects input files, without the dot, e.g. "cs".
	Extension string

	Outputs []Output

	// Test runs one input and returns one string per element of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one product of a test case.
type Output struct {
	// Extension is appended to the input's name to find the golden file.
	Extension string

	// Compare compares outputs. If nil, they must match exactly.
	Compare Compare
}

// Compare returns an empty string if got matches want, and a description of
// the mismatch otherwise.
type Compare func(got, want string) string

// Run executes every case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	root := c.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(callerDir(0), root)
	}

	cases, err := c.cases(root)
	if err != nil {
		t.Fatalf("corpora: listing %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpora: no .%s files in %q", c.Extension, root)
	}

	refresh := ""
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: %s=%q is not a valid glob", c.Refresh, refresh)
		}
	}

	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(root, name)
			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: reading input: %v", err)
			}

			results := c.Test(t, filepath.ToSlash(name), string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			update := false
			if refresh != "" {
				update, _ = doublestar.Match(refresh, filepath.ToSlash(name))
			}
			for i, output := range c.Outputs {
				golden := path + "." + output.Extension
				if update {
					if err := write(golden, results[i]); err != nil {
						t.Errorf("corpora: %v", err)
					}
					continue
				}
				if diff := output.compare(golden, results[i]); diff != "" {
					t.Errorf("corpora: mismatch in %s:\n%s", filepath.Base(golden), diff)
				}
			}
		})
	}

	if refresh != "" {
		t.Errorf("corpora: refreshed outputs matching %s=%q; unset it to compare", c.Refresh, refresh)
	}
}

// cases lists the inputs under root, relative to it, in lexical order.
func (c Corpus) cases(root string) ([]string, error) {
	var cases []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.TrimPrefix(filepath.Ext(path), ".") != c.Extension {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		cases = append(cases, rel)
		return err
	})
	slices.Sort(cases)
	return cases, err
}

func (o Output) compare(golden, got string) string {
	want, err := os.ReadFile(golden)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err.Error()
	}
	cmp := o.Compare
	if cmp == nil {
		cmp = Diff
	}
	return cmp(got, string(want))
}

// write stores an output, removing the file when the output is empty.
func write(golden, text string) error {
	if text == "" {
		if err := os.Remove(golden); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(golden, []byte(text), 0o644)
}

// Diff is the default [Compare]: an exact match, reported as a unified diff
// from want to got.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	if diff == "" {
		// Only trailing newlines differ.
		return fmt.Sprintf("want %q\n got %q", want, got)
	}
	return diff
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine the calling test's directory")
	}
	return filepath.Dir(file)
}
