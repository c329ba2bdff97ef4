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

package bsharp

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/reporter"
)

func TestErrorReporting(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"ok.cs":    "class Ok { }",
		"test1.cs": "class A {\n    int x\n}\n",
		"test2.cs": "namespace N\n{\n    enum E { A = }\n}\n",
		"test3.cs": "x = ;\n",
	}
	names := []string{"ok.cs", "test1.cs", "test2.cs", "test3.cs"}

	tooManyErrors := errors.New("too many errors")
	fail := errors.New("failure!")

	t.Run("tracking", func(t *testing.T) {
		t.Parallel()

		var (
			mu   sync.Mutex
			errs []string
		)
		comp := Compiler{
			Resolver: memResolver(files),
			Reporter: reporter.NewReporter(func(err reporter.ErrorWithSpan) error {
				mu.Lock()
				defer mu.Unlock()
				errs = append(errs, err.Error())
				return nil
			}, nil),
		}
		_, err := comp.Compile(t.Context(), names...)
		require.ErrorIs(t, err, reporter.ErrInvalidSource)

		sort.Strings(errs)
		require.Len(t, errs, 3)
		for i, prefix := range []string{"test1.cs:3:1: ", "test2.cs:3:18: ", "test3.cs:1:5: "} {
			assert.True(t, strings.HasPrefix(errs[i], prefix), "%q lacks %q", errs[i], prefix)
			assert.Contains(t, errs[i], "unexpected")
		}
	})

	t.Run("limited", func(t *testing.T) {
		t.Parallel()

		var (
			mu    sync.Mutex
			count int
		)
		comp := Compiler{
			Resolver:       memResolver(files),
			MaxParallelism: 1,
			Reporter: reporter.NewReporter(func(reporter.ErrorWithSpan) error {
				mu.Lock()
				defer mu.Unlock()
				count++
				if count > 1 {
					return tooManyErrors
				}
				return nil
			}, nil),
		}
		_, err := comp.Compile(t.Context(), names...)
		require.ErrorIs(t, err, tooManyErrors)
		assert.Equal(t, 2, count)
	})

	t.Run("fail fast", func(t *testing.T) {
		t.Parallel()

		var (
			mu    sync.Mutex
			count int
		)
		comp := Compiler{
			Resolver:       memResolver(files),
			MaxParallelism: 1,
			Reporter: reporter.NewReporter(func(reporter.ErrorWithSpan) error {
				mu.Lock()
				defer mu.Unlock()
				count++
				return fail
			}, nil),
		}
		_, err := comp.Compile(t.Context(), names...)
		require.ErrorIs(t, err, fail)
		assert.Equal(t, 1, count)
	})
}
