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

package reporter_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/reporter"
	"github.com/bufbuild/bsharp/source"
)

func TestErrorWithSpan(t *testing.T) {
	t.Parallel()

	file := source.NewFile("a.cs", "class C {\n  int x\n}\n")
	span := file.Span(16, 17)
	cause := errors.New("missing semicolon")
	err := reporter.Error(span, cause)

	assert.Equal(t, "a.cs:2:7: missing semicolon", err.Error())
	assert.Equal(t, span, err.Span())
	require.ErrorIs(t, err, cause)

	var r report.Report
	r.Error(err)
	require.Len(t, r, 1)
	assert.Equal(t, span, r[0].Primary().Span)

	assert.Equal(t, "boom", reporter.Errorf(source.Span{}, "boom").Error())
}

func TestHandlerFailFast(t *testing.T) {
	t.Parallel()

	file := source.NewFile("a.cs", "x")
	h := reporter.NewHandler(nil)
	assert.NoError(t, h.Error())

	first := h.HandleErrorf(file.Span(0, 1), "first")
	require.Error(t, first)
	second := h.HandleErrorf(file.Span(0, 1), "second")
	assert.Equal(t, first, second)
	assert.Equal(t, first, h.Error())
	assert.Equal(t, first, h.ReporterError())
}

func TestHandlerContinue(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		errs     []string
		warnings []string
	)
	rep := reporter.NewReporter(
		func(err reporter.ErrorWithSpan) error {
			mu.Lock()
			defer mu.Unlock()
			errs = append(errs, err.Unwrap().Error())
			return nil
		},
		func(err reporter.ErrorWithSpan) {
			mu.Lock()
			defer mu.Unlock()
			warnings = append(warnings, err.Unwrap().Error())
		},
	)
	h := reporter.NewHandler(rep)
	file := source.NewFile("a.cs", "x y")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.HandleErrorf(file.Span(0, 1), "bad"))
			h.HandleWarning(file.Span(2, 3), errors.New("odd"))
		}()
	}
	wg.Wait()

	assert.Len(t, errs, 8)
	assert.Len(t, warnings, 8)
	require.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)
	assert.NoError(t, h.ReporterError())
}

func TestHandlerPlainError(t *testing.T) {
	t.Parallel()

	h := reporter.NewHandler(reporter.NewReporter(func(reporter.ErrorWithSpan) error {
		t.Fatal("plain errors bypass the reporter")
		return nil
	}, nil))
	plain := errors.New("disk on fire")
	assert.Equal(t, plain, h.HandleError(plain))
	assert.Equal(t, plain, h.Error())
}

func TestCollector(t *testing.T) {
	t.Parallel()

	file := source.NewFile("b.cs", "class C { int x }")
	_, perr := parser.Complete(combinator.Parser[*ast.CompilationUnit](parser.CompilationUnit), file)
	require.NotNil(t, perr)

	var c reporter.Collector
	h := reporter.NewHandler(&c)
	assert.NoError(t, h.HandleError(reporter.Error(perr.Deepest().Span, perr)))
	h.HandleWarning(file.Span(0, 5), errors.New("suspicious"))
	require.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)

	r := c.Report()
	require.Len(t, r, 2)
	assert.Equal(t, report.Warning, r[0].Level)
	assert.Equal(t, "suspicious", r[0].Err.Error())
	assert.Equal(t, report.Error, r[1].Level)
	assert.Same(t, perr, r[1].Err)
	assert.Equal(t, "b.cs", r[1].Path())

	text, errCount, warnCount := report.Renderer{Compact: true}.RenderString(&r)
	assert.Equal(t, 1, errCount)
	assert.Equal(t, 1, warnCount)
	assert.Contains(t, text, "b.cs:1:1: warning: suspicious")
	assert.Contains(t, text, "error: unexpected")
}
