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

package report_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
)

type testError struct {
	span source.Span
}

func (e testError) Error() string { return "expected ')'" }

func (e testError) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Snippetf(e.span, "here"),
		report.Note("while parsing if statement"),
	)
}

func TestRender(t *testing.T) {
	t.Parallel()

	file := source.NewFile("main.cs", "class A {\n    void M() { if (x > 0 { } }\n}\n")
	var r report.Report
	r.Error(testError{span: file.Span(35, 36)})

	text, errs, warns := report.Renderer{}.RenderString(&r)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 0, warns)
	assert.Equal(t, ""+
		"error: expected ')'\n"+
		"  --> main.cs:2:26\n"+
		"   |\n"+
		" 2 |     void M() { if (x > 0 { } }\n"+
		"   |                          ^ here\n"+
		"   = note: while parsing if statement\n"+
		"\n"+
		"encountered 1 error\n",
		text,
	)

	text, _, _ = report.Renderer{Compact: true}.RenderString(&r)
	assert.Equal(t, "main.cs:2:26: error: expected ')'\n", text)
}

func TestRenderSpanless(t *testing.T) {
	t.Parallel()

	var r report.Report
	r.Error(&report.ErrInFile{Err: errors.New("file not found"), Path: "a.cs"})
	r.Warnf("something odd")
	r.Remarkf("quiet")

	text, errs, warns := report.Renderer{Compact: true, WarningsAreErrors: true}.RenderString(&r)
	assert.Equal(t, 2, errs)
	assert.Equal(t, 0, warns)
	assert.Equal(t, "a.cs: error: file not found\nerror: something odd\n", text)

	require.True(t, r.HasErrors())
	err := &report.AsError{Report: r}
	assert.Contains(t, err.Error(), "a.cs: error: file not found")
}

func TestSort(t *testing.T) {
	t.Parallel()

	a := source.NewFile("a.cs", "x y z")
	b := source.NewFile("b.cs", "x y z")

	var r report.Report
	r.Errorf("third").With(report.Snippet(b.Span(0, 1)))
	r.Errorf("second").With(report.Snippet(a.Span(2, 3)))
	r.Errorf("first").With(report.Snippet(a.Span(0, 1)))
	r.Sort()

	var got []string
	for _, d := range r {
		got = append(got, d.Err.Error())
	}
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestRenderColor(t *testing.T) {
	t.Parallel()

	var r report.Report
	r.Warnf("odd")

	text, _, _ := report.Renderer{Compact: true, Colorize: true}.RenderString(&r)
	assert.Equal(t, "\033[0;33mwarning: odd\033[0m\n", text)

	text, _, _ = report.Renderer{Compact: true, Colorize: true, WarningsAreErrors: true}.RenderString(&r)
	assert.Equal(t, "\033[0;31merror: odd\033[0m\n", text)

	text, _, _ = report.Renderer{Compact: true}.RenderString(&r)
	assert.Equal(t, "warning: odd\n", text)
}
