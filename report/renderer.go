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

package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/bufbuild/bsharp/internal/ext/unicodex"
	"github.com/bufbuild/bsharp/source"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// Upgrades all warnings to errors.
	WarningsAreErrors bool

	// If set, remark diagnostics will be printed.
	ShowRemarks bool
}

// Render renders a diagnostic report.
//
// Returns the number of errors and warnings rendered. The error return is
// only for failures writing to out.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	c := newPalette(r)
	for _, d := range *report {
		if !r.ShowRemarks && d.Level == Remark {
			continue
		}

		if _, err = fmt.Fprintln(out, r.Diagnostic(d)); err != nil {
			return errorCount, warningCount, err
		}
		if !r.Compact {
			if _, err = fmt.Fprintln(out); err != nil {
				return errorCount, warningCount, err
			}
		}

		switch {
		case d.Level == Error, d.Level == Warning && r.WarningsAreErrors:
			errorCount++
		case d.Level == Warning:
			warningCount++
		}
	}
	if r.Compact {
		return errorCount, warningCount, nil
	}

	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	switch {
	case errorCount > 0 && warningCount > 0:
		_, err = fmt.Fprintln(out, c.color(Error, true)+"encountered", pluralize(errorCount, "error"),
			"and", pluralize(warningCount, "warning")+c.reset)
	case errorCount > 0:
		_, err = fmt.Fprintln(out, c.color(Error, true)+"encountered", pluralize(errorCount, "error")+c.reset)
	case warningCount > 0:
		_, err = fmt.Fprintln(out, c.color(Warning, true)+"encountered", pluralize(warningCount, "warning")+c.reset)
	}
	return errorCount, warningCount, err
}

// RenderString is a helper for calling [Renderer.Render] with a
// [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	e, w, _ := r.Render(report, &buf)
	return buf.String(), e, w
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d Diagnostic) string {
	level := d.Level
	if level == Warning && r.WarningsAreErrors {
		level = Error
	}
	c := newPalette(r)

	// For the compact style, we imitate the Go compiler.
	if r.Compact {
		primary := d.Primary()
		switch {
		case !primary.IsZero():
			start := primary.StartLoc()
			return fmt.Sprintf("%s%s:%d:%d: %s: %s%s",
				c.color(level, false), primary.Path(), start.Line, start.Column,
				level, d.Err.Error(), c.reset)
		case d.InFile != "":
			return fmt.Sprintf("%s%s: %s: %s%s",
				c.color(level, false), d.InFile, level, d.Err.Error(), c.reset)
		default:
			return fmt.Sprintf("%s%s: %s%s",
				c.color(level, false), level, d.Err.Error(), c.reset)
		}
	}

	var out strings.Builder
	fmt.Fprint(&out, c.color(level, true), level, ": ", d.Err.Error(), c.reset)

	var greatestLine int
	for _, a := range d.Annotations {
		greatestLine = max(greatestLine, a.EndLoc().Line)
	}
	gutter := max(2, len(strconv.Itoa(greatestLine)))

	// One window per file, in order of first appearance.
	var files []*source.File
	for _, a := range d.Annotations {
		if !slices.Contains(files, a.File) {
			files = append(files, a.File)
		}
	}
	for i, file := range files {
		var window []Annotation
		for _, a := range d.Annotations {
			if a.File == file {
				window = append(window, a)
			}
		}

		arrow := "-->"
		if i > 0 {
			arrow = ":::"
		}
		first := window[0].StartLoc()
		fmt.Fprintf(&out, "\n%s%s%s %s:%d:%d",
			c.accent, pad(gutter), arrow, file.Path(), first.Line, first.Column)
		fmt.Fprintf(&out, "\n%s |%s", pad(gutter), c.reset)
		r.window(&out, c, level, gutter, window)
	}

	if len(d.Annotations) == 0 && d.InFile != "" {
		fmt.Fprintf(&out, "\n%s%s--> %s%s", c.accent, pad(gutter), d.InFile, c.reset)
	}

	for _, footer := range d.Notes {
		r.footer(&out, c, gutter, "note", footer)
	}
	for _, footer := range d.Help {
		r.footer(&out, c, gutter, "help", footer)
	}

	return out.String()
}

// window renders the source lines of annotations in a single file, each
// followed by an underline.
func (r Renderer) window(out *strings.Builder, c palette, level Level, gutter int, annotations []Annotation) {
	slices.SortStableFunc(annotations, func(a, b Annotation) int {
		return a.Start - b.Start
	})

	lastLine := 0
	for _, a := range annotations {
		start := a.File.Location(a.Start, source.Bytes)
		if start.Line != lastLine {
			if lastLine != 0 && start.Line > lastLine+1 {
				fmt.Fprintf(out, "\n%s%s...%s", c.accent, pad(gutter-1), c.reset)
			}
			text := a.File.Line(start.Line)
			var line strings.Builder
			w := unicodex.Width{EscapeNonPrint: true, Out: &line}
			_, _ = w.WriteString(text)
			fmt.Fprintf(out, "\n%s%*d |%s %s", c.accent, gutter, start.Line, c.reset, line.String())
			lastLine = start.Line
		}

		// Underline from the start column to the end of the span or the end
		// of its first line, whichever comes first.
		lineStart, lineEnd := a.File.LineOffsets(start.Line)
		text := a.File.Text()[lineStart:lineEnd]
		text = strings.TrimRight(text, "\r\n")
		from := a.Start - lineStart
		to := min(a.End-lineStart, len(text))

		w := unicodex.Width{EscapeNonPrint: true}
		_, _ = w.WriteString(text[:from])
		col := w.Column
		_, _ = w.WriteString(text[from:max(from, to)])
		width := max(1, w.Column-col)

		color, mark := c.accent, "-"
		if a.Primary {
			color, mark = c.color(level, true), "^"
		}
		fmt.Fprintf(out, "\n%s%s |%s %s%s%s",
			c.accent, pad(gutter), c.reset,
			pad(col), color, strings.Repeat(mark, width))
		if a.Message != "" {
			out.WriteString(" ")
			out.WriteString(a.Message)
		}
		out.WriteString(c.reset)
	}
}

func (r Renderer) footer(out *strings.Builder, c palette, gutter int, kind, text string) {
	fmt.Fprintf(out, "\n%s%s = %s%s:%s ", c.accent, pad(gutter), c.color(Remark, true), kind, c.reset)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteString("\n")
			out.WriteString(pad(gutter + 3 + len(kind) + 2))
		}
		out.WriteString(line)
	}
}

func pad(n int) string {
	return strings.Repeat(" ", max(0, n))
}
