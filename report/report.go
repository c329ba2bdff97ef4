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
	"cmp"
	"fmt"
	"slices"

	"github.com/bufbuild/bsharp/source"
)

const (
	// Red. Indicates that the input could not be processed.
	Error Level = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark

	note // Used internally within the renderer.
)

// Level represents the severity of a diagnostic message.
type Level int8

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	case note:
		return "note"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set Level nor Err; those are set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Diagnostic is a single message in a [Report].
type Diagnostic struct {
	// The error that prompted this diagnostic. Its Error() return is used
	// as the diagnostic message.
	Err error

	// The kind of diagnostic this is.
	Level Level

	// The file this diagnostic occurs in, if it has no Annotations.
	InFile string

	// Annotated source code spans.
	Annotations []Annotation

	// Footers shown after the Annotations.
	Notes, Help []string
}

// Annotation is an annotated source code span within a [Diagnostic].
type Annotation struct {
	source.Span

	// A message to show under this snippet. May be empty.
	Message string

	// Whether this is the primary annotation, which determines the location
	// reported for the diagnostic as a whole.
	Primary bool
}

// Primary returns this diagnostic's primary annotation.
//
// If it doesn't have one, it returns an annotation with a zero span.
func (d *Diagnostic) Primary() Annotation {
	for _, a := range d.Annotations {
		if a.Primary {
			return a
		}
	}
	return Annotation{Primary: true}
}

// Path returns the path of the file this diagnostic is in, if known.
func (d *Diagnostic) Path() string {
	if p := d.Primary(); !p.IsZero() {
		return p.Path()
	}
	return d.InFile
}

// With applies the given options to this diagnostic.
func (d *Diagnostic) With(options ...DiagnosticOption) {
	for _, option := range options {
		if option != nil {
			option(d)
		}
	}
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
type DiagnosticOption func(*Diagnostic)

// InFile returns a DiagnosticOption that causes a diagnostic without a
// primary span to mention the given file.
func InFile(path string) DiagnosticOption {
	return func(d *Diagnostic) { d.InFile = path }
}

// Snippet adds an annotation with no message.
//
// The first annotation added is the primary one.
func Snippet(at source.Spanner) DiagnosticOption {
	return Snippetf(at, "")
}

// Snippetf adds an annotation with the given message.
//
// The first annotation added is the primary one.
func Snippetf(at source.Spanner, format string, args ...any) DiagnosticOption {
	span := source.GetSpan(at)
	if span.IsZero() {
		return nil
	}

	annotation := Annotation{Span: span, Message: fmt.Sprintf(format, args...)}
	return func(d *Diagnostic) {
		annotation.Primary = len(d.Annotations) == 0
		d.Annotations = append(d.Annotations, annotation)
	}
}

// Note adds a footer with context about the diagnostic.
func Note(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	}
}

// Help adds a footer with a suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Help = append(d.Help, fmt.Sprintf(format, args...))
	}
}

// Report is a collection of diagnostics.
type Report []Diagnostic

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) {
	err.Diagnose(r.push(err, Error))
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) {
	err.Diagnose(r.push(err, Warning))
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err Diagnose) {
	err.Diagnose(r.push(err, Remark))
}

// Errorf creates a new error diagnostic; analogous to [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Error)
}

// Warnf creates a new warning diagnostic; analogous to [fmt.Errorf].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Warning)
}

// Remarkf creates a new remark diagnostic; analogous to [fmt.Errorf].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Remark)
}

// HasErrors returns whether this report contains any error diagnostics.
func (r *Report) HasErrors() bool {
	return slices.ContainsFunc(*r, func(d Diagnostic) bool {
		return d.Level == Error
	})
}

// Sort sorts the diagnostics by file, then by position, then by level.
// Diagnostics that compare equal keep their relative order.
func (r *Report) Sort() {
	slices.SortStableFunc(*r, func(a, b Diagnostic) int {
		pa, pb := a.Primary(), b.Primary()
		return cmp.Or(
			cmp.Compare(a.Path(), b.Path()),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.Level, b.Level),
		)
	})
}

// Merge appends the diagnostics of other to this report.
func (r *Report) Merge(other Report) {
	*r = append(*r, other...)
}

func (r *Report) push(err error, level Level) *Diagnostic {
	*r = append(*r, Diagnostic{Err: err, Level: level})
	return &(*r)[len(*r)-1]
}
