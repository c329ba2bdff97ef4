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

package reporter

import (
	"errors"
	"fmt"

	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
)

// ErrInvalidSource is a sentinel error that is returned by compilation and
// stand-alone parsing operations when the source code contains errors but
// the reporter chose to continue past them.
var ErrInvalidSource = errors.New("source is invalid")

// ErrorWithSpan is an error about a B# source file that includes the span in
// the file that caused it.
//
// The value of Error() includes the location of the span. The value of
// Unwrap() is only the underlying error.
type ErrorWithSpan interface {
	error
	report.Diagnose
	Span() source.Span
	Unwrap() error
}

// Error creates a new ErrorWithSpan from the given error and span.
func Error(span source.Span, err error) ErrorWithSpan {
	return errorWithSpan{span: span, underlying: err}
}

// Errorf creates a new ErrorWithSpan whose underlying error is created using
// the given message format and arguments (via fmt.Errorf).
func Errorf(span source.Span, format string, args ...any) ErrorWithSpan {
	return errorWithSpan{span: span, underlying: fmt.Errorf(format, args...)}
}

type errorWithSpan struct {
	underlying error
	span       source.Span
}

func (e errorWithSpan) Error() string {
	if e.span.IsZero() {
		return e.underlying.Error()
	}
	loc := e.span.StartLoc()
	return fmt.Sprintf("%s:%d:%d: %v", e.span.Path(), loc.Line, loc.Column, e.underlying)
}

func (e errorWithSpan) Span() source.Span {
	return e.span
}

func (e errorWithSpan) Unwrap() error {
	return e.underlying
}

// Diagnose implements [report.Diagnose]. If the underlying error knows how
// to describe itself, it is asked to; otherwise the diagnostic points at
// the span.
func (e errorWithSpan) Diagnose(d *report.Diagnostic) {
	var diag report.Diagnose
	if errors.As(e.underlying, &diag) {
		diag.Diagnose(d)
		return
	}
	if e.span.IsZero() {
		return
	}
	d.With(report.Snippet(e.span))
}

var _ ErrorWithSpan = errorWithSpan{}
