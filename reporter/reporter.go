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

// Package reporter contains the types used for reporting errors from
// parsing operations that span many files.
package reporter

import (
	"errors"
	"sync"

	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, parsing of further files will abort with that
// error. If the reporter returns nil, parsing will continue, allowing the
// caller to see every failure at once.
type ErrorReporter func(err ErrorWithSpan) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never fail a parse; they flag things that are legal but suspicious, such as
// conflicting modifiers.
type WarningReporter func(ErrorWithSpan)

// Reporter is a type that handles reporting both errors and warnings.
// Implementations must be safe for concurrent use.
type Reporter interface {
	// Error is called when the given error is encountered. If the returned
	// error is non-nil, the operation aborts with it.
	Error(ErrorWithSpan) error
	// Warning is called when a warning is encountered.
	Warning(ErrorWithSpan)
}

// NewReporter creates a new reporter that invokes the given functions on
// error or warning. A nil errs fails on the first error; nil warnings
// discards them.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithSpan) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithSpan) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Collector is a Reporter that records every error and warning into a
// [report.Report] and never aborts.
type Collector struct {
	mu     sync.Mutex
	report report.Report
}

var _ Reporter = (*Collector)(nil)

// Error implements [Reporter].
func (c *Collector) Error(err ErrorWithSpan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Error(bare(err))
	return nil
}

// Warning implements [Reporter].
func (c *Collector) Warning(err ErrorWithSpan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Warn(bare(err))
}

// Report returns a sorted copy of everything collected so far.
func (c *Collector) Report() report.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := append(report.Report(nil), c.report...)
	r.Sort()
	return r
}

// bare drops the location prefix from err's message, since rendered
// diagnostics show the location themselves.
func bare(err ErrorWithSpan) report.Diagnose {
	var diag report.Diagnose
	if errors.As(err.Unwrap(), &diag) {
		return diag
	}
	return located{err}
}

type located struct{ ErrorWithSpan }

func (l located) Error() string { return l.Unwrap().Error() }

// Handler is used by parsing operations for handling errors and warnings.
// This type is thread-safe. It remembers the first error returned by the
// underlying reporter, after which all further errors are short-circuited.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a new Handler that reports errors and warnings using
// the given reporter.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf handles an error with the given span, creating the error
// using the given message format and arguments.
func (h *Handler) HandleErrorf(span source.Span, format string, args ...any) error {
	return h.HandleError(Errorf(span, format, args...))
}

// HandleError handles the given error. If it is an [ErrorWithSpan], it is
// reported, and this function returns the error returned by the reporter.
// Otherwise the error is remembered and returned as is.
//
// Once an error has stopped the operation, every subsequent call returns
// that same error.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	var ews ErrorWithSpan
	if errors.As(err, &ews) {
		h.errsReported = true
		err = h.reporter.Error(ews)
	}
	h.err = err
	return err
}

// HandleWarning handles the given warning. This will delegate to the
// handler's configured reporter.
func (h *Handler) HandleWarning(span source.Span, err error) {
	// Warnings don't touch mutable state.
	h.reporter.Warning(Error(span, err))
}

// Error returns the handler result. If any errors have been reported then
// this returns a non-nil error. If the reporter never returned a non-nil
// error then [ErrInvalidSource] is returned. Otherwise, this returns the
// error returned by the handler's reporter (the same value returned by
// ReporterError).
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error returned by the handler's reporter. If
// the reporter has either not been invoked (no errors handled) or has not
// returned any non-nil value, then this returns nil.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
