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

package combinator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bufbuild/bsharp/internal/ext/unicodex"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
)

// Kind is the shape of an [Error] node.
type Kind int8

const (
	// Leaf records a position and what was expected there.
	Leaf Kind = iota
	// Context wraps an error with the name of the grammar stage that
	// produced it.
	Context
	// Alternatives aggregates every branch tried by a choice point.
	Alternatives
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Context:
		return "context"
	case Alternatives:
		return "alternatives"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a structured parse failure.
type Error struct {
	Kind Kind

	// If set, this error aborts all enclosing choice points.
	Fatal bool

	// Where this error occurred. For a leaf, this is an empty span where the
	// expected thing was looked for. For a context, it is the position the
	// stage started at.
	Span source.Span

	// What a leaf expected, e.g. "')'" or "expression".
	Expected string

	// The stage name of a context node.
	Stage string

	// The wrapped error of a context node.
	Inner *Error

	// The branches of an alternatives node.
	Alts []*Error
}

var _ report.Diagnose = (*Error)(nil)

// Fail returns a recoverable leaf error at the first non-trivia position of
// in.
func Fail(in Input, expected string) *Error {
	return FailAt(SkipTrivia(in), expected)
}

// FailAt is like [Fail] but reports exactly at in. Use it for errors inside
// a token, where whitespace is part of the token's text.
func FailAt(in Input, expected string) *Error {
	return &Error{
		Kind:     Leaf,
		Span:     in.Point(),
		Expected: expected,
	}
}

// Failf is like [Fail] but formats the expectation.
func Failf(in Input, format string, args ...any) *Error {
	return Fail(in, fmt.Sprintf(format, args...))
}

// Either combines several errors into an alternatives node.
//
// Nil errors are dropped, nested alternatives are flattened, and a single
// remaining error is returned as is. The result is fatal if any input is.
func Either(errs ...*Error) *Error {
	var alts []*Error
	fatal := false
	for _, err := range errs {
		switch {
		case err == nil:
			continue
		case err.Kind == Alternatives:
			alts = append(alts, err.Alts...)
		default:
			alts = append(alts, err)
		}
		fatal = fatal || err.Fatal
	}

	switch len(alts) {
	case 0:
		return nil
	case 1:
		if fatal && !alts[0].Fatal {
			return alts[0].AsFatal()
		}
		return alts[0]
	}

	span := alts[0].Span
	for _, alt := range alts[1:] {
		if alt.Span.Start < span.Start {
			span = alt.Span
		}
	}
	return &Error{Kind: Alternatives, Fatal: fatal, Span: span, Alts: alts}
}

// Wrap wraps err in a context node for the given stage. Fatality is
// inherited from err.
func (e *Error) Wrap(stage string, at Input) *Error {
	return &Error{
		Kind:  Context,
		Fatal: e.Fatal,
		Span:  SkipTrivia(at).Point(),
		Stage: stage,
		Inner: e,
	}
}

// AsFatal returns a fatal copy of this error.
func (e *Error) AsFatal() *Error {
	if e.Fatal {
		return e
	}
	fatal := *e
	fatal.Fatal = true
	return &fatal
}

// Deepest returns the leaf that got furthest into the input. Ties are
// broken in favor of the earliest branch.
func (e *Error) Deepest() *Error {
	leaf, _ := e.deepest()
	return leaf
}

// Stages returns the names of the contexts enclosing [Error.Deepest], from
// outermost to innermost.
func (e *Error) Stages() []string {
	_, stages := e.deepest()
	return stages
}

// Expectations returns every distinct expectation among leaves at the same
// position as [Error.Deepest], in the order they were tried.
func (e *Error) Expectations() []string {
	deepest := e.Deepest()
	var out []string
	e.leaves(func(leaf *Error) {
		if leaf.Span.Start == deepest.Span.Start && !slices.Contains(out, leaf.Expected) {
			out = append(out, leaf.Expected)
		}
	})
	return out
}

// Location returns the user-facing location of [Error.Deepest].
func (e *Error) Location() source.Location {
	return e.Deepest().Span.StartLoc()
}

// Error implements [error].
func (e *Error) Error() string {
	leaf := e.Deepest()
	return fmt.Sprintf("unexpected %s, expected %s", describe(leaf.Span), orList(e.Expectations()))
}

// Diagnose implements [report.Diagnose].
func (e *Error) Diagnose(d *report.Diagnostic) {
	leaf := e.Deepest()
	stages := e.Stages()

	found := leaf.Span
	if r := found.After(); r != "" {
		found.End += tokenLen(r)
	}

	msg := ""
	if len(stages) > 0 {
		msg = "in " + stages[len(stages)-1]
	}
	d.With(report.Snippetf(found, "%s", msg))
	if len(stages) > 1 {
		d.With(report.Note("while parsing %s", strings.Join(stages, " > ")))
	}
}

// String returns a debug rendering of the whole tree.
func (e *Error) String() string {
	var b strings.Builder
	e.dump(&b, 0)
	return b.String()
}

func (e *Error) deepest() (*Error, []string) {
	switch e.Kind {
	case Context:
		leaf, stages := e.Inner.deepest()
		return leaf, append([]string{e.Stage}, stages...)
	case Alternatives:
		var (
			best   *Error
			stages []string
		)
		for _, alt := range e.Alts {
			leaf, s := alt.deepest()
			if best == nil || leaf.Span.Start > best.Span.Start {
				best, stages = leaf, s
			}
		}
		return best, stages
	default:
		return e, nil
	}
}

func (e *Error) leaves(yield func(*Error)) {
	switch e.Kind {
	case Context:
		e.Inner.leaves(yield)
	case Alternatives:
		for _, alt := range e.Alts {
			alt.leaves(yield)
		}
	default:
		yield(e)
	}
}

func (e *Error) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	loc := e.Span.StartLoc()
	fatal := ""
	if e.Fatal {
		fatal = " fatal"
	}
	switch e.Kind {
	case Leaf:
		fmt.Fprintf(b, "%d:%d%s expected %s\n", loc.Line, loc.Column, fatal, e.Expected)
	case Context:
		fmt.Fprintf(b, "%d:%d%s in %s\n", loc.Line, loc.Column, fatal, e.Stage)
		e.Inner.dump(b, depth+1)
	case Alternatives:
		fmt.Fprintf(b, "%d:%d%s one of\n", loc.Line, loc.Column, fatal)
		for _, alt := range e.Alts {
			alt.dump(b, depth+1)
		}
	}
}

// describe names whatever starts at span for an error message.
func describe(span source.Span) string {
	rest := span.After()
	if rest == "" {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", rest[:tokenLen(rest)])
}

// tokenLen returns the length of the word or single rune at the start of s.
func tokenLen(s string) int {
	word := len(strings.TrimLeftFunc(s, unicodex.IsIdentPart))
	if n := len(s) - word; n > 0 {
		return n
	}
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}

func orList(items []string) string {
	switch len(items) {
	case 0:
		return "something else"
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return "one of " + strings.Join(items, ", ")
	}
}
