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

import "github.com/bufbuild/bsharp/source"

// Parser is a function that consumes a prefix of its input.
//
// On success it returns the position after what it consumed, the value it
// produced, and a nil error. On failure it returns its input unchanged, the
// zero value, and a non-nil error.
type Parser[T any] func(in Input) (Input, T, *Error)

// Parse runs p on in. It exists so that plain functions with the right
// signature can be used without a conversion.
func (p Parser[T]) Parse(in Input) (Input, T, *Error) {
	return p(in)
}

// Success returns a parser that consumes nothing and produces v.
func Success[T any](v T) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		return in, v, nil
	}
}

// Alt tries each parser in order and returns the first success.
//
// A fatal failure stops the search immediately. If every branch fails
// recoverably, the result is an alternatives error with all of them.
func Alt[T any](parsers ...Parser[T]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		var (
			zero T
			errs []*Error
		)
		for _, p := range parsers {
			out, v, err := p(in)
			if err == nil {
				return out, v, nil
			}
			if err.Fatal {
				return in, zero, err
			}
			errs = append(errs, err)
		}
		return in, zero, Either(errs...)
	}
}

// Map transforms the output of p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Input) (Input, B, *Error) {
		out, a, err := p(in)
		if err != nil {
			var zero B
			return in, zero, err
		}
		return out, f(a), nil
	}
}

// MapSpan is like [Map], but also passes the span p consumed to f.
func MapSpan[A, B any](p Parser[A], f func(source.Span, A) B) Parser[B] {
	return func(in Input) (Input, B, *Error) {
		out, a, err := p(in)
		if err != nil {
			var zero B
			return in, zero, err
		}
		return out, f(in.SpanTo(out), a), nil
	}
}

// Value runs p and discards its output in favor of v.
func Value[A, B any](v B, p Parser[A]) Parser[B] {
	return Map(p, func(A) B { return v })
}

// Recognize runs p and returns the source text it consumed, without
// surrounding trivia.
func Recognize[T any](p Parser[T]) Parser[string] {
	return MapSpan(p, func(s source.Span, _ T) string { return s.Text() })
}

// Verify runs p and then fails recoverably if pred rejects its output.
func Verify[T any](p Parser[T], expected string, pred func(T) bool) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		out, v, err := p(in)
		if err != nil {
			return in, v, err
		}
		if !pred(v) {
			var zero T
			return in, zero, Fail(in, expected)
		}
		return out, v, nil
	}
}

// Opt runs p, and produces the zero value without consuming anything if p
// fails recoverably.
func Opt[T any](p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		out, v, err := p(in)
		if err != nil && !err.Fatal {
			var zero T
			return in, zero, nil
		}
		return out, v, err
	}
}

// Present is like [Opt], but reports whether p matched instead of its value.
func Present[T any](p Parser[T]) Parser[bool] {
	return func(in Input) (Input, bool, *Error) {
		out, _, err := p(in)
		switch {
		case err == nil:
			return out, true, nil
		case err.Fatal:
			return in, false, err
		default:
			return in, false, nil
		}
	}
}

// Peek runs p without consuming any input.
func Peek[T any](p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		_, v, err := p(in)
		return in, v, err
	}
}

// Not succeeds without consuming anything exactly when p fails.
//
// Any failure of p counts, including a fatal one: p is only being used as
// lookahead here.
func Not[T any](p Parser[T], unexpected string) Parser[struct{}] {
	return func(in Input) (Input, struct{}, *Error) {
		if _, _, err := p(in); err == nil {
			return in, struct{}{}, Failf(in, "anything but %s", unexpected)
		}
		return in, struct{}{}, nil
	}
}

// Cut makes every failure of p fatal.
func Cut[T any](p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		out, v, err := p(in)
		if err != nil {
			return in, v, err.AsFatal()
		}
		return out, v, nil
	}
}

// Named wraps failures of p in a context node naming the stage.
//
// Success is unaffected.
func Named[T any](stage string, p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		out, v, err := p(in)
		if err != nil {
			return in, v, err.Wrap(stage, in)
		}
		return out, v, nil
	}
}

// Preceded runs first and then p, returning only the value of p.
func Preceded[A, T any](first Parser[A], p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		var zero T
		next, _, err := first(in)
		if err != nil {
			return in, zero, err
		}
		out, v, err := p(next)
		if err != nil {
			return in, zero, err
		}
		return out, v, nil
	}
}

// Terminated runs p and then closing, returning only the value of p.
func Terminated[T, B any](p Parser[T], closing Parser[B]) Parser[T] {
	return func(in Input) (Input, T, *Error) {
		var zero T
		next, v, err := p(in)
		if err != nil {
			return in, zero, err
		}
		out, _, err := closing(next)
		if err != nil {
			return in, zero, err
		}
		return out, v, nil
	}
}

// Delimited runs opening, p and closing in sequence, returning only the value
// of p.
func Delimited[A, T, B any](opening Parser[A], p Parser[T], closing Parser[B]) Parser[T] {
	return Preceded(opening, Terminated(p, closing))
}

// Many0 runs p until it fails recoverably, collecting its outputs.
//
// If p succeeds without consuming anything, Many0 fails: repeating it would
// never terminate.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) (Input, []T, *Error) {
		var out []T
		cur := in
		for {
			next, v, err := p(cur)
			if err != nil {
				if err.Fatal {
					return in, nil, err
				}
				return cur, out, nil
			}
			if next.off == cur.off {
				return in, nil, Fail(cur, "repetition to make progress")
			}
			out = append(out, v)
			cur = next
		}
	}
}

// Many1 is like [Many0], but requires at least one match.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) (Input, []T, *Error) {
		next, first, err := p(in)
		if err != nil {
			return in, nil, err
		}
		out, rest, err := Many0(p)(next)
		if err != nil {
			return in, nil, err
		}
		return out, append([]T{first}, rest...), nil
	}
}

// ManyTill runs p until end would match, without consuming end.
//
// end is checked before every repetition, so a missing terminator is
// reported at the point p could not continue rather than as a bogus element.
// When p fails before end is found, the error names both.
func ManyTill[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return func(in Input) (Input, []T, *Error) {
		var out []T
		cur := in
		for {
			_, _, endErr := end(cur)
			if endErr == nil {
				return cur, out, nil
			}
			next, v, err := p(cur)
			if err != nil {
				if err.Fatal {
					return in, nil, err
				}
				return in, nil, Either(endErr, err)
			}
			if next.off == cur.off {
				return in, nil, Fail(cur, "repetition to make progress")
			}
			out = append(out, v)
			cur = next
		}
	}
}

// SeparatedList0 parses zero or more elem separated by sep.
//
// A separator that is not followed by an element is left unconsumed, which
// lets callers accept trailing separators.
func SeparatedList0[T, S any](elem Parser[T], sep Parser[S]) Parser[[]T] {
	return func(in Input) (Input, []T, *Error) {
		cur, first, err := elem(in)
		if err != nil {
			if err.Fatal {
				return in, nil, err
			}
			return in, nil, nil
		}
		return separatedTail(in, cur, first, elem, sep)
	}
}

// SeparatedList1 is like [SeparatedList0], but requires at least one
// element.
func SeparatedList1[T, S any](elem Parser[T], sep Parser[S]) Parser[[]T] {
	return func(in Input) (Input, []T, *Error) {
		cur, first, err := elem(in)
		if err != nil {
			return in, nil, err
		}
		return separatedTail(in, cur, first, elem, sep)
	}
}

func separatedTail[T, S any](in, cur Input, first T, elem Parser[T], sep Parser[S]) (Input, []T, *Error) {
	out := []T{first}
	for {
		afterSep, _, err := sep(cur)
		if err != nil {
			if err.Fatal {
				return in, nil, err
			}
			return cur, out, nil
		}
		next, v, err := elem(afterSep)
		if err != nil {
			if err.Fatal {
				return in, nil, err
			}
			return cur, out, nil
		}
		if next.off == cur.off {
			return in, nil, Fail(cur, "list element to make progress")
		}
		out = append(out, v)
		cur = next
	}
}

// Eof succeeds only when nothing but trivia remains.
func Eof(in Input) (Input, struct{}, *Error) {
	out := SkipTrivia(in)
	if !out.Done() {
		return in, struct{}{}, Fail(out, "end of input")
	}
	return out, struct{}{}, nil
}

// All runs p and requires it to consume the whole input.
func All[T any](p Parser[T]) Parser[T] {
	return Terminated(p, Parser[struct{}](Eof))
}
