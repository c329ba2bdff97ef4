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

// Package combinator is a small parser combinator library over [source.File]
// text.
//
// A [Parser] is a pure function from an [Input] position to the position after
// whatever it consumed, a value, and an [*Error] on failure. Parsers never
// mutate shared state, so running the same parser on the same input always
// gives the same answer.
//
// # Failures
//
// Errors are trees: a leaf records where something was expected, a context
// node names the grammar stage that was running, and an alternatives node
// collects every branch a choice point tried. Errors are either recoverable,
// in which case choice points move on to their next branch, or fatal, in which
// case they propagate immediately. [Cut] turns the former into the latter, and
// is used as soon as a construct has been recognized unambiguously.
//
// # Trivia
//
// Whitespace, comments and preprocessor directive lines are trivia. Token
// parsers such as [Keyword] and [Punct] skip trivia on both sides of the
// token, so trivia never reaches a syntax tree. [Input.SpanTo] uses the end of
// the last consumed token rather than the current position, so spans never
// include trailing trivia.
package combinator
