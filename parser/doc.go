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

// Package parser parses B# source text into the syntax tree of package ast.
//
// The grammar is written as recursive descent over [combinator.Parser]s.
// Ambiguities are settled with ordered choice and bounded lookahead rather
// than by rewriting the grammar:
//
//   - (x) is a parenthesized expression, (x, y) a tuple, and (T)x a cast
//     only when what follows the parenthesis can start a cast operand.
//   - A < after a name opens type arguments only if a well-formed argument
//     list is closed by > and followed by a token that can follow a generic
//     name, such as . or (.
//   - Operators are matched with negative lookahead, so a & -b is a bitwise
//     and of a negated operand, and a ??= b is a compound assignment.
//   - Patterns are tried before expressions where both could apply.
//
// Once a construct has been recognized, usually by its leading keyword,
// failures inside it are fatal and are reported where they happen.
//
// The exported entry points parse one construct each. Use [Complete] to
// require that the whole input is consumed, or [Parse] for whole files.
package parser
