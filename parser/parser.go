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

package parser

import (
	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
)

// Expression parses an expression, including assignments, lambdas and
// queries.
func Expression(in combinator.Input) (combinator.Input, ast.Expr, *combinator.Error) {
	return parseExpr(in)
}

// Statement parses a single statement.
func Statement(in combinator.Input) (combinator.Input, ast.Stmt, *combinator.Error) {
	return parseStatement(in)
}

// Type parses a type, such as List<int>[]? or (int, string).
func Type(in combinator.Input) (combinator.Input, ast.Type, *combinator.Error) {
	return parseType(in)
}

// Pattern parses a pattern, as found after is or case.
func Pattern(in combinator.Input) (combinator.Input, ast.Pattern, *combinator.Error) {
	return parsePattern(in)
}

// Declaration parses a namespace, type or member declaration.
func Declaration(in combinator.Input) (combinator.Input, ast.Decl, *combinator.Error) {
	return parseDeclaration(in, anyLevel)
}

// CompilationUnit parses a whole file.
func CompilationUnit(in combinator.Input) (combinator.Input, *ast.CompilationUnit, *combinator.Error) {
	return parseCompilationUnit(in)
}

// Complete runs p over file and requires it to consume all of it, other
// than trailing trivia.
func Complete[T any](p combinator.Parser[T], file *source.File) (T, *combinator.Error) {
	_, v, err := combinator.All(p)(combinator.NewInput(file))
	return v, err
}

// Parse parses file as a compilation unit.
//
// On failure, the error is added to r and the result is nil: there are no
// partial trees.
func Parse(file *source.File, r *report.Report) *ast.CompilationUnit {
	unit, err := Complete(combinator.Parser[*ast.CompilationUnit](CompilationUnit), file)
	if err != nil {
		r.Error(err)
		return nil
	}
	return unit
}
