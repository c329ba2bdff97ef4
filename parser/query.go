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
)

// parseQuery parses a query expression. It only commits once it has seen
// from x in, since from is also an ordinary identifier.
func parseQuery(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	if !atWord(in, "from") {
		return in, nil, combinator.Fail(in, "query")
	}
	next, from, err := parseFromClause(in)
	if err != nil {
		return in, nil, err
	}
	out, body, err := parseQueryBody(next)
	if err != nil {
		return in, nil, cut(err).Wrap("query expression", start)
	}
	return out, &ast.QueryExpr{Range: span(start, out), From: from, Body: body}, nil
}

// parseFromClause parses from T x in xs. Failures before in are
// recoverable.
func parseFromClause(in input) (input, *ast.FromClause, *perr) {
	start := combinator.SkipTrivia(in)
	next, err := expectKeyword(in, "from")
	if err != nil {
		return in, nil, err
	}
	next, t, name, err := parseRangeVariable(next)
	if err != nil {
		return in, nil, err
	}
	out, src, err := parseExpr(next)
	if err != nil {
		return in, nil, cut(err).Wrap("from clause", start)
	}
	return out, &ast.FromClause{Range: span(start, out), Type: t, Name: name, In: src}, nil
}

// parseRangeVariable parses [T] x in, as used by from and join.
func parseRangeVariable(in input) (input, ast.Type, *ast.Ident, *perr) {
	if next, t, err := parseType(in); err == nil {
		if next, name, err := parseIdent(next); err == nil {
			if next, ok := keyword(next, "in"); ok {
				return next, t, name, nil
			}
		}
	}
	next, name, err := parseIdent(in)
	if err != nil {
		return in, nil, nil, err
	}
	next, err = expectKeyword(next, "in")
	if err != nil {
		return in, nil, nil, err
	}
	return next, nil, name, nil
}

// parseQueryBody parses clauses up to and including the final select or
// group, and any into continuation.
func parseQueryBody(in input) (input, *ast.QueryBody, *perr) {
	start := combinator.SkipTrivia(in)
	body := &ast.QueryBody{}

	next := in
	for {
		after, clause, err := parseQueryClause(next)
		if err != nil {
			return in, nil, err
		}
		if clause == nil {
			break
		}
		body.Clauses = append(body.Clauses, clause)
		next = after
	}

	clauseStart := combinator.SkipTrivia(next)
	switch {
	case atWord(next, "select"):
		after, _ := keyword(next, "select")
		after, x, err := parseExpr(after)
		if err != nil {
			return in, nil, cut(err).Wrap("select clause", clauseStart)
		}
		body.Final, next = &ast.SelectClause{Range: span(clauseStart, after), X: x}, after

	case atWord(next, "group"):
		after, _ := keyword(next, "group")
		after, x, err := parseExpr(after)
		if err != nil {
			return in, nil, cut(err).Wrap("group clause", clauseStart)
		}
		if after, err = expectKeyword(after, "by"); err != nil {
			return in, nil, cut(err).Wrap("group clause", clauseStart)
		}
		after, by, err := parseExpr(after)
		if err != nil {
			return in, nil, cut(err).Wrap("group clause", clauseStart)
		}
		body.Final, next = &ast.GroupClause{Range: span(clauseStart, after), X: x, By: by}, after

	default:
		return in, nil, combinator.Fail(next, "'select' or 'group'").AsFatal()
	}

	if after, ok := keyword(next, "into"); ok {
		contStart := combinator.SkipTrivia(next)
		after, name, err := parseIdent(after)
		if err != nil {
			return in, nil, cut(err).Wrap("query continuation", contStart)
		}
		after, rest, err := parseQueryBody(after)
		if err != nil {
			return in, nil, err
		}
		body.Continuation = &ast.QueryContinuation{Range: span(contStart, after), Name: name, Body: rest}
		next = after
	}

	body.Range = span(start, next)
	return next, body, nil
}

// parseQueryClause parses one from, let, where, join or orderby clause. It
// returns a nil clause and no error if none is next.
func parseQueryClause(in input) (input, ast.QueryClause, *perr) {
	start := combinator.SkipTrivia(in)
	wrap := func(err *perr, stage string) *perr { return cut(err).Wrap(stage, start) }

	switch word(in) {
	case "from":
		out, from, err := parseFromClause(in)
		if err != nil {
			return in, nil, wrap(err, "from clause")
		}
		return out, from, nil

	case "let":
		next, _ := keyword(in, "let")
		next, name, err := parseIdent(next)
		if err != nil {
			return in, nil, wrap(err, "let clause")
		}
		if next, err = need(next, "="); err != nil {
			return in, nil, wrap(err, "let clause")
		}
		out, value, err := parseExpr(next)
		if err != nil {
			return in, nil, wrap(err, "let clause")
		}
		return out, &ast.LetClause{Range: span(start, out), Name: name, Value: value}, nil

	case "where":
		next, _ := keyword(in, "where")
		out, cond, err := parseExpr(next)
		if err != nil {
			return in, nil, wrap(err, "where clause")
		}
		return out, &ast.WhereClause{Range: span(start, out), Cond: cond}, nil

	case "join":
		return parseJoinClause(in)

	case "orderby":
		next, _ := keyword(in, "orderby")
		clause := &ast.OrderByClause{}
		for {
			orderStart := combinator.SkipTrivia(next)
			after, x, err := parseExpr(next)
			if err != nil {
				return in, nil, wrap(err, "orderby clause")
			}
			ordering := &ast.Ordering{X: x}
			if a, ok := keyword(after, "descending"); ok {
				ordering.Descending, after = true, a
			} else if a, ok := keyword(after, "ascending"); ok {
				after = a
			}
			ordering.Range = span(orderStart, after)
			clause.Orderings = append(clause.Orderings, ordering)
			next = after
			if a, ok := punct(next, ","); ok {
				next = a
				continue
			}
			break
		}
		clause.Range = span(start, next)
		return next, clause, nil
	}
	return in, nil, nil
}

// parseJoinClause parses join T x in xs on a equals b into g.
func parseJoinClause(in input) (input, ast.QueryClause, *perr) {
	start := combinator.SkipTrivia(in)
	wrap := func(err *perr) *perr { return cut(err).Wrap("join clause", start) }

	next, _ := keyword(in, "join")
	next, t, name, err := parseRangeVariable(next)
	if err != nil {
		return in, nil, wrap(err)
	}
	clause := &ast.JoinClause{Type: t, Name: name}
	if next, clause.In, err = parseExpr(next); err != nil {
		return in, nil, wrap(err)
	}
	if next, err = expectKeyword(next, "on"); err != nil {
		return in, nil, wrap(err)
	}
	if next, clause.On, err = parseExpr(next); err != nil {
		return in, nil, wrap(err)
	}
	if next, err = expectKeyword(next, "equals"); err != nil {
		return in, nil, wrap(err)
	}
	if next, clause.Equals, err = parseExpr(next); err != nil {
		return in, nil, wrap(err)
	}
	if after, ok := keyword(next, "into"); ok {
		if next, clause.Into, err = parseIdent(after); err != nil {
			return in, nil, wrap(err)
		}
	}
	clause.Range = span(start, next)
	return next, clause, nil
}
