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

// exprParser is the shape shared by every level of the expression tower.
type exprParser = func(input) (input, ast.Expr, *perr)

// binaryOp is an operator of a left-associative level, with the operators
// that must not follow it for the match to count.
type binaryOp struct {
	op     ast.BinaryOp
	longer []string
}

// step tries to extend x, which starts at start, with one more operator and
// its right operand. ok is false if nothing matched; err is only set for
// fatal errors.
type step func(in, start input, x ast.Expr) (out input, y ast.Expr, ok bool, err *perr)

var (
	logicalOrOps  = []binaryOp{{ast.LogicalOr, []string{"="}}}
	logicalAndOps = []binaryOp{{ast.LogicalAnd, []string{"="}}}
	bitwiseOrOps  = []binaryOp{{ast.BitwiseOr, []string{"|", "="}}}
	bitwiseXorOps = []binaryOp{{ast.BitwiseXor, []string{"="}}}
	bitwiseAndOps = []binaryOp{{ast.BitwiseAnd, []string{"&", "="}}}
	equalityOps   = []binaryOp{{ast.Equal, nil}, {ast.NotEqual, nil}}
	relationalOps = []binaryOp{
		{ast.LessEqual, nil},
		{ast.GreaterEqual, nil},
		{ast.Less, []string{"<", "="}},
		{ast.Greater, []string{">", "="}},
	}
	shiftOps = []binaryOp{
		{ast.ShiftLeft, []string{"="}},
		{ast.UnsignedShiftRight, []string{"="}},
		{ast.ShiftRight, []string{">", "="}},
	}
	additiveOps = []binaryOp{
		{ast.Add, []string{"+", "="}},
		{ast.Sub, []string{"-", "=", ">"}},
	}
	multiplicativeOps = []binaryOp{
		{ast.Mul, []string{"="}},
		{ast.Div, []string{"="}},
		{ast.Mod, []string{"="}},
	}
)

// leftFold parses a left-associative level: one operand, then as many
// (operator, operand) pairs as match, folded to the left. It stops without
// error at the first operator that does not match or whose right operand
// does not parse.
func leftFold(in input, operand exprParser, ops []binaryOp, extra ...step) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	out, x, err := operand(in)
	if err != nil {
		return in, nil, err
	}

	steps := make([]step, 0, len(extra)+1)
	steps = append(steps, binaryStep(operand, ops))
	steps = append(steps, extra...)
	for {
		extended := false
		for _, s := range steps {
			next, y, ok, err := s(out, start, x)
			if err != nil {
				return in, nil, err
			}
			if ok {
				out, x, extended = next, y, true
				break
			}
		}
		if !extended {
			return out, x, nil
		}
	}
}

func binaryStep(operand exprParser, ops []binaryOp) step {
	return func(in, start input, x ast.Expr) (input, ast.Expr, bool, *perr) {
		for _, op := range ops {
			next, ok := punct(in, op.op.Token(), op.longer...)
			if !ok {
				continue
			}
			out, y, err := operand(next)
			if err != nil {
				if err.Fatal {
					return in, nil, false, err
				}
				return in, nil, false, nil
			}
			return out, &ast.BinaryExpr{
				Range: span(start, out),
				Op:    op.op,
				X:     x,
				Y:     y,
			}, true, nil
		}
		return in, nil, false, nil
	}
}

// parseExpr parses a full expression.
func parseExpr(in input) (input, ast.Expr, *perr) {
	return parseAssignment(in)
}

// parseAssignment parses the right-associative assignment level.
func parseAssignment(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	out, left, err := parseConditional(in)
	if err != nil {
		return in, nil, err
	}

	for _, op := range ast.AssignOps() {
		var longer []string
		if op == ast.Assign {
			longer = []string{"=", ">"}
		}
		next, ok := punct(out, op.Token(), longer...)
		if !ok {
			continue
		}

		expr := &ast.AssignExpr{Op: op, Left: left}
		if op == ast.Assign {
			if after, ok := keyword(next, "ref"); ok {
				expr.Ref, next = true, after
			}
		}
		after, right, err := parseAssignment(next)
		if err != nil {
			return in, nil, cut(err).Wrap("right-hand side of '"+op.Token()+"'", next)
		}
		expr.Right = right
		expr.Range = span(start, after)
		return after, expr, nil
	}
	return out, left, nil
}

// parseConditional parses cond ? a : b.
func parseConditional(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	out, cond, err := parseCoalescing(in)
	if err != nil {
		return in, nil, err
	}

	next, ok := punct(out, "?", "?", ".")
	if !ok {
		return out, cond, nil
	}
	next, then, err := parseExpr(next)
	if err != nil {
		if err.Fatal {
			return in, nil, err
		}
		return out, cond, nil
	}
	next, ok = punct(next, ":", ":")
	if !ok {
		return out, cond, nil
	}
	next, els, err := parseExpr(next)
	if err != nil {
		return in, nil, cut(err).Wrap("conditional expression", start)
	}
	return next, &ast.ConditionalExpr{
		Range: span(start, next),
		Cond:  cond,
		Then:  then,
		Else:  els,
	}, nil
}

// parseCoalescing parses the right-associative ?? level. It never consumes
// the start of ??=.
func parseCoalescing(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	out, x, err := parseLogicalOr(in)
	if err != nil {
		return in, nil, err
	}

	next, ok := punct(out, "??", "=")
	if !ok {
		return out, x, nil
	}
	next, y, err := parseCoalescing(next)
	if err != nil {
		if err.Fatal {
			return in, nil, err
		}
		return out, x, nil
	}
	return next, &ast.BinaryExpr{
		Range: span(start, next),
		Op:    ast.NullCoalescing,
		X:     x,
		Y:     y,
	}, nil
}

func parseLogicalOr(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseLogicalAnd, logicalOrOps)
}

func parseLogicalAnd(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseBitwiseOr, logicalAndOps)
}

func parseBitwiseOr(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseBitwiseXor, bitwiseOrOps)
}

func parseBitwiseXor(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseBitwiseAnd, bitwiseXorOps)
}

func parseBitwiseAnd(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseEquality, bitwiseAndOps)
}

func parseEquality(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseRelational, equalityOps)
}

// parseRelational parses comparisons, is-patterns and as-casts.
func parseRelational(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseShift, relationalOps, isStep, asStep)
}

func isStep(in, start input, x ast.Expr) (input, ast.Expr, bool, *perr) {
	next, ok := keyword(in, "is")
	if !ok {
		return in, nil, false, nil
	}
	out, pat, err := parsePattern(next)
	if err != nil {
		return in, nil, false, cut(err).Wrap("pattern after 'is'", next)
	}
	return out, &ast.IsPatternExpr{Range: span(start, out), X: x, Pattern: pat}, true, nil
}

func asStep(in, start input, x ast.Expr) (input, ast.Expr, bool, *perr) {
	next, ok := keyword(in, "as")
	if !ok {
		return in, nil, false, nil
	}
	out, t, err := parseTypeMode(next, exprType)
	if err != nil {
		return in, nil, false, cut(err).Wrap("type after 'as'", next)
	}
	return out, &ast.AsExpr{Range: span(start, out), X: x, Type: t}, true, nil
}

func parseShift(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseAdditive, shiftOps)
}

func parseAdditive(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseMultiplicative, additiveOps)
}

func parseMultiplicative(in input) (input, ast.Expr, *perr) {
	return leftFold(in, parseRange, multiplicativeOps)
}

// parseRange parses a..b, where either bound may be missing.
func parseRange(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)

	var (
		out = in
		x   ast.Expr
	)
	if !atPunct(in, "..", ".") {
		next, lhs, err := parseUnary(in)
		if err != nil {
			return in, nil, err
		}
		out, x = next, lhs
	}

	next, ok := punct(out, "..", ".")
	if !ok {
		if x == nil {
			return in, nil, combinator.Fail(in, "expression")
		}
		return out, x, nil
	}

	r := &ast.RangeExpr{Start: x}
	out = next
	if after, y, err := parseUnary(next); err == nil {
		r.End, out = y, after
	} else if err.Fatal {
		return in, nil, err
	}
	r.Range = span(start, out)
	return out, r, nil
}

var prefixOps = []struct {
	token  string
	longer []string
	op     ast.UnaryOp
}{
	{"++", nil, ast.PreIncrement},
	{"--", nil, ast.PreDecrement},
	{"+", []string{"="}, ast.Plus},
	{"-", []string{"=", ">"}, ast.Minus},
	{"!", []string{"="}, ast.Not},
	{"~", nil, ast.Complement},
	{"&", []string{"&", "="}, ast.AddressOf},
	{"*", []string{"="}, ast.Deref},
	{"^", []string{"="}, ast.IndexFromEnd},
}

// parseUnary parses prefix operators and await.
func parseUnary(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)

	for _, op := range prefixOps {
		next, ok := punct(in, op.token, op.longer...)
		if !ok {
			continue
		}
		out, x, err := parseUnary(next)
		if err != nil {
			return in, nil, err.Wrap("operand of '"+op.token+"'", next)
		}
		return out, &ast.UnaryExpr{Range: span(start, out), Op: op.op, X: x}, nil
	}

	if next, ok := keyword(in, "await"); ok {
		if out, x, err := parseUnary(next); err == nil {
			return out, &ast.AwaitExpr{Range: span(start, out), X: x}, nil
		} else if err.Fatal {
			return in, nil, err
		}
	}

	return parsePostfix(in)
}

// parsePostfix parses a primary expression followed by any number of
// member accesses, calls, indexers and postfix operators.
func parsePostfix(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	out, x, err := parsePrimary(in)
	if err != nil {
		return in, nil, err
	}

	for {
		next, y, ok, err := postfixStep(out, start, x)
		if err != nil {
			return in, nil, err
		}
		if !ok {
			return out, x, nil
		}
		out, x = next, y
	}
}

func postfixStep(in, start input, x ast.Expr) (input, ast.Expr, bool, *perr) {
	if next, ok := punct(in, ".", "."); ok {
		return memberAccess(next, start, x, ast.Dot)
	}
	if next, ok := punct(in, "->"); ok {
		return memberAccess(next, start, x, ast.Arrow)
	}
	if next, ok := punct(in, "?."); ok && !isDigit(combinator.SkipTrivia(next).PeekByte(0)) {
		return memberAccess(next, start, x, ast.NullConditional)
	}

	if at := combinator.SkipTrivia(in); at.HasPrefix("?[") {
		out, args, err := parseBracketArgs(at.Advance(1))
		if err != nil || args == nil {
			return in, nil, false, err
		}
		return out, &ast.ElementAccessExpr{
			Range:           span(start, out),
			X:               x,
			Args:            args,
			NullConditional: true,
		}, true, nil
	}
	if atPunct(in, "[") {
		out, args, err := parseBracketArgs(in)
		if err != nil || args == nil {
			return in, nil, false, err
		}
		return out, &ast.ElementAccessExpr{Range: span(start, out), X: x, Args: args}, true, nil
	}

	if atPunct(in, "(") {
		out, args, err := parseArgumentList(in)
		if err != nil {
			return in, nil, false, err
		}
		return out, &ast.InvocationExpr{Range: span(start, out), Func: x, Args: args}, true, nil
	}

	for _, op := range []struct {
		token  string
		longer []string
		op     ast.PostfixOp
	}{
		{"++", nil, ast.PostIncrement},
		{"--", nil, ast.PostDecrement},
		{"!", []string{"="}, ast.NullForgiving},
	} {
		if out, ok := punct(in, op.token, op.longer...); ok {
			return out, &ast.PostfixExpr{Range: span(start, out), Op: op.op, X: x}, true, nil
		}
	}

	if next, ok := keyword(in, "switch"); ok && atPunct(next, "{") {
		return parseSwitchExpr(next, start, x)
	}
	if next, ok := keyword(in, "with"); ok && atPunct(next, "{") {
		out, init, err := parseInitializer(next)
		if err != nil {
			return in, nil, false, cut(err).Wrap("with expression", next)
		}
		return out, &ast.WithExpr{Range: span(start, out), X: x, Init: init}, true, nil
	}

	return in, nil, false, nil
}

// memberAccess parses the name after a member access operator.
func memberAccess(in, start input, x ast.Expr, kind ast.AccessKind) (input, ast.Expr, bool, *perr) {
	out, name, err := parseIdent(in)
	if err != nil {
		return in, nil, false, cut(err).Wrap("member access", in)
	}
	expr := &ast.MemberAccessExpr{X: x, Access: kind, Name: name}
	if after, args, ok := parseTypeArgs(out); ok && genericFollows(after) {
		out, expr.TypeArgs = after, args
	}
	expr.Range = span(start, out)
	return out, expr, true, nil
}

// genericFollows returns whether what comes after a speculative type
// argument list confirms that it was one, rather than a chain of
// comparisons like a < b > c.
func genericFollows(in input) bool {
	if combinator.SkipTrivia(in).Done() {
		return true
	}
	for _, op := range []string{".", "(", ")", "]", "}", ",", ";", "?.", "::"} {
		if atPunct(in, op) {
			return true
		}
	}
	return atPunct(in, "==") || atPunct(in, "!=")
}

// parseArgumentList parses (args).
func parseArgumentList(in input) (input, []*ast.Argument, *perr) {
	next, err := expect(in, "(")
	if err != nil {
		return in, nil, err
	}
	next, args, err := combinator.SeparatedList0(argumentParser(false), combinator.Punct(","))(next)
	if err != nil {
		return in, nil, err
	}
	out, err := need(next, ")")
	if err != nil {
		return in, nil, err.Wrap("argument list", in)
	}
	return out, args, nil
}

// parseBracketArgs parses [args]. It returns no arguments and no error if
// the bracket does not start an argument list, as in int[].
func parseBracketArgs(in input) (input, []*ast.Argument, *perr) {
	next, err := expect(in, "[")
	if err != nil {
		return in, nil, nil
	}
	next, args, err := combinator.SeparatedList1(argumentParser(false), combinator.Punct(","))(next)
	if err != nil {
		if err.Fatal {
			return in, nil, err
		}
		return in, nil, nil
	}
	out, err := need(next, "]")
	if err != nil {
		return in, nil, err.Wrap("element access", in)
	}
	return out, args, nil
}

// argumentParser parses one argument: an optional name, an optional ref,
// out or in, and a value. Declaration expressions such as int x are
// accepted after out, and anywhere if decl is set.
func argumentParser(decl bool) combinator.Parser[*ast.Argument] {
	return func(in input) (input, *ast.Argument, *perr) {
		start := combinator.SkipTrivia(in)
		arg := &ast.Argument{}

		next := in
		if after, name, err := parseIdent(in); err == nil {
			if after, ok := punct(after, ":", ":"); ok {
				arg.Name, next = name, after
			}
		}
		for _, mod := range []string{"ref", "out", "in"} {
			if after, ok := keyword(next, mod); ok {
				arg.Modifier, next = mod, after
				break
			}
		}

		if decl || arg.Modifier == "out" {
			if out, x, err := parseDeclarationExpr(next); err == nil {
				arg.Value = x
				arg.Range = span(start, out)
				return out, arg, nil
			}
		}

		out, x, err := parseExpr(next)
		if err != nil {
			if arg.Name != nil || arg.Modifier != "" {
				return in, nil, cut(err).Wrap("argument", next)
			}
			return in, nil, err
		}
		arg.Value = x
		arg.Range = span(start, out)
		return out, arg, nil
	}
}

// parseDeclarationExpr parses T x or var (a, b) in argument position. It
// must be followed by ',', ')' or '='.
func parseDeclarationExpr(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	next, t, err := parseType(in)
	if err != nil {
		return in, nil, err
	}
	out, d, err := parseDesignation(next)
	if err != nil {
		return in, nil, err
	}
	if !atPunct(out, ",") && !atPunct(out, ")") && !atPunct(out, "=", "=", ">") {
		return in, nil, combinator.Fail(out, "',' or ')'")
	}
	return out, &ast.DeclarationExpr{
		Range:       span(start, out),
		Type:        inferVar(t),
		Designation: d,
	}, nil
}

// parseDesignation parses x, _ or (a, b).
func parseDesignation(in input) (input, ast.Designation, *perr) {
	start := combinator.SkipTrivia(in)
	if next, ok := punct(in, "("); ok {
		next, elems, err := combinator.SeparatedList1(combinator.Parser[ast.Designation](parseDesignation), combinator.Punct(","))(next)
		if err != nil {
			return in, nil, err
		}
		out, err := expect(next, ")")
		if err != nil {
			return in, nil, err
		}
		return out, &ast.ParenDesignation{Range: span(start, out), Elems: elems}, nil
	}

	out, name, err := parseIdentExcept(in, softKeywords...)
	if err != nil {
		return in, nil, err
	}
	if name.Name == "_" && !name.Verbatim {
		return out, &ast.DiscardDesignation{Range: name.Range}, nil
	}
	return out, &ast.SingleDesignation{Range: name.Range, Name: name}, nil
}

// softKeywords are contextual keywords that end an expression or pattern,
// and so are never read as a designation or cast operand.
var softKeywords = []string{
	"and", "or", "not", "when", "with",
	"from", "let", "where", "join", "on", "equals", "into",
	"orderby", "ascending", "descending", "select", "group", "by",
}
