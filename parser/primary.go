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
	"strings"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/combinator"
)

// parsePrimary parses a primary expression. Special forms anchored by a
// keyword come before names and parentheses, and lambdas come before
// everything, since their parameter lists look like other expressions.
func parsePrimary(in input) (input, ast.Expr, *perr) {
	return combinator.Named("expression", combinator.Alt(
		parseLambda,
		parseQuery,
		parseLiteral,
		parseKeywordExpr,
		parseCollection,
		parseParenthesized,
		parseDeconstruction,
		parseName,
	))(in)
}

// parseKeywordExpr dispatches on the keyword that starts a special form.
func parseKeywordExpr(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	w := word(in)
	after := combinator.SkipTrivia(start.Advance(len(w)))

	switch {
	case w == "this":
		return after, &ast.ThisExpr{Range: span(start, after)}, nil
	case w == "base":
		return after, &ast.BaseExpr{Range: span(start, after)}, nil
	case w == "new":
		return parseNew(in)
	case w == "stackalloc":
		return parseStackalloc(in)
	case w == "throw":
		out, x, err := parseExpr(after)
		if err != nil {
			return in, nil, cut(err).Wrap("throw expression", in)
		}
		return out, &ast.ThrowExpr{Range: span(start, out), X: x}, nil
	case w == "ref":
		out, x, err := parseUnary(after)
		if err != nil {
			return in, nil, cut(err).Wrap("ref expression", in)
		}
		return out, &ast.RefExpr{Range: span(start, out), X: x}, nil
	case w == "default":
		if !atPunct(after, "(") {
			return after, &ast.DefaultExpr{Range: span(start, after)}, nil
		}
		out, t, err := parenthesizedType(after, "default")
		if err != nil {
			return in, nil, err
		}
		return out, &ast.DefaultExpr{Range: span(start, out), Type: t}, nil
	case w == "typeof":
		out, t, err := typeofType(after)
		if err != nil {
			return in, nil, err
		}
		return out, &ast.TypeofExpr{Range: span(start, out), Type: t}, nil
	case w == "sizeof":
		out, t, err := parenthesizedType(after, "sizeof")
		if err != nil {
			return in, nil, err
		}
		return out, &ast.SizeofExpr{Range: span(start, out), Type: t}, nil
	case w == "nameof" && atPunct(after, "("):
		out, x, err := parenthesizedExpr(after, "nameof")
		if err != nil {
			return in, nil, err
		}
		return out, &ast.NameofExpr{Range: span(start, out), X: x}, nil
	case (w == "checked" || w == "unchecked") && atPunct(after, "("):
		out, x, err := parenthesizedExpr(after, w)
		if err != nil {
			return in, nil, err
		}
		return out, &ast.CheckedExpr{Range: span(start, out), Unchecked: w == "unchecked", X: x}, nil
	case w == "delegate" && !atPunct(after, "*"):
		return parseAnonymousMethod(in)
	case w != "" && primitives[w]:
		t := &ast.PrimitiveType{Range: span(start, after), Name: w}
		return after, &ast.PredefinedTypeExpr{Range: t.Range, Type: t}, nil
	}
	return in, nil, combinator.Fail(in, "expression")
}

// parenthesizedType parses (T) after the keyword kw.
func parenthesizedType(in input, kw string) (input, ast.Type, *perr) {
	next, err := need(in, "(")
	if err != nil {
		return in, nil, err.Wrap(kw, in)
	}
	next, t, err := parseType(next)
	if err != nil {
		return in, nil, cut(err).Wrap(kw, in)
	}
	out, err := need(next, ")")
	if err != nil {
		return in, nil, err.Wrap(kw, in)
	}
	return out, t, nil
}

// typeofType parses the operand of typeof, which may also be an unbound
// generic name such as Dictionary<,>.
func typeofType(in input) (input, ast.Type, *perr) {
	if next, ok := punct(in, "("); ok {
		after, t, err := namedType(next, true)
		if err == nil && t.Unbound() {
			if out, ok := punct(after, ")"); ok {
				return out, t, nil
			}
		}
	}
	return parenthesizedType(in, "typeof")
}

// parenthesizedExpr parses (x) after the keyword kw.
func parenthesizedExpr(in input, kw string) (input, ast.Expr, *perr) {
	next, err := need(in, "(")
	if err != nil {
		return in, nil, err.Wrap(kw, in)
	}
	next, x, err := parseExpr(next)
	if err != nil {
		return in, nil, cut(err).Wrap(kw, in)
	}
	out, err := need(next, ")")
	if err != nil {
		return in, nil, err.Wrap(kw, in)
	}
	return out, x, nil
}

// parseName parses a simple name, which may be alias-qualified and may
// carry type arguments.
func parseName(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	out, name, err := parseIdent(in)
	if err != nil {
		return in, nil, err
	}

	expr := &ast.NameExpr{Name: name}
	if after, ok := punct(out, "::"); ok {
		next, member, err := parseIdent(after)
		if err != nil {
			return in, nil, cut(err).Wrap("qualified name", in)
		}
		expr.Alias, expr.Name, out = name, member, next
	}
	if after, args, ok := parseTypeArgs(out); ok && genericFollows(after) {
		out, expr.TypeArgs = after, args
	}
	expr.Range = span(start, out)
	return out, expr, nil
}

// parseDeconstruction parses var (a, b) in a deconstructing assignment.
func parseDeconstruction(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	next, ok := keyword(in, "var")
	if !ok || !atPunct(next, "(") {
		return in, nil, combinator.Fail(in, "deconstruction")
	}
	out, d, err := parseDesignation(next)
	if err != nil || !atPunct(out, "=", "=", ">") {
		return in, nil, combinator.Fail(in, "deconstruction")
	}
	varType := &ast.VarType{Range: span(start, next)}
	return out, &ast.DeclarationExpr{
		Range:       span(start, out),
		Type:        varType,
		Designation: d,
	}, nil
}

// parseParenthesized resolves a parenthesized expression, a tuple and a
// cast.
//
// The first element is parsed as an expression. A comma commits to a tuple.
// Otherwise the parentheses close an ordinary expression, unless their
// contents also read as a type and what follows can only be the operand of
// a cast. If the contents are not an expression at all, such as int[], a
// cast is the only option.
func parseParenthesized(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	inner, err := expect(in, "(")
	if err != nil {
		return in, nil, err
	}

	next, first, exprErr := argumentParser(true)(inner)
	if exprErr == nil {
		if after, ok := punct(next, ","); ok {
			after, rest, err := combinator.SeparatedList1(argumentParser(true), combinator.Punct(","))(after)
			if err != nil {
				return in, nil, cut(err).Wrap("tuple", start)
			}
			out, err := need(after, ")")
			if err != nil {
				return in, nil, err.Wrap("tuple", start)
			}
			return out, &ast.TupleExpr{
				Range: span(start, out),
				Elems: append([]*ast.Argument{first}, rest...),
			}, nil
		}

		if out, ok := punct(next, ")"); ok && first.Name == nil && first.Modifier == "" {
			if cast, castOut, ok := tryCast(start, inner, out); ok {
				return castOut, cast, nil
			}
			return out, &ast.ParenExpr{Range: span(start, out), X: first.Value}, nil
		}
	} else if exprErr.Fatal {
		return in, nil, exprErr
	}

	if cast, out, ok := tryCast(start, inner, input{}); ok {
		return out, cast, nil
	}
	if exprErr == nil {
		exprErr = combinator.Fail(next, "')'")
	}
	return in, nil, exprErr.Wrap("parenthesized expression", start)
}

// tryCast attempts to read (T)x, where inner is just after the '('. If
// closed is set, it is the position after the ')' that closed an ordinary
// expression, and the cast is only accepted if the type ends at that same
// ')' and what follows must be a cast operand.
func tryCast(start, inner, closed input) (ast.Expr, input, bool) {
	next, t, err := parseTypeMode(inner, exprType)
	if err != nil {
		return nil, start, false
	}
	out, ok := punct(next, ")")
	if !ok {
		return nil, start, false
	}
	if closed.File() != nil && (out.Offset() != closed.Offset() || !castFollows(out, t)) {
		return nil, start, false
	}
	out, x, err := parseUnary(out)
	if err != nil {
		return nil, start, false
	}
	return &ast.CastExpr{Range: span(start, out), Type: t, X: x}, out, true
}

// castFollows returns whether the text after (T) must be a cast operand.
//
// A name or literal always is. A parenthesis or a prefix operator only is
// after a type that cannot also be a value, so (x)(y) is a call and (a)-b
// a subtraction, while (int)-1 is a cast.
func castFollows(in input, t ast.Type) bool {
	at := combinator.SkipTrivia(in)
	if at.Done() {
		return false
	}
	if w := word(in); w != "" {
		switch w {
		case "is", "as", "switch":
			return false
		}
		for _, kw := range softKeywords {
			if w == kw {
				return false
			}
		}
		return true
	}

	switch c := at.PeekByte(0); {
	case isDigit(c), c == '\'', c == '"', c == '$', c == '~':
		return true
	case c == '@' && at.PeekByte(1) == '"':
		return true
	case c == '.' && isDigit(at.PeekByte(1)):
		return true
	case c == '!' && at.PeekByte(1) != '=':
		return true
	}

	if _, named := t.(*ast.NamedType); named {
		return false
	}
	for _, op := range []string{"(", "+", "-", "&", "*", "^", "[", ".."} {
		if atPunct(in, op, "=") {
			return true
		}
	}
	return false
}

// parseCollection parses a collection expression, [a, ..b].
func parseCollection(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	next, err := expect(in, "[")
	if err != nil {
		return in, nil, err
	}

	elem := func(in input) (input, ast.Expr, *perr) {
		elemStart := combinator.SkipTrivia(in)
		if next, ok := punct(in, "..", "."); ok {
			out, x, err := parseExpr(next)
			if err != nil {
				return in, nil, cut(err).Wrap("spread element", in)
			}
			return out, &ast.SpreadExpr{Range: span(elemStart, out), X: x}, nil
		}
		return parseExpr(in)
	}

	next, elems, err := combinator.SeparatedList0(combinator.Parser[ast.Expr](elem), combinator.Punct(","))(next)
	if err != nil {
		return in, nil, err
	}
	if after, ok := punct(next, ","); ok && len(elems) > 0 {
		next = after
	}
	out, err := expect(next, "]")
	if err != nil {
		return in, nil, err.Wrap("collection expression", start)
	}
	return out, &ast.CollectionExpr{Range: span(start, out), Elems: elems}, nil
}

// parseInitializer parses a braced initializer. Elements are expressions,
// nested initializers, member assignments or indexer assignments, and a
// trailing comma is allowed.
func parseInitializer(in input) (input, *ast.InitializerExpr, *perr) {
	start := combinator.SkipTrivia(in)
	next, err := expect(in, "{")
	if err != nil {
		return in, nil, err
	}

	init := &ast.InitializerExpr{}
	for !atPunct(next, "}") {
		after, elem, err := parseInitElem(next)
		if err != nil {
			return in, nil, cut(err).Wrap("initializer", start)
		}
		init.Elems = append(init.Elems, elem)
		next = after
		if after, ok := punct(next, ","); ok {
			next = after
			continue
		}
		break
	}

	out, err := need(next, "}")
	if err != nil {
		return in, nil, err.Wrap("initializer", start)
	}
	init.Range = span(start, out)
	return out, init, nil
}

func parseInitElem(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	if atPunct(in, "{") {
		out, init, err := parseInitializer(in)
		return out, init, err
	}

	// [k] = v assigns through the indexer of the object being initialized.
	if atPunct(in, "[") {
		if next, args, err := parseBracketArgs(in); err == nil && args != nil {
			if next, ok := punct(next, "=", "=", ">"); ok {
				target := &ast.ElementAccessExpr{Range: span(start, next), Args: args}
				return assignInit(start, next, target)
			}
		}
	}

	// Name = { ... } initializes a member in place.
	if next, name, err := parseIdent(in); err == nil {
		if next, ok := punct(next, "=", "=", ">"); ok && atPunct(next, "{") {
			target := &ast.NameExpr{Range: name.Range, Name: name}
			return assignInit(start, next, target)
		}
	}

	return parseExpr(in)
}

// assignInit parses the value of target = value inside an initializer.
func assignInit(start, in input, target ast.Expr) (input, ast.Expr, *perr) {
	var (
		out   input
		value ast.Expr
		err   *perr
	)
	if atPunct(in, "{") {
		var init *ast.InitializerExpr
		out, init, err = parseInitializer(in)
		value = init
	} else {
		out, value, err = parseExpr(in)
	}
	if err != nil {
		return start, nil, cut(err)
	}
	return out, &ast.AssignExpr{
		Range: span(start, out),
		Op:    ast.Assign,
		Left:  target,
		Right: value,
	}, nil
}

// parseNew parses every form of object and array creation.
func parseNew(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	next, _ := keyword(in, "new")
	wrap := func(err *perr) *perr { return cut(err).Wrap("new expression", start) }

	switch {
	case atPunct(next, "("):
		// Target-typed new().
		out, args, err := parseArgumentList(next)
		if err != nil {
			return in, nil, wrap(err)
		}
		expr := &ast.ObjectCreationExpr{Args: args}
		if atPunct(out, "{") {
			if out, expr.Init, err = parseInitializer(out); err != nil {
				return in, nil, wrap(err)
			}
		}
		expr.Range = span(start, out)
		return out, expr, nil

	case atPunct(next, "{"):
		return parseAnonymousObject(start, next)

	case atPunct(next, "["):
		// Implicitly typed array.
		out, rank, ok := parseRankSpecifier(next)
		if !ok {
			return in, nil, wrap(combinator.Fail(next, "'[]'"))
		}
		out, init, err := parseInitializer(out)
		if err != nil {
			return in, nil, wrap(err)
		}
		return out, &ast.ArrayCreationExpr{
			Range: span(start, out),
			Ranks: []int{rank},
			Init:  init,
		}, nil
	}

	out, t, err := parseTypeMode(next, bareType)
	if err != nil {
		return in, nil, wrap(err)
	}

	switch {
	case atPunct(out, "["):
		return parseArrayCreation(start, out, t)

	case atPunct(out, "("):
		out, args, err := parseArgumentList(out)
		if err != nil {
			return in, nil, wrap(err)
		}
		expr := &ast.ObjectCreationExpr{Type: t, Args: args}
		if atPunct(out, "{") {
			if out, expr.Init, err = parseInitializer(out); err != nil {
				return in, nil, wrap(err)
			}
		}
		expr.Range = span(start, out)
		return out, expr, nil

	case atPunct(out, "{"):
		out, init, err := parseInitializer(out)
		if err != nil {
			return in, nil, wrap(err)
		}
		return out, &ast.ObjectCreationExpr{Range: span(start, out), Type: t, Init: init}, nil
	}
	return in, nil, wrap(combinator.Fail(out, "'(', '[' or '{'"))
}

// parseArrayCreation parses the part of new T[n][] { ... } after T.
func parseArrayCreation(start, in input, elem ast.Type) (input, ast.Expr, *perr) {
	expr := &ast.ArrayCreationExpr{Elem: elem}
	out := in

	if !atRankSpecifier(out) {
		next, _ := punct(out, "[")
		next, sizes, err := combinator.SeparatedList1(combinator.Parser[ast.Expr](parseExpr), combinator.Punct(","))(next)
		if err != nil {
			return start, nil, cut(err).Wrap("array size", start)
		}
		if next, err = need(next, "]"); err != nil {
			return start, nil, err.Wrap("array size", start)
		}
		expr.Sizes = sizes
		expr.Ranks = append(expr.Ranks, len(sizes))
		out = next
	}
	for atRankSpecifier(out) {
		next, rank, _ := parseRankSpecifier(out)
		expr.Ranks = append(expr.Ranks, rank)
		out = next
	}

	if atPunct(out, "{") {
		next, init, err := parseInitializer(out)
		if err != nil {
			return start, nil, cut(err)
		}
		expr.Init, out = init, next
	} else if expr.Sizes == nil {
		return start, nil, combinator.Fail(out, "array initializer").AsFatal()
	}
	expr.Range = span(start, out)
	return out, expr, nil
}

func atRankSpecifier(in input) bool {
	_, _, ok := parseRankSpecifier(in)
	return ok
}

// parseAnonymousObject parses new { A = 1, b.C }, where in is at the '{'.
func parseAnonymousObject(start, in input) (input, ast.Expr, *perr) {
	next, _ := punct(in, "{")
	expr := &ast.AnonymousObjectExpr{}
	for !atPunct(next, "}") {
		memberStart := combinator.SkipTrivia(next)
		member := &ast.AnonymousMember{}
		after := next
		if a, name, err := parseIdent(next); err == nil {
			if a, ok := punct(a, "=", "=", ">"); ok {
				member.Name, after = name, a
			}
		}
		after, x, err := parseExpr(after)
		if err != nil {
			return start, nil, cut(err).Wrap("anonymous object", start)
		}
		member.Value = x
		member.Range = span(memberStart, after)
		expr.Members = append(expr.Members, member)
		next = after
		if a, ok := punct(next, ","); ok {
			next = a
			continue
		}
		break
	}
	out, err := need(next, "}")
	if err != nil {
		return start, nil, err.Wrap("anonymous object", start)
	}
	expr.Range = span(start, out)
	return out, expr, nil
}

// parseStackalloc parses stackalloc T[n], stackalloc T[] { ... } and
// stackalloc[] { ... }.
func parseStackalloc(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	next, _ := keyword(in, "stackalloc")
	expr := &ast.StackallocExpr{}

	if !atPunct(next, "[") {
		after, t, err := parseTypeMode(next, bareType)
		if err != nil {
			return in, nil, cut(err).Wrap("stackalloc", start)
		}
		expr.Elem, next = t, after
	}
	next, err := need(next, "[")
	if err != nil {
		return in, nil, err.Wrap("stackalloc", start)
	}
	if !atPunct(next, "]") {
		after, size, err := parseExpr(next)
		if err != nil {
			return in, nil, cut(err).Wrap("stackalloc", start)
		}
		expr.Size, next = size, after
	}
	out, err := need(next, "]")
	if err != nil {
		return in, nil, err.Wrap("stackalloc", start)
	}
	if atPunct(out, "{") {
		if out, expr.Init, err = parseInitializer(out); err != nil {
			return in, nil, cut(err).Wrap("stackalloc", start)
		}
	}
	if expr.Size == nil && expr.Init == nil {
		return in, nil, combinator.Fail(out, "stackalloc initializer").AsFatal()
	}
	expr.Range = span(start, out)
	return out, expr, nil
}

// parseAnonymousMethod parses delegate (params) { ... }.
func parseAnonymousMethod(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	expr := &ast.AnonymousMethodExpr{}
	next := in
	for {
		if after, ok := keyword(next, "async"); ok {
			expr.Async, next = true, after
			continue
		}
		if after, ok := keyword(next, "static"); ok {
			expr.Static, next = true, after
			continue
		}
		break
	}
	next, err := expectKeyword(next, "delegate")
	if err != nil {
		return in, nil, err
	}
	if atPunct(next, "(") {
		after, params, err := parseParameterList(next, "(", ")")
		if err != nil {
			return in, nil, cut(err).Wrap("anonymous method", start)
		}
		expr.Params, expr.HasParams, next = params, true, after
	}
	out, block, err := parseBlock(next)
	if err != nil {
		return in, nil, cut(err).Wrap("anonymous method", start)
	}
	expr.Block = block
	expr.Range = span(start, out)
	return out, expr, nil
}

// parseLambda parses x => body, (params) => body, and their async and
// static forms.
func parseLambda(in input) (input, ast.Expr, *perr) {
	start := combinator.SkipTrivia(in)
	lambda := &ast.LambdaExpr{}

	next := in
	for {
		if after, ok := keyword(next, "async"); ok && !atPunct(after, "=>") {
			lambda.Async, next = true, after
			continue
		}
		if after, ok := keyword(next, "static"); ok {
			lambda.Static, next = true, after
			continue
		}
		break
	}
	if lambda.Async || lambda.Static {
		if atWord(next, "delegate") {
			return parseAnonymousMethod(in)
		}
	}

	if name, ok := lambdaName(next); ok {
		paramStart := combinator.SkipTrivia(next)
		after, _, _ := parseIdent(next)
		lambda.Params = []*ast.Parameter{{Range: span(paramStart, after), Name: name}}
		next = after
	} else if atPunct(next, "(") && arrowFollowsParens(next) {
		after, params, err := parseLambdaParams(next)
		if err != nil {
			return in, nil, combinator.Fail(in, "lambda")
		}
		lambda.Params, lambda.Parenthesized, next = params, true, after
	} else {
		return in, nil, combinator.Fail(in, "lambda")
	}

	next, ok := punct(next, "=>")
	if !ok {
		return in, nil, combinator.Fail(in, "lambda")
	}

	if atPunct(next, "{") {
		out, block, err := parseBlock(next)
		if err != nil {
			return in, nil, cut(err).Wrap("lambda body", start)
		}
		lambda.Block = block
		lambda.Range = span(start, out)
		return out, lambda, nil
	}
	out, body, err := parseExpr(next)
	if err != nil {
		return in, nil, cut(err).Wrap("lambda body", start)
	}
	lambda.Body = body
	lambda.Range = span(start, out)
	return out, lambda, nil
}

// lambdaName returns the parameter of x => ..., if in is at one.
func lambdaName(in input) (*ast.Ident, bool) {
	after, name, err := parseIdent(in)
	if err != nil || !atPunct(after, "=>") {
		return nil, false
	}
	return name, true
}

// arrowFollowsParens returns whether the parenthesized text at in is
// followed by =>, scanning brackets, strings and comments without parsing.
// This keeps (a = (b = c)) from being parsed once as parameter defaults and
// again as an expression at every level of nesting.
//
// Interpolated and raw strings are not scanned; text containing one is
// assumed to match and left to the parser.
func arrowFollowsParens(in input) bool {
	at := combinator.SkipTrivia(in)
	s := at.Rest()
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return atPunct(at.Advance(i+1), "=>")
			}
			if depth < 0 {
				return false
			}
		case '$':
			return true
		case '"':
			if strings.HasPrefix(s[i:], `"""`) {
				return true
			}
			end := closingQuote(s, i, i > 0 && s[i-1] == '@')
			if end < 0 {
				return false
			}
			i = end
		case '\'':
			end := closingQuote(s, i, false)
			if end < 0 {
				return false
			}
			i = end
		case '/':
			switch {
			case strings.HasPrefix(s[i:], "//"):
				nl := strings.IndexByte(s[i:], '\n')
				if nl < 0 {
					return false
				}
				i += nl
			case strings.HasPrefix(s[i:], "/*"):
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return false
				}
				i += end + 3
			}
		}
	}
	return false
}

// closingQuote returns the index of the quote that closes the string or
// character literal opened at s[open], or -1 if there is none.
func closingQuote(s string, open int, verbatim bool) int {
	q := s[open]
	for i := open + 1; i < len(s); i++ {
		switch c := s[i]; {
		case verbatim && c == q:
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return i
		case verbatim:
		case c == '\\':
			i++
		case c == q:
			return i
		case c == '\n':
			return -1
		}
	}
	return -1
}

// parseLambdaParams parses a lambda's parenthesized parameters, which are
// either all typed or all untyped.
func parseLambdaParams(in input) (input, []*ast.Parameter, *perr) {
	next, err := expect(in, "(")
	if err != nil {
		return in, nil, err
	}
	param := func(in input) (input, *ast.Parameter, *perr) {
		start := combinator.SkipTrivia(in)
		p := &ast.Parameter{}
		next := in
		if after, attrs, err := parseAttributeSections(next); err == nil {
			p.Attributes, next = attrs, after
		}
		next, p.Modifiers = parseParamModifiers(next)

		if after, t, err := parseType(next); err == nil {
			if after, name, err := parseIdent(after); err == nil {
				p.Type, p.Name, next = t, name, after
			}
		}
		if p.Name == nil {
			after, name, err := parseIdent(next)
			if err != nil {
				return in, nil, err
			}
			p.Name, next = name, after
		}
		if after, ok := punct(next, "=", "=", ">"); ok {
			after, def, err := parseExpr(after)
			if err != nil {
				return in, nil, err
			}
			p.Default, next = def, after
		}
		p.Range = span(start, next)
		return next, p, nil
	}

	next, params, err := combinator.SeparatedList0(combinator.Parser[*ast.Parameter](param), combinator.Punct(","))(next)
	if err != nil {
		return in, nil, err
	}
	out, err := expect(next, ")")
	if err != nil {
		return in, nil, err
	}
	return out, params, nil
}

// parseSwitchExpr parses the arms of x switch { ... }; in is just after the
// switch keyword.
func parseSwitchExpr(in, start input, x ast.Expr) (input, ast.Expr, bool, *perr) {
	wrap := func(err *perr) *perr { return cut(err).Wrap("switch expression", in) }
	next, _ := punct(in, "{")

	expr := &ast.SwitchExpr{X: x}
	for !atPunct(next, "}") {
		armStart := combinator.SkipTrivia(next)
		arm := &ast.SwitchArm{}
		after, pat, err := parsePattern(next)
		if err != nil {
			return in, nil, false, wrap(err)
		}
		arm.Pattern = pat
		if a, ok := keyword(after, "when"); ok {
			if after, arm.When, err = parseExpr(a); err != nil {
				return in, nil, false, wrap(err)
			}
		}
		if after, err = need(after, "=>"); err != nil {
			return in, nil, false, wrap(err)
		}
		if after, arm.Value, err = parseExpr(after); err != nil {
			return in, nil, false, wrap(err)
		}
		arm.Range = span(armStart, after)
		expr.Arms = append(expr.Arms, arm)

		next = after
		if a, ok := punct(next, ","); ok {
			next = a
			continue
		}
		break
	}
	out, err := need(next, "}")
	if err != nil {
		return in, nil, false, wrap(err)
	}
	expr.Range = span(start, out)
	return out, expr, true, nil
}
