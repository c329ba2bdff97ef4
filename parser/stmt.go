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

// keywordParser parses a statement whose keyword has already matched;
// after is just past the keyword.
type keywordParser func(in, start, after input) (input, ast.Stmt, *perr)

// keywordStmt returns the parser for the statement that begins with the
// keyword w, or nil if w does not start one here. Each one commits as soon
// as it is chosen.
func keywordStmt(w string, after input) keywordParser {
	switch w {
	case "if":
		return parseIf
	case "while":
		return parseWhile
	case "do":
		return parseDo
	case "for":
		return parseFor
	case "foreach":
		return parseForeach
	case "await":
		if atWord(after, "foreach", "using") {
			return parseAwaitStmt
		}
	case "switch":
		return parseSwitchStmt
	case "try":
		return parseTry
	case "using":
		return parseUsing
	case "lock":
		return parseLock
	case "fixed":
		return parseFixed
	case "unsafe":
		if atPunct(after, "{") {
			return parseUnsafe
		}
	case "checked", "unchecked":
		if atPunct(after, "{") {
			return parseChecked
		}
	case "goto":
		return parseGoto
	case "yield":
		if atWord(after, "return", "break") {
			return parseYield
		}
	case "return":
		return parseReturn
	case "throw":
		return parseThrow
	case "break":
		return parseBreak
	case "continue":
		return parseContinue
	}
	return nil
}

// parseStatement parses a single statement.
//
// Blocks and keyword statements are recognized by their first token. The
// rest are tried in order: labels, local functions, local declarations and
// finally expression statements.
func parseStatement(in input) (input, ast.Stmt, *perr) {
	start := combinator.SkipTrivia(in)

	switch {
	case atPunct(in, "{"):
		out, block, err := parseBlock(in)
		return out, block, err
	case atPunct(in, ";"):
		out, _ := punct(in, ";")
		return out, &ast.EmptyStmt{Range: span(start, out)}, nil
	}

	if w := word(in); w != "" {
		after, _ := keyword(in, w)
		if parse := keywordStmt(w, after); parse != nil {
			out, stmt, err := parse(in, start, after)
			if err != nil {
				return in, nil, err.Wrap(w+" statement", start)
			}
			return out, stmt, nil
		}
	}

	return combinator.Named("statement", combinator.Alt(
		parseLabeled,
		parseLocalFunction,
		parseLocalDeclStmt,
		parseExprStmt,
	))(in)
}

// parseBlock parses { stmts }.
//
// Before each statement it checks for the closing brace, so a missing one is
// reported where the statements run out rather than as a bad statement.
func parseBlock(in input) (input, *ast.BlockStmt, *perr) {
	start := combinator.SkipTrivia(in)
	next, err := expect(in, "{")
	if err != nil {
		return in, nil, err
	}
	next, stmts, err := combinator.ManyTill(
		combinator.Parser[ast.Stmt](parseStatement),
		combinator.Punct("}"),
	)(next)
	if err != nil {
		return in, nil, cut(err).Wrap("block", start)
	}
	out, err := need(next, "}")
	if err != nil {
		return in, nil, err.Wrap("block", start)
	}
	return out, &ast.BlockStmt{Range: span(start, out), Stmts: stmts}, nil
}

// parseEmbedded parses the body of a control statement, which commits.
func parseEmbedded(in input, stage string) (input, ast.Stmt, *perr) {
	out, stmt, err := parseStatement(in)
	if err != nil {
		return in, nil, cut(err).Wrap(stage, in)
	}
	return out, stmt, nil
}

// parseCondition parses (x) after a committed keyword.
func parseCondition(in input, stage string) (input, ast.Expr, *perr) {
	next, err := need(in, "(")
	if err != nil {
		return in, nil, err.Wrap("opening parenthesis for "+stage, in)
	}
	next, x, err := parseExpr(next)
	if err != nil {
		return in, nil, cut(err).Wrap(stage, in)
	}
	out, err := need(next, ")")
	if err != nil {
		return in, nil, err.Wrap("closing parenthesis for "+stage, next)
	}
	return out, x, nil
}

// semicolon requires the ';' that ends a statement.
func semicolon(in input) (input, *perr) {
	return need(in, ";")
}

func parseIf(_, start, in input) (input, ast.Stmt, *perr) {
	next, cond, err := parseCondition(in, "if condition")
	if err != nil {
		return in, nil, err
	}
	next, then, err := parseEmbedded(next, "if body")
	if err != nil {
		return in, nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if after, ok := keyword(next, "else"); ok {
		if next, stmt.Else, err = parseEmbedded(after, "else body"); err != nil {
			return in, nil, err
		}
	}
	stmt.Range = span(start, next)
	return next, stmt, nil
}

func parseWhile(_, start, in input) (input, ast.Stmt, *perr) {
	next, cond, err := parseCondition(in, "while condition")
	if err != nil {
		return in, nil, err
	}
	out, body, err := parseEmbedded(next, "while body")
	if err != nil {
		return in, nil, err
	}
	return out, &ast.WhileStmt{Range: span(start, out), Cond: cond, Body: body}, nil
}

func parseDo(_, start, in input) (input, ast.Stmt, *perr) {
	next, body, err := parseEmbedded(in, "do body")
	if err != nil {
		return in, nil, err
	}
	if next, err = expectKeyword(next, "while"); err != nil {
		return in, nil, cut(err)
	}
	next, cond, err := parseCondition(next, "do-while condition")
	if err != nil {
		return in, nil, err
	}
	out, err := semicolon(next)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.DoStmt{Range: span(start, out), Body: body, Cond: cond}, nil
}

func parseFor(_, start, in input) (input, ast.Stmt, *perr) {
	next, err := need(in, "(")
	if err != nil {
		return in, nil, err
	}
	stmt := &ast.ForStmt{}

	// The initializer is a declaration if it reads as one up to the ';', and
	// an expression list otherwise.
	if after, decl, err := parseLocalDecl(next); err == nil && atPunct(after, ";") {
		stmt.Decl, next = decl, after
	} else if !atPunct(next, ";") {
		if next, stmt.Init, err = parseExprList(next); err != nil {
			return in, nil, cut(err).Wrap("for initializer", next)
		}
	}
	if next, err = need(next, ";"); err != nil {
		return in, nil, err
	}

	if !atPunct(next, ";") {
		if next, stmt.Cond, err = parseExpr(next); err != nil {
			return in, nil, cut(err).Wrap("for condition", next)
		}
	}
	if next, err = need(next, ";"); err != nil {
		return in, nil, err
	}

	if !atPunct(next, ")") {
		if next, stmt.Update, err = parseExprList(next); err != nil {
			return in, nil, cut(err).Wrap("for update", next)
		}
	}
	if next, err = need(next, ")"); err != nil {
		return in, nil, err.Wrap("closing parenthesis for for loop", next)
	}

	out, body, err := parseEmbedded(next, "for body")
	if err != nil {
		return in, nil, err
	}
	stmt.Body = body
	stmt.Range = span(start, out)
	return out, stmt, nil
}

// parseExprList parses a, b, c.
func parseExprList(in input) (input, []ast.Expr, *perr) {
	return combinator.SeparatedList1(combinator.Parser[ast.Expr](parseExpr), combinator.Punct(","))(in)
}

func parseForeach(_, start, in input) (input, ast.Stmt, *perr) {
	return foreachBody(start, in, false)
}

// parseAwaitStmt parses await foreach and await using.
func parseAwaitStmt(_, start, in input) (input, ast.Stmt, *perr) {
	if next, ok := keyword(in, "foreach"); ok {
		return foreachBody(start, next, true)
	}
	next, _ := keyword(in, "using")
	return usingBody(start, next, true)
}

// foreachBody parses (T x in xs) body. in is just after foreach.
func foreachBody(start, in input, await bool) (input, ast.Stmt, *perr) {
	next, err := need(in, "(")
	if err != nil {
		return in, nil, err
	}
	stmt := &ast.ForeachStmt{Await: await}

	typed := false
	if after, t, err := parseType(next); err == nil {
		if after, d, err := parseDesignation(after); err == nil && atWord(after, "in") {
			stmt.Type, stmt.Designation, next = inferVar(t), d, after
			typed = true
		}
	}
	if !typed {
		after, target, err := parseExpr(next)
		if err != nil {
			return in, nil, cut(err).Wrap("foreach variable", next)
		}
		stmt.Target, next = target, after
	}

	if next, err = expectKeyword(next, "in"); err != nil {
		return in, nil, cut(err)
	}
	if next, stmt.In, err = parseExpr(next); err != nil {
		return in, nil, cut(err).Wrap("foreach collection", next)
	}
	if next, err = need(next, ")"); err != nil {
		return in, nil, err.Wrap("closing parenthesis for foreach", next)
	}
	out, body, err := parseEmbedded(next, "foreach body")
	if err != nil {
		return in, nil, err
	}
	stmt.Body = body
	stmt.Range = span(start, out)
	return out, stmt, nil
}

func parseSwitchStmt(_, start, in input) (input, ast.Stmt, *perr) {
	if !atPunct(in, "(") {
		return in, nil, combinator.Fail(in, "'('").AsFatal()
	}
	next, x, err := parseParenthesized(in)
	if err != nil {
		return in, nil, cut(err).Wrap("switch subject", in)
	}
	if paren, ok := x.(*ast.ParenExpr); ok {
		x = paren.X
	}

	if next, err = need(next, "{"); err != nil {
		return in, nil, err
	}
	next, sections, err := combinator.ManyTill(
		combinator.Parser[*ast.SwitchSection](parseSwitchSection),
		combinator.Punct("}"),
	)(next)
	if err != nil {
		return in, nil, cut(err).Wrap("switch body", start)
	}
	out, err := need(next, "}")
	if err != nil {
		return in, nil, err
	}
	return out, &ast.SwitchStmt{Range: span(start, out), X: x, Sections: sections}, nil
}

// parseSwitchSection parses one or more labels and the statements after
// them.
func parseSwitchSection(in input) (input, *ast.SwitchSection, *perr) {
	start := combinator.SkipTrivia(in)
	next, labels, err := combinator.Many1(combinator.Parser[ast.SwitchLabel](parseSwitchLabel))(in)
	if err != nil {
		return in, nil, err
	}
	out, stmts, err := combinator.ManyTill(
		combinator.Parser[ast.Stmt](parseStatement),
		combinator.Alt(
			combinator.Value(struct{}{}, combinator.Punct("}")),
			combinator.Value(struct{}{}, combinator.Parser[ast.SwitchLabel](parseSwitchLabel)),
		),
	)(next)
	if err != nil {
		return in, nil, cut(err).Wrap("switch section", start)
	}
	return out, &ast.SwitchSection{Range: span(start, out), Labels: labels, Stmts: stmts}, nil
}

// parseSwitchLabel parses case pattern when guard: or default:.
//
// A case whose pattern is a bare constant and that has no guard is reported
// as a [ast.CaseLabel], the same as a classic constant case.
func parseSwitchLabel(in input) (input, ast.SwitchLabel, *perr) {
	start := combinator.SkipTrivia(in)
	if next, ok := keyword(in, "default"); ok {
		out, err := expect(next, ":", ":")
		if err != nil {
			return in, nil, err
		}
		return out, &ast.DefaultLabel{Range: span(start, out)}, nil
	}

	next, err := expectKeyword(in, "case")
	if err != nil {
		return in, nil, err
	}
	next, pat, err := parsePattern(next)
	if err != nil {
		return in, nil, cut(err).Wrap("case label", start)
	}
	var when ast.Expr
	if after, ok := keyword(next, "when"); ok {
		if next, when, err = parseExpr(after); err != nil {
			return in, nil, cut(err).Wrap("case guard", start)
		}
	}
	out, err := need(next, ":", ":")
	if err != nil {
		return in, nil, err.Wrap("case label", start)
	}

	if c, ok := pat.(*ast.ConstantPattern); ok && when == nil {
		return out, &ast.CaseLabel{Range: span(start, out), Value: c.Value}, nil
	}
	return out, &ast.PatternLabel{Range: span(start, out), Pattern: pat, When: when}, nil
}

func parseTry(_, start, in input) (input, ast.Stmt, *perr) {
	next, block, err := parseBlock(in)
	if err != nil {
		return in, nil, cut(err)
	}
	stmt := &ast.TryStmt{Block: block}

	for atWord(next, "catch") {
		after, clause, err := parseCatch(next)
		if err != nil {
			return in, nil, err
		}
		stmt.Catches = append(stmt.Catches, clause)
		next = after
	}
	if after, ok := keyword(next, "finally"); ok {
		if next, stmt.Finally, err = parseBlock(after); err != nil {
			return in, nil, cut(err).Wrap("finally clause", after)
		}
	}
	if stmt.Catches == nil && stmt.Finally == nil {
		return in, nil, combinator.Fail(next, "'catch' or 'finally'").AsFatal()
	}
	stmt.Range = span(start, next)
	return next, stmt, nil
}

// parseCatch parses catch (T e) when (cond) { }.
func parseCatch(in input) (input, *ast.CatchClause, *perr) {
	start := combinator.SkipTrivia(in)
	wrap := func(err *perr) *perr { return cut(err).Wrap("catch clause", start) }
	next, _ := keyword(in, "catch")
	clause := &ast.CatchClause{}

	if after, ok := punct(next, "("); ok {
		after, t, err := parseType(after)
		if err != nil {
			return in, nil, wrap(err)
		}
		clause.Type = t
		if a, name, err := parseIdent(after); err == nil {
			clause.Name, after = name, a
		}
		if next, err = need(after, ")"); err != nil {
			return in, nil, wrap(err)
		}
	}
	if after, ok := keyword(next, "when"); ok {
		var err *perr
		if next, clause.When, err = parseCondition(after, "catch filter"); err != nil {
			return in, nil, wrap(err)
		}
	}
	out, block, err := parseBlock(next)
	if err != nil {
		return in, nil, wrap(err)
	}
	clause.Block = block
	clause.Range = span(start, out)
	return out, clause, nil
}

func parseUsing(_, start, in input) (input, ast.Stmt, *perr) {
	return usingBody(start, in, false)
}

// usingBody parses the rest of a using statement or using declaration. in
// is just after using.
func usingBody(start, in input, await bool) (input, ast.Stmt, *perr) {
	if !atPunct(in, "(") {
		next, decl, err := parseLocalDecl(in)
		if err != nil {
			return in, nil, cut(err).Wrap("using declaration", start)
		}
		out, err := semicolon(next)
		if err != nil {
			return in, nil, err
		}
		decl.Using, decl.Await = true, await
		decl.Range = span(start, out)
		return out, decl, nil
	}

	next, _ := punct(in, "(")
	stmt := &ast.UsingStmt{Await: await}
	if after, decl, err := parseLocalDecl(next); err == nil && atPunct(after, ")") {
		stmt.Decl, next = decl, after
	} else {
		after, x, err := parseExpr(next)
		if err != nil {
			return in, nil, cut(err).Wrap("using resource", next)
		}
		stmt.X, next = x, after
	}
	next, err := need(next, ")")
	if err != nil {
		return in, nil, err.Wrap("closing parenthesis for using", next)
	}
	out, body, err := parseEmbedded(next, "using body")
	if err != nil {
		return in, nil, err
	}
	stmt.Body = body
	stmt.Range = span(start, out)
	return out, stmt, nil
}

func parseLock(_, start, in input) (input, ast.Stmt, *perr) {
	next, x, err := parseCondition(in, "lock target")
	if err != nil {
		return in, nil, err
	}
	out, body, err := parseEmbedded(next, "lock body")
	if err != nil {
		return in, nil, err
	}
	return out, &ast.LockStmt{Range: span(start, out), X: x, Body: body}, nil
}

func parseFixed(_, start, in input) (input, ast.Stmt, *perr) {
	next, err := need(in, "(")
	if err != nil {
		return in, nil, err
	}
	next, decl, err := parseLocalDecl(next)
	if err != nil {
		return in, nil, cut(err).Wrap("fixed declaration", next)
	}
	if next, err = need(next, ")"); err != nil {
		return in, nil, err
	}
	out, body, err := parseEmbedded(next, "fixed body")
	if err != nil {
		return in, nil, err
	}
	return out, &ast.FixedStmt{Range: span(start, out), Decl: decl, Body: body}, nil
}

func parseUnsafe(_, start, in input) (input, ast.Stmt, *perr) {
	out, block, err := parseBlock(in)
	if err != nil {
		return in, nil, cut(err)
	}
	return out, &ast.UnsafeStmt{Range: span(start, out), Block: block}, nil
}

func parseChecked(kw, start, in input) (input, ast.Stmt, *perr) {
	out, block, err := parseBlock(in)
	if err != nil {
		return in, nil, cut(err)
	}
	return out, &ast.CheckedStmt{
		Range:     span(start, out),
		Unchecked: word(kw) == "unchecked",
		Block:     block,
	}, nil
}

func parseGoto(_, start, in input) (input, ast.Stmt, *perr) {
	stmt := &ast.GotoStmt{}
	var (
		next = in
		err  *perr
	)
	switch {
	case atWord(in, "case"):
		next, _ = keyword(in, "case")
		stmt.Kind = ast.GotoCase
		if next, stmt.Case, err = parseExpr(next); err != nil {
			return in, nil, cut(err)
		}
	case atWord(in, "default"):
		next, _ = keyword(in, "default")
		stmt.Kind = ast.GotoDefault
	default:
		if next, stmt.Label, err = parseIdent(in); err != nil {
			return in, nil, cut(err)
		}
	}
	out, err := semicolon(next)
	if err != nil {
		return in, nil, err
	}
	stmt.Range = span(start, out)
	return out, stmt, nil
}

func parseYield(_, start, in input) (input, ast.Stmt, *perr) {
	stmt := &ast.YieldStmt{}
	next := in
	if after, ok := keyword(in, "break"); ok {
		stmt.Break, next = true, after
	} else {
		next, _ = keyword(in, "return")
		after, x, err := parseExpr(next)
		if err != nil {
			return in, nil, cut(err).Wrap("yield return value", next)
		}
		stmt.X, next = x, after
	}
	out, err := semicolon(next)
	if err != nil {
		return in, nil, err
	}
	stmt.Range = span(start, out)
	return out, stmt, nil
}

// optionalValue parses the expression of return or throw, if there is one.
func optionalValue(in input, stage string) (input, ast.Expr, *perr) {
	if atPunct(in, ";") {
		return in, nil, nil
	}
	out, x, err := parseExpr(in)
	if err != nil {
		return in, nil, cut(err).Wrap(stage, in)
	}
	return out, x, nil
}

func parseReturn(_, start, in input) (input, ast.Stmt, *perr) {
	next, x, err := optionalValue(in, "return value")
	if err != nil {
		return in, nil, err
	}
	out, err := semicolon(next)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.ReturnStmt{Range: span(start, out), X: x}, nil
}

func parseThrow(_, start, in input) (input, ast.Stmt, *perr) {
	next, x, err := optionalValue(in, "thrown value")
	if err != nil {
		return in, nil, err
	}
	out, err := semicolon(next)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.ThrowStmt{Range: span(start, out), X: x}, nil
}

func parseBreak(_, start, in input) (input, ast.Stmt, *perr) {
	out, err := semicolon(in)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.BreakStmt{Range: span(start, out)}, nil
}

func parseContinue(_, start, in input) (input, ast.Stmt, *perr) {
	out, err := semicolon(in)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.ContinueStmt{Range: span(start, out)}, nil
}

// parseLabeled parses label: stmt.
func parseLabeled(in input) (input, ast.Stmt, *perr) {
	start := combinator.SkipTrivia(in)
	next, label, err := parseIdent(in)
	if err != nil {
		return in, nil, err
	}
	next, err = expect(next, ":", ":")
	if err != nil {
		return in, nil, err
	}
	out, stmt, err := parseEmbedded(next, "labeled statement")
	if err != nil {
		return in, nil, err
	}
	return out, &ast.LabeledStmt{Range: span(start, out), Label: label, Stmt: stmt}, nil
}

// localModifiers are the modifiers a local declaration may carry.
var localModifiers = []ast.Modifier{ast.Const, ast.Scoped, ast.Readonly}

// parseLocalDecl parses a local variable declaration without its ';'. It
// fails recoverably until it has seen a type followed by a name.
func parseLocalDecl(in input) (input, *ast.LocalDeclStmt, *perr) {
	start := combinator.SkipTrivia(in)
	decl := &ast.LocalDeclStmt{}

	next := in
	for {
		matched := false
		for _, m := range localModifiers {
			if after, ok := keyword(next, m.String()); ok {
				if m == ast.Const {
					decl.Const = true
				} else {
					decl.Modifiers = append(decl.Modifiers, m)
				}
				next, matched = after, true
			}
		}
		if !matched {
			break
		}
	}

	next, t, err := parseReturnType(next)
	if err != nil {
		return in, nil, err
	}
	if named, ok := t.(*ast.NamedType); ok && named.Simple() && named.Segments[0].Name.Name == "await" {
		return in, nil, combinator.Fail(in, "declaration")
	}
	decl.Type = inferVar(t)

	if _, _, err := parseIdent(next); err != nil {
		return in, nil, err
	}
	out, vars, err := combinator.SeparatedList1(
		combinator.Parser[*ast.VarDeclarator](parseVarDeclarator),
		combinator.Punct(","),
	)(next)
	if err != nil {
		return in, nil, err
	}
	decl.Vars = vars
	decl.Range = span(start, out)
	return out, decl, nil
}

// parseVarDeclarator parses name [size] = init. The initializer may be an
// array initializer.
func parseVarDeclarator(in input) (input, *ast.VarDeclarator, *perr) {
	start := combinator.SkipTrivia(in)
	next, name, err := parseIdent(in)
	if err != nil {
		return in, nil, err
	}
	v := &ast.VarDeclarator{Name: name}

	if after, ok := punct(next, "["); ok {
		after, size, err := parseExpr(after)
		if err != nil {
			return in, nil, err
		}
		if after, err = expect(after, "]"); err != nil {
			return in, nil, err
		}
		v.Size, next = size, after
	}

	if after, ok := punct(next, "=", "=", ">"); ok {
		var init ast.Expr
		if atPunct(after, "{") {
			var ie *ast.InitializerExpr
			after, ie, err = parseInitializer(after)
			init = ie
		} else {
			after, init, err = parseExpr(after)
		}
		if err != nil {
			return in, nil, cut(err).Wrap("initializer of "+name.String(), after)
		}
		v.Init, next = init, after
	}

	v.Range = span(start, next)
	return next, v, nil
}

// parseLocalDeclStmt parses a local declaration statement.
func parseLocalDeclStmt(in input) (input, ast.Stmt, *perr) {
	start := combinator.SkipTrivia(in)
	next, decl, err := parseLocalDecl(in)
	if err != nil {
		return in, nil, err
	}
	out, err := expect(next, ";")
	if err != nil {
		return in, nil, err
	}
	decl.Range = span(start, out)
	return out, decl, nil
}

// parseLocalFunction parses a local function. It commits once it has seen
// the parameter list.
func parseLocalFunction(in input) (input, ast.Stmt, *perr) {
	start := combinator.SkipTrivia(in)
	fn := &ast.LocalFuncStmt{}

	next, attrs, err := parseAttributeSections(in)
	if err != nil {
		return in, nil, err
	}
	fn.Attributes = attrs
	next, fn.Modifiers = parseModifiers(next)

	if next, fn.Return, err = parseReturnType(next); err != nil {
		return in, nil, err
	}
	if next, fn.Name, err = parseIdent(next); err != nil {
		return in, nil, err
	}
	if atPunct(next, "<") {
		if next, fn.TypeParams, err = parseTypeParameters(next); err != nil {
			return in, nil, err
		}
	}
	if !atPunct(next, "(") {
		return in, nil, combinator.Fail(next, "'('")
	}
	if next, fn.Params, err = parseParameterList(next, "(", ")"); err != nil {
		return in, nil, err
	}

	wrap := func(err *perr) *perr { return cut(err).Wrap("local function", start) }
	if next, fn.Constraints, err = parseConstraintClauses(next); err != nil {
		return in, nil, wrap(err)
	}
	out, body, exprBody, err := parseMethodBody(next)
	if err != nil {
		return in, nil, wrap(err)
	}
	fn.Body, fn.ExprBody = body, exprBody
	fn.Range = span(start, out)
	return out, fn, nil
}

// parseExprStmt parses x;.
func parseExprStmt(in input) (input, ast.Stmt, *perr) {
	start := combinator.SkipTrivia(in)
	next, x, err := parseExpr(in)
	if err != nil {
		return in, nil, err
	}
	out, err := expect(next, ";")
	if err != nil {
		return in, nil, err.Wrap("expression statement", start)
	}
	return out, &ast.ExprStmt{Range: span(start, out), X: x}, nil
}
