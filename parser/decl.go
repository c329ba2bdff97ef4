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
	"github.com/bufbuild/bsharp/source"
)

// parseAttributeSections parses any number of [attr, ...] sections. It
// succeeds with nothing if there are none.
func parseAttributeSections(in input) (input, []*ast.AttributeSection, *perr) {
	var sections []*ast.AttributeSection
	next := in
	for atPunct(next, "[") {
		after, section, err := parseAttributeSection(next)
		if err != nil {
			return in, nil, err
		}
		sections = append(sections, section)
		next = after
	}
	return next, sections, nil
}

// parseAttributeSection parses [target: A, B(1)].
func parseAttributeSection(in input) (input, *ast.AttributeSection, *perr) {
	start := combinator.SkipTrivia(in)
	next, err := expect(in, "[")
	if err != nil {
		return in, nil, err
	}
	section := &ast.AttributeSection{}
	if w := word(next); w != "" {
		after, _ := keyword(next, w)
		if after, ok := punct(after, ":", ":"); ok {
			section.Target, next = w, after
		}
	}

	next, attrs, err := combinator.SeparatedList1(
		combinator.Parser[*ast.Attribute](parseAttribute),
		combinator.Punct(","),
	)(next)
	if err != nil {
		return in, nil, err
	}
	section.Attrs = attrs
	if after, ok := punct(next, ","); ok {
		next = after
	}
	out, err := expect(next, "]")
	if err != nil {
		return in, nil, err
	}
	section.Range = span(start, out)
	return out, section, nil
}

// parseAttribute parses Name(args). Arguments may be positional, name: x
// or Name = x.
func parseAttribute(in input) (input, *ast.Attribute, *perr) {
	start := combinator.SkipTrivia(in)
	next, name, err := parseNamedType(in)
	if err != nil {
		return in, nil, err
	}
	attr := &ast.Attribute{Name: name}
	if after, ok := punct(next, "("); ok {
		after, args, err := combinator.SeparatedList0(
			combinator.Alt(combinator.Parser[*ast.Argument](parseNamedAttributeArg), argumentParser(false)),
			combinator.Punct(","),
		)(after)
		if err != nil {
			return in, nil, err
		}
		if next, err = expect(after, ")"); err != nil {
			return in, nil, err
		}
		attr.Args = args
	}
	attr.Range = span(start, next)
	return next, attr, nil
}

// parseNamedAttributeArg parses Name = value.
func parseNamedAttributeArg(in input) (input, *ast.Argument, *perr) {
	start := combinator.SkipTrivia(in)
	next, name, err := parseIdent(in)
	if err != nil {
		return in, nil, err
	}
	next, err = expect(next, "=", "=", ">")
	if err != nil {
		return in, nil, err
	}
	out, value, err := parseExpr(next)
	if err != nil {
		return in, nil, cut(err)
	}
	return out, &ast.Argument{Range: span(start, out), Name: name, NameEquals: true, Value: value}, nil
}

// contextualModifiers are only modifiers when another word follows them.
var contextualModifiers = map[ast.Modifier]bool{
	ast.Partial:  true,
	ast.Async:    true,
	ast.Required: true,
	ast.File:     true,
	ast.Scoped:   true,
}

// parseModifiers parses any number of declaration modifiers, in any order,
// and returns them in canonical order.
func parseModifiers(in input) (input, []ast.Modifier) {
	var mods []ast.Modifier
	next := in
	for {
		w := word(next)
		m, ok := ast.LookupModifier(w)
		if !ok || isParamModifier(m) {
			break
		}
		after, _ := keyword(next, w)
		if contextualModifiers[m] && word(after) == "" {
			break
		}
		mods = append(mods, m)
		next = after
	}
	ast.SortModifiers(mods)
	return next, mods
}

func isParamModifier(m ast.Modifier) bool {
	switch m {
	case ast.Ref, ast.Out, ast.In, ast.Params, ast.Scoped:
		return true
	}
	return false
}

// paramModifiers are the words that may precede a parameter's type.
var paramModifiers = []string{"this", "scoped", "ref", "out", "in", "params", "readonly"}

// parseParamModifiers parses parameter modifiers such as ref, out or this.
func parseParamModifiers(in input) (input, []string) {
	var mods []string
	next := in
	for {
		w := word(next)
		if !atWord(next, paramModifiers...) {
			break
		}
		after, _ := keyword(next, w)
		if w == "scoped" && word(after) == "" {
			break
		}
		if w == "readonly" && (len(mods) == 0 || mods[len(mods)-1] != "ref") {
			break
		}
		mods = append(mods, w)
		next = after
	}
	return next, mods
}

// parseParameterList parses a delimited list of parameters, such as (int x)
// or [int i]. It fails recoverably so that callers can decide when a
// parameter list commits them.
func parseParameterList(in input, opening, closing string) (input, []*ast.Parameter, *perr) {
	next, err := expect(in, opening)
	if err != nil {
		return in, nil, err
	}
	next, params, err := combinator.SeparatedList0(
		combinator.Parser[*ast.Parameter](parseParameter),
		combinator.Punct(","),
	)(next)
	if err != nil {
		return in, nil, err
	}
	out, err := expect(next, closing)
	if err != nil {
		return in, nil, err
	}
	return out, params, nil
}

// parseParameter parses [attrs] modifiers T name = default.
func parseParameter(in input) (input, *ast.Parameter, *perr) {
	start := combinator.SkipTrivia(in)
	next, attrs, err := parseAttributeSections(in)
	if err != nil {
		return in, nil, err
	}
	p := &ast.Parameter{Attributes: attrs}
	next, p.Modifiers = parseParamModifiers(next)

	if next, p.Type, err = parseType(next); err != nil {
		return in, nil, err
	}
	if next, p.Name, err = parseIdent(next); err != nil {
		return in, nil, err
	}
	if after, ok := punct(next, "=", "=", ">"); ok {
		if next, p.Default, err = parseExpr(after); err != nil {
			return in, nil, cut(err).Wrap("default value of "+p.Name.String(), after)
		}
	}
	p.Range = span(start, next)
	return next, p, nil
}

// parseTypeParameters parses <[attrs] in T, out U>.
func parseTypeParameters(in input) (input, []*ast.TypeParameter, *perr) {
	next, err := expect(in, "<")
	if err != nil {
		return in, nil, err
	}
	param := func(in input) (input, *ast.TypeParameter, *perr) {
		start := combinator.SkipTrivia(in)
		next, attrs, err := parseAttributeSections(in)
		if err != nil {
			return in, nil, err
		}
		p := &ast.TypeParameter{Attributes: attrs}
		for _, v := range []string{"in", "out"} {
			if after, ok := keyword(next, v); ok {
				p.Variance, next = v, after
			}
		}
		if next, p.Name, err = parseIdent(next); err != nil {
			return in, nil, err
		}
		p.Range = span(start, next)
		return next, p, nil
	}
	next, params, err := combinator.SeparatedList1(combinator.Parser[*ast.TypeParameter](param), combinator.Punct(","))(next)
	if err != nil {
		return in, nil, err
	}
	out, err := expect(next, ">")
	if err != nil {
		return in, nil, err
	}
	return out, params, nil
}

// parseConstraintClauses parses any number of where T : constraints
// clauses.
func parseConstraintClauses(in input) (input, []*ast.ConstraintClause, *perr) {
	var clauses []*ast.ConstraintClause
	next := in
	for atWord(next, "where") {
		start := combinator.SkipTrivia(next)
		after, _ := keyword(next, "where")
		clause := &ast.ConstraintClause{}
		var err *perr
		if after, clause.Param, err = parseIdent(after); err != nil {
			return in, nil, cut(err).Wrap("constraint clause", start)
		}
		if after, err = need(after, ":", ":"); err != nil {
			return in, nil, err.Wrap("constraint clause", start)
		}
		if after, clause.Constraints, err = combinator.SeparatedList1(
			combinator.Parser[*ast.Constraint](parseConstraint),
			combinator.Punct(","),
		)(after); err != nil {
			return in, nil, cut(err).Wrap("constraint clause", start)
		}
		clause.Range = span(start, after)
		clauses = append(clauses, clause)
		next = after
	}
	return next, clauses, nil
}

// parseConstraint parses a single constraint.
func parseConstraint(in input) (input, *ast.Constraint, *perr) {
	start := combinator.SkipTrivia(in)
	switch w := word(in); w {
	case "class", "struct", "unmanaged", "notnull", "default":
		next, _ := keyword(in, w)
		if w == "class" {
			if after, ok := punct(next, "?"); ok {
				w, next = "class?", after
			}
		}
		return next, &ast.Constraint{Range: span(start, next), Keyword: w}, nil
	case "new":
		next, _ := keyword(in, "new")
		next, err := need(next, "(")
		if err != nil {
			return in, nil, err
		}
		if next, err = need(next, ")"); err != nil {
			return in, nil, err
		}
		return next, &ast.Constraint{Range: span(start, next), Keyword: "new()"}, nil
	}
	next, t, err := parseType(in)
	if err != nil {
		return in, nil, err
	}
	return next, &ast.Constraint{Range: span(start, next), Type: t}, nil
}

// parseMethodBody parses { ... }, => x; or a bare ;.
func parseMethodBody(in input) (input, *ast.BlockStmt, ast.Expr, *perr) {
	if atPunct(in, "{") {
		out, block, err := parseBlock(in)
		return out, block, nil, err
	}
	if next, ok := punct(in, "=>"); ok {
		next, x, err := parseExpr(next)
		if err != nil {
			return in, nil, nil, cut(err).Wrap("expression body", next)
		}
		out, err := need(next, ";")
		if err != nil {
			return in, nil, nil, err
		}
		return out, nil, x, nil
	}
	out, err := expect(in, ";")
	if err != nil {
		return in, nil, nil, combinator.Fail(in, "method body")
	}
	return out, nil, nil, nil
}

// declLevel says which declarations are allowed at a point.
type declLevel uint8

const (
	// Namespaces.
	allowNamespaces declLevel = 1 << iota
	// Fields, methods, properties and the like.
	allowMembers

	// Inside a namespace or at the top of a file.
	namespaceLevel = allowNamespaces
	// Inside a class, struct, interface or record.
	typeLevel = allowMembers
	anyLevel  = allowNamespaces | allowMembers
)

// typeKeywords maps the keywords that introduce a [ast.TypeDecl] to kinds.
var typeKeywords = map[string]ast.TypeKind{
	"class":     ast.Class,
	"struct":    ast.Struct,
	"interface": ast.Interface,
	"record":    ast.Record,
}

// parseDeclaration parses any declaration that may appear at level.
//
// Every declaration shares the same header pipeline: attributes, then
// modifiers, then the keyword or type that says what is being declared.
func parseDeclaration(in input, level declLevel) (input, ast.Decl, *perr) {
	start := combinator.SkipTrivia(in)
	next, attrs, err := parseAttributeSections(in)
	if err != nil {
		return in, nil, err
	}
	next, mods := parseModifiers(next)
	h := header{start: start, attrs: attrs, mods: mods}

	w := word(next)
	after, _ := keyword(next, w)
	stage := ""
	var (
		out  input
		decl ast.Decl
	)
	switch {
	case w == "namespace" && level&allowNamespaces != 0:
		stage = "namespace declaration"
		out, decl, err = parseNamespace(h, after)
	case w == "record" && word(after) != "":
		stage = "record declaration"
		out, decl, err = parseTypeDecl(h, after, ast.Record)
	case typeKeywords[w] != 0 && w != "record":
		stage = w + " declaration"
		out, decl, err = parseTypeDecl(h, after, typeKeywords[w])
	case w == "enum":
		stage = "enum declaration"
		out, decl, err = parseEnum(h, after)
	case w == "delegate" && !atPunct(after, "*"):
		stage = "delegate declaration"
		out, decl, err = parseDelegate(h, after)
	case level&allowMembers == 0:
		return in, nil, combinator.Fail(next, "type declaration")
	case w == "event":
		stage = "event declaration"
		out, decl, err = parseEvent(h, after)
	case atPunct(next, "~"):
		stage = "destructor"
		out, decl, err = parseDestructor(h, next)
	default:
		return parseMember(h, next)
	}
	if err != nil {
		return in, nil, cut(err).Wrap(stage, start)
	}
	return out, decl, nil
}

// header is the part of a declaration shared by every kind.
type header struct {
	start input
	attrs []*ast.AttributeSection
	mods  []ast.Modifier
}

// parseNamespace parses the rest of namespace N { ... } or namespace N;. A
// file-scoped namespace takes every declaration up to the end of input.
func parseNamespace(h header, in input) (input, ast.Decl, *perr) {
	next, name, err := parseNamedType(in)
	if err != nil {
		return in, nil, err
	}
	ns := &ast.NamespaceDecl{Name: name}

	closing := combinator.Value(struct{}{}, combinator.Punct("}"))
	if after, ok := punct(next, ";"); ok {
		ns.FileScoped, next = true, after
		closing = combinator.Eof
	} else if next, err = need(next, "{"); err != nil {
		return in, nil, err
	}

	if next, ns.Externs, ns.Usings, err = parseDirectives(next); err != nil {
		return in, nil, err
	}
	next, ns.Members, err = combinator.ManyTill(
		combinator.Parser[ast.Decl](func(in input) (input, ast.Decl, *perr) {
			return parseDeclaration(in, namespaceLevel)
		}),
		closing,
	)(next)
	if err != nil {
		return in, nil, err
	}
	if !ns.FileScoped {
		if next, err = need(next, "}"); err != nil {
			return in, nil, err
		}
		next = optionalSemicolon(next)
	}
	ns.Range = span(h.start, next)
	return next, ns, nil
}

// optionalSemicolon skips the ; some declarations may end with.
func optionalSemicolon(in input) input {
	if out, ok := punct(in, ";"); ok {
		return out
	}
	return in
}

// parseDirectives parses extern alias and using directives.
func parseDirectives(in input) (input, []*ast.ExternAlias, []*ast.UsingDirective, *perr) {
	var (
		externs []*ast.ExternAlias
		usings  []*ast.UsingDirective
	)
	next := in
	for {
		if after, ext, ok, err := parseExternAlias(next); err != nil {
			return in, nil, nil, err
		} else if ok {
			externs = append(externs, ext)
			next = after
			continue
		}
		if after, using, err := parseUsingDirective(next); err == nil {
			usings = append(usings, using)
			next = after
			continue
		} else if err.Fatal {
			return in, nil, nil, err
		}
		return next, externs, usings, nil
	}
}

// parseExternAlias parses extern alias name;.
func parseExternAlias(in input) (input, *ast.ExternAlias, bool, *perr) {
	start := combinator.SkipTrivia(in)
	next, ok := keyword(in, "extern")
	if !ok || !atWord(next, "alias") {
		return in, nil, false, nil
	}
	next, _ = keyword(next, "alias")
	next, name, err := parseIdent(next)
	if err != nil {
		return in, nil, false, cut(err).Wrap("extern alias", start)
	}
	out, err := need(next, ";")
	if err != nil {
		return in, nil, false, err.Wrap("extern alias", start)
	}
	return out, &ast.ExternAlias{Range: span(start, out), Name: name}, true, nil
}

// parseUsingDirective parses [global] using [static] [unsafe] [A =] T;.
//
// It fails recoverably up to the final ';', since using var x = ...; and
// using (...) are statements.
func parseUsingDirective(in input) (input, *ast.UsingDirective, *perr) {
	start := combinator.SkipTrivia(in)
	using := &ast.UsingDirective{}
	next := in
	if after, ok := keyword(next, "global"); ok && atWord(after, "using") {
		using.Global, next = true, after
	}
	next, err := expectKeyword(next, "using")
	if err != nil {
		return in, nil, err
	}
	if after, ok := keyword(next, "static"); ok {
		using.Static, next = true, after
	}
	if after, ok := keyword(next, "unsafe"); ok {
		using.Unsafe, next = true, after
	}
	if after, alias, err := parseIdent(next); err == nil {
		if after, ok := punct(after, "=", "=", ">"); ok {
			using.Alias, next = alias, after
		}
	}
	if next, using.Target, err = parseType(next); err != nil {
		return in, nil, err
	}
	out, err := expect(next, ";")
	if err != nil {
		return in, nil, err
	}
	using.Range = span(start, out)
	return out, using, nil
}

// parseTypeDecl parses the rest of a class, struct, interface or record
// declaration, after its keyword.
func parseTypeDecl(h header, in input, kind ast.TypeKind) (input, ast.Decl, *perr) {
	decl := &ast.TypeDecl{Attributes: h.attrs, Modifiers: h.mods, Kind: kind}
	next := in
	if kind == ast.Record {
		if after, ok := keyword(next, "struct"); ok {
			decl.Kind, next = ast.RecordStruct, after
		} else if after, ok := keyword(next, "class"); ok {
			next = after
		}
	}

	next, name, err := parseIdent(next)
	if err != nil {
		return in, nil, err
	}
	decl.Name = name
	if atPunct(next, "<") {
		if next, decl.TypeParams, err = parseTypeParameters(next); err != nil {
			return in, nil, err
		}
	}
	if atPunct(next, "(") {
		if next, decl.PrimaryParams, err = parseParameterList(next, "(", ")"); err != nil {
			return in, nil, err
		}
		decl.HasPrimary = true
	}
	if after, ok := punct(next, ":", ":"); ok {
		if next, decl.Bases, err = combinator.SeparatedList1(
			combinator.Parser[*ast.BaseType](parseBaseListEntry),
			combinator.Punct(","),
		)(after); err != nil {
			return in, nil, err
		}
	}
	if next, decl.Constraints, err = parseConstraintClauses(next); err != nil {
		return in, nil, err
	}

	// Records and types with primary constructors may omit the body.
	if after, ok := punct(next, ";"); ok {
		decl.Range = span(h.start, after)
		return after, decl, nil
	}
	if next, decl.Members, err = parseTypeBody(next); err != nil {
		return in, nil, err
	}
	next = optionalSemicolon(next)
	decl.Range = span(h.start, next)
	return next, decl, nil
}

// parseBaseListEntry parses one entry of a base list. A record's base may pass
// arguments to the base constructor.
func parseBaseListEntry(in input) (input, *ast.BaseType, *perr) {
	start := combinator.SkipTrivia(in)
	next, t, err := parseType(in)
	if err != nil {
		return in, nil, err
	}
	base := &ast.BaseType{Type: t}
	if atPunct(next, "(") {
		if next, base.Args, err = parseArgumentList(next); err != nil {
			return in, nil, err
		}
	}
	base.Range = span(start, next)
	return next, base, nil
}

// parseTypeBody parses { members }.
func parseTypeBody(in input) (input, []ast.Decl, *perr) {
	next, err := need(in, "{")
	if err != nil {
		return in, nil, err
	}
	next, members, err := combinator.ManyTill(
		combinator.Parser[ast.Decl](func(in input) (input, ast.Decl, *perr) {
			return parseDeclaration(in, typeLevel)
		}),
		combinator.Punct("}"),
	)(next)
	if err != nil {
		return in, nil, err
	}
	out, err := need(next, "}")
	if err != nil {
		return in, nil, err
	}
	return out, members, nil
}

// parseEnum parses the rest of enum E : T { A, B = 1 }.
func parseEnum(h header, in input) (input, ast.Decl, *perr) {
	next, name, err := parseIdent(in)
	if err != nil {
		return in, nil, err
	}
	decl := &ast.EnumDecl{Attributes: h.attrs, Modifiers: h.mods, Name: name}
	if after, ok := punct(next, ":", ":"); ok {
		if next, decl.Base, err = parseType(after); err != nil {
			return in, nil, err
		}
	}
	if next, err = need(next, "{"); err != nil {
		return in, nil, err
	}

	member := func(in input) (input, *ast.EnumMember, *perr) {
		start := combinator.SkipTrivia(in)
		next, attrs, err := parseAttributeSections(in)
		if err != nil {
			return in, nil, err
		}
		m := &ast.EnumMember{Attributes: attrs}
		if next, m.Name, err = parseIdent(next); err != nil {
			return in, nil, err
		}
		if after, ok := punct(next, "=", "=", ">"); ok {
			if next, m.Value, err = parseExpr(after); err != nil {
				return in, nil, cut(err)
			}
		}
		m.Range = span(start, next)
		return next, m, nil
	}
	next, decl.Members, err = combinator.SeparatedList0(
		combinator.Parser[*ast.EnumMember](member),
		combinator.Punct(","),
	)(next)
	if err != nil {
		return in, nil, err
	}
	if after, ok := punct(next, ","); ok {
		next = after
	}
	if next, err = need(next, "}"); err != nil {
		return in, nil, err
	}
	next = optionalSemicolon(next)
	decl.Range = span(h.start, next)
	return next, decl, nil
}

// parseDelegate parses the rest of delegate R Name<T>(params) where ...;.
func parseDelegate(h header, in input) (input, ast.Decl, *perr) {
	decl := &ast.DelegateDecl{Attributes: h.attrs, Modifiers: h.mods}
	next, ret, err := parseReturnType(in)
	if err != nil {
		return in, nil, err
	}
	decl.Return = ret
	if next, decl.Name, err = parseIdent(next); err != nil {
		return in, nil, err
	}
	if atPunct(next, "<") {
		if next, decl.TypeParams, err = parseTypeParameters(next); err != nil {
			return in, nil, err
		}
	}
	if next, decl.Params, err = parseParameterList(next, "(", ")"); err != nil {
		return in, nil, err
	}
	if next, decl.Constraints, err = parseConstraintClauses(next); err != nil {
		return in, nil, err
	}
	out, err := need(next, ";")
	if err != nil {
		return in, nil, err
	}
	decl.Range = span(h.start, out)
	return out, decl, nil
}

// parseEvent parses the rest of event T name; or event T name { add ...
// remove ... }.
func parseEvent(h header, in input) (input, ast.Decl, *perr) {
	decl := &ast.EventDecl{Attributes: h.attrs, Modifiers: h.mods}
	next, t, err := parseType(in)
	if err != nil {
		return in, nil, err
	}
	decl.Type = t

	if after, iface, name, ok := parseMemberName(next); ok && atPunct(after, "{") {
		decl.Interface, decl.Name = iface, name
		if next, decl.Accessors, err = parseAccessors(after); err != nil {
			return in, nil, err
		}
		decl.Range = span(h.start, next)
		return next, decl, nil
	}

	if next, decl.Vars, err = combinator.SeparatedList1(
		combinator.Parser[*ast.VarDeclarator](parseVarDeclarator),
		combinator.Punct(","),
	)(next); err != nil {
		return in, nil, err
	}
	out, err := need(next, ";")
	if err != nil {
		return in, nil, err
	}
	decl.Range = span(h.start, out)
	return out, decl, nil
}

// parseDestructor parses the rest of ~Name() body; in is at the '~'.
func parseDestructor(h header, in input) (input, ast.Decl, *perr) {
	next, _ := punct(in, "~")
	next, name, err := parseIdent(next)
	if err != nil {
		return in, nil, err
	}
	if next, err = need(next, "("); err != nil {
		return in, nil, err
	}
	if next, err = need(next, ")"); err != nil {
		return in, nil, err
	}
	out, body, exprBody, err := parseMethodBody(next)
	if err != nil {
		return in, nil, cut(err)
	}
	return out, &ast.DestructorDecl{
		Range:      span(h.start, out),
		Attributes: h.attrs,
		Modifiers:  h.mods,
		Name:       name,
		Body:       body,
		ExprBody:   exprBody,
	}, nil
}

// parseMemberName parses the name of a property or event, which may be
// qualified by an explicitly implemented interface, as in IFoo<T>.Bar.
func parseMemberName(in input) (input, *ast.NamedType, *ast.Ident, bool) {
	out, name, err := parseQualifiedName(in)
	if err != nil || name.typeArgs != nil {
		return in, nil, nil, false
	}
	return out, name.iface, name.name, true
}

// memberName is a possibly qualified member name. The generic arguments
// written on its last segment become a method's type parameters.
type memberName struct {
	iface    *ast.NamedType
	name     *ast.Ident
	typeArgs []ast.Type
}

func parseQualifiedName(in input) (input, memberName, *perr) {
	next, t, err := parseNamedType(in)
	if err != nil {
		return in, memberName{}, err
	}
	n := len(t.Segments)
	if n == 1 && t.Alias != nil {
		return in, memberName{}, combinator.Fail(in, "member name")
	}
	last := t.Segments[n-1]
	name := memberName{name: last.Name, typeArgs: last.TypeArgs}
	if n > 1 {
		var parts []source.Spanner
		if t.Alias != nil {
			parts = append(parts, t.Alias)
		}
		for _, seg := range t.Segments[:n-1] {
			parts = append(parts, seg)
		}
		name.iface = &ast.NamedType{
			Range:    ast.At(source.Join(parts...)),
			Alias:    t.Alias,
			Segments: t.Segments[:n-1],
		}
	}
	return next, name, nil
}

// typeParamsFromArgs converts the generic arguments of a method name into
// type parameters; each must be a plain identifier.
func typeParamsFromArgs(args []ast.Type) ([]*ast.TypeParameter, bool) {
	var params []*ast.TypeParameter
	for _, arg := range args {
		named, ok := arg.(*ast.NamedType)
		if !ok || !named.Simple() {
			return nil, false
		}
		params = append(params, &ast.TypeParameter{
			Range: ast.At(named.Span()),
			Name:  named.Segments[0].Name,
		})
	}
	return params, true
}

// parseMember parses a field, method, constructor, property, indexer or
// operator. These are told apart by what follows the type.
func parseMember(h header, in input) (input, ast.Decl, *perr) {
	// Conversion operators have no leading type.
	if w := word(in); w == "implicit" || w == "explicit" {
		after, _ := keyword(in, w)
		out, decl, err := parseConversion(h, after, w)
		if err != nil {
			return in, nil, cut(err).Wrap("conversion operator", h.start)
		}
		return out, decl, nil
	}

	// A constructor is a name immediately followed by its parameters.
	if after, name, err := parseIdent(in); err == nil && atPunct(after, "(") {
		out, decl, err := parseConstructor(h, after, name)
		if err != nil {
			return in, nil, cut(err).Wrap("constructor", h.start)
		}
		return out, decl, nil
	}

	next, t, err := parseReturnType(in)
	if err != nil {
		return in, nil, combinator.Either(err, combinator.Fail(in, "member declaration"))
	}

	if after, ok := keyword(next, "operator"); ok {
		out, decl, err := parseOperator(h, after, t)
		if err != nil {
			return in, nil, cut(err).Wrap("operator declaration", h.start)
		}
		return out, decl, nil
	}
	if after, ok := keyword(next, "this"); ok {
		out, decl, err := parseIndexer(h, after, t, nil)
		if err != nil {
			return in, nil, cut(err).Wrap("indexer declaration", h.start)
		}
		return out, decl, nil
	}

	after, name, err := parseQualifiedName(next)
	if err != nil {
		return in, nil, err
	}

	// An explicitly implemented indexer: T IFoo.this[...].
	if dot, ok := punct(after, "."); ok && atWord(dot, "this") {
		bracket, _ := keyword(dot, "this")
		var iface *ast.NamedType
		if _, full, err := parseNamedType(next); err == nil {
			iface = full
		}
		out, decl, err := parseIndexer(h, bracket, t, iface)
		if err != nil {
			return in, nil, cut(err).Wrap("indexer declaration", h.start)
		}
		return out, decl, nil
	}

	switch {
	case atPunct(after, "("):
		out, decl, err := parseMethod(h, after, t, name)
		if err != nil {
			return in, nil, cut(err).Wrap("method "+name.name.String(), h.start)
		}
		return out, decl, nil

	case name.typeArgs != nil:
		return in, nil, combinator.Fail(after, "'('")

	case atPunct(after, "{") || atPunct(after, "=>"):
		out, decl, err := parseProperty(h, after, t, name)
		if err != nil {
			return in, nil, cut(err).Wrap("property "+name.name.String(), h.start)
		}
		return out, decl, nil

	case name.iface == nil && (atPunct(after, "=", "=") || atPunct(after, ",") ||
		atPunct(after, ";") || atPunct(after, "[")):
		out, decl, err := parseField(h, next, t)
		if err != nil {
			return in, nil, cut(err).Wrap("field declaration", h.start)
		}
		return out, decl, nil
	}
	return in, nil, combinator.Fail(after, "'(', '{', '=>', '=' or ';'")
}

// parseField parses the declarators of a field; in is just after the type.
func parseField(h header, in input, t ast.Type) (input, ast.Decl, *perr) {
	next, vars, err := combinator.SeparatedList1(
		combinator.Parser[*ast.VarDeclarator](parseVarDeclarator),
		combinator.Punct(","),
	)(in)
	if err != nil {
		return in, nil, err
	}
	out, err := need(next, ";")
	if err != nil {
		return in, nil, err
	}
	return out, &ast.FieldDecl{
		Range:      span(h.start, out),
		Attributes: h.attrs,
		Modifiers:  h.mods,
		Type:       t,
		Vars:       vars,
	}, nil
}

// parseMethod parses the rest of a method, starting at its parameter list.
func parseMethod(h header, in input, ret ast.Type, name memberName) (input, ast.Decl, *perr) {
	decl := &ast.MethodDecl{
		Attributes: h.attrs,
		Modifiers:  h.mods,
		Return:     ret,
		Interface:  name.iface,
		Name:       name.name,
	}
	if name.typeArgs != nil {
		params, ok := typeParamsFromArgs(name.typeArgs)
		if !ok {
			return in, nil, combinator.Fail(in, "type parameter names").AsFatal()
		}
		decl.TypeParams = params
	}

	next, params, err := parseParameterList(in, "(", ")")
	if err != nil {
		return in, nil, err
	}
	decl.Params = params
	if next, decl.Constraints, err = parseConstraintClauses(next); err != nil {
		return in, nil, err
	}
	out, body, exprBody, err := parseMethodBody(next)
	if err != nil {
		return in, nil, err
	}
	decl.Body, decl.ExprBody = body, exprBody
	decl.Range = span(h.start, out)
	return out, decl, nil
}

// parseConstructor parses the rest of a constructor, starting at its
// parameter list.
func parseConstructor(h header, in input, name *ast.Ident) (input, ast.Decl, *perr) {
	decl := &ast.ConstructorDecl{Attributes: h.attrs, Modifiers: h.mods, Name: name}
	next, params, err := parseParameterList(in, "(", ")")
	if err != nil {
		return in, nil, err
	}
	decl.Params = params

	if after, ok := punct(next, ":", ":"); ok {
		initStart := combinator.SkipTrivia(after)
		init := &ast.ConstructorInitializer{}
		switch {
		case atWord(after, "base"):
			init.Base = true
			after, _ = keyword(after, "base")
		case atWord(after, "this"):
			after, _ = keyword(after, "this")
		default:
			return in, nil, combinator.Fail(after, "'base' or 'this'")
		}
		if after, init.Args, err = parseArgumentList(after); err != nil {
			return in, nil, err
		}
		init.Range = span(initStart, after)
		decl.Initializer, next = init, after
	}

	out, body, exprBody, err := parseMethodBody(next)
	if err != nil {
		return in, nil, err
	}
	decl.Body, decl.ExprBody = body, exprBody
	decl.Range = span(h.start, out)
	return out, decl, nil
}

// parseProperty parses the rest of a property, starting at its accessors
// or expression body.
func parseProperty(h header, in input, t ast.Type, name memberName) (input, ast.Decl, *perr) {
	decl := &ast.PropertyDecl{
		Attributes: h.attrs,
		Modifiers:  h.mods,
		Type:       t,
		Interface:  name.iface,
		Name:       name.name,
	}
	if next, ok := punct(in, "=>"); ok {
		next, x, err := parseExpr(next)
		if err != nil {
			return in, nil, err
		}
		out, err := need(next, ";")
		if err != nil {
			return in, nil, err
		}
		decl.ExprBody = x
		decl.Range = span(h.start, out)
		return out, decl, nil
	}

	next, accessors, err := parseAccessors(in)
	if err != nil {
		return in, nil, err
	}
	decl.Accessors = accessors
	if after, ok := punct(next, "=", "=", ">"); ok {
		if after, decl.Init, err = parseVarInit(after); err != nil {
			return in, nil, err
		}
		if next, err = need(after, ";"); err != nil {
			return in, nil, err
		}
	}
	decl.Range = span(h.start, next)
	return next, decl, nil
}

// parseVarInit parses the value of a variable or property initializer,
// which may be an array initializer.
func parseVarInit(in input) (input, ast.Expr, *perr) {
	if atPunct(in, "{") {
		out, init, err := parseInitializer(in)
		return out, init, err
	}
	return parseExpr(in)
}

// parseIndexer parses the rest of an indexer, starting after this.
func parseIndexer(h header, in input, t ast.Type, iface *ast.NamedType) (input, ast.Decl, *perr) {
	decl := &ast.IndexerDecl{Attributes: h.attrs, Modifiers: h.mods, Type: t, Interface: iface}
	next, params, err := parseParameterList(in, "[", "]")
	if err != nil {
		return in, nil, err
	}
	decl.Params = params

	if after, ok := punct(next, "=>"); ok {
		if after, decl.ExprBody, err = parseExpr(after); err != nil {
			return in, nil, err
		}
		if next, err = need(after, ";"); err != nil {
			return in, nil, err
		}
	} else if next, decl.Accessors, err = parseAccessors(next); err != nil {
		return in, nil, err
	}
	decl.Range = span(h.start, next)
	return next, decl, nil
}

// accessorKinds maps accessor keywords to kinds.
var accessorKinds = map[string]ast.AccessorKind{
	"get":    ast.Get,
	"set":    ast.Set,
	"init":   ast.Init,
	"add":    ast.AddAccessor,
	"remove": ast.RemoveAccessor,
}

// parseAccessors parses { get; private set; }.
func parseAccessors(in input) (input, []*ast.Accessor, *perr) {
	next, err := need(in, "{")
	if err != nil {
		return in, nil, err
	}
	next, accessors, err := combinator.ManyTill(
		combinator.Parser[*ast.Accessor](parseAccessor),
		combinator.Punct("}"),
	)(next)
	if err != nil {
		return in, nil, cut(err)
	}
	out, err := need(next, "}")
	if err != nil {
		return in, nil, err
	}
	return out, accessors, nil
}

func parseAccessor(in input) (input, *ast.Accessor, *perr) {
	start := combinator.SkipTrivia(in)
	next, attrs, err := parseAttributeSections(in)
	if err != nil {
		return in, nil, err
	}
	acc := &ast.Accessor{Attributes: attrs}
	next, acc.Modifiers = parseModifiers(next)

	w := word(next)
	kind, ok := accessorKinds[w]
	if !ok {
		return in, nil, combinator.Fail(next, "accessor")
	}
	acc.Kind = kind
	next, _ = keyword(next, w)

	out, body, exprBody, err := parseMethodBody(next)
	if err != nil {
		return in, nil, cut(err).Wrap(w+" accessor", start)
	}
	acc.Body, acc.ExprBody = body, exprBody
	acc.Range = span(start, out)
	return out, acc, nil
}

// overloadable lists the operators that may be declared, longest first.
var overloadable = []struct {
	op     string
	longer []string
}{
	{">>>", nil}, {">>", []string{">", "="}}, {"<<", []string{"="}},
	{"==", nil}, {"!=", nil}, {">=", nil}, {"<=", nil},
	{"++", nil}, {"--", nil},
	{"+", []string{"+", "="}}, {"-", []string{"-", "="}},
	{"!", []string{"="}}, {"~", nil},
	{"*", []string{"="}}, {"/", []string{"="}}, {"%", []string{"="}},
	{"&", []string{"&", "="}}, {"|", []string{"|", "="}}, {"^", []string{"="}},
	{"<", []string{"<", "="}}, {">", []string{">", "="}},
}

// parseOperator parses the rest of an operator declaration, after the
// operator keyword.
func parseOperator(h header, in input, ret ast.Type) (input, ast.Decl, *perr) {
	decl := &ast.OperatorDecl{Attributes: h.attrs, Modifiers: h.mods, Return: ret}
	next := in
	if after, ok := keyword(next, "checked"); ok {
		decl.Checked, next = true, after
	}

	for _, w := range []string{"true", "false"} {
		if after, ok := keyword(next, w); ok {
			decl.Op, next = w, after
		}
	}
	if decl.Op == "" {
		for _, o := range overloadable {
			if after, ok := punct(next, o.op, o.longer...); ok {
				decl.Op, next = o.op, after
				break
			}
		}
	}
	if decl.Op == "" {
		return in, nil, combinator.Fail(next, "overloadable operator")
	}
	return operatorTail(h, next, decl)
}

// parseConversion parses the rest of implicit operator T(...), after the
// implicit or explicit keyword.
func parseConversion(h header, in input, conv string) (input, ast.Decl, *perr) {
	decl := &ast.OperatorDecl{Attributes: h.attrs, Modifiers: h.mods, Conversion: conv}
	next, err := expectKeyword(in, "operator")
	if err != nil {
		return in, nil, err
	}
	if after, ok := keyword(next, "checked"); ok {
		decl.Checked, next = true, after
	}
	if next, decl.Return, err = parseType(next); err != nil {
		return in, nil, err
	}
	return operatorTail(h, next, decl)
}

// operatorTail parses an operator's parameters and body.
func operatorTail(h header, in input, decl *ast.OperatorDecl) (input, ast.Decl, *perr) {
	next, params, err := parseParameterList(in, "(", ")")
	if err != nil {
		return in, nil, err
	}
	decl.Params = params
	out, body, exprBody, err := parseMethodBody(next)
	if err != nil {
		return in, nil, err
	}
	decl.Body, decl.ExprBody = body, exprBody
	decl.Range = span(h.start, out)
	return out, decl, nil
}

// parseCompilationUnit parses a whole file: extern aliases, using
// directives, global attributes, then namespaces, types and top-level
// statements in any order.
func parseCompilationUnit(in input) (input, *ast.CompilationUnit, *perr) {
	start := combinator.SkipTrivia(in)
	unit := &ast.CompilationUnit{}

	next, externs, usings, err := parseDirectives(in)
	if err != nil {
		return in, nil, err
	}
	unit.Externs, unit.Usings = externs, usings

	for atGlobalAttribute(next) {
		after, section, err := parseAttributeSection(next)
		if err != nil {
			return in, nil, cut(err).Wrap("global attribute", next)
		}
		unit.Attributes = append(unit.Attributes, section)
		next = after
	}

	for {
		if _, _, err := combinator.Eof(next); err == nil {
			break
		}

		after, decl, declErr := parseDeclaration(next, namespaceLevel)
		if declErr == nil {
			unit.Members = append(unit.Members, decl)
			next = after
			continue
		}
		if declErr.Fatal {
			return in, nil, declErr
		}

		after, stmt, stmtErr := parseStatement(next)
		if stmtErr == nil {
			unit.Stmts = append(unit.Stmts, stmt)
			next = after
			continue
		}
		if stmtErr.Fatal {
			return in, nil, stmtErr
		}
		return in, nil, combinator.Either(declErr, stmtErr)
	}

	unit.Range = span(start, next)
	return next, unit, nil
}

// atGlobalAttribute returns whether in is at [assembly: ...] or
// [module: ...].
func atGlobalAttribute(in input) bool {
	next, ok := punct(in, "[")
	if !ok || !atWord(next, "assembly", "module") {
		return false
	}
	next, _ = keyword(next, word(next))
	return atPunct(next, ":", ":")
}
