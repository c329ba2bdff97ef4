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

// Package printer renders syntax trees for tests and tools.
//
// [Print] produces a deterministic one-line S-expression, such as
// Add(1, Mul(2, 3)). Operators print as their name applied to their
// operands, types print in source syntax, and every other node prints as its
// name followed by its non-empty fields. [YAML] produces a structured dump of
// the same information.
package printer

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/bufbuild/bsharp/ast"
)

var (
	nodeType     = reflect.TypeFor[ast.Node]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// Print renders n as an S-expression. A nil node prints as nil.
func Print(n ast.Node) string {
	var p printer
	p.node(n)
	return p.out.String()
}

type printer struct {
	out strings.Builder
}

func (p *printer) node(n ast.Node) {
	if isNil(n) {
		p.out.WriteString("nil")
		return
	}

	switch n := n.(type) {
	case ast.Type:
		p.out.WriteString(Type(n))
	case *ast.Ident:
		p.out.WriteString(n.String())
	case *ast.Literal:
		p.out.WriteString(n.Raw)
	case *ast.NameExpr:
		if n.Alias != nil {
			p.out.WriteString(n.Alias.String() + "::")
		}
		p.out.WriteString(n.Name.String())
		p.typeArgs(n.TypeArgs)
	case *ast.PredefinedTypeExpr:
		p.out.WriteString(n.Type.Name)
	case *ast.BinaryExpr:
		p.call(n.Op.String(), n.X, n.Y)
	case *ast.UnaryExpr:
		p.call(n.Op.String(), n.X)
	case *ast.PostfixExpr:
		p.call(n.Op.String(), n.X)
	case *ast.AssignExpr:
		name := n.Op.String()
		if n.Ref {
			name += "Ref"
		}
		p.call(name, n.Left, n.Right)
	case *ast.BinaryPattern:
		p.call(n.Op.String(), n.X, n.Y)
	case *ast.MemberAccessExpr:
		p.out.WriteString("Member(")
		p.node(n.X)
		p.out.WriteString(", " + n.Access.String() + n.Name.String())
		p.typeArgs(n.TypeArgs)
		p.out.WriteByte(')')
	default:
		p.generic(reflect.ValueOf(n))
	}
}

func (p *printer) call(name string, args ...ast.Node) {
	p.out.WriteString(name)
	p.out.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.node(arg)
	}
	p.out.WriteByte(')')
}

func (p *printer) typeArgs(args []ast.Type) {
	if len(args) == 0 {
		return
	}
	p.out.WriteByte('<')
	for i, arg := range args {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.out.WriteString(Type(arg))
	}
	p.out.WriteByte('>')
}

// generic prints a node as Name(field: value, ...), skipping empty fields.
// Boolean fields that are set print as just their name.
func (p *printer) generic(v reflect.Value) {
	v = v.Elem()
	t := v.Type()
	p.out.WriteString(nodeName(t))
	p.out.WriteByte('(')
	first := true
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if fv.IsZero() || (fv.Kind() == reflect.Slice && fv.Len() == 0) {
			continue
		}
		if !first {
			p.out.WriteString(", ")
		}
		first = false

		if fv.Kind() == reflect.Bool {
			p.out.WriteString(fieldName(f.Name))
			continue
		}
		p.out.WriteString(fieldName(f.Name))
		p.out.WriteString(": ")
		p.value(fv)
	}
	p.out.WriteByte(')')
}

func (p *printer) value(v reflect.Value) {
	switch {
	case v.Type().Implements(nodeType):
		n, _ := v.Interface().(ast.Node)
		p.node(n)
		return
	case v.Type().Implements(stringerType):
		s, _ := v.Interface().(fmt.Stringer)
		p.out.WriteString(s.String())
		return
	}

	switch v.Kind() {
	case reflect.Slice:
		p.out.WriteByte('[')
		for i := range v.Len() {
			if i > 0 {
				p.out.WriteString(", ")
			}
			p.value(v.Index(i))
		}
		p.out.WriteByte(']')
	case reflect.String:
		p.out.WriteString(strconv.Quote(v.String()))
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			p.out.WriteString("nil")
			return
		}
		p.value(v.Elem())
	default:
		fmt.Fprint(&p.out, v.Interface())
	}
}

// nodeName is the name a node prints as: its Go type name, less any Expr
// suffix.
func nodeName(t reflect.Type) string {
	name := t.Name()
	if trimmed, ok := strings.CutSuffix(name, "Expr"); ok && trimmed != "" {
		return trimmed
	}
	return name
}

func fieldName(name string) string {
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// isNil returns whether n is nil or a typed nil pointer.
func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Type renders t in source syntax, such as Dictionary<string, int[]>?.
func Type(t ast.Type) string {
	if isNil(t) {
		return "nil"
	}
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t ast.Type) {
	switch t := t.(type) {
	case *ast.PrimitiveType:
		b.WriteString(t.Name)
	case *ast.VoidType:
		b.WriteString("void")
	case *ast.VarType:
		b.WriteString("var")
	case *ast.DynamicType:
		b.WriteString("dynamic")
	case *ast.NamedType:
		if t.Alias != nil {
			b.WriteString(t.Alias.String() + "::")
		}
		for i, seg := range t.Segments {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.Name.String())
			if len(seg.TypeArgs) > 0 {
				b.WriteByte('<')
				for j, arg := range seg.TypeArgs {
					if j > 0 {
						b.WriteString(", ")
					}
					writeType(b, arg)
				}
				b.WriteByte('>')
			}
			if seg.Unbound > 0 {
				b.WriteString("<" + strings.Repeat(",", seg.Unbound-1) + ">")
			}
		}
	case *ast.ArrayType:
		writeType(b, t.Elem)
		b.WriteByte('[')
		b.WriteString(strings.Repeat(",", t.Rank-1))
		b.WriteByte(']')
	case *ast.NullableType:
		writeType(b, t.Elem)
		b.WriteByte('?')
	case *ast.PointerType:
		writeType(b, t.Elem)
		b.WriteByte('*')
	case *ast.RefType:
		b.WriteString("ref ")
		if t.ReadOnly {
			b.WriteString("readonly ")
		}
		writeType(b, t.Elem)
	case *ast.TupleType:
		b.WriteByte('(')
		for i, elem := range t.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, elem.Type)
			if elem.Name != nil {
				b.WriteString(" " + elem.Name.String())
			}
		}
		b.WriteByte(')')
	case *ast.FunctionPointerType:
		b.WriteString("delegate*")
		if t.Convention != "" {
			b.WriteString(" " + t.Convention)
		}
		if len(t.CallingConventions) > 0 {
			b.WriteByte('[')
			for i, conv := range t.CallingConventions {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(conv.String())
			}
			b.WriteByte(']')
		}
		b.WriteByte('<')
		for i, param := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if param.Modifier != "" {
				b.WriteString(param.Modifier + " ")
			}
			writeType(b, param.Type)
		}
		b.WriteByte('>')
	default:
		fmt.Fprintf(b, "%T", t)
	}
}
