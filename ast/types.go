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

package ast

// PrimitiveType is a predefined type keyword such as int, string or object.
type PrimitiveType struct {
	Range
	Name string
}

// NamedType is a possibly qualified reference to a named type, such as
// System.Collections.Generic.List<int> or global::Foo.
//
// A generic type is a named type whose segments carry type arguments.
type NamedType struct {
	Range
	// The alias before "::", if any, such as "global".
	Alias    *Ident
	Segments []*TypeSegment
}

// TypeSegment is one dot-separated part of a [NamedType].
type TypeSegment struct {
	Range
	Name     *Ident
	TypeArgs []Type
	// The number of omitted arguments of an unbound generic name, as in
	// typeof(Dictionary<,>). TypeArgs is empty when this is set.
	Unbound int
}

// ArrayType is an array such as int[] or int[,]. Rank is the number of
// dimensions. Jagged arrays nest: int[][] is an array of int[].
type ArrayType struct {
	Range
	Elem Type
	Rank int
}

// PointerType is an unmanaged pointer such as int*.
type PointerType struct {
	Range
	Elem Type
}

// NullableType is a nullable type such as int?.
type NullableType struct {
	Range
	Elem Type
}

// DynamicType is the dynamic keyword in type position.
type DynamicType struct{ Range }

// VoidType is void.
type VoidType struct{ Range }

// VarType is var, when it requests type inference.
type VarType struct{ Range }

// FunctionPointerType is delegate*<...>, optionally with a calling
// convention.
type FunctionPointerType struct {
	Range
	// "managed", "unmanaged" or empty.
	Convention string
	// Explicit unmanaged calling conventions, such as Cdecl in
	// unmanaged[Cdecl].
	CallingConventions []*Ident
	// Every parameter; the last one is the return type.
	Params []*FunctionPointerParam
}

// FunctionPointerParam is a parameter of a [FunctionPointerType].
type FunctionPointerParam struct {
	Range
	// ref, out, in, "ref readonly" or empty.
	Modifier string
	Type     Type
}

// RefType is a by-reference type, as used for ref returns and ref locals.
type RefType struct {
	Range
	ReadOnly bool
	Elem     Type
}

// TupleType is a tuple type such as (int, string name).
type TupleType struct {
	Range
	Elems []*TupleTypeElem
}

// TupleTypeElem is an element of a [TupleType].
type TupleTypeElem struct {
	Range
	Type Type
	Name *Ident
}

// Simple returns whether this is a single segment with no alias nor type
// arguments, i.e. something that could also be read as a plain identifier.
func (t *NamedType) Simple() bool {
	if t.Alias != nil || len(t.Segments) != 1 {
		return false
	}
	seg := t.Segments[0]
	return len(seg.TypeArgs) == 0 && seg.Unbound == 0
}

// Unbound returns whether any segment omits its type arguments.
func (t *NamedType) Unbound() bool {
	for _, seg := range t.Segments {
		if seg.Unbound > 0 {
			return true
		}
	}
	return false
}

func (*PrimitiveType) typeNode()       {}
func (*NamedType) typeNode()           {}
func (*ArrayType) typeNode()           {}
func (*PointerType) typeNode()         {}
func (*NullableType) typeNode()        {}
func (*DynamicType) typeNode()         {}
func (*VoidType) typeNode()            {}
func (*VarType) typeNode()             {}
func (*FunctionPointerType) typeNode() {}
func (*RefType) typeNode()             {}
func (*TupleType) typeNode()           {}
