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

// Package spans indexes a parsed tree by source position.
//
// An [Index] answers two questions about a tree: which nodes enclose a given
// byte offset, and where a named declaration lives. Declaration keys have the
// form kind::path, such as namespace::Acme.Shapes, type::Acme.Shapes.Circle,
// method::Acme.Shapes.Circle::Area or ctor::Acme.Shapes.Circle.
package spans

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/internal/interval"
	"github.com/bufbuild/bsharp/walk"
)

// Index is a position index over a syntax tree.
type Index struct {
	nodes interval.Nesting[int, ast.Node]
	decls map[string][]ast.Node
}

// Build indexes every node in the tree rooted at root that has a non-empty
// span.
func Build(root ast.Node) *Index {
	idx := &Index{decls: make(map[string][]ast.Node)}
	walk.Inspect(root, func(n ast.Node) bool {
		span := n.Span()
		if !span.IsZero() {
			// Nodes that share a span with their parent nest inside it, so
			// pre-order insertion keeps the innermost node last.
			idx.nodes.Insert(span.Start, span.End, n)
		}
		return true
	})
	idx.declare(root, "")
	return idx
}

// Len returns the number of indexed nodes.
func (idx *Index) Len() int {
	return idx.nodes.Len()
}

// At returns the nodes whose spans contain offset, outermost first.
func (idx *Index) At(offset int) []ast.Node {
	stack := idx.nodes.Stack(offset)
	out := make([]ast.Node, len(stack))
	for i, e := range stack {
		out[i] = e.Value
	}
	return out
}

// Innermost returns the smallest node containing offset, or nil.
func (idx *Index) Innermost(offset int) ast.Node {
	e, ok := idx.nodes.Innermost(offset)
	if !ok {
		return nil
	}
	return e.Value
}

// Enclosing returns the innermost node of type N containing offset.
func Enclosing[N ast.Node](idx *Index, offset int) (N, bool) {
	stack := idx.At(offset)
	for i := len(stack) - 1; i >= 0; i-- {
		if n, ok := stack[i].(N); ok {
			return n, true
		}
	}
	var zero N
	return zero, false
}

// Lookup returns the declarations recorded under key, in source order.
// Overloads and partial declarations share a key.
func (idx *Index) Lookup(key string) []ast.Node {
	return idx.decls[key]
}

// Declarations returns an iterator over every declaration key and the nodes
// recorded under it, sorted by key.
func (idx *Index) Declarations() iter.Seq2[string, []ast.Node] {
	return func(yield func(string, []ast.Node) bool) {
		for _, key := range slices.Sorted(maps.Keys(idx.decls)) {
			if !yield(key, idx.decls[key]) {
				return
			}
		}
	}
}

// declare records the named declarations under n, where scope is the dotted
// path of the enclosing namespace or type.
func (idx *Index) declare(n ast.Node, scope string) {
	switch n := n.(type) {
	case *ast.CompilationUnit:
		for _, m := range n.Members {
			idx.declare(m, scope)
		}
	case *ast.NamespaceDecl:
		path := join(scope, namespaceName(n.Name))
		idx.add("namespace", path, n)
		for _, m := range n.Members {
			idx.declare(m, path)
		}
	case *ast.TypeDecl:
		path := join(scope, n.Name.String())
		idx.add("type", path, n)
		for _, m := range n.Members {
			idx.declare(m, path)
		}
	case *ast.EnumDecl:
		path := join(scope, n.Name.String())
		idx.add("type", path, n)
		for _, m := range n.Members {
			idx.add("field", path+"::"+m.Name.String(), m)
		}
	case *ast.DelegateDecl:
		idx.add("type", join(scope, n.Name.String()), n)
	case *ast.MethodDecl:
		idx.add("method", scope+"::"+n.Name.String(), n)
	case *ast.ConstructorDecl:
		idx.add("ctor", scope, n)
	case *ast.PropertyDecl:
		idx.add("property", scope+"::"+n.Name.String(), n)
	case *ast.EventDecl:
		if n.Name != nil {
			idx.add("event", scope+"::"+n.Name.String(), n)
		}
		for _, v := range n.Vars {
			idx.add("event", scope+"::"+v.Name.String(), n)
		}
	case *ast.FieldDecl:
		for _, v := range n.Vars {
			idx.add("field", scope+"::"+v.Name.String(), n)
		}
	}
}

func (idx *Index) add(kind, path string, n ast.Node) {
	key := kind + "::" + path
	idx.decls[key] = append(idx.decls[key], n)
}

func namespaceName(t *ast.NamedType) string {
	if t == nil {
		return ""
	}
	names := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		names[i] = seg.Name.String()
	}
	return strings.Join(names, ".")
}

func join(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}
