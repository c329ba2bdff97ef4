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

// Package walk provides helper functions for traversing syntax trees.
package walk

import "github.com/bufbuild/bsharp/ast"

// Walk visits n and all of its descendants in depth-first order.
//
// enter is called before a node's children and exit after them; exit may be
// nil. If enter returns [SkipChildren], the children of that node are not
// visited, but exit is still called for it. Any other non-nil error stops
// the walk and is returned.
func Walk(n ast.Node, enter, exit func(ast.Node) error) error {
	err := enter(n)
	switch {
	case err == SkipChildren:
	case err != nil:
		return err
	default:
		for _, child := range Children(n) {
			if err := Walk(child, enter, exit); err != nil {
				return err
			}
		}
	}
	if exit != nil {
		return exit(n)
	}
	return nil
}

// Inspect visits n and all of its descendants in depth-first order. If f
// returns false, the children of that node are skipped.
func Inspect(n ast.Node, f func(ast.Node) bool) {
	_ = Walk(n, func(n ast.Node) error {
		if !f(n) {
			return SkipChildren
		}
		return nil
	}, nil)
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n ast.Node) int {
	count := 0
	Inspect(n, func(ast.Node) bool {
		count++
		return true
	})
	return count
}

// SkipChildren may be returned by an enter function passed to [Walk].
var SkipChildren error = skipChildren{}

type skipChildren struct{}

func (skipChildren) Error() string { return "skip children" }
