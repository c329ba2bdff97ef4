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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/bsharp/ast"
)

func TestSortModifiers(t *testing.T) {
	t.Parallel()

	mods := []ast.Modifier{ast.Override, ast.Async, ast.Internal, ast.Static, ast.Protected}
	ast.SortModifiers(mods)
	assert.Equal(t, []ast.Modifier{ast.Internal, ast.Protected, ast.Static, ast.Override, ast.Async}, mods)

	mods = []ast.Modifier{ast.Readonly, ast.Static, ast.Private}
	ast.SortModifiers(mods)
	assert.Equal(t, []ast.Modifier{ast.Private, ast.Static, ast.Readonly}, mods)
}

func TestLookupModifier(t *testing.T) {
	t.Parallel()

	for _, m := range ast.Modifiers() {
		got, ok := ast.LookupModifier(m.String())
		assert.True(t, ok, m.String())
		assert.Equal(t, m, got)
	}

	_, ok := ast.LookupModifier("class")
	assert.False(t, ok)
}

func TestConflicts(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ast.Conflicts([]ast.Modifier{ast.Protected, ast.Internal, ast.Static, ast.Readonly}))
	assert.Empty(t, ast.Conflicts([]ast.Modifier{ast.Public, ast.Sealed, ast.Override}))

	assert.Equal(t,
		[][2]ast.Modifier{{ast.Abstract, ast.Sealed}},
		ast.Conflicts([]ast.Modifier{ast.Abstract, ast.Sealed}),
	)
	assert.Equal(t,
		[][2]ast.Modifier{{ast.Public, ast.Private}, {ast.Static, ast.Static}},
		ast.Conflicts([]ast.Modifier{ast.Public, ast.Static, ast.Private, ast.Static}),
	)
}

func TestModifiersOf(t *testing.T) {
	t.Parallel()

	mods := []ast.Modifier{ast.Public, ast.Static}
	assert.Equal(t, mods, ast.ModifiersOf(&ast.MethodDecl{Modifiers: mods}))
	assert.Equal(t, mods, ast.ModifiersOf(&ast.LocalFuncStmt{Modifiers: mods}))
	assert.Nil(t, ast.ModifiersOf(&ast.Literal{}))
	assert.Nil(t, ast.ModifiersOf(nil))
}
