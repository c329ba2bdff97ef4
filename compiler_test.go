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

package bsharp

import (
	"context"
	"io"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/ast/printer"
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/reporter"
	"github.com/bufbuild/bsharp/source"
)

func memResolver(files map[string]string) Resolver {
	m := source.Map{}
	for path, text := range files {
		m.Add(path, text)
	}
	return OpenerResolver{m}
}

func TestCompileOrder(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.cs": "class A { }",
		"b.cs": "namespace N; struct B { int x; }",
		"c.cs": `System.Console.WriteLine("hi");`,
	}
	comp := Compiler{
		Resolver:       memResolver(files),
		MaxParallelism: 2,
		Logger:         slogt.New(t),
	}

	results, err := comp.Compile(t.Context(), "c.cs", "a.cs", "b.cs", "a.cs")
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "c.cs", results[0].Path())
	assert.Equal(t, "a.cs", results[1].Path())
	assert.Equal(t, "b.cs", results[2].Path())
	assert.Same(t, results[1].AST, results[3].AST)

	assert.Len(t, results[0].AST.Stmts, 1)
	require.Len(t, results[2].AST.Members, 1)
	ns, ok := results[2].AST.Members[0].(*ast.NamespaceDecl)
	require.True(t, ok)
	assert.True(t, ns.FileScoped)
}

func TestCompileEmpty(t *testing.T) {
	t.Parallel()

	results, err := (&Compiler{}).Compile(t.Context())
	require.NoError(t, err)
	assert.Nil(t, results)

	_, err = (&Compiler{}).Compile(t.Context(), "a.cs")
	require.Error(t, err)
}

func TestCompileFailFast(t *testing.T) {
	t.Parallel()

	comp := Compiler{
		Resolver: memResolver(map[string]string{
			"good.cs": "class A { }",
			"bad.cs":  "class B { int x }",
		}),
		Logger: slogt.New(t),
	}

	results, err := comp.Compile(t.Context(), "good.cs", "bad.cs")
	require.Error(t, err)
	assert.Nil(t, results)

	var ews reporter.ErrorWithSpan
	require.ErrorAs(t, err, &ews)
	assert.Equal(t, "bad.cs", ews.Span().Path())
	assert.True(t, strings.HasPrefix(err.Error(), "bad.cs:1:"), err.Error())
}

func TestCompileMissingFile(t *testing.T) {
	t.Parallel()

	comp := Compiler{Resolver: memResolver(nil)}
	_, err := comp.Compile(t.Context(), "nope.cs")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompileCollectsEverything(t *testing.T) {
	t.Parallel()

	var c reporter.Collector
	comp := Compiler{
		Resolver: memResolver(map[string]string{
			"a.cs": "class A { int x }",
			"b.cs": "class B { void M() { if (x) } }",
			"c.cs": "public private class C { }",
		}),
		Reporter: &c,
		Logger:   slogt.New(t),
	}

	_, err := comp.Compile(t.Context(), "a.cs", "b.cs", "c.cs", "d.cs")
	require.ErrorIs(t, err, reporter.ErrInvalidSource)

	r := c.Report()
	require.Len(t, r, 4)
	var paths []string
	for _, d := range r {
		paths = append(paths, d.Path())
	}
	assert.Equal(t, []string{"a.cs", "b.cs", "c.cs", "d.cs"}, paths)
	assert.Equal(t, report.Warning, r[2].Level)
	assert.Equal(t, "modifier public conflicts with private", r[2].Err.Error())
	assert.Equal(t, report.Error, r[3].Level)
	require.ErrorIs(t, r[3].Err, fs.ErrNotExist)

	var perr interface{ Stages() []string }
	require.ErrorAs(t, r[1].Err, &perr)
	assert.Contains(t, perr.Stages(), "if statement")
}

func TestCompileModifierChecks(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		warnings []string
	)
	rep := reporter.NewReporter(nil, func(err reporter.ErrorWithSpan) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, err.Span().Text()+": "+err.Unwrap().Error())
	})

	text := `abstract sealed class A {
    static static int x;
    public void M() { static static int L() => 1; }
}`
	comp := Compiler{Resolver: memResolver(map[string]string{"a.cs": text}), Reporter: rep}
	_, err := comp.Compile(t.Context(), "a.cs")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		text + ": modifier abstract conflicts with sealed",
		"static static int x;: duplicate modifier static",
		"static static int L() => 1;: duplicate modifier static",
	}, warnings)

	warnings = nil
	comp.SkipModifierChecks = true
	_, err = comp.Compile(t.Context(), "a.cs")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestCompileSearchResults(t *testing.T) {
	t.Parallel()

	pre := parser.Parse(source.NewFile("pre.cs", "class Pre { }"), nil)
	require.NotNil(t, pre)

	var closed atomic.Bool
	comp := Compiler{
		Resolver: ResolverFunc(func(path string) (SearchResult, error) {
			switch path {
			case "pre.cs":
				return SearchResult{AST: pre}, nil
			case "reader.cs":
				return SearchResult{Source: closer{strings.NewReader("enum E { A }"), &closed}}, nil
			case "empty.cs":
				return SearchResult{}, nil
			}
			return SearchResult{}, fs.ErrNotExist
		}),
	}

	results, err := comp.Compile(t.Context(), "pre.cs", "reader.cs")
	require.NoError(t, err)
	assert.Same(t, pre, results[0].AST)
	assert.Equal(t, "pre.cs", results[0].Path())
	assert.Equal(t, "EnumDecl(name: E, members: [EnumMember(name: A)])", printer.Print(results[1].AST.Members[0]))
	assert.True(t, closed.Load())

	_, err = comp.Compile(t.Context(), "empty.cs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty result")
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	comp := Compiler{Resolver: memResolver(map[string]string{"a.cs": "class A { }"})}
	_, err := comp.Compile(ctx, "a.cs")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompileParallelismBound(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	files := map[string]string{}
	var paths []string
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".cs"] = "class " + strings.ToUpper(name) + " { }"
		paths = append(paths, name+".cs")
	}
	inner := memResolver(files)
	comp := Compiler{
		MaxParallelism: 2,
		Resolver: ResolverFunc(func(path string) (SearchResult, error) {
			n := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			return inner.FindFileByPath(path)
		}),
	}

	results, err := comp.Compile(t.Context(), paths...)
	require.NoError(t, err)
	assert.Len(t, results, len(paths))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

type closer struct {
	io.Reader
	closed *atomic.Bool
}

func (c closer) Close() error {
	c.closed.Store(true)
	return nil
}
