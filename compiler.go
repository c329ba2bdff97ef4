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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/combinator"
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/reporter"
	"github.com/bufbuild/bsharp/source"
	"github.com/bufbuild/bsharp/walk"
)

// Compiler parses B# source files into syntax trees.
//
// Files are resolved and parsed in parallel. Parsing is all-or-nothing per
// file: a file either yields a complete tree or a single error pointing at
// the furthest position the parser reached.
type Compiler struct {
	// Resolves paths into source code or already parsed trees. This field is
	// the only required field.
	Resolver Resolver
	// The maximum parallelism to use when parsing. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the compilation after encountering
	// any errors and ignores all warnings.
	Reporter reporter.Reporter
	// Receives progress logs. If nil, nothing is logged.
	Logger *slog.Logger
	// If set, declarations whose modifiers conflict, such as public private,
	// are not reported as warnings.
	SkipModifierChecks bool
}

// Result is a successfully parsed file.
type Result struct {
	File *source.File
	AST  *ast.CompilationUnit
}

// Path returns the path the result was resolved from.
func (r Result) Path() string {
	return r.File.Path()
}

// Compile parses the given files, returning their trees in the order given.
// A path given more than once is parsed once and shares its result.
//
// If any file fails to resolve or parse, the error is passed to the
// reporter. If the reporter returns an error, remaining work is abandoned
// and that error is returned; if it returns nil for every failure, Compile
// still fails with [reporter.ErrInvalidSource] once all files are done.
func (c *Compiler) Compile(ctx context.Context, paths ...string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if c.Resolver == nil {
		return nil, errors.New("bsharp: compiler has no resolver")
	}

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		c:      c,
		h:      reporter.NewHandler(c.Reporter),
		s:      semaphore.NewWeighted(int64(par)),
		logger: c.Logger,
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}

	// Deduplicate while keeping the first position of each path.
	index := make(map[string]int, len(paths))
	var unique []string
	for _, path := range paths {
		if _, ok := index[path]; !ok {
			index[path] = len(unique)
			unique = append(unique, path)
		}
	}

	parsed := make([]Result, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range unique {
		g.Go(func() error {
			res, err := e.compile(gctx, path)
			if err != nil {
				return err
			}
			parsed[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.h.Error(); err != nil {
		return nil, err
	}

	results := make([]Result, len(paths))
	for i, path := range paths {
		results[i] = parsed[index[path]]
	}
	return results, nil
}

type executor struct {
	c      *Compiler
	h      *reporter.Handler
	s      *semaphore.Weighted
	logger *slog.Logger
}

// compile resolves and parses one file. A parse failure that the reporter
// chose to continue past yields a zero Result and a nil error.
func (e *executor) compile(ctx context.Context, path string) (Result, error) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		return Result{}, err
	}
	defer e.s.Release(1)

	sr, err := e.c.Resolver.FindFileByPath(path)
	if err != nil {
		e.logger.DebugContext(ctx, "resolve failed", slog.String("path", path), slog.Any("error", err))
		return Result{}, e.h.HandleError(fileError(path, err))
	}

	res, err := e.asResult(ctx, path, sr)
	if err != nil {
		return Result{}, err
	}
	if res.AST != nil && !e.c.SkipModifierChecks {
		e.checkModifiers(res.AST)
	}
	return res, nil
}

func (e *executor) asResult(ctx context.Context, path string, sr SearchResult) (Result, error) {
	if sr.AST != nil {
		file := sr.File
		if file == nil {
			file = sr.AST.Span().File
		}
		if file == nil {
			return Result{}, e.h.HandleError(fileError(path, errors.New("resolved tree has no file")))
		}
		return Result{File: file, AST: sr.AST}, nil
	}

	file := sr.File
	if file == nil {
		if sr.Source == nil {
			return Result{}, e.h.HandleError(fileError(path, errors.New("resolver returned an empty result")))
		}
		text, err := readAll(sr.Source)
		if err != nil {
			return Result{}, e.h.HandleError(fileError(path, err))
		}
		file = source.NewFile(path, text)
	}
	e.logger.DebugContext(ctx, "resolved", slog.String("path", path), slog.Int("bytes", file.Len()))

	start := time.Now()
	unit, perr := parser.Complete(combinator.Parser[*ast.CompilationUnit](parser.CompilationUnit), file)
	if perr != nil {
		e.logger.InfoContext(ctx, "parse failed",
			slog.String("path", path),
			slog.String("location", fmt.Sprintf("%d:%d", perr.Location().Line, perr.Location().Column)),
		)
		return Result{}, e.h.HandleError(reporter.Error(perr.Deepest().Span, perr))
	}
	e.logger.DebugContext(ctx, "parsed",
		slog.String("path", path),
		slog.Int("nodes", walk.Count(unit)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return Result{File: file, AST: unit}, nil
}

// checkModifiers warns about every declaration whose modifiers repeat or
// contradict each other.
func (e *executor) checkModifiers(unit *ast.CompilationUnit) {
	walk.Inspect(unit, func(n ast.Node) bool {
		for _, pair := range ast.Conflicts(ast.ModifiersOf(n)) {
			span := n.Span()
			if pair[0] == pair[1] {
				e.h.HandleWarning(span, fmt.Errorf("duplicate modifier %s", pair[0]))
				continue
			}
			e.h.HandleWarning(span, fmt.Errorf("modifier %s conflicts with %s", pair[0], pair[1]))
		}
		return true
	})
}

func readAll(r io.Reader) (string, error) {
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	var buf strings.Builder
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fileError reports a failure that concerns a whole file rather than a
// position in it.
func fileError(path string, err error) reporter.ErrorWithSpan {
	return reporter.Error(source.Span{}, &report.ErrInFile{Err: err, Path: path})
}
