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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/bufbuild/bsharp"
	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/ast/printer"
	"github.com/bufbuild/bsharp/config"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/reporter"
	"github.com/bufbuild/bsharp/spans"
)

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "bsharp",
		Usage:     "Parse B# source files",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a bsharp.yaml or bsharp.toml file; by default one is searched for upwards from the working directory",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.IntFlag{
				Name:    "parallelism",
				Aliases: []string{"j"},
				Usage:   "maximum number of files parsed at once",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "diagnostic style: full or compact",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "color diagnostics",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Print the syntax tree of each file",
				ArgsUsage: "PATH...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: "sexpr",
						Usage: "output format: sexpr or yaml",
					},
					&cli.BoolFlag{
						Name:  "spans",
						Usage: "include byte ranges in yaml output",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					e, err := setup(c, stdout, stderr)
					if err != nil {
						return err
					}
					return e.parse(ctx, c.Args().Slice(), c.String("format"), c.Bool("spans"))
				},
			},
			{
				Name:      "check",
				Usage:     "Report diagnostics without printing trees",
				ArgsUsage: "PATH...",
				Action: func(ctx context.Context, c *cli.Command) error {
					e, err := setup(c, stdout, stderr)
					if err != nil {
						return err
					}
					return e.check(ctx, c.Args().Slice())
				},
			},
			{
				Name:      "locate",
				Usage:     "Print the nodes enclosing a position, outermost first",
				ArgsUsage: "FILE LINE:COL",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return errors.New("locate takes a file and a LINE:COL position")
					}
					e, err := setup(c, stdout, stderr)
					if err != nil {
						return err
					}
					return e.locate(ctx, c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:      "symbols",
				Usage:     "List the declarations in a file",
				ArgsUsage: "FILE",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return errors.New("symbols takes exactly one file")
					}
					e, err := setup(c, stdout, stderr)
					if err != nil {
						return err
					}
					return e.symbols(ctx, c.Args().First())
				},
			},
		},
	}
}

// env is the state shared by every command.
type env struct {
	cfg            *config.Config
	logger         *slog.Logger
	stdout, stderr io.Writer
}

// setup loads the configuration and applies flag overrides.
func setup(c *cli.Command, stdout, stderr io.Writer) (*env, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("parallelism") {
		cfg.Parallelism = int(c.Int("parallelism"))
	}
	if c.IsSet("style") {
		cfg.Style = c.String("style")
	}
	if c.IsSet("color") {
		cfg.Color = c.Bool("color")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return &env{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	found, err := config.Find(".")
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	} else if err != nil {
		return nil, err
	}
	return config.Load(found)
}

// expand replaces each directory among paths with the files under it that
// the configuration selects.
func (e *env) expand(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files")
	}
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := e.cfg.Files(os.DirFS(path))
		if err != nil {
			return nil, err
		}
		e.logger.Debug("expanded directory", slog.String("dir", path), slog.Int("files", len(found)))
		for _, f := range found {
			files = append(files, filepath.Join(path, filepath.FromSlash(f)))
		}
	}
	return files, nil
}

// compile parses paths, printing every diagnostic. It returns errFailed if
// any file could not be parsed.
func (e *env) compile(ctx context.Context, paths []string) ([]bsharp.Result, error) {
	files, err := e.expand(paths)
	if err != nil {
		return nil, err
	}

	var collector reporter.Collector
	comp := bsharp.Compiler{
		Resolver:       &bsharp.SourceResolver{},
		MaxParallelism: e.cfg.Parallelism,
		Reporter:       &collector,
		Logger:         e.logger,
	}
	results, err := comp.Compile(ctx, files...)

	r := collector.Report()
	renderer := report.Renderer{
		Compact:  e.cfg.Style == config.StyleCompact,
		Colorize: e.cfg.Color,
	}
	if _, _, werr := renderer.Render(&r, e.stderr); werr != nil {
		return nil, werr
	}

	switch {
	case errors.Is(err, reporter.ErrInvalidSource):
		return nil, errFailed
	case err != nil:
		return nil, err
	}
	return results, nil
}

func (e *env) parse(ctx context.Context, paths []string, format string, withSpans bool) error {
	if format != "sexpr" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}
	results, err := e.compile(ctx, paths)
	if err != nil {
		return err
	}

	for i, res := range results {
		switch format {
		case "yaml":
			if i > 0 {
				fmt.Fprintln(e.stdout, "---")
			}
			out, err := printer.YAML(res.AST, printer.YAMLOptions{Spans: withSpans})
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "# %s\n%s", res.Path(), out)
		default:
			if len(results) > 1 {
				fmt.Fprintf(e.stdout, "// %s\n", res.Path())
			}
			fmt.Fprintln(e.stdout, printer.Print(res.AST))
		}
	}
	return nil
}

func (e *env) check(ctx context.Context, paths []string) error {
	results, err := e.compile(ctx, paths)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%d file(s) ok\n", len(results))
	return nil
}

func (e *env) locate(ctx context.Context, path, pos string) error {
	line, col, err := parsePosition(pos)
	if err != nil {
		return err
	}
	results, err := e.compile(ctx, []string{path})
	if err != nil {
		return err
	}
	res := results[0]

	offset := res.File.Offset(line, col)
	idx := spans.Build(res.AST)
	for depth, n := range idx.At(offset) {
		span := n.Span()
		start, end := span.StartLoc(), span.EndLoc()
		fmt.Fprintf(e.stdout, "%s%s %d:%d-%d:%d %s\n",
			strings.Repeat("  ", depth), nodeName(n),
			start.Line, start.Column, end.Line, end.Column,
			excerpt(span.Text()))
	}
	return nil
}

func (e *env) symbols(ctx context.Context, path string) error {
	results, err := e.compile(ctx, []string{path})
	if err != nil {
		return err
	}
	idx := spans.Build(results[0].AST)
	for key, nodes := range idx.Declarations() {
		for _, n := range nodes {
			loc := n.Span().StartLoc()
			fmt.Fprintf(e.stdout, "%s %d:%d\n", key, loc.Line, loc.Column)
		}
	}
	return nil
}

func parsePosition(pos string) (line, col int, err error) {
	l, c, ok := strings.Cut(pos, ":")
	if ok {
		line, err = strconv.Atoi(l)
		if err == nil {
			col, err = strconv.Atoi(c)
		}
	}
	if !ok || err != nil || line < 1 || col < 1 {
		return 0, 0, fmt.Errorf("invalid position %q, want LINE:COL", pos)
	}
	return line, col, nil
}

func nodeName(n ast.Node) string {
	return reflect.TypeOf(n).Elem().Name()
}

// excerpt is the first line of text, shortened to a readable length.
func excerpt(text string) string {
	const limit = 40
	first, _, more := strings.Cut(text, "\n")
	if len(first) > limit {
		first, more = first[:limit], true
	}
	if more {
		first += "..."
	}
	return strconv.Quote(first)
}
