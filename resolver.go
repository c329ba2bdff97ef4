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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/source"
)

// Resolver is used by the compiler to find the files it is asked to parse.
type Resolver interface {
	// FindFileByPath searches for information for the given file path. If no
	// result is available, it should return a non-nil error, such as
	// fs.ErrNotExist.
	FindFileByPath(string) (SearchResult, error)
}

// SearchResult represents information about a file. Exactly one of its
// fields should be set. If several are, the compiler prefers them in reverse
// order: an already parsed tree is used as is, an opened file is parsed, and
// a reader is read fully and then parsed.
type SearchResult struct {
	// Source code for the file. If it is also an io.Closer, the compiler
	// closes it once read.
	Source io.Reader
	// An already opened file.
	File *source.File
	// An already parsed tree.
	AST *ast.CompilationUnit
}

// ResolverFunc is a simple function type that implements Resolver.
type ResolverFunc func(string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

// FindFileByPath implements Resolver.
func (f ResolverFunc) FindFileByPath(path string) (SearchResult, error) {
	return f(path)
}

// CompositeResolver is a slice of resolvers, which are consulted in order
// until one can supply a result. If none of the constituent resolvers can
// supply a result, the error returned by the first resolver is returned. If
// the slice of resolvers is empty, all operations return fs.ErrNotExist.
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

// FindFileByPath implements Resolver.
func (f CompositeResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, &fs.PathError{Op: "resolve", Path: path, Err: fs.ErrNotExist}
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindFileByPath(path)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver can resolve file names by returning source code. It uses
// an optional list of search paths to search for files.
type SourceResolver struct {
	// Directories consulted in order. If empty, paths are used as given.
	SearchPaths []string
	// Optional function for opening files. If nil, os.Open is used.
	Accessor func(string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

// FindFileByPath implements Resolver.
func (r *SourceResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(r.SearchPaths) == 0 {
		reader, err := r.open(path)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}

	var e error
	for _, dir := range r.SearchPaths {
		reader, err := r.open(filepath.Join(dir, path))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}
	return SearchResult{}, e
}

func (r *SourceResolver) open(path string) (io.ReadCloser, error) {
	if r.Accessor == nil {
		return os.Open(path)
	}
	return r.Accessor(path)
}

// OpenerResolver adapts a [source.Opener] into a Resolver.
type OpenerResolver struct {
	source.Opener
}

var _ Resolver = OpenerResolver{}

// FindFileByPath implements Resolver.
func (r OpenerResolver) FindFileByPath(path string) (SearchResult, error) {
	file, err := r.Open(path)
	if err != nil {
		return SearchResult{}, err
	}
	if file == nil {
		return SearchResult{}, fmt.Errorf("opener returned no file for %q", path)
	}
	return SearchResult{File: file}, nil
}
