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

// Package bsharp is the entry point for parsing B# source files.
//
// B# is a C#-like language. Parsing turns each file into a complete syntax
// tree or into a single error that points at the furthest position the
// parser reached, along with the grammar rules it was inside of. There are
// no partial trees.
//
// # Resolvers
//
// A [Resolver] is how the compiler locates its inputs. It can answer a query
// with source code, an already opened [source.File], or an already parsed
// tree, in which case parsing is skipped. [SourceResolver] reads from disk,
// [OpenerResolver] adapts any [source.Opener], and [CompositeResolver] tries
// several resolvers in turn.
//
// # Compiler
//
// A [Compiler] accepts a list of paths and produces one [Result] per path,
// in the same order. Only the Resolver field is required:
//
//	compiler := bsharp.Compiler{
//		Resolver: &bsharp.SourceResolver{},
//	}
//	results, err := compiler.Compile(ctx, "Program.cs")
//
// Files are parsed in parallel, bounded by MaxParallelism. By default the
// compiler stops at the first error; a custom [reporter.Reporter] can
// instead collect every error, as [reporter.Collector] does. Declarations
// whose modifiers repeat or contradict each other are reported as warnings.
package bsharp
