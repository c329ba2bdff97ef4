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

package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/bsharp/ast"
	"github.com/bufbuild/bsharp/internal/fuzztesting"
	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
	"github.com/bufbuild/bsharp/walk"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"",
		"class C { }",
		"namespace N; record R(int X);",
		"using static System.Math;\nConsole.WriteLine(Max(1, 2));",
		"enum E : byte { A = 1 << 0, B }",
		"var q = from x in xs where x > 0 select x * 2;",
		"if (o is { Length: > 0 } s) { return s[^1]; }",
		"class G<T> where T : new() { T M() => new(); }",
		"x = a ? b : c ?? d;",
		`var s = $"{a,10:N2} and {{b}}";`,
		"class C { int x }",
		"((((",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		fuzztesting.RunWithTimeout(t, func(context.Context) {
			file := source.NewFile("fuzz.cs", text)

			var r report.Report
			unit := parser.Parse(file, &r)
			if unit == nil {
				require.Len(t, r, 1)
				assert.Equal(t, report.Error, r[0].Level)
				return
			}
			require.Empty(t, r)

			walk.Inspect(unit, func(n ast.Node) bool {
				span := n.Span()
				if span.IsZero() {
					return true
				}
				assert.Same(t, file, span.File)
				assert.LessOrEqual(t, 0, span.Start)
				assert.LessOrEqual(t, span.Start, span.End)
				assert.LessOrEqual(t, span.End, file.Len())
				return true
			})
		})
	})
}
