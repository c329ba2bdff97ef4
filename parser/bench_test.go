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
	"fmt"
	"strings"
	"testing"

	"github.com/bufbuild/bsharp/parser"
	"github.com/bufbuild/bsharp/report"
	"github.com/bufbuild/bsharp/source"
)

const benchClass = `
public sealed class Shape%[1]d : IShape
{
    private readonly double[] _sides = new double[4];

    public Shape%[1]d(params double[] sides) => _sides = sides;

    public double Perimeter
    {
        get
        {
            var total = 0.0;
            foreach (var s in _sides) { total += s; }
            return total;
        }
    }

    public override string ToString() => $"Shape%[1]d({Perimeter:F2})";

    public static bool IsRegular(Shape%[1]d s) =>
        s._sides.Length switch { 0 => true, _ => s._sides.All(x => x == s._sides[0]) };
}
`

func BenchmarkParse(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		var text strings.Builder
		text.WriteString("using System.Linq;\nnamespace Bench;\n")
		for i := range n {
			fmt.Fprintf(&text, benchClass, i)
		}
		file := source.NewFile("bench.cs", text.String())

		b.Run(fmt.Sprintf("classes=%d", n), func(b *testing.B) {
			b.SetBytes(int64(file.Len()))
			b.ReportAllocs()
			for b.Loop() {
				var r report.Report
				if parser.Parse(file, &r) == nil {
					b.Fatal(r[0].Err)
				}
			}
		})
	}
}
