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

package report

// sgr is an ANSI select-graphic-rendition sequence for one of the eight
// basic foreground colors.
func sgr(bold bool, color byte) string {
	weight := byte('0')
	if bold {
		weight = '1'
	}
	return "\033[" + string(weight) + ";3" + string('0'+color) + "m"
}

const (
	red    = 1
	yellow = 3
	blue   = 4
	cyan   = 6
)

// palette holds the escape sequences used to color a rendering. The zero
// palette renders without color.
type palette struct {
	reset  string
	accent string // Line numbers, gutters and footers.

	// Indexed by Level; note uses the accent color.
	plain, bold [note + 1]string
}

func newPalette(r Renderer) palette {
	if !r.Colorize {
		return palette{}
	}

	p := palette{reset: "\033[0m", accent: sgr(false, blue)}
	for level, color := range map[Level]byte{Error: red, Warning: yellow, Remark: cyan, note: blue} {
		if level == Warning && r.WarningsAreErrors {
			color = red
		}
		p.plain[level] = sgr(false, color)
		p.bold[level] = sgr(true, color)
	}
	return p
}

// color returns the normal or bold color for a level.
func (p palette) color(l Level, bold bool) string {
	if l < 0 || int(l) >= len(p.plain) {
		return ""
	}
	if bold {
		return p.bold[l]
	}
	return p.plain[l]
}
