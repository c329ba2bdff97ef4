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

package unicodex

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/bsharp/internal/ext/stringsx"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth int = 4

// NonPrint reports whether r is replaced with <U+NNNN> when shown in a
// diagnostic.
func NonPrint(r rune) bool {
	return !strings.ContainsRune(" \r\t\n", r) && !unicode.IsPrint(r)
}

// Width measures the width of text in terminal columns.
type Width struct {
	// The column at which the text is being rendered. Needed for tabstops.
	Column int

	// The width of a tabstop in columns. Zero selects [TabstopWidth].
	Tabstop int

	// If set, non-printable characters are escaped as <U+NNNN>.
	EscapeNonPrint bool

	// If non-nil, text is copied here with tabs expanded and unprintables
	// escaped as requested.
	Out io.StringWriter
}

// StringWidth returns the width of text when it starts at column zero.
func StringWidth(text string) int {
	w := Width{}
	_, _ = w.WriteString(text)
	return w.Column
}

// WriteString writes text, advancing w.Column and writing to w.Out.
func (w *Width) WriteString(text string) (int, error) {
	n := 0
	write := func(s string) error {
		if w.Out == nil {
			return nil
		}
		m, err := w.Out.WriteString(s)
		n += m
		return err
	}

	tabstop := w.Tabstop
	if tabstop <= 0 {
		tabstop = TabstopWidth
	}

	first := true
	for chunk := range stringsx.Split(text, '\t') {
		if !first {
			tab := tabstop - (w.Column % tabstop)
			w.Column += tab
			if err := write(strings.Repeat(" ", tab)); err != nil {
				return n, err
			}
		}
		first = false

		if !w.EscapeNonPrint {
			w.Column += uniseg.StringWidth(chunk)
			if err := write(chunk); err != nil {
				return n, err
			}
			continue
		}

		for chunk != "" {
			idx := strings.IndexFunc(chunk, func(r rune) bool {
				return r == utf8.RuneError || NonPrint(r)
			})
			if idx < 0 {
				w.Column += uniseg.StringWidth(chunk)
				if err := write(chunk); err != nil {
					return n, err
				}
				break
			}

			plain := chunk[:idx]
			r, size := utf8.DecodeRuneInString(chunk[idx:])
			var escape string
			if r == utf8.RuneError && size <= 1 {
				escape = fmt.Sprintf("<%02X>", chunk[idx])
				size = 1
			} else {
				escape = fmt.Sprintf("<U+%04X>", r)
			}
			chunk = chunk[idx+size:]

			w.Column += uniseg.StringWidth(plain) + len(escape)
			if err := write(plain); err != nil {
				return n, err
			}
			if err := write(escape); err != nil {
				return n, err
			}
		}
	}

	return n, nil
}
