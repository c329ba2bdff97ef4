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

// Package unicodex contains helpers for classifying runes and measuring text
// as it appears in a terminal.
package unicodex

import "unicode"

// IsIdentStart returns whether r may begin an identifier.
//
// This is a letter, a letter-number, or an underscore.
func IsIdentStart(r rune) bool {
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	if r < 0x80 {
		return false
	}
	return unicode.In(r, unicode.Letter, unicode.Nl)
}

// IsIdentPart returns whether r may appear after the first rune of an
// identifier.
func IsIdentPart(r rune) bool {
	if r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') {
		return true
	}
	if r < 0x80 {
		return false
	}

	return unicode.In(r,
		unicode.Letter,
		unicode.Nl, // Number, letter.
		unicode.Nd, // Number, digit.
		unicode.Mn, // Mark, nonspacing.
		unicode.Mc, // Mark, spacing combining.
		unicode.Pc, // Punctuation, connector.
		unicode.Cf, // Other, format.
	)
}

// IsASCIIIdent checks if s is an ASCII-only identifier.
func IsASCIIIdent(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case r == '_':
		default:
			return false
		}
	}
	return len(s) > 0
}

// Digit parses a digit in the given base, up to base 16.
func Digit(d rune, base byte) (value byte, ok bool) {
	switch {
	case d >= '0' && d <= '9':
		value = byte(d) - '0'
	case d >= 'a' && d <= 'f':
		value = byte(d) - 'a' + 10
	case d >= 'A' && d <= 'F':
		value = byte(d) - 'A' + 10
	default:
		return 0, false
	}

	if value >= base {
		return 0, false
	}
	return value, true
}
