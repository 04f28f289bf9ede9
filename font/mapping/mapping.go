// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package mapping implements code point mappings for single-byte font
// encodings.
//
// A [CodePointMapping] translates Unicode characters to the codes used in
// text-showing operators, and back.  Characters which are not part of the
// encoding table are resolved via glyph name alternatives and Unicode
// compatibility decomposition.  The results of these slow lookups are
// cached.
package mapping

import (
	"sort"
	"sync"

	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
)

// NotFound is the code returned for characters which cannot be encoded.
const NotFound uint16 = 0

// NotACharacter is returned by [CodePointMapping.UnicodeForIndex] for codes
// which are not mapped to a character.
const NotACharacter rune = 0xFFFF

// Pair is one entry of an encoding table.
type Pair struct {
	Code    uint16
	Unicode rune
}

// CodePointMapping maps Unicode characters to the codes of a font encoding.
//
// The lookup methods are safe for concurrent use.
type CodePointMapping struct {
	name string

	// latin1[r] is the code for the character r < 256.
	latin1 [256]uint16

	// characters and codes hold the mapping for characters >= 256,
	// sorted by character.
	characters []rune
	codes      []uint16

	// unicode[c] is the character for code c < 256.
	unicode [256]rune

	// highCodes and highUnicode hold the mapping for codes >= 256,
	// sorted by code.
	highCodes   []uint16
	highUnicode []rune

	glyphNames map[uint16]string

	mu       sync.Mutex
	fallback map[rune]uint16

	// slowPath resolves characters which are not in the table.
	slowPath func(r rune) uint16
}

// New creates a mapping from an encoding table.  If a character occurs
// several times in the table, the first code is used for encoding.
func New(name string, table []Pair) *CodePointMapping {
	m := &CodePointMapping{name: name}
	for i := range m.unicode {
		m.unicode[i] = NotACharacter
	}

	var high []Pair
	seen := make(map[rune]bool)
	for _, p := range table {
		if p.Code < 256 {
			if m.unicode[p.Code] == NotACharacter {
				m.unicode[p.Code] = p.Unicode
			}
		} else {
			m.highCodes = append(m.highCodes, p.Code)
			m.highUnicode = append(m.highUnicode, p.Unicode)
		}

		if seen[p.Unicode] {
			continue
		}
		seen[p.Unicode] = true
		if p.Unicode >= 0 && p.Unicode < 256 {
			m.latin1[p.Unicode] = p.Code
		} else {
			high = append(high, p)
		}
	}

	sort.Stable(byCode{m.highCodes, m.highUnicode})

	slices.SortStableFunc(high, func(a, b Pair) int {
		return int(a.Unicode) - int(b.Unicode)
	})
	m.characters = make([]rune, len(high))
	m.codes = make([]uint16, len(high))
	for i, p := range high {
		m.characters[i] = p.Unicode
		m.codes[i] = p.Code
	}

	m.slowPath = m.resolveAlternative
	return m
}

// Name returns the name of the encoding, for example "WinAnsiEncoding".
func (m *CodePointMapping) Name() string {
	return m.name
}

// MapChar returns the code for the character r.  If r cannot be encoded,
// [NotFound] is returned.
func (m *CodePointMapping) MapChar(r rune) uint16 {
	if c := m.lookup(r); c != NotFound {
		return c
	}
	return m.mapFallback(r)
}

// HasChar reports whether r can be encoded.
func (m *CodePointMapping) HasChar(r rune) bool {
	return m.MapChar(r) != NotFound
}

func (m *CodePointMapping) lookup(r rune) uint16 {
	if r >= 0 && r < 256 {
		return m.latin1[r]
	}
	i, found := slices.BinarySearch(m.characters, r)
	if !found {
		return NotFound
	}
	return m.codes[i]
}

// mapFallback consults the fallback cache and runs the slow path on a
// miss.  The lock is held while the slow path runs, so that the slow path
// is run at most once for every character.
func (m *CodePointMapping) mapFallback(r rune) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.fallback[r]; ok {
		return c
	}
	if m.fallback == nil {
		m.fallback = make(map[rune]uint16)
	}
	c := m.slowPath(r)
	m.fallback[r] = c
	return c
}

// resolveAlternative tries glyph name alternatives and the compatibility
// decomposition of r.
func (m *CodePointMapping) resolveAlternative(r rune) uint16 {
	for _, alt := range alternativeChars(r) {
		if c := m.lookup(alt); c != NotFound {
			return c
		}
	}

	if m.glyphNames != nil {
		alts := alternativeChars(r)
		for code := range uint16(256) {
			n, ok := m.glyphNames[code]
			if !ok {
				continue
			}
			if nr := nameRune(n); nr == r || slices.Contains(alts, nr) {
				return code
			}
		}
	}

	folded := []rune(norm.NFKC.String(string(r)))
	if len(folded) == 1 && folded[0] != r {
		if c := m.lookup(folded[0]); c != NotFound {
			return c
		}
	}
	return NotFound
}

// UnicodeForIndex returns the character for the given code, or
// [NotACharacter] if the code is not used.
func (m *CodePointMapping) UnicodeForIndex(code uint16) rune {
	if code < 256 {
		return m.unicode[code]
	}
	i, found := slices.BinarySearch(m.highCodes, code)
	if !found {
		return NotACharacter
	}
	return m.highUnicode[i]
}

// GlyphName returns the glyph name for the given code, or ".notdef".
func (m *CodePointMapping) GlyphName(code uint16) string {
	if name, ok := m.glyphNames[code]; ok {
		return name
	}
	r := m.UnicodeForIndex(code)
	if r == NotACharacter {
		return ".notdef"
	}
	return glyphName(r)
}

// SetGlyphName overrides the glyph name for a code.  This is used for
// encodings of fonts which use non-standard glyph names.
func (m *CodePointMapping) SetGlyphName(code uint16, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.glyphNames == nil {
		m.glyphNames = make(map[uint16]string)
	}
	m.glyphNames[code] = name
	m.fallback = nil
}

// Codes returns all codes < 256 which are mapped to a character, in
// increasing order.
func (m *CodePointMapping) Codes() []uint16 {
	var res []uint16
	for c, r := range m.unicode {
		if r != NotACharacter {
			res = append(res, uint16(c))
		}
	}
	return res
}

type byCode struct {
	codes   []uint16
	unicode []rune
}

func (b byCode) Len() int           { return len(b.codes) }
func (b byCode) Less(i, j int) bool { return b.codes[i] < b.codes[j] }
func (b byCode) Swap(i, j int) {
	b.codes[i], b.codes[j] = b.codes[j], b.codes[i]
	b.unicode[i], b.unicode[j] = b.unicode[j], b.unicode[i]
}
