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

// Package subset keeps track of the glyphs used from a CID-keyed font.
//
// When a font is subsetted, every glyph which is used in the document is
// assigned a dense "subset selector", which is used as the CID of the glyph
// in the embedded font.  Selectors are allocated in order of first use,
// starting at 0.  The selectors 0, 1 and 2 are reserved for the first
// three glyphs of the font, so that .notdef always has CID 0.
package subset

import (
	"fmt"

	"seehuhn.de/go/sfnt/glyph"
)

// NotFound is returned by [CIDSubset.GlyphIndex] for unknown selectors.
const NotFound glyph.ID = 0xFFFF

// NotACharacter is returned by [CIDSubset.Unicode] if a selector has no
// associated character.
const NotACharacter rune = 0xFFFF

// numReserved is the number of selectors allocated by New.
const numReserved = 3

// maxSelectors is the number of selectors which fit into two-byte codes.
const maxSelectors = 0xFFFF

// CIDSubset maps glyph indices to subset selectors and back.
//
// A CIDSubset only grows.  Once a glyph has been mapped, its selector
// never changes.
type CIDSubset struct {
	gidToSel map[glyph.ID]uint16
	glyphs   []glyph.ID // indexed by selector
	text     []rune     // indexed by selector

	frozen bool
}

// New returns a subset where the selectors 0, 1 and 2 are assigned to the
// glyphs 0, 1 and 2.
func New() *CIDSubset {
	s := &CIDSubset{
		gidToSel: make(map[glyph.ID]uint16),
	}
	for gid := range glyph.ID(numReserved) {
		s.allocate(gid, NotACharacter)
	}
	return s
}

func (s *CIDSubset) allocate(gid glyph.ID, r rune) uint16 {
	sel := uint16(len(s.glyphs))
	s.gidToSel[gid] = sel
	s.glyphs = append(s.glyphs, gid)
	s.text = append(s.text, r)
	return sel
}

// MapSubsetChar returns the selector for the glyph gid, allocating the next
// free selector if the glyph has not been seen before.  The character r is
// recorded for the new selector.
//
// If all selectors are in use, 0 is returned so that the .notdef glyph is
// shown.  MapSubsetChar panics if a new glyph is added after the subset has
// been frozen.
func (s *CIDSubset) MapSubsetChar(gid glyph.ID, r rune) uint16 {
	if sel, ok := s.gidToSel[gid]; ok {
		if s.text[sel] == NotACharacter && sel != 0 {
			s.text[sel] = r
		}
		return sel
	}
	if s.frozen {
		panic(fmt.Sprintf("glyph %d added to frozen subset", gid))
	}
	if len(s.glyphs) >= maxSelectors {
		return 0
	}
	return s.allocate(gid, r)
}

// Selector returns the selector for gid, if the glyph is part of the subset.
func (s *CIDSubset) Selector(gid glyph.ID) (uint16, bool) {
	sel, ok := s.gidToSel[gid]
	return sel, ok
}

// GlyphIndex returns the glyph index for the given selector, or
// [NotFound].
func (s *CIDSubset) GlyphIndex(sel uint16) glyph.ID {
	if int(sel) >= len(s.glyphs) {
		return NotFound
	}
	return s.glyphs[sel]
}

// Unicode returns the character for the given selector, or
// [NotACharacter].
func (s *CIDSubset) Unicode(sel uint16) rune {
	if int(sel) >= len(s.text) {
		return NotACharacter
	}
	return s.text[sel]
}

// Len returns the number of allocated selectors.
func (s *CIDSubset) Len() int {
	return len(s.glyphs)
}

// Glyphs returns the glyph indices in selector order.  This is the glyph
// list to use when subsetting the font, so that the new glyph index of
// every glyph equals its selector.
func (s *CIDSubset) Glyphs() []glyph.ID {
	res := make([]glyph.ID, len(s.glyphs))
	copy(res, s.glyphs)
	return res
}

// Freeze marks the subset as read-only.  This is done when the font is
// embedded.
func (s *CIDSubset) Freeze() {
	s.frozen = true
}

// IsFrozen reports whether Freeze has been called.
func (s *CIDSubset) IsFrozen() bool {
	return s.frozen
}

// CIDSet returns the bit string used in the /CIDSet entry of a font
// descriptor.  Bit i (counting from the high-order bit of the first byte)
// is set if CID i is present in the subset.
func (s *CIDSubset) CIDSet() []byte {
	n := len(s.glyphs)
	res := make([]byte, (n+7)/8)
	for sel := range n {
		res[sel/8] |= 0x80 >> (sel % 8)
	}
	return res
}
