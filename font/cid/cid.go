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

// Package cid implements CID-keyed fonts with two-byte codes.
//
// The codes are subset selectors: glyphs are numbered in the order of
// first use, and only the glyphs which were used are embedded.
package cid

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/subset"
)

// BFEntry maps a contiguous range of characters to a contiguous run of
// glyphs.
type BFEntry struct {
	UnicodeStart rune
	UnicodeEnd   rune
	GlyphStart   glyph.ID
}

// Contains reports whether r is in the character range of the entry.
func (e BFEntry) Contains(r rune) bool {
	return e.UnicodeStart <= r && r <= e.UnicodeEnd
}

// Options control the construction of a CID font.
type Options struct {
	// Kerning enables the use of kerning information.
	Kerning bool

	// Embed indicates whether the font program may be embedded.
	Embed bool

	// Listener receives glyph-not-available events.
	Listener font.EventListener
}

// Font is a CID-keyed font based on a TrueType or OpenType font.
type Font struct {
	info       *sfnt.Font
	families   []string
	metrics    font.Metrics
	embeddable bool
	listener   font.EventListener
	kerner     *font.Kerner

	entries []BFEntry
	widths  []float64 // indexed by glyph ID

	mu  sync.Mutex
	sub *subset.CIDSubset
}

// New creates a CID font from a TrueType or OpenType font.
func New(info *sfnt.Font, opt *Options) (*Font, error) {
	if opt == nil {
		opt = &Options{}
	}
	entries, err := bfEntries(info)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", info.PostScriptName(), err)
	}

	f := &Font{
		info:       info,
		families:   []string{info.FamilyName},
		embeddable: opt.Embed,
		listener:   font.Listener(opt.Listener),
		entries:    entries,
		sub:        subset.New(),
	}
	if opt.Kerning {
		f.kerner = font.NewKerner(info)
	}

	f.widths = make([]float64, info.NumGlyphs())
	for gid := range f.widths {
		f.widths[gid] = math.Round(info.GlyphWidthPDF(glyph.ID(gid)))
	}

	qv := 1000 * info.FontMatrix[3]
	f.metrics = font.Metrics{
		Ascender:     math.Round(float64(info.Ascent) * qv),
		Descender:    math.Round(float64(info.Descent) * qv),
		CapHeight:    math.Round(float64(info.CapHeight) * qv),
		XHeight:      math.Round(float64(info.XHeight) * qv),
		ItalicAngle:  info.ItalicAngle,
		StemV:        math.Round(10 + 220*(float64(info.Weight)-50)*(float64(info.Weight)-50)/(900*900)),
		BBox:         info.FontBBoxPDF().Rounded(),
		IsFixedPitch: info.IsFixedPitch(),
		IsSerif:      info.IsSerif,
		IsScript:     info.IsScript,
		IsItalic:     info.IsItalic,
		IsBold:       info.IsBold,
		IsSymbolic:   true,
	}
	return f, nil
}

// bfEntries reads the character to glyph mapping of a font, and combines
// consecutive characters with consecutive glyphs into ranges.
func bfEntries(info *sfnt.Font) ([]BFEntry, error) {
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	low, high := subtable.CodeRange()
	if high > 0x10FFFF {
		high = 0x10FFFF
	}

	var res []BFEntry
	for r := low; r <= high; r++ {
		gid := subtable.Lookup(r)
		if gid == 0 {
			continue
		}
		if n := len(res); n > 0 {
			last := &res[n-1]
			if last.UnicodeEnd == r-1 && last.GlyphStart+glyph.ID(r-last.UnicodeStart) == gid {
				last.UnicodeEnd = r
				continue
			}
		}
		res = append(res, BFEntry{UnicodeStart: r, UnicodeEnd: r, GlyphStart: gid})
	}
	return res, nil
}

// Entries returns the character ranges of the font.
func (f *Font) Entries() []BFEntry {
	return f.entries
}

// glyphForChar returns the glyph for r, or 0 if the font has no glyph
// for r.
func (f *Font) glyphForChar(r rune) glyph.ID {
	i, found := slices.BinarySearchFunc(f.entries, r, func(e BFEntry, r rune) int {
		switch {
		case e.UnicodeEnd < r:
			return -1
		case e.UnicodeStart > r:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return 0
	}
	e := f.entries[i]
	return e.GlyphStart + glyph.ID(r-e.UnicodeStart)
}

// FontName implements the [font.Typeface] interface.
func (f *Font) FontName() string { return f.info.PostScriptName() }

// FamilyNames implements the [font.Typeface] interface.
func (f *Font) FamilyNames() []string { return f.families }

// Kind implements the [font.Typeface] interface.
func (f *Font) Kind() font.Kind { return font.MultiByteCID }

// IsEmbeddable implements the [font.Typeface] interface.
func (f *Font) IsEmbeddable() bool { return f.embeddable }

// Metrics implements the [font.Typeface] interface.
func (f *Font) Metrics() *font.Metrics { return &f.metrics }

// SFNT returns the underlying font.
func (f *Font) SFNT() *sfnt.Font { return f.info }

// HasChar implements the [font.Typeface] interface.
func (f *Font) HasChar(r rune) bool {
	return f.glyphForChar(r) != 0
}

// MapChar implements the [font.Typeface] interface.
// The result is the subset selector of the glyph for r.  If the font has
// no glyph for r, the selector of .notdef is returned.
func (f *Font) MapChar(r rune) uint16 {
	gid := f.glyphForChar(r)
	if gid == 0 {
		f.listener.GlyphNotAvailable(r, f.FontName())
		return 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub.MapSubsetChar(gid, r)
}

// Width implements the [font.Typeface] interface.
func (f *Font) Width(sel uint16) float64 {
	f.mu.Lock()
	gid := f.sub.GlyphIndex(sel)
	f.mu.Unlock()
	if gid == subset.NotFound || int(gid) >= len(f.widths) {
		gid = 0
	}
	return f.widths[gid]
}

// Widths implements the [font.Typeface] interface.
// The result is indexed by subset selector.
func (f *Font) Widths() []float64 {
	f.mu.Lock()
	glyphs := f.sub.Glyphs()
	f.mu.Unlock()

	res := make([]float64, len(glyphs))
	for i, gid := range glyphs {
		if int(gid) < len(f.widths) {
			res[i] = f.widths[gid]
		}
	}
	return res
}

// FirstChar implements the [font.Typeface] interface.
func (f *Font) FirstChar() uint16 { return 0 }

// LastChar implements the [font.Typeface] interface.
func (f *Font) LastChar() uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint16(f.sub.Len() - 1)
}

// HasKerning implements the [font.Typeface] interface.
func (f *Font) HasKerning() bool { return f.kerner != nil }

// Kerning implements the [font.Typeface] interface.
func (f *Font) Kerning(left, right rune) float64 {
	if f.kerner == nil {
		return 0
	}
	return f.kerner.Kerning(left, right)
}

// Freeze prevents further glyphs from being added to the subset, and
// returns the glyphs of the subset, indexed by selector.
func (f *Font) Freeze() []glyph.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sub.Freeze()
	return f.sub.Glyphs()
}

// Text returns the text for every selector of the subset.  Selectors
// without text are omitted.
func (f *Font) Text() map[uint16]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make(map[uint16]string, f.sub.Len())
	for sel := range f.sub.Len() {
		if r := f.sub.Unicode(uint16(sel)); r != subset.NotACharacter {
			res[uint16(sel)] = string(r)
		}
	}
	return res
}

// CIDSet returns the CIDSet bit string of the subset.
func (f *Font) CIDSet() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub.CIDSet()
}
