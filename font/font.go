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

package font

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
)

// Kind distinguishes the different ways characters are encoded in a font.
type Kind int

const (
	// SingleByte fonts use one byte per character.  Characters outside
	// the base encoding are placed on additional encoding pages.
	SingleByte Kind = iota + 1

	// MultiByteCID fonts are CID-keyed fonts with two-byte codes.  The
	// codes are subset selectors, allocated as glyphs are used.
	MultiByteCID
)

func (k Kind) String() string {
	switch k {
	case SingleByte:
		return "single-byte"
	case MultiByteCID:
		return "CID"
	default:
		return fmt.Sprintf("font.Kind(%d)", int(k))
	}
}

// Typeface is the set of capabilities all fonts provide.
//
// Widths and kerning values are given in PDF glyph space units, i.e. in
// 1/1000 of the font size.
type Typeface interface {
	// FontName returns the PostScript name of the font.
	FontName() string

	// FamilyNames returns the family names of the font.
	FamilyNames() []string

	// Kind returns how characters are encoded.
	Kind() Kind

	// MapChar returns the code for the character r.  If the font has no
	// glyph for r, the code of the .notdef glyph is returned and the
	// font's event listener is notified.
	//
	// For single-byte fonts, the high byte of the code is the encoding
	// page, see [Run].
	MapChar(r rune) uint16

	// HasChar reports whether the font has a glyph for r.
	HasChar(r rune) bool

	// Width returns the width of the glyph with the given code.
	Width(code uint16) float64

	// Widths returns the widths of the codes FirstChar to LastChar
	// of the base encoding.
	Widths() []float64

	// FirstChar and LastChar return the range of codes in use.
	FirstChar() uint16
	LastChar() uint16

	// Kerning returns the kerning adjustment between two characters.
	// A negative value moves the characters closer together.
	Kerning(left, right rune) float64

	// HasKerning reports whether the font has kerning information.
	HasKerning() bool

	// Metrics returns the global font metrics.
	Metrics() *Metrics

	// IsEmbeddable reports whether the font program can be embedded.
	IsEmbeddable() bool
}

// Metrics holds the global metrics of a font, in PDF glyph space units.
type Metrics struct {
	Ascender    float64
	Descender   float64 // negative
	CapHeight   float64
	XHeight     float64
	ItalicAngle float64
	StemV       float64
	BBox        rect.Rect

	IsFixedPitch bool
	IsSerif      bool
	IsScript     bool
	IsItalic     bool
	IsBold       bool
	IsSymbolic   bool
}

// Run is a sequence of codes which are shown using the same font resource.
type Run struct {
	// Page is the encoding page of a single-byte font.  Page 0 is the base
	// encoding, higher pages hold characters which are not part of the
	// base encoding.
	Page int

	Codes []byte
}

// Encode converts a string to the codes used in text-showing operators.
// A new run is started whenever the encoding page changes.
func Encode(f Typeface, s string) []Run {
	var runs []Run
	multiByte := f.Kind() == MultiByteCID
	for _, r := range s {
		code := f.MapChar(r)
		page := 0
		if !multiByte {
			page = int(code >> 8)
		}
		if len(runs) == 0 || runs[len(runs)-1].Page != page {
			runs = append(runs, Run{Page: page})
		}
		run := &runs[len(runs)-1]
		if multiByte {
			run.Codes = append(run.Codes, byte(code>>8), byte(code))
		} else {
			run.Codes = append(run.Codes, byte(code))
		}
	}
	return runs
}

// TextWidth returns the width of s in PDF glyph space units, including
// kerning.
func TextWidth(f Typeface, s string) float64 {
	var width float64
	prev := rune(-1)
	kern := f.HasKerning()
	for _, r := range s {
		width += f.Width(f.MapChar(r))
		if kern && prev >= 0 {
			width += f.Kerning(prev, r)
		}
		prev = r
	}
	return width
}
