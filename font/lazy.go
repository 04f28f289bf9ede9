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
	"sync"
	"sync/atomic"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen/font/mapping"
)

// Paged is implemented by single-byte fonts.  The characters of the font
// are spread over one or more encoding pages of at most 256 codes each.
// Page 0 is the base encoding of the font.
type Paged interface {
	Typeface

	// NumPages returns the number of encoding pages in use.
	NumPages() int

	// PageEncoding returns the mapping used for encoding page p.
	PageEncoding(p int) *mapping.CodePointMapping
}

// Lazy is a font which is loaded on first use.
//
// If loading fails, the error is reported to the event listener and a
// replacement font is used.
type Lazy struct {
	name     string
	url      string
	load     func() (Typeface, error)
	fallback Typeface
	listener EventListener

	once   sync.Once
	loaded atomic.Bool
	real   Typeface
	err    error
}

// NewLazy returns a font which calls load on first use.  If fallback is
// nil, a non-embedded Helvetica is used when loading fails.
func NewLazy(name, url string, load func() (Typeface, error), fallback Typeface, l EventListener) *Lazy {
	return &Lazy{
		name:     name,
		url:      url,
		load:     load,
		fallback: fallback,
		listener: Listener(l),
	}
}

// Load loads the font, if this has not happened yet.  The error is the
// error from the first load attempt.
func (f *Lazy) Load() (Typeface, error) {
	f.once.Do(func() {
		f.real, f.err = f.load()
		if f.err != nil {
			f.listener.FontLoadingErrorAtAutoDetection(f.url, f.err)
			f.real = f.fallback
			if f.real == nil {
				f.real = nullFont{}
			}
		}
		f.loaded.Store(true)
	})
	return f.real, f.err
}

// IsLoaded reports whether the font has been loaded.
func (f *Lazy) IsLoaded() bool {
	return f.loaded.Load()
}

// Real returns the loaded font.
func (f *Lazy) Real() Typeface {
	real, _ := f.Load()
	return real
}

// FontName implements the [Typeface] interface.
// If the font has not been loaded yet, the registered name is returned.
func (f *Lazy) FontName() string {
	if f.name != "" {
		return f.name
	}
	return f.Real().FontName()
}

// FamilyNames implements the [Typeface] interface.
func (f *Lazy) FamilyNames() []string { return f.Real().FamilyNames() }

// Kind implements the [Typeface] interface.
func (f *Lazy) Kind() Kind { return f.Real().Kind() }

// MapChar implements the [Typeface] interface.
func (f *Lazy) MapChar(r rune) uint16 { return f.Real().MapChar(r) }

// HasChar implements the [Typeface] interface.
func (f *Lazy) HasChar(r rune) bool { return f.Real().HasChar(r) }

// Width implements the [Typeface] interface.
func (f *Lazy) Width(c uint16) float64 { return f.Real().Width(c) }

// Widths implements the [Typeface] interface.
func (f *Lazy) Widths() []float64 { return f.Real().Widths() }

// FirstChar implements the [Typeface] interface.
func (f *Lazy) FirstChar() uint16 { return f.Real().FirstChar() }

// LastChar implements the [Typeface] interface.
func (f *Lazy) LastChar() uint16 { return f.Real().LastChar() }

// Kerning implements the [Typeface] interface.
func (f *Lazy) Kerning(left, right rune) float64 { return f.Real().Kerning(left, right) }

// HasKerning implements the [Typeface] interface.
func (f *Lazy) HasKerning() bool { return f.Real().HasKerning() }

// Metrics implements the [Typeface] interface.
func (f *Lazy) Metrics() *Metrics { return f.Real().Metrics() }

// IsEmbeddable implements the [Typeface] interface.
func (f *Lazy) IsEmbeddable() bool { return f.Real().IsEmbeddable() }

// nullFont is used when a font cannot be loaded.  It refers to the
// standard Helvetica font, without embedding, and uses a fixed width for
// all glyphs.
type nullFont struct{}

const nullWidth = 500

func (nullFont) FontName() string      { return "Helvetica" }
func (nullFont) FamilyNames() []string { return []string{"Helvetica"} }
func (nullFont) Kind() Kind            { return SingleByte }
func (nullFont) MapChar(r rune) uint16 { return mapping.WinAnsi().MapChar(r) }
func (nullFont) HasChar(r rune) bool   { return mapping.WinAnsi().HasChar(r) }
func (nullFont) Width(uint16) float64  { return nullWidth }
func (nullFont) Widths() []float64 {
	res := make([]float64, 256-32)
	for i := range res {
		res[i] = nullWidth
	}
	return res
}
func (nullFont) FirstChar() uint16         { return 32 }
func (nullFont) LastChar() uint16          { return 255 }
func (nullFont) Kerning(_, _ rune) float64 { return 0 }
func (nullFont) HasKerning() bool          { return false }
func (nullFont) IsEmbeddable() bool        { return false }
func (nullFont) NumPages() int             { return 1 }
func (nullFont) PageEncoding(int) *mapping.CodePointMapping {
	return mapping.WinAnsi()
}
func (nullFont) Metrics() *Metrics {
	return &Metrics{
		Ascender:  718,
		Descender: -207,
		CapHeight: 718,
		XHeight:   523,
		StemV:     88,
		BBox:      rect.Rect{LLx: -166, LLy: -225, URx: 1000, URy: 931},
	}
}

// Unwrap returns the underlying font of a [Lazy] font.  Other fonts are
// returned unchanged.
func Unwrap(f Typeface) Typeface {
	if l, ok := f.(*Lazy); ok {
		return l.Real()
	}
	return f
}
