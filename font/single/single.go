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

// Package single implements single-byte fonts.
//
// Characters are encoded using a base encoding, for example
// WinAnsiEncoding.  Characters which the font has glyphs for, but which
// are not part of the base encoding, are assigned codes on additional
// encoding pages as they are used.  Each additional page holds up to 255
// characters and is embedded as a separate PDF font.
package single

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/afm"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/mapping"
)

// PageSize is the number of codes on an additional encoding page.
// Code 0 of every page is reserved for the .notdef glyph.
const PageSize = 255

// maxOverflowPages is the number of additional encoding pages.  The page
// number is stored in the high byte of a code.
var maxOverflowPages = 255

// Options control the construction of a single-byte font.
type Options struct {
	// Encoding is the base encoding.  The default is WinAnsiEncoding.
	// Symbolic Type 1 fonts always use their built-in encoding.
	Encoding *mapping.CodePointMapping

	// Kerning enables the use of kerning information.
	Kerning bool

	// Embed indicates whether the font program may be embedded.
	Embed bool

	// Listener receives glyph-not-available events.
	Listener font.EventListener
}

// Font is a single-byte font.
type Font struct {
	name       string
	families   []string
	metrics    font.Metrics
	embeddable bool
	listener   font.EventListener

	// glyph information, indexed by glyph index.  Glyph 0 is .notdef.
	widths []float64
	names  []string
	lookup func(r rune) int

	base      *mapping.CodePointMapping
	builtin   bool
	baseGlyph [256]int
	firstChar uint16
	lastChar  uint16
	kernPairs map[[2]int]float64
	kerner    *font.Kerner

	ttf *sfnt.Font

	mu       sync.Mutex
	pages    []*page
	overflow map[rune]uint16
	used     map[uint16]bool
}

// page is an additional encoding page.  Entry i corresponds to code i+1.
type page struct {
	glyphs []int
	text   []rune
}

func newFont(name string, opt *Options) *Font {
	if opt == nil {
		opt = &Options{}
	}
	base := opt.Encoding
	if base == nil {
		base = mapping.WinAnsi()
	}
	return &Font{
		name:       name,
		embeddable: opt.Embed,
		listener:   font.Listener(opt.Listener),
		base:       base,
		overflow:   make(map[rune]uint16),
		used:       make(map[uint16]bool),
	}
}

// FromAFM creates a font from Adobe font metrics.  Fonts created this
// way cannot be embedded.
func FromAFM(m *afm.Metrics, opt *Options) (*Font, error) {
	if m == nil || len(m.Glyphs) == 0 {
		return nil, fmt.Errorf("font metrics without glyphs")
	}
	f := newFont(m.FontName, opt)
	f.embeddable = false
	f.families = []string{familyFromName(m.FontName)}

	glyphNames := make([]string, 0, len(m.Glyphs))
	for name := range m.Glyphs {
		if name != ".notdef" {
			glyphNames = append(glyphNames, name)
		}
	}
	slices.Sort(glyphNames)
	glyphNames = append([]string{".notdef"}, glyphNames...)

	f.names = glyphNames
	f.widths = make([]float64, len(glyphNames))
	byName := make(map[string]int, len(glyphNames))
	byRune := make(map[rune]int)
	var bbox rect.Rect
	for i, name := range glyphNames {
		byName[name] = i
		gi, ok := m.Glyphs[name]
		if !ok {
			continue
		}
		f.widths[i] = gi.WidthX
		bbox.Extend(gi.BBox)
		if i == 0 {
			continue
		}
		rr := []rune(mapping.Unicode(name))
		if len(rr) == 1 {
			if _, seen := byRune[rr[0]]; !seen {
				byRune[rr[0]] = i
			}
		}
	}
	f.lookup = func(r rune) int {
		return byRune[r]
	}

	// Symbolic fonts, like Symbol and ZapfDingbats, keep their built-in
	// encoding.
	_, hasA := byName["A"]
	_, hasa := byName["a"]
	if !hasA && !hasa && len(m.Encoding) > 0 {
		f.base = builtinEncoding(m.Encoding)
		f.builtin = true
		for code, name := range m.Encoding {
			if name == "" || name == ".notdef" {
				continue
			}
			if idx, ok := byName[name]; ok {
				r := f.base.UnicodeForIndex(uint16(code))
				if _, seen := byRune[r]; !seen && r != mapping.NotACharacter {
					byRune[r] = idx
				}
			}
		}
	}
	f.setupBase(byName)

	f.metrics = font.Metrics{
		Ascender:     m.Ascent,
		Descender:    m.Descent,
		CapHeight:    m.CapHeight,
		XHeight:      m.XHeight,
		ItalicAngle:  m.ItalicAngle,
		StemV:        stemV(m.FontName),
		BBox:         bbox,
		IsFixedPitch: m.IsFixedPitch,
		IsItalic:     m.ItalicAngle != 0,
		IsSymbolic:   f.builtin,
	}

	if opt != nil && opt.Kerning {
		f.kernPairs = make(map[[2]int]float64)
		for _, k := range m.Kern {
			left, lok := byName[k.Left]
			right, rok := byName[k.Right]
			if lok && rok && k.Adjust != 0 {
				f.kernPairs[[2]int{left, right}] = float64(k.Adjust)
			}
		}
	}
	return f, nil
}

// builtinEncoding converts the built-in encoding of a Type 1 font to a
// code point mapping.  Glyphs without a Unicode value are mapped to the
// private use area, at U+F000 plus the code.
func builtinEncoding(encoding []string) *mapping.CodePointMapping {
	var table []mapping.Pair
	for code, name := range encoding {
		if code > 255 || name == "" || name == ".notdef" {
			continue
		}
		rr := []rune(mapping.Unicode(name))
		r := rune(0xF000 + code)
		if len(rr) == 1 {
			r = rr[0]
		}
		table = append(table, mapping.Pair{Code: uint16(code), Unicode: r})
	}
	m := mapping.New("FontSpecific", table)
	for code, name := range encoding {
		if code <= 255 && name != "" && name != ".notdef" {
			m.SetGlyphName(uint16(code), name)
		}
	}
	return m
}

// FromSFNT creates a font from a TrueType or OpenType font.
func FromSFNT(info *sfnt.Font, opt *Options) (*Font, error) {
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", info.PostScriptName(), err)
	}

	f := newFont(info.PostScriptName(), opt)
	f.ttf = info
	f.families = []string{info.FamilyName}

	n := info.NumGlyphs()
	f.widths = make([]float64, n)
	for gid := range f.widths {
		f.widths[gid] = math.Round(info.GlyphWidthPDF(glyph.ID(gid)))
	}
	f.names = make([]string, n)
	f.names[0] = ".notdef"
	f.lookup = func(r rune) int {
		return int(subtable.Lookup(r))
	}
	f.setupBase(nil)

	qv := 1000 * info.FontMatrix[3]
	f.metrics = font.Metrics{
		Ascender:     math.Round(float64(info.Ascent) * qv),
		Descender:    math.Round(float64(info.Descent) * qv),
		CapHeight:    math.Round(float64(info.CapHeight) * qv),
		XHeight:      math.Round(float64(info.XHeight) * qv),
		ItalicAngle:  info.ItalicAngle,
		StemV:        stemVForWeight(float64(info.Weight)),
		BBox:         info.FontBBoxPDF().Rounded(),
		IsFixedPitch: info.IsFixedPitch(),
		IsSerif:      info.IsSerif,
		IsScript:     info.IsScript,
		IsItalic:     info.IsItalic,
		IsBold:       info.IsBold,
	}

	if opt != nil && opt.Kerning {
		f.kerner = font.NewKerner(info)
	}
	return f, nil
}

// setupBase finds the glyphs for the codes of the base encoding.
func (f *Font) setupBase(byName map[string]int) {
	f.firstChar, f.lastChar = 0, 0
	for _, code := range f.base.Codes() {
		idx := f.lookup(f.base.UnicodeForIndex(code))
		if idx == 0 && byName != nil {
			idx = byName[f.base.GlyphName(code)]
		}
		if idx == 0 {
			continue
		}
		f.baseGlyph[code] = idx
		if f.firstChar == 0 {
			f.firstChar = code
		}
		f.lastChar = code
		if f.names[idx] == "" {
			f.names[idx] = f.base.GlyphName(code)
		}
	}
}

// FontName implements the [font.Typeface] interface.
func (f *Font) FontName() string { return f.name }

// FamilyNames implements the [font.Typeface] interface.
func (f *Font) FamilyNames() []string { return f.families }

// Kind implements the [font.Typeface] interface.
func (f *Font) Kind() font.Kind { return font.SingleByte }

// IsEmbeddable implements the [font.Typeface] interface.
func (f *Font) IsEmbeddable() bool { return f.embeddable && f.ttf != nil }

// Metrics implements the [font.Typeface] interface.
func (f *Font) Metrics() *font.Metrics { return &f.metrics }

// SFNT returns the underlying TrueType or OpenType font, or nil for fonts
// loaded from AFM files.
func (f *Font) SFNT() *sfnt.Font { return f.ttf }

// HasBuiltinEncoding reports whether the base encoding is the built-in
// encoding of the font.
func (f *Font) HasBuiltinEncoding() bool { return f.builtin }

// MapChar implements the [font.Typeface] interface.
//
// Characters which are not part of the base encoding are allocated on
// additional encoding pages.
func (f *Font) MapChar(r rune) uint16 {
	if code := f.base.MapChar(r); code != mapping.NotFound && f.baseGlyph[code] != 0 {
		f.markUsed(code)
		return code
	}

	f.mu.Lock()
	code, ok := f.overflow[r]
	if !ok {
		if idx := f.lookup(r); idx != 0 {
			code, ok = f.allocateLocked(r, idx)
		}
	}
	if ok {
		f.used[code] = true
	}
	f.mu.Unlock()

	if !ok {
		f.listener.GlyphNotAvailable(r, f.name)
		return 0
	}
	return code
}

func (f *Font) markUsed(code uint16) {
	f.mu.Lock()
	f.used[code] = true
	f.mu.Unlock()
}

// allocateLocked assigns the next free code on the additional encoding
// pages to r.  The second return value is false once all pages are full.
func (f *Font) allocateLocked(r rune, idx int) (uint16, bool) {
	if len(f.pages) == 0 || len(f.pages[len(f.pages)-1].glyphs) >= PageSize {
		if len(f.pages) >= maxOverflowPages {
			return 0, false
		}
		f.pages = append(f.pages, &page{})
	}
	p := f.pages[len(f.pages)-1]
	p.glyphs = append(p.glyphs, idx)
	p.text = append(p.text, r)
	code := uint16(len(f.pages))<<8 | uint16(len(p.glyphs))
	f.overflow[r] = code
	if f.names[idx] == "" {
		f.names[idx] = mapping.GlyphName(r)
	}
	return code, true
}

// HasChar implements the [font.Typeface] interface.
func (f *Font) HasChar(r rune) bool {
	if code := f.base.MapChar(r); code != mapping.NotFound && f.baseGlyph[code] != 0 {
		return true
	}
	return f.lookup(r) != 0
}

// glyphIndex returns the glyph index for a code, and 0 for unused codes.
func (f *Font) glyphIndex(code uint16) int {
	pageNo, c := int(code>>8), int(code&0xFF)
	if pageNo == 0 {
		return f.baseGlyph[c]
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if pageNo > len(f.pages) || c == 0 {
		return 0
	}
	p := f.pages[pageNo-1]
	if c > len(p.glyphs) {
		return 0
	}
	return p.glyphs[c-1]
}

// Width implements the [font.Typeface] interface.
func (f *Font) Width(code uint16) float64 {
	return f.widths[f.glyphIndex(code)]
}

// Widths implements the [font.Typeface] interface.
func (f *Font) Widths() []float64 {
	if f.lastChar < f.firstChar {
		return nil
	}
	res := make([]float64, int(f.lastChar)-int(f.firstChar)+1)
	for i := range res {
		res[i] = f.widths[f.baseGlyph[int(f.firstChar)+i]]
	}
	return res
}

// FirstChar implements the [font.Typeface] interface.
func (f *Font) FirstChar() uint16 { return f.firstChar }

// LastChar implements the [font.Typeface] interface.
func (f *Font) LastChar() uint16 { return f.lastChar }

// HasKerning implements the [font.Typeface] interface.
func (f *Font) HasKerning() bool {
	return len(f.kernPairs) > 0 || f.kerner != nil
}

// Kerning implements the [font.Typeface] interface.
func (f *Font) Kerning(left, right rune) float64 {
	switch {
	case f.kernPairs != nil:
		return f.kernPairs[[2]int{f.lookup(left), f.lookup(right)}]
	case f.kerner != nil:
		return f.kerner.Kerning(left, right)
	default:
		return 0
	}
}

// NumPages implements the [font.Paged] interface.
func (f *Font) NumPages() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pages) + 1
}

// PageEncoding implements the [font.Paged] interface.
// The additional pages are named "EncodingSupp1", "EncodingSupp2", ....
func (f *Font) PageEncoding(p int) *mapping.CodePointMapping {
	if p == 0 {
		return f.base
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if p < 0 || p > len(f.pages) {
		return nil
	}
	pg := f.pages[p-1]
	table := make([]mapping.Pair, len(pg.text))
	for i, r := range pg.text {
		table[i] = mapping.Pair{Code: uint16(i + 1), Unicode: r}
	}
	m := mapping.New(fmt.Sprintf("EncodingSupp%d", p), table)
	for i, idx := range pg.glyphs {
		m.SetGlyphName(uint16(i+1), f.names[idx])
	}
	return m
}

// UsedCodes returns the codes used on the given encoding page, as single
// bytes in increasing order.
func (f *Font) UsedCodes(p int) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []byte
	for code := range f.used {
		if int(code>>8) == p {
			res = append(res, byte(code))
		}
	}
	slices.Sort(res)
	return res
}

// GlyphID returns the glyph of a TrueType or OpenType font for a code.
func (f *Font) GlyphID(code uint16) glyph.ID {
	return glyph.ID(f.glyphIndex(code))
}

// GlyphName returns the glyph name for a code.
func (f *Font) GlyphName(code uint16) string {
	name := f.names[f.glyphIndex(code)]
	if name == "" {
		return ".notdef"
	}
	return name
}

// Text returns the character represented by a code.
func (f *Font) Text(code uint16) rune {
	pageNo, c := int(code>>8), int(code&0xFF)
	if pageNo == 0 {
		return f.base.UnicodeForIndex(code)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if pageNo > len(f.pages) || c == 0 || c > len(f.pages[pageNo-1].text) {
		return mapping.NotACharacter
	}
	return f.pages[pageNo-1].text[c-1]
}

func familyFromName(name string) string {
	family, _, _ := strings.Cut(name, "-")
	return family
}

// stemV guesses the dominant vertical stem width from the font name.
func stemV(name string) float64 {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "black"), strings.Contains(lower, "heavy"):
		return stemVForWeight(900)
	case strings.Contains(lower, "bold"):
		return stemVForWeight(700)
	case strings.Contains(lower, "light"):
		return stemVForWeight(300)
	default:
		return stemVForWeight(400)
	}
}

func stemVForWeight(weight float64) float64 {
	return math.Round(10 + 220*(weight-50)*(weight-50)/(900*900))
}
