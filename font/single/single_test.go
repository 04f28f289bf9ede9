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

package single

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/postscript/afm"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/mapping"
)

const testAFM = `StartFontMetrics 4.1
FontName Test-Bold
FullName Test Bold
FamilyName Test
Weight Bold
ItalicAngle 0
IsFixedPitch false
FontBBox -10 -200 1000 900
CapHeight 700
XHeight 500
Ascender 750
Descender -250
StartCharMetrics 4
C 32 ; WX 250 ; N space ; B 0 0 0 0 ;
C 65 ; WX 700 ; N A ; B 10 0 690 700 ;
C 86 ; WX 650 ; N V ; B 5 0 645 700 ;
C -1 ; WX 600 ; N Amacron ; B 10 0 690 900 ;
EndCharMetrics
StartKernData
StartKernPairs 1
KPX A V -70
EndKernPairs
EndKernData
EndFontMetrics
`

type missingGlyphs struct {
	mu    sync.Mutex
	chars []rune
}

func (m *missingGlyphs) FontSubstituted(_, _ font.Triplet)             {}
func (m *missingGlyphs) FontLoadingErrorAtAutoDetection(string, error) {}
func (m *missingGlyphs) GlyphNotAvailable(r rune, fontName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chars = append(m.chars, r)
}

func loadAFM(t *testing.T, opt *Options) *Font {
	t.Helper()
	metrics, err := afm.Read(strings.NewReader(testAFM))
	if err != nil {
		t.Fatal(err)
	}
	f, err := FromAFM(metrics, opt)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func loadGoRegular(t *testing.T, opt *Options) *Font {
	t.Helper()
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	f, err := FromSFNT(info, opt)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestAFM(t *testing.T) {
	rec := &missingGlyphs{}
	f := loadAFM(t, &Options{Kerning: true, Listener: rec})

	if f.FontName() != "Test-Bold" {
		t.Errorf("wrong font name %q", f.FontName())
	}
	if d := cmp.Diff([]string{"Test"}, f.FamilyNames()); d != "" {
		t.Errorf("family (-want +got):\n%s", d)
	}
	if f.IsEmbeddable() {
		t.Error("AFM font reported as embeddable")
	}

	codeA := f.MapChar('A')
	if codeA != 'A' {
		t.Errorf("code for A: got %d, want %d", codeA, 'A')
	}
	if w := f.Width(codeA); w != 700 {
		t.Errorf("width of A: got %g, want 700", w)
	}
	if k := f.Kerning('A', 'V'); k != -70 {
		t.Errorf("kerning A V: got %g, want -70", k)
	}
	if k := f.Kerning('V', 'A'); k != 0 {
		t.Errorf("kerning V A: got %g, want 0", k)
	}
	if f.FirstChar() != ' ' || f.LastChar() != 'V' {
		t.Errorf("char range %d..%d", f.FirstChar(), f.LastChar())
	}
	if n := len(f.Widths()); n != 'V'-' '+1 {
		t.Errorf("got %d widths", n)
	}

	// Ā is not part of WinAnsiEncoding.
	code := f.MapChar('Ā')
	if code != 0x0101 {
		t.Errorf("code for Ā: got 0x%04x, want 0x0101", code)
	}
	if w := f.Width(code); w != 600 {
		t.Errorf("width of Ā: got %g, want 600", w)
	}
	if f.GlyphName(code) != "Amacron" {
		t.Errorf("glyph name for Ā: %q", f.GlyphName(code))
	}
	if f.NumPages() != 2 {
		t.Errorf("got %d pages, want 2", f.NumPages())
	}
	enc := f.PageEncoding(1)
	if enc.Name() != "EncodingSupp1" || enc.UnicodeForIndex(1) != 'Ā' || enc.GlyphName(1) != "Amacron" {
		t.Errorf("wrong encoding page %q", enc.Name())
	}

	if code := f.MapChar('Z'); code != 0 {
		t.Errorf("code for missing glyph: %d", code)
	}
	if d := cmp.Diff([]rune{'Z'}, rec.chars); d != "" {
		t.Errorf("missing glyphs (-want +got):\n%s", d)
	}

	if d := cmp.Diff([]byte{'A'}, f.UsedCodes(0)); d != "" {
		t.Errorf("used codes (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]byte{1}, f.UsedCodes(1)); d != "" {
		t.Errorf("used codes on page 1 (-want +got):\n%s", d)
	}
}

func TestEncodeRuns(t *testing.T) {
	f := loadAFM(t, nil)
	runs := font.Encode(f, "AĀV")
	want := []font.Run{
		{Page: 0, Codes: []byte{'A'}},
		{Page: 1, Codes: []byte{1}},
		{Page: 0, Codes: []byte{'V'}},
	}
	if d := cmp.Diff(want, runs); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	if f.HasKerning() {
		t.Error("kerning enabled without the option")
	}
}

func TestSFNT(t *testing.T) {
	f := loadGoRegular(t, &Options{Embed: true})
	if !f.IsEmbeddable() {
		t.Error("font not embeddable")
	}
	if f.FontName() == "" {
		t.Error("missing font name")
	}

	code := f.MapChar('é')
	if code != 0xE9 {
		t.Errorf("code for é: got 0x%02x", code)
	}
	gid := f.GlyphID(code)
	if gid == 0 {
		t.Fatal("no glyph for é")
	}
	want := math.Round(f.SFNT().GlyphWidthPDF(gid))
	if w := f.Width(code); w != want {
		t.Errorf("width: got %g, want %g", w, want)
	}

	m := f.Metrics()
	if m.Ascender <= 0 || m.Descender >= 0 || m.CapHeight <= 0 {
		t.Errorf("implausible metrics %+v", m)
	}
}

func TestOverflowPages(t *testing.T) {
	f := loadGoRegular(t, nil)

	// Cyrillic and Greek characters are not part of WinAnsiEncoding.
	var chars []rune
	for r := rune(0x0400); r < 0x0460; r++ {
		chars = append(chars, r)
	}
	for r := rune(0x0100); r < 0x0180; r++ {
		chars = append(chars, r)
	}
	for r := rune(0x0391); r < 0x03CA; r++ {
		if r != 0x03A2 {
			chars = append(chars, r)
		}
	}
	var avail []rune
	for _, r := range chars {
		if f.HasChar(r) && mapping.WinAnsi().MapChar(r) == mapping.NotFound {
			avail = append(avail, r)
		}
	}
	if len(avail) <= PageSize {
		t.Skipf("only %d test characters available", len(avail))
	}

	codes := make([]uint16, len(avail))
	for i, r := range avail {
		codes[i] = f.MapChar(r)
	}
	if codes[0] != 0x0101 {
		t.Errorf("first code 0x%04x, want 0x0101", codes[0])
	}
	if codes[PageSize-1] != 0x01FF {
		t.Errorf("last code of page 1 0x%04x, want 0x01FF", codes[PageSize-1])
	}
	if codes[PageSize] != 0x0201 {
		t.Errorf("first code of page 2 0x%04x, want 0x0201", codes[PageSize])
	}

	// repeated calls return the same code
	for i, r := range avail {
		if c := f.MapChar(r); c != codes[i] {
			t.Errorf("%q: code changed from 0x%04x to 0x%04x", r, codes[i], c)
		}
		if f.Text(codes[i]) != r {
			t.Errorf("code 0x%04x: wrong text", codes[i])
		}
	}
	if f.NumPages() != 3 {
		t.Errorf("got %d pages, want 3", f.NumPages())
	}
	if name := f.PageEncoding(2).Name(); name != "EncodingSupp2" {
		t.Errorf("wrong page name %q", name)
	}
}

func TestOverflowPagesExhausted(t *testing.T) {
	saved := maxOverflowPages
	maxOverflowPages = 1
	defer func() { maxOverflowPages = saved }()

	rec := &missingGlyphs{}
	f := loadGoRegular(t, &Options{Listener: rec})

	var avail []rune
	for r := rune(0x0100); r < 0x0500 && len(avail) <= PageSize; r++ {
		if f.HasChar(r) && mapping.WinAnsi().MapChar(r) == mapping.NotFound {
			avail = append(avail, r)
		}
	}
	if len(avail) <= PageSize {
		t.Skipf("only %d test characters available", len(avail))
	}

	for _, r := range avail[:PageSize] {
		if f.MapChar(r) == 0 {
			t.Fatalf("%q: no code allocated", r)
		}
	}
	last := avail[PageSize]
	if c := f.MapChar(last); c != 0 {
		t.Errorf("%q: got code 0x%04x after the last page was full", last, c)
	}
	if d := cmp.Diff([]rune{last}, rec.chars); d != "" {
		t.Errorf("missing glyphs (-want +got):\n%s", d)
	}
	if f.NumPages() != 2 {
		t.Errorf("got %d pages, want 2", f.NumPages())
	}
}
