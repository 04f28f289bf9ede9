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

package cid

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/pdfgen/font"
)

type recorder struct {
	missing []rune
}

func (r *recorder) FontSubstituted(_, _ font.Triplet)              {}
func (r *recorder) FontLoadingErrorAtAutoDetection(string, error) {}
func (r *recorder) GlyphNotAvailable(c rune, _ string) {
	r.missing = append(r.missing, c)
}

func loadGoRegular(t *testing.T, opt *Options) *Font {
	t.Helper()
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	f, err := New(info, opt)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestBFEntries(t *testing.T) {
	f := loadGoRegular(t, nil)
	entries := f.Entries()
	if len(entries) == 0 {
		t.Fatal("no character ranges")
	}
	for i, e := range entries {
		if e.UnicodeEnd < e.UnicodeStart {
			t.Errorf("entry %d: empty range", i)
		}
		if i > 0 && entries[i-1].UnicodeEnd >= e.UnicodeStart {
			t.Errorf("entry %d: overlapping or unsorted ranges", i)
		}
	}

	subtable, err := f.SFNT().CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range "AZaz09äöüßé€–Ωж " {
		want := subtable.Lookup(r)
		if got := f.glyphForChar(r); got != want {
			t.Errorf("%q: got glyph %d, want %d", r, got, want)
		}
	}
}

func TestMapChar(t *testing.T) {
	rec := &recorder{}
	f := loadGoRegular(t, &Options{Listener: rec})

	a := f.MapChar('A')
	b := f.MapChar('B')
	if a != 3 || b != 4 {
		t.Errorf("selectors %d, %d, want 3, 4", a, b)
	}
	if again := f.MapChar('A'); again != a {
		t.Errorf("selector changed from %d to %d", a, again)
	}

	gid := f.glyphForChar('A')
	if w, want := f.Width(a), math.Round(f.SFNT().GlyphWidthPDF(gid)); w != want {
		t.Errorf("width: got %g, want %g", w, want)
	}
	if n := len(f.Widths()); n != 5 {
		t.Errorf("got %d widths, want 5", n)
	}
	if f.LastChar() != 4 {
		t.Errorf("last char %d, want 4", f.LastChar())
	}

	if sel := f.MapChar('😀'); sel != 0 {
		t.Errorf("missing glyph mapped to %d", sel)
	}
	if d := cmp.Diff([]rune{'😀'}, rec.missing); d != "" {
		t.Errorf("missing glyphs (-want +got):\n%s", d)
	}

	want := map[uint16]string{3: "A", 4: "B"}
	if d := cmp.Diff(want, f.Text()); d != "" {
		t.Errorf("text (-want +got):\n%s", d)
	}

	glyphs := f.Freeze()
	if len(glyphs) != 5 || glyphs[3] != gid {
		t.Errorf("unexpected subset %v", glyphs)
	}
}

func TestEncode(t *testing.T) {
	f := loadGoRegular(t, nil)
	runs := font.Encode(f, "ABA")
	want := []font.Run{{Page: 0, Codes: []byte{0, 3, 0, 4, 0, 3}}}
	if d := cmp.Diff(want, runs); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}
