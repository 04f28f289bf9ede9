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

package subset

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/sfnt/glyph"
)

func TestReserved(t *testing.T) {
	s := New()
	if s.Len() != 3 {
		t.Fatalf("new subset has %d entries", s.Len())
	}
	for sel := uint16(0); sel < 3; sel++ {
		if gid := s.GlyphIndex(sel); gid != glyph.ID(sel) {
			t.Errorf("selector %d maps to glyph %d", sel, gid)
		}
		if r := s.Unicode(sel); r != NotACharacter {
			t.Errorf("selector %d has character %q", sel, r)
		}
	}
	if sel := s.MapSubsetChar(100, 'A'); sel != 3 {
		t.Errorf("first new glyph got selector %d", sel)
	}
}

func TestInjective(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := New()
	seen := make(map[glyph.ID]uint16)
	sels := make(map[uint16]glyph.ID)
	for range 2000 {
		gid := glyph.ID(rng.IntN(600))
		sel := s.MapSubsetChar(gid, rune('a'+gid%26))
		if prev, ok := seen[gid]; ok {
			if prev != sel {
				t.Fatalf("glyph %d: selector changed from %d to %d", gid, prev, sel)
			}
			continue
		}
		if other, ok := sels[sel]; ok {
			t.Fatalf("selector %d used for glyphs %d and %d", sel, other, gid)
		}
		seen[gid] = sel
		sels[sel] = gid
	}

	// selectors are dense
	for sel := range uint16(s.Len()) {
		if s.GlyphIndex(sel) == NotFound {
			t.Errorf("gap at selector %d", sel)
		}
	}
}

func TestLookups(t *testing.T) {
	s := New()
	s.MapSubsetChar(36, 'A')
	s.MapSubsetChar(37, 'B')
	s.MapSubsetChar(1, ' ')

	if d := cmp.Diff([]glyph.ID{0, 1, 2, 36, 37}, s.Glyphs()); d != "" {
		t.Errorf("glyphs (-want +got):\n%s", d)
	}
	if r := s.Unicode(4); r != 'B' {
		t.Errorf("Unicode(4) = %q", r)
	}
	if r := s.Unicode(1); r != ' ' {
		t.Errorf("Unicode(1) = %q", r)
	}
	if gid := s.GlyphIndex(99); gid != NotFound {
		t.Errorf("GlyphIndex(99) = %d", gid)
	}
	if r := s.Unicode(99); r != NotACharacter {
		t.Errorf("Unicode(99) = %q", r)
	}
	if sel, ok := s.Selector(37); !ok || sel != 4 {
		t.Errorf("Selector(37) = %d, %t", sel, ok)
	}
}

func TestFreeze(t *testing.T) {
	s := New()
	s.MapSubsetChar(10, 'x')
	s.Freeze()

	if sel := s.MapSubsetChar(10, 'x'); sel != 3 {
		t.Errorf("known glyph after freeze: %d", sel)
	}
	defer func() {
		if recover() == nil {
			t.Error("new glyph accepted by frozen subset")
		}
	}()
	s.MapSubsetChar(11, 'y')
}

func TestCIDSet(t *testing.T) {
	s := New()
	for gid := glyph.ID(10); gid < 17; gid++ {
		s.MapSubsetChar(gid, 0)
	}
	// 10 selectors in use
	want := []byte{0xFF, 0xC0}
	if d := cmp.Diff(want, s.CIDSet()); d != "" {
		t.Errorf("CIDSet (-want +got):\n%s", d)
	}
}
