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

package mapping

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	m := New("test", []Pair{{0x41, 'A'}, {0x100, '€'}})

	if c := m.MapChar('A'); c != 0x41 {
		t.Errorf("MapChar('A') = %#x", c)
	}
	if c := m.MapChar('€'); c != 0x100 {
		t.Errorf("MapChar('€') = %#x", c)
	}
	if r := m.UnicodeForIndex(0x100); r != '€' {
		t.Errorf("UnicodeForIndex(0x100) = %q", r)
	}
	if r := m.UnicodeForIndex(0x41); r != 'A' {
		t.Errorf("UnicodeForIndex(0x41) = %q", r)
	}
	if r := m.UnicodeForIndex(0x42); r != NotACharacter {
		t.Errorf("UnicodeForIndex(0x42) = %q", r)
	}
	if r := m.UnicodeForIndex(0x1234); r != NotACharacter {
		t.Errorf("UnicodeForIndex(0x1234) = %q", r)
	}
}

func TestBinarySearch(t *testing.T) {
	var table []Pair
	for i := range 200 {
		table = append(table, Pair{Code: uint16(300 + i), Unicode: rune(0x3000 + 3*i)})
	}
	// unsorted input
	table[0], table[199] = table[199], table[0]
	m := New("cjk", table)

	for _, p := range table {
		if c := m.MapChar(p.Unicode); c != p.Code {
			t.Errorf("MapChar(%q) = %d, want %d", p.Unicode, c, p.Code)
		}
		if r := m.UnicodeForIndex(p.Code); r != p.Unicode {
			t.Errorf("UnicodeForIndex(%d) = %q, want %q", p.Code, r, p.Unicode)
		}
	}
	if c := m.MapChar(0x3001); c != NotFound {
		t.Errorf("unmapped character gave %d", c)
	}
}

func TestFirstCodeWins(t *testing.T) {
	m := New("dup", []Pair{{0x20, ' '}, {0xA0, ' '}})
	if c := m.MapChar(' '); c != 0x20 {
		t.Errorf("MapChar(' ') = %#x", c)
	}
	if r := m.UnicodeForIndex(0xA0); r != ' ' {
		t.Errorf("UnicodeForIndex(0xA0) = %q", r)
	}
}

func TestFallbackMemoized(t *testing.T) {
	m := New("test", []Pair{{0x41, 'A'}})
	calls := make(map[rune]int)
	orig := m.slowPath
	m.slowPath = func(r rune) uint16 {
		calls[r]++
		return orig(r)
	}

	for range 3 {
		if c := m.MapChar('☃'); c != NotFound {
			t.Fatalf("MapChar('☃') = %#x", c)
		}
	}
	if calls['☃'] != 1 {
		t.Errorf("slow path called %d times", calls['☃'])
	}

	// characters in the table never reach the slow path
	m.MapChar('A')
	if calls['A'] != 0 {
		t.Error("slow path used for a mapped character")
	}
}

func TestFallbackConcurrent(t *testing.T) {
	m := New("test", []Pair{{0x41, 'A'}})
	var mu sync.Mutex
	n := 0
	orig := m.slowPath
	m.slowPath = func(r rune) uint16 {
		mu.Lock()
		n++
		mu.Unlock()
		return orig(r)
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.MapChar('Ａ')
		}()
	}
	wg.Wait()
	if n != 1 {
		t.Errorf("slow path called %d times", n)
	}
}

func TestFallbackResolution(t *testing.T) {
	m := WinAnsi()
	cases := []struct {
		in   rune
		want uint16
	}{
		{'A', 0x41},
		{'€', 0x80},
		{'\uFF21', 0x41}, // fullwidth A, compatibility decomposition
		{'\u2010', 0x2D}, // hyphen
		{'\u2011', 0x2D}, // non-breaking hyphen
		{'\u2212', 0x2D}, // minus sign
		{'\u00AD', 0xAD}, // soft hyphen, in the table
		{'\u00A0', 0xA0}, // no-break space, in the table
		{'☃', NotFound},
	}
	for _, tc := range cases {
		if got := m.MapChar(tc.in); got != tc.want {
			t.Errorf("MapChar(%U) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
}

func TestAlternativeGlyphs(t *testing.T) {
	m := New("greek", []Pair{{1, 'Ω'}, {2, 'µ'}})
	if c := m.MapChar('\u2126'); c != 1 {
		t.Errorf("ohm sign: got %#x, want 0x1", c)
	}
	if c := m.MapChar('μ'); c != 2 {
		t.Errorf("greek mu: got %#x, want 0x2", c)
	}

	// glyph names in a custom encoding are compared by character
	m = New("custom", nil)
	m.SetGlyphName(7, "uni2126")
	if c := m.MapChar('Ω'); c != 7 {
		t.Errorf("custom glyph name: got %#x, want 0x7", c)
	}
}

func TestPredefined(t *testing.T) {
	for _, name := range []string{"WinAnsiEncoding", "MacRomanEncoding", "ISO-8859-15"} {
		m, ok := ByName(name)
		if !ok {
			t.Fatalf("%s not found", name)
		}
		if m.Name() != name {
			t.Errorf("wrong name %q", m.Name())
		}
		for c := uint16(0x20); c < 0x7F; c++ {
			if r := m.UnicodeForIndex(c); r != rune(c) {
				t.Errorf("%s: code %#x maps to %q", name, c, r)
			}
		}
	}

	if r := MacRoman().UnicodeForIndex(0x80); r != 'Ä' {
		t.Errorf("MacRoman 0x80 = %q", r)
	}
	if c := ISO8859_15().MapChar('€'); c != 0xA4 {
		t.Errorf("ISO-8859-15 € = %#x", c)
	}
}

func TestGlyphNames(t *testing.T) {
	m := New("custom", []Pair{{1, 'A'}, {2, 'B'}})
	m.SetGlyphName(2, "B.alt")

	got := []string{m.GlyphName(1), m.GlyphName(2), m.GlyphName(3)}
	want := []string{"A", "B.alt", ".notdef"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("glyph names (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]uint16{1, 2}, m.Codes()); d != "" {
		t.Errorf("codes (-want +got):\n%s", d)
	}
}
