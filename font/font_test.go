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
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testFont is a single-byte font with a fixed width and one kerning pair.
type testFont struct {
	nullFont
	name string
}

func (f testFont) FontName() string { return f.name }

func (testFont) Width(code uint16) float64 {
	if code == 0 {
		return 0
	}
	return 600
}

func (testFont) HasKerning() bool { return true }

func (testFont) Kerning(left, right rune) float64 {
	if left == 'A' && right == 'V' {
		return -80
	}
	return 0
}

type substitution struct {
	Requested, Effective Triplet
}

type recorder struct {
	mu            sync.Mutex
	substitutions []substitution
	loadErrors    []string
	missing       []rune
}

func (r *recorder) FontSubstituted(requested, effective Triplet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.substitutions = append(r.substitutions, substitution{requested.Key().triplet(), effective.Key().triplet()})
}

func (r *recorder) FontLoadingErrorAtAutoDetection(fontURL string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadErrors = append(r.loadErrors, fontURL)
}

func (r *recorder) GlyphNotAvailable(c rune, fontName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missing = append(r.missing, c)
}

func (k TripletKey) triplet() Triplet {
	return Triplet{Family: k.Family, Style: k.Style, Weight: k.Weight}
}

func newTestInfo(l EventListener, triplets ...Triplet) *Info {
	fi := NewInfo(l)
	for _, t := range triplets {
		fi.Add(testFont{name: t.String()}, t)
	}
	return fi
}

func TestWeightFallback(t *testing.T) {
	fi := newTestInfo(nil,
		Triplet{Family: "X", Style: StyleNormal, Weight: 400},
		Triplet{Family: "X", Style: StyleNormal, Weight: 700},
		DefaultTriplet,
	)

	cases := []struct {
		weight, want int
	}{
		{400, 400},
		{700, 700},
		{550, 700},
		{450, 400},
		{500, 400},
		{300, 400},
		{100, 400},
		{600, 700},
		{900, 700},
		{800, 700},
	}
	for _, c := range cases {
		got, ok := fi.Lookup("X", StyleNormal, c.weight, true)
		if !ok {
			t.Errorf("weight %d: no font found", c.weight)
			continue
		}
		if got.Family != "X" || got.Weight != c.want {
			t.Errorf("weight %d: got %s, want X,normal,%d", c.weight, got, c.want)
		}
	}
}

func TestFallbackWeights(t *testing.T) {
	cases := []struct {
		weight int
		want   []int
	}{
		{100, []int{200, 300, 400}},
		{300, []int{200, 100, 400}},
		{350, []int{300, 200, 100, 400}},
		{400, []int{300, 200, 100}},
		{450, []int{400}},
		{500, []int{400}},
		{550, []int{600, 700, 800, 900, 500, 400}},
		{700, []int{800, 900, 600, 500, 400}},
		{900, []int{800, 700, 600, 500, 400}},
	}
	for _, c := range cases {
		got := fallbackWeights(c.weight)
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("weight %d (-want +got):\n%s", c.weight, d)
		}
	}
}

func TestExactOnly(t *testing.T) {
	fi := newTestInfo(nil,
		Triplet{Family: "X", Style: StyleNormal, Weight: 400},
		DefaultTriplet,
	)
	if _, ok := fi.Lookup("X", StyleNormal, 700, false); ok {
		t.Error("non-substitutable lookup found a substitute")
	}
	if _, ok := fi.Lookup("X", StyleNormal, 400, false); !ok {
		t.Error("exact match not found")
	}
}

func TestStyleAndFamilyFallback(t *testing.T) {
	fi := newTestInfo(nil,
		Triplet{Family: "X", Style: StyleNormal, Weight: 400},
		Triplet{Family: AnyFamily, Style: StyleItalic, Weight: 400},
		DefaultTriplet,
	)

	got, _ := fi.Lookup("X", StyleItalic, 400, true)
	if want := (Triplet{Family: "X", Style: StyleNormal, Weight: 400}); !got.Equal(want) {
		t.Errorf("style fallback: got %s, want %s", got, want)
	}

	got, _ = fi.Lookup("Y", StyleItalic, 400, true)
	if want := (Triplet{Family: AnyFamily, Style: StyleItalic, Weight: 400}); !got.Equal(want) {
		t.Errorf("family fallback: got %s, want %s", got, want)
	}

	// the "any" family is not substitutable
	got, _ = fi.Lookup("Y", StyleItalic, 700, true)
	if !got.Equal(DefaultTriplet) {
		t.Errorf("family fallback with weight: got %s, want %s", got, DefaultTriplet)
	}

	got, _ = fi.Lookup("Y", StyleOblique, 900, true)
	if !got.Equal(DefaultTriplet) {
		t.Errorf("last resort: got %s, want %s", got, DefaultTriplet)
	}
}

func TestSubstitutionNotifiedOnce(t *testing.T) {
	rec := &recorder{}
	fi := newTestInfo(rec,
		Triplet{Family: "X", Style: StyleNormal, Weight: 400},
		DefaultTriplet,
	)

	for range 3 {
		fi.Lookup("X", StyleNormal, 700, true)
	}
	fi.Lookup("X", StyleNormal, 400, true)
	fi.Lookup("X", StyleItalic, 400, true)

	want := []substitution{
		{
			Triplet{Family: "X", Style: StyleNormal, Weight: 700},
			Triplet{Family: "X", Style: StyleNormal, Weight: 400},
		},
		{
			Triplet{Family: "X", Style: StyleItalic, Weight: 400},
			Triplet{Family: "X", Style: StyleNormal, Weight: 400},
		},
	}
	if d := cmp.Diff(want, rec.substitutions); d != "" {
		t.Errorf("substitutions (-want +got):\n%s", d)
	}
}

func TestLookupFamilies(t *testing.T) {
	fi := newTestInfo(nil,
		Triplet{Family: "A", Style: StyleNormal, Weight: 400},
		Triplet{Family: "B", Style: StyleNormal, Weight: 400},
		Triplet{Family: "B", Style: StyleNormal, Weight: 700},
		DefaultTriplet,
	)

	got, err := fi.LookupFamilies([]string{"missing", "A", "B"}, StyleNormal, 400)
	if err != nil {
		t.Fatal(err)
	}
	want := []Triplet{
		{Family: "A", Style: StyleNormal, Weight: 400},
		{Family: "B", Style: StyleNormal, Weight: 400},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("exact pass (-want +got):\n%s", d)
	}

	// No exact match: the first family which can be substituted wins.
	got, err = fi.LookupFamilies([]string{"A", "B"}, StyleNormal, 700)
	if err != nil {
		t.Fatal(err)
	}
	want = []Triplet{{Family: "B", Style: StyleNormal, Weight: 700}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("exact pass for B (-want +got):\n%s", d)
	}

	got, err = fi.LookupFamilies([]string{"A", "C"}, StyleNormal, 600)
	if err != nil {
		t.Fatal(err)
	}
	want = []Triplet{{Family: "A", Style: StyleNormal, Weight: 400}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("substitution pass (-want +got):\n%s", d)
	}
}

func TestLookupErrors(t *testing.T) {
	fi := newTestInfo(nil, Triplet{Family: "A", Style: StyleNormal, Weight: 400})
	if fi.IsSetupValid() {
		t.Error("setup without default triplet reported as valid")
	}

	_, err := fi.LookupFamilies(nil, StyleNormal, 400)
	if !errors.Is(err, ErrNoFamilies) {
		t.Errorf("no families: got %v, want %v", err, ErrNoFamilies)
	}

	_, err = fi.LookupFamilies([]string{"B"}, StyleNormal, 400)
	if !errors.Is(err, ErrNoFontFound) {
		t.Errorf("unknown family: got %v, want %v", err, ErrNoFontFound)
	}
}

func TestPriority(t *testing.T) {
	fi := NewInfo(nil)
	tr := Triplet{Family: "X", Style: StyleNormal, Weight: 400}

	tr.Priority = 5
	k1 := fi.Add(testFont{name: "first"}, tr)
	tr.Priority = 1
	k2 := fi.Add(testFont{name: "second"}, tr)
	tr.Priority = 3
	fi.Add(testFont{name: "third"}, tr)

	if got := fi.FontKey(tr); got != k2 {
		t.Errorf("font key: got %q, want %q (first key %q)", got, k2, k1)
	}
	if got := fi.Triplets()[0].Priority; got != 1 {
		t.Errorf("priority: got %d, want 1", got)
	}
}

func TestUseFont(t *testing.T) {
	fi := NewInfo(nil)
	keys := make([]string, 12)
	for i := range keys {
		keys[i] = fi.Add(testFont{name: "font"})
	}
	fi.UseFont(keys[10])
	fi.UseFont(keys[1])
	if fi.UseFont("unknown") != nil {
		t.Error("unknown font key returned a font")
	}

	want := []string{"F2", "F11"}
	if d := cmp.Diff(want, fi.UsedKeys()); d != "" {
		t.Errorf("used keys (-want +got):\n%s", d)
	}
	if n := len(fi.Fonts()); n != 12 {
		t.Errorf("got %d fonts, want 12", n)
	}
}

func TestFind(t *testing.T) {
	fi := newTestInfo(nil,
		Triplet{Family: "Go", Style: StyleNormal, Weight: 400},
		DefaultTriplet,
	)
	key, f, err := fi.Find([]string{"Go"}, StyleNormal, 400)
	if err != nil {
		t.Fatal(err)
	}
	if f.FontName() != "Go,normal,400" {
		t.Errorf("wrong font %q", f.FontName())
	}
	if _, used := fi.UsedFonts()[key]; !used {
		t.Errorf("font %q not marked as used", key)
	}
}

func TestParseTriplet(t *testing.T) {
	got, err := ParseTriplet("Go Mono, italic, 700")
	if err != nil {
		t.Fatal(err)
	}
	want := Triplet{Family: "Go Mono", Style: StyleItalic, Weight: 700}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	for _, bad := range []string{"", "a,b", "a,b,c", "a,b,1000"} {
		if _, err := ParseTriplet(bad); err == nil {
			t.Errorf("%q: no error", bad)
		}
	}
}

func TestLazy(t *testing.T) {
	calls := 0
	l := NewLazy("Test", "test.ttf", func() (Typeface, error) {
		calls++
		return testFont{name: "Loaded"}, nil
	}, nil, nil)

	if l.IsLoaded() {
		t.Error("font loaded too early")
	}
	if l.FontName() != "Test" {
		t.Errorf("wrong name %q", l.FontName())
	}
	if l.Width(l.MapChar('A')) != 600 {
		t.Error("wrong width")
	}
	_ = l.Kind()
	if calls != 1 || !l.IsLoaded() {
		t.Errorf("loader called %d times", calls)
	}
	if Unwrap(l).FontName() != "Loaded" {
		t.Error("Unwrap did not return the loaded font")
	}
}

func TestLazyForwarding(t *testing.T) {
	loaded := testFont{name: "Loaded"}
	l := NewLazy("", "test.ttf", func() (Typeface, error) {
		return loaded, nil
	}, nil, nil)

	if l.Kerning('A', 'V') != loaded.Kerning('A', 'V') || !l.HasKerning() {
		t.Error("kerning not forwarded")
	}
	if l.MapChar('A') != loaded.MapChar('A') || l.HasChar('A') != loaded.HasChar('A') {
		t.Error("character mapping not forwarded")
	}
	if l.FirstChar() != loaded.FirstChar() || l.LastChar() != loaded.LastChar() {
		t.Error("character range not forwarded")
	}
	if d := cmp.Diff(loaded.Widths(), l.Widths()); d != "" {
		t.Errorf("widths (-want +got):\n%s", d)
	}
	if d := cmp.Diff(loaded.FamilyNames(), l.FamilyNames()); d != "" {
		t.Errorf("families (-want +got):\n%s", d)
	}
	if l.Metrics() == nil || l.IsEmbeddable() != loaded.IsEmbeddable() {
		t.Error("metrics not forwarded")
	}
	if l.FontName() != "Loaded" {
		t.Errorf("wrong name %q", l.FontName())
	}
}

func TestLazyFailure(t *testing.T) {
	rec := &recorder{}
	loadErr := errors.New("file not found")
	l := NewLazy("", "missing.ttf", func() (Typeface, error) {
		return nil, loadErr
	}, nil, rec)

	if _, err := l.Load(); err != loadErr {
		t.Errorf("got error %v, want %v", err, loadErr)
	}
	if l.FontName() != "Helvetica" {
		t.Errorf("replacement font is %q", l.FontName())
	}
	if d := cmp.Diff([]string{"missing.ttf"}, rec.loadErrors); d != "" {
		t.Errorf("load errors (-want +got):\n%s", d)
	}
}

func TestEncode(t *testing.T) {
	f := testFont{}
	runs := Encode(f, "A€")
	want := []Run{{Page: 0, Codes: []byte{'A', 0x80}}}
	if d := cmp.Diff(want, runs); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	if w := TextWidth(f, "AVA"); w != 3*600-80 {
		t.Errorf("text width: got %g, want %d", w, 3*600-80)
	}
}

func TestEncodePages(t *testing.T) {
	f := pagedFont{}
	runs := Encode(f, "abāc")
	want := []Run{
		{Page: 0, Codes: []byte{'a', 'b'}},
		{Page: 1, Codes: []byte{1}},
		{Page: 0, Codes: []byte{'c'}},
	}
	if d := cmp.Diff(want, runs); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

// pagedFont puts all characters above U+00FF on page 1.
type pagedFont struct {
	nullFont
}

func (pagedFont) MapChar(r rune) uint16 {
	if r < 256 {
		return uint16(r)
	}
	return 0x100 | uint16(r&0xFF)
}

var _ Paged = nullFont{}
