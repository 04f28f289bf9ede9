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

package gofont

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfgen/font"
)

func TestAll(t *testing.T) {
	for _, f := range All {
		info, err := f.SFNT()
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if info.NumGlyphs() == 0 {
			t.Errorf("%s: no glyphs", f)
		}
		g, ok := ByName(f.String())
		if !ok || g != f {
			t.Errorf("ByName(%q) = %d, %t", f.String(), g, ok)
		}
	}
}

func TestMonoIsFixedPitch(t *testing.T) {
	for _, f := range All {
		info, err := f.SFNT()
		if err != nil {
			t.Fatal(err)
		}
		isMono := data[f].family == "Go Mono"
		if info.IsFixedPitch() != isMono {
			t.Errorf("%s: IsFixedPitch=%t", f, info.IsFixedPitch())
		}
	}
}

func TestTriplets(t *testing.T) {
	got := Regular.Triplets()
	var families []string
	for _, tr := range got {
		families = append(families, tr.Family)
		if tr.Style != font.StyleNormal || tr.Weight != font.WeightNormal {
			t.Errorf("unexpected triplet %s", tr)
		}
		if tr.Priority != DefaultPriority {
			t.Errorf("%s: priority %d", tr, tr.Priority)
		}
	}
	want := []string{"Go", font.AnyFamily, "sans-serif", "serif"}
	if d := cmp.Diff(want, families); d != "" {
		t.Errorf("families (-want +got):\n%s", d)
	}

	if got := MonoBoldItalic.Triplets(); len(got) != 2 || got[1].Family != "monospace" {
		t.Errorf("mono triplets: %v", got)
	}
}

func TestURL(t *testing.T) {
	if u := MonoBold.URL(); u != "gofont:mono-bold" {
		t.Errorf("URL: got %q", u)
	}
	if s := Font(99).String(); s != "gofont.Font(99)" {
		t.Errorf("String: got %q", s)
	}
}
