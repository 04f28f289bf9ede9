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

package graphics

import (
	"bytes"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/icc"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/pagetree"
)

func newTestDocument(t *testing.T, buf *bytes.Buffer, v pdf.Version) *pdf.Document {
	t.Helper()
	cfg := pdf.DefaultConfig()
	cfg.Version = v
	cfg.Compress = false
	cfg.FileID = []byte("0123456789abcdef")
	d, err := pdf.NewDocument(buf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// closeAndCheck adds an empty page tree, closes the document and checks
// that the output contains all the given strings.
func closeAndCheck(t *testing.T, d *pdf.Document, buf *bytes.Buffer, want ...string) {
	t.Helper()
	pagetree.New(d, 0, rect.Rect{URx: 100, URy: 100})
	err := d.Close()
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range want {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q", s)
		}
	}
}

func TestExtGState(t *testing.T) {
	buf := &bytes.Buffer{}
	d := newTestDocument(t, buf, pdf.V1_7)

	values := Opacity(0.5)
	gs1 := NewExtGState(d, values)
	values["LW"] = pdf.Integer(2)
	gs2 := NewExtGState(d, Opacity(0.5))
	if gs1 != gs2 {
		t.Error("graphics state not shared")
	}
	if NewExtGState(d, Opacity(0.25)) == gs1 {
		t.Error("different graphics states are shared")
	}
	if FindGState(d, &ExtGState{Values: Opacity(0.5)}) != gs1 {
		t.Error("FindGState failed")
	}

	closeAndCheck(t, d, buf, "/Type /ExtGState", "/CA 0.5", "/ca 0.25")
}

func TestFunctions(t *testing.T) {
	buf := &bytes.Buffer{}
	d := newTestDocument(t, buf, pdf.V1_7)

	f1, err := NewType2(d, []float64{0}, []float64{1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := NewType2(d, []float64{0}, []float64{1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 {
		t.Error("function not shared")
	}
	if FindFunction(d, &Function{Type: 2, Dict: f1.Dict}) != f1 {
		t.Error("FindFunction failed")
	}

	_, err = NewType2(d, []float64{0}, []float64{1, 1}, 1)
	if err == nil {
		t.Error("mismatched C0 and C1 accepted")
	}

	g, err := NewType2(d, []float64{1}, []float64{0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewType3(d, []*Function{f1, g}, nil)
	if err == nil {
		t.Error("missing bounds accepted")
	}
	_, err = NewType3(d, []*Function{f1, g}, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewType0(d, []float64{0, 1}, []float64{0, 1}, []int{4}, 8, []byte{1, 2})
	if err == nil {
		t.Error("short sample data accepted")
	}
	_, err = NewType0(d, []float64{0, 1}, []float64{0, 1}, []int{4}, 7, []byte{1, 2, 3, 4})
	if err == nil {
		t.Error("invalid BitsPerSample accepted")
	}
	_, err = NewType0(d, []float64{0, 1}, []float64{0, 1}, []int{4}, 8, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewType4(d, []float64{0, 1}, []float64{0, 1}, "{ 1 exch sub }")
	if err != nil {
		t.Fatal(err)
	}

	closeAndCheck(t, d, buf,
		"/FunctionType 2",
		"/FunctionType 3",
		"/Bounds [0.5]",
		"/FunctionType 0",
		"/BitsPerSample 8",
		"/FunctionType 4",
		"stream\n{ 1 exch sub }\nendstream")
}

func TestUnnumberedStreamFunction(t *testing.T) {
	f := &Function{Type: 4, Data: []byte("{ }")}
	err := f.PDF(&bytes.Buffer{})
	if err == nil {
		t.Error("unnumbered stream function written")
	}
}

func TestShadingPattern(t *testing.T) {
	buf := &bytes.Buffer{}
	d := newTestDocument(t, buf, pdf.V1_7)

	fn, err := NewType2(d, []float64{1, 0, 0}, []float64{0, 0, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	sh1, err := NewAxial(d, pdf.Name("DeviceRGB"), fn, 0, 0, 100, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	sh2, err := NewAxial(d, pdf.Name("DeviceRGB"), fn, 0, 0, 100, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if sh1 != sh2 {
		t.Error("shading not shared")
	}
	_, err = NewRadial(d, pdf.Name("DeviceRGB"), fn, 0, 0, -1, 0, 0, 10, false)
	if err == nil {
		t.Error("negative radius accepted")
	}
	_, err = NewAxial(d, nil, fn, 0, 0, 1, 1, false)
	if err == nil {
		t.Error("missing color space accepted")
	}

	p1 := NewShadingPattern(d, sh1, matrix.Identity)
	p2 := NewShadingPattern(d, sh1, matrix.Identity)
	if p1 != p2 {
		t.Error("pattern not shared")
	}
	if FindPattern(d, &Pattern{Shading: sh1, Matrix: matrix.Identity}) != p1 {
		t.Error("FindPattern failed")
	}
	if FindShading(d, &Shading{Type: 2, ColorSpace: pdf.Name("DeviceRGB"), Function: fn, Dict: sh1.Dict}) != sh1 {
		t.Error("FindShading failed")
	}

	closeAndCheck(t, d, buf,
		"/ShadingType 2",
		"/Coords [0 0 100 0]",
		"/Extend [true true]",
		"/PatternType 2")
}

func TestTilingPattern(t *testing.T) {
	buf := &bytes.Buffer{}
	d := newTestDocument(t, buf, pdf.V1_7)

	cell := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	_, err := NewTilingPattern(d, true, rect.Rect{}, 10, 10, nil, nil)
	if err == nil {
		t.Error("empty cell accepted")
	}
	_, err = NewTilingPattern(d, true, cell, 0, 10, nil, nil)
	if err == nil {
		t.Error("zero step accepted")
	}
	p, err := NewTilingPattern(d, true, cell, 10, 10, nil, []byte("0 0 5 5 re f"))
	if err != nil {
		t.Fatal(err)
	}
	if q, _ := NewTilingPattern(d, true, cell, 10, 10, nil, []byte("0 0 5 5 re f")); q != p {
		t.Error("tiling pattern not shared")
	}

	closeAndCheck(t, d, buf,
		"/PatternType 1",
		"/PaintType 1",
		"/BBox [0 0 10 10]",
		"stream\n0 0 5 5 re f\nendstream")
}

func TestICCBased(t *testing.T) {
	buf := &bytes.Buffer{}
	d := newTestDocument(t, buf, pdf.V1_7)

	cs1, err := NewICCBased(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cs1.N != 3 {
		t.Errorf("N = %d, want 3", cs1.N)
	}
	cs2, err := NewICCBased(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cs1 != cs2 {
		t.Error("color space not shared")
	}

	_, err = NewICCBased(d, []byte("not a profile"))
	if err == nil {
		t.Error("invalid profile accepted")
	}

	closeAndCheck(t, d, buf, "[/ICCBased ", "/N 3")
}

func TestICCBasedOldVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	d := newTestDocument(t, buf, pdf.V1_2)

	cs, err := NewICCBased(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Warnings()) != 1 {
		t.Errorf("got %d warnings, want 1", len(d.Warnings()))
	}
	if cs.stm != nil {
		t.Error("profile stream written for PDF 1.2")
	}

	closeAndCheck(t, d, buf, "/DeviceRGB")
}

func TestSRGBProfile(t *testing.T) {
	p, err := icc.Decode(sRGBProfile)
	if err != nil {
		t.Fatal(err)
	}
	if p.ColorSpace != icc.RGBSpace {
		t.Errorf("colour space %v, want RGB", p.ColorSpace)
	}
}
