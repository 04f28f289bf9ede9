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
	"errors"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 8.7.3

// Pattern is a tiling pattern (PatternType 1) or a shading pattern
// (PatternType 2).
type Pattern struct {
	pdf.ObjectBase

	Matrix matrix.Matrix

	// Shading is set for shading patterns.
	Shading *Shading

	// The remaining fields are used for tiling patterns only.
	Colored      bool
	BBox         rect.Rect
	XStep, YStep float64
	Resources    pdf.Dict
	Content      []byte
}

// NewShadingPattern returns a shared shading pattern.
func NewShadingPattern(d *pdf.Document, sh *Shading, m matrix.Matrix) *Pattern {
	return pdf.Share(d, &Pattern{Shading: sh, Matrix: m})
}

// NewTilingPattern returns a shared tiling pattern.  The content stream
// paints a single pattern cell.  Uncolored patterns take their color from
// the context in which they are used.
func NewTilingPattern(d *pdf.Document, colored bool, bbox rect.Rect, xStep, yStep float64, res pdf.Dict, content []byte) (*Pattern, error) {
	if bbox.URx <= bbox.LLx || bbox.URy <= bbox.LLy {
		return nil, errors.New("empty pattern cell")
	}
	if xStep == 0 || yStep == 0 {
		return nil, errors.New("pattern step must be non-zero")
	}
	p := &Pattern{
		Matrix:    matrix.Identity,
		Colored:   colored,
		BBox:      bbox,
		XStep:     xStep,
		YStep:     yStep,
		Resources: res,
		Content:   content,
	}
	return pdf.Share(d, p), nil
}

// PDF implements the [pdf.Object] interface.
func (p *Pattern) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type": pdf.Name("Pattern"),
	}
	if p.Matrix != matrix.Identity && p.Matrix != (matrix.Matrix{}) {
		dict["Matrix"] = numbers(p.Matrix[:]...)
	}

	if p.Shading != nil {
		dict["PatternType"] = pdf.Integer(2)
		dict["Shading"] = p.Shading
		return dict.PDF(w)
	}

	paintType := 2
	if p.Colored {
		paintType = 1
	}
	res := p.Resources
	if res == nil {
		res = pdf.Dict{}
	}
	dict["PatternType"] = pdf.Integer(1)
	dict["PaintType"] = pdf.Integer(paintType)
	dict["TilingType"] = pdf.Integer(1)
	dict["BBox"] = numbers(p.BBox.LLx, p.BBox.LLy, p.BBox.URx, p.BBox.URy)
	dict["XStep"] = pdf.Number(p.XStep)
	dict["YStep"] = pdf.Number(p.YStep)
	dict["Resources"] = res
	return writeStream(w, &p.ObjectBase, dict, p.Content)
}

// Category implements the [pdf.Shareable] interface.
func (p *Pattern) Category() pdf.Category { return pdf.CategoryPattern }

// Equivalent implements the [pdf.Shareable] interface.
func (p *Pattern) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*Pattern)
	if !ok || p.Shading != o.Shading || p.Matrix != o.Matrix {
		return false
	}
	if p.Shading != nil {
		return true
	}
	return p.Colored == o.Colored &&
		p.BBox == o.BBox &&
		p.XStep == o.XStep && p.YStep == o.YStep &&
		pdf.Equal(p.Resources, o.Resources) &&
		bytes.Equal(p.Content, o.Content)
}

// FindPattern returns a pattern which is equivalent to candidate, or nil.
func FindPattern(d *pdf.Document, candidate *Pattern) *Pattern {
	p, _ := d.Find(candidate).(*Pattern)
	return p
}
