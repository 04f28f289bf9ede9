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
	"errors"
	"io"
	"maps"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 8.7.4.5

// Shading is a shading dictionary.  Only the function-based, axial and
// radial shading types (1-3) are supported.
type Shading struct {
	pdf.ObjectBase

	Type       int
	ColorSpace pdf.Object
	Function   *Function

	// Dict holds the type-specific entries, for example /Coords.
	Dict pdf.Dict
}

// NewAxial returns an axial shading between the points (x0, y0) and
// (x1, y1).  If extend is set, the shading is extended beyond both end
// points.
func NewAxial(d *pdf.Document, cs pdf.Object, fn *Function, x0, y0, x1, y1 float64, extend bool) (*Shading, error) {
	if cs == nil || fn == nil {
		return nil, errors.New("axial shading needs a color space and a function")
	}
	sh := &Shading{
		Type:       2,
		ColorSpace: cs,
		Function:   fn,
		Dict: pdf.Dict{
			"Coords": numbers(x0, y0, x1, y1),
		},
	}
	if extend {
		sh.Dict["Extend"] = pdf.Array{pdf.Bool(true), pdf.Bool(true)}
	}
	return pdf.Share(d, sh), nil
}

// NewRadial returns a radial shading between the circle with centre
// (x0, y0) and radius r0, and the circle with centre (x1, y1) and radius
// r1.
func NewRadial(d *pdf.Document, cs pdf.Object, fn *Function, x0, y0, r0, x1, y1, r1 float64, extend bool) (*Shading, error) {
	if cs == nil || fn == nil {
		return nil, errors.New("radial shading needs a color space and a function")
	}
	if r0 < 0 || r1 < 0 {
		return nil, errors.New("negative radius")
	}
	sh := &Shading{
		Type:       3,
		ColorSpace: cs,
		Function:   fn,
		Dict: pdf.Dict{
			"Coords": numbers(x0, y0, r0, x1, y1, r1),
		},
	}
	if extend {
		sh.Dict["Extend"] = pdf.Array{pdf.Bool(true), pdf.Bool(true)}
	}
	return pdf.Share(d, sh), nil
}

// PDF implements the [pdf.Object] interface.
func (sh *Shading) PDF(w io.Writer) error {
	if sh.Type < 1 || sh.Type > 3 {
		return errors.New("unsupported shading type")
	}
	dict := maps.Clone(sh.Dict)
	if dict == nil {
		dict = pdf.Dict{}
	}
	dict["ShadingType"] = pdf.Integer(sh.Type)
	dict["ColorSpace"] = sh.ColorSpace
	if sh.Function != nil {
		dict["Function"] = sh.Function
	}
	return dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (sh *Shading) Category() pdf.Category { return pdf.CategoryShading }

// Equivalent implements the [pdf.Shareable] interface.
func (sh *Shading) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*Shading)
	if !ok || sh.Type != o.Type || sh.Function != o.Function {
		return false
	}
	return pdf.Equal(sh.ColorSpace, o.ColorSpace) && pdf.Equal(sh.Dict, o.Dict)
}

// FindShading returns a shading which is equivalent to candidate, or nil.
func FindShading(d *pdf.Document, candidate *Shading) *Shading {
	sh, _ := d.Find(candidate).(*Shading)
	return sh
}
