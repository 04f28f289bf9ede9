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

// Package graphics implements resources which are shared between the
// pages of a document: graphics state parameter dictionaries, functions,
// shadings, patterns and ICC-based color spaces.
//
// All objects in this package are deduplicated: the constructors return
// an existing, equivalent object if there is one.
package graphics

import (
	"io"
	"maps"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 8.4.5

// ExtGState is a graphics state parameter dictionary.
type ExtGState struct {
	pdf.ObjectBase

	// Values holds the graphics state parameters, for example
	// "LW" (line width) or "CA" (stroking alpha).
	Values pdf.Dict
}

// NewExtGState returns a shared graphics state parameter dictionary.
func NewExtGState(d *pdf.Document, values pdf.Dict) *ExtGState {
	return pdf.Share(d, &ExtGState{Values: maps.Clone(values)})
}

// Opacity returns the parameters which set the stroking and non-stroking
// alpha values.
func Opacity(alpha float64) pdf.Dict {
	return pdf.Dict{
		"CA": pdf.Number(alpha),
		"ca": pdf.Number(alpha),
	}
}

// PDF implements the [pdf.Object] interface.
func (gs *ExtGState) PDF(w io.Writer) error {
	dict := maps.Clone(gs.Values)
	if dict == nil {
		dict = pdf.Dict{}
	}
	dict["Type"] = pdf.Name("ExtGState")
	return dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (gs *ExtGState) Category() pdf.Category { return pdf.CategoryGState }

// Equivalent implements the [pdf.Shareable] interface.
func (gs *ExtGState) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*ExtGState)
	return ok && pdf.Equal(gs.Values, o.Values)
}

// FindGState returns a graphics state which is equivalent to candidate, or
// nil.
func FindGState(d *pdf.Document, candidate *ExtGState) *ExtGState {
	gs, _ := d.Find(candidate).(*ExtGState)
	return gs
}
