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
	"fmt"
	"io"

	"seehuhn.de/go/icc"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 8.6.5.5

// ColorSpace is an ICC-based color space.  If the document's PDF version
// does not support ICC-based color spaces, the corresponding device color
// space is written instead.
type ColorSpace struct {
	pdf.ObjectBase

	// N is the number of color components.
	N int

	profile []byte
	ranges  []float64
	stm     *pdf.Stream
}

// NewICCBased returns a shared color space for the given ICC profile.
// If profile is nil, the sRGB profile is used.
func NewICCBased(d *pdf.Document, profile []byte) (*ColorSpace, error) {
	if profile == nil {
		profile = sRGBProfile
	}
	p, err := icc.Decode(profile)
	if err != nil {
		return nil, err
	}

	var ranges []float64
	switch p.ColorSpace {
	case icc.GraySpace:
		ranges = []float64{0, 1}
	case icc.RGBSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1}
	case icc.CMYKSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1, 0, 1}
	case icc.CIELabSpace:
		ranges = []float64{0, 100, -128, 127, -128, 127}
	default:
		return nil, fmt.Errorf("unsupported ICC color space %v", p.ColorSpace)
	}

	cs := &ColorSpace{
		N:       p.ColorSpace.NumComponents(),
		profile: profile,
		ranges:  ranges,
	}
	if existing := FindColorSpace(d, cs); existing != nil {
		return existing, nil
	}

	if d.Version() >= pdf.V1_3 {
		dict := pdf.Dict{
			"N": pdf.Integer(cs.N),
		}
		if p.ColorSpace == icc.CIELabSpace {
			dict["Range"] = numbers(ranges...)
		}
		cs.stm = d.NewStream(dict)
		_, err = cs.stm.Write(profile)
		if err != nil {
			return nil, err
		}
		d.Register(cs.stm)
	} else if err := d.Warn("ICC-based color spaces require PDF 1.3, using device color space",
		"replacement", cs.device()); err != nil {
		return nil, err
	}

	d.Register(cs)
	return cs, nil
}

// device returns the device color space with the same number of
// components.
func (cs *ColorSpace) device() pdf.Name {
	switch cs.N {
	case 1:
		return "DeviceGray"
	case 4:
		return "DeviceCMYK"
	default:
		return "DeviceRGB"
	}
}

// PDF implements the [pdf.Object] interface.
func (cs *ColorSpace) PDF(w io.Writer) error {
	if cs.stm == nil {
		return cs.device().PDF(w)
	}
	return pdf.Array{pdf.Name("ICCBased"), cs.stm}.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (cs *ColorSpace) Category() pdf.Category { return pdf.CategoryColorSpace }

// Equivalent implements the [pdf.Shareable] interface.
func (cs *ColorSpace) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*ColorSpace)
	return ok && bytes.Equal(cs.profile, o.profile)
}

// FindColorSpace returns a color space which is equivalent to candidate,
// or nil.
func FindColorSpace(d *pdf.Document, candidate *ColorSpace) *ColorSpace {
	cs, _ := d.Find(candidate).(*ColorSpace)
	return cs
}
