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

package embed

import (
	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font/cid"
	"seehuhn.de/go/pdfgen/font/cmap"
	"seehuhn.de/go/pdfgen/font/widths"
)

// composite returns the Type0 font dictionary for f.  The subset of f is
// frozen by this call.
func (r *Registry) composite(d *pdf.Document, f *cid.Font) (pdf.Dict, error) {
	info := f.SFNT()
	glyphs := f.Freeze()

	// Selectors become the glyph IDs of the subset, so that
	// CIDToGIDMap /Identity and the Identity-H CMap can be used.
	clone := info.Clone()
	clone.CMapTable = nil
	clone.Gdef = nil
	clone.Gsub = nil
	clone.Gpos = nil
	sub := clone.Subset(glyphs)

	baseFont := pdf.Name(r.SubsetTag() + "+" + info.PostScriptName())
	enc := cmap.NewIdentity(0)
	ros := rosDict(enc.ROS)

	fd := descriptor(string(baseFont), f.Metrics(), true)
	if f.IsEmbeddable() {
		stm, key, err := fontFile(d, sub)
		if err != nil {
			return nil, err
		}
		if stm != nil {
			fd[key] = stm
		}
	}
	if cidSet := f.CIDSet(); len(cidSet) > 0 {
		stm := d.NewStream(nil)
		_, err := stm.Write(cidSet)
		if err != nil {
			return nil, err
		}
		d.Register(stm)
		fd["CIDSet"] = stm
	}
	fdObj := pdf.NewDictObject(fd)
	d.Register(fdObj)

	ww := widths.Selectors(f.Widths())
	dw := widths.DefaultWidth(ww)
	cidFont := pdf.Dict{
		"Type":           pdf.Name("Font"),
		"BaseFont":       baseFont,
		"CIDSystemInfo":  ros,
		"FontDescriptor": fdObj,
		"DW":             pdf.Number(dw),
	}
	if w := widths.EncodeComposite(ww, dw); len(w) > 0 {
		cidFont["W"] = w
	}
	type0Name := baseFont
	if info.IsCFF() {
		cidFont["Subtype"] = pdf.Name("CIDFontType0")
		type0Name = pdf.Name(string(baseFont) + "-" + enc.Name)
	} else {
		cidFont["Subtype"] = pdf.Name("CIDFontType2")
		cidFont["CIDToGIDMap"] = pdf.Name("Identity")
	}
	cidFontObj := pdf.NewDictObject(cidFont)
	d.Register(cidFontObj)

	cmapStm := d.NewStream(pdf.Dict{
		"Type":          pdf.Name("CMap"),
		"CMapName":      pdf.Name(enc.Name),
		"CIDSystemInfo": ros,
		"WMode":         pdf.Integer(enc.WMode),
	})
	err := enc.Write(cmapStm)
	if err != nil {
		return nil, err
	}
	d.Register(cmapStm)

	dict := pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        type0Name,
		"Encoding":        cmapStm,
		"DescendantFonts": pdf.Array{cidFontObj},
	}
	if text := f.Text(); len(text) > 0 {
		tu, err := toUnicode(d, 2, text)
		if err != nil {
			return nil, err
		}
		dict["ToUnicode"] = tu
	}
	return dict, nil
}
