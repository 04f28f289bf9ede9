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
	"math"

	"seehuhn.de/go/sfnt"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/cmap"
)

// Font descriptor flags, see section 9.8.2 of ISO 32000-2:2020.
const (
	flagFixedPitch  = 1 << 0
	flagSerif       = 1 << 1
	flagSymbolic    = 1 << 2
	flagScript      = 1 << 3
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
	flagForceBold   = 1 << 18
)

func descriptor(name string, m *font.Metrics, symbolic bool) pdf.Dict {
	var flags int
	if m.IsFixedPitch {
		flags |= flagFixedPitch
	}
	if m.IsSerif {
		flags |= flagSerif
	}
	if symbolic || m.IsSymbolic {
		flags |= flagSymbolic
	} else {
		flags |= flagNonsymbolic
	}
	if m.IsScript {
		flags |= flagScript
	}
	if m.IsItalic {
		flags |= flagItalic
	}
	if m.IsBold {
		flags |= flagForceBold
	}

	round := func(x float64) pdf.Object {
		return pdf.Number(math.Round(x))
	}
	fd := pdf.Dict{
		"Type":     pdf.Name("FontDescriptor"),
		"FontName": pdf.Name(name),
		"Flags":    pdf.Integer(flags),
		"FontBBox": pdf.Array{
			round(m.BBox.LLx), round(m.BBox.LLy),
			round(m.BBox.URx), round(m.BBox.URy),
		},
		"ItalicAngle": pdf.Number(m.ItalicAngle),
		"Ascent":      round(m.Ascender),
		"Descent":     round(m.Descender),
		"CapHeight":   round(m.CapHeight),
		"StemV":       round(m.StemV),
	}
	if m.XHeight != 0 {
		fd["XHeight"] = round(m.XHeight)
	}
	return fd
}

// fontFile writes the font program of an OpenType or TrueType font to a
// new stream, and returns the stream together with the font descriptor
// key for the stream.
func fontFile(d *pdf.Document, info *sfnt.Font) (*pdf.Stream, pdf.Name, error) {
	if info.IsCFF() {
		if d.Version() < pdf.V1_6 {
			err := d.Warn("OpenType font files require PDF 1.6, font not embedded",
				"font", info.PostScriptName())
			return nil, "", err
		}
		stm := d.NewStream(pdf.Dict{"Subtype": pdf.Name("OpenType")})
		err := info.WriteOpenTypeCFFPDF(stm)
		if err != nil {
			return nil, "", err
		}
		d.Register(stm)
		return stm, "FontFile3", nil
	}

	stm := d.NewStream(nil)
	n, err := info.WriteTrueTypePDF(stm)
	if err != nil {
		return nil, "", err
	}
	stm.Dict["Length1"] = pdf.Integer(n)
	d.Register(stm)
	return stm, "FontFile2", nil
}

func rosDict(ros cmap.CIDSystemInfo) pdf.Dict {
	return pdf.Dict{
		"Registry":   pdf.TextString(ros.Registry),
		"Ordering":   pdf.TextString(ros.Ordering),
		"Supplement": pdf.Integer(ros.Supplement),
	}
}

// toUnicode creates a ToUnicode CMap stream.
func toUnicode(d *pdf.Document, codeBytes int, text map[uint16]string) (*pdf.Stream, error) {
	tu := cmap.NewToUnicode(codeBytes, text)
	stm := d.NewStream(nil)
	err := tu.Write(stm)
	if err != nil {
		return nil, err
	}
	d.Register(stm)
	return stm, nil
}

var standard14 = map[string]bool{
	"Courier":               true,
	"Courier-Bold":          true,
	"Courier-BoldOblique":   true,
	"Courier-Oblique":       true,
	"Helvetica":             true,
	"Helvetica-Bold":        true,
	"Helvetica-BoldOblique": true,
	"Helvetica-Oblique":     true,
	"Symbol":                true,
	"Times-Bold":            true,
	"Times-BoldItalic":      true,
	"Times-Italic":          true,
	"Times-Roman":           true,
	"ZapfDingbats":          true,
}
