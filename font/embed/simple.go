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
	"fmt"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/mapping"
	"seehuhn.de/go/pdfgen/font/single"
	"seehuhn.de/go/pdfgen/font/widths"
)

// simpleShared holds the objects which all encoding pages of a simple
// font have in common.
type simpleShared struct {
	subtype    pdf.Name
	baseFont   pdf.Name
	descriptor *pdf.DictObject // nil for the standard 14 fonts
	builtin    bool
	trueType   bool
}

func newSimpleShared(d *pdf.Document, f font.Paged) (*simpleShared, error) {
	name := f.FontName()
	s := &simpleShared{
		subtype:  "Type1",
		baseFont: pdf.Name(name),
	}

	sf, _ := f.(*single.Font)
	if sf != nil {
		s.builtin = sf.HasBuiltinEncoding()
	}
	if sf != nil && sf.SFNT() != nil {
		info := sf.SFNT()
		if !info.IsCFF() {
			s.subtype = "TrueType"
			s.trueType = true
		}

		fd := descriptor(name, f.Metrics(), s.builtin)
		if f.IsEmbeddable() {
			// The glyphs of a single-byte font are addressed through the
			// font's own cmap table, so the font is embedded in full.
			stm, key, err := fontFile(d, info)
			if err != nil {
				return nil, err
			}
			if stm != nil {
				fd[key] = stm
			}
		}
		s.descriptor = pdf.NewDictObject(fd)
		d.Register(s.descriptor)
		return s, nil
	}

	if standard14[name] {
		return s, nil
	}
	s.descriptor = pdf.NewDictObject(descriptor(name, f.Metrics(), s.builtin))
	d.Register(s.descriptor)
	return s, nil
}

// simple returns the font dictionary for encoding page p of f.
func simple(d *pdf.Document, f font.Paged, p int, shared *simpleShared) (pdf.Dict, error) {
	enc := f.PageEncoding(p)
	if enc == nil {
		return nil, fmt.Errorf("encoding page %d not in use", p)
	}
	codes := enc.Codes()

	ww := make([]float64, 256)
	for _, c := range codes {
		ww[c] = f.Width(uint16(p)<<8 | c)
	}
	wi := widths.EncodeSimple(ww)
	if wi.MissingWidth != 0 {
		if p == 0 && shared.descriptor != nil {
			shared.descriptor.Dict["MissingWidth"] = pdf.Number(wi.MissingWidth)
		} else {
			wi = fullWidths(ww)
		}
	}

	dict := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  shared.subtype,
		"BaseFont": shared.baseFont,
	}
	for key, val := range wi.Dict() {
		dict[key] = val
	}
	if shared.descriptor != nil {
		dict["FontDescriptor"] = shared.descriptor
	}

	standard := p == 0 && mapping.IsStandard(enc.Name())
	switch {
	case p == 0 && shared.builtin:
		// use the font's built-in encoding
	case standard:
		dict["Encoding"] = pdf.Name(enc.Name())
	default:
		dict["Encoding"] = pdf.Dict{
			"Type":        pdf.Name("Encoding"),
			"Differences": differences(f, p, enc, codes, shared.trueType),
		}
	}

	if !standard {
		text := make(map[uint16]string, len(codes))
		for _, c := range codes {
			r := enc.UnicodeForIndex(c)
			if r == mapping.NotACharacter || shared.builtin && p == 0 && r >= 0xF000 && r <= 0xF0FF {
				continue
			}
			text[c] = string(r)
		}
		if len(text) > 0 {
			tu, err := toUnicode(d, 1, text)
			if err != nil {
				return nil, err
			}
			dict["ToUnicode"] = tu
		}
	}
	return dict, nil
}

// differences constructs the Differences array of an encoding dictionary.
// TrueType fonts use the standard glyph name of each character, so that
// viewers can locate the glyph through the font's Unicode cmap.
func differences(f font.Paged, p int, enc *mapping.CodePointMapping, codes []uint16, trueType bool) pdf.Array {
	sf, _ := f.(*single.Font)

	var res pdf.Array
	next := -1
	for _, c := range codes {
		var name string
		switch {
		case trueType:
			name = mapping.GlyphName(enc.UnicodeForIndex(c))
		case sf != nil:
			name = sf.GlyphName(uint16(p)<<8 | c)
		default:
			name = enc.GlyphName(c)
		}
		if int(c) != next {
			res = append(res, pdf.Integer(c))
		}
		res = append(res, pdf.Name(name))
		next = int(c) + 1
	}
	return res
}

func fullWidths(ww []float64) *widths.Info {
	first, last := 0, 255
	for first < last && ww[first] == 0 {
		first++
	}
	for last > first && ww[last] == 0 {
		last--
	}
	res := &widths.Info{
		FirstChar: pdf.Integer(first),
		LastChar:  pdf.Integer(last),
		Widths:    make(pdf.Array, last-first+1),
	}
	for i := range res.Widths {
		res.Widths[i] = pdf.Number(ww[first+i])
	}
	return res
}
