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

package widths

import pdf "seehuhn.de/go/pdfgen"

// Info contains the FirstChar, LastChar and Widths entries of
// a PDF font dictionary, as well as the MissingWidth entry of the
// FontDescriptor dictionary.
type Info struct {
	FirstChar    pdf.Integer
	LastChar     pdf.Integer
	Widths       pdf.Array
	MissingWidth float64
}

// EncodeSimple encodes the glyph width information for a simple PDF font.
// The slice ww must have length 256 and is indexed by character code.
// Runs of equal widths at either end of the code range are replaced by
// the MissingWidth entry, if this makes the output shorter.
func EncodeSimple(ww []float64) *Info {
	cand := map[float64]bool{ww[0]: true, ww[255]: true}
	bestGain := 0
	firstChar := 0
	lastChar := 255
	var missingWidth float64
	for w := range cand {
		b := 255
		for b > 0 && ww[b] == w {
			b--
		}
		a := 0
		for a < b && ww[a] == w {
			a++
		}
		gain := (255 - b + a) * 4
		if w != 0 {
			gain -= 15
		}
		if gain > bestGain || gain == bestGain && gain > 0 && w < missingWidth {
			bestGain = gain
			firstChar = a
			lastChar = b
			missingWidth = w
		}
	}

	widths := make(pdf.Array, lastChar-firstChar+1)
	for i := range widths {
		widths[i] = pdf.Number(ww[firstChar+i])
	}

	return &Info{
		FirstChar:    pdf.Integer(firstChar),
		LastChar:     pdf.Integer(lastChar),
		Widths:       widths,
		MissingWidth: missingWidth,
	}
}

// Dict returns the entries for the font dictionary.
func (info *Info) Dict() pdf.Dict {
	return pdf.Dict{
		"FirstChar": info.FirstChar,
		"LastChar":  info.LastChar,
		"Widths":    info.Widths,
	}
}
