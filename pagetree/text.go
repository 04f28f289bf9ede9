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

package pagetree

import (
	"bufio"
	"fmt"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/embed"
)

// ShowText writes a text object which shows s at position (x, y), using
// the font registered under key.  Each run of [font.Encode] is shown using
// the font resource of its encoding page.  Kerning is applied within a run
// if the font has kerning information.
func (p *Page) ShowText(key string, f font.Typeface, size, x, y float64, s string) error {
	w := bufio.NewWriter(p.content)
	fmt.Fprintf(w, "BT\n%s %s Td\n", num(x), num(y))

	codeLen := 1
	if f.Kind() == font.MultiByteCID {
		codeLen = 2
	}
	kern := f.HasKerning()

	text := []rune(s)
	pos := 0
	for _, run := range font.Encode(f, s) {
		fmt.Fprintf(w, "%s %s Tf\n[<", pdf.Format(embed.ResourceName(key, run.Page)), num(size))
		for i := 0; i < len(run.Codes); i += codeLen {
			r := text[pos]
			if kern && i > 0 {
				if adjust := f.Kerning(text[pos-1], r); adjust != 0 {
					// TJ offsets are subtracted from the position
					fmt.Fprintf(w, "> %s <", num(-adjust))
				}
			}
			fmt.Fprintf(w, "%X", run.Codes[i:i+codeLen])
			pos++
		}
		w.WriteString(">] TJ\n")
	}
	w.WriteString("ET\n")
	return w.Flush()
}

func num(x float64) string {
	return pdf.Format(pdf.Number(x))
}
