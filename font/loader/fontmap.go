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

package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/pdfgen/font"
)

// ReadFontMap reads font configuration entries from r.  A font map
// consists of lines of the form
//
//	<mode> <metrics-url> <embed-url> <triplets>
//
// where <mode> is "auto", "single-byte" or "cid", optionally followed by
// "+kern" to enable kerning.  An <embed-url> of "-" means that the font
// is not embedded.  <triplets> is the rest of the line and consists of
// one or more triplets "family,style,weight", separated by semicolons.
// The first three fields must be separated by single spaces.  Lines
// starting with '#' or '%' are ignored.
func ReadFontMap(r io.Reader) ([]EmbedFontInfo, error) {
	var res []EmbedFontInfo
	lines := bufio.NewScanner(r)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		line := strings.TrimSpace(lines.Text())
		if len(line) == 0 || line[0] == '#' || line[0] == '%' {
			continue
		}

		parts := strings.SplitN(line, " ", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("font map line %d: invalid line %q", lineNo, line)
		}

		var e EmbedFontInfo
		mode, kern := strings.CutSuffix(parts[0], "+kern")
		var err error
		e.EncodingMode, err = ParseEncodingMode(mode)
		if err != nil {
			return nil, fmt.Errorf("font map line %d: %w", lineNo, err)
		}
		e.Kerning = kern
		e.MetricsURL = parts[1]
		if parts[2] != "-" {
			e.EmbedURL = parts[2]
		}
		for _, s := range strings.Split(parts[3], ";") {
			t, err := font.ParseTriplet(s)
			if err != nil {
				return nil, fmt.Errorf("font map line %d: %w", lineNo, err)
			}
			e.Triplets = append(e.Triplets, t)
		}
		res = append(res, e)
	}
	return res, lines.Err()
}
