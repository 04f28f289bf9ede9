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

package cmap

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode/utf16"

	"golang.org/x/exp/slices"
)

// ToUnicode maps character codes to the text they represent.
type ToUnicode struct {
	// CodeBytes is the number of bytes per code, 1 for simple fonts and
	// 2 for composite fonts.
	CodeBytes int

	Singles []Single
	Ranges  []TextRange
}

// Single maps one code to a text string.
type Single struct {
	Code uint16
	Text string
}

// TextRange maps the codes First, ..., Last to consecutive characters,
// starting at Start.
type TextRange struct {
	First, Last uint16
	Start       rune
}

// NewToUnicode builds a ToUnicode CMap from the given code to text map.
// Runs of consecutive codes which map to consecutive single characters
// from the Basic Multilingual Plane are combined into ranges.  Ranges
// never cross a boundary where the last byte of the code or of the text
// wraps around.
func NewToUnicode(codeBytes int, m map[uint16]string) *ToUnicode {
	codes := make([]uint16, 0, len(m))
	for code, text := range m {
		if text != "" {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)

	res := &ToUnicode{CodeBytes: codeBytes}
	i := 0
	for i < len(codes) {
		first := codes[i]
		start, ok := singleRune(m[first])
		j := i + 1
		if ok && start <= 0xFFFF {
			for j < len(codes) {
				code := codes[j]
				r, ok := singleRune(m[code])
				if !ok || code != first+uint16(j-i) || r != start+rune(j-i) || code&0xFF == 0 || r&0xFF == 0 {
					break
				}
				j++
			}
		}
		if j-i > 1 {
			res.Ranges = append(res.Ranges, TextRange{First: first, Last: codes[j-1], Start: start})
		} else {
			res.Singles = append(res.Singles, Single{Code: first, Text: m[first]})
		}
		i = j
	}
	return res
}

func singleRune(s string) (rune, bool) {
	rr := []rune(s)
	if len(rr) != 1 {
		return 0, false
	}
	return rr[0], true
}

// Lookup returns the text for a code.
func (tu *ToUnicode) Lookup(code uint16) (string, bool) {
	for _, s := range tu.Singles {
		if s.Code == code {
			return s.Text, true
		}
	}
	for _, r := range tu.Ranges {
		if r.First <= code && code <= r.Last {
			return string(r.Start + rune(code-r.First)), true
		}
	}
	return "", false
}

// Write writes the CMap in PostScript CMap file format.
func (tu *ToUnicode) Write(w io.Writer) error {
	return toUnicodeTmpl.Execute(w, tu)
}

func (tu *ToUnicode) code(c uint16) string {
	if tu.CodeBytes == 1 {
		return fmt.Sprintf("<%02x>", c)
	}
	return fmt.Sprintf("<%04x>", c)
}

// hexString encodes a text string as UTF-16BE in hex notation.
func hexString(s string) string {
	var b strings.Builder
	b.WriteByte('<')
	for _, x := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04x", x)
	}
	b.WriteByte('>')
	return b.String()
}

var toUnicodeTmpl = template.Must(template.New("tounicode").Funcs(template.FuncMap{
	"SingleChunks": chunks[Single],
	"RangeChunks":  chunks[TextRange],
	"CodeSpace": func(tu *ToUnicode) string {
		if tu.CodeBytes == 1 {
			return "<00> <ff>"
		}
		return "<0000> <ffff>"
	},
	"Single": func(tu *ToUnicode, s Single) string {
		return tu.code(s.Code) + " " + hexString(s.Text)
	},
	"Range": func(tu *ToUnicode, r TextRange) string {
		return tu.code(r.First) + " " + tu.code(r.Last) + " " + hexString(string(r.Start))
	},
}).Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo <<
/Registry (Adobe)
/Ordering (UCS)
/Supplement 0
>> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
{{CodeSpace .}}
endcodespacerange
{{$tu := . -}}
{{range SingleChunks .Singles -}}
{{len .}} beginbfchar
{{range . -}}
{{Single $tu .}}
{{end -}}
endbfchar
{{end -}}
{{range RangeChunks .Ranges -}}
{{len .}} beginbfrange
{{range . -}}
{{Range $tu .}}
{{end -}}
endbfrange
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
