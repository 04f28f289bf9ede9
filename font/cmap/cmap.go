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

// Package cmap writes the CMap files embedded in PDF files for composite
// fonts, and the ToUnicode CMaps used for text extraction.
package cmap

import (
	"fmt"
	"io"
	"text/template"

	"seehuhn.de/go/postscript"
)

// CIDSystemInfo identifies a character collection.
type CIDSystemInfo struct {
	Registry   string
	Ordering   string
	Supplement int
}

// Identity is the character collection used for fonts where CID values
// are glyph selectors.
var Identity = CIDSystemInfo{Registry: "Adobe", Ordering: "Identity", Supplement: 0}

func (ros CIDSystemInfo) String() string {
	return fmt.Sprintf("%s-%s-%d", ros.Registry, ros.Ordering, ros.Supplement)
}

// Range maps the two-byte codes First, ..., Last to consecutive CID
// values, starting at Value.
type Range struct {
	First, Last uint16
	Value       uint16
}

// CMap describes a CMap for a composite font with two-byte codes.
//
// All codes from 0x0000 to 0xFFFF are mapped to the CID with the same
// value.  The optional Ranges override this mapping.
type CMap struct {
	Name    string
	ROS     CIDSystemInfo
	WMode   int
	Version float64

	Ranges []Range
}

// NewIdentity returns the Identity-H (wMode 0) or Identity-V (wMode 1)
// CMap.
func NewIdentity(wMode int) *CMap {
	name := "Identity-H"
	if wMode == 1 {
		name = "Identity-V"
	}
	return &CMap{Name: name, ROS: Identity, WMode: wMode, Version: 1}
}

// Write writes the CMap in PostScript CMap file format.
func (c *CMap) Write(w io.Writer) error {
	return cmapTmpl.Execute(w, c)
}

const chunkSize = 100

// chunks splits x into groups of at most 100 entries, the maximum number
// of entries allowed in a single begin...end block.
func chunks[T any](x []T) [][]T {
	var res [][]T
	for len(x) > chunkSize {
		res = append(res, x[:chunkSize])
		x = x[chunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

var funcs = template.FuncMap{
	"PS": func(s string) string {
		x := postscript.String(s)
		return x.PS()
	},
	"PN": func(s string) string {
		x := postscript.Name(s)
		return x.PS()
	},
	"RangeChunks": chunks[Range],
	"Range": func(r Range) string {
		return fmt.Sprintf("<%04x> <%04x> %d", r.First, r.Last, r.Value)
	},
}

var cmapTmpl = template.Must(template.New("cmap").Funcs(funcs).Parse(`%!PS-Adobe-3.0 Resource-CMap
%%DocumentNeededResources: ProcSet (CIDInit)
%%IncludeResource: ProcSet (CIDInit)
%%BeginResource: CMap {{PS .Name}}
%%Title: {{printf "%s %s %s %d" .Name .ROS.Registry .ROS.Ordering .ROS.Supplement | PS}}
%%Version: {{printf "%.3f" .Version}}
%%EndComments

/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo 3 dict dup begin
/Registry {{PS .ROS.Registry}} def
/Ordering {{PS .ROS.Ordering}} def
/Supplement {{.ROS.Supplement}} def
end def
/CMapName {{PN .Name}} def
/CMapVersion {{printf "%.3f" .Version}} def
/CMapType 1 def
/WMode {{.WMode}} def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 begincidrange
<0000> <FFFF> 0
endcidrange
{{range RangeChunks .Ranges -}}
{{len .}} begincidrange
{{range . -}}
{{Range .}}
{{end -}}
endcidrange
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
%%EndResource
%%EOF
`))
