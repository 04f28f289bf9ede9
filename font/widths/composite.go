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

// Package widths encodes glyph widths for PDF font dictionaries.
package widths

import (
	"math"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/dag"

	pdf "seehuhn.de/go/pdfgen"
)

// EncodeComposite constructs the W entry for a CIDFont dictionary.
// The map widths gives the glyph width for every CID in use.  CIDs with
// the default width dw are omitted.
//
// The encoding is chosen to minimise the length of the resulting array.
func EncodeComposite(widths map[uint16]float64, dw float64) pdf.Array {
	ww := make([]cidWidth, 0, len(widths))
	for cid, w := range widths {
		ww = append(ww, cidWidth{cid, w})
	}
	slices.SortFunc(ww, func(a, b cidWidth) int {
		return int(a.CID) - int(b.CID)
	})

	g := wwGraph{ww, dw}
	ee, err := dag.ShortestPath(g, len(ww))
	if err != nil {
		panic(err) // unreachable: there is always a path
	}

	var res pdf.Array
	pos := 0
	for _, e := range ee {
		switch {
		case e > 0:
			res = append(res,
				pdf.Integer(ww[pos].CID),
				pdf.Integer(ww[pos+int(e)-1].CID),
				pdf.Number(ww[pos].GlyphWidth))
		case e < 0:
			var wi pdf.Array
			for i := pos; i < pos+int(-e); i++ {
				wi = append(wi, pdf.Number(ww[i].GlyphWidth))
			}
			res = append(res, pdf.Integer(ww[pos].CID), wi)
		}
		pos = g.To(pos, e)
	}
	return res
}

// Selectors converts a list of widths, indexed by CID, into the map
// used by [EncodeComposite].
func Selectors(ww []float64) map[uint16]float64 {
	res := make(map[uint16]float64, len(ww))
	for cid, w := range ww {
		res[uint16(cid)] = w
	}
	return res
}

// DefaultWidth returns the most frequent width, which is the best choice
// for the DW entry of a CIDFont dictionary.  Ties are broken in favour of
// the smaller width.
func DefaultWidth(widths map[uint16]float64) float64 {
	hist := make(map[float64]int)
	for _, w := range widths {
		hist[w]++
	}

	bestCount := 0
	bestVal := 0.0
	for w, count := range hist {
		if count > bestCount || (count == bestCount && w < bestVal) {
			bestCount = count
			bestVal = w
		}
	}
	return bestVal
}

type cidWidth struct {
	CID        uint16
	GlyphWidth float64
}

type wwGraph struct {
	ww []cidWidth
	dw float64
}

// An Edge encodes how the next CID width is encoded.
// The edge values have the following meaning:
//
//	e=0: the width of the next CID is the default width, so no entry is needed
//	e>0: the next e CIDs have the same width, encode as a range
//	e<0: the next -e entries have consecutive CIDs, encode as an array
type wwEdge int32

func (g wwGraph) AppendEdges(ee []wwEdge, v int) []wwEdge {
	ww := g.ww
	if math.Abs(ww[v].GlyphWidth-g.dw) < 0.01 {
		return append(ee, 0)
	}

	n := len(ww)

	// positive edges: sequences of CIDs with the same width
	i := v + 1
	for i < n && ww[i].GlyphWidth == ww[v].GlyphWidth {
		i++
	}
	if i > v+1 {
		ee = append(ee, wwEdge(i-v))
	}

	// negative edges: sequences of consecutive CIDs
	i = v
	for i < n && int(ww[i].CID)-int(ww[v].CID) == i-v {
		i++
		ee = append(ee, wwEdge(v-i))
	}

	return ee
}

func (g wwGraph) Length(v int, e wwEdge) int {
	// for simplicity we assume that all integers in the output have 3 digits
	switch {
	case e == 0:
		return 0
	case e > 0:
		// "%d %d %d\n"
		return 12
	default:
		// "%d [%d ... %d]\n"
		return 6 + 4*int(-e)
	}
}

func (g wwGraph) To(v int, e wwEdge) int {
	if e == 0 {
		return v + 1
	}
	step := int(e)
	if step < 0 {
		step = -step
	}
	return v + step
}
