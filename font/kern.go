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

package font

import (
	"math"
	"sync"

	"golang.org/x/text/language"
	"seehuhn.de/go/sfnt"
)

// Kerner computes kerning values for an OpenType or TrueType font, using
// the pair adjustments from the font's "GPOS" table.  Results are cached.
//
// A Kerner is safe for concurrent use.
type Kerner struct {
	info *sfnt.Font
	qh   float64

	mu       sync.Mutex
	layouter *sfnt.Layouter
	cache    map[[2]rune]float64
}

// NewKerner returns a Kerner for the given font, or nil if the font has
// no positioning information.
func NewKerner(info *sfnt.Font) *Kerner {
	if info == nil || info.Gpos == nil {
		return nil
	}
	layouter, err := info.NewLayouter(language.English, nil, nil)
	if err != nil {
		return nil
	}
	return &Kerner{
		info:     info,
		qh:       1000 * info.FontMatrix[0],
		layouter: layouter,
		cache:    make(map[[2]rune]float64),
	}
}

// Kerning returns the adjustment between two characters, in PDF glyph
// space units.  Characters which form a ligature are not kerned.
func (k *Kerner) Kerning(left, right rune) float64 {
	key := [2]rune{left, right}

	k.mu.Lock()
	defer k.mu.Unlock()
	if val, ok := k.cache[key]; ok {
		return val
	}

	var val float64
	buf := k.layouter.Layout(string(key[:]))
	if len(buf) == 2 {
		val = math.Round(float64(buf[0].Advance)*k.qh - k.info.GlyphWidthPDF(buf[0].GID))
	}
	k.cache[key] = val
	return val
}
