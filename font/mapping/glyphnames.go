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

package mapping

import (
	"sync"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/postscript/type1/names"
)

// nameAlternatives lists groups of glyph names which denote the same
// shape.  Fonts often only contain one member of each group.  The groups
// are compared by character, so any spelling which [names.ToUnicode]
// understands can be used.
var nameAlternatives = [][]string{
	{"space", "nbspace", "uni00A0", "nonbreakingspace"},
	{"hyphen", "sfthyphen", "uni00AD", "softhyphen", "hyphentwo", "uni2010", "uni2011"},
	{"minus", "uni2212", "hyphen"},
	{"Omega", "uni2126", "Ohm", "uni03A9"},
	{"mu", "uni00B5", "mu1", "uni03BC"},
	{"Delta", "uni2206", "increment", "uni0394"},
	{"periodcentered", "uni00B7", "middot", "uni2219", "bulletoperator"},
	{"fraction", "uni2044", "uni2215", "divisionslash"},
	{"Tcommaaccent", "uni0162", "Tcedilla", "uni021A"},
	{"tcommaaccent", "uni0163", "tcedilla", "uni021B"},
	{"Scommaaccent", "uni0218", "Scedilla", "uni015E"},
	{"scommaaccent", "uni0219", "scedilla", "uni015F"},
	{"quoteright", "uni2019", "afii57929", "uni02BC"},
	{"quoteleft", "uni2018", "uni02BB"},
	{"dotlessi", "uni0131"},
	{"ellipsis", "uni2026"},
	{"bullet", "uni2022", "uni25CF"},
	{"endash", "uni2013", "figuredash", "uni2012"},
	{"emdash", "uni2014", "uni2015", "horizontalbar"},
}

var (
	alternativesOnce sync.Once
	alternativeIndex map[rune][]rune
)

func buildAlternatives() {
	idx := make(map[rune][]rune)
	for _, group := range nameAlternatives {
		var rr []rune
		for _, name := range group {
			r := nameRune(name)
			if r != NotACharacter && !slices.Contains(rr, r) {
				rr = append(rr, r)
			}
		}
		for _, r := range rr {
			for _, alt := range rr {
				if alt != r && !slices.Contains(idx[r], alt) {
					idx[r] = append(idx[r], alt)
				}
			}
		}
	}
	alternativeIndex = idx
}

// alternativeChars returns the characters whose glyphs can be used in place
// of the glyph for r.
func alternativeChars(r rune) []rune {
	alternativesOnce.Do(buildAlternatives)
	return alternativeIndex[r]
}

// nameRune returns the character represented by a glyph name, or
// [NotACharacter] if the name does not denote a single character.
func nameRune(name string) rune {
	rr := []rune(Unicode(name))
	if len(rr) != 1 {
		return NotACharacter
	}
	return rr[0]
}

// glyphName returns the standard glyph name for r.
func glyphName(r rune) string {
	return fromUnicode(names.FromUnicode, r)
}

// GlyphName returns the standard glyph name for the character r,
// for example "A" for 'A' and "u03A9" for the Greek capital omega.
func GlyphName(r rune) string {
	return glyphName(r)
}

// Unicode returns the text represented by a glyph name.
func Unicode(name string) string {
	return toUnicode(names.ToUnicode, name)
}

// fromUnicode and toUnicode call the glyph name functions of the names
// package; they accept both the rune and string based function signatures.

func fromUnicode[T rune | string](f func(T) string, r rune) string {
	return f(T(r))
}

func toUnicode[A bool | string, R []rune | string](f func(string, A) R, name string) string {
	var flag A
	return string(f(name, flag))
}
