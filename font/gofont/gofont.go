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

// Package gofont provides access to the Go font family.
//
// The Go fonts form the default font set of a document, so that every
// font lookup finds at least one font.
package gofont

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/pdfgen/font"
)

// Font identifies individual fonts in the Go font family.
type Font int

// Constants for the available fonts in the Go font family.
const (
	Regular         Font = iota // Go Regular
	Bold                        // Go Semi Bold
	BoldItalic                  // Go Semi Bold Italic
	Italic                      // Go Italic
	Medium                      // Go Medium Regular
	MediumItalic                // Go Medium Italic
	Smallcaps                   // Go Smallcaps Regular
	SmallcapsItalic             // Go Smallcaps Italic
	Mono                        // Go Mono Regular
	MonoBold                    // Go Mono Semi Bold
	MonoBoldItalic              // Go Mono Semi Bold Italic
	MonoItalic                  // Go Mono Italic
)

// URLScheme is the scheme of font URLs which refer to the Go fonts,
// for example "gofont:mono-bold".
const URLScheme = "gofont"

type fontData struct {
	name   string
	family string
	style  string
	weight int
	ttf    []byte
}

var data = map[Font]fontData{
	Regular:         {"regular", "Go", font.StyleNormal, 400, goregular.TTF},
	Bold:            {"bold", "Go", font.StyleNormal, 700, gobold.TTF},
	BoldItalic:      {"bold-italic", "Go", font.StyleItalic, 700, gobolditalic.TTF},
	Italic:          {"italic", "Go", font.StyleItalic, 400, goitalic.TTF},
	Medium:          {"medium", "Go", font.StyleNormal, 500, gomedium.TTF},
	MediumItalic:    {"medium-italic", "Go", font.StyleItalic, 500, gomediumitalic.TTF},
	Smallcaps:       {"smallcaps", "Go Smallcaps", font.StyleNormal, 400, gosmallcaps.TTF},
	SmallcapsItalic: {"smallcaps-italic", "Go Smallcaps", font.StyleItalic, 400, gosmallcapsitalic.TTF},
	Mono:            {"mono", "Go Mono", font.StyleNormal, 400, gomono.TTF},
	MonoBold:        {"mono-bold", "Go Mono", font.StyleNormal, 700, gomonobold.TTF},
	MonoBoldItalic:  {"mono-bold-italic", "Go Mono", font.StyleItalic, 700, gomonobolditalic.TTF},
	MonoItalic:      {"mono-italic", "Go Mono", font.StyleItalic, 400, gomonoitalic.TTF},
}

// All contains all the Go font family fonts available in this package.
var All = []Font{
	Regular,
	Bold,
	BoldItalic,
	Italic,
	Medium,
	MediumItalic,
	Smallcaps,
	SmallcapsItalic,
	Mono,
	MonoBold,
	MonoBoldItalic,
	MonoItalic,
}

// DefaultPriority is the triplet priority of the default font set.
// Fonts registered with a lower priority value replace the Go fonts.
const DefaultPriority = 1000

func (f Font) String() string {
	d, ok := data[f]
	if !ok {
		return fmt.Sprintf("gofont.Font(%d)", int(f))
	}
	return d.name
}

// URL returns the font URL of f.
func (f Font) URL() string {
	return URLScheme + ":" + f.String()
}

// TTF returns the TrueType font file of f.
func (f Font) TTF() []byte {
	return data[f].ttf
}

// SFNT decodes the font file of f.
func (f Font) SFNT() (*sfnt.Font, error) {
	d, ok := data[f]
	if !ok {
		return nil, fmt.Errorf("gofont: unknown font %d", f)
	}
	info, err := sfnt.Read(bytes.NewReader(d.ttf))
	if err != nil {
		return nil, fmt.Errorf("gofont: %w", err)
	}
	return info, nil
}

// Triplets returns the triplets under which f is registered in the
// default font set.  The regular text fonts also serve the generic
// families "any", "sans-serif" and "serif", the mono-spaced fonts serve
// "monospace".
func (f Font) Triplets() []font.Triplet {
	d, ok := data[f]
	if !ok {
		return nil
	}
	families := []string{d.family}
	switch d.family {
	case "Go":
		families = append(families, font.AnyFamily, "sans-serif", "serif")
	case "Go Mono":
		families = append(families, "monospace")
	}
	res := make([]font.Triplet, len(families))
	for i, family := range families {
		res[i] = font.Triplet{
			Family:   family,
			Style:    d.style,
			Weight:   d.weight,
			Priority: DefaultPriority,
		}
	}
	return res
}

// ByName returns the font with the given name, as used in font URLs.
func ByName(name string) (Font, bool) {
	for f, d := range data {
		if d.name == name {
			return f, true
		}
	}
	return 0, false
}

// Gopher is the Unicode code point for the gopher symbol in the Go fonts.
const Gopher = '\uF800'
