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

	"golang.org/x/text/encoding/charmap"
)

// FromCharmap builds a mapping from a single-byte character set.  Control
// characters and undefined codes are omitted.
func FromCharmap(name string, cm *charmap.Charmap) *CodePointMapping {
	var table []Pair
	for c := 0x20; c < 256; c++ {
		r := cm.DecodeByte(byte(c))
		if r == '�' || r < 0x20 || r >= 0x7F && r < 0xA0 {
			continue
		}
		table = append(table, Pair{Code: uint16(c), Unicode: r})
	}
	return New(name, table)
}

var (
	// WinAnsi returns the mapping for WinAnsiEncoding.
	WinAnsi = sync.OnceValue(func() *CodePointMapping {
		return FromCharmap("WinAnsiEncoding", charmap.Windows1252)
	})

	// MacRoman returns the mapping for MacRomanEncoding.
	MacRoman = sync.OnceValue(func() *CodePointMapping {
		return FromCharmap("MacRomanEncoding", charmap.Macintosh)
	})

	// ISO8859_15 returns the mapping for ISO 8859-15 (Latin-9).
	ISO8859_15 = sync.OnceValue(func() *CodePointMapping {
		return FromCharmap("ISO-8859-15", charmap.ISO8859_15)
	})
)

// ByName returns the predefined mapping with the given name.
func ByName(name string) (*CodePointMapping, bool) {
	switch name {
	case "WinAnsiEncoding":
		return WinAnsi(), true
	case "MacRomanEncoding":
		return MacRoman(), true
	case "ISO-8859-15":
		return ISO8859_15(), true
	}
	return nil, false
}

// IsStandard reports whether name can be used as the /Encoding of a
// simple PDF font without a /Differences array.
func IsStandard(name string) bool {
	return name == "WinAnsiEncoding" || name == "MacRomanEncoding"
}
