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

package pdf

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding/unicode"
)

// TextString represents a human-readable text string, as used in the
// document information dictionary, in outlines and in annotations.
// Strings which can be represented in PDFDocEncoding are written as such,
// all other strings are written as UTF-16 with a byte order mark.
type TextString string

// PDF implements the [Object] interface.
func (s TextString) PDF(w io.Writer) error {
	return String(s.Encode()).PDF(w)
}

// Encode returns the binary representation of the text string.
func (s TextString) Encode() []byte {
	if buf, ok := pdfDocEncode(string(s)); ok {
		return buf
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	buf, err := enc.Bytes([]byte(s))
	if err != nil {
		// invalid UTF-8 is replaced by U+FFFD, so this cannot happen
		panic(err)
	}
	return buf
}

// pdfDocEncode encodes s using PDFDocEncoding.  The second return value
// indicates whether all characters could be represented.
//
// Only the characters where PDFDocEncoding agrees with ISO 8859-1 are
// considered.
func pdfDocEncode(s string) ([]byte, bool) {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r < 0x7F:
		case r >= 0xA1 && r <= 0xFF && r != 0xAD:
		default:
			return nil, false
		}
		buf = append(buf, byte(r))
	}
	return buf, true
}

// Date represents a date as a PDF string of the form
// D:YYYYMMDDHHmmSSOHH'mm.
type Date time.Time

// PDF implements the [Object] interface.
func (d Date) PDF(w io.Writer) error {
	return String(d.format()).PDF(w)
}

func (d Date) format() string {
	t := time.Time(d)
	s := t.Format("D:20060102150405")
	_, offset := t.Zone()
	if offset == 0 {
		return s + "Z"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%s%c%02d'%02d", s, sign, offset/3600, (offset/60)%60)
}
