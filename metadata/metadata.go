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

// Package metadata creates the XMP metadata stream of a document.
package metadata

import (
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 14.3

// Stream represents an XMP metadata stream.
type Stream struct {
	Data *xmp.Packet
}

// FromInfo creates a metadata packet which repeats the entries of the
// document information dictionary.  The title and subject are tagged
// with the given language.
func FromInfo(info *pdf.Info, lang language.Tag) (*Stream, error) {
	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(language.MustParse("x-default"), info.Title)
		if lang != language.Und {
			dc.Title.Set(lang, info.Title)
		}
	}
	if info.Subject != "" {
		dc.Description.Set(language.MustParse("x-default"), info.Subject)
	}
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}

	basic := &xmp.Basic{}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		basic.ModifyDate = xmp.NewDate(info.ModDate)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic)
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Embed writes the metadata stream to d and attaches it to the document
// catalog.  Metadata streams require PDF 1.4; for older versions the
// stream is omitted after a warning.
func (s *Stream) Embed(d *pdf.Document) (*pdf.Stream, error) {
	if d.Version() < pdf.V1_4 {
		return nil, d.Warn("XMP metadata requires PDF 1.4, metadata omitted")
	}

	// Metadata streams are left uncompressed so that they can be found
	// by tools which do not parse PDF.
	stm := pdf.NewStream(pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	})
	err := s.Data.Write(stm, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return nil, err
	}
	d.Register(stm)
	d.Catalog().Metadata = stm
	return stm, nil
}
