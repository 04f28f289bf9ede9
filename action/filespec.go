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

package action

import (
	"io"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 7.11.3

// FileSpec is a file specification dictionary.
type FileSpec struct {
	pdf.ObjectBase

	// Name is the file name, using "/" as the path separator.
	Name string
}

// NewFileSpec returns a shared file specification for name.
func NewFileSpec(d *pdf.Document, name string) *FileSpec {
	return pdf.Share(d, &FileSpec{Name: name})
}

// PDF implements the [pdf.Object] interface.
//
// The UF entry, which allows non-ASCII file names, is only written for
// PDF 1.7 and newer.
func (f *FileSpec) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type": pdf.Name("Filespec"),
		"F":    pdf.String(f.Name),
	}
	if d := f.Document(); d != nil && d.Version() >= pdf.V1_7 {
		dict["UF"] = pdf.TextString(f.Name)
	}
	return dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (f *FileSpec) Category() pdf.Category { return pdf.CategoryFileSpec }

// Equivalent implements the [pdf.Shareable] interface.
func (f *FileSpec) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*FileSpec)
	return ok && o.Name == f.Name
}

// FindFileSpec returns a file specification which is equivalent to
// candidate, or nil.
func FindFileSpec(d *pdf.Document, candidate *FileSpec) *FileSpec {
	f, _ := d.Find(candidate).(*FileSpec)
	return f
}
