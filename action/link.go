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

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 12.5.6.5

// Link is a link annotation.
type Link struct {
	pdf.ObjectBase

	// Rect is the active area of the link, in default user space.
	Rect rect.Rect

	// Action is performed when the link is activated.
	Action pdf.Object
}

// NewLink creates a link annotation for the area r.
//
// Links to unresolved targets are trailer objects: they are written after
// all pages, so that the target can be resolved in the meantime.  All
// other links are shared.
func NewLink(d *pdf.Document, r rect.Rect, a pdf.Object) *Link {
	l := &Link{Rect: r, Action: a}
	if g, ok := a.(*GoTo); ok && !g.Target.IsResolved() {
		d.RegisterTrailerObject(l)
		return l
	}
	return pdf.Share(d, l)
}

// PDF implements the [pdf.Object] interface.
//
// If the target of the link is still unresolved, the link is written
// without an action.  Under the strict policy, this is an error.
func (l *Link) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Link"),
		"Rect": pdf.Array{
			pdf.Number(l.Rect.LLx), pdf.Number(l.Rect.LLy),
			pdf.Number(l.Rect.URx), pdf.Number(l.Rect.URy),
		},
		"Border": pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)},
	}

	if g, ok := l.Action.(*GoTo); ok && !g.Target.IsResolved() {
		err := l.Document().Warn("link target was never resolved", "link", l.Reference())
		if err != nil {
			return err
		}
	} else if l.Action != nil {
		dict["A"] = l.Action
	}
	return dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (l *Link) Category() pdf.Category { return pdf.CategoryLink }

// Equivalent implements the [pdf.Shareable] interface.
func (l *Link) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*Link)
	return ok && l.Rect == o.Rect && pdf.Equal(l.Action, o.Action)
}

// FindLink returns a link which is equivalent to candidate, or nil.
func FindLink(d *pdf.Document, candidate *Link) *Link {
	l, _ := d.Find(candidate).(*Link)
	return l
}
