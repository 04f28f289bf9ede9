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

package pagetree

import (
	"errors"
	"io"

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/action"
)

// Page is a page of the document.
type Page struct {
	pdf.ObjectBase

	// MediaBox, if set, overrides the page size of the tree.
	MediaBox *rect.Rect

	tree     *Tree
	index    int
	content  *pdf.Stream
	annots   pdf.Array
	finished bool
}

// Index returns the position of the page within the document.
func (p *Page) Index() int {
	return p.index
}

// Content returns the content stream of the page.  Content stream
// operators can be written directly to the stream, see also
// [Page.ShowText].
func (p *Page) Content() *pdf.Stream {
	return p.content
}

// AddLink places a link annotation on the page.
func (p *Page) AddLink(l *action.Link) {
	p.annots = append(p.annots, l)
}

// Resolve points t to the given position on this page.
func (p *Page) Resolve(t *action.Target, left, top float64) {
	t.Resolve(p, left, top)
}

// Finish queues the page and its content stream for output.  No more
// content can be added after Finish has been called.
func (p *Page) Finish() error {
	if p.finished {
		return errors.New("page already finished")
	}
	p.finished = true

	d := p.Document()
	d.Register(p.content)
	d.Add(p)
	return nil
}

// PDF implements the [pdf.Object] interface.
func (p *Page) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type":     pdf.Name("Page"),
		"Parent":   p.tree,
		"Contents": p.content,
	}
	if p.MediaBox != nil {
		dict["MediaBox"] = rectArray(*p.MediaBox)
	}
	if len(p.annots) > 0 {
		dict["Annots"] = p.annots
	}
	return dict.PDF(w)
}
