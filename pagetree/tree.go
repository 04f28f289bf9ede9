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

// Package pagetree implements the page tree of a document.
//
// The page tree has a fixed number of slots, one for every page.  Pages
// can be created in any order, but all slots must be filled before the
// document is closed.
package pagetree

import (
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfgen"
)

// ErrPageGap is returned when the page tree is written while some of its
// slots are empty.
var ErrPageGap = errors.New("missing page in page tree")

// Tree is the root node of the page tree.  It is a trailer object.
type Tree struct {
	pdf.ObjectBase

	// MediaBox is the default page size.
	MediaBox rect.Rect

	slots []*Page
}

// New creates the page tree for d, with room for numPages pages.  The tree
// becomes the /Pages entry of the document catalog.
func New(d *pdf.Document, numPages int, mediaBox rect.Rect) *Tree {
	t := &Tree{
		MediaBox: mediaBox,
		slots:    make([]*Page, numPages),
	}
	d.RegisterTrailerObject(t)
	d.Catalog().Pages = t
	return t
}

// NumPages returns the number of slots in the page tree.
func (t *Tree) NumPages() int {
	return len(t.slots)
}

// Grow adds n empty slots at the end of the tree.
func (t *Tree) Grow(n int) {
	t.slots = append(t.slots, make([]*Page, n)...)
}

// Page returns the page in slot i, or nil if the slot is empty.
func (t *Tree) Page(i int) *Page {
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	return t.slots[i]
}

// NewPage creates the page for slot i.  The page is assigned an object
// number immediately, so that it can be the target of links, but it is
// only written after [Page.Finish] has been called.
func (t *Tree) NewPage(i int) (*Page, error) {
	if i < 0 || i >= len(t.slots) {
		return nil, fmt.Errorf("page %d out of range [0, %d)", i, len(t.slots))
	}
	if t.slots[i] != nil {
		return nil, fmt.Errorf("page %d already exists", i)
	}

	d := t.Document()
	p := &Page{
		tree:    t,
		index:   i,
		content: d.NewStream(nil),
	}
	d.AssignNumber(p)
	t.slots[i] = p
	return p, nil
}

// PDF implements the [pdf.Object] interface.
func (t *Tree) PDF(w io.Writer) error {
	kids := make(pdf.Array, len(t.slots))
	for i, p := range t.slots {
		if p == nil {
			return fmt.Errorf("%w: slot %d is empty", ErrPageGap, i)
		}
		if !p.finished {
			return fmt.Errorf("page %d was never finished", i)
		}
		kids[i] = p
	}

	dict := pdf.Dict{
		"Type":     pdf.Name("Pages"),
		"Kids":     kids,
		"Count":    pdf.Integer(len(kids)),
		"MediaBox": rectArray(t.MediaBox),
	}
	if d := t.Document(); d != nil {
		dict["Resources"] = d.Resources()
	}
	return dict.PDF(w)
}

func rectArray(r rect.Rect) pdf.Array {
	return pdf.Array{
		pdf.Number(r.LLx), pdf.Number(r.LLy),
		pdf.Number(r.URx), pdf.Number(r.URy),
	}
}
