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

// Package outline implements the document outline ("bookmarks").
package outline

import (
	"errors"
	"fmt"
	"io"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/action"
)

// PDF 2.0 sections: 12.3.3

// Outline is the root of the document outline.  It is a trailer object,
// so that items can point to pages which are created after the item.
type Outline struct {
	pdf.ObjectBase

	// Items contains the top-level outline items.
	Items []*Item
}

// Item represents an outline item, with a title and a destination or action.
type Item struct {
	// Title is the text displayed for this outline item.
	Title string

	// Color (PDF 1.4) specifies the RGB color for the outline entry's text.
	// Components must be in the range 0.0 to 1.0.
	Color [3]float64

	// Bold (PDF 1.4) displays the item in bold.
	Bold bool

	// Italic (PDF 1.4) displays the item in italic.
	Italic bool

	// Target (optional) is the position within the document shown when
	// the item is activated.  Target and Action are mutually exclusive.
	Target *action.Target

	// Action (optional) is performed when the item is activated.
	Action pdf.Object

	// Children contains the child outline items.
	Children []*Item

	// Open indicates whether the item is initially expanded.
	Open bool
}

// New creates an empty outline for d and installs it in the catalog.
func New(d *pdf.Document) *Outline {
	o := &Outline{}
	d.RegisterTrailerObject(o)
	cat := d.Catalog()
	cat.Outlines = o
	cat.PageMode = "UseOutlines"
	return o
}

// AddItem appends a new top-level item with the given title and returns it.
func (o *Outline) AddItem(title string, target *action.Target) *Item {
	item := &Item{Title: title, Target: target}
	o.Items = append(o.Items, item)
	return item
}

// AddChild appends a new child item with the given title and returns it.
func (item *Item) AddChild(title string, target *action.Target) *Item {
	child := &Item{Title: title, Target: target}
	item.Children = append(item.Children, child)
	return child
}

// PDF implements the [pdf.Object] interface.
// The outline items are registered with the document as a side effect.
func (o *Outline) PDF(w io.Writer) error {
	d := o.Document()
	ww := &writer{
		d:     d,
		count: map[*Item]int{},
	}

	var rootCount int
	for _, item := range o.Items {
		rootCount += ww.getCount(item)
	}

	dict := pdf.Dict{
		"Type": pdf.Name("Outlines"),
	}
	if len(o.Items) > 0 {
		objs, err := ww.writeChildren(o, o.Items)
		if err != nil {
			return err
		}
		dict["First"] = objs[0]
		dict["Last"] = objs[len(objs)-1]
		if ww.hasOpen {
			dict["Count"] = pdf.Integer(rootCount)
		}
	}
	return dict.PDF(w)
}

type writer struct {
	d       *pdf.Document
	count   map[*Item]int
	hasOpen bool
}

// getCount computes the Count value for an item.
// Returns positive count if item is open, negative if closed.
func (ww *writer) getCount(item *Item) int {
	if item == nil || len(item.Children) == 0 {
		return 1
	}

	// count this item plus all visible descendants
	total := 1
	for _, child := range item.Children {
		total += ww.getCount(child)
	}

	descendantCount := total - 1
	if item.Open {
		ww.hasOpen = true
		ww.count[item] = descendantCount
		return total
	}
	ww.count[item] = -descendantCount
	return 1
}

func (ww *writer) writeChildren(parent pdf.Indirect, items []*Item) ([]*pdf.DictObject, error) {
	objs := make([]*pdf.DictObject, len(items))
	for i := range items {
		objs[i] = pdf.NewDictObject(pdf.Dict{"Parent": parent})
		ww.d.Register(objs[i])
	}

	for i, item := range items {
		dict := objs[i].Dict
		if i > 0 {
			dict["Prev"] = objs[i-1]
		}
		if i < len(items)-1 {
			dict["Next"] = objs[i+1]
		}
		err := ww.writeItem(objs[i], item)
		if err != nil {
			return nil, err
		}
	}
	return objs, nil
}

func (ww *writer) writeItem(obj *pdf.DictObject, item *Item) error {
	if item.Target != nil && item.Action != nil {
		return errors.New("outline item has both a target and an action")
	}

	dict := obj.Dict
	dict["Title"] = pdf.TextString(item.Title)

	if item.Color != [3]float64{} {
		for i, c := range item.Color {
			if c < 0 || c > 1 {
				return fmt.Errorf("outline item color component %d out of range: %g", i, c)
			}
		}
		if ww.d.Version() >= pdf.V1_4 {
			dict["C"] = pdf.Array{
				pdf.Number(item.Color[0]),
				pdf.Number(item.Color[1]),
				pdf.Number(item.Color[2]),
			}
		}
	}

	var flags int
	if item.Italic {
		flags |= 1
	}
	if item.Bold {
		flags |= 2
	}
	if flags != 0 && ww.d.Version() >= pdf.V1_4 {
		dict["F"] = pdf.Integer(flags)
	}

	switch {
	case item.Target != nil && item.Target.IsResolved():
		dict["Dest"] = item.Target.Dest()
	case item.Target != nil:
		err := ww.d.Warn("outline target was never resolved", "title", item.Title)
		if err != nil {
			return err
		}
	case item.Action != nil:
		dict["A"] = item.Action
	}

	if len(item.Children) > 0 {
		children, err := ww.writeChildren(obj, item.Children)
		if err != nil {
			return err
		}
		dict["First"] = children[0]
		dict["Last"] = children[len(children)-1]
		if count, ok := ww.count[item]; ok {
			dict["Count"] = pdf.Integer(count)
		}
	}
	return nil
}
