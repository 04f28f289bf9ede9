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
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"
)

// Catalog is the root of the document's object hierarchy.
// It is written as a trailer object, once the page tree is complete.
type Catalog struct {
	ObjectBase

	// Pages is the root of the document's page tree.
	Pages Indirect

	// PageMode (optional) specifies how the document should be displayed
	// when opened, for example UseOutlines.
	PageMode Name

	// PageLayout (optional) specifies the page layout to use when the
	// document is opened.
	PageLayout Name

	// Outlines (optional) is the root of the document's outline hierarchy.
	Outlines Indirect

	// Metadata (optional, PDF 1.4) contains metadata for the document.
	Metadata Indirect

	// OpenAction (optional) specifies a destination to display or an action
	// to perform when the document is opened.
	OpenAction Object

	// Lang (optional, PDF 1.4) is the natural language of the text.
	Lang string
}

// PDF implements the [Object] interface.
func (c *Catalog) PDF(w io.Writer) error {
	if c.Pages == nil {
		return errors.New("missing page tree")
	}
	dict := Dict{
		"Type":  Name("Catalog"),
		"Pages": c.Pages,
	}
	if c.PageMode != "" {
		dict["PageMode"] = c.PageMode
	}
	if c.PageLayout != "" {
		dict["PageLayout"] = c.PageLayout
	}
	if c.Outlines != nil {
		dict["Outlines"] = c.Outlines
	}
	if c.Metadata != nil {
		dict["Metadata"] = c.Metadata
	}
	if c.OpenAction != nil {
		dict["OpenAction"] = c.OpenAction
	}
	if c.Lang != "" {
		dict["Lang"] = TextString(c.Lang)
	}
	return dict.PDF(w)
}

// Info represents a PDF Document Information Dictionary.
// All fields in this structure are optional.
type Info struct {
	ObjectBase

	Title    string
	Author   string
	Subject  string
	Keywords string

	// Creator gives the name of the application that created the original
	// document, if the document was converted to PDF from another format.
	Creator string

	// Producer gives the name of the application that converted the
	// document to PDF.
	Producer string

	CreationDate time.Time
	ModDate      time.Time
}

// PDF implements the [Object] interface.
func (info *Info) PDF(w io.Writer) error {
	dict := Dict{}
	for key, val := range map[Name]string{
		"Title":    info.Title,
		"Author":   info.Author,
		"Subject":  info.Subject,
		"Keywords": info.Keywords,
		"Creator":  info.Creator,
		"Producer": info.Producer,
	} {
		if val != "" {
			dict[key] = TextString(val)
		}
	}
	if !info.CreationDate.IsZero() {
		dict["CreationDate"] = Date(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		dict["ModDate"] = Date(info.ModDate)
	}
	return dict.PDF(w)
}

// ResourceKind identifies a sub-dictionary of a resource dictionary.
type ResourceKind int

// The kinds of named resources.
const (
	ResFont ResourceKind = iota
	ResExtGState
	ResColorSpace
	ResPattern
	ResShading
	ResXObject

	numResourceKinds
)

var resourceInfo = []struct {
	key    Name
	prefix string
}{
	ResFont:       {"Font", "F"},
	ResExtGState:  {"ExtGState", "GS"},
	ResColorSpace: {"ColorSpace", "CS"},
	ResPattern:    {"Pattern", "Pa"},
	ResShading:    {"Shading", "Sh"},
	ResXObject:    {"XObject", "X"},
}

// FontSource supplies the font resources of a document.  The font
// dictionaries are only created when the resource dictionary is written,
// since only then the set of used characters is known.
type FontSource interface {
	// FontResources creates the font objects for all used fonts and
	// returns the /Font resource dictionary.  Font objects may be
	// registered with d while this method runs.
	FontResources(d *Document) (Dict, error)
}

// Resources is the resource dictionary shared by all pages of a document.
// It is a trailer object.
type Resources struct {
	ObjectBase

	// Fonts, if set, contributes the /Font sub-dictionary.
	Fonts FontSource

	named [numResourceKinds]map[Name]Object
}

// Add adds obj to the resource dictionary and returns the name under which
// it can be used in content streams.  If the same object has been added
// before, the previous name is returned.
func (r *Resources) Add(kind ResourceKind, obj Object) Name {
	m := r.named[kind]
	if m == nil {
		m = make(map[Name]Object)
		r.named[kind] = m
	}
	for _, name := range slices.Sorted(maps.Keys(m)) {
		if Equal(m[name], obj) {
			return name
		}
	}
	name := Name(fmt.Sprintf("%s%d", resourceInfo[kind].prefix, len(m)+1))
	m[name] = obj
	return name
}

// Set stores obj under the given name, replacing any previous entry.
func (r *Resources) Set(kind ResourceKind, name Name, obj Object) {
	if r.named[kind] == nil {
		r.named[kind] = make(map[Name]Object)
	}
	r.named[kind][name] = obj
}

// Get returns the object stored under name, or nil.
func (r *Resources) Get(kind ResourceKind, name Name) Object {
	return r.named[kind][name]
}

// PDF implements the [Object] interface.
func (r *Resources) PDF(w io.Writer) error {
	dict := Dict{
		"ProcSet": Array{Name("PDF"), Name("Text"), Name("ImageB"), Name("ImageC"), Name("ImageI")},
	}
	for kind, m := range r.named {
		if len(m) == 0 {
			continue
		}
		dict[resourceInfo[kind].key] = Dict(maps.Clone(m))
	}

	if r.Fonts != nil {
		doc := r.Document()
		if doc == nil {
			return errors.New("resources not registered with a document")
		}
		fonts, err := r.Fonts.FontResources(doc)
		if err != nil {
			return err
		}
		if len(fonts) > 0 {
			all, _ := dict["Font"].(Dict)
			if all == nil {
				all = Dict{}
			}
			for name, font := range fonts {
				all[name] = font
			}
			dict["Font"] = all
		}
	}
	return dict.PDF(w)
}
