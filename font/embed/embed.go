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

// Package embed creates the PDF font objects for the fonts used in a
// document.
//
// Single-byte fonts become simple fonts (Type1 or TrueType), with one
// additional font resource for every additional encoding page.  CID fonts
// become Type0 fonts with a subsetted CIDFontType2 or CIDFontType0
// descendant.
package embed

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/cid"
)

// Registry creates the font resources for a document.  It implements the
// [pdf.FontSource] interface, so that it can be attached to the
// document's resource dictionary.
type Registry struct {
	fonts *font.Info

	nextTag atomic.Uint32

	mu      sync.Mutex
	objects map[pdf.Name]*fontDict
}

// NewRegistry returns a registry for the used fonts in fi.
func NewRegistry(fi *font.Info) *Registry {
	return &Registry{
		fonts:   fi,
		objects: make(map[pdf.Name]*fontDict),
	}
}

// ResourceName returns the name of a font resource.  Encoding page 0 of a
// font uses the font key as the name, additional pages append the page
// number.
func ResourceName(key string, page int) pdf.Name {
	if page == 0 {
		return pdf.Name(key)
	}
	return pdf.Name(key + "_" + strconv.Itoa(page))
}

// SubsetTag returns a new tag for a font subset.  Tags consist of six
// upper case letters and are unique within the registry.
func (r *Registry) SubsetTag() string {
	n := r.nextTag.Add(1) - 1

	var tag [6]byte
	for i := len(tag) - 1; i >= 0; i-- {
		tag[i] = 'A' + byte(n%26)
		n /= 26
	}
	return string(tag[:])
}

// FontResources implements the [pdf.FontSource] interface.
//
// The font objects are registered with d.  Calling FontResources again
// returns the objects created by the first call, extended by any fonts
// which were used in between.
func (r *Registry) FontResources(d *pdf.Document) (pdf.Dict, error) {
	used := r.fonts.UsedFonts()
	res := pdf.Dict{}
	for _, key := range r.fonts.UsedKeys() {
		objs, err := r.embed(d, key, font.Unwrap(used[key]))
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", key, err)
		}
		for name, obj := range objs {
			res[name] = obj
		}
	}
	return res, nil
}

func (r *Registry) embed(d *pdf.Document, key string, f font.Typeface) (map[pdf.Name]*fontDict, error) {
	res := make(map[pdf.Name]*fontDict)

	r.mu.Lock()
	defer r.mu.Unlock()

	switch f := f.(type) {
	case *cid.Font:
		name := ResourceName(key, 0)
		obj, ok := r.objects[name]
		if !ok {
			dict, err := r.composite(d, f)
			if err != nil {
				return nil, err
			}
			obj = pdf.Share(d, &fontDict{key: key, Dict: dict})
			r.objects[name] = obj
		}
		res[name] = obj

	case font.Paged:
		var shared *simpleShared
		for p := range f.NumPages() {
			name := ResourceName(key, p)
			obj, ok := r.objects[name]
			if !ok {
				if shared == nil {
					var err error
					shared, err = newSimpleShared(d, f)
					if err != nil {
						return nil, err
					}
				}
				dict, err := simple(d, f, p, shared)
				if err != nil {
					return nil, err
				}
				obj = pdf.Share(d, &fontDict{key: key, page: p, Dict: dict})
				r.objects[name] = obj
			}
			res[name] = obj
		}

	default:
		return nil, fmt.Errorf("unsupported font type %T", f)
	}
	return res, nil
}

// fontDict is a PDF font dictionary.
type fontDict struct {
	pdf.ObjectBase
	key  string
	page int
	Dict pdf.Dict
}

// PDF implements the [pdf.Object] interface.
func (f *fontDict) PDF(w io.Writer) error {
	return f.Dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (f *fontDict) Category() pdf.Category {
	return pdf.CategoryFont
}

// Equivalent implements the [pdf.Shareable] interface.
// Font dictionaries are equivalent if they describe the same encoding page
// of the same font.
func (f *fontDict) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*fontDict)
	return ok && o.key == f.key && o.page == f.page
}
