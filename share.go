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

import "fmt"

// Category identifies a class of shared objects.  The document keeps one
// lookup list per category, so that structurally equal objects are written
// only once.
type Category int

// The categories of deduplicated objects.
const (
	CategoryFunction Category = iota + 1
	CategoryShading
	CategoryPattern
	CategoryGState
	CategoryLink
	CategoryFileSpec
	CategoryFont
	CategoryGoToRemote
	CategoryGoTo
	CategoryLaunch
	CategoryColorSpace
)

func (c Category) String() string {
	switch c {
	case CategoryFunction:
		return "function"
	case CategoryShading:
		return "shading"
	case CategoryPattern:
		return "pattern"
	case CategoryGState:
		return "graphics state"
	case CategoryLink:
		return "link"
	case CategoryFileSpec:
		return "file specification"
	case CategoryFont:
		return "font"
	case CategoryGoToRemote:
		return "remote go-to"
	case CategoryGoTo:
		return "go-to"
	case CategoryLaunch:
		return "launch"
	case CategoryColorSpace:
		return "color space"
	default:
		return fmt.Sprintf("category#%d", int(c))
	}
}

// Shareable is implemented by indirect objects which may be shared between
// different parts of a document.  Before a new shareable object is created,
// callers use [Document.Find] to check whether an equal object already
// exists.
type Shareable interface {
	Indirect

	// Category returns the lookup list the object belongs to.
	Category() Category

	// Equivalent reports whether the object has the same content as other.
	// This is structural equality, not identity.  The method is only called
	// with objects of the same category.
	Equivalent(other Shareable) bool
}

// Share returns an existing object which is equivalent to candidate, or
// registers candidate with the document if no such object exists.
//
// Once Go supports methods with type parameters, this function can be
// turned into a method on [Document].
func Share[T Shareable](d *Document, candidate T) T {
	if existing, ok := d.Find(candidate).(T); ok {
		return existing
	}
	d.Register(candidate)
	return candidate
}
