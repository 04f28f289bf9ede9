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

import "io"

// Indirect is implemented by objects which can be written as indirect
// objects.  Such types embed [ObjectBase], which stores the object
// identity.
//
// An Indirect object which has not been assigned an object number is
// written inline, as part of the object which contains it.  Once the
// object has a number, all other objects refer to it by reference and the
// object itself is written exactly once, at the top level of the file.
type Indirect interface {
	Object
	objectBase() *ObjectBase
}

// ObjectBase holds the identity of an indirect object.  The zero value
// represents an object without an object number and without a document.
type ObjectBase struct {
	ref    Reference
	doc    *Document
	parent Indirect
}

func (b *ObjectBase) objectBase() *ObjectBase {
	return b
}

// Reference returns the reference of the object, or 0 if no object number
// has been assigned yet.
func (b *ObjectBase) Reference() Reference {
	return b.ref
}

// HasNumber reports whether an object number has been assigned.
func (b *ObjectBase) HasNumber() bool {
	return b.ref != 0
}

// Parent returns the object which owns this object, if any.
func (b *ObjectBase) Parent() Indirect {
	return b.parent
}

// SetParent records the object which owns this object until it receives
// its own object number.
func (b *ObjectBase) SetParent(p Indirect) {
	b.parent = p
}

// Document returns the document the object belongs to.  If the object has
// not been attached to a document directly, the document of the parent is
// returned.
func (b *ObjectBase) Document() *Document {
	for obj := b; obj != nil; {
		if obj.doc != nil {
			return obj.doc
		}
		if obj.parent == nil {
			break
		}
		obj = obj.parent.objectBase()
	}
	return nil
}

// RefOf returns the reference of obj, or 0 if obj is nil or has no number.
func RefOf(obj Indirect) Reference {
	if obj == nil {
		return 0
	}
	return obj.objectBase().ref
}

// DictObject is a dictionary which can be written as an indirect object.
type DictObject struct {
	ObjectBase
	Dict Dict
}

// NewDictObject wraps a dictionary so that it can be registered with a
// document.
func NewDictObject(dict Dict) *DictObject {
	return &DictObject{Dict: dict}
}

// PDF implements the [Object] interface.
func (d *DictObject) PDF(w io.Writer) error {
	return d.Dict.PDF(w)
}

// ArrayObject is an array which can be written as an indirect object.
type ArrayObject struct {
	ObjectBase
	Array Array
}

// PDF implements the [Object] interface.
func (a *ArrayObject) PDF(w io.Writer) error {
	return a.Array.PDF(w)
}
