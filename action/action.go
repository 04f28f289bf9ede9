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

// Package action implements link annotations and the actions they
// trigger.
//
// Go-to, remote go-to and launch actions, as well as file specifications
// and links, are shared: creating the same object twice returns the
// object created first.
package action

import (
	"errors"
	"io"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 12.6.4

// Action types.
const (
	TypeGoTo   pdf.Name = "GoTo"
	TypeGoToR  pdf.Name = "GoToR"
	TypeLaunch pdf.Name = "Launch"
	TypeURI    pdf.Name = "URI"
)

// NewWindowMode specifies how a target document should be displayed.
type NewWindowMode uint8

const (
	// NewWindowDefault indicates the viewer should use its preference.
	NewWindowDefault NewWindowMode = 0
	// NewWindowReplace indicates the target should replace the current window.
	NewWindowReplace NewWindowMode = 1
	// NewWindowNew indicates the target should open in a new window.
	NewWindowNew NewWindowMode = 2
)

func (m NewWindowMode) set(dict pdf.Dict) {
	if m != NewWindowDefault {
		dict["NewWindow"] = pdf.Bool(m == NewWindowNew)
	}
}

// ErrUnresolved is returned when a go-to action is written before its
// target has been resolved.
var ErrUnresolved = errors.New("link target not resolved")

// Target is a position within the document.  A target can be created
// before the page it points to, and resolved later.
type Target struct {
	// Page is the target page.  The target is unresolved while Page is nil.
	Page pdf.Indirect

	// Left and Top give the position in default user space units which is
	// shown at the top left corner of the window.
	Left, Top float64
}

// IsResolved reports whether the target page is known.
func (t *Target) IsResolved() bool {
	return t.Page != nil
}

// Resolve sets the target position.
func (t *Target) Resolve(page pdf.Indirect, left, top float64) {
	t.Page = page
	t.Left = left
	t.Top = top
}

// Dest returns the explicit destination for t, using the /XYZ form
// which leaves the zoom factor unchanged.
func (t *Target) Dest() pdf.Array {
	return pdf.Array{t.Page, pdf.Name("XYZ"), pdf.Number(t.Left), pdf.Number(t.Top), nil}
}

// GoTo is an action which moves to a position within the document.
type GoTo struct {
	pdf.ObjectBase
	Target *Target
}

// NewGoTo returns a go-to action for t.  If t is resolved, the action is
// shared.  Otherwise the action has no object number and is written
// inline by the link which uses it, after the target has been resolved.
func NewGoTo(d *pdf.Document, t *Target) *GoTo {
	a := &GoTo{Target: t}
	if !t.IsResolved() {
		return a
	}
	return pdf.Share(d, a)
}

// PDF implements the [pdf.Object] interface.
func (a *GoTo) PDF(w io.Writer) error {
	if !a.Target.IsResolved() {
		return ErrUnresolved
	}
	dict := pdf.Dict{
		"S": TypeGoTo,
		"D": a.Target.Dest(),
	}
	return dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (a *GoTo) Category() pdf.Category { return pdf.CategoryGoTo }

// Equivalent implements the [pdf.Shareable] interface.
func (a *GoTo) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*GoTo)
	if !ok {
		return false
	}
	if a.Target == o.Target {
		return true
	}
	return a.Target.IsResolved() && o.Target.IsResolved() &&
		pdf.Equal(a.Target.Page, o.Target.Page) &&
		a.Target.Left == o.Target.Left && a.Target.Top == o.Target.Top
}

// FindGoTo returns a go-to action which is equivalent to candidate, or
// nil.
func FindGoTo(d *pdf.Document, candidate *GoTo) *GoTo {
	a, _ := d.Find(candidate).(*GoTo)
	return a
}

// GoToR is an action which opens a position in another PDF file.
type GoToR struct {
	pdf.ObjectBase

	File *FileSpec

	// Page is the zero-based page number in the target document.
	Page      int
	Left, Top float64

	NewWindow NewWindowMode
}

// NewGoToR returns a shared remote go-to action.
func NewGoToR(d *pdf.Document, file string, page int, left, top float64) *GoToR {
	a := &GoToR{
		File: NewFileSpec(d, file),
		Page: page,
		Left: left,
		Top:  top,
	}
	return pdf.Share(d, a)
}

// PDF implements the [pdf.Object] interface.
func (a *GoToR) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"S": TypeGoToR,
		"F": a.File,
		"D": pdf.Array{pdf.Integer(a.Page), pdf.Name("XYZ"), pdf.Number(a.Left), pdf.Number(a.Top), nil},
	}
	a.NewWindow.set(dict)
	return dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (a *GoToR) Category() pdf.Category { return pdf.CategoryGoToRemote }

// Equivalent implements the [pdf.Shareable] interface.
func (a *GoToR) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*GoToR)
	return ok && pdf.Equal(a.File, o.File) && a.Page == o.Page &&
		a.Left == o.Left && a.Top == o.Top && a.NewWindow == o.NewWindow
}

// FindGoToRemote returns a remote go-to action which is equivalent to
// candidate, or nil.
func FindGoToRemote(d *pdf.Document, candidate *GoToR) *GoToR {
	a, _ := d.Find(candidate).(*GoToR)
	return a
}

// Launch is an action which opens a file.
type Launch struct {
	pdf.ObjectBase
	File      *FileSpec
	NewWindow NewWindowMode
}

// NewLaunch returns a shared launch action.
func NewLaunch(d *pdf.Document, file string) *Launch {
	return pdf.Share(d, &Launch{File: NewFileSpec(d, file)})
}

// PDF implements the [pdf.Object] interface.
func (a *Launch) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"S": TypeLaunch,
		"F": a.File,
	}
	a.NewWindow.set(dict)
	return dict.PDF(w)
}

// Category implements the [pdf.Shareable] interface.
func (a *Launch) Category() pdf.Category { return pdf.CategoryLaunch }

// Equivalent implements the [pdf.Shareable] interface.
func (a *Launch) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*Launch)
	return ok && pdf.Equal(a.File, o.File) && a.NewWindow == o.NewWindow
}

// FindLaunch returns a launch action which is equivalent to candidate,
// or nil.
func FindLaunch(d *pdf.Document, candidate *Launch) *Launch {
	a, _ := d.Find(candidate).(*Launch)
	return a
}

// URI is an action which opens a web address.  URI actions are
// written inline.
type URI string

// PDF implements the [pdf.Object] interface.
func (u URI) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"S":   TypeURI,
		"URI": pdf.String(u),
	}
	return dict.PDF(w)
}
