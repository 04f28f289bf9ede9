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
)

var (
	// ErrClosed is returned when objects are written after the trailer.
	ErrClosed = errors.New("document already closed")

	errInvalidPassword = errors.New("invalid password")
)

// NotWrittenError is returned by [Document.OutputTrailer] if an object
// number was allocated but the corresponding object was never added to
// the document.
type NotWrittenError struct {
	Refs []Reference
}

func (err *NotWrittenError) Error() string {
	if len(err.Refs) == 1 {
		return fmt.Sprintf("object %s was never written", err.Refs[0])
	}
	return fmt.Sprintf("%d objects were never written, first is %s",
		len(err.Refs), err.Refs[0])
}

// Is allows errors.Is(err, ErrNotWritten) to match.
func (err *NotWrittenError) Is(target error) bool {
	return target == ErrNotWritten
}

// ErrNotWritten matches all [NotWrittenError] values.
var ErrNotWritten = errors.New("object never written")
