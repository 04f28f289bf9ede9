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

// Package pdf writes PDF files from a graph of objects.
//
// A [Document] owns all objects of a file while it is being written.
// Indirect objects embed [ObjectBase] and obtain their object number from
// [Document.Register] or [Document.AssignNumber].  Objects can refer to
// each other by reference before either of them is written.  Calls to
// [Document.Output] write the queued objects in the order they were added,
// and objects registered while writing are picked up by the same call.
// Finally, [Document.OutputTrailer] writes the trailer objects (catalog,
// information dictionary, shared resources, outlines and the like), the
// cross-reference table and the file trailer.
//
//	doc, err := pdf.Create("out.pdf", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	... register objects, call doc.Output() while content is generated ...
//	err = doc.Close()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Objects which may be used in several places of a document implement
// [Shareable].  Before creating such an object, [Document.Find] or [Share]
// can be used to locate an existing object with the same content, so that
// every distinct value is written only once.
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	Stream
//	String
package pdf
