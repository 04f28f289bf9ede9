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
	"fmt"
	"hash"
	"io"

	"seehuhn.de/go/pdfgen/internal/logging"
)

// Output writes all objects which are currently queued, in the order they
// were added.  Objects which are registered while the queue is being
// written are written by the same call.
func (d *Document) Output() error {
	if d.closed {
		return ErrClosed
	}
	for len(d.pending) > 0 {
		obj := d.pending[0]
		d.pending[0] = nil
		d.pending = d.pending[1:]

		err := d.writeIndirect(obj)
		if err != nil {
			return err
		}
	}
	return nil
}

// OutputTrailer writes the trailer objects, followed by the cross-reference
// table and the file trailer.  After OutputTrailer has returned, no more
// objects can be added to the document.
func (d *Document) OutputTrailer() error {
	if d.closed {
		return ErrClosed
	}

	catalog := d.Catalog()
	info := d.Info()
	if d.enc != nil {
		d.encDict = NewDictObject(d.enc.asDict())
		d.RegisterTrailerObject(d.encDict)
	}

	for {
		err := d.Output()
		if err != nil {
			return err
		}
		if len(d.trailer) == 0 {
			break
		}
		obj := d.trailer[0]
		d.trailer[0] = nil
		d.trailer = d.trailer[1:]
		err = d.writeIndirect(obj)
		if err != nil {
			return err
		}
	}

	var missing []Reference
	for i, pos := range d.offsets {
		if pos < 0 {
			missing = append(missing, NewReference(uint32(i+1), 0))
		}
	}
	if missing != nil {
		return &NotWrittenError{Refs: missing}
	}

	if d.id[0] == nil {
		// no identifier was needed so far, use a hash of the file contents
		id := d.w.hash.Sum(nil)[:16]
		d.id = [2][]byte{id, id}
	}

	xrefPos := d.w.pos
	_, err := fmt.Fprintf(d.w, "xref\n0 %d\n0000000000 65535 f\r\n", len(d.offsets)+1)
	if err != nil {
		return err
	}
	for _, pos := range d.offsets {
		_, err = fmt.Fprintf(d.w, "%010d 00000 n\r\n", pos)
		if err != nil {
			return err
		}
	}

	trailerDict := Dict{
		"Size": Integer(len(d.offsets) + 1),
		"Root": catalog.ref,
		"Info": info.ref,
		"ID":   Array{String(d.id[0]), String(d.id[1])},
	}
	if d.encDict != nil {
		trailerDict["Encrypt"] = d.encDict.ref
	}
	_, err = io.WriteString(d.w, "trailer\n")
	if err != nil {
		return err
	}
	err = trailerDict.PDF(d.w)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(d.w, "\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	if err != nil {
		return err
	}

	d.closed = true
	logging.Logger().Debug("PDF trailer written",
		"objects", len(d.offsets), "bytes", d.w.pos)
	return nil
}

// Close writes all remaining objects and the file trailer.  If the
// underlying io.Writer has a Close method, it is called.
func (d *Document) Close() error {
	err := d.OutputTrailer()
	if err != nil {
		return err
	}
	if c, ok := d.w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Offset returns the file position of the given object, or -1 if the object
// has not been written yet.
func (d *Document) Offset(ref Reference) int64 {
	idx := int(ref.Number()) - 1
	if idx < 0 || idx >= len(d.offsets) || d.offsets[idx] < 0 {
		return -1
	}
	return d.offsets[idx]
}

// BytesWritten returns the number of bytes written so far.
func (d *Document) BytesWritten() int64 {
	return d.w.pos
}

func (d *Document) writeIndirect(obj Indirect) error {
	ref := obj.objectBase().ref
	d.offsets[ref.Number()-1] = d.w.pos

	_, err := fmt.Fprintf(d.w, "%d %d obj\n", ref.Number(), ref.Generation())
	if err != nil {
		return err
	}

	d.w.ref = ref
	if d.encDict == nil || ref != d.encDict.ref {
		d.w.enc = d.enc
	}
	err = obj.PDF(d.w)
	d.w.ref = 0
	d.w.enc = nil
	if err != nil {
		return fmt.Errorf("object %s: %w", ref, err)
	}

	_, err = io.WriteString(d.w, "\nendobj\n")
	if err != nil {
		return err
	}
	delete(d.objects, ref)
	return nil
}

// posWriter keeps track of the position in the output file, and of the
// object currently being written.
type posWriter struct {
	w    io.Writer
	pos  int64
	hash hash.Hash

	enc *encryptInfo
	ref Reference
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	w.hash.Write(p[:n])
	return n, err
}
