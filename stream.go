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
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"maps"
)

// Filter is a stream filter which is applied before a stream is written.
type Filter interface {
	// Name returns the name of the filter as used in the /Filter entry of
	// the stream dictionary.
	Name() Name

	// Encode returns the encoded form of data.
	Encode(data []byte) ([]byte, error)
}

// FilterFlate is the FlateDecode filter.
type FilterFlate struct {
	// Level is the zlib compression level.  The zero value selects
	// the default compression level.
	Level int
}

// Name implements the [Filter] interface.
func (f FilterFlate) Name() Name {
	return "FlateDecode"
}

// Encode implements the [Filter] interface.
func (f FilterFlate) Encode(data []byte) ([]byte, error) {
	level := f.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, level)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(data)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stream represents a stream object in a PDF file.  Streams are always
// written as indirect objects.
//
// Stream data is collected in memory using the Write method.  Filters and
// encryption are applied when the stream is serialized, and the /Length
// entry is set accordingly.
type Stream struct {
	ObjectBase

	Dict    Dict
	Filters []Filter

	data bytes.Buffer
}

// NewStream allocates a new stream with the given dictionary and filters.
// The stream is not registered with any document.
func NewStream(dict Dict, filters ...Filter) *Stream {
	if dict == nil {
		dict = Dict{}
	}
	return &Stream{Dict: dict, Filters: filters}
}

// Write appends data to the stream.
// This implements the [io.Writer] interface.
func (s *Stream) Write(p []byte) (int, error) {
	return s.data.Write(p)
}

// WriteString appends a string to the stream.
func (s *Stream) WriteString(str string) (int, error) {
	return s.data.WriteString(str)
}

// Data returns the unencoded stream data.
func (s *Stream) Data() []byte {
	return s.data.Bytes()
}

// Len returns the length of the unencoded stream data.
func (s *Stream) Len() int {
	return s.data.Len()
}

// encoded returns the stream dictionary and the stream data in the form in
// which they are written to a file.  If enc is non-nil, the data is
// encrypted with the key for the object reference ref.
func (s *Stream) encoded(enc *encryptInfo, ref Reference) (Dict, []byte, error) {
	data := s.data.Bytes()
	dict := maps.Clone(s.Dict)
	if dict == nil {
		dict = Dict{}
	}

	if len(s.Filters) > 0 {
		names := make(Array, len(s.Filters))
		for i, f := range s.Filters {
			var err error
			data, err = f.Encode(data)
			if err != nil {
				return nil, nil, err
			}
			// the filter applied last must be decoded first
			names[len(s.Filters)-1-i] = f.Name()
		}
		if len(names) == 1 {
			dict["Filter"] = names[0]
		} else {
			dict["Filter"] = names
		}
	}

	if enc != nil {
		var err error
		data, err = enc.encryptBytes(ref, bytes.Clone(data))
		if err != nil {
			return nil, nil, err
		}
	}

	dict["Length"] = Integer(len(data))
	return dict, data, nil
}

// PDF implements the [Object] interface.
func (s *Stream) PDF(w io.Writer) error {
	if s.ref == 0 {
		return errInlineStream
	}
	return s.WriteBody(w, s.ref)
}

// WriteBody writes the stream as the body of the indirect object ref.
// This allows objects which keep their own object number to be
// represented as streams in the file.
func (s *Stream) WriteBody(w io.Writer, ref Reference) error {
	var enc *encryptInfo
	if pw, ok := w.(*posWriter); ok && s.encrypted() {
		enc = pw.enc
	}
	dict, data, err := s.encoded(enc, ref)
	if err != nil {
		return err
	}

	err = dict.PDF(w)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\nstream\n")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\nendstream")
	return err
}

// encrypted reports whether the stream data is subject to encryption.
// Cross-reference streams are exempt.
func (s *Stream) encrypted() bool {
	if tp, ok := s.Dict["Type"].(Name); ok && tp == "XRef" {
		return false
	}
	return true
}

func (s *Stream) equal(other *Stream) bool {
	if s == nil || other == nil {
		return s == other
	}
	if !dictEqual(s.Dict, other.Dict) || !bytes.Equal(s.Data(), other.Data()) {
		return false
	}
	if len(s.Filters) != len(other.Filters) {
		return false
	}
	for i := range s.Filters {
		if s.Filters[i].Name() != other.Filters[i].Name() {
			return false
		}
	}
	return true
}

var errInlineStream = errors.New("stream objects must be written as indirect objects")
