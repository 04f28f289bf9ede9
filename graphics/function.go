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

package graphics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"

	pdf "seehuhn.de/go/pdfgen"
)

// PDF 2.0 sections: 7.10

// Function is a PDF function object.
//
// Sampled functions (type 0) and PostScript calculator functions (type 4)
// are written as streams, with Data as the stream contents.  Exponential
// interpolation functions (type 2) and stitching functions (type 3) are
// dictionaries.
type Function struct {
	pdf.ObjectBase

	Type int
	Dict pdf.Dict
	Data []byte
}

// NewType2 returns an exponential interpolation function with a single
// input in the range [0, 1].
func NewType2(d *pdf.Document, c0, c1 []float64, n float64) (*Function, error) {
	if len(c0) != len(c1) {
		return nil, errors.New("C0 and C1 must have the same length")
	}
	f := &Function{
		Type: 2,
		Dict: pdf.Dict{
			"Domain": numbers(0, 1),
			"C0":     numbers(c0...),
			"C1":     numbers(c1...),
			"N":      pdf.Number(n),
		},
	}
	return pdf.Share(d, f), nil
}

// NewType3 returns a stitching function which combines the functions fns
// over the domain [0, 1].  Bounds must contain len(fns)-1 increasing
// values.  Each sub-function is applied to the input mapped to [0, 1].
func NewType3(d *pdf.Document, fns []*Function, bounds []float64) (*Function, error) {
	if len(fns) == 0 || len(bounds) != len(fns)-1 {
		return nil, fmt.Errorf("%d functions need %d bounds", len(fns), len(fns)-1)
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] < bounds[i-1] {
			return nil, errors.New("bounds must be increasing")
		}
	}

	functions := make(pdf.Array, len(fns))
	encode := make(pdf.Array, 0, 2*len(fns))
	for i, fn := range fns {
		functions[i] = fn
		encode = append(encode, pdf.Integer(0), pdf.Integer(1))
	}
	f := &Function{
		Type: 3,
		Dict: pdf.Dict{
			"Domain":    numbers(0, 1),
			"Functions": functions,
			"Bounds":    numbers(bounds...),
			"Encode":    encode,
		},
	}
	return pdf.Share(d, f), nil
}

// NewType4 returns a PostScript calculator function.  The code must be
// enclosed in braces.
func NewType4(d *pdf.Document, domain, rng []float64, code string) (*Function, error) {
	if len(domain)%2 != 0 || len(rng)%2 != 0 {
		return nil, errors.New("domain and range must have an even number of values")
	}
	f := &Function{
		Type: 4,
		Dict: pdf.Dict{
			"Domain": numbers(domain...),
			"Range":  numbers(rng...),
		},
		Data: []byte(code),
	}
	return pdf.Share(d, f), nil
}

// NewType0 returns a sampled function with m inputs.  Size gives the
// number of samples for each input, samples contains the sample values
// using bps bits per sample.
func NewType0(d *pdf.Document, domain, rng []float64, size []int, bps int, samples []byte) (*Function, error) {
	switch bps {
	case 1, 2, 4, 8, 12, 16, 24, 32:
	default:
		return nil, fmt.Errorf("invalid number of bits per sample %d", bps)
	}
	if len(domain) != 2*len(size) {
		return nil, errors.New("domain does not match size")
	}

	total := len(rng) / 2
	for _, s := range size {
		total *= s
	}
	if need := (total*bps + 7) / 8; len(samples) < need {
		return nil, fmt.Errorf("need %d bytes of samples, got %d", need, len(samples))
	}

	sz := make(pdf.Array, len(size))
	for i, s := range size {
		sz[i] = pdf.Integer(s)
	}
	f := &Function{
		Type: 0,
		Dict: pdf.Dict{
			"Domain":        numbers(domain...),
			"Range":         numbers(rng...),
			"Size":          sz,
			"BitsPerSample": pdf.Integer(bps),
		},
		Data: samples,
	}
	return pdf.Share(d, f), nil
}

// PDF implements the [pdf.Object] interface.
func (f *Function) PDF(w io.Writer) error {
	dict := maps.Clone(f.Dict)
	if dict == nil {
		dict = pdf.Dict{}
	}
	dict["FunctionType"] = pdf.Integer(f.Type)

	if f.Type != 0 && f.Type != 4 {
		return dict.PDF(w)
	}

	return writeStream(w, &f.ObjectBase, dict, f.Data)
}

// Category implements the [pdf.Shareable] interface.
func (f *Function) Category() pdf.Category { return pdf.CategoryFunction }

// Equivalent implements the [pdf.Shareable] interface.
func (f *Function) Equivalent(other pdf.Shareable) bool {
	o, ok := other.(*Function)
	return ok && f.Type == o.Type && pdf.Equal(f.Dict, o.Dict) && bytes.Equal(f.Data, o.Data)
}

// FindFunction returns a function which is equivalent to candidate, or
// nil.
func FindFunction(d *pdf.Document, candidate *Function) *Function {
	f, _ := d.Find(candidate).(*Function)
	return f
}

// writeStream writes dict and data as the stream body of obj.
func writeStream(w io.Writer, obj *pdf.ObjectBase, dict pdf.Dict, data []byte) error {
	if !obj.HasNumber() {
		return errors.New("stream objects must be indirect")
	}
	var stm *pdf.Stream
	if d := obj.Document(); d != nil {
		stm = d.NewStream(dict)
	} else {
		stm = pdf.NewStream(dict)
	}
	_, err := stm.Write(data)
	if err != nil {
		return err
	}
	return stm.WriteBody(w, obj.Reference())
}

func numbers(xx ...float64) pdf.Array {
	res := make(pdf.Array, len(xx))
	for i, x := range xx {
		res[i] = pdf.Number(x)
	}
	return res
}
