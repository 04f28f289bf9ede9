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
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Object represents an object in a PDF file.  The basic PDF object types
// [Bool], [Integer], [Real], [Name], [String], [Array], [Dict], [Reference]
// and [*Stream] implement this interface.  Indirect objects are implemented
// by types which embed [ObjectBase].
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	// For indirect objects, this is the object content without the
	// surrounding "obj" / "endobj" markers.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the [Object] interface.
func (x Bool) PDF(w io.Writer) error {
	s := "false"
	if x {
		s = "true"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a real number in a PDF file.
type Real float64

// Number converts x to a PDF number, using an [Integer] where possible.
func Number(x float64) Object {
	if x == math.Trunc(x) && math.Abs(x) < 1<<31 {
		return Integer(x)
	}
	return Real(x)
}

// PDF implements the [Object] interface.
func (x Real) PDF(w io.Writer) error {
	s := strconv.FormatFloat(float64(x), 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Name represents a name object in a PDF file.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	buf := make([]byte, 0, len(x)+1)
	buf = append(buf, '/')
	for i := 0; i < len(x); i++ {
		c := x[i]
		if c < 0x21 || c > 0x7e || c == '#' || isDelimiter(c) {
			buf = fmt.Appendf(buf, "#%02x", c)
		} else {
			buf = append(buf, c)
		}
	}
	_, err := w.Write(buf)
	return err
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// String represents a string in a PDF file.  The character set encoding,
// if any, is determined by the context.
//
// If the string is written as part of an encrypted indirect object, the
// string data is encrypted using the key of the enclosing object.
type String []byte

// PDF implements the [Object] interface.
func (x String) PDF(w io.Writer) error {
	l := []byte(x)
	if pw, ok := w.(*posWriter); ok && pw.enc != nil {
		enc, err := pw.enc.encryptBytes(pw.ref, l)
		if err != nil {
			return err
		}
		l = enc
	}

	level := 0
	balanced := true
	for _, c := range l {
		if c == '(' {
			level++
		} else if c == ')' {
			level--
			if level < 0 {
				balanced = false
				break
			}
		}
	}
	balanced = balanced && level == 0

	var special int
	for _, c := range l {
		if c < 32 || c >= 127 || c == '\\' || !balanced && (c == '(' || c == ')') {
			special++
		}
	}

	buf := &bytes.Buffer{}
	if 3*special > len(l) {
		fmt.Fprintf(buf, "<%x>", l)
	} else {
		buf.WriteByte('(')
		for _, c := range l {
			switch {
			case c == '\r':
				buf.WriteString(`\r`)
			case c == '\n':
				buf.WriteString(`\n`)
			case c == '\\':
				buf.WriteString(`\\`)
			case (c == '(' || c == ')') && !balanced:
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case c < 32 || c >= 127:
				fmt.Fprintf(buf, `\%03o`, c)
			default:
				buf.WriteByte(c)
			}
		}
		buf.WriteByte(')')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Array represent an array of objects in a PDF file.
type Array []Object

// PDF implements the [Object] interface.
func (x Array) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "[")
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			_, err = io.WriteString(w, " ")
			if err != nil {
				return err
			}
		}
		err = writeObject(w, val)
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "]")
	return err
}

// Dict represent a Dictionary object in a PDF file.
// Entries with a nil value are omitted from the output.
type Dict map[Name]Object

// PDF implements the [Object] interface.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	keys := make([]Name, 0, len(x))
	for key, val := range x {
		if val == nil {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	_, err := io.WriteString(w, "<<")
	if err != nil {
		return err
	}
	for _, key := range keys {
		_, err = io.WriteString(w, "\n")
		if err != nil {
			return err
		}
		err = key.PDF(w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, " ")
		if err != nil {
			return err
		}
		err = writeObject(w, x[key])
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n>>")
	return err
}

// Reference represents a reference to an indirect object in a PDF file.
// The object number is stored in the high bits, the generation number in
// the low 16 bits.  The zero value is not a valid reference.
type Reference uint64

// NewReference creates a new reference object.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(number)<<16 | Reference(generation)
}

// Number returns the object number of the reference.
func (x Reference) Number() uint32 {
	return uint32(x >> 16)
}

// Generation returns the generation number of the reference.
func (x Reference) Generation() uint16 {
	return uint16(x)
}

func (x Reference) String() string {
	return fmt.Sprintf("%d %d R", x.Number(), x.Generation())
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	_, err := io.WriteString(w, x.String())
	return err
}

// writeObject writes obj to w.  Numbered indirect objects are written as
// references, everything else is written inline.
func writeObject(w io.Writer, obj Object) error {
	switch obj := obj.(type) {
	case nil:
		_, err := io.WriteString(w, "null")
		return err
	case Indirect:
		if ref := obj.objectBase().ref; ref != 0 {
			return ref.PDF(w)
		}
	}
	return obj.PDF(w)
}

// Format returns the PDF representation of obj as a string.
// Strings are not encrypted.
func Format(obj Object) string {
	buf := &bytes.Buffer{}
	err := writeObject(buf, obj)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}

// Equal reports whether two objects have the same PDF representation.
//
// Indirect objects which have been assigned an object number are equal
// only to themselves.  Unnumbered shareable objects are compared using
// their [Shareable.Equivalent] method.
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a := a.(type) {
	case Bool, Integer, Real, Name, Reference:
		return a == b
	case String:
		b, ok := b.(String)
		return ok && bytes.Equal(a, b)
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case Dict:
		b, ok := b.(Dict)
		if !ok {
			return false
		}
		return dictEqual(a, b)
	case Indirect:
		b, ok := b.(Indirect)
		if !ok {
			return false
		}
		ra, rb := a.objectBase().ref, b.objectBase().ref
		if ra != 0 || rb != 0 {
			return ra == rb
		}
		if sa, ok := a.(Shareable); ok {
			sb, ok := b.(Shareable)
			return ok && sa.Category() == sb.Category() && sa.Equivalent(sb)
		}
		if sa, ok := a.(*Stream); ok {
			sb, ok := b.(*Stream)
			return ok && sa.equal(sb)
		}
		return a == b
	default:
		return reflect.DeepEqual(a, b)
	}
}

func dictEqual(a, b Dict) bool {
	n := 0
	for key, va := range a {
		if va == nil {
			continue
		}
		n++
		if !Equal(va, b[key]) {
			return false
		}
	}
	for _, vb := range b {
		if vb != nil {
			n--
		}
	}
	return n == 0
}
