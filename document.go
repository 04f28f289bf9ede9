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
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"time"

	"seehuhn.de/go/pdfgen/internal/logging"
)

// Document owns the object graph of a PDF file while it is being written.
//
// Objects receive their object numbers when they are registered.  They are
// then kept in a queue until the next call to [Document.Output], which
// writes them in the order they were added.  Objects may refer to each
// other by reference before either of them has been written.
//
// A Document is not safe for concurrent use.
type Document struct {
	cfg *Config
	w   *posWriter

	lastNumber uint32

	// pending holds the objects waiting to be written, oldest first.
	pending []Indirect

	// objects maps references to objects which have been registered, but
	// not yet written.
	objects map[Reference]Indirect

	// shared holds the lookup lists for deduplicated objects.
	shared map[Category][]Shareable

	// offsets[i] is the file position of object i+1, or one of
	// offsetNotQueued and offsetQueued.
	offsets []int64

	trailer []Indirect

	catalog   *Catalog
	info      *Info
	resources *Resources

	enc      *encryptInfo
	encDict  *DictObject
	id       [2][]byte
	closed   bool
	warnings []string
}

const (
	offsetNotQueued = -1
	offsetQueued    = -2
)

// NewDocument starts a new PDF file, which is written to w.  If cfg is nil,
// [DefaultConfig] is used.
func NewDocument(w io.Writer, cfg *Config) (*Document, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	d := &Document{
		cfg:     cfg,
		w:       &posWriter{w: w, hash: sha256.New()},
		objects: make(map[Reference]Indirect),
		shared:  make(map[Category][]Shareable),
	}

	if cfg.FileID != nil {
		d.id = [2][]byte{cfg.FileID, cfg.FileID}
	} else if cfg.Encryption != nil {
		// The file key depends on the identifier, so it must be known
		// before any object is written.
		seed := make([]byte, 16)
		_, err := rand.Read(seed)
		if err != nil {
			return nil, err
		}
		h := sha256.New()
		fmt.Fprintf(h, "%s\n%s\n", cfg.Producer, cfg.CreationDate.Format(time.RFC3339Nano))
		h.Write(seed)
		id := h.Sum(nil)[:16]
		d.id = [2][]byte{id, id}
	}

	if p := cfg.Encryption; p != nil {
		err := probeCipher(p.Cipher)
		if err == nil {
			d.enc, err = newEncryptInfo(p, d.id[0])
		}
		if err != nil {
			if p.Required {
				return nil, fmt.Errorf("encryption: %w", err)
			}
			d.warn("encryption disabled", "cipher", p.Cipher, "error", err)
		}
	}

	_, err = fmt.Fprintf(d.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", cfg.Version)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Create creates the named PDF file and opens it for output.  If a
// previous file with the same name exists, it is overwritten.  After
// writing is complete, [Document.Close] must be called to write the trailer
// and to close the file.
func Create(name string, cfg *Config) (*Document, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	d, err := NewDocument(fd, cfg)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return d, nil
}

// Config returns the configuration of the document.
func (d *Document) Config() *Config {
	return d.cfg
}

// Version returns the PDF version of the file being written.
func (d *Document) Version() Version {
	return d.cfg.Version
}

// IsEncrypted reports whether strings and streams are encrypted.
func (d *Document) IsEncrypted() bool {
	return d.enc != nil
}

// AssignNumber allocates the next object number for obj, without queueing
// the object for output.  The object must later be passed to [Document.Add]
// or [Document.AddTrailerObject].
//
// AssignNumber panics if obj already has an object number, or if it
// belongs to a different document.
func (d *Document) AssignNumber(obj Indirect) Reference {
	base := obj.objectBase()
	if base.ref != 0 {
		panic(fmt.Sprintf("object %s already has an object number", base.ref))
	}
	if base.doc != nil && base.doc != d {
		panic("object belongs to a different document")
	}
	if d.closed {
		panic(ErrClosed)
	}

	d.lastNumber++
	ref := NewReference(d.lastNumber, 0)
	base.ref = ref
	base.doc = d
	d.objects[ref] = obj
	d.offsets = append(d.offsets, offsetNotQueued)
	return ref
}

// Register assigns the next object number to obj and queues it for
// output.  Shareable objects become visible to [Document.Find].
//
// Register panics if obj already has an object number, or if it belongs
// to a different document.
func (d *Document) Register(obj Indirect) Reference {
	ref := d.AssignNumber(obj)
	d.Add(obj)
	return ref
}

// Add queues an object which already has a number for output.
//
// Add panics if obj has no object number, or if it has already been added.
func (d *Document) Add(obj Indirect) {
	d.queue(obj)
	d.pending = append(d.pending, obj)
}

// RegisterTrailerObject assigns an object number to obj, if it has none
// yet, and keeps the object for the trailer pass.  Trailer objects are
// written by [Document.OutputTrailer], after all other objects.
func (d *Document) RegisterTrailerObject(obj Indirect) Reference {
	if obj.objectBase().ref == 0 {
		d.AssignNumber(obj)
	}
	d.AddTrailerObject(obj)
	return obj.objectBase().ref
}

// AddTrailerObject keeps an already numbered object for the trailer pass.
func (d *Document) AddTrailerObject(obj Indirect) {
	d.queue(obj)
	d.trailer = append(d.trailer, obj)
}

func (d *Document) queue(obj Indirect) {
	base := obj.objectBase()
	if base.ref == 0 {
		panic("object has no object number")
	}
	if base.doc != d {
		panic("object belongs to a different document")
	}
	idx := base.ref.Number() - 1
	if d.offsets[idx] != offsetNotQueued {
		panic(fmt.Sprintf("object %s added twice", base.ref))
	}
	if d.closed {
		panic(ErrClosed)
	}
	d.offsets[idx] = offsetQueued

	if s, ok := obj.(Shareable); ok {
		cat := s.Category()
		d.shared[cat] = append(d.shared[cat], s)
	}
}

// Find returns an object which is structurally equal to candidate and
// which has been added to the document, or nil if there is no such
// object.  Objects are compared within the candidate's category only.
func (d *Document) Find(candidate Shareable) Shareable {
	for _, obj := range d.shared[candidate.Category()] {
		if obj.Equivalent(candidate) {
			return obj
		}
	}
	return nil
}

// Lookup returns the registered object with the given reference, if the
// object has not been written yet.  Once an object has been written, the
// document no longer keeps it.
func (d *Document) Lookup(ref Reference) Indirect {
	return d.objects[ref]
}

// NumPending returns the number of objects queued for output, not counting
// trailer objects.
func (d *Document) NumPending() int {
	return len(d.pending)
}

// Catalog returns the document catalog.
func (d *Document) Catalog() *Catalog {
	if d.catalog == nil {
		d.catalog = &Catalog{}
		d.RegisterTrailerObject(d.catalog)
	}
	return d.catalog
}

// Info returns the document information dictionary.
func (d *Document) Info() *Info {
	if d.info == nil {
		d.info = &Info{
			Producer:     d.cfg.Producer,
			CreationDate: d.cfg.CreationDate,
		}
		if d.info.CreationDate.IsZero() {
			d.info.CreationDate = time.Now()
		}
		d.RegisterTrailerObject(d.info)
	}
	return d.info
}

// Resources returns the resource dictionary shared by all pages.
func (d *Document) Resources() *Resources {
	if d.resources == nil {
		d.resources = &Resources{}
		d.RegisterTrailerObject(d.resources)
	}
	return d.resources
}

// NewStream returns a new stream, using the document's compression
// setting.  The stream is not registered.
func (d *Document) NewStream(dict Dict) *Stream {
	if d.cfg.Compress {
		return NewStream(dict, FilterFlate{})
	}
	return NewStream(dict)
}

// Policy returns the policy for recoverable problems.
func (d *Document) Policy() Policy {
	return d.cfg.Policy
}

// Warn reports a recoverable problem.  Under the [Strict] policy an error
// is returned, otherwise the message is logged and nil is returned.
func (d *Document) Warn(msg string, args ...any) error {
	if d.cfg.Policy == Strict {
		if len(args) > 0 {
			return fmt.Errorf("%s %v", msg, args)
		}
		return fmt.Errorf("%s", msg)
	}
	d.warn(msg, args...)
	return nil
}

func (d *Document) warn(msg string, args ...any) {
	d.warnings = append(d.warnings, msg)
	logging.Logger().Warn(msg, args...)
}

// Warnings returns the messages of all problems which were logged rather
// than reported as errors.
func (d *Document) Warnings() []string {
	return d.warnings
}
