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

package outline

import (
	"bytes"
	"testing"

	"seehuhn.de/go/geom/rect"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/action"
	"seehuhn.de/go/pdfgen/pagetree"
)

func newTestDocument(t *testing.T, buf *bytes.Buffer, policy pdf.Policy) *pdf.Document {
	t.Helper()
	cfg := pdf.DefaultConfig()
	cfg.Compress = false
	cfg.Policy = policy
	cfg.FileID = []byte("0123456789abcdef")
	d, err := pdf.NewDocument(buf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func addPages(t *testing.T, d *pdf.Document, n int) *pagetree.Tree {
	t.Helper()
	tree := pagetree.New(d, n, rect.Rect{URx: 200, URy: 200})
	for i := range n {
		p, err := tree.NewPage(i)
		if err != nil {
			t.Fatal(err)
		}
		err = p.Finish()
		if err != nil {
			t.Fatal(err)
		}
	}
	return tree
}

func TestCount(t *testing.T) {
	ch1 := &Item{Title: "Chapter 1", Open: true}
	ch1.AddChild("Section 1.1", nil)
	ch1.AddChild("Section 1.2", nil)
	ch2 := &Item{Title: "Chapter 2"}
	ch2.AddChild("Section 2.1", nil).AddChild("Paragraph", nil)

	ww := &writer{count: map[*Item]int{}}
	if got := ww.getCount(ch1); got != 3 {
		t.Errorf("open item: got %d, want 3", got)
	}
	if got := ww.getCount(ch2); got != 1 {
		t.Errorf("closed item: got %d, want 1", got)
	}
	if ww.count[ch1] != 2 || ww.count[ch2] != -1 {
		t.Errorf("wrong counts %v", ww.count)
	}
	if !ww.hasOpen {
		t.Error("open item not detected")
	}
}

func TestWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	d := newTestDocument(t, buf, pdf.Strict)

	// targets are created before the pages they point to
	t1 := &action.Target{}
	t2 := &action.Target{}

	o := New(d)
	ch1 := o.AddItem("Chapter 1", t1)
	ch1.Open = true
	ch1.Bold = true
	ch1.AddChild("Section 1.1", t1)
	ch1.AddChild("Section 1.2", t2)
	ch2 := o.AddItem("Chapter 2", t2)
	ch2.AddChild("Section 2.1", t2)

	tree := addPages(t, d, 2)
	tree.Page(0).Resolve(t1, 0, 200)
	tree.Page(1).Resolve(t2, 0, 100)

	err := d.Close()
	if err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	for _, s := range []string{
		"/PageMode /UseOutlines",
		"/Type /Outlines",
		"/Title (Chapter 1)",
		"/Title (Section 2.1)",
		"/Count 4",
		"/Count 2",
		"/Count -1",
		"/F 2",
		"/XYZ 0 100 null",
	} {
		if !bytes.Contains(out, []byte(s)) {
			t.Errorf("output does not contain %q", s)
		}
	}
}

func TestUnresolved(t *testing.T) {
	d := newTestDocument(t, &bytes.Buffer{}, pdf.Strict)
	o := New(d)
	o.AddItem("Nowhere", &action.Target{})
	addPages(t, d, 1)
	if err := d.Close(); err == nil {
		t.Error("unresolved target accepted under the strict policy")
	}

	d = newTestDocument(t, &bytes.Buffer{}, pdf.Lenient)
	o = New(d)
	o.AddItem("Nowhere", &action.Target{})
	addPages(t, d, 1)
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if len(d.Warnings()) != 1 {
		t.Errorf("got warnings %q", d.Warnings())
	}
}

func TestBothTargetAndAction(t *testing.T) {
	d := newTestDocument(t, &bytes.Buffer{}, pdf.Lenient)
	o := New(d)
	item := o.AddItem("Both", &action.Target{})
	item.Action = action.URI("https://example.com/")
	addPages(t, d, 1)
	if err := d.Close(); err == nil {
		t.Error("item with target and action accepted")
	}
}
