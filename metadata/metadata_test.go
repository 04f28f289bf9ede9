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

package metadata

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	pdf "seehuhn.de/go/pdfgen"
)

func TestFromInfo(t *testing.T) {
	info := &pdf.Info{
		Title:        "Test Document",
		Author:       "Test Author",
		Subject:      "Testing metadata",
		Creator:      "metadata_test",
		CreationDate: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	s, err := FromInfo(info, language.English)
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	err = s.Data.Write(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	packet, err := xmp.Read(buf)
	if err != nil {
		t.Fatal(err)
	}

	var got, want xmp.DublinCore
	packet.Get(&got)
	s.Data.Get(&want)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}

func TestEmbed(t *testing.T) {
	cfg := pdf.DefaultConfig()
	cfg.FileID = []byte("0123456789abcdef")
	buf := &bytes.Buffer{}
	d, err := pdf.NewDocument(buf, cfg)
	if err != nil {
		t.Fatal(err)
	}

	s, err := FromInfo(&pdf.Info{Title: "Embedded"}, language.Und)
	if err != nil {
		t.Fatal(err)
	}
	stm, err := s.Embed(d)
	if err != nil {
		t.Fatal(err)
	}
	if d.Catalog().Metadata != stm {
		t.Error("metadata not attached to the catalog")
	}
	if !bytes.Contains(stm.Data(), []byte("Embedded")) {
		t.Error("title missing from metadata packet")
	}
}

func TestEmbedOldVersion(t *testing.T) {
	cfg := pdf.DefaultConfig()
	cfg.Version = pdf.V1_3
	cfg.Policy = pdf.Strict
	d, err := pdf.NewDocument(&bytes.Buffer{}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := FromInfo(&pdf.Info{Title: "Old"}, language.Und)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Embed(d)
	if err == nil {
		t.Error("expected an error for PDF 1.3 under the strict policy")
	}
}
