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

package loader

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
)

const testAFM = `StartFontMetrics 4.1
FontName Test-Roman
FullName Test Roman
FamilyName Test
Weight Roman
ItalicAngle 0
IsFixedPitch false
FontBBox -10 -200 1000 900
CapHeight 700
XHeight 500
Ascender 750
Descender -250
StartCharMetrics 2
C 32 ; WX 250 ; N space ; B 0 0 0 0 ;
C 65 ; WX 700 ; N A ; B 10 0 690 700 ;
EndCharMetrics
EndFontMetrics
`

type loadErrors struct {
	mu   sync.Mutex
	urls []string
}

func (r *loadErrors) FontSubstituted(_, _ font.Triplet) {}
func (r *loadErrors) FontLoadingErrorAtAutoDetection(url string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
}
func (r *loadErrors) GlyphNotAvailable(rune, string) {}

func testOpen(url string) (io.ReadCloser, error) {
	if url == "mem:test.afm" {
		return io.NopCloser(strings.NewReader(testAFM)), nil
	}
	return Open(url)
}

func triplet(family string) font.Triplet {
	return font.Triplet{Family: family, Style: font.StyleNormal, Weight: font.WeightNormal}
}

func TestLoad(t *testing.T) {
	entries := []EmbedFontInfo{
		{
			MetricsURL: "gofont:mono",
			EmbedURL:   "gofont:mono",
			Triplets:   []font.Triplet{triplet("Code")},
		},
		{
			MetricsURL:   "gofont:regular",
			EncodingMode: SingleByte,
			Kerning:      true,
			Triplets:     []font.Triplet{triplet("Body"), triplet(font.AnyFamily)},
		},
		{
			MetricsURL: "mem:test.afm",
			Triplets:   []font.Triplet{triplet("Test")},
		},
	}
	fi := font.NewInfo(nil)
	err := Load(context.Background(), fi, entries, &Options{Open: testOpen})
	require.NoError(t, err)

	assert.True(t, fi.IsSetupValid())
	assert.Equal(t, "F1", fi.FontKey(triplet("Code")))
	assert.Equal(t, "F2", fi.FontKey(triplet("Body")))
	assert.Equal(t, "F3", fi.FontKey(triplet("Test")))

	// the configured font replaces the default for "any"
	assert.Equal(t, "F2", fi.FontKey(triplet(font.AnyFamily)))
	assert.NotEmpty(t, fi.FontKey(triplet("Go Mono")))

	fonts := fi.Fonts()
	assert.Equal(t, font.MultiByteCID, fonts["F1"].Kind())
	assert.True(t, fonts["F1"].IsEmbeddable())
	assert.Equal(t, font.SingleByte, fonts["F2"].Kind())
	assert.False(t, fonts["F2"].IsEmbeddable())
	assert.Equal(t, "Test-Roman", fonts["F3"].FontName())
}

func TestLenient(t *testing.T) {
	rec := &loadErrors{}
	entries := []EmbedFontInfo{
		{MetricsURL: "/does/not/exist.ttf", Triplets: []font.Triplet{triplet("Missing")}},
		{MetricsURL: "gofont:regular"}, // no triplets
		{MetricsURL: "mem:test.afm", EncodingMode: CID, Triplets: []font.Triplet{triplet("Test")}},
	}
	fi := font.NewInfo(nil)
	err := Load(context.Background(), fi, entries, &Options{
		Policy:   pdf.Lenient,
		Listener: rec,
		Open:     testOpen,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/does/not/exist.ttf", "gofont:regular", "mem:test.afm"}, rec.urls)
	assert.False(t, fi.HasFont("Missing", font.StyleNormal, font.WeightNormal))
	assert.True(t, fi.IsSetupValid())
}

func TestStrict(t *testing.T) {
	entries := []EmbedFontInfo{
		{MetricsURL: "/does/not/exist.ttf", Triplets: []font.Triplet{triplet("Missing")}},
	}
	fi := font.NewInfo(nil)
	err := Load(context.Background(), fi, entries, &Options{Policy: pdf.Strict})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFontLoad))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, fi.Fonts())
}

func TestNoDefaults(t *testing.T) {
	fi := font.NewInfo(nil)
	err := Load(context.Background(), fi, nil, &Options{NoDefaults: true})
	require.NoError(t, err)
	assert.False(t, fi.IsSetupValid())

	AddDefaults(fi, nil)
	assert.True(t, fi.IsSetupValid())
	for _, f := range fi.Fonts() {
		lazy, ok := f.(*font.Lazy)
		require.True(t, ok)
		assert.False(t, lazy.IsLoaded())
	}
}

func TestReadFontMap(t *testing.T) {
	in := `# test fonts
cid+kern gofont:mono gofont:mono Go Mono,normal,400;monospace,normal,400
single-byte /usr/share/fonts/test.afm - Test,italic,700
`
	entries, err := ReadFontMap(strings.NewReader(in))
	require.NoError(t, err)
	want := []EmbedFontInfo{
		{
			MetricsURL:   "gofont:mono",
			EmbedURL:     "gofont:mono",
			Kerning:      true,
			EncodingMode: CID,
			Triplets: []font.Triplet{
				{Family: "Go Mono", Style: "normal", Weight: 400},
				{Family: "monospace", Style: "normal", Weight: 400},
			},
		},
		{
			MetricsURL:   "/usr/share/fonts/test.afm",
			EncodingMode: SingleByte,
			Triplets:     []font.Triplet{{Family: "Test", Style: "italic", Weight: 700}},
		},
	}
	assert.Equal(t, want, entries)

	_, err = ReadFontMap(strings.NewReader("auto gofont:mono -\n"))
	assert.Error(t, err)
	_, err = ReadFontMap(strings.NewReader("fancy gofont:mono - Go,normal,400\n"))
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	r, err := Open("gofont:regular")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.NotEmpty(t, data)

	_, err = Open("gofont:comic-sans")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	_, err = Open("https://example.com/font.ttf")
	assert.Error(t, err)
}
