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

// Package loader registers fonts from configuration entries with a
// [font.Info].
//
// Every entry names a metrics file, optionally a font file to embed, and
// the triplets under which the font can be found.  Entries are loaded
// concurrently and registered in configuration order.  The Go fonts are
// registered as the default font set, so that every lookup succeeds.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/postscript/afm"
	"seehuhn.de/go/sfnt"

	pdf "seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/font/cid"
	"seehuhn.de/go/pdfgen/font/gofont"
	"seehuhn.de/go/pdfgen/font/single"
	"seehuhn.de/go/pdfgen/internal/logging"
)

// EncodingMode selects how the characters of a font are encoded.
type EncodingMode int

// The supported encoding modes.
const (
	// Auto uses single-byte encoding for Type 1 fonts, and CID encoding
	// for TrueType and OpenType fonts.
	Auto EncodingMode = iota
	SingleByte
	CID
)

func (m EncodingMode) String() string {
	switch m {
	case Auto:
		return "auto"
	case SingleByte:
		return "single-byte"
	case CID:
		return "cid"
	default:
		return fmt.Sprintf("loader.EncodingMode(%d)", int(m))
	}
}

// ParseEncodingMode converts the output of [EncodingMode.String] back to
// an encoding mode.
func ParseEncodingMode(s string) (EncodingMode, error) {
	for m := Auto; m <= CID; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid encoding mode %q", s)
}

// EmbedFontInfo describes a font from the configuration.
type EmbedFontInfo struct {
	// MetricsURL locates the font metrics.  This is either an AFM file
	// or a TrueType/OpenType font file.
	MetricsURL string `validate:"required"`

	// EmbedURL, if set, locates the TrueType/OpenType font file which is
	// embedded in the PDF file.  Fonts without an EmbedURL are used
	// without embedding.
	EmbedURL string

	Kerning      bool
	EncodingMode EncodingMode `validate:"min=0,max=2"`

	Triplets []font.Triplet `validate:"min=1,dive"`
}

// ErrFontLoad is returned (wrapped) when a configured font cannot be
// loaded under the strict policy.
var ErrFontLoad = errors.New("cannot load font")

// Options control how fonts are loaded.
type Options struct {
	// Policy decides what happens when a font cannot be loaded.  Under
	// the lenient policy the font is skipped, under the strict policy
	// loading fails.
	Policy pdf.Policy

	// Listener receives font events.  If nil, the listener of the
	// font.Info is used.
	Listener font.EventListener

	// Open opens font URLs.  If nil, [Open] is used.
	Open func(url string) (io.ReadCloser, error)

	// NoDefaults disables the registration of the Go fonts.
	NoDefaults bool
}

// Load loads all entries and registers them with fi.  Fonts are
// registered in the order of entries, and the Go fonts are added
// afterwards.
func Load(ctx context.Context, fi *font.Info, entries []EmbedFontInfo, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	l := opt.Listener
	if l == nil {
		l = fi.EventListener()
	}
	open := opt.Open
	if open == nil {
		open = Open
	}

	validate := validator.New()
	fonts := make([]font.Typeface, len(entries))
	errs := make([]error, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	for i := range entries {
		e := &entries[i]
		g.Go(func() error {
			err := validate.Struct(e)
			if err == nil {
				fonts[i], err = loadEntry(ctx, e, open, l)
			}
			if err != nil {
				err = fmt.Errorf("%w %q: %w", ErrFontLoad, e.MetricsURL, err)
				if opt.Policy == pdf.Strict {
					return err
				}
				errs[i] = err
			}
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return err
	}

	for i, e := range entries {
		if errs[i] != nil {
			logging.Logger().Warn("skipping font", "url", e.MetricsURL, "error", errs[i])
			l.FontLoadingErrorAtAutoDetection(e.MetricsURL, errs[i])
			continue
		}
		fi.Add(fonts[i], e.Triplets...)
	}

	if !opt.NoDefaults {
		AddDefaults(fi, l)
	}
	return nil
}

func loadEntry(ctx context.Context, e *EmbedFontInfo, open func(string) (io.ReadCloser, error), l font.EventListener) (font.Typeface, error) {
	metrics, err := readAll(ctx, open, e.MetricsURL)
	if err != nil {
		return nil, err
	}

	if isAFM(metrics) {
		if e.EncodingMode == CID {
			return nil, errors.New("CID encoding requires a TrueType or OpenType font")
		}
		if e.EmbedURL != "" {
			logging.Logger().Info("Type 1 fonts are not embedded", "url", e.EmbedURL)
		}
		m, err := afm.Read(bytes.NewReader(metrics))
		if err != nil {
			return nil, err
		}
		return single.FromAFM(m, &single.Options{
			Kerning:  e.Kerning,
			Listener: l,
		})
	}

	embed := e.EmbedURL != ""
	body := metrics
	if embed && e.EmbedURL != e.MetricsURL {
		body, err = readAll(ctx, open, e.EmbedURL)
		if err != nil {
			return nil, err
		}
	}
	info, err := sfnt.Read(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return fromSFNT(info, e.EncodingMode, e.Kerning, embed, l)
}

func fromSFNT(info *sfnt.Font, mode EncodingMode, kerning, embed bool, l font.EventListener) (font.Typeface, error) {
	if mode == SingleByte {
		return single.FromSFNT(info, &single.Options{
			Kerning:  kerning,
			Embed:    embed,
			Listener: l,
		})
	}
	return cid.New(info, &cid.Options{
		Kerning:  kerning,
		Embed:    embed,
		Listener: l,
	})
}

func readAll(ctx context.Context, open func(string) (io.ReadCloser, error), url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := open(url)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func isAFM(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("StartFontMetrics"))
}

// AddDefaults registers the Go fonts with fi.  The fonts are loaded on
// first use.  Triplets which are already registered with a lower priority
// value are not replaced.
func AddDefaults(fi *font.Info, l font.EventListener) {
	for _, f := range gofont.All {
		load := func() (font.Typeface, error) {
			info, err := f.SFNT()
			if err != nil {
				return nil, err
			}
			return fromSFNT(info, Auto, true, true, l)
		}
		lazy := font.NewLazy("", f.URL(), load, nil, l)
		fi.Add(lazy, f.Triplets()...)
	}
}
