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

package font

import (
	"seehuhn.de/go/pdfgen/internal/logging"
)

// EventListener receives notifications about font problems which do not
// stop document generation.
type EventListener interface {
	// FontSubstituted is called when a font was requested which is not
	// available, and a different font is used instead.
	FontSubstituted(requested, effective Triplet)

	// FontLoadingErrorAtAutoDetection is called when a font found during
	// font auto-detection cannot be loaded.
	FontLoadingErrorAtAutoDetection(fontURL string, err error)

	// GlyphNotAvailable is called when a character cannot be shown
	// because the font has no glyph for it.
	GlyphNotAvailable(r rune, fontName string)
}

// logListener reports all events to the log.
type logListener struct{}

func (logListener) FontSubstituted(requested, effective Triplet) {
	logging.Logger().Warn("font substituted",
		"requested", requested.String(), "effective", effective.String())
}

func (logListener) FontLoadingErrorAtAutoDetection(fontURL string, err error) {
	logging.Logger().Warn("unable to load font",
		"url", fontURL, "error", err)
}

func (logListener) GlyphNotAvailable(r rune, fontName string) {
	logging.Logger().Warn("glyph not available",
		"char", string(r), "code", r, "font", fontName)
}

// Listener returns l, or a listener which writes all events to the log
// if l is nil.
func Listener(l EventListener) EventListener {
	if l == nil {
		return logListener{}
	}
	return l
}
