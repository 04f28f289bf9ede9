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

// Package font provides the font registry used during PDF generation.
//
// Fonts are described by the [Typeface] interface.  A font registry,
// [Info], maps font triplets (family, style, weight) to fonts, and
// implements the substitution rules used when no exact match for a
// requested triplet exists.  Problems which do not stop document
// generation, like a missing glyph, are reported through an
// [EventListener].
//
// The subpackages implement code point mappings for single-byte fonts
// (mapping), glyph subsets for CID fonts (subset), the fonts themselves
// (single and cid), font loading (loader), CMap generation (cmap) and the
// PDF font dictionaries (embed).
package font
