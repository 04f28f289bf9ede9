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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Font styles.
const (
	StyleNormal  = "normal"
	StyleItalic  = "italic"
	StyleOblique = "oblique"
)

// Font weights.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// AnyFamily is the family name used as the last resort during font
// lookup.  A font must always be registered for the triplet
// (AnyFamily, StyleNormal, WeightNormal).
const AnyFamily = "any"

// DefaultTriplet is the triplet which must be registered for a valid
// setup.
var DefaultTriplet = Triplet{Family: AnyFamily, Style: StyleNormal, Weight: WeightNormal}

// Triplet describes a font by family name, style and weight.
//
// Priority is used when several fonts are registered for the same
// triplet: the font with the lowest priority value wins.  Priority is
// not part of the identity of a triplet.
type Triplet struct {
	Family   string `validate:"required"`
	Style    string `validate:"required"`
	Weight   int    `validate:"min=100,max=900"`
	Priority int
}

// TripletKey is the comparable identity of a [Triplet].
type TripletKey struct {
	Family string
	Style  string
	Weight int
}

// Key returns the identity of t, without the priority.
func (t Triplet) Key() TripletKey {
	return TripletKey{Family: t.Family, Style: t.Style, Weight: t.Weight}
}

// Equal reports whether two triplets name the same font, ignoring the
// priority.
func (t Triplet) Equal(other Triplet) bool {
	return t.Key() == other.Key()
}

func (t Triplet) String() string {
	return t.Family + "," + t.Style + "," + strconv.Itoa(t.Weight)
}

// ParseTriplet parses a triplet in the form "family,style,weight".
func ParseTriplet(s string) (Triplet, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Triplet{}, fmt.Errorf("invalid font triplet %q", s)
	}
	weight, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || weight < 100 || weight > 900 {
		return Triplet{}, fmt.Errorf("invalid font weight in %q", s)
	}
	return Triplet{
		Family: strings.TrimSpace(parts[0]),
		Style:  strings.TrimSpace(parts[1]),
		Weight: weight,
	}, nil
}

var (
	// ErrNoFamilies is returned when a font lookup is requested without
	// any family names.
	ErrNoFamilies = errors.New("no font families given")

	// ErrNoFontFound is returned if no font matches a lookup, not even
	// after substitution.  This only happens if the setup is invalid,
	// see [Info.IsSetupValid].
	ErrNoFontFound = errors.New("no matching font found")
)
