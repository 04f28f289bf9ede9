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

// Lookup finds the font to use for the given family, style and weight.
//
// If substitutable is false, only an exact match is returned.  Otherwise
// the weight is adjusted, then the style is replaced by "normal", then an
// exact match for the family "any" is tried, and finally [DefaultTriplet]
// is used.  The first substitution for each requested triplet is reported
// to the event listener.
//
// The second return value is false if no font was found.
func (fi *Info) Lookup(family, style string, weight int, substitutable bool) (Triplet, bool) {
	requested := Triplet{Family: family, Style: style, Weight: weight}

	fi.mu.Lock()
	t, ok := fi.lookupLocked(family, style, weight, substitutable)
	notify := false
	if ok && !t.Equal(requested) && !fi.logged[requested.Key()] {
		fi.logged[requested.Key()] = true
		notify = true
	}
	l := fi.listener
	fi.mu.Unlock()

	if !ok {
		return Triplet{}, false
	}
	if notify {
		l.FontSubstituted(requested, t)
	}
	return t, true
}

func (fi *Info) lookupLocked(family, style string, weight int, substitutable bool) (Triplet, bool) {
	if t, ok := fi.triplets[TripletKey{family, style, weight}]; ok {
		return t, true
	}
	if !substitutable {
		return Triplet{}, false
	}

	if t, ok := fi.adjustWeight(family, style, weight); ok {
		return t, true
	}
	if style != StyleNormal {
		if t, ok := fi.triplets[TripletKey{family, StyleNormal, weight}]; ok {
			return t, true
		}
		if t, ok := fi.adjustWeight(family, StyleNormal, weight); ok {
			return t, true
		}
	}
	if family != AnyFamily {
		if t, ok := fi.lookupLocked(AnyFamily, style, weight, false); ok {
			return t, true
		}
	}

	// last resort, registered by every valid setup
	t, ok := fi.triplets[DefaultTriplet.Key()]
	return t, ok
}

// adjustWeight tries the fallback weights for the given family and style.
func (fi *Info) adjustWeight(family, style string, weight int) (Triplet, bool) {
	for _, w := range fallbackWeights(weight) {
		if t, ok := fi.triplets[TripletKey{family, style, w}]; ok {
			return t, true
		}
	}
	return Triplet{}, false
}

// fallbackWeights lists the weights to try, in order, when no font of the
// requested weight is available.  Weights between the steps of the scale
// 100, 200, ..., 900 are snapped to the scale while scanning.
func fallbackWeights(weight int) []int {
	var res []int
	switch {
	case weight <= 400:
		// downwards to 100, then upwards to 400
		for w := (weight - 1) / 100 * 100; w >= 100; w -= 100 {
			res = append(res, w)
		}
		for w := (weight/100 + 1) * 100; w <= 400; w += 100 {
			res = append(res, w)
		}
	case weight <= 500:
		res = append(res, 400)
	default:
		// upwards to 900, then downwards to 400
		for w := (weight/100 + 1) * 100; w <= 900; w += 100 {
			res = append(res, w)
		}
		for w := (weight - 1) / 100 * 100; w >= 400; w -= 100 {
			res = append(res, w)
		}
	}
	if weight != 400 && (len(res) == 0 || res[len(res)-1] != 400) {
		res = append(res, 400)
	}
	return res
}

// LookupFamilies finds the fonts for a list of families.
//
// All families are first tried without substitution, and all exact
// matches are returned in the order of the families.  If none of the
// families matches exactly, the first family which can be resolved with
// substitution is used.
func (fi *Info) LookupFamilies(families []string, style string, weight int) ([]Triplet, error) {
	if len(families) == 0 {
		return nil, ErrNoFamilies
	}

	var res []Triplet
	for _, family := range families {
		if t, ok := fi.Lookup(family, style, weight, false); ok {
			res = append(res, t)
		}
	}
	if len(res) > 0 {
		return res, nil
	}

	for _, family := range families {
		if t, ok := fi.Lookup(family, style, weight, true); ok {
			return []Triplet{t}, nil
		}
	}
	return nil, ErrNoFontFound
}

// Find resolves a list of families to a font, marks the font as used,
// and returns the font key together with the font.
func (fi *Info) Find(families []string, style string, weight int) (string, Typeface, error) {
	triplets, err := fi.LookupFamilies(families, style, weight)
	if err != nil {
		return "", nil, err
	}
	key := fi.FontKey(triplets[0])
	f := fi.UseFont(key)
	if f == nil {
		return "", nil, ErrNoFontFound
	}
	return key, f, nil
}
