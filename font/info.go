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
	"strconv"
	"sync"

	"golang.org/x/exp/slices"
)

// Info is a registry of the fonts available for a document.  Fonts are
// registered under a font key (for example "F1"), and each font key is
// reachable through one or more triplets.
//
// Info is safe for concurrent use.
type Info struct {
	mu sync.Mutex

	triplets map[TripletKey]Triplet
	keys     map[TripletKey]string
	fonts    map[string]Typeface
	used     map[string]Typeface
	nextKey  int

	// logged records the requested triplets for which a substitution
	// has already been reported.
	logged map[TripletKey]bool

	listener EventListener
}

// NewInfo returns an empty font registry.
// If l is nil, font events are written to the log.
func NewInfo(l EventListener) *Info {
	return &Info{
		triplets: make(map[TripletKey]Triplet),
		keys:     make(map[TripletKey]string),
		fonts:    make(map[string]Typeface),
		used:     make(map[string]Typeface),
		logged:   make(map[TripletKey]bool),
		listener: Listener(l),
	}
}

// SetEventListener changes the listener for font events.
func (fi *Info) SetEventListener(l EventListener) {
	fi.mu.Lock()
	fi.listener = Listener(l)
	fi.mu.Unlock()
}

// EventListener returns the listener for font events.  The result is
// never nil.
func (fi *Info) EventListener() EventListener {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	return fi.listener
}

// Add registers a font under a new font key, and makes it available
// through the given triplets.  The new font key is returned.
func (fi *Info) Add(f Typeface, triplets ...Triplet) string {
	fi.mu.Lock()
	fi.nextKey++
	key := "F" + strconv.Itoa(fi.nextKey)
	for {
		if _, exists := fi.fonts[key]; !exists {
			break
		}
		fi.nextKey++
		key = "F" + strconv.Itoa(fi.nextKey)
	}
	fi.mu.Unlock()

	fi.AddMetrics(key, f)
	for _, t := range triplets {
		fi.AddFontProperties(key, t)
	}
	return key
}

// AddMetrics registers the font f under the given font key.
func (fi *Info) AddMetrics(key string, f Typeface) {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	fi.fonts[key] = f
}

// AddFontProperties makes the font with the given key available through
// triplet t.  If the triplet is already registered, the registration with
// the lower priority value is kept.
func (fi *Info) AddFontProperties(key string, t Triplet) {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	k := t.Key()
	if old, exists := fi.triplets[k]; exists && old.Priority <= t.Priority {
		return
	}
	fi.triplets[k] = t
	fi.keys[k] = key
}

// FontKey returns the font key registered for a triplet.  The empty
// string is returned if the triplet is not registered.
func (fi *Info) FontKey(t Triplet) string {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	return fi.keys[t.Key()]
}

// HasFont reports whether a font is registered for the exact triplet.
func (fi *Info) HasFont(family, style string, weight int) bool {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	_, ok := fi.keys[TripletKey{family, style, weight}]
	return ok
}

// IsSetupValid reports whether the default triplet
// ("any", "normal", 400) is registered.  Font lookup always succeeds on
// valid setups.
func (fi *Info) IsSetupValid() bool {
	return fi.FontKey(DefaultTriplet) != ""
}

// Triplets returns all registered triplets, ordered by family, style and
// weight.
func (fi *Info) Triplets() []Triplet {
	fi.mu.Lock()
	res := make([]Triplet, 0, len(fi.triplets))
	for _, t := range fi.triplets {
		res = append(res, t)
	}
	fi.mu.Unlock()

	slices.SortFunc(res, func(a, b Triplet) int {
		switch {
		case a.Family != b.Family:
			return cmpString(a.Family, b.Family)
		case a.Style != b.Style:
			return cmpString(a.Style, b.Style)
		default:
			return a.Weight - b.Weight
		}
	})
	return res
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Fonts returns all registered fonts, indexed by font key.
func (fi *Info) Fonts() map[string]Typeface {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	res := make(map[string]Typeface, len(fi.fonts))
	for k, f := range fi.fonts {
		res[k] = f
	}
	return res
}

// UseFont marks the font with the given key as used, and returns it.
// The result is nil if no font is registered for the key.
func (fi *Info) UseFont(key string) Typeface {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	f, ok := fi.fonts[key]
	if !ok {
		return nil
	}
	fi.used[key] = f
	return f
}

// UsedFonts returns the fonts marked as used, indexed by font key.
func (fi *Info) UsedFonts() map[string]Typeface {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	res := make(map[string]Typeface, len(fi.used))
	for k, f := range fi.used {
		res[k] = f
	}
	return res
}

// UsedKeys returns the keys of the used fonts in increasing order.
func (fi *Info) UsedKeys() []string {
	fi.mu.Lock()
	keys := make([]string, 0, len(fi.used))
	for k := range fi.used {
		keys = append(keys, k)
	}
	fi.mu.Unlock()

	slices.SortFunc(keys, compareKeys)
	return keys
}

// compareKeys orders "F2" before "F10".
func compareKeys(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return cmpString(a, b)
}
