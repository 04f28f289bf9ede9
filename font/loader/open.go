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
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"seehuhn.de/go/pdfgen/font/gofont"
)

// Open opens a font URL.  The following forms are supported:
//
//	gofont:<name>        one of the Go fonts, for example "gofont:mono"
//	file:///path/to/file a local file
//	/path/to/file        a local file
//
// The returned io.ReadCloser must be closed by the caller.
func Open(fontURL string) (io.ReadCloser, error) {
	scheme, rest, found := strings.Cut(fontURL, ":")
	if !found || len(scheme) < 2 {
		// no scheme, or a Windows drive letter
		return os.Open(fontURL)
	}

	switch scheme {
	case gofont.URLScheme:
		f, ok := gofont.ByName(rest)
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: fontURL, Err: fs.ErrNotExist}
		}
		return io.NopCloser(bytes.NewReader(f.TTF())), nil
	case "file":
		u, err := url.Parse(fontURL)
		if err != nil {
			return nil, err
		}
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("unsupported font URL scheme %q", scheme)
	}
}
