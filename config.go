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

package pdf

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Version represents a version of the PDF standard.
type Version int

// PDF versions supported for writing.
const (
	_ Version = iota
	V1_0
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ParseVersion parses a PDF version string like "1.7".
func ParseVersion(s string) (Version, error) {
	for v := V1_0; v <= V2_0; v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unsupported PDF version %q", s)
}

func (v Version) String() string {
	switch {
	case v >= V1_0 && v <= V1_7:
		return fmt.Sprintf("1.%d", int(v-V1_0))
	case v == V2_0:
		return "2.0"
	default:
		return fmt.Sprintf("pdf.Version(%d)", int(v))
	}
}

// Policy decides how recoverable problems, like a missing font file or an
// unavailable cipher, are handled.
type Policy int

const (
	// Lenient logs recoverable problems and continues with a substitute.
	Lenient Policy = iota

	// Strict turns recoverable problems into errors.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("pdf.Policy(%d)", int(p))
	}
}

// Config holds the document-wide settings for writing a PDF file.
type Config struct {
	Version Version `validate:"min=1,max=9"`
	Policy  Policy  `validate:"min=0,max=1"`

	// Compress selects whether content streams and embedded files are
	// compressed using the FlateDecode filter.
	Compress bool

	// Encryption, if non-nil, enables encryption of strings and streams.
	Encryption *EncryptionParams

	// FileID, if set, is used as the file identifier in the trailer.
	// Otherwise an identifier is derived from the document information.
	FileID []byte `validate:"omitempty,len=16"`

	Producer     string
	CreationDate time.Time
}

// EncryptionParams configures the standard security handler.
type EncryptionParams struct {
	UserPassword  string `validate:"max=127"`
	OwnerPassword string `validate:"max=127"`

	// Permissions lists the operations allowed for users who only know the
	// user password.
	Permissions Perm

	Cipher Cipher `validate:"min=0,max=3"`

	// Required makes it an error if encryption cannot be used.  Otherwise,
	// the document is written unencrypted and a warning is logged.
	Required bool
}

// Cipher selects the encryption algorithm and key length.
type Cipher int

// The supported encryption methods.
const (
	CipherAES128 Cipher = iota
	CipherRC4_40
	CipherRC4_128
	CipherAES256
)

func (c Cipher) String() string {
	switch c {
	case CipherRC4_40:
		return "RC4-40"
	case CipherRC4_128:
		return "RC4-128"
	case CipherAES128:
		return "AES-128"
	case CipherAES256:
		return "AES-256"
	default:
		return fmt.Sprintf("pdf.Cipher(%d)", int(c))
	}
}

// minVersion returns the first PDF version which supports the cipher.
func (c Cipher) minVersion() Version {
	switch c {
	case CipherRC4_40:
		return V1_1
	case CipherRC4_128:
		return V1_4
	case CipherAES128:
		return V1_6
	default:
		return V2_0
	}
}

// DefaultConfig returns the configuration used by [NewDocument] when no
// configuration is given.
func DefaultConfig() *Config {
	return &Config{
		Version:  V1_7,
		Policy:   Lenient,
		Compress: true,
		Producer: "seehuhn.de/go/pdfgen",
	}
}

// Validate checks that the configuration is usable.
func (cfg *Config) Validate() error {
	validate := validator.New()
	err := validate.Struct(cfg)
	if err != nil {
		return err
	}
	if cfg.Encryption != nil {
		err = validate.Struct(cfg.Encryption)
		if err != nil {
			return err
		}
		if v := cfg.Encryption.Cipher.minVersion(); cfg.Version < v {
			return fmt.Errorf("%s encryption requires PDF version %s", cfg.Encryption.Cipher, v)
		}
	}
	if cfg.Version == V2_0 && cfg.Encryption != nil {
		switch cfg.Encryption.Cipher {
		case CipherRC4_40, CipherRC4_128:
			return errors.New("RC4 encryption is deprecated in PDF 2.0")
		}
	}
	return nil
}
