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
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/rc4"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"

	"github.com/xdg-go/stringprep"
)

// encryptInfo holds the state of the standard security handler while a
// document is written.
type encryptInfo struct {
	sec    *stdSecHandler
	cipher cipherType
	v      int
}

// newEncryptInfo sets up the standard security handler for a new document.
// The file identifier id is part of the key derivation for revisions 2 to 4.
func newEncryptInfo(params *EncryptionParams, id []byte) (*encryptInfo, error) {
	var length, v int
	var ct cipherType
	switch params.Cipher {
	case CipherRC4_40:
		length, v, ct = 40, 1, cipherRC4
	case CipherRC4_128:
		length, v, ct = 128, 2, cipherRC4
	case CipherAES128:
		length, v, ct = 128, 4, cipherAES
	case CipherAES256:
		length, v, ct = 256, 5, cipherAES
	default:
		return nil, fmt.Errorf("unsupported cipher %s", params.Cipher)
	}

	sec, err := createStdSecHandler(id, params.UserPassword, params.OwnerPassword,
		params.Permissions, length, v)
	if err != nil {
		return nil, err
	}
	return &encryptInfo{sec: sec, cipher: ct, v: v}, nil
}

// asDict returns the encryption dictionary.
func (enc *encryptInfo) asDict() Dict {
	sec := enc.sec
	dict := Dict{
		"Filter": Name("Standard"),
		"V":      Integer(enc.v),
		"R":      Integer(sec.R),
		"O":      String(sec.O),
		"U":      String(sec.U),
		"P":      Integer(int32(sec.P)),
	}
	switch enc.v {
	case 2:
		dict["Length"] = Integer(8 * sec.keyBytes)
	case 4:
		dict["StmF"] = Name("StdCF")
		dict["StrF"] = Name("StdCF")
		dict["CF"] = Dict{
			"StdCF": Dict{"Length": Integer(16), "CFM": Name("AESV2"), "AuthEvent": Name("DocOpen")},
		}
	case 5:
		dict["Length"] = Integer(256)
		dict["StmF"] = Name("StdCF")
		dict["StrF"] = Name("StdCF")
		dict["CF"] = Dict{
			"StdCF": Dict{"Length": Integer(32), "CFM": Name("AESV3"), "AuthEvent": Name("DocOpen")},
		}
		dict["OE"] = String(sec.OE)
		dict["UE"] = String(sec.UE)
		dict["Perms"] = String(sec.Perms)
	}
	return dict
}

// keyForRef returns the encryption key for the indirect object ref, using
// Algorithm 1 of ISO 32000-2:2020.
func (enc *encryptInfo) keyForRef(ref Reference) []byte {
	sec := enc.sec
	if sec.R == 6 {
		return sec.key
	}

	h := md5.New()
	h.Write(sec.key)
	num := ref.Number()
	gen := ref.Generation()
	h.Write([]byte{
		byte(num), byte(num >> 8), byte(num >> 16),
		byte(gen), byte(gen >> 8)})
	if enc.cipher == cipherAES {
		h.Write([]byte("sAlT"))
	}
	l := min(sec.keyBytes+5, 16)
	return h.Sum(nil)[:l]
}

// encryptBytes encrypts buf for use inside the indirect object ref.
// The contents of buf may be modified.
//
// The result only depends on the file key, ref and buf.  For AES, the
// initialisation vector is derived from the object key, ref and the plain
// text, so that repeated encoding of the same object gives the same bytes.
func (enc *encryptInfo) encryptBytes(ref Reference, buf []byte) ([]byte, error) {
	key := enc.keyForRef(ref)
	switch enc.cipher {
	case cipherAES:
		n := len(buf)
		nPad := 16 - n%16
		out := make([]byte, 16+n+nPad) // iv | c(data|padding)

		num := ref.Number()
		gen := ref.Generation()
		h := sha256.New()
		h.Write(key)
		h.Write([]byte{
			byte(num), byte(num >> 8), byte(num >> 16),
			byte(gen), byte(gen >> 8)})
		h.Write(buf)
		iv := h.Sum(nil)[:16]
		copy(out, iv)

		copy(out[16:], buf)
		for i := 16 + n; i < len(out); i++ {
			out[i] = byte(nPad)
		}

		c, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		cbc := cipher.NewCBCEncrypter(c, iv)
		cbc.CryptBlocks(out[16:], out[16:])
		return out, nil
	case cipherRC4:
		c, err := rc4.NewCipher(key)
		if err != nil {
			return nil, err
		}
		c.XORKeyStream(buf, buf)
		return buf, nil
	default:
		panic("unknown cipher")
	}
}

// probeCipher checks that the primitives needed for the given encryption
// method are available in the running program.  Some primitives panic
// or fail when the Go runtime is restricted to FIPS 140 approved
// algorithms.
var probeCipher = func(c Cipher) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s encryption unavailable: %v", c, r)
		}
	}()

	md5.Sum(nil)
	switch c {
	case CipherRC4_40, CipherRC4_128:
		_, err = rc4.NewCipher(make([]byte, 16))
	case CipherAES128:
		_, err = aes.NewCipher(make([]byte, 16))
	case CipherAES256:
		_, err = aes.NewCipher(make([]byte, 32))
		if err == nil {
			sha512.New384().Sum(nil)
		}
	}
	return err
}

type stdSecHandler struct {
	// R is the revision of the standard security handler.
	R int

	// ID is the first element of the ID array in the trailer dictionary.
	ID []byte

	// O is based on the owner password and the user password.
	O []byte

	// U is based on the user password.
	U []byte

	OE    []byte
	UE    []byte
	Perms []byte

	// P is a set of flags specifying which operations are permitted when
	// the document is opened with user access.
	P uint32

	keyBytes int
	key      []byte
}

// createStdSecHandler allocates a new PDF Standard Security Handler.
func createStdSecHandler(id []byte, userPwd, ownerPwd string, perm Perm, length, V int) (*stdSecHandler, error) {
	if ownerPwd == "" {
		ownerPwd = userPwd
	}

	var R int
	switch {
	case V < 2 && perm.canR2():
		R = 2
	case V <= 3:
		R = 3
	case V == 4:
		R = 4
	case V == 5:
		R = 6
	default:
		return nil, errors.New("invalid Encrypt.V")
	}

	sec := &stdSecHandler{
		ID:       id,
		keyBytes: length / 8,
		R:        R,
		P:        stdSecPermToP(perm),
	}

	switch R {
	case 2, 3, 4:
		paddedUserPwd, err := padPasswd(userPwd)
		if err != nil {
			return nil, err
		}
		paddedOwnerPwd, err := padPasswd(ownerPwd)
		if err != nil {
			return nil, err
		}
		sec.O = sec.computeO(paddedUserPwd, paddedOwnerPwd)
		sec.key = sec.computeFileEncryptionKey(paddedUserPwd)
		sec.U = sec.computeU(sec.key)
	case 6:
		utf8UserPwd, err := utf8Passwd(userPwd)
		if err != nil {
			return nil, err
		}
		utf8OwnerPwd, err := utf8Passwd(ownerPwd)
		if err != nil {
			return nil, err
		}
		sec.key = make([]byte, 32)
		_, err = rand.Read(sec.key)
		if err != nil {
			return nil, err
		}
		sec.U, sec.UE, err = sec.computeUAndUE(utf8UserPwd)
		if err != nil {
			return nil, err
		}
		sec.O, sec.OE, err = sec.computeOAndOE(utf8OwnerPwd)
		if err != nil {
			return nil, err
		}
		sec.Perms = sec.computePerms(sec.key)
	}

	return sec, nil
}

// Algorithm 2: compute the file encryption key for R <= 4.
func (sec *stdSecHandler) computeFileEncryptionKey(paddedUserPwd []byte) []byte {
	h := md5.New()
	h.Write(paddedUserPwd)
	h.Write(sec.O)
	h.Write([]byte{
		byte(sec.P), byte(sec.P >> 8), byte(sec.P >> 16), byte(sec.P >> 24)})
	h.Write(sec.ID)
	key := h.Sum(nil)

	if sec.R >= 3 {
		for range 50 {
			h.Reset()
			h.Write(key[:sec.keyBytes])
			key = h.Sum(key[:0])
		}
	}

	return key[:sec.keyBytes]
}

// Algorithm 2.B: computing a hash (revision 6)
func slowHash(passwd, salt, U []byte) []byte {
	h := sha256.New()
	h.Write(passwd)
	h.Write(salt)
	h.Write(U)
	K := h.Sum(nil)

	K1 := make([]byte, 64*(len(passwd)+64+len(U)))

	// At least 64 rounds, then continue until the last byte of E is at
	// most the round number minus 32.
	for i := 0; i < 64 || K1[len(K1)-1] > byte(i-32); i++ {
		K1 = K1[:0]
		for range 64 {
			K1 = append(K1, passwd...)
			K1 = append(K1, K...)
			K1 = append(K1, U...)
		}

		c, _ := aes.NewCipher(K[:16])
		cbc := cipher.NewCBCEncrypter(c, K[16:32])
		// len(K1) is a multiple of 64
		cbc.CryptBlocks(K1, K1)

		// (a*256)%3 == a%3, so the bytes can simply be added
		var rem int
		for _, b := range K1[:16] {
			rem += int(b)
		}
		rem %= 3

		var h hash.Hash
		switch rem {
		case 0:
			h = sha256.New()
		case 1:
			h = sha512.New384()
		case 2:
			h = sha512.New()
		}
		h.Write(K1)
		K = h.Sum(K[:0])
	}

	return K[:32]
}

// Algorithm 3: compute O.
func (sec *stdSecHandler) computeO(paddedUserPwd, paddedOwnerPwd []byte) []byte {
	h := md5.New()
	h.Write(paddedOwnerPwd)
	sum := h.Sum(nil)
	if sec.R >= 3 {
		for range 50 {
			h.Reset()
			h.Write(sum[:sec.keyBytes])
			sum = h.Sum(sum[:0])
		}
	}
	rc4key := sum[:sec.keyBytes]

	c, _ := rc4.NewCipher(rc4key)
	O := make([]byte, 32)
	c.XORKeyStream(O, paddedUserPwd)
	if sec.R >= 3 {
		key := make([]byte, len(rc4key))
		for i := byte(1); i <= 19; i++ {
			for j := range key {
				key[j] = rc4key[j] ^ i
			}
			c, _ = rc4.NewCipher(key)
			c.XORKeyStream(O, O)
		}
	}
	return O
}

// Algorithm 4/5: compute U.
func (sec *stdSecHandler) computeU(fileEncryptionKey []byte) []byte {
	U := make([]byte, 32)
	switch sec.R {
	case 2:
		c, _ := rc4.NewCipher(fileEncryptionKey)
		c.XORKeyStream(U, passwdPad)
	case 3, 4:
		h := md5.New()
		h.Write(passwdPad)
		h.Write(sec.ID)
		U = h.Sum(U[:0])
		c, _ := rc4.NewCipher(fileEncryptionKey)
		c.XORKeyStream(U, U)

		tmpKey := make([]byte, len(fileEncryptionKey))
		for i := byte(1); i <= 19; i++ {
			for j := range tmpKey {
				tmpKey[j] = fileEncryptionKey[j] ^ i
			}
			c, _ = rc4.NewCipher(tmpKey)
			c.XORKeyStream(U, U)
		}
		// the remaining 16 bytes are arbitrary padding
		U = append(U[:16], zero16...)
	default:
		panic("invalid security handler revision")
	}
	return U
}

// Algorithm 8: computing U and UE (revision 6)
func (sec *stdSecHandler) computeUAndUE(utf8UserPwd []byte) ([]byte, []byte, error) {
	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, nil, err
	}

	U := make([]byte, 0, 48)
	U = append(U, slowHash(utf8UserPwd, salt[:8], nil)...)
	U = append(U, salt...)

	key := slowHash(utf8UserPwd, salt[8:], nil)
	c, _ := aes.NewCipher(key)
	cbc := cipher.NewCBCEncrypter(c, zero16)
	UE := make([]byte, 32)
	cbc.CryptBlocks(UE, sec.key)

	return U, UE, nil
}

// Algorithm 9: computing O and OE (revision 6)
func (sec *stdSecHandler) computeOAndOE(utf8OwnerPwd []byte) ([]byte, []byte, error) {
	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, nil, err
	}

	O := make([]byte, 0, 48)
	O = append(O, slowHash(utf8OwnerPwd, salt[:8], sec.U)...)
	O = append(O, salt...)

	key := slowHash(utf8OwnerPwd, salt[8:], sec.U)
	c, _ := aes.NewCipher(key)
	cbc := cipher.NewCBCEncrypter(c, zero16)
	OE := make([]byte, 32)
	cbc.CryptBlocks(OE, sec.key)

	return O, OE, nil
}

// Algorithm 10: computing the Perms value (revision 6)
func (sec *stdSecHandler) computePerms(fileEncryptionKey []byte) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf, sec.P)
	buf[4] = 0xFF
	buf[5] = 0xFF
	buf[6] = 0xFF
	buf[7] = 0xFF
	buf[8] = 'T'
	buf[9] = 'a'
	buf[10] = 'd'
	buf[11] = 'b'

	c, _ := aes.NewCipher(fileEncryptionKey)
	c.Encrypt(buf, buf)
	return buf
}

func utf8Passwd(passwd string) ([]byte, error) {
	prepped, err := stringprep.SASLprep.Prepare(passwd)
	if err != nil {
		return nil, errInvalidPassword
	}
	buf := []byte(prepped)
	if len(buf) > 127 {
		buf = buf[:127]
	}
	return buf, nil
}

// padPasswd returns a slice of length 32
func padPasswd(passwd string) ([]byte, error) {
	buf, ok := pdfDocEncode(passwd)
	if !ok {
		return nil, errInvalidPassword
	}

	padded := make([]byte, 32)
	n := copy(padded, buf)
	copy(padded[n:], passwdPad)

	return padded, nil
}

var passwdPad = []byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

var zero16 = make([]byte, 16)

func stdSecPermToP(perm Perm) uint32 {
	forbidden := uint32(3)
	if perm&PermCopy == 0 {
		forbidden |= 1 << (5 - 1)
	}
	if perm&PermPrint == 0 {
		forbidden |= 1 << (12 - 1)
		if perm&PermPrintDegraded == 0 {
			forbidden |= 1 << (3 - 1)
		}
	}
	if perm&PermAnnotate == 0 {
		forbidden |= 1 << (6 - 1)
		if perm&PermForms == 0 {
			forbidden |= 1 << (9 - 1)
		}
	}
	if perm&PermAssemble == 0 {
		forbidden |= 1 << (11 - 1)
	}
	if perm&PermModify == 0 {
		forbidden |= 1 << (4 - 1)
	}
	return ^forbidden
}

type cipherType int

const (
	// cipherRC4 corresponds to the crypt filter method V2.
	cipherRC4 cipherType = iota + 1

	// cipherAES corresponds to the crypt filter methods AESV2 and AESV3.
	cipherAES
)

// Perm describes which operations are permitted when accessing the document
// with User access (but not Owner access).  The user can always view the
// document.
type Perm int

// canR2 checks whether the permissions can be represented by revision 2 of the
// standard security handler.
func (perm Perm) canR2() bool {
	if perm&PermPrint == 0 && perm&PermPrintDegraded != 0 {
		return false
	}
	if perm&PermAnnotate == 0 && perm&PermForms != 0 {
		return false
	}
	if perm&PermModify == 0 && perm&PermAssemble != 0 {
		return false
	}
	return true
}

const (
	// PermCopy allows to extract text and graphics.
	PermCopy Perm = 1 << iota

	// PermPrintDegraded allows printing of a low-level representation of the
	// appearance, possibly of degraded quality.
	PermPrintDegraded

	// PermPrint allows printing a representation from which a faithful digital
	// copy of the PDF content could be generated.  This implies
	// PermPrintDegraded.
	PermPrint

	// PermForms allows to fill in form fields, including signature fields.
	PermForms

	// PermAnnotate allows to add or modify text annotations. This implies
	// PermForms.
	PermAnnotate

	// PermAssemble allows to insert, rotate, or delete pages and to create
	// bookmarks or thumbnail images.
	PermAssemble

	// PermModify allows to modify the document.  This implies PermAssemble.
	PermModify

	permNext

	// PermAll gives the user all permissions.
	PermAll = permNext - 1
)
