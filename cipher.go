// cryptpdf - AES-256 encryption and decryption of PDF files
// Copyright (C) 2026  The cryptpdf authors
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

package cryptpdf

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

var (
	errBlockLength = errors.New("data length is not a multiple of the AES block size")
	errKeyLength   = errors.New("invalid AES key length")
	errIVLength    = errors.New("invalid initialisation vector length")
)

var zero16 = make([]byte, 16)

// randomBytes returns n bytes from the operating system's secure
// entropy source.
func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, buf)
	if err != nil {
		return nil, fmt.Errorf("entropy source unavailable: %w", err)
	}
	return buf, nil
}

// hashBytes returns the SHA-256 digest of the concatenation of the
// given byte slices.
func hashBytes(parts ...[]byte) []byte {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}
	return h.Sum(nil)
}

func newBlockCipher(key []byte) (cipher.Block, error) {
	if len(key) != 32 {
		return nil, errKeyLength
	}
	return aes.NewCipher(key)
}

// encryptPadded encrypts data using AES-256 in CBC mode with PDF
// padding.  Between 1 and 16 bytes of padding are always appended, so
// the returned ciphertext is len(data) rounded up to the next larger
// multiple of 16.
func encryptPadded(key, iv, data []byte) ([]byte, error) {
	c, err := newBlockCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != 16 {
		return nil, errIVLength
	}

	n := len(data)
	nPad := 16 - n%16
	out := make([]byte, n+nPad)
	copy(out, data)
	for i := n; i < len(out); i++ {
		out[i] = byte(nPad)
	}

	cbc := cipher.NewCBCEncrypter(c, iv)
	cbc.CryptBlocks(out, out)
	return out, nil
}

// decryptPadded is the inverse of encryptPadded.  A malformed trailing
// padding block means the key or the ciphertext is wrong and is
// reported as corruption.
func decryptPadded(key, iv, data []byte) ([]byte, error) {
	c, err := newBlockCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != 16 {
		return nil, errIVLength
	}
	if len(data) == 0 || len(data)%16 != 0 {
		return nil, ErrCorruptData
	}

	out := make([]byte, len(data))
	cbc := cipher.NewCBCDecrypter(c, iv)
	cbc.CryptBlocks(out, data)

	nPad := int(out[len(out)-1])
	if nPad < 1 || nPad > 16 || nPad > len(out) {
		return nil, ErrCorruptData
	}
	for _, b := range out[len(out)-nPad:] {
		if int(b) != nPad {
			return nil, ErrCorruptData
		}
	}
	return out[:len(out)-nPad], nil
}

// encryptBlock encrypts a single 16-byte block with AES-256, without
// chaining or padding.
func encryptBlock(key, block []byte) ([]byte, error) {
	c, err := newBlockCipher(key)
	if err != nil {
		return nil, err
	}
	if len(block) != 16 {
		return nil, errBlockLength
	}
	out := make([]byte, 16)
	c.Encrypt(out, block)
	return out, nil
}

// decryptBlock is the inverse of encryptBlock.
func decryptBlock(key, block []byte) ([]byte, error) {
	c, err := newBlockCipher(key)
	if err != nil {
		return nil, err
	}
	if len(block) != 16 {
		return nil, errBlockLength
	}
	out := make([]byte, 16)
	c.Decrypt(out, block)
	return out, nil
}

// encryptNoPad encrypts data using AES-256 in CBC mode without padding.
// The length of data must be a multiple of 16.
func encryptNoPad(key, iv, data []byte) ([]byte, error) {
	c, err := newBlockCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != 16 {
		return nil, errIVLength
	}
	if len(data)%16 != 0 {
		return nil, errBlockLength
	}
	out := make([]byte, len(data))
	cbc := cipher.NewCBCEncrypter(c, iv)
	cbc.CryptBlocks(out, data)
	return out, nil
}

// decryptNoPad is the inverse of encryptNoPad.
func decryptNoPad(key, iv, data []byte) ([]byte, error) {
	c, err := newBlockCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != 16 {
		return nil, errIVLength
	}
	if len(data)%16 != 0 {
		return nil, errBlockLength
	}
	out := make([]byte, len(data))
	cbc := cipher.NewCBCDecrypter(c, iv)
	cbc.CryptBlocks(out, data)
	return out, nil
}

// zeroBytes overwrites buf, so that key material does not linger in
// memory after use.
func zeroBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
