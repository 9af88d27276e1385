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
	"errors"
	"strconv"
)

var (
	// ErrWrongPassword indicates that the supplied password matches
	// neither the user nor the owner password of the document.
	ErrWrongPassword = errors.New("wrong password")

	// ErrUnsupportedScheme indicates that the document uses an
	// encryption scheme other than 256-bit AES with the standard
	// security handler.
	ErrUnsupportedScheme = errors.New("unsupported encryption scheme")

	// ErrCorruptData indicates that encrypted data, or one of the
	// fixed-length fields of the encryption dictionary, is damaged.
	ErrCorruptData = errors.New("corrupt encrypted data")

	// ErrNotEncrypted indicates that Decrypt was called on a document
	// which has no encryption dictionary.
	ErrNotEncrypted = errors.New("document is not encrypted")

	errInvalidPassword = errors.New("invalid password")
)

// MalformedFileError indicates that the PDF file could not be parsed.
type MalformedFileError struct {
	Pos int64
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// AuthenticationError indicates that the supplied password failed to
// authenticate against the document's encryption dictionary.
type AuthenticationError struct{}

func (err *AuthenticationError) Error() string {
	return "authentication failed: wrong password"
}

func (err *AuthenticationError) Unwrap() error {
	return ErrWrongPassword
}
