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

// Package cryptpdf encrypts and decrypts PDF documents using 256-bit AES
// and the PDF standard security handler.
//
// The package operates on complete documents:
//
//	enc, err := cryptpdf.Encrypt(data, "user secret", "owner secret", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dec, err := cryptpdf.Decrypt(enc, "user secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Encrypt derives a fresh random file encryption key, wraps it under both
// passwords, and replaces the contents of every stream and every string in
// the document with ciphertext.  Structural information (object numbers,
// stream lengths, filter names, the cross-reference table) stays readable
// without a password.  Decrypt accepts either the user or the owner
// password, recovers the file key, and restores the original payloads.
//
// Only the 256-bit AES scheme is supported.  Documents protected with one
// of the older, weaker schemes (RC4 or 128-bit AES) are rejected with
// ErrUnsupportedScheme.
//
// The following types implement the native PDF object model used by the
// reader and writer.  All of them implement the Object interface:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	Stream
//	String
package cryptpdf
