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
	"bytes"
	"errors"
)

// EncryptOptions controls the encryption of a document.
type EncryptOptions struct {
	// Permissions are the operations permitted with user access.  The
	// zero value grants all permissions.
	Permissions Perm

	// UnencryptedMetadata leaves document-level /Type /Metadata
	// streams readable without a password.  The zero value encrypts
	// them along with everything else.
	UnencryptedMetadata bool
}

// Encrypt protects a PDF document with 256-bit AES encryption.  Either
// password later decrypts the document; the owner password defaults to
// the user password if empty.  The returned bytes are a new document
// with an attached encryption dictionary and every stream and string
// payload encrypted under a fresh random file encryption key.
func Encrypt(data []byte, userPwd, ownerPwd string, opt *EncryptOptions) ([]byte, error) {
	doc, err := Read(data)
	if err != nil {
		return nil, err
	}
	if doc.Trailer["Encrypt"] != nil {
		return nil, errors.New("document is already encrypted")
	}

	perm := PermAll
	unencryptedMetadata := false
	if opt != nil {
		if opt.Permissions != 0 {
			perm = opt.Permissions
		}
		unencryptedMetadata = opt.UnencryptedMetadata
	}

	sec, err := newSecurityHandler(userPwd, ownerPwd, perm, unencryptedMetadata)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(sec.key)

	c := &cryptor{
		key:          sec.key,
		skipMetadata: sec.unencryptedMetadata,
	}
	err = c.encryptObjects(doc.Objects)
	if err != nil {
		return nil, err
	}

	ref := Reference{Number: doc.maxObjectNumber() + 1}
	doc.Objects = append(doc.Objects, &Indirect{
		Reference: ref,
		Obj:       sec.asDict(),
	})
	doc.Trailer["Encrypt"] = ref

	// Readers expect a file identifier next to the encryption
	// dictionary, even though the AES-256 key derivation does not use
	// it.
	id, err := randomBytes(32)
	if err != nil {
		return nil, err
	}
	doc.Trailer["ID"] = Array{String(id[:16]), String(id[16:])}

	buf := &bytes.Buffer{}
	err = doc.Write(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decrypt removes the encryption from a PDF document.  The password
// may be either the user or the owner password; which of the two it is
// makes no difference to the result.  The returned bytes are a new
// document with all payloads restored and the encryption dictionary
// removed.
func Decrypt(data []byte, passwd string) ([]byte, error) {
	doc, err := Read(data)
	if err != nil {
		return nil, err
	}

	encObj := doc.Trailer["Encrypt"]
	if encObj == nil {
		return nil, ErrNotEncrypted
	}
	skip := make(map[Reference]bool)
	if ref, ok := encObj.(Reference); ok {
		skip[ref] = true
	}
	enc, ok := doc.resolve(encObj).(Dict)
	if !ok {
		return nil, &MalformedFileError{Err: errors.New("invalid Encrypt entry")}
	}

	sec, err := openSecurityHandler(enc)
	if err != nil {
		return nil, err
	}
	err = sec.authenticate(passwd)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(sec.key)

	err = sec.verifyPerms()
	if err != nil {
		return nil, err
	}

	c := &cryptor{
		key:          sec.key,
		skip:         skip,
		skipMetadata: sec.unencryptedMetadata,
	}
	err = c.decryptObjects(doc.Objects)
	if err != nil {
		return nil, err
	}

	delete(doc.Trailer, "Encrypt")
	if ref, ok := encObj.(Reference); ok {
		objects := doc.Objects[:0]
		for _, ind := range doc.Objects {
			if ind.Reference != ref {
				objects = append(objects, ind)
			}
		}
		doc.Objects = objects
	}

	buf := &bytes.Buffer{}
	err = doc.Write(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
