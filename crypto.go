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
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"github.com/xdg-go/stringprep"
)

// securityHandler implements the AES-256 revision of the PDF standard
// security handler.  The handler authenticates the user via a pair of
// passwords: the "user password" gives access to the contents of the
// document, the "owner password" additionally authorises changes to
// the document's permissions.
type securityHandler struct {
	// O is a 48-byte string, based on the owner password, that is used
	// in determining whether a valid owner password was entered.  Its
	// validation hash is bound to U, so that the owner record cannot
	// be separated from the user record.
	O []byte

	// U is a 48-byte string, based on the user password, that is used
	// in determining whether a valid user password was entered.
	U []byte

	// OE and UE hold the file encryption key, wrapped under keys
	// derived from the owner and user password respectively.
	OE []byte
	UE []byte

	// Perms is the encrypted copy of the permission bits, used to
	// detect tampering with the P field.
	Perms []byte

	// P is a set of flags specifying which operations shall be
	// permitted when the document is opened with user access.
	P uint32

	// unencryptedMetadata specifies whether document-level XMP
	// metadata streams are left unencrypted.
	//
	// This is the negation of /EncryptMetadata from the encryption
	// dictionary, so that the Go default value corresponds to the PDF
	// default value (/EncryptMetadata true).
	unencryptedMetadata bool

	key []byte

	ownerAuthenticated bool
}

// newSecurityHandler allocates a pre-authenticated security handler
// with a fresh random file encryption key.  This is used when
// encrypting a document.
func newSecurityHandler(userPwd, ownerPwd string, perm Perm, unencryptedMetadata bool) (*securityHandler, error) {
	if ownerPwd == "" {
		ownerPwd = userPwd
	}
	user, err := preparePassword(userPwd)
	if err != nil {
		return nil, err
	}
	owner, err := preparePassword(ownerPwd)
	if err != nil {
		return nil, err
	}

	sec := &securityHandler{
		P:                   perm.toP(),
		unencryptedMetadata: unencryptedMetadata,
		ownerAuthenticated:  true,
	}

	sec.key, err = randomBytes(32)
	if err != nil {
		return nil, err
	}

	// The order matters here: the owner record binds the complete user
	// record, so U and UE must be computed first.
	sec.U, sec.UE, err = sec.computeUAndUE(user)
	if err != nil {
		zeroBytes(sec.key)
		return nil, err
	}
	sec.O, sec.OE, err = sec.computeOAndOE(owner)
	if err != nil {
		zeroBytes(sec.key)
		return nil, err
	}
	sec.Perms, err = sec.computePerms(sec.key)
	if err != nil {
		zeroBytes(sec.key)
		return nil, err
	}

	return sec, nil
}

// openSecurityHandler creates a security handler from an encryption
// dictionary.  This is used when decrypting a document.  The caller
// still needs to authenticate a password before the file encryption
// key is available.
func openSecurityHandler(enc Dict) (*securityHandler, error) {
	if filter, ok := enc["Filter"].(Name); !ok || filter != "Standard" {
		return nil, ErrUnsupportedScheme
	}
	if v, ok := enc["V"].(Integer); !ok || v != 5 {
		return nil, ErrUnsupportedScheme
	}
	if r, ok := enc["R"].(Integer); !ok || r != 5 {
		return nil, ErrUnsupportedScheme
	}
	if length, ok := enc["Length"].(Integer); ok && length != 256 {
		return nil, ErrUnsupportedScheme
	}
	for _, key := range []Name{"StmF", "StrF"} {
		if name, ok := enc[key].(Name); ok && name != "StdCF" {
			return nil, ErrUnsupportedScheme
		}
	}
	CF, _ := enc["CF"].(Dict)
	stdCF, _ := CF["StdCF"].(Dict)
	if cfm, ok := stdCF["CFM"].(Name); !ok || cfm != "AESV3" {
		return nil, ErrUnsupportedScheme
	}

	O, ok := enc["O"].(String)
	if !ok || len(O) != 48 {
		return nil, &MalformedFileError{Err: invalidField("O")}
	}
	U, ok := enc["U"].(String)
	if !ok || len(U) != 48 {
		return nil, &MalformedFileError{Err: invalidField("U")}
	}
	OE, ok := enc["OE"].(String)
	if !ok || len(OE) != 32 {
		return nil, &MalformedFileError{Err: invalidField("OE")}
	}
	UE, ok := enc["UE"].(String)
	if !ok || len(UE) != 32 {
		return nil, &MalformedFileError{Err: invalidField("UE")}
	}
	Perms, ok := enc["Perms"].(String)
	if !ok || len(Perms) != 16 {
		return nil, &MalformedFileError{Err: invalidField("Perms")}
	}
	P, ok := enc["P"].(Integer)
	if !ok {
		return nil, &MalformedFileError{Err: invalidField("P")}
	}

	sec := &securityHandler{
		O:     []byte(O),
		U:     []byte(U),
		OE:    []byte(OE),
		UE:    []byte(UE),
		Perms: []byte(Perms),
		P:     uint32(int32(P)),
	}
	if emd, ok := enc["EncryptMetadata"].(Bool); ok {
		sec.unencryptedMetadata = !bool(emd)
	}
	return sec, nil
}

func invalidField(name string) error {
	return errors.Join(ErrCorruptData,
		errors.New("invalid encryption dictionary field "+name))
}

// asDict returns the encryption dictionary for the handler.
func (sec *securityHandler) asDict() Dict {
	dict := Dict{
		"Filter": Name("Standard"),
		"V":      Integer(5),
		"R":      Integer(5),
		"Length": Integer(256),
		"CF": Dict{
			"StdCF": Dict{
				"CFM":       Name("AESV3"),
				"Length":    Integer(256),
				"AuthEvent": Name("DocOpen"),
			},
		},
		"StmF":  Name("StdCF"),
		"StrF":  Name("StdCF"),
		"O":     String(sec.O),
		"U":     String(sec.U),
		"OE":    String(sec.OE),
		"UE":    String(sec.UE),
		"Perms": String(sec.Perms),
		"P":     Integer(int32(sec.P)),
	}
	if sec.unencryptedMetadata {
		dict["EncryptMetadata"] = Bool(false)
	}
	return dict
}

// computeUAndUE derives the user password record and the user-wrapped
// file encryption key.
func (sec *securityHandler) computeUAndUE(pwd []byte) ([]byte, []byte, error) {
	salts, err := randomBytes(16)
	if err != nil {
		return nil, nil, err
	}

	U := make([]byte, 0, 48)
	U = append(U, hashBytes(pwd, salts[:8])...) // validation salt
	U = append(U, salts...)

	UE, err := encryptNoPad(hashBytes(pwd, salts[8:]), zero16, sec.key) // key salt
	if err != nil {
		return nil, nil, err
	}
	return U, UE, nil
}

// computeOAndOE derives the owner password record and the owner-wrapped
// file encryption key.  Both hashes include the full 48-byte U value,
// which ties the owner record to the user record.
func (sec *securityHandler) computeOAndOE(pwd []byte) ([]byte, []byte, error) {
	salts, err := randomBytes(16)
	if err != nil {
		return nil, nil, err
	}

	O := make([]byte, 0, 48)
	O = append(O, hashBytes(pwd, salts[:8], sec.U)...) // validation salt
	O = append(O, salts...)

	OE, err := encryptNoPad(hashBytes(pwd, salts[8:], sec.U), zero16, sec.key) // key salt
	if err != nil {
		return nil, nil, err
	}
	return O, OE, nil
}

// computePerms seals the permission bits under the file encryption key.
func (sec *securityHandler) computePerms(fileEncryptionKey []byte) ([]byte, error) {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf, sec.P)
	buf[4] = 0xFF
	buf[5] = 0xFF
	buf[6] = 0xFF
	buf[7] = 0xFF
	if sec.unencryptedMetadata {
		buf[8] = 'F'
	} else {
		buf[8] = 'T'
	}
	buf[9] = 'a'
	buf[10] = 'd'
	buf[11] = 'b'
	random, err := randomBytes(4)
	if err != nil {
		return nil, err
	}
	copy(buf[12:], random)

	return encryptBlock(fileEncryptionKey, buf)
}

// authenticate checks the password against the user record first and
// the owner record second, and recovers the file encryption key on a
// match.  The single error value never reveals which of the two
// attempts failed, or how far it got.
func (sec *securityHandler) authenticate(passwd string) error {
	pwd, err := preparePassword(passwd)
	if err != nil {
		return &AuthenticationError{}
	}

	hash := hashBytes(pwd, sec.U[32:40])
	if subtle.ConstantTimeCompare(hash, sec.U[:32]) == 1 {
		key, err := decryptNoPad(hashBytes(pwd, sec.U[40:48]), zero16, sec.UE)
		if err == nil && len(key) == 32 {
			sec.key = key
			return nil
		}
	}

	hash = hashBytes(pwd, sec.O[32:40], sec.U)
	if subtle.ConstantTimeCompare(hash, sec.O[:32]) == 1 {
		key, err := decryptNoPad(hashBytes(pwd, sec.O[40:48], sec.U), zero16, sec.OE)
		if err == nil && len(key) == 32 {
			sec.key = key
			sec.ownerAuthenticated = true
			return nil
		}
	}

	return &AuthenticationError{}
}

// verifyPerms decrypts the Perms field and checks it against the P
// field.  A mismatch means the permission bits were tampered with
// after the file was encrypted.  This is separate from password
// authentication, so that tampering is not mistaken for a wrong
// password.
func (sec *securityHandler) verifyPerms() error {
	buf, err := decryptBlock(sec.key, sec.Perms)
	if err != nil {
		return err
	}
	if buf[9] != 'a' || buf[10] != 'd' || buf[11] != 'b' {
		return ErrCorruptData
	}
	if binary.LittleEndian.Uint32(buf[:4]) != sec.P {
		return ErrCorruptData
	}
	emdCode := byte('T')
	if sec.unencryptedMetadata {
		emdCode = 'F'
	}
	if buf[8] != emdCode {
		return ErrCorruptData
	}
	return nil
}

// preparePassword converts a password to its canonical byte sequence:
// SASLprep normalisation, UTF-8 encoding, truncation to 127 bytes.
func preparePassword(passwd string) ([]byte, error) {
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
