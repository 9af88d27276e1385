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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncryptDecrypt(t *testing.T) {
	plain := documentBytes(t, testDocument())
	want, err := Read(plain)
	if err != nil {
		t.Fatal(err)
	}

	encrypted, err := Encrypt(plain, "user123", "owner456", nil)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(encrypted, []byte("Hello, world!")) {
		t.Error("plaintext visible in encrypted file")
	}
	if bytes.Contains(encrypted, []byte("a string to encrypt")) {
		t.Error("plaintext string visible in encrypted file")
	}

	for _, passwd := range []string{"user123", "owner456"} {
		decrypted, err := Decrypt(encrypted, passwd)
		if err != nil {
			t.Fatalf("%q: %v", passwd, err)
		}
		doc, err := Read(decrypted)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(want.Objects, doc.Objects); d != "" {
			t.Errorf("%q: objects changed (-want +got):\n%s", passwd, d)
		}
		if doc.Trailer["Encrypt"] != nil {
			t.Error("Encrypt entry left in trailer")
		}
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	plain := documentBytes(t, testDocument())
	encrypted, err := Encrypt(plain, "user123", "owner456", nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Decrypt(encrypted, "wrong")
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword but got %v", err)
	}
}

func TestEncryptTwice(t *testing.T) {
	plain := documentBytes(t, testDocument())
	encrypted, err := Encrypt(plain, "user123", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Encrypt(encrypted, "other", "", nil)
	if err == nil {
		t.Error("double encryption not rejected")
	}

	// decrypting and encrypting again with new passwords must work
	decrypted, err := Decrypt(encrypted, "user123")
	if err != nil {
		t.Fatal(err)
	}
	encrypted, err = Encrypt(decrypted, "new user", "new owner", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decrypt(encrypted, "user123")
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword but got %v", err)
	}
	_, err = Decrypt(encrypted, "new owner")
	if err != nil {
		t.Fatal(err)
	}
}

func TestDecryptPlainFile(t *testing.T) {
	plain := documentBytes(t, testDocument())
	_, err := Decrypt(plain, "")
	if !errors.Is(err, ErrNotEncrypted) {
		t.Errorf("expected ErrNotEncrypted but got %v", err)
	}
}

func TestEncryptedFileStructure(t *testing.T) {
	doc := testDocument()
	contentsLen := len(doc.Objects[3].Obj.(*Stream).Data)
	plain := documentBytes(t, doc)

	encrypted, err := Encrypt(plain, "secret", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	encDoc, err := Read(encrypted)
	if err != nil {
		t.Fatal(err)
	}

	ref, ok := encDoc.Trailer["Encrypt"].(Reference)
	if !ok {
		t.Fatal("missing Encrypt reference in trailer")
	}
	enc, ok := encDoc.resolve(ref).(Dict)
	if !ok {
		t.Fatal("Encrypt entry is not a dictionary")
	}
	if enc["Filter"] != Name("Standard") || enc["V"] != Integer(5) ||
		enc["R"] != Integer(5) || enc["Length"] != Integer(256) {
		t.Error("unexpected encryption dictionary contents")
	}
	for _, key := range []Name{"O", "U"} {
		if s, ok := enc[key].(String); !ok || len(s) != 48 {
			t.Errorf("invalid %s entry", key)
		}
	}
	for _, key := range []Name{"OE", "UE"} {
		if s, ok := enc[key].(String); !ok || len(s) != 32 {
			t.Errorf("invalid %s entry", key)
		}
	}
	if s, ok := enc["Perms"].(String); !ok || len(s) != 16 {
		t.Error("invalid Perms entry")
	}

	id, ok := encDoc.Trailer["ID"].(Array)
	if !ok || len(id) != 2 {
		t.Fatal("missing file identifier")
	}

	// IV plus padded CBC ciphertext
	stm := encDoc.resolve(encDoc.find(Reference{Number: 4}).Obj).(*Stream)
	wantLen := 16 + contentsLen + 16 - contentsLen%16
	if len(stm.Data) != wantLen {
		t.Errorf("expected %d bytes of stream data but got %d",
			wantLen, len(stm.Data))
	}
	if stm.Dict["Length"] != Integer(wantLen) {
		t.Errorf("wrong /Length %v", stm.Dict["Length"])
	}
}

func TestDecryptUnsupportedScheme(t *testing.T) {
	plain := documentBytes(t, testDocument())
	encrypted, err := Encrypt(plain, "secret", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Read(encrypted)
	if err != nil {
		t.Fatal(err)
	}
	enc := doc.resolve(doc.Trailer["Encrypt"]).(Dict)
	enc["R"] = Integer(6)

	_, err = Decrypt(documentBytes(t, doc), "secret")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("expected ErrUnsupportedScheme but got %v", err)
	}
}

func TestDecryptTamperedPermissions(t *testing.T) {
	plain := documentBytes(t, testDocument())
	encrypted, err := Encrypt(plain, "secret", "", &EncryptOptions{
		Permissions: PermPrint,
	})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Read(encrypted)
	if err != nil {
		t.Fatal(err)
	}
	enc := doc.resolve(doc.Trailer["Encrypt"]).(Dict)
	enc["P"] = Integer(-4) // grant everything

	_, err = Decrypt(documentBytes(t, doc), "secret")
	if !errors.Is(err, ErrCorruptData) {
		t.Errorf("expected ErrCorruptData but got %v", err)
	}
}

func TestUnencryptedMetadata(t *testing.T) {
	xmp := []byte("<?xpacket begin=\"\"?><x:xmpmeta xmlns:x=\"adobe:ns:meta/\"/>")
	doc := testDocument()
	ref := Reference{Number: doc.maxObjectNumber() + 1}
	doc.Objects = append(doc.Objects, &Indirect{
		Reference: ref,
		Obj: &Stream{
			Dict: Dict{
				"Type":    Name("Metadata"),
				"Subtype": Name("XML"),
			},
			Data: append([]byte{}, xmp...),
		},
	})
	doc.Objects[0].Obj.(Dict)["Metadata"] = ref

	encrypted, err := Encrypt(documentBytes(t, doc), "secret", "", &EncryptOptions{
		UnencryptedMetadata: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(encrypted, []byte("xmpmeta")) {
		t.Error("metadata stream was encrypted")
	}
	if bytes.Contains(encrypted, []byte("Hello, world!")) {
		t.Error("content stream not encrypted")
	}

	decrypted, err := Decrypt(encrypted, "secret")
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := Read(decrypted)
	if err != nil {
		t.Fatal(err)
	}
	stm := doc2.find(ref).Obj.(*Stream)
	if !bytes.Equal(stm.Data, xmp) {
		t.Error("metadata stream changed")
	}
}
