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

func parseObject(t *testing.T, in string) Object {
	t.Helper()
	s := newScanner(bytes.NewReader([]byte(in)), nil)
	obj, err := s.ReadObject()
	if err != nil {
		t.Fatalf("%q: %s", in, err)
	}
	return obj
}

func TestParseString(t *testing.T) {
	cases := []struct {
		in  string
		out String
	}{
		{`()`, String(nil)},
		{"(test string)", String("test string")},
		{`(he(ll)o)`, String("he(ll)o")},
		{`(he\)ll\(o)`, String("he)ll(o")},
		{"(hello\n)", String("hello\n")},
		{"(hell\\\no)", String("hello")},
		{`(h\145llo)`, String("hello")},
		{`(\0612)`, String("12")},
		{"<>", String(nil)},
		{"<68656c6c6f>", String("hello")},
		{"<68656C6C6F>", String("hello")},
		{"<68 65 6C 6C 6F>", String("hello")},
		{"<68656C7>", String("help")},
	}
	for i, test := range cases {
		obj := parseObject(t, test.in)
		out, ok := obj.(String)
		if !ok {
			t.Fatalf("%d %q: expected String but got %T", i, test.in, obj)
		}
		if !bytes.Equal(out, test.out) {
			t.Errorf("%d %q: expected %q but got %q", i, test.in, test.out, out)
		}
	}
}

func TestParseDict(t *testing.T) {
	in := "<< /Type /Test /Count 2 /Next 3 0 R /Kids [1 0 R 2 0 R] >>"
	obj := parseObject(t, in)
	expected := Dict{
		"Type":  Name("Test"),
		"Count": Integer(2),
		"Next":  Reference{Number: 3},
		"Kids":  Array{Reference{Number: 1}, Reference{Number: 2}},
	}
	if d := cmp.Diff(expected, obj); d != "" {
		t.Errorf("dict wrongly parsed (-want +got):\n%s", d)
	}
}

func TestParseStream(t *testing.T) {
	in := "<< /Length 5 >>\nstream\nhello\nendstream"
	obj := parseObject(t, in)
	stream, ok := obj.(*Stream)
	if !ok {
		t.Fatalf("expected *Stream but got %T", obj)
	}
	if string(stream.Data) != "hello" {
		t.Errorf("wrong stream data %q", stream.Data)
	}
}

func TestParseStreamIndirectLength(t *testing.T) {
	getLength := func(obj Object) (Integer, error) {
		if ref, ok := obj.(Reference); ok && ref.Number == 7 {
			return 5, nil
		}
		t.Fatalf("unexpected length object %v", obj)
		return 0, nil
	}
	in := "<< /Length 7 0 R >>\nstream\nhello\nendstream"
	s := newScanner(bytes.NewReader([]byte(in)), getLength)
	obj, err := s.ReadObject()
	if err != nil {
		t.Fatal(err)
	}
	stream, ok := obj.(*Stream)
	if !ok {
		t.Fatalf("expected *Stream but got %T", obj)
	}
	if string(stream.Data) != "hello" {
		t.Errorf("wrong stream data %q", stream.Data)
	}
	if stream.Dict["Length"] != Integer(5) {
		t.Errorf("length not resolved: %v", stream.Dict["Length"])
	}
}

func TestParseDictDamagedReference(t *testing.T) {
	// two integers not followed by "R" do not form a valid dict value
	in := "<< /Foo 1 2 x >>"
	s := newScanner(bytes.NewReader([]byte(in)), nil)
	obj, err := s.ReadObject()
	if err == nil {
		t.Fatalf("expected error but got %v", obj)
	}
	var mErr *MalformedFileError
	if !errors.As(err, &mErr) {
		t.Errorf("expected *MalformedFileError but got %v", err)
	}
}

func TestReadIndirectObject(t *testing.T) {
	in := "12 1 obj\n<< /Type /Test >>\nendobj\n"
	s := newScanner(bytes.NewReader([]byte(in)), nil)
	ind, err := s.ReadIndirectObject()
	if err != nil {
		t.Fatal(err)
	}
	if ind.Number != 12 || ind.Generation != 1 {
		t.Errorf("wrong reference %v", ind.Reference)
	}
	dict, ok := ind.Obj.(Dict)
	if !ok || dict["Type"] != Name("Test") {
		t.Errorf("wrong object %v", ind.Obj)
	}
}

func TestReadIndirectReference(t *testing.T) {
	in := "1 0 obj\n2 0 R\nendobj\n"
	s := newScanner(bytes.NewReader([]byte(in)), nil)
	ind, err := s.ReadIndirectObject()
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := ind.Obj.(Reference)
	if !ok || ref.Number != 2 {
		t.Errorf("wrong object %v", ind.Obj)
	}
}
