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
	"fmt"
	"io"
)

// Write serialises the document to w: header, body, cross-reference
// table and trailer.  Objects are written in the order of doc.Objects.
func (doc *Document) Write(w io.Writer) error {
	version := doc.Version
	if version == "" {
		version = "1.7"
	}

	pw := &posWriter{w: w}

	// The second line is a comment containing binary characters, so
	// that file(1) and friends classify the file as binary.
	err := pw.Printf("%%PDF-%s\n%%\x80\x80\x80\x80\n", version)
	if err != nil {
		return err
	}

	xref := make(map[uint32]int64)
	var maxNumber uint32
	for _, ind := range doc.Objects {
		xref[ind.Number] = pw.pos
		if ind.Number > maxNumber {
			maxNumber = ind.Number
		}

		err = pw.Printf("%d %d obj\n", ind.Number, ind.Generation)
		if err != nil {
			return err
		}
		if ind.Obj == nil {
			err = pw.Printf("null")
		} else {
			err = ind.Obj.PDF(pw)
		}
		if err != nil {
			return err
		}
		err = pw.Printf("\nendobj\n")
		if err != nil {
			return err
		}
	}

	xrefPos := pw.pos
	size := maxNumber + 1
	err = pw.Printf("xref\n0 %d\n0000000000 65535 f\r\n", size)
	if err != nil {
		return err
	}
	for number := uint32(1); number < size; number++ {
		if pos, ok := xref[number]; ok {
			err = pw.Printf("%010d 00000 n\r\n", pos)
		} else {
			err = pw.Printf("0000000000 65535 f\r\n")
		}
		if err != nil {
			return err
		}
	}

	trailer := Dict{}
	for key, val := range doc.Trailer {
		trailer[key] = val
	}
	trailer["Size"] = Integer(size)

	err = pw.Printf("trailer\n")
	if err != nil {
		return err
	}
	err = trailer.PDF(pw)
	if err != nil {
		return err
	}
	return pw.Printf("\nstartxref\n%d\n%%%%EOF\n", xrefPos)
}

// maxObjectNumber returns the largest object number used in the
// document.
func (doc *Document) maxObjectNumber() uint32 {
	var res uint32
	for _, ind := range doc.Objects {
		if ind.Number > res {
			res = ind.Number
		}
	}
	return res
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (pw *posWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.pos += int64(n)
	return n, err
}

func (pw *posWriter) Printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(pw, format, args...)
	return err
}
