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
	"regexp"
	"strconv"
)

// Document is a parsed PDF file: the header version, the indirect
// objects in file order, and the trailer dictionary.
type Document struct {
	Version string
	Objects []*Indirect
	Trailer Dict
}

// ErrNoPDF indicates that no PDF header was found in the input.
var ErrNoPDF = errors.New("PDF header not found")

var (
	startRegexp = regexp.MustCompile(`%PDF-([12]\.[0-9])`)

	whiteSpacePat = `[\000\011\014 ]+`
	eolPat        = `(?:\r|\n|\r\n)`
	objectPat     = `([0-9]+)` + whiteSpacePat + `([0-9]+)` + whiteSpacePat + `obj`
	markerPat     = eolPat + `[\000\011\014 ]*(` + objectPat + `|trailer)[^0-9A-Za-z]`
	markerRegexp  = regexp.MustCompile(markerPat)
)

// Read parses a complete PDF file.  The cross-reference table is not
// consulted; instead the file is scanned sequentially for indirect
// objects and trailer dictionaries, so that damaged tables do not
// prevent reading.
func Read(data []byte) (*Document, error) {
	m := startRegexp.FindSubmatchIndex(data)
	if m == nil {
		return nil, &MalformedFileError{Err: ErrNoPDF}
	}
	doc := &Document{
		Version: string(data[m[2]:m[3]]),
		Trailer: Dict{},
	}

	type marker struct {
		pos     int64
		ref     Reference
		trailer bool
	}
	var markers []marker
	refPos := make(map[Reference]int64)
	for _, m := range markerRegexp.FindAllSubmatchIndex(data, -1) {
		pos := int64(m[2])
		if m[4] < 0 { // "trailer" keyword
			markers = append(markers, marker{pos: pos, trailer: true})
			continue
		}
		number, err := strconv.ParseUint(string(data[m[4]:m[5]]), 10, 32)
		if err != nil {
			continue
		}
		generation, err := strconv.ParseUint(string(data[m[6]:m[7]]), 10, 16)
		if err != nil {
			continue
		}
		ref := Reference{uint32(number), uint16(generation)}
		markers = append(markers, marker{pos: pos, ref: ref})
		refPos[ref] = pos
	}

	// Stream lengths may be stored in separate indirect objects.
	var getLength func(obj Object) (Integer, error)
	lengthDepth := 0
	getLength = func(obj Object) (Integer, error) {
		switch obj := obj.(type) {
		case Integer:
			return obj, nil
		case Reference:
			pos, ok := refPos[obj]
			if !ok || lengthDepth > 0 {
				return 0, &MalformedFileError{
					Err: errors.New("unresolvable stream length"),
				}
			}
			lengthDepth++
			defer func() { lengthDepth-- }()
			s := newScanner(bytes.NewReader(data[pos:]), getLength)
			ind, err := s.ReadIndirectObject()
			if err != nil {
				return 0, err
			}
			length, ok := ind.Obj.(Integer)
			if !ok {
				return 0, &MalformedFileError{
					Err: errors.New("stream length is not an integer"),
				}
			}
			return length, nil
		default:
			return 0, &MalformedFileError{
				Err: errors.New("invalid stream length"),
			}
		}
	}

	// Candidate markers can also occur inside stream data.  Markers
	// starting before the end of the previously parsed object are such
	// false positives and are skipped.
	index := make(map[Reference]int)
	var end int64
	for _, m := range markers {
		if m.pos < end {
			continue
		}

		s := newScanner(bytes.NewReader(data[m.pos:]), getLength)
		if m.trailer {
			if err := s.SkipString("trailer"); err != nil {
				continue
			}
			if err := s.SkipWhiteSpace(); err != nil {
				continue
			}
			dict, err := s.ReadDict()
			if err != nil {
				continue
			}
			for key, val := range dict {
				doc.Trailer[key] = val
			}
			end = m.pos + s.currentPos()
			continue
		}

		ind, err := s.ReadIndirectObject()
		if err != nil {
			// Objects which do not parse are dropped, in the same way
			// damaged files are salvaged.
			continue
		}
		end = m.pos + s.currentPos()

		if i, ok := index[ind.Reference]; ok {
			// an updated version of an object seen earlier
			doc.Objects[i] = ind
		} else {
			index[ind.Reference] = len(doc.Objects)
			doc.Objects = append(doc.Objects, ind)
		}
	}

	if len(doc.Objects) == 0 {
		return nil, &MalformedFileError{Err: errors.New("no objects found")}
	}

	return doc, nil
}

// find returns the indirect object with the given reference, or nil.
func (doc *Document) find(ref Reference) *Indirect {
	for _, ind := range doc.Objects {
		if ind.Reference == ref {
			return ind
		}
	}
	return nil
}

// resolve follows references until a direct object is reached.
func (doc *Document) resolve(obj Object) Object {
	for count := 0; count < 16; count++ {
		ref, ok := obj.(Reference)
		if !ok {
			return obj
		}
		ind := doc.find(ref)
		if ind == nil {
			return nil
		}
		obj = ind.Obj
	}
	return nil
}
