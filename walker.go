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

// reservedNames are dictionary keys whose values describe the structure
// of the file rather than document content.  Their values must stay
// readable without the file encryption key.
var reservedNames = map[Name]bool{
	"Length":      true,
	"Filter":      true,
	"DecodeParms": true,
}

// cryptor walks the object graph and encrypts or decrypts every stream
// payload and every string in place.  All payloads share the same file
// encryption key; each payload gets its own random initialisation
// vector, which is stored as the first 16 bytes of the ciphertext.
type cryptor struct {
	key []byte

	// skip marks indirect objects which must not be touched, i.e. the
	// encryption dictionary itself.
	skip map[Reference]bool

	// skipMetadata leaves /Type /Metadata streams unencrypted, for
	// documents with /EncryptMetadata false.
	skipMetadata bool
}

// encryptPayload produces the wire form of an encrypted payload:
// a fresh 16-byte IV followed by the padded-CBC ciphertext.
func (c *cryptor) encryptPayload(data []byte) ([]byte, error) {
	iv, err := randomBytes(16)
	if err != nil {
		return nil, err
	}
	ct, err := encryptPadded(c.key, iv, data)
	if err != nil {
		return nil, err
	}
	return append(iv, ct...), nil
}

// decryptPayload splits off the IV and decrypts the remainder.  An
// encrypted payload is at least 32 bytes: the IV block plus one
// ciphertext block.
func (c *cryptor) decryptPayload(data []byte) ([]byte, error) {
	if len(data) < 32 {
		return nil, ErrCorruptData
	}
	return decryptPadded(c.key, data[:16], data[16:])
}

// encryptObjects encrypts every eligible payload among the given
// indirect objects.
func (c *cryptor) encryptObjects(objects []*Indirect) error {
	for _, ind := range objects {
		if c.skip[ind.Reference] {
			continue
		}
		obj, err := c.encryptObject(ind.Obj)
		if err != nil {
			return err
		}
		ind.Obj = obj
	}
	return nil
}

func (c *cryptor) encryptObject(obj Object) (Object, error) {
	switch obj := obj.(type) {
	case *Stream:
		if _, err := c.encryptDict(obj.Dict); err != nil {
			return nil, err
		}
		if c.skipMetadata && obj.Dict["Type"] == Name("Metadata") {
			return obj, nil
		}
		data, err := c.encryptPayload(obj.Data)
		if err != nil {
			return nil, err
		}
		obj.Data = data
		obj.Dict["Length"] = Integer(len(data))
		return obj, nil
	case Dict:
		return c.encryptDict(obj)
	case Array:
		return c.encryptArray(obj)
	case String:
		data, err := c.encryptPayload([]byte(obj))
		if err != nil {
			return nil, err
		}
		return String(data), nil
	default:
		return obj, nil
	}
}

func (c *cryptor) encryptDict(dict Dict) (Dict, error) {
	for key, val := range dict {
		if reservedNames[key] {
			continue
		}
		res, err := c.encryptObject(val)
		if err != nil {
			return nil, err
		}
		dict[key] = res
	}
	return dict, nil
}

func (c *cryptor) encryptArray(array Array) (Array, error) {
	for i, val := range array {
		res, err := c.encryptObject(val)
		if err != nil {
			return nil, err
		}
		array[i] = res
	}
	return array, nil
}

// decryptObjects is the inverse of encryptObjects.
func (c *cryptor) decryptObjects(objects []*Indirect) error {
	for _, ind := range objects {
		if c.skip[ind.Reference] {
			continue
		}
		obj, err := c.decryptObject(ind.Obj)
		if err != nil {
			return err
		}
		ind.Obj = obj
	}
	return nil
}

func (c *cryptor) decryptObject(obj Object) (Object, error) {
	switch obj := obj.(type) {
	case *Stream:
		if _, err := c.decryptDict(obj.Dict); err != nil {
			return nil, err
		}
		if c.skipMetadata && obj.Dict["Type"] == Name("Metadata") {
			return obj, nil
		}
		// A damaged stream payload is unrecoverable and fatal.
		data, err := c.decryptPayload(obj.Data)
		if err != nil {
			return nil, err
		}
		obj.Data = data
		obj.Dict["Length"] = Integer(len(data))
		return obj, nil
	case Dict:
		return c.decryptDict(obj)
	case Array:
		return c.decryptArray(obj)
	case String:
		// Not every string in a document is guaranteed to have been
		// encrypted: strings shorter than the minimum encrypted length
		// are passed through, and strings which fail to decrypt keep
		// their original value.
		if len(obj) < 32 {
			return obj, nil
		}
		data, err := c.decryptPayload([]byte(obj))
		if err != nil {
			return obj, nil
		}
		return String(data), nil
	default:
		return obj, nil
	}
}

func (c *cryptor) decryptDict(dict Dict) (Dict, error) {
	for key, val := range dict {
		if reservedNames[key] {
			continue
		}
		res, err := c.decryptObject(val)
		if err != nil {
			return nil, err
		}
		dict[key] = res
	}
	return dict, nil
}

func (c *cryptor) decryptArray(array Array) (Array, error) {
	for i, val := range array {
		res, err := c.decryptObject(val)
		if err != nil {
			return nil, err
		}
		array[i] = res
	}
	return array, nil
}
