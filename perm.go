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

// Perm describes which operations are permitted when accessing the
// document with User access (but not Owner access).  The user can
// always view the document.
//
// This library only records the permissions in the encrypted file.
// It is up to PDF viewers to enforce them.
type Perm int

const (
	// PermCopy allows to extract text and graphics.
	PermCopy Perm = 1 << iota

	// PermPrintDegraded allows printing of a low-level representation
	// of the appearance, possibly of degraded quality.
	PermPrintDegraded

	// PermPrint allows printing a representation from which a faithful
	// digital copy of the PDF content could be generated.  This
	// implies PermPrintDegraded.
	PermPrint

	// PermForms allows to fill in form fields, including signature
	// fields.
	PermForms

	// PermAnnotate allows to add or modify text annotations.  This
	// implies PermForms.
	PermAnnotate

	// PermAssemble allows to insert, rotate, or delete pages and to
	// create bookmarks or thumbnail images.
	PermAssemble

	// PermModify allows to modify the document.  This implies
	// PermAssemble.
	PermModify

	permNext

	// PermAll gives the user all permissions, making User access
	// equivalent to Owner access.
	PermAll = permNext - 1
)

// toP converts the permission flags to the P bit field of the
// encryption dictionary.  Bits 1 and 2 are reserved and always unset,
// so PermAll maps to 0xFFFFFFFC (-4 as a signed 32-bit integer).
func (perm Perm) toP() uint32 {
	forbidden := uint32(3)
	if perm&PermCopy == 0 {
		forbidden |= 1 << (5 - 1)
	}
	if perm&PermPrint == 0 {
		forbidden |= 1 << (12 - 1)
		if perm&PermPrintDegraded == 0 {
			forbidden |= 1 << (3 - 1)
		}
	}
	if perm&PermAnnotate == 0 {
		forbidden |= 1 << (6 - 1)
		if perm&PermForms == 0 {
			forbidden |= 1 << (9 - 1)
		}
	}
	if perm&PermAssemble == 0 {
		forbidden |= 1 << (11 - 1)
	}
	if perm&PermModify == 0 {
		forbidden |= 1 << (4 - 1)
	}
	return ^forbidden
}

// permFromP converts a P bit field back to permission flags.
func permFromP(P uint32) Perm {
	perm := PermAll

	// bit 3 | 12
	//     0 | 0 -> neither full nor degraded printing
	//     0 | 1 -> full printing
	//     1 | 0 -> only degraded printing (full printing forbidden)
	//     1 | 1 -> full printing
	if P&(1<<(3-1)) == 0 && P&(1<<(12-1)) == 0 {
		perm &= ^(PermPrint | PermPrintDegraded)
	} else if P&(1<<(3-1)) != 0 && P&(1<<(12-1)) == 0 {
		perm &= ^PermPrint
	}

	// bit 4 | 11
	//     0 | 0 -> no modifications, no assembly
	//     0 | 1 -> no modifications, assembly allowed
	//     1 | x -> modifications allowed, assembly allowed
	if P&(1<<(4-1)) == 0 {
		perm &= ^PermModify
		if P&(1<<(11-1)) == 0 {
			perm &= ^PermAssemble
		}
	}

	if P&(1<<(5-1)) == 0 {
		perm &= ^PermCopy
	}

	// bit 6 | 9
	//     0 | 0 -> no annotations, don't fill form fields
	//     0 | 1 -> no annotations, fill form fields
	//     1 | x -> annotations allowed, fill form fields
	if P&(1<<(6-1)) == 0 {
		perm &= ^PermAnnotate
		if P&(1<<(9-1)) == 0 {
			perm &= ^PermForms
		}
	}

	return perm
}
