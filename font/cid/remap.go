// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

// Package cid implements the CID-font embedding path of the font
// container: a glyph remapper from original glyph IDs to consecutive CIDs,
// width and CIDSet encoding, and assembly of the Type 0 / CIDFontType0 or
// CIDFontType2 dictionaries.
package cid

import "seehuhn.de/go/pdfdoc/font/glyph"

// CID identifies a glyph within a CID font's character collection.
type CID uint16

// Remapper assigns consecutive CIDs, starting at 1, to original glyph IDs
// in the order they are first requested. CID 0 is always reserved for
// .notdef, independent of whether gid 0 is ever explicitly requested.
type Remapper struct {
	gidToCID map[glyph.ID]CID
	order    []glyph.ID // order[c] is the original gid for CID c
}

// NewRemapper creates a remapper with only .notdef (CID 0, gid 0) present.
func NewRemapper() *Remapper {
	return &Remapper{
		gidToCID: map[glyph.ID]CID{0: 0},
		order:    []glyph.ID{0},
	}
}

// CID returns the CID assigned to gid, assigning a new one if this is the
// first time gid is seen.
func (r *Remapper) CID(gid glyph.ID) CID {
	if gid == 0 {
		return 0
	}
	if c, ok := r.gidToCID[gid]; ok {
		return c
	}
	c := CID(len(r.order))
	r.gidToCID[gid] = c
	r.order = append(r.order, gid)
	return c
}

// Len returns the number of CIDs assigned so far, including .notdef.
func (r *Remapper) Len() int {
	return len(r.order)
}

// GID returns the original glyph ID for a CID.
func (r *Remapper) GID(c CID) glyph.ID {
	return r.order[c]
}

// GIDs returns the subset's glyph IDs in CID order, suitable for handing to
// a font-program subsetter: GIDs()[c] is the original gid for CID c, and
// the CID-to-GID mapping in the resulting subset is therefore the
// identity map.
func (r *Remapper) GIDs() []glyph.ID {
	out := make([]glyph.ID, len(r.order))
	copy(out, r.order)
	return out
}
