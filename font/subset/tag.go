// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package subset computes the "AAAAAA+" subset tag prefixed to the
// PostScript name of an embedded, subsetted font.
package subset

import (
	"crypto/sha256"
	"encoding/binary"
)

// Tag derives a six-letter, uppercase subset tag from the bytes that
// uniquely identify a subset: the font's content hash together with a
// snapshot of which glyphs (and, for Type 3, which paint modes) ended up in
// it. The tag must be stable for a given subset so that re-registering the
// same font container twice yields the same font name (see the font cache
// idempotence requirement).
//
// Tag(nil, 0) == "AAAAAA", matching the all-zero digest.
func Tag(fingerprint []byte, salt uint64) string {
	if len(fingerprint) == 0 && salt == 0 {
		return "AAAAAA"
	}

	h := sha256.New()
	h.Write(fingerprint)
	var saltBuf [8]byte
	binary.BigEndian.PutUint64(saltBuf[:], salt)
	h.Write(saltBuf[:])
	sum := h.Sum(nil)

	// Fold the 256-bit digest down to a 128-bit value the way a SipHash
	// output would be consumed, then take it mod 26 six times.
	var v [2]uint64
	v[0] = binary.BigEndian.Uint64(sum[0:8]) ^ binary.BigEndian.Uint64(sum[16:24])
	v[1] = binary.BigEndian.Uint64(sum[8:16]) ^ binary.BigEndian.Uint64(sum[24:32])

	tag := make([]byte, 6)
	for i := range tag {
		tag[i] = 'A' + byte(v[0]%26)
		v[0], v[1] = v[1], v[0]/26+v[1]*7
	}
	return string(tag)
}

// IsValidTag reports whether s has the shape of a subset tag: exactly six
// uppercase ASCII letters.
func IsValidTag(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
