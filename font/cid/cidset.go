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

package cid

// EncodeCIDSet builds the /CIDSet stream contents: a bitmap with one bit
// per CID from 0 to n-1, most significant bit first within each byte, set
// for every CID the subset actually defines. Since the remapper assigns
// CIDs densely starting at 0, the bitmap is always all ones up to n-1 --
// the encoding exists so that a reader can tell the subset's extent
// without consulting the CIDToGIDMap.
func EncodeCIDSet(n int) []byte {
	out := make([]byte, (n+7)/8)
	for c := 0; c < n; c++ {
		out[c/8] |= 1 << (7 - uint(c%8))
	}
	return out
}
