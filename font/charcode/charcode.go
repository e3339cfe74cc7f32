// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

// Package charcode provides the two fixed-width character-code spaces this
// module's font containers actually emit: one byte per code for Type 3
// fonts (at most 256 painted glyphs per bucket), two bytes per code
// (Identity-H) for CID fonts. General variable-width code space ranges, as
// used by simple PDF fonts with custom encodings, are out of scope: the
// core only ever writes fonts it has assembled itself.
package charcode

import "seehuhn.de/go/pdfdoc"

// CharCode is a character code within a fixed-width code space.
type CharCode int

// AppendByte appends a single-byte character code (used for Type 3 font
// encodings) to s.
func AppendByte(s pdf.String, code CharCode) pdf.String {
	return append(s, byte(code))
}

// AppendUint16 appends a two-byte big-endian character code (used for
// Identity-H CID fonts) to s.
func AppendUint16(s pdf.String, code CharCode) pdf.String {
	return append(s, byte(code>>8), byte(code))
}
