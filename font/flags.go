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

package font

// Flags represents PDF Font Descriptor Flags.
// See section 9.8.2 of PDF 32000-2:2020.
type Flags uint32

// Possible values for PDF Font Descriptor Flags.
const (
	FlagFixedPitch  Flags = 1 << 0
	FlagSerif       Flags = 1 << 1
	FlagSymbolic    Flags = 1 << 2
	FlagScript      Flags = 1 << 3
	FlagNonsymbolic Flags = 1 << 5
	FlagItalic      Flags = 1 << 6
	FlagAllCap      Flags = 1 << 16
	FlagSmallCap    Flags = 1 << 17
	FlagForceBold   Flags = 1 << 18
)

// MakeFlags derives the descriptor flags from d. The symbolic and
// small-cap bits are always set: the core only ever embeds subsets, which
// by construction are no longer standard Latin fonts a viewer could
// substitute.
func MakeFlags(d *Descriptor) Flags {
	var flags Flags

	if d.IsFixedPitch {
		flags |= FlagFixedPitch
	}
	if d.IsSerif {
		flags |= FlagSerif
	}
	if d.IsScript {
		flags |= FlagScript
	}
	if d.IsItalic {
		flags |= FlagItalic
	}
	if d.IsAllCap {
		flags |= FlagAllCap
	}
	if d.ForceBold {
		flags |= FlagForceBold
	}

	flags |= FlagSymbolic
	flags |= FlagSmallCap

	return flags
}
