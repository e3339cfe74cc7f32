// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
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

// Package glyph defines the glyph-run item type shared by the content
// builder, the font container and the text encoder.
package glyph

import "seehuhn.de/go/pdfdoc/font/funit"

// ID enumerates the glyphs in a font. Glyph 0 is always .notdef.
type ID uint16

// Seq is a sequence of laid-out glyphs, in the order they are drawn.
type Seq []Info

// TextRange indexes into the text string that produced a glyph run.
// Two glyphs sharing the same range belong to the same cluster (e.g. a
// ligature, or several glyphs produced by one combining sequence).
type TextRange struct {
	Start, End int
}

// Info is one item of a glyph run: the glyph to draw, its placement, and
// the range of the source text string it renders.
type Info struct {
	Gid ID

	// XAdvance/YAdvance move the pen after this glyph is drawn.
	XAdvance funit.Int16
	YAdvance funit.Int16

	// XOffset/YOffset displace this glyph without moving the pen.
	XOffset funit.Int16
	YOffset funit.Int16

	// Text is the range, within the run's source string, that this glyph
	// renders. Used to build ActualText spans and ToUnicode mappings.
	Text TextRange
}
