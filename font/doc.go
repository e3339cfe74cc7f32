// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

// Package font forms the basis of the font container subsystem.
//
// A font container decides, per glyph, whether the glyph is embedded as
// part of a subsetted CID font ([seehuhn.de/go/pdfdoc/font/cid]) or drawn
// into a bucket of a Type 3 font
// ([seehuhn.de/go/pdfdoc/font/type3]): colored glyphs (sbix, CBDT/EBDT,
// COLR, SVG tables) and glyphs painted with a gradient or pattern always go
// through the Type 3 path; plain outline glyphs filled with a solid color
// go through the CID path, indexed by the original glyph ID.
//
// [Blob] wraps the parsed font program (an external collaborator; this
// package never parses font tables itself) and exposes the glyph metrics
// and [Descriptor] fields the two embedding paths need. [Geometry] carries
// the per-font and per-glyph dimensions in font design units, and
// [Typesetter] turns a text string into a [GlyphSeq] using a font's own
// layout (shaping) rules.
package font
