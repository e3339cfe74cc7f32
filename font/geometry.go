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

package font

import (
	"math"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font/funit"
	"seehuhn.de/go/pdfdoc/font/glyph"
)

// Geometry collects the dimensions connected to a font and to the
// individual glyphs within it, in font design units.
type Geometry struct {
	UnitsPerEm uint16

	Ascent             funit.Int16
	Descent            funit.Int16 // negative
	BaseLineSkip       funit.Int16
	UnderlinePosition  funit.Int16
	UnderlineThickness funit.Int16

	GlyphExtents []funit.Rect  // indexed by GID
	Widths       []funit.Int16 // indexed by GID
}

// FontMatrix returns the font matrix mapping glyph space to text space.
func (g *Geometry) FontMatrix() []float64 {
	return []float64{1 / float64(g.UnitsPerEm), 0, 0, 1 / float64(g.UnitsPerEm), 0, 0}
}

// ToPDF converts a value in font design units to PDF text space units at
// the given font size.
func (g *Geometry) ToPDF(fontSize float64, a funit.Int16) float64 {
	return a.AsFloat(fontSize / float64(g.UnitsPerEm))
}

// FromPDF converts a PDF text space value back to font design units.
func (g *Geometry) FromPDF(fontSize float64, x float64) funit.Int16 {
	return funit.Int16(math.Round(x / fontSize * float64(g.UnitsPerEm)))
}

// BoundingBox returns the bounding box of a glyph sequence, in PDF text
// space units, assuming the run starts at (0, 0).
func (g *Geometry) BoundingBox(fontSize float64, gg glyph.Seq) *pdf.Rectangle {
	var bbox funit.Rect
	var xPos funit.Int16
	for _, gi := range gg {
		if int(gi.Gid) >= len(g.GlyphExtents) {
			xPos += gi.XAdvance
			continue
		}
		b := g.GlyphExtents[gi.Gid]
		b.LLx += xPos + gi.XOffset
		b.LLy += gi.YOffset
		b.URx += xPos + gi.XOffset
		b.URy += gi.YOffset
		bbox.Extend(b)
		xPos += gi.XAdvance
	}
	return bbox.AsPDF(fontSize / float64(g.UnitsPerEm))
}

// NumGlyphs returns the number of glyphs a geometry has width data for.
func (g *Geometry) NumGlyphs() int {
	return len(g.Widths)
}
