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

package font

import (
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/pdfdoc/font/funit"
)

// OutlineFormat identifies the glyph outline representation a [Blob]
// carries, which determines whether the CID path subsets to a TrueType or
// a CFF program.
type OutlineFormat int

const (
	OutlineUnknown OutlineFormat = iota
	OutlineGlyf
	OutlineCFF
)

// Blob is a reference-counted, content-hashed handle on a parsed font
// program. It never parses font tables itself: a *sfnt.Font is an external
// collaborator, already loaded by the caller. Blob exposes only what the
// font container needs to make its CID-vs-Type3 decision and to write the
// descriptor, widths, and extents.
type Blob struct {
	Font *sfnt.Font

	// ContentHash identifies the font program for the purposes of the
	// structural-hash cache (two blobs with the same hash are the same
	// font program and may share a cached font container).
	ContentHash [16]byte

	// CollectionIndex selects one face out of a TrueType/OpenType
	// collection; 0 for single-face font files.
	CollectionIndex int
}

// Outlines reports which glyph outline format the blob carries.
func (b *Blob) Outlines() OutlineFormat {
	if b.Font == nil {
		return OutlineUnknown
	}
	if b.Font.IsCFF() {
		return OutlineCFF
	}
	if b.Font.IsGlyf() {
		return OutlineGlyf
	}
	return OutlineUnknown
}

// PostscriptName returns the font's PostScript name, before any subset tag
// is prefixed.
func (b *Blob) PostscriptName() string {
	return b.Font.PostscriptName()
}

// NumGlyphs returns the number of glyphs in the font.
func (b *Blob) NumGlyphs() int {
	return b.Font.NumGlyphs()
}

// HasColorTables reports whether the font carries a glyph-coloring table,
// meaning every glyph it defines must route through the Type 3 path
// (see §4.3's decision rule).
func (b *Blob) HasColorTables() bool {
	f := b.Font
	if f == nil {
		return false
	}
	_, hasSbix := f.Table("sbix")
	_, hasCBDT := f.Table("CBDT")
	_, hasCOLR := f.Table("COLR")
	_, hasSVG := f.Table("SVG ")
	return hasSbix || hasCBDT || hasCOLR || hasSVG
}

// Geometry derives a [Geometry] from the underlying font program.
func (b *Blob) Geometry() *Geometry {
	f := b.Font
	extents := f.Extents()
	glyphExtents := make([]funit.Rect, len(extents))
	for i, e := range extents {
		glyphExtents[i] = funit.Rect{
			LLx: funit.Int16(e.LLx), LLy: funit.Int16(e.LLy),
			URx: funit.Int16(e.URx), URy: funit.Int16(e.URy),
		}
	}
	fWidths := f.Widths()
	widths := make([]funit.Int16, len(fWidths))
	for i, w := range fWidths {
		widths[i] = funit.Int16(w)
	}
	return &Geometry{
		UnitsPerEm:         f.UnitsPerEm,
		Ascent:             funit.Int16(f.Ascent),
		Descent:            funit.Int16(f.Descent),
		BaseLineSkip:       funit.Int16(f.Ascent - f.Descent + f.LineGap),
		UnderlinePosition:  funit.Int16(f.UnderlinePosition),
		UnderlineThickness: funit.Int16(f.UnderlineThickness),
		GlyphExtents:       glyphExtents,
		Widths:             widths,
	}
}

// Descriptor derives the descriptor fields that are intrinsic to the font
// program; the font container fills in FontName (subset tag) and the
// Type-3-specific overrides (StemV=-1, no bbox/ascent/descent) itself.
func (b *Blob) Descriptor() *Descriptor {
	f := b.Font
	q := 1000 / float64(f.UnitsPerEm)

	d := &Descriptor{
		FontFamily:  f.FamilyName,
		IsFixedPitch: f.IsFixedPitch(),
		IsSerif:      f.IsSerif,
		IsScript:     f.IsScript,
		IsItalic:     f.IsItalic,
		ItalicAngle:  f.ItalicAngle,
		Ascent:       float64(f.Ascent) * q,
		Descent:      float64(f.Descent) * q,
		CapHeight:    float64(f.CapHeight) * q,
		StemV:        70, // not available in sfnt files; a conventional default
	}

	switch w := f.Weight; {
	case w != 0:
		d.FontWeight = int(w)
	}
	switch f.Width {
	case os2.WidthUltraCondensed:
		d.FontStretch = "UltraCondensed"
	case os2.WidthExtraCondensed:
		d.FontStretch = "ExtraCondensed"
	case os2.WidthCondensed:
		d.FontStretch = "Condensed"
	case os2.WidthSemiCondensed:
		d.FontStretch = "SemiCondensed"
	case os2.WidthNormal:
		d.FontStretch = "Normal"
	case os2.WidthSemiExpanded:
		d.FontStretch = "SemiExpanded"
	case os2.WidthExpanded:
		d.FontStretch = "Expanded"
	case os2.WidthExtraExpanded:
		d.FontStretch = "ExtraExpanded"
	case os2.WidthUltraExpanded:
		d.FontStretch = "UltraExpanded"
	}

	return d
}
