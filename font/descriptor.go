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

package font

import (
	"seehuhn.de/go/pdfdoc"
)

// Descriptor represents a PDF font descriptor.
//
// See section 9.8.1 of PDF 32000-2:2020.
type Descriptor struct {
	// FontName is the PostScript name of the font, prefixed with the
	// 6-letter subset tag ("AAAAAA+...") once the font container has
	// assigned one. Required except for Type 3 fonts.
	FontName string

	FontFamily  string
	FontStretch string // one of the nine PDF /FontStretch names, or ""
	FontWeight  int    // 100..900, or 0 if unknown

	IsFixedPitch bool
	IsSerif      bool
	IsSymbolic   bool
	IsScript     bool
	IsItalic     bool
	IsAllCap     bool
	IsSmallCap   bool
	ForceBold    bool

	FontBBox    pdf.Rectangle // required, except for Type 3 fonts
	ItalicAngle float64       // degrees counterclockwise from vertical
	Ascent      float64       // required, except for Type 3 fonts
	Descent     float64       // negative; required, except for Type 3 fonts
	Leading     float64
	CapHeight   float64 // required unless no Latin glyphs, or Type 3
	XHeight     float64
	StemV       float64 // 0 = unknown, -1 = omit (Type 3 fonts)
	StemH       float64
}

// AsDict converts the descriptor to a PDF dictionary. This never includes
// the FontFile/FontFile2/FontFile3 entries; the CID and Type 3 containers
// attach those themselves once the font program has been written.
func (d *Descriptor) AsDict() pdf.Dict {
	flags := MakeFlags(d)

	dict := pdf.Dict{
		"Type":        pdf.Name("FontDescriptor"),
		"Flags":       pdf.Integer(flags),
		"ItalicAngle": pdf.Number(d.ItalicAngle),
	}
	if d.FontName != "" {
		dict["FontName"] = pdf.Name(d.FontName)
	}
	if d.FontFamily != "" {
		dict["FontFamily"] = pdf.TextString(d.FontFamily)
	}
	if d.FontStretch != "" {
		dict["FontStretch"] = pdf.Name(d.FontStretch)
	}
	if d.FontWeight != 0 {
		dict["FontWeight"] = pdf.Integer(d.FontWeight)
	}
	if !d.FontBBox.IsZero() {
		b := d.FontBBox
		dict["FontBBox"] = &b
	}
	if d.Ascent != 0 {
		dict["Ascent"] = pdf.Number(d.Ascent)
	}
	if d.Descent != 0 {
		dict["Descent"] = pdf.Number(d.Descent)
	}
	if d.Leading != 0 {
		dict["Leading"] = pdf.Number(d.Leading)
	}
	if d.CapHeight != 0 {
		dict["CapHeight"] = pdf.Number(d.CapHeight)
	}
	if d.XHeight != 0 {
		dict["XHeight"] = pdf.Number(d.XHeight)
	}
	if d.StemV >= 0 {
		dict["StemV"] = pdf.Number(d.StemV)
	}
	if d.StemH != 0 {
		dict["StemH"] = pdf.Number(d.StemH)
	}
	return dict
}
