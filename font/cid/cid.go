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

package cid

import (
	"fmt"
	"hash/fnv"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/pdfdoc/font/funit"
	"seehuhn.de/go/pdfdoc/font/glyph"
	"seehuhn.de/go/pdfdoc/font/subset"
	"seehuhn.de/go/pdfdoc/font/tounicode"
)

// SubsetFont produces the font program bytes for the subset of gids (in
// CID order; gids[0] is always .notdef). It is an external collaborator:
// actual TrueType/CFF table manipulation lives outside the core, which
// only decides which glyphs belong in the subset and how they are named
// and addressed in the PDF font dictionaries.
type SubsetFont func(blob *font.Blob, gids []glyph.ID) (data []byte, isCFF bool, err error)

var flateFilter = &pdf.FilterInfo{Name: "FlateDecode"}

// Container is the CID-font embedding path of the font container: it owns
// the gid-to-CID remapper and the accumulated ToUnicode mapping for one
// subsetted CID font, and writes the Type 0 / CIDFontType0 or
// CIDFontType2 dictionary tree once the document is finished.
type Container struct {
	Blob       *font.Blob
	ROS        *font.SystemInfo
	SubsetFont SubsetFont

	remap     *Remapper
	toUnicode map[CID][]rune
}

// NewContainer creates an empty CID font container over blob, using the
// Adobe-Identity-0 character collection.
func NewContainer(blob *font.Blob, subsetter SubsetFont) *Container {
	return &Container{
		Blob:       blob,
		ROS:        font.Identity,
		SubsetFont: subsetter,
		remap:      NewRemapper(),
		toUnicode:  make(map[CID][]rune),
	}
}

// Register ensures gid is present in the subset and returns its CID. If
// text is non-empty, it is recorded as the glyph's Unicode mapping; if the
// CID is already mapped to different text, incompatible is true and the
// original mapping is kept (the text encoder's ActualText stage is
// responsible for falling back to an ActualText span in that case).
func (c *Container) Register(gid glyph.ID, text []rune) (id CID, incompatible bool) {
	id = c.remap.CID(gid)
	if len(text) == 0 {
		return id, false
	}
	existing, ok := c.toUnicode[id]
	if !ok {
		c.toUnicode[id] = append([]rune(nil), text...)
		return id, false
	}
	if !runesEqual(existing, text) {
		return id, true
	}
	return id, false
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Len returns the number of CIDs in the subset, including .notdef.
func (c *Container) Len() int {
	return c.remap.Len()
}

func (c *Container) subsetTag() string {
	gids := c.remap.GIDs()
	h := fnv.New64a()
	for _, g := range gids {
		fmt.Fprintf(h, "%d,", g)
	}
	return subset.Tag(c.Blob.ContentHash[:], h.Sum64())
}

// Embed writes the font dictionary tree (Type 0 font, descendant
// CIDFontType0/2 font, CIDSystemInfo, font descriptor, ToUnicode CMap, and
// -- for PDF versions that still need it -- a CIDSet stream) to w at ref.
func (c *Container) Embed(w pdf.Putter, ref pdf.Reference) error {
	gids := c.remap.GIDs()

	data, isCFF, err := c.SubsetFont(c.Blob, gids)
	if err != nil {
		return fmt.Errorf("subsetting CID font: %w", err)
	}

	tag := c.subsetTag()
	baseName := tag + "+" + c.Blob.PostscriptName()

	descendantRef := w.Alloc()
	descriptorRef := w.Alloc()
	fontFileRef := w.Alloc()
	toUnicodeRef := w.Alloc()

	geom := c.Blob.Geometry()

	var ww []WidthRec
	for cidVal, gid := range gids {
		var width funit.Int16
		if int(gid) < len(geom.Widths) {
			width = geom.Widths[gid]
		}
		ww = append(ww, WidthRec{CID: CID(cidVal), GlyphWidth: width})
	}
	dw, wArr := EncodeWidths(ww, geom.UnitsPerEm)

	subtype := pdf.Name("CIDFontType2")
	fileKey := pdf.Name("FontFile2")
	if isCFF {
		subtype = pdf.Name("CIDFontType0")
		fileKey = pdf.Name("FontFile3")
	}

	desc := c.Blob.Descriptor()
	desc.FontName = baseName

	systemInfoRef, err := font.WriteCIDSystemInfo(w, c.ROS)
	if err != nil {
		return err
	}

	fontDict := pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        pdf.Name(baseName),
		"Encoding":        pdf.Name("Identity-H"),
		"DescendantFonts": pdf.Array{descendantRef},
		"ToUnicode":       toUnicodeRef,
	}

	descendantDict := pdf.Dict{
		"Type":           pdf.Name("Font"),
		"Subtype":        subtype,
		"BaseFont":       pdf.Name(baseName),
		"CIDSystemInfo":  systemInfoRef,
		"FontDescriptor": descriptorRef,
		"DW":             dw,
	}
	if len(wArr) > 0 {
		descendantDict["W"] = wArr
	}

	descriptorDict := desc.AsDict()
	descriptorDict[fileKey] = fontFileRef

	var cidSetRef pdf.Reference
	if meta := w.GetMeta(); meta.Version < pdf.V2_0 {
		cidSetRef = w.Alloc()
		descriptorDict["CIDSet"] = cidSetRef
	}

	if err := w.Put(ref, fontDict); err != nil {
		return err
	}
	if err := w.Put(descendantRef, descendantDict); err != nil {
		return err
	}
	if err := w.Put(descriptorRef, descriptorDict); err != nil {
		return err
	}

	ffDict := pdf.Dict{}
	if isCFF {
		ffDict["Subtype"] = pdf.Name("CIDFontType0C")
	} else {
		ffDict["Length1"] = pdf.Integer(len(data))
	}
	stream, err := w.OpenStream(fontFileRef, ffDict, flateFilter)
	if err != nil {
		return err
	}
	if _, err := stream.Write(data); err != nil {
		return err
	}
	if err := stream.Close(); err != nil {
		return err
	}

	toUni := &tounicode.Info{CodeBytes: 2}
	for cidVal, text := range c.toUnicode {
		toUni.Singles = append(toUni.Singles, tounicode.Mapping{Code: uint32(cidVal), Text: text})
	}
	toUniStream, err := w.OpenStream(toUnicodeRef, pdf.Dict{}, flateFilter)
	if err != nil {
		return err
	}
	if _, err := toUniStream.Write(toUni.Write()); err != nil {
		return err
	}
	if err := toUniStream.Close(); err != nil {
		return err
	}

	if !cidSetRef.IsZero() {
		cidSetStream, err := w.OpenStream(cidSetRef, pdf.Dict{}, flateFilter)
		if err != nil {
			return err
		}
		if _, err := cidSetStream.Write(EncodeCIDSet(c.remap.Len())); err != nil {
			return err
		}
		if err := cidSetStream.Close(); err != nil {
			return err
		}
	}

	return nil
}
