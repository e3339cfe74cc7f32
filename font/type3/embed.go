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

package type3

import (
	"fmt"
	"math"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/pdfdoc/font/funit"
	"seehuhn.de/go/pdfdoc/font/tounicode"
)

var flateFilter = &pdf.FilterInfo{Name: "FlateDecode"}

// EmbedBucket writes one Type 3 font dictionary for bucket index i of bl
// to w at ref. unitsPerEm is the font design units per em of the glyphs in
// the bucket (1000 for glyphs drawn directly in PDF text space, matching
// the scale the rest of the font container's CID path uses).
func EmbedBucket(w pdf.Putter, ref pdf.Reference, bl *BucketList, bucketIndex int, unitsPerEm uint16) error {
	if bucketIndex < 0 || bucketIndex >= len(bl.buckets) {
		return fmt.Errorf("type3: bucket index %d out of range", bucketIndex)
	}
	b := bl.buckets[bucketIndex]
	n := len(b.glyphs)
	if n == 0 {
		return fmt.Errorf("type3: empty bucket")
	}

	q := 1 / float64(unitsPerEm)

	charProcRefs := make([]pdf.Reference, n)
	for i := range charProcRefs {
		charProcRefs[i] = w.Alloc()
	}

	names := make([]pdf.Name, n)
	charProcs := pdf.Dict{}
	widths := make(pdf.Array, n)
	resources := pdf.Dict{}
	var toUni tounicode.Info
	toUni.CodeBytes = 1

	var bbox funit.Rect
	for i, g := range b.glyphs {
		name := pdf.Name(fmt.Sprintf("g%d", i))
		names[i] = name
		charProcs[name] = charProcRefs[i]
		widths[i] = pdf.Integer(math.Round(float64(g.Width) * 1000 * q))
		for k, v := range g.Resources {
			resources[k] = v
		}
		if len(g.Text) > 0 {
			toUni.Singles = append(toUni.Singles, tounicode.Mapping{Code: uint32(i), Text: g.Text})
		}
		bbox.Extend(g.BBox)
	}

	var differences pdf.Array
	differences = append(differences, pdf.Integer(0))
	for _, name := range names {
		differences = append(differences, name)
	}
	encoding := pdf.Dict{
		"Type":        pdf.Name("Encoding"),
		"Differences": differences,
	}

	toUnicodeRef := w.Alloc()

	fontDict := pdf.Dict{
		"Type":       pdf.Name("Font"),
		"Subtype":    pdf.Name("Type3"),
		"FontBBox":   bbox.AsPDF(q),
		"FontMatrix": pdf.Array{pdf.Real(q), pdf.Integer(0), pdf.Integer(0), pdf.Real(q), pdf.Integer(0), pdf.Integer(0)},
		"CharProcs":  charProcs,
		"Encoding":   encoding,
		"FirstChar":  pdf.Integer(0),
		"LastChar":   pdf.Integer(n - 1),
		"Widths":     widths,
		"ToUnicode":  toUnicodeRef,
	}
	if len(resources) > 0 {
		fontDict["Resources"] = resources
	}

	meta := w.GetMeta()
	if meta.Version >= pdf.V1_5 {
		descRef := w.Alloc()
		desc := &font.Descriptor{StemV: -1}
		descDict := desc.AsDict()
		delete(descDict, "FontName")
		if err := w.Put(descRef, descDict); err != nil {
			return err
		}
		fontDict["FontDescriptor"] = descRef
	}

	if err := w.Put(ref, fontDict); err != nil {
		return err
	}

	for i, g := range b.glyphs {
		stream, err := w.OpenStream(charProcRefs[i], pdf.Dict{}, flateFilter)
		if err != nil {
			return err
		}
		if _, err := stream.Write(g.Content); err != nil {
			return err
		}
		if err := stream.Close(); err != nil {
			return err
		}
	}

	toUniStream, err := w.OpenStream(toUnicodeRef, pdf.Dict{}, flateFilter)
	if err != nil {
		return err
	}
	if _, err := toUniStream.Write(toUni.Write()); err != nil {
		return err
	}
	return toUniStream.Close()
}
