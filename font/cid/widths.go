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

package cid

import (
	"math"
	"sort"

	"seehuhn.de/go/dag"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font/funit"
)

// WidthRec maps a CID to a glyph width in font design units.
type WidthRec struct {
	CID        CID
	GlyphWidth funit.Int16
}

// EncodeWidths constructs the W and DW entries of a CIDFont dictionary,
// picking the most frequent width as the default (DW) and encoding the
// rest as compactly as possible using a shortest-path search over the
// range/array encodings the PDF spec allows for the W array.
// EncodeWidths sorts ww by increasing CID as a side effect.
func EncodeWidths(ww []WidthRec, unitsPerEm uint16) (pdf.Integer, pdf.Array) {
	sort.Slice(ww, func(i, j int) bool {
		return ww[i].CID < ww[j].CID
	})

	dw := mostFrequent(ww)

	g := wwGraph{ww, dw}
	ee, err := dag.ShortestPath[wwEdge, int](g, len(ww))
	if err != nil {
		panic(err)
	}

	q := 1000 / float64(unitsPerEm)
	dwScaled := pdf.Integer(math.Round(dw.AsFloat(q)))

	var res pdf.Array
	pos := 0
	for _, e := range ee {
		switch {
		case e > 0:
			wiScaled := pdf.Integer(math.Round(ww[pos].GlyphWidth.AsFloat(q)))
			res = append(res,
				pdf.Integer(ww[pos].CID),
				pdf.Integer(ww[pos+int(e)-1].CID),
				wiScaled)
		case e < 0:
			var wi pdf.Array
			for i := pos; i < pos+int(-e); i++ {
				wi = append(wi, pdf.Integer(math.Round(ww[i].GlyphWidth.AsFloat(q))))
			}
			res = append(res, pdf.Integer(ww[pos].CID), wi)
		}
		pos = g.To(pos, e)
	}

	return dwScaled, res
}

type wwGraph struct {
	ww []WidthRec
	dw funit.Int16
}

// wwEdge encodes how the next CID's width is represented:
//
//	e=0: the width equals the default width, so no entry is needed
//	e>0: the next e CIDs share a width, encoded as a range
//	e<0: the next -e CIDs are consecutive, encoded as an array
type wwEdge int16

func (g wwGraph) AppendEdges(ee []wwEdge, v int) []wwEdge {
	ww := g.ww
	if ww[v].GlyphWidth == g.dw {
		return append(ee, 0)
	}

	n := len(ww)

	i := v + 1
	for i < n && ww[i].GlyphWidth == ww[v].GlyphWidth {
		i++
	}
	if i > v+1 {
		ee = append(ee, wwEdge(i-v))
	}

	i = v
	for i < n && int(ww[i].CID)-int(ww[v].CID) == i-v {
		i++
		ee = append(ee, wwEdge(v-i))
	}

	return ee
}

func (g wwGraph) Length(v int, e wwEdge) int {
	if e == 0 {
		return 0
	} else if e > 0 {
		return 12 // "%d %d %d\n", assuming 3-digit integers
	}
	return 6 + 4*int(-e) // "%d [%d ... %d]\n"
}

func (g wwGraph) To(v int, e wwEdge) int {
	step := int(e)
	if step <= 0 {
		step = -step
	}
	if step == 0 {
		return v + 1
	}
	return v + step
}

func mostFrequent(ww []WidthRec) funit.Int16 {
	hist := make(map[funit.Int16]int)
	for _, wi := range ww {
		hist[wi.GlyphWidth]++
	}

	bestCount := 0
	bestVal := funit.Int16(0)
	for wi, count := range hist {
		if count > bestCount || (count == bestCount && wi < bestVal) {
			bestCount = count
			bestVal = wi
		}
	}
	return bestVal
}
