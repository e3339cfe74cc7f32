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

// Package tounicode builds the ToUnicode CMap stream that lets a viewer
// (or a text-extraction tool) recover the original text from the CIDs or
// character codes a font container writes.
package tounicode

import (
	"fmt"
	"sort"
	"strings"
)

// Mapping associates one character code with the Unicode text it
// represents. Codes are inserted in increasing order is not required: Write
// sorts and merges them into ranges itself, the same way the PDF spec's
// bfrange/bfchar split works.
type Mapping struct {
	Code uint32
	Text []rune
}

// Info is the full set of mappings for one CMap, plus the number of bytes
// (1 or 2) each code occupies in the content stream.
type Info struct {
	CodeBytes int
	Singles   []Mapping
}

// Write serializes the CMap as a PDF ToUnicode stream (the CIDInit
// resource, bfchar/bfrange sections, and CMap epilogue). It is
// deterministic: identical Info values produce byte-identical output, which
// the serialization context relies on for its structural-hash cache.
func (info *Info) Write() []byte {
	m := append([]Mapping(nil), info.Singles...)
	sort.Slice(m, func(i, j int) bool { return m[i].Code < m[j].Code })

	var b strings.Builder
	b.WriteString(cmapHeaderPrefix)
	if info.CodeBytes == 1 {
		b.WriteString("<00> <ff>\n")
	} else {
		b.WriteString("<0000> <ffff>\n")
	}
	b.WriteString("endcodespacerange\n")

	// split into bfchar (single entries) and bfrange (consecutive runs of
	// codes whose text also increments by one code point) for compactness.
	i := 0
	var ranges [][3]interface{} // lo, hi, text
	var chars []Mapping
	for i < len(m) {
		j := i + 1
		for j < len(m) && isConsecutive(m[j-1], m[j]) {
			j++
		}
		if j-i >= 4 {
			ranges = append(ranges, [3]interface{}{m[i].Code, m[j-1].Code, m[i].Text})
			i = j
		} else {
			chars = append(chars, m[i])
			i++
		}
	}

	if len(chars) > 0 {
		fmt.Fprintf(&b, "%d beginbfchar\n", len(chars))
		for _, c := range chars {
			fmt.Fprintf(&b, "%s %s\n", hexCode(c.Code, info.CodeBytes), hexText(c.Text))
		}
		b.WriteString("endbfchar\n")
	}
	if len(ranges) > 0 {
		fmt.Fprintf(&b, "%d beginbfrange\n", len(ranges))
		for _, r := range ranges {
			lo := r[0].(uint32)
			hi := r[1].(uint32)
			text := r[2].([]rune)
			fmt.Fprintf(&b, "%s %s %s\n", hexCode(lo, info.CodeBytes), hexCode(hi, info.CodeBytes), hexText(text))
		}
		b.WriteString("endbfrange\n")
	}

	b.WriteString(cmapTrailer)
	return []byte(b.String())
}

func isConsecutive(a, b Mapping) bool {
	if b.Code != a.Code+1 {
		return false
	}
	if len(a.Text) != 1 || len(b.Text) != 1 {
		return false
	}
	return b.Text[0] == a.Text[0]+1
}

func hexCode(code uint32, nBytes int) string {
	switch nBytes {
	case 1:
		return fmt.Sprintf("<%02x>", code)
	default:
		return fmt.Sprintf("<%04x>", code)
	}
}

func hexText(rr []rune) string {
	var b strings.Builder
	b.WriteByte('<')
	for _, r := range rr {
		if r > 0xffff {
			r -= 0x10000
			hi := 0xd800 + (r >> 10)
			lo := 0xdc00 + (r & 0x3ff)
			fmt.Fprintf(&b, "%04x%04x", hi, lo)
			continue
		}
		fmt.Fprintf(&b, "%04x", r)
	}
	b.WriteByte('>')
	return b.String()
}

const cmapHeaderPrefix = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
`

const cmapTrailer = `endcmap
CMapName currentdict /CMap defineresource pop
end
end
`
