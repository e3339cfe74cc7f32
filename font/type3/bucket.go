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

// Package type3 implements the Type 3 bucket path of the font container:
// glyphs that are colored (sbix/CBDT/COLR/SVG) or painted with a gradient
// or pattern are drawn into per-glyph form XObjects and addressed through
// a Type 3 font's character procedures, 256 painted glyphs to a bucket.
package type3

import (
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font/funit"
	"seehuhn.de/go/pdfdoc/font/glyph"
)

// PaintMode distinguishes the ways the same outline glyph can be painted;
// a glyph filled with a gradient and the same glyph filled with a flat
// color that happens to need the Type 3 fallback occupy different bucket
// slots, since their character procedures draw different content.
type PaintMode int

const (
	PaintUnknown PaintMode = iota
	PaintColorTable         // sbix, CBDT/EBDT, COLR, or SVG table content
	PaintOutlineFallback    // outline filled with the current color, as a last resort
)

// Key identifies one painted glyph within a font's bucket list.
type Key struct {
	GID  glyph.ID
	Mode PaintMode
}

// Glyph is one painted glyph ready to be installed into a bucket: its
// character-procedure content stream (expected to invoke a form XObject,
// see [BucketList.FormName]), the resources that stream references, its
// advance width, and its bounding box.
type Glyph struct {
	Key       Key
	Width     funit.Int16
	BBox      funit.Rect
	Content   []byte
	Resources pdf.Dict // the XObject (or other) subdictionary entries Content refers to
	Text      []rune
}

// bucket holds up to 256 painted glyphs, addressed by one-byte character
// codes 0..255.
type bucket struct {
	glyphs []Glyph
	index  map[Key]byte
}

func newBucket() *bucket {
	return &bucket{index: make(map[Key]byte)}
}

func (b *bucket) full() bool {
	return len(b.glyphs) >= 256
}

func (b *bucket) add(g Glyph) byte {
	code := byte(len(b.glyphs))
	b.glyphs = append(b.glyphs, g)
	b.index[g.Key] = code
	return code
}

// BucketList manages the sequence of Type 3 buckets a font container
// assembles for one font blob. Glyphs are placed in the most recent
// bucket that still has room; once a bucket reaches 256 glyphs, a new one
// is started.
type BucketList struct {
	buckets []*bucket
}

// Register places g into the bucket list, returning the index of the
// bucket it landed in and its one-byte character code within that bucket.
// Registering the same key twice returns the same (bucket, code) pair
// without adding a duplicate glyph.
func (bl *BucketList) Register(g Glyph) (bucketIndex int, code byte) {
	for i, b := range bl.buckets {
		if c, ok := b.index[g.Key]; ok {
			return i, c
		}
	}

	var b *bucket
	if n := len(bl.buckets); n > 0 && !bl.buckets[n-1].full() {
		b = bl.buckets[n-1]
		bucketIndex = n - 1
	} else {
		b = newBucket()
		bl.buckets = append(bl.buckets, b)
		bucketIndex = len(bl.buckets) - 1
	}
	code = b.add(g)
	return bucketIndex, code
}

// NumBuckets returns how many Type 3 buckets the font has accumulated so
// far.
func (bl *BucketList) NumBuckets() int {
	return len(bl.buckets)
}
