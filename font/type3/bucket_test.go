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

package type3

import (
	"testing"

	"seehuhn.de/go/pdfdoc/font/glyph"
)

func TestBucketListOverflow(t *testing.T) {
	var bl BucketList
	for i := 0; i < 256; i++ {
		idx, code := bl.Register(Glyph{Key: Key{GID: glyph.ID(i), Mode: PaintColorTable}})
		if idx != 0 {
			t.Fatalf("glyph %d: bucket %d, want 0", i, idx)
		}
		if code != byte(i) {
			t.Fatalf("glyph %d: code %d, want %d", i, code, i)
		}
	}
	if bl.NumBuckets() != 1 {
		t.Fatalf("NumBuckets() = %d, want 1", bl.NumBuckets())
	}

	idx, code := bl.Register(Glyph{Key: Key{GID: glyph.ID(256), Mode: PaintColorTable}})
	if idx != 1 || code != 0 {
		t.Fatalf("257th glyph landed at bucket %d code %d, want bucket 1 code 0", idx, code)
	}
	if bl.NumBuckets() != 2 {
		t.Fatalf("NumBuckets() = %d, want 2", bl.NumBuckets())
	}
}

func TestBucketListDedup(t *testing.T) {
	var bl BucketList
	key := Key{GID: 7, Mode: PaintOutlineFallback}
	idx1, code1 := bl.Register(Glyph{Key: key})
	idx2, code2 := bl.Register(Glyph{Key: key})
	if idx1 != idx2 || code1 != code2 {
		t.Fatalf("registering the same key twice gave different slots: (%d,%d) vs (%d,%d)", idx1, code1, idx2, code2)
	}
	if bl.NumBuckets() != 1 || len(bl.buckets[0].glyphs) != 1 {
		t.Fatal("duplicate registration added a second glyph")
	}
}
