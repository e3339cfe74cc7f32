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

package cid

import (
	"testing"

	"seehuhn.de/go/pdfdoc/font/glyph"
)

func TestRemapperNotdef(t *testing.T) {
	r := NewRemapper()
	if got := r.CID(0); got != 0 {
		t.Errorf("CID(0) = %d, want 0", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRemapperConsecutive(t *testing.T) {
	r := NewRemapper()
	gids := []glyph.ID{5, 9, 5, 3, 9}
	var got []CID
	for _, g := range gids {
		got = append(got, r.CID(g))
	}
	want := []CID{1, 2, 1, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CID(%d) = %d, want %d", gids[i], got[i], want[i])
		}
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if r.GID(2) != 9 {
		t.Errorf("GID(2) = %d, want 9", r.GID(2))
	}
}

func TestContainerRegisterIncompatible(t *testing.T) {
	c := NewContainer(nil, nil)
	id1, bad1 := c.Register(3, []rune("A"))
	if bad1 {
		t.Fatal("first registration reported incompatible")
	}
	id2, bad2 := c.Register(3, []rune("A"))
	if bad2 || id2 != id1 {
		t.Fatal("repeated identical mapping reported incompatible")
	}
	_, bad3 := c.Register(3, []rune("B"))
	if !bad3 {
		t.Fatal("conflicting mapping not reported incompatible")
	}
}

func TestEncodeWidthsDefault(t *testing.T) {
	ww := []WidthRec{
		{CID: 0, GlyphWidth: 500},
		{CID: 1, GlyphWidth: 500},
		{CID: 2, GlyphWidth: 500},
		{CID: 3, GlyphWidth: 250},
	}
	dw, arr := EncodeWidths(ww, 1000)
	if dw != 500 {
		t.Errorf("DW = %v, want 500", dw)
	}
	if len(arr) == 0 {
		t.Fatal("expected a non-empty W array for the CID with a non-default width")
	}
}

func TestEncodeCIDSet(t *testing.T) {
	got := EncodeCIDSet(9)
	want := []byte{0xff, 0x80}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("EncodeCIDSet(9) = %08b %08b, want %08b %08b", got[0], got[1], want[0], want[1])
	}
}
