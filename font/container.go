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
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font/cid"
	"seehuhn.de/go/pdfdoc/font/glyph"
	"seehuhn.de/go/pdfdoc/font/type3"
)

// PaintMode describes how a glyph is to be painted, as determined by the
// caller (the color-glyph drawing pipeline owns the gradient/pattern
// decision; the container only needs to know whether the glyph can take
// the CID path at all).
type PaintMode = type3.PaintMode

const (
	PaintSolid           = type3.PaintUnknown // plain outline, solid color: eligible for CID
	PaintColorTable      = type3.PaintColorTable
	PaintOutlineFallback = type3.PaintOutlineFallback
)

// GlyphRef identifies where a registered glyph ended up: either the CID
// font (IsType3 is false, CID holds the assigned code) or one of the
// Type 3 buckets (IsType3 is true, BucketIndex selects the bucket, Code the
// character code within it).
type GlyphRef struct {
	IsType3     bool
	CID         cid.CID
	BucketIndex int
	Code        byte
}

// Container is the font-level decision point of §4.3: every glyph the
// text encoder wants to draw with this font program is registered here
// once, and routed to the CID path or a Type 3 bucket according to the
// decision rule (colored or gradient/pattern-painted glyphs go to Type 3;
// plain solid-colored outline glyphs go to CID).
type Container struct {
	Blob *Blob

	cidFont *cid.Container
	buckets type3.BucketList
}

// NewContainer creates a font container for one font program. subsetter
// is passed through to the CID path's subsetFont collaborator; it may be
// nil if the container will only ever hold Type 3 glyphs.
func NewContainer(blob *Blob, subsetter cid.SubsetFont) *Container {
	return &Container{
		Blob:    blob,
		cidFont: cid.NewContainer(blob, subsetter),
	}
}

// Register applies the §4.3 decision rule to one glyph and returns where
// it ended up. mode is supplied by the caller: PaintColorTable or
// PaintOutlineFallback force the Type 3 path regardless of what the font
// program's tables say (the color-glyph drawing pipeline has already
// decided it needs to draw this glyph itself); PaintSolid takes the CID
// path whenever the font has no color tables for this glyph's face.
//
// incompatible reports that text had already been registered for this
// glyph under different Unicode text (see [cid.Container.Register]); it
// is always false for Type 3 glyphs, since each (gid, mode) pair gets its
// own bucket slot and its own ToUnicode entry.
func (c *Container) Register(gid glyph.ID, mode PaintMode, text []rune, build func() type3.Glyph) (ref GlyphRef, incompatible bool) {
	if mode == PaintSolid && c.Blob != nil && c.Blob.HasColorTables() {
		mode = PaintColorTable
	}
	if mode == PaintColorTable || mode == PaintOutlineFallback {
		g := build()
		g.Key = type3.Key{GID: gid, Mode: mode}
		g.Text = text
		idx, code := c.buckets.Register(g)
		return GlyphRef{IsType3: true, BucketIndex: idx, Code: code}, false
	}

	id, bad := c.cidFont.Register(gid, text)
	return GlyphRef{CID: id}, bad
}

// NumType3Buckets reports how many Type 3 buckets this container has
// accumulated.
func (c *Container) NumType3Buckets() int {
	return c.buckets.NumBuckets()
}

// EmbedCIDFont writes the CID font dictionary to w at ref, if any glyphs
// were routed through the CID path (Len() > 1, since CID 0 is always
// present).
func (c *Container) EmbedCIDFont(w pdf.Putter, ref pdf.Reference) error {
	if c.cidFont.Len() <= 1 {
		return nil
	}
	return c.cidFont.Embed(w, ref)
}

// EmbedType3Bucket writes the Type 3 font dictionary for bucket index i
// to w at ref.
func (c *Container) EmbedType3Bucket(w pdf.Putter, ref pdf.Reference, bucketIndex int) error {
	upem := uint16(1000)
	if c.Blob != nil {
		upem = c.Blob.Geometry().UnitsPerEm
	}
	return type3.EmbedBucket(w, ref, &c.buckets, bucketIndex, upem)
}
