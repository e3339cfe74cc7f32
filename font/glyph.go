// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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
	"strings"

	"seehuhn.de/go/pdfdoc/font/glyph"
)

// Glyph is a single positioned glyph, ready to be handed to a font
// container for registration and encoding.
type Glyph struct {
	// GID identifies the glyph within the font's own glyph index.
	GID glyph.ID

	// Advance is the advance width the client wishes to achieve, in PDF
	// text space units already scaled by the font size.
	Advance float64

	// Rise lifts the glyph above the baseline, in PDF text space units
	// already scaled by the font size.
	Rise float64

	// Text is the text content represented by the glyph.
	Text string
}

// GlyphSeq is a sequence of positioned glyphs, as produced by a
// [Typesetter] and consumed by the text encoder.
type GlyphSeq struct {
	Skip float64
	Seq  []Glyph
}

// Reset empties the sequence, keeping the underlying storage.
func (s *GlyphSeq) Reset() {
	if s == nil {
		return
	}
	s.Skip = 0
	s.Seq = s.Seq[:0]
}

// TotalWidth returns the total advance width of the sequence.
func (s *GlyphSeq) TotalWidth() float64 {
	w := s.Skip
	for _, g := range s.Seq {
		w += g.Advance
	}
	return w
}

// Text returns the concatenated text represented by the sequence.
func (s *GlyphSeq) Text() string {
	var res strings.Builder
	for _, g := range s.Seq {
		res.WriteString(g.Text)
	}
	return res.String()
}

// Append appends the glyphs from other, merging the skip of other into the
// advance of the last glyph already in s.
func (s *GlyphSeq) Append(other *GlyphSeq) {
	if len(s.Seq) == 0 {
		s.Skip += other.Skip
	} else {
		s.Seq[len(s.Seq)-1].Advance += other.Skip
	}
	s.Seq = append(s.Seq, other.Seq...)
}

// Align places the glyphs within a space of the given width.
// q=0 is left alignment, q=1 is right alignment, q=0.5 centers.
func (s *GlyphSeq) Align(width float64, q float64) {
	if len(s.Seq) == 0 {
		return
	}
	extra := width - s.TotalWidth()
	s.Skip += extra * q
	s.Seq[len(s.Seq)-1].Advance += extra * (1 - q)
}

// PadTo adds trailing space so the total width is at least width.
func (s *GlyphSeq) PadTo(width float64) {
	if len(s.Seq) == 0 {
		s.Skip = width
		return
	}
	extra := width - s.TotalWidth()
	if extra > 0 {
		s.Seq[len(s.Seq)-1].Advance += extra
	}
}

// Layouter is implemented by a font blob's own text-shaping step.
type Layouter interface {
	Layout(seq *GlyphSeq, fontSize float64, text string)
}

// Typesetter combines a font's own layout with the PDF text-state
// parameters (character/word spacing, horizontal scaling, rise) to turn a
// string into a [GlyphSeq].
type Typesetter struct {
	font              Layouter
	fontSize          float64
	characterSpacing  float64
	wordSpacing       float64
	horizontalScaling float64
	textRise          float64
}

// NewTypesetter creates a typesetter for the given font and font size.
func NewTypesetter(font Layouter, fontSize float64) *Typesetter {
	return &Typesetter{
		font:              font,
		fontSize:          fontSize,
		horizontalScaling: 1,
	}
}

func (t *Typesetter) SetCharacterSpacing(spacing float64) { t.characterSpacing = spacing }
func (t *Typesetter) SetWordSpacing(spacing float64)       { t.wordSpacing = spacing }
func (t *Typesetter) SetHorizontalScaling(scaling float64) { t.horizontalScaling = scaling }
func (t *Typesetter) SetTextRise(rise float64)             { t.textRise = rise }

// Layout converts text into a glyph sequence, appending to seq (or
// allocating a new one if seq is nil).
func (t *Typesetter) Layout(seq *GlyphSeq, text string) *GlyphSeq {
	if seq == nil {
		seq = &GlyphSeq{}
	}
	base := len(seq.Seq)

	if t.characterSpacing == 0 {
		t.font.Layout(seq, t.fontSize, text)
	} else { // disable ligatures so every character spacing gap is honored
		for _, r := range text {
			t.font.Layout(seq, t.fontSize, string(r))
		}
	}

	for i := base; i < len(seq.Seq); i++ {
		advance := seq.Seq[i].Advance + t.characterSpacing
		if seq.Seq[i].Text == " " {
			advance += t.wordSpacing
		}
		seq.Seq[i].Advance = advance * t.horizontalScaling
		seq.Seq[i].Rise = t.textRise
	}

	return seq
}
