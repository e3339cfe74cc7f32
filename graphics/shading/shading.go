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

// Package shading writes PDF shading dictionaries for the sh operator
// and for shading patterns: function-based (type 1), axial (type 2) and
// radial (type 3) gradients. The four mesh shading types (4-7) need a
// packed-bitstream vertex encoder that nothing in this module currently
// builds, so they are not implemented; see DESIGN.md.
package shading

import (
	"crypto/md5"
	"fmt"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/graphics/color"
	"seehuhn.de/go/pdfdoc/pdfwrite"
)

// Shading is a PDF shading dictionary a caller can paint with the sh
// operator or wrap in a shading pattern.
type Shading interface {
	// ShadingType is the PDF /ShadingType integer (1, 2 or 3).
	ShadingType() int

	// Encode registers the shading with ctx and returns its indirect
	// reference, deduplicated by structural hash the way every other
	// cacheable chunk in the context is.
	Encode(ctx *pdfwrite.Context) (pdf.Reference, error)
}

func floatArray(v []float64) pdf.Array {
	a := make(pdf.Array, len(v))
	for i, x := range v {
		a[i] = pdf.Real(x)
	}
	return a
}

func vec2Array(a, b vec.Vec2) pdf.Array {
	return pdf.Array{pdf.Real(a.X), pdf.Real(a.Y), pdf.Real(b.X), pdf.Real(b.Y)}
}

// Type1 is a function-based shading: F maps (x, y) in Domain directly to
// a color in ColorSpace (ISO 32000-2 8.7.4.5.2).
type Type1 struct {
	ColorSpace color.Space
	F          pdf.Object // reference to an already-written PDF function
	Domain     []float64  // [xmin xmax ymin ymax], or nil for [0 1 0 1]
	Matrix     []float64  // row-major 3x2, or nil for identity
}

func (s *Type1) ShadingType() int { return 1 }

func (s *Type1) Encode(ctx *pdfwrite.Context) (pdf.Reference, error) {
	return ctx.RegisterCacheable(type1Cacheable{s})
}

type type1Cacheable struct{ s *Type1 }

func (w type1Cacheable) CacheKey() [16]byte {
	return md5.Sum([]byte(fmt.Sprintf("Sh1:%T%v:%v:%v:%v", w.s.ColorSpace, w.s.ColorSpace, w.s.F, w.s.Domain, w.s.Matrix)))
}
func (w type1Cacheable) Chunk() pdfwrite.ChunkClass { return pdfwrite.ClassShading }
func (w type1Cacheable) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	cs, err := w.s.ColorSpace.Encode(ctx)
	if err != nil {
		return nil, err
	}
	dict := pdf.Dict{
		"ShadingType": pdf.Integer(1),
		"ColorSpace":  cs,
		"Function":    w.s.F,
	}
	if len(w.s.Domain) == 4 {
		dict["Domain"] = floatArray(w.s.Domain)
	}
	if len(w.s.Matrix) == 6 {
		dict["Matrix"] = floatArray(w.s.Matrix)
	}
	return dict, nil
}

// Type2 is an axial (linear) gradient between P0 and P1 (ISO 32000-2
// 8.7.4.5.3). TMax, when zero, defaults to 1 (t runs 0..1 along the
// axis); Extend, if set, extends the first/last color past the axis
// endpoints.
type Type2 struct {
	ColorSpace color.Space
	P0, P1     vec.Vec2
	F          pdf.Object
	TMax       float64
	Extend     [2]bool
}

func (s *Type2) ShadingType() int { return 2 }

func (s *Type2) Encode(ctx *pdfwrite.Context) (pdf.Reference, error) {
	return ctx.RegisterCacheable(type2Cacheable{s})
}

type type2Cacheable struct{ s *Type2 }

func (w type2Cacheable) CacheKey() [16]byte {
	return md5.Sum([]byte(fmt.Sprintf("Sh2:%T%v:%v:%v:%v:%v:%v", w.s.ColorSpace, w.s.ColorSpace, w.s.P0, w.s.P1, w.s.F, w.s.TMax, w.s.Extend)))
}
func (w type2Cacheable) Chunk() pdfwrite.ChunkClass { return pdfwrite.ClassShading }
func (w type2Cacheable) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	cs, err := w.s.ColorSpace.Encode(ctx)
	if err != nil {
		return nil, err
	}
	tMax := w.s.TMax
	if tMax == 0 {
		tMax = 1
	}
	dict := pdf.Dict{
		"ShadingType": pdf.Integer(2),
		"ColorSpace":  cs,
		"Coords":      vec2Array(w.s.P0, w.s.P1),
		"Function":    w.s.F,
		"Domain":      pdf.Array{pdf.Real(0), pdf.Real(tMax)},
	}
	if w.s.Extend[0] || w.s.Extend[1] {
		dict["Extend"] = pdf.Array{pdf.Boolean(w.s.Extend[0]), pdf.Boolean(w.s.Extend[1])}
	}
	return dict, nil
}

// Type3 is a radial gradient between two circles (ISO 32000-2 8.7.4.5.4).
type Type3 struct {
	ColorSpace       color.Space
	Center1, Center2 vec.Vec2
	R1, R2           float64
	F                pdf.Object
	TMax             float64
	Extend           [2]bool
}

func (s *Type3) ShadingType() int { return 3 }

func (s *Type3) Encode(ctx *pdfwrite.Context) (pdf.Reference, error) {
	return ctx.RegisterCacheable(type3Cacheable{s})
}

type type3Cacheable struct{ s *Type3 }

func (w type3Cacheable) CacheKey() [16]byte {
	return md5.Sum([]byte(fmt.Sprintf("Sh3:%T%v:%v:%v:%v:%v:%v:%v:%v", w.s.ColorSpace, w.s.ColorSpace,
		w.s.Center1, w.s.R1, w.s.Center2, w.s.R2, w.s.F, w.s.TMax, w.s.Extend)))
}
func (w type3Cacheable) Chunk() pdfwrite.ChunkClass { return pdfwrite.ClassShading }
func (w type3Cacheable) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	cs, err := w.s.ColorSpace.Encode(ctx)
	if err != nil {
		return nil, err
	}
	tMax := w.s.TMax
	if tMax == 0 {
		tMax = 1
	}
	dict := pdf.Dict{
		"ShadingType": pdf.Integer(3),
		"ColorSpace":  cs,
		"Coords": pdf.Array{
			pdf.Real(w.s.Center1.X), pdf.Real(w.s.Center1.Y), pdf.Real(w.s.R1),
			pdf.Real(w.s.Center2.X), pdf.Real(w.s.Center2.Y), pdf.Real(w.s.R2),
		},
		"Function": w.s.F,
		"Domain":   pdf.Array{pdf.Real(0), pdf.Real(tMax)},
	}
	if w.s.Extend[0] || w.s.Extend[1] {
		dict["Extend"] = pdf.Array{pdf.Boolean(w.s.Extend[0]), pdf.Boolean(w.s.Extend[1])}
	}
	return dict, nil
}
