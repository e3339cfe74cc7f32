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

package content

import "seehuhn.de/go/pdfdoc"

// Matrix is a PDF text/graphics transformation matrix [a b c d e f],
// representing the affine map (x, y) -> (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Mul composes two matrices so that Apply(a.Mul(b), p) == Apply(b,
// Apply(a, p)): a is applied first, then b.
func (a Matrix) Mul(b Matrix) Matrix {
	return Matrix{
		a[0]*b[0] + a[1]*b[2],
		a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],
		a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4],
		a[4]*b[1] + a[5]*b[3] + b[5],
	}
}

// Apply maps a point through the matrix.
func (a Matrix) Apply(x, y float64) (float64, float64) {
	return a[0]*x + a[2]*y + a[4], a[1]*x + a[3]*y + a[5]
}

// IsIdentity reports whether the matrix is the identity transform.
func (a Matrix) IsIdentity() bool {
	return a == Identity
}

// AsOperands returns the six operands of a cm operator, in order.
func (a Matrix) AsOperands() []pdf.Object {
	out := make([]pdf.Object, 6)
	for i, v := range a {
		out[i] = pdf.Real(v)
	}
	return out
}

// Rect is an axis-aligned bounding box in some coordinate space; an empty
// Rect (the zero value) Extends to whatever it is first given.
type Rect struct {
	LLx, LLy, URx, URy float64
	empty              bool
}

// NewEmptyRect returns a bounding box with no extent yet; the first call
// to Extend sets it.
func NewEmptyRect() Rect {
	return Rect{empty: true}
}

// Extend grows r to also cover the point (x, y).
func (r *Rect) Extend(x, y float64) {
	if r.empty {
		r.LLx, r.LLy, r.URx, r.URy = x, y, x, y
		r.empty = false
		return
	}
	if x < r.LLx {
		r.LLx = x
	}
	if x > r.URx {
		r.URx = x
	}
	if y < r.LLy {
		r.LLy = y
	}
	if y > r.URy {
		r.URy = y
	}
}

// IsEmpty reports whether Extend has never been called.
func (r Rect) IsEmpty() bool {
	return r.empty
}

// Transform returns the bounding box of r's four corners mapped through m.
func (r Rect) Transform(m Matrix) Rect {
	out := NewEmptyRect()
	corners := [4][2]float64{
		{r.LLx, r.LLy}, {r.URx, r.LLy}, {r.URx, r.URy}, {r.LLx, r.URy},
	}
	for _, c := range corners {
		x, y := m.Apply(c[0], c[1])
		out.Extend(x, y)
	}
	return out
}
