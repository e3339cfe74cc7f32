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

package function

import (
	"fmt"
	"math"
)

// Type2 is a PDF function of type 2: exponential interpolation between
// C0 and C1, y_j = C0_j + x^N * (C1_j - C0_j) (PDF 32000-2:2020, 7.10.3).
type Type2 struct {
	XMin, XMax float64
	C0, C1     []float64
	N          float64
	Range      []float64
}

// repair substitutes the default single-output coefficients ([0.0] and
// [1.0]) when C0/C1 are unset, and pads a short C1 out to len(C0).
func (fn *Type2) repair() {
	if len(fn.C0) == 0 {
		fn.C0 = []float64{0}
	}
	if len(fn.C1) == 0 {
		fn.C1 = []float64{1}
	}
	if len(fn.C1) != len(fn.C0) {
		c1 := make([]float64, len(fn.C0))
		copy(c1, fn.C1)
		fn.C1 = c1
	}
}

// Shape reports the single input and len(C0) outputs.
func (fn *Type2) Shape() (m, n int) {
	fn.repair()
	return 1, len(fn.C0)
}

// Apply evaluates the exponential interpolation at inputs[0], clipping it
// to [XMin, XMax] first and each output to the corresponding Range pair
// when Range is set.
func (fn *Type2) Apply(result []float64, inputs ...float64) {
	fn.repair()
	var x float64
	if len(inputs) > 0 {
		x = clip(inputs[0], fn.XMin, fn.XMax)
	}
	xn := math.Pow(x, fn.N)
	for i := 0; i < len(result) && i < len(fn.C0); i++ {
		v := fn.C0[i] + xn*(fn.C1[i]-fn.C0[i])
		if 2*i+1 < len(fn.Range) {
			v = clip(v, fn.Range[2*i], fn.Range[2*i+1])
		}
		result[i] = v
	}
}

// validate reports whether fn is well-formed: a usable domain, matching
// C0/C1 lengths, and (per 7.10.3) a non-negative domain whenever N is not
// an integer, so that x^N stays real-valued.
func (fn *Type2) validate() error {
	if !isRange(fn.XMin, fn.XMax) {
		return fmt.Errorf("function: invalid domain [%v, %v]", fn.XMin, fn.XMax)
	}
	c0, c1 := fn.C0, fn.C1
	if len(c0) == 0 {
		c0 = []float64{0}
	}
	if len(c1) == 0 {
		c1 = []float64{1}
	}
	if len(c0) != len(c1) {
		return fmt.Errorf("function: C0/C1 length mismatch (%d vs %d)", len(c0), len(c1))
	}
	if fn.N != math.Trunc(fn.N) && fn.XMin < 0 {
		return fmt.Errorf("function: non-integer exponent N=%v requires a non-negative domain", fn.N)
	}
	return nil
}
