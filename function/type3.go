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

	"seehuhn.de/go/pdfdoc"
)

// Type3 is a PDF function of type 3: a stitching function that
// partitions [XMin, XMax] at the Bounds offsets and delegates each
// subdomain to one of Functions, remapped through Encode (PDF
// 32000-2:2020, 7.10.4).
type Type3 struct {
	XMin, XMax float64
	Functions  []pdf.Function
	Bounds     []float64
	Encode     []float64
	Range      []float64
}

// repair defaults Encode to the identity mapping [0 1 0 1 ...] when its
// length does not match the number of component functions.
func (fn *Type3) repair() {
	k := len(fn.Functions)
	if len(fn.Encode) != 2*k {
		enc := make([]float64, 2*k)
		for i := range enc {
			if i%2 == 1 {
				enc[i] = 1
			}
		}
		fn.Encode = enc
	}
}

// Shape reports a single input and either len(Range)/2 outputs, or, when
// Range is unset, the first component function's output count.
func (fn *Type3) Shape() (m, n int) {
	fn.repair()
	if len(fn.Range) >= 2 {
		return 1, len(fn.Range) / 2
	}
	if len(fn.Functions) > 0 {
		_, n := fn.Functions[0].Shape()
		return 1, n
	}
	return 1, 0
}

// findSubdomain returns the index of the component function covering x,
// and the subdomain [a, b] it was selected from.
//
// Subdomains are half-open ([a, b)) except the last, which is closed on
// both ends. When a boundary coincides with XMin (edges[i] == edges[i+1]
// for some interior i), that interval degenerates to the single point
// edges[i]: it is selected only by an exact match, and the following
// interval becomes open on the left, per PDF 32000-2:2020 7.10.4's
// footnote on coincident bounds.
func (fn *Type3) findSubdomain(x float64) (index int, a, b float64) {
	fn.repair()
	k := len(fn.Functions)
	edges := make([]float64, 0, k+1)
	edges = append(edges, fn.XMin)
	edges = append(edges, fn.Bounds...)
	edges = append(edges, fn.XMax)

	for i := 0; i < k; i++ {
		lo, hi := edges[i], edges[i+1]
		last := i == k-1
		if lo == hi {
			if x == lo {
				return i, lo, hi
			}
			continue
		}
		if last {
			if x >= lo && x <= hi {
				return i, lo, hi
			}
		} else if x >= lo && x < hi {
			return i, lo, hi
		}
	}
	return k - 1, edges[k-1], edges[k]
}

// Apply selects the component function covering inputs[0], remaps it
// through Encode, and delegates to it.
func (fn *Type3) Apply(result []float64, inputs ...float64) {
	fn.repair()
	var x float64
	if len(inputs) > 0 {
		x = clip(inputs[0], fn.XMin, fn.XMax)
	}
	i, a, b := fn.findSubdomain(x)

	e := x
	if 2*i+1 < len(fn.Encode) {
		e = interpolate(x, a, b, fn.Encode[2*i], fn.Encode[2*i+1])
	}

	fn.Functions[i].Apply(result, e)

	for j := 0; j < len(result) && 2*j+1 < len(fn.Range); j++ {
		result[j] = clip(result[j], fn.Range[2*j], fn.Range[2*j+1])
	}
}

// validate reports whether fn is well-formed: a usable domain, at least
// one component function, and exactly len(Functions)-1 bounds.
func (fn *Type3) validate() error {
	if !isRange(fn.XMin, fn.XMax) {
		return fmt.Errorf("function: invalid domain [%v, %v]", fn.XMin, fn.XMax)
	}
	k := len(fn.Functions)
	if k == 0 {
		return fmt.Errorf("function: stitching function has no component functions")
	}
	if len(fn.Bounds) != k-1 {
		return fmt.Errorf("function: need %d bounds for %d functions, got %d", k-1, k, len(fn.Bounds))
	}
	return nil
}
