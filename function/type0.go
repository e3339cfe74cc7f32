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

// Type0 is a PDF function of type 0: a sampled function over an
// m-dimensional grid, reconstructed by multilinear interpolation (or,
// for a single input with UseCubic set, Catmull-Rom spline
// interpolation, matching Ghostscript's gsfunc0.c) (PDF 32000-2:2020,
// 7.10.2).
type Type0 struct {
	Domain        []float64
	Range         []float64
	Size          []int
	BitsPerSample int
	Encode        []float64
	Decode        []float64
	UseCubic      bool
	Samples       []byte
}

// repair defaults Encode to [0, Size[i]-1] per dimension and Decode to
// Range, the PDF defaults, whenever they are missing or mis-sized.
func (fn *Type0) repair() {
	m := len(fn.Size)
	if len(fn.Encode) != 2*m {
		enc := make([]float64, 2*m)
		for i := 0; i < m; i++ {
			enc[2*i] = 0
			enc[2*i+1] = float64(fn.Size[i] - 1)
		}
		fn.Encode = enc
	}
	n := len(fn.Range) / 2
	if len(fn.Decode) != 2*n {
		fn.Decode = append([]float64{}, fn.Range...)
	}
}

// Shape reports len(Size) inputs and len(Range)/2 outputs.
func (fn *Type0) Shape() (m, n int) {
	return len(fn.Size), len(fn.Range) / 2
}

func (fn *Type0) maxSampleValue() float64 {
	bits := fn.BitsPerSample
	if bits <= 0 {
		return 1
	}
	if bits > 32 {
		bits = 32
	}
	return float64((uint64(1) << uint(bits)) - 1)
}

// extractSampleAtIndex returns the raw (undecoded) unsigned integer value
// of the i-th BitsPerSample-wide sample in the bit-packed Samples array,
// most-significant bit first. An index reaching past the end of Samples
// yields 0 rather than panicking, since malformed sample data must not
// crash evaluation.
func (fn *Type0) extractSampleAtIndex(i int) float64 {
	bits := fn.BitsPerSample
	if bits <= 0 || i < 0 {
		return 0
	}
	bitOffset := i * bits
	var v uint64
	for b := 0; b < bits; b++ {
		byteIdx := (bitOffset + b) / 8
		var bit uint64
		if byteIdx >= 0 && byteIdx < len(fn.Samples) {
			shift := 7 - uint((bitOffset+b)%8)
			bit = uint64((fn.Samples[byteIdx] >> shift) & 1)
		}
		v = v<<1 | bit
	}
	return float64(v)
}

// flatSampleIndex computes the offset, in units of one sample tuple, of
// the grid point at coord (first dimension varying fastest).
func (fn *Type0) flatSampleIndex(coord []int) int {
	idx := 0
	for i := len(fn.Size) - 1; i >= 0; i-- {
		size := fn.Size[i]
		if size < 1 {
			size = 1
		}
		idx = idx*size + coord[i]
	}
	return idx
}

func (fn *Type0) sampleTupleAt(coord []int, n int) []float64 {
	base := fn.flatSampleIndex(coord) * n
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = fn.extractSampleAtIndex(base + j)
	}
	return out
}

func (fn *Type0) decodeSample(raw float64, j int) float64 {
	maxVal := fn.maxSampleValue()
	lo, hi := 0.0, 1.0
	if 2*j+1 < len(fn.Decode) {
		lo, hi = fn.Decode[2*j], fn.Decode[2*j+1]
	}
	v := lo + raw/maxVal*(hi-lo)
	if 2*j+1 < len(fn.Range) {
		v = clip(v, fn.Range[2*j], fn.Range[2*j+1])
	}
	return v
}

// Apply reconstructs the function value at inputs by multilinear (or,
// when UseCubic and m==1, Catmull-Rom) interpolation between the
// surrounding grid samples.
func (fn *Type0) Apply(result []float64, inputs ...float64) {
	fn.repair()
	m := len(fn.Size)
	n := len(fn.Range) / 2

	if m == 0 {
		for j := 0; j < len(result) && j < n; j++ {
			result[j] = fn.decodeSample(fn.extractSampleAtIndex(j), j)
		}
		return
	}

	e := make([]float64, m)
	for i := 0; i < m; i++ {
		var x float64
		if i < len(inputs) {
			x = inputs[i]
		}
		if 2*i+1 < len(fn.Domain) {
			x = clip(x, fn.Domain[2*i], fn.Domain[2*i+1])
		}
		enc := x
		if 2*i+1 < len(fn.Encode) && 2*i+1 < len(fn.Domain) {
			enc = interpolate(x, fn.Domain[2*i], fn.Domain[2*i+1], fn.Encode[2*i], fn.Encode[2*i+1])
		}
		size := fn.Size[i]
		if size < 1 {
			size = 1
		}
		e[i] = clip(enc, 0, float64(size-1))
	}

	var samples []float64
	if fn.UseCubic && m == 1 {
		samples = fn.catmullRom1D(e[0], n)
	} else {
		samples = fn.multilinear(e, n)
	}

	for j := 0; j < len(result) && j < n; j++ {
		result[j] = fn.decodeSample(samples[j], j)
	}
}

// multilinear averages the 2^m grid corners surrounding e, weighted by
// distance, the general-dimension reconstruction PDF 7.10.2 specifies.
func (fn *Type0) multilinear(e []float64, n int) []float64 {
	m := len(e)
	lo := make([]int, m)
	frac := make([]float64, m)
	for i, v := range e {
		size := fn.Size[i]
		if size < 1 {
			size = 1
		}
		l := int(math.Floor(v))
		if l > size-2 {
			l = size - 2
		}
		if l < 0 {
			l = 0
		}
		lo[i] = l
		frac[i] = v - float64(l)
	}

	out := make([]float64, n)
	corners := 1 << uint(m)
	coord := make([]int, m)
	for c := 0; c < corners; c++ {
		weight := 1.0
		for i := 0; i < m; i++ {
			size := fn.Size[i]
			if size < 1 {
				size = 1
			}
			if (c>>uint(i))&1 == 1 {
				coord[i] = lo[i] + 1
				if coord[i] > size-1 {
					coord[i] = size - 1
				}
				weight *= frac[i]
			} else {
				coord[i] = lo[i]
				weight *= 1 - frac[i]
			}
		}
		if weight == 0 {
			continue
		}
		tuple := fn.sampleTupleAt(coord, n)
		for j := 0; j < n; j++ {
			out[j] += weight * tuple[j]
		}
	}
	return out
}

// catmullRom1D implements the single-input Catmull-Rom spline
// reconstruction Ghostscript uses for cubic Type 0 functions, clamping
// the two virtual control points beyond the grid edges to the nearest
// real sample.
func (fn *Type0) catmullRom1D(e float64, n int) []float64 {
	size := fn.Size[0]
	if size < 1 {
		size = 1
	}
	i1 := int(math.Floor(e))
	if i1 > size-1 {
		i1 = size - 1
	}
	if i1 < 0 {
		i1 = 0
	}
	t := e - float64(i1)

	clampIdx := func(k int) int {
		if k < 0 {
			return 0
		}
		if k > size-1 {
			return size - 1
		}
		return k
	}

	p0 := fn.sampleTupleAt([]int{clampIdx(i1 - 1)}, n)
	p1 := fn.sampleTupleAt([]int{clampIdx(i1)}, n)
	p2 := fn.sampleTupleAt([]int{clampIdx(i1 + 1)}, n)
	p3 := fn.sampleTupleAt([]int{clampIdx(i1 + 2)}, n)

	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = catmullRom(p0[j], p1[j], p2[j], p3[j], t)
	}
	return out
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

// validate reports whether fn is well-formed: a supported bit depth, a
// Domain matching the dimension count in Size, and non-degenerate grid
// sizes.
func (fn *Type0) validate() error {
	switch fn.BitsPerSample {
	case 1, 2, 4, 8, 12, 16, 24, 32:
	default:
		return fmt.Errorf("function: invalid BitsPerSample %d", fn.BitsPerSample)
	}
	m := len(fn.Size)
	if len(fn.Domain) != 2*m {
		return fmt.Errorf("function: Domain length %d does not match Size dimension count %d", len(fn.Domain), m)
	}
	for i := 0; i < m; i++ {
		if fn.Size[i] < 1 {
			return fmt.Errorf("function: Size[%d] must be >= 1", i)
		}
	}
	for i := 0; i+1 < len(fn.Domain); i += 2 {
		if !isRange(fn.Domain[i], fn.Domain[i+1]) {
			return fmt.Errorf("function: invalid domain pair at %d", i)
		}
	}
	return nil
}
