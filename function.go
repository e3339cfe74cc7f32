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

package pdf

// Function is implemented by the PDF function types (sampled, exponential,
// stitching, PostScript calculator) defined in the function subpackage.
// Shape reports the number of input and output values the function
// expects; Apply evaluates the function, clipping inputs to Domain and
// outputs to Range, writing up to Shape's output count into result.
type Function interface {
	Shape() (m, n int)
	Apply(result []float64, inputs ...float64)
}
