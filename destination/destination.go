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

// Package destination writes PDF explicit destinations. Only the XYZ
// form (page, top-left point, zoom) is produced: the Fit/FitH/FitV/
// FitR/FitB/FitBH/FitBV and named-destination forms a reading viewer
// exposes to its own interactive zoom/fit commands are out of scope,
// since this module never has to reproduce a viewer's own navigation
// UI, only a fixed camera position a generated link can point at.
package destination

import (
	"math"

	"seehuhn.de/go/pdfdoc"
)

// Unset marks a Zoom value of "leave the viewer's current zoom level
// unchanged", the PDF convention for a null entry in this position.
var Unset = math.NaN()

// XYZ is an explicit destination: jump to Page, positioning Left/Top
// at the top-left of the viewport, at the given Zoom factor (1 meaning
// 100%, Unset meaning "keep the current zoom").
type XYZ struct {
	Page pdf.Reference
	Left float64
	Top  float64
	Zoom float64
}

// Encode renders d as the five-element destination array ISO 32000-2
// 12.3.2.2 specifies for the XYZ form.
func (d XYZ) Encode() pdf.Array {
	return pdf.Array{
		d.Page,
		pdf.Name("XYZ"),
		numberOrNull(d.Left),
		numberOrNull(d.Top),
		numberOrNull(d.Zoom),
	}
}

func numberOrNull(x float64) pdf.Object {
	if math.IsNaN(x) {
		return nil
	}
	return pdf.Real(x)
}
