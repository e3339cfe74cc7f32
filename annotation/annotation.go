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

// Package annotation writes link annotations: a clickable region of a
// page that jumps to a destination or runs an action. This module only
// ever produces the one annotation type a generated document needs;
// the other 27 PDF annotation subtypes (markup, widget, popup, ...)
// belong to an interactive-editing surface, which is out of scope.
package annotation

import (
	"errors"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdfdoc"
)

// Annotation is a link region on a page: a bounding rectangle, an
// optional finer-grained quadrilateral region (for text-flow-shaped
// links), and a target that is either a destination within the
// document or an arbitrary action dictionary the caller already
// encoded.
type Annotation struct {
	// Rect is the annotation's bounding rectangle in default page
	// user space; required.
	Rect pdf.Rectangle

	// QuadPoints, when non-empty, refines Rect to one or more
	// quadrilaterals (4 points each, matching the corner order ISO
	// 32000-2 8.4.6 specifies for markup-style quad regions). An empty
	// slice means the whole Rect is the clickable region.
	QuadPoints []vec.Vec2

	// Dest is this link's target, written as the annotation's /Dest
	// entry. Exactly one of Dest or Action must be set.
	Dest pdf.Object

	// Action, when set instead of Dest, is a pre-encoded action
	// dictionary or reference (e.g. a URI action) written as /A.
	Action pdf.Object

	// AltText is the alternate description required on a link
	// annotation under a tagged conformance level; empty omits /Contents.
	AltText string

	// StructParent, when non-negative, is the index into the
	// document's struct-tree parent tree this annotation corresponds
	// to (written as /StructParent). A negative value omits the entry,
	// which is only valid when tagging is disabled.
	StructParent int
}

var (
	errNoRect        = errors.New("annotation: Rect is required")
	errNoTarget      = errors.New("annotation: exactly one of Dest or Action must be set")
	errBothTargets   = errors.New("annotation: exactly one of Dest or Action must be set")
	errQuadNotMultOf = errors.New("annotation: QuadPoints length must be a multiple of 4")
)

// Encode renders a as a PDF annotation dictionary.
func (a *Annotation) Encode() (pdf.Dict, error) {
	if a.Rect.IsZero() {
		return nil, errNoRect
	}
	if a.Dest == nil && a.Action == nil {
		return nil, errNoTarget
	}
	if a.Dest != nil && a.Action != nil {
		return nil, errBothTargets
	}
	if len(a.QuadPoints)%4 != 0 {
		return nil, errQuadNotMultOf
	}

	dict := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Link"),
		"Rect":    a.Rect,
	}
	if a.Dest != nil {
		dict["Dest"] = a.Dest
	}
	if a.Action != nil {
		dict["A"] = a.Action
	}
	if len(a.QuadPoints) > 0 {
		quad := make(pdf.Array, 0, len(a.QuadPoints)*2)
		for _, p := range a.QuadPoints {
			quad = append(quad, pdf.Real(p.X), pdf.Real(p.Y))
		}
		dict["QuadPoints"] = quad
	}
	if a.AltText != "" {
		dict["Contents"] = pdf.TextString(a.AltText)
	}
	if a.StructParent >= 0 {
		dict["StructParent"] = pdf.Integer(a.StructParent)
	}
	return dict, nil
}
