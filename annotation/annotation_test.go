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

package annotation

import (
	"testing"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdfdoc"
)

func TestEncodeRequiresRect(t *testing.T) {
	a := &Annotation{Action: pdf.Dict{"S": pdf.Name("URI")}}
	if _, err := a.Encode(); err == nil {
		t.Error("expected an error when Rect is unset")
	}
}

func TestEncodeRequiresExactlyOneTarget(t *testing.T) {
	rect := pdf.Rectangle{URx: 10, URy: 10}
	if _, err := (&Annotation{Rect: rect}).Encode(); err == nil {
		t.Error("expected an error when neither Dest nor Action is set")
	}
	if _, err := (&Annotation{Rect: rect, Dest: pdf.Integer(1), Action: pdf.Integer(2)}).Encode(); err == nil {
		t.Error("expected an error when both Dest and Action are set")
	}
}

func TestEncodeLinkWithQuadPoints(t *testing.T) {
	a := &Annotation{
		Rect:       pdf.Rectangle{URx: 100, URy: 20},
		Dest:       pdf.Integer(0),
		QuadPoints: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 20}, {X: 0, Y: 20}},
	}
	dict, err := a.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if dict["Subtype"] != pdf.Name("Link") {
		t.Errorf("Subtype = %v, want Link", dict["Subtype"])
	}
	quad, ok := dict["QuadPoints"].(pdf.Array)
	if !ok || len(quad) != 8 {
		t.Fatalf("QuadPoints = %v, want an 8-element array", dict["QuadPoints"])
	}
}

func TestEncodeRejectsMisshapenQuadPoints(t *testing.T) {
	a := &Annotation{
		Rect:       pdf.Rectangle{URx: 1, URy: 1},
		Dest:       pdf.Integer(0),
		QuadPoints: []vec.Vec2{{X: 0, Y: 0}},
	}
	if _, err := a.Encode(); err == nil {
		t.Error("expected an error for a QuadPoints length not a multiple of 4")
	}
}
