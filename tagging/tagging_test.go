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

package tagging

import (
	"bytes"
	"testing"

	"seehuhn.de/go/pdfdoc"
)

func newWriter(t *testing.T) *pdf.Writer {
	t.Helper()
	w, err := pdf.NewWriter(&bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestWriteSimpleTree(t *testing.T) {
	w := newWriter(t)
	page := w.Alloc()

	tree := &Tree{
		Root: &Elem{
			Role: "Document",
			Children: []*Elem{
				{Role: "P", Page: page, HasMC: true, MC: 0, ParentKey: 0},
				{Role: "P", Page: page, HasMC: true, MC: 1, ParentKey: 0},
			},
		},
	}

	ref, root, err := tree.Write(w)
	if err != nil {
		t.Fatal(err)
	}
	if ref.IsZero() {
		t.Error("Write() returned a zero reference")
	}
	if root["Type"] != pdf.Name("StructTreeRoot") {
		t.Errorf("Type = %v, want StructTreeRoot", root["Type"])
	}
	if _, ok := root["ParentTree"]; !ok {
		t.Error("expected a ParentTree entry for a tree with marked-content leaves")
	}
}

func TestDuplicateIdentifierRejected(t *testing.T) {
	w := newWriter(t)
	tree := &Tree{
		Root: &Elem{
			Role: "Document",
			Children: []*Elem{
				{Role: "P", ID: "intro"},
				{Role: "P", ID: "intro"},
			},
		},
	}
	if _, _, err := tree.Write(w); err == nil {
		t.Error("expected an error for a duplicate identifier")
	}
}

func TestUniqueIdentifiersProduceIDTree(t *testing.T) {
	w := newWriter(t)
	tree := &Tree{
		Root: &Elem{
			Role: "Document",
			Children: []*Elem{
				{Role: "P", ID: "intro"},
				{Role: "P", ID: "body"},
			},
		},
	}
	_, root, err := tree.Write(w)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := root["IDTree"]; !ok {
		t.Error("expected an IDTree entry when elements carry identifiers")
	}
}

func TestRoleMapIsCarried(t *testing.T) {
	w := newWriter(t)
	tree := &Tree{
		Root:    &Elem{Role: "CustomHeading"},
		RoleMap: map[pdf.Name]pdf.Name{"CustomHeading": "H1"},
	}
	_, root, err := tree.Write(w)
	if err != nil {
		t.Fatal(err)
	}
	rm, ok := root["RoleMap"].(pdf.Dict)
	if !ok {
		t.Fatal("expected a RoleMap dict")
	}
	if rm["CustomHeading"] != pdf.Name("H1") {
		t.Errorf("RoleMap[CustomHeading] = %v, want H1", rm["CustomHeading"])
	}
}
