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

// Package pagetree writes the page tree that collects a document's pages
// under a single /Pages root, carrying the attributes ISO 32000-2 7.7.3.4
// lets a page inherit from its parent instead of repeating on every page
// dictionary.
//
// A reading library balances this into a multi-level tree so that opening
// page N does not require scanning N-1 others first; a write-only module
// never performs that scan, so Writer accumulates a single flat /Kids
// array instead of replicating the balanced structure.
package pagetree

import "seehuhn.de/go/pdfdoc"

// InheritableAttributes holds the page attributes set on the tree root so
// that pages which don't override them inherit the root's value.
type InheritableAttributes struct {
	Resources pdf.Dict
	MediaBox  *pdf.Rectangle
	CropBox   *pdf.Rectangle
	Rotate    int
}

// Writer accumulates page references and produces the /Pages root
// dictionary on Close.
type Writer struct {
	w     pdf.Putter
	attrs *InheritableAttributes
	kids  pdf.Array
}

// NewWriter creates a page tree writer. attrs may be nil.
func NewWriter(w pdf.Putter, attrs *InheritableAttributes) *Writer {
	return &Writer{w: w, attrs: attrs}
}

// AppendPageRef records ref, already written by the caller as a complete
// Page dictionary, as the next kid of the tree.
func (t *Writer) AppendPageRef(ref pdf.Reference) {
	t.kids = append(t.kids, ref)
}

// Len reports how many pages have been appended so far.
func (t *Writer) Len() int {
	return len(t.kids)
}

// Close writes the /Pages root dictionary and returns its reference. It
// is an error to append further pages afterwards.
func (t *Writer) Close() (pdf.Reference, error) {
	dict := pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  t.kids,
		"Count": pdf.Integer(len(t.kids)),
	}
	if t.attrs != nil {
		if t.attrs.Resources != nil {
			dict["Resources"] = t.attrs.Resources
		}
		if t.attrs.MediaBox != nil {
			dict["MediaBox"] = t.attrs.MediaBox
		}
		if t.attrs.CropBox != nil {
			dict["CropBox"] = t.attrs.CropBox
		}
		if t.attrs.Rotate != 0 {
			dict["Rotate"] = pdf.Integer(t.attrs.Rotate)
		}
	}

	root := t.w.Alloc()
	if err := t.w.Put(root, dict); err != nil {
		return pdf.Reference{}, err
	}
	return root, nil
}
