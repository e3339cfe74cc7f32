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

// Package outline writes a PDF document outline (bookmark) tree
// (ISO 32000-2 12.3.3).
package outline

import (
	"seehuhn.de/go/pdfdoc"
)

// Tree is one outline entry. A Tree with no Title is the invisible
// root of the whole outline and is never itself written as an entry.
type Tree struct {
	Title    string
	Action   pdf.Dict
	Open     bool
	Children []*Tree
}

// Write commits the tree (rooted at t, whose own Title is ignored) as a
// chain of sibling dictionaries with Parent/First/Last/Next/Prev/Count
// entries, and returns the root outline dictionary's reference, suitable
// for Document.SetOutline.
func (t *Tree) Write(w pdf.Putter) (pdf.Reference, error) {
	rootRef := w.Alloc()

	first, last, count, err := t.writeChildren(w, rootRef)
	if err != nil {
		return pdf.Reference{}, err
	}

	root := pdf.Dict{}
	if !first.IsZero() {
		root["First"] = first
		root["Last"] = last
		root["Count"] = pdf.Integer(count)
	}
	if err := w.Put(rootRef, root); err != nil {
		return pdf.Reference{}, err
	}
	return rootRef, nil
}

// writeChildren writes t.Children as a doubly linked sibling chain under
// parent, returning the first and last child references and the number
// of visible entries (ISO 32000-2 12.3.3's /Count): each child counts
// once, plus its own visible descendants when Open. A closed child's
// /Count is written negative and its descendants add nothing here.
func (t *Tree) writeChildren(w pdf.Putter, parent pdf.Reference) (first, last pdf.Reference, count int, err error) {
	if len(t.Children) == 0 {
		return pdf.Reference{}, pdf.Reference{}, 0, nil
	}

	refs := make([]pdf.Reference, len(t.Children))
	for i := range t.Children {
		refs[i] = w.Alloc()
	}

	for i, c := range t.Children {
		dict := pdf.Dict{
			"Parent": parent,
			"Title":  pdf.TextString(c.Title),
		}
		if i > 0 {
			dict["Prev"] = refs[i-1]
		}
		if i < len(refs)-1 {
			dict["Next"] = refs[i+1]
		}
		if c.Action != nil {
			dict["A"] = c.Action
		}

		childFirst, childLast, childCount, err := c.writeChildren(w, refs[i])
		if err != nil {
			return pdf.Reference{}, pdf.Reference{}, 0, err
		}
		if !childFirst.IsZero() {
			dict["First"] = childFirst
			dict["Last"] = childLast
			if c.Open {
				dict["Count"] = pdf.Integer(childCount)
			} else {
				dict["Count"] = pdf.Integer(-childCount)
			}
		}

		if err := w.Put(refs[i], dict); err != nil {
			return pdf.Reference{}, pdf.Reference{}, 0, err
		}

		count++
		if c.Open {
			count += childCount
		}
	}

	return refs[0], refs[len(refs)-1], count, nil
}
