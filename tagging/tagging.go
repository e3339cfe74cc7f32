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

// Package tagging builds the PDF structure (tag) tree that PDF/UA and
// the "a" conformance levels require: a hierarchy of struct elements
// mirroring the document's logical reading order, a parent tree
// mapping each page's marked-content sequences back to their struct
// elements, an optional role map, and an ID tree giving selected
// elements a document-unique identifier (ISO 32000-2, 14.8).
package tagging

import (
	"sort"

	"github.com/xdg-go/stringprep"
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/nametree"
	"seehuhn.de/go/pdfdoc/numtree"
)

// Elem is one node of the struct tree: either a group node (Children
// non-empty, MC unset) or a leaf node referencing one marked-content
// sequence on a page (MC set).
type Elem struct {
	// Role is the structure type, either a standard PDF tag ("P",
	// "H1", "Figure", "Span", ...) or a custom name resolved through
	// the tree's RoleMap.
	Role pdf.Name

	// ID, when non-empty, is this element's document-unique
	// identifier. Validate normalizes ID with the SASLprep stringprep
	// profile before checking uniqueness, so that two visually identical
	// but differently composed Unicode strings collide rather than
	// silently aliasing.
	ID string

	// Lang is a BCP 47 language tag overriding the document language
	// for this element's subtree; empty means inherit.
	Lang string

	// ActualText, when non-empty, replaces the element's content for
	// accessibility purposes (e.g. a text description of a figure).
	ActualText string

	// AltText is the /Alt entry required on non-text annotations and
	// figures under a tagged conformance level.
	AltText string

	// Children holds this element's nested struct elements. A group
	// node has Children set and MC unset; a leaf node is the reverse.
	Children []*Elem

	// MC identifies the marked-content sequence this leaf covers, on
	// the page Page, within the StructParents slot ParentKey.
	MC        int
	HasMC     bool
	Page      pdf.Reference
	ParentKey int

	// ObjRef, when set instead of MC, makes this leaf an object
	// reference to a non-content-stream object carrying its own
	// StructParent(s) entry (an annotation, most commonly), per ISO
	// 32000-2 14.7.5.3. Page and ParentKey still locate its parent
	// tree slot.
	ObjRef    pdf.Reference
	HasObjRef bool
}

// Tree is a complete structure tree plus the two indexes (parent tree,
// ID tree) and role map the struct tree root carries.
type Tree struct {
	Root    *Elem
	RoleMap map[pdf.Name]pdf.Name
}

// normalizeID runs id through the SASLprep profile (NFKC normalization,
// no case folding), so that width and composition variants of "the same"
// identifier collide instead of coexisting; identifiers that differ only
// in case stay distinct.
func normalizeID(id string) (string, error) {
	return stringprep.SASLprep.Prepare(id)
}

// Validate walks the tree and confirms that every non-empty ID appears
// exactly once, per the invariant that identifiers are never aliased
// or silently dropped. A violation is reported as a *pdf.UserError,
// since it is a caller mistake caught before any bytes are written,
// not a conformance-level-dependent validation diagnostic.
func (t *Tree) Validate() error {
	seen := make(map[string]bool)
	var walk func(e *Elem) error
	walk = func(e *Elem) error {
		if e == nil {
			return nil
		}
		if e.ID != "" {
			norm, err := normalizeID(e.ID)
			if err != nil {
				return &pdf.UserError{Op: "tagging", Err: err}
			}
			if seen[norm] {
				return &pdf.UserError{Op: "tagging", Err: errDuplicateID(e.ID)}
			}
			seen[norm] = true
		}
		for _, c := range e.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(t.Root)
}

type errDuplicateID string

func (e errDuplicateID) Error() string { return "duplicate struct tree identifier: " + string(e) }

// parentSlot accumulates, for one page's StructParents index, the
// struct element reference covering each MCID on that page, in MCID
// order.
type parentSlot struct {
	byMC map[int]pdf.Reference
	max  int
}

// Write commits the tree as a sequence of indirect StructElem
// dictionaries plus a parent tree and (if any element has an ID) an ID
// tree, and returns the reference of the /StructTreeRoot dictionary
// (suitable for Catalog.StructTreeRoot) together with the dictionary
// itself. Write first calls Validate; a duplicate identifier aborts
// before anything is allocated.
func (t *Tree) Write(w pdf.Putter) (pdf.Reference, pdf.Dict, error) {
	if err := t.Validate(); err != nil {
		return pdf.Reference{}, nil, err
	}

	rootRef := w.Alloc()

	slots := make(map[int]*parentSlot)
	idEntries := make(map[pdf.Name]pdf.Object)

	var encode func(e *Elem, parent pdf.Reference) (pdf.Object, error)
	encode = func(e *Elem, parent pdf.Reference) (pdf.Object, error) {
		if e == nil {
			return nil, nil
		}
		ref := w.Alloc()

		dict := pdf.Dict{
			"Type": pdf.Name("StructElem"),
			"S":    e.Role,
			"P":    parent,
		}
		if !e.Page.IsZero() {
			dict["Pg"] = e.Page
		}
		if e.Lang != "" {
			dict["Lang"] = pdf.TextString(e.Lang)
		}
		if e.ActualText != "" {
			dict["ActualText"] = pdf.TextString(e.ActualText)
		}
		if e.AltText != "" {
			dict["Alt"] = pdf.TextString(e.AltText)
		}

		if e.HasMC {
			dict["K"] = pdf.Integer(e.MC)
			slot := slots[e.ParentKey]
			if slot == nil {
				slot = &parentSlot{byMC: make(map[int]pdf.Reference)}
				slots[e.ParentKey] = slot
			}
			slot.byMC[e.MC] = ref
			if e.MC+1 > slot.max {
				slot.max = e.MC + 1
			}
		} else if e.HasObjRef {
			dict["K"] = pdf.Dict{"Type": pdf.Name("OBJR"), "Obj": e.ObjRef}
			slot := slots[e.ParentKey]
			if slot == nil {
				slot = &parentSlot{byMC: make(map[int]pdf.Reference)}
				slots[e.ParentKey] = slot
			}
			slot.byMC[0] = ref
			if slot.max < 1 {
				slot.max = 1
			}
		} else if len(e.Children) > 0 {
			var kids pdf.Array
			for _, c := range e.Children {
				cref, err := encode(c, ref)
				if err != nil {
					return nil, err
				}
				kids = append(kids, cref)
			}
			dict["K"] = kids
		}

		if e.ID != "" {
			norm, _ := normalizeID(e.ID) // already validated above
			idEntries[pdf.Name(norm)] = ref
		}

		if err := w.Put(ref, dict); err != nil {
			return nil, err
		}
		return ref, nil
	}

	rootObj, err := encode(t.Root, rootRef)
	if err != nil {
		return pdf.Reference{}, nil, err
	}

	structRoot := pdf.Dict{
		"Type": pdf.Name("StructTreeRoot"),
		"K":    rootObj,
	}
	if len(t.RoleMap) > 0 {
		rm := pdf.Dict{}
		for k, v := range t.RoleMap {
			rm[k] = v
		}
		structRoot["RoleMap"] = rm
	}

	parentRef, nextKey, err := writeParentTree(w, slots)
	if err != nil {
		return pdf.Reference{}, nil, err
	}
	if !parentRef.IsZero() {
		structRoot["ParentTree"] = parentRef
		structRoot["ParentTreeNextKey"] = pdf.Integer(nextKey)
	}

	if len(idEntries) > 0 {
		tree := &nametree.InMemory{Data: idEntries}
		idRef, err := nametree.Write(w, tree.All())
		if err != nil {
			return pdf.Reference{}, nil, err
		}
		structRoot["IDTree"] = idRef
	}

	if err := w.Put(rootRef, structRoot); err != nil {
		return pdf.Reference{}, nil, err
	}
	return rootRef, structRoot, nil
}

// writeParentTree assembles the number tree mapping each page's
// StructParents index to the array of struct-element references
// covering its marked-content sequences, in MCID order.
func writeParentTree(w pdf.Putter, slots map[int]*parentSlot) (pdf.Reference, int, error) {
	if len(slots) == 0 {
		return pdf.Reference{}, 0, nil
	}

	keys := make([]int, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	data := make(map[pdf.Integer]pdf.Object, len(keys))
	nextKey := 0
	for _, k := range keys {
		slot := slots[k]
		arr := make(pdf.Array, slot.max)
		for mc, ref := range slot.byMC {
			arr[mc] = ref
		}
		data[pdf.Integer(k)] = arr
		if k+1 > nextKey {
			nextKey = k + 1
		}
	}

	tree := &numtree.InMemory{Data: data}
	ref, err := numtree.Write(w, tree.All())
	return ref, nextKey, err
}
