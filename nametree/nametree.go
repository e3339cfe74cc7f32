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

// Package nametree writes PDF name trees: the /Names-keyed structure
// used for the struct tree's ID tree and the document Names dictionary
// (ISO 32000-2, 7.9.6). Only the write side is implemented.
package nametree

import (
	"errors"
	"iter"
	"sort"

	"seehuhn.de/go/pdfdoc"
)

// ErrKeyNotFound is returned by InMemory.Lookup for a key absent from
// the tree.
var ErrKeyNotFound = errors.New("name tree: key not found")

// InMemory is an in-construction name tree, keyed by pdf.Name sorted
// byte-wise (the order PDF name trees require).
type InMemory struct {
	Data map[pdf.Name]pdf.Object
}

// Lookup returns the value stored under key, or ErrKeyNotFound.
func (t *InMemory) Lookup(key pdf.Name) (pdf.Object, error) {
	if t == nil {
		return nil, ErrKeyNotFound
	}
	v, ok := t.Data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// All iterates the tree's entries in ascending byte order.
func (t *InMemory) All() iter.Seq2[pdf.Name, pdf.Object] {
	return func(yield func(pdf.Name, pdf.Object) bool) {
		if t == nil {
			return
		}
		keys := make([]pdf.Name, 0, len(t.Data))
		for k := range t.Data {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			if !yield(k, t.Data[k]) {
				return
			}
		}
	}
}

var errUnsorted = errors.New("keys must be in sorted order")

// Write commits data (which must yield strictly ascending keys) as a
// single flat name-tree node and returns its reference. An empty tree
// writes no object: Write returns the zero Reference.
func Write(w pdf.Putter, data iter.Seq2[pdf.Name, pdf.Object]) (pdf.Reference, error) {
	var names pdf.Array
	havePrev := false
	var prev pdf.Name
	for k, v := range data {
		if havePrev && k <= prev {
			return pdf.Reference{}, errUnsorted
		}
		names = append(names, pdf.TextString(string(k)), v)
		prev = k
		havePrev = true
	}
	if len(names) == 0 {
		return pdf.Reference{}, nil
	}

	ref := w.Alloc()
	dict := pdf.Dict{"Names": names}
	if err := w.Put(ref, dict); err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}
