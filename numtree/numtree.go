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

// Package numtree writes PDF number trees: the /Nums-keyed structure
// used for a page-label range map and for a struct tree's parent tree
// (ISO 32000-2, 7.9.7). Only the write side is implemented; this
// module never reads an existing PDF file.
package numtree

import (
	"errors"
	"iter"
	"sort"

	"seehuhn.de/go/pdfdoc"
)

// ErrKeyNotFound is returned by InMemory.Lookup for a key absent from
// the tree.
var ErrKeyNotFound = errors.New("number tree: key not found")

// InMemory is an in-construction number tree, keyed by an ascending
// pdf.Integer. It is the builder used before Write commits the tree as
// an indirect PDF object.
type InMemory struct {
	Data map[pdf.Integer]pdf.Object
}

// Lookup returns the value stored under key, or ErrKeyNotFound.
func (t *InMemory) Lookup(key pdf.Integer) (pdf.Object, error) {
	if t == nil {
		return nil, ErrKeyNotFound
	}
	v, ok := t.Data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// All iterates the tree's entries in ascending key order.
func (t *InMemory) All() iter.Seq2[pdf.Integer, pdf.Object] {
	return func(yield func(pdf.Integer, pdf.Object) bool) {
		if t == nil {
			return
		}
		keys := make([]pdf.Integer, 0, len(t.Data))
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

// errUnsorted is returned by Write when data does not yield keys in
// strictly ascending order.
var errUnsorted = errors.New("keys must be in sorted order")

// Write commits data (which must yield strictly ascending keys) as a
// single flat number-tree node and returns its reference. An empty
// tree is written as no object at all: Write returns the zero
// Reference, and callers must omit the corresponding dict entry
// entirely rather than point it at a reference.
func Write(w pdf.Putter, data iter.Seq2[pdf.Integer, pdf.Object]) (pdf.Reference, error) {
	var nums pdf.Array
	havePrev := false
	var prev pdf.Integer
	for k, v := range data {
		if havePrev && k <= prev {
			return pdf.Reference{}, errUnsorted
		}
		nums = append(nums, pdf.Integer(k), v)
		prev = k
		havePrev = true
	}
	if len(nums) == 0 {
		return pdf.Reference{}, nil
	}

	ref := w.Alloc()
	dict := pdf.Dict{"Nums": nums}
	if err := w.Put(ref, dict); err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}
