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

package pdfwrite

import "seehuhn.de/go/pdfdoc"

// Limits tracks the document-wide extrema a conformance level places
// bounds on (§4.1's limit tracker): the longest string and name, the
// longest array, the dict with the most entries, the largest real number,
// and the number of objects stored so far.
type Limits struct {
	MaxStringLen   int
	MaxNameLen     int
	MaxArrayLen    int
	MaxDictEntries int
	MaxReal        float64
	IndirectCount  int
}

func (l *Limits) merge(other Limits) {
	if other.MaxStringLen > l.MaxStringLen {
		l.MaxStringLen = other.MaxStringLen
	}
	if other.MaxNameLen > l.MaxNameLen {
		l.MaxNameLen = other.MaxNameLen
	}
	if other.MaxArrayLen > l.MaxArrayLen {
		l.MaxArrayLen = other.MaxArrayLen
	}
	if other.MaxDictEntries > l.MaxDictEntries {
		l.MaxDictEntries = other.MaxDictEntries
	}
	if other.MaxReal > l.MaxReal {
		l.MaxReal = other.MaxReal
	}
	l.IndirectCount += other.IndirectCount
}

// observe walks obj recursively and folds its shape into l, counting obj
// as one stored object. Indirect references are not followed, so a
// deeply nested object graph costs this function O(size of obj),
// not O(size of document).
func (l *Limits) observe(obj pdf.Object) {
	l.IndirectCount++
	l.observeValue(obj, 0)
}

func (l *Limits) observeValue(obj pdf.Object, depth int) {
	switch v := obj.(type) {
	case pdf.Name:
		if n := len(string(v)); n > l.MaxNameLen {
			l.MaxNameLen = n
		}
	case pdf.String:
		if n := len(v); n > l.MaxStringLen {
			l.MaxStringLen = n
		}
	case pdf.Real:
		if f := float64(v); f > l.MaxReal {
			l.MaxReal = f
		}
	case pdf.Array:
		if n := len(v); n > l.MaxArrayLen {
			l.MaxArrayLen = n
		}
		for _, elem := range v {
			l.observeValue(elem, depth+1)
		}
	case pdf.Dict:
		if n := len(v); n > l.MaxDictEntries {
			l.MaxDictEntries = n
		}
		for _, elem := range v {
			l.observeValue(elem, depth+1)
		}
	}
}
