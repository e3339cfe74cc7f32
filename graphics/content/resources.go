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

package content

import (
	"strconv"

	"seehuhn.de/go/pdfdoc"
)

// Resources accumulates the resource dictionary entries a content stream
// refers to by name. Each map except Properties is allocated lazily by its
// Register* method so an empty Resources serializes to an empty
// dictionary; Properties has no Register* method.
type Resources struct {
	Font       map[pdf.Name]pdf.Reference
	XObject    map[pdf.Name]pdf.Reference
	ExtGState  map[pdf.Name]pdf.Reference
	Shading    map[pdf.Name]pdf.Reference
	Pattern    map[pdf.Name]pdf.Reference
	ColorSpace map[pdf.Name]pdf.Reference
	Properties map[pdf.Name]pdf.Reference
}

func nextName(existing map[pdf.Name]pdf.Reference, prefix string) pdf.Name {
	for i := 1; ; i++ {
		name := pdf.Name(prefix + strconv.Itoa(i))
		if _, used := existing[name]; !used {
			return name
		}
	}
}

// RegisterFont assigns a resource name to ref in the Font subdictionary,
// reusing the name already assigned to this reference if there is one.
func (r *Resources) RegisterFont(ref pdf.Reference) pdf.Name {
	if r.Font == nil {
		r.Font = make(map[pdf.Name]pdf.Reference)
	}
	return registerRef(r.Font, ref, "F")
}

// RegisterXObject assigns a resource name to ref in the XObject
// subdictionary.
func (r *Resources) RegisterXObject(ref pdf.Reference) pdf.Name {
	if r.XObject == nil {
		r.XObject = make(map[pdf.Name]pdf.Reference)
	}
	return registerRef(r.XObject, ref, "X")
}

// RegisterExtGState assigns a resource name to ref in the ExtGState
// subdictionary.
func (r *Resources) RegisterExtGState(ref pdf.Reference) pdf.Name {
	if r.ExtGState == nil {
		r.ExtGState = make(map[pdf.Name]pdf.Reference)
	}
	return registerRef(r.ExtGState, ref, "G")
}

// RegisterShading assigns a resource name to ref in the Shading
// subdictionary.
func (r *Resources) RegisterShading(ref pdf.Reference) pdf.Name {
	if r.Shading == nil {
		r.Shading = make(map[pdf.Name]pdf.Reference)
	}
	return registerRef(r.Shading, ref, "Sh")
}

// RegisterPattern assigns a resource name to ref in the Pattern
// subdictionary.
func (r *Resources) RegisterPattern(ref pdf.Reference) pdf.Name {
	if r.Pattern == nil {
		r.Pattern = make(map[pdf.Name]pdf.Reference)
	}
	return registerRef(r.Pattern, ref, "P")
}

// RegisterColorSpace assigns a resource name to ref in the ColorSpace
// subdictionary.
func (r *Resources) RegisterColorSpace(ref pdf.Reference) pdf.Name {
	if r.ColorSpace == nil {
		r.ColorSpace = make(map[pdf.Name]pdf.Reference)
	}
	return registerRef(r.ColorSpace, ref, "CS")
}

func registerRef(m map[pdf.Name]pdf.Reference, ref pdf.Reference, prefix string) pdf.Name {
	for name, have := range m {
		if have == ref {
			return name
		}
	}
	name := nextName(m, prefix)
	m[name] = ref
	return name
}

// AsDict renders the accumulated resources as a PDF Resources dictionary.
func (r *Resources) AsDict() pdf.Dict {
	dict := pdf.Dict{}
	addSub(dict, "Font", r.Font)
	addSub(dict, "XObject", r.XObject)
	addSub(dict, "ExtGState", r.ExtGState)
	addSub(dict, "Shading", r.Shading)
	addSub(dict, "Pattern", r.Pattern)
	addSub(dict, "ColorSpace", r.ColorSpace)
	addSub(dict, "Properties", r.Properties)
	return dict
}

func addSub(dict pdf.Dict, key pdf.Name, m map[pdf.Name]pdf.Reference) {
	if len(m) == 0 {
		return
	}
	sub := pdf.Dict{}
	for name, ref := range m {
		sub[name] = ref
	}
	dict[key] = sub
}
