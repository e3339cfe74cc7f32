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

package document

import (
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/graphics/content"
	"seehuhn.de/go/pdfdoc/tagging"
)

// Surface is a page's drawing surface: every [content.Builder] operation
// is available directly, plus the Tag/BeginGroup/EndGroup calls that
// grow the document's struct tree alongside the marked content they
// describe.
type Surface struct {
	*content.Builder
	page *Page
}

// BeginGroup opens a struct tree group node with the given role as a
// child of the current open group (or the document root), and makes it
// the current group until EndGroup. It returns the element so the
// caller can set Lang, ActualText, AltText or ID before closing it; a
// disabled tagging configuration still returns a usable (but discarded)
// element so callers don't need to branch.
func (s *Surface) BeginGroup(role pdf.Name) *tagging.Elem {
	e := &tagging.Elem{Role: role}
	if s.page.doc.taggingEnabled() {
		s.page.doc.appendTagChild(e)
		s.page.doc.tagStack = append(s.page.doc.tagStack, e)
	}
	return e
}

// EndGroup closes the group opened by the matching BeginGroup.
func (s *Surface) EndGroup() {
	if !s.page.doc.taggingEnabled() {
		return
	}
	stack := s.page.doc.tagStack
	if len(stack) == 0 {
		return
	}
	s.page.doc.tagStack = stack[:len(stack)-1]
}

// Tag runs fn with a marked-content sequence open around it, tagged with
// role, and records a matching struct tree leaf as a child of the
// current group. When tagging is disabled, fn runs with no marked
// content and no struct tree entry is recorded.
func (s *Surface) Tag(role pdf.Name, fn func() error) error {
	if !s.page.doc.taggingEnabled() {
		return fn()
	}

	mcid := s.page.nextMCID
	s.page.nextMCID++
	parentKey := s.page.structParentsIndex()

	s.BeginTag(role, mcid)
	err := fn()
	s.EndTag()
	if err != nil {
		return err
	}

	s.page.doc.appendTagChild(&tagging.Elem{
		Role:      role,
		Page:      s.page.ref,
		HasMC:     true,
		MC:        mcid,
		ParentKey: parentKey,
	})
	return nil
}
