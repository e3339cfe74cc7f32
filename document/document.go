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

// Package document is the public entry point for assembling a PDF: a
// Document owns the serialization context and the page tree under
// construction; each Page exposes a Surface to draw on and a place to
// attach link annotations; Finish runs exactly once and returns either
// the assembled bytes or the conformance errors that blocked them.
package document

import (
	"crypto/md5"
	"errors"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/annotation"
	"seehuhn.de/go/pdfdoc/graphics/content"
	"seehuhn.de/go/pdfdoc/pagetree"
	"seehuhn.de/go/pdfdoc/pdfwrite"
	"seehuhn.de/go/pdfdoc/tagging"
)

var errDocumentFinished = errors.New("document: already finished")

// Document is the top-level object a caller builds a PDF through. It has
// a single lifecycle: StartPage any number of times, draw on each page's
// Surface, then Finish exactly once.
type Document struct {
	ctx  *pdfwrite.Context
	tree *pagetree.Writer

	tagRoot  *tagging.Elem
	tagStack []*tagging.Elem

	nextStructParents int

	finished bool
}

// New opens a document that will be serialized according to opts.
func New(opts pdfwrite.Options) (*Document, error) {
	ctx, err := pdfwrite.New(opts)
	if err != nil {
		return nil, err
	}

	d := &Document{
		ctx:  ctx,
		tree: pagetree.NewWriter(ctx, nil),
	}

	ctx.RegisterFinisher(pdfwrite.StagePageTree, func(ctx *pdfwrite.Context) error {
		root, err := d.tree.Close()
		if err != nil {
			return err
		}
		ctx.SetPageTreeRoot(root)
		return nil
	})
	ctx.RegisterFinisher(pdfwrite.StageTagTree, func(ctx *pdfwrite.Context) error {
		if d.tagRoot == nil {
			return nil
		}
		ref, _, err := (&tagging.Tree{Root: d.tagRoot}).Write(ctx)
		if err != nil {
			return err
		}
		ctx.SetTagTree(ref)
		return nil
	})

	return d, nil
}

// taggingEnabled reports whether pages on this document should emit
// marked-content tags.
func (d *Document) taggingEnabled() bool {
	return d.ctx.Options.EnableTagging || d.ctx.Validator.Requirements().Tagging
}

// SetMetadata attaches an XMP metadata stream, written during assembly.
func (d *Document) SetMetadata(ref pdf.Reference) { d.ctx.SetMetadata(ref) }

// SetOutline attaches a document outline (bookmark tree) root.
func (d *Document) SetOutline(ref pdf.Reference) { d.ctx.SetOutline(ref) }

// PageOptions configures a single page. With a nil MediaBox the page
// dictionary has no /MediaBox entry; Document sets none on the page tree
// root either.
type PageOptions struct {
	MediaBox *pdf.Rectangle
}

// Page is one page under construction. Its Surface is valid until the
// Document is finished; its dictionary is only built and written during
// Finish's page stage, so annotations and destinations may still refer to
// Page.Ref() at any point before then.
type Page struct {
	doc      *Document
	ref      pdf.Reference
	mediaBox *pdf.Rectangle
	res      *content.Resources
	surface  *Surface

	annotations  []*annotation.Annotation
	annotTagElem map[*annotation.Annotation]*tagging.Elem

	structParentsIdx int
	hasStructParents bool
	nextMCID         int
}

// StartPage begins a new page and registers it with the document's page
// tree. The returned Page's dictionary is not written until Finish; its
// reference is already final and may be used as an annotation or
// destination target immediately.
func (d *Document) StartPage(opts *PageOptions) (*Page, error) {
	if d.finished {
		return nil, errDocumentFinished
	}
	if opts == nil {
		opts = &PageOptions{}
	}

	res := &content.Resources{}
	p := &Page{doc: d, mediaBox: opts.MediaBox, res: res}

	builder := content.NewBuilder(d.ctx.Version(), content.Page, res, content.Identity)
	builder.Alloc = func(dict pdf.Dict) pdf.Reference {
		ref, err := d.ctx.RegisterCacheable(extGStateCacheable{dict: dict})
		if err != nil {
			return pdf.Reference{}
		}
		return ref
	}
	p.surface = &Surface{Builder: builder, page: p}

	p.ref = d.ctx.RegisterPage(func(ctx *pdfwrite.Context, ref pdf.Reference) (pdf.Dict, error) {
		return p.build(ctx)
	})
	d.tree.AppendPageRef(p.ref)

	return p, nil
}

// Ref returns the page's final indirect reference.
func (p *Page) Ref() pdf.Reference { return p.ref }

// Surface returns the page's drawing surface.
func (p *Page) Surface() *Surface { return p.surface }

// AddAnnotation attaches a link annotation to the page. Its
// StructParent field is ignored and overwritten: when tagging is
// active, use AddTaggedAnnotation instead so the annotation gets a
// struct tree entry of its own.
func (p *Page) AddAnnotation(a *annotation.Annotation) {
	a.StructParent = -1
	p.annotations = append(p.annotations, a)
}

// AddTaggedAnnotation attaches a link annotation and a struct tree leaf
// for it (role "Link"), as PDF/UA-1 and the "a"-conformance levels
// require for every annotation in the tab order. The annotation's own
// reference is only known once Finish allocates it, so the struct tree
// leaf is registered through a deferred object reference rather than
// immediately.
func (p *Page) AddTaggedAnnotation(a *annotation.Annotation) {
	idx := p.structParentsIndex()
	a.StructParent = idx
	p.annotations = append(p.annotations, a)

	elem := &tagging.Elem{Role: "Link", Page: p.ref, ParentKey: idx, HasObjRef: true}
	p.doc.appendTagChild(elem)
	if p.annotTagElem == nil {
		p.annotTagElem = make(map[*annotation.Annotation]*tagging.Elem)
	}
	p.annotTagElem[a] = elem
}

// structParentsIndex lazily assigns this page its own StructParents slot
// in the parent tree, shared by every marked-content tag and annotation
// on the page.
func (p *Page) structParentsIndex() int {
	if !p.hasStructParents {
		p.structParentsIdx = p.doc.nextStructParents
		p.doc.nextStructParents++
		p.hasStructParents = true
	}
	return p.structParentsIdx
}

// build renders the page dictionary: content stream, resources, media
// box (only when the page has one) and accumulated annotations. It runs once, during Finish's page stage.
func (p *Page) build(ctx *pdfwrite.Context) (pdf.Dict, error) {
	data, err := p.surface.Bytes()
	if err != nil {
		return nil, err
	}
	contentRef := ctx.Alloc()
	if err := ctx.PutStream(contentRef, pdf.Dict{}, data); err != nil {
		return nil, err
	}

	dict := pdf.Dict{
		"Contents":  contentRef,
		"Resources": p.res.AsDict(),
	}
	if p.mediaBox != nil {
		dict["MediaBox"] = p.mediaBox
	}
	if p.hasStructParents {
		dict["StructParents"] = pdf.Integer(p.structParentsIdx)
	}

	if len(p.annotations) > 0 {
		annots := make(pdf.Array, 0, len(p.annotations))
		for _, a := range p.annotations {
			adict, err := a.Encode()
			if err != nil {
				return nil, err
			}
			aref := ctx.Alloc()
			if err := ctx.Put(aref, adict); err != nil {
				return nil, err
			}
			if elem, ok := p.annotTagElem[a]; ok {
				elem.ObjRef = aref
			}
			annots = append(annots, aref)
		}
		dict["Annots"] = annots
	}

	return dict, nil
}

// appendTagChild adds e as a child of the currently open struct tree
// group (the document root, if no group is open), creating the root on
// first use.
func (d *Document) appendTagChild(e *tagging.Elem) {
	parent := d.currentTagParent()
	parent.Children = append(parent.Children, e)
}

func (d *Document) currentTagParent() *tagging.Elem {
	if d.tagRoot == nil {
		d.tagRoot = &tagging.Elem{Role: "Document"}
	}
	if len(d.tagStack) == 0 {
		return d.tagRoot
	}
	return d.tagStack[len(d.tagStack)-1]
}

// Finish runs the fixed finishing order and returns either the assembled
// PDF bytes or the queued validation errors. The Document is consumed
// either way.
func (d *Document) Finish() ([]byte, error) {
	if d.finished {
		return nil, errDocumentFinished
	}
	d.finished = true

	data, valErrors, err := d.ctx.Finish()
	if err != nil {
		return nil, err
	}
	if len(valErrors) > 0 {
		return nil, valErrors
	}
	return data, nil
}

// extGStateCacheable adapts a pre-built ExtGState dictionary to
// pdfwrite.Cacheable, so that content.Builder.Alloc can register it
// through the same structural-hash cache every other chunk uses.
type extGStateCacheable struct {
	dict pdf.Dict
}

func (e extGStateCacheable) CacheKey() [16]byte {
	return md5.Sum([]byte(e.dict.PDF()))
}

func (e extGStateCacheable) Chunk() pdfwrite.ChunkClass { return pdfwrite.ClassExtGState }

func (e extGStateCacheable) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	return e.dict, nil
}
