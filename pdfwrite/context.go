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

// Package pdfwrite is the serialization context: it caches objects by
// structural hash, allocates indirect references, tracks the limits and
// validation errors a [validate.Level] cares about, and runs the fixed
// finishing order that lets forward-referenced objects (pages,
// annotations, the struct tree, destinations) resolve correctly.
package pdfwrite

import (
	"bytes"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/validate"
)

// ChunkClass names one of the logical object classes a Cacheable reports
// through Chunk. Context does not group or order its output by class:
// objects are written in the order they are put.
type ChunkClass int

const (
	ClassOutputIntent ChunkClass = iota
	ClassPageLabelTree
	ClassOutline
	ClassFont
	ClassPage
	ClassPageTree
	ClassEmbeddedPDF
	ClassDestination
	ClassStructTree
	ClassICCProfile
	ClassMetadata
	ClassXObject
	ClassShading
	ClassPattern
	ClassExtGState
	ClassMisc
)

// Cacheable is implemented by any object the context deduplicates by
// structural hash (§4.1): registering two Cacheable values with equal
// CacheKey results in one allocated reference and one emitted chunk,
// which is what gives font containers and ExtGState dictionaries their
// idempotent-registration guarantee (§8, "font cache idempotence").
type Cacheable interface {
	CacheKey() [16]byte
	Chunk() ChunkClass
	Encode(ctx *Context) (pdf.Object, error)
}

// StreamCacheable is a Cacheable whose encoding is a stream body rather
// than a plain object; the context opens the stream itself once a
// reference is known.
type StreamCacheable interface {
	CacheKey() [16]byte
	Chunk() ChunkClass
	EncodeStream(ctx *Context) (dict pdf.Dict, data []byte, err error)
}

// Context is the serialization context. One Context is owned by exactly
// one Document; it is consumed by Finish.
type Context struct {
	Validator validate.Level
	Options   Options

	buf *bytes.Buffer
	out *pdf.Writer

	cache     map[[16]byte]pdf.Reference
	limits    Limits
	valErrors []*validate.Error
	valSeen   map[validate.ErrorKind]map[string]bool

	finishers [stageCount][]func(*Context) error

	pages []*pendingPage

	metadata     pdf.Object
	outline      pdf.Object
	tagTree      pdf.Object
	pageTreeRoot pdf.Reference

	consumed bool
}

// pendingPage is the minimal bookkeeping the context needs for a
// registered page: its allocated reference, so annotations and
// destinations elsewhere can refer to it before the page's own chunk is
// written in stage 5.
type pendingPage struct {
	ref   pdf.Reference
	build func(ctx *Context, ref pdf.Reference) (pdf.Dict, error)
}

// New creates a serialization context that accumulates its output in
// memory; bytes are only handed back by Finish, once every validation
// error has been filtered by the chosen level.
func New(opts Options) (*Context, error) {
	buf := &bytes.Buffer{}
	out, err := pdf.NewWriter(buf, &pdf.WriterOptions{
		Version:      opts.resolvedVersion(),
		BinaryHeader: opts.binaryHeader(),
	})
	if err != nil {
		return nil, err
	}
	ctx := &Context{
		Validator: opts.Validator,
		Options:   opts,
		buf:       buf,
		out:       out,
		cache:     make(map[[16]byte]pdf.Reference),
		valSeen:   make(map[validate.ErrorKind]map[string]bool),
	}
	return ctx, nil
}

// Alloc reserves a fresh indirect reference, monotonically, starting
// from 1 (per §5's "one monotonic counter").
func (ctx *Context) Alloc() pdf.Reference {
	return ctx.out.Alloc()
}

// Put stores obj under ref, updating the limits tracker from obj's
// shape.
func (ctx *Context) Put(ref pdf.Reference, obj pdf.Object) error {
	ctx.limits.observe(obj)
	return ctx.out.Put(ref, obj)
}

// PutStream opens, writes and closes a stream object under ref.
func (ctx *Context) PutStream(ref pdf.Reference, dict pdf.Dict, data []byte) error {
	ctx.limits.observe(dict)
	filters := ctx.streamFilters()
	s, err := ctx.out.OpenStream(ref, dict, filters...)
	if err != nil {
		return err
	}
	if _, err := s.Write(data); err != nil {
		return err
	}
	return s.Close()
}

// OpenStream opens an indirect stream object under ref, so that a
// Context satisfies pdf.Putter and can be handed directly to the
// pagetree, tagging, numtree and nametree writers.
func (ctx *Context) OpenStream(ref pdf.Reference, dict pdf.Dict, filters ...*pdf.FilterInfo) (*pdf.Stream, error) {
	ctx.limits.observe(dict)
	return ctx.out.OpenStream(ref, dict, filters...)
}

// GetMeta returns the underlying writer's version and catalog, completing
// the pdf.Putter interface.
func (ctx *Context) GetMeta() *pdf.MetaInfo { return ctx.out.GetMeta() }

// Version reports the PDF version this context targets.
func (ctx *Context) Version() pdf.Version { return ctx.out.GetMeta().Version }

func (ctx *Context) streamFilters() []*pdf.FilterInfo {
	if !ctx.Options.CompressContentStreams {
		return nil
	}
	return []*pdf.FilterInfo{{Name: pdf.Name("FlateDecode")}}
}

// RegisterCacheable returns obj's reference, allocating one and
// encoding and writing obj at once on first registration, or returning the
// existing reference (without re-encoding) on every subsequent call
// with an equal CacheKey.
func (ctx *Context) RegisterCacheable(obj Cacheable) (pdf.Reference, error) {
	key := obj.CacheKey()
	if ref, ok := ctx.cache[key]; ok {
		return ref, nil
	}
	ref := ctx.Alloc()
	ctx.cache[key] = ref

	encoded, err := obj.Encode(ctx)
	if err != nil {
		return pdf.Reference{}, err
	}
	if err := ctx.Put(ref, encoded); err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}

// RegisterStreamCacheable is RegisterCacheable for objects that encode
// to a stream rather than a plain dict/array.
func (ctx *Context) RegisterStreamCacheable(obj StreamCacheable) (pdf.Reference, error) {
	key := obj.CacheKey()
	if ref, ok := ctx.cache[key]; ok {
		return ref, nil
	}
	ref := ctx.Alloc()
	ctx.cache[key] = ref

	dict, data, err := obj.EncodeStream(ctx)
	if err != nil {
		return pdf.Reference{}, err
	}
	if err := ctx.PutStream(ref, dict, data); err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}

// RegisterPage allocates a page's reference up front (so annotations
// and destinations pointing at it resolve during earlier stages) and
// defers building its dictionary until stage 5, per the finish order.
func (ctx *Context) RegisterPage(build func(ctx *Context, ref pdf.Reference) (pdf.Dict, error)) pdf.Reference {
	ref := ctx.Alloc()
	ctx.pages = append(ctx.pages, &pendingPage{ref: ref, build: build})
	return ref
}

// RegisterValidationError queues err if the active validator prohibits
// its kind; duplicates (same kind and detail) are suppressed, so a
// violation repeated across many glyphs or pages is reported once. This
// implements §4.1's "validator's prohibits is consulted in
// register_validation_error".
func (ctx *Context) RegisterValidationError(kind validate.ErrorKind, detail string) {
	if !ctx.Validator.Prohibits(kind) {
		return
	}
	seen := ctx.valSeen[kind]
	if seen == nil {
		seen = make(map[string]bool)
		ctx.valSeen[kind] = seen
	}
	if seen[detail] {
		return
	}
	seen[detail] = true
	ctx.valErrors = append(ctx.valErrors, &validate.Error{Kind: kind, Detail: detail})
}

// SetMetadata, SetOutline and SetTagTree record the objects written by
// stages 3 and 9; a nil argument leaves the corresponding catalog entry
// unset.
func (ctx *Context) SetMetadata(obj pdf.Object) { ctx.metadata = obj }
func (ctx *Context) SetOutline(obj pdf.Object)  { ctx.outline = obj }
func (ctx *Context) SetTagTree(obj pdf.Object)  { ctx.tagTree = obj }

// SetPageTreeRoot records the page tree's root reference, written as the
// catalog's required /Pages entry once Finish succeeds.
func (ctx *Context) SetPageTreeRoot(ref pdf.Reference) { ctx.pageTreeRoot = ref }

// PageRefs returns the references allocated by every RegisterPage call so
// far, in registration order, for a page-tree finisher to collect into
// its /Kids array.
func (ctx *Context) PageRefs() []pdf.Reference {
	refs := make([]pdf.Reference, len(ctx.pages))
	for i, p := range ctx.pages {
		refs[i] = p.ref
	}
	return refs
}

// RegisterFinisher schedules fn to run during the named stage of
// Finish. Subsystems built on top of Context (document, tagging,
// font/container) call this instead of Context knowing about them
// directly.
func (ctx *Context) RegisterFinisher(stage Stage, fn func(ctx *Context) error) {
	ctx.finishers[stage] = append(ctx.finishers[stage], fn)
}

// Limits returns the limits accumulated so far (longest string/name,
// longest array, largest dict, largest real, stored object count).
func (ctx *Context) Limits() Limits { return ctx.limits }

// MergeLimits folds externally-tracked limits (for example those a
// PostScript function token stream accumulates) back into the
// context's own tracker, per §4.1's "merge in limits from external
// chunks".
func (ctx *Context) MergeLimits(other Limits) { ctx.limits.merge(other) }

// Finish runs the fixed ten-stage finishing order, then either returns
// the assembled PDF bytes or the queued validation errors. The context
// is consumed either way: calling Finish twice returns a UserError.
func (ctx *Context) Finish() ([]byte, validate.Errors, error) {
	if ctx.consumed {
		return nil, nil, &pdf.UserError{Op: "finish", Err: errDocumentFinished}
	}
	ctx.consumed = true

	order, err := stageOrder()
	if err != nil {
		return nil, nil, err
	}
	for _, stage := range order {
		if stage == stagePages {
			if err := ctx.finishPages(); err != nil {
				return nil, nil, err
			}
		}
		for _, fn := range ctx.finishers[stage] {
			if err := fn(ctx); err != nil {
				return nil, nil, err
			}
		}
	}

	ctx.runGlobalLimitChecks()

	if len(ctx.valErrors) > 0 {
		return nil, validate.Errors(ctx.valErrors), nil
	}

	ctx.out.Catalog.Pages = ctx.pageTreeRoot
	ctx.out.Catalog.Metadata, _ = ctx.metadata.(pdf.Reference)
	if ctx.outline != nil {
		if ref, ok := ctx.outline.(pdf.Reference); ok {
			ctx.out.Catalog.Outlines = ref
		}
	}
	if ctx.tagTree != nil {
		ctx.out.Catalog.StructTreeRoot = ctx.tagTree
	}
	if ctx.Validator != validate.None {
		ctx.out.Catalog.MarkInfo = pdf.Dict{"Marked": pdf.Boolean(true)}
	}

	if err := ctx.out.Close(); err != nil {
		return nil, nil, err
	}
	return ctx.buf.Bytes(), nil, nil
}

// finishPages writes every registered page's chunk (stage 5), which is
// when its annotation references become known to later stages (the
// page tree and the tag tree).
func (ctx *Context) finishPages() error {
	for _, p := range ctx.pages {
		dict, err := p.build(ctx, p.ref)
		if err != nil {
			return err
		}
		if err := ctx.Put(p.ref, dict); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *Context) runGlobalLimitChecks() {
	if ctx.limits.MaxStringLen > 65535 {
		ctx.RegisterValidationError(validate.StringTooLong, "")
	}
	if ctx.limits.MaxNameLen > 127 {
		ctx.RegisterValidationError(validate.NameTooLong, "")
	}
	if ctx.limits.MaxArrayLen > 8191 {
		ctx.RegisterValidationError(validate.ArrayTooLong, "")
	}
	if ctx.limits.MaxDictEntries > 4095 {
		ctx.RegisterValidationError(validate.DictTooLong, "")
	}
}

var errDocumentFinished = docFinishedError{}

type docFinishedError struct{}

func (docFinishedError) Error() string { return "document already finished" }
