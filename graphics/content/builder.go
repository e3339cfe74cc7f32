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
	"bytes"
	"fmt"

	"seehuhn.de/go/pdfdoc"
)

// MaxQNesting is the deepest simulated q nesting the builder tolerates
// before recording a validation error; PDF viewers are only required to
// support 28 levels of graphics state save.
const MaxQNesting = 28

// ExtGStateDelta is the subset of an ExtGState dictionary an isolated
// operation may need: non-stroking/stroking alpha, blend mode, and soft
// mask. A zero value means "no external graphics state needed" and is
// never registered as a resource.
type ExtGStateDelta struct {
	FillAlpha   *float64
	StrokeAlpha *float64
	BlendMode   pdf.Name
	SoftMask    pdf.Object // a soft mask dictionary reference, or nil/None
}

// IsZero reports whether d has no entries and so does not need a gs
// operator.
func (d ExtGStateDelta) IsZero() bool {
	return d.FillAlpha == nil && d.StrokeAlpha == nil && d.BlendMode == "" && d.SoftMask == nil
}

func (d ExtGStateDelta) dict() pdf.Dict {
	dict := pdf.Dict{}
	if d.FillAlpha != nil {
		dict["ca"] = pdf.Real(*d.FillAlpha)
	}
	if d.StrokeAlpha != nil {
		dict["CA"] = pdf.Real(*d.StrokeAlpha)
	}
	if d.BlendMode != "" {
		dict["BM"] = d.BlendMode
	}
	if d.SoftMask != nil {
		dict["SMask"] = d.SoftMask
	}
	return dict
}

// pushKind distinguishes the simulated stack entries pushed by the
// push_* family of operations, so Pop knows whether it also has to emit
// a content-stream Q.
type pushKind int

const (
	pushTransform pushKind = iota
	pushBlendMode
	pushOpacity
	pushMask
	pushClip
	pushIsolated
)

type pushEntry struct {
	kind pushKind
}

// Builder assembles a content stream for one scope (page, form xobject,
// tiling pattern, or Type 3 glyph procedure), tracking the simulated
// graphics-state stack described in §4.2: every content_save_state bumps
// a counter that is checked against [MaxQNesting], and every primitive
// that draws something runs inside an isolated save/prep/run/restore
// operation so that state changes made to set up one primitive never
// leak into the next.
type Builder struct {
	buf       bytes.Buffer
	writer    *Writer
	state     *State
	resources *Resources

	// RootTransform is applied once as the outermost CTM of every
	// isolated operation; further pushed transforms compose on top of
	// it, not in place of it.
	RootTransform Matrix

	BBox Rect

	pushStack []pushEntry
	qDepth    int

	Errors []string

	// Alloc allocates (or reuses, by structural hash) a reference for an
	// ExtGState dictionary built from an [ExtGStateDelta]. The
	// serialization context installs this; until it does, isolated
	// operations that need an ExtGState silently skip the gs operator.
	Alloc ExtGStateAllocator
}

// NewBuilder creates a content builder for one scope.
func NewBuilder(version pdf.Version, kind ScopeKind, res *Resources, root Matrix) *Builder {
	if res == nil {
		res = &Resources{}
	}
	b := &Builder{
		writer:        NewWriter(version, kind, res),
		resources:     res,
		RootTransform: root,
		BBox:          NewEmptyRect(),
	}
	b.state = &b.writer.v.state
	return b
}

func (b *Builder) emit(ops ...Operator) {
	if b.writer.Err != nil {
		return
	}
	b.writer.Write(&b.buf, Operators(ops))
}

// saveState emits q and bumps the simulated nesting counter, recording a
// validation error if the nesting cap is exceeded.
func (b *Builder) saveState() {
	b.qDepth++
	if b.qDepth > MaxQNesting {
		b.Errors = append(b.Errors, "too-high q nesting")
	}
	b.emit(Operator{Name: OpPushGraphicsState})
}

// restoreState emits Q and decrements the simulated nesting counter.
func (b *Builder) restoreState() {
	b.qDepth--
	b.emit(Operator{Name: OpPopGraphicsState})
}

// isolated runs fn inside the save/prep/run/restore pattern of §4.2: the
// graphics state is saved, ctm (if not the identity) is concatenated,
// ext (if non-zero) is registered as a resource and set with gs, fn runs
// and is expected to emit the primitive's own operators, and finally the
// state is restored. The combined transform (root then ctm) is returned
// so callers can map their own geometry into device space for bbox
// tracking.
func (b *Builder) isolated(ctm Matrix, ext ExtGStateDelta, fn func(combined Matrix) error) error {
	b.saveState()
	defer b.restoreState()

	combined := b.RootTransform.Mul(ctm)
	if !ctm.IsIdentity() {
		b.emit(Operator{Name: OpConcat, Args: ctm.AsOperands()})
	}
	if !ext.IsZero() && b.Alloc != nil {
		ref := b.registerExtGState(ext)
		name := b.resources.RegisterExtGState(ref)
		b.emit(Operator{Name: OpSetExtGState, Args: []pdf.Object{name}})
	}
	return fn(combined)
}

// ExtGStateAllocator allocates (or reuses, by structural hash) a
// reference for an ExtGState dictionary. The serialization context
// installs this on a [Builder] via its Alloc field.
type ExtGStateAllocator func(dict pdf.Dict) pdf.Reference

func (b *Builder) registerExtGState(ext ExtGStateDelta) pdf.Reference {
	if b.Alloc == nil {
		return pdf.Reference{}
	}
	return b.Alloc(ext.dict())
}

// FillPath fills path (already in the builder's user space, i.e. before
// RootTransform) using rule, after transforming it by ctm. Zero-area
// paths (bounding box with zero width or zero height) are skipped.
func (b *Builder) FillPath(path Path, ctm Matrix, rule FillRule, alpha float64, colorOps Operators) error {
	bounds := path.Bounds()
	if bounds.IsEmpty() || bounds.LLx == bounds.URx || bounds.LLy == bounds.URy {
		return nil
	}
	var ext ExtGStateDelta
	if alpha != 1 {
		a := alpha
		ext.FillAlpha = &a
	}
	return b.isolated(ctm, ext, func(combined Matrix) error {
		b.emit(colorOps...)
		b.emitPath(path)
		op := OpFill
		if rule == FillEvenOdd {
			op = OpFillEvenOdd
		}
		b.emit(Operator{Name: op})
		deviceBounds := bounds.Transform(combined)
		b.BBox.Extend(deviceBounds.LLx, deviceBounds.LLy)
		b.BBox.Extend(deviceBounds.URx, deviceBounds.URy)
		return nil
	})
}

// FillRule selects the path-filling rule used by Fill/Clip operators.
type FillRule int

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// StrokeParams holds the subset of the line-style parameters that are
// emitted only when they differ from the PDF defaults (width 1.0, miter
// limit 10.0, butt caps, miter joins, no dash).
type StrokeParams struct {
	Width      float64
	Cap        int
	Join       int
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

var defaultStroke = StrokeParams{Width: 1, MiterLimit: 10}

// StrokePath strokes path after transforming it by ctm, emitting only
// the style operators whose value differs from the PDF default; values
// set earlier in the stream are not consulted.
func (b *Builder) StrokePath(path Path, ctm Matrix, style StrokeParams, alpha float64, colorOps Operators) error {
	var ext ExtGStateDelta
	if alpha != 1 {
		a := alpha
		ext.StrokeAlpha = &a
	}
	return b.isolated(ctm, ext, func(combined Matrix) error {
		b.emit(colorOps...)
		if style.Width != defaultStroke.Width {
			b.emit(Operator{Name: OpSetLineWidth, Args: []pdf.Object{pdf.Real(style.Width)}})
		}
		if style.Cap != 0 {
			b.emit(Operator{Name: OpSetLineCap, Args: []pdf.Object{pdf.Integer(style.Cap)}})
		}
		if style.Join != 0 {
			b.emit(Operator{Name: OpSetLineJoin, Args: []pdf.Object{pdf.Integer(style.Join)}})
		}
		if style.MiterLimit != 0 && style.MiterLimit != defaultStroke.MiterLimit {
			b.emit(Operator{Name: OpSetMiterLimit, Args: []pdf.Object{pdf.Real(style.MiterLimit)}})
		}
		if len(style.Dash) > 0 {
			arr := make(pdf.Array, len(style.Dash))
			for i, d := range style.Dash {
				arr[i] = pdf.Real(d)
			}
			b.emit(Operator{Name: OpSetDash, Args: []pdf.Object{arr, pdf.Real(style.DashPhase)}})
		}
		b.emitPath(path)
		b.emit(Operator{Name: OpStroke})
		return nil
	})
}

func (b *Builder) emitPath(path Path) {
	for _, seg := range path {
		args := make([]pdf.Object, len(seg.Args))
		for i, v := range seg.Args {
			args[i] = pdf.Real(v)
		}
		b.emit(Operator{Name: seg.Op, Args: args})
	}
}

// PushClipPath transforms path by ctm, emits it followed by the clip
// operator and the path-painting no-op n, and pushes a stack entry so
// PopClip knows to emit Q. Unlike the other push_* operations, the clip
// itself needs no matching save on push: it becomes part of the current
// (already-saved-by-the-caller) state, but because a clip only ever
// narrows and must not leak past its scope, the builder wraps it in its
// own q/Q pair.
func (b *Builder) PushClipPath(path Path, ctm Matrix, rule FillRule) {
	b.saveState()
	if !ctm.IsIdentity() {
		b.emit(Operator{Name: OpConcat, Args: ctm.AsOperands()})
	}
	b.emitPath(path)
	op := OpClip
	if rule == FillEvenOdd {
		op = OpClipEvenOdd
	}
	b.emit(Operator{Name: op})
	b.emit(Operator{Name: OpEndPath})
	b.pushStack = append(b.pushStack, pushEntry{kind: pushClip})
}

// PopClip reverses the most recent PushClipPath, restoring only the
// content-writer state (there is no separate simulated value to unwind,
// since the clip is tracked entirely by the q/Q pair already emitted).
func (b *Builder) PopClip() error {
	if err := b.popPushEntry(pushClip); err != nil {
		return err
	}
	b.restoreState()
	return nil
}

func (b *Builder) pushTransform(kind pushKind) {
	b.pushStack = append(b.pushStack, pushEntry{kind: kind})
}

// PushTransform pushes a transform entry on the simulated stack without
// emitting anything and without storing a matrix; applying the transform
// is left to the caller, for example by folding it into RootTransform.
func (b *Builder) PushTransform() { b.pushTransform(pushTransform) }

// PushBlendMode, PushOpacity and PushMask record that a blend
// mode/opacity/mask override is in effect for nested drawing, to be
// folded into the ExtGStateDelta of the next isolated operation by the
// caller.
func (b *Builder) PushBlendMode() { b.pushTransform(pushBlendMode) }
func (b *Builder) PushOpacity()   { b.pushTransform(pushOpacity) }
func (b *Builder) PushMask()      { b.pushTransform(pushMask) }
func (b *Builder) PushIsolated()  { b.pushTransform(pushIsolated) }

// PopTransform, PopBlendMode, PopOpacity, PopMask and PopIsolated pop the
// matching push; they do not touch the content writer, since none of
// these push operations emit q/Q on their own (only PushClipPath does).
func (b *Builder) PopTransform() error { return b.popPushEntry(pushTransform) }
func (b *Builder) PopBlendMode() error { return b.popPushEntry(pushBlendMode) }
func (b *Builder) PopOpacity() error   { return b.popPushEntry(pushOpacity) }
func (b *Builder) PopMask() error      { return b.popPushEntry(pushMask) }
func (b *Builder) PopIsolated() error  { return b.popPushEntry(pushIsolated) }

func (b *Builder) popPushEntry(kind pushKind) error {
	n := len(b.pushStack)
	if n == 0 || b.pushStack[n-1].kind != kind {
		return fmt.Errorf("content: pop without matching push (kind %d)", kind)
	}
	b.pushStack = b.pushStack[:n-1]
	return nil
}

// DrawXObject registers ref as an XObject resource and emits Do.
func (b *Builder) DrawXObject(ref pdf.Reference, ctm Matrix, ext ExtGStateDelta) error {
	return b.isolated(ctm, ext, func(combined Matrix) error {
		name := b.resources.RegisterXObject(ref)
		b.emit(Operator{Name: OpXObject, Args: []pdf.Object{name}})
		return nil
	})
}

// DrawShading registers ref as a Shading resource and emits sh.
func (b *Builder) DrawShading(ref pdf.Reference, ctm Matrix, ext ExtGStateDelta) error {
	return b.isolated(ctm, ext, func(combined Matrix) error {
		name := b.resources.RegisterShading(ref)
		b.emit(Operator{Name: OpShading, Args: []pdf.Object{name}})
		return nil
	})
}

// BeginTag opens a marked-content sequence tagged with the struct type
// tag and carrying mcid as its /MCID property, the content-stream half
// of a struct tree leaf (ISO 32000-2 14.6.2). Every BeginTag must be
// matched by EndTag before the scope closes.
func (b *Builder) BeginTag(tag pdf.Name, mcid int) {
	b.emit(Operator{Name: OpBeginMarkedContentP, Args: []pdf.Object{tag, pdf.Dict{"MCID": pdf.Integer(mcid)}}})
}

// EndTag closes the marked-content sequence opened by the matching
// BeginTag.
func (b *Builder) EndTag() {
	b.emit(Operator{Name: OpEndMarkedContent})
}

// Bytes returns the accumulated content stream.
func (b *Builder) Bytes() ([]byte, error) {
	if err := b.writer.Close(); err != nil {
		return nil, err
	}
	if b.writer.Err != nil {
		return nil, b.writer.Err
	}
	return b.buf.Bytes(), nil
}

// Path is a sequence of path-construction operators (m, l, c, h, re) in
// the builder's user space; the geometry itself (bezier flattening,
// stroking, and so on) is the concern of an external vector-graphics
// collaborator, not of the content builder.
type Path []PathSegment

// PathSegment is one path-construction instruction.
type PathSegment struct {
	Op   OpName
	Args []float64
}

// Bounds returns the axis-aligned bounding box of the path's control
// points (not the true geometric bounds of curved segments, which would
// require flattening).
func (p Path) Bounds() Rect {
	r := NewEmptyRect()
	for _, seg := range p {
		for i := 0; i+1 < len(seg.Args); i += 2 {
			r.Extend(seg.Args[i], seg.Args[i+1])
		}
	}
	return r
}
