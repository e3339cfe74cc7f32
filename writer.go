// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"bytes"
	"fmt"
	"io"
)

// WriterOptions controls the low-level behaviour of a Writer: which PDF
// version to target and whether the binary-header marker required by some
// validators is emitted.
type WriterOptions struct {
	Version      Version
	BinaryHeader bool
	HumanReadable bool // emit dict keys in a stable, sorted order (always true here)
}

// Putter is the write side of the low-level object model: allocate
// references and store objects/streams against them.  The serialization
// context (package document) is built entirely on top of this interface so
// that its object-graph logic never has to know about byte offsets, xref
// tables or stream filters.
type Putter interface {
	Alloc() Reference
	Put(ref Reference, obj Object) error
	OpenStream(ref Reference, dict Dict, filters ...*FilterInfo) (*Stream, error)
	GetMeta() *MetaInfo
}

// MetaInfo carries the document-wide state a Putter exposes to its callers:
// the chosen PDF version and the document catalog under construction.
type MetaInfo struct {
	Version Version
	Catalog *Catalog
	ID      [2][]byte
}

// Stream is an open indirect stream object.  Write to it like any
// io.Writer; Close finalizes the stream's length and applies filters.
type Stream struct {
	io.Writer

	ref     Reference
	w       *Writer
	dict    Dict
	buf     *bytes.Buffer
	inner   io.WriteCloser
	closed  bool
}

func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.inner != nil {
		if err := s.inner.Close(); err != nil {
			return err
		}
	}
	return s.w.finishStream(s.ref, s.dict, s.buf.Bytes())
}

type objEntry struct {
	ref Reference
	obj Object
}

// Writer assembles a sequence of indirect objects into a single PDF byte
// stream.  It implements Putter.  This is the PDF low-level writer named as
// an external collaborator in the specification: object numbering, stream
// filters and the final cross-reference table, not the object graph that
// decides what gets written.
type Writer struct {
	Version  Version
	Catalog  *Catalog
	Info     *Info

	out        io.Writer
	opt        WriterOptions
	nextRef    uint32
	objects    []objEntry
	offsets    map[uint32]int64
	pos        int64
	closed     bool
}

// Info holds the PDF document information dictionary (Title, Author, ...).
type Info struct {
	Title    string `pdf:"optional"`
	Author   string `pdf:"optional"`
	Subject  string `pdf:"optional"`
	Keywords string `pdf:"optional"`
	Creator  string `pdf:"optional"`
	Producer string `pdf:"optional"`
}

// NewWriter creates a Writer that streams its output to w.
func NewWriter(w io.Writer, opt *WriterOptions) (*Writer, error) {
	o := WriterOptions{Version: V1_7}
	if opt != nil {
		o = *opt
	}

	header := "%PDF-" + o.Version.String() + "\n"
	if o.BinaryHeader {
		header += "%\xe2\xe3\xcf\xd3\n"
	}
	n, err := io.WriteString(w, header)
	if err != nil {
		return nil, err
	}

	return &Writer{
		Version: o.Version,
		Catalog: &Catalog{},

		out:     w,
		opt:     o,
		nextRef: 1,
		offsets: map[uint32]int64{},
		pos:     int64(n),
	}, nil
}

func (w *Writer) GetMeta() *MetaInfo {
	return &MetaInfo{Version: w.Version, Catalog: w.Catalog}
}

// Alloc reserves a fresh object reference.
func (w *Writer) Alloc() Reference {
	n := w.nextRef
	w.nextRef++
	return NewReference(n, 0)
}

// Put writes obj under the (already allocated) reference ref.
func (w *Writer) Put(ref Reference, obj Object) error {
	if w.closed {
		return errDuplicateRef
	}
	w.objects = append(w.objects, objEntry{ref, obj})
	return w.writeIndirect(ref, pdfOf(obj))
}

// OpenStream opens a stream object under the (already allocated) reference
// ref. The returned Stream must be Close()d; Close applies the requested
// filters and writes the final dictionary and data.
func (w *Writer) OpenStream(ref Reference, dict Dict, filters ...*FilterInfo) (*Stream, error) {
	if dict == nil {
		dict = Dict{}
	}
	buf := &bytes.Buffer{}

	s := &Stream{ref: ref, w: w, dict: dict, buf: buf}

	var out io.WriteCloser = withoutClose{buf}
	var names Array
	for _, fi := range filters {
		f, err := fi.getFilter()
		if err != nil {
			return nil, err
		}
		enc, err := f.Encode(out)
		if err != nil {
			return nil, err
		}
		out = enc
		names = append(names, fi.Name)
		if parms := f.ToDict(); parms != nil {
			dict["DecodeParms"] = parms
		}
	}
	if len(names) == 1 {
		dict["Filter"] = names[0]
	} else if len(names) > 1 {
		dict["Filter"] = names
	}

	s.inner = out
	s.Writer = out
	return s, nil
}

func (w *Writer) finishStream(ref Reference, dict Dict, data []byte) error {
	d := Dict{}
	for k, v := range dict {
		d[k] = v
	}
	d["Length"] = Integer(len(data))

	header := "obj<<"
	_ = header
	return w.writeStreamObject(ref, d, data)
}

func (w *Writer) writeIndirect(ref Reference, body string) error {
	s := fmt.Sprintf("%d %d obj\n%s\nendobj\n", ref.Number, ref.Generation, body)
	w.offsets[ref.Number] = w.pos
	n, err := io.WriteString(w.out, s)
	w.pos += int64(n)
	return err
}

func (w *Writer) writeStreamObject(ref Reference, dict Dict, data []byte) error {
	w.offsets[ref.Number] = w.pos
	head := fmt.Sprintf("%d %d obj\n%sstream\n", ref.Number, ref.Generation, dict.PDF())
	n, err := io.WriteString(w.out, head)
	w.pos += int64(n)
	if err != nil {
		return err
	}
	m, err := w.out.Write(data)
	w.pos += int64(m)
	if err != nil {
		return err
	}
	tail := "\nendstream\nendobj\n"
	n, err = io.WriteString(w.out, tail)
	w.pos += int64(n)
	return err
}

// Close writes the document catalog, trailer and cross-reference table, and
// finalizes the output.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	catRef := w.Alloc()
	if err := w.Put(catRef, AsDict(w.Catalog)); err != nil {
		return err
	}

	var infoRef Reference
	if w.Info != nil {
		infoRef = w.Alloc()
		if err := w.Put(infoRef, AsDict(w.Info)); err != nil {
			return err
		}
	}

	xrefPos := w.pos
	maxNum := w.nextRef
	_, err := fmt.Fprintf(w.out, "xref\n0 %d\n", maxNum)
	w.pos += 0
	if err != nil {
		return err
	}
	_, err = io.WriteString(w.out, "0000000000 65535 f \n")
	if err != nil {
		return err
	}
	for n := uint32(1); n < maxNum; n++ {
		off, ok := w.offsets[n]
		if !ok {
			_, err = io.WriteString(w.out, "0000000000 00000 f \n")
		} else {
			_, err = fmt.Fprintf(w.out, "%010d 00000 n \n", off)
		}
		if err != nil {
			return err
		}
	}

	trailer := Dict{
		"Size": Integer(maxNum),
		"Root": catRef,
	}
	if !infoRef.IsZero() {
		trailer["Info"] = infoRef
	}
	_, err = fmt.Fprintf(w.out, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer.PDF(), xrefPos)
	return err
}
