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

// Package metadata writes a document's XMP metadata stream
// (ISO 32000-2 14.3.2), the carrier PDF/A and PDF/UA use for the
// conformance-level declaration itself (the dc:title/pdfaid:part
// properties a validator checks come from here, not from Info).
package metadata

import (
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/pdfwrite"
	"seehuhn.de/go/xmp"
)

// Stream is an XMP metadata packet pending serialization. Pretty
// controls whether the packet is written with indentation, matching
// pdf.WriterOptions.HumanReadable for documents that care about that.
type Stream struct {
	Data   *xmp.Packet
	Pretty bool
}

// Write opens a Metadata stream object, serializes Data into it as an
// XML packet and returns its reference, suitable for
// Document.SetMetadata.
func (s *Stream) Write(ctx *pdfwrite.Context) (pdf.Reference, error) {
	ref := ctx.Alloc()
	dict := pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	stm, err := ctx.OpenStream(ref, dict)
	if err != nil {
		return pdf.Reference{}, err
	}
	opts := &xmp.PacketOptions{Pretty: s.Pretty}
	if err := s.Data.Write(stm, opts); err != nil {
		stm.Close()
		return pdf.Reference{}, err
	}
	if err := stm.Close(); err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}
