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

import (
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/validate"
)

// Options mirrors the configuration surface of §6: what a caller can
// set when opening a document, as opposed to what the context derives
// automatically from the chosen validator.
type Options struct {
	// Version pins the PDF version to target. The zero value (V1_0)
	// means "let the validator level recommend one" (see
	// validate.Requirements): no caller building a conformant document
	// targets V1_0 on purpose, so it is free to double as "unset".
	Version pdf.Version

	// Validator is the conformance level enforced by RegisterValidationError.
	Validator validate.Level

	// CompressContentStreams applies FlateDecode to stream bodies.
	CompressContentStreams bool

	// NoDeviceColorSpace records a request to avoid DeviceGray/RGB/CMYK
	// color operators in favor of ICC-based or CalRGB/CalGray spaces.
	// No code in this module reads it (noDeviceCS, which combines it with
	// the validator's requirement, has no caller), and nothing rejects
	// device color operators because of it.
	NoDeviceColorSpace bool

	// ASCIICompatible records a request to restrict string and name
	// output to 7-bit ASCII where the format allows a choice (e.g. hex
	// strings over literal strings containing arbitrary bytes). No code
	// in this module reads it; output is the same either way.
	ASCIICompatible bool

	// XMPMetadata holds XMP packet bytes. No code in this module reads
	// it: no metadata stream is embedded from it, and the catalog's
	// /Metadata entry comes only from Context.SetMetadata.
	XMPMetadata []byte

	// CMYKProfile holds ICC profile bytes for a CMYK output intent. No
	// code in this module reads it, and no output intent is written
	// from it.
	CMYKProfile []byte

	// EnableTagging turns on struct-tree construction via Surface's
	// BeginGroup/EndGroup/Tag calls; a validator that requires tagging
	// (Requirements().Tagging) forces this on regardless of the value
	// given here.
	EnableTagging bool

	// RenderSVGGlyphFn holds a callback that rasterizes an OpenType SVG
	// glyph description to a raster image. No code in this module calls
	// it.
	RenderSVGGlyphFn func(svg []byte, size float64) (png []byte, err error)
}

func (o Options) resolvedVersion() pdf.Version {
	if o.Version != 0 {
		return o.Version
	}
	if v := o.Validator.Requirements().RecommendedVersion; v != 0 {
		return v
	}
	return pdf.V1_7
}

func (o Options) binaryHeader() bool {
	return o.Validator.Requirements().BinaryHeader
}

func (o Options) taggingEnabled() bool {
	return o.EnableTagging || o.Validator.Requirements().Tagging
}

func (o Options) noDeviceCS() bool {
	return o.NoDeviceColorSpace || o.Validator.Requirements().NoDeviceCS
}
