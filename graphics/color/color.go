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

// Package color writes PDF color space objects: the three device
// spaces, which need no indirect object at all, and the CIE-based and
// ICC-based spaces, which the serialization context deduplicates by
// structural hash the same way it deduplicates fonts and ExtGStates.
package color

import (
	"crypto/md5"
	"errors"
	"fmt"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/pdfwrite"
)

// Space is a PDF color space a caller can register into a page's
// Resources and reference from a cs/CS or scn/SCN operator.
type Space interface {
	// Family identifies the color space family, e.g. "DeviceRGB" or
	// "ICCBased".
	Family() pdf.Name

	// N is the number of color components a color in this space takes.
	N() int

	// Encode returns the object to store in a Resources' ColorSpace
	// subdictionary: a bare Name for a device space, an indirect
	// reference (deduplicated by structural hash) for every other
	// family.
	Encode(ctx *pdfwrite.Context) (pdf.Object, error)
}

type deviceGray struct{}
type deviceRGB struct{}
type deviceCMYK struct{}

// SpaceDeviceGray, SpaceDeviceRGB and SpaceDeviceCMYK are the three
// device-dependent color spaces every PDF viewer supports without a
// resource dictionary entry.
var (
	SpaceDeviceGray Space = deviceGray{}
	SpaceDeviceRGB  Space = deviceRGB{}
	SpaceDeviceCMYK Space = deviceCMYK{}
)

func (deviceGray) Family() pdf.Name { return "DeviceGray" }
func (deviceGray) N() int           { return 1 }
func (deviceGray) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	return pdf.Name("DeviceGray"), nil
}

func (deviceRGB) Family() pdf.Name { return "DeviceRGB" }
func (deviceRGB) N() int           { return 3 }
func (deviceRGB) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	return pdf.Name("DeviceRGB"), nil
}

func (deviceCMYK) Family() pdf.Name { return "DeviceCMYK" }
func (deviceCMYK) N() int           { return 4 }
func (deviceCMYK) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	return pdf.Name("DeviceCMYK"), nil
}

// WhitePoint is a CIE 1931 XYZ white point triple.
type WhitePoint [3]float64

// WhitePointD50 and WhitePointD65 are the two illuminants PDF color
// spaces most commonly reference.
var (
	WhitePointD50 = WhitePoint{0.9642, 1.0, 0.8249}
	WhitePointD65 = WhitePoint{0.9505, 1.0, 1.0890}
)

func floatArray(v []float64) pdf.Array {
	a := make(pdf.Array, len(v))
	for i, x := range v {
		a[i] = pdf.Real(x)
	}
	return a
}

// CalGray is a CIE-based gray-scale color space (ISO 32000-2 8.6.5.2).
type CalGray struct {
	WhitePoint WhitePoint
	BlackPoint []float64 // 3 components, or nil for {0,0,0}
	Gamma      float64   // 0 means the PDF default of 1
}

func (c *CalGray) Family() pdf.Name { return "CalGray" }
func (c *CalGray) N() int           { return 1 }

func (c *CalGray) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	return ctx.RegisterCacheable(calGrayCacheable{c})
}

type calGrayCacheable struct{ c *CalGray }

func (w calGrayCacheable) CacheKey() [16]byte {
	return md5.Sum([]byte(fmt.Sprintf("CalGray:%v:%v:%v", w.c.WhitePoint, w.c.BlackPoint, w.c.Gamma)))
}
func (w calGrayCacheable) Chunk() pdfwrite.ChunkClass { return pdfwrite.ClassMisc }
func (w calGrayCacheable) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	dict := pdf.Dict{"WhitePoint": floatArray(w.c.WhitePoint[:])}
	if len(w.c.BlackPoint) == 3 {
		dict["BlackPoint"] = floatArray(w.c.BlackPoint)
	}
	if w.c.Gamma != 0 && w.c.Gamma != 1 {
		dict["Gamma"] = pdf.Real(w.c.Gamma)
	}
	return pdf.Array{pdf.Name("CalGray"), dict}, nil
}

// CalRGB is a CIE-based RGB color space (ISO 32000-2 8.6.5.3).
type CalRGB struct {
	WhitePoint WhitePoint
	BlackPoint []float64 // 3 components, or nil
	Gamma      []float64 // 3 components, or nil for {1,1,1}
	Matrix     []float64 // 9 components (row-major 3x3), or nil for identity
}

func (c *CalRGB) Family() pdf.Name { return "CalRGB" }
func (c *CalRGB) N() int           { return 3 }

func (c *CalRGB) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	return ctx.RegisterCacheable(calRGBCacheable{c})
}

type calRGBCacheable struct{ c *CalRGB }

func (w calRGBCacheable) CacheKey() [16]byte {
	return md5.Sum([]byte(fmt.Sprintf("CalRGB:%v:%v:%v:%v", w.c.WhitePoint, w.c.BlackPoint, w.c.Gamma, w.c.Matrix)))
}
func (w calRGBCacheable) Chunk() pdfwrite.ChunkClass { return pdfwrite.ClassMisc }
func (w calRGBCacheable) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	dict := pdf.Dict{"WhitePoint": floatArray(w.c.WhitePoint[:])}
	if len(w.c.BlackPoint) == 3 {
		dict["BlackPoint"] = floatArray(w.c.BlackPoint)
	}
	if len(w.c.Gamma) == 3 {
		dict["Gamma"] = floatArray(w.c.Gamma)
	}
	if len(w.c.Matrix) == 9 {
		dict["Matrix"] = floatArray(w.c.Matrix)
	}
	return pdf.Array{pdf.Name("CalRGB"), dict}, nil
}

// ErrInvalidProfile is returned when an ICC profile's header doesn't
// carry a recognized component count.
var ErrInvalidProfile = errors.New("color: invalid ICC profile")

// ICCBased wraps an embedded ICC profile stream (ISO 32000-2 8.6.5.5).
// N is derived from the profile's declared color space. Alternate is
// kept on the value but not written: the stream dictionary carries only
// /N, and the cache key covers only the profile bytes.
type ICCBased struct {
	Profile   []byte
	Alternate Space
	n         int
}

// NewICCBased validates profile's header and derives its component
// count from the header's data colour space field.
func NewICCBased(profile []byte, alternate Space) (*ICCBased, error) {
	n, err := iccComponents(profile)
	if err != nil {
		return nil, err
	}
	return &ICCBased{Profile: profile, Alternate: alternate, n: n}, nil
}

func (c *ICCBased) Family() pdf.Name { return "ICCBased" }
func (c *ICCBased) N() int           { return c.n }

func (c *ICCBased) Encode(ctx *pdfwrite.Context) (pdf.Object, error) {
	return ctx.RegisterStreamCacheable(iccBasedCacheable{c})
}

type iccBasedCacheable struct{ c *ICCBased }

func (w iccBasedCacheable) CacheKey() [16]byte { return md5.Sum(w.c.Profile) }
func (w iccBasedCacheable) Chunk() pdfwrite.ChunkClass {
	return pdfwrite.ClassICCProfile
}
func (w iccBasedCacheable) EncodeStream(ctx *pdfwrite.Context) (pdf.Dict, []byte, error) {
	dict := pdf.Dict{
		"N": pdf.Integer(w.c.n),
	}
	return dict, w.c.Profile, nil
}

// iccComponents reads the "data colour space" field of an ICC profile
// header (bytes 16-19) to determine its component count, without
// parsing the rest of the profile.
func iccComponents(profile []byte) (int, error) {
	if len(profile) < 20 {
		return 0, ErrInvalidProfile
	}
	switch string(profile[16:20]) {
	case "GRAY":
		return 1, nil
	case "RGB ":
		return 3, nil
	case "CMYK":
		return 4, nil
	default:
		return 0, ErrInvalidProfile
	}
}
