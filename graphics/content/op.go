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
	"errors"
	"fmt"

	"seehuhn.de/go/pdfdoc"
)

// OpName is the PDF keyword for a content stream operator, e.g. "q" or
// "Tf". Two pseudo-operators, "%raw%" and "%image%", are used internally
// to splice pre-formatted bytes and inline images into a stream; they
// never appear in PDF output under those names.
type OpName string

const (
	OpPushGraphicsState   OpName = "q"
	OpPopGraphicsState    OpName = "Q"
	OpConcat              OpName = "cm"
	OpSetLineWidth        OpName = "w"
	OpSetLineCap          OpName = "J"
	OpSetLineJoin         OpName = "j"
	OpSetMiterLimit       OpName = "M"
	OpSetDash             OpName = "d"
	OpSetRenderingIntent  OpName = "ri"
	OpSetFlatness         OpName = "i"
	OpSetExtGState        OpName = "gs"
	OpMoveTo              OpName = "m"
	OpLineTo              OpName = "l"
	OpCurveTo             OpName = "c"
	OpClosePath           OpName = "h"
	OpRectangle           OpName = "re"
	OpFill                OpName = "f"
	OpFillCompat          OpName = "F"
	OpFillEvenOdd         OpName = "f*"
	OpStroke              OpName = "S"
	OpFillStroke          OpName = "B"
	OpFillStrokeEvenOdd   OpName = "B*"
	OpCloseFillStroke     OpName = "b"
	OpCloseFillStrokeEO   OpName = "b*"
	OpEndPath             OpName = "n"
	OpClip                OpName = "W"
	OpClipEvenOdd         OpName = "W*"
	OpSetStrokeGray       OpName = "G"
	OpSetFillGray         OpName = "g"
	OpSetStrokeRGB        OpName = "RG"
	OpSetFillRGB          OpName = "rg"
	OpSetStrokeCMYK       OpName = "K"
	OpSetFillCMYK         OpName = "k"
	OpSetStrokeColorSpace OpName = "CS"
	OpSetFillColorSpace   OpName = "cs"
	OpSetStrokeColorN     OpName = "SCN"
	OpSetFillColorN       OpName = "scn"
	OpShading             OpName = "sh"
	OpXObject             OpName = "Do"
	OpTextBegin           OpName = "BT"
	OpTextEnd             OpName = "ET"
	OpTextSetFont         OpName = "Tf"
	OpTextMatrix          OpName = "Tm"
	OpTextNextLine        OpName = "Td"
	OpTextShow            OpName = "Tj"
	OpTextShowAdjusted    OpName = "TJ"
	OpTextCharSpacing     OpName = "Tc"
	OpTextWordSpacing     OpName = "Tw"
	OpTextScale           OpName = "Tz"
	OpTextLeading         OpName = "TL"
	OpTextRise            OpName = "Ts"
	OpTextRenderingMode   OpName = "Tr"
	OpMarkedContentPoint  OpName = "MP"
	OpBeginMarkedContent  OpName = "BMC"
	OpBeginMarkedContentP OpName = "BDC"
	OpEndMarkedContent    OpName = "EMC"
	OpBeginCompatibility  OpName = "BX"
	OpEndCompatibility    OpName = "EX"

	// OpRaw splices pre-formatted bytes (a single pdf.String argument)
	// directly into the stream.
	OpRaw OpName = "%raw%"
	// OpImage writes an inline image: Args[0] is the image parameter
	// dictionary, Args[1] the raw (already-filtered) sample data.
	OpImage OpName = "%image%"
)

var (
	// ErrUnknown is returned for an OpName not in the operator table.
	ErrUnknown = errors.New("unknown content stream operator")
	// ErrDeprecated is returned when an operator removed in the
	// requested PDF version is used.
	ErrDeprecated = errors.New("operator deprecated in this PDF version")
	// ErrVersion is returned when an operator requires a newer PDF
	// version than the stream is being written for.
	ErrVersion = errors.New("operator requires a newer PDF version")
)

type opInfo struct {
	minVersion   pdf.Version
	removedAt    pdf.Version // zero means never removed
}

var operators = map[OpName]opInfo{
	OpPushGraphicsState:   {},
	OpPopGraphicsState:    {},
	OpConcat:              {},
	OpSetLineWidth:        {},
	OpSetLineCap:          {},
	OpSetLineJoin:         {},
	OpSetMiterLimit:       {},
	OpSetDash:             {},
	OpSetRenderingIntent:  {minVersion: pdf.V1_1},
	OpSetFlatness:         {},
	OpSetExtGState:        {minVersion: pdf.V1_2},
	OpMoveTo:              {},
	OpLineTo:              {},
	OpCurveTo:             {},
	OpClosePath:           {},
	OpRectangle:           {},
	OpFill:                {},
	OpFillCompat:          {removedAt: pdf.V2_0},
	OpFillEvenOdd:         {},
	OpStroke:              {},
	OpFillStroke:          {},
	OpFillStrokeEvenOdd:   {},
	OpCloseFillStroke:     {},
	OpCloseFillStrokeEO:   {},
	OpEndPath:             {},
	OpClip:                {},
	OpClipEvenOdd:         {},
	OpSetStrokeGray:       {},
	OpSetFillGray:         {},
	OpSetStrokeRGB:        {},
	OpSetFillRGB:          {},
	OpSetStrokeCMYK:       {},
	OpSetFillCMYK:         {},
	OpSetStrokeColorSpace: {minVersion: pdf.V1_1},
	OpSetFillColorSpace:   {minVersion: pdf.V1_1},
	OpSetStrokeColorN:     {minVersion: pdf.V1_2},
	OpSetFillColorN:       {minVersion: pdf.V1_2},
	OpShading:             {minVersion: pdf.V1_3},
	OpXObject:             {},
	OpTextBegin:           {},
	OpTextEnd:             {},
	OpTextSetFont:         {},
	OpTextMatrix:          {},
	OpTextNextLine:        {},
	OpTextShow:            {},
	OpTextShowAdjusted:    {},
	OpTextCharSpacing:     {},
	OpTextWordSpacing:     {},
	OpTextScale:           {},
	OpTextLeading:         {},
	OpTextRise:            {},
	OpTextRenderingMode:   {},
	OpMarkedContentPoint:  {minVersion: pdf.V1_2},
	OpBeginMarkedContent:  {minVersion: pdf.V1_2},
	OpBeginMarkedContentP: {minVersion: pdf.V1_2},
	OpEndMarkedContent:    {minVersion: pdf.V1_2},
	OpBeginCompatibility:  {minVersion: pdf.V1_1},
	OpEndCompatibility:    {minVersion: pdf.V1_1},
	OpRaw:                 {},
	OpImage:               {},
}

// Operator is one content stream instruction: a keyword plus its operands
// in PDF syntax order.
type Operator struct {
	Name OpName
	Args []pdf.Object
}

// Operators is a sequence of instructions, in emission order.
type Operators []Operator

func (op Operator) isValidName(v pdf.Version) error {
	info, ok := operators[op.Name]
	if !ok {
		return fmt.Errorf("%s: %w", op.Name, ErrUnknown)
	}
	if info.removedAt != 0 && v >= info.removedAt {
		return fmt.Errorf("%s: %w", op.Name, ErrDeprecated)
	}
	if info.minVersion != 0 && v < info.minVersion {
		return fmt.Errorf("%s: requires PDF %s: %w", op.Name, info.minVersion, ErrVersion)
	}
	return nil
}
