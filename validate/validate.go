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

// Package validate decides which diagnostics collected while building a
// document are blocking for a chosen PDF conformance level, and which
// features that level requires up front (tagging, XMP metadata, a
// binary header marker, no-device-colorspace output).
package validate

import "seehuhn.de/go/pdfdoc"

// Level is a closed enum of the conformance levels the serialization
// context can be asked to enforce.
type Level int

const (
	None Level = iota
	A1A
	A1B
	A2A
	A2B
	A2U
	A3A
	A3B
	A3U
	UA1
)

func (l Level) String() string {
	switch l {
	case None:
		return "None"
	case A1A:
		return "PDF/A-1a"
	case A1B:
		return "PDF/A-1b"
	case A2A:
		return "PDF/A-2a"
	case A2B:
		return "PDF/A-2b"
	case A2U:
		return "PDF/A-2u"
	case A3A:
		return "PDF/A-3a"
	case A3B:
		return "PDF/A-3b"
	case A3U:
		return "PDF/A-3u"
	case UA1:
		return "PDF/UA-1"
	default:
		return "unknown"
	}
}

// isA reports whether l is one of the PDF/A-1/2/3 profiles (any
// conformance letter).
func (l Level) isA() bool {
	switch l {
	case A1A, A1B, A2A, A2B, A2U, A3A, A3B, A3U:
		return true
	}
	return false
}

// Requirements describes the features a conformance level mandates
// regardless of whether any diagnostic was ever raised.
type Requirements struct {
	NoDeviceCS          bool
	Tagging             bool
	XMPMetadata         bool
	BinaryHeader        bool
	OutputIntentSubtype pdf.Name
	RecommendedVersion  pdf.Version
	PerGlyphCodepoints  bool
}

// Requirements reports the ambient requirements the level imposes.
func (l Level) Requirements() Requirements {
	r := Requirements{RecommendedVersion: pdf.V1_7}
	if l == None {
		return r
	}
	r.NoDeviceCS = true
	r.XMPMetadata = true
	r.BinaryHeader = true
	r.OutputIntentSubtype = "GTS_PDFA1"
	if l.isA() {
		switch l {
		case A1A, A1B:
			r.RecommendedVersion = pdf.V1_4
		case A2A, A2B, A2U:
			r.OutputIntentSubtype = "GTS_PDFA1"
			r.RecommendedVersion = pdf.V1_7
		case A3A, A3B, A3U:
			r.RecommendedVersion = pdf.V1_7
		}
	}
	if l == UA1 {
		r.OutputIntentSubtype = ""
		r.RecommendedVersion = pdf.V1_7
	}
	switch l {
	case A1A, A2A, A3A, UA1:
		r.Tagging = true
	}
	switch l {
	case A2U, A3U, UA1, A1A, A2A, A3A:
		r.PerGlyphCodepoints = true
	}
	return r
}

// ErrorKind enumerates the diagnostics the serialization context can
// collect while building a document (§7 error taxonomy, validation
// errors branch).
type ErrorKind int

const (
	TooHighQNestingLevel ErrorKind = iota
	ContainsPostScript
	MissingCMYKProfile
	InvalidCodepointMapping
	UnicodePrivateArea
	MissingAnnotationAltText
	MissingOutline
	MissingTitle
	NotdefUsage
	StringTooLong
	NameTooLong
	ArrayTooLong
	DictTooLong
	RealTooLarge
	TooManyIndirectObjects
	TransparencyUsed
	ImageInterpolationSet
	EmbeddedFileMetadataGap
	DuplicateIdentifier
	MissingIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case TooHighQNestingLevel:
		return "TooHighQNestingLevel"
	case ContainsPostScript:
		return "ContainsPostScript"
	case MissingCMYKProfile:
		return "MissingCMYKProfile"
	case InvalidCodepointMapping:
		return "InvalidCodepointMapping"
	case UnicodePrivateArea:
		return "UnicodePrivateArea"
	case MissingAnnotationAltText:
		return "MissingAnnotationAltText"
	case MissingOutline:
		return "MissingOutline"
	case MissingTitle:
		return "MissingTitle"
	case NotdefUsage:
		return "NotdefUsage"
	case StringTooLong:
		return "StringTooLong"
	case NameTooLong:
		return "NameTooLong"
	case ArrayTooLong:
		return "ArrayTooLong"
	case DictTooLong:
		return "DictTooLong"
	case RealTooLarge:
		return "RealTooLarge"
	case TooManyIndirectObjects:
		return "TooManyIndirectObjects"
	case TransparencyUsed:
		return "TransparencyUsed"
	case ImageInterpolationSet:
		return "ImageInterpolationSet"
	case EmbeddedFileMetadataGap:
		return "EmbeddedFileMetadataGap"
	case DuplicateIdentifier:
		return "DuplicateIdentifier"
	case MissingIdentifier:
		return "MissingIdentifier"
	default:
		return "Unknown"
	}
}

// Error is one collected conformance violation. Detail carries the
// context a message needs (a font name and gid, an annotation index);
// it is not interpreted by the validator, only carried through to the
// caller.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + "(" + e.Detail + ")"
}

// Errors is the list returned by Document.Finish when the selected
// level prohibits at least one collected diagnostic.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	s := e[0].Error()
	for _, rest := range e[1:] {
		s += "; " + rest.Error()
	}
	return s
}

// Prohibits reports whether l forbids kind from appearing in the
// finished document. Kinds not covered by a conformance profile (a
// plain MalformedFileError-style bug, say) are never forbidden by
// None, and are forbidden by every PDF/A or PDF/UA profile: this
// module only ever raises a kind that some profile cares about.
func (l Level) Prohibits(kind ErrorKind) bool {
	if l == None {
		return false
	}
	req := l.Requirements()
	switch kind {
	case TooHighQNestingLevel:
		return l.isA() || l == UA1
	case ContainsPostScript:
		return l.isA()
	case MissingCMYKProfile:
		return req.NoDeviceCS
	case InvalidCodepointMapping:
		return req.PerGlyphCodepoints
	case UnicodePrivateArea:
		switch l {
		case A2A, A3A, UA1:
			return true
		}
		return false
	case MissingAnnotationAltText, MissingOutline, MissingTitle, NotdefUsage:
		return req.Tagging
	case StringTooLong, NameTooLong, ArrayTooLong, DictTooLong, RealTooLarge, TooManyIndirectObjects:
		return l.isA() || l == UA1
	case TransparencyUsed:
		return l == A1A || l == A1B
	case ImageInterpolationSet:
		return l.isA()
	case EmbeddedFileMetadataGap:
		return l == A3A || l == A3B || l == A3U
	case DuplicateIdentifier, MissingIdentifier:
		return true
	default:
		return true
	}
}
