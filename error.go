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
	"errors"
	"strconv"
)

var (
	errVersion      = errors.New("unsupported PDF version")
	errNoDate       = errors.New("not a valid date string")
	errNoRectangle  = errors.New("not a valid PDF rectangle")
	errDuplicateRef = errors.New("object already written")
)

// MalformedFileError indicates that an externally supplied blob (a font
// program, an ICC profile) could not be parsed. It is not used for PDF
// files themselves, since this module does not read PDF.
type MalformedFileError struct {
	Err error
	Pos int64
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "malformed input data" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// VersionError is returned when trying to use a feature in a PDF file which is
// not supported by the PDF version used.  Use [CheckVersion] to create
// VersionError objects.
type VersionError struct {
	Operation string
	Earliest  Version
}

func (err *VersionError) Error() string {
	return (err.Operation + " requires PDF version " +
		err.Earliest.String() + " or later")
}

// Wrap attaches a field/context name to err, in the style used throughout
// this module's extraction and validation code.
func Wrap(err error, field string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{field: field, err: err}
}

type wrappedError struct {
	field string
	err   error
}

func (e *wrappedError) Error() string {
	return e.field + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

// UserError represents API misuse detected at call time: operating on a
// finished Document/Page/Surface, an invalid size, a duplicate tag-tree
// identifier. It is always returned immediately, never accumulated.
type UserError struct {
	Op  string
	Err error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op
}

func (e *UserError) Unwrap() error {
	return e.Err
}
