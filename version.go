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

import "fmt"

// Version represents a PDF version number, V1_0 .. V2_0.
type Version int

const (
	V1_0 Version = iota
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

func (v Version) String() string {
	if v == V2_0 {
		return "2.0"
	}
	return fmt.Sprintf("1.%d", int(v))
}

// ParseVersion parses a version string like "1.7" or "2.0".
func ParseVersion(s string) (Version, error) {
	var major, minor int
	_, err := fmt.Sscanf(s, "%d.%d", &major, &minor)
	if err != nil {
		return 0, errVersion
	}
	if major == 2 {
		return V2_0, nil
	}
	if major == 1 && minor >= 0 && minor <= 7 {
		return Version(minor), nil
	}
	return 0, errVersion
}

// CheckVersion returns a *VersionError if the writer's PDF version is
// earlier than earliest.
func CheckVersion(w *Writer, operation string, earliest Version) error {
	if w.Version < earliest {
		return &VersionError{Operation: operation, Earliest: earliest}
	}
	return nil
}
