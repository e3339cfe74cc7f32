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

package font

import (
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdfdoc"
)

// SystemInfo is the Registry/Ordering/Supplement triple a CID font's
// character collection is identified by. All CID fonts this module writes
// use the Adobe-Identity-0 collection: CIDs are never looked up against a
// real character collection, only against the font's own gid-derived
// remapping.
type SystemInfo = cid.SystemInfo

// Identity is the Adobe-Identity-0 character collection used by every CID
// font this module writes.
var Identity = &SystemInfo{Registry: "Adobe", Ordering: "Identity", Supplement: 0}

// WriteCIDSystemInfo writes ROS as an indirect PDF object and returns a
// reference to it.
func WriteCIDSystemInfo(w pdf.Putter, ros *SystemInfo) (pdf.Reference, error) {
	obj := pdf.Dict{
		"Registry":   pdf.String(ros.Registry),
		"Ordering":   pdf.String(ros.Ordering),
		"Supplement": pdf.Integer(ros.Supplement),
	}
	ref := w.Alloc()
	if err := w.Put(ref, obj); err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}
