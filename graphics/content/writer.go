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
	"io"

	"seehuhn.de/go/pdfdoc"
)

// Writer serializes [Operators] to PDF content stream syntax, checking
// each operator against the target PDF version and against q/Q balance
// as it goes. Like the rest of this module's write path, once an error
// occurs it is recorded in Err and every subsequent method becomes a
// no-op; callers write a whole sequence and check Err once at the end.
type Writer struct {
	Version pdf.Version
	Err     error

	v struct {
		state State
	}
}

// NewWriter creates a Writer for one content stream scope.
func NewWriter(version pdf.Version, kind ScopeKind, res *Resources) *Writer {
	w := &Writer{Version: version}
	w.v.state = *NewState(kind, res)
	return w
}

// Write serializes ops to buf.
func (w *Writer) Write(buf io.Writer, ops Operators) error {
	if w.Err != nil {
		return w.Err
	}
	for _, op := range ops {
		if err := op.isValidName(w.Version); err != nil {
			w.Err = err
			return err
		}
		switch op.Name {
		case OpPushGraphicsState:
			w.v.state.Push()
		case OpPopGraphicsState:
			if err := w.v.state.Pop(); err != nil {
				w.Err = err
				return err
			}
		}
		if err := writeOperator(buf, op); err != nil {
			w.Err = err
			return err
		}
	}
	return nil
}

// Close reports an error if the stream ended with unbalanced q/Q.
func (w *Writer) Close() error {
	if w.Err != nil {
		return w.Err
	}
	if w.v.state.Depth() != 0 {
		return fmt.Errorf("content: %d unmatched q at end of stream", w.v.state.Depth())
	}
	return nil
}

func writeOperator(buf io.Writer, op Operator) error {
	if op.Name == OpRaw {
		if len(op.Args) != 1 {
			return fmt.Errorf("content: %%raw%% takes exactly one argument")
		}
		s, ok := op.Args[0].(pdf.String)
		if !ok {
			return fmt.Errorf("content: %%raw%% argument must be a pdf.String")
		}
		_, err := buf.Write([]byte(s))
		return err
	}

	var line bytes.Buffer
	for _, arg := range op.Args {
		if err := writeObject(&line, arg); err != nil {
			return err
		}
		line.WriteByte(' ')
	}
	line.WriteString(string(op.Name))
	line.WriteByte('\n')
	_, err := buf.Write(line.Bytes())
	return err
}

func writeObject(buf *bytes.Buffer, obj pdf.Object) error {
	if obj == nil {
		return fmt.Errorf("content: nil operand")
	}
	buf.WriteString(obj.PDF())
	return nil
}
