// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ascii

import (
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// Writer renders program output to an io.Writer. ASCII cells are written as
// is. Other values are written in decimal on a line of their own.
//
// Once a write fails, all subsequent writes are no-ops and return the same error.
type Writer struct {
	w    *ici.ErrWriter
	last byte
	buf  []byte
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: ici.NewErrWriter(w), last: '\n'}
}

// WriteCell writes a single output value.
func (w *Writer) WriteCell(c vm.Cell) error {
	b := w.buf[:0]
	if IsText(c) {
		b = append(b, byte(c))
	} else {
		if w.last != '\n' {
			b = append(b, '\n')
		}
		b = strconv.AppendInt(b, int64(c), 10)
		b = append(b, '\n')
	}
	w.buf = b
	w.last = b[len(b)-1]
	_, err := w.w.Write(b)
	return err
}

// WriteCells writes all values in out and stops at the first error.
func (w *Writer) WriteCells(out []vm.Cell) error {
	for _, c := range out {
		if err := w.WriteCell(c); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the first error encountered while writing, if any.
func (w *Writer) Err() error {
	return w.w.Err
}
