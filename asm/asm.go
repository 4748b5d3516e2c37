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

package asm

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// Error is a single assembler error.
type Error struct {
	Pos scanner.Position
	Msg string
}

// ErrAsm is the error type returned by Assemble. It accumulates up to 10
// errors, each pointing at the offending position in the source.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b bytes.Buffer
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Image, error) {
	p := newParser()
	if err := p.Parse(name, r); err != nil {
		return nil, err
	}
	return p.i, nil
}

var prefixes = [...]string{vm.Position: "", vm.Immediate: "#", vm.Relative: "~"}

// Disassemble writes a disassembly of the instruction at position pc in the
// given image to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode as a valid instruction are written as plain
// numbers. Arguments past the end of the image are written as "???".
func Disassemble(img vm.Image, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*ici.ErrWriter)
	if ew == nil {
		ew = ici.NewErrWriter(w)
	}

	ins := img[pc]
	d, err := vm.Decode(ins)
	if err != nil {
		ew.WriteString(strconv.FormatInt(int64(ins), 10))
		return pc + 1, ew.Err
	}
	ew.WriteString(d.Op.String())
	pc++
	for n := 0; n < d.Op.Params(); n++ {
		ew.Write([]byte{' '})
		if pc >= len(img) {
			ew.WriteString("???")
			continue
		}
		ew.WriteString(prefixes[d.Modes[n]])
		ew.WriteString(strconv.FormatInt(int64(img[pc]), 10))
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given image to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (img[0]). It will return any write error.
func DisassembleAll(img vm.Image, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(img); {
		fmt.Fprintf(ew, "%6d\t", base+pc)
		pc, _ = Disassemble(img, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
