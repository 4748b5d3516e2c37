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

// Package ascii provides helpers for Intcode programs that talk in ASCII text:
// input lines are fed as one character code per cell, terminated by a newline,
// and output cells in the ASCII range are printable text.
//
// Programs of this kind usually report their final answer as a single value
// outside of the ASCII range. Decode and Writer surface such values
// separately from the text.
package ascii

import (
	"strings"
	"unicode"

	"github.com/db47h/intcode/vm"
)

// IsText returns true if c is a valid ASCII character code.
func IsText(c vm.Cell) bool {
	return c >= 0 && c <= unicode.MaxASCII
}

// Encode returns the input cells for the given line of text. A newline is
// appended if line does not already end with one.
func Encode(line string) []vm.Cell {
	out := make([]vm.Cell, 0, len(line)+1)
	for i := 0; i < len(line); i++ {
		out = append(out, vm.Cell(line[i]))
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		out = append(out, '\n')
	}
	return out
}

// EncodeLines encodes each line in turn and returns the concatenated input.
func EncodeLines(lines ...string) []vm.Cell {
	var out []vm.Cell
	for _, l := range lines {
		out = append(out, Encode(l)...)
	}
	return out
}

// Decode splits program output into text and non-text values. Cells are
// processed in order; those in the ASCII range go to text, all others to extra.
func Decode(out []vm.Cell) (text string, extra []vm.Cell) {
	var b strings.Builder
	for _, c := range out {
		if IsText(c) {
			b.WriteByte(byte(c))
			continue
		}
		extra = append(extra, c)
	}
	return b.String(), extra
}
