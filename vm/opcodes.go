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

package vm

import "strconv"

// Cell is the raw type stored in a memory location. It is also the type of
// every input and output value.
type Cell int64

// Opcode is an operation selector, as found in the two low decimal digits of
// an instruction.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd Opcode = iota + 1
	OpMul
	OpIn
	OpOut
	OpJumpTrue
	OpJumpFalse
	OpLess
	OpEqual
	OpAdjustBase
	OpHalt Opcode = 99
)

type opInfo struct {
	name   string
	params int
	// the last parameter is a write parameter
	writes bool
}

var opcodes = [OpHalt + 1]opInfo{
	OpAdd:        {"add", 3, true},
	OpMul:        {"mul", 3, true},
	OpIn:         {"in", 1, true},
	OpOut:        {"out", 1, false},
	OpJumpTrue:   {"jt", 2, false},
	OpJumpFalse:  {"jf", 2, false},
	OpLess:       {"lt", 3, true},
	OpEqual:      {"eq", 3, true},
	OpAdjustBase: {"arb", 1, false},
	OpHalt:       {"hlt", 0, false},
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, v := range opcodes {
		if v.name != "" {
			opcodeIndex[v.name] = Opcode(i)
		}
	}
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	return op > 0 && op <= OpHalt && opcodes[op].name != ""
}

// Params returns the number of parameters that follow the opcode.
func (op Opcode) Params() int {
	if !op.Valid() {
		return 0
	}
	return opcodes[op].params
}

// Writes returns true if the last parameter of op is a destination address.
func (op Opcode) Writes() bool {
	return op.Valid() && opcodes[op].writes
}

// Size returns the size in cells of an instruction with this opcode, i.e. the
// distance the instruction pointer moves when it is not a taken jump.
func (op Opcode) Size() int {
	return 1 + op.Params()
}

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	if !op.Valid() {
		return "op(" + strconv.FormatInt(int64(op), 10) + ")"
	}
	return opcodes[op].name
}

// LookupOpcode returns the opcode for the given mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

// Mode is a parameter addressing mode.
type Mode Cell

// Parameter modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.FormatInt(int64(m), 10) + ")"
}

// Instruction is a decoded instruction cell.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode
}

// Decode decodes the opcode and parameter modes of the instruction cell ins.
//
// Parameter modes are stored right to left in the decimal digits above the
// opcode: hundreds for the first parameter, thousands for the second and ten
// thousands for the third. All three mode digits must be valid, even for
// opcodes with fewer parameters. Digits above the ten thousands are ignored.
//
// The returned error is either ErrOpcode or ErrMode.
func Decode(ins Cell) (Instruction, error) {
	var d Instruction
	if ins < 0 {
		return d, ErrOpcode
	}
	d.Op = Opcode(ins % 100)
	if !d.Op.Valid() {
		return d, ErrOpcode
	}
	ins /= 100
	for n := range d.Modes {
		m := Mode(ins % 10)
		if m > Relative {
			return d, ErrMode
		}
		if n < d.Op.Params() {
			d.Modes[n] = m
		}
		ins /= 10
	}
	return d, nil
}
