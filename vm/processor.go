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

import "github.com/pkg/errors"

// OutcomeKind identifies the outcome of a single processor step.
type OutcomeKind int

// Step outcomes.
const (
	// Handled means that the instruction was fully executed and that the
	// caller should step again.
	Handled OutcomeKind = iota
	// InputRequired means that the program executed an input instruction
	// while no input was available. The destination address has been
	// recorded, and the next value passed to InputAvailable is stored there.
	InputRequired
	// OutputAvailable means that the program produced a value.
	OutputAvailable
	// ProgramEnded means that the program executed a halt instruction.
	ProgramEnded
)

var outcomeNames = [...]string{"handled", "input required", "output available", "program ended"}

func (k OutcomeKind) String() string {
	if k < 0 || int(k) >= len(outcomeNames) {
		return "unknown outcome"
	}
	return outcomeNames[k]
}

// Outcome is the result of a processor step. Value is only meaningful for
// OutputAvailable.
type Outcome struct {
	Kind  OutcomeKind
	Value Cell
}

// Processor is the Intcode CPU: memory, instruction pointer, relative base
// and input bookkeeping. It is not safe for concurrent use; the adapters
// (Computer, ChannelComputer, StreamComputer) each own one exclusively.
type Processor struct {
	mem      Image
	pc       Cell
	rb       Cell
	pending  Cell
	waiting  bool
	queue    []Cell
	halted   bool
	err      error
	insCount int64
}

// NewProcessor returns a processor whose memory is a copy of img, with the
// instruction pointer and relative base set to 0.
func NewProcessor(img Image) *Processor {
	return &Processor{mem: img.Clone()}
}

// PC returns the instruction pointer.
func (p *Processor) PC() Cell { return p.pc }

// RelativeBase returns the current relative base.
func (p *Processor) RelativeBase() Cell { return p.rb }

// Peek returns the value at memory address addr.
func (p *Processor) Peek(addr Cell) Cell { return p.mem.Read(addr) }

// Memory returns a copy of the processor memory.
func (p *Processor) Memory() Image { return p.mem.Clone() }

// InstructionCount returns the number of instructions executed so far.
func (p *Processor) InstructionCount() int64 { return p.insCount }

// Halted returns true once the program has executed a halt instruction.
func (p *Processor) Halted() bool { return p.halted }

// Waiting returns true if the processor is suspended on an input instruction.
func (p *Processor) Waiting() bool { return p.waiting }

// Queued returns the number of inputs received ahead of the program asking
// for them.
func (p *Processor) Queued() int { return len(p.queue) }

// InputAvailable hands v over to the processor. If the processor is waiting
// for input, v is stored at the pending address and execution can resume.
// Otherwise v is queued and consumed by a future input instruction.
func (p *Processor) InputAvailable(v Cell) {
	if p.waiting {
		p.mem.Write(p.pending, v)
		p.waiting = false
		return
	}
	p.queue = append(p.queue, v)
}

func (p *Processor) fail(err error, ins Cell) (Outcome, error) {
	p.err = errors.WithStack(&MalformedError{PC: p.pc, Ins: ins, Err: err})
	return Outcome{}, p.err
}

// param resolves the n-th parameter of the instruction at pc. For read
// parameters, it returns the parameter value. For write parameters, it returns
// the destination address: position and immediate modes are handled alike.
// Destination addresses must be below MaxMemory.
func (p *Processor) param(d *Instruction, n int, write bool) (Cell, error) {
	raw := p.mem.Read(p.pc + Cell(n) + 1)
	addr := raw
	switch d.Modes[n] {
	case Immediate:
		if !write {
			return raw, nil
		}
	case Relative:
		addr += p.rb
	}
	if addr < 0 || write && addr >= MaxMemory {
		return 0, ErrAddress
	}
	if write {
		return addr, nil
	}
	return p.mem.Read(addr), nil
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// Step executes a single instruction and returns its outcome.
//
// Once the program has ended, Step keeps returning ProgramEnded. While an
// input is pending, Step keeps returning InputRequired without executing
// anything. A malformed program results in a *MalformedError (wrapped with a
// stack trace), and any subsequent call returns the same error.
func (p *Processor) Step() (Outcome, error) {
	switch {
	case p.err != nil:
		return Outcome{}, p.err
	case p.halted:
		return Outcome{Kind: ProgramEnded}, nil
	case p.waiting:
		return Outcome{Kind: InputRequired}, nil
	}
	if p.pc < 0 {
		return p.fail(ErrAddress, 0)
	}
	ins := p.mem.Read(p.pc)
	d, err := Decode(ins)
	if err != nil {
		return p.fail(err, ins)
	}
	var args [3]Cell
	np := d.Op.Params()
	for n := 0; n < np; n++ {
		args[n], err = p.param(&d, n, n == np-1 && d.Op.Writes())
		if err != nil {
			return p.fail(err, ins)
		}
	}

	out := Outcome{Kind: Handled}
	next := p.pc + Cell(d.Op.Size())
	switch d.Op {
	case OpAdd:
		p.mem.Write(args[2], args[0]+args[1])
	case OpMul:
		p.mem.Write(args[2], args[0]*args[1])
	case OpIn:
		if len(p.queue) > 0 {
			p.mem.Write(args[0], p.queue[0])
			p.queue = p.queue[1:]
		} else {
			p.pending, p.waiting = args[0], true
			out.Kind = InputRequired
		}
	case OpOut:
		out = Outcome{Kind: OutputAvailable, Value: args[0]}
	case OpJumpTrue:
		if args[0] != 0 {
			next = args[1]
		}
	case OpJumpFalse:
		if args[0] == 0 {
			next = args[1]
		}
	case OpLess:
		p.mem.Write(args[2], b2c(args[0] < args[1]))
	case OpEqual:
		p.mem.Write(args[2], b2c(args[0] == args[1]))
	case OpAdjustBase:
		p.rb += args[0]
	case OpHalt:
		// stay on the halt instruction
		p.halted = true
		next = p.pc
		out.Kind = ProgramEnded
	}
	p.pc = next
	p.insCount++
	return out, nil
}
