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

// StopReason tells why Computer.Resume returned.
type StopReason int

// Stop reasons.
const (
	// NeedInput means that the program is waiting for more input.
	NeedInput StopReason = iota + 1
	// Ended means that the program has run to completion.
	Ended
)

func (r StopReason) String() string {
	switch r {
	case NeedInput:
		return "input required"
	case Ended:
		return "program ended"
	}
	return "unknown"
}

// Result is the output of running a Computer as far as possible.
type Result struct {
	Reason  StopReason
	Outputs []Cell
}

// Computer is a resumable Intcode computer driven by the caller. It never
// blocks: when the program needs input that has not been provided, Resume
// returns and can be called again later with more inputs.
type Computer struct {
	p *Processor
}

// NewComputer returns a new computer running img.
func NewComputer(img Image) *Computer {
	return &Computer{NewProcessor(img)}
}

// Resume runs the program until it ends or requests an input that is neither
// in inputs nor left over from a previous call. It returns the stop reason
// along with the outputs produced during this call.
//
// Calling Resume after the program has ended is a no-op that returns Ended
// and no outputs.
//
// If the program is malformed, Resume returns the outputs produced so far and
// a *MalformedError. The computer cannot be resumed past that point.
func (c *Computer) Resume(inputs ...Cell) (Result, error) {
	var res Result
	if c.p.Halted() {
		res.Reason = Ended
		return res, nil
	}
	// The first input fills a pending request, if any. The others are queued
	// and consumed by input instructions without suspending.
	for _, v := range inputs {
		c.p.InputAvailable(v)
	}
	for {
		o, err := c.p.Step()
		if err != nil {
			return res, err
		}
		switch o.Kind {
		case InputRequired:
			res.Reason = NeedInput
			return res, nil
		case OutputAvailable:
			res.Outputs = append(res.Outputs, o.Value)
		case ProgramEnded:
			res.Reason = Ended
			return res, nil
		}
	}
}

// Done returns true once the program has ended.
func (c *Computer) Done() bool { return c.p.Halted() }

// Peek returns the value at memory address addr.
func (c *Computer) Peek(addr Cell) Cell { return c.p.Peek(addr) }

// Memory returns a copy of the computer memory.
func (c *Computer) Memory() Image { return c.p.Memory() }
