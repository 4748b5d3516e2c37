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

// Package vm implements an Intcode virtual machine.
//
// Intcode programs are plain sequences of integers. The same sequence is both
// the program and its initial memory: instructions may read and overwrite
// themselves, and memory grows on demand past the end of the loaded image.
//
// The core of the package is the Processor and its Step method, which executes
// exactly one instruction and reports one of four outcomes: the instruction
// was handled, the program needs an input, the program produced an output, or
// the program ended. Three adapters build on this single primitive, each with
// its own scheduling contract:
//
//	Computer         resumable, driven by the caller. Resume runs until the
//	                 program halts or runs out of inputs.
//	ChannelComputer  runs to completion in its own goroutine, blocking on an
//	                 input channel and sending outputs on an output channel.
//	StreamComputer   runs as a context aware task and emits lifecycle
//	                 notifications (output, input required, ended) so that a
//	                 consumer can tell "waiting for input" apart from silence.
//
// Inputs may be supplied before or after the program asks for them with the
// same result: values that arrive early are queued by the processor, and a
// request for input that cannot be satisfied is recorded as a pending write
// address that the next input fills.
//
// Malformed programs (unknown opcodes or parameter modes, negative addresses,
// writes at or above MaxMemory)
// are reported as *MalformedError values wrapping ErrOpcode, ErrMode or
// ErrAddress. They are fatal: the processor refuses to move past the faulty
// instruction.
//
// Run, RunParallel and RunStream are convenience wrappers that run a program
// to completion with a fixed set of inputs and collect its outputs.
package vm
