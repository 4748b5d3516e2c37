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

import (
	"fmt"

	"github.com/pkg/errors"
)

// Malformed program errors. They are returned wrapped in a *MalformedError.
var (
	ErrOpcode  = errors.New("invalid opcode")
	ErrMode    = errors.New("invalid parameter mode")
	ErrAddress = errors.New("memory address out of range")
)

// Communication errors.
var (
	// ErrInputClosed is returned by ChannelComputer and StreamComputer when
	// their input channel gets closed while the program waits for input.
	ErrInputClosed = errors.New("input channel closed while waiting for input")
	// ErrOutputClosed is returned by ChannelComputer when its output
	// channel was closed by the receiving end.
	ErrOutputClosed = errors.New("output channel closed")
	// ErrInsufficientInput is returned by the Run helpers when a program
	// asks for more inputs than were provided.
	ErrInsufficientInput = errors.New("program requires more input")
)

// MalformedError is returned when a program cannot be executed any further.
// PC is the address of the faulty instruction and Ins its raw value.
type MalformedError struct {
	PC  Cell
	Ins Cell
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed program @pc=%d (%d): %v", e.PC, e.Ins, e.Err)
}

// Cause returns the underlying error. See github.com/pkg/errors.
func (e *MalformedError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *MalformedError) Unwrap() error { return e.Err }
