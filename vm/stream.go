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
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// NotificationKind identifies a StreamComputer lifecycle notification.
type NotificationKind int

// Notification kinds.
const (
	// NotifyOutput carries a value output by the program.
	NotifyOutput NotificationKind = iota + 1
	// NotifyInputRequired is sent when the program waits for input. An input
	// sent beforehand may already satisfy it.
	NotifyInputRequired
	// NotifyEnded is sent once the program has run to completion.
	NotifyEnded
)

// Notification is sent by a StreamComputer to keep its consumer informed of
// what happens in the computer. Value is only set for NotifyOutput.
type Notification struct {
	Kind  NotificationKind
	Value Cell
}

func (n Notification) String() string {
	switch n.Kind {
	case NotifyOutput:
		return "output " + strconv.FormatInt(int64(n.Value), 10)
	case NotifyInputRequired:
		return "input required"
	case NotifyEnded:
		return "program ended"
	}
	return "unknown notification"
}

// StreamComputer is an Intcode computer run as a context aware task. Unlike
// ChannelComputer, it reports lifecycle events on its output stream, so that
// consumers can distinguish a program waiting for input from a program that
// is just busy.
type StreamComputer struct {
	p   *Processor
	in  <-chan Cell
	out chan<- Notification
}

// NewStreamComputer returns a new computer running img. It reads inputs from
// in and sends notifications to out.
func NewStreamComputer(img Image, in <-chan Cell, out chan<- Notification) *StreamComputer {
	return &StreamComputer{
		p:   NewProcessor(img),
		in:  in,
		out: out,
	}
}

func (s *StreamComputer) notify(ctx context.Context, n Notification) error {
	select {
	case s.out <- n:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "stream computer canceled")
	}
}

// Run executes the program to completion. The only point where it waits for
// the outside world is when the program needs input: it then sends a
// NotifyInputRequired notification and awaits the next value on the input
// stream. Upon completion, it sends NotifyEnded.
//
// Run closes the output stream when it returns, whatever the reason.
//
// If the input stream is closed while Run awaits a value, Run fails with
// ErrInputClosed. Canceling ctx is the graceful way to stop a computer: Run
// then returns the context error and NotifyEnded is never sent.
func (s *StreamComputer) Run(ctx context.Context) error {
	defer close(s.out)
	for {
		o, err := s.p.Step()
		if err != nil {
			return err
		}
		switch o.Kind {
		case InputRequired:
			if err = s.notify(ctx, Notification{Kind: NotifyInputRequired}); err != nil {
				return err
			}
			select {
			case v, ok := <-s.in:
				if !ok {
					return errors.Wrapf(ErrInputClosed, "pc=%d", s.p.PC())
				}
				s.p.InputAvailable(v)
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "stream computer canceled")
			}
		case OutputAvailable:
			if err = s.notify(ctx, Notification{Kind: NotifyOutput, Value: o.Value}); err != nil {
				return err
			}
		case ProgramEnded:
			return s.notify(ctx, Notification{Kind: NotifyEnded})
		}
	}
}

// Peek returns the value at memory address addr. It must not be called while
// Run is in progress.
func (s *StreamComputer) Peek(addr Cell) Cell { return s.p.Peek(addr) }

// Memory returns a copy of the computer's memory. It must not be called while
// Run is in progress.
func (s *StreamComputer) Memory() Image { return s.p.Memory() }
