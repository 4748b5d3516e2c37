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

// ChannelOption configures a ChannelComputer.
type ChannelOption func(*ChannelComputer)

// CloseOutput makes Run close the output channel upon return, so that the
// receiving end can range over it. The default is to leave it open, which
// allows several computers to share the same output channel.
func CloseOutput() ChannelOption {
	return func(c *ChannelComputer) { c.closeOut = true }
}

// ChannelComputer is an Intcode computer meant to run in its own goroutine. It
// communicates with the outside world through a pair of channels.
type ChannelComputer struct {
	p        *Processor
	in       <-chan Cell
	out      chan<- Cell
	closeOut bool
}

// NewChannelComputer returns a new computer running img. It reads inputs from
// in and sends outputs to out.
func NewChannelComputer(img Image, in <-chan Cell, out chan<- Cell, opts ...ChannelOption) *ChannelComputer {
	c := &ChannelComputer{
		p:   NewProcessor(img),
		in:  in,
		out: out,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ChannelComputer) send(v Cell) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Wrapf(ErrOutputClosed, "%v", e)
		}
	}()
	c.out <- v
	return nil
}

// Run executes the program to completion. It blocks receiving from the input
// channel whenever the program needs input, and blocks sending each output.
//
// The channels must stay open for the whole life of the program: if the input
// channel gets closed while Run waits on it, Run returns ErrInputClosed. If
// the output channel has been closed, Run returns ErrOutputClosed. Both
// errors, like malformed program errors, are final.
func (c *ChannelComputer) Run() (err error) {
	if c.closeOut {
		defer func() {
			if errors.Cause(err) != ErrOutputClosed {
				close(c.out)
			}
		}()
	}
	var o Outcome
	for {
		if o, err = c.p.Step(); err != nil {
			return err
		}
		switch o.Kind {
		case InputRequired:
			v, ok := <-c.in
			if !ok {
				return errors.Wrapf(ErrInputClosed, "pc=%d", c.p.PC())
			}
			c.p.InputAvailable(v)
		case OutputAvailable:
			if err = c.send(o.Value); err != nil {
				return err
			}
		case ProgramEnded:
			return nil
		}
	}
}

// Peek returns the value at memory address addr. It must not be called while
// Run is in progress.
func (c *ChannelComputer) Peek(addr Cell) Cell { return c.p.Peek(addr) }

// Memory returns a copy of the computer's memory. It must not be called while
// Run is in progress.
func (c *ChannelComputer) Memory() Image { return c.p.Memory() }
