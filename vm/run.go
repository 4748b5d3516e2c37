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

	"github.com/pkg/errors"
)

// Run runs img to completion on the calling goroutine with the given inputs
// and returns all its outputs. If the program needs more inputs than
// provided, the outputs produced so far are returned along with
// ErrInsufficientInput.
func Run(img Image, inputs ...Cell) ([]Cell, error) {
	res, err := NewComputer(img).Resume(inputs...)
	if err != nil {
		return res.Outputs, err
	}
	if res.Reason != Ended {
		return res.Outputs, errors.WithStack(ErrInsufficientInput)
	}
	return res.Outputs, nil
}

// RunParallel is like Run, but runs the program on a ChannelComputer in its
// own goroutine.
func RunParallel(img Image, inputs ...Cell) ([]Cell, error) {
	in := make(chan Cell, len(inputs))
	for _, v := range inputs {
		in <- v
	}
	// no more inputs will come: a program asking for more fails instead of
	// blocking forever.
	close(in)

	out := make(chan Cell)
	errc := make(chan error, 1)
	c := NewChannelComputer(img, in, out, CloseOutput())
	go func() { errc <- c.Run() }()

	var outputs []Cell
	for v := range out {
		outputs = append(outputs, v)
	}
	err := <-errc
	if errors.Cause(err) == ErrInputClosed {
		err = errors.WithStack(ErrInsufficientInput)
	}
	return outputs, err
}

// RunStream is like Run, but runs the program on a StreamComputer. The
// computer is canceled if ctx is done before the program ends.
func RunStream(ctx context.Context, img Image, inputs ...Cell) ([]Cell, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan Cell, len(inputs))
	for _, v := range inputs {
		in <- v
	}
	out := make(chan Notification)
	errc := make(chan error, 1)
	s := NewStreamComputer(img, in, out)
	go func() { errc <- s.Run(ctx) }()

	var (
		outputs  []Cell
		requests int
		starved  bool
	)
	for n := range out {
		switch n.Kind {
		case NotifyOutput:
			outputs = append(outputs, n.Value)
		case NotifyInputRequired:
			// each request consumes one buffered input
			requests++
			if requests > len(inputs) && !starved {
				starved = true
				cancel()
			}
		}
	}
	err := <-errc
	if starved {
		return outputs, errors.WithStack(ErrInsufficientInput)
	}
	return outputs, err
}
