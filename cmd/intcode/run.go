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

package main

import (
	"context"
	"io"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func inputError(err error) error {
	if err == io.EOF {
		return errors.Wrap(vm.ErrInsufficientInput, "end of input")
	}
	return errors.Wrap(err, "input failed")
}

func runSync(img vm.Image, src *source, out cellWriter) (vm.Image, error) {
	c := vm.NewComputer(img)
	var in []vm.Cell
	for {
		res, err := c.Resume(in...)
		if werr := writeCells(out, res.Outputs); werr != nil && err == nil {
			err = werr
		}
		if err != nil || res.Reason == vm.Ended {
			return c.Memory(), err
		}
		v, err := src.next()
		if err != nil {
			return c.Memory(), inputError(err)
		}
		in = append(in[:0], v)
	}
}

func runChan(img vm.Image, src *source, out cellWriter) (vm.Image, error) {
	in := make(chan vm.Cell)
	outc := make(chan vm.Cell)
	stop := make(chan struct{})
	c := vm.NewChannelComputer(img, in, outc, vm.CloseOutput())
	errc := make(chan error, 1)
	go func() {
		errc <- c.Run()
		close(stop)
	}()

	var ierr error
	go func() {
		defer close(in)
		for {
			v, err := src.next()
			if err != nil {
				ierr = err
				return
			}
			select {
			case in <- v:
			case <-stop:
				return
			}
		}
	}()

	var werr error
	for v := range outc {
		if werr == nil {
			werr = out.WriteCell(v)
		}
	}
	err := <-errc
	if errors.Cause(err) == vm.ErrInputClosed {
		// in is closed only after ierr is set.
		err = inputError(ierr)
	}
	if err == nil {
		err = werr
	}
	return c.Memory(), err
}

func runStream(ctx context.Context, img vm.Image, src *source, out cellWriter) (vm.Image, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	in := make(chan vm.Cell, 1)
	notes := make(chan vm.Notification)
	s := vm.NewStreamComputer(img, in, notes)
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	var ierr, werr error
	for n := range notes {
		switch n.Kind {
		case vm.NotifyOutput:
			if werr == nil {
				werr = out.WriteCell(n.Value)
			}
		case vm.NotifyInputRequired:
			v, err := src.next()
			if err != nil {
				ierr = err
				cancel()
				continue
			}
			in <- v
		case vm.NotifyEnded:
			log.Debug("program ended")
		}
	}
	err := <-errc
	if ierr != nil {
		err = inputError(ierr)
	}
	if err == nil {
		err = werr
	}
	return s.Memory(), err
}
