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

package vm_test

import (
	"context"
	"testing"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

const timeout = 5 * time.Second

// doubles its inputs until it reads a 0.
var doubler = vm.Image{3, 15, 1006, 15, 14, 1002, 15, 2, 16, 4, 16, 1105, 1, 0, 99}

func recvTimeout(t *testing.T, c <-chan vm.Cell) vm.Cell {
	t.Helper()
	select {
	case v := <-c:
		return v
	case <-time.After(timeout):
		t.Fatal("receive timed out")
	}
	return 0
}

func TestChannelComputer(t *testing.T) {
	in := make(chan vm.Cell)
	out := make(chan vm.Cell)
	c := vm.NewChannelComputer(doubler, in, out)
	errc := make(chan error, 1)
	go func() { errc <- c.Run() }()

	for _, v := range (C{1, -4, 21}) {
		in <- v
		if r := recvTimeout(t, out); r != v*2 {
			t.Fatalf("expected %d, got %d", v*2, r)
		}
	}
	in <- 0
	if err := <-errc; err != nil {
		t.Fatalf("%+v", err)
	}
	if v := c.Peek(15); v != 0 {
		t.Errorf("expected mem[15] == 0, got %d", v)
	}
}

func TestChannelComputer_closeOutput(t *testing.T) {
	in := make(chan vm.Cell, 3)
	in <- 3
	in <- 4
	in <- 0
	out := make(chan vm.Cell)
	c := vm.NewChannelComputer(doubler, in, out, vm.CloseOutput())
	errc := make(chan error, 1)
	go func() { errc <- c.Run() }()
	var res C
	for v := range out {
		res = append(res, v)
	}
	if err := <-errc; err != nil {
		t.Fatalf("%+v", err)
	}
	if !equal(res, C{6, 8}) {
		t.Errorf("expected [6 8], got %v", res)
	}
}

func TestChannelComputer_inputClosed(t *testing.T) {
	in := make(chan vm.Cell, 1)
	in <- 5
	close(in)
	out := make(chan vm.Cell, 10)
	err := vm.NewChannelComputer(doubler, in, out).Run()
	if errors.Cause(err) != vm.ErrInputClosed {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
	if v := <-out; v != 10 {
		t.Errorf("expected 10, got %d", v)
	}
}

func TestChannelComputer_outputClosed(t *testing.T) {
	in := make(chan vm.Cell)
	out := make(chan vm.Cell)
	close(out)
	err := vm.NewChannelComputer(quine, in, out, vm.CloseOutput()).Run()
	if errors.Cause(err) != vm.ErrOutputClosed {
		t.Fatalf("expected ErrOutputClosed, got %v", err)
	}
}

func TestRunParallel(t *testing.T) {
	out, err := vm.RunParallel(quine)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !equal(out, quine) {
		t.Errorf("expected %v, got %v", quine, out)
	}
	out, err = vm.RunParallel(doubler, 2, 3)
	if errors.Cause(err) != vm.ErrInsufficientInput {
		t.Errorf("expected ErrInsufficientInput, got %v", err)
	}
	if !equal(out, C{4, 6}) {
		t.Errorf("expected [4 6], got %v", out)
	}
}

func collect(t *testing.T, c <-chan vm.Notification) []vm.Notification {
	t.Helper()
	var ns []vm.Notification
	deadline := time.After(timeout)
	for {
		select {
		case n, ok := <-c:
			if !ok {
				return ns
			}
			ns = append(ns, n)
		case <-deadline:
			t.Fatal("notification stream not closed")
		}
	}
}

func TestStreamComputer(t *testing.T) {
	in := make(chan vm.Cell, 2)
	out := make(chan vm.Notification)
	s := vm.NewStreamComputer(doubler, in, out)
	errc := make(chan error, 1)
	go func() { errc <- s.Run(context.Background()) }()

	// nothing sent yet: the computer must tell us it is waiting
	if n := <-out; n.Kind != vm.NotifyInputRequired {
		t.Fatalf("expected input required, got %v", n)
	}
	in <- 7
	if n := <-out; n.Kind != vm.NotifyOutput || n.Value != 14 {
		t.Fatalf("expected output 14, got %v", n)
	}
	in <- 0
	ns := collect(t, out)
	expected := []vm.Notification{{Kind: vm.NotifyInputRequired}, {Kind: vm.NotifyEnded}}
	if len(ns) != len(expected) || ns[0] != expected[0] || ns[1] != expected[1] {
		t.Errorf("expected %v, got %v", expected, ns)
	}
	if err := <-errc; err != nil {
		t.Fatalf("%+v", err)
	}
}

func TestStreamComputer_inputClosed(t *testing.T) {
	in := make(chan vm.Cell)
	close(in)
	out := make(chan vm.Notification, 10)
	err := vm.NewStreamComputer(doubler, in, out).Run(context.Background())
	if errors.Cause(err) != vm.ErrInputClosed {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
	if ns := collect(t, out); len(ns) != 1 || ns[0].Kind != vm.NotifyInputRequired {
		t.Errorf("expected a single input required notification, got %v", ns)
	}
}

func TestStreamComputer_cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan vm.Cell)
	out := make(chan vm.Notification, 10)
	errc := make(chan error, 1)
	go func() { errc <- vm.NewStreamComputer(doubler, in, out).Run(ctx) }()
	if n := <-out; n.Kind != vm.NotifyInputRequired {
		t.Fatalf("expected input required, got %v", n)
	}
	cancel()
	select {
	case err := <-errc:
		if errors.Cause(err) != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(timeout):
		t.Fatal("computer not canceled")
	}
	if ns := collect(t, out); len(ns) != 0 {
		t.Errorf("expected no more notifications, got %v", ns)
	}
}

func TestRunStream(t *testing.T) {
	ctx := context.Background()
	out, err := vm.RunStream(ctx, quine)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !equal(out, quine) {
		t.Errorf("expected %v, got %v", quine, out)
	}
	out, err = vm.RunStream(ctx, doubler, 5, 6, 0)
	if err != nil || !equal(out, C{10, 12}) {
		t.Errorf("expected [10 12], got %v, %v", out, err)
	}
	out, err = vm.RunStream(ctx, doubler, 5)
	if errors.Cause(err) != vm.ErrInsufficientInput || !equal(out, C{10}) {
		t.Errorf("expected ErrInsufficientInput and [10], got %v, %v", out, err)
	}
}
