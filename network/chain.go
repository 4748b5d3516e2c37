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

package network

import (
	"context"
	"runtime"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// link forwards the outputs of one amplifier to the input of the next.
type link struct {
	src    <-chan vm.Cell
	dst    chan<- vm.Cell
	dstEnd <-chan struct{}
	last   vm.Cell
	n      int
}

func (l *link) record(v vm.Cell) {
	l.last = v
	l.n++
}

// run returns when src is closed. dst is closed on return. Values are dropped
// once the receiving amplifier has stopped.
func (l *link) run(ctx context.Context) {
	defer func() {
		close(l.dst)
		for v := range l.src {
			l.record(v)
		}
	}()
	for {
		select {
		case v, ok := <-l.src:
			if !ok {
				return
			}
			l.record(v)
			select {
			case l.dst <- v:
			case <-l.dstEnd:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Chain runs one amplifier per phase setting, all loaded with img. Amplifier k
// first receives phases[k], then every output of amplifier k-1. The first
// amplifier receives seed after its phase, then the outputs of the last
// amplifier. Chain returns the last value output by the last amplifier once
// all amplifiers have halted.
//
// If any amplifier fails, the whole chain is torn down and the first error is
// returned.
func Chain(ctx context.Context, img vm.Image, phases []vm.Cell, seed vm.Cell) (vm.Cell, error) {
	n := len(phases)
	if n == 0 {
		return 0, errors.WithStack(ErrNoAmplifier)
	}
	g, gctx := errgroup.WithContext(ctx)
	in := make([]chan vm.Cell, n)
	out := make([]chan vm.Cell, n)
	done := make([]chan struct{}, n)
	for k := range phases {
		in[k] = make(chan vm.Cell, 2)
		in[k] <- phases[k]
		out[k] = make(chan vm.Cell)
		done[k] = make(chan struct{})
	}
	in[0] <- seed

	links := make([]*link, n)
	for k := range links {
		next := (k + 1) % n
		l := &link{src: out[k], dst: in[next], dstEnd: done[next]}
		links[k] = l
		g.Go(func() error {
			l.run(gctx)
			return nil
		})
	}
	for k := range phases {
		k := k
		c := vm.NewChannelComputer(img, in[k], out[k], vm.CloseOutput())
		g.Go(func() error {
			defer close(done[k])
			if err := c.Run(); err != nil {
				return errors.Wrapf(err, "amplifier %d", k)
			}
			log.Debugf("amplifier %d halted", k)
			return nil
		})
	}

	err := g.Wait()
	if ctx.Err() != nil {
		return 0, errors.Wrap(ctx.Err(), "amplifier chain canceled")
	}
	if err != nil {
		return 0, err
	}
	last := links[n-1]
	if last.n == 0 {
		return 0, errors.WithStack(ErrNoOutput)
	}
	return last.last, nil
}

// MaxChain runs Chain for every permutation of settings and returns the
// highest signal along with the phase settings that produced it. At most
// workers chains run concurrently. If workers <= 0, runtime.NumCPU() is used.
//
// If several permutations yield the same highest signal, which one is returned
// is unspecified.
func MaxChain(ctx context.Context, img vm.Image, settings []vm.Cell, seed vm.Cell, workers int) (best vm.Cell, phases []vm.Cell, err error) {
	if len(settings) == 0 {
		return 0, nil, errors.WithStack(ErrNoAmplifier)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var mu sync.Mutex
	permute(settings, func(p []vm.Cell) bool {
		if gctx.Err() != nil {
			return false
		}
		g.Go(func() error {
			v, err := Chain(gctx, img, p, seed)
			if err != nil {
				return errors.Wrapf(err, "phases %v", p)
			}
			mu.Lock()
			if phases == nil || v > best {
				best, phases = v, p
			}
			mu.Unlock()
			return nil
		})
		return true
	})
	if err = g.Wait(); err != nil {
		return 0, nil, err
	}
	if ctx.Err() != nil {
		return 0, nil, errors.Wrap(ctx.Err(), "phase search canceled")
	}
	return best, phases, nil
}

// permute calls f with a fresh copy of every permutation of a, using Heap's
// algorithm. It stops early if f returns false.
func permute(a []vm.Cell, f func([]vm.Cell) bool) {
	a = append([]vm.Cell(nil), a...)
	c := make([]int, len(a))
	if !f(append([]vm.Cell(nil), a...)) {
		return
	}
	for i := 1; i < len(a); {
		if c[i] >= i {
			c[i] = 0
			i++
			continue
		}
		if i%2 == 0 {
			a[0], a[i] = a[i], a[0]
		} else {
			a[c[i]], a[i] = a[i], a[c[i]]
		}
		if !f(append([]vm.Cell(nil), a...)) {
			return
		}
		c[i]++
		i = 1
	}
}
