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

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// NATAddress is the address of the NAT in a Star network.
const NATAddress = 255

// Packet is a message routed between nodes.
type Packet struct {
	Dest vm.Cell
	X, Y vm.Cell
}

type node struct {
	c   *vm.Computer
	in  []vm.Cell
	out []vm.Cell // incomplete packet
}

// Star is a network of nodes running the same program. Each node first
// receives its address, then packets as X, Y input pairs, or -1 when no packet
// is waiting. Nodes send packets by outputting the destination address, X and Y.
//
// Packets sent to NATAddress are kept by the NAT, which only remembers the
// last one. Whenever a full round goes by without any node sending anything,
// the NAT sends its packet to node 0.
type Star struct {
	nodes  []*node
	nat    *Packet
	rounds int
}

// NewStar returns a new network of size nodes loaded with img.
func NewStar(img vm.Image, size int) *Star {
	s := &Star{nodes: make([]*node, size)}
	for i := range s.nodes {
		s.nodes[i] = &node{c: vm.NewComputer(img), in: []vm.Cell{vm.Cell(i)}}
	}
	return s
}

// Rounds returns the number of rounds run so far.
func (s *Star) Rounds() int { return s.rounds }

// NAT returns the last packet received by the NAT, if any.
func (s *Star) NAT() (Packet, bool) {
	if s.nat == nil {
		return Packet{}, false
	}
	return *s.nat, true
}

// round resumes every node in address order with its pending inputs and
// returns all complete packets sent.
func (s *Star) round() ([]Packet, error) {
	var ps []Packet
	for addr, n := range s.nodes {
		in := n.in
		if len(in) == 0 {
			in = []vm.Cell{-1}
		}
		n.in = nil
		res, err := n.c.Resume(in...)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", addr)
		}
		if res.Reason == vm.Ended {
			return nil, errors.Wrapf(ErrNodeHalted, "node %d", addr)
		}
		n.out = append(n.out, res.Outputs...)
		for len(n.out) >= 3 {
			ps = append(ps, Packet{n.out[0], n.out[1], n.out[2]})
			n.out = n.out[3:]
		}
	}
	s.rounds++
	return ps, nil
}

func (s *Star) idle() bool {
	for _, n := range s.nodes {
		if len(n.out) > 0 {
			return false
		}
	}
	return true
}

// Run runs the network until the NAT sends the same Y value to node 0 twice in
// a row. It returns the Y value of the first packet ever sent to the NAT and
// that repeated Y value.
func (s *Star) Run(ctx context.Context) (first, repeated vm.Cell, err error) {
	var (
		gotFirst bool
		lastY    vm.Cell
		sent     bool
		ps       []Packet
	)
	for {
		if err = ctx.Err(); err != nil {
			return 0, 0, errors.Wrap(err, "network canceled")
		}
		ps, err = s.round()
		if err != nil {
			return 0, 0, err
		}
		if len(ps) == 0 && s.idle() {
			if s.nat == nil {
				return 0, 0, errors.Wrapf(ErrIdle, "round %d", s.rounds)
			}
			p := *s.nat
			if sent && p.Y == lastY {
				log.Debugf("NAT sent Y=%d twice in a row after %d rounds", p.Y, s.rounds)
				return first, p.Y, nil
			}
			log.Debugf("network idle, NAT sends X=%d Y=%d to node 0", p.X, p.Y)
			lastY, sent = p.Y, true
			p.Dest = 0
			ps = append(ps, p)
		}
		for _, p := range ps {
			if p.Dest == NATAddress {
				if !gotFirst {
					first, gotFirst = p.Y, true
				}
				log.Debugf("NAT received X=%d Y=%d", p.X, p.Y)
				p := p
				s.nat = &p
				continue
			}
			if p.Dest < 0 || p.Dest >= vm.Cell(len(s.nodes)) {
				return 0, 0, errors.Wrapf(ErrUnknownAddress, "%d", p.Dest)
			}
			n := s.nodes[p.Dest]
			n.in = append(n.in, p.X, p.Y)
		}
	}
}
