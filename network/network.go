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

// Package network wires several Intcode computers together.
//
// Chain connects amplifiers in a loop where each computer feeds its outputs to
// the next one and the last computer feeds the first. MaxChain searches the
// phase settings that yield the highest signal. Both run every computer in its
// own goroutine.
//
// Star runs a packet switched network of resumable computers in lock step
// rounds, with a NAT that wakes up the network when it goes idle.
package network

import (
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.network")

// Errors returned by the network types.
var (
	ErrNoAmplifier    = errors.New("no amplifier")
	ErrNoOutput       = errors.New("no output from last amplifier")
	ErrUnknownAddress = errors.New("unknown destination address")
	ErrNodeHalted     = errors.New("node halted")
	ErrIdle           = errors.New("network idle and NAT empty")
)
