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
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type cellList []vm.Cell

func (l *cellList) String() string {
	s := make([]string, len(*l))
	for i, v := range *l {
		s[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(s, ",")
}

func (l *cellList) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "bad input value %q", f)
		}
		*l = append(*l, vm.Cell(n))
	}
	return nil
}

func (l *cellList) Get() interface{} { return *l }

type config struct {
	Image     string   `toml:"image"`
	Mode      string   `toml:"mode"`
	Inputs    cellList `toml:"inputs"`
	ASCII     bool     `toml:"ascii"`
	Raw       bool     `toml:"raw"`
	Dump      bool     `toml:"dump"`
	Debug     bool     `toml:"debug"`
	Verbosity int      `toml:"verbosity"`
}

var defaultConfig = config{
	Image: "input.txt",
	Mode:  "sync",
}

func loadConfig(fileName string, c *config) error {
	md, err := toml.DecodeFile(fileName, c)
	if err != nil {
		return errors.Wrapf(err, "failed to load config file %s", fileName)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.Errorf("%s: unknown configuration key %q", fileName, keys[0].String())
	}
	return nil
}

// set copies the value of the named flag from f to c.
func (c *config) set(name string, f *config) {
	switch name {
	case "image":
		c.Image = f.Image
	case "mode":
		c.Mode = f.Mode
	case "in":
		c.Inputs = f.Inputs
	case "ascii":
		c.ASCII = f.ASCII
	case "raw":
		c.Raw = f.Raw
	case "dump":
		c.Dump = f.Dump
	case "debug":
		c.Debug = f.Debug
	case "v":
		c.Verbosity = f.Verbosity
	}
}

func (c *config) validate() error {
	switch c.Mode {
	case "sync", "chan", "stream":
		return nil
	}
	return errors.Errorf("unknown mode %q", c.Mode)
}
