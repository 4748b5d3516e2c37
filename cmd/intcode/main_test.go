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
	"bufio"
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "intcode")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "intcode.toml")
	err = ioutil.WriteFile(fn, []byte("image = \"day9.txt\"\nmode = \"chan\"\ninputs = [1, -2]\nverbosity = 2\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig
	if err = loadConfig(fn, &cfg); err != nil {
		t.Fatalf("%+v", err)
	}
	if cfg.Image != "day9.txt" || cfg.Mode != "chan" || cfg.Verbosity != 2 || len(cfg.Inputs) != 2 || cfg.Inputs[1] != -2 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	// command line flags take precedence
	fl := defaultConfig
	fl.Mode = "stream"
	cfg.set("mode", &fl)
	if cfg.Mode != "stream" || cfg.Image != "day9.txt" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	fn = filepath.Join(dir, "bad.toml")
	if err = ioutil.WriteFile(fn, []byte("colour = \"blue\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err = loadConfig(fn, &cfg); err == nil {
		t.Fatal("expected error on unknown key")
	}
	cfg.Mode = "async"
	if err = cfg.validate(); err == nil {
		t.Fatal("expected error on unknown mode")
	}
}

func TestCellList(t *testing.T) {
	var l cellList
	if err := l.Set("1, 2,-3"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("4"); err != nil {
		t.Fatal(err)
	}
	if s := l.String(); s != "1,2,-3,4" {
		t.Fatalf("unexpected list %s", s)
	}
	if err := l.Set("x"); err == nil {
		t.Fatal("expected error")
	}
}

func newSource(queue []vm.Cell, stdin string, text bool) *source {
	return &source{queue: queue, r: bufio.NewReader(strings.NewReader(stdin)), ascii: text}
}

func TestSource(t *testing.T) {
	src := newSource([]vm.Cell{7}, "1, 2\n3", false)
	for _, exp := range []vm.Cell{7, 1, 2, 3} {
		v, err := src.next()
		if err != nil {
			t.Fatal(err)
		}
		if v != exp {
			t.Fatalf("expected %d, got %d", exp, v)
		}
	}
	if _, err := src.next(); err == nil {
		t.Fatal("expected EOF")
	}

	src = newSource(nil, "ok", true)
	var got []vm.Cell
	for {
		v, err := src.next()
		if err != nil {
			break
		}
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 'o' || got[2] != '\n' {
		t.Fatalf("unexpected input %v", got)
	}

	var echo bytes.Buffer
	src = newSource(nil, "a\r\x04", false)
	src.raw, src.echo = true, &echo
	got = got[:0]
	for {
		v, err := src.next()
		if err != nil {
			break
		}
		got = append(got, v)
	}
	if len(got) != 2 || got[0] != 'a' || got[1] != '\n' || echo.String() != "a\r\n" {
		t.Fatalf("unexpected raw input %v, echo %q", got, echo.String())
	}
}

// reads numbers and outputs their running sum until it reads 0.
var summer = vm.Image{3, 20, 1006, 20, 14, 1, 20, 21, 21, 4, 21, 1105, 1, 0, 99}

func TestRunModes(t *testing.T) {
	type runner func(img vm.Image, src *source, out cellWriter) (vm.Image, error)
	modes := map[string]runner{
		"sync": runSync,
		"chan": runChan,
		"stream": func(img vm.Image, src *source, out cellWriter) (vm.Image, error) {
			return runStream(context.Background(), img, src, out)
		},
	}
	for name, run := range modes {
		t.Run(name, func(t *testing.T) {
			var b bytes.Buffer
			mem, err := run(summer, newSource([]vm.Cell{1, 2}, "3\n0\n", false), newOutput(&b, false))
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if s := b.String(); s != "1\n3\n6\n" {
				t.Fatalf("unexpected output %q", s)
			}
			if mem.Read(21) != 6 {
				t.Fatalf("expected 6 at address 21, got %d", mem.Read(21))
			}

			b.Reset()
			_, err = run(summer, newSource([]vm.Cell{1}, "", false), newOutput(&b, false))
			if errors.Cause(err) != vm.ErrInsufficientInput {
				t.Fatalf("expected ErrInsufficientInput, got %v", err)
			}
			if s := b.String(); s != "1\n" {
				t.Fatalf("unexpected output %q", s)
			}
		})
	}
}

func TestDumpImage(t *testing.T) {
	var b bytes.Buffer
	if err := dumpImage(&b, vm.Image{1, 0, -1, 99}); err != nil {
		t.Fatal(err)
	}
	if s := b.String(); s != "1,0,-1,99\n" {
		t.Fatalf("unexpected dump %q", s)
	}
}
