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
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	debug bool
	log   = commonlog.GetLogger("intcode")
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	var me *vm.MalformedError
	if errors.As(err, &me) {
		fmt.Fprintf(os.Stderr, "PC: %v (%v)\n", me.PC, me.Ins)
	}
	os.Exit(1)
}

func setupIO(raw bool) (rawtty bool, tearDown func()) {
	if !raw {
		return false, nil
	}
	tearDown, err := setRawIO()
	if err != nil {
		log.Warningf("raw terminal IO disabled: %v", err)
		return false, nil
	}
	return true, tearDown
}

func dumpImage(w io.Writer, mem vm.Image) error {
	ew := ici.NewErrWriter(w)
	if err := mem.Format(ew); err != nil {
		return err
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}

func main() {
	var (
		err error
		mem vm.Image
	)

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if ferr := stdout.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		atExit(err)
	}()

	cfg := defaultConfig
	fl := defaultConfig
	var cfgFile = flag.String("config", "", "load settings from TOML file `filename`")
	var disasm = flag.Bool("disasm", false, "disassemble the program image instead of running it")
	flag.StringVar(&fl.Image, "image", fl.Image, "load program image from file `filename`")
	flag.StringVar(&fl.Mode, "mode", fl.Mode, "computer type: sync, chan or stream")
	flag.Var(&fl.Inputs, "in", "comma separated input `values` (can be specified multiple times)")
	flag.BoolVar(&fl.ASCII, "ascii", false, "ASCII mode: read input lines as text, print output as text")
	flag.BoolVar(&fl.Raw, "raw", false, "raw terminal IO in ASCII mode")
	flag.BoolVar(&fl.Dump, "dump", false, "print the memory image upon exit")
	flag.BoolVar(&fl.Debug, "debug", false, "enable debug diagnostics")
	flag.IntVar(&fl.Verbosity, "v", 0, "log verbosity")

	flag.Parse()

	if *cfgFile != "" {
		if err = loadConfig(*cfgFile, &cfg); err != nil {
			return
		}
	}
	flag.Visit(func(f *flag.Flag) { cfg.set(f.Name, &fl) })
	debug = cfg.Debug
	commonlog.Configure(cfg.Verbosity, nil)
	if err = cfg.validate(); err != nil {
		return
	}

	img, err := vm.Load(cfg.Image)
	if err != nil {
		return
	}
	log.Infof("loaded %d cells from %s", len(img), cfg.Image)

	if *disasm {
		err = asm.DisassembleAll(img, 0, stdout)
		return
	}

	src := &source{
		queue: append([]vm.Cell(nil), cfg.Inputs...),
		r:     bufio.NewReader(os.Stdin),
		ascii: cfg.ASCII,
		echo:  os.Stdout,
	}
	var output io.Writer = stdout
	if cfg.ASCII {
		rawtty, ioTearDownFn := setupIO(cfg.Raw)
		if ioTearDownFn != nil {
			defer ioTearDownFn()
		}
		if rawtty {
			// keys are echoed as they are typed, do not buffer output
			src.raw = true
			output = os.Stdout
		}
	}
	out := newOutput(output, cfg.ASCII)

	log.Debugf("running in %s mode", cfg.Mode)
	switch cfg.Mode {
	case "chan":
		mem, err = runChan(img, src, out)
	case "stream":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		mem, err = runStream(ctx, img, src, out)
	default:
		mem, err = runSync(img, src, out)
	}
	if err == nil && cfg.Dump {
		err = dumpImage(stdout, mem)
	}
}
