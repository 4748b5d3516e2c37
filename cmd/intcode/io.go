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
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// source supplies program inputs: queued values first, then values read from r.
type source struct {
	queue []vm.Cell
	r     *bufio.Reader
	ascii bool
	// raw terminal: read one key at a time and echo it to echo.
	raw  bool
	echo io.Writer
}

func (s *source) next() (vm.Cell, error) {
	for len(s.queue) == 0 {
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	v := s.queue[0]
	s.queue = s.queue[1:]
	return v, nil
}

func (s *source) fill() error {
	if s.raw {
		b, err := s.r.ReadByte()
		if err != nil {
			return err
		}
		switch b {
		case 4: // CTRL-D
			return io.EOF
		case '\r':
			b = '\n'
		}
		if b == '\n' {
			_, err = io.WriteString(s.echo, "\r\n")
		} else {
			_, err = s.echo.Write([]byte{b})
		}
		s.queue = append(s.queue, vm.Cell(b))
		return err
	}
	line, err := s.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return err
	}
	if s.ascii {
		s.queue = append(s.queue, ascii.Encode(line)...)
		return nil
	}
	fs := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	for _, f := range fs {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "bad input value %q", f)
		}
		s.queue = append(s.queue, vm.Cell(n))
	}
	return nil
}

type cellWriter interface {
	WriteCell(v vm.Cell) error
}

// numWriter writes output values in decimal, one per line.
type numWriter struct {
	w   *ici.ErrWriter
	buf []byte
}

func (w *numWriter) WriteCell(v vm.Cell) error {
	w.buf = strconv.AppendInt(w.buf[:0], int64(v), 10)
	w.buf = append(w.buf, '\n')
	_, err := w.w.Write(w.buf)
	return err
}

func newOutput(w io.Writer, text bool) cellWriter {
	if text {
		return ascii.NewWriter(w)
	}
	return &numWriter{w: ici.NewErrWriter(w)}
}

func writeCells(w cellWriter, out []vm.Cell) error {
	for _, v := range out {
		if err := w.WriteCell(v); err != nil {
			return err
		}
	}
	return nil
}
