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
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Image encapsulates a VM's memory. As a program image, it is the initial
// memory contents of a processor.
//
// Reading past the end of an image yields 0. Writing past the end grows the
// image, zero filling the gap.
type Image []Cell

// MaxMemory is the maximum size of a processor's memory, in cells. Programs
// writing at or above this address are malformed.
const MaxMemory = 1 << 26

// Read returns the value at address addr, or 0 if addr is out of range. It
// never resizes the image.
func (m Image) Read(addr Cell) Cell {
	if addr < 0 || addr >= Cell(len(m)) {
		return 0
	}
	return m[addr]
}

// Write stores v at address addr, growing the image as needed. addr must be in
// the range [0, MaxMemory).
func (m *Image) Write(addr, v Cell) {
	if n := int(addr) + 1; n > len(*m) {
		*m = append(*m, make(Image, n-len(*m))...)
	}
	(*m)[addr] = v
}

// Clone returns a copy of the image.
func (m Image) Clone() Image {
	c := make(Image, len(m))
	copy(c, m)
	return c
}

// Format writes the image to w in its canonical text form: comma separated
// decimal integers, without a trailing newline.
func (m Image) Format(w io.Writer) error {
	ew, _ := w.(*ici.ErrWriter)
	if ew == nil {
		ew = ici.NewErrWriter(w)
	}
	b := make([]byte, 0, 24)
	for i, v := range m {
		b = b[:0]
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		ew.Write(b)
	}
	return ew.Err
}

func (m Image) String() string {
	var b bytes.Buffer
	m.Format(&b)
	return b.String()
}

// Parse reads a program image in its canonical text form: comma separated
// decimal integers. Blanks around values and a trailing newline are ignored.
func Parse(r io.Reader) (Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return nil, errors.New("empty program image")
	}
	fields := strings.Split(s, ",")
	img := make(Image, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad value at position %d", i)
		}
		img[i] = Cell(n)
	}
	return img, nil
}

// Load loads a program image from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %v", fileName)
	}
	return img, nil
}
