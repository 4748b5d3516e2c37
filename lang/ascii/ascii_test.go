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

package ascii_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func cellsEqual(a, b []vm.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEncode(t *testing.T) {
	var tests = [...]struct {
		in  string
		exp []vm.Cell
	}{
		{"", []vm.Cell{'\n'}},
		{"NOT A J", []vm.Cell{'N', 'O', 'T', ' ', 'A', ' ', 'J', '\n'}},
		{"WALK\n", []vm.Cell{'W', 'A', 'L', 'K', '\n'}},
	}
	for _, test := range tests {
		if got := ascii.Encode(test.in); !cellsEqual(got, test.exp) {
			t.Errorf("Encode(%q): expected %v, got %v", test.in, test.exp, got)
		}
	}
	got := ascii.EncodeLines("A,B", "L,4")
	if exp := []vm.Cell{'A', ',', 'B', '\n', 'L', ',', '4', '\n'}; !cellsEqual(got, exp) {
		t.Errorf("EncodeLines: expected %v, got %v", exp, got)
	}
}

func TestDecode(t *testing.T) {
	text, extra := ascii.Decode([]vm.Cell{'o', 'k', '\n', 19350938, -1})
	if text != "ok\n" {
		t.Errorf("expected text %q, got %q", "ok\n", text)
	}
	if !cellsEqual(extra, []vm.Cell{19350938, -1}) {
		t.Errorf("unexpected extra values %v", extra)
	}
	if text, extra = ascii.Decode(nil); text != "" || extra != nil {
		t.Errorf("expected empty results, got %q, %v", text, extra)
	}
}

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	w := ascii.NewWriter(&b)
	if err := w.WriteCells([]vm.Cell{'#', '.', 1000, '#', '\n', -1, 19350938}); err != nil {
		t.Fatal(err)
	}
	exp := "#.\n1000\n#\n-1\n19350938\n"
	if s := b.String(); s != exp {
		t.Fatalf("Expected:\n%s\ngot: %s", strconv.Quote(exp), strconv.Quote(s))
	}
}

type failWriter int

func (n *failWriter) Write(p []byte) (int, error) {
	if *n == 0 {
		return 0, errors.New("disk full")
	}
	*n--
	return len(p), nil
}

func TestWriter_error(t *testing.T) {
	fw := failWriter(1)
	w := ascii.NewWriter(&fw)
	if err := w.WriteCells([]vm.Cell{'a', 'b', 'c'}); err == nil {
		t.Fatal("expected write error")
	}
	if err := w.Err(); err == nil || errors.Cause(err).Error() != "disk full" {
		t.Fatalf("unexpected error %v", err)
	}
}

// echo reads a line and writes it back in upper case, followed by its length.
const echo = `
	.equ n 100	( line length )
	.equ c 101	( current char )
	.equ t 102	( test result )
:read
	in c
	eq c #10 t
	jt t #done
	lt c #97 t
	jt t #store
	add c #-32 c
:store
	out c
	add n #1 n
	jt #1 #read
:done
	out #10
	add n #1000 n
	out n
	hlt
`

func TestRoundTrip(t *testing.T) {
	img, err := asm.Assemble("echo", bytes.NewReader([]byte(echo)))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	out, err := vm.Run(img, ascii.Encode("hello, world")...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	text, extra := ascii.Decode(out)
	if text != "HELLO, WORLD\n" {
		t.Errorf("unexpected text %q", text)
	}
	if !cellsEqual(extra, []vm.Cell{1012}) {
		t.Errorf("unexpected extra values %v", extra)
	}
}
