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
	"sort"
	"testing"

	"github.com/db47h/intcode/vm"
)

func TestPermute(t *testing.T) {
	seen := make(map[[4]vm.Cell]bool)
	permute([]vm.Cell{1, 2, 3, 4}, func(p []vm.Cell) bool {
		var k [4]vm.Cell
		copy(k[:], p)
		if seen[k] {
			t.Errorf("duplicate permutation %v", p)
		}
		seen[k] = true
		s := append([]vm.Cell(nil), p...)
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
		for i := range s {
			if s[i] != vm.Cell(i+1) {
				t.Fatalf("bad permutation %v", p)
			}
		}
		return true
	})
	if len(seen) != 24 {
		t.Fatalf("expected 24 permutations, got %d", len(seen))
	}

	n := 0
	permute([]vm.Cell{1, 2, 3}, func([]vm.Cell) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("expected early stop after 2 calls, got %d", n)
	}
}
