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

package asm

import (
	"io"
	"sort"
	"strconv"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

func isLabelName(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r) || r == '_'
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type constant struct {
	pos   scanner.Position
	value vm.Cell
}

// mode digit multipliers for parameters 1 to 3
var modeScale = [...]vm.Cell{100, 1000, 10000}

type parser struct {
	i      vm.Image
	pc     int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]constant
	errs   ErrAsm

	// instruction being assembled
	opPC int
	op   vm.Opcode
	argN int
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]constant)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	if p.pc >= vm.MaxMemory {
		p.error(scanner.Position{}, "program too large")
		p.pc++
		return
	}
	p.i.Write(vm.Cell(p.pc), v)
	p.pc++
}

// wantArg returns true if the current instruction still needs arguments.
func (p *parser) wantArg() bool {
	return p.argN < p.op.Params()
}

func (p *parser) useLabel(pos scanner.Position, name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{pos, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(pos scanner.Position, name string) {
	switch {
	case p.wantArg():
		p.error(pos, "unexpected label definition as argument: :"+name)
		return
	case name == "":
		p.error(pos, "empty label name")
		return
	case !isLabelName(name):
		p.error(pos, "invalid label name: "+name)
		return
	}
	if _, ok := vm.LookupOpcode(name); ok {
		p.error(pos, "label name is an opcode: "+name)
		return
	}
	if c, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition: "+name+", previously defined as a constant here: "+c.pos.String())
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "label redefinition: "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// value writes the value of s, a number, character, constant or label, to the
// next cell.
func (p *parser) value(pos scanner.Position, s string) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		p.write(vm.Cell(n))
		return
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error(pos, "invalid character constant "+s)
		}
		p.write(vm.Cell(r))
		return
	}
	if c, ok := p.consts[s]; ok {
		p.write(c.value)
		return
	}
	if !isLabelName(s) {
		p.error(pos, "invalid value "+s)
		p.write(0)
		return
	}
	p.useLabel(pos, s)
	p.write(0)
}

func (p *parser) argument(pos scanner.Position, s string) {
	if _, ok := vm.LookupOpcode(s); ok {
		p.error(pos, "unexpected opcode as argument: "+s)
	}
	mode := vm.Position
	switch s[0] {
	case '#':
		mode, s = vm.Immediate, s[1:]
	case '~':
		mode, s = vm.Relative, s[1:]
	}
	if s == "" {
		p.error(pos, "missing argument value")
		s = "0"
	}
	p.i[p.opPC] += vm.Cell(mode) * modeScale[p.argN]
	p.argN++
	p.value(pos, s)
}

func (p *parser) opcode(op vm.Opcode) {
	p.opPC, p.op, p.argN = p.pc, op, 0
	p.write(vm.Cell(op))
}

// nextInt scans the argument of a directive.
func (p *parser) nextInt(directive string) (vm.Cell, bool) {
	tok := p.s.Scan()
	s := p.s.TokenText()
	if tok == scanner.Ident {
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return vm.Cell(n), true
		}
		if c, ok := p.consts[s]; ok {
			return c.value, true
		}
	}
	p.error(p.s.Position, directive+": expected integer or constant, got "+strconv.Quote(s))
	return 0, false
}

func (p *parser) directive(pos scanner.Position, s string) {
	if p.wantArg() {
		p.error(pos, "unexpected directive as argument: "+s)
		return
	}
	switch s {
	case ".org":
		v, ok := p.nextInt(s)
		if !ok {
			return
		}
		if v < 0 || v >= vm.MaxMemory {
			p.error(p.s.Position, ".org: address out of range")
			return
		}
		p.pc = int(v)
	case ".equ":
		if p.s.Scan() != scanner.Ident || !isLabelName(p.s.TokenText()) {
			p.error(p.s.Position, ".equ: expected identifier, got "+strconv.Quote(p.s.TokenText()))
			return
		}
		name, npos := p.s.TokenText(), p.s.Position
		if l, ok := p.labels[name]; ok {
			p.error(npos, ".equ: redefinition of "+name+", previously defined/used as a label here: "+l.pos.String())
			return
		}
		if v, ok := p.nextInt(s); ok {
			p.consts[name] = constant{npos, v}
		}
	default:
		p.error(pos, "unknown directive: "+s)
	}
}

func (p *parser) skipComment(pos scanner.Position) {
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok == scanner.Ident && p.s.TokenText() == ")" {
			return
		}
	}
	p.error(pos, "unterminated comment")
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(s.Position, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		pos := p.s.Position
		if tok != scanner.Ident {
			p.error(pos, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		switch {
		case s == "(":
			p.skipComment(pos)
		case s[0] == ':':
			p.defineLabel(pos, s[1:])
		case s[0] == '.' && len(s) > 1 && unicode.IsLetter(rune(s[1])):
			p.directive(pos, s)
		case p.wantArg():
			p.argument(pos, s)
		default:
			if op, ok := vm.LookupOpcode(s); ok {
				p.opcode(op)
				break
			}
			p.value(pos, s)
		}
	}
	if p.wantArg() {
		p.error(p.s.Pos(), "missing argument for "+p.op.String())
	}

	// write labels
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
