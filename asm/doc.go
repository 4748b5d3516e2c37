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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	args	description
//	------	---	----	---------------------------------------------------
//	1	add	a b c	c = a + b
//	2	mul	a b c	c = a * b
//	3	in	a	a = next input
//	4	out	a	output a
//	5	jt	a b	jump to b if a != 0
//	6	jf	a b	jump to b if a == 0
//	7	lt	a b c	c = 1 if a < b, else 0
//	8	eq	a b c	c = 1 if a == b, else 0
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
// Arguments are written in position mode by default. Prefix an argument with
// '#' for immediate mode, or with '~' for relative mode:
//
//	add 10 #1 10	( increment the value at address 10 )
//	out ~-1		( output the value just below the relative base )
//
// An argument is either a number, a character constant like 'A', a constant
// defined with .equ or a label. Labels are defined by prefixing their name with
// a colon and evaluate to the address where they are defined:
//
//	:loop
//		in count
//		jt count #loop
//		hlt
//	:count 0
//
// Any value that does not follow an opcode (i.e. is not an argument) is
// written as is in the next memory cell. This is the way to reserve and
// initialize data cells.
//
// Comments are enclosed in parentheses. Parentheses must be separated from
// other words by blanks, as in ( this ).
//
// Supported directives:
//
//	.org	set the address of the next cell
//	.equ	define a constant: .equ name value
//
// The disassembler output can be fed back to the assembler: cells that do not
// decode as valid instructions are written out as plain numbers.
package asm
