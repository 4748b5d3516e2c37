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

// The intcode command runs an Intcode program image.
//
// Usage:
//
//	-ascii
//		  ASCII mode: read input lines as text, print output as text
//	-config filename
//		  load settings from TOML file filename
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  disassemble the program image instead of running it
//	-dump
//		  print the memory image upon exit
//	-image filename
//		  load program image from file filename (default "input.txt")
//	-in values
//		  comma separated input values (can be specified multiple times)
//	-mode mode
//		  computer type: sync, chan or stream (default "sync")
//	-raw
//		  raw terminal IO in ASCII mode
//	-v int
//		  log verbosity
//
// Values given with -in are fed to the program first. Once they are exhausted,
// more input is read from stdin one line at a time: a line of comma or space
// separated numbers, or in ASCII mode a line of text, terminated by a newline.
// The program fails if it needs input after the end of stdin.
//
// -mode: sync runs the program with a resumable computer, chan in its own
// goroutine over channels, and stream with input notifications. All three
// produce the same results.
//
// -raw: in ASCII mode, switch the terminal to raw mode and feed keys to the
// program as they are typed. CTRL-D ends the input.
//
// -config: the configuration file can set any of the following keys. Flags
// given on the command line take precedence.
//
//	image = "day9.txt"
//	mode = "chan"
//	inputs = [1]
//	ascii = false
//	raw = false
//	dump = false
//	debug = false
//	verbosity = 1
//
// -dump: print the memory image in the program text format once the program
// has halted.
package main
