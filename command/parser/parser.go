/*
 * SX960 - Command parser: the console debugger's command language.
 *
 * Copyright (c) 2026, SX960 Project Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package parser implements the console debugger's command language:
// step, run, examine/deposit memory, dump registers, disassemble, and
// breakpoint management. The command table and line tokenizer follow
// the same prefix-matching, minimum-abbreviation idiom the rest of this
// family of simulators uses for its console.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/sx960sim/emu/cpu"
	"github.com/rcornwell/sx960sim/emu/disassemble"
	"github.com/rcornwell/sx960sim/emu/register"
	"github.com/rcornwell/sx960sim/emu/word"
)

// Session is the console debugger's state: the core it drives plus the
// debugger's own breakpoint (distinct from the architectural IAC
// SetBreakpoint register, which is a simulated hardware facility the
// running program can set for itself).
type Session struct {
	Core       *cpu.Core
	breakpoint word.Ordinal
	breakOn    bool
}

func NewSession(core *cpu.Core) *Session {
	return &Session{Core: core}
}

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *Session) (bool, error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "run", min: 1, process: run},
	{name: "examine", min: 1, process: examine},
	{name: "deposit", min: 1, process: deposit},
	{name: "registers", min: 3, process: registers},
	{name: "disassemble", min: 1, process: disasm},
	{name: "break", min: 2, process: setBreak},
	{name: "unbreak", min: 3, process: clearBreak},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes one line of console input against sess. It
// returns true when the console should exit.
func ProcessCommand(commandLine string, sess *Session) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, errors.New("command not found: " + name)
	case 1:
		return match[0].process(&line, sess)
	default:
		return false, fmt.Errorf("ambiguous command: %q", name)
	}
}

// CompleteCmd offers command-name completions for the line editor.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()
	if !line.isEOL() {
		return nil
	}
	match := matchList(name)
	out := make([]string, len(match))
	for i, m := range match {
		out[i] = m.name
	}
	return out
}

func matchCommand(m cmd, name string) bool {
	if len(name) == 0 || len(name) > len(m.name) {
		return false
	}
	if name != m.name[:len(name)] {
		return false
	}
	return len(name) >= m.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var out []cmd
	for _, m := range cmdList {
		if matchCommand(m, name) {
			out = append(out, m)
		}
	}
	return out
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	l.skipSpace()
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

// getWord returns the next run of letters, lower-cased.
func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && unicode.IsLetter(rune(l.line[l.pos])) {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

// getToken returns the next whitespace-delimited token verbatim.
func (l *cmdLine) getToken() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) && l.line[l.pos] != '#' {
		l.pos++
	}
	return l.line[start:l.pos]
}

func (l *cmdLine) getHex32() (word.Ordinal, error) {
	tok := l.getToken()
	if tok == "" {
		return 0, errors.New("expected a hexadecimal address")
	}
	tok = strings.TrimPrefix(strings.ToLower(tok), "0x")
	n, err := strconv.ParseUint(tok, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", tok)
	}
	return word.Ordinal(n), nil
}

func (l *cmdLine) getOptionalCount(def int) int {
	tok := l.getToken()
	if tok == "" {
		return def
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func step(line *cmdLine, sess *Session) (bool, error) {
	n := line.getOptionalCount(1)
	for i := 0; i < n; i++ {
		if sess.Core.Halted() {
			break
		}
		if err := sess.Core.Step(); err != nil {
			return false, err
		}
	}
	printStatus(sess)
	return false, nil
}

func run(_ *cmdLine, sess *Session) (bool, error) {
	for !sess.Core.Halted() {
		if sess.breakOn && sess.Core.IP == sess.breakpoint {
			fmt.Printf("stopped at breakpoint %08X\n", sess.breakpoint)
			return false, nil
		}
		if err := sess.Core.Step(); err != nil {
			return false, err
		}
	}
	printStatus(sess)
	return false, nil
}

func examine(line *cmdLine, sess *Session) (bool, error) {
	addr, err := line.getHex32()
	if err != nil {
		return false, err
	}
	v := sess.Core.Bus.LoadWord(addr)
	fmt.Printf("%08X: %08X\n", addr, v)
	return false, nil
}

func deposit(line *cmdLine, sess *Session) (bool, error) {
	addr, err := line.getHex32()
	if err != nil {
		return false, err
	}
	v, err := line.getHex32()
	if err != nil {
		return false, err
	}
	sess.Core.Bus.StoreWord(addr, v)
	return false, nil
}

func registers(_ *cmdLine, sess *Session) (bool, error) {
	fmt.Printf("ip=%08X ac=%08X pc=%08X tc=%08X\n",
		sess.Core.IP, sess.Core.AC.Value(), sess.Core.PC.Value(), sess.Core.TC.Value())
	for i := 0; i < 16; i++ {
		v := sess.Core.Regs.GetSource(register.Index{Raw: uint8(i)})
		fmt.Printf("r%-2d=%08X  ", i, v)
		if i%4 == 3 {
			fmt.Println()
		}
	}
	for i := 0; i < 16; i++ {
		v := sess.Core.Regs.GetSource(register.Index{Raw: uint8(16 + i)})
		fmt.Printf("g%-2d=%08X  ", i, v)
		if i%4 == 3 {
			fmt.Println()
		}
	}
	return false, nil
}

func disasm(line *cmdLine, sess *Session) (bool, error) {
	addr, err := line.getHex32()
	if err != nil {
		return false, err
	}
	count := line.getOptionalCount(1)
	for i := 0; i < count; i++ {
		low := sess.Core.Bus.LoadWord(addr)
		high := sess.Core.Bus.LoadWord(addr + 4)
		text, length := disassembler.Disassemble(low, high)
		fmt.Printf("%08X: %s\n", addr, text)
		addr += word.Ordinal(length)
	}
	return false, nil
}

func setBreak(line *cmdLine, sess *Session) (bool, error) {
	addr, err := line.getHex32()
	if err != nil {
		return false, err
	}
	sess.breakpoint = addr
	sess.breakOn = true
	return false, nil
}

func clearBreak(_ *cmdLine, sess *Session) (bool, error) {
	sess.breakOn = false
	return false, nil
}

func quit(_ *cmdLine, _ *Session) (bool, error) {
	return true, nil
}

func printStatus(sess *Session) {
	if f := sess.Core.LastFault(); f != nil && sess.Core.Halted() {
		fmt.Printf("halted: %s\n", f.Error())
		return
	}
	fmt.Printf("ip=%08X\n", sess.Core.IP)
}
