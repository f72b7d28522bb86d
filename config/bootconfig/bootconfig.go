/*
 * SX960 - Boot configuration file parser
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

// Package bootconfig parses the small line-oriented configuration file
// that names a board's memory size, boot image, and optional debug
// settings, in the same '#'-comment, token-at-a-time style the rest of
// this family of simulators uses for its configuration files.
package bootconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <key> <whitespace> <value>
 * <key>  := 'memory' | 'image' | 'logfile' | 'breakpoint' | 'haltaddr' | 'boot'
 * <value>::= <number> ['K'|'M'] | <hexnumber> | <string>
 */

// Config holds the settings a boot configuration file can supply.
// Zero values mean "use the built-in default".
type Config struct {
	MemorySize   uint32 // bytes, default supplied by caller
	ImagePath    string // path to the boot image loaded at address 0
	LogFile      string // optional log destination
	Breakpoint   uint32
	BreakpointOn bool
	HaltAddr     uint32
	HaltAddrOn   bool
	BootBlock    uint32 // boot block address passed to Core.Boot, default 0
}

type optionLine struct {
	line string
	pos  int
	num  int
}

// Load reads a boot configuration file and returns the parsed settings.
func Load(name string) (Config, error) {
	cfg := Config{}
	file, err := os.Open(name)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	lineNum := 0
	for {
		raw, err := reader.ReadString('\n')
		lineNum++
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return cfg, err
		}
		line := optionLine{line: raw, num: lineNum}
		if perr := line.apply(&cfg); perr != nil {
			return cfg, perr
		}
		if err != nil && errors.Is(err, io.EOF) {
			break
		}
	}
	return cfg, nil
}

func (l *optionLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *optionLine) isEOL() bool {
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

func (l *optionLine) token() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) && l.line[l.pos] != '#' {
		l.pos++
	}
	return l.line[start:l.pos]
}

// apply parses one line and folds it into cfg.
func (l *optionLine) apply(cfg *Config) error {
	l.skipSpace()
	if l.isEOL() {
		return nil
	}
	key := strings.ToLower(l.token())
	value := l.token()
	if value == "" {
		return fmt.Errorf("bootconfig line %d: %q requires a value", l.num, key)
	}

	switch key {
	case "memory":
		n, err := parseSize(value)
		if err != nil {
			return fmt.Errorf("bootconfig line %d: %w", l.num, err)
		}
		cfg.MemorySize = n
	case "image", "boot":
		cfg.ImagePath = value
	case "logfile", "log":
		cfg.LogFile = value
	case "breakpoint":
		n, err := parseNumber(value)
		if err != nil {
			return fmt.Errorf("bootconfig line %d: %w", l.num, err)
		}
		cfg.Breakpoint = n
		cfg.BreakpointOn = true
	case "haltaddr":
		n, err := parseNumber(value)
		if err != nil {
			return fmt.Errorf("bootconfig line %d: %w", l.num, err)
		}
		cfg.HaltAddr = n
		cfg.HaltAddrOn = true
	case "bootblock":
		n, err := parseNumber(value)
		if err != nil {
			return fmt.Errorf("bootconfig line %d: %w", l.num, err)
		}
		cfg.BootBlock = n
	default:
		return fmt.Errorf("bootconfig line %d: unknown option %q", l.num, key)
	}
	return nil
}

// parseNumber accepts a hexadecimal number, with or without a 0x prefix.
func parseNumber(v string) (uint32, error) {
	v = strings.TrimPrefix(strings.ToLower(v), "0x")
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return uint32(n), nil
}

// parseSize accepts a decimal byte count with an optional K/M suffix.
func parseSize(v string) (uint32, error) {
	mult := uint64(1)
	switch {
	case strings.HasSuffix(v, "K") || strings.HasSuffix(v, "k"):
		mult = 1024
		v = v[:len(v)-1]
	case strings.HasSuffix(v, "M") || strings.HasSuffix(v, "m"):
		mult = 1024 * 1024
		v = v[:len(v)-1]
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", v)
	}
	return uint32(n * mult), nil
}
