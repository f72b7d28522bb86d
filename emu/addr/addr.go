/*
 * SX960 - Addressing unit: computes effective addresses for MEM-format
 * instructions across the nine addressing modes of spec.md §4.2.
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

package addr

import (
	"errors"

	"github.com/rcornwell/sx960sim/emu/decode"
	"github.com/rcornwell/sx960sim/emu/register"
	"github.com/rcornwell/sx960sim/emu/word"
)

// ErrUnsupportedMode is returned for a MEMB mode bit pattern the
// architecture does not define.
var ErrUnsupportedMode = errors.New("addr: unsupported MEMB mode")

// MEMB mode values (spec.md §4.2 table, in the table's row order).
const (
	modeRegIndirect            = 0x4
	modeRegIndirectIndex       = 0xE
	modeIPDisplacement         = 0x5
	modeAbsDisplacement        = 0x6
	modeRegIndirectDisp        = 0x7
	modeIndexDisplacement      = 0xC
	modeRegIndirectIndexDisp   = 0xD
)

// EffectiveAddress computes the address a MEM-format instruction
// operates on. ip is the address of the instruction itself; callers that
// need IP+8 semantics for mode 0x5 pass the un-advanced IP and this
// function adds the +8 per spec.md's table.
func EffectiveAddress(ins *decode.Instruction, regs *register.File, ip word.Ordinal) (word.Ordinal, error) {
	if ins.IsMEMA() {
		if ins.MEMARegIndirect() {
			return regs.GetSource(ins.Abase()) + ins.MEMAOffset(), nil
		}
		return ins.MEMAOffset(), nil
	}

	disp, _ := ins.Displacement() // ok to ignore error: zero if mode has none
	scaled := func() word.Ordinal {
		return regs.GetSource(ins.IndexReg()) << ins.Scale()
	}

	switch ins.MEMBMode() {
	case modeRegIndirect:
		return regs.GetSource(ins.Abase()), nil
	case modeRegIndirectIndex:
		return regs.GetSource(ins.Abase()) + scaled(), nil
	case modeIPDisplacement:
		return word.Ordinal(int64(ip)+int64(disp)+8), nil
	case modeAbsDisplacement:
		return word.Ordinal(disp), nil
	case modeRegIndirectDisp:
		return word.Ordinal(int64(regs.GetSource(ins.Abase())) + int64(disp)), nil
	case modeIndexDisplacement:
		return word.Ordinal(int64(scaled()) + int64(disp)), nil
	case modeRegIndirectIndexDisp:
		return word.Ordinal(int64(regs.GetSource(ins.Abase())) + int64(scaled()) + int64(disp)), nil
	default:
		return 0, ErrUnsupportedMode
	}
}
