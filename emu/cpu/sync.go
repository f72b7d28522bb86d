/*
 * SX960 - Synchronized memory operations: synld/synmov/synmovl/synmovq/
 * atadd/atmod.
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

package cpu

import (
	"github.com/rcornwell/sx960sim/emu/control"
	"github.com/rcornwell/sx960sim/emu/decode"
	"github.com/rcornwell/sx960sim/emu/fault"
	"github.com/rcornwell/sx960sim/emu/word"
)

// execSynld aligns src1 to a word boundary and loads from that address
// (spec.md §4.5). Single-threaded execution makes the "synchronized"
// aspect a no-op beyond the alignment and the cc write.
func execSynld(c *Core, ins *decode.Instruction) error {
	s1 := c.Regs.GetSource(ins.Src1(false))
	addr := s1 &^ 3
	v := c.Bus.LoadWord(addr)
	if err := regWrite(c, ins, v); err != nil {
		return err
	}
	c.AC.SetConditionCode(control.CCEqual)
	return nil
}

// execSynmov stores R(src2) to src1's word-aligned address via the
// bus's synchronized path, which may intercept an IAC-window write
// (spec.md §4.7).
func execSynmov(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	addr := s1 &^ 3
	c.Bus.SynchronizedStoreWord(addr, s2)
	c.AC.SetConditionCode(control.CCEqual)
	return nil
}

func execSynmovl(c *Core, ins *decode.Instruction) error {
	s1 := c.Regs.GetSource(ins.Src1(false))
	addr := s1 &^ 7
	v, err := c.Regs.GetDouble(ins.Src2())
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	c.Bus.StoreLong(addr, v)
	c.AC.SetConditionCode(control.CCEqual)
	return nil
}

// execSynmovq routes through SynchronizedStoreQuad so a store to the IAC
// window is decoded as a message (spec.md §4.7) instead of committed to
// ordinary memory.
func execSynmovq(c *Core, ins *decode.Instruction) error {
	s1 := c.Regs.GetSource(ins.Src1(false))
	addr := s1 &^ 15
	v, err := c.Regs.GetQuad(ins.Src2())
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	c.Bus.SynchronizedStoreQuad(addr, v)
	c.AC.SetConditionCode(control.CCEqual)
	return nil
}

// execAtadd performs the bus-locked load-add-store (spec.md §4.5): the
// prior value at addr is written to dest, and addr's memory becomes
// prior+R(src2).
func execAtadd(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	addr := s1 &^ 3
	prior := c.Bus.AtomicLoad(addr)
	c.Bus.AtomicStore(addr, prior+s2)
	return regWrite(c, ins, prior)
}

// execAtmod performs the bus-locked load-modify-store: mask comes from
// R(src2), src from the current src/dest value, applied via the shared
// word.Modify primitive.
func execAtmod(c *Core, ins *decode.Instruction) error {
	s1, mask := regSources(c, ins)
	addr := s1 &^ 3
	prior := c.Bus.AtomicLoad(addr)
	src := c.Regs.GetSource(ins.SrcDest(false))
	c.Bus.AtomicStore(addr, word.Modify(mask, src, prior))
	return regWrite(c, ins, prior)
}
