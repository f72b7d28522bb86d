/*
 * SX960 - Bit-manipulation family: setbit/clrbit/notbit/chkbit/alterbit/
 * scanbit/spanbit/scanbyte/extract/modify, and modac/modpc/modtc.
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

func execSetbit(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 | word.Bit(s1) })(c, ins)
}

func execClrbit(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 &^ word.Bit(s1) })(c, ins)
}

func execNotbit(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 ^ word.Bit(s1) })(c, ins)
}

func execChkbit(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	if s2&word.Bit(s1) == 0 {
		c.AC.SetConditionCode(0)
	} else {
		c.AC.SetConditionCode(control.CCEqual)
	}
	return nil
}

// execAlterbit sets or clears the bit depending on cc's set-bit flag
// (spec.md §4.5: driven by the same bit chkbit leaves behind).
func execAlterbit(c *Core, ins *decode.Instruction) error {
	if c.AC.ConditionCode()&control.CCEqual != 0 {
		return execSetbit(c, ins)
	}
	return execClrbit(c, ins)
}

func execScanbit(c *Core, ins *decode.Instruction) error {
	_, s2 := regSources(c, ins)
	for i := 31; i >= 0; i-- {
		if s2&word.Bit(word.Ordinal(i)) != 0 {
			if err := regWrite(c, ins, word.Ordinal(i)); err != nil {
				return err
			}
			c.AC.SetConditionCode(control.CCEqual)
			return nil
		}
	}
	if err := regWrite(c, ins, 0xFFFFFFFF); err != nil {
		return err
	}
	c.AC.SetConditionCode(0)
	return nil
}

func execSpanbit(c *Core, ins *decode.Instruction) error {
	_, s2 := regSources(c, ins)
	for i := 31; i >= 0; i-- {
		if s2&word.Bit(word.Ordinal(i)) == 0 {
			if err := regWrite(c, ins, word.Ordinal(i)); err != nil {
				return err
			}
			c.AC.SetConditionCode(control.CCEqual)
			return nil
		}
	}
	if err := regWrite(c, ins, 0xFFFFFFFF); err != nil {
		return err
	}
	c.AC.SetConditionCode(0)
	return nil
}

// execScanbyte sets cc iff any of the four byte lanes of src1 and src2
// match (spec.md §4.5); it writes no destination.
func execScanbyte(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	match := false
	for i := 0; i < 4; i++ {
		shift := uint(i * 8)
		if byte(s1>>shift) == byte(s2>>shift) {
			match = true
			break
		}
	}
	if match {
		c.AC.SetConditionCode(control.CCEqual)
	} else {
		c.AC.SetConditionCode(0)
	}
	return nil
}

// execExtract reads the current src/dest value, shifts right by
// min(bitpos,32), and masks to len bits; bitpos/len come from src1/src2
// (spec.md §4.5).
func execExtract(c *Core, ins *decode.Instruction) error {
	bitpos, length := regSources(c, ins)
	if bitpos > 32 {
		bitpos = 32
	}
	dst := c.Regs.GetSource(ins.SrcDest(false))
	shifted := word.Ordinal(0)
	if bitpos < 32 {
		shifted = dst >> bitpos
	}
	mask := ^(word.Ordinal(0xFFFFFFFF) << length)
	if length >= 32 {
		mask = 0xFFFFFFFF
	}
	return regWrite(c, ins, shifted&mask)
}

// execModify reads mask from src1 and src from src2, applies the shared
// word.Modify primitive against the current src/dest value, and writes
// back (spec.md §4.5).
func execModify(c *Core, ins *decode.Instruction) error {
	mask, src := regSources(c, ins)
	prior := c.Regs.GetSource(ins.SrcDest(false))
	return regWrite(c, ins, word.Modify(mask, src, prior))
}

func execModac(c *Core, ins *decode.Instruction) error {
	mask, src := regSources(c, ins)
	prior := c.AC.Modify(mask, src)
	return regWrite(c, ins, prior)
}

// execModpc requires supervisor mode for a nonzero mask, raising
// Type.Mismatch otherwise (spec.md §4.5).
func execModpc(c *Core, ins *decode.Instruction) error {
	mask, src := regSources(c, ins)
	if mask != 0 && !c.PC.Supervisor() {
		return c.raise(fault.ClassType, fault.TypeMismatch)
	}
	priorPriority := c.PC.Priority()
	prior := c.PC.Modify(mask, src)
	if c.PC.Priority() > priorPriority {
		c.checkPendingInterrupts()
	}
	return regWrite(c, ins, prior)
}

func execModtc(c *Core, ins *decode.Instruction) error {
	mask, src := regSources(c, ins)
	prior := c.TC.Modify(mask, src)
	return regWrite(c, ins, prior)
}

// checkPendingInterrupts is a hook for a priority-raise to reconsider
// pending interrupts (spec.md §4.5, §4.6 calls/ret interrupt-return
// path). This core has no asynchronous interrupt source, so it is a
// deliberate no-op left for a host integration to override.
func (c *Core) checkPendingInterrupts() {}
