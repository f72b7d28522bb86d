/*
 * SX960 - Compare family (REG), compare-and-branch (COBR), branches and
 * faults (CTRL), and test (COBR).
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

// ccForCompare takes (isGreater, isEqual) per its call sites' argument
// order (s1 > s2, s1 == s2) and returns the matching condition code.
func ccForCompare(greater bool, equal bool) word.Ordinal {
	switch {
	case greater:
		return control.CCGreater
	case equal:
		return control.CCEqual
	default:
		return control.CCLess
	}
}

func execCmpo(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	c.AC.SetConditionCode(ccForCompare(s1 > s2, s1 == s2))
	return nil
}

func execCmpi(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	a, b := word.Integer(s1), word.Integer(s2)
	c.AC.SetConditionCode(ccForCompare(a > b, a == b))
	return nil
}

func execCmpdeco(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	c.AC.SetConditionCode(ccForCompare(s1 > s2, s1 == s2))
	return regWrite(c, ins, s2-1)
}

func execCmpdeci(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	a, b := word.Integer(s1), word.Integer(s2)
	c.AC.SetConditionCode(ccForCompare(a > b, a == b))
	return regWrite(c, ins, word.Ordinal(b-1))
}

func execCmpinco(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	c.AC.SetConditionCode(ccForCompare(s1 > s2, s1 == s2))
	return regWrite(c, ins, s2+1)
}

func execCmpinci(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	a, b := word.Integer(s1), word.Integer(s2)
	c.AC.SetConditionCode(ccForCompare(a > b, a == b))
	return regWrite(c, ins, word.Ordinal(b+1))
}

// execConcmpo/execConcmpi only touch cc when cc's less bit (0b100) is clear
// (spec.md §4.5); both variants use the <= comparison regardless of
// ordinal/integer (§9 open question: preserved as the source has it).
func execConcmpo(c *Core, ins *decode.Instruction) error {
	if c.AC.ConditionCode()&control.CCLess == 0 {
		s1, s2 := regSources(c, ins)
		if s1 <= s2 {
			c.AC.SetConditionCode(control.CCEqual)
		} else {
			c.AC.SetConditionCode(control.CCGreater)
		}
	}
	return nil
}

func execConcmpi(c *Core, ins *decode.Instruction) error {
	if c.AC.ConditionCode()&control.CCLess == 0 {
		s1, s2 := regSources(c, ins)
		if word.Integer(s1) <= word.Integer(s2) {
			c.AC.SetConditionCode(control.CCEqual)
		} else {
			c.AC.SetConditionCode(control.CCGreater)
		}
	}
	return nil
}

// cobrBranch performs the shared IP-relative branch: IP += displacement,
// cancelling auto-advance.
func cobrBranch(c *Core, ins *decode.Instruction) error {
	disp, err := ins.Displacement()
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOpcode)
	}
	c.IP = word.Ordinal(int64(c.IP) + int64(disp))
	c.cancelAutoAdvance()
	return nil
}

// execCmpobx/execCmpibx compare then conditionally branch; the 3-bit
// mask is the low 3 bits of the fetched major opcode (spec.md §4.5).
func execCmpobx(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	mask := word.Ordinal(ins.MajorOpcode() & 0x7)
	c.AC.SetConditionCode(ccForCompare(s1 > s2, s1 == s2))
	if c.AC.CCMatches(mask) {
		return cobrBranch(c, ins)
	}
	return nil
}

func execCmpibx(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	a, b := word.Integer(s1), word.Integer(s2)
	mask := word.Ordinal(ins.MajorOpcode() & 0x7)
	c.AC.SetConditionCode(ccForCompare(a > b, a == b))
	if c.AC.CCMatches(mask) {
		return cobrBranch(c, ins)
	}
	return nil
}

// execBbc tests bit (R(src1)&31) of R(src2); src1 is read ignoring its
// literal flag since the field names a bit position, not a data operand
// (spec.md §4.1).
func execBbc(c *Core, ins *decode.Instruction) error {
	bit := c.Regs.GetSource(ins.Src1(true)) & 31
	val := c.Regs.GetSource(ins.Src2())
	if val&word.Bit(bit) == 0 {
		c.AC.SetConditionCode(0)
		return cobrBranch(c, ins)
	}
	c.AC.SetConditionCode(control.CCEqual)
	return nil
}

func execBbs(c *Core, ins *decode.Instruction) error {
	bit := c.Regs.GetSource(ins.Src1(true)) & 31
	val := c.Regs.GetSource(ins.Src2())
	if val&word.Bit(bit) != 0 {
		c.AC.SetConditionCode(control.CCEqual)
		return cobrBranch(c, ins)
	}
	c.AC.SetConditionCode(0)
	return nil
}

func execTestx(c *Core, ins *decode.Instruction) error {
	mask := word.Ordinal(ins.MajorOpcode() & 0x7)
	dst, err := c.Regs.GetDestination(ins.Src1(false))
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	if c.AC.CCMatches(mask) {
		dst.Set(1)
	} else {
		dst.Set(0)
	}
	return nil
}

// execB/execBal/execBx are the CTRL-format unconditional/link/
// conditional branches; ctrlBranch shares the displacement read.
func ctrlBranch(c *Core, ins *decode.Instruction) error {
	disp, err := ins.Displacement()
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOpcode)
	}
	c.IP = word.Ordinal(int64(c.IP) + int64(disp))
	c.cancelAutoAdvance()
	return nil
}

func execB(c *Core, ins *decode.Instruction) error { return ctrlBranch(c, ins) }

func execBal(c *Core, ins *decode.Instruction) error {
	c.Regs.SetAt(linkRegisterIndex, c.IP+4)
	return ctrlBranch(c, ins)
}

// linkRegisterIndex is global register 14, `bal`'s implicit link target.
var linkRegisterIndex = regIndexGlobal(14)

func execBx(c *Core, ins *decode.Instruction) error {
	mask := word.Ordinal(ins.MajorOpcode() & 0x7)
	if c.AC.CCMatches(mask) {
		return ctrlBranch(c, ins)
	}
	return nil
}

func execFaultx(c *Core, ins *decode.Instruction) error {
	mask := word.Ordinal(ins.MajorOpcode() & 0x7)
	if c.AC.CCMatches(mask) {
		return c.raise(fault.ClassConstraint, fault.ConstraintRange)
	}
	return nil
}
