/*
 * SX960 - Arithmetic instruction family: add/sub/mul/div/rem (ordinal
 * and integer), modi, emul/ediv, addc/subc.
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
	"github.com/rcornwell/sx960sim/emu/decode"
	"github.com/rcornwell/sx960sim/emu/fault"
	"github.com/rcornwell/sx960sim/emu/word"
)

// regSources reads a REG-format instruction's two source operands.
func regSources(c *Core, ins *decode.Instruction) (s1, s2 word.Ordinal) {
	return c.Regs.GetSource(ins.Src1(false)), c.Regs.GetSource(ins.Src2())
}

// regWrite writes v to a REG-format instruction's src/dest operand. The
// operand is taken as a destination (SrcDest(true)), so its literal flag
// is ignored; Operation.InvalidOperand is raised only if the register
// file refuses the destination.
func regWrite(c *Core, ins *decode.Instruction, v word.Ordinal) error {
	dst, err := c.Regs.GetDestination(ins.SrcDest(true))
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	dst.Set(v)
	return nil
}

// twoOp wires the common "W = R(src2) op R(src1)" shape shared by every
// plain two-operand arithmetic and logical instruction.
func twoOp(op func(s2, s1 word.Ordinal) word.Ordinal) handler {
	return func(c *Core, ins *decode.Instruction) error {
		s1, s2 := regSources(c, ins)
		return regWrite(c, ins, op(s2, s1))
	}
}

func execAddo(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 + s1 })(c, ins)
}

func execSubo(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 - s1 })(c, ins)
}

func execMulo(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 * s1 })(c, ins)
}

func execDivo(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	if s1 == 0 {
		return c.raise(fault.ClassArithmetic, fault.ArithmeticZeroDivide)
	}
	return regWrite(c, ins, s2/s1)
}

func execRemo(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	if s1 == 0 {
		return c.raise(fault.ClassArithmetic, fault.ArithmeticZeroDivide)
	}
	return regWrite(c, ins, s2%s1)
}

// integerOverflowCheck sets AC.OverflowFlag for a signed result and, if
// AC.OverflowMask is also set, turns that into an IntegerOverflow fault.
func integerOverflowCheck(c *Core, overflowed bool) error {
	c.AC.SetOverflowFlag(overflowed)
	if overflowed && c.AC.OverflowMask() {
		return c.raise(fault.ClassArithmetic, fault.ArithmeticIntegerOverflow)
	}
	return nil
}

func execAddi(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	a, b := word.Integer(s1), word.Integer(s2)
	result := b + a
	overflowed := (b >= 0) == (a >= 0) && (result >= 0) != (b >= 0)
	if err := regWrite(c, ins, word.Ordinal(result)); err != nil {
		return err
	}
	return integerOverflowCheck(c, overflowed)
}

func execSubi(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	a, b := word.Integer(s1), word.Integer(s2)
	result := b - a
	overflowed := (b >= 0) != (a >= 0) && (result >= 0) != (b >= 0)
	if err := regWrite(c, ins, word.Ordinal(result)); err != nil {
		return err
	}
	return integerOverflowCheck(c, overflowed)
}

func execMuli(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	product := int64(word.Integer(s2)) * int64(word.Integer(s1))
	overflowed := product > int64(^uint32(0)>>1) || product < -int64(^uint32(0)>>1)-1
	if err := regWrite(c, ins, word.Ordinal(int32(product))); err != nil {
		return err
	}
	return integerOverflowCheck(c, overflowed)
}

func execDivi(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	if s1 == 0 {
		return c.raise(fault.ClassArithmetic, fault.ArithmeticZeroDivide)
	}
	return regWrite(c, ins, word.Ordinal(word.Integer(s2)/word.Integer(s1)))
}

func execRemi(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	if s1 == 0 {
		return c.raise(fault.ClassArithmetic, fault.ArithmeticZeroDivide)
	}
	return regWrite(c, ins, word.Ordinal(word.Integer(s2)%word.Integer(s1)))
}

// execModi implements modi's sign-correction on top of integer
// remainder: when the signs of the numerator and denominator differ and
// the remainder is nonzero, the denominator is added back in.
func execModi(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	if s1 == 0 {
		return c.raise(fault.ClassArithmetic, fault.ArithmeticZeroDivide)
	}
	num, den := word.Integer(s2), word.Integer(s1)
	result := num % den
	if int64(num)*int64(den) < 0 && result != 0 {
		result += den
	}
	return regWrite(c, ins, word.Ordinal(result))
}

func execEmul(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	product := word.LongOrdinal(s1) * word.LongOrdinal(s2)
	idx := ins.SrcDest(true)
	return c.Regs.SetDouble(idx, product)
}

func execEdiv(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	idx := ins.SrcDest(true)
	dividend, err := c.Regs.GetDouble(idx)
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	_ = s2 // ediv's numerator is the 64-bit value named by src/dest; src1 is the divisor
	if s1 == 0 {
		return c.raise(fault.ClassArithmetic, fault.ArithmeticZeroDivide)
	}
	quot := word.Ordinal(dividend / word.LongOrdinal(s1))
	rem := word.Ordinal(dividend % word.LongOrdinal(s1))
	return c.Regs.SetDouble(idx, word.LongOrdinal(rem)|word.LongOrdinal(quot)<<32)
}

// execAddc implements addc's 33-bit carry arithmetic: cc.carry is the
// 33rd bit, cc.overflow is set from the two operands' sign bits versus
// the result's sign bit, and both share AC's 3-bit condition code field
// with the overflow bit unused by any other instruction family.
func execAddc(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	carryIn := word.LongOrdinal(0)
	if c.AC.ConditionCode()&ccCarry != 0 {
		carryIn = 1
	}
	wide := word.LongOrdinal(s2) + word.LongOrdinal(s1) + carryIn
	result := word.Ordinal(wide)
	if err := regWrite(c, ins, result); err != nil {
		return err
	}
	carry := wide>>32 != 0
	s1Sign, s2Sign, rSign := word.Integer(s1) < 0, word.Integer(s2) < 0, word.Integer(result) < 0
	overflow := s1Sign == s2Sign && rSign != s1Sign
	c.AC.SetConditionCode(ccBits(carry, overflow))
	return nil
}

// execSubc computes in 33-bit precision via a wider signed accumulator
// (so the intermediate subtraction never wraps in Go's own uint64
// space the way the raw operands would) and then reads bit 32 back out
// as the borrow-corrected carry flag.
func execSubc(c *Core, ins *decode.Instruction) error {
	s1, s2 := regSources(c, ins)
	carryIn := int64(0)
	if c.AC.ConditionCode()&ccCarry != 0 {
		carryIn = 1
	}
	wideSigned := int64(s2) - int64(s1) - 1 + carryIn
	wide := uint64(wideSigned) & 0x1FFFFFFFF
	result := word.Ordinal(uint32(wide))
	if err := regWrite(c, ins, result); err != nil {
		return err
	}
	carry := wide>>32 != 0
	s1Sign, s2Sign, rSign := word.Integer(s1) < 0, word.Integer(s2) < 0, word.Integer(result) < 0
	overflow := s1Sign != s2Sign && rSign != s2Sign
	c.AC.SetConditionCode(ccBits(carry, overflow))
	return nil
}

// ccCarry/ccOverflow are the two condition-code bits addc/subc reuse
// (spec.md §4.5); the third bit of the 3-bit field is left clear.
const (
	ccCarry    word.Ordinal = 0b010
	ccOverflow word.Ordinal = 0b001
)

func ccBits(carry, overflow bool) word.Ordinal {
	var v word.Ordinal
	if carry {
		v |= ccCarry
	}
	if overflow {
		v |= ccOverflow
	}
	return v
}
