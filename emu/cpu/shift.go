/*
 * SX960 - Shift/rotate instruction family.
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
	"github.com/rcornwell/sx960sim/emu/word"
)

// shiftLen reads src1 as the shift/rotate length; spec.md §4.5 defines
// the family as `len` named by src1, `src` named by src2.
func shiftLen(c *Core, ins *decode.Instruction) (length, src word.Ordinal) {
	s1, s2 := regSources(c, ins)
	return s1, s2
}

func execShlo(c *Core, ins *decode.Instruction) error {
	length, src := shiftLen(c, ins)
	if length >= 32 {
		return regWrite(c, ins, 0)
	}
	return regWrite(c, ins, src<<length)
}

func execShro(c *Core, ins *decode.Instruction) error {
	length, src := shiftLen(c, ins)
	if length >= 32 {
		return regWrite(c, ins, 0)
	}
	return regWrite(c, ins, src>>length)
}

func execShli(c *Core, ins *decode.Instruction) error {
	length, src := shiftLen(c, ins)
	if length >= 32 {
		return regWrite(c, ins, 0)
	}
	return regWrite(c, ins, word.Ordinal(word.Integer(src)<<length))
}

// execShri implements the integer-manual rounding-toward-negative-
// infinity right shift (spec.md §4.5, §9 open question: len==32 follows
// the len<32 arm only when explicitly len<32; we keep the >=32 arm as
// the fallback the source's `<` comparison implies).
func execShri(c *Core, ins *decode.Instruction) error {
	length, src := shiftLen(c, ins)
	s := word.Integer(src)
	if length < 32 {
		if s >= 0 {
			return regWrite(c, ins, word.Ordinal(s/(1<<length)))
		}
		return regWrite(c, ins, word.Ordinal((s-(1<<length)+1)/(1<<length)))
	}
	if s >= 0 {
		return regWrite(c, ins, 0)
	}
	return regWrite(c, ins, ^word.Ordinal(0))
}

// execShrdi is equivalent to integer division by 2^len for len<32, else 0.
func execShrdi(c *Core, ins *decode.Instruction) error {
	length, src := shiftLen(c, ins)
	if length >= 32 {
		return regWrite(c, ins, 0)
	}
	return regWrite(c, ins, word.Ordinal(word.Integer(src)/(1<<length)))
}

func execRotate(c *Core, ins *decode.Instruction) error {
	length, src := shiftLen(c, ins)
	return regWrite(c, ins, word.Rotate(src, uint(length)))
}
