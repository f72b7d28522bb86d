/*
 * SX960 - Logical instruction family: and/or/xor/xnor/nor/nand/not/
 * andnot/notand/ornot/notor.
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

func execAnd(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 & s1 })(c, ins)
}

func execOr(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 | s1 })(c, ins)
}

func execXor(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 ^ s1 })(c, ins)
}

func execXnor(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return ^(s2 ^ s1) })(c, ins)
}

func execNor(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return ^(s2 | s1) })(c, ins)
}

func execNand(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return ^(s2 & s1) })(c, ins)
}

// execNot ignores src1 (real i960 `not` is a one-source instruction; the
// REG-format src1 field is simply unused) and writes ^R(src2).
func execNot(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return ^s2 })(c, ins)
}

func execAndnot(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 &^ s1 })(c, ins)
}

// execNotand computes ~R(src2) & R(src1), per spec.md §4.5.
func execNotand(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return ^s2 & s1 })(c, ins)
}

func execOrnot(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return s2 | ^s1 })(c, ins)
}

func execNotor(c *Core, ins *decode.Instruction) error {
	return twoOp(func(s2, s1 word.Ordinal) word.Ordinal { return ^s2 | s1 })(c, ins)
}
