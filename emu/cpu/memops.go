/*
 * SX960 - Memory instruction family: the ldob/ldos/ldib/ldis/ld/ldl/ldt/
 * ldq and matching st* widths, plus lda.
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
	"github.com/rcornwell/sx960sim/emu/addr"
	"github.com/rcornwell/sx960sim/emu/decode"
	"github.com/rcornwell/sx960sim/emu/fault"
	"github.com/rcornwell/sx960sim/emu/word"
)

func memWrite(c *Core, ins *decode.Instruction, v word.Ordinal) error {
	dst, err := c.Regs.GetDestination(ins.MemSrcDest())
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	dst.Set(v)
	return nil
}

func effAddr(c *Core, ins *decode.Instruction) (word.Ordinal, error) {
	a, err := addr.EffectiveAddress(ins, c.Regs, c.IP)
	if err != nil {
		return 0, c.raise(fault.ClassOperation, fault.OperationInvalidOpcode)
	}
	return a, nil
}

func execLdob(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	return memWrite(c, ins, word.Ordinal(c.Bus.LoadByte(a)))
}

func execLdos(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	return memWrite(c, ins, word.Ordinal(c.Bus.LoadShort(a)))
}

// execLdib/execLdis sign-extend the loaded value to 32 bits (spec.md
// §4.5: "integer-variant loads sign-extend").
func execLdib(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	return memWrite(c, ins, word.Ordinal(int32(word.SByte(c.Bus.LoadByte(a)))))
}

func execLdis(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	return memWrite(c, ins, word.Ordinal(int32(word.SShort(c.Bus.LoadShort(a)))))
}

func execLd(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	return memWrite(c, ins, c.Bus.LoadWord(a))
}

func execLdl(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	v := c.Bus.LoadLong(a)
	if err := c.Regs.SetDouble(ins.MemSrcDest(), v); err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	return nil
}

func execLdt(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	v := [3]word.Ordinal{c.Bus.LoadWord(a), c.Bus.LoadWord(a + 4), c.Bus.LoadWord(a + 8)}
	if err := c.Regs.SetTriple(ins.MemSrcDest(), v); err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	return nil
}

func execLdq(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	v := c.Bus.LoadQuad(a)
	if err := c.Regs.SetQuad(ins.MemSrcDest(), v); err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	return nil
}

func execStob(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	c.Bus.StoreByte(a, word.Byte(c.Regs.GetSource(ins.MemSrcDest())))
	return nil
}

func execStos(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	c.Bus.StoreShort(a, word.Short(c.Regs.GetSource(ins.MemSrcDest())))
	return nil
}

// execStib/execStis store the same bit pattern as their unsigned
// counterparts; only loads need the sign-extension step.
func execStib(c *Core, ins *decode.Instruction) error { return execStob(c, ins) }
func execStis(c *Core, ins *decode.Instruction) error { return execStos(c, ins) }

func execSt(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	c.Bus.StoreWord(a, c.Regs.GetSource(ins.MemSrcDest()))
	return nil
}

func execStl(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	v, err := c.Regs.GetDouble(ins.MemSrcDest())
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	c.Bus.StoreLong(a, v)
	return nil
}

func execStt(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	v, err := c.Regs.GetTriple(ins.MemSrcDest())
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	c.Bus.StoreWord(a, v[0])
	c.Bus.StoreWord(a+4, v[1])
	c.Bus.StoreWord(a+8, v[2])
	return nil
}

func execStq(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	v, err := c.Regs.GetQuad(ins.MemSrcDest())
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	c.Bus.StoreQuad(a, v)
	return nil
}

// execLda writes the computed effective address itself, never touching
// memory (spec.md §4.5).
func execLda(c *Core, ins *decode.Instruction) error {
	a, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	return memWrite(c, ins, a)
}
