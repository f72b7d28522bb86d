/*
 * SX960 - Data-move family: mov/movl/movt/movq copy aligned register
 * banks from src1 to src/dest.
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
)

func execMov(c *Core, ins *decode.Instruction) error {
	v := c.Regs.GetSource(ins.Src1(false))
	return regWrite(c, ins, v)
}

func execMovl(c *Core, ins *decode.Instruction) error {
	v, err := c.Regs.GetDouble(ins.Src1(false))
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	if err := c.Regs.SetDouble(ins.SrcDest(true), v); err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	return nil
}

func execMovt(c *Core, ins *decode.Instruction) error {
	v, err := c.Regs.GetTriple(ins.Src1(false))
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	if err := c.Regs.SetTriple(ins.SrcDest(true), v); err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	return nil
}

func execMovq(c *Core, ins *decode.Instruction) error {
	v, err := c.Regs.GetQuad(ins.Src1(false))
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	if err := c.Regs.SetQuad(ins.SrcDest(true), v); err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOperand)
	}
	return nil
}
