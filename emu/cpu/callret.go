/*
 * SX960 - Call/return protocol: call, callx, calls, ret, and the
 * frame-cache-adjacent misc instructions flushreg/syncf/mark/fmark.
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
	"github.com/rcornwell/sx960sim/emu/register"
	"github.com/rcornwell/sx960sim/emu/word"
)

// Return-type codes carried in PFP's low 3 bits (spec.md §3).
const (
	returnLocal           uint8 = 0b000
	returnFault           uint8 = 0b001
	returnSupervisorClear uint8 = 0b010
	returnSupervisorSet   uint8 = 0b011
	returnInterrupt       uint8 = 0b111
)

// newFrameTemp computes `(SP + c) & ~c` with c = FrameAlignment-1, the
// shared frame-entry rounding rule (spec.md §4.6).
func (c *Core) newFrameTemp() word.Ordinal {
	const mask = word.Ordinal(register.FrameAlignment - 1)
	return (c.SP() + mask) &^ mask
}

// enterFrame is the shared tail of call/callx/calls: take ownership of
// temp, link PFP to the caller's frame with the given return type, and
// set up the new frame's FP/SP.
func (c *Core) enterFrame(temp word.Ordinal, returnType uint8) {
	oldFP := c.FP()
	c.Cache.TakeOwnership(c.Bus, temp)
	c.SetPFP(encodePFP(oldFP, returnType, false))
	c.SetFP(temp)
	c.SetSP(temp + word.Ordinal(register.FrameAlignment))
}

func execSyncf(c *Core, ins *decode.Instruction) error { return nil }

func execCall(c *Core, ins *decode.Instruction) error {
	if err := execSyncf(c, ins); err != nil {
		return err
	}
	disp, err := ins.Displacement()
	if err != nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOpcode)
	}
	temp := c.newFrameTemp()
	c.SetRIP(c.IP + 4)
	target := word.Ordinal(int64(c.IP) + int64(disp))
	c.enterFrame(temp, returnLocal)
	c.IP = target
	c.cancelAutoAdvance()
	return nil
}

func execCallx(c *Core, ins *decode.Instruction) error {
	if err := execSyncf(c, ins); err != nil {
		return err
	}
	target, err := effAddr(c, ins)
	if err != nil {
		return err
	}
	temp := c.newFrameTemp()
	c.SetRIP(c.IP + 4)
	c.enterFrame(temp, returnLocal)
	c.IP = target
	c.cancelAutoAdvance()
	return nil
}

// execCalls implements the system-call gate (spec.md §4.6): the target
// index is bounds-checked against the 260-entry system procedure table,
// and a gate whose type bits are nonzero raises the caller into
// supervisor mode unless it is already there.
func execCalls(c *Core, ins *decode.Instruction) error {
	target := c.Regs.GetSource(ins.Src1(false))
	if target > 259 {
		return c.raise(fault.ClassProtection, fault.ProtectionLength)
	}
	if err := execSyncf(c, ins); err != nil {
		return err
	}
	entry := c.Bus.LoadWord(c.sysProcTableBase + 48 + 4*target)
	gateType := uint8(entry & 0b11)
	entryAddr := entry &^ 0b11

	c.SetRIP(c.IP + 4)

	var temp word.Ordinal
	var returnType uint8
	if gateType == 0 || c.PC.Supervisor() {
		temp = c.newFrameTemp()
		returnType = returnLocal
	} else {
		temp = c.supervisorSP
		if c.PC.TraceEnable() {
			returnType = returnSupervisorSet
		} else {
			returnType = returnSupervisorClear
		}
		c.PC.SetSupervisor(true)
		c.PC.SetTraceEnable(temp&1 != 0)
	}

	c.enterFrame(temp, returnType)
	c.IP = entryAddr
	c.cancelAutoAdvance()
	return nil
}

// restorePreviousFrame implements the shared "restore previous frame"
// step every ret path performs (spec.md §4.6): the frame cache gives
// ownership back to the caller's slot, FP returns to PFP's recorded
// address, and IP branches to RIP.
func (c *Core) restorePreviousFrame() {
	target := pfpAddress(c.PFP())
	c.Cache.RestoreOwnership(c.Bus, target)
	c.SetFP(target)
	c.IP = c.RIP()
	c.cancelAutoAdvance()
}

func execRet(c *Core, ins *decode.Instruction) error {
	if err := execSyncf(c, ins); err != nil {
		return err
	}
	rrr := pfpReturnType(c.PFP())
	switch rrr {
	case returnLocal:
		c.restorePreviousFrame()
	case returnFault:
		x := c.Bus.LoadWord(c.FP() - 16)
		y := c.Bus.LoadWord(c.FP() - 12)
		supervisor := c.PC.Supervisor()
		c.restorePreviousFrame()
		c.AC.SetValue(y)
		if supervisor {
			c.PC.SetValue(x)
		}
	case returnSupervisorClear:
		if c.PC.Supervisor() {
			c.PC.SetTraceEnable(false)
			c.PC.SetSupervisor(false)
		}
		c.restorePreviousFrame()
	case returnSupervisorSet:
		if c.PC.Supervisor() {
			c.PC.SetTraceEnable(true)
			c.PC.SetSupervisor(false)
		}
		c.restorePreviousFrame()
	case returnInterrupt:
		x := c.Bus.LoadWord(c.FP() - 16)
		y := c.Bus.LoadWord(c.FP() - 12)
		supervisor := c.PC.Supervisor()
		c.restorePreviousFrame()
		c.AC.SetValue(y)
		if supervisor {
			c.PC.SetValue(x)
		}
		c.checkPendingInterrupts()
	default:
		// Reserved return type: architecturally undefined; this core
		// leaves IP and the frame untouched rather than guessing.
	}
	return nil
}

func execFlushreg(c *Core, ins *decode.Instruction) error {
	c.Cache.FlushReg(c.Bus)
	return nil
}

// execMark/execFmark raise a breakpoint-trace fault when tracing is
// armed for it; mark additionally requires the trace control's
// breakpoint mode bit (spec.md §4.5).
func execMark(c *Core, ins *decode.Instruction) error {
	if c.PC.TraceEnable() && c.TC.BreakpointMode() {
		return c.raise(fault.ClassTrace, fault.TraceBreakpoint)
	}
	return nil
}

func execFmark(c *Core, ins *decode.Instruction) error {
	if c.PC.TraceEnable() {
		return c.raise(fault.ClassTrace, fault.TraceBreakpoint)
	}
	return nil
}
