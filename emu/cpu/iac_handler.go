/*
 * SX960 - IAC handler: the core's response to each recognized inter-
 * agent-communication message type (spec.md §4.7).
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
	"github.com/rcornwell/sx960sim/emu/iac"
	"github.com/rcornwell/sx960sim/emu/word"
)

// DispatchIAC satisfies membus.IACSink: a synchronized 128-bit store to
// the IAC window lands here as a raw 16-byte message.
func (c *Core) DispatchIAC(msg [16]byte) {
	if !iac.Dispatch(msg, c) {
		if c.Log != nil {
			c.Log.Warn("unrecognized IAC message", "type", msg[3])
		}
	}
}

func (c *Core) NormalBoot() {
	c.Boot(0)
}

func (c *Core) ChecksumFailHalt() {
	c.halted = true
	if c.Log != nil {
		c.Log.Error("checksum-fail halt requested via IAC")
	}
}

// GenerateInterrupt and TestPendingInterrupts are reserved for a host
// that drives asynchronous interrupt delivery; this core has no
// interrupt source of its own, so both are logged no-ops.
func (c *Core) GenerateInterrupt(vector byte) {
	if c.Log != nil {
		c.Log.Info("IAC generate interrupt", "vector", vector)
	}
}

func (c *Core) TestPendingInterrupts() {
	c.checkPendingInterrupts()
}

// StoreSystemBase writes the (SAT base, PRCB base) pair as a 64-bit
// value at mem[addr] (spec.md §4.7).
func (c *Core) StoreSystemBase(addr word.Ordinal) {
	v := word.LongOrdinal(c.sysProcTableBase) | word.LongOrdinal(c.faultProcTableBase)<<32
	c.Bus.StoreLong(addr, v)
}

func (c *Core) SetBreakpoint(addr word.Ordinal) {
	c.breakpoint = addr
	c.breakpointSet = true
}

// PurgeInstructionCache is a no-op in this core (spec.md §4.7: this core
// models no instruction cache).
func (c *Core) PurgeInstructionCache() {}

// Reinitialize re-runs the boot protocol against a freshly supplied
// SAT/PRCB/start-IP triple (spec.md §4.7 type 0x93).
func (c *Core) Reinitialize(sat, prcb, startIP word.Ordinal) {
	c.PC.SetPriority(31)
	c.PC.SetValue(c.PC.Value() | 0x2000)

	isp := c.Bus.LoadWord(prcb + 24)
	c.SetFP(isp)
	c.SetSP(isp)
	c.SetPFP(isp)

	c.Cache.AdoptCurrent(c.FP())

	c.sysProcTableBase = c.Bus.LoadWord(sat + 120)
	c.faultProcTableBase = c.Bus.LoadWord(sat + 152)
	c.interruptTableBase = c.Bus.LoadWord(prcb + 20)
	c.faultTableBase = c.Bus.LoadWord(prcb + 40)
	c.supervisorSP = c.Bus.LoadWord(c.sysProcTableBase + 12)

	c.IP = startIP
	c.halted = false
}
