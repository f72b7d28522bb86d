/*
 * SX960 - Core state: registers, control registers, and the boot
 * protocol that brings a Core to its start vector.
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

// Package cpu implements the execution engine: the opcode-indexed
// dispatch tables, the fetch-decode-execute cycle loop, and the call/ret
// frame protocol. This is the core described by spec.md §2 items 4-10.
package cpu

import (
	"log/slog"

	"github.com/rcornwell/sx960sim/emu/control"
	"github.com/rcornwell/sx960sim/emu/decode"
	"github.com/rcornwell/sx960sim/emu/fault"
	"github.com/rcornwell/sx960sim/emu/membus"
	"github.com/rcornwell/sx960sim/emu/register"
	"github.com/rcornwell/sx960sim/emu/word"
)

// FrameCacheSlots is the representative on-chip frame-cache capacity
// named by spec.md §3 ("representative N = 4").
const FrameCacheSlots = 4

type handler func(c *Core, ins *decode.Instruction) error

// Core holds everything the cycle loop, decoder, and execute dispatch
// share: control registers, the register file/frame cache, the IP, and
// the MemoryBus. It never names its board (spec.md §9 design note).
type Core struct {
	AC control.AC
	PC control.PC
	TC control.TC

	Cache *register.FrameCache
	Regs  *register.File
	Bus   membus.Bus

	IP          word.Ordinal
	autoAdvance bool
	halted      bool
	lastFault   *fault.Fault

	sysProcTableBase   word.Ordinal
	faultProcTableBase word.Ordinal
	interruptTableBase word.Ordinal
	faultTableBase     word.Ordinal
	supervisorSP       word.Ordinal

	breakpoint    word.Ordinal
	breakpointSet bool

	table [4096]handler

	Log *slog.Logger
}

// NewCore builds a Core wired to bus and registers itself as the bus's
// IAC sink, so synchronized 128-bit stores to the IAC window reach
// DispatchIAC (spec.md §4.7).
func NewCore(bus membus.Bus, log *slog.Logger) *Core {
	cache := register.NewFrameCache(FrameCacheSlots)
	c := &Core{
		Cache: cache,
		Regs:  register.NewFile(cache),
		Bus:   bus,
		Log:   log,
	}
	if ram, ok := bus.(*membus.RAM); ok {
		ram.SetIACSink(c)
	}
	c.buildDispatchTable()
	return c
}

// Boot implements spec.md §6: reads the 128-bit boot block at base,
// initializes the Process Controls priority/state, seeds FP/SP/PFP from
// the PRCB's interrupt stack pointer, takes ownership of the current
// frame-cache slot, and jumps to the start IP.
func (c *Core) Boot(base word.Ordinal) {
	block := c.Bus.LoadQuad(base)
	sat := block[0]
	prcb := block[1]
	startIP := block[3]

	c.PC.SetPriority(31)
	c.PC.SetValue(c.PC.Value() | 0x2000) // pcState bit

	isp := c.Bus.LoadWord(prcb + 24)
	c.SetFP(isp)
	c.SetSP(isp)
	c.SetPFP(isp)

	// AdoptCurrent, not TakeOwnership: at boot there is no older frame to
	// round-robin past, only the cache's already-current slot (holding the
	// FP/SP/PFP locals just written above) becoming valid at isp.
	c.Cache.AdoptCurrent(c.FP())

	c.sysProcTableBase = c.Bus.LoadWord(sat + 120)
	c.faultProcTableBase = c.Bus.LoadWord(sat + 152)
	c.interruptTableBase = c.Bus.LoadWord(prcb + 20)
	c.faultTableBase = c.Bus.LoadWord(prcb + 40)
	c.supervisorSP = c.Bus.LoadWord(c.sysProcTableBase + 12)

	c.IP = startIP
	if c.Log != nil {
		c.Log.Info("boot complete", "sat", sat, "prcb", prcb, "startIP", startIP)
	}
}

// Register-alias accessors (spec.md §3 table): PFP/SP/RIP are frame
// locals 0/1/2, FP is global 15.
func (c *Core) FP() word.Ordinal     { return c.Regs.GetSource(register.FPIndex()) }
func (c *Core) SetFP(v word.Ordinal) { c.Regs.SetAt(register.FPIndex(), v) }
func (c *Core) SP() word.Ordinal     { return c.Regs.GetSource(register.SPIndex()) }
func (c *Core) SetSP(v word.Ordinal) { c.Regs.SetAt(register.SPIndex(), v) }
func (c *Core) PFP() word.Ordinal    { return c.Regs.GetSource(register.PFPIndex()) }
func (c *Core) SetPFP(v word.Ordinal) { c.Regs.SetAt(register.PFPIndex(), v) }
func (c *Core) RIP() word.Ordinal    { return c.Regs.GetSource(register.RIPIndex()) }
func (c *Core) SetRIP(v word.Ordinal) { c.Regs.SetAt(register.RIPIndex(), v) }

// Previous-Frame-Pointer encoding (spec.md §3): low 4 bits hold the
// 3-bit return type plus a prereturn-trace flag; the rest is the masked
// frame address.
func encodePFP(addr word.Ordinal, returnType uint8, prereturnTrace bool) word.Ordinal {
	v := addr &^ 0xF
	v |= word.Ordinal(returnType & 0x7)
	if prereturnTrace {
		v |= 0x8
	}
	return v
}

func pfpAddress(v word.Ordinal) word.Ordinal    { return v &^ 0xF }
func pfpReturnType(v word.Ordinal) uint8        { return uint8(v & 0x7) }
func pfpPrereturnTrace(v word.Ordinal) bool     { return v&0x8 != 0 }

// Halted reports whether the core has stopped, either because the bus
// requested a halt or because a fault halted execution (spec.md §5, §7).
func (c *Core) Halted() bool { return c.halted || c.Bus.Halted() }

// LastFault returns the most recent fault that halted the core, or nil.
func (c *Core) LastFault() *fault.Fault { return c.lastFault }

func (c *Core) raise(class fault.Class, code uint16) error {
	f := fault.New(class, code, c.IP)
	c.lastFault = f
	c.halted = true
	if c.Log != nil {
		c.Log.Error("fault", "class", class.String(), "code", code, "ip", c.IP)
	}
	return f
}

// cancelAutoAdvance tells Step not to advance IP at the end of this
// cycle; used by every control-transfer instruction.
func (c *Core) cancelAutoAdvance() { c.autoAdvance = false }

// regIndexGlobal builds the absolute Index for global register n (0-15).
func regIndexGlobal(n uint8) register.Index { return register.Index{Raw: 16 + n} }
