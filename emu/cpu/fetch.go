/*
 * SX960 - Cycle loop: fetch, decode, execute, advance IP.
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

// Step executes exactly one instruction (spec.md §2 item 10). It fetches
// the first word, probes it to learn whether it is MEM-format
// double-wide, fetches the second word only if so, dispatches on the
// effective opcode, and advances IP unless the handler cancelled
// auto-advance (a branch, call, or ret already set IP itself).
func (c *Core) Step() error {
	if c.Halted() {
		return nil
	}

	c.autoAdvance = true

	low := c.Bus.LoadWord(c.IP)
	probe := decode.Decode(low, 0)

	var size word.Ordinal = 4
	ins := probe
	if probe.Format() == decode.FormatMEM && probe.IsDoubleWide() {
		high := c.Bus.LoadWord(c.IP + 4)
		ins = decode.Decode(low, high)
		size = 8
	}

	h := c.table[ins.EffectiveOpcode()]
	if h == nil {
		return c.raise(fault.ClassOperation, fault.OperationInvalidOpcode)
	}

	if err := h(c, &ins); err != nil {
		c.halted = true
		if f, ok := err.(*fault.Fault); ok {
			f.IP = c.IP
			c.lastFault = f
		}
		return err
	}

	if c.autoAdvance {
		c.IP += size
	}
	return nil
}

// Run drives the cycle loop until the core halts or Step reports a fault.
func (c *Core) Run() error {
	for !c.Halted() {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
