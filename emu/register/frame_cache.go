/*
 * SX960 - Frame cache: N on-chip banks of 16 local registers, spilling to
 * and filling from stack memory on eviction.
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

package register

import "github.com/rcornwell/sx960sim/emu/word"

// FrameAlignment is the byte alignment (and stack-frame size) imposed on
// every architectural frame pointer: 64 bytes, per spec.md §4.6 (`SP ←
// temp + 64`).
const FrameAlignment = 64

// Bus is the minimal memory surface the frame cache needs to spill and
// fill frames. emu/membus.Bus satisfies it.
type Bus interface {
	LoadWord(addr word.Ordinal) word.Ordinal
	StoreWord(addr, v word.Ordinal)
}

type slot struct {
	locals [16]word.Ordinal
	fp     word.Ordinal
	valid  bool
}

// FrameCache holds N on-chip frames; at most one is "current".
type FrameCache struct {
	slots   []slot
	current int
}

// NewFrameCache builds a frame cache with n slots (spec.md's
// representative architecture uses N=4).
func NewFrameCache(n int) *FrameCache {
	if n < 1 {
		n = 1
	}
	return &FrameCache{slots: make([]slot, n)}
}

func (c *FrameCache) Current() *slot { return &c.slots[c.current] }

// CurrentFP returns the frame-pointer address the current slot is
// recorded against (valid only once TakeOwnership/RestoreOwnership has
// run at least once).
func (c *FrameCache) CurrentFP() word.Ordinal { return c.slots[c.current].fp }

func (c *FrameCache) spill(bus Bus, s *slot) {
	if !s.valid {
		return
	}
	for i, v := range s.locals {
		bus.StoreWord(s.fp+word.Ordinal(i*4), v)
	}
}

func (c *FrameCache) fill(bus Bus, s *slot, fp word.Ordinal) {
	for i := range s.locals {
		s.locals[i] = bus.LoadWord(fp + word.Ordinal(i*4))
	}
	s.fp = fp
	s.valid = true
}

// AdoptCurrent marks the already-current slot valid at fp without
// advancing to another slot, and without spilling or filling: its
// existing locals (just written by the caller) become that frame's
// register bank. Used once, at boot/reinitialize, to engage the initial
// frame (spec.md §6 "take ownership of the current frame cache slot at
// FP") — distinct from TakeOwnership's call-entry round-robin handoff.
func (c *FrameCache) AdoptCurrent(fp word.Ordinal) {
	s := &c.slots[c.current]
	s.fp = fp
	s.valid = true
}

// TakeOwnership engages a fresh slot for a new frame pointer on call
// entry. The next slot in round-robin order becomes current; if it held
// a valid older frame, that frame is spilled to memory first (spec.md
// §4.3 "Take ownership").
func (c *FrameCache) TakeOwnership(bus Bus, newFP word.Ordinal) {
	next := (c.current + 1) % len(c.slots)
	s := &c.slots[next]
	c.spill(bus, s)
	*s = slot{fp: newFP, valid: true}
	c.current = next
}

// RestoreOwnership moves back to the previous slot on return. If that
// slot's recorded FP already matches target, its in-core contents are
// authoritative and no fill occurs; otherwise it is spilled (if valid)
// and refilled from target (spec.md §4.3 "Restore ownership").
func (c *FrameCache) RestoreOwnership(bus Bus, target word.Ordinal) {
	prev := (c.current - 1 + len(c.slots)) % len(c.slots)
	s := &c.slots[prev]
	if s.valid && s.fp == target {
		c.current = prev
		return
	}
	c.spill(bus, s)
	c.fill(bus, s, target)
	c.current = prev
}

// Relinquish marks the current slot invalid, spilling it first if valid.
func (c *FrameCache) Relinquish(bus Bus) {
	s := &c.slots[c.current]
	c.spill(bus, s)
	s.valid = false
}

// FlushReg relinquishes every slot except the current one, each spilling
// if valid (spec.md §4.3 `flushreg`).
func (c *FrameCache) FlushReg(bus Bus) {
	for i := range c.slots {
		if i == c.current {
			continue
		}
		c.spill(bus, &c.slots[i])
		c.slots[i].valid = false
	}
}

// NumSlots reports the cache's fixed capacity, for tests and diagnostics.
func (c *FrameCache) NumSlots() int { return len(c.slots) }

// SlotFP reports slot i's recorded frame pointer and validity, for tests.
func (c *FrameCache) SlotFP(i int) (word.Ordinal, bool) {
	return c.slots[i].fp, c.slots[i].valid
}
