/*
 * SX960 - Arithmetic, Process and Trace control registers.
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

// Package control implements the three 32-bit control registers (AC, PC,
// TC): each is a plain word with named bitfield accessors and the single
// `modify` primitive the architecture uses to update them uniformly.
package control

import "github.com/rcornwell/sx960sim/emu/word"

// Bitfield layout for the Arithmetic Controls register.
const (
	acConditionCodeMask word.Ordinal = 0x00000007 // bits 0-2
	acNoImpreciseFaults word.Ordinal = 0x00000080 // bit 7
	acOverflowFlag       word.Ordinal = 0x00000100 // bit 8
	acOverflowMask       word.Ordinal = 0x00001000 // bit 12
)

// Condition code values used throughout the compare/branch/test family.
const (
	CCUnordered word.Ordinal = 0b000
	CCEqual     word.Ordinal = 0b010
	CCGreater   word.Ordinal = 0b001
	CCLess      word.Ordinal = 0b100
)

// AC is the Arithmetic Controls register.
type AC struct{ v word.Ordinal }

func (r *AC) Value() word.Ordinal     { return r.v }
func (r *AC) SetValue(v word.Ordinal) { r.v = v }

// Modify applies `(src & mask) | (prior & ^mask)` in place and returns the
// prior value, per spec.md §4.4.
func (r *AC) Modify(mask, src word.Ordinal) word.Ordinal {
	prior := r.v
	r.v = word.Modify(mask, src, prior)
	return prior
}

func (r *AC) ConditionCode() word.Ordinal { return r.v & acConditionCodeMask }

// SetConditionCode replaces the 3-bit condition code, leaving every other
// bit of AC untouched.
func (r *AC) SetConditionCode(cc word.Ordinal) {
	r.v = (r.v &^ acConditionCodeMask) | (cc & acConditionCodeMask)
}

// CCMatches implements the shared compare/branch/fault/test predicate:
// true iff (mask==0 && cc==0) or (mask!=0 && (cc&mask)!=0).
func (r *AC) CCMatches(mask word.Ordinal) bool {
	cc := r.ConditionCode()
	if mask == 0 {
		return cc == 0
	}
	return cc&mask != 0
}

func (r *AC) OverflowFlag() bool    { return r.v&acOverflowFlag != 0 }
func (r *AC) SetOverflowFlag(b bool) { r.setBit(acOverflowFlag, b) }
func (r *AC) OverflowMask() bool    { return r.v&acOverflowMask != 0 }
func (r *AC) NoImpreciseFaults() bool { return r.v&acNoImpreciseFaults != 0 }

func (r *AC) setBit(mask word.Ordinal, b bool) {
	if b {
		r.v |= mask
	} else {
		r.v &^= mask
	}
}

// Bitfield layout for the Process Controls register.
const (
	pcTraceEnable      word.Ordinal = 0x00000001 // bit 0
	pcExecutionMode    word.Ordinal = 0x00000002 // bit 1: 0=user, 1=supervisor
	pcTraceFaultPending word.Ordinal = 0x00000400 // bit 10
	pcState            word.Ordinal = 0x00002000 // bit 13
	pcPriorityShift                 = 16
	pcPriorityMask     word.Ordinal = 0x001F0000 // bits 16-20
	pcInternalStateShift            = 24
	pcInternalStateMask word.Ordinal = 0xFF000000 // bits 24-31
)

// PC is the Process Controls register.
type PC struct{ v word.Ordinal }

func (r *PC) Value() word.Ordinal     { return r.v }
func (r *PC) SetValue(v word.Ordinal) { r.v = v }

func (r *PC) Modify(mask, src word.Ordinal) word.Ordinal {
	prior := r.v
	r.v = word.Modify(mask, src, prior)
	return prior
}

func (r *PC) TraceEnable() bool      { return r.v&pcTraceEnable != 0 }
func (r *PC) SetTraceEnable(b bool)  { r.setBit(pcTraceEnable, b) }
func (r *PC) Supervisor() bool       { return r.v&pcExecutionMode != 0 }
func (r *PC) SetSupervisor(b bool)   { r.setBit(pcExecutionMode, b) }
func (r *PC) TraceFaultPending() bool { return r.v&pcTraceFaultPending != 0 }

func (r *PC) Priority() word.Ordinal {
	return (r.v & pcPriorityMask) >> pcPriorityShift
}

func (r *PC) SetPriority(p word.Ordinal) {
	r.v = (r.v &^ pcPriorityMask) | ((p << pcPriorityShift) & pcPriorityMask)
}

func (r *PC) InternalState() word.Ordinal {
	return (r.v & pcInternalStateMask) >> pcInternalStateShift
}

func (r *PC) setBit(mask word.Ordinal, b bool) {
	if b {
		r.v |= mask
	} else {
		r.v &^= mask
	}
}

// Bitfield layout for the Trace Controls register: seven mode bits at
// 0-6, seven matching pending-event bits at 16-22.
const (
	tcInstructionMode word.Ordinal = 1 << 0
	tcBranchMode      word.Ordinal = 1 << 1
	tcCallMode        word.Ordinal = 1 << 2
	tcReturnMode      word.Ordinal = 1 << 3
	tcPrereturnMode   word.Ordinal = 1 << 4
	tcSupervisorMode  word.Ordinal = 1 << 5
	tcBreakpointMode  word.Ordinal = 1 << 6

	tcPendingShift = 16
)

// TC is the Trace Controls register.
type TC struct{ v word.Ordinal }

func (r *TC) Value() word.Ordinal     { return r.v }
func (r *TC) SetValue(v word.Ordinal) { r.v = v }

func (r *TC) Modify(mask, src word.Ordinal) word.Ordinal {
	prior := r.v
	r.v = word.Modify(mask, src, prior)
	return prior
}

func (r *TC) InstructionMode() bool { return r.v&tcInstructionMode != 0 }
func (r *TC) BranchMode() bool      { return r.v&tcBranchMode != 0 }
func (r *TC) CallMode() bool        { return r.v&tcCallMode != 0 }
func (r *TC) ReturnMode() bool      { return r.v&tcReturnMode != 0 }
func (r *TC) PrereturnMode() bool   { return r.v&tcPrereturnMode != 0 }
func (r *TC) SupervisorMode() bool  { return r.v&tcSupervisorMode != 0 }
func (r *TC) BreakpointMode() bool  { return r.v&tcBreakpointMode != 0 }

// SetPending marks the pending-event bit that mirrors mode bit `mode`.
func (r *TC) SetPending(mode word.Ordinal) {
	r.v |= mode << tcPendingShift
}

func (r *TC) Pending(mode word.Ordinal) bool {
	return r.v&(mode<<tcPendingShift) != 0
}
