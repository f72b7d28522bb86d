/*
 * SX960 - Fault taxonomy and fault raising.
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

// Package fault implements the architectural fault taxonomy: 32-bit codes
// whose high 16 bits name a class and whose low 16 bits name a sub-kind
// within that class.
package fault

import "fmt"

// Class identifies the high-16-bit fault class.
type Class uint16

const (
	ClassTrace      Class = 0x0001
	ClassOperation  Class = 0x0002
	ClassArithmetic Class = 0x0003
	ClassConstraint Class = 0x0005
	ClassProtection Class = 0x0007
	ClassType       Class = 0x000A
)

func (c Class) String() string {
	switch c {
	case ClassTrace:
		return "Trace"
	case ClassOperation:
		return "Operation"
	case ClassArithmetic:
		return "Arithmetic"
	case ClassConstraint:
		return "Constraint"
	case ClassProtection:
		return "Protection"
	case ClassType:
		return "Type"
	default:
		return "Unknown"
	}
}

// Trace sub-kinds, carried in the low byte of a Trace-class code.
const (
	TraceInstruction uint16 = iota
	TraceBranch
	TraceCall
	TraceReturn
	TracePrereturn
	TraceSupervisor
	TraceBreakpoint
)

// Operation sub-kinds.
const (
	OperationInvalidOpcode uint16 = iota
	OperationInvalidOperand
)

// Arithmetic sub-kinds.
const (
	ArithmeticIntegerOverflow uint16 = iota
	ArithmeticZeroDivide
)

// Constraint sub-kinds.
const (
	ConstraintRange uint16 = iota
	ConstraintPrivileged
)

// Protection sub-kinds.
const (
	ProtectionLength uint16 = iota
)

// Type sub-kinds.
const (
	TypeMismatch uint16 = iota
)

// Fault is the error value raised by the execute dispatch whenever an
// instruction detects a condition the architecture specifies as a fault.
// The core's cycle loop treats any Fault as a reason to halt and report
// the faulting IP (spec.md §7: no fault-frame construction in this core).
type Fault struct {
	Class Class
	Code  uint16
	IP    uint32
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault (code %#04x) at IP %#08x", f.Class, f.Code, f.IP)
}

// Code32 packs the fault into the architectural 32-bit representation:
// class in the high 16 bits, sub-kind in the low 16.
func (f *Fault) Code32() uint32 {
	return uint32(f.Class)<<16 | uint32(f.Code)
}

// New constructs a Fault. ip is filled in by the caller (the cycle loop)
// once the faulting instruction's address is known; instruction bodies
// may pass 0 and let the dispatcher stamp it.
func New(class Class, code uint16, ip uint32) *Fault {
	return &Fault{Class: class, Code: code, IP: ip}
}
