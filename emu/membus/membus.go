/*
 * SX960 - MemoryBus contract: the core's sole interface to host I/O.
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

// Package membus defines the MemoryBus capability the core consumes
// (spec.md §6) and a flat-RAM implementation suitable for a desktop host
// or a test. Board-specific I/O (serial console, SD card, PSRAM, LCD,
// EEPROM) is explicitly out of scope (spec.md §1) and lives behind this
// same interface in a real deployment.
package membus

import "github.com/rcornwell/sx960sim/emu/word"

// Address-space conventions the core relies on (spec.md §6).
const (
	IACWindowBase word.Ordinal = 0xFF000000
	IACWindowEnd  word.Ordinal = 0xFF00001F
	InterruptCtrl word.Ordinal = 0xFF000004
)

// Bus is the capability the execution engine requires of its host. An
// implementation may back it with real peripherals; RAM provides a
// simple flat-memory instance for boot images and tests.
type Bus interface {
	LoadByte(addr word.Ordinal) word.Byte
	LoadShort(addr word.Ordinal) word.Short
	LoadWord(addr word.Ordinal) word.Ordinal
	LoadLong(addr word.Ordinal) word.LongOrdinal
	LoadQuad(addr word.Ordinal) [4]word.Ordinal

	StoreByte(addr word.Ordinal, v word.Byte)
	StoreShort(addr word.Ordinal, v word.Short)
	StoreWord(addr word.Ordinal, v word.Ordinal)
	StoreLong(addr word.Ordinal, v word.LongOrdinal)
	StoreQuad(addr word.Ordinal, v [4]word.Ordinal)

	// AtomicLoad/AtomicStore back atadd/atmod's locked load-modify-store
	// pair. Bus implementations must not interleave other bus traffic
	// between a matched AtomicLoad/AtomicStore call (spec.md §5).
	AtomicLoad(addr word.Ordinal) word.Ordinal
	AtomicStore(addr word.Ordinal, v word.Ordinal)

	// SynchronizedStoreWord/Quad back synmov/synmovq (synmovl stores
	// through StoreLong). A bus may intercept writes landing in the IAC
	// window (spec.md §4.7); it does not commit an intercepted store to
	// ordinary memory, and the bool return reports whether it intercepted.
	SynchronizedStoreWord(addr word.Ordinal, v word.Ordinal) (intercepted bool)
	SynchronizedStoreQuad(addr word.Ordinal, v [4]word.Ordinal) (intercepted bool)

	// Halted reports whether a write to a host-designated halt address
	// has requested the cycle loop stop (spec.md §5).
	Halted() bool
}
