/*
 * SX960 - Flat-RAM MemoryBus adapter: byte-granular storage with the
 * little-endian unaligned-access contract spec.md §6 requires.
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

package membus

import "github.com/rcornwell/sx960sim/emu/word"

// IACSink receives a raw 16-byte IAC message whenever a synchronized
// 128-bit store lands in the IAC command window (spec.md §4.7). The core
// registers itself as the sink via RAM.SetIACSink.
type IACSink interface {
	DispatchIAC(msg [16]byte)
}

// RAM is a flat byte-addressable memory implementing Bus. It is the
// default host for a boot image or a test; a board-specific adapter
// would implement Bus directly against real peripherals instead.
type RAM struct {
	mem       []byte
	haltAddr  word.Ordinal
	haltSet   bool
	halted    bool
	iacSink   IACSink
}

// NewRAM allocates size bytes of flat memory.
func NewRAM(size word.Ordinal) *RAM {
	return &RAM{mem: make([]byte, size)}
}

// SetHaltAddress designates the address whose write requests the cycle
// loop stop (spec.md §5).
func (r *RAM) SetHaltAddress(addr word.Ordinal) {
	r.haltAddr = addr
	r.haltSet = true
}

// SetIACSink registers the core as the recipient of decoded IAC messages.
func (r *RAM) SetIACSink(sink IACSink) { r.iacSink = sink }

// Load returns the raw backing store for image loaders to copy into.
func (r *RAM) Load() []byte { return r.mem }

func (r *RAM) LoadByte(addr word.Ordinal) word.Byte {
	if int(addr) >= len(r.mem) {
		return 0
	}
	return r.mem[addr]
}

func (r *RAM) StoreByte(addr word.Ordinal, v word.Byte) {
	if int(addr) >= len(r.mem) {
		return
	}
	r.mem[addr] = v
	r.checkHalt(addr)
}

// LoadShort assembles two adjacent bytes little-endian; alignment is not
// required (spec.md §6).
func (r *RAM) LoadShort(addr word.Ordinal) word.Short {
	return word.Short(r.LoadByte(addr)) | word.Short(r.LoadByte(addr+1))<<8
}

func (r *RAM) StoreShort(addr word.Ordinal, v word.Short) {
	r.StoreByte(addr, word.Byte(v))
	r.StoreByte(addr+1, word.Byte(v>>8))
}

// LoadWord assembles up to two 32-bit cells for an unaligned read
// (spec.md §6); expressed here simply as four little-endian bytes.
func (r *RAM) LoadWord(addr word.Ordinal) word.Ordinal {
	var v word.Ordinal
	for i := word.Ordinal(0); i < 4; i++ {
		v |= word.Ordinal(r.LoadByte(addr+i)) << (8 * i)
	}
	return v
}

func (r *RAM) StoreWord(addr word.Ordinal, v word.Ordinal) {
	for i := word.Ordinal(0); i < 4; i++ {
		r.StoreByte(addr+i, word.Byte(v>>(8*i)))
	}
}

func (r *RAM) LoadLong(addr word.Ordinal) word.LongOrdinal {
	lo := r.LoadWord(addr)
	hi := r.LoadWord(addr + 4)
	return word.LongOrdinal(lo) | word.LongOrdinal(hi)<<32
}

func (r *RAM) StoreLong(addr word.Ordinal, v word.LongOrdinal) {
	r.StoreWord(addr, word.Ordinal(v))
	r.StoreWord(addr+4, word.Ordinal(v>>32))
}

func (r *RAM) LoadQuad(addr word.Ordinal) [4]word.Ordinal {
	var out [4]word.Ordinal
	for i := range out {
		out[i] = r.LoadWord(addr + word.Ordinal(i*4))
	}
	return out
}

func (r *RAM) StoreQuad(addr word.Ordinal, v [4]word.Ordinal) {
	for i, w := range v {
		r.StoreWord(addr+word.Ordinal(i*4), w)
	}
}

// AtomicLoad/AtomicStore back atadd/atmod. RAM runs the cycle loop
// single-threaded (spec.md §5), so the "bus lock" is simply the absence
// of any other goroutine touching mem between the two calls.
func (r *RAM) AtomicLoad(addr word.Ordinal) word.Ordinal  { return r.LoadWord(addr) }
func (r *RAM) AtomicStore(addr word.Ordinal, v word.Ordinal) { r.StoreWord(addr, v) }

// SynchronizedStoreWord backs synmov. A word-sized synchronized store
// never lands entirely inside the 16-byte IAC window's 128-bit message
// slot, so it always falls through to an ordinary store.
func (r *RAM) SynchronizedStoreWord(addr word.Ordinal, v word.Ordinal) bool {
	r.StoreWord(addr, v)
	return false
}

// SynchronizedStoreQuad backs synmovq. When addr is the IAC window base,
// the 128 bits are interpreted as an IAC message instead of being
// committed to memory (spec.md §4.7).
func (r *RAM) SynchronizedStoreQuad(addr word.Ordinal, v [4]word.Ordinal) bool {
	if addr == IACWindowBase && r.iacSink != nil {
		var msg [16]byte
		for i, w := range v {
			msg[i*4+0] = byte(w)
			msg[i*4+1] = byte(w >> 8)
			msg[i*4+2] = byte(w >> 16)
			msg[i*4+3] = byte(w >> 24)
		}
		r.iacSink.DispatchIAC(msg)
		return true
	}
	r.StoreQuad(addr, v)
	return false
}

func (r *RAM) Halted() bool { return r.halted }

func (r *RAM) checkHalt(addr word.Ordinal) {
	if r.haltSet && addr == r.haltAddr {
		r.halted = true
	}
}
