/*
 * SX960 - IAC (inter-agent communication) message decode and dispatch.
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

// Package iac decodes the 16-byte messages a synchronized store to the
// IAC window delivers (spec.md §4.7) and dispatches them to a Handler.
package iac

import "github.com/rcornwell/sx960sim/emu/word"

// Message types recognized by this core.
const (
	TypeNormalBoot       byte = 0x00
	TypeChecksumFailHalt byte = 0x01
	TypeGenerateInterrupt byte = 0x40
	TypeTestPendingIRQ   byte = 0x41
	TypeStoreSystemBase  byte = 0x80
	TypeSetBreakpoint    byte = 0x8F
	TypePurgeICache      byte = 0x89
	TypeReinitialize     byte = 0x93
)

// Message is a decoded 16-byte IAC message: byte 3 = type, byte 2 =
// field1, halfword 0..1 = field2, words 1..3 = fields 3..5 (spec.md §4.7).
type Message struct {
	Type   byte
	Field1 byte
	Field2 word.Short
	Field3 word.Ordinal
	Field4 word.Ordinal
	Field5 word.Ordinal
}

// Decode parses the raw 16-byte store into a Message.
func Decode(raw [16]byte) Message {
	word0 := leWord(raw[0:4])
	return Message{
		Type:   raw[3],
		Field1: raw[2],
		Field2: word.Short(word0 & 0xFFFF),
		Field3: leWord(raw[4:8]),
		Field4: leWord(raw[8:12]),
		Field5: leWord(raw[12:16]),
	}
}

func leWord(b []byte) word.Ordinal {
	return word.Ordinal(b[0]) | word.Ordinal(b[1])<<8 | word.Ordinal(b[2])<<16 | word.Ordinal(b[3])<<24
}

// Handler implements the core-side effect of each recognized IAC type.
// The core satisfies this interface; Dispatch calls exactly one method
// per message, so an unrecognized type is simply not dispatched.
type Handler interface {
	NormalBoot()
	ChecksumFailHalt()
	GenerateInterrupt(vector byte)
	TestPendingInterrupts()
	StoreSystemBase(addr word.Ordinal)
	SetBreakpoint(addr word.Ordinal)
	PurgeInstructionCache()
	Reinitialize(sat, prcb, startIP word.Ordinal)
}

// Dispatch decodes raw and invokes the matching Handler method. It
// reports whether the type was recognized.
func Dispatch(raw [16]byte, h Handler) bool {
	msg := Decode(raw)
	switch msg.Type {
	case TypeNormalBoot:
		h.NormalBoot()
	case TypeChecksumFailHalt:
		h.ChecksumFailHalt()
	case TypeGenerateInterrupt:
		h.GenerateInterrupt(msg.Field1)
	case TypeTestPendingIRQ:
		h.TestPendingInterrupts()
	case TypeStoreSystemBase:
		h.StoreSystemBase(msg.Field3)
	case TypeSetBreakpoint:
		h.SetBreakpoint(msg.Field3)
	case TypePurgeICache:
		h.PurgeInstructionCache()
	case TypeReinitialize:
		h.Reinitialize(msg.Field3, msg.Field4, msg.Field5)
	default:
		return false
	}
	return true
}
