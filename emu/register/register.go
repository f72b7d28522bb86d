/*
 * SX960 - Register file: local/global addressing, literals, and
 * destination handles.
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

// Package register implements the 32-logical-register operand space: 16
// frame-local registers backed by the frame cache, 16 global registers,
// and literal operands that alias indices 0-31 read-only.
package register

import (
	"errors"

	"github.com/rcornwell/sx960sim/emu/word"
)

// ErrInvalidOperand is raised whenever code asks for a destination handle
// on a literal operand, or a misaligned double/triple/quad register.
var ErrInvalidOperand = errors.New("operation: invalid operand")

// Aliases for the three architecturally meaningful local registers.
const (
	PFP = 0 // Previous Frame Pointer + return type
	SP  = 1 // Stack pointer within the current frame
	RIP = 2 // Return instruction pointer
)

// FP is global register 15: the current Frame Pointer.
const FP = 15

// PFPIndex, SPIndex, RIPIndex and FPIndex are the absolute (0-31) Index
// values for the four architecturally aliased registers.
func PFPIndex() Index { return Index{Raw: PFP} }
func SPIndex() Index  { return Index{Raw: SP} }
func RIPIndex() Index { return Index{Raw: RIP} }
func FPIndex() Index  { return Index{Raw: 16 + FP} }

// Index names one of the 32 logical register operands, or a literal.
type Index struct {
	Raw     uint8 // 0-31
	Literal bool
}

func (i Index) IsLiteral() bool { return i.Literal }

// LiteralValue returns the literal operand's numeric value (0-31).
func (i Index) LiteralValue() word.Ordinal { return word.Ordinal(i.Raw) }

func (i Index) isGlobal() bool { return i.Raw >= 16 }

// File is the register bank: the current frame's 16 locals (via the
// frame cache) plus 16 globals, addressed by a 5-bit index.
type File struct {
	Cache   *FrameCache
	Globals [16]word.Ordinal
}

func NewFile(cache *FrameCache) *File {
	return &File{Cache: cache}
}

// GetSource reads the current value of idx as an ordinal. Literal indices
// return their numeric value directly.
func (f *File) GetSource(idx Index) word.Ordinal {
	if idx.IsLiteral() {
		return idx.LiteralValue()
	}
	if idx.isGlobal() {
		return f.Globals[idx.Raw-16]
	}
	return f.Cache.Current().locals[idx.Raw]
}

// SetAt writes v to the register named by idx. Attempting to write a
// literal index is a programming error in the caller (decode guarantees
// destination indices are never literal) and panics rather than silently
// discarding the write.
func (f *File) SetAt(idx Index, v word.Ordinal) {
	if idx.IsLiteral() {
		panic("register: write to literal operand")
	}
	if idx.isGlobal() {
		f.Globals[idx.Raw-16] = v
		return
	}
	f.Cache.Current().locals[idx.Raw] = v
}

// Destination is a write handle produced by GetDestination.
type Destination struct {
	file *File
	idx  Index
}

func (d Destination) Set(v word.Ordinal) { d.file.SetAt(d.idx, v) }
func (d Destination) Index() Index       { return d.idx }

// GetDestination returns a handle that commits to idx. A literal index
// raises ErrInvalidOperand (spec.md §4.3).
func (f *File) GetDestination(idx Index) (Destination, error) {
	if idx.IsLiteral() {
		return Destination{}, ErrInvalidOperand
	}
	return Destination{file: f, idx: idx}, nil
}

// GetDouble reads a 64-bit logical register formed from idx and idx+1.
// idx must be even. A literal operand zero-extends to 64 bits rather than
// pulling its "upper half" from the following register.
func (f *File) GetDouble(idx Index) (word.LongOrdinal, error) {
	if idx.IsLiteral() {
		return word.LongOrdinal(idx.LiteralValue()), nil
	}
	if idx.Raw%2 != 0 {
		return 0, ErrInvalidOperand
	}
	lo := f.GetSource(idx)
	hi := f.GetSource(Index{Raw: idx.Raw + 1})
	return word.LongOrdinal(lo) | word.LongOrdinal(hi)<<32, nil
}

// SetDouble writes a 64-bit value across idx and idx+1. idx must be even.
func (f *File) SetDouble(idx Index, v word.LongOrdinal) error {
	if idx.Raw%2 != 0 {
		return ErrInvalidOperand
	}
	f.SetAt(idx, word.Ordinal(v))
	f.SetAt(Index{Raw: idx.Raw + 1}, word.Ordinal(v>>32))
	return nil
}

// GetQuad reads the four consecutive registers starting at idx, which
// must be a multiple of 4. Used for both triple (96-bit, top word
// ignored by the caller) and quad (128-bit) logical registers. A literal
// operand zero-extends into word 0, with words 1-3 zero.
func (f *File) GetQuad(idx Index) ([4]word.Ordinal, error) {
	var out [4]word.Ordinal
	if idx.IsLiteral() {
		out[0] = idx.LiteralValue()
		return out, nil
	}
	if idx.Raw%4 != 0 {
		return out, ErrInvalidOperand
	}
	for i := 0; i < 4; i++ {
		out[i] = f.GetSource(Index{Raw: idx.Raw + uint8(i)})
	}
	return out, nil
}

// SetQuad writes four consecutive registers starting at idx (multiple of 4).
func (f *File) SetQuad(idx Index, v [4]word.Ordinal) error {
	if idx.Raw%4 != 0 {
		return ErrInvalidOperand
	}
	for i := 0; i < 4; i++ {
		f.SetAt(Index{Raw: idx.Raw + uint8(i)}, v[i])
	}
	return nil
}

// GetTriple reads the 96-bit logical register at idx (multiple of 4); the
// fourth word is ignored.
func (f *File) GetTriple(idx Index) ([3]word.Ordinal, error) {
	q, err := f.GetQuad(idx)
	if err != nil {
		return [3]word.Ordinal{}, err
	}
	return [3]word.Ordinal{q[0], q[1], q[2]}, nil
}

// SetTriple writes the low three words of the 128-bit bank at idx,
// leaving the fourth register untouched.
func (f *File) SetTriple(idx Index, v [3]word.Ordinal) error {
	if idx.Raw%4 != 0 {
		return ErrInvalidOperand
	}
	for i := 0; i < 3; i++ {
		f.SetAt(Index{Raw: idx.Raw + uint8(i)}, v[i])
	}
	return nil
}
