/*
 * SX960 - Instruction decoder: classifies a 32- or 64-bit word into one
 * of CTRL, COBR, REG or MEM format and extracts its operand fields.
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

package decode

import (
	"errors"

	"github.com/rcornwell/sx960sim/emu/register"
	"github.com/rcornwell/sx960sim/emu/word"
)

// ErrNoDisplacement is returned by Displacement() for formats that carry
// no displacement field.
var ErrNoDisplacement = errors.New("decode: format has no displacement")

// Format names the four instruction-word layouts.
type Format int

const (
	FormatCTRL Format = iota
	FormatCOBR
	FormatREG
	FormatMEM
)

// MEMB addressing modes carrying an optional 32-bit displacement; when
// the MEM-format mode field is one of these five, the instruction is
// double-wide (spec.md §4.2).
const (
	modeIPWithDisplacement          = 0x5
	modeAbsDisplacement             = 0x6
	modeRegIndirectWithDisplacement = 0x7
	modeIndexWithDisplacement       = 0xC
	modeRegIndirectIndexDisp        = 0xD
)

// Instruction is the decoder's output: the raw word plus the effective
// opcode and whichever fields the format defines.
type Instruction struct {
	raw    uint64
	format Format

	majorOpcode uint8
	extOpcode   uint8 // REG format only

	// REG/COBR operand fields.
	src1Raw uint8
	src1Lit bool
	src2Raw uint8
	src2Lit bool
	sdRaw   uint8
	sdLit   bool // REG only

	// MEM format fields.
	memMode  uint8 // MEMA: always abs-offset; MEMB: 4-bit mode
	isMEMA   bool
	memaRegIndirect bool
	abase    uint8
	indexReg uint8
	scale    uint8
	offset12 uint32 // MEMA
	useIndex bool

	ctrlDisp int32 // CTRL 24-bit signed displacement
	cobrDisp int32 // COBR 13-bit signed displacement
	membDisp int32 // MEMB 32-bit signed displacement (second word)
	hasDisp  bool
}

// Decode classifies a fetched word. low holds the first 32 bits; high
// holds the second 32 bits and is only consulted once the format and
// mode are known to require it (MEMB double-wide).
func Decode(low, high uint32) Instruction {
	major := uint8(low >> 24)
	ins := Instruction{raw: uint64(low) | uint64(high)<<32, majorOpcode: major}

	switch {
	case major <= 0x1F:
		ins.format = FormatCTRL
		ins.ctrlDisp = word.SignExtend24(low)
		ins.hasDisp = true
	case major <= 0x57:
		ins.format = FormatCOBR
		ins.decodeCOBRFields(low)
	case major <= 0x7F:
		ins.format = FormatREG
		ins.extOpcode = uint8(low & 0xF)
		ins.decodeREGFields(low)
	default:
		ins.format = FormatMEM
		ins.decodeMEMFields(low, high)
	}
	return ins
}

func (ins *Instruction) decodeCOBRFields(low uint32) {
	// COBR: [31:24] opcode, [23:19] src1, [18:14] src2, [13] src1
	// literal flag, [12:0] 13-bit signed displacement. src2 is modeled
	// as never-literal (it always names a register in this format).
	ins.src1Raw = uint8((low >> 19) & 0x1F)
	ins.src1Lit = (low>>13)&1 != 0
	ins.src2Raw = uint8((low >> 14) & 0x1F)
	ins.cobrDisp = word.SignExtend13(low)
	ins.hasDisp = true
}

func (ins *Instruction) decodeREGFields(low uint32) {
	// REG: [31:24] major, [23:19] sd, [18:14] src2, [13] src2 literal,
	// [12:8] src1, [7] src1 literal, [6] sd literal, [5:4] reserved,
	// [3:0] extended opcode. The three 5-bit operand fields and their
	// literal flags occupy bits disjoint from the extended opcode, so
	// every register (0-31) is reachable regardless of which mnemonic
	// is encoded.
	ins.src1Raw = uint8((low >> 8) & 0x1F)
	ins.src1Lit = (low>>7)&1 != 0
	ins.src2Raw = uint8((low >> 14) & 0x1F)
	ins.src2Lit = (low>>13)&1 != 0
	ins.sdRaw = uint8((low >> 19) & 0x1F)
	ins.sdLit = (low>>6)&1 != 0
}

func (ins *Instruction) decodeMEMFields(low, high uint32) {
	ins.sdRaw = uint8((low >> 19) & 0x1F)
	ins.abase = uint8((low >> 14) & 0x1F)
	modeBits := uint8((low >> 10) & 0xF)
	// Bit 12 is the MEMA/MEMB class bit: every MEMB submode below (4, 5,
	// 6, 7, 12, 13, 14) sets it, so classification tests bit 12, not bit
	// 13. MEMA's own reg-indirect-vs-absolute choice lives in bit 13,
	// the one bit the 12-bit offset field (bits 11-0) doesn't touch.
	ins.isMEMA = modeBits&0x4 == 0
	if ins.isMEMA {
		ins.offset12 = low & 0xFFF
		ins.memaRegIndirect = (low>>13)&1 != 0
		return
	}
	ins.memMode = modeBits
	switch modeBits {
	case 0x4: // reg-indirect
	case 0x5: // IP+displacement
		ins.membDisp = int32(high)
		ins.hasDisp = true
	case 0x6: // abs-displacement
		ins.membDisp = int32(high)
		ins.hasDisp = true
	case 0x7: // reg-indirect+displacement
		ins.membDisp = int32(high)
		ins.hasDisp = true
	case 0xC: // index+displacement
		ins.useIndex = true
		ins.indexReg = uint8(low & 0x1F)
		ins.scale = uint8((low >> 7) & 0x7)
		ins.membDisp = int32(high)
		ins.hasDisp = true
	case 0xD: // reg-indirect+index+displacement
		ins.useIndex = true
		ins.indexReg = uint8(low & 0x1F)
		ins.scale = uint8((low >> 7) & 0x7)
		ins.membDisp = int32(high)
		ins.hasDisp = true
	case 0xE: // reg-indirect+index (no displacement)
		ins.useIndex = true
		ins.indexReg = uint8(low & 0x1F)
		ins.scale = uint8((low >> 7) & 0x7)
	default:
	}
}

func (ins *Instruction) Format() Format { return ins.format }
func (ins *Instruction) MajorOpcode() uint8 { return ins.majorOpcode }

// EffectiveOpcode returns the 12-bit concatenation of major opcode and
// (for REG format) the 4-bit extended opcode, per spec.md §4.1.
func (ins *Instruction) EffectiveOpcode() uint16 {
	if ins.format == FormatREG {
		return uint16(ins.majorOpcode)<<4 | uint16(ins.extOpcode)
	}
	return uint16(ins.majorOpcode) << 4
}

// Src1 returns src1 as a register.Index. ignoreLiteralFlag is used by
// COBR bit-position operands (bbc/bbs's src1), which are never literal
// operands even when the literal-flag bit happens to be set.
func (ins *Instruction) Src1(ignoreLiteralFlag bool) register.Index {
	lit := ins.src1Lit && !ignoreLiteralFlag
	return register.Index{Raw: ins.src1Raw, Literal: lit}
}

func (ins *Instruction) Src2() register.Index {
	return register.Index{Raw: ins.src2Raw, Literal: ins.src2Lit}
}

// SrcDest returns the REG-format third operand. asDestination forces the
// literal flag false: the architecture never encodes sd as a literal when
// it names a write target, so a handler asking for a destination handle
// always gets a real register index rather than a literal/index pair it
// would have to reject (register.GetDestination's own ErrInvalidOperand
// check guards the remaining path, a literal Index built some other way).
func (ins *Instruction) SrcDest(asDestination bool) register.Index {
	if asDestination {
		return register.Index{Raw: ins.sdRaw, Literal: false}
	}
	return register.Index{Raw: ins.sdRaw, Literal: ins.sdLit}
}

// MemSrcDest returns the MEM-format src/dest register (never literal).
func (ins *Instruction) MemSrcDest() register.Index {
	return register.Index{Raw: ins.sdRaw}
}

func (ins *Instruction) Abase() register.Index  { return register.Index{Raw: ins.abase} }
func (ins *Instruction) IndexReg() register.Index { return register.Index{Raw: ins.indexReg} }
func (ins *Instruction) Scale() uint8 {
	if ins.scale > 4 {
		return 0 // reserved scale values treated as scale 0, spec.md §4.2
	}
	return ins.scale
}
func (ins *Instruction) UsesIndex() bool { return ins.useIndex }
func (ins *Instruction) IsMEMA() bool    { return ins.isMEMA }
func (ins *Instruction) MEMAOffset() uint32 { return ins.offset12 }
func (ins *Instruction) MEMARegIndirect() bool { return ins.memaRegIndirect }
func (ins *Instruction) MEMBMode() uint8 { return ins.memMode }

// Displacement returns CTRL's 24-bit signed, COBR's 13-bit signed, or
// MEMB's 32-bit signed second word.
func (ins *Instruction) Displacement() (int32, error) {
	if !ins.hasDisp {
		return 0, ErrNoDisplacement
	}
	switch ins.format {
	case FormatCTRL:
		return ins.ctrlDisp, nil
	case FormatCOBR:
		return ins.cobrDisp, nil
	case FormatMEM:
		return ins.membDisp, nil
	default:
		return 0, ErrNoDisplacement
	}
}

// IsDoubleWide holds iff this is a MEM-format instruction whose mode is
// one of the five MEMB modes carrying an optional displacement word.
func (ins *Instruction) IsDoubleWide() bool {
	if ins.format != FormatMEM || ins.isMEMA {
		return false
	}
	switch ins.memMode {
	case modeIPWithDisplacement, modeAbsDisplacement, modeRegIndirectWithDisplacement,
		modeIndexWithDisplacement, modeRegIndirectIndexDisp:
		return true
	default:
		return false
	}
}
