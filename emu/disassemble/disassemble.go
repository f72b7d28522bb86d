/*
 * SX960 Disassembler
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

// Package disassembler renders a fetched instruction word as console text,
// one mnemonic-table lookup keyed by effective opcode, same shape as the
// opcode-map disassemblers elsewhere in this family of simulators.
package disassembler

import (
	"fmt"

	"github.com/rcornwell/sx960sim/emu/decode"
	"github.com/rcornwell/sx960sim/emu/register"
)

const (
	shapeRegTwo = 1 + iota // dst = src2 op src1
	shapeRegOne            // renders src1,dst; src2 not shown (mov family, synld, not)
	shapeRegNone           // no operands rendered beyond mnemonic (syncf, flushreg)
	shapeCtrl              // b/bal: plain displacement
	shapeCtrlMask          // bX/faultX: mask + displacement
	shapeCobrCompare       // cmpobX/cmpibX: src1,src2,displacement
	shapeCobrBit           // bbc/bbs: bit,src2,displacement
	shapeCobrTest          // testX: dst only
	shapeCall              // call: displacement
	shapeCallx             // callx/lda/ld*/st*: dst,address
	shapeCalls             // calls: target literal/register
	shapeRet               // ret: no operands
)

type opcode struct {
	name  string
	shape int
}

var regTable = map[uint16]opcode{
	0x580: {"addo", shapeRegTwo}, 0x581: {"addi", shapeRegTwo},
	0x582: {"subo", shapeRegTwo}, 0x583: {"subi", shapeRegTwo},
	0x584: {"mulo", shapeRegTwo}, 0x585: {"muli", shapeRegTwo},
	0x586: {"divo", shapeRegTwo}, 0x587: {"divi", shapeRegTwo},
	0x588: {"remo", shapeRegTwo}, 0x589: {"remi", shapeRegTwo},
	0x58A: {"modi", shapeRegTwo}, 0x58B: {"emul", shapeRegTwo},
	0x58C: {"ediv", shapeRegTwo}, 0x58D: {"addc", shapeRegTwo},
	0x58E: {"subc", shapeRegTwo},
	0x58F: {"and", shapeRegTwo}, 0x590: {"or", shapeRegTwo},
	0x591: {"xor", shapeRegTwo}, 0x592: {"xnor", shapeRegTwo},
	0x593: {"nor", shapeRegTwo}, 0x594: {"nand", shapeRegTwo},
	0x595: {"not", shapeRegOne}, 0x596: {"andnot", shapeRegTwo},
	0x597: {"notand", shapeRegTwo}, 0x598: {"ornot", shapeRegTwo},
	0x599: {"notor", shapeRegTwo},
	0x59A: {"shlo", shapeRegTwo}, 0x59B: {"shro", shapeRegTwo},
	0x59C: {"shli", shapeRegTwo}, 0x59D: {"shri", shapeRegTwo},
	0x59E: {"shrdi", shapeRegTwo}, 0x59F: {"rotate", shapeRegTwo},
	0x5A0: {"cmpo", shapeRegTwo}, 0x5A1: {"cmpi", shapeRegTwo},
	0x5A2: {"cmpdeco", shapeRegTwo}, 0x5A3: {"cmpdeci", shapeRegTwo},
	0x5A4: {"cmpinco", shapeRegTwo}, 0x5A5: {"cmpinci", shapeRegTwo},
	0x5A6: {"concmpo", shapeRegTwo}, 0x5A7: {"concmpi", shapeRegTwo},
	0x5A8: {"setbit", shapeRegTwo}, 0x5A9: {"clrbit", shapeRegTwo},
	0x5AA: {"notbit", shapeRegTwo}, 0x5AB: {"chkbit", shapeRegTwo},
	0x5AC: {"alterbit", shapeRegTwo}, 0x5AD: {"scanbit", shapeRegTwo},
	0x5AE: {"spanbit", shapeRegTwo}, 0x5AF: {"scanbyte", shapeRegTwo},
	0x5B0: {"extract", shapeRegTwo}, 0x5B1: {"modify", shapeRegTwo},
	0x5B2: {"modac", shapeRegTwo}, 0x5B3: {"modpc", shapeRegTwo},
	0x5B4: {"modtc", shapeRegTwo},
	0x5B5: {"mov", shapeRegOne}, 0x5B6: {"movl", shapeRegOne},
	0x5B7: {"movt", shapeRegOne}, 0x5B8: {"movq", shapeRegOne},
	0x5B9: {"synld", shapeRegOne}, 0x5BA: {"synmov", shapeRegTwo},
	0x5BB: {"synmovl", shapeRegTwo}, 0x5BC: {"synmovq", shapeRegTwo},
	0x5BD: {"atadd", shapeRegTwo}, 0x5BE: {"atmod", shapeRegTwo},
	0x5BF: {"calls", shapeCalls},
	0x5C0: {"flushreg", shapeRegNone}, 0x5C1: {"syncf", shapeRegNone},
	0x5C2: {"mark", shapeRegNone}, 0x5C3: {"fmark", shapeRegNone},
}

var memTable = map[uint8]string{
	0x80: "ldob", 0x81: "ldos", 0x82: "ldib", 0x83: "ldis",
	0x84: "ld", 0x85: "ldl", 0x86: "ldt", 0x87: "ldq",
	0x88: "stob", 0x89: "stos", 0x8A: "stib", 0x8B: "stis",
	0x8C: "st", 0x8D: "stl", 0x8E: "stt", 0x8F: "stq",
	0x90: "lda", 0x91: "callx",
}

var maskSuffix = [8]string{"no", "g", "e", "ge", "l", "ne", "le", "o"}

// Disassemble decodes one instruction from its fetched words and renders it as text,
// returning the mnemonic line and the instruction's length in bytes (4
// or 8). low/high mirror the raw fetch Step performs.
func Disassemble(low, high uint32) (string, int) {
	probe := decode.Decode(low, 0)
	ins := probe
	length := 4
	if probe.Format() == decode.FormatMEM && probe.IsDoubleWide() {
		ins = decode.Decode(low, high)
		length = 8
	}

	switch ins.Format() {
	case decode.FormatREG:
		return disasmReg(&ins), length
	case decode.FormatCTRL:
		return disasmCtrl(&ins), length
	case decode.FormatCOBR:
		return disasmCobr(&ins), length
	case decode.FormatMEM:
		return disasmMem(&ins), length
	}
	return fmt.Sprintf(".word %#08x", low), length
}

func disasmReg(ins *decode.Instruction) string {
	eff := ins.EffectiveOpcode()
	op, ok := regTable[eff]
	if !ok {
		return fmt.Sprintf(".reg %#03x", eff)
	}
	switch op.shape {
	case shapeRegOne:
		return fmt.Sprintf("%-10s %s,%s", op.name, regName(ins.Src1(false)), regName(ins.SrcDest(true)))
	case shapeRegNone:
		return op.name
	case shapeCalls:
		return fmt.Sprintf("%-10s %s", op.name, regName(ins.Src1(false)))
	default:
		return fmt.Sprintf("%-10s %s,%s,%s", op.name,
			regName(ins.Src1(false)), regName(ins.Src2()), regName(ins.SrcDest(true)))
	}
}

func disasmCtrl(ins *decode.Instruction) string {
	major := ins.MajorOpcode()
	disp, _ := ins.Displacement()
	switch {
	case major == 0x08:
		return fmt.Sprintf("b          %+d", disp)
	case major == 0x0B:
		return fmt.Sprintf("bal        %+d", disp)
	case major == 0x09:
		return fmt.Sprintf("call       %+d", disp)
	case major == 0x0A:
		return "ret"
	case major >= 0x10 && major <= 0x17:
		return fmt.Sprintf("b%-9s %+d", maskSuffix[major&0x7], disp)
	case major >= 0x18 && major <= 0x1F:
		return fmt.Sprintf("fault%-6s", maskSuffix[major&0x7])
	}
	return fmt.Sprintf(".ctrl %#02x", major)
}

func disasmCobr(ins *decode.Instruction) string {
	major := ins.MajorOpcode()
	disp, _ := ins.Displacement()
	switch {
	case major >= 0x20 && major <= 0x27:
		return fmt.Sprintf("cmpob%-5s %s,%s,%+d", maskSuffix[major&0x7],
			regName(ins.Src1(false)), regName(ins.Src2()), disp)
	case major >= 0x28 && major <= 0x2F:
		return fmt.Sprintf("cmpib%-5s %s,%s,%+d", maskSuffix[major&0x7],
			regName(ins.Src1(false)), regName(ins.Src2()), disp)
	case major == 0x30:
		return fmt.Sprintf("bbc        %s,%s,%+d", regName(ins.Src1(true)), regName(ins.Src2()), disp)
	case major == 0x31:
		return fmt.Sprintf("bbs        %s,%s,%+d", regName(ins.Src1(true)), regName(ins.Src2()), disp)
	case major >= 0x32 && major <= 0x39:
		return fmt.Sprintf("test%-6s %s", maskSuffix[major&0x7], regName(ins.Src1(false)))
	}
	return fmt.Sprintf(".cobr %#02x", major)
}

func disasmMem(ins *decode.Instruction) string {
	major := ins.MajorOpcode()
	name, ok := memTable[major]
	if !ok {
		return fmt.Sprintf(".mem %#02x", major)
	}
	if major == 0x91 {
		return fmt.Sprintf("%-10s %s", name, memAddr(ins))
	}
	return fmt.Sprintf("%-10s %s,%s", name, regName(ins.MemSrcDest()), memAddr(ins))
}

func memAddr(ins *decode.Instruction) string {
	disp, err := ins.Displacement()
	if ins.IsMEMA() {
		if ins.MEMARegIndirect() {
			return fmt.Sprintf("%d(%s)", ins.MEMAOffset(), regName(ins.Abase()))
		}
		return fmt.Sprintf("%#x", ins.MEMAOffset())
	}
	base := ""
	if err == nil {
		base = fmt.Sprintf("%+d", disp)
	}
	switch ins.MEMBMode() {
	case 0x4:
		return fmt.Sprintf("(%s)", regName(ins.Abase()))
	case 0x5:
		return fmt.Sprintf("%s(ip)", base)
	case 0x6:
		return base
	case 0x7:
		return fmt.Sprintf("%s(%s)", base, regName(ins.Abase()))
	case 0xC:
		return fmt.Sprintf("%s[%s*%d]", base, regName(ins.IndexReg()), 1<<ins.Scale())
	case 0xD:
		return fmt.Sprintf("%s(%s)[%s*%d]", base, regName(ins.Abase()), regName(ins.IndexReg()), 1<<ins.Scale())
	case 0xE:
		return fmt.Sprintf("(%s)[%s*%d]", regName(ins.Abase()), regName(ins.IndexReg()), 1<<ins.Scale())
	}
	return "?"
}

// regName renders a register.Index as console text: g0-g14 and fp for
// globals, pfp/sp/rip and r3-r15 for locals, and a bare decimal for literals.
func regName(idx register.Index) string {
	if idx.IsLiteral() {
		return fmt.Sprintf("%d", idx.LiteralValue())
	}
	switch idx.Raw {
	case register.PFP:
		return "pfp"
	case register.SP:
		return "sp"
	case register.RIP:
		return "rip"
	case 16 + register.FP:
		return "fp"
	}
	if idx.Raw < 16 {
		return fmt.Sprintf("r%d", idx.Raw)
	}
	return fmt.Sprintf("g%d", idx.Raw-16)
}
