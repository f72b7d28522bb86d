/*
 * SX960 - Effective-opcode table: one constant per mnemonic, and the
 * table construction that wires each to its handler body.
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

// REG-format effective opcodes (major 0x58-0x5C, extended opcode is the
// low 4 bits of the running count). Every REG-format mnemonic in
// spec.md §4.5 gets exactly one slot.
const (
	opAddoR uint16 = 0x580 + iota
	opAddiR
	opSuboR
	opSubiR
	opMuloR
	opMuliR
	opDivoR
	opDiviR
	opRemoR
	opRemiR
	opModiR
	opEmulR
	opEdivR
	opAddcR
	opSubcR
	opAndR
	opOrR
	opXorR
	opXnorR
	opNorR
	opNandR
	opNotR
	opAndnotR
	opNotandR
	opOrnotR
	opNotorR
	opShloR
	opShroR
	opShliR
	opShriR
	opShrdiR
	opRotateR
	opCmpoR
	opCmpiR
	opCmpdecoR
	opCmpdeciR
	opCmpincoR
	opCmpinciR
	opConcmpoR
	opConcmpiR
	opSetbitR
	opClrbitR
	opNotbitR
	opChkbitR
	opAlterbitR
	opScanbitR
	opSpanbitR
	opScanbyteR
	opExtractR
	opModifyR
	opModacR
	opModpcR
	opModtcR
	opMovR
	opMovlR
	opMovtR
	opMovqR
	opSynldR
	opSynmovR
	opSynmovlR
	opSynmovqR
	opAtaddR
	opAtmodR
	opCallsR
	opFlushregR
	opSyncfR
	opMarkR
	opFmarkR
)

// CTRL-format effective opcodes. b/bal/call/ret are fixed majors;
// bX/faultX embed their 3-bit mask in the major opcode's low 3 bits, so
// the handler recovers the mask from ins.MajorOpcode()&0x7 at runtime
// and a single handler is registered across all 8 majors in the family.
const (
	majorB      uint8 = 0x08
	majorBal    uint8 = 0x0B
	majorCall   uint8 = 0x09
	majorRet    uint8 = 0x0A
	majorBxBase uint8 = 0x10 // 0x10-0x17
	majorFxBase uint8 = 0x18 // 0x18-0x1F
)

// COBR-format majors. cmpobX/cmpibX/testX embed mask the same way.
const (
	majorCmpobBase uint8 = 0x20 // 0x20-0x27
	majorCmpibBase uint8 = 0x28 // 0x28-0x2F
	majorBbc       uint8 = 0x30
	majorBbs       uint8 = 0x31
	majorTestBase  uint8 = 0x32 // 0x32-0x39
)

// MEM-format majors: one per load/store width+sign combination, lda,
// and callx.
const (
	majorLdob  uint8 = 0x80
	majorLdos  uint8 = 0x81
	majorLdib  uint8 = 0x82
	majorLdis  uint8 = 0x83
	majorLd    uint8 = 0x84
	majorLdl   uint8 = 0x85
	majorLdt   uint8 = 0x86
	majorLdq   uint8 = 0x87
	majorStob  uint8 = 0x88
	majorStos  uint8 = 0x89
	majorStib  uint8 = 0x8A
	majorStis  uint8 = 0x8B
	majorSt    uint8 = 0x8C
	majorStl   uint8 = 0x8D
	majorStt   uint8 = 0x8E
	majorStq   uint8 = 0x8F
	majorLda   uint8 = 0x90
	majorCallx uint8 = 0x91
)

func effCTRL(major uint8) uint16 { return uint16(major) << 4 }
func effCOBR(major uint8) uint16 { return uint16(major) << 4 }
func effMEM(major uint8) uint16  { return uint16(major) << 4 }

// buildDispatchTable wires every effective opcode spec.md §4.5 names to
// its handler body. Mask-parametrized families (bX/faultX/cmpobX/
// cmpibX/testX) register the same handler at all 8 majors in their
// range; the handler recovers the mask from the fetched instruction.
func (c *Core) buildDispatchTable() {
	t := &c.table

	// Arithmetic.
	t[opAddoR] = execAddo
	t[opAddiR] = execAddi
	t[opSuboR] = execSubo
	t[opSubiR] = execSubi
	t[opMuloR] = execMulo
	t[opMuliR] = execMuli
	t[opDivoR] = execDivo
	t[opDiviR] = execDivi
	t[opRemoR] = execRemo
	t[opRemiR] = execRemi
	t[opModiR] = execModi
	t[opEmulR] = execEmul
	t[opEdivR] = execEdiv
	t[opAddcR] = execAddc
	t[opSubcR] = execSubc

	// Logical.
	t[opAndR] = execAnd
	t[opOrR] = execOr
	t[opXorR] = execXor
	t[opXnorR] = execXnor
	t[opNorR] = execNor
	t[opNandR] = execNand
	t[opNotR] = execNot
	t[opAndnotR] = execAndnot
	t[opNotandR] = execNotand
	t[opOrnotR] = execOrnot
	t[opNotorR] = execNotor

	// Shift/rotate.
	t[opShloR] = execShlo
	t[opShroR] = execShro
	t[opShliR] = execShli
	t[opShriR] = execShri
	t[opShrdiR] = execShrdi
	t[opRotateR] = execRotate

	// Compare family (REG).
	t[opCmpoR] = execCmpo
	t[opCmpiR] = execCmpi
	t[opCmpdecoR] = execCmpdeco
	t[opCmpdeciR] = execCmpdeci
	t[opCmpincoR] = execCmpinco
	t[opCmpinciR] = execCmpinci
	t[opConcmpoR] = execConcmpo
	t[opConcmpiR] = execConcmpi

	// Bit ops.
	t[opSetbitR] = execSetbit
	t[opClrbitR] = execClrbit
	t[opNotbitR] = execNotbit
	t[opChkbitR] = execChkbit
	t[opAlterbitR] = execAlterbit
	t[opScanbitR] = execScanbit
	t[opSpanbitR] = execSpanbit
	t[opScanbyteR] = execScanbyte
	t[opExtractR] = execExtract
	t[opModifyR] = execModify
	t[opModacR] = execModac
	t[opModpcR] = execModpc
	t[opModtcR] = execModtc

	// Data moves.
	t[opMovR] = execMov
	t[opMovlR] = execMovl
	t[opMovtR] = execMovt
	t[opMovqR] = execMovq

	// Synchronized ops.
	t[opSynldR] = execSynld
	t[opSynmovR] = execSynmov
	t[opSynmovlR] = execSynmovl
	t[opSynmovqR] = execSynmovq
	t[opAtaddR] = execAtadd
	t[opAtmodR] = execAtmod

	// Control flow / frame protocol.
	t[opCallsR] = execCalls
	t[opFlushregR] = execFlushreg
	t[opSyncfR] = execSyncf
	t[opMarkR] = execMark
	t[opFmarkR] = execFmark

	t[effCTRL(majorB)] = execB
	t[effCTRL(majorBal)] = execBal
	t[effCTRL(majorCall)] = execCall
	t[effCTRL(majorRet)] = execRet
	for m := uint8(0); m < 8; m++ {
		t[effCTRL(majorBxBase+m)] = execBx
		t[effCTRL(majorFxBase+m)] = execFaultx
		t[effCOBR(majorCmpobBase+m)] = execCmpobx
		t[effCOBR(majorCmpibBase+m)] = execCmpibx
		t[effCOBR(majorTestBase+m)] = execTestx
	}
	t[effCOBR(majorBbc)] = execBbc
	t[effCOBR(majorBbs)] = execBbs

	t[effMEM(majorLdob)] = execLdob
	t[effMEM(majorLdos)] = execLdos
	t[effMEM(majorLdib)] = execLdib
	t[effMEM(majorLdis)] = execLdis
	t[effMEM(majorLd)] = execLd
	t[effMEM(majorLdl)] = execLdl
	t[effMEM(majorLdt)] = execLdt
	t[effMEM(majorLdq)] = execLdq
	t[effMEM(majorStob)] = execStob
	t[effMEM(majorStos)] = execStos
	t[effMEM(majorStib)] = execStib
	t[effMEM(majorStis)] = execStis
	t[effMEM(majorSt)] = execSt
	t[effMEM(majorStl)] = execStl
	t[effMEM(majorStt)] = execStt
	t[effMEM(majorStq)] = execStq
	t[effMEM(majorLda)] = execLda
	t[effMEM(majorCallx)] = execCallx
}
