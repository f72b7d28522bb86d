package disassembler

import "testing"

// regWord builds a REG-format instruction word per decode.go's layout.
func regWord(major, ext, sd, src2, src1 uint8, sdLit, src2Lit, src1Lit bool) uint32 {
	w := uint32(major)<<24 | uint32(sd&0x1F)<<19 | uint32(src2&0x1F)<<14 | uint32(src1&0x1F)<<8 | uint32(ext&0xF)
	if src2Lit {
		w |= 1 << 13
	}
	if src1Lit {
		w |= 1 << 7
	}
	if sdLit {
		w |= 1 << 6
	}
	return w
}

// cobrWord builds a COBR-format instruction word: [23:19] src1, [18:14]
// src2, [13] src1 literal, [12:0] 13-bit signed displacement.
func cobrWord(major, src1, src2 uint8, src1Lit bool, disp int32) uint32 {
	w := uint32(major)<<24 | uint32(src1&0x1F)<<19 | uint32(src2&0x1F)<<14 | (uint32(disp) & 0x1FFF)
	if src1Lit {
		w |= 1 << 13
	}
	return w
}

// ctrlWord builds a CTRL-format instruction word.
func ctrlWord(major uint8, disp int32) uint32 {
	return uint32(major)<<24 | (uint32(disp) & 0xFFFFFF)
}

// memaWord builds a MEMA-format instruction word: bit 13 is the
// reg-indirect flag; bit 12 (always clear here) is the MEMA/MEMB class bit.
func memaWord(major, sd, abase uint8, regIndirect bool, offset uint32) uint32 {
	w := uint32(major)<<24 | uint32(sd&0x1F)<<19 | uint32(abase&0x1F)<<14 | (offset & 0xFFF)
	if regIndirect {
		w |= 1 << 13
	}
	return w
}

// membWord builds a MEMB-format instruction word: [23:19] sd, [18:14]
// abase, [13:10] mode, [6:0] index+scale for the indexed modes.
func membWord(major, sd, abase, mode, indexReg, scale uint8) uint32 {
	return uint32(major)<<24 | uint32(sd&0x1F)<<19 | uint32(abase&0x1F)<<14 |
		uint32(mode&0xF)<<10 | uint32(scale&0x7)<<7 | uint32(indexReg&0x1F)
}

func TestDisassembleRegTwoOperand(t *testing.T) {
	// addo r4,r5,r6: src1=4, src2=5, sd=6, ext 0x0, major 0x58.
	low := regWord(0x58, 0x0, 6, 5, 4, false, false, false)
	got, length := Disassemble(low, 0)
	want := "addo       r4,r5,r6"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
	if length != 4 {
		t.Errorf("length = %d, want 4", length)
	}
}

func TestDisassembleRegOneOperand(t *testing.T) {
	// not r4,r6: src1=4 (operand), sd=6 (result). ext 0x5, major 0x59.
	low := regWord(0x59, 0x5, 6, 0, 4, false, false, false)
	got, _ := Disassemble(low, 0)
	want := "not        r4,r6"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleRegNoOperands(t *testing.T) {
	// flushreg: ext 0x0, major 0x5C.
	low := regWord(0x5C, 0x0, 0, 0, 0, false, false, false)
	got, _ := Disassemble(low, 0)
	if got != "flushreg" {
		t.Errorf("disassemble = %q, want %q", got, "flushreg")
	}
}

func TestDisassembleCalls(t *testing.T) {
	// calls <literal 7>: ext 0xF, major 0x5B, src1 literal.
	low := regWord(0x5B, 0xF, 0, 0, 7, false, false, true)
	got, _ := Disassemble(low, 0)
	want := "calls      7"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleRegUnknownOpcode(t *testing.T) {
	// ext 0xF paired with a major whose low nibble table has no entry.
	low := regWord(0x7F, 0xF, 0, 0, 0, false, false, false)
	got, _ := Disassemble(low, 0)
	want := ".reg 0x7ff"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleCtrlBranch(t *testing.T) {
	got, length := Disassemble(ctrlWord(0x08, 16), 0)
	if got != "b          +16" {
		t.Errorf("disassemble = %q, want %q", got, "b          +16")
	}
	if length != 4 {
		t.Errorf("length = %d, want 4", length)
	}
}

func TestDisassembleCtrlCall(t *testing.T) {
	got, _ := Disassemble(ctrlWord(0x09, 256), 0)
	if got != "call       +256" {
		t.Errorf("disassemble = %q, want %q", got, "call       +256")
	}
}

func TestDisassembleCtrlRet(t *testing.T) {
	got, _ := Disassemble(ctrlWord(0x0A, 0), 0)
	if got != "ret" {
		t.Errorf("disassemble = %q, want %q", got, "ret")
	}
}

func TestDisassembleCtrlMaskedBranch(t *testing.T) {
	// major 0x10: mask bits 0x10&0x7 = 0 -> suffix "no".
	got, _ := Disassemble(ctrlWord(0x10, -8), 0)
	want := "bno        -8"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleCtrlFaultMask(t *testing.T) {
	// major 0x19: mask bits 0x19&0x7 = 1 -> suffix "g".
	got, _ := Disassemble(ctrlWord(0x19, 0), 0)
	want := "faultg     "
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleCobrCompareBranch(t *testing.T) {
	// cmpobg r4,r5,+10: major 0x21 (mask 0x21&0x7 = 1 -> "g").
	got, length := Disassemble(cobrWord(0x21, 4, 5, false, 10), 0)
	want := "cmpobg     r4,r5,+10"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
	if length != 4 {
		t.Errorf("length = %d, want 4", length)
	}
}

func TestDisassembleCobrBbc(t *testing.T) {
	got, _ := Disassemble(cobrWord(0x30, 3, 4, false, -4), 0)
	want := "bbc        r3,r4,-4"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleCobrTest(t *testing.T) {
	// teste r4: major 0x32, mask 0x32&0x7 = 2 -> "e".
	got, _ := Disassemble(cobrWord(0x32, 4, 0, false, 0), 0)
	want := "teste      r4"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleMemaAbsolute(t *testing.T) {
	// lda 0x800,g0: sd=16 (g0), abase unused, absolute offset.
	got, length := Disassemble(memaWord(0x90, 16, 0, false, 0x800), 0)
	want := "lda        g0,0x800"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
	if length != 4 {
		t.Errorf("length = %d, want 4", length)
	}
}

func TestDisassembleMemaRegIndirect(t *testing.T) {
	// st g14,4(g0): sd=30 (g14), abase=16 (g0), reg-indirect offset 4.
	got, _ := Disassemble(memaWord(0x8C, 30, 16, true, 4), 0)
	want := "st         g14,4(g0)"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleMembDisplacementIsDoubleWide(t *testing.T) {
	// ld 0x1000,r4: mode 0x6 (abs-displacement), double-wide.
	low := membWord(0x84, 4, 0, 0x6, 0, 0)
	got, length := Disassemble(low, 0x1000)
	if length != 8 {
		t.Fatalf("length = %d, want 8 (double-wide)", length)
	}
	want := "ld         r4,+4096"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleMembIndexed(t *testing.T) {
	// st r4,(g0)[r5*4]: mode 0xE (reg-indirect+index, no displacement),
	// single word.
	low := membWord(0x8C, 4, 16, 0xE, 5, 2) // scale 2 -> 1<<2 = 4
	got, length := Disassemble(low, 0)
	if length != 4 {
		t.Fatalf("length = %d, want 4 (no displacement word)", length)
	}
	want := "st         r4,(g0)[r5*4]"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleCallx(t *testing.T) {
	// callx 0x800(g0): major 0x91, reg-indirect MEMA, no dest register shown.
	got, _ := Disassemble(memaWord(0x91, 0, 16, true, 0x800), 0)
	want := "callx      2048(g0)"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}

func TestDisassembleMemUnknownOpcode(t *testing.T) {
	low := uint32(0xFF) << 24
	got, _ := Disassemble(low, 0)
	want := ".mem 0xff"
	if got != want {
		t.Errorf("disassemble = %q, want %q", got, want)
	}
}
