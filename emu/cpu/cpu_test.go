package cpu

import (
	"testing"

	"github.com/rcornwell/sx960sim/emu/control"
	"github.com/rcornwell/sx960sim/emu/fault"
	"github.com/rcornwell/sx960sim/emu/membus"
	"github.com/rcornwell/sx960sim/emu/register"
	"github.com/rcornwell/sx960sim/emu/word"
)

func newTestCore() *Core {
	bus := membus.NewRAM(0x20000)
	return NewCore(bus, nil)
}

// regWord builds a REG-format instruction word per decode.go's layout:
// [31:24] major, [23:19] sd, [18:14] src2, [13] src2 literal, [12:8] src1,
// [7] src1 literal, [6] sd literal, [3:0] extended opcode.
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

// memaWord builds a MEMA-format instruction word: [23:19] sd, [18:14]
// abase, [13] reg-indirect flag, [11:0] 12-bit offset.
func memaWord(major, sd, abase uint8, regIndirect bool, offset uint32) uint32 {
	w := uint32(major)<<24 | uint32(sd&0x1F)<<19 | uint32(abase&0x1F)<<14 | (offset & 0xFFF)
	if regIndirect {
		w |= 1 << 13
	}
	return w
}

// ctrlWord builds a CTRL-format instruction word: major plus a 24-bit
// signed displacement in the low bits.
func ctrlWord(major uint8, disp int32) uint32 {
	return uint32(major)<<24 | (uint32(disp) & 0xFFFFFF)
}

func localIndex(n uint8) register.Index { return register.Index{Raw: n} }
func globalIndex(n uint8) register.Index { return regIndexGlobal(n) }

// Scenario A (spec.md §8): lda computes an effective address without
// touching memory; a subsequent st through that address commits the
// stored word.
func TestScenarioA_LdaThenStoreRegIndirect(t *testing.T) {
	c := newTestCore()
	c.Regs.SetAt(globalIndex(14), 0x12345678)

	// lda 0x800,g0 (MEMA absolute, no reg-indirect)
	c.Bus.StoreWord(0, memaWord(majorLda, 16, 0, false, 0x800))
	// st g14,0(g0) (MEMA reg-indirect off g0, offset 0)
	c.Bus.StoreWord(4, memaWord(majorSt, 30, 16, true, 0))

	if err := c.Step(); err != nil {
		t.Fatalf("lda: %v", err)
	}
	if got := c.Regs.GetSource(globalIndex(0)); got != 0x800 {
		t.Fatalf("g0 after lda = %#x, want 0x800", got)
	}

	if err := c.Step(); err != nil {
		t.Fatalf("st: %v", err)
	}
	if got := c.Bus.LoadWord(0x800); got != 0x12345678 {
		t.Errorf("mem[0x800] = %#x, want 0x12345678", got)
	}
}

// Scenario B (spec.md §8): cmpi compares as signed integers and sets cc
// to "greater" when src1 > src2.
func TestScenarioB_CmpiGreater(t *testing.T) {
	c := newTestCore()
	c.Bus.StoreWord(0, memaWord(majorLda, 4, 0, false, 7))  // lda 7,r4
	c.Bus.StoreWord(4, memaWord(majorLda, 5, 0, false, 5))  // lda 5,r5
	c.Bus.StoreWord(8, regWord(0x5A, 1, 0, 5, 4, false, false, false)) // cmpi r4,r5

	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got := c.AC.ConditionCode(); got != control.CCGreater {
		t.Errorf("cc = %#03b, want CCGreater (%#03b)", got, control.CCGreater)
	}
}

// Scenario C (spec.md §8): addc's 33-bit carry-out sets cc.carry without
// setting cc.overflow when the operand signs differ.
func TestScenarioC_AddcCarryNoOverflow(t *testing.T) {
	c := newTestCore()
	c.Regs.SetAt(localIndex(5), 1)
	c.Regs.SetAt(localIndex(4), 0xFFFFFFFF)
	// addc r5,r4,r6: src1=r5, src2=r4, sd=r6, ext 0xD, major 0x58.
	c.Bus.StoreWord(0, regWord(0x58, 0xD, 6, 4, 5, false, false, false))

	if err := c.Step(); err != nil {
		t.Fatalf("addc: %v", err)
	}
	if got := c.Regs.GetSource(localIndex(6)); got != 0 {
		t.Errorf("r6 = %#x, want 0", got)
	}
	cc := c.AC.ConditionCode()
	if cc&ccCarry == 0 {
		t.Errorf("cc.carry not set: cc=%#03b", cc)
	}
	if cc&ccOverflow != 0 {
		t.Errorf("cc.overflow unexpectedly set: cc=%#03b", cc)
	}
}

// Scenario E (spec.md §8): scanbit finds the highest set bit of src2 and
// leaves cc.equal set.
func TestScenarioE_Scanbit(t *testing.T) {
	c := newTestCore()
	c.Regs.SetAt(localIndex(4), 0x400)
	// scanbit r4,r5: src2=r4 (value scanned), sd=r5 (result). ext 0xD,
	// major 0x5A.
	c.Bus.StoreWord(0, regWord(0x5A, 0xD, 5, 4, 0, false, false, false))

	if err := c.Step(); err != nil {
		t.Fatalf("scanbit: %v", err)
	}
	if got := c.Regs.GetSource(localIndex(5)); got != 10 {
		t.Errorf("r5 = %d, want 10", got)
	}
	if got := c.AC.ConditionCode(); got != control.CCEqual {
		t.Errorf("cc = %#03b, want CCEqual", got)
	}
}

// Scenario D (spec.md §8): a call/ret round trip takes ownership of a new
// frame-cache slot, then restores the caller's frame without a fill,
// preserving its locals (including SP) exactly as they stood at call time.
func TestScenarioD_CallReturnRoundTrip(t *testing.T) {
	c := newTestCore()

	// Minimal boot block: sat=0x100, prcb=0x200, startIP=0x3000,
	// isp=0x5000 (64-aligned).
	c.Bus.StoreQuad(0, [4]word.Ordinal{0x100, 0x200, 0, 0x3000})
	c.Bus.StoreWord(0x200+24, 0x5000)
	c.Boot(0)

	if got := c.FP(); got != 0x5000 {
		t.Fatalf("FP after boot = %#x, want 0x5000", got)
	}
	if got := c.SP(); got != 0x5000 {
		t.Fatalf("SP after boot = %#x, want 0x5000", got)
	}
	if fp, valid := c.Cache.SlotFP(0); !valid || fp != 0x5000 {
		t.Fatalf("cache slot 0 after boot = (%#x, %v), want (0x5000, true)", fp, valid)
	}

	// Simulate 16 bytes of locals already consumed in the initial frame,
	// and stamp a recognizable value into a caller-owned local register.
	c.SetSP(c.SP() + 0x10)
	c.Regs.SetAt(localIndex(5), 0xCAFEBABE)
	callerSP := c.SP()

	// call +0x100, landing on a ret at 0x3100.
	c.Bus.StoreWord(0x3000, ctrlWord(majorCall, 0x100))
	c.Bus.StoreWord(0x3100, ctrlWord(majorRet, 0))

	if err := c.Step(); err != nil { // call
		t.Fatalf("call: %v", err)
	}
	if got := c.IP; got != 0x3100 {
		t.Fatalf("IP after call = %#x, want 0x3100", got)
	}
	if got := c.FP(); got != 0x5040 {
		t.Fatalf("FP after call = %#x, want 0x5040 (new frame)", got)
	}
	if got := c.RIP(); got != 0x3004 {
		t.Errorf("RIP after call = %#x, want 0x3004", got)
	}

	if err := c.Step(); err != nil { // ret
		t.Fatalf("ret: %v", err)
	}
	if got := c.IP; got != 0x3004 {
		t.Errorf("IP after ret = %#x, want 0x3004", got)
	}
	// call stores the return IP in the caller's RIP (local r2) before
	// switching frames, so it reads back once ret restores that frame.
	if got := c.RIP(); got != 0x3004 {
		t.Errorf("caller's RIP after ret = %#x, want 0x3004", got)
	}
	if got := c.FP(); got != 0x5000 {
		t.Errorf("FP after ret = %#x, want 0x5000 (caller restored)", got)
	}
	if got := c.SP(); got != callerSP {
		t.Errorf("SP after ret = %#x, want %#x (no-fill restore keeps caller's locals)", got, callerSP)
	}
	if got := c.Regs.GetSource(localIndex(5)); got != 0xCAFEBABE {
		t.Errorf("local r5 after ret = %#x, want 0xCAFEBABE (callee must not clobber caller's frame)", got)
	}
}

// Invariant: cmpi sets cc to "less" (not "greater") when src1 < src2 -
// a regression guard for ccForCompare's branch order.
func TestCmpiLess(t *testing.T) {
	c := newTestCore()
	c.Bus.StoreWord(0, memaWord(majorLda, 4, 0, false, 5))              // lda 5,r4
	c.Bus.StoreWord(4, memaWord(majorLda, 5, 0, false, 7))              // lda 7,r5
	c.Bus.StoreWord(8, regWord(0x5A, 1, 0, 5, 4, false, false, false)) // cmpi r4,r5

	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got := c.AC.ConditionCode(); got != control.CCLess {
		t.Errorf("cc = %#03b, want CCLess (%#03b)", got, control.CCLess)
	}
}

// Invariant: division by zero raises an Arithmetic.ZeroDivide fault and
// halts the core, rather than panicking or producing a silent result.
func TestDivoByZeroFaults(t *testing.T) {
	c := newTestCore()
	c.Regs.SetAt(localIndex(4), 0) // divisor
	c.Regs.SetAt(localIndex(5), 9) // dividend
	// divo r4,r5,r6: ext for opDivoR is index 6 -> 0x580+6=0x586.
	c.Bus.StoreWord(0, regWord(0x58, 0x6, 6, 5, 4, false, false, false))

	err := c.Step()
	if err == nil {
		t.Fatal("expected a fault, got nil")
	}
	if !c.Halted() {
		t.Error("core should be halted after an unhandled fault")
	}
	f := c.LastFault()
	if f == nil {
		t.Fatal("LastFault() = nil")
	}
	if f.Class != fault.ClassArithmetic || f.Code != fault.ArithmeticZeroDivide {
		t.Errorf("fault = %+v, want Arithmetic.ZeroDivide", f)
	}
}

// Invariant: an undefined effective opcode raises Operation.InvalidOpcode
// instead of dereferencing a nil handler.
func TestUndefinedOpcodeFaults(t *testing.T) {
	c := newTestCore()
	// major 0x00 with no matching CTRL handler registered (plain zero
	// word decodes to CTRL format with an empty table slot).
	c.Bus.StoreWord(0, 0)

	err := c.Step()
	if err == nil {
		t.Fatal("expected a fault, got nil")
	}
	f := c.LastFault()
	if f == nil || f.Class != fault.ClassOperation || f.Code != fault.OperationInvalidOpcode {
		t.Errorf("fault = %+v, want Operation.InvalidOpcode", f)
	}
}

// Invariant: a literal src1 operand reads its encoded numeric value
// directly rather than naming a register.
func TestLiteralSourceOperandReadsItsValue(t *testing.T) {
	c := newTestCore()
	c.Regs.SetAt(localIndex(4), 10) // src2
	// addi <literal 5>,r4,r6: src1 literal flag set, raw value 5.
	c.Bus.StoreWord(0, regWord(0x58, 0x1, 6, 4, 5, false, false, true))

	if err := c.Step(); err != nil {
		t.Fatalf("addi: %v", err)
	}
	if got := c.Regs.GetSource(localIndex(6)); got != 15 {
		t.Errorf("r6 = %d, want 15 (10 + literal 5)", got)
	}
	if c.AC.OverflowFlag() {
		t.Error("overflow flag unexpectedly set")
	}
}
