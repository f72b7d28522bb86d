package decode

import "testing"

func TestFormatClassification(t *testing.T) {
	cases := []struct {
		major uint8
		want  Format
	}{
		{0x00, FormatCTRL},
		{0x1F, FormatCTRL},
		{0x20, FormatCOBR},
		{0x57, FormatCOBR},
		{0x58, FormatREG},
		{0x7F, FormatREG},
		{0x80, FormatMEM},
		{0xFF, FormatMEM},
	}
	for _, c := range cases {
		low := uint32(c.major) << 24
		ins := Decode(low, 0)
		if ins.Format() != c.want {
			t.Errorf("major %#x: format = %v, want %v", c.major, ins.Format(), c.want)
		}
	}
}

func TestEffectiveOpcodeREG(t *testing.T) {
	low := uint32(0x5A)<<24 | 0x3 // major 0x5A, ext opcode 3
	ins := Decode(low, 0)
	if got, want := ins.EffectiveOpcode(), uint16(0x5A3); got != want {
		t.Errorf("effective opcode = %#x, want %#x", got, want)
	}
}

func TestEffectiveOpcodeNonREG(t *testing.T) {
	low := uint32(0x12) << 24
	ins := Decode(low, 0)
	if got, want := ins.EffectiveOpcode(), uint16(0x120); got != want {
		t.Errorf("effective opcode = %#x, want %#x", got, want)
	}
}

func TestCTRLDisplacementSignExtends(t *testing.T) {
	low := uint32(0x08)<<24 | 0x00FFFFF0 // negative 24-bit displacement
	ins := Decode(low, 0)
	d, err := ins.Displacement()
	if err != nil {
		t.Fatalf("Displacement: %v", err)
	}
	if d != -16 {
		t.Errorf("displacement = %d, want -16", d)
	}
}

func TestMEMBDoubleWide(t *testing.T) {
	// mode 0x6 (abs-displacement) is double-wide; mode 0x4 (reg-indirect,
	// no displacement word) is not.
	low := uint32(0x90)<<24 | (0x6 << 10)
	ins := Decode(low, 0x1000)
	if !ins.IsDoubleWide() {
		t.Errorf("mode 0x6 should be double-wide")
	}
	low2 := uint32(0x90)<<24 | (0x4 << 10)
	ins2 := Decode(low2, 0)
	if ins2.IsDoubleWide() {
		t.Errorf("mode 0x4 should not be double-wide")
	}
}

func TestREGOperandFieldsIndependentOfOpcode(t *testing.T) {
	// Every register (0-31) must be reachable as src1/src2/sd regardless
	// of which extended opcode the instruction encodes.
	for ext := uint32(0); ext < 16; ext++ {
		low := uint32(0x5A)<<24 | ext
		low |= 17 << 8  // src1 = r17
		low |= 9 << 14  // src2 = r9
		low |= 23 << 19 // sd = r23
		ins := Decode(low, 0)
		if got := ins.Src1(false).Raw; got != 17 {
			t.Errorf("ext %d: src1 = %d, want 17", ext, got)
		}
		if got := ins.Src2().Raw; got != 9 {
			t.Errorf("ext %d: src2 = %d, want 9", ext, got)
		}
		if got := ins.SrcDest(true).Raw; got != 23 {
			t.Errorf("ext %d: sd = %d, want 23", ext, got)
		}
		if ins.EffectiveOpcode()&0xF != uint16(ext) {
			t.Errorf("ext %d: effective opcode low nibble = %#x", ext, ins.EffectiveOpcode()&0xF)
		}
	}
}

func TestScaleReservedTreatedAsZero(t *testing.T) {
	low := uint32(0x90)<<24 | (0xC << 10) | (7 << 7) // scale field = 7 (reserved)
	ins := Decode(low, 0)
	if got := ins.Scale(); got != 0 {
		t.Errorf("reserved scale = %d, want 0", got)
	}
}
