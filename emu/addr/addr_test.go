package addr

import (
	"testing"

	"github.com/rcornwell/sx960sim/emu/decode"
	"github.com/rcornwell/sx960sim/emu/register"
)

func newRegs() *register.File {
	bus := newFakeBus()
	cache := register.NewFrameCache(4)
	cache.TakeOwnership(bus, 0x1000)
	return register.NewFile(cache)
}

type fakeBus struct{ mem map[uint32]uint32 }

func newFakeBus() *fakeBus { return &fakeBus{mem: map[uint32]uint32{}} }
func (b *fakeBus) LoadWord(addr uint32) uint32  { return b.mem[addr] }
func (b *fakeBus) StoreWord(addr, v uint32)     { b.mem[addr] = v }

func TestMEMAAbsOffset(t *testing.T) {
	low := uint32(0x90)<<24 | 0x123 // MEMA, offset 0x123
	ins := decode.Decode(low, 0)
	regs := newRegs()
	got, err := EffectiveAddress(&ins, regs, 0)
	if err != nil || got != 0x123 {
		t.Errorf("got %#x, %v, want 0x123", got, err)
	}
}

func TestMEMARegIndirectOffset(t *testing.T) {
	low := uint32(0x90)<<24 | (1 << 13) | 0x10 // MEMA reg-indirect+offset, abase field bits[18:14]=0
	ins := decode.Decode(low, 0)
	regs := newRegs()
	regs.SetAt(ins.Abase(), 0x2000)
	got, err := EffectiveAddress(&ins, regs, 0)
	if err != nil || got != 0x2010 {
		t.Errorf("got %#x, %v, want 0x2010", got, err)
	}
}

func TestMEMBIPDisplacement(t *testing.T) {
	low := uint32(0x90)<<24 | (0x5 << 10)
	ins := decode.Decode(low, 100)
	regs := newRegs()
	got, err := EffectiveAddress(&ins, regs, 1000)
	if err != nil || got != 1000+100+8 {
		t.Errorf("got %d, %v, want %d", got, err, 1000+100+8)
	}
}

func TestMEMBRegIndirectIndexDisplacement(t *testing.T) {
	low := uint32(0x90)<<24 | (0xD << 10) | 1 // index reg = 1
	ins := decode.Decode(low, 0x100)
	regs := newRegs()
	regs.SetAt(ins.Abase(), 0x5000)
	regs.SetAt(ins.IndexReg(), 4)
	got, err := EffectiveAddress(&ins, regs, 0)
	if err != nil || got != 0x5000+4+0x100 {
		t.Errorf("got %#x, %v, want %#x", got, err, 0x5000+4+0x100)
	}
}
