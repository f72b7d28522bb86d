package membus

import "testing"

// Invariant 1: store then matching load at the same address round-trips.
func TestStoreLoadRoundTrip(t *testing.T) {
	r := NewRAM(256)
	r.StoreWord(0x10, 0xCAFEBABE)
	if v := r.LoadWord(0x10); v != 0xCAFEBABE {
		t.Errorf("LoadWord = %#x, want %#x", v, 0xCAFEBABE)
	}
	r.StoreLong(0x20, 0x0102030405060708)
	if v := r.LoadLong(0x20); v != 0x0102030405060708 {
		t.Errorf("LoadLong = %#x, want %#x", v, 0x0102030405060708)
	}
	q := [4]uint32{1, 2, 3, 4}
	r.StoreQuad(0x40, q)
	if got := r.LoadQuad(0x40); got != q {
		t.Errorf("LoadQuad = %v, want %v", got, q)
	}
}

func TestUnalignedShort(t *testing.T) {
	r := NewRAM(256)
	r.StoreWord(0x00, 0x11223344)
	// Reading the short at offset 1 should assemble bytes 1,2 little-endian.
	got := r.LoadShort(0x01)
	want := uint16((0x11223344 >> 8) & 0xFFFF)
	if got != want {
		t.Errorf("unaligned LoadShort = %#x, want %#x", got, want)
	}
}

type fakeSink struct{ msgs [][16]byte }

func (f *fakeSink) DispatchIAC(msg [16]byte) { f.msgs = append(f.msgs, msg) }

func TestSynchronizedStoreQuadIntercepted(t *testing.T) {
	r := NewRAM(0x02000000)
	sink := &fakeSink{}
	r.SetIACSink(sink)

	v := [4]uint32{0x00000000, 0, 0, 0x40000001}
	intercepted := r.SynchronizedStoreQuad(IACWindowBase, v)
	if !intercepted {
		t.Fatalf("expected IAC window store to be intercepted")
	}
	if len(sink.msgs) != 1 {
		t.Fatalf("expected 1 dispatched IAC message, got %d", len(sink.msgs))
	}
	// memory must NOT have been committed at the window address.
	if got := r.LoadWord(IACWindowBase); got != 0 {
		t.Errorf("IAC window store leaked into memory: %#x", got)
	}
}

func TestHaltOnDesignatedAddress(t *testing.T) {
	r := NewRAM(256)
	r.SetHaltAddress(0x80)
	if r.Halted() {
		t.Fatalf("halted before any store")
	}
	r.StoreWord(0x80, 0)
	if !r.Halted() {
		t.Errorf("expected halt after store to designated address")
	}
}
