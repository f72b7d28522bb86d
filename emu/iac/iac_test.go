package iac

import "testing"

type recordingHandler struct {
	reinit struct{ sat, prcb, ip uint32 }
	storeBase uint32
	purged    bool
}

func (r *recordingHandler) NormalBoot()                {}
func (r *recordingHandler) ChecksumFailHalt()           {}
func (r *recordingHandler) GenerateInterrupt(byte)       {}
func (r *recordingHandler) TestPendingInterrupts()      {}
func (r *recordingHandler) StoreSystemBase(addr uint32) { r.storeBase = addr }
func (r *recordingHandler) SetBreakpoint(uint32)        {}
func (r *recordingHandler) PurgeInstructionCache()      { r.purged = true }
func (r *recordingHandler) Reinitialize(sat, prcb, ip uint32) {
	r.reinit = struct{ sat, prcb, ip uint32 }{sat, prcb, ip}
}

func TestDispatchReinitialize(t *testing.T) {
	var raw [16]byte
	raw[3] = TypeReinitialize
	raw[4], raw[5], raw[6], raw[7] = 0x10, 0, 0, 0 // field3 (SAT) = 0x10
	raw[8] = 0x20                                  // field4 (PRCB) = 0x20
	raw[12] = 0x30                                 // field5 (start IP) = 0x30

	h := &recordingHandler{}
	if !Dispatch(raw, h) {
		t.Fatal("expected recognized type")
	}
	if h.reinit.sat != 0x10 || h.reinit.prcb != 0x20 || h.reinit.ip != 0x30 {
		t.Errorf("reinit = %+v", h.reinit)
	}
}

func TestDispatchStoreSystemBase(t *testing.T) {
	var raw [16]byte
	raw[3] = TypeStoreSystemBase
	raw[4] = 0xAB

	h := &recordingHandler{}
	Dispatch(raw, h)
	if h.storeBase != 0xAB {
		t.Errorf("storeBase = %#x, want 0xAB", h.storeBase)
	}
}

func TestDispatchUnknownType(t *testing.T) {
	var raw [16]byte
	raw[3] = 0xFE
	h := &recordingHandler{}
	if Dispatch(raw, h) {
		t.Errorf("expected unrecognized type to report false")
	}
}
