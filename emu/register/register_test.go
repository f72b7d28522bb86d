package register

import (
	"errors"
	"testing"

	"github.com/rcornwell/sx960sim/emu/word"
)

func newTestFile() *File {
	bus := newFakeBus()
	cache := NewFrameCache(4)
	cache.TakeOwnership(bus, 0x5000)
	return NewFile(cache)
}

// Invariant 2: setOrdinal/getOrdinal round-trip for every non-literal
// register, and byte lanes decompose little-endian.
func TestSetGetRoundTrip(t *testing.T) {
	f := newTestFile()
	for _, raw := range []uint8{0, 1, 5, 14, 16, 20, 31} {
		idx := Index{Raw: raw}
		dst, err := f.GetDestination(idx)
		if err != nil {
			t.Fatalf("GetDestination(%d): %v", raw, err)
		}
		v := word.Ordinal(0x11223344 + uint32(raw))
		dst.Set(v)
		if got := f.GetSource(idx); got != v {
			t.Errorf("reg %d: got %#x want %#x", raw, got, v)
		}
		readBack := f.GetSource(idx)
		for i := 0; i < 4; i++ {
			want := byte(v >> (8 * i))
			gotByte := byte(readBack >> (8 * i))
			if gotByte != want {
				t.Errorf("reg %d byte %d = %#x want %#x", raw, i, gotByte, want)
			}
		}
	}
}

func TestLiteralReadOnly(t *testing.T) {
	f := newTestFile()
	idx := Index{Raw: 7, Literal: true}
	if v := f.GetSource(idx); v != 7 {
		t.Errorf("literal 7 read as %d", v)
	}
	if _, err := f.GetDestination(idx); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("GetDestination on literal: err = %v, want ErrInvalidOperand", err)
	}
}

func TestDoubleAlignment(t *testing.T) {
	f := newTestFile()
	if err := f.SetDouble(Index{Raw: 4}, 0x0102030405060708); err != nil {
		t.Fatalf("SetDouble: %v", err)
	}
	v, err := f.GetDouble(Index{Raw: 4})
	if err != nil || v != 0x0102030405060708 {
		t.Errorf("GetDouble = %#x, %v", v, err)
	}
	if _, err := f.GetDouble(Index{Raw: 5}); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("misaligned GetDouble: err = %v, want ErrInvalidOperand", err)
	}
}

func TestQuadAlignment(t *testing.T) {
	f := newTestFile()
	in := [4]word.Ordinal{1, 2, 3, 4}
	if err := f.SetQuad(Index{Raw: 8}, in); err != nil {
		t.Fatalf("SetQuad: %v", err)
	}
	out, err := f.GetQuad(Index{Raw: 8})
	if err != nil || out != in {
		t.Errorf("GetQuad = %v, %v", out, err)
	}
	if _, err := f.GetQuad(Index{Raw: 6}); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("misaligned GetQuad: err = %v, want ErrInvalidOperand", err)
	}
}

// A literal operand zero-extends rather than pulling its "upper half"
// from the adjacent register, and never trips the alignment check.
func TestLiteralZeroExtendsAcrossWidths(t *testing.T) {
	f := newTestFile()
	// Odd raw value: would fail GetDouble's alignment check if treated
	// as a real register index instead of a literal.
	lit := Index{Raw: 7, Literal: true}

	v, err := f.GetDouble(lit)
	if err != nil || v != 7 {
		t.Errorf("GetDouble(literal 7) = %#x, %v, want 7, nil", v, err)
	}

	q, err := f.GetQuad(lit)
	if err != nil || q != [4]word.Ordinal{7, 0, 0, 0} {
		t.Errorf("GetQuad(literal 7) = %v, %v, want [7 0 0 0], nil", q, err)
	}

	tr, err := f.GetTriple(lit)
	if err != nil || tr != [3]word.Ordinal{7, 0, 0} {
		t.Errorf("GetTriple(literal 7) = %v, %v, want [7 0 0], nil", tr, err)
	}
}
