package word

import "testing"

// Rotate by 0 mod 32 is the identity; rotate composes.
func TestRotateIdentityAndComposition(t *testing.T) {
	x := Ordinal(0x12345678)

	if r := Rotate(x, 32); r != x {
		t.Errorf("Rotate(x,32) = %#x, want %#x", r, x)
	}

	for n := uint(0); n < 64; n++ {
		got := Rotate(x, n)
		want := Rotate(Rotate(x, n%32), 0)
		if got != want {
			t.Errorf("Rotate(x,%d) = %#x, want %#x", n, got, want)
		}
	}
}

// Rotate by 1 differs from a plain shift only in bit 0.
func TestRotateOneBitZero(t *testing.T) {
	x := Ordinal(0x80000001)
	shifted := x << 1
	rotated := Rotate(x, 1)

	if rotated&^1 != shifted&^1 {
		t.Errorf("Rotate(x,1) = %#x and x<<1 = %#x differ outside bit 0", rotated, shifted)
	}
	if rotated&1 != (x>>31)&1 {
		t.Errorf("Rotate(x,1) bit 0 = %d, want former MSB %d", rotated&1, (x>>31)&1)
	}
}

func TestModify(t *testing.T) {
	cases := []struct{ mask, src, prior, want Ordinal }{
		{0xFFFFFFFF, 0x12345678, 0xAAAAAAAA, 0x12345678},
		{0x00000000, 0x12345678, 0xAAAAAAAA, 0xAAAAAAAA},
		{0x0000FFFF, 0x12345678, 0xAAAAAAAA, 0xAAAA5678},
		{0xF0F0F0F0, 0x11111111, 0x22222222, 0x12121212},
	}
	for _, c := range cases {
		got := Modify(c.mask, c.src, c.prior)
		if got != c.want {
			t.Errorf("Modify(%#x,%#x,%#x) = %#x, want %#x", c.mask, c.src, c.prior, got, c.want)
		}
	}
}

func TestSignExtend24(t *testing.T) {
	if v := SignExtend24(0x000010); v != 0x10 {
		t.Errorf("SignExtend24(0x10) = %d, want 16", v)
	}
	if v := SignExtend24(0xFFFFF0); v != -16 {
		t.Errorf("SignExtend24(0xFFFFF0) = %d, want -16", v)
	}
}

func TestSignExtend13(t *testing.T) {
	if v := SignExtend13(0x0004); v != 4 {
		t.Errorf("SignExtend13(4) = %d, want 4", v)
	}
	if v := SignExtend13(0x1FFC); v != -4 {
		t.Errorf("SignExtend13(0x1FFC) = %d, want -4", v)
	}
}
