/*
 * SX960 - Word primitives.
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

// Package word defines the fixed-width scalar types the core operates on
// and the bit-manipulation primitives shared by every instruction family.
package word

// Ordinal families. All views alias the same underlying bit pattern; the
// named types exist so call sites read as architecture terms rather than
// bare machine words.
type (
	Byte        = uint8
	Short       = uint16
	Ordinal     = uint32
	LongOrdinal = uint64

	SByte   = int8
	SShort  = int16
	Integer = int32
	SLong   = int64
)

// Rotate performs a 32-bit circular left rotate by n bits (n taken mod 32).
func Rotate(x Ordinal, n uint) Ordinal {
	n &= 31
	if n == 0 {
		return x
	}
	return (x << n) | (x >> (32 - n))
}

// Modify implements the uniform control-register update primitive used by
// modac/modpc/modtc and the bit-manipulation instruction family:
//
//	new = (src & mask) | (prior & ^mask)
func Modify(mask, src, prior Ordinal) Ordinal {
	return (src & mask) | (prior &^ mask)
}

// SignExtend24 sign-extends a 24-bit field (CTRL displacement) to 32 bits.
func SignExtend24(v uint32) int32 {
	v &= 0x00FFFFFF
	if v&0x00800000 != 0 {
		v |= 0xFF000000
	}
	return int32(v)
}

// SignExtend13 sign-extends a 13-bit field (COBR displacement) to 32 bits.
func SignExtend13(v uint32) int32 {
	v &= 0x1FFF
	if v&0x1000 != 0 {
		v |= 0xFFFFE000
	}
	return int32(v)
}

// Bit returns a mask with only bit n (mod 32) set.
func Bit(n Ordinal) Ordinal {
	return 1 << (n & 31)
}
