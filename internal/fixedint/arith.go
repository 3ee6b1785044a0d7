package fixedint

import (
	"fmt"
	"math/bits"
)

// Add sets z = x + y mod 2^(32N) and returns the carry out of the top word.
// z may alias x or y.
func Add(z, x, y Nat) Word {
	mustSameWidth(z, x)
	mustSameWidth(x, y)
	var c uint32
	for i := range z {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	return c
}

// Subtract sets z = x - y mod 2^(32N), wrapping on underflow. The borrow is
// discarded; callers that need an unsigned result must ensure x >= y, and
// modular callers should use SubtractBorrow. z may alias x or y.
func Subtract(z, x, y Nat) {
	SubtractBorrow(z, x, y)
}

// SubtractBorrow is Subtract but returns the borrow (0 or 1) out of the top word.
func SubtractBorrow(z, x, y Nat) Word {
	mustSameWidth(z, x)
	mustSameWidth(x, y)
	var b uint32
	for i := range z {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	return b
}

// Multiply sets z to the full product x * y. x and y must share a width N and
// z must be exactly 2N words; z must not overlap x or y. Every partial
// product is accumulated in 64 bits so the result is never truncated.
func Multiply(z, x, y Nat) {
	mustSameWidth(x, y)
	if len(z) != 2*len(x) {
		panic(fmt.Sprintf("fixedint: product needs %d words, have %d", 2*len(x), len(z)))
	}
	clear(z)
	for i, xi := range x {
		z[i+len(y)] = addMulVVW(z[i:i+len(y)], y, xi)
	}
}

// addMulVVW sets z += x*y and returns the carry word. len(z) == len(x).
func addMulVVW(z, x Nat, y Word) Word {
	var c uint64
	for i := range z {
		t := uint64(x[i])*uint64(y) + uint64(z[i]) + c
		z[i] = Word(t)
		c = t >> 32
	}
	return Word(c)
}

// addVW sets z = x + y for a single word y and returns the carry. It visits
// every word regardless of where the carry stops.
func addVW(z, x Nat, y Word) Word {
	c := y
	for i := range z {
		z[i], c = bits.Add32(x[i], c, 0)
	}
	return c
}

// shl1 shifts x left by one bit in place, shifting in the low bit of in, and
// returns the bit shifted out of the top.
func shl1(x Nat, in Word) Word {
	carry := in & 1
	for i := range x {
		next := x[i] >> (WordBits - 1)
		x[i] = x[i]<<1 | carry
		carry = next
	}
	return carry
}

// mask returns 0xffffffff when b == 1 and 0 when b == 0.
func mask(b Word) Word {
	return -(b & 1)
}

// Select sets z = x when b is 1 and z = y when b is 0, touching every word
// either way. z may alias x or y.
func Select(z, x, y Nat, b Word) {
	mustSameWidth(z, x)
	mustSameWidth(x, y)
	selectInto(z, x, y, mask(b))
}

// selectInto sets z = x when m is all ones and z = y when m is zero. Every
// word is read and written in both cases.
func selectInto(z, x, y Nat, m Word) {
	for i := range z {
		z[i] = y[i] ^ (m & (x[i] ^ y[i]))
	}
}
