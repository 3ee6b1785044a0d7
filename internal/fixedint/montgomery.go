package fixedint

import (
	"errors"
	"math/bits"
)

// ErrInvalidModulus is returned by NewContext for an even or zero modulus.
var ErrInvalidModulus = errors.New("fixedint: Montgomery modulus must be odd and nonzero")

// Context holds the constants needed for Montgomery arithmetic modulo m with
// radix R = 2^(32N), where N is the width of m. It is immutable once built
// and safe for concurrent use.
type Context struct {
	m    Nat  // modulus
	mInv Word // -m^-1 mod 2^32
	rm   Nat  // R mod m, the Montgomery form of 1
	r2   Nat  // R^2 mod m
	one  Nat  // plain 1
}

// traceOp, when non-nil, is called for every word-level primitive executed
// by the final conditional subtraction of a reduction.
var traceOp func(op string, word int)

// NewContext derives the Montgomery constants for modulus m. m is copied.
func NewContext(m Nat) (*Context, error) {
	if len(m) == 0 || !m.IsOdd() {
		return nil, ErrInvalidModulus
	}
	n := len(m)
	c := &Context{
		m:    m.Clone(),
		mInv: negInverse(m[0]),
		one:  FromUint64(1, n),
	}

	// R and R^2 are one word wider than m and 2N words respectively, so they
	// are reduced through the double-width division path.
	rNum := New(n + 1)
	rNum[n] = 1
	rm, err := RemainderWithOverflow(rNum, c.m)
	if err != nil {
		return nil, err
	}
	r2Num := New(2*n + 1)
	r2Num[2*n] = 1
	r2, err := RemainderWithOverflow(r2Num, c.m)
	if err != nil {
		return nil, err
	}
	c.rm, c.r2 = rm, r2
	return c, nil
}

// negInverse returns -m0^-1 mod 2^32 for odd m0 by Newton iteration. Every
// odd m0 is its own inverse modulo 8, and each step doubles the number of
// correct low bits: 3, 6, 12, 24, 48.
func negInverse(m0 Word) Word {
	inv := m0
	for i := 0; i < 4; i++ {
		inv *= 2 - m0*inv
	}
	return -inv
}

// Words returns the width N of the modulus.
func (c *Context) Words() int { return len(c.m) }

// Modulus returns a copy of m.
func (c *Context) Modulus() Nat { return c.m.Clone() }

// NegInverse returns -m^-1 mod 2^32.
func (c *Context) NegInverse() Word { return c.mInv }

// RModM returns a copy of R mod m, the Montgomery form of 1.
func (c *Context) RModM() Nat { return c.rm.Clone() }

// R2ModM returns a copy of R^2 mod m.
func (c *Context) R2ModM() Nat { return c.r2.Clone() }

// Montgomery sets z = x * y * R^-1 mod m. x and y must be in Montgomery form
// and reduced (< m); the result is in Montgomery form and reduced. z may
// alias x or y.
func (c *Context) Montgomery(z, x, y Nat) {
	mustSameWidth(z, c.m)
	mustSameWidth(x, c.m)
	mustSameWidth(y, c.m)
	n := len(c.m)

	t := acquireNat(2*n + 1)
	defer releaseNat(t)
	Multiply(t[:2*n], x, y)
	c.redc(z, t)
}

// Reduce sets z = t * R^-1 mod m for a 2N-word t < m*R.
func (c *Context) Reduce(z, t Nat) {
	mustSameWidth(z, c.m)
	n := len(c.m)
	if len(t) != 2*n {
		panic("fixedint: Reduce needs a double-width input")
	}
	s := acquireNat(2*n + 1)
	defer releaseNat(s)
	copy(s, t)
	c.redc(z, s)
}

// ToMontgomery sets z = x * R mod m for x < m.
func (c *Context) ToMontgomery(z, x Nat) {
	c.Montgomery(z, x, c.r2)
}

// FromMontgomery sets z = x * R^-1 mod m, leaving the Montgomery domain.
func (c *Context) FromMontgomery(z, x Nat) {
	c.Montgomery(z, x, c.one)
}

// Exp sets z = x^e in the Montgomery domain: x and z are in Montgomery form,
// e is a plain exponent of any width. Every bit of e costs one squaring and
// one multiplication, whatever its value.
func (c *Context) Exp(z, x, e Nat) {
	mustSameWidth(z, c.m)
	mustSameWidth(x, c.m)
	n := len(c.m)

	acc := acquireNat(n)
	defer releaseNat(acc)
	prod := acquireNat(n)
	defer releaseNat(prod)
	base := acquireNat(n)
	defer releaseNat(base)

	copy(base, x)
	copy(acc, c.rm)
	for i := len(e)*WordBits - 1; i >= 0; i-- {
		c.Montgomery(acc, acc, acc)
		c.Montgomery(prod, acc, base)
		selectInto(acc, prod, acc, mask(Word(e.Bit(i))))
	}
	copy(z, acc)
}

// redc runs Montgomery reduction on t, which has 2N+1 words with a zero top
// word, and writes the reduced N-word result to z. t is clobbered.
func (c *Context) redc(z, t Nat) {
	n := len(c.m)
	for i := 0; i < n; i++ {
		// u is chosen so that t + u*m*2^(32i) has a zero word at i.
		u := t[i] * c.mInv
		carry := addMulVVW(t[i:i+n], c.m, u)
		addVW(t[i+n:], t[i+n:], carry)
	}
	c.finalSubtract(z, t[n:2*n], t[2*n])
}

// finalSubtract sets z = v - m if v >= m and z = v otherwise, where
// v = top*2^(32N) + hi < 2m. The subtraction is always performed and the
// result chosen by mask, so the executed sequence does not depend on the
// outcome.
func (c *Context) finalSubtract(z, hi Nat, top Word) {
	n := len(c.m)
	d := acquireNat(n)
	defer releaseNat(d)

	var borrow uint32
	for i := 0; i < n; i++ {
		d[i], borrow = bits.Sub32(hi[i], c.m[i], borrow)
		if traceOp != nil {
			traceOp("sub", i)
		}
	}
	m := mask(top | (borrow ^ 1))
	for i := 0; i < n; i++ {
		z[i] = hi[i] ^ (m & (d[i] ^ hi[i]))
		if traceOp != nil {
			traceOp("select", i)
		}
	}
}
