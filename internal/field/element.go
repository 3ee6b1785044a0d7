package field

import (
	"fmt"

	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/fixedint"
)

// Element is a value of a prime field, held in Montgomery form. Elements are
// immutable: every operation returns a new Element. Combining elements of
// different fields panics.
type Element struct {
	f *Field
	v fixedint.Nat
}

// Field returns the field e belongs to.
func (e Element) Field() *Field { return e.f }

func (e Element) sameField(o Element) {
	if !e.f.Equal(o.f) {
		panic(fmt.Sprintf("field: mixing elements of %s and %s", e.f, o.f))
	}
}

func (e Element) with(v fixedint.Nat) Element {
	return Element{f: e.f, v: v}
}

// Add returns e + o mod p.
func (e Element) Add(o Element) Element {
	e.sameField(o)
	n := len(e.v)
	sum := fixedint.New(n)
	carry := fixedint.Add(sum, e.v, o.v)
	reduced := fixedint.New(n)
	borrow := fixedint.SubtractBorrow(reduced, sum, e.f.p)
	// sum >= p exactly when the addition carried or the subtraction did not borrow.
	fixedint.Select(sum, reduced, sum, carry|(borrow^1))
	return e.with(sum)
}

// Sub returns e - o mod p.
func (e Element) Sub(o Element) Element {
	e.sameField(o)
	n := len(e.v)
	diff := fixedint.New(n)
	borrow := fixedint.SubtractBorrow(diff, e.v, o.v)
	wrapped := fixedint.New(n)
	fixedint.Add(wrapped, diff, e.f.p)
	fixedint.Select(diff, wrapped, diff, borrow)
	return e.with(diff)
}

// Neg returns -e mod p.
func (e Element) Neg() Element {
	return e.f.Zero().Sub(e)
}

// Mul returns e * o mod p using Montgomery multiplication.
func (e Element) Mul(o Element) Element {
	e.sameField(o)
	z := fixedint.New(len(e.v))
	e.f.ctx.Montgomery(z, e.v, o.v)
	return e.with(z)
}

// MulPlain returns e * o mod p by forming the double-width product of the
// plain values and reducing it with long division. It agrees with Mul and
// exists to exercise the non-Montgomery reduction path.
func (e Element) MulPlain(o Element) Element {
	e.sameField(o)
	n := len(e.v)
	a, b := e.Value(), o.Value()
	prod := fixedint.New(2 * n)
	fixedint.Multiply(prod, a, b)
	r, err := fixedint.RemainderWithOverflow(prod, e.f.p)
	if err != nil {
		// p is never zero for a constructed Field.
		panic(err)
	}
	e.f.ctx.ToMontgomery(r, r)
	return e.with(r)
}

// Square returns e * e mod p.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Exp returns e^k mod p for a plain exponent k of any width. The sequence of
// operations depends only on the width of k.
func (e Element) Exp(k fixedint.Nat) Element {
	z := fixedint.New(len(e.v))
	e.f.ctx.Exp(z, e.v, k)
	return e.with(z)
}

// Pow returns e^k mod p. Pow(0) is one.
func (e Element) Pow(k uint64) Element {
	return e.Exp(fixedint.FromUint64(k, 2))
}

// Inverse returns e^-1 mod p, computed as e^(p-2). Zero has no inverse.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Element{}, apperrors.ArithmeticError{Op: "inv", Cause: ErrNotInvertible}
	}
	return e.Exp(e.f.pMinus2), nil
}

// Div returns e / o mod p.
func (e Element) Div(o Element) (Element, error) {
	e.sameField(o)
	if o.IsZero() {
		return Element{}, apperrors.ArithmeticError{Op: "div", Cause: ErrNotInvertible}
	}
	inv, err := o.Inverse()
	if err != nil {
		return Element{}, err
	}
	return e.Mul(inv), nil
}

// Equal reports whether e and o are the same element of the same field.
func (e Element) Equal(o Element) bool {
	return e.f.Equal(o.f) && fixedint.Equal(e.v, o.v)
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.v.IsZero()
}

// Value returns the plain (non-Montgomery) value of e.
func (e Element) Value() fixedint.Nat {
	z := fixedint.New(len(e.v))
	e.f.ctx.FromMontgomery(z, e.v)
	return z
}

// Montgomery returns a copy of the internal Montgomery representation.
func (e Element) Montgomery() fixedint.Nat {
	return e.v.Clone()
}

// Hex returns the plain value in hexadecimal, without leading zeros.
func (e Element) Hex() string {
	return fmt.Sprintf("0x%x", e.Value().Big())
}

// String returns the decimal value followed by its field, e.g. "9 in F_11".
func (e Element) String() string {
	if e.f == nil {
		return "<nil element>"
	}
	return fmt.Sprintf("%s in %s", e.Value(), e.f)
}
