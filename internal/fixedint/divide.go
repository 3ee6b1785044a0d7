package fixedint

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by the division operations when the
// denominator is zero.
var ErrDivisionByZero = errors.New("fixedint: division by zero")

// DivMod computes q = num / den and r = num % den by binary long division.
//
// num may be wider than den; the usual case is a 2N-word product divided by
// an N-word modulus. q must have the width of num and r the width of den.
// The loop visits every bit of num, so the running time depends only on the
// widths. q and r may alias num or den.
//
// Returns ErrDivisionByZero, leaving q and r untouched, when den is zero.
func DivMod(q, r, num, den Nat) error {
	if len(q) != len(num) {
		panic(fmt.Sprintf("fixedint: quotient needs %d words, have %d", len(num), len(q)))
	}
	mustSameWidth(r, den)
	if den.IsZero() {
		return ErrDivisionByZero
	}

	rem := acquireNat(len(den))
	defer releaseNat(rem)
	diff := acquireNat(len(den))
	defer releaseNat(diff)
	quo := acquireNat(len(num))
	defer releaseNat(quo)

	for i := len(num)*WordBits - 1; i >= 0; i-- {
		// rem may briefly need one bit more than den; hi holds it.
		hi := shl1(rem, Word(num.Bit(i)))
		borrow := SubtractBorrow(diff, rem, den)
		take := hi | (borrow ^ 1)
		selectInto(rem, diff, rem, mask(take))
		shl1(quo, take)
	}

	copy(q, quo)
	copy(r, rem)
	return nil
}

// DivideWithOverflow returns num / den. The quotient has the width of num,
// which may be up to twice the width of den.
func DivideWithOverflow(num, den Nat) (Nat, error) {
	q, r := New(len(num)), New(len(den))
	if err := DivMod(q, r, num, den); err != nil {
		return nil, err
	}
	return q, nil
}

// RemainderWithOverflow returns num % den with the width of den. It is the
// plain (non-Montgomery) way to reduce a double-width product modulo a field
// modulus.
func RemainderWithOverflow(num, den Nat) (Nat, error) {
	q, r := New(len(num)), New(len(den))
	if err := DivMod(q, r, num, den); err != nil {
		return nil, err
	}
	return r, nil
}
