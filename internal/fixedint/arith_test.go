package fixedint

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// natGen generates uniformly random Nats of the given width.
func natGen(words int) gopter.Gen {
	return gen.SliceOfN(words, gen.UInt32())
}

func TestSubtract_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x, y Nat
		want Nat
	}{
		{"no borrow", FromUint64(10, 2), FromUint64(3, 2), FromUint64(7, 2)},
		{"borrow across words", FromWords(1, 0), FromUint64(1, 2), FromWords(0, 0xffffffff)},
		{"wraps below zero", FromUint64(0, 2), FromUint64(1, 2), maxNat(2)},
		{"equal operands", secp256k1P, secp256k1P, New(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := New(len(tt.x))
			Subtract(z, tt.x, tt.y)
			if !Equal(z, tt.want) {
				t.Errorf("Subtract(%s, %s) = %s, want %s", tt.x.Hex(), tt.y.Hex(), z.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestSubtractBorrow(t *testing.T) {
	t.Parallel()
	z := New(2)
	if b := SubtractBorrow(z, FromUint64(1, 2), FromUint64(2, 2)); b != 1 {
		t.Errorf("1 - 2 borrow = %d, want 1", b)
	}
	if b := SubtractBorrow(z, FromUint64(2, 2), FromUint64(1, 2)); b != 0 {
		t.Errorf("2 - 1 borrow = %d, want 0", b)
	}
}

func TestSubtract_Aliasing(t *testing.T) {
	t.Parallel()
	x := FromUint64(100, 4)
	Subtract(x, x, FromUint64(58, 4))
	if x.String() != "42" {
		t.Errorf("in-place Subtract = %s, want 42", x)
	}
}

// TestWrappingInverse_PropertyBased checks Subtract(Add(a, b), b) == a
// modulo 2^(32N) for every width used by the field presets.
func TestWrappingInverse_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, words := range []int{1, Width128, Width256, Width521} {
		properties.Property(fmt.Sprintf("subtract undoes add (%d words)", words), prop.ForAll(
			func(a, b []uint32) bool {
				sum := New(len(a))
				Add(sum, a, b)
				back := New(len(a))
				Subtract(back, sum, b)
				return Equal(back, a)
			},
			natGen(words), natGen(words),
		))
	}

	properties.TestingRun(t)
}

// TestSubtract_MatchesBig_PropertyBased compares wrapping subtraction with
// (x - y) mod 2^(32N) computed by math/big.
func TestSubtract_MatchesBig_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("wrapping subtract matches math/big", prop.ForAll(
		func(a, b []uint32) bool {
			x, y := Nat(a), Nat(b)
			z := New(len(x))
			Subtract(z, x, y)

			mod := new(big.Int).Lsh(big.NewInt(1), uint(len(x)*WordBits))
			want := new(big.Int).Sub(x.Big(), y.Big())
			want.Mod(want, mod)
			return z.Big().Cmp(want) == 0
		},
		natGen(Width256), natGen(Width256),
	))

	properties.TestingRun(t)
}

// TestMultiply_MatchesBig_PropertyBased verifies the full 2N-word product
// against math/big for random operands.
func TestMultiply_MatchesBig_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, words := range []int{1, 3, Width256, Width384} {
		properties.Property(fmt.Sprintf("multiply equals the exact product (%d words)", words), prop.ForAll(
			func(a, b []uint32) bool {
				x, y := Nat(a), Nat(b)
				z := New(2 * len(x))
				Multiply(z, x, y)
				want := new(big.Int).Mul(x.Big(), y.Big())
				return z.Big().Cmp(want) == 0
			},
			natGen(words), natGen(words),
		))
	}

	properties.TestingRun(t)
}

func TestMultiply_Boundaries(t *testing.T) {
	t.Parallel()
	words := Width256
	zero, one, ones := New(words), FromUint64(1, words), maxNat(words)

	tests := []struct {
		name string
		x, y Nat
	}{
		{"zero times max", zero, ones},
		{"one times max", one, ones},
		{"max squared", ones, ones},
		{"one times one", one, one},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := New(2 * words)
			Multiply(z, tt.x, tt.y)
			want := new(big.Int).Mul(tt.x.Big(), tt.y.Big())
			if z.Big().Cmp(want) != 0 {
				t.Errorf("Multiply = %s, want %x", z.Hex(), want)
			}
		})
	}
}

// TestMultiply_Secp256k1Operands checks the double-width product of two
// secp256k1 field elements, split into its high and low halves.
func TestMultiply_Secp256k1Operands(t *testing.T) {
	t.Parallel()
	a := FromWords(0x9b992796, 0x19237faf, 0x0c13c344, 0x614c46a9, 0xe7357341, 0xc6e4e042, 0xa9b1311a, 0x8622deaa)
	b := FromWords(0xe7f1caa6, 0x36baa277, 0x9cfd6cf9, 0x696cf826, 0xf013db03, 0x7aa08f3d, 0x5c2dfaf9, 0xdb5d255b)
	high := FromWords(0x8cfa2912, 0x94cc8c2c, 0x827a9ef6, 0x977f6b69, 0x1d24b810, 0xf085c437, 0xabd13f27, 0x942da0b5)
	low := FromWords(0xede973cf, 0x7a14db61, 0x0dfe857e, 0x382bc650, 0x71af459e, 0x27425f0c, 0x36b67051, 0x0a55b86e)

	z := New(16)
	Multiply(z, a, b)
	if !Equal(z[8:], high) {
		t.Errorf("high half = %s, want %s", z[8:].Hex(), high.Hex())
	}
	if !Equal(z[:8], low) {
		t.Errorf("low half = %s, want %s", z[:8].Hex(), low.Hex())
	}
}

func TestMultiply_WrongOutputWidthPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("Multiply into an N-word result should panic")
		}
	}()
	Multiply(New(8), New(8), New(8))
}

func TestSelectInto(t *testing.T) {
	t.Parallel()
	x, y := FromUint64(1, 2), FromUint64(2, 2)
	z := New(2)
	selectInto(z, x, y, mask(1))
	if !Equal(z, x) {
		t.Errorf("select with all-ones mask = %s, want %s", z, x)
	}
	selectInto(z, x, y, mask(0))
	if !Equal(z, y) {
		t.Errorf("select with zero mask = %s, want %s", z, y)
	}
}
