package fixedint

import (
	"encoding/binary"
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDivide_ByZero(t *testing.T) {
	t.Parallel()
	numerators := map[string]Nat{
		"zero":         New(16),
		"one":          FromUint64(1, 16),
		"max":          maxNat(16),
		"single width": secp256k1P,
	}

	for name, num := range numerators {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := DivideWithOverflow(num, New(8)); !errors.Is(err, ErrDivisionByZero) {
				t.Errorf("DivideWithOverflow error = %v, want ErrDivisionByZero", err)
			}
			if _, err := RemainderWithOverflow(num, New(8)); !errors.Is(err, ErrDivisionByZero) {
				t.Errorf("RemainderWithOverflow error = %v, want ErrDivisionByZero", err)
			}
		})
	}
}

func TestDivMod_ByZeroLeavesOutputs(t *testing.T) {
	t.Parallel()
	q, r := FromUint64(7, 2), FromUint64(9, 1)
	if err := DivMod(q, r, FromUint64(100, 2), New(1)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("DivMod error = %v, want ErrDivisionByZero", err)
	}
	if q.String() != "7" || r.String() != "9" {
		t.Errorf("outputs were modified: q=%s r=%s", q, r)
	}
}

func TestDivide_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		num     Nat
		den     Nat
		wantQuo string
		wantRem string
	}{
		{"small", FromUint64(100, 2), FromUint64(7, 2), "14", "2"},
		{"numerator below denominator", FromUint64(3, 2), FromUint64(7, 2), "0", "3"},
		{"divide by one", FromUint64(0xffffffffffff, 2), FromUint64(1, 2), "281474976710655", "0"},
		{
			"double width by secp256k1 prime",
			maxNat(16), secp256k1P,
			"0x100000000000000000000000000000000000000000000000000000001000003d1",
			"0x1000007a2000e90a0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := DivideWithOverflow(tt.num, tt.den)
			if err != nil {
				t.Fatalf("DivideWithOverflow error: %v", err)
			}
			r, err := RemainderWithOverflow(tt.num, tt.den)
			if err != nil {
				t.Fatalf("RemainderWithOverflow error: %v", err)
			}
			wantQ, _ := Parse(tt.wantQuo, len(tt.num))
			wantR, _ := Parse(tt.wantRem, len(tt.den))
			if !Equal(q, wantQ) {
				t.Errorf("quotient = %s, want %s", q, wantQ)
			}
			if !Equal(r, wantR) {
				t.Errorf("remainder = %s, want %s", r, wantR)
			}
			if len(q) != len(tt.num) || len(r) != len(tt.den) {
				t.Errorf("widths: quotient %d remainder %d, want %d and %d", len(q), len(r), len(tt.num), len(tt.den))
			}
		})
	}
}

// TestDivisionIdentity_PropertyBased checks q*d + r == n and r < d for
// double-width numerators and single-width denominators.
func TestDivisionIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	nonZero := natGen(Width256).SuchThat(func(v []uint32) bool { return !Nat(v).IsZero() })

	properties.Property("quotient and remainder reconstruct the numerator", prop.ForAll(
		func(n, d []uint32) bool {
			num, den := Nat(n), Nat(d)
			q, err := DivideWithOverflow(num, den)
			if err != nil {
				return false
			}
			r, err := RemainderWithOverflow(num, den)
			if err != nil {
				return false
			}
			if Cmp(r, den) >= 0 {
				return false
			}
			back := new(big.Int).Mul(q.Big(), den.Big())
			back.Add(back, r.Big())
			return back.Cmp(num.Big()) == 0
		},
		natGen(2*Width256), nonZero,
	))

	properties.Property("small denominators", prop.ForAll(
		func(n []uint32, d uint32) bool {
			num := Nat(n)
			den := FromUint64(uint64(d), Width256)
			r, err := RemainderWithOverflow(num, den)
			if err != nil {
				return false
			}
			want := new(big.Int).Mod(num.Big(), den.Big())
			return r.Big().Cmp(want) == 0
		},
		natGen(2*Width256), gen.UInt32Range(1, 1<<31),
	))

	properties.TestingRun(t)
}

func TestDivMod_Aliasing(t *testing.T) {
	t.Parallel()
	num := FromUint64(1000, 2)
	den := FromUint64(7, 2)
	if err := DivMod(num, den, num, den); err != nil {
		t.Fatal(err)
	}
	if num.String() != "142" || den.String() != "6" {
		t.Errorf("aliased DivMod gave q=%s r=%s, want 142 and 6", num, den)
	}
}

// FuzzDivMod verifies the division identity on arbitrary byte input split
// into a numerator and a denominator.
func FuzzDivMod(f *testing.F) {
	f.Add(make([]byte, 64), []byte{1, 0, 0, 0})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, []byte{3, 0, 0, 0, 0, 0, 0, 1})
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, []byte{0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, numBytes, denBytes []byte) {
		num := natFromBytes(numBytes)
		den := natFromBytes(denBytes)
		if len(num) > 64 || len(den) > 32 {
			return
		}
		q, r := New(len(num)), New(len(den))
		err := DivMod(q, r, num, den)
		if den.IsZero() {
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("zero denominator: err = %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("DivMod error: %v", err)
		}
		wantQ, wantR := new(big.Int).QuoRem(num.Big(), den.Big(), new(big.Int))
		if q.Big().Cmp(wantQ) != 0 || r.Big().Cmp(wantR) != 0 {
			t.Fatalf("%s / %s = (%s, %s), want (%s, %s)", num, den, q, r, wantQ, wantR)
		}
	})
}

// natFromBytes reads little-endian words from data, padding the last one.
func natFromBytes(data []byte) Nat {
	words := (len(data) + 3) / 4
	if words == 0 {
		words = 1
	}
	padded := make([]byte, words*4)
	copy(padded, data)
	z := New(words)
	for i := range z {
		z[i] = binary.LittleEndian.Uint32(padded[4*i:])
	}
	return z
}
