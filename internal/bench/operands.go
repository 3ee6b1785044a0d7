package bench

import (
	"math/rand/v2"

	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/fixedint"
)

// Pair is one pair of multiplication operands.
type Pair struct {
	A, B fixedint.Nat
}

// Operands returns count operand pairs drawn uniformly below the field
// modulus. The sequence depends only on the field and the seed.
func Operands(f *field.Field, count int, seed uint64) []Pair {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	p := f.Modulus()
	pairs := make([]Pair, count)
	for i := range pairs {
		pairs[i] = Pair{A: randomBelow(r, p), B: randomBelow(r, p)}
	}
	return pairs
}

// randomBelow draws values with the bit length of p until one is below p.
func randomBelow(r *rand.Rand, p fixedint.Nat) fixedint.Nat {
	n := len(p)
	topBits := p.BitLen() - fixedint.WordBits*(n-1)
	topMask := ^fixedint.Word(0)
	if topBits < fixedint.WordBits {
		topMask = fixedint.Word(1)<<topBits - 1
	}
	v := fixedint.New(n)
	for {
		for i := range v {
			v[i] = r.Uint32()
		}
		v[n-1] &= topMask
		if fixedint.Cmp(v, p) < 0 {
			return v
		}
	}
}
