package field

import (
	"sync"

	"github.com/agbru/ecurve/internal/fixedint"
)

// Domain holds the parameters (p, a, b, G, n, h) of a short Weierstrass
// curve y^2 = x^3 + a*x + b over F_p. It carries data only; the group law
// is out of scope.
type Domain struct {
	Name   string
	Field  *Field
	A, B   Element
	Gx, Gy Element
	// N is the order of G. It may exceed p, so it is kept one word wider.
	N fixedint.Nat
	H uint64
}

// OnCurve reports whether (x, y) satisfies the curve equation.
func (d *Domain) OnCurve(x, y Element) bool {
	lhs := y.Square()
	rhs := x.Square().Mul(x).Add(d.A.Mul(x)).Add(d.B)
	return lhs.Equal(rhs)
}

// GeneratorOnCurve reports whether the base point satisfies the curve
// equation.
func (d *Domain) GeneratorOnCurve() bool {
	return d.OnCurve(d.Gx, d.Gy)
}

var secp256k1Domain = sync.OnceValue(func() *Domain {
	f := MustNew("secp256k1", Secp256k1Prime)
	return &Domain{
		Name:  "secp256k1",
		Field: f,
		A:     f.Zero(),
		B:     f.MustElement("7"),
		Gx:    f.MustElement("0x79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		Gy:    f.MustElement("0x483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		N:     fixedint.MustParseHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", fixedint.Width256+1),
		H:     1,
	}
})

// Secp256k1 returns the SEC 2 secp256k1 domain. The value is shared and must
// not be modified.
func Secp256k1() *Domain { return secp256k1Domain() }

var toy11Domain = sync.OnceValue(func() *Domain {
	f := MustNew("p11", fixedint.FromUint64(11, 1))
	return &Domain{
		Name:  "toy11",
		Field: f,
		A:     f.MustElement("1"),
		B:     f.Zero(),
		Gx:    f.MustElement("8"),
		Gy:    f.MustElement("6"),
		N:     fixedint.FromUint64(12, 2),
		H:     1,
	}
})

// Toy11 returns the textbook curve y^2 = x^3 + x over F_11 with base point
// (8, 6) of order 12.
func Toy11() *Domain { return toy11Domain() }
