package field

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/ecurve/internal/fixedint"
)

// elementGen generates uniformly random elements of f by reducing random
// words modulo p.
func elementGen(f *Field) gopter.Gen {
	p := f.Modulus().Big()
	return gen.SliceOfN(f.Words(), gen.UInt32()).Map(func(words []uint32) Element {
		v := new(big.Int).Mod(fixedint.Nat(words).Big(), p)
		n, err := fixedint.FromBig(v, f.Words())
		if err != nil {
			panic(err)
		}
		e, err := f.Element(n)
		if err != nil {
			panic(err)
		}
		return e
	})
}

func TestFieldLaws_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	reg := NewRegistry()
	for _, name := range []string{"secp256k1", "p256", "p384", "p521", "p128-275", "p11"} {
		f, err := reg.Field(name)
		if err != nil {
			t.Fatal(err)
		}
		p := f.Modulus().Big()

		properties.Property(fmt.Sprintf("%s: sub undoes add", name), prop.ForAll(
			func(a, b Element) bool {
				return a.Add(b).Sub(b).Equal(a)
			},
			elementGen(f), elementGen(f),
		))

		properties.Property(fmt.Sprintf("%s: mul matches math/big", name), prop.ForAll(
			func(a, b Element) bool {
				want := new(big.Int).Mul(a.Value().Big(), b.Value().Big())
				want.Mod(want, p)
				return a.Mul(b).Value().Big().Cmp(want) == 0
			},
			elementGen(f), elementGen(f),
		))

		properties.Property(fmt.Sprintf("%s: montgomery and long division agree", name), prop.ForAll(
			func(a, b Element) bool {
				return a.Mul(b).Equal(a.MulPlain(b))
			},
			elementGen(f), elementGen(f),
		))

		properties.Property(fmt.Sprintf("%s: a * a^-1 == 1", name), prop.ForAll(
			func(a Element) bool {
				inv, err := a.Inverse()
				if a.IsZero() {
					return err != nil
				}
				return err == nil && a.Mul(inv).Equal(f.One())
			},
			elementGen(f),
		))

		properties.Property(fmt.Sprintf("%s: distributive", name), prop.ForAll(
			func(a, b, c Element) bool {
				return a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c)))
			},
			elementGen(f), elementGen(f), elementGen(f),
		))
	}

	properties.TestingRun(t)
}
