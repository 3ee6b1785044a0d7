package field

import (
	"errors"
	"fmt"

	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/fixedint"
)

// ErrNotInvertible is the cause reported when inverting or dividing by zero.
var ErrNotInvertible = errors.New("field: zero has no inverse")

// Field is the prime field F_p. All element arithmetic runs on the Montgomery
// context derived from p when the field is built. A Field is immutable and
// safe for concurrent use.
type Field struct {
	name    string
	p       fixedint.Nat
	ctx     *fixedint.Context
	pMinus2 fixedint.Nat
}

// New builds the field of integers modulo p. p must be odd and greater than
// 2; primality is not checked. The width of p fixes the width of every
// element of the field.
func New(name string, p fixedint.Nat) (*Field, error) {
	if p.BitLen() < 2 {
		return nil, apperrors.ArithmeticError{Op: "field " + name, Cause: fixedint.ErrInvalidModulus}
	}
	ctx, err := fixedint.NewContext(p)
	if err != nil {
		return nil, apperrors.ArithmeticError{Op: "field " + name, Cause: err}
	}
	pMinus2 := p.Clone()
	fixedint.Subtract(pMinus2, pMinus2, fixedint.FromUint64(2, len(p)))
	return &Field{
		name:    name,
		p:       p.Clone(),
		ctx:     ctx,
		pMinus2: pMinus2,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, p fixedint.Nat) *Field {
	f, err := New(name, p)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the name the field was registered under.
func (f *Field) Name() string { return f.name }

// Modulus returns a copy of p.
func (f *Field) Modulus() fixedint.Nat { return f.p.Clone() }

// Words returns the width of p and of every element, in 32-bit words.
func (f *Field) Words() int { return len(f.p) }

// Bits returns the bit length of p.
func (f *Field) Bits() int { return f.p.BitLen() }

// Context returns the Montgomery context of the field.
func (f *Field) Context() *fixedint.Context { return f.ctx }

// Equal reports whether f and g have the same modulus.
func (f *Field) Equal(g *Field) bool {
	if f == g {
		return true
	}
	return len(f.p) == len(g.p) && fixedint.Equal(f.p, g.p)
}

func (f *Field) String() string {
	return fmt.Sprintf("F_%s", f.p)
}

// Element returns v as an element of f. v may be of any width as long as its
// value is below p.
func (f *Field) Element(v fixedint.Nat) (Element, error) {
	plain, err := v.Resize(len(f.p))
	if err != nil || fixedint.Cmp(plain, f.p) >= 0 {
		return Element{}, apperrors.ValidationError{
			Field:   "value",
			Message: fmt.Sprintf("%s is not below the modulus of %s", v, f.name),
		}
	}
	z := fixedint.New(len(f.p))
	f.ctx.ToMontgomery(z, plain)
	return Element{f: f, v: z}, nil
}

// FromUint64 returns v as an element of f.
func (f *Field) FromUint64(v uint64) (Element, error) {
	return f.Element(fixedint.FromUint64(v, 2))
}

// FromHex parses a hexadecimal value, with or without 0x prefix.
func (f *Field) FromHex(s string) (Element, error) {
	v, err := fixedint.ParseHex(s, len(f.p))
	if err != nil {
		return Element{}, apperrors.ValidationError{Field: "value", Message: err.Error()}
	}
	return f.Element(v)
}

// FromDecimal parses a base-10 value.
func (f *Field) FromDecimal(s string) (Element, error) {
	v, err := fixedint.ParseDecimal(s, len(f.p))
	if err != nil {
		return Element{}, apperrors.ValidationError{Field: "value", Message: err.Error()}
	}
	return f.Element(v)
}

// Parse accepts 0x-prefixed hexadecimal or decimal input.
func (f *Field) Parse(s string) (Element, error) {
	v, err := fixedint.Parse(s, len(f.p))
	if err != nil {
		return Element{}, apperrors.ValidationError{Field: "value", Message: err.Error()}
	}
	return f.Element(v)
}

// MustElement is like Parse but panics on error. It is meant for constants.
func (f *Field) MustElement(s string) Element {
	e, err := f.Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return Element{f: f, v: fixedint.New(len(f.p))}
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	return Element{f: f, v: f.ctx.RModM()}
}
