// Package calc evaluates a single named operation on textual operands. It
// is shared by the eval command and the interactive session.
//
// Kernel operations (add, sub, mul, div, rem, mont) act on raw words of the
// field's width. Field operations (fadd, fsub, fmul, fdiv, fneg, inv, exp)
// reduce modulo the field prime.
package calc

import (
	"errors"
	"fmt"
	"slices"

	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/fixedint"
)

// Operation describes one evaluable operation.
type Operation struct {
	Name  string
	Unary bool
	Help  string
}

// Operations lists every supported operation in display order.
var Operations = []Operation{
	{Name: "add", Help: "x + y mod 2^(32N), reports the carry"},
	{Name: "sub", Help: "x - y mod 2^(32N), wrapping"},
	{Name: "mul", Help: "full 2N-word product x * y"},
	{Name: "div", Help: "quotient of x (up to 2N words) by y"},
	{Name: "rem", Help: "remainder of x (up to 2N words) by y"},
	{Name: "mont", Help: "Montgomery product x * y * R^-1 mod p"},
	{Name: "fadd", Help: "x + y mod p"},
	{Name: "fsub", Help: "x - y mod p"},
	{Name: "fmul", Help: "x * y mod p"},
	{Name: "fdiv", Help: "x / y mod p"},
	{Name: "fneg", Unary: true, Help: "-x mod p"},
	{Name: "inv", Unary: true, Help: "x^-1 mod p"},
	{Name: "exp", Help: "x^y mod p, y of the field's width"},
}

// ErrUnknownOperation is wrapped by Evaluate for an unsupported name.
var ErrUnknownOperation = errors.New("unknown operation")

// Lookup returns the operation registered under name.
func Lookup(name string) (Operation, bool) {
	i := slices.IndexFunc(Operations, func(op Operation) bool { return op.Name == name })
	if i < 0 {
		return Operation{}, false
	}
	return Operations[i], true
}

// Outcome is the result of one evaluation.
type Outcome struct {
	Op    string
	Field string
	Value fixedint.Nat
	// Carry is the carry or borrow out of add and sub; nil otherwise.
	Carry *fixedint.Word
}

// Evaluate runs op on x and y in f. y is ignored by unary operations.
// Malformed or out-of-range operands yield a ValidationError; division by
// zero and inverting zero yield an ArithmeticError.
func Evaluate(f *field.Field, op, x, y string) (Outcome, error) {
	operation, ok := Lookup(op)
	if !ok {
		return Outcome{}, apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("%v %q", ErrUnknownOperation, op)}
	}
	out := Outcome{Op: op, Field: f.Name()}
	var err error
	switch operation.Name {
	case "add", "sub", "mul", "mont":
		out.Value, out.Carry, err = kernelBinary(f, op, x, y)
	case "div", "rem":
		out.Value, err = divide(f, op, x, y)
	default:
		out.Value, err = fieldOp(f, op, x, y)
	}
	if err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func parseWords(name, s string, words int) (fixedint.Nat, error) {
	v, err := fixedint.Parse(s, words)
	if err != nil {
		return nil, apperrors.ValidationError{Field: name, Message: err.Error()}
	}
	return v, nil
}

func kernelBinary(f *field.Field, op, xs, ys string) (fixedint.Nat, *fixedint.Word, error) {
	n := f.Words()
	x, err := parseWords("x", xs, n)
	if err != nil {
		return nil, nil, err
	}
	y, err := parseWords("y", ys, n)
	if err != nil {
		return nil, nil, err
	}

	switch op {
	case "add":
		z := fixedint.New(n)
		c := fixedint.Add(z, x, y)
		return z, &c, nil
	case "sub":
		z := fixedint.New(n)
		b := fixedint.SubtractBorrow(z, x, y)
		return z, &b, nil
	case "mul":
		z := fixedint.New(2 * n)
		fixedint.Multiply(z, x, y)
		return z, nil, nil
	default: // mont
		p := f.Modulus()
		for _, v := range []struct {
			name string
			val  fixedint.Nat
		}{{"x", x}, {"y", y}} {
			if fixedint.Cmp(v.val, p) >= 0 {
				return nil, nil, apperrors.ValidationError{Field: v.name, Message: fmt.Sprintf("Montgomery operand %s is not below the modulus", v.val)}
			}
		}
		z := fixedint.New(n)
		f.Context().Montgomery(z, x, y)
		return z, nil, nil
	}
}

func divide(f *field.Field, op, xs, ys string) (fixedint.Nat, error) {
	n := f.Words()
	x, err := parseWords("x", xs, 2*n)
	if err != nil {
		return nil, err
	}
	y, err := parseWords("y", ys, n)
	if err != nil {
		return nil, err
	}
	var z fixedint.Nat
	if op == "div" {
		z, err = fixedint.DivideWithOverflow(x, y)
	} else {
		z, err = fixedint.RemainderWithOverflow(x, y)
	}
	if err != nil {
		return nil, apperrors.ArithmeticError{Op: op, Cause: err}
	}
	return z, nil
}

func fieldOp(f *field.Field, op, xs, ys string) (fixedint.Nat, error) {
	a, err := f.Parse(xs)
	if err != nil {
		return nil, asOperand("x", err)
	}
	switch op {
	case "fneg":
		return a.Neg().Value(), nil
	case "inv":
		r, err := a.Inverse()
		if err != nil {
			return nil, err
		}
		return r.Value(), nil
	case "exp":
		k, err := parseWords("y", ys, f.Words())
		if err != nil {
			return nil, err
		}
		return a.Exp(k).Value(), nil
	}

	b, err := f.Parse(ys)
	if err != nil {
		return nil, asOperand("y", err)
	}
	switch op {
	case "fadd":
		return a.Add(b).Value(), nil
	case "fsub":
		return a.Sub(b).Value(), nil
	case "fmul":
		return a.Mul(b).Value(), nil
	default: // fdiv
		r, err := a.Div(b)
		if err != nil {
			return nil, err
		}
		return r.Value(), nil
	}
}

// asOperand renames the field of a ValidationError to the operand name.
func asOperand(name string, err error) error {
	var ve apperrors.ValidationError
	if errors.As(err, &ve) {
		ve.Field = name
		return ve
	}
	return err
}
