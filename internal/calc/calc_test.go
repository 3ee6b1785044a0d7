package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agbru/ecurve/internal/config"
	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/fixedint"
)

var registry = field.NewRegistry()

func mustField(t *testing.T, name string) *field.Field {
	t.Helper()
	f, err := registry.Field(name)
	require.NoError(t, err)
	return f
}

func TestEvaluate_SmallField(t *testing.T) {
	t.Parallel()
	f := mustField(t, "p11")
	tests := []struct {
		op, x, y string
		want     string
	}{
		{"fadd", "5", "8", "2"},
		{"fsub", "3", "5", "9"},
		{"fmul", "5", "8", "7"},
		{"fdiv", "7", "5", "8"},
		{"fneg", "3", "", "8"},
		{"fneg", "0", "", "0"},
		{"inv", "5", "", "9"},
		{"exp", "2", "10", "1"},
		{"exp", "7", "0", "1"},
		{"add", "0xffffffff", "1", "0"},
		{"sub", "0", "1", "4294967295"},
		{"mul", "0xffffffff", "0xffffffff", "18446744065119617025"},
		{"div", "100", "7", "14"},
		{"rem", "100", "7", "2"},
		{"div", "0x100000000", "2", "2147483648"},
		{"rem", "0xffffffffffffffff", "0x10000", "65535"},
	}
	for _, tt := range tests {
		t.Run(tt.op+"("+tt.x+","+tt.y+")", func(t *testing.T) {
			t.Parallel()
			out, err := Evaluate(f, tt.op, tt.x, tt.y)
			require.NoError(t, err)
			require.Equal(t, tt.want, out.Value.String())
			require.Equal(t, tt.op, out.Op)
			require.Equal(t, "p11", out.Field)
		})
	}
}

func TestEvaluate_Widths(t *testing.T) {
	t.Parallel()
	f := mustField(t, "secp256k1")

	out, err := Evaluate(f, "mul", "2", "3")
	require.NoError(t, err)
	require.Len(t, out.Value, 2*fixedint.Width256)

	out, err = Evaluate(f, "div", "0x1"+zeros(64), "2")
	require.NoError(t, err)
	require.Len(t, out.Value, 2*fixedint.Width256, "quotient keeps the numerator width")
	require.Equal(t, "0x8"+zeros(63), "0x"+out.Value.Big().Text(16))

	out, err = Evaluate(f, "rem", "0x1"+zeros(64), "7")
	require.NoError(t, err)
	require.Len(t, out.Value, fixedint.Width256, "remainder has the denominator width")
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func TestEvaluate_CarryAndBorrow(t *testing.T) {
	t.Parallel()
	f := mustField(t, "p11")

	out, err := Evaluate(f, "add", "0xffffffff", "2")
	require.NoError(t, err)
	require.NotNil(t, out.Carry)
	require.Equal(t, fixedint.Word(1), *out.Carry)
	require.Equal(t, "1", out.Value.String())

	out, err = Evaluate(f, "sub", "5", "3")
	require.NoError(t, err)
	require.Equal(t, fixedint.Word(0), *out.Carry)

	out, err = Evaluate(f, "fmul", "2", "3")
	require.NoError(t, err)
	require.Nil(t, out.Carry)
}

func TestEvaluate_Montgomery(t *testing.T) {
	t.Parallel()
	f := mustField(t, "secp256k1")
	ctx := f.Context()

	// mont(x, R^2 mod p) converts x into Montgomery form.
	out, err := Evaluate(f, "mont", "6", "0x"+ctx.R2ModM().Hex())
	require.NoError(t, err)
	want := fixedint.New(fixedint.Width256)
	ctx.ToMontgomery(want, fixedint.FromUint64(6, fixedint.Width256))
	require.True(t, fixedint.Equal(want, out.Value))

	// mont(R mod p, x) returns x.
	out, err = Evaluate(f, "mont", "0x"+ctx.RModM().Hex(), "12345")
	require.NoError(t, err)
	require.Equal(t, "12345", out.Value.String())

	_, err = Evaluate(f, "mont", "0x"+f.Modulus().Hex(), "1")
	var ve apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "x", ve.Field)
}

func TestEvaluate_FieldAgreesWithKernel(t *testing.T) {
	t.Parallel()
	f := mustField(t, "p256")
	x := "0x" + "7fffffff" + zeros(56)
	y := "0x" + "deadbeef" + zeros(48)

	fm, err := Evaluate(f, "fmul", x, y)
	require.NoError(t, err)

	prod, err := Evaluate(f, "mul", x, y)
	require.NoError(t, err)
	rem, err := Evaluate(f, "rem", "0x"+prod.Value.Hex(), "0x"+f.Modulus().Hex())
	require.NoError(t, err)
	require.True(t, fixedint.Equal(fm.Value, rem.Value), "fmul %s != mul+rem %s", fm.Value, rem.Value)
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()
	f := mustField(t, "p11")
	tests := []struct {
		name      string
		op, x, y  string
		wantField string
		wantCause error
	}{
		{name: "unknown op", op: "pow", x: "1", y: "1", wantField: "op"},
		{name: "bad x syntax", op: "fmul", x: "12z", y: "1", wantField: "x"},
		{name: "x not reduced", op: "fmul", x: "11", y: "1", wantField: "x"},
		{name: "y not reduced", op: "fadd", x: "1", y: "0xff", wantField: "y"},
		{name: "kernel overflow", op: "add", x: "0x100000000", y: "1", wantField: "x"},
		{name: "numerator too wide", op: "div", x: "0x10000000000000000", y: "1", wantField: "x"},
		{name: "divide by zero", op: "div", x: "5", y: "0", wantCause: fixedint.ErrDivisionByZero},
		{name: "remainder by zero", op: "rem", x: "0", y: "0", wantCause: fixedint.ErrDivisionByZero},
		{name: "invert zero", op: "inv", x: "0", wantCause: field.ErrNotInvertible},
		{name: "field divide by zero", op: "fdiv", x: "3", y: "0", wantCause: field.ErrNotInvertible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Evaluate(f, tt.op, tt.x, tt.y)
			require.Error(t, err)
			if tt.wantField != "" {
				var ve apperrors.ValidationError
				require.True(t, errors.As(err, &ve), "want ValidationError, got %T: %v", err, err)
				require.Equal(t, tt.wantField, ve.Field)
			}
			if tt.wantCause != nil {
				require.ErrorIs(t, err, tt.wantCause)
				require.Equal(t, apperrors.ExitErrorArithmetic, apperrors.ExitCodeFor(err))
			}
		})
	}
}

func TestOperations_MatchConfig(t *testing.T) {
	t.Parallel()
	var names, unary []string
	for _, op := range Operations {
		names = append(names, op.Name)
		if op.Unary {
			unary = append(unary, op.Name)
		}
	}
	require.Equal(t, config.Operations, names)
	require.Equal(t, config.UnaryOperations, unary)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	op, ok := Lookup("inv")
	require.True(t, ok)
	require.True(t, op.Unary)
	_, ok = Lookup("sqrt")
	require.False(t, ok)
}
