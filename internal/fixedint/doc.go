// Package fixedint implements fixed-width unsigned integer arithmetic over
// little-endian slices of 32-bit words, the arithmetic substrate used by the
// prime-field layer.
//
// Every value has a width N chosen by the caller (8 words for a 256-bit
// field). Operations never grow their operands: subtraction wraps modulo
// 2^(32N), multiplication writes a 2N-word product, and division accepts a
// numerator of any width (typically 2N, the product of two field elements)
// together with an N-word denominator.
//
// Montgomery multiplication is provided through Context, an immutable set of
// constants derived once per odd modulus. A Context may be shared freely
// between goroutines.
//
// Width mismatches between operands are programming errors and cause a
// panic, as in math/big. The only recoverable arithmetic failure is division
// by zero, reported as ErrDivisionByZero.
package fixedint
