package fixedint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// Word is a single 32-bit digit of a Nat.
type Word = uint32

// WordBits is the size of a Word in bits.
const WordBits = 32

// Common widths, in words, for prime-field curves.
const (
	Width128 = 4
	Width256 = 8
	Width384 = 12
	Width521 = 17
)

var (
	// ErrOverflow is returned when a value does not fit in the requested width.
	ErrOverflow = errors.New("fixedint: value does not fit in width")
	// ErrSyntax is returned when a textual number cannot be parsed.
	ErrSyntax = errors.New("fixedint: invalid number syntax")
)

// Nat is a fixed-width unsigned integer stored as little-endian 32-bit words:
// x[0] is the least significant word. The width of a Nat is len(x).
type Nat []Word

// WidthForBits returns the number of words needed to hold bits bits.
func WidthForBits(bits int) int {
	if bits <= 0 {
		return 1
	}
	return (bits + WordBits - 1) / WordBits
}

// New returns a zero Nat of the given width.
func New(words int) Nat {
	if words <= 0 {
		panic("fixedint: width must be positive")
	}
	return make(Nat, words)
}

// FromUint64 returns v as a Nat of the given width. The high word of v is
// dropped when words == 1.
func FromUint64(v uint64, words int) Nat {
	z := New(words)
	z[0] = Word(v)
	if words > 1 {
		z[1] = Word(v >> 32)
	}
	return z
}

// FromWords builds a Nat from words listed most significant first, the way
// constants are usually written down:
//
//	FromWords(0xffffffff, 0xfffffffe, 0xfffffc2f)
func FromWords(words ...Word) Nat {
	z := New(len(words))
	for i, w := range words {
		z[len(words)-1-i] = w
	}
	return z
}

// FromBig converts a non-negative big.Int into a Nat of the given width.
func FromBig(x *big.Int, words int) (Nat, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value", ErrOverflow)
	}
	if x.BitLen() > words*WordBits {
		return nil, fmt.Errorf("%w: %d bits into %d words", ErrOverflow, x.BitLen(), words)
	}
	buf := make([]byte, words*4)
	x.FillBytes(buf)
	return fromBigEndian(buf, words), nil
}

// ParseHex parses a hexadecimal string, with or without a 0x prefix, into a
// Nat of the given width. Underscores and spaces are ignored.
func ParseHex(s string, words int) (Nat, error) {
	return parse(s, 16, words)
}

// ParseDecimal parses a base-10 string into a Nat of the given width.
func ParseDecimal(s string, words int) (Nat, error) {
	return parse(s, 10, words)
}

// Parse accepts either a 0x-prefixed hexadecimal string or a decimal string.
func Parse(s string, words int) (Nat, error) {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		return ParseHex(t, words)
	}
	return ParseDecimal(t, words)
}

// MustParseHex is like ParseHex but panics on error. It is intended for
// package-level constants.
func MustParseHex(s string, words int) Nat {
	z, err := ParseHex(s, words)
	if err != nil {
		panic(err)
	}
	return z
}

func parse(s string, base, words int) (Nat, error) {
	clean := strings.NewReplacer("_", "", " ", "").Replace(strings.TrimSpace(s))
	if base == 16 {
		clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")
	}
	if clean == "" {
		return nil, fmt.Errorf("%w: empty string", ErrSyntax)
	}
	v, ok := new(big.Int).SetString(clean, base)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return FromBig(v, words)
}

func fromBigEndian(buf []byte, words int) Nat {
	z := New(words)
	for i := 0; i < words; i++ {
		off := len(buf) - 4*(i+1)
		z[i] = binary.BigEndian.Uint32(buf[off:])
	}
	return z
}

// Big returns x as a big.Int.
func (x Nat) Big() *big.Int {
	buf := make([]byte, len(x)*4)
	for i, w := range x {
		binary.BigEndian.PutUint32(buf[len(buf)-4*(i+1):], w)
	}
	return new(big.Int).SetBytes(buf)
}

// Hex returns the value as lowercase hexadecimal, zero-padded to the full width.
func (x Nat) Hex() string {
	var sb strings.Builder
	sb.Grow(len(x) * 8)
	for i := len(x) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%08x", x[i])
	}
	return sb.String()
}

// String returns the decimal representation of x.
func (x Nat) String() string {
	return x.Big().String()
}

// Clone returns a copy of x.
func (x Nat) Clone() Nat {
	z := make(Nat, len(x))
	copy(z, x)
	return z
}

// Set copies x into z. Both must have the same width.
func (z Nat) Set(x Nat) Nat {
	mustSameWidth(z, x)
	copy(z, x)
	return z
}

// Resize returns x widened or narrowed to words. Narrowing fails with
// ErrOverflow if any dropped word is nonzero.
func (x Nat) Resize(words int) (Nat, error) {
	z := New(words)
	n := copy(z, x)
	for _, w := range x[n:] {
		if w != 0 {
			return nil, ErrOverflow
		}
	}
	return z, nil
}

// IsZero reports whether x == 0.
func (x Nat) IsZero() bool {
	var acc Word
	for _, w := range x {
		acc |= w
	}
	return acc == 0
}

// IsOdd reports whether the least significant bit of x is set.
func (x Nat) IsOdd() bool {
	return len(x) > 0 && x[0]&1 == 1
}

// BitLen returns the number of bits required to represent x.
func (x Nat) BitLen() int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return i*WordBits + bits.Len32(x[i])
		}
	}
	return 0
}

// Bit returns the value of bit i of x.
func (x Nat) Bit(i int) uint {
	return uint(x[i/WordBits]>>(uint(i)%WordBits)) & 1
}

// Cmp compares x and y, which must have the same width, and returns -1, 0 or +1.
func Cmp(x, y Nat) int {
	mustSameWidth(x, y)
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether x and y hold the same value. It runs in time
// depending only on the width.
func Equal(x, y Nat) bool {
	mustSameWidth(x, y)
	var acc Word
	for i := range x {
		acc |= x[i] ^ y[i]
	}
	return acc == 0
}

func mustSameWidth(x, y Nat) {
	if len(x) != len(y) {
		panic(fmt.Sprintf("fixedint: width mismatch (%d != %d words)", len(x), len(y)))
	}
}
