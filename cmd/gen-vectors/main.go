// Command gen-vectors writes arithmetic test vectors computed with math/big,
// for checking other implementations of the word kernel against it.
//
//	gen-vectors -widths 1,4,8 -count 16 -seed 7 -out vectors.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/ecurve/internal/logging"
)

// Vector is one test case. Values are big-endian hex, zero-padded to their
// width in 32-bit words: x, y and want span Words words except that mul
// products and div/rem numerators span 2*Words.
type Vector struct {
	Op      string  `json:"op"`
	Words   int     `json:"words"`
	Modulus string  `json:"modulus,omitempty"`
	X       string  `json:"x"`
	Y       string  `json:"y"`
	Want    string  `json:"want"`
	Carry   *uint32 `json:"carry,omitempty"`
}

func main() {
	logger := logging.NewStdLoggerAdapter(log.New(os.Stderr, "gen-vectors: ", 0))
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, "gen-vectors:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger logging.Logger) error {
	fs := flag.NewFlagSet("gen-vectors", flag.ContinueOnError)
	widths := fs.String("widths", "1,2,4,8,16", "Comma-separated operand widths in words.")
	count := fs.Int("count", 8, "Vectors per operation and width.")
	seed := fs.Uint64("seed", 1, "Random seed.")
	outPath := fs.String("out", "", "Output file (default stdout).")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ws, err := parseWidths(*widths)
	if err != nil {
		return err
	}
	if *count <= 0 {
		return fmt.Errorf("-count must be positive, got %d", *count)
	}

	vectors := generate(ws, *count, *seed)

	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vectors); err != nil {
		return err
	}
	if *outPath != "" {
		logger.Info("vectors written",
			logging.Int("count", len(vectors)),
			logging.String("path", *outPath))
	}
	return nil
}

func parseWidths(s string) ([]int, error) {
	var ws []int
	for _, part := range strings.Split(s, ",") {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid width %q", part)
		}
		ws = append(ws, w)
	}
	return ws, nil
}

// generate builds count vectors per operation and width. The same seed
// always yields the same vectors.
func generate(widths []int, count int, seed uint64) []Vector {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var vectors []Vector
	for _, n := range widths {
		bits := uint(32 * n)
		r := new(big.Int).Lsh(big.NewInt(1), bits)
		for range count {
			x, y := randBits(rng, bits), randBits(rng, bits)

			sum := new(big.Int).Add(x, y)
			carry := uint32(sum.Rsh(sum, bits).Uint64())
			vectors = append(vectors, Vector{Op: "add", Words: n, X: hexWords(x, n), Y: hexWords(y, n),
				Want: hexWords(new(big.Int).Mod(new(big.Int).Add(x, y), r), n), Carry: &carry})

			vectors = append(vectors, Vector{Op: "sub", Words: n, X: hexWords(x, n), Y: hexWords(y, n),
				Want: hexWords(new(big.Int).Mod(new(big.Int).Sub(x, y), r), n)})

			vectors = append(vectors, Vector{Op: "mul", Words: n, X: hexWords(x, n), Y: hexWords(y, n),
				Want: hexWords(new(big.Int).Mul(x, y), 2*n)})

			num := randBits(rng, 2*bits)
			den := randBits(rng, bits)
			if den.Sign() == 0 {
				den.SetInt64(1)
			}
			vectors = append(vectors, Vector{Op: "div", Words: n, X: hexWords(num, 2*n), Y: hexWords(den, n),
				Want: hexWords(new(big.Int).Quo(num, den), 2*n)})
			vectors = append(vectors, Vector{Op: "rem", Words: n, X: hexWords(num, 2*n), Y: hexWords(den, n),
				Want: hexWords(new(big.Int).Rem(num, den), n)})

			m := randModulus(rng, bits)
			a, b := new(big.Int).Mod(x, m), new(big.Int).Mod(y, m)
			rInv := new(big.Int).ModInverse(r, m)
			mont := new(big.Int).Mul(a, b)
			mont.Mul(mont, rInv).Mod(mont, m)
			vectors = append(vectors, Vector{Op: "mont", Words: n, Modulus: hexWords(m, n), X: hexWords(a, n), Y: hexWords(b, n),
				Want: hexWords(mont, n)})
		}
	}
	return vectors
}

// randBits returns a uniform value below 2^bits.
func randBits(rng *rand.Rand, bits uint) *big.Int {
	z := new(big.Int)
	for i := uint(0); i < bits; i += 32 {
		z.Lsh(z, 32).Or(z, big.NewInt(int64(rng.Uint32())))
	}
	return z
}

// randModulus returns an odd modulus using the full width, with the top bit
// set so that the final subtraction of REDC is exercised.
func randModulus(rng *rand.Rand, bits uint) *big.Int {
	m := randBits(rng, bits)
	m.SetBit(m, int(bits-1), 1)
	m.SetBit(m, 0, 1)
	return m
}

func hexWords(v *big.Int, words int) string {
	return fmt.Sprintf("%0*x", 8*words, v)
}
