package field

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/fixedint"
)

// Well-known moduli.
var (
	// Secp256k1Prime is 2^256 - 2^32 - 977.
	Secp256k1Prime = fixedint.MustParseHex("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", fixedint.Width256)
	// Secp256k1Order is the order of the secp256k1 base point.
	Secp256k1Order = fixedint.MustParseHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", fixedint.Width256)
	// P256Prime is the NIST P-256 prime 2^256 - 2^224 + 2^192 + 2^96 - 1.
	P256Prime = fixedint.MustParseHex("0xffffffff00000001000000000000000000000000ffffffffffffffffffffffff", fixedint.Width256)
	// P384Prime is the NIST P-384 prime 2^384 - 2^128 - 2^96 + 2^32 - 1.
	P384Prime = fixedint.MustParseHex("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff", fixedint.Width384)
	// P521Prime is the Mersenne prime 2^521 - 1.
	P521Prime = fixedint.MustParseHex("0x1"+strings.Repeat("f", 130), fixedint.Width521)
)

// Preset is a named modulus that can be turned into a Field.
type Preset struct {
	Name        string
	Description string
	Modulus     fixedint.Nat
}

// Registry maps preset names to moduli and caches the fields built from
// them. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
	fields  map[string]*Field
}

// NewRegistry returns a registry holding the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{
		presets: make(map[string]Preset),
		fields:  make(map[string]*Field),
	}
	for _, p := range builtinPresets() {
		r.presets[p.Name] = p
	}
	return r
}

func builtinPresets() []Preset {
	return []Preset{
		{Name: "secp256k1", Description: "secp256k1 base field, 2^256 - 2^32 - 977", Modulus: Secp256k1Prime},
		{Name: "secp256k1-n", Description: "secp256k1 group order", Modulus: Secp256k1Order},
		{Name: "p256", Description: "NIST P-256 base field", Modulus: P256Prime},
		{Name: "p384", Description: "NIST P-384 base field", Modulus: P384Prime},
		{Name: "p521", Description: "NIST P-521 base field, 2^521 - 1", Modulus: P521Prime},
		{Name: "p256-189", Description: "2^256 - 189", Modulus: fixedint.MustParseHex("0x"+strings.Repeat("f", 62)+"43", fixedint.Width256)},
		{Name: "p128-275", Description: "2^128 - 275", Modulus: fixedint.MustParseHex("0x"+strings.Repeat("f", 29)+"eed", fixedint.Width128)},
		{Name: "p65447", Description: "small prime for hand-checked examples", Modulus: fixedint.FromUint64(65447, 1)},
		{Name: "p11", Description: "textbook prime 11", Modulus: fixedint.FromUint64(11, 1)},
	}
}

// Register adds or replaces a preset. The modulus must be odd and above 2.
func (r *Registry) Register(p Preset) error {
	if p.Name == "" {
		return apperrors.ValidationError{Field: "name", Message: "preset name must not be empty"}
	}
	f, err := New(p.Name, p.Modulus)
	if err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.Name] = p
	r.fields[p.Name] = f
	return nil
}

// Lookup returns the preset registered under name.
func (r *Registry) Lookup(name string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[name]
	return p, ok
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Field returns the field for the named preset, building it on first use.
func (r *Registry) Field(name string) (*Field, error) {
	r.mu.RLock()
	f, ok := r.fields[name]
	p, known := r.presets[name]
	r.mu.RUnlock()
	if ok {
		return f, nil
	}
	if !known {
		return nil, apperrors.ValidationError{
			Field:   "field",
			Message: fmt.Sprintf("unknown preset %q (available: %s)", name, strings.Join(r.Names(), ", ")),
		}
	}

	f, err := New(p.Name, p.Modulus)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.fields[name]; ok {
		return cached, nil
	}
	r.fields[name] = f
	return f, nil
}
