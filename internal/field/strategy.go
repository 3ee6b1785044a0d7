package field

import (
	"fmt"
	"math/big"
	"slices"
	"sync"

	"github.com/agbru/ecurve/internal/fixedint"
)

// Strategy multiplies plain field values. Implementations differ only in
// how the double-width product is reduced and must always agree.
type Strategy interface {
	// Name returns the registry key of the strategy.
	Name() string
	// Description returns a human-readable summary for reports.
	Description() string
	// Mul returns a * b mod p for plain values a, b < p of the field's width.
	Mul(f *Field, a, b fixedint.Nat) (fixedint.Nat, error)
}

// MontgomeryStrategy converts both operands into Montgomery form, multiplies
// with REDC and converts back.
type MontgomeryStrategy struct{}

func (MontgomeryStrategy) Name() string        { return "montgomery" }
func (MontgomeryStrategy) Description() string { return "Montgomery REDC with constant-structure final subtraction" }

func (MontgomeryStrategy) Mul(f *Field, a, b fixedint.Nat) (fixedint.Nat, error) {
	ctx := f.Context()
	n := ctx.Words()
	am, bm := fixedint.New(n), fixedint.New(n)
	ctx.ToMontgomery(am, a)
	ctx.ToMontgomery(bm, b)
	ctx.Montgomery(am, am, bm)
	ctx.FromMontgomery(am, am)
	return am, nil
}

// SchoolbookStrategy forms the full 2N-word product and reduces it by long
// division.
type SchoolbookStrategy struct{}

func (SchoolbookStrategy) Name() string        { return "schoolbook" }
func (SchoolbookStrategy) Description() string { return "full product reduced by binary long division" }

func (SchoolbookStrategy) Mul(f *Field, a, b fixedint.Nat) (fixedint.Nat, error) {
	prod := fixedint.New(2 * f.Words())
	fixedint.Multiply(prod, a, b)
	return fixedint.RemainderWithOverflow(prod, f.p)
}

// BigIntStrategy is the math/big reference.
type BigIntStrategy struct{}

func (BigIntStrategy) Name() string        { return "bigint" }
func (BigIntStrategy) Description() string { return "math/big reference" }

func (BigIntStrategy) Mul(f *Field, a, b fixedint.Nat) (fixedint.Nat, error) {
	z := new(big.Int).Mul(a.Big(), b.Big())
	z.Mod(z, f.p.Big())
	return fixedint.FromBig(z, f.Words())
}

// StrategyFactory creates and looks up multiplication strategies by name.
type StrategyFactory interface {
	// List returns the registered names in sorted order.
	List() []string
	// Get returns the strategy registered under name.
	Get(name string) (Strategy, error)
	// GetAll returns every strategy in name order.
	GetAll() []Strategy
	// Register adds a strategy, replacing any with the same name.
	Register(s Strategy)
}

// DefaultFactory is the StrategyFactory used by the CLI.
type DefaultFactory struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

var _ StrategyFactory = (*DefaultFactory)(nil)

// NewDefaultFactory returns a factory holding the bigint, montgomery and
// schoolbook strategies.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{strategies: make(map[string]Strategy)}
	f.Register(MontgomeryStrategy{})
	f.Register(SchoolbookStrategy{})
	f.Register(BigIntStrategy{})
	return f
}

func (f *DefaultFactory) Register(s Strategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strategies[s.Name()] = s
}

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.strategies))
	for name := range f.strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (f *DefaultFactory) Get(name string) (Strategy, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return s, nil
}

func (f *DefaultFactory) GetAll() []Strategy {
	names := f.List()
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		if s, err := f.Get(name); err == nil {
			out = append(out, s)
		}
	}
	return out
}
