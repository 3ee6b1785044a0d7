// This file provides scratch-buffer pooling for division and Montgomery
// reduction so that hot loops do not allocate.

package fixedint

import (
	"math/bits"
	"sync"
)

// natPools pools scratch Nats by power-of-two size class, from 8 words
// (a 256-bit operand) up to 256 words.
var natPools = [...]sync.Pool{
	{New: func() any { return make(Nat, 8) }},
	{New: func() any { return make(Nat, 16) }},
	{New: func() any { return make(Nat, 32) }},
	{New: func() any { return make(Nat, 64) }},
	{New: func() any { return make(Nat, 128) }},
	{New: func() any { return make(Nat, 256) }},
}

// natSizes defines the size classes for natPools.
var natSizes = [...]int{8, 16, 32, 64, 128, 256}

// natPoolIndex returns the pool index for a given size, or -1 if the size
// is too large for pooling. natSizes are 2^(i+3), so the index follows
// directly from bits.Len.
func natPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > natSizes[len(natSizes)-1] {
		return -1
	}
	idx := bits.Len(uint(size-1)) - 3
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireNat returns a zeroed Nat of exactly size words. Release it with
// releaseNat once done:
//
//	t := acquireNat(2*n + 1)
//	defer releaseNat(t)
func acquireNat(size int) Nat {
	idx := natPoolIndex(size)
	if idx < 0 {
		return make(Nat, size)
	}
	z := natPools[idx].Get().(Nat)
	clear(z)
	return z[:size]
}

// releaseNat returns a scratch Nat to its pool. Slices that were allocated
// directly are left to the garbage collector. Safe to call with nil.
func releaseNat(z Nat) {
	if z == nil {
		return
	}
	c := cap(z)
	idx := natPoolIndex(c)
	if idx >= 0 && natSizes[idx] == c {
		// Scratch may hold secret-dependent intermediates.
		clear(z[:c])
		natPools[idx].Put(z[:c])
	}
}
