// Package keylock provides striped mutual exclusion keyed by string.
package keylock

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultStripeCount is the default number of lock stripes.
const DefaultStripeCount = 64

// KeyLock serializes operations per key while letting operations on
// different keys proceed in parallel. Keys are mapped to a fixed set of
// stripes by murmur3, so two distinct keys may share a stripe; that only
// costs contention, never correctness.
type KeyLock struct {
	stripes []sync.Mutex
	mask    uint32
}

// New creates a KeyLock with the default stripe count.
func New() *KeyLock {
	return NewWithStripes(DefaultStripeCount)
}

// NewWithStripes creates a KeyLock with the given stripe count.
// stripeCount must be a power of 2; anything else falls back to the default.
func NewWithStripes(stripeCount int) *KeyLock {
	if stripeCount <= 0 || stripeCount&(stripeCount-1) != 0 {
		stripeCount = DefaultStripeCount
	}
	return &KeyLock{
		stripes: make([]sync.Mutex, stripeCount),
		mask:    uint32(stripeCount - 1),
	}
}

// Lock acquires the stripe for key.
func (l *KeyLock) Lock(key string) {
	l.stripes[l.stripeFor(key)].Lock()
}

// Unlock releases the stripe for key.
func (l *KeyLock) Unlock(key string) {
	l.stripes[l.stripeFor(key)].Unlock()
}

// WithLock runs fn while holding the stripe for key.
func (l *KeyLock) WithLock(key string, fn func() error) error {
	l.Lock(key)
	defer l.Unlock(key)
	return fn()
}

func (l *KeyLock) stripeFor(key string) uint32 {
	return murmur3.Sum32([]byte(key)) & l.mask
}
