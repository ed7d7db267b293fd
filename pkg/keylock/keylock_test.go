// Package keylock provides striped mutual exclusion keyed by string.
package keylock

import (
	"sync"
	"testing"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	l := New()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("nfl/weekly")
			counter++
			l.Unlock("nfl/weekly")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestKeyLock_WithLock(t *testing.T) {
	l := New()

	ran := false
	err := l.WithLock("k", func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Errorf("WithLock() error = %v", err)
	}
	if !ran {
		t.Error("fn should have run")
	}
}

func TestNewWithStripes_BadCount(t *testing.T) {
	for _, n := range []int{0, -1, 3, 100} {
		l := NewWithStripes(n)
		if len(l.stripes) != DefaultStripeCount {
			t.Errorf("NewWithStripes(%d) stripes = %d, want %d", n, len(l.stripes), DefaultStripeCount)
		}
	}

	l := NewWithStripes(8)
	if len(l.stripes) != 8 {
		t.Errorf("NewWithStripes(8) stripes = %d, want 8", len(l.stripes))
	}
}

func TestKeyLock_StableStripe(t *testing.T) {
	l := New()
	if l.stripeFor("nfl/weekly") != l.stripeFor("nfl/weekly") {
		t.Error("stripe selection must be deterministic")
	}
}
