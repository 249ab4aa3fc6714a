package progression

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownGate_FirstAccrualAlwaysPasses(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)

	assert.True(t, gate.TryAcquire("user-1", time.Now()))
}

func TestCooldownGate_DeniesInsideWindow(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, gate.TryAcquire("user-1", start))
	assert.False(t, gate.TryAcquire("user-1", start.Add(30*time.Second)))
	assert.False(t, gate.TryAcquire("user-1", start.Add(59*time.Second)))
}

func TestCooldownGate_AllowsAfterWindow(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, gate.TryAcquire("user-1", start))
	assert.True(t, gate.TryAcquire("user-1", start.Add(61*time.Second)))
}

func TestCooldownGate_DenialDoesNotExtendWindow(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, gate.TryAcquire("user-1", start))
	assert.False(t, gate.TryAcquire("user-1", start.Add(45*time.Second)))

	// 70s after the accrual that passed, not after the denied one.
	assert.True(t, gate.TryAcquire("user-1", start.Add(70*time.Second)))
}

func TestCooldownGate_UsersAreIndependent(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)
	now := time.Now()

	assert.True(t, gate.TryAcquire("user-1", now))
	assert.True(t, gate.TryAcquire("user-2", now))
}

func TestCooldownGate_ConcurrentAcquireExactlyOne(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)
	now := time.Now()

	const goroutines = 32
	var wg sync.WaitGroup
	results := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- gate.TryAcquire("user-1", now)
		}()
	}
	wg.Wait()
	close(results)

	passed := 0
	for ok := range results {
		if ok {
			passed++
		}
	}
	assert.Equal(t, 1, passed)
}

func TestCooldownGate_Reset(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)
	now := time.Now()

	assert.True(t, gate.TryAcquire("user-1", now))
	gate.Reset("user-1")
	assert.True(t, gate.TryAcquire("user-1", now))
}

func TestCooldownGate_NonPositiveWindowFallsBack(t *testing.T) {
	gate := NewCooldownGate(0)
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, gate.TryAcquire("user-1", start))
	assert.False(t, gate.TryAcquire("user-1", start.Add(30*time.Second)))
}

func TestCooldownGate_LastAccrual(t *testing.T) {
	gate := NewCooldownGate(CooldownWindow)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	_, ok := gate.LastAccrual("user-1")
	assert.False(t, ok)

	gate.TryAcquire("user-1", now)

	last, ok := gate.LastAccrual("user-1")
	assert.True(t, ok)
	assert.Equal(t, now, last)
}
