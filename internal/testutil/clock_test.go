// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"testing"
	"time"
)

func TestFakeClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	if got := clock.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	clock.Advance(36 * time.Hour)
	if got, want := clock.Now(), start.Add(36*time.Hour); !got.Equal(want) {
		t.Errorf("after Advance, Now() = %v, want %v", got, want)
	}

	clock.Set(start)
	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("after Set, Now() = %v, want %v", got, start)
	}
}

func TestFakeClock_ZeroStart(t *testing.T) {
	t.Parallel()

	if NewFakeClock(time.Time{}).Now().IsZero() {
		t.Error("a zero initial time should be replaced")
	}
}

func TestFakeClock_ConcurrentAdvance(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	start := clock.Now()

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			clock.Advance(time.Minute)
		})
	}
	wg.Wait()

	if got := clock.Now().Sub(start); got != 10*time.Minute {
		t.Errorf("elapsed = %v, want 10m", got)
	}
}
