// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// batch collects changed roots and flushes them once no root has changed
// for delay. Flushes never overlap; a flush due while one is running is
// postponed by another delay.
type batch struct {
	delay time.Duration
	flush func(roots []string)

	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	flushing bool
	stopped  bool
}

func newBatch(delay time.Duration, flush func([]string)) *batch {
	return &batch{delay: delay, flush: flush, pending: make(map[string]struct{})}
}

// add records roots and restarts the quiet period.
func (b *batch) add(roots ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	for _, r := range roots {
		b.pending[r] = struct{}{}
	}
	b.arm()
}

// arm starts or restarts the timer. b.mu must be held.
func (b *batch) arm() {
	if b.timer == nil {
		b.timer = time.AfterFunc(b.delay, b.fire)
		return
	}
	b.timer.Reset(b.delay)
}

func (b *batch) fire() {
	b.mu.Lock()
	if b.stopped || len(b.pending) == 0 {
		b.mu.Unlock()
		return
	}
	if b.flushing {
		b.arm()
		b.mu.Unlock()
		return
	}
	roots := slices.Sorted(maps.Keys(b.pending))
	clear(b.pending)
	b.flushing = true
	b.mu.Unlock()

	b.flush(roots)

	b.mu.Lock()
	b.flushing = false
	b.mu.Unlock()
}

// stop discards pending roots and cancels the timer. A flush already in
// progress runs to completion.
func (b *batch) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	clear(b.pending)
	if b.timer != nil {
		b.timer.Stop()
	}
}
