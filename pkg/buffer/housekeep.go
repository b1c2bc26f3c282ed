package buffer

import "time"

// idleTimer is a cancellable, reschedulable one-shot timer. At most one
// firing is outstanding at a time.
//
// time.AfterFunc runs the callback on its own goroutine, so a firing can
// race with stop or reset. Each schedule gets a new generation and the
// owner discards firings whose generation is no longer current (see
// claim). All methods must be called with the owner's lock held.
type idleTimer struct {
	t       *time.Timer
	gen     uint64
	pending bool
}

// reset cancels any pending firing and schedules fire(gen) after d.
func (it *idleTimer) reset(d time.Duration, fire func(gen uint64)) {
	it.stop()
	it.gen++
	gen := it.gen
	it.t = time.AfterFunc(d, func() { fire(gen) })
	it.pending = true
}

// stop cancels the pending firing, if any.
func (it *idleTimer) stop() {
	if it.t != nil {
		it.t.Stop()
		it.t = nil
	}
	it.pending = false
}

// claim reports whether a firing with generation gen is still the current
// one, and if so marks the timer as no longer pending.
func (it *idleTimer) claim(gen uint64) bool {
	if !it.pending || it.gen != gen {
		return false
	}
	it.t = nil
	it.pending = false
	return true
}

// scheduleLocked makes sure a house-keeping firing is pending. With force
// set, a pending firing is pushed back to a full delay; this is what every
// growth does.
func (b *FlexBuffer) scheduleLocked(force bool) {
	if b.closed {
		return
	}
	if !force && b.timer.pending {
		return
	}
	b.timer.reset(b.houseKeep, b.houseKeepFired)
}

func (b *FlexBuffer) houseKeepFired(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.timer.claim(gen) {
		return
	}
	b.houseKeepLocked()
}

// houseKeepLocked drops the content and shrinks the backing store to its
// floor. Nothing is copied because the logical size is zero at that point.
func (b *FlexBuffer) houseKeepLocked() {
	b.c.size = 0
	b.c.pos = 0
	b.timer.stop()

	curPages := len(b.c.buf) / b.pageSize
	needPages := max(b.minPages, ceilDiv(b.c.size, b.pageSize))
	if needPages >= curPages {
		return
	}
	store := make([]byte, needPages*b.pageSize)
	b.c.buf = store
	b.logger.Debug("buffer: shrink", "capacity", len(store), "pages", needPages)
}

// HouseKeep returns the idle delay before the buffer shrinks.
func (b *FlexBuffer) HouseKeep() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.houseKeep
}

// SetHouseKeep changes the idle delay. A pending timer is rescheduled with
// the new delay right away. Non-positive values select DefaultHouseKeep.
func (b *FlexBuffer) SetHouseKeep(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d <= 0 {
		d = DefaultHouseKeep
	}
	b.houseKeep = d
	if b.timer.pending {
		b.scheduleLocked(true)
	}
}

// Close cancels any pending house-keeping and stops new timers from being
// scheduled. The buffer stays usable afterwards; it simply never shrinks on
// its own again. Close always returns nil.
func (b *FlexBuffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.timer.stop()
	return nil
}
