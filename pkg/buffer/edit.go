package buffer

// InsertBytes inserts data at the cursor, shifting [Position(), Size()) to
// the right, and advances past the inserted bytes. The size always grows by
// len(data).
//
// The returned count is len(data) minus the number of bytes that were
// shifted, so it is negative when the shifted tail is longer than data. It
// equals len(data) only when inserting at the end. On error wrapping
// ErrLimitExceeded nothing changes.
func (b *FlexBuffer) InsertBytes(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	oldSize, pos := b.c.size, b.c.pos
	tail := max(oldSize-pos, 0)
	if len(data) > b.maxSize-oldSize {
		return 0, b.limitError(len(data))
	}
	if err := b.setSizeLocked(oldSize + len(data)); err != nil {
		return 0, err
	}
	copy(b.c.buf[pos+len(data):], b.c.buf[pos:oldSize])
	copy(b.c.buf[pos:], data)
	b.c.pos = pos + len(data)
	return len(data) - tail, nil
}

// InsertString encodes s with cs and inserts it at the cursor. See
// InsertBytes.
func (b *FlexBuffer) InsertString(s string, cs Charset) (int, error) {
	if s == "" {
		return 0, nil
	}
	return b.InsertBytes(cs.Encode(s))
}

// Delete removes up to n bytes at the cursor, shifting the tail left. The
// cursor does not move. It returns the number of bytes removed, which is
// zero when the cursor is at the end or n is not positive.
func (b *FlexBuffer) Delete(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos := b.c.pos
	n = min(n, max(b.c.size-pos, 0))
	if n <= 0 {
		return 0
	}
	copy(b.c.buf[pos:], b.c.buf[pos+n:b.c.size])
	b.c.size -= n
	b.scheduleLocked(false)
	return n
}
