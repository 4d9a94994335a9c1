package radar

import "sync"

// Deduplicator suppresses reprocessing of events the transport redelivers.
// It is a bounded FIFO set of (channel, timestamp) keys: when full, the
// oldest inserted key is evicted regardless of how recently it was re-seen
// (no LRU refresh). The check-and-insert is atomic under the mutex, so
// concurrent retries of the same key see "not seen" at most once.
type Deduplicator struct {
	mu       sync.Mutex
	capacity int
	index    map[string]struct{}
	ring     []string
	next     int // slot the next insertion overwrites
	full     bool
}

const DefaultDedupWindow = 1000

func NewDeduplicator(capacity int) *Deduplicator {
	if capacity <= 0 {
		capacity = DefaultDedupWindow
	}
	return &Deduplicator{
		capacity: capacity,
		index:    make(map[string]struct{}, capacity),
		ring:     make([]string, capacity),
	}
}

// Seen reports whether the (channelID, timestamp) key was already
// recorded. An unseen key is recorded before returning.
func (d *Deduplicator) Seen(channelID, timestamp string) bool {
	key := channelID + "|" + timestamp

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.index[key]; ok {
		return true
	}

	if d.full {
		delete(d.index, d.ring[d.next])
	}
	d.ring[d.next] = key
	d.index[key] = struct{}{}
	d.next++
	if d.next == d.capacity {
		d.next = 0
		d.full = true
	}
	return false
}

// Len returns the number of keys currently held.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.index)
}
