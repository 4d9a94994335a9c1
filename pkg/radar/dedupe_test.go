package radar

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestDeduplicatorIdempotence(t *testing.T) {
	d := NewDeduplicator(10)

	if d.Seen("C1", "1000.00") {
		t.Error("first call should report not seen")
	}
	if !d.Seen("C1", "1000.00") {
		t.Error("second call with identical key should report seen")
	}
}

func TestDeduplicatorDistinctKeys(t *testing.T) {
	d := NewDeduplicator(10)

	d.Seen("C1", "1000.00")
	if d.Seen("C2", "1000.00") {
		t.Error("same ts in a different channel is a different message")
	}
	if d.Seen("C1", "1000.01") {
		t.Error("different ts in the same channel is a different message")
	}
}

func TestDeduplicatorEviction(t *testing.T) {
	const capacity = 5
	d := NewDeduplicator(capacity)

	for i := 0; i < capacity; i++ {
		d.Seen("C1", ts(i))
	}
	if d.Len() != capacity {
		t.Fatalf("Len() = %d, want %d", d.Len(), capacity)
	}

	// The (N+1)-th distinct key evicts exactly the first-inserted key.
	d.Seen("C1", ts(capacity))
	if d.Len() != capacity {
		t.Errorf("Len() = %d after overflow, want %d", d.Len(), capacity)
	}
	// Check survivors first: Seen re-inserts missing keys, so probing the
	// evicted key before the rest would shift the ring under us.
	if !d.Seen("C1", ts(1)) {
		t.Error("second-oldest key should still be present")
	}
	if d.Seen("C1", ts(0)) {
		t.Error("oldest key should have been evicted and be re-insertable")
	}
}

func TestDeduplicatorEvictionIsFIFONotLRU(t *testing.T) {
	d := NewDeduplicator(3)

	d.Seen("C1", "1")
	d.Seen("C1", "2")
	d.Seen("C1", "3")

	// Re-seeing the oldest key must not extend its lifetime.
	if !d.Seen("C1", "1") {
		t.Fatal("key 1 should still be present")
	}

	d.Seen("C1", "4") // evicts "1" despite the recent re-access
	if d.Seen("C1", "1") {
		t.Error("key 1 should have been evicted by strict FIFO order")
	}
}

func TestDeduplicatorConcurrentSameKey(t *testing.T) {
	d := NewDeduplicator(100)

	const workers = 32
	var notSeen atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if !d.Seen("C1", "1000.00") {
				notSeen.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := notSeen.Load(); got != 1 {
		t.Errorf("exactly one concurrent caller must observe not-seen, got %d", got)
	}
}

func ts(i int) string {
	return string(rune('a' + i))
}
