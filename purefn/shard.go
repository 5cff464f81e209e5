package purefn

import (
	"container/list"
	"sync"
)

type lookup int

const (
	// hit: the entry is complete and its value can be returned.
	hit lookup = iota
	// pending: another caller is producing the value.
	pending
	// leader: a pending entry was just published; the caller must produce the value.
	leader
)

// shard owns a slice of the key space. Its lock is held only for table
// bookkeeping, never while a value is being produced.
type shard[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	recency  *list.List // of *entry[K, V], most recently used first
	capacity int        // 0 means unbounded
}

func newShard[K comparable, V any](capacity int) *shard[K, V] {
	return &shard[K, V]{
		entries:  make(map[K]*entry[K, V]),
		recency:  list.New(),
		capacity: capacity,
	}
}

// acquire returns the entry for key, publishing a pending one when absent.
func (s *shard[K, V]) acquire(key K) (*entry[K, V], lookup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		if e.ready() {
			s.recency.MoveToFront(e.elem)
			return e, hit
		}
		return e, pending
	}
	e := newEntry[K, V](key)
	s.entries[key] = e
	return e, leader
}

// complete sets the value of a pending entry and releases its waiters.
// If the entry was detached by an invalidation meanwhile, the value is handed
// to the waiters but not memoized. Entries evicted to make room are returned.
func (s *shard[K, V]) complete(e *entry[K, V], value V) (stored bool, evicted []*entry[K, V]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.value = value
	if stored = s.entries[e.key] == e; stored {
		e.elem = s.recency.PushFront(e)
		for s.capacity > 0 && s.recency.Len() > s.capacity {
			oldest := s.recency.Remove(s.recency.Back()).(*entry[K, V])
			oldest.elem = nil
			delete(s.entries, oldest.key)
			evicted = append(evicted, oldest)
		}
	}
	close(e.done)
	return stored, evicted
}

// fail drops a pending entry so the key can be produced again, and releases
// its waiters with err.
func (s *shard[K, V]) fail(e *entry[K, V], err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[e.key] == e {
		delete(s.entries, e.key)
	}
	e.err = err
	close(e.done)
}

// remove drops the entry for key. It reports whether a completed entry was
// removed; a pending entry is detached and reported as false.
func (s *shard[K, V]) remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	delete(s.entries, key)
	if e.elem == nil {
		return false
	}
	s.recency.Remove(e.elem)
	e.elem = nil
	return true
}

func (s *shard[K, V]) contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	return ok && e.ready()
}

func (s *shard[K, V]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recency.Len()
}
