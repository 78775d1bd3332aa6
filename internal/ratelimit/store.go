package ratelimit

import (
	"container/list"
	"sync"
	"time"
)

const (
	DefaultLimit    = 5
	DefaultWindow   = 10 * time.Minute
	DefaultCapacity = 500
)

// Store counts requests per client key in memory. Every entry carries its own
// expiry and every increment resets it, so the window slides with each access
// rather than anchoring to the first request. The store holds at most
// `capacity` distinct keys; inserting a new key at capacity evicts the
// least-recently-touched entry. Counters live only as long as the process.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front = most recently touched
	limit    int
	window   time.Duration
	capacity int
	now      func() time.Time
}

type entry struct {
	key       string
	count     int
	expiresAt time.Time
}

type Option func(*Store)

// WithClock overrides the store's time source so tests can simulate window
// expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(limit int, window time.Duration, capacity int, opts ...Option) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	s := &Store{
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		limit:    limit,
		window:   window,
		capacity: capacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Increment records one request for key and returns the count accumulated in
// the current window, including this request. An absent or expired entry
// starts a fresh window at 1.
func (s *Store) Increment(key string) int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		ent := elem.Value.(*entry)
		if now.Before(ent.expiresAt) {
			ent.count++
		} else {
			ent.count = 1
		}
		ent.expiresAt = now.Add(s.window)
		s.order.MoveToFront(elem)
		return ent.count
	}

	s.evictExpiredLocked(now)
	for len(s.entries) >= s.capacity {
		s.removeElementLocked(s.order.Back())
	}

	elem := s.order.PushFront(&entry{
		key:       key,
		count:     1,
		expiresAt: now.Add(s.window),
	})
	s.entries[key] = elem
	return 1
}

// Limit returns the per-window request threshold.
func (s *Store) Limit() int { return s.limit }

// Window returns the sliding-window duration.
func (s *Store) Window() time.Duration { return s.window }

// Len reports how many keys are resident, counting entries whose window has
// elapsed but which have not been purged yet.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) evictExpiredLocked(now time.Time) {
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		if now.Before(elem.Value.(*entry).expiresAt) {
			elem = prev
			continue
		}
		s.removeElementLocked(elem)
		elem = prev
	}
}

func (s *Store) removeElementLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	delete(s.entries, elem.Value.(*entry).key)
	s.order.Remove(elem)
}
