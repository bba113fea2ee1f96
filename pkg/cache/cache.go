package cache

import (
	"strings"
	"sync"
	"time"
)

const gcInterval = time.Minute

type entry struct {
	value     []byte
	expiresAt int64
}

// Store is a small in-process cache used when redis is not
// configured. Values are raw bytes with a per-entry TTL.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	stop  chan struct{}
	once  sync.Once
}

func NewStore() *Store {
	s := &Store{
		items: make(map[string]entry),
		stop:  make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(value))
	copy(buf, value)
	s.items[key] = entry{
		value:     buf,
		expiresAt: time.Now().Add(ttl).UnixNano(),
	}
}

// Get returns the cached value, or (nil, false) on a miss or an
// expired entry.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, found := s.items[key]
	if !found || time.Now().UnixNano() > item.expiresAt {
		return nil, false
	}
	return item.value, true
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

func (s *Store) DeleteByPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			delete(s.items, k)
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close stops the background janitor. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now().UnixNano()
			s.mu.Lock()
			for k, v := range s.items {
				if now > v.expiresAt {
					delete(s.items, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
