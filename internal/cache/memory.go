package cache

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var _ Cache = (*Memory)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a single-process Cache. Expired entries are never returned and are
// swept periodically by a background goroutine until Close is called.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	logger  *log.Logger

	sweepWG   sync.WaitGroup
	sweepStop chan struct{}
	closeOnce sync.Once
}

type MemoryOption func(*Memory)

func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

func WithLogger(logger *log.Logger) MemoryOption {
	return func(m *Memory) {
		m.logger = logger
	}
}

// NewMemory creates an empty cache. A sweepInterval of zero disables the
// background sweeper; expired entries are then only dropped on access.
func NewMemory(sweepInterval time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:   make(map[string]entry),
		now:       time.Now,
		sweepStop: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if sweepInterval > 0 {
		m.sweepWG.Add(1)
		go m.sweepLoop(sweepInterval)
	}

	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return m.Remove(ctx, key)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = entry{value: stored, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()

	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

// Len reports the number of entries held, including expired ones not yet swept.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) sweepLoop(interval time.Duration) {
	defer m.sweepWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweepOnce()
		case <-m.sweepStop:
			return
		}
	}
}

func (m *Memory) sweepOnce() int {
	now := m.now()

	m.mu.Lock()
	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 && m.logger != nil {
		m.logger.Debug("cache sweep", "evicted", removed)
	}
	return removed
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Memory) Close() {
	m.closeOnce.Do(func() {
		close(m.sweepStop)
		m.sweepWG.Wait()
	})
}
