package usecase

import (
	"context"
	"sync"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
)

// SessionManager owns the per-user session records: the single optional
// pending quantity edit, and the mutex that serializes one user's cart
// mutations. Sessions appear on first interaction and are evicted after an
// inactivity TTL so the table cannot grow without bound.
type SessionManager interface {
	// WithLock runs fn holding the user's mutex. The lock covers the
	// mutation only; callers must not reach back into the manager or do
	// transport round-trips inside fn.
	WithLock(userID int64, fn func() error) error

	// SetPendingEdit remembers that the next free-text message from this
	// user is a quantity for productID. Overwrites any previous intent.
	SetPendingEdit(userID, productID int64)

	// TakePendingEdit atomically reads and clears the pending edit.
	// Consume-once: a second call returns false until a new edit is set.
	TakePendingEdit(userID int64) (int64, bool)

	Run(ctx context.Context)
	Stop()
}

type userSession struct {
	mu             sync.Mutex
	pendingProduct int64
	hasPending     bool
	lastSeen       time.Time
}

type sessionManager struct {
	mu       sync.RWMutex
	sessions map[int64]*userSession

	ttl      time.Duration
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewSessionManager(conf *config.Config) SessionManager {
	return &sessionManager{
		sessions: make(map[int64]*userSession),
		ttl:      conf.Session.TTL,
		interval: conf.Session.CleanupInterval,
		done:     make(chan struct{}),
	}
}

func (m *sessionManager) session(userID int64) *userSession {
	m.mu.RLock()
	s, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s = &userSession{lastSeen: time.Now()}
	m.sessions[userID] = s
	return s
}

func (m *sessionManager) WithLock(userID int64, fn func() error) error {
	s := m.session(userID)
	s.mu.Lock()
	s.lastSeen = time.Now()
	defer s.mu.Unlock()
	return fn()
}

func (m *sessionManager) SetPendingEdit(userID, productID int64) {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingProduct = productID
	s.hasPending = true
	s.lastSeen = time.Now()
}

func (m *sessionManager) TakePendingEdit(userID int64) (int64, bool) {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	if !s.hasPending {
		return 0, false
	}
	productID := s.pendingProduct
	s.pendingProduct = 0
	s.hasPending = false
	return productID, true
}

// Run sweeps idle sessions until Stop is called.
func (m *sessionManager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case <-ticker.C:
			evicted := m.evictIdle(time.Now())
			if evicted > 0 {
				log.Infof(ctx, "evicted %d idle sessions", evicted)
			}
		}
	}
}

func (m *sessionManager) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
}

func (m *sessionManager) evictIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for userID, s := range m.sessions {
		// Skip sessions mid-event rather than block the sweep.
		if !s.mu.TryLock() {
			continue
		}
		idle := now.Sub(s.lastSeen) > m.ttl
		s.mu.Unlock()
		if idle {
			delete(m.sessions, userID)
			evicted++
		}
	}
	return evicted
}
