package quiz

import (
	"math/rand"
	"sync"
	"time"
)

// Manager hands out one engine per user and serializes access to it. The
// engines themselves are single-threaded; the mutex here is the only lock
// in the quiz path since each user has at most one active session.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine
	now     func() time.Time
	rng     *rand.Rand
}

func NewManager(now func() time.Time, rng *rand.Rand) *Manager {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{engines: map[string]*Engine{}, now: now, rng: rng}
}

// Do runs fn against the user's engine (created on first use) while holding
// the manager lock, keeping all session mutations serialized.
func (m *Manager) Do(userID string, fn func(*Engine) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[userID]
	if !ok {
		e = NewEngine(m.now, m.rng)
		m.engines[userID] = e
	}
	return fn(e)
}
