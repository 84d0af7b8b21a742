package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Manager keeps the live sessions in memory. Games are never persisted;
// idle ones are dropped by [Manager.Prune].
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	lastID   int64
	src      mines.Source
	log      *logrus.Logger
	now      func() time.Time
}

func NewManager(log *logrus.Logger, src mines.Source) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		src:      src,
		log:      log,
		now:      time.Now,
	}
}

func (m *Manager) Create(params mines.GameParams, playerID *int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// src is not safe for concurrent use, hence board creation under mu
	board, err := params.NewBoard(m.src)
	if err != nil {
		return nil, err
	}

	m.lastID++
	now := m.now()
	s := &Session{
		ID:        m.lastID,
		PlayerID:  playerID,
		StartedAt: now,
		board:     board,
		touchedAt: now,
		now:       m.now,
	}
	m.sessions[s.ID] = s

	m.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"params":     params.String(),
	}).Debug("session created")

	return s, nil
}

func (m *Manager) Get(id int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Delete(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune drops sessions nobody touched for ttl and returns how many were
// dropped.
func (m *Manager) Prune(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	deadline := m.now().Add(-ttl)
	pruned := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(deadline) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Run prunes idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Prune(ttl); n > 0 {
				m.log.WithFields(logrus.Fields{
					"pruned":    n,
					"remaining": m.Len(),
				}).Info("pruned idle sessions")
			}
		}
	}
}
