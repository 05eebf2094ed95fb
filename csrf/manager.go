package csrf

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Manager owns the in-memory token store: token -> last activity.
//
// Every access to the map happens under mu, and mu is held only for the map
// operation itself. Token generation, logging and metrics run outside it.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]time.Time

	timeout  time.Duration
	interval time.Duration
	now      func() time.Time
	gen      func() string

	log     zerolog.Logger
	metrics *Metrics
}

var _ TokenManager = (*Manager)(nil)

// NewManager builds an empty store. The sweep loop is not started; call Run.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = cfg.Timeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Manager{
		sessions: make(map[string]time.Time),
		timeout:  cfg.Timeout,
		interval: cfg.SweepInterval,
		now:      cfg.Now,
		gen:      newToken,
		log:      log.With().Str("component", "csrf").Logger(),
		metrics:  cfg.Metrics,
	}
}

// Timeout returns the idle window.
func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

// Issue creates a token and records the current time as its last activity.
func (m *Manager) Issue() string {
	for {
		tok := m.gen()
		live, ok := m.insert(tok)
		if !ok {
			// 64-bit collision: draw again outside the lock
			continue
		}
		m.metrics.observeIssue(live)
		return tok
	}
}

func (m *Manager) insert(tok string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.sessions[tok]; taken {
		return 0, false
	}
	m.sessions[tok] = m.now()
	return len(m.sessions), true
}

// Validate checks existence first, then the idle window. On success the
// timestamp is refreshed, so each use extends the token by a full window.
// Expired records are left for the sweep to remove.
func (m *Manager) Validate(token string) error {
	err := m.validate(token)
	m.metrics.observeValidation(err)
	return err
}

func (m *Manager) validate(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	last, ok := m.sessions[token]
	if !ok {
		return ErrInvalidToken
	}
	now := m.now()
	if now.Sub(last) >= m.timeout {
		return ErrSessionExpired
	}
	m.sessions[token] = now
	return nil
}

// Sweep removes every record idle for at least the timeout and returns how
// many were removed. It is the only operation that deletes records.
func (m *Manager) Sweep() int {
	removed, live := m.sweep()
	m.metrics.observeSweep(removed, live)
	if removed > 0 {
		m.log.Debug().Int("removed", removed).Int("live", live).Msg("swept idle tokens")
	}
	return removed
}

func (m *Manager) sweep() (removed, live int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for tok, last := range m.sessions {
		if now.Sub(last) >= m.timeout {
			delete(m.sessions, tok)
			removed++
		}
	}
	return removed, len(m.sessions)
}

// Len returns the number of stored tokens, expired-but-unswept included.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps the store every SweepInterval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.log.Info().Dur("interval", m.interval).Dur("timeout", m.timeout).Msg("sweep loop started")
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("sweep loop stopped")
			return ctx.Err()
		case <-ticker.C:
			m.sweepOnce()
		}
	}
}

// sweepOnce keeps a failed cycle from taking the loop down; the next tick
// revisits every entry anyway.
func (m *Manager) sweepOnce() {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Msg("sweep cycle failed")
		}
	}()
	m.Sweep()
}
