package roles

import (
	"context"
	"log/slog"
	"sync"

	"tokengate/internal/platform/metrics"
	"tokengate/internal/session"
)

// Service owns the resolved role state for the current session. Everything
// else reads capabilities from here, never from the resolver directly, so the
// stale-discard rule is enforced in exactly one place.
type Service struct {
	resolver *Resolver
	current  func() (Snapshot, bool)
	log      *slog.Logger
	metrics  *metrics.Metrics

	mu       sync.RWMutex
	set      RoleSet
	resolved *Snapshot
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

func WithServiceMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService builds a Service. current reports the session snapshot in effect
// right now, or false when no account is attached; it is consulted both when
// a resolution starts and when its results land.
func NewService(resolver *Resolver, current func() (Snapshot, bool), opts ...ServiceOption) *Service {
	s := &Service{resolver: resolver, current: current, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Roles returns the current capability set and whether it is settled for the
// session snapshot in effect right now.
func (s *Service) Roles() (RoleSet, bool) {
	now, ok := s.current()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !ok || s.resolved == nil || *s.resolved != now {
		return RoleSet{}, false
	}
	return s.set, true
}

// Refresh resolves roles for the given snapshot and applies the result only
// if that snapshot still matches the live session when the queries settle.
// The underlying reads cannot be cancelled; staleness is discard-on-arrival.
func (s *Service) Refresh(ctx context.Context, snap Snapshot) {
	set := s.resolver.Resolve(ctx, snap.Account)
	if s.metrics != nil {
		s.metrics.RoleResolutions.Inc()
	}

	now, ok := s.current()
	if !ok || now != snap {
		if s.metrics != nil {
			s.metrics.StaleResolutionsDrops.Inc()
		}
		s.log.Debug("dropping stale role resolution",
			"account", snap.Account.Hex(), "chain", snap.ChainID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the lock so a resolution for a newer snapshot that
	// landed in between is never overwritten by this one.
	now, ok = s.current()
	if !ok || now != snap {
		return
	}
	s.set = set
	applied := snap
	s.resolved = &applied
}

// Clear drops any resolved state, e.g. on disconnect.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = RoleSet{}
	s.resolved = nil
}

// HandleSessionChange is the session listener: it re-resolves on every
// account or network change and clears on disconnect. Resolution runs in the
// background; completions serialize through Refresh.
func (s *Service) HandleSessionChange(sess session.Session) {
	if !sess.Connected() {
		s.Clear()
		return
	}
	snap := Snapshot{Account: *sess.Account}
	if sess.ChainID != nil {
		snap.ChainID = *sess.ChainID
	}
	go s.Refresh(context.Background(), snap)
}

// SnapshotFrom derives the resolution key from a session, reporting false
// when no account is attached.
func SnapshotFrom(sess session.Session) (Snapshot, bool) {
	if !sess.Connected() || sess.Account == nil {
		return Snapshot{}, false
	}
	snap := Snapshot{Account: *sess.Account}
	if sess.ChainID != nil {
		snap.ChainID = *sess.ChainID
	}
	return snap, true
}
