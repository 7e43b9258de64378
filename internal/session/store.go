package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"tokengate/internal/notify"
	"tokengate/internal/platform/metrics"
	"tokengate/internal/wallet"
	dErrors "tokengate/pkg/domain-errors"
)

// Store coordinates the wallet session. One instance per process, constructed
// at startup and handed explicitly to every component that needs it.
type Store struct {
	bridge     wallet.Bridge // nil when no wallet capability is present
	expected   uint64
	descriptor wallet.ChainDescriptor
	notifier   notify.Notifier
	log        *slog.Logger
	metrics    *metrics.Metrics

	mu        sync.RWMutex
	cur       Session
	listeners []func(Session)
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New builds a Store. A nil bridge is a legal, first-class condition meaning
// no wallet is installed; operations then report rather than panic.
func New(bridge wallet.Bridge, expectedChain uint64, descriptor wallet.ChainDescriptor, opts ...Option) *Store {
	s := &Store{
		bridge:     bridge,
		expected:   expectedChain,
		descriptor: descriptor,
		notifier:   notify.Func(func(notify.Notification) {}),
		log:        slog.Default(),
		cur:        Session{State: StateDisconnected},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.clone()
}

// OnChange registers a listener invoked with a snapshot after every session
// mutation. Listeners run outside the store lock.
func (s *Store) OnChange(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Attach subscribes to wallet change notifications, routing them into the
// store. The returned release must run on every teardown path.
func (s *Store) Attach() (release func()) {
	if s.bridge == nil {
		return func() {}
	}
	return s.bridge.Subscribe(wallet.Events{
		AccountsChanged: s.handleAccountsChanged,
		ChainChanged:    s.handleChainChanged,
	})
}

// Connect requests wallet access and populates the session. Calling while
// already connected re-validates account and chain rather than erroring.
func (s *Store) Connect(ctx context.Context) error {
	if s.bridge == nil {
		notify.Error(s.notifier, "", "No wallet extension detected")
		return dErrors.New(dErrors.CodeUnavailable, "wallet capability not available")
	}

	prior := s.Snapshot()
	if !prior.Connected() {
		s.transition(func(cur *Session) {
			cur.State = StateConnecting
			cur.Account = nil
		})
	}

	accounts, err := s.bridge.RequestAccounts(ctx)
	if err != nil {
		s.restore(prior)
		if wallet.IsUserRejection(err) {
			notify.Error(s.notifier, "", "Wallet connection request was declined")
			return dErrors.Wrap(err, dErrors.CodeRejected, "connection declined")
		}
		notify.Error(s.notifier, "", "Failed to connect wallet")
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "wallet account request failed")
	}
	if len(accounts) == 0 {
		s.restore(Session{State: StateDisconnected})
		notify.Error(s.notifier, "", "Wallet returned no accounts")
		return dErrors.New(dErrors.CodeUnavailable, "wallet exposed no accounts")
	}

	chainID, err := s.bridge.ChainID(ctx)
	if err != nil {
		s.restore(prior)
		notify.Error(s.notifier, "", "Failed to read wallet network")
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "wallet network read failed")
	}

	account := accounts[0]
	s.transition(func(cur *Session) {
		cur.Account = &account
		cur.ChainID = &chainID
		cur.State = s.stateFor(chainID)
	})

	if s.metrics != nil {
		s.metrics.WalletConnects.Inc()
	}
	notify.Success(s.notifier, "", "Wallet connected")
	if chainID != s.expected {
		notify.Error(s.notifier, "", fmt.Sprintf("Please switch to %s (chain %d)", s.descriptor.Name, s.expected))
	}
	return nil
}

// Resume probes for already-authorized accounts without prompting and
// connects if access was previously granted. Failures only log; startup must
// not surface wallet noise.
func (s *Store) Resume(ctx context.Context) {
	if s.bridge == nil {
		return
	}
	accounts, err := s.bridge.Accounts(ctx)
	if err != nil {
		s.log.Warn("wallet account probe failed", "error", err)
		return
	}
	if len(accounts) == 0 {
		return
	}
	if err := s.Connect(ctx); err != nil {
		s.log.Warn("session resume failed", "error", err)
	}
}

// Disconnect resets the session. Always succeeds.
func (s *Store) Disconnect() {
	s.transition(func(cur *Session) {
		*cur = Session{State: StateDisconnected}
	})
	if s.metrics != nil {
		s.metrics.WalletDisconnects.Inc()
	}
	notify.Success(s.notifier, "", "Wallet disconnected")
}

// SwitchNetwork asks the wallet to select the expected chain, registering it
// first when the wallet does not know it. Failure leaves the session in
// whatever state it had; it never touches the account.
func (s *Store) SwitchNetwork(ctx context.Context) error {
	if s.bridge == nil {
		notify.Error(s.notifier, "", "No wallet extension detected")
		return dErrors.New(dErrors.CodeUnavailable, "wallet capability not available")
	}

	err := s.bridge.SwitchChain(ctx, s.expected)
	if wallet.IsUnknownChain(err) {
		if addErr := s.bridge.AddChain(ctx, s.descriptor); addErr != nil {
			notify.Error(s.notifier, "", fmt.Sprintf("Failed to add %s network", s.descriptor.Name))
			return dErrors.Wrap(addErr, dErrors.CodeUnavailable, "network registration failed")
		}
		err = s.bridge.SwitchChain(ctx, s.expected)
	}
	if err != nil {
		if wallet.IsUserRejection(err) {
			notify.Error(s.notifier, "", "Network switch was declined")
			return dErrors.Wrap(err, dErrors.CodeRejected, "network switch declined")
		}
		notify.Error(s.notifier, "", "Failed to switch network")
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "network switch failed")
	}

	// The wallet also emits chainChanged after a switch; applying the new
	// chain here as well keeps the two paths idempotent.
	s.handleChainChanged(s.expected)
	if s.metrics != nil {
		s.metrics.NetworkSwitches.Inc()
	}
	return nil
}

// handleAccountsChanged applies a wallet accounts notification. An empty list
// means access was revoked and behaves like Disconnect.
func (s *Store) handleAccountsChanged(accounts []common.Address) {
	if len(accounts) == 0 {
		s.Disconnect()
		return
	}
	account := accounts[0]
	s.transition(func(cur *Session) {
		if cur.State != StateConnected && cur.State != StateWrongNetwork {
			return
		}
		cur.Account = &account
	})
}

// handleChainChanged applies a wallet network notification and recomputes the
// wrong-network branch.
func (s *Store) handleChainChanged(chainID uint64) {
	s.transition(func(cur *Session) {
		cur.ChainID = &chainID
		if cur.Account != nil {
			cur.State = s.stateFor(chainID)
		}
	})
}

func (s *Store) stateFor(chainID uint64) State {
	if chainID == s.expected {
		return StateConnected
	}
	return StateWrongNetwork
}

// transition mutates the session under the lock and fans the new snapshot out
// to listeners outside it.
func (s *Store) transition(mutate func(*Session)) {
	s.mu.Lock()
	before := s.cur.clone()
	mutate(&s.cur)
	after := s.cur.clone()
	listeners := append([]func(Session){}, s.listeners...)
	s.mu.Unlock()

	if sessionsEqual(before, after) {
		return
	}
	for _, fn := range listeners {
		fn(after.clone())
	}
}

func (s *Store) restore(prior Session) {
	s.transition(func(cur *Session) {
		*cur = prior.clone()
	})
}

func sessionsEqual(a, b Session) bool {
	if a.State != b.State {
		return false
	}
	if (a.Account == nil) != (b.Account == nil) || (a.Account != nil && *a.Account != *b.Account) {
		return false
	}
	if (a.ChainID == nil) != (b.ChainID == nil) || (a.ChainID != nil && *a.ChainID != *b.ChainID) {
		return false
	}
	return true
}
