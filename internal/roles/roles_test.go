package roles

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokengate/internal/contracts"
)

var (
	accountA = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	accountB = common.HexToAddress("0x00000000000000000000000000000000000000B2")
)

// fakeSource scripts hasRole answers per (role, account).
type fakeSource struct {
	mu       sync.Mutex
	grants   map[common.Hash]map[common.Address]bool
	failures map[common.Hash]error
	block    chan struct{} // when set, queries wait until closed
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		grants:   make(map[common.Hash]map[common.Address]bool),
		failures: make(map[common.Hash]error),
	}
}

func (f *fakeSource) grant(role common.Hash, account common.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.grants[role] == nil {
		f.grants[role] = make(map[common.Address]bool)
	}
	f.grants[role][account] = true
}

func (f *fakeSource) fail(role common.Hash, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[role] = err
}

func (f *fakeSource) HasRole(_ context.Context, role common.Hash, account common.Address) (bool, error) {
	f.mu.Lock()
	block := f.block
	failure := f.failures[role]
	has := f.grants[role][account]
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if failure != nil {
		return false, failure
	}
	return has, nil
}

func TestResolverQueriesAllThree(t *testing.T) {
	token, registry := newFakeSource(), newFakeSource()
	token.grant(contracts.AdminRole, accountA)
	token.grant(contracts.IssuerRole, accountA)
	registry.grant(contracts.AgentRole, accountA)

	set := NewResolver(token, registry).Resolve(context.Background(), accountA)

	assert.Equal(t, RoleSet{Admin: true, Issuer: true, Agent: true}, set)
}

func TestResolverPartialFailureDowngradesOnlyThatRole(t *testing.T) {
	token, registry := newFakeSource(), newFakeSource()
	token.grant(contracts.AdminRole, accountA)
	token.fail(contracts.IssuerRole, errors.New("rpc timeout"))
	registry.grant(contracts.AgentRole, accountA)

	set := NewResolver(token, registry).Resolve(context.Background(), accountA)

	assert.True(t, set.Admin)
	assert.False(t, set.Issuer, "failed query reports false, not an error")
	assert.True(t, set.Agent)
}

func TestResolverIsDeterministic(t *testing.T) {
	token, registry := newFakeSource(), newFakeSource()
	token.grant(contracts.IssuerRole, accountA)
	resolver := NewResolver(token, registry)

	first := resolver.Resolve(context.Background(), accountA)
	second := resolver.Resolve(context.Background(), accountA)
	assert.Equal(t, first, second)
}

// currentFn is a swappable session-snapshot source for Service tests.
type currentFn struct {
	mu   sync.Mutex
	snap Snapshot
	ok   bool
}

func (c *currentFn) set(snap Snapshot, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap, c.ok = snap, ok
}

func (c *currentFn) get() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap, c.ok
}

func TestServiceAppliesFreshResolution(t *testing.T) {
	token, registry := newFakeSource(), newFakeSource()
	token.grant(contracts.AdminRole, accountA)
	snapA := Snapshot{Account: accountA, ChainID: 31337}

	current := &currentFn{}
	current.set(snapA, true)
	svc := NewService(NewResolver(token, registry), current.get)

	svc.Refresh(context.Background(), snapA)

	set, resolved := svc.Roles()
	require.True(t, resolved)
	assert.True(t, set.Admin)
}

// A resolution started for account A must never land once the session has
// moved to account B: B's state stays unresolved (or B's own), never A's.
func TestServiceDiscardsStaleResolution(t *testing.T) {
	token, registry := newFakeSource(), newFakeSource()
	token.grant(contracts.AdminRole, accountA)
	snapA := Snapshot{Account: accountA, ChainID: 31337}
	snapB := Snapshot{Account: accountB, ChainID: 31337}

	current := &currentFn{}
	current.set(snapA, true)
	svc := NewService(NewResolver(token, registry), current.get)

	// Hold A's queries in flight while the session switches to B.
	release := make(chan struct{})
	token.mu.Lock()
	token.block = release
	token.mu.Unlock()
	registry.mu.Lock()
	registry.block = release
	registry.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Refresh(context.Background(), snapA)
	}()

	current.set(snapB, true)
	close(release)
	<-done

	_, resolved := svc.Roles()
	assert.False(t, resolved, "stale resolution for A must not settle B's roles")
}

func TestServiceClearDropsState(t *testing.T) {
	token, registry := newFakeSource(), newFakeSource()
	token.grant(contracts.AdminRole, accountA)
	snapA := Snapshot{Account: accountA, ChainID: 31337}

	current := &currentFn{}
	current.set(snapA, true)
	svc := NewService(NewResolver(token, registry), current.get)
	svc.Refresh(context.Background(), snapA)

	svc.Clear()
	current.set(Snapshot{}, false)

	set, resolved := svc.Roles()
	assert.False(t, resolved)
	assert.Equal(t, RoleSet{}, set)
}

func TestRolesUnresolvedForChangedSession(t *testing.T) {
	token, registry := newFakeSource(), newFakeSource()
	snapA := Snapshot{Account: accountA, ChainID: 31337}

	current := &currentFn{}
	current.set(snapA, true)
	svc := NewService(NewResolver(token, registry), current.get)
	svc.Refresh(context.Background(), snapA)

	_, resolved := svc.Roles()
	require.True(t, resolved)

	// Network change invalidates the settled set even before re-resolution.
	current.set(Snapshot{Account: accountA, ChainID: 1}, true)
	_, resolved = svc.Roles()
	assert.False(t, resolved)
}
