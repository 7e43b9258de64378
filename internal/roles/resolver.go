// Package roles derives the caller's capability set from the role-bearing
// contracts. Results are keyed to the session snapshot that started the
// resolution; anything that lands after the session moved on is discarded.
package roles

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"tokengate/internal/contracts"
)

// RoleSet is the derived capability set for one account. Never persisted;
// recomputed on every session change.
type RoleSet struct {
	Admin  bool `json:"admin"`
	Issuer bool `json:"issuer"`
	Agent  bool `json:"agent"`
}

// Snapshot identifies the session parameters a resolution ran under.
type Snapshot struct {
	Account common.Address
	ChainID uint64
}

// RoleSource answers hasRole queries; the token and identity services both
// satisfy it.
type RoleSource interface {
	HasRole(ctx context.Context, role common.Hash, account common.Address) (bool, error)
}

// Resolver performs the three independent role queries.
type Resolver struct {
	token    RoleSource
	registry RoleSource
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

func NewResolver(token, registry RoleSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{token: token, registry: registry, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the three role queries concurrently and waits for all of them.
// A single query failure downgrades only that capability to false with a
// logged warning; it never aborts the others, and Resolve itself cannot fail.
func (r *Resolver) Resolve(ctx context.Context, account common.Address) RoleSet {
	var set RoleSet
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		set.Admin = r.query(ctx, r.token, contracts.AdminRole, "admin", account)
		return nil
	})
	g.Go(func() error {
		set.Issuer = r.query(ctx, r.token, contracts.IssuerRole, "issuer", account)
		return nil
	})
	g.Go(func() error {
		set.Agent = r.query(ctx, r.registry, contracts.AgentRole, "agent", account)
		return nil
	})

	_ = g.Wait()
	return set
}

func (r *Resolver) query(ctx context.Context, src RoleSource, role common.Hash, name string, account common.Address) bool {
	has, err := src.HasRole(ctx, role, account)
	if err != nil {
		r.log.Warn("role query failed", "role", name, "account", account.Hex(), "error", err)
		return false
	}
	return has
}
