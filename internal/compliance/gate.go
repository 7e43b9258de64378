// Package compliance holds the client-side transfer pre-checks.
//
// Everything here is advisory. The authoritative accept/reject decision is
// the remote compliance module's, taken at execution time; these checks only
// avoid submitting transactions that are doomed to fail. They must never
// grow into a second source of truth for enforcement.
package compliance

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"tokengate/internal/contracts"
	"tokengate/pkg/platform/circuit"
)

// CanInitiateTransfer reports whether the sender's identity permits starting
// a transfer at all: the identity must exist and be verified. Accreditation
// and country play no part here; country policy is enforced remotely.
func CanInitiateTransfer(identity *contracts.Identity) bool {
	return identity != nil && identity.Verified
}

// Checker adds an optional remote preflight on top of the identity gate.
type Checker struct {
	module  *contracts.Compliance
	log     *slog.Logger
	breaker *circuit.Breaker
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

func WithLogger(log *slog.Logger) CheckerOption {
	return func(c *Checker) { c.log = log }
}

func NewChecker(module *contracts.Compliance, opts ...CheckerOption) *Checker {
	c := &Checker{
		module: module,
		log:    slog.Default(),
		breaker: circuit.New("compliance-preflight",
			circuit.WithFailureThreshold(3),
			circuit.WithSuccessThreshold(2)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preflight asks the remote module whether it would accept the transfer. A
// read failure degrades to "allowed": the worst case is a wasted submission
// that the remote module then rejects authoritatively. The breaker keeps the
// degradation logging to one warning per outage instead of one per transfer.
func (c *Checker) Preflight(ctx context.Context, from, to common.Address, amount *big.Int) bool {
	ok, err := c.module.CanTransfer(ctx, from, to, amount)
	if err != nil {
		degraded, change := c.breaker.RecordFailure()
		if change.Opened || !degraded {
			c.log.Warn("transfer preflight failed, deferring to remote enforcement",
				"from", from.Hex(), "to", to.Hex(), "error", err)
		} else {
			c.log.Debug("transfer preflight still degraded",
				"from", from.Hex(), "to", to.Hex(), "error", err)
		}
		return true
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.log.Info("transfer preflight recovered")
	}
	return ok
}
