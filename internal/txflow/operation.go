// Package txflow tracks state-changing contract calls through their
// lifecycle and reports idempotent, keyed status to the user.
package txflow

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// OpID names a logical action kind. One Operation record exists per kind; a
// new invocation supersedes the previous record rather than queueing.
type OpID string

const (
	OpIssue       OpID = "issue"
	OpRedeem      OpID = "redeem"
	OpTransfer    OpID = "transfer"
	OpIdentity    OpID = "identity"
	OpRestriction OpID = "restriction"
)

// OpState is the lifecycle state of an operation.
type OpState string

const (
	StateIdle       OpState = "idle"
	StateSubmitting OpState = "submitting"
	StatePending    OpState = "pending"
	StateConfirmed  OpState = "confirmed"
	StateFailed     OpState = "failed"
)

// rank orders states so transitions can be checked for monotonicity. The two
// terminal states share a rank; neither can replace the other.
func (s OpState) rank() int {
	switch s {
	case StateIdle:
		return 0
	case StateSubmitting:
		return 1
	case StatePending:
		return 2
	case StateConfirmed, StateFailed:
		return 3
	}
	return -1
}

// Terminal reports whether the state is an endpoint of the lifecycle.
func (s OpState) Terminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// Operation is the user-visible status record for one action kind.
type Operation struct {
	ID        OpID        `json:"id"`
	State     OpState     `json:"state"`
	Error     string      `json:"error,omitempty"`
	TxHash    common.Hash `json:"txHash"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
