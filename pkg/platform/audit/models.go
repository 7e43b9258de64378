// Package audit captures privileged gateway actions for compliance review.
// Events are emitted from domain logic and kept transport-agnostic so stores
// and sinks can fan out.
package audit

import (
	"context"
	"time"
)

// Action names the privileged operation an event records.
type Action string

const (
	ActionTokenIssued    Action = "token_issued"
	ActionTokenRedeemed  Action = "token_redeemed"
	ActionIdentitySet    Action = "identity_registered"
	ActionRestrictionSet Action = "restriction_set"
)

// Event is one recorded privileged action.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	// Actor is the session account that initiated the action.
	Actor string `json:"actor"`
	// Subject is what the action touched: a recipient address for token
	// movements, an account for identity writes, a country code for
	// restriction changes.
	Subject string `json:"subject"`
	// Amount is the human-readable amount for token movements, empty
	// otherwise.
	Amount string `json:"amount,omitempty"`
	TxHash string `json:"txHash,omitempty"`
	// Outcome is "confirmed" or "failed"; failed events keep Reason.
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// Trail stores and lists audit events.
type Trail interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}
