// Package session owns the wallet connection state machine. It is the single
// source of truth for the connected account and chain; every mutation goes
// through the Store so external notifications and user actions serialize onto
// one record.
package session

import (
	"github.com/ethereum/go-ethereum/common"
)

// State is the connection lifecycle state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateWrongNetwork State = "wrong_network"
)

// Session is a point-in-time snapshot of the wallet connection.
// Invariant: Account is non-nil exactly when State is StateConnected or
// StateWrongNetwork.
type Session struct {
	Account *common.Address
	ChainID *uint64
	State   State
}

// Connected reports whether an account is attached, regardless of whether the
// wallet sits on the expected chain.
func (s Session) Connected() bool {
	return s.State == StateConnected || s.State == StateWrongNetwork
}

func (s Session) clone() Session {
	out := Session{State: s.State}
	if s.Account != nil {
		acct := *s.Account
		out.Account = &acct
	}
	if s.ChainID != nil {
		chain := *s.ChainID
		out.ChainID = &chain
	}
	return out
}
