// Package contracts wraps the remote token, identity, and compliance services
// behind a generic contract-call interface. The chain is an external
// collaborator; nothing here encodes ABI details beyond method names and
// result shapes.
package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Caller performs remote contract invocations. Implementations route through
// the connected wallet session for writes and any provider for reads.
type Caller interface {
	// Call performs a read-only method invocation and returns the decoded
	// result values in declaration order.
	Call(ctx context.Context, contract common.Address, method string, args ...any) ([]any, error)
	// Send submits a state-changing invocation signed by the session
	// account and returns a handle on the in-flight transaction.
	Send(ctx context.Context, contract common.Address, method string, args ...any) (TxHandle, error)
}

// TxHandle tracks one submitted transaction.
type TxHandle interface {
	Hash() common.Hash
	// Wait blocks until the transaction is included. A revert surfaces as a
	// RevertError; other failures keep their original type.
	Wait(ctx context.Context) error
}

// RevertError carries a structured revert reason from the remote service.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("execution reverted: %s", e.Reason)
}

// RevertReason extracts the structured reason if err carries one.
func RevertReason(err error) (string, bool) {
	var rev *RevertError
	if errors.As(err, &rev) {
		return rev.Reason, true
	}
	return "", false
}

// decodeOne asserts a single-value read result.
func decodeOne[T any](vals []any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if len(vals) != 1 {
		return zero, fmt.Errorf("unexpected result arity %d", len(vals))
	}
	v, ok := vals[0].(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type %T", vals[0])
	}
	return v, nil
}
