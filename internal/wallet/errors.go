package wallet

import (
	"errors"
	"fmt"
)

// Wallet RPC error codes carried over from the EIP-1193/EIP-3085 surface the
// original extension speaks.
const (
	CodeUserRejected = 4001
	CodeUnknownChain = 4902
)

// RPCError is a coded failure returned by the wallet.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("wallet rpc error %d: %s", e.Code, e.Message)
}

// IsUserRejection reports whether the user declined a wallet prompt.
func IsUserRejection(err error) bool {
	return hasCode(err, CodeUserRejected)
}

// IsUnknownChain reports whether the wallet does not know the requested chain.
func IsUnknownChain(err error) bool {
	return hasCode(err, CodeUnknownChain)
}

func hasCode(err error, code int) bool {
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == code
}
