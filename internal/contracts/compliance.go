package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Compliance is the transfer-restriction service. It owns the authoritative
// accept/reject decision; this wrapper only reads and proposes.
type Compliance struct {
	caller Caller
	addr   common.Address
}

func NewCompliance(caller Caller, addr common.Address) *Compliance {
	return &Compliance{caller: caller, addr: addr}
}

func (c *Compliance) Address() common.Address { return c.addr }

// CanTransfer asks the remote module whether it would accept the transfer.
func (c *Compliance) CanTransfer(ctx context.Context, from, to common.Address, amount *big.Int) (bool, error) {
	return decodeOne[bool](c.caller.Call(ctx, c.addr, "canTransfer", from, to, amount))
}

// Restriction reads the allowed flag for a country code.
func (c *Compliance) Restriction(ctx context.Context, country string) (bool, error) {
	return decodeOne[bool](c.caller.Call(ctx, c.addr, "getTransferRestriction", country))
}

// SetRestriction writes a country-level restriction. Admin role enforced
// remotely; no client-side validation beyond what callers do.
func (c *Compliance) SetRestriction(ctx context.Context, country string, allowed bool) (TxHandle, error) {
	return c.caller.Send(ctx, c.addr, "setTransferRestriction", country, allowed)
}

func (c *Compliance) HasRole(ctx context.Context, role common.Hash, account common.Address) (bool, error) {
	return decodeOne[bool](c.caller.Call(ctx, c.addr, "hasRole", role, account))
}
