package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token is the permissioned asset token service.
type Token struct {
	caller Caller
	addr   common.Address
}

func NewToken(caller Caller, addr common.Address) *Token {
	return &Token{caller: caller, addr: addr}
}

func (t *Token) Address() common.Address { return t.addr }

func (t *Token) Name(ctx context.Context) (string, error) {
	return decodeOne[string](t.caller.Call(ctx, t.addr, "name"))
}

func (t *Token) Symbol(ctx context.Context) (string, error) {
	return decodeOne[string](t.caller.Call(ctx, t.addr, "symbol"))
}

func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	return decodeOne[uint8](t.caller.Call(ctx, t.addr, "decimals"))
}

func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	return decodeOne[*big.Int](t.caller.Call(ctx, t.addr, "totalSupply"))
}

func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return decodeOne[*big.Int](t.caller.Call(ctx, t.addr, "balanceOf", account))
}

func (t *Token) HasRole(ctx context.Context, role common.Hash, account common.Address) (bool, error) {
	return decodeOne[bool](t.caller.Call(ctx, t.addr, "hasRole", role, account))
}

// Issue mints amount to the recipient. Issuer role enforced remotely.
func (t *Token) Issue(ctx context.Context, to common.Address, amount *big.Int) (TxHandle, error) {
	return t.caller.Send(ctx, t.addr, "issue", to, amount)
}

// Redeem burns amount from the caller's balance.
func (t *Token) Redeem(ctx context.Context, amount *big.Int) (TxHandle, error) {
	return t.caller.Send(ctx, t.addr, "redeem", amount)
}

// Transfer moves amount to the recipient, subject to the remote compliance
// checks at execution time.
func (t *Token) Transfer(ctx context.Context, to common.Address, amount *big.Int) (TxHandle, error) {
	return t.caller.Send(ctx, t.addr, "transfer", to, amount)
}
