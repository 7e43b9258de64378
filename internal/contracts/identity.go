package contracts

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"tokengate/pkg/platform/sentinel"
)

// Identity is a registered investor record. Absence of a record is a valid
// state distinct from Verified being false.
type Identity struct {
	Country    string
	Accredited bool
	Verified   bool
	VerifiedAt time.Time
}

// Registry is the identity registry service.
type Registry struct {
	caller Caller
	addr   common.Address
}

func NewRegistry(caller Caller, addr common.Address) *Registry {
	return &Registry{caller: caller, addr: addr}
}

func (r *Registry) Address() common.Address { return r.addr }

// Identity fetches the record for an account. An unregistered account
// surfaces as sentinel.ErrNotFound.
func (r *Registry) Identity(ctx context.Context, account common.Address) (*Identity, error) {
	vals, err := r.caller.Call(ctx, r.addr, "getIdentity", account)
	if err != nil {
		// The registry reverts for unregistered accounts; that is an
		// absence fact, not a failure.
		if _, reverted := RevertReason(err); reverted {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	if len(vals) != 4 {
		return nil, fmt.Errorf("unexpected identity result arity %d", len(vals))
	}
	country, ok1 := vals[0].(string)
	accredited, ok2 := vals[1].(bool)
	verified, ok3 := vals[2].(bool)
	verifiedAt, ok4 := vals[3].(*big.Int)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("unexpected identity result shape")
	}
	id := &Identity{
		Country:    country,
		Accredited: accredited,
		Verified:   verified,
	}
	if verifiedAt.Sign() > 0 {
		id.VerifiedAt = time.Unix(verifiedAt.Int64(), 0).UTC()
	}
	return id, nil
}

// Register records an identity for an account. Agent role enforced remotely.
func (r *Registry) Register(ctx context.Context, account common.Address, country string, accredited bool) (TxHandle, error) {
	return r.caller.Send(ctx, r.addr, "registerIdentity", account, country, accredited)
}

func (r *Registry) HasRole(ctx context.Context, role common.Hash, account common.Address) (bool, error) {
	return decodeOne[bool](r.caller.Call(ctx, r.addr, "hasRole", role, account))
}
