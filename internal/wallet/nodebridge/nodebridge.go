// Package nodebridge adapts a JSON-RPC node to the wallet bridge interface
// for development deployments. A node is not a wallet: accounts come from the
// node's unlocked keyring, the chain is fixed, and there are no prompts, so
// every interactive path resolves immediately.
package nodebridge

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"tokengate/internal/wallet"
)

// Bridge speaks eth_accounts/eth_chainId against a development node.
type Bridge struct {
	client *rpc.Client
}

// Dial connects to the node. The connection is lazy for HTTP endpoints; a
// wrong URL surfaces on the first call.
func Dial(ctx context.Context, url string) (*Bridge, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial node %s: %w", url, err)
	}
	return &Bridge{client: client}, nil
}

func New(client *rpc.Client) *Bridge {
	return &Bridge{client: client}
}

// RequestAccounts lists the node's unlocked accounts. There is no user to
// prompt, so this is identical to the passive probe.
func (b *Bridge) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return b.Accounts(ctx)
}

// Accounts lists the node's unlocked accounts without prompting.
func (b *Bridge) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := b.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return accounts, nil
}

// ChainID reports the chain the node is pinned to.
func (b *Bridge) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Big
	if err := b.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}
	return id.ToInt().Uint64(), nil
}

// SwitchChain succeeds only when the node already sits on the requested
// chain; a node cannot change networks, so anything else reports the
// unknown-chain code and lets the caller surface a useful message.
func (b *Bridge) SwitchChain(ctx context.Context, chainID uint64) error {
	current, err := b.ChainID(ctx)
	if err != nil {
		return err
	}
	if current != chainID {
		return &wallet.RPCError{
			Code:    wallet.CodeUnknownChain,
			Message: fmt.Sprintf("node is pinned to chain %d", current),
		}
	}
	return nil
}

// AddChain cannot register networks on a node.
func (b *Bridge) AddChain(ctx context.Context, desc wallet.ChainDescriptor) error {
	return &wallet.RPCError{
		Code:    wallet.CodeUnknownChain,
		Message: fmt.Sprintf("node bridge cannot register chain %d", desc.ChainID),
	}
}

// Subscribe is a no-op: a node never revokes accounts or hops chains behind
// the session's back. The release func is still real so teardown paths stay
// uniform.
func (b *Bridge) Subscribe(wallet.Events) func() {
	return func() {}
}

// Close releases the underlying RPC client.
func (b *Bridge) Close() {
	b.client.Close()
}
