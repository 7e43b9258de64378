// Package wallet defines the consumed wallet capability: account access,
// network control, and change notifications. The gateway never touches keys;
// signing stays behind this boundary.
package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Currency is the native-currency metadata inside a chain descriptor.
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ChainDescriptor is the registration payload for a chain the wallet does not
// know yet. Field shape mirrors the wallet_addEthereumChain parameter object.
type ChainDescriptor struct {
	ChainID        uint64   `json:"chainId"`
	Name           string   `json:"chainName"`
	NativeCurrency Currency `json:"nativeCurrency"`
	RPCURL         string   `json:"rpcUrl"`
}

// Events holds the change handlers a subscriber registers. Nil handlers are
// permitted and simply not invoked.
type Events struct {
	// AccountsChanged fires with the current account list; an empty list
	// means the wallet revoked access.
	AccountsChanged func(accounts []common.Address)
	// ChainChanged fires with the new chain id after the user switches
	// networks in the wallet.
	ChainChanged func(chainID uint64)
}

// Bridge is the wallet capability. Implementations wrap whatever transport
// reaches the actual extension; everything here can block on a user prompt,
// hence the contexts.
type Bridge interface {
	// RequestAccounts prompts the user for access and returns the exposed
	// accounts. An empty slice without error means the user granted access
	// to nothing.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Accounts returns already-authorized accounts without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)
	// ChainID reports the wallet's currently selected chain.
	ChainID(ctx context.Context) (uint64, error)
	// SwitchChain asks the wallet to select the given chain. Returns an
	// RPCError with CodeUnknownChain if the wallet has never seen it.
	SwitchChain(ctx context.Context, chainID uint64) error
	// AddChain registers a chain descriptor with the wallet.
	AddChain(ctx context.Context, desc ChainDescriptor) error
	// Subscribe registers change handlers and returns a release function.
	// Callers must invoke release on every teardown path.
	Subscribe(ev Events) (release func())
}
