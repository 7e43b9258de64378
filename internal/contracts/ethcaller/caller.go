// Package ethcaller implements the contract-call interface against a JSON-RPC
// endpoint. Reads go through eth_call with ABI packing; writes are submitted
// as eth_sendTransaction signed by the node's unlocked session account, which
// is how the development deployment works. Revert data is decoded into the
// structured reason the rest of the system expects.
package ethcaller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"tokengate/internal/contracts"
	"tokengate/pkg/platform/sentinel"
)

// gatewayABI covers every method the contract services invoke. The token,
// identity registry, and compliance module share one ABI here because the
// caller receives the target address separately.
const gatewayABI = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"type":"uint8"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"type":"address"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"hasRole","stateMutability":"view","inputs":[{"type":"bytes32"},{"type":"address"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"issue","stateMutability":"nonpayable","inputs":[{"type":"address"},{"type":"uint256"}],"outputs":[]},
	{"type":"function","name":"redeem","stateMutability":"nonpayable","inputs":[{"type":"uint256"}],"outputs":[]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"type":"address"},{"type":"uint256"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"getIdentity","stateMutability":"view","inputs":[{"type":"address"}],"outputs":[{"type":"string"},{"type":"bool"},{"type":"bool"},{"type":"uint256"}]},
	{"type":"function","name":"registerIdentity","stateMutability":"nonpayable","inputs":[{"type":"address"},{"type":"string"},{"type":"bool"}],"outputs":[]},
	{"type":"function","name":"canTransfer","stateMutability":"view","inputs":[{"type":"address"},{"type":"address"},{"type":"uint256"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"getTransferRestriction","stateMutability":"view","inputs":[{"type":"string"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"setTransferRestriction","stateMutability":"nonpayable","inputs":[{"type":"string"},{"type":"bool"}],"outputs":[]}
]`

const receiptPollInterval = 500 * time.Millisecond

// Caller performs contract reads and writes over JSON-RPC.
type Caller struct {
	rpc *rpc.Client
	eth *ethclient.Client
	abi abi.ABI
	log *slog.Logger

	mu   sync.RWMutex
	from *common.Address
}

// Option configures a Caller.
type Option func(*Caller)

func WithLogger(log *slog.Logger) Option {
	return func(c *Caller) { c.log = log }
}

// Dial connects to the endpoint and builds a Caller.
func Dial(ctx context.Context, url string, opts ...Option) (*Caller, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial node %s: %w", url, err)
	}
	return New(client, opts...)
}

// New wraps an existing RPC client.
func New(client *rpc.Client, opts ...Option) (*Caller, error) {
	parsed, err := abi.JSON(strings.NewReader(gatewayABI))
	if err != nil {
		return nil, fmt.Errorf("parse gateway abi: %w", err)
	}
	c := &Caller{
		rpc: client,
		eth: ethclient.NewClient(client),
		abi: parsed,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetFrom selects the account writes are sent from, normally the session
// account. Reads never need it.
func (c *Caller) SetFrom(account common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.from = &account
}

// ClearFrom drops the sending account, e.g. on disconnect.
func (c *Caller) ClearFrom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.from = nil
}

// Call performs a read through eth_call and decodes the result values.
func (c *Caller) Call(ctx context.Context, contract common.Address, method string, args ...any) ([]any, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, asRevert(err)
	}
	vals, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return vals, nil
}

// Send submits a write from the selected account and returns a handle that
// polls for inclusion.
func (c *Caller) Send(ctx context.Context, contract common.Address, method string, args ...any) (contracts.TxHandle, error) {
	c.mu.RLock()
	from := c.from
	c.mu.RUnlock()
	if from == nil {
		return nil, fmt.Errorf("no sending account selected: %w", sentinel.ErrUnavailable)
	}

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	var hash common.Hash
	err = c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", &sendTxArgs{
		From: *from,
		To:   &contract,
		Data: data,
	})
	if err != nil {
		return nil, asRevert(err)
	}

	c.log.Debug("transaction submitted",
		"method", method, "contract", contract.Hex(), "tx", hash.Hex())
	return &handle{caller: c, hash: hash, from: *from, to: contract, data: data}, nil
}

type sendTxArgs struct {
	From common.Address  `json:"from"`
	To   *common.Address `json:"to"`
	Data hexutil.Bytes   `json:"data"`
}

// handle polls for the transaction receipt.
type handle struct {
	caller *Caller
	hash   common.Hash
	from   common.Address
	to     common.Address
	data   []byte
}

func (h *handle) Hash() common.Hash { return h.hash }

// Wait blocks until the transaction is included or ctx ends. A failed receipt
// is replayed as a call at the inclusion block to recover the revert reason.
func (h *handle) Wait(ctx context.Context) error {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := h.caller.eth.TransactionReceipt(ctx, h.hash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusSuccessful {
				return nil
			}
			return h.revertReason(ctx, receipt)
		case errors.Is(err, ethereum.NotFound):
			// Still pending.
		default:
			return fmt.Errorf("receipt %s: %w", h.hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (h *handle) revertReason(ctx context.Context, receipt *types.Receipt) error {
	_, err := h.caller.eth.CallContract(ctx, ethereum.CallMsg{
		From: h.from,
		To:   &h.to,
		Data: h.data,
	}, receipt.BlockNumber)
	if err != nil {
		return asRevert(err)
	}
	return fmt.Errorf("transaction %s reverted", h.hash.Hex())
}

// asRevert converts a JSON-RPC error carrying revert data into the structured
// RevertError; anything else passes through unchanged.
func asRevert(err error) error {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}
	encoded, ok := dataErr.ErrorData().(string)
	if !ok {
		return err
	}
	data, decodeErr := hexutil.Decode(encoded)
	if decodeErr != nil {
		return err
	}
	reason, unpackErr := abi.UnpackRevert(data)
	if unpackErr != nil {
		return err
	}
	return &contracts.RevertError{Reason: reason}
}
