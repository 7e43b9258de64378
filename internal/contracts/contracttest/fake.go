// Package contracttest provides scripted fakes for the contract-call
// interface so component tests run without any chain.
package contracttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"tokengate/internal/contracts"
)

// Invocation records one call or send observed by the fake.
type Invocation struct {
	Contract common.Address
	Method   string
	Args     []any
}

// Handle is a scripted transaction handle.
type Handle struct {
	TxHash common.Hash
	// WaitErr is returned from Wait; nil means confirmed.
	WaitErr error
	// WaitFn, when set, takes precedence over WaitErr and can block to
	// model slow inclusion.
	WaitFn func(ctx context.Context) error

	mu     sync.Mutex
	waited int
}

func (h *Handle) Hash() common.Hash { return h.TxHash }

func (h *Handle) Wait(ctx context.Context) error {
	h.mu.Lock()
	h.waited++
	h.mu.Unlock()
	if h.WaitFn != nil {
		return h.WaitFn(ctx)
	}
	return h.WaitErr
}

// Waited reports how many times Wait ran.
func (h *Handle) Waited() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.waited
}

type callKey struct {
	contract common.Address
	method   string
}

// Fake is a scripted contracts.Caller. Methods without a registered script
// fail loudly so tests cannot silently exercise unplanned paths.
type Fake struct {
	mu    sync.Mutex
	reads map[callKey]func(args []any) ([]any, error)
	sends map[callKey]func(args []any) (contracts.TxHandle, error)

	Calls []Invocation
	Sends []Invocation
}

func NewFake() *Fake {
	return &Fake{
		reads: make(map[callKey]func([]any) ([]any, error)),
		sends: make(map[callKey]func([]any) (contracts.TxHandle, error)),
	}
}

// OnCall scripts a read method.
func (f *Fake) OnCall(contract common.Address, method string, fn func(args []any) ([]any, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[callKey{contract, method}] = fn
}

// ReturnCall scripts a read method with fixed result values.
func (f *Fake) ReturnCall(contract common.Address, method string, vals ...any) {
	f.OnCall(contract, method, func([]any) ([]any, error) {
		return vals, nil
	})
}

// FailCall scripts a read method to return an error.
func (f *Fake) FailCall(contract common.Address, method string, err error) {
	f.OnCall(contract, method, func([]any) ([]any, error) {
		return nil, err
	})
}

// OnSend scripts a write method.
func (f *Fake) OnSend(contract common.Address, method string, fn func(args []any) (contracts.TxHandle, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends[callKey{contract, method}] = fn
}

// ReturnSend scripts a write method to hand back the given handle.
func (f *Fake) ReturnSend(contract common.Address, method string, h *Handle) {
	f.OnSend(contract, method, func([]any) (contracts.TxHandle, error) {
		return h, nil
	})
}

func (f *Fake) Call(_ context.Context, contract common.Address, method string, args ...any) ([]any, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, Invocation{Contract: contract, Method: method, Args: args})
	fn := f.reads[callKey{contract, method}]
	f.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("contracttest: no script for call %s.%s", contract.Hex(), method)
	}
	return fn(args)
}

func (f *Fake) Send(_ context.Context, contract common.Address, method string, args ...any) (contracts.TxHandle, error) {
	f.mu.Lock()
	f.Sends = append(f.Sends, Invocation{Contract: contract, Method: method, Args: args})
	fn := f.sends[callKey{contract, method}]
	f.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("contracttest: no script for send %s.%s", contract.Hex(), method)
	}
	return fn(args)
}

// SendsTo filters recorded sends by contract and method.
func (f *Fake) SendsTo(contract common.Address, method string) []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Invocation
	for _, inv := range f.Sends {
		if inv.Contract == contract && inv.Method == method {
			out = append(out, inv)
		}
	}
	return out
}
