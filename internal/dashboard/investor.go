// Package dashboard hosts the role-facing controllers. Each controller owns
// the read models and state-changing flows for one audience and composes the
// session, roles, compliance and transaction services; it holds no chain
// state of its own.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"tokengate/internal/compliance"
	"tokengate/internal/contracts"
	"tokengate/internal/notify"
	"tokengate/internal/session"
	"tokengate/internal/txflow"
	"tokengate/pkg/amount"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/sentinel"
)

// IdentityView is the investor-facing projection of an identity record.
type IdentityView struct {
	Country    string     `json:"country"`
	Accredited bool       `json:"accredited"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

// Overview is the investor read model. Amounts are decimal strings at the
// token's precision; Identity is nil for unregistered accounts.
type Overview struct {
	TokenName   string        `json:"tokenName"`
	TokenSymbol string        `json:"tokenSymbol"`
	Decimals    int           `json:"decimals"`
	TotalSupply string        `json:"totalSupply"`
	Balance     string        `json:"balance"`
	Identity    *IdentityView `json:"identity,omitempty"`
}

// Investor serves the investor dashboard: the token overview and the
// compliance-gated transfer flow.
type Investor struct {
	token    *contracts.Token
	registry *contracts.Registry
	checker  *compliance.Checker
	sessions *session.Store
	runner   *txflow.Runner
	notifier notify.Notifier
	log      *slog.Logger

	mu       sync.Mutex
	decimals int
	haveDec  bool
}

// InvestorOption configures an Investor.
type InvestorOption func(*Investor)

func WithInvestorLogger(log *slog.Logger) InvestorOption {
	return func(i *Investor) { i.log = log }
}

func WithInvestorNotifier(n notify.Notifier) InvestorOption {
	return func(i *Investor) { i.notifier = n }
}

func NewInvestor(token *contracts.Token, registry *contracts.Registry, checker *compliance.Checker, sessions *session.Store, runner *txflow.Runner, opts ...InvestorOption) *Investor {
	inv := &Investor{
		token:    token,
		registry: registry,
		checker:  checker,
		sessions: sessions,
		runner:   runner,
		notifier: notify.Func(func(notify.Notification) {}),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Overview assembles the investor read model for the session account. Token
// reads run in parallel and any failure fails the overview; the identity
// lookup degrades to absent so an unregistered investor still sees the token.
func (i *Investor) Overview(ctx context.Context) (Overview, error) {
	account, err := i.sessionAccount()
	if err != nil {
		return Overview{}, err
	}

	var (
		out     Overview
		supply  *big.Int
		balance *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		name, err := i.token.Name(gctx)
		out.TokenName = name
		return err
	})
	g.Go(func() error {
		symbol, err := i.token.Symbol(gctx)
		out.TokenSymbol = symbol
		return err
	})
	g.Go(func() error {
		dec, err := i.tokenDecimals(gctx)
		out.Decimals = dec
		return err
	})
	g.Go(func() error {
		var err error
		supply, err = i.token.TotalSupply(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		balance, err = i.token.BalanceOf(gctx, account)
		return err
	})
	g.Go(func() error {
		id, err := i.registry.Identity(gctx, account)
		if err != nil {
			if !errors.Is(err, sentinel.ErrNotFound) {
				i.log.Warn("identity lookup failed, rendering overview without it",
					"account", account.Hex(), "error", err)
			}
			return nil
		}
		out.Identity = identityView(id)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "token read failed")
	}

	out.TotalSupply = amount.Format(supply, out.Decimals)
	out.Balance = amount.Format(balance, out.Decimals)
	return out, nil
}

// Transfer runs the compliance-gated transfer flow. The identity gate and the
// preflight are advisory; the remote compliance module still decides at
// execution time, so passing them here never guarantees confirmation.
func (i *Investor) Transfer(ctx context.Context, to, amountStr string) (txflow.Operation, error) {
	from, err := i.sessionAccount()
	if err != nil {
		return txflow.Operation{}, err
	}
	if !common.IsHexAddress(to) {
		return txflow.Operation{}, dErrors.New(dErrors.CodeBadRequest, "recipient is not a valid address")
	}
	recipient := common.HexToAddress(to)

	dec, err := i.tokenDecimals(ctx)
	if err != nil {
		return txflow.Operation{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "token precision read failed")
	}
	value, err := amount.Parse(amountStr, dec)
	if err != nil {
		return txflow.Operation{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid amount")
	}

	identity, err := i.registry.Identity(ctx, from)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return txflow.Operation{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "identity lookup failed")
	}
	if !compliance.CanInitiateTransfer(identity) {
		notify.Error(i.notifier, string(txflow.OpTransfer), "Your identity must be verified before transferring")
		return txflow.Operation{}, dErrors.New(dErrors.CodeConflict, "sender identity is not verified")
	}
	if !i.checker.Preflight(ctx, from, recipient, value) {
		notify.Error(i.notifier, string(txflow.OpTransfer), "Transfer is not permitted by compliance policy")
		return txflow.Operation{}, dErrors.New(dErrors.CodeConflict, "transfer blocked by compliance policy")
	}

	return i.runner.Run(ctx, txflow.OpTransfer,
		func(ctx context.Context) (contracts.TxHandle, error) {
			return i.token.Transfer(ctx, recipient, value)
		},
		txflow.WithMessages("Submitting transfer...", "Transfer confirmed"),
		txflow.WithRefresh(func() { i.refreshBalance(ctx, from, dec) }),
	)
}

// refreshBalance re-reads the session account's balance after a confirmed
// movement. Best effort; a failed refresh only logs.
func (i *Investor) refreshBalance(ctx context.Context, account common.Address, decimals int) {
	bal, err := i.token.BalanceOf(ctx, account)
	if err != nil {
		i.log.Warn("balance refresh failed", "account", account.Hex(), "error", err)
		return
	}
	i.log.Info("balance refreshed",
		"account", account.Hex(), "balance", amount.Format(bal, decimals))
}

func (i *Investor) sessionAccount() (common.Address, error) {
	sess := i.sessions.Snapshot()
	if !sess.Connected() || sess.Account == nil {
		return common.Address{}, dErrors.New(dErrors.CodeConflict, "wallet session not connected")
	}
	return *sess.Account, nil
}

// tokenDecimals reads the token precision once and caches it; precision is
// immutable for a deployed token.
func (i *Investor) tokenDecimals(ctx context.Context) (int, error) {
	i.mu.Lock()
	if i.haveDec {
		dec := i.decimals
		i.mu.Unlock()
		return dec, nil
	}
	i.mu.Unlock()

	dec, err := i.token.Decimals(ctx)
	if err != nil {
		return 0, err
	}
	i.mu.Lock()
	i.decimals = int(dec)
	i.haveDec = true
	i.mu.Unlock()
	return int(dec), nil
}

func identityView(id *contracts.Identity) *IdentityView {
	if id == nil {
		return nil
	}
	view := &IdentityView{
		Country:    id.Country,
		Accredited: id.Accredited,
		Verified:   id.Verified,
	}
	if !id.VerifiedAt.IsZero() {
		at := id.VerifiedAt
		view.VerifiedAt = &at
	}
	return view
}
