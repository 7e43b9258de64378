package dashboard

import (
	"context"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"tokengate/internal/contracts"
	"tokengate/internal/roles"
	"tokengate/internal/session"
	"tokengate/internal/txflow"
	"tokengate/pkg/amount"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/audit"
)

// RolesView reports the resolved capability set for the current session.
// Settled is false while resolution is in flight or no wallet is attached;
// callers must treat an unsettled set as "unknown", not "none".
type RolesView struct {
	Settled bool          `json:"settled"`
	Roles   roles.RoleSet `json:"roles"`
}

// Admin serves the privileged dashboard: issuance, redemption, identity
// registration and country restrictions. Role checks here are advisory
// UI gating only; every write is authorized remotely at execution time.
type Admin struct {
	token    *contracts.Token
	registry *contracts.Registry
	module   *contracts.Compliance
	roles    *roles.Service
	sessions *session.Store
	runner   *txflow.Runner
	trail    audit.Trail
	log      *slog.Logger

	mu       sync.Mutex
	decimals int
	haveDec  bool
}

// AdminOption configures an Admin.
type AdminOption func(*Admin)

func WithAdminLogger(log *slog.Logger) AdminOption {
	return func(a *Admin) { a.log = log }
}

// WithAuditTrail records privileged writes to the given trail.
func WithAuditTrail(trail audit.Trail) AdminOption {
	return func(a *Admin) { a.trail = trail }
}

func NewAdmin(token *contracts.Token, registry *contracts.Registry, module *contracts.Compliance, roleSvc *roles.Service, sessions *session.Store, runner *txflow.Runner, opts ...AdminOption) *Admin {
	adm := &Admin{
		token:    token,
		registry: registry,
		module:   module,
		roles:    roleSvc,
		sessions: sessions,
		runner:   runner,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(adm)
	}
	return adm
}

// Roles returns the capability view for the session account.
func (a *Admin) Roles() RolesView {
	set, settled := a.roles.Roles()
	return RolesView{Settled: settled, Roles: set}
}

// Issue mints tokens to a recipient. Requires the issuer capability when the
// role set has settled; an unsettled set defers entirely to remote
// enforcement.
func (a *Admin) Issue(ctx context.Context, to, amountStr string) (txflow.Operation, error) {
	if _, err := a.sessionAccount(); err != nil {
		return txflow.Operation{}, err
	}
	if !common.IsHexAddress(to) {
		return txflow.Operation{}, dErrors.New(dErrors.CodeBadRequest, "recipient is not a valid address")
	}
	recipient := common.HexToAddress(to)
	if err := a.requireRole("issuer", func(set roles.RoleSet) bool { return set.Issuer }); err != nil {
		return txflow.Operation{}, err
	}
	value, err := a.parseAmount(ctx, amountStr)
	if err != nil {
		return txflow.Operation{}, err
	}

	op, err := a.runner.Run(ctx, txflow.OpIssue,
		func(ctx context.Context) (contracts.TxHandle, error) {
			return a.token.Issue(ctx, recipient, value)
		},
		txflow.WithMessages("Issuing tokens...", "Tokens issued"),
	)
	a.record(ctx, audit.ActionTokenIssued, recipient.Hex(), amountStr, op, err)
	return op, err
}

// Redeem burns tokens from the session account's balance.
func (a *Admin) Redeem(ctx context.Context, amountStr string) (txflow.Operation, error) {
	actor, err := a.sessionAccount()
	if err != nil {
		return txflow.Operation{}, err
	}
	if err := a.requireRole("issuer", func(set roles.RoleSet) bool { return set.Issuer }); err != nil {
		return txflow.Operation{}, err
	}
	value, err := a.parseAmount(ctx, amountStr)
	if err != nil {
		return txflow.Operation{}, err
	}

	op, err := a.runner.Run(ctx, txflow.OpRedeem,
		func(ctx context.Context) (contracts.TxHandle, error) {
			return a.token.Redeem(ctx, value)
		},
		txflow.WithMessages("Redeeming tokens...", "Tokens redeemed"),
	)
	a.record(ctx, audit.ActionTokenRedeemed, actor.Hex(), amountStr, op, err)
	return op, err
}

// RegisterIdentity records an investor identity in the registry.
func (a *Admin) RegisterIdentity(ctx context.Context, account, country string, accredited bool) (txflow.Operation, error) {
	if _, err := a.sessionAccount(); err != nil {
		return txflow.Operation{}, err
	}
	if !common.IsHexAddress(account) {
		return txflow.Operation{}, dErrors.New(dErrors.CodeBadRequest, "account is not a valid address")
	}
	subject := common.HexToAddress(account)
	code, err := countryCode(country)
	if err != nil {
		return txflow.Operation{}, err
	}
	if err := a.requireRole("agent", func(set roles.RoleSet) bool { return set.Agent }); err != nil {
		return txflow.Operation{}, err
	}

	op, err := a.runner.Run(ctx, txflow.OpIdentity,
		func(ctx context.Context) (contracts.TxHandle, error) {
			return a.registry.Register(ctx, subject, code, accredited)
		},
		txflow.WithMessages("Registering identity...", "Identity registered"),
	)
	a.record(ctx, audit.ActionIdentitySet, subject.Hex(), "", op, err)
	return op, err
}

// SetRestriction writes a country-level transfer restriction. The only local
// validation is a non-empty country code; whether the code is meaningful is
// the compliance module's business.
func (a *Admin) SetRestriction(ctx context.Context, country string, allowed bool) (txflow.Operation, error) {
	if _, err := a.sessionAccount(); err != nil {
		return txflow.Operation{}, err
	}
	code, err := countryCode(country)
	if err != nil {
		return txflow.Operation{}, err
	}
	if err := a.requireRole("admin", func(set roles.RoleSet) bool { return set.Admin }); err != nil {
		return txflow.Operation{}, err
	}

	op, err := a.runner.Run(ctx, txflow.OpRestriction,
		func(ctx context.Context) (contracts.TxHandle, error) {
			return a.module.SetRestriction(ctx, code, allowed)
		},
		txflow.WithMessages("Updating restriction...", "Restriction updated"),
	)
	a.record(ctx, audit.ActionRestrictionSet, code, "", op, err)
	return op, err
}

// Restriction reads back the allowed flag for a country code.
func (a *Admin) Restriction(ctx context.Context, country string) (bool, error) {
	code, err := countryCode(country)
	if err != nil {
		return false, err
	}
	allowed, err := a.module.Restriction(ctx, code)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "restriction read failed")
	}
	return allowed, nil
}

// AuditTrail lists the recorded privileged actions, oldest first.
func (a *Admin) AuditTrail(ctx context.Context) ([]audit.Event, error) {
	if a.trail == nil {
		return nil, nil
	}
	events, err := a.trail.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "audit trail read failed")
	}
	return events, nil
}

func (a *Admin) sessionAccount() (common.Address, error) {
	sess := a.sessions.Snapshot()
	if !sess.Connected() || sess.Account == nil {
		return common.Address{}, dErrors.New(dErrors.CodeConflict, "wallet session not connected")
	}
	return *sess.Account, nil
}

// requireRole rejects early when the settled role set lacks the capability.
// An unsettled set lets the call through; the remote contract is the
// authority either way.
func (a *Admin) requireRole(name string, has func(roles.RoleSet) bool) error {
	set, settled := a.roles.Roles()
	if settled && !has(set) {
		return dErrors.New(dErrors.CodeConflict, name+" role required")
	}
	return nil
}

func (a *Admin) parseAmount(ctx context.Context, amountStr string) (*big.Int, error) {
	dec, err := a.tokenDecimals(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "token precision read failed")
	}
	v, err := amount.Parse(amountStr, dec)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid amount")
	}
	return v, nil
}

func (a *Admin) tokenDecimals(ctx context.Context) (int, error) {
	a.mu.Lock()
	if a.haveDec {
		dec := a.decimals
		a.mu.Unlock()
		return dec, nil
	}
	a.mu.Unlock()

	dec, err := a.token.Decimals(ctx)
	if err != nil {
		return 0, err
	}
	a.mu.Lock()
	a.decimals = int(dec)
	a.haveDec = true
	a.mu.Unlock()
	return int(dec), nil
}

// record appends a trail event for a finished privileged write. Trail
// failures only log; auditing must never mask the operation outcome.
func (a *Admin) record(ctx context.Context, action audit.Action, subject, amountStr string, op txflow.Operation, runErr error) {
	if a.trail == nil {
		return
	}
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Subject:   subject,
		Amount:    amountStr,
		Outcome:   "confirmed",
	}
	if sess := a.sessions.Snapshot(); sess.Account != nil {
		event.Actor = sess.Account.Hex()
	}
	if op.TxHash != (common.Hash{}) {
		event.TxHash = op.TxHash.Hex()
	}
	if runErr != nil {
		event.Outcome = "failed"
		event.Reason = op.Error
	}
	if err := a.trail.Append(ctx, event); err != nil {
		a.log.Warn("audit append failed", "action", string(action), "error", err)
	}
}

func countryCode(country string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(country))
	if code == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "country code required")
	}
	return code, nil
}
