package txflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tokengate/internal/contracts"
	"tokengate/internal/notify"
	"tokengate/internal/platform/metrics"
	"tokengate/internal/wallet"
	dErrors "tokengate/pkg/domain-errors"
)

// Runner drives operations through submit → pending → terminal, reporting
// keyed status along the way. Every invocation emits exactly one terminal
// notification, whether or not its record was superseded in the meantime.
//
// Re-invoking an OpID while a prior invocation is still pending is
// deliberately not prevented: both remote calls proceed independently, and
// the newer one owns the status record. Callers wanting mutual exclusion
// must serialize themselves (see DESIGN.md on the inherited double-submit
// behavior).
type Runner struct {
	ops      *Store
	notifier notify.Notifier
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Runner.
type Option func(*Runner)

func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

func WithNotifier(n notify.Notifier) Option {
	return func(r *Runner) { r.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

func NewRunner(ops *Store, opts ...Option) *Runner {
	r := &Runner{
		ops:      ops,
		notifier: notify.Func(func(notify.Notification) {}),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// runConfig carries per-invocation settings.
type runConfig struct {
	pendingText string
	successText string
	refresh     func()
}

// RunOption configures one Run invocation.
type RunOption func(*runConfig)

// WithMessages overrides the default pending/success notification texts.
func WithMessages(pending, success string) RunOption {
	return func(c *runConfig) {
		c.pendingText = pending
		c.successText = success
	}
}

// WithRefresh registers a callback fired once after confirmation, e.g. to
// reload a balance. Fire-and-forget: its outcome does not affect the
// operation's terminal state.
func WithRefresh(fn func()) RunOption {
	return func(c *runConfig) { c.refresh = fn }
}

// Run executes one operation invocation. submit performs the remote write
// and returns the in-flight handle; Run then waits for inclusion. The
// returned Operation reflects this invocation's outcome even if a newer
// invocation superseded the shared record.
func (r *Runner) Run(ctx context.Context, id OpID, submit func(ctx context.Context) (contracts.TxHandle, error), opts ...RunOption) (Operation, error) {
	cfg := runConfig{
		pendingText: "Transaction pending...",
		successText: "Transaction confirmed",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	token := r.ops.Begin(id)
	notify.Pending(r.notifier, string(id), cfg.pendingText)

	// out mirrors this invocation's own progress; the shared record may
	// meanwhile be superseded by a newer invocation of the same kind.
	out := Operation{ID: id, State: StateSubmitting, UpdatedAt: time.Now().UTC()}

	handle, err := submit(ctx)
	if err != nil {
		return r.fail(out, token, err)
	}
	out.TxHash = handle.Hash()
	out.State = StatePending
	r.ops.SetTxHash(id, token, handle.Hash())
	r.ops.Transition(id, token, StatePending, "")
	if r.metrics != nil {
		r.metrics.OperationsSubmitted.WithLabelValues(string(id)).Inc()
	}

	if err := handle.Wait(ctx); err != nil {
		return r.fail(out, token, err)
	}

	out.State = StateConfirmed
	out.UpdatedAt = time.Now().UTC()
	r.ops.Transition(id, token, StateConfirmed, "")
	if r.metrics != nil {
		r.metrics.OperationsConfirmed.WithLabelValues(string(id)).Inc()
	}
	notify.Success(r.notifier, string(id), cfg.successText)

	if cfg.refresh != nil {
		cfg.refresh()
	}
	return out, nil
}

func (r *Runner) fail(out Operation, token uuid.UUID, err error) (Operation, error) {
	msg := failureMessage(err)
	out.State = StateFailed
	out.Error = msg
	out.UpdatedAt = time.Now().UTC()
	r.ops.Transition(out.ID, token, StateFailed, msg)
	r.log.Warn("operation failed", "operation", string(out.ID), "error", err)
	if r.metrics != nil {
		r.metrics.OperationsFailed.WithLabelValues(string(out.ID)).Inc()
	}
	notify.Error(r.notifier, string(out.ID), msg)

	if wallet.IsUserRejection(err) {
		return out, dErrors.Wrap(err, dErrors.CodeRejected, msg)
	}
	return out, dErrors.Wrap(err, dErrors.CodeConflict, msg)
}

// failureMessage prefers a structured revert reason over the generic error
// text, mirroring how the remote services surface rejection causes.
func failureMessage(err error) string {
	if reason, ok := contracts.RevertReason(err); ok {
		return reason
	}
	if wallet.IsUserRejection(err) {
		return "Transaction rejected in wallet"
	}
	return err.Error()
}
