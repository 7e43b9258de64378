package txflow

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"tokengate/internal/contracts"
	"tokengate/internal/contracts/contracttest"
	"tokengate/internal/notify"
	"tokengate/internal/wallet"
	dErrors "tokengate/pkg/domain-errors"
)

var txHash = common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000f1")

type RunnerSuite struct {
	suite.Suite
	ops      *Store
	recorder *notify.Recorder
	runner   *Runner
	ctx      context.Context
}

func (s *RunnerSuite) SetupTest() {
	s.ops = NewStore()
	s.recorder = notify.NewRecorder()
	s.runner = NewRunner(s.ops, WithNotifier(s.recorder))
	s.ctx = context.Background()
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) submitHandle(h *contracttest.Handle) func(context.Context) (contracts.TxHandle, error) {
	return func(context.Context) (contracts.TxHandle, error) {
		return h, nil
	}
}

func (s *RunnerSuite) TestConfirmedLifecycle() {
	refreshed := 0
	handle := &contracttest.Handle{TxHash: txHash}

	op, err := s.runner.Run(s.ctx, OpIssue, s.submitHandle(handle), WithRefresh(func() { refreshed++ }))

	s.Require().NoError(err)
	s.Equal(StateConfirmed, op.State)
	s.Equal(txHash, op.TxHash)
	s.Equal(1, refreshed, "refresh callback fires exactly once after confirmation")

	stored, ok := s.ops.Get(OpIssue)
	s.True(ok)
	s.Equal(StateConfirmed, stored.State)

	terminal := s.recorder.Terminal(string(OpIssue))
	s.Require().Len(terminal, 1, "exactly one terminal notification per invocation")
	s.Equal(notify.KindSuccess, terminal[0].Kind)
}

func (s *RunnerSuite) TestSubmissionFailure() {
	refreshed := 0
	op, err := s.runner.Run(s.ctx, OpTransfer, func(context.Context) (contracts.TxHandle, error) {
		return nil, errors.New("nonce too low")
	}, WithRefresh(func() { refreshed++ }))

	s.Require().Error(err)
	s.Equal(StateFailed, op.State)
	s.Equal("nonce too low", op.Error)
	s.Zero(refreshed, "refresh must not fire on failure")

	terminal := s.recorder.Terminal(string(OpTransfer))
	s.Require().Len(terminal, 1)
	s.Equal(notify.KindError, terminal[0].Kind)
}

func (s *RunnerSuite) TestRevertReasonPreferred() {
	handle := &contracttest.Handle{
		TxHash:  txHash,
		WaitErr: &contracts.RevertError{Reason: "country restricted"},
	}

	op, err := s.runner.Run(s.ctx, OpTransfer, s.submitHandle(handle))

	s.Require().Error(err)
	s.Equal("country restricted", op.Error, "structured revert reason wins over generic text")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *RunnerSuite) TestUserRejectionIsCoded() {
	_, err := s.runner.Run(s.ctx, OpRedeem, func(context.Context) (contracts.TxHandle, error) {
		return nil, &wallet.RPCError{Code: wallet.CodeUserRejected, Message: "denied"}
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRejected))
}

// A newer invocation owns the shared record; the older one still finishes
// and reports its own terminal notification, but cannot rewrite the record.
func (s *RunnerSuite) TestSupersededInvocationCannotRewriteRecord() {
	gate := make(chan struct{})
	entered := make(chan struct{})
	slow := &contracttest.Handle{
		TxHash: txHash,
		WaitFn: func(ctx context.Context) error {
			close(entered)
			<-gate
			return errors.New("reverted late")
		},
	}

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = s.runner.Run(s.ctx, OpIssue, s.submitHandle(slow))
	}()
	<-entered

	// Second invocation of the same kind confirms while the first hangs.
	fast := &contracttest.Handle{TxHash: txHash}
	op, err := s.runner.Run(s.ctx, OpIssue, s.submitHandle(fast))
	s.Require().NoError(err)
	s.Equal(StateConfirmed, op.State)

	close(gate)
	<-firstDone

	stored, _ := s.ops.Get(OpIssue)
	s.Equal(StateConfirmed, stored.State, "late failure of a superseded invocation must not regress the record")
	s.Empty(stored.Error)

	// Both invocations emitted their own terminal notification.
	s.Len(s.recorder.Terminal(string(OpIssue)), 2)
}

func (s *RunnerSuite) TestStoreTransitionsAreMonotonic() {
	token := s.ops.Begin(OpRestriction)

	s.True(s.ops.Transition(OpRestriction, token, StatePending, ""))
	s.True(s.ops.Transition(OpRestriction, token, StateConfirmed, ""))

	s.False(s.ops.Transition(OpRestriction, token, StatePending, ""), "no backward transition")
	s.False(s.ops.Transition(OpRestriction, token, StateFailed, "late"), "terminal states never replace each other")

	op, _ := s.ops.Get(OpRestriction)
	s.Equal(StateConfirmed, op.State)
}

func (s *RunnerSuite) TestStoreUnknownOperationIsIdle() {
	op, ok := s.ops.Get(OpIdentity)
	s.False(ok)
	s.Equal(StateIdle, op.State)
}
