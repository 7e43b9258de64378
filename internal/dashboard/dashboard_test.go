package dashboard

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tokengate/internal/compliance"
	"tokengate/internal/contracts"
	"tokengate/internal/contracts/contracttest"
	"tokengate/internal/notify"
	"tokengate/internal/roles"
	"tokengate/internal/session"
	"tokengate/internal/txflow"
	"tokengate/internal/wallet"
	"tokengate/internal/wallet/mocks"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/audit"
	auditmem "tokengate/pkg/platform/audit/store/memory"
)

const chainID = uint64(31337)

var (
	tokenAddr      = common.HexToAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	identityAddr   = common.HexToAddress("0x9fe46736679d2d9a65f0992f2272de9f3c7fa6e0")
	complianceAddr = common.HexToAddress("0xe7f1725e7734ce288f8367e1bb143e90bb3f0512")

	sessionAccount = common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	recipient      = common.HexToAddress("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")

	txHash = common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000aa")
)

type DashboardSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	fake     *contracttest.Fake
	recorder *notify.Recorder
	sessions *session.Store
	roleSvc  *roles.Service
	trail    *auditmem.Store
	investor *Investor
	admin    *Admin
	ctx      context.Context
}

func (s *DashboardSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.fake = contracttest.NewFake()
	s.recorder = notify.NewRecorder()

	bridge := mocks.NewMockBridge(s.ctrl)
	bridge.EXPECT().RequestAccounts(gomock.Any()).Return([]common.Address{sessionAccount}, nil)
	bridge.EXPECT().ChainID(gomock.Any()).Return(chainID, nil)
	s.sessions = session.New(bridge, chainID, wallet.ChainDescriptor{ChainID: chainID})
	s.Require().NoError(s.sessions.Connect(s.ctx))

	token := contracts.NewToken(s.fake, tokenAddr)
	registry := contracts.NewRegistry(s.fake, identityAddr)
	module := contracts.NewCompliance(s.fake, complianceAddr)
	checker := compliance.NewChecker(module)

	resolver := roles.NewResolver(token, registry)
	s.roleSvc = roles.NewService(resolver, func() (roles.Snapshot, bool) {
		return roles.SnapshotFrom(s.sessions.Snapshot())
	})

	runner := txflow.NewRunner(txflow.NewStore(), txflow.WithNotifier(s.recorder))
	s.trail = auditmem.New()

	s.investor = NewInvestor(token, registry, checker, s.sessions, runner,
		WithInvestorNotifier(s.recorder))
	s.admin = NewAdmin(token, registry, module, s.roleSvc, s.sessions, runner,
		WithAuditTrail(s.trail))

	// Token precision underlies every amount conversion.
	s.fake.ReturnCall(tokenAddr, "decimals", uint8(18))
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

// scaled returns the integer form of a decimal amount at 18 places.
func (s *DashboardSuite) scaled(whole int64, fracTenths int64) *big.Int {
	v := new(big.Int).Mul(big.NewInt(whole*10+fracTenths), new(big.Int).Exp(big.NewInt(10), big.NewInt(17), nil))
	return v
}

func (s *DashboardSuite) grantRoles(admin, issuer, agent bool) {
	s.fake.OnCall(tokenAddr, "hasRole", func(args []any) ([]any, error) {
		role := args[0].(common.Hash)
		switch role {
		case contracts.AdminRole:
			return []any{admin}, nil
		case contracts.IssuerRole:
			return []any{issuer}, nil
		}
		return []any{false}, nil
	})
	s.fake.OnCall(identityAddr, "hasRole", func(args []any) ([]any, error) {
		if args[0].(common.Hash) == contracts.AgentRole {
			return []any{agent}, nil
		}
		return []any{false}, nil
	})

	snap, ok := roles.SnapshotFrom(s.sessions.Snapshot())
	s.Require().True(ok)
	s.roleSvc.Refresh(s.ctx, snap)
}

func (s *DashboardSuite) scriptVerifiedIdentity(account common.Address) {
	s.fake.OnCall(identityAddr, "getIdentity", func(args []any) ([]any, error) {
		if args[0].(common.Address) == account {
			return []any{"US", true, true, big.NewInt(1700000000)}, nil
		}
		return nil, &contracts.RevertError{Reason: "identity not found"}
	})
}

func (s *DashboardSuite) TestOverview() {
	s.fake.ReturnCall(tokenAddr, "name", "Real World Asset Token")
	s.fake.ReturnCall(tokenAddr, "symbol", "RWA")
	s.fake.ReturnCall(tokenAddr, "totalSupply", s.scaled(1000, 0))
	s.fake.ReturnCall(tokenAddr, "balanceOf", s.scaled(12, 5))
	s.scriptVerifiedIdentity(sessionAccount)

	overview, err := s.investor.Overview(s.ctx)

	s.Require().NoError(err)
	s.Equal("Real World Asset Token", overview.TokenName)
	s.Equal("RWA", overview.TokenSymbol)
	s.Equal(18, overview.Decimals)
	s.Equal("1000", overview.TotalSupply)
	s.Equal("12.5", overview.Balance)
	s.Require().NotNil(overview.Identity)
	s.Equal("US", overview.Identity.Country)
	s.True(overview.Identity.Verified)
}

func (s *DashboardSuite) TestOverviewToleratesUnregisteredIdentity() {
	s.fake.ReturnCall(tokenAddr, "name", "Real World Asset Token")
	s.fake.ReturnCall(tokenAddr, "symbol", "RWA")
	s.fake.ReturnCall(tokenAddr, "totalSupply", s.scaled(1000, 0))
	s.fake.ReturnCall(tokenAddr, "balanceOf", big.NewInt(0))
	s.fake.FailCall(identityAddr, "getIdentity", &contracts.RevertError{Reason: "identity not found"})

	overview, err := s.investor.Overview(s.ctx)

	s.Require().NoError(err)
	s.Nil(overview.Identity)
	s.Equal("0", overview.Balance)
}

func (s *DashboardSuite) TestOverviewFailsWhenTokenUnreadable() {
	s.fake.FailCall(tokenAddr, "name", errors.New("connection refused"))
	s.fake.ReturnCall(tokenAddr, "symbol", "RWA")
	s.fake.ReturnCall(tokenAddr, "totalSupply", big.NewInt(0))
	s.fake.ReturnCall(tokenAddr, "balanceOf", big.NewInt(0))
	s.fake.FailCall(identityAddr, "getIdentity", &contracts.RevertError{Reason: "identity not found"})

	_, err := s.investor.Overview(s.ctx)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *DashboardSuite) TestOverviewRequiresSession() {
	s.sessions.Disconnect()

	_, err := s.investor.Overview(s.ctx)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *DashboardSuite) TestTransferConfirmedRefreshesBalance() {
	s.scriptVerifiedIdentity(sessionAccount)
	s.fake.ReturnCall(complianceAddr, "canTransfer", true)
	s.fake.ReturnCall(tokenAddr, "balanceOf", s.scaled(87, 5))
	s.fake.ReturnSend(tokenAddr, "transfer", &contracttest.Handle{TxHash: txHash})

	op, err := s.investor.Transfer(s.ctx, recipient.Hex(), "12.5")

	s.Require().NoError(err)
	s.Equal(txflow.StateConfirmed, op.State)
	s.Equal(txHash, op.TxHash)

	sends := s.fake.SendsTo(tokenAddr, "transfer")
	s.Require().Len(sends, 1)
	s.Equal(recipient, sends[0].Args[0])
	s.Equal(0, s.scaled(12, 5).Cmp(sends[0].Args[1].(*big.Int)))

	refreshed := 0
	for _, call := range s.fake.Calls {
		if call.Method == "balanceOf" {
			refreshed++
		}
	}
	s.Equal(1, refreshed, "confirmation reloads the balance once")
}

func (s *DashboardSuite) TestTransferBlockedWithoutVerifiedIdentity() {
	s.fake.OnCall(identityAddr, "getIdentity", func([]any) ([]any, error) {
		return []any{"US", true, false, big.NewInt(0)}, nil
	})

	_, err := s.investor.Transfer(s.ctx, recipient.Hex(), "1")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Empty(s.fake.Sends, "a blocked transfer must not reach the chain")
}

func (s *DashboardSuite) TestTransferBlockedByPreflight() {
	s.scriptVerifiedIdentity(sessionAccount)
	s.fake.ReturnCall(complianceAddr, "canTransfer", false)

	_, err := s.investor.Transfer(s.ctx, recipient.Hex(), "1")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Empty(s.fake.Sends)
}

// A failed preflight read defers to remote enforcement instead of blocking.
func (s *DashboardSuite) TestTransferPreflightReadFailureDegrades() {
	s.scriptVerifiedIdentity(sessionAccount)
	s.fake.FailCall(complianceAddr, "canTransfer", errors.New("connection refused"))
	s.fake.ReturnCall(tokenAddr, "balanceOf", big.NewInt(0))
	s.fake.ReturnSend(tokenAddr, "transfer", &contracttest.Handle{TxHash: txHash})

	op, err := s.investor.Transfer(s.ctx, recipient.Hex(), "1")

	s.Require().NoError(err)
	s.Equal(txflow.StateConfirmed, op.State)
}

func (s *DashboardSuite) TestTransferRejectsBadInput() {
	_, err := s.investor.Transfer(s.ctx, "not-an-address", "1")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	s.scriptVerifiedIdentity(sessionAccount)
	_, err = s.investor.Transfer(s.ctx, recipient.Hex(), "12.5.1")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *DashboardSuite) TestIssueConfirmedAndAudited() {
	s.grantRoles(false, true, false)
	s.fake.ReturnSend(tokenAddr, "issue", &contracttest.Handle{TxHash: txHash})

	op, err := s.admin.Issue(s.ctx, recipient.Hex(), "100")

	s.Require().NoError(err)
	s.Equal(txflow.StateConfirmed, op.State)

	sends := s.fake.SendsTo(tokenAddr, "issue")
	s.Require().Len(sends, 1)
	s.Equal(recipient, sends[0].Args[0])

	events, err := s.trail.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionTokenIssued, events[0].Action)
	s.Equal(sessionAccount.Hex(), events[0].Actor)
	s.Equal(recipient.Hex(), events[0].Subject)
	s.Equal("100", events[0].Amount)
	s.Equal("confirmed", events[0].Outcome)
	s.Equal(txHash.Hex(), events[0].TxHash)
}

func (s *DashboardSuite) TestIssueDeniedWithoutRole() {
	s.grantRoles(false, false, false)

	_, err := s.admin.Issue(s.ctx, recipient.Hex(), "100")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Empty(s.fake.Sends)

	events, listErr := s.trail.List(s.ctx)
	s.Require().NoError(listErr)
	s.Empty(events, "a locally rejected action never reached the chain and is not audited")
}

// Before resolution settles, writes go through; authorization stays remote.
func (s *DashboardSuite) TestIssueProceedsWhileRolesUnsettled() {
	s.fake.ReturnSend(tokenAddr, "issue", &contracttest.Handle{TxHash: txHash})

	op, err := s.admin.Issue(s.ctx, recipient.Hex(), "100")

	s.Require().NoError(err)
	s.Equal(txflow.StateConfirmed, op.State)
}

func (s *DashboardSuite) TestRedeemFailureAudited() {
	s.grantRoles(false, true, false)
	s.fake.ReturnSend(tokenAddr, "redeem", &contracttest.Handle{
		TxHash:  txHash,
		WaitErr: &contracts.RevertError{Reason: "insufficient balance"},
	})

	op, err := s.admin.Redeem(s.ctx, "50")

	s.Require().Error(err)
	s.Equal(txflow.StateFailed, op.State)

	events, listErr := s.trail.List(s.ctx)
	s.Require().NoError(listErr)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionTokenRedeemed, events[0].Action)
	s.Equal("failed", events[0].Outcome)
	s.Equal("insufficient balance", events[0].Reason)
}

func (s *DashboardSuite) TestRegisterIdentity() {
	s.grantRoles(false, false, true)
	s.fake.ReturnSend(identityAddr, "registerIdentity", &contracttest.Handle{TxHash: txHash})

	op, err := s.admin.RegisterIdentity(s.ctx, recipient.Hex(), "de", true)

	s.Require().NoError(err)
	s.Equal(txflow.StateConfirmed, op.State)

	sends := s.fake.SendsTo(identityAddr, "registerIdentity")
	s.Require().Len(sends, 1)
	s.Equal(recipient, sends[0].Args[0])
	s.Equal("DE", sends[0].Args[1])
	s.Equal(true, sends[0].Args[2])
}

func (s *DashboardSuite) TestSetRestrictionNormalizesCountry() {
	s.grantRoles(true, false, false)
	s.fake.ReturnSend(complianceAddr, "setTransferRestriction", &contracttest.Handle{TxHash: txHash})

	_, err := s.admin.SetRestriction(s.ctx, " kp ", false)

	s.Require().NoError(err)
	sends := s.fake.SendsTo(complianceAddr, "setTransferRestriction")
	s.Require().Len(sends, 1)
	s.Equal("KP", sends[0].Args[0])
	s.Equal(false, sends[0].Args[1])

	events, listErr := s.trail.List(s.ctx)
	s.Require().NoError(listErr)
	s.Require().Len(events, 1)
	s.Equal("KP", events[0].Subject)
}

func (s *DashboardSuite) TestSetRestrictionRequiresCountry() {
	_, err := s.admin.SetRestriction(s.ctx, "   ", false)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *DashboardSuite) TestRestrictionReadBack() {
	s.fake.ReturnCall(complianceAddr, "getTransferRestriction", true)

	allowed, err := s.admin.Restriction(s.ctx, "us")

	s.Require().NoError(err)
	s.True(allowed)
}

func (s *DashboardSuite) TestRolesViewUnsettledByDefault() {
	view := s.admin.Roles()
	s.False(view.Settled)

	s.grantRoles(true, true, false)
	view = s.admin.Roles()
	s.True(view.Settled)
	s.True(view.Roles.Admin)
	s.True(view.Roles.Issuer)
	s.False(view.Roles.Agent)
}
