package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tokengate/internal/compliance"
	"tokengate/internal/contracts"
	"tokengate/internal/contracts/ethcaller"
	"tokengate/internal/dashboard"
	"tokengate/internal/notify"
	"tokengate/internal/platform/config"
	"tokengate/internal/platform/httpserver"
	"tokengate/internal/platform/logger"
	"tokengate/internal/platform/metrics"
	"tokengate/internal/roles"
	"tokengate/internal/session"
	httptransport "tokengate/internal/transport/http"
	"tokengate/internal/txflow"
	"tokengate/internal/wallet"
	"tokengate/internal/wallet/nodebridge"
	auditmem "tokengate/pkg/platform/audit/store/memory"
)

// main wires the capabilities together and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()
	notifier := notify.NewLogger(log)

	ctx := context.Background()

	// A missing node degrades the wallet capability rather than aborting
	// startup; session endpoints then report unavailability.
	var bridge wallet.Bridge
	if nb, err := nodebridge.Dial(ctx, cfg.Network.RPCURL); err != nil {
		log.Warn("wallet bridge unavailable", "rpc_url", cfg.Network.RPCURL, "error", err)
	} else {
		bridge = nb
		defer nb.Close()
	}

	caller, err := ethcaller.Dial(ctx, cfg.Network.RPCURL, ethcaller.WithLogger(log))
	if err != nil {
		log.Error("contract caller setup failed", "rpc_url", cfg.Network.RPCURL, "error", err)
		os.Exit(1)
	}

	token := contracts.NewToken(caller, cfg.TokenAddr)
	registry := contracts.NewRegistry(caller, cfg.IdentityAddr)
	module := contracts.NewCompliance(caller, cfg.ComplianceAddr)

	sessions := session.New(bridge, cfg.ChainID, descriptorFrom(cfg.Network),
		session.WithLogger(log),
		session.WithNotifier(notifier),
		session.WithMetrics(m),
	)
	release := sessions.Attach()
	defer release()

	resolver := roles.NewResolver(token, registry, roles.WithResolverLogger(log))
	roleSvc := roles.NewService(resolver,
		func() (roles.Snapshot, bool) { return roles.SnapshotFrom(sessions.Snapshot()) },
		roles.WithServiceLogger(log),
		roles.WithServiceMetrics(m),
	)
	sessions.OnChange(roleSvc.HandleSessionChange)
	sessions.OnChange(func(sess session.Session) {
		if sess.Account != nil {
			caller.SetFrom(*sess.Account)
			return
		}
		caller.ClearFrom()
	})

	ops := txflow.NewStore()
	runner := txflow.NewRunner(ops,
		txflow.WithLogger(log),
		txflow.WithNotifier(notifier),
		txflow.WithMetrics(m),
	)

	checker := compliance.NewChecker(module, compliance.WithLogger(log))
	trail := auditmem.New()
	investor := dashboard.NewInvestor(token, registry, checker, sessions, runner,
		dashboard.WithInvestorLogger(log),
		dashboard.WithInvestorNotifier(notifier),
	)
	admin := dashboard.NewAdmin(token, registry, module, roleSvc, sessions, runner,
		dashboard.WithAdminLogger(log),
		dashboard.WithAuditTrail(trail),
	)

	router := httptransport.NewRouter(
		httptransport.NewSessionHandler(sessions, log),
		httptransport.NewInvestorHandler(investor, log),
		httptransport.NewAdminHandler(admin, log),
		httptransport.NewOperationsHandler(ops),
	)

	// Reconnect silently if the node already exposes accounts.
	sessions.Resume(ctx)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting tokengate", "addr", cfg.Addr, "chain_id", cfg.ChainID)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func descriptorFrom(network config.Network) wallet.ChainDescriptor {
	return wallet.ChainDescriptor{
		ChainID: network.ChainID,
		Name:    network.Name,
		NativeCurrency: wallet.Currency{
			Name:     network.Currency.Name,
			Symbol:   network.Currency.Symbol,
			Decimals: network.Currency.Decimals,
		},
		RPCURL: network.RPCURL,
	}
}
