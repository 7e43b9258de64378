package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the gateway. One instance per
// process; components that record metrics receive it at construction.
type Metrics struct {
	WalletConnects        prometheus.Counter
	WalletDisconnects     prometheus.Counter
	NetworkSwitches       prometheus.Counter
	RoleResolutions       prometheus.Counter
	StaleResolutionsDrops prometheus.Counter
	OperationsSubmitted   *prometheus.CounterVec
	OperationsConfirmed   *prometheus.CounterVec
	OperationsFailed      *prometheus.CounterVec
}

// New creates and registers all gateway metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		WalletConnects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_wallet_connects_total",
			Help: "Successful wallet session connections",
		}),
		WalletDisconnects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_wallet_disconnects_total",
			Help: "Wallet session disconnections, explicit or wallet-initiated",
		}),
		NetworkSwitches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_network_switches_total",
			Help: "Successful switches to the expected network",
		}),
		RoleResolutions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_role_resolutions_total",
			Help: "Completed role resolutions, including discarded ones",
		}),
		StaleResolutionsDrops: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_stale_role_resolutions_dropped_total",
			Help: "Role resolutions discarded because the session changed mid-flight",
		}),
		OperationsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tokengate_operations_submitted_total",
			Help: "Write operations submitted to the network",
		}, []string{"operation"}),
		OperationsConfirmed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tokengate_operations_confirmed_total",
			Help: "Write operations confirmed on the network",
		}, []string{"operation"}),
		OperationsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tokengate_operations_failed_total",
			Help: "Write operations rejected or reverted",
		}, []string{"operation"}),
	}
}
