package config

import (
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

// Currency describes the native currency advertised when registering the
// expected network with the wallet.
type Currency struct {
	Name     string
	Symbol   string
	Decimals int
}

// Network is the descriptor handed to the wallet when it does not know the
// expected chain yet.
type Network struct {
	ChainID  uint64
	Name     string
	Currency Currency
	RPCURL   string
}

// Server captures all static configuration. One expected chain, three service
// addresses; anything beyond that is out of scope.
type Server struct {
	Addr           string
	ChainID        uint64
	TokenAddr      common.Address
	IdentityAddr   common.Address
	ComplianceAddr common.Address
	Network        Network
}

// Defaults point at a local Anvil deployment so a dev checkout runs without
// any environment set.
const (
	defaultAddr           = ":8080"
	defaultChainID        = 31337
	defaultTokenAddr      = "0x5fbdb2315678afecb367f032d93f642f64180aa3"
	defaultIdentityAddr   = "0x9fe46736679d2d9a65f0992f2272de9f3c7fa6e0"
	defaultComplianceAddr = "0xe7f1725e7734ce288f8367e1bb143e90bb3f0512"
	defaultNetworkName    = "Anvil Local"
	defaultRPCURL         = "http://127.0.0.1:8545"
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	chainID := envUint("TOKENGATE_CHAIN_ID", defaultChainID)
	return Server{
		Addr:           envString("TOKENGATE_ADDR", defaultAddr),
		ChainID:        chainID,
		TokenAddr:      common.HexToAddress(envString("TOKENGATE_TOKEN_ADDR", defaultTokenAddr)),
		IdentityAddr:   common.HexToAddress(envString("TOKENGATE_IDENTITY_ADDR", defaultIdentityAddr)),
		ComplianceAddr: common.HexToAddress(envString("TOKENGATE_COMPLIANCE_ADDR", defaultComplianceAddr)),
		Network: Network{
			ChainID: chainID,
			Name:    envString("TOKENGATE_NETWORK_NAME", defaultNetworkName),
			Currency: Currency{
				Name:     "Ethereum",
				Symbol:   "ETH",
				Decimals: 18,
			},
			RPCURL: envString("TOKENGATE_RPC_URL", defaultRPCURL),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
