package contracts

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Role identifiers as the access-control registries define them: the default
// admin role is the zero hash, named roles are the keccak hash of their name.
var (
	AdminRole  = common.Hash{}
	IssuerRole = crypto.Keccak256Hash([]byte("ISSUER_ROLE"))
	AgentRole  = crypto.Keccak256Hash([]byte("AGENT_ROLE"))
)
