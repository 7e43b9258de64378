package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Capability adapters and contract
// services return these (optionally wrapped) so components can translate them
// into domain errors.
//
// These represent factual states about external resources, not validation
// failures:
// - ErrNotFound: entity does not exist remotely (e.g. unregistered identity)
// - ErrUnavailable: capability or remote service missing or unreachable
// - ErrInvalidState: resource in wrong state for the requested operation
// - ErrConflict: concurrent mutation lost the race
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
