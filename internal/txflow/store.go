package txflow

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Store holds the Operation records, one per OpID, guarded by a mutex.
// Records are mutated only through invocation tokens so a superseded or
// late-arriving invocation can never rewrite history:
//   - a new Begin supersedes the record; the prior invocation's token goes
//     stale and all its further transitions are dropped on arrival,
//   - transitions are monotonic; a terminal record never regresses.
type Store struct {
	mu      sync.RWMutex
	records map[OpID]*record
}

type record struct {
	op    Operation
	token uuid.UUID
}

func NewStore() *Store {
	return &Store{records: make(map[OpID]*record)}
}

// Begin starts a new invocation for the given kind, superseding any prior
// record, and returns the token the invocation must use for transitions.
func (s *Store) Begin(id OpID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.New()
	s.records[id] = &record{
		op: Operation{
			ID:        id,
			State:     StateSubmitting,
			UpdatedAt: time.Now().UTC(),
		},
		token: token,
	}
	return token
}

// Transition advances the record if the token is still current and the move
// is forward. Returns whether the transition was applied; a false return is
// normal for superseded invocations, not an error.
func (s *Store) Transition(id OpID, token uuid.UUID, state OpState, errMsg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok || rec.token != token {
		return false
	}
	if state.rank() <= rec.op.State.rank() {
		return false
	}
	rec.op.State = state
	rec.op.Error = errMsg
	rec.op.UpdatedAt = time.Now().UTC()
	return true
}

// SetTxHash records the submitted transaction hash if the token is current.
func (s *Store) SetTxHash(id OpID, token uuid.UUID, hash common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok || rec.token != token {
		return
	}
	rec.op.TxHash = hash
}

// Get returns the current record for a kind; ok is false if the kind was
// never invoked.
func (s *Store) Get(id OpID) (Operation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Operation{ID: id, State: StateIdle}, false
	}
	return rec.op, true
}

// All returns every known record.
func (s *Store) All() []Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Operation, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.op)
	}
	return out
}
