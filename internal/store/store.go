// Package store persists in-flight session state between gateway
// interactions. Backends share one contract so deployments can pick
// in-memory, Redis, or embedded Badger without touching the flow layer.
package store

import (
	"context"
	"errors"
	"time"
)

// Phase names the stage a session flow is in.
type Phase string

const (
	PhaseInitial    Phase = "initial"
	PhaseCollecting Phase = "collecting"
	PhaseConfirming Phase = "confirming"
	PhaseComplete   Phase = "complete"
)

// ErrNotFound is returned by Get when no state exists for the session,
// whether never written, deleted, or expired. All three look the same to
// callers on purpose.
var ErrNotFound = errors.New("session not found")

// Session is the state persisted between interactions of one session.
// Next indexes the field currently being collected; Values holds every
// input accepted so far, keyed by field name.
type Session struct {
	SessionID string            `json:"session_id"`
	Phase     Phase             `json:"phase"`
	Next      int               `json:"next"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewSession returns a fresh session in the initial phase.
func NewSession(sessionID string) *Session {
	now := time.Now()
	return &Session{
		SessionID: sessionID,
		Phase:     PhaseInitial,
		Values:    make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the activity timestamp before a write.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}

// Store is the persistence contract the flow engine runs over.
// Implementations must be safe for concurrent use across distinct session
// IDs; the gateway serializes interactions within a single session, so no
// per-key locking is needed above the store. Writes are last-write-wins.
type Store interface {
	// Get loads the state for a session. Returns ErrNotFound when absent.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Put writes the state for a session and refreshes its TTL.
	Put(ctx context.Context, sessionID string, session *Session) error

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Close releases the backend.
	Close() error
}
