// Package events publishes session lifecycle events for downstream
// consumers. Publishing is fire-and-forget; a slow or absent broker must
// never hold up an interaction.
package events

import (
	"context"
	"time"
)

// SessionEvent reports one finished session, as relayed by the gateway's
// end-of-session callback.
type SessionEvent struct {
	SessionID    string    `json:"session_id"`
	PhoneNumber  string    `json:"phone_number"`
	ServiceCode  string    `json:"service_code"`
	NetworkCode  string    `json:"network_code"`
	Status       string    `json:"status"`
	Input        string    `json:"input"`
	LastResponse string    `json:"last_response"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher emits session events.
type Publisher interface {
	PublishSessionEvent(ctx context.Context, event *SessionEvent) error
	Close() error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func (NoopPublisher) PublishSessionEvent(context.Context, *SessionEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
