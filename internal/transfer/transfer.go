// Package transfer executes the money movement the demo flow collects.
// The flow hands over a confirmed request and needs a reference back;
// everything past that is the processor's business.
package transfer

import (
	"context"
	"time"
)

// Request is one confirmed transfer, as collected by the flow.
type Request struct {
	SessionID   string
	PhoneNumber string
	Recipient   string
	Amount      float64
}

// Receipt records an accepted transfer.
type Receipt struct {
	Reference   string
	SessionID   string
	PhoneNumber string
	Recipient   string
	Amount      float64
	CreatedAt   time.Time
}

// Service is the processor behind the confirm step. Implementations may
// call out to a wallet or banking API; an error aborts the session.
type Service interface {
	Transfer(ctx context.Context, req *Request) (*Receipt, error)
}
