package transfer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Ledger is an in-process Service that records transfers in memory and
// hands out uuid-derived references. It stands in for a real payment
// processor in the demo deployment and in tests.
type Ledger struct {
	mu       sync.Mutex
	receipts map[string]*Receipt
}

var _ Service = (*Ledger)(nil)

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{receipts: make(map[string]*Receipt)}
}

// Transfer records one transfer. The flow validates inputs before
// confirming, but the ledger still refuses obviously bad requests so a
// miswired caller cannot book them.
func (l *Ledger) Transfer(ctx context.Context, req *Request) (*Receipt, error) {
	if req.Recipient == "" {
		return nil, fmt.Errorf("transfer rejected: recipient is empty")
	}
	// NaN and the infinities are floats too; neither is a bookable amount.
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return nil, fmt.Errorf("transfer rejected: amount %.2f is not a positive finite number", req.Amount)
	}

	receipt := &Receipt{
		Reference:   newReference(),
		SessionID:   req.SessionID,
		PhoneNumber: req.PhoneNumber,
		Recipient:   req.Recipient,
		Amount:      req.Amount,
		CreatedAt:   time.Now(),
	}

	l.mu.Lock()
	l.receipts[receipt.Reference] = receipt
	l.mu.Unlock()

	log.Info().
		Str("reference", receipt.Reference).
		Str("recipient", receipt.Recipient).
		Float64("amount", receipt.Amount).
		Msg("transfer recorded")

	return receipt, nil
}

// Find returns the receipt behind a reference, or nil.
func (l *Ledger) Find(reference string) *Receipt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.receipts[reference]
}

// newReference derives a short display reference from a uuid. Handset
// screens are tiny; eight hex characters are plenty to look a transfer up.
func newReference() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}
