package processor

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Remote payment statuses reported by the processor for a checkout session.
// Anything outside this set is treated as a failure by the orchestrator.
const (
	SessionStatusPaid   = "paid"
	SessionStatusUnpaid = "unpaid"
)

// Client defines the operations the payment orchestrator needs from the
// external processor. Each call is a single request/response round trip:
// no retries, no caching, no shared state. Distinguishing retryable from
// non-retryable faults is left to callers.
type Client interface {
	// CreateProduct registers a purchasable item and returns its remote id.
	CreateProduct(ctx context.Context, name, description string) (string, error)

	// CreatePrice attaches a price in the given currency to a product.
	// The amount is in major units and is converted to the processor's
	// minor-unit integer representation.
	CreatePrice(ctx context.Context, amount decimal.Decimal, productID, currency string) (string, error)

	// CreateCheckoutSession provisions a hosted checkout page for a price.
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)

	// RetrieveSession fetches the current remote state of a checkout session.
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}

// CheckoutSessionRequest carries the parameters for a hosted checkout page.
type CheckoutSessionRequest struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provisioned checkout page.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the remote view of a checkout session used for
// reconciliation.
type SessionStatus struct {
	PaymentStatus   string
	PaymentIntentID string
}

// Error is a processor-side fault: network, validation or account
// misconfiguration. Message keeps the processor's human-readable detail
// so it can be surfaced to the caller verbatim.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
