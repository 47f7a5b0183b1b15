package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsTerminal reports whether no further transition may occur.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}

type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Payment records one purchase attempt of a course. Rows are kept as an
// audit trail and are never deleted; amount and the user/course references
// are immutable after creation. The Stripe identifiers are assigned in
// strict order (product, price, session) and each is persisted before the
// next remote call, so a failed provisioning run retains every identifier
// obtained up to the failing step.
type Payment struct {
	ID                    uuid.UUID       `gorm:"primaryKey;type:uuid" json:"id"`
	UserID                int64           `gorm:"index;not null" json:"user_id"`
	CourseID              int64           `gorm:"index;not null" json:"course_id"`
	Amount                decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method                PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Status                PaymentStatus   `gorm:"size:20;not null;index" json:"status"`
	StripeProductID       *string         `gorm:"size:100" json:"stripe_product_id,omitempty"`
	StripePriceID         *string         `gorm:"size:100" json:"stripe_price_id,omitempty"`
	StripeSessionID       *string         `gorm:"size:100;index" json:"stripe_session_id,omitempty"`
	StripePaymentIntentID *string         `gorm:"size:100" json:"stripe_payment_intent_id,omitempty"`
	PaymentURL            *string         `gorm:"size:500" json:"payment_url,omitempty"`
	CreatedAt             time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
