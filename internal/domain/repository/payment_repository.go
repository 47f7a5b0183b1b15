package repository

import (
	"context"

	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/google/uuid"
)

// PaymentFilters narrows payment listings.
type PaymentFilters struct {
	UserID   int64
	CourseID *int64
	Method   *model.PaymentMethod
	// OrderBy is one of "created_at", "-created_at", "amount", "-amount".
	OrderBy string
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error)
	// HasPaidPayment reports whether the user already holds a paid payment
	// for the course.
	HasPaidPayment(ctx context.Context, userID, courseID int64) (bool, error)
	Update(ctx context.Context, payment *model.Payment) error
	List(ctx context.Context, filters PaymentFilters) ([]*model.Payment, error)
}
