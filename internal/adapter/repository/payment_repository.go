package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		// The partial unique index on (user_id, course_id) where status is
		// paid closes the check-then-insert race at the database level.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainErrors.ErrAlreadyPaid
		}
		r.logger.Error("Failed to create payment",
			zap.Int64("user_id", payment.UserID),
			zap.Int64("course_id", payment.CourseID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		r.logger.Error("Failed to get payment by ID",
			zap.String("payment_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).Where("stripe_session_id = ?", sessionID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		r.logger.Error("Failed to get payment by session ID",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) HasPaidPayment(ctx context.Context, userID, courseID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.PaymentStatusPaid).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count paid payments: %w", err)
	}

	return count > 0, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainErrors.ErrAlreadyPaid
		}
		r.logger.Error("Failed to update payment",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) List(ctx context.Context, filters repository.PaymentFilters) ([]*model.Payment, error) {
	query := r.db.WithContext(ctx).Model(&model.Payment{}).Where("user_id = ?", filters.UserID)

	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.Method != nil {
		query = query.Where("method = ?", *filters.Method)
	}

	switch filters.OrderBy {
	case "created_at":
		query = query.Order("created_at ASC")
	case "amount":
		query = query.Order("amount ASC")
	case "-amount":
		query = query.Order("amount DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var payments []*model.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}
