package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/processor"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

// maxProductDescription is the longest course description forwarded to the
// processor when creating a product.
const maxProductDescription = 200

// PaymentService drives the payment lifecycle: provisioning the remote
// product/price/checkout-session chain on purchase, and reconciling local
// payment state against the processor afterwards. Each remote identifier
// is persisted as soon as it is issued, before the next remote call, so a
// mid-sequence fault loses at most the step that failed. Remote ids
// obtained before a fault are kept on the failed payment for audit.
type PaymentService struct {
	payments  repository.PaymentRepository
	courses   repository.CourseRepository
	processor processor.Client
	baseURL   string
	currency  string
	logger    *zap.Logger
}

func NewPaymentService(
	payments repository.PaymentRepository,
	courses repository.CourseRepository,
	proc processor.Client,
	baseURL string,
	currency string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		courses:   courses,
		processor: proc,
		baseURL:   baseURL,
		currency:  currency,
		logger:    logger,
	}
}

// CreatePayment initiates a course purchase and returns the payment record
// together with the processor-hosted checkout URL the buyer should be
// redirected to.
func (s *PaymentService) CreatePayment(
	ctx context.Context,
	userID, courseID int64,
	amount decimal.Decimal,
	method model.PaymentMethod,
) (*model.Payment, string, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, "", err
	}
	if course.OwnerID == userID {
		return nil, "", domainErrors.ErrSelfPurchase
	}

	paid, err := s.payments.HasPaidPayment(ctx, userID, courseID)
	if err != nil {
		return nil, "", err
	}
	if paid {
		return nil, "", domainErrors.ErrAlreadyPaid
	}

	payment := &model.Payment{
		UserID:   userID,
		CourseID: courseID,
		Amount:   amount,
		Method:   method,
		Status:   model.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, "", err
	}

	s.logger.Info("Payment created, provisioning checkout",
		zap.String("payment_id", payment.ID.String()),
		zap.Int64("user_id", userID),
		zap.Int64("course_id", courseID),
		zap.String("amount", amount.String()))

	productID, err := s.processor.CreateProduct(ctx, course.Title, truncate(course.Description, maxProductDescription))
	if err != nil {
		s.markFailed(ctx, payment)
		return payment, "", fmt.Errorf("product creation failed: %w", err)
	}
	payment.StripeProductID = &productID
	if err := s.payments.Update(ctx, payment); err != nil {
		return payment, "", err
	}

	priceID, err := s.processor.CreatePrice(ctx, amount, productID, s.currency)
	if err != nil {
		s.markFailed(ctx, payment)
		return payment, "", fmt.Errorf("price creation failed: %w", err)
	}
	payment.StripePriceID = &priceID
	if err := s.payments.Update(ctx, payment); err != nil {
		return payment, "", err
	}

	// The processor substitutes {CHECKOUT_SESSION_ID} with the session id
	// when redirecting the buyer back.
	session, err := s.processor.CreateCheckoutSession(ctx, &processor.CheckoutSessionRequest{
		PriceID:    priceID,
		SuccessURL: s.baseURL + "/api/v1/payments/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.baseURL + "/api/v1/payments/cancel",
	})
	if err != nil {
		s.markFailed(ctx, payment)
		return payment, "", fmt.Errorf("checkout session creation failed: %w", err)
	}
	payment.StripeSessionID = &session.ID
	payment.PaymentURL = &session.URL
	if err := s.payments.Update(ctx, payment); err != nil {
		return payment, "", err
	}

	s.logger.Info("Checkout provisioned",
		zap.String("payment_id", payment.ID.String()),
		zap.String("session_id", session.ID))

	return payment, session.URL, nil
}

// CheckStatus re-queries the processor for the payment's checkout session
// and aligns the local status with the remote one. Calling it repeatedly
// with an unchanged remote status has no effect beyond rewriting the same
// value.
func (s *PaymentService) CheckStatus(ctx context.Context, id uuid.UUID) (*model.Payment, string, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if payment.StripeSessionID == nil {
		return nil, "", domainErrors.ErrNoCheckoutSession
	}

	status, err := s.processor.RetrieveSession(ctx, *payment.StripeSessionID)
	if err != nil {
		return nil, "", err
	}

	switch status.PaymentStatus {
	case processor.SessionStatusPaid:
		payment.Status = model.PaymentStatusPaid
		if status.PaymentIntentID != "" {
			payment.StripePaymentIntentID = &status.PaymentIntentID
		}
	case processor.SessionStatusUnpaid:
		payment.Status = model.PaymentStatusPending
	default:
		// The state machine has no "unknown" status; anything the
		// processor reports outside paid/unpaid counts as a failure.
		payment.Status = model.PaymentStatusFailed
	}

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, "", err
	}

	s.logger.Info("Payment status reconciled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("remote_status", status.PaymentStatus),
		zap.String("local_status", string(payment.Status)))

	return payment, status.PaymentStatus, nil
}

// HandleSuccessRedirect marks the payment belonging to the checkout session
// as paid. The redirect itself is trusted; the processor is not re-queried
// on this path.
func (s *PaymentService) HandleSuccessRedirect(ctx context.Context, sessionID string) (*model.Payment, *model.Course, error) {
	payment, err := s.payments.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	payment.Status = model.PaymentStatusPaid
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Payment completed via success redirect",
		zap.String("payment_id", payment.ID.String()),
		zap.String("session_id", sessionID))

	course, err := s.courses.GetByID(ctx, payment.CourseID)
	if err != nil {
		return nil, nil, err
	}

	return payment, course, nil
}

// GetPayment returns a single payment by id.
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// ListPayments returns the user's payments, optionally filtered and ordered.
func (s *PaymentService) ListPayments(ctx context.Context, filters repository.PaymentFilters) ([]*model.Payment, error) {
	return s.payments.List(ctx, filters)
}

// markFailed persists the failed status. The triggering processor fault is
// what the caller sees; a persistence error here is only logged.
func (s *PaymentService) markFailed(ctx context.Context, payment *model.Payment) {
	payment.Status = model.PaymentStatusFailed
	if err := s.payments.Update(ctx, payment); err != nil {
		s.logger.Error("Failed to persist failed payment status",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
