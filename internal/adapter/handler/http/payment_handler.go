package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/processor"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
	"github.com/coursehub/coursehub-backend/internal/middleware/auth"
	"github.com/coursehub/coursehub-backend/internal/usecase"
)

type PaymentHandler struct {
	payments *usecase.PaymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

type CreatePaymentRequest struct {
	CourseID      int64           `json:"course_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=card transfer"`
}

type CreatePaymentResponse struct {
	Payment    *model.Payment `json:"payment"`
	PaymentURL string         `json:"payment_url"`
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err // RequireAuth already returns the JSON error response
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.Amount.Sign() <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Amount must be positive"})
	}

	method := model.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = model.PaymentMethodCard
	}

	payment, paymentURL, err := h.payments.CreatePayment(
		c.Request().Context(), user.UserID, req.CourseID, req.Amount, method)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSelfPurchase):
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrAlreadyPaid),
			errors.Is(err, domainErrors.ErrCourseNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		// Processor faults already marked the payment failed; surface the
		// processor's message rather than swallowing it.
		var procErr *processor.Error
		if errors.As(err, &procErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		h.logger.Error("Failed to create payment",
			zap.Int64("user_id", user.UserID),
			zap.Int64("course_id", req.CourseID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create payment"})
	}

	return c.JSON(http.StatusCreated, CreatePaymentResponse{
		Payment:    payment,
		PaymentURL: paymentURL,
	})
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	payment, err := h.payments.GetPayment(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
		}
		h.logger.Error("Failed to get payment", zap.String("payment_id", id.String()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get payment"})
	}

	// Payments are visible to their owner and to staff only.
	if payment.UserID != user.UserID && user.Role != model.RoleStaff {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	filters := repository.PaymentFilters{
		UserID:  user.UserID,
		OrderBy: c.QueryParam("ordering"),
	}
	if courseID, ok := parseInt64Param(c.QueryParam("course_id")); ok {
		filters.CourseID = &courseID
	}
	if methodParam := c.QueryParam("payment_method"); methodParam != "" {
		method := model.PaymentMethod(methodParam)
		filters.Method = &method
	}

	payments, err := h.payments.ListPayments(c.Request().Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list payments", zap.Int64("user_id", user.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list payments"})
	}

	return c.JSON(http.StatusOK, echo.Map{"results": payments})
}

type PaymentStatusResponse struct {
	Payment      *model.Payment `json:"payment"`
	RemoteStatus string         `json:"remote_status"`
}

func (h *PaymentHandler) CheckPaymentStatus(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	payment, remoteStatus, err := h.payments.CheckStatus(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrPaymentNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
		case errors.Is(err, domainErrors.ErrNoCheckoutSession):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		var procErr *processor.Error
		if errors.As(err, &procErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		h.logger.Error("Failed to check payment status",
			zap.String("payment_id", id.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to check payment status"})
	}

	if payment.UserID != user.UserID && user.Role != model.RoleStaff {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	return c.JSON(http.StatusOK, PaymentStatusResponse{
		Payment:      payment,
		RemoteStatus: remoteStatus,
	})
}

// HandleSuccess is the return URL of the hosted checkout page. The
// processor fills the session_id query parameter on redirect.
func (h *PaymentHandler) HandleSuccess(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id query parameter is required"})
	}

	_, course, err := h.payments.HandleSuccessRedirect(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPaymentNotFound) || errors.Is(err, domainErrors.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
		}
		h.logger.Error("Failed to complete payment",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to complete payment"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Payment completed successfully",
		"course_id":    course.ID,
		"course_title": course.Title,
	})
}

// HandleCancel acknowledges an abandoned checkout. Nothing is looked up or
// mutated; the payment stays pending until reconciled.
func (h *PaymentHandler) HandleCancel(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Payment canceled. You can restart the purchase at any time.",
	})
}
