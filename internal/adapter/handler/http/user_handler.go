package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/middleware/auth"
	"github.com/coursehub/coursehub-backend/internal/usecase"
)

type UserHandler struct {
	users  *usecase.UserService
	logger *zap.Logger
}

func NewUserHandler(users *usecase.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type ProfileRequest struct {
	Phone     *string `json:"phone"`
	City      *string `json:"city"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, tokens, err := h.users.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to register"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, tokens, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		h.logger.Error("Failed to log in user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to log in"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *UserHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tokens, err := h.users.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid refresh token"})
		}
		h.logger.Error("Failed to refresh tokens", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to refresh tokens"})
	}

	return c.JSON(http.StatusOK, tokens)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	account, err := h.users.GetUser(c.Request().Context(), user.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		h.logger.Error("Failed to get user", zap.Int64("user_id", user.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get user"})
	}

	return c.JSON(http.StatusOK, account)
}

// ListUsers is a staff-only account overview.
func (h *UserHandler) ListUsers(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	if user.Role != model.RoleStaff {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Staff access required"})
	}

	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list users"})
	}

	return c.JSON(http.StatusOK, echo.Map{"results": users})
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.UserID, user.Role, id, usecase.ProfileInput{
		Phone:     req.Phone,
		City:      req.City,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You may not edit this account"})
		case errors.Is(err, domainErrors.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		h.logger.Error("Failed to update user", zap.Int64("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	if err := h.users.DeleteUser(c.Request().Context(), user.UserID, user.Role, id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You may not delete this account"})
		case errors.Is(err, domainErrors.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		h.logger.Error("Failed to delete user", zap.Int64("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete user"})
	}

	return c.NoContent(http.StatusNoContent)
}
