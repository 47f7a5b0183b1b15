package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/middleware/auth"
	"github.com/coursehub/coursehub-backend/internal/usecase"
)

type CourseHandler struct {
	courses       *usecase.CourseService
	subscriptions *usecase.SubscriptionService
	logger        *zap.Logger
}

func NewCourseHandler(courses *usecase.CourseService, subscriptions *usecase.SubscriptionService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courses:       courses,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

type CourseRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	PreviewURL  *string `json:"preview_url" validate:"omitempty,url"`
}

func (h *CourseHandler) CreateCourse(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	course, err := h.courses.CreateCourse(c.Request().Context(), user.UserID, user.Role, usecase.CourseInput{
		Title:       req.Title,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Moderators may not create courses"})
		}
		h.logger.Error("Failed to create course", zap.Int64("user_id", user.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create course"})
	}

	return c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) GetCourse(c echo.Context) error {
	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
	}

	course, err := h.courses.GetCourse(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
		}
		h.logger.Error("Failed to get course", zap.Int64("course_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get course"})
	}

	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) ListCourses(c echo.Context) error {
	page := parsePage(c)

	courses, total, err := h.courses.ListCourses(c.Request().Context(), page)
	if err != nil {
		h.logger.Error("Failed to list courses", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list courses"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":   courses,
		"count":     total,
		"page":      page.Number,
		"page_size": page.Size,
	})
}

func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
	}

	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	course, err := h.courses.UpdateCourse(c.Request().Context(), user.UserID, user.Role, id, usecase.CourseInput{
		Title:       req.Title,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrCourseNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
		case errors.Is(err, domainErrors.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You may not edit this course"})
		}
		h.logger.Error("Failed to update course", zap.Int64("course_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update course"})
	}

	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
	}

	if err := h.courses.DeleteCourse(c.Request().Context(), user.UserID, user.Role, id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrCourseNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
		case errors.Is(err, domainErrors.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You may not delete this course"})
		}
		h.logger.Error("Failed to delete course", zap.Int64("course_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete course"})
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleSubscription subscribes the caller to course updates, or removes the
// subscription if one exists.
func (h *CourseHandler) ToggleSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
	}

	subscribed, err := h.subscriptions.Toggle(c.Request().Context(), user.UserID, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Course not found"})
		}
		h.logger.Error("Failed to toggle subscription",
			zap.Int64("user_id", user.UserID),
			zap.Int64("course_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to toggle subscription"})
	}

	message := "Subscription removed"
	if subscribed {
		message = "Subscription added"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    message,
		"subscribed": subscribed,
	})
}
