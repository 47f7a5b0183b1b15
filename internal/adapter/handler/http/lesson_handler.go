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

type LessonHandler struct {
	lessons *usecase.LessonService
	logger  *zap.Logger
}

func NewLessonHandler(lessons *usecase.LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		lessons: lessons,
		logger:  logger,
	}
}

type LessonRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	PreviewURL  *string `json:"preview_url" validate:"omitempty,url"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url"`
	CourseID    int64   `json:"course_id" validate:"required"`
}

func (h *LessonHandler) CreateLesson(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req LessonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	lesson, err := h.lessons.CreateLesson(c.Request().Context(), user.UserID, user.Role, usecase.LessonInput{
		Title:       req.Title,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		VideoURL:    req.VideoURL,
		CourseID:    req.CourseID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Moderators may not create lessons"})
		case errors.Is(err, domainErrors.ErrInvalidVideoURL):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrCourseNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to create lesson", zap.Int64("user_id", user.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create lesson"})
	}

	return c.JSON(http.StatusCreated, lesson)
}

func (h *LessonHandler) GetLesson(c echo.Context) error {
	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Lesson not found"})
	}

	lesson, err := h.lessons.GetLesson(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrLessonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Lesson not found"})
		}
		h.logger.Error("Failed to get lesson", zap.Int64("lesson_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get lesson"})
	}

	return c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) ListLessons(c echo.Context) error {
	page := parsePage(c)

	lessons, total, err := h.lessons.ListLessons(c.Request().Context(), page)
	if err != nil {
		h.logger.Error("Failed to list lessons", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list lessons"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":   lessons,
		"count":     total,
		"page":      page.Number,
		"page_size": page.Size,
	})
}

func (h *LessonHandler) UpdateLesson(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Lesson not found"})
	}

	var req LessonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	lesson, err := h.lessons.UpdateLesson(c.Request().Context(), user.UserID, user.Role, id, usecase.LessonInput{
		Title:       req.Title,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		VideoURL:    req.VideoURL,
		CourseID:    req.CourseID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrLessonNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Lesson not found"})
		case errors.Is(err, domainErrors.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You may not edit this lesson"})
		case errors.Is(err, domainErrors.ErrInvalidVideoURL):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to update lesson", zap.Int64("lesson_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update lesson"})
	}

	return c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) DeleteLesson(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Lesson not found"})
	}

	if err := h.lessons.DeleteLesson(c.Request().Context(), user.UserID, user.Role, id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrLessonNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Lesson not found"})
		case errors.Is(err, domainErrors.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You may not delete this lesson"})
		}
		h.logger.Error("Failed to delete lesson", zap.Int64("lesson_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete lesson"})
	}

	return c.NoContent(http.StatusNoContent)
}
