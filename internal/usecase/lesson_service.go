package usecase

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

// Lesson video links must point at YouTube; third-party hosting is not
// allowed.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?youtube\.com`),
	regexp.MustCompile(`^https?://(www\.)?youtu\.be`),
	regexp.MustCompile(`^https?://(www\.)?m\.youtube\.com`),
}

// LessonInput carries the mutable lesson fields.
type LessonInput struct {
	Title       string
	Description string
	PreviewURL  *string
	VideoURL    *string
	CourseID    int64
}

type LessonService struct {
	lessons repository.LessonRepository
	courses repository.CourseRepository
	logger  *zap.Logger
}

func NewLessonService(
	lessons repository.LessonRepository,
	courses repository.CourseRepository,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		lessons: lessons,
		courses: courses,
		logger:  logger,
	}
}

func (s *LessonService) CreateLesson(ctx context.Context, ownerID int64, ownerRole string, input LessonInput) (*model.Lesson, error) {
	if ownerRole == model.RoleModerator {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateVideoURL(input.VideoURL); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, input.CourseID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		Title:       input.Title,
		Description: input.Description,
		PreviewURL:  input.PreviewURL,
		VideoURL:    input.VideoURL,
		CourseID:    input.CourseID,
		OwnerID:     ownerID,
	}
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *LessonService) GetLesson(ctx context.Context, id int64) (*model.Lesson, error) {
	return s.lessons.GetByID(ctx, id)
}

func (s *LessonService) ListLessons(ctx context.Context, page repository.Page) ([]*model.Lesson, int64, error) {
	return s.lessons.List(ctx, page)
}

func (s *LessonService) UpdateLesson(ctx context.Context, actorID int64, actorRole string, id int64, input LessonInput) (*model.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson.OwnerID != actorID && actorRole != model.RoleModerator && actorRole != model.RoleStaff {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateVideoURL(input.VideoURL); err != nil {
		return nil, err
	}

	lesson.Title = input.Title
	lesson.Description = input.Description
	lesson.PreviewURL = input.PreviewURL
	lesson.VideoURL = input.VideoURL
	if err := s.lessons.Update(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *LessonService) DeleteLesson(ctx context.Context, actorID int64, actorRole string, id int64) error {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lesson.OwnerID != actorID && actorRole != model.RoleStaff {
		return domainErrors.ErrForbidden
	}

	return s.lessons.Delete(ctx, id)
}

func validateVideoURL(url *string) error {
	if url == nil || *url == "" {
		return nil
	}
	for _, pattern := range youtubePatterns {
		if pattern.MatchString(*url) {
			return nil
		}
	}
	return domainErrors.ErrInvalidVideoURL
}
