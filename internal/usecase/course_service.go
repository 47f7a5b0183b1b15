package usecase

import (
	"context"

	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

// CourseNotifier delivers course-update notifications to subscribers.
type CourseNotifier interface {
	NotifyCourseUpdated(course *model.Course, recipients []string)
}

// CourseInput carries the mutable course fields.
type CourseInput struct {
	Title       string
	Description string
	PreviewURL  *string
}

// CourseService implements course CRUD with the ownership rules: moderators
// may edit any course but may not create or delete one; deletion is owner
// or staff only.
type CourseService struct {
	courses       repository.CourseRepository
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	notifier      CourseNotifier
	logger        *zap.Logger
}

func NewCourseService(
	courses repository.CourseRepository,
	subscriptions repository.SubscriptionRepository,
	users repository.UserRepository,
	notifier CourseNotifier,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		courses:       courses,
		subscriptions: subscriptions,
		users:         users,
		notifier:      notifier,
		logger:        logger,
	}
}

func (s *CourseService) CreateCourse(ctx context.Context, ownerID int64, ownerRole string, input CourseInput) (*model.Course, error) {
	if ownerRole == model.RoleModerator {
		return nil, domainErrors.ErrForbidden
	}

	course := &model.Course{
		Title:       input.Title,
		Description: input.Description,
		PreviewURL:  input.PreviewURL,
		OwnerID:     ownerID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	return s.courses.GetByID(ctx, id)
}

func (s *CourseService) ListCourses(ctx context.Context, page repository.Page) ([]*model.Course, int64, error) {
	return s.courses.List(ctx, page)
}

func (s *CourseService) UpdateCourse(ctx context.Context, actorID int64, actorRole string, id int64, input CourseInput) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.OwnerID != actorID && actorRole != model.RoleModerator && actorRole != model.RoleStaff {
		return nil, domainErrors.ErrForbidden
	}

	course.Title = input.Title
	course.Description = input.Description
	course.PreviewURL = input.PreviewURL
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	s.notifySubscribers(course)

	return course, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, actorID int64, actorRole string, id int64) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course.OwnerID != actorID && actorRole != model.RoleStaff {
		return domainErrors.ErrForbidden
	}

	return s.courses.Delete(ctx, id)
}

// notifySubscribers resolves subscriber emails and hands them to the
// notifier without blocking the request. Delivery failures are the
// notifier's to log; a course update never fails because email did.
func (s *CourseService) notifySubscribers(course *model.Course) {
	go func() {
		ctx := context.Background()

		subs, err := s.subscriptions.ListByCourse(ctx, course.ID)
		if err != nil {
			s.logger.Error("Failed to list course subscribers",
				zap.Int64("course_id", course.ID),
				zap.Error(err))
			return
		}
		if len(subs) == 0 {
			return
		}

		recipients := make([]string, 0, len(subs))
		for _, sub := range subs {
			user, err := s.users.GetByID(ctx, sub.UserID)
			if err != nil {
				s.logger.Warn("Skipping subscriber without account",
					zap.Int64("user_id", sub.UserID),
					zap.Error(err))
				continue
			}
			if user.IsActive {
				recipients = append(recipients, user.Email)
			}
		}

		if len(recipients) > 0 {
			s.notifier.NotifyCourseUpdated(course, recipients)
		}
	}()
}
