package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

// SubscriptionService toggles a user's subscription to course updates.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	courses       repository.CourseRepository
	logger        *zap.Logger
}

func NewSubscriptionService(
	subscriptions repository.SubscriptionRepository,
	courses repository.CourseRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptions,
		courses:       courses,
		logger:        logger,
	}
}

// Toggle subscribes the user to the course, or unsubscribes when a
// subscription already exists. It reports the resulting state.
func (s *SubscriptionService) Toggle(ctx context.Context, userID, courseID int64) (bool, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return false, err
	}

	existing, err := s.subscriptions.Get(ctx, userID, courseID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := s.subscriptions.Delete(ctx, userID, courseID); err != nil {
			return false, err
		}
		s.logger.Info("Unsubscribed from course",
			zap.Int64("user_id", userID),
			zap.Int64("course_id", courseID))
		return false, nil
	}

	sub := &model.Subscription{UserID: userID, CourseID: courseID}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return false, err
	}

	s.logger.Info("Subscribed to course",
		zap.Int64("user_id", userID),
		zap.Int64("course_id", courseID))
	return true, nil
}

// IsSubscribed reports whether the user currently follows the course.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID, courseID int64) (bool, error) {
	sub, err := s.subscriptions.Get(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	return sub != nil, nil
}
