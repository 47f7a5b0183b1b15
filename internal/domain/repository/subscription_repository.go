package repository

import (
	"context"

	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	Get(ctx context.Context, userID, courseID int64) (*model.Subscription, error)
	Delete(ctx context.Context, userID, courseID int64) error
	// ListByCourse returns every subscription to the course, used by the
	// course-update notifier.
	ListByCourse(ctx context.Context, courseID int64) ([]*model.Subscription, error)
}
