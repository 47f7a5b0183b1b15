package repository

import (
	"context"
	"time"

	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	// DeactivateStale marks active non-staff accounts whose last login is
	// older than the cutoff as inactive and returns how many were affected.
	DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error)
}
