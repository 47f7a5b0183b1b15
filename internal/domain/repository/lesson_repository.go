package repository

import (
	"context"

	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	List(ctx context.Context, page Page) ([]*model.Lesson, int64, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id int64) error
}
