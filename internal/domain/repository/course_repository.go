package repository

import (
	"context"

	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

// Page carries offset pagination parameters; handlers cap page sizes
// before they reach the repository.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context, page Page) ([]*model.Course, int64, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int64) error
}
