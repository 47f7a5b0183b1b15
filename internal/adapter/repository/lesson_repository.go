package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

type lessonRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *gorm.DB, logger *zap.Logger) repository.LessonRepository {
	return &lessonRepository{db: db, logger: logger}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		r.logger.Error("Failed to create lesson", zap.Error(err))
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	var lesson model.Lesson

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrLessonNotFound
		}
		r.logger.Error("Failed to get lesson", zap.Int64("lesson_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	return &lesson, nil
}

func (r *lessonRepository) List(ctx context.Context, page repository.Page) ([]*model.Lesson, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Lesson{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	var lessons []*model.Lesson
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&lessons).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list lessons: %w", err)
	}

	return lessons, total, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	if err := r.db.WithContext(ctx).Save(lesson).Error; err != nil {
		r.logger.Error("Failed to update lesson", zap.Int64("lesson_id", lesson.ID), zap.Error(err))
		return fmt.Errorf("failed to update lesson: %w", err)
	}
	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Lesson{})
	if result.Error != nil {
		r.logger.Error("Failed to delete lesson", zap.Int64("lesson_id", id), zap.Error(result.Error))
		return fmt.Errorf("failed to delete lesson: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrLessonNotFound
	}
	return nil
}
