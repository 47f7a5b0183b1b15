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

type courseRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB, logger *zap.Logger) repository.CourseRepository {
	return &courseRepository{db: db, logger: logger}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		r.logger.Error("Failed to create course", zap.Error(err))
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course

	err := r.db.WithContext(ctx).Preload("Lessons").Where("id = ?", id).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrCourseNotFound
		}
		r.logger.Error("Failed to get course", zap.Int64("course_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, page repository.Page) ([]*model.Course, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var courses []*model.Course
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		r.logger.Error("Failed to update course", zap.Int64("course_id", course.ID), zap.Error(err))
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Course{})
	if result.Error != nil {
		r.logger.Error("Failed to delete course", zap.Int64("course_id", id), zap.Error(result.Error))
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrCourseNotFound
	}
	return nil
}
