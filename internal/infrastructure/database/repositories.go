package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/coursehub/coursehub-backend/internal/adapter/repository"
	domainRepo "github.com/coursehub/coursehub-backend/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	User         domainRepo.UserRepository
	Course       domainRepo.CourseRepository
	Lesson       domainRepo.LessonRepository
	Subscription domainRepo.SubscriptionRepository
	Payment      domainRepo.PaymentRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(db, logger),
		Course:       repository.NewCourseRepository(db, logger),
		Lesson:       repository.NewLessonRepository(db, logger),
		Subscription: repository.NewSubscriptionRepository(db, logger),
		Payment:      repository.NewPaymentRepository(db, logger),
	}
}
