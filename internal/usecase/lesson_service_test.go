package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lesson), args.Error(1)
}

func (m *MockLessonRepository) List(ctx context.Context, page repository.Page) ([]*model.Lesson, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Lesson), args.Get(1).(int64), args.Error(2)
}

func (m *MockLessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestValidateVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     *string
		wantErr bool
	}{
		{"nil url", nil, false},
		{"empty url", strPtr(""), false},
		{"youtube watch link", strPtr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"), false},
		{"youtube without www", strPtr("https://youtube.com/watch?v=abc"), false},
		{"short link", strPtr("https://youtu.be/dQw4w9WgXcQ"), false},
		{"mobile link", strPtr("https://m.youtube.com/watch?v=abc"), false},
		{"http scheme", strPtr("http://youtube.com/watch?v=abc"), false},
		{"vimeo rejected", strPtr("https://vimeo.com/12345"), true},
		{"youtube in path rejected", strPtr("https://evil.com/youtube.com"), true},
		{"plain text rejected", strPtr("not a url"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVideoURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainErrors.ErrInvalidVideoURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateLesson_RejectsThirdPartyVideo(t *testing.T) {
	svc := NewLessonService(new(MockLessonRepository), new(MockCourseRepository), zap.NewNop())

	_, err := svc.CreateLesson(context.Background(), 1, model.RoleUser, LessonInput{
		Title:    "Intro",
		VideoURL: strPtr("https://vimeo.com/12345"),
		CourseID: 10,
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidVideoURL)
}

func TestCreateLesson_UnknownCourse(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("GetByID", mock.Anything, int64(10)).
		Return(nil, domainErrors.ErrCourseNotFound)

	svc := NewLessonService(new(MockLessonRepository), courses, zap.NewNop())

	_, err := svc.CreateLesson(context.Background(), 1, model.RoleUser, LessonInput{
		Title:    "Intro",
		CourseID: 10,
	})

	assert.ErrorIs(t, err, domainErrors.ErrCourseNotFound)
}

func TestCreateLesson_ModeratorForbidden(t *testing.T) {
	svc := NewLessonService(new(MockLessonRepository), new(MockCourseRepository), zap.NewNop())

	_, err := svc.CreateLesson(context.Background(), 1, model.RoleModerator, LessonInput{
		Title:    "Intro",
		CourseID: 10,
	})

	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func TestCreateLesson_Success(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("GetByID", mock.Anything, int64(10)).
		Return(&model.Course{ID: 10, OwnerID: 1}, nil)

	lessons := new(MockLessonRepository)
	lessons.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Lesson) bool {
		return l.OwnerID == 1 && l.CourseID == 10
	})).Return(nil)

	svc := NewLessonService(lessons, courses, zap.NewNop())

	lesson, err := svc.CreateLesson(context.Background(), 1, model.RoleUser, LessonInput{
		Title:    "Intro",
		VideoURL: strPtr("https://youtu.be/dQw4w9WgXcQ"),
		CourseID: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), lesson.CourseID)
	lessons.AssertExpectations(t)
}

func TestUpdateLesson_RevalidatesVideoURL(t *testing.T) {
	lessons := new(MockLessonRepository)
	lessons.On("GetByID", mock.Anything, int64(5)).
		Return(&model.Lesson{ID: 5, OwnerID: 1, CourseID: 10}, nil)

	svc := NewLessonService(lessons, new(MockCourseRepository), zap.NewNop())

	_, err := svc.UpdateLesson(context.Background(), 1, model.RoleUser, 5, LessonInput{
		Title:    "Intro",
		VideoURL: strPtr("https://dailymotion.com/video/x1"),
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidVideoURL)
	lessons.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteLesson_ModeratorForbidden(t *testing.T) {
	lessons := new(MockLessonRepository)
	lessons.On("GetByID", mock.Anything, int64(5)).
		Return(&model.Lesson{ID: 5, OwnerID: 1}, nil)

	svc := NewLessonService(lessons, new(MockCourseRepository), zap.NewNop())

	err := svc.DeleteLesson(context.Background(), 2, model.RoleModerator, 5)

	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}
