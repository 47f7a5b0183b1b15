package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Get(ctx context.Context, userID, courseID int64) (*model.Subscription, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, userID, courseID int64) error {
	args := m.Called(ctx, userID, courseID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ListByCourse(ctx context.Context, courseID int64) ([]*model.Subscription, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscription), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// recordingNotifier captures notification calls so tests can wait for the
// background goroutine to finish.
type recordingNotifier struct {
	mu         sync.Mutex
	recipients []string
	done       chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{})}
}

func (n *recordingNotifier) NotifyCourseUpdated(course *model.Course, recipients []string) {
	n.mu.Lock()
	n.recipients = recipients
	n.mu.Unlock()
	close(n.done)
}

func (n *recordingNotifier) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.recipients
}

func newCourseService(courses *MockCourseRepository, subs *MockSubscriptionRepository, users *MockUserRepository, notifier CourseNotifier) *CourseService {
	return NewCourseService(courses, subs, users, notifier, zap.NewNop())
}

func TestCreateCourse_ModeratorForbidden(t *testing.T) {
	svc := newCourseService(new(MockCourseRepository), new(MockSubscriptionRepository), new(MockUserRepository), newRecordingNotifier())

	_, err := svc.CreateCourse(context.Background(), 1, model.RoleModerator, CourseInput{Title: "Go Basics"})

	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func TestCreateCourse_SetsOwner(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Course) bool {
		return c.OwnerID == 7 && c.Title == "Go Basics"
	})).Return(nil)

	svc := newCourseService(courses, new(MockSubscriptionRepository), new(MockUserRepository), newRecordingNotifier())

	course, err := svc.CreateCourse(context.Background(), 7, model.RoleUser, CourseInput{Title: "Go Basics"})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), course.OwnerID)
	courses.AssertExpectations(t)
}

func TestUpdateCourse_NonOwnerForbidden(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("GetByID", mock.Anything, int64(10)).
		Return(&model.Course{ID: 10, OwnerID: 1}, nil)

	svc := newCourseService(courses, new(MockSubscriptionRepository), new(MockUserRepository), newRecordingNotifier())

	_, err := svc.UpdateCourse(context.Background(), 2, model.RoleUser, 10, CourseInput{Title: "x"})

	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
	courses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCourse_ModeratorMayEdit(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("GetByID", mock.Anything, int64(10)).
		Return(&model.Course{ID: 10, OwnerID: 1, Title: "old"}, nil)
	courses.On("Update", mock.Anything, mock.Anything).Return(nil)

	subs := new(MockSubscriptionRepository)
	subs.On("ListByCourse", mock.Anything, int64(10)).Return([]*model.Subscription{}, nil)

	svc := newCourseService(courses, subs, new(MockUserRepository), newRecordingNotifier())

	course, err := svc.UpdateCourse(context.Background(), 2, model.RoleModerator, 10, CourseInput{Title: "new"})

	assert.NoError(t, err)
	assert.Equal(t, "new", course.Title)
}

func TestUpdateCourse_NotifiesActiveSubscribers(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("GetByID", mock.Anything, int64(10)).
		Return(&model.Course{ID: 10, OwnerID: 1, Title: "Go Basics"}, nil)
	courses.On("Update", mock.Anything, mock.Anything).Return(nil)

	subs := new(MockSubscriptionRepository)
	subs.On("ListByCourse", mock.Anything, int64(10)).Return([]*model.Subscription{
		{UserID: 2, CourseID: 10},
		{UserID: 3, CourseID: 10},
	}, nil)

	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(2)).
		Return(&model.User{ID: 2, Email: "active@example.com", IsActive: true}, nil)
	users.On("GetByID", mock.Anything, int64(3)).
		Return(&model.User{ID: 3, Email: "inactive@example.com", IsActive: false}, nil)

	notifier := newRecordingNotifier()
	svc := newCourseService(courses, subs, users, notifier)

	_, err := svc.UpdateCourse(context.Background(), 1, model.RoleUser, 10, CourseInput{Title: "Go Basics"})
	assert.NoError(t, err)

	recipients := notifier.wait(t)
	assert.Equal(t, []string{"active@example.com"}, recipients)
}

func TestDeleteCourse_ModeratorForbidden(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("GetByID", mock.Anything, int64(10)).
		Return(&model.Course{ID: 10, OwnerID: 1}, nil)

	svc := newCourseService(courses, new(MockSubscriptionRepository), new(MockUserRepository), newRecordingNotifier())

	err := svc.DeleteCourse(context.Background(), 2, model.RoleModerator, 10)

	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func TestDeleteCourse_StaffMayDelete(t *testing.T) {
	courses := new(MockCourseRepository)
	courses.On("GetByID", mock.Anything, int64(10)).
		Return(&model.Course{ID: 10, OwnerID: 1}, nil)
	courses.On("Delete", mock.Anything, int64(10)).Return(nil)

	svc := newCourseService(courses, new(MockSubscriptionRepository), new(MockUserRepository), newRecordingNotifier())

	err := svc.DeleteCourse(context.Background(), 99, model.RoleStaff, 10)

	assert.NoError(t, err)
	courses.AssertExpectations(t)
}
