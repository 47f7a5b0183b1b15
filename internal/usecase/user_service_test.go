package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursehub/coursehub-backend/internal/config"
	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

func newUserService(users *MockUserRepository) *UserService {
	return NewUserService(users, config.JWTConfig{Secret: "test-secret"}, zap.NewNop())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestRegister_IssuesTokens(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == model.RoleUser &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret-password"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 42
	}).Return(nil)

	svc := newUserService(users)

	user, tokens, err := svc.Register(context.Background(), RegisterInput{
		Email:    "new@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
	users.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(domainErrors.ErrEmailTaken)

	svc := newUserService(users)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, domainErrors.ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID:           42,
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "secret-password"),
		Role:         model.RoleUser,
		IsActive:     true,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.LastLoginAt != nil
	})).Return(nil)

	svc := newUserService(users)

	user, tokens, err := svc.Login(context.Background(), "user@example.com", "secret-password")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.NotNil(t, user.LastLoginAt)
	assert.NotEmpty(t, tokens.Access)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID:           42,
		PasswordHash: hashPassword(t, "secret-password"),
		IsActive:     true,
	}, nil)

	svc := newUserService(users)

	_, _, err := svc.Login(context.Background(), "user@example.com", "wrong")

	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailHidden(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domainErrors.ErrUserNotFound)

	svc := newUserService(users)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")

	// The caller must not learn whether the account exists.
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "dormant@example.com").Return(&model.User{
		ID:           42,
		PasswordHash: hashPassword(t, "secret-password"),
		IsActive:     false,
	}, nil)

	svc := newUserService(users)

	_, _, err := svc.Login(context.Background(), "dormant@example.com", "secret-password")

	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
}

func TestRefresh_ExchangesValidToken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID:           42,
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "secret-password"),
		Role:         model.RoleUser,
		IsActive:     true,
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&model.User{
		ID: 42, Email: "user@example.com", Role: model.RoleUser, IsActive: true,
	}, nil)

	svc := newUserService(users)

	_, tokens, err := svc.Login(context.Background(), "user@example.com", "secret-password")
	assert.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), tokens.Refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.Access)
	assert.NotEmpty(t, fresh.Refresh)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID:           42,
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "secret-password"),
		IsActive:     true,
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := newUserService(users)

	_, tokens, err := svc.Login(context.Background(), "user@example.com", "secret-password")
	assert.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.Access)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
}

func TestRefresh_ForgedTokenRejected(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "42",
		"token_type": "refresh",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	svc := newUserService(new(MockUserRepository))

	_, err = svc.Refresh(context.Background(), signed)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
}

func TestUpdateProfile_OtherUserForbidden(t *testing.T) {
	svc := newUserService(new(MockUserRepository))

	_, err := svc.UpdateProfile(context.Background(), 1, model.RoleUser, 2, ProfileInput{})

	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func TestUpdateProfile_StaffMayEditAnyone(t *testing.T) {
	city := "Prague"
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(2)).
		Return(&model.User{ID: 2, Email: "user@example.com"}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.City != nil && *u.City == city
	})).Return(nil)

	svc := newUserService(users)

	updated, err := svc.UpdateProfile(context.Background(), 99, model.RoleStaff, 2, ProfileInput{City: &city})

	assert.NoError(t, err)
	assert.Equal(t, city, *updated.City)
}

func TestDeleteUser_SelfAllowed(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Delete", mock.Anything, int64(1)).Return(nil)

	svc := newUserService(users)

	assert.NoError(t, svc.DeleteUser(context.Background(), 1, model.RoleUser, 1))
}

func TestDeactivateStaleUsers_UsesThirtyDayCutoff(t *testing.T) {
	users := new(MockUserRepository)
	users.On("DeactivateStale", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().Add(-30 * 24 * time.Hour)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(3), nil)

	svc := newUserService(users)

	count, err := svc.DeactivateStaleUsers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
