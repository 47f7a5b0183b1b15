package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursehub/coursehub-backend/internal/config"
	domainErrors "github.com/coursehub/coursehub-backend/internal/domain/errors"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

// staleAfter is how long an account may go without a login before the
// deactivation sweep disables it.
const staleAfter = 30 * 24 * time.Hour

// TokenPair is an access/refresh token pair issued on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Password string
	Phone    *string
	City     *string
}

// ProfileInput carries the fields a user may change on their profile.
type ProfileInput struct {
	Phone     *string
	City      *string
	AvatarURL *string
}

type UserService struct {
	users  repository.UserRepository
	jwtCfg config.JWTConfig
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, jwtCfg config.JWTConfig, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		jwtCfg: jwtCfg,
		logger: logger,
	}
}

// Register creates an account and returns it with a fresh token pair.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, *TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		City:         input.City,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, tokens, nil
}

// Login verifies credentials, records the login time and issues tokens.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, nil, domainErrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, domainErrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domainErrors.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainErrors.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, domainErrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile changes profile fields; only the account holder or staff
// may do so.
func (s *UserService) UpdateProfile(ctx context.Context, actorID int64, actorRole string, id int64, input ProfileInput) (*model.User, error) {
	if actorID != id && actorRole != model.RoleStaff {
		return nil, domainErrors.ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.City != nil {
		user.City = input.City
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID int64, actorRole string, id int64) error {
	if actorID != id && actorRole != model.RoleStaff {
		return domainErrors.ErrForbidden
	}
	return s.users.Delete(ctx, id)
}

// DeactivateStaleUsers disables active non-staff accounts that have not
// logged in for 30 days and returns how many were affected.
func (s *UserService) DeactivateStaleUsers(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-staleAfter)

	count, err := s.users.DeactivateStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.logger.Info("Deactivated stale accounts", zap.Int64("count", count))
	}
	return count, nil
}

func (s *UserService) issueTokens(user *model.User) (*TokenPair, error) {
	accessTTL := s.jwtCfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	refreshTTL := s.jwtCfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	access, err := s.signToken(user, "access", accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *UserService) signToken(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        strconv.FormatInt(user.ID, 10),
		"email":      user.Email,
		"role":       user.Role,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}
