package service

import (
	"concert-booking/internal/cache"
	"concert-booking/internal/repository"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// 驗證帳密並發放 session token
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	sessions cache.SessionStore
}

func NewAuthService(userRepository repository.UserRepository, sessions cache.SessionStore) AuthService {
	return &AuthServiceImpl{
		users:    userRepository,
		sessions: sessions,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, user.ID)
}

// HashPassword 以 bcrypt 產生密碼雜湊
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
