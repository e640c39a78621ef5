// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolausus/auth-backend/internal/lib/jwt"
	"github.com/nikolausus/auth-backend/internal/lib/password"
	"github.com/nikolausus/auth-backend/internal/models"
	"github.com/nikolausus/auth-backend/internal/storage/repository"
)

// ErrInvalidCredentials неверная пара username/пароль. Один и тот же ответ
// для несуществующего пользователя и для неверного пароля, чтобы по ответу
// нельзя было перебирать имена пользователей.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ListUsers возвращает всех пользователей по возрастанию id.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и перечень пользователей.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и возвращает его ID.
//
// Занятый username пробрасывается как repository.ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (int64, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return s.users.CreateUser(ctx, username, hashed)
}

// Login проверяет пароль пользователя и генерирует JWT.
//
// Для неизвестного username и для неверного пароля возвращается одна и та же
// ошибка ErrInvalidCredentials; прочие ошибки хранилища отдаются как есть.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ListUsers возвращает всех зарегистрированных пользователей в порядке создания.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}
