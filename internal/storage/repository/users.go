package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nikolausus/auth-backend/internal/models"
)

var (
	// ErrUserNotFound пользователь с таким username отсутствует;
	// для поиска это штатный исход, который интерпретирует вызывающий код
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken username уже занят, нарушено ограничение уникальности
	ErrUsernameTaken = errors.New("username is already taken")
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
//
// Уникальность username обеспечивается ограничением UNIQUE на стороне базы:
// вставка и проверка атомарны, двух строк при конкурентной регистрации
// возникнуть не может. Нарушение ограничения отображается в ErrUsernameTaken.
func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (username, password_hash)
			  VALUES ($1, $2)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, username, passwordHash).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
//
// Если пользователь не найден, возвращает ErrUserNotFound.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, created_at
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей в порядке создания (по id по возрастанию).
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, created_at
			  FROM users
			  ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
