// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// CustomClaims расширяет стандартные claims JWT, добавляя username пользователя;
// идентификатор пользователя хранится в стандартном поле subject.
//
// Методы GenerateToken и ParseToken реализуют создание и валидацию JWT токена с заданными claims.
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Классы отказов при разборе токена. Наружу, за пределы логов,
// отдается только обобщенный ответ 401.
var (
	// ErrTokenExpired токен корректен, но срок его действия истек
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenMalformed строка не разбирается как JWT
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrInvalidSignature подпись не совпадает с ожидаемой для секрета и алгоритма
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrMissingClaims подпись верна, но обязательные поля subject или username отсутствуют
	ErrMissingClaims = errors.New("token is missing required claims")
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Username             string `json:"username"` // Имя пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject, ExpiresAt, IssuedAt и пр.)
}

// UserID возвращает идентификатор пользователя из поля subject.
func (c *CustomClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// GenerateToken создает JWT токен с заданными userID и username,
// подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userID int64, username string) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := CustomClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(j.method, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия,
// возвращает CustomClaims с данными, если токен корректен.
//
// Любой отказ сводится к одному из классов: ErrTokenExpired, ErrTokenMalformed,
// ErrInvalidSignature, ErrMissingClaims. Токен с верной подписью, но без
// subject или username, отклоняется с ErrMissingClaims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{j.method.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenMalformed)
	}
	if claims.Subject == "" || claims.Username == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingClaims)
	}
	return claims, nil
}

// classify сводит ошибки библиотеки golang-jwt к классам пакета.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenMalformed
	}
}
