// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки JWT токенов с идентификатором
// пользователя и username. MakerImpl — конкретная реализация с использованием
// секретного ключа, алгоритма подписи и срока жизни токена.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Методы позволяют создавать токен с указанием идентификатора пользователя
// и username, а также разбирать токен и извлекать из него кастомные данные.
type Maker interface {
	// GenerateToken создает подписанный токен для пользователя
	GenerateToken(userID int64, username string) (string, error)
	// ParseToken возвращает *CustomClaims с идентификатором и username
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа,
// алгоритма подписи и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string            // Секретный ключ для подписи токенов.
	method    jwt.SigningMethod // Алгоритм подписи (семейство HMAC).
	tokenTTL  time.Duration     // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа,
// идентификатора алгоритма (HS256, HS384, HS512) и TTL.
//
// Возвращает ошибку, если алгоритм неизвестен или не относится к семейству HMAC.
func NewJWTMaker(secretKey, algorithm string, ttl time.Duration) (*MakerImpl, error) {
	const op = "jwt.NewJWTMaker"
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("%s: unknown signing algorithm %q", op, algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%s: algorithm %q is not an HMAC method", op, algorithm)
	}
	return &MakerImpl{
		secretKey: secretKey,
		method:    method,
		tokenTTL:  ttl,
	}, nil
}
