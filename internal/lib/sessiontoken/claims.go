// Package sessiontoken реализует подписанную cookie сессии.
//
// Значение cookie — это JWT (HS256), внутри которого лежит только
// непрозрачный идентификатор сессии. Подпись секретным ключом не даёт
// клиенту подменить sid; сами данные сессии живут в хранилище на сервере.
package sessiontoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает полезную нагрузку токена сессии.
type Claims struct {
	SessionID            string `json:"sid"` // Непрозрачный идентификатор сессии
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt)
}

// Maker описывает интерфейс выпуска и разбора токена сессии.
type Maker interface {
	// Generate выпускает токен для идентификатора сессии.
	Generate(sessionID string) (string, error)
	// Parse проверяет подпись и срок токена и возвращает claims.
	Parse(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на секретном ключе и TTL.
type MakerImpl struct {
	secretKey string        // Секретный ключ подписи
	tokenTTL  time.Duration // Время жизни токена
}

// NewMaker создаёт MakerImpl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
