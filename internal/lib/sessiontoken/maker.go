package sessiontoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generate выпускает подписанный токен с идентификатором сессии.
// Время жизни токена определяется полем tokenTTL.
func (m *MakerImpl) Generate(sessionID string) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// Parse разбирает токен, проверяет подпись и срок действия,
// возвращает Claims, если токен корректен.
func (m *MakerImpl) Parse(tokenStr string) (*Claims, error) {
	const op = "sessiontoken.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
