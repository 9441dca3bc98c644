package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL est la durée de validité d'une session.
const TokenTTL = 7 * 24 * time.Hour

// GenerateToken signe un JWT HS256 dont le sujet est l'identifiant
// utilisateur.
func GenerateToken(userID, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
