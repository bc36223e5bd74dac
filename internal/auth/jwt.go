package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

var jwtSecret = []byte("your-secret-key-here")

// SetSecret installs the signing secret from configuration. Called once at
// startup, before the server accepts requests.
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// GenerateToken signs a short-lived HS256 token for the given user. The
// subject claim carries the user ID; everything else about the user is
// looked up from the database on each request.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken verifies the signature and returns the parsed token. Only HS256
// is accepted.
func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
}

// Subject extracts the user ID from a verified token. Returns an error when
// the sub claim is absent or malformed.
func Subject(token *jwt.Token) (int, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("unexpected claims type")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("missing sub claim")
	}
	return int(sub), nil
}
