package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{ID: 42, Username: "alice"}

	tokenStr, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}

	token, err := ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("error parsing token: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected a valid token")
	}

	id, err := Subject(token)
	if err != nil {
		t.Fatalf("error extracting subject: %v", err)
	}
	if id != 42 {
		t.Errorf("expected subject 42, got %d", id)
	}
}

func TestParseToken_RejectsTampered(t *testing.T) {
	tokenStr, err := GenerateToken(models.User{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}

	if _, err := ParseToken(tokenStr + "x"); err == nil {
		t.Error("expected a tampered token to be rejected")
	}
}

func TestParseToken_RejectsWrongMethod(t *testing.T) {
	// alg "none" tokens must never verify
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": 1})
	tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("error signing token: %v", err)
	}

	if _, err := ParseToken(tokenStr); err == nil {
		t.Error("expected an unsigned token to be rejected")
	}
}

func TestSubject_MissingClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "alice"})
	tokenStr, err := token.SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("error signing token: %v", err)
	}

	parsed, err := ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("error parsing token: %v", err)
	}
	if _, err := Subject(parsed); err == nil {
		t.Error("expected an error for a token without sub")
	}
}
