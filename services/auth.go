package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// AccessTokenDuration is the lifetime of an access token
	AccessTokenDuration = 30 * time.Minute
	// RefreshTokenDuration is the lifetime of a refresh token
	RefreshTokenDuration = 7 * 24 * time.Hour

	// Token type claim values
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// TokenClaims includes the registered JWT claims plus the application claims.
// TokenType distinguishes access tokens from refresh tokens so one can never
// be used in place of the other.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
}

// GenerateAccessToken issues a short-lived access token for a user
func GenerateAccessToken(secret, userID, username string, isAdmin bool) (string, error) {
	return generateToken(secret, userID, username, isAdmin, TokenTypeAccess, AccessTokenDuration)
}

// GenerateRefreshToken issues a long-lived refresh token for a user
func GenerateRefreshToken(secret, userID, username string, isAdmin bool) (string, error) {
	return generateToken(secret, userID, username, isAdmin, TokenTypeRefresh, RefreshTokenDuration)
}

func generateToken(secret, userID, username string, isAdmin bool, tokenType string, duration time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is empty")
	}
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
		UserID:    userID,
		Username:  username,
		IsAdmin:   isAdmin,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a token of the expected type and returns its claims.
// Returns an error if the token is expired, tampered with, signed with an
// unexpected method or of the wrong type.
func ParseToken(secret, tokenString, expectedType string) (*TokenClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("expected %s token, got %s", expectedType, claims.TokenType)
	}
	return claims, nil
}
