package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/snapgram/photo-service/internal/domain"
)

// UserRef is the authenticated caller's identity projected from a
// verified token: user ID, display name and avatar reference.
type UserRef struct {
	ID           domain.ID
	Name         string
	ProfileImage string
}

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// JWTManager verifies and issues HMAC-signed access tokens.
type JWTManager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTManager creates a JWTManager with the given signing secret.
func NewJWTManager(secret string, tokenTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Generate issues a signed token for the given user.
func (m *JWTManager) Generate(user UserRef) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Name:    user.Name,
		Picture: user.ProfileImage,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token and returns the caller it
// identifies.
func (m *JWTManager) Verify(tokenString string) (UserRef, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return UserRef{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return UserRef{}, fmt.Errorf("invalid token")
	}

	userID, err := domain.ParseID(claims.Subject)
	if err != nil {
		return UserRef{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	return UserRef{
		ID:           userID,
		Name:         claims.Name,
		ProfileImage: claims.Picture,
	}, nil
}
