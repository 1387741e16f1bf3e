// Package auth provides JWT issuance and validation for API access tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTService issues and validates signed access tokens.
type JWTService struct {
	secretKey      string
	expirationSecs int
}

// JWTCustomClaims carries the identity embedded in an access token.
type JWTCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Slug   string `json:"slug"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string, expirationSecs int) (*JWTService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	if expirationSecs <= 0 {
		expirationSecs = 3600
	}
	return &JWTService{
		secretKey:      secretKey,
		expirationSecs: expirationSecs,
	}, nil
}

// GenerateToken signs an HS256 access token for the given identity.
func (s *JWTService) GenerateToken(userID uint, email, slug string) (string, error) {
	now := time.Now()
	claims := &JWTCustomClaims{
		UserID: userID,
		Email:  email,
		Slug:   slug,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expirationSecs) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ParseToken validates the signature and expiry and returns the claims.
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// TokenTTL reports the configured access token lifetime.
func (s *JWTService) TokenTTL() time.Duration {
	return time.Duration(s.expirationSecs) * time.Second
}
