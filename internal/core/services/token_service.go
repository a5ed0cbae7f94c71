package services

import (
	"fmt"
	"time"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/utils"
)

// TokenService issues and validates signed session tokens.
type TokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

func NewTokenService(secret string, expiry time.Duration, issuer string) *TokenService {
	return &TokenService{secret: secret, expiry: expiry, issuer: issuer}
}

func (s *TokenService) GenerateAccessToken(subject string) (string, error) {
	token, err := utils.GenerateJWT(subject, s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// ParseAccessToken validates the token and returns its subject. Any parse or
// validation failure maps to ErrUnauthorized so callers fail closed.
func (s *TokenService) ParseAccessToken(tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.secret)
	if err != nil {
		return "", apperrors.NewUnauthorizedError("invalid token")
	}
	if claims.Subject == "" {
		return "", apperrors.NewUnauthorizedError("invalid token claims")
	}
	return claims.Subject, nil
}
