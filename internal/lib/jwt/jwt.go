package jwt

import (
	"errors"
	"fmt"

	"portfolio/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
)

// ParseClaims reads sub, email, iat and exp from an access token issued by
// the data service. The signature is not verified.
func ParseClaims(token string) (models.TokenMeta, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return models.TokenMeta{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.TokenMeta{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return models.TokenMeta{}, ErrInvalidTokenClaims
	}

	meta := models.TokenMeta{UserID: sub}

	if email, ok := claims["email"].(string); ok {
		meta.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		meta.IssuedAt = iat.Unix()
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		meta.ExpiresAt = exp.Unix()
	}

	return meta, nil
}
