package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xyz-asif/gocart/pkg/errors"
)

// Issue signs an HS256 token carrying the given claims. The issuance and
// expiry timestamps are added on top of the caller's payload.
func Issue(claims map[string]interface{}, secret string, lifetime time.Duration) (string, error) {
	if len(claims) == 0 {
		return "", fmt.Errorf("%w: payload must be a non-empty map", apperrors.ErrInvalidArgument)
	}
	if secret == "" {
		return "", fmt.Errorf("%w: secret must be a non-empty string", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	mapClaims := jwt.MapClaims{
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(lifetime)),
	}
	for k, v := range claims {
		mapClaims[k] = v
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString([]byte(secret))
}

// Verify parses and validates a token against the secret of its class and
// returns the claims. Failures map onto the taxonomy: ErrTokenExpired,
// ErrInvalidSignature, ErrTokenMalformed.
func Verify(tokenString, secret string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		switch {
		case apperrors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case apperrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.ErrInvalidSignature
		default:
			return nil, apperrors.ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.ErrTokenMalformed
	}

	return claims, nil
}

// Email pulls the email claim out of a verified claims map.
func Email(claims jwt.MapClaims) string {
	email, _ := claims["email"].(string)
	return email
}
