package security

import (
	"errors"
	"fmt"
	"time"

	"digilocker/internal/common"
	"digilocker/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

// Token failures all resolve to an unauthenticated caller; the variants
// exist so callers and tests can tell them apart.
var (
	ErrTokenExpired   = fmt.Errorf("token expired: %w", common.ErrUnauthorized)
	ErrTokenInvalid   = fmt.Errorf("token invalid: %w", common.ErrUnauthorized)
	ErrTokenMalformed = fmt.Errorf("token malformed: %w", common.ErrUnauthorized)
)

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken signs a bearer token asserting the given username as
// subject, with issue and expiry instants.
func GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(config.AppConfig.JWTExp).Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken checks signature and expiry and returns the subject username.
// Any failure yields an unauthenticated outcome, never a degraded identity.
func VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return config.AppConfig.JWTKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		default:
			return "", ErrTokenInvalid
		}
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// GetSubjectFromClaims extracts the username out of verified middleware claims.
func GetSubjectFromClaims(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return sub, nil
}
