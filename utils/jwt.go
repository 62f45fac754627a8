package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims identifies the calling service on console -> catalog requests.
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

// GenerateServiceToken signs an HS256 token for service with the given lifetime.
func GenerateServiceToken(secret []byte, service string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("token secret is empty")
	}
	now := time.Now()
	claims := &ServiceClaims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   service,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateServiceToken JWT 토큰 검증
func ValidateServiceToken(secret []byte, tokenString string) (*ServiceClaims, error) {
	claims := &ServiceClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
