// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VoterClaims carries the authenticated voter's username alongside the
// registered JWT claims.
type VoterClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateVoterToken signs a voter session token valid for the given duration.
// The token only proves the voter authenticated; vote eligibility is checked
// against coordinator state on every cast.
func GenerateVoterToken(username string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, VoterClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Username: username,
	})

	return token.SignedString(secret)
}

// VoterFromToken verifies a voter session token and returns the username.
func VoterFromToken(tokenString string, secret []byte) (string, error) {
	claims := &VoterClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}

	return claims.Username, nil
}
