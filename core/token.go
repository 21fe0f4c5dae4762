package core

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned by Verify when the credential's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned by Verify for malformed tokens and bad signatures.
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService issues and verifies signed, time-bound bearer credentials
// (HS256 JWTs). Validity is stateless: signature plus expiry, no server-side
// session record.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService builds a TokenService around a process-wide signing key.
func NewTokenService(secret []byte, validity time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty token signing key")
	}
	return &TokenService{secret: secret, validity: validity}, nil
}

// Issue signs a credential asserting that userID was authenticated now,
// valid until now + the configured window.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and recovers the subject user id.
// Expired credentials yield ErrTokenExpired; everything else that fails
// (malformed token, wrong algorithm, bad signature, empty subject) yields
// ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
