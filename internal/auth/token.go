// Package auth issues and validates the bearer tokens used by the
// employee-facing routes. Full session management (refresh, revocation,
// device binding) is owned by the identity platform; this package only
// carries the claims the buddy module needs to know who is calling.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"peopledesk/internal/platform/middleware"
)

const defaultTokenTTL = 12 * time.Hour

// TokenService signs and validates HMAC JWTs.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
}

type Option func(*TokenService)

func WithTTL(ttl time.Duration) Option {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewTokenService(signingKey string, opts ...Option) *TokenService {
	s := &TokenService{signingKey: []byte(signingKey), ttl: defaultTokenTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueToken mints a token for the given user.
func (s *TokenService) IssueToken(userID int64, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning the caller identity.
func (s *TokenService) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token invalid")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return &middleware.JWTClaims{UserID: userID, SessionID: claims.ID}, nil
}
