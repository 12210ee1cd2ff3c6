package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues HS256 access tokens and verifies HS256 or, when a JWKS
// provider is attached, RS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	jwks   *Provider
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, jwks *Provider) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		jwks:   jwks,
		now:    time.Now,
	}
}

// Issue signs a token whose subject is the user id.
func (m *TokenManager) Issue(userID int64) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("token secret not configured")
	}
	now := m.now()
	expires := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify validates the signature and expiry and returns the subject user id.
func (m *TokenManager) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
		if err := m.jwks.checkClaims(claims); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

func (m *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(m.secret) == 0 {
			return nil, errors.New("hmac secret not configured")
		}
		return m.secret, nil
	case *jwt.SigningMethodRSA:
		if m.jwks == nil || m.jwks.issuer == "" {
			return nil, errors.New("rs256 tokens not accepted")
		}
		return m.jwks.KeyFunc(token)
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}
