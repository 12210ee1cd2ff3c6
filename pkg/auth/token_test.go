package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, nil)

	token, expires, err := m.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVerifyRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, nil)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other", time.Hour, nil)
		token, _, err := other.Issue(1)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("secret", time.Minute, nil)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := past.Issue(1)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIssueWithoutSecret(t *testing.T) {
	_, _, err := NewTokenManager("", time.Hour, nil).Issue(1)
	assert.Error(t, err)
}

func jwksServer(t *testing.T, key *rsa.PrivateKey) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signRS256(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "k1"
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifyRS256ViaJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := jwksServer(t, key)

	const issuer = "https://idp.example.com"
	m := NewTokenManager("", time.Hour, NewProvider(srv.URL, issuer, "alumni-api"))

	t.Run("accepts the configured issuer and audience", func(t *testing.T) {
		signed := signRS256(t, key, jwt.RegisteredClaims{Subject: "7", Issuer: issuer, Audience: jwt.ClaimStrings{"alumni-api"}})

		id, err := m.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)

		_, err = NewTokenManager("secret", time.Hour, nil).Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a foreign issuer", func(t *testing.T) {
		signed := signRS256(t, key, jwt.RegisteredClaims{Subject: "1", Issuer: "https://other.example.com", Audience: jwt.ClaimStrings{"alumni-api"}})

		_, err := m.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a missing issuer", func(t *testing.T) {
		signed := signRS256(t, key, jwt.RegisteredClaims{Subject: "1", Audience: jwt.ClaimStrings{"alumni-api"}})

		_, err := m.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects another audience", func(t *testing.T) {
		signed := signRS256(t, key, jwt.RegisteredClaims{Subject: "1", Issuer: issuer, Audience: jwt.ClaimStrings{"billing"}})

		_, err := m.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects rs256 when no issuer is configured", func(t *testing.T) {
		signed := signRS256(t, key, jwt.RegisteredClaims{Subject: "1", Issuer: issuer})

		_, err := NewTokenManager("", time.Hour, NewProvider(srv.URL, "", "")).Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))

	_, err = HashPassword(strings.Repeat("密", 30))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestProviderSkipsUnusableKeys(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{
			{Kid: "ec", Kty: "EC"},
			{Kid: "broken", Kty: "RSA", N: "!!", E: "AQAB"},
		}})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "https://idp.example.com", "")
	_, err := p.publicKey("broken")
	assert.ErrorIs(t, err, ErrUnknownKey)
	_, err = p.publicKey("ec")
	assert.ErrorIs(t, err, ErrUnknownKey)
	// An empty key set does not count as fresh, so each miss refetches.
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
