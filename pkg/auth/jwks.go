package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// minRefreshInterval bounds how often an unknown kid can trigger a fetch.
const minRefreshInterval = time.Minute

var ErrUnknownKey = errors.New("jwks: unknown key id")

type JWKS struct {
	Keys []JSONWebKey `json:"keys"`
}

type JSONWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// Provider resolves RS256 verification keys from a remote JWKS document.
// Keys are parsed once per fetch and concurrent misses share one request.
// Tokens it verifies must carry the configured issuer, and the audience when
// one is set.
type Provider struct {
	url      string
	issuer   string
	audience string
	client   *http.Client
	group    singleflight.Group

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	refreshed time.Time
}

func NewProvider(jwksURL, issuer, audience string) *Provider {
	return &Provider{
		url:      jwksURL,
		issuer:   issuer,
		audience: audience,
		client:   &http.Client{Timeout: 5 * time.Second},
		keys:     map[string]*rsa.PublicKey{},
	}
}

// checkClaims enforces the issuer and audience of externally signed tokens.
func (p *Provider) checkClaims(claims *jwt.RegisteredClaims) error {
	if p.issuer == "" {
		return errors.New("rs256 issuer not configured")
	}
	if claims.Issuer != p.issuer {
		return fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if p.audience != "" && !slices.Contains(claims.Audience, p.audience) {
		return errors.New("audience mismatch")
	}
	return nil
}

// KeyFunc plugs into jwt.Parse for RS256 tokens carrying a kid header.
func (p *Provider) KeyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("kid header not found")
	}
	return p.publicKey(kid)
}

func (p *Provider) publicKey(kid string) (*rsa.PublicKey, error) {
	if key := p.cached(kid); key != nil {
		return key, nil
	}

	_, err, _ := p.group.Do("refresh", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return nil, p.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	if key := p.cached(kid); key != nil {
		return key, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKey, kid)
}

func (p *Provider) cached(kid string) *rsa.PublicKey {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.keys[kid]
}

func (p *Provider) refresh(ctx context.Context) error {
	p.mu.RLock()
	recent := time.Since(p.refreshed) < minRefreshInterval && len(p.keys) > 0
	p.mu.RUnlock()
	if recent {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("jwks fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}

	var doc JWKS
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("jwks decode: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := k.rsaPublicKey()
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	p.mu.Lock()
	p.keys = keys
	p.refreshed = time.Now()
	p.mu.Unlock()
	return nil
}

func (k JSONWebKey) rsaPublicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}
	exp := new(big.Int).SetBytes(e)
	if !exp.IsInt64() || exp.Int64() < 3 {
		return nil, errors.New("jwks: bad exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp.Int64())}, nil
}
