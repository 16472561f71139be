package utils // package utils provides token signing and password hashing helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrAuth is the parent of every token verification failure.  Callers that
// only care whether a token is usable check errors.Is(err, ErrAuth).
var ErrAuth = errors.New("invalid token")

var (
	ErrMalformedToken   = fmt.Errorf("%w: malformed", ErrAuth)
	ErrInvalidSignature = fmt.Errorf("%w: bad signature", ErrAuth)
	ErrTokenExpired     = fmt.Errorf("%w: expired", ErrAuth)
)

// AccessToken is a signed JWT together with its expiry.  The Token field
// travels in the Authorization header of every protected request.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenConfig holds the signing settings, built once from config.Config.
type TokenConfig struct {
	Secret    string
	Algorithm string // HS256, HS384 or HS512
	TTL       time.Duration
}

// TokenManager issues and verifies HMAC signed access tokens.  It holds no
// mutable state and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces time.Now, mainly so tests can pin the current time.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

// NewTokenManager validates cfg and returns a manager.  Only the HMAC
// family is accepted since the secret is a shared key.
func NewTokenManager(cfg TokenConfig, opts ...TokenOption) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: empty secret")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("jwt: ttl must be positive, got %s", cfg.TTL)
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: unsupported algorithm %q", cfg.Algorithm)
	}
	m := &TokenManager{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL reports how long issued tokens stay valid.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for subject.  Claims are sub, iat and exp = now+TTL.
func (m *TokenManager) Issue(subject string) (AccessToken, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return AccessToken{}, err
	}
	// NumericDate drops sub-second precision; report the expiry that was signed.
	return AccessToken{Token: signed, Exp: claims.ExpiresAt.Time.UTC()}, nil
}

// Verify checks the algorithm, signature and expiry of raw and returns the
// subject.  A token is valid while now is strictly before exp.
func (m *TokenManager) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", ErrInvalidSignature
	default:
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}
	return claims.Subject, nil
}
