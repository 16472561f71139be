package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func fixedClock(at *time.Time) TokenOption {
	return WithClock(func() time.Time { return *at })
}

func newManager(t *testing.T, cfg TokenConfig, opts ...TokenOption) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(cfg, opts...)
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_Validation(t *testing.T) {
	cases := []struct {
		name string
		cfg  TokenConfig
	}{
		{"empty secret", TokenConfig{Algorithm: "HS256", TTL: time.Minute}},
		{"zero ttl", TokenConfig{Secret: "s", Algorithm: "HS256"}},
		{"rsa", TokenConfig{Secret: "s", Algorithm: "RS256", TTL: time.Minute}},
		{"none", TokenConfig{Secret: "s", Algorithm: "none", TTL: time.Minute}},
		{"unknown", TokenConfig{Secret: "s", Algorithm: "HS1024", TTL: time.Minute}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTokenManager(tc.cfg)
			assert.Error(t, err)
		})
	}

	m := newManager(t, TokenConfig{Secret: "s", TTL: time.Minute})
	assert.Equal(t, "HS256", m.method.Alg())
	assert.Equal(t, time.Minute, m.TTL())
}

func TestIssueAndVerify(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			now := t0
			m := newManager(t, TokenConfig{Secret: "k", Algorithm: alg, TTL: 30 * time.Minute}, fixedClock(&now))

			tok, err := m.Issue("johndoe")
			require.NoError(t, err)
			assert.Equal(t, t0.Add(30*time.Minute), tok.Exp)
			assert.Len(t, strings.Split(tok.Token, "."), 3)

			sub, err := m.Verify(tok.Token)
			require.NoError(t, err)
			assert.Equal(t, "johndoe", sub)
		})
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	const ttl = 30 * time.Minute
	now := t0
	m := newManager(t, TokenConfig{Secret: "k", TTL: ttl}, fixedClock(&now))
	tok, err := m.Issue("johndoe")
	require.NoError(t, err)

	now = t0.Add(ttl - time.Second)
	_, err = m.Verify(tok.Token)
	require.NoError(t, err, "still valid just before exp")

	now = t0.Add(ttl)
	_, err = m.Verify(tok.Token)
	assert.ErrorIs(t, err, ErrTokenExpired, "exp itself is already too late")

	now = t0.Add(ttl + time.Second)
	_, err = m.Verify(tok.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestVerify_WrongSecret(t *testing.T) {
	now := t0
	issuer := newManager(t, TokenConfig{Secret: "one", TTL: time.Hour}, fixedClock(&now))
	verifier := newManager(t, TokenConfig{Secret: "two", TTL: time.Hour}, fixedClock(&now))

	tok, err := issuer.Issue("johndoe")
	require.NoError(t, err)
	_, err = verifier.Verify(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestVerify_OtherAlgorithmRejected(t *testing.T) {
	now := t0
	hs512 := newManager(t, TokenConfig{Secret: "k", Algorithm: "HS512", TTL: time.Hour}, fixedClock(&now))
	hs256 := newManager(t, TokenConfig{Secret: "k", Algorithm: "HS256", TTL: time.Hour}, fixedClock(&now))

	tok, err := hs512.Issue("johndoe")
	require.NoError(t, err)
	_, err = hs256.Verify(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	m := newManager(t, TokenConfig{Secret: "k", TTL: time.Hour})
	for _, raw := range []string{"", "abc", "a.b.c", "Bearer x.y.z"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformedToken, raw)
		assert.ErrorIs(t, err, ErrAuth, raw)
	}
}

func TestVerify_MissingSubjectOrExpiry(t *testing.T) {
	now := t0
	m := newManager(t, TokenConfig{Secret: "k", TTL: time.Hour}, fixedClock(&now))

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = m.Verify(noSub)
	assert.ErrorIs(t, err, ErrMalformedToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "johndoe",
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = m.Verify(noExp)
	assert.ErrorIs(t, err, ErrAuth)
}
