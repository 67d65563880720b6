// Package auth gates the mutating tuning endpoints (reload, restore) with
// short-lived HS256 bearer tokens. There is no user store: tokens are
// minted by the server operator, not logged into.
package auth

import (
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Auth signs and verifies admin tokens with a key persisted in the data
// directory, so tokens survive a server restart.
type Auth struct {
	key    []byte
	issuer string
}

// New loads the signing key from dataDir, generating one on first run.
func New(dataDir string) (*Auth, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	keyPath := filepath.Join(dataDir, "jwt.key")
	key, err := os.ReadFile(keyPath)
	if err != nil || len(key) < 32 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		if err := os.WriteFile(keyPath, key, 0o600); err != nil {
			return nil, err
		}
	}
	return &Auth{key: key, issuer: "starblitz-balance"}, nil
}

// IssueAdminToken mints a bearer token valid for ttl.
func (a *Auth) IssueAdminToken(ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": "admin",
		"iss": a.issuer,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.key)
}

// VerifyAdminToken checks signature, expiry and subject.
func (a *Auth) VerifyAdminToken(raw string) error {
	if raw == "" {
		return ErrInvalidToken
	}
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !t.Valid {
		return ErrInvalidToken
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub != "admin" {
		return ErrInvalidToken
	}
	return nil
}

// Middleware rejects requests without a valid bearer token. The token may
// also ride in ?token= for tools that cannot set headers.
func (a *Auth) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tok string
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tok = strings.TrimPrefix(h, "Bearer ")
		} else {
			tok = r.URL.Query().Get("token")
		}
		if err := a.VerifyAdminToken(tok); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
