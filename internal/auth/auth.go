package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/embermedia/creatorsite/pkg/config"
)

const issuer = "creatorsite"

var (
	// ErrNotConfigured is returned when admin credentials are not set
	ErrNotConfigured = errors.New("admin auth is not configured")
	// ErrInvalidCredentials is returned on a failed sign-in
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidSession is returned for missing/expired/forged tokens
	ErrInvalidSession = errors.New("invalid session")
)

// Session is a verified admin session
type Session struct {
	Email     string
	ExpiresAt time.Time
}

// Manager issues and verifies admin session tokens. The public site
// never touches it; only write operations sit behind a session.
type Manager struct {
	email    string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a session manager from auth configuration
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		email:    cfg.AdminEmail,
		password: cfg.AdminPassword,
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.SessionTTL,
		now:      time.Now,
	}
}

// SignIn checks the configured admin credentials and returns a signed
// session token
func (m *Manager) SignIn(email, password string) (string, error) {
	if len(m.secret) == 0 || m.email == "" || m.password == "" {
		return "", ErrNotConfigured
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(strings.ToLower(m.email)))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password))
	if emailOK&passwordOK != 1 {
		return "", ErrInvalidCredentials
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   m.email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Verify validates a session token and returns the session it carries
func (m *Manager) Verify(token string) (*Session, error) {
	if len(m.secret) == 0 {
		return nil, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidSession
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}

	return &Session{
		Email:     claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
