package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "token"

	// DefaultSessionTTL is both the token lifetime and the cookie max-age.
	DefaultSessionTTL = 3 * time.Hour

	// MinSecretBytes is the shortest HMAC key NewSessionManager accepts.
	MinSecretBytes = 32
)

var (
	// ErrTokenMissing means the request carried neither a session cookie nor a bearer token.
	ErrTokenMissing = fmt.Errorf("%w: authentication token missing", domain.ErrUnauthorized)

	// ErrTokenInvalid covers malformed, tampered, expired, and wrongly-signed tokens alike.
	ErrTokenInvalid = fmt.Errorf("%w: invalid or expired authentication token", domain.ErrUnauthorized)

	// ErrSecretTooShort is returned by NewSessionManager for keys under MinSecretBytes.
	ErrSecretTooShort = errors.New("session secret too short")
)

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Claims is the canonical token payload: sub (user id), username, iat, exp.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens and owns the
// cookie policy used to carry them.
type SessionManager struct {
	secret       []byte
	ttl          time.Duration
	secureCookie bool
	now          func() time.Time
}

// SessionOption customises a SessionManager.
type SessionOption func(*SessionManager)

// WithTTL overrides DefaultSessionTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) SessionOption {
	return func(m *SessionManager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSecureCookie sets the Secure attribute on issued cookies.
func WithSecureCookie(secure bool) SessionOption {
	return func(m *SessionManager) { m.secureCookie = secure }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

// NewSessionManager returns a SessionManager signing with secret.
func NewSessionManager(secret []byte, opts ...SessionOption) (*SessionManager, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}
	m := &SessionManager{
		secret: secret,
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for the given user that expires after TTL.
func (m *SessionManager) Issue(userID uuid.UUID, username string) (string, error) {
	now := m.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth.SessionManager.Issue: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry, and returns the identity
// the token was issued for. Every failure is reported as ErrTokenInvalid.
func (m *SessionManager) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrTokenMissing
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: userID, Username: claims.Username}, nil
}

// SetCookie writes the session cookie carrying token.
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  m.now().Add(m.ttl),
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie immediately.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest returns the session token from the cookie, falling back to
// an "Authorization: Bearer" header. It returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
