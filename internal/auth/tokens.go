package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cliptube/backend/internal/models"
)

var (
	// ErrInvalidToken indicates a token failed signature or expiry validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked indicates a refresh token no longer matches the stored one.
	ErrTokenRevoked = errors.New("refresh token revoked")
)

// RefreshTokenStore persists the single current refresh token per user.
// Storing an empty token clears it.
type RefreshTokenStore interface {
	SetRefreshToken(ctx context.Context, userID, token string) error
	FindByID(ctx context.Context, userID string) (models.User, error)
}

type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager issues and validates the access/refresh token pair. Both tokens
// are HS256 JWTs; the refresh token is additionally persisted single-valued
// on the user record, so replacement or logout invalidates older ones.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	store RefreshTokenStore
	now   func() time.Time
}

// NewManager constructs a Manager signing with secret and issuing tokens
// with the provided TTLs.
func NewManager(secret string, accessTTL, refreshTTL time.Duration, store RefreshTokenStore) *Manager {
	if store == nil {
		panic("auth: refresh token store must not be nil")
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
		now:        time.Now,
	}
}

// Issue creates a new token pair for the user and persists the refresh token.
func (m *Manager) Issue(ctx context.Context, userID string) (models.TokenPair, error) {
	if userID == "" {
		return models.TokenPair{}, errors.New("user id must be provided")
	}

	now := m.now().UTC()

	access, accessExp, err := m.sign(userID, now, m.accessTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, refreshExp, err := m.sign(userID, now, m.refreshTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := m.store.SetRefreshToken(ctx, userID, refresh); err != nil {
		return models.TokenPair{}, fmt.Errorf("persist refresh token: %w", err)
	}

	return models.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Verify validates an access token and returns the user id it names.
func (m *Manager) Verify(token string) (string, error) {
	return m.parse(token)
}

// Refresh exchanges a refresh token for a fresh pair. The token must both
// validate and equal the one currently stored on the user record; a token
// superseded by a later login is rejected even while cryptographically valid.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	userID, err := m.parse(refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := m.store.FindByID(ctx, userID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("load user for refresh: %w", err)
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return models.TokenPair{}, ErrTokenRevoked
	}

	return m.Issue(ctx, userID)
}

// Revoke clears the stored refresh token, ending the user's session.
func (m *Manager) Revoke(ctx context.Context, userID string) error {
	return m.store.SetRefreshToken(ctx, userID, "")
}

func (m *Manager) sign(userID string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "cliptube",
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *Manager) parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.UserID == "" {
		return "", ErrInvalidToken
	}
	return c.UserID, nil
}

// WithNowFunc overrides the time source. Useful for tests.
func (m *Manager) WithNowFunc(now func() time.Time) {
	m.now = now
}
