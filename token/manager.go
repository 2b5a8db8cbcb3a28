package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/users"
)

const (
	defaultAccessTokenExpiry = 60 * time.Minute
	refreshTokenExpiry       = 7 * 24 * time.Hour
)

// Manager issues and validates stateless session tokens. It holds no
// mutable state after construction and is safe for concurrent use.
type Manager struct {
	signer            Signer
	parser            *jwt.Parser
	accessTokenExpiry time.Duration
	nowFunc           func() time.Time
}

type ManagerOption func(*Manager)

// WithTokenExpiry sets the access token lifetime. The refresh token
// lifetime is fixed.
func WithTokenExpiry(accessTokenExpiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.accessTokenExpiry = accessTokenExpiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func New(signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer: signer,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.accessTokenExpiry <= 0 {
		m.accessTokenExpiry = defaultAccessTokenExpiry
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}

	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.nowFunc() }),
	)
	return m
}

// NewFromConfig builds a Manager from the token section of the configuration.
func NewFromConfig(cfg config.TokenConfig, options ...ManagerOption) (*Manager, error) {
	signer, err := NewSignerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	options = append([]ManagerOption{WithTokenExpiry(cfg.GetAccessTokenExpiry())}, options...)
	return New(signer, options...), nil
}

// AccessTokenExpiry is the configured access token lifetime.
func (m *Manager) AccessTokenExpiry() time.Duration {
	return m.accessTokenExpiry
}

func (m *Manager) IssueAccessToken(identity users.Identity) (string, error) {
	return m.issue(identity, TypeAccess, m.accessTokenExpiry)
}

func (m *Manager) IssueRefreshToken(identity users.Identity) (string, error) {
	return m.issue(identity, TypeRefresh, refreshTokenExpiry)
}

// IssuePair issues an access and a refresh token carrying the same identity.
func (m *Manager) IssuePair(identity users.Identity) (*Pair, error) {
	accessToken, err := m.IssueAccessToken(identity)
	if err != nil {
		return nil, errors.Wrapf(err, "Manager.IssuePair access token")
	}
	refreshToken, err := m.IssueRefreshToken(identity)
	if err != nil {
		return nil, errors.Wrapf(err, "Manager.IssuePair refresh token")
	}
	return &Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(m.accessTokenExpiry.Seconds()),
	}, nil
}

// ValidateAccessToken returns the claims of a valid access token. A bad
// signature, malformed token or expired token yields ErrInvalidToken; a
// valid refresh token yields ErrWrongTokenType.
func (m *Manager) ValidateAccessToken(raw string) (*Claims, error) {
	claims, err := m.validate(raw)
	if err != nil {
		return nil, err
	}
	if claims.Type != TypeAccess {
		return nil, fmt.Errorf("%w: expected %q, got %q", errors.ErrWrongTokenType, TypeAccess, claims.Type)
	}
	return claims, nil
}

// ValidateRefreshToken returns the claims of a valid refresh token, or
// false for anything else.
func (m *Manager) ValidateRefreshToken(raw string) (*Claims, bool) {
	claims, err := m.validate(raw)
	if err != nil || claims.Type != TypeRefresh {
		return nil, false
	}
	return claims, true
}

func (m *Manager) issue(identity users.Identity, tokenType Type, expiry time.Duration) (string, error) {
	now := m.nowFunc()
	claims := sessionClaims{
		Email:    identity.Email,
		FullName: identity.FullName,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := m.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to issue %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (m *Manager) validate(raw string) (*Claims, error) {
	var sc sessionClaims
	if _, err := m.parser.ParseWithClaims(raw, &sc, m.signer.GetVerificationKey); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidToken, err)
	}

	id, err := users.ParseSubject(sc.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q is not an LMS user id", errors.ErrInvalidToken, sc.Subject)
	}

	claims := &Claims{
		Identity: users.Identity{
			ID:       id,
			Email:    sc.Email,
			FullName: sc.FullName,
		},
		Type:      sc.Type,
		TokenID:   sc.ID,
		ExpiresAt: sc.ExpiresAt.Time,
	}
	if sc.IssuedAt != nil {
		claims.IssuedAt = sc.IssuedAt.Time
	}
	return claims, nil
}
