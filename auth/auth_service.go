package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/token"
	"github.com/jrsteele09/lms-mobile-gateway/users"
	"github.com/rs/zerolog/log"
)

// Session is the outcome of a successful login or refresh.
type Session struct {
	Pair *token.Pair
	User users.Identity
}

// Service turns identity proofs into session token pairs.
type Service struct {
	directory users.Directory
	tokens    *token.Manager
	verifier  AssertionVerifier
	exchanger CodeExchanger // nil when code exchange is not configured
	devLogin  bool
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithCodeExchanger enables login with a Google authorization code.
func WithCodeExchanger(exchanger CodeExchanger) ServiceOption {
	return func(s *Service) {
		s.exchanger = exchanger
	}
}

// WithDevLogin enables the password-less development login.
func WithDevLogin(enabled bool) ServiceOption {
	return func(s *Service) {
		s.devLogin = enabled
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(
	directory users.Directory,
	tokens *token.Manager,
	verifier AssertionVerifier,
	options ...ServiceOption,
) (*Service, error) {
	if directory == nil {
		return nil, errors.New("[NewService] user directory is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token manager is required")
	}
	if verifier == nil {
		return nil, errors.New("[NewService] assertion verifier is required")
	}

	s := &Service{
		directory: directory,
		tokens:    tokens,
		verifier:  verifier,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// CodeExchangeEnabled reports whether LoginWithAuthCode can succeed.
func (s *Service) CodeExchangeEnabled() bool {
	return s.exchanger != nil
}

// LoginWithIDToken logs in the LMS user whose email the Google ID token
// proves.
func (s *Service) LoginWithIDToken(ctx context.Context, rawIDToken string) (*Session, error) {
	assertion, ok := s.verifier.Verify(ctx, rawIDToken)
	if !ok {
		return nil, errors.ErrInvalidIdentityAssertion
	}
	return s.loginRegistered(ctx, assertion.Email)
}

// LoginWithAuthCode is LoginWithIDToken for the server auth code flow.
func (s *Service) LoginWithAuthCode(ctx context.Context, code string) (*Session, error) {
	if s.exchanger == nil {
		return nil, errors.ErrCodeExchangeDisabled
	}
	assertion, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("authorization code rejected")
		return nil, errors.ErrInvalidIdentityAssertion
	}
	return s.loginRegistered(ctx, assertion.Email)
}

// DevLogin logs in without any identity proof. With an empty email the
// owner of the LMS service token is used.
func (s *Service) DevLogin(ctx context.Context, email string) (*Session, error) {
	if !s.devLogin {
		return nil, errors.ErrDevLoginDisabled
	}

	var (
		user *users.Identity
		ok   bool
	)
	if email = strings.TrimSpace(email); email != "" {
		user, ok = s.directory.FindUserByEmail(ctx, email)
	} else {
		id, err := s.directory.CurrentUserID(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "Service.DevLogin CurrentUserID")
		}
		user, ok = s.directory.FindUserByID(ctx, id)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no LMS user for %q", errors.ErrNotFound, email)
	}

	log.Ctx(ctx).Warn().Int64("user_id", user.ID).Msg("dev login issued a session without identity verification")
	return s.newSession(*user)
}

// Refresh rotates a token pair. The identity carried by the refresh token
// is reused as is.
func (s *Service) Refresh(_ context.Context, refreshToken string) (*Session, error) {
	claims, ok := s.tokens.ValidateRefreshToken(refreshToken)
	if !ok {
		return nil, errors.ErrRefreshRejected
	}
	return s.newSession(claims.Identity)
}

func (s *Service) loginRegistered(ctx context.Context, email string) (*Session, error) {
	user, ok := s.directory.FindUserByEmail(ctx, email)
	if !ok {
		return nil, errors.ErrIdentityNotRegistered
	}
	return s.newSession(*user)
}

func (s *Service) newSession(user users.Identity) (*Session, error) {
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, errors.Wrapf(err, "Service.newSession IssuePair")
	}
	return &Session{Pair: pair, User: user}, nil
}
