package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/elsaedy55/Revo-backend/internal/domain"
	"github.com/elsaedy55/Revo-backend/internal/user/metrics"
	dErrors "github.com/elsaedy55/Revo-backend/pkg/domain-errors"
	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
)

const minPasswordLength = 6

// TokenIssuer signs identity tokens; satisfied by the token service.
type TokenIssuer interface {
	Issue(identity domain.Identity, ttl time.Duration) (string, error)
}

// Service handles registration and login, issuing a token on success.
type Service struct {
	store   Store
	issuer  TokenIssuer
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewService(store Store, issuer TokenIssuer, ttl time.Duration, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{store: store, issuer: issuer, ttl: ttl, metrics: m, log: log}
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := validateRegistration(email, password, name); err != nil {
		return AuthResult{}, err
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, dErrors.New(dErrors.CodeConflict, "email is already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return AuthResult{}, dErrors.Wrap(dErrors.CodeInternal, "register user failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, dErrors.Wrap(dErrors.CodeInternal, "register user failed", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.store.Save(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return AuthResult{}, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return AuthResult{}, dErrors.Wrap(dErrors.CodeInternal, "register user failed", err)
	}

	s.metrics.IncrementRegistered()
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)
	return s.authResult(u)
}

// Login verifies credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, dErrors.New(dErrors.CodeInvalidInput, "email and password are required")
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLogin("rejected")
			return AuthResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		s.metrics.IncrementLogin("error")
		return AuthResult{}, dErrors.Wrap(dErrors.CodeInternal, "login failed", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.metrics.IncrementLogin("rejected")
		return AuthResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	s.metrics.IncrementLogin("ok")
	return s.authResult(u)
}

func (s *Service) authResult(u User) (AuthResult, error) {
	token, err := s.issuer.Issue(domain.Identity{
		SubjectID:   u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}, s.ttl)
	if err != nil {
		return AuthResult{}, dErrors.Wrap(dErrors.CodeInternal, "issue token failed", err)
	}

	return AuthResult{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Token:       token,
	}, nil
}

func validateRegistration(email, password, name string) error {
	switch {
	case email == "":
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	case !govalidator.IsEmail(email):
		return dErrors.New(dErrors.CodeInvalidInput, "email format is invalid")
	case len(password) < minPasswordLength:
		return dErrors.New(dErrors.CodeInvalidInput, "password must be at least 6 characters")
	case len(name) < 2:
		return dErrors.New(dErrors.CodeInvalidInput, "name must be at least 2 characters")
	}
	return nil
}
