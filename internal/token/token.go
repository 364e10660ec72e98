// Package token issues and verifies the signed identity tokens the service
// hands out on login. Tokens are stateless HS256 JWTs; there is no
// server-side revocation list, which means no mid-lifetime revocation —
// an accepted limitation of the design, not an oversight.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/elsaedy55/Revo-backend/internal/domain"
)

// Typed verification failures. Callers branch on these with errors.Is.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrMissingSubject   = errors.New("token missing subject")
)

// Claims carries the identity assertion. Subject, issuer and expiry live in
// the registered claims; email and display name ride alongside.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service signs and verifies identity tokens with a process-wide secret
// loaded once at startup. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	signingKey []byte
	issuer     string
}

// NewService constructs a token service. The issuer is the server origin and
// ends up in the iss claim of every issued token.
func NewService(signingKey, issuer string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

// Issue builds and signs a token asserting the given identity for ttl.
func (s *Service) Issue(identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: identity.Email,
		Name:  identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.SubjectID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Verify parses and validates a token string, resolving it to an Identity.
// Failure modes are reported through the typed errors above.
func (s *Service) Verify(tokenString string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Identity{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
			return domain.Identity{}, ErrInvalidSignature
		default:
			return domain.Identity{}, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, ErrMalformed
	}
	if claims.Subject == "" {
		return domain.Identity{}, ErrMissingSubject
	}

	return domain.Identity{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}
