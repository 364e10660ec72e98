// Package middleware holds the HTTP middleware chain: the authorization gate
// that resolves bearer tokens to identities, and client metadata capture.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/elsaedy55/Revo-backend/internal/domain"
	dErrors "github.com/elsaedy55/Revo-backend/pkg/domain-errors"
	"github.com/elsaedy55/Revo-backend/pkg/platform/httputil"
	"github.com/elsaedy55/Revo-backend/pkg/requestcontext"
)

// Typed authorization-gate failures. Every one of them is terminal for the
// request; there are no retries.
var (
	ErrMissingHeader   = errors.New("authorization header missing")
	ErrMalformedScheme = errors.New("authorization scheme must be Bearer")
	ErrEmptyToken      = errors.New("bearer token is empty")
	ErrInvalidToken    = errors.New("invalid token")
)

const bearerPrefix = "Bearer "

// TokenVerifier resolves a raw token string to an Identity. Injected so the
// gate never reaches for a global token service.
type TokenVerifier interface {
	Verify(tokenString string) (domain.Identity, error)
}

// Resolve extracts and verifies a bearer token from a raw Authorization
// header value. It is a pure function over the header and the verifier;
// the middleware below is a thin HTTP shell around it.
func Resolve(header string, verifier TokenVerifier) (domain.Identity, error) {
	if header == "" {
		return domain.Identity{}, ErrMissingHeader
	}
	after, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return domain.Identity{}, ErrMalformedScheme
	}
	if after == "" {
		return domain.Identity{}, ErrEmptyToken
	}

	identity, err := verifier.Verify(after)
	if err != nil {
		// Wrap so callers can still reach the underlying token failure.
		return domain.Identity{}, errors.Join(ErrInvalidToken, err)
	}
	return identity, nil
}

// RequireAuth resolves the Authorization header and binds the identity into
// request context. The binding is write-once: nothing downstream mutates it.
// All failures map to 401 per the canonical status table.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identity, err := Resolve(r.Header.Get("Authorization"), verifier)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized request",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.Wrap(dErrors.CodeUnauthorized, "unauthorized", err))
				return
			}

			ctx = requestcontext.WithSubjectID(ctx, identity.SubjectID)
			ctx = requestcontext.WithEmail(ctx, identity.Email)
			ctx = requestcontext.WithDisplayName(ctx, identity.DisplayName)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
