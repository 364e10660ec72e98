// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elsaedy55/Revo-backend/internal/platform/middleware"
	"github.com/elsaedy55/Revo-backend/pkg/requestcontext"
)

// NewRouter wires all public endpoints. Record routes sit behind the
// authorization gate; auth and operational routes do not.
func NewRouter(auth *AuthHandler, records *RecordHandler, verifier middleware.TokenVerifier, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(bridgeRequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.ClientMetadata)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", auth.handleRegister)
		r.Post("/login", auth.handleLogin)
	})

	r.Route("/api/medical-history", func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier, logger))
		r.Post("/", records.handleCreate)
		r.Get("/", records.handleList)
		r.Get("/{id}", records.handleGet)
		r.Put("/{id}", records.handleUpdate)
		r.Delete("/{id}", records.handleDelete)
	})

	return r
}

// bridgeRequestID copies chi's request id into the transport-agnostic
// request context so services and audit events can reach it.
func bridgeRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if reqID := chimw.GetReqID(ctx); reqID != "" {
			ctx = requestcontext.WithRequestID(ctx, reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
