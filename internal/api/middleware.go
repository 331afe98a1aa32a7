// internal/api/middleware.go
package api

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/auth"
	"github.com/codr1/Gatehouse/internal/api/authz"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/metrics"
	"github.com/codr1/Gatehouse/internal/prefs"
)

// SocietyHeader selects the society a request acts in.
const SocietyHeader = "X-Society-ID"

type Middleware func(http.Handler) http.Handler

type requestIDKey struct{}

func ChainMiddleware(h http.Handler, middleware ...Middleware) http.Handler {
	for _, m := range middleware {
		h = m(h)
	}
	return h
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create response wrapper to capture status code
		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.status).
			Dur("duration", time.Since(start)).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("Request completed")
	})
}

func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger := log.Ctx(r.Context())
				// Log the full stack trace
				stack := debug.Stack()
				logger.Error().
					Interface("error", err).
					Str("stack", string(stack)).
					Msg("Panic recovered")

				_ = apiutil.WriteJSON(w, http.StatusInternalServerError, apiutil.ErrorResponse{Error: "Internal Server Error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		// Create a logger with the request ID
		logger := log.With().Str("request_id", requestID).Logger()

		// Add both the request ID and logger to context
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = logger.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity attaches the caller resolved by resolver. Requests without
// credentials pass through anonymously; a bad token is rejected with 401.
func WithIdentity(resolver *auth.Resolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.UserFromRequest(r)
			if err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Msg("Rejected session token")
				apiutil.WriteError(w, r, authz.ErrUnauthenticated)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			logger := log.Ctx(r.Context()).With().Str("user_id", user.ID).Logger()
			ctx := authz.ContextWithUser(logger.WithContext(r.Context()), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSociety resolves the society context once per request: from the
// X-Society-ID header, or else from the user's stored selection. An explicit
// header without an active membership is 403; a stale stored selection is
// dropped.
func WithSociety(queries *dbgen.Queries, store prefs.Store) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := authz.UserFromContext(r.Context())
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}
			logger := log.Ctx(r.Context())

			societyID := strings.TrimSpace(r.Header.Get(SocietyHeader))
			fromHeader := societyID != ""
			if !fromHeader && store != nil {
				stored, ok, err := store.Get(r.Context(), user.ID, prefs.KeySelectedSociety)
				if err != nil {
					logger.Warn().Err(err).Msg("Failed to load selected society")
				} else if ok {
					societyID = stored
				}
			}
			if societyID == "" {
				next.ServeHTTP(w, r)
				return
			}

			society, err := authz.LoadSocietyContext(r.Context(), queries, user.ID, societyID)
			if err != nil {
				if errors.Is(err, authz.ErrForbidden) && !fromHeader {
					logger.Info().Str("society_id", societyID).Msg("Dropping stale society selection")
					if store != nil {
						if delErr := store.Delete(r.Context(), user.ID, prefs.KeySelectedSociety); delErr != nil {
							logger.Warn().Err(delErr).Msg("Failed to clear stale society selection")
						}
					}
					next.ServeHTTP(w, r)
					return
				}
				apiutil.WriteError(w, r, err)
				return
			}

			societyLogger := logger.With().Str("society_id", society.SocietyID).Logger()
			ctx := authz.ContextWithSociety(societyLogger.WithContext(r.Context()), society)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithMetrics records request counts and latency by route pattern. It must
// wrap the mux directly so the matched pattern is visible after serving.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(wrapped.status), time.Since(start).Seconds())
	})
}

// responseWriter wrapper to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
