package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/portfolio-api/shared/respond"
)

// APIKeyHeader carries the API key of the customer whose public data is requested.
const APIKeyHeader = "X-Api-Key"

// UnauthorizedMessage is returned for every rejected credential regardless of the scheme or cause.
const UnauthorizedMessage = "unauthorized"

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidAuthorization = errors.New("invalid authorization header format")
	errMissingAPIKey        = errors.New("missing api key header")
)

type contextKey struct{}

var subjectKey = contextKey{}

// ResolveFunc maps a presented credential to the id of the customer it identifies.
type ResolveFunc func(ctx context.Context, credential string) (string, error)

// RequireBearer rejects requests without a valid "Authorization: Bearer <token>" header and
// stores the resolved customer id in the request context.
func RequireBearer(resolve ResolveFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				reject(w, r, "bearer", err)
				return
			}

			subject, err := resolve(r.Context(), token)
			if err != nil {
				reject(w, r, "bearer", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

// RequireAPIKey rejects requests without a known X-Api-Key header and stores the
// customer id owning the key in the request context.
func RequireAPIKey(resolve ResolveFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if key == "" {
				reject(w, r, "api_key", errMissingAPIKey)
				return
			}

			subject, err := resolve(r.Context(), key)
			if err != nil {
				reject(w, r, "api_key", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

// WithSubject returns a copy of ctx carrying the authenticated customer id.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext returns the authenticated customer id, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuthorization
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidAuthorization
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errInvalidAuthorization
	}

	return token, nil
}

func reject(w http.ResponseWriter, r *http.Request, scheme string, err error) {
	hlog.FromRequest(r).Debug().Err(err).Str("scheme", scheme).Msg("rejected credential")
	respond.Message(w, http.StatusUnauthorized, UnauthorizedMessage)
}
