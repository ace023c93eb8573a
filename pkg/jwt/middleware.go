package jwt

import (
	"net/http"
	"strings"
)

// unauthorizedBody is written verbatim to keep this package free of the
// response helpers in handler.
const unauthorizedBody = `{"message":"Unauthorized"}`

// TokenExtractorFunc extracts a raw token from a request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// Middleware verifies bearer tokens and injects the claims into the request context.
func Middleware(service *Service) func(next http.Handler) http.Handler {
	return MiddlewareWithExtractor(service, BearerTokenExtractor)
}

// MiddlewareWithExtractor is Middleware with a custom token source.
func MiddlewareWithExtractor(service *Service, extract TokenExtractorFunc) func(next http.Handler) http.Handler {
	if extract == nil {
		extract = BearerTokenExtractor
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extract(r)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := service.Parse(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := SetToken(r.Context(), token)
			ctx = SetClaims(ctx, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerTokenExtractor reads "Authorization: Bearer <token>". The scheme is
// matched case-insensitively.
func BearerTokenExtractor(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	return token, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
