package jwt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lightsave/pkg/jwt"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testSecret)
	require.NoError(t, err)

	token, err := svc.Issue("user-42", "USER")
	require.NoError(t, err)

	protected := jwt.Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwt.GetClaims(r.Context())
		require.True(t, ok)
		raw, ok := jwt.GetToken(r.Context())
		require.True(t, ok)
		assert.Equal(t, token, raw)
		assert.Equal(t, "USER", claims.Role)
		_, _ = w.Write([]byte(jwt.UserID(r.Context())))
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid bearer", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "user-42"},
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: http.StatusOK, wantBody: "user-42"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantBody: `{"message":"Unauthorized"}`},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized, wantBody: `{"message":"Unauthorized"}`},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantBody: `{"message":"Unauthorized"}`},
		{name: "invalid token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantBody: `{"message":"Unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/income", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := jwt.GetClaims(ctx)
	assert.False(t, ok)
	assert.Empty(t, jwt.UserID(ctx))

	ctx = jwt.SetClaims(ctx, &jwt.Claims{UserID: "u1", Role: "USER"})
	assert.Equal(t, "u1", jwt.UserID(ctx))
}
