package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lightsave/pkg/binder"
)

type registerRequest struct {
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func newRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{"firstname":"Ada","email":"ada@example.com","password":" secret "}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Firstname)
		assert.Equal(t, " secret ", got.Password, "string values are not altered")
	})

	t.Run("charset parameter", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{"email":"a@b.co"}`, "application/json; charset=utf-8"), &got)
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", got.Email)
	})

	t.Run("vendor json type", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{"email":"a@b.co"}`, "application/vnd.api+json"), &got)
		require.NoError(t, err)
	})

	t.Run("unknown fields ignored by default", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{"email":"a@b.co","role":"ADMIN"}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", got.Email)
	})

	t.Run("unknown fields rejected in strict mode", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON(binder.Strict())(newRequest(`{"email":"a@b.co","role":"ADMIN"}`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{}`, ""), &got)
		require.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`email=a@b.co`, "application/x-www-form-urlencoded"), &got)
		require.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest("  ", "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrEmptyBody)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{"email":`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("wrong field type", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{"email":42}`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		err := binder.JSON()(newRequest(`{"email":"a@b.co"}{"email":"c@d.co"}`, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		var got registerRequest
		body := `{"email":"` + strings.Repeat("a", 64) + `"}`
		err := binder.JSON(binder.MaxSize(32))(newRequest(body, "application/json"), &got)
		require.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})

	t.Run("canceled request", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := newRequest(`{}`, "application/json").WithContext(ctx)
		var got registerRequest
		err := binder.JSON()(req, &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}
