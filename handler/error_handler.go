package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/lightsave/pkg/logger"
)

// classifyError maps err to a status code and a client-facing message.
// Anything that is not an HTTPError is a 500 with a generic message.
func classifyError(err error) (int, string) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}
	return ErrInternalServerError.Code, ErrInternalServerError.Message
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if err := Message(status, msg).Render(w, r); err != nil {
		http.Error(w, msg, status)
	}
}

func defaultErrorHandler[C Context](ctx C, err error) {
	status, msg := classifyError(err)
	writeError(ctx.ResponseWriter(), ctx.Request(), status, msg)
}

// NewErrorHandler returns an ErrorHandler that logs the failure (WARN for 4xx,
// ERROR otherwise) before writing the JSON error body.
func NewErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx C, err error) {
		status, msg := classifyError(err)
		r := ctx.Request()

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "request failed",
			logger.Error(err),
			logger.HTTPRequest(r.Method, r.URL.Path, status),
		)

		writeError(ctx.ResponseWriter(), r, status, msg)
	}
}

// NotFound answers unmatched routes with a JSON 404.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrNotFound.Code, ErrNotFound.Message)
	}
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrMethodNotAllowed.Code, ErrMethodNotAllowed.Message)
	}
}
