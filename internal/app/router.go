package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/lightsave/handler"
	"github.com/dmitrymomot/lightsave/modules/account"
	"github.com/dmitrymomot/lightsave/modules/finance"
	"github.com/dmitrymomot/lightsave/pkg/clientip"
	"github.com/dmitrymomot/lightsave/pkg/httpserver"
	"github.com/dmitrymomot/lightsave/pkg/jwt"
	"github.com/dmitrymomot/lightsave/pkg/logger"
	"github.com/dmitrymomot/lightsave/pkg/requestid"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Logger          *slog.Logger
	Authenticator   account.Authenticator
	Records         finance.Records
	Tokens          *jwt.Service
	ReadinessChecks []func(context.Context) error
	AllowedOrigins  []string
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewRouter builds the root HTTP handler.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		accessLog(log),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestid.Header},
			ExposedHeaders: []string{requestid.Header},
			MaxAge:         300,
		}),
	)

	// Set before mounting so sub-routers inherit them.
	r.NotFound(handler.NotFound())
	r.MethodNotAllowed(handler.MethodNotAllowed())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSON(statusResponse{Status: "ok", Message: "LightSave API is running"}).Render(w, r)
	})
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, deps.ReadinessChecks...))

	r.Mount("/auth", account.Router(account.RouterOptions{
		Password: account.NewPasswordService(deps.Authenticator, log),
	}))
	r.Mount("/", finance.Router(finance.RouterOptions{
		Tokens:  deps.Tokens,
		Income:  finance.NewTransactionService(deps.Records, finance.KindIncome, log),
		Expense: finance.NewTransactionService(deps.Records, finance.KindExpense, log),
		Goals:   finance.NewGoalService(deps.Records, log),
	}))

	return r
}

// accessLog writes one record per request once the response is complete.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.DebugContext(r.Context(), "request completed",
				logger.HTTPRequest(r.Method, r.URL.Path, status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
