// Package app wires configuration, storage, services and the HTTP router
// into a runnable API process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/lightsave/pkg/clientip"
	"github.com/dmitrymomot/lightsave/pkg/httpserver"
	"github.com/dmitrymomot/lightsave/pkg/jwt"
	"github.com/dmitrymomot/lightsave/pkg/logger"
	"github.com/dmitrymomot/lightsave/pkg/mongo"
	"github.com/dmitrymomot/lightsave/pkg/requestid"
	"github.com/dmitrymomot/lightsave/svc/auth"
	financesvc "github.com/dmitrymomot/lightsave/svc/finance"
)

var (
	ErrInit = errors.New("app: initialization failed")
	ErrRun  = errors.New("app: server failed")
)

// closeTimeout bounds database disconnect on exit.
const closeTimeout = 5 * time.Second

// App is a fully wired API process.
type App struct {
	cfg     Config
	log     *slog.Logger
	db      *mongodriver.Database
	handler http.Handler
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return logger.New(
		logger.WithOutput(os.Stdout),
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
}

// New validates secrets, connects to MongoDB, prepares indexes and builds
// the router. The token service is created first so a bad secret fails before
// any network I/O.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg)
	}

	tokens, err := jwt.New(cfg.Auth.JWTSecret,
		jwt.WithTTL(cfg.Auth.JWTTTL),
		jwt.WithIssuer(cfg.Auth.JWTIssuer),
	)
	if err != nil {
		return nil, errors.Join(ErrInit, fmt.Errorf("token service: %w", err))
	}

	hasher, err := auth.NewBcryptHasher(
		auth.WithCost(cfg.Auth.BcryptCost),
		auth.WithWorkers(cfg.Auth.HashWorkers),
	)
	if err != nil {
		return nil, errors.Join(ErrInit, fmt.Errorf("password hasher: %w", err))
	}

	db, err := mongo.Open(ctx, cfg.Mongo)
	if err != nil {
		return nil, errors.Join(ErrInit, err)
	}

	accounts := auth.NewMongoStore(db)
	records := financesvc.NewMongoStore(db)
	for _, ensure := range []func(context.Context) error{accounts.EnsureIndexes, records.EnsureIndexes} {
		if err := ensure(ctx); err != nil {
			_ = mongo.Close(context.WithoutCancel(ctx), db)
			return nil, errors.Join(ErrInit, err)
		}
	}

	handler := NewRouter(Deps{
		Logger:          log,
		Authenticator:   auth.NewAuthenticator(accounts, hasher, tokens, auth.WithLogger(log)),
		Records:         financesvc.NewService(records, financesvc.WithLogger(log)),
		Tokens:          tokens,
		ReadinessChecks: []func(context.Context) error{mongo.Healthcheck(db.Client())},
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	log.InfoContext(ctx, "application initialized",
		slog.String("database", cfg.Mongo.Database),
		slog.Duration("token_ttl", tokens.TTL()),
		slog.Int("bcrypt_cost", hasher.Cost()),
	)

	return &App{cfg: cfg, log: log, db: db, handler: handler}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP until ctx is canceled, then shuts the server down and
// disconnects from MongoDB.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if err := mongo.Close(ctx, a.db); err != nil {
			a.log.Error("mongodb disconnect failed", logger.Error(err))
		}
	}()

	srv := httpserver.NewFromConfig(a.cfg.HTTP,
		httpserver.WithLogger(a.log),
		httpserver.WithStartHook(func(log *slog.Logger, addr net.Addr) {
			log.Info("server started", slog.String("addr", addr.String()))
		}),
		httpserver.WithStopHook(func(log *slog.Logger) {
			log.Info("server stopped")
		}),
	)

	if err := srv.Run(ctx, a.handler); err != nil {
		return errors.Join(ErrRun, err)
	}
	return nil
}
