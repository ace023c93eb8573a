// Package logger builds the service's *slog.Logger and provides helper
// attribute constructors so log keys stay consistent across packages.
//
// New assembles a JSON or text slog.Handler from functional options and wraps
// it with LogHandlerDecorator, which pulls request-scoped values (such as the
// request id) out of the context on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "lightsave-api"),
//	    logger.WithContextExtractors(requestIDExtractor),
//	)
//	log.InfoContext(ctx, "account registered",
//	    logger.UserID(account.ID),
//	    logger.Component("auth"),
//	)
//
// Secrets (passwords, digests, tokens) must never be passed to the logger.
package logger
