// Package httpserver runs an http.Handler with graceful shutdown.
//
// The listener is opened before Run starts serving, so address errors are
// returned immediately and start hooks see the bound address (useful with
// port 0 in tests). Run returns once ctx is canceled and in-flight requests
// have drained or the shutdown timeout elapsed.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
