// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, health-check handlers, and structured logging via slog.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives, then shuts the server down with a configurable deadline. Errors
// are wrapped with the ErrStart and ErrShutdown sentinels.
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithStartHook(func(l *slog.Logger) { l.Info("listening") }),
//	)
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
//
//	if err := srv.Run(ctx, r); err != nil {
//	    log.Error("server exited", logger.Error(err))
//	}
package httpserver
