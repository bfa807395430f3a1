// Package pg bootstraps the PostgreSQL layer: connection pooling with retry,
// goose schema migrations, a health check, and common error helpers for the
// pgx/v5 driver.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    // database unreachable after retries
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    // schema could not be brought up to date
//	}
//
// Error helpers such as IsNotFoundError and IsDuplicateKeyError classify
// driver errors without leaking pgx types into business logic.
package pg
