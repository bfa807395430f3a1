package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inventorly/identity/modules/identity"
	"github.com/inventorly/identity/modules/identity/pgdirectory"
	"github.com/inventorly/identity/pkg/config"
	"github.com/inventorly/identity/pkg/email"
	"github.com/inventorly/identity/pkg/httpserver"
	"github.com/inventorly/identity/pkg/jwt"
	"github.com/inventorly/identity/pkg/logger"
	"github.com/inventorly/identity/pkg/pg"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"identityd"`

	// PEM-encoded RSA key pair for token signing, loaded once at start.
	PrivateKeyPath string `env:"IDENTITY_PRIVATE_KEY_PATH,required"`
	PublicKeyPath  string `env:"IDENTITY_PUBLIC_KEY_PATH,required"`

	HTTP     httpserver.Config
	PG       pg.Config
	Identity identity.Config
	Email    email.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Environment, cfg.ServiceName))
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("identityd exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	privatePEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return err
	}
	publicPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return err
	}
	signer, err := jwt.New(privatePEM, publicPEM)
	if err != nil {
		return err
	}

	var sender email.EmailSender
	if cfg.Email.PostmarkServerToken != "" {
		sender = email.MustNewPostmarkClient(cfg.Email)
	} else {
		sender = email.NewDevSender(log)
		log.Warn("no postmark token configured, mail goes to the log only")
	}
	notifier := identity.NewNotifier(sender, cfg.Identity.BaseURL, log)

	dir := pgdirectory.New(pool)
	issuer := identity.NewTokenIssuer(signer, cfg.Identity)
	svc := identity.NewService(dir, issuer, cfg.Identity,
		identity.WithNotifier(notifier),
		identity.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))
	r.Mount("/v1/auth", identity.Router(svc))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
