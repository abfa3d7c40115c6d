// Command server runs the authentication backend: registration, login, and
// token-gated profile lookup over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/postgres"

	"github.com/skillsenselab/authsvc/internal/accounts"
	"github.com/skillsenselab/authsvc/internal/authctx"
	"github.com/skillsenselab/authsvc/internal/config"
	"github.com/skillsenselab/authsvc/internal/logger"
	"github.com/skillsenselab/authsvc/internal/password"
	"github.com/skillsenselab/authsvc/internal/server"
	"github.com/skillsenselab/authsvc/internal/server/middleware"
	"github.com/skillsenselab/authsvc/internal/store"
	"github.com/skillsenselab/authsvc/internal/taskpool"
	"github.com/skillsenselab/authsvc/internal/token"
)

const serviceName = "authsvc"

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		logger.NewDefault(serviceName).Fatal("Configuration error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.New(&cfg.Log, serviceName)
	logger.SetGlobalLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("Service failed", map[string]interface{}{"error": err.Error()})
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, postgres.Open(cfg.Database.DSN), cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Store close error", map[string]interface{}{"error": err.Error()})
		}
	}()

	ttl, err := cfg.JWT.TokenTTL()
	if err != nil {
		return err
	}
	tokens, err := token.NewService(token.Config{Secret: cfg.JWT.Secret, TTL: ttl})
	if err != nil {
		return err
	}

	hasher := password.New()

	pool := taskpool.New(cfg.Pool)
	defer pool.Close()

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.Engine().Use(middleware.Auth(middleware.AuthConfig{
		Validator: func(raw string) (authctx.Identity, error) {
			claims, err := tokens.Validate(raw)
			if err != nil {
				return authctx.Identity{}, err
			}
			return authctx.Identity{Email: claims.Email}, nil
		},
		PublicPrefixes: accounts.PublicPrefixes,
	}))
	srv.RegisterHealth(st.Ping)

	svc := accounts.NewService(st, hasher, tokens, log)
	accounts.RegisterRoutes(srv.Engine(), accounts.NewHandler(svc, pool))

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	return srv.Stop(context.Background())
}
