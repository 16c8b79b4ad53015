package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authhandler "leavedesk/internal/auth/handler"
	"leavedesk/internal/auth/password"
	authservice "leavedesk/internal/auth/service"
	authstore "leavedesk/internal/auth/store"
	"leavedesk/internal/auth/store/revocation"
	httpapi "leavedesk/internal/http"
	jwttoken "leavedesk/internal/jwt_token"
	leavehandler "leavedesk/internal/leave/handler"
	leaveservice "leavedesk/internal/leave/service"
	leavestore "leavedesk/internal/leave/store"
	"leavedesk/internal/platform/config"
	"leavedesk/internal/platform/httpserver"
	"leavedesk/internal/platform/logger"
	"leavedesk/internal/platform/metrics"
	"leavedesk/internal/platform/postgres"
	platformredis "leavedesk/internal/platform/redis"
)

const tokenIssuer = "leavedesk"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if cfg.JWTSigningKeyIsFallback {
		log.Warn("JWT_SIGNING_KEY not set, using development default; do not run this in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer)
	hasher := password.BcryptHasher{}

	// Storage: Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		users  authservice.UserStore
		leaves leaveservice.LeaveStore
		dir    leaveservice.UserDirectory
		probes = map[string]httpapi.HealthChecker{}
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connecting to postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("applying schema", "error", err.Error())
			os.Exit(1)
		}
		userStore := authstore.NewPostgresUserStore(db)
		users = userStore
		dir = userStore
		leaves = leavestore.NewPostgresLeaveStore(db)
		probes["postgres"] = dbProbe{db}
		log.Info("using postgres storage")
	} else {
		userStore := authstore.NewInMemoryUserStore()
		users = userStore
		dir = userStore
		leaves = leavestore.NewInMemoryLeaveStore(userStore)
		log.Info("using in-memory storage")
	}

	if err := authstore.SeedBootstrapAccounts(ctx, users, hasher, cfg.Seed); err != nil {
		log.Error("seeding bootstrap accounts", "error", err.Error())
		os.Exit(1)
	}

	trl, redisClose, err := newRevocationList(cfg.RedisURL, probes)
	if err != nil {
		log.Error("connecting to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClose != nil {
		defer redisClose()
	}

	authSvc := authservice.NewService(users, hasher, jwtService, trl, cfg.TokenTTL, m)
	leaveSvc := leaveservice.NewService(leaves, dir, m)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:       log,
		Metrics:      m,
		Validator:    jwttoken.NewMiddlewareAdapter(jwtService),
		Revocations:  trl,
		Auth:         authhandler.New(authSvc, log),
		Leaves:       leavehandler.New(leaveSvc, log),
		HealthProbes: probes,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting leavedesk", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}

type dbProbe struct {
	db *sql.DB
}

func (p dbProbe) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// newRevocationList picks the Redis-backed revocation list when REDIS_URL is
// configured, registering it as a health probe, and falls back to the
// process-local list otherwise.
func newRevocationList(redisURL string, probes map[string]httpapi.HealthChecker) (revocation.TokenRevocationList, func() error, error) {
	client, err := platformredis.New(redisURL)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return revocation.NewMemoryTRL(), nil, nil
	}
	probes["redis"] = client
	return revocation.NewRedisTRL(client.Client), client.Close, nil
}
