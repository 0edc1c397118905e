package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpserver "github.com/authgate/authgate-server/internal/api/http/server"
	"github.com/authgate/authgate-server/internal/api/http/router"
	"github.com/authgate/authgate-server/internal/config"
	"github.com/authgate/authgate-server/internal/logger"
	"github.com/authgate/authgate-server/internal/model"
	"github.com/authgate/authgate-server/internal/notification"
	"github.com/authgate/authgate-server/internal/password"
	"github.com/authgate/authgate-server/internal/repository/memory"
	"github.com/authgate/authgate-server/internal/repository/postgres"
	redisrepo "github.com/authgate/authgate-server/internal/repository/redis"
	"github.com/authgate/authgate-server/internal/server"
	"github.com/authgate/authgate-server/internal/service"
	"github.com/authgate/authgate-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	argon2, err := password.NewArgon2(password.Config{
		Memory:      cfg.Argon2.Memory,
		Time:        cfg.Argon2.Time,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})
	if err != nil {
		logger.Fatal("failed to configure password hasher", "error", err)
	}
	hasher := password.NewPool(argon2, int64(cfg.Argon2.Workers))

	userStore, closeDB, err := newUserStore(ctx, cfg, hasher)
	if err != nil {
		logger.Fatal("failed to initialize user store", "error", err)
	}
	defer closeDB()

	bannedStore, twoFAStore, err := newSessionStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize session stores", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	sessions := service.NewSession(tokenManager, bannedStore, logger)
	emailClient := notification.NewLogClient(logger)
	authService := service.NewAuth(userStore, twoFAStore, sessions, hasher, emailClient, logger)

	httpServer := httpserver.NewHTTPServer(
		router.New(authService, logger).Register(),
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newUserStore(ctx context.Context, cfg *config.Config, hasher model.PasswordHasher) (model.UserStore, func(), error) {
	switch cfg.Database.Backend {
	case "memory":
		return memory.NewUserRepository(hasher), func() {}, nil
	case "postgres":
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUserRepository(db, hasher), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown database backend: %q", cfg.Database.Backend)
	}
}

func newSessionStores(ctx context.Context, cfg *config.Config) (model.BannedTokenStore, model.TwoFACodeStore, error) {
	switch cfg.Redis.Backend {
	case "memory":
		return memory.NewBannedTokenRepository(), memory.NewTwoFARepository(), nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisrepo.NewBannedTokenRepository(client, cfg.JWT.TTL), redisrepo.NewTwoFARepository(client), nil
	default:
		return nil, nil, fmt.Errorf("unknown redis backend: %q", cfg.Redis.Backend)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
