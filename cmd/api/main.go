package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/deusexludus/internal/config"
	"github.com/hamed0406/deusexludus/internal/dice"
	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/httpapi"
	apimw "github.com/hamed0406/deusexludus/internal/httpapi/middleware"
	"github.com/hamed0406/deusexludus/internal/i18n"
	"github.com/hamed0406/deusexludus/internal/logging"
	"github.com/hamed0406/deusexludus/internal/notify"
	"github.com/hamed0406/deusexludus/internal/repo"
	"github.com/hamed0406/deusexludus/internal/repo/memory"
	pg "github.com/hamed0406/deusexludus/internal/repo/postgres"
	"github.com/hamed0406/deusexludus/internal/repo/sqlite"
	"github.com/hamed0406/deusexludus/internal/roller"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("api_exit", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	msgs, err := i18n.Load()
	if err != nil {
		return err
	}
	policy, err := roller.ParsePolicy(cfg.MissingSkillPolicy)
	if err != nil {
		return err
	}

	seed := cfg.DiceSeed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}

	hub := notify.NewHub(logger, cfg.AllowedOrigins)
	defer hub.Close()
	sinks := notify.Multi{notify.Log{Logger: logger}, hub}
	if wh := notify.NewWebhook(cfg.ChatWebhookURL); wh != nil {
		sinks = append(sinks, wh)
	}
	if cfg.RedisAddr != "" {
		rd, err := notify.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel)
		if err != nil {
			return err
		}
		defer rd.Close()
		sinks = append(sinks, rd)
		logger.Info("chat_redis_enabled", zap.String("channel", rd.Channel()))
	}

	rs := roller.NewService(logger, store, store, dice.NewD100(dice.NewSource(seed)), sinks, msgs, policy, cfg.DefaultTargetNumber)

	api := httpapi.NewServer(logger, store, domain.NewRegistry(), rs, msgs)
	api.Chat = hub
	api.Keys = apimw.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}
	api.Limits = httpapi.Limits{
		PublicRPM:   cfg.PublicRPM,
		PublicBurst: cfg.PublicBurst,
		AdminRPM:    cfg.AdminRPM,
		AdminBurst:  cfg.AdminBurst,
	}
	api.AllowedOrigins = cfg.AllowedOrigins
	api.DefaultLocale = msgs.Match(cfg.DefaultLocale)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr), zap.String("missing_skill_policy", string(policy)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("api_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks postgres, then sqlite, then the in-memory store.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repo.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		s, err := pg.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		logger.Info("store_selected", zap.String("backend", "postgres"))
		return s, nil
	case cfg.SQLitePath != "":
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("store_selected", zap.String("backend", "sqlite"), zap.String("path", cfg.SQLitePath))
		return s, nil
	default:
		logger.Warn("store_selected", zap.String("backend", "memory"))
		return memory.New(), nil
	}
}
