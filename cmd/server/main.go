// Command server runs the HuntSchedule HTTP API.
//
// @title                       HuntSchedule API
// @version                     1.0
// @description                 Guild hunting-slot scheduling: characters, requests, approvals and points.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/config"
	httpapi "github.com/huntschedule/huntschedule-api/internal/http"
	"github.com/huntschedule/huntschedule-api/internal/notify"
	"github.com/huntschedule/huntschedule-api/internal/observability"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/sysutil"
	"github.com/huntschedule/huntschedule-api/internal/tibia"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const purgeEvery = 10 * time.Minute

func main() {
	_ = config.LoadDotEnv()
	cfg := config.MustLoad()

	sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)
	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.Setup(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("otel_setup_failed")
	}

	db, err := repo.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("db_open_failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("db_migrate_failed")
	}
	if cfg.DB.Seed {
		if err := repo.Seed(db); err != nil {
			log.Fatal().Err(err).Msg("db_seed_failed")
		}
	}

	validator := tibia.New(tibia.Options{
		BaseURL:      cfg.Tibia.BaseURL,
		Timeout:      cfg.Tibia.HTTPTimeout,
		Cache:        lookupCache(ctx, cfg.Redis),
		CharacterTTL: cfg.Tibia.CharacterTTL,
		WorldsTTL:    cfg.Tibia.WorldsTTL,
	})

	dispatcher := notify.NewDispatcher(cfg.Notify.QueueSize, senders(cfg.Notify)...)

	r := gin.New()
	httpapi.RegisterRoutes(r, db, httpapi.Deps{Lookup: validator, Notifier: dispatcher}, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go purgeIdempotency(ctx, db)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", appVersion).Msg("http_listen")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http_listen_failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown_started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http_shutdown_failed")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Int("pending", dispatcher.Pending()).Msg("notify_drain_incomplete")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("otel_shutdown_failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("shutdown_complete")
}

// lookupCache prefers Redis when REDIS_ADDR is set and reachable, and falls
// back to a swept in-process cache otherwise.
func lookupCache(ctx context.Context, rc config.RedisConfig) tibia.Cache {
	if rc.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: rc.Addr, Password: rc.Password, DB: rc.DB})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := rdb.Ping(pingCtx).Err()
		if err == nil {
			log.Info().Str("addr", rc.Addr).Msg("lookup_cache_redis")
			return tibia.NewRedisCache(rdb, rc.Prefix)
		}
		log.Warn().Err(err).Str("addr", rc.Addr).Msg("redis_unreachable_using_memory_cache")
		_ = rdb.Close()
	}

	mc := tibia.NewMemoryCache()
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				mc.Sweep()
			}
		}
	}()
	return mc
}

func senders(nc config.NotifyConfig) []notify.Sender {
	var out []notify.Sender
	if nc.WebhookURL != "" {
		out = append(out, notify.NewWebhookSender(nc.WebhookURL))
	}
	if nc.AMQPURL != "" {
		out = append(out, notify.NewAMQPSender(nc.AMQPURL, nc.AMQPQueue))
	}
	if len(out) == 0 {
		out = append(out, notify.LogSender{})
	}
	return out
}

func purgeIdempotency(ctx context.Context, db *gorm.DB) {
	t := time.NewTicker(purgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("idempotency_purge_failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("idempotency_purged")
			}
		}
	}
}
