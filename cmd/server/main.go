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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"

	"peopledesk/internal/audit"
	"peopledesk/internal/auth"
	"peopledesk/internal/buddy"
	buddymetrics "peopledesk/internal/buddy/metrics"
	buddyservice "peopledesk/internal/buddy/service"
	pairstore "peopledesk/internal/buddy/store/pair"
	touchpointstore "peopledesk/internal/buddy/store/touchpoint"
	"peopledesk/internal/directory/cache"
	dirservice "peopledesk/internal/directory/service"
	dirstore "peopledesk/internal/directory/store"
	"peopledesk/internal/platform/config"
	"peopledesk/internal/platform/httpserver"
	"peopledesk/internal/platform/logger"
	"peopledesk/internal/platform/metrics"
	platformredis "peopledesk/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	platformMetrics := metrics.New()

	// Persistence: postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		db        *sql.DB
		stores    buddyservice.Stores
		txRunner  buddyservice.TxRunner
		dirSource dirservice.Store
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err.Error())
			os.Exit(1)
		}
		if err := db.Ping(); err != nil {
			log.Error("failed to ping database", "error", err.Error())
			os.Exit(1)
		}
		stores = buddyservice.Stores{
			Pairs:       pairstore.NewPostgres(db),
			Touchpoints: touchpointstore.NewPostgres(db),
		}
		txRunner = newBuddyPostgresTx(db)
		dirSource = dirstore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		memDir := dirstore.NewInMemory()
		dirstore.SeedDevDirectory(memDir)
		stores = buddyservice.Stores{
			Pairs:       pairstore.NewInMemory(),
			Touchpoints: touchpointstore.NewInMemory(),
		}
		txRunner = buddyservice.NewMemoryTxRunner(stores)
		dirSource = memDir
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		dirSource = cache.New(dirSource, redisClient.Client, cfg.Redis.ProfileTTL)
		log.Info("redis profile cache enabled")
	}
	directory := dirservice.New(dirSource)

	auditStore := audit.NewInMemoryStore()
	var sinks []audit.Sink
	var kafkaSink *audit.KafkaSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err = audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err.Error())
			os.Exit(1)
		}
		sinks = append(sinks, kafkaSink)
		log.Info("kafka audit sink enabled", "topic", cfg.Kafka.AuditTopic)
	}
	auditor := audit.NewPublisher(auditStore, sinks...)

	tokens := auth.NewTokenService(cfg.JWTSigningKey)

	svc := buddy.NewService(stores, txRunner, directory,
		buddyservice.WithLogger(log),
		buddyservice.WithAuditPublisher(auditor),
		buddyservice.WithMetrics(buddymetrics.New()),
	)

	router := chi.NewRouter()
	buddy.NewAdminHandler(svc, log, platformMetrics, cfg.AdminTokenHash).Register(router)
	buddy.NewBuddyHandler(svc, log, platformMetrics, tokens).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting peopledesk", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
	}

	if kafkaSink != nil {
		kafkaSink.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
	log.Info("peopledesk stopped")
}
