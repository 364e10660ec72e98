// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
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

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/elsaedy55/Revo-backend/internal/audit"
	"github.com/elsaedy55/Revo-backend/internal/platform/config"
	"github.com/elsaedy55/Revo-backend/internal/platform/httpserver"
	"github.com/elsaedy55/Revo-backend/internal/platform/logger"
	platformredis "github.com/elsaedy55/Revo-backend/internal/platform/redis"
	"github.com/elsaedy55/Revo-backend/internal/record"
	recordcache "github.com/elsaedy55/Revo-backend/internal/record/cache"
	recordmetrics "github.com/elsaedy55/Revo-backend/internal/record/metrics"
	recordstore "github.com/elsaedy55/Revo-backend/internal/record/store"
	"github.com/elsaedy55/Revo-backend/internal/token"
	httptransport "github.com/elsaedy55/Revo-backend/internal/transport/http"
	"github.com/elsaedy55/Revo-backend/internal/user"
	usermetrics "github.com/elsaedy55/Revo-backend/internal/user/metrics"
)

const ownerCacheTTL = 15 * time.Minute

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokenService := token.NewService(cfg.JWTSecret, cfg.ServerOrigin)

	// Stores: Postgres when configured, memory otherwise.
	var (
		recStore  record.Store
		userStore user.Store
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		recStore = recordstore.NewPostgresStore(pool)

		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open postgres for users", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		userStore = user.NewPostgresStore(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		recStore = recordstore.NewInMemoryStore()
		userStore = user.NewInMemoryStore()
	}

	// Optional owner cache.
	var ownerCache record.OwnerCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		ownerCache = recordcache.NewOwnerCache(redisClient.Client, ownerCacheTTL, log)
	}

	// Audit pipeline: Kafka sink when brokers are configured.
	auditPublisher := audit.NewPublisher(256, log)
	var auditSink audit.Sink = audit.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		auditSink = kafkaSink
	}
	auditWorker := audit.NewWorker(auditSink, auditPublisher.Inbox(), log)

	guard := record.NewOwnershipGuard(recStore, ownerCache, log)
	transformer := record.NewTransformer(log)
	recordService := record.NewService(recStore, guard, transformer, auditPublisher, recordmetrics.New(), log)
	userService := user.NewService(userStore, tokenService, cfg.JWTTTL, usermetrics.New(), log)

	router := httptransport.NewRouter(
		httptransport.NewAuthHandler(userService, cfg.Development()),
		httptransport.NewRecordHandler(recordService, cfg.Development()),
		tokenService,
		log,
	)
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := auditWorker.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
