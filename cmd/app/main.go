package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/gymbooking/config"
	"github.com/Domenick1991/gymbooking/internal/auth"
	"github.com/Domenick1991/gymbooking/internal/bootstrap"
	"github.com/Domenick1991/gymbooking/internal/cache"
	"github.com/Domenick1991/gymbooking/internal/clock"
	"github.com/Domenick1991/gymbooking/internal/ledger"
	"github.com/Domenick1991/gymbooking/internal/metrics"
	"github.com/Domenick1991/gymbooking/internal/obs"
	"github.com/Domenick1991/gymbooking/internal/outbox"
	"github.com/Domenick1991/gymbooking/internal/repository"
	"github.com/Domenick1991/gymbooking/internal/repository/memory"
	"github.com/Domenick1991/gymbooking/internal/service/booking"
	"github.com/Domenick1991/gymbooking/internal/service/sessions"
	"github.com/Domenick1991/gymbooking/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		log.Fatalf("init tracer: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(shutdownCtx)
	}()

	metrics.Register()
	clk := clock.NewSystem()

	var store ledger.Store
	var outboxStore outbox.Store
	switch cfg.Storage.Driver {
	case "memory":
		mem := memory.NewStore(memory.WithClock(clk))
		store, outboxStore = mem, mem
		log.Printf("using in-memory storage")
	default:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		if err := migrations.Apply(ctx, pool); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		store = repository.NewLedgerStore(pool)
	}

	slotLedger := ledger.New(store, clk)

	sessionOpts := []sessions.Option{}
	bookingOpts := []booking.BookingServiceOption{booking.WithLockTTL(cfg.Booking.LockTTLDuration())}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.SessionsCacheTTLDuration())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable at %s, continuing: %v", cfg.Redis.Addr, err)
		}
		sessionOpts = append(sessionOpts, sessions.WithCache(redisCache))
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}

	if cfg.Database.ReportingDSN != "" {
		reportDB, err := repository.OpenReportDB(ctx, cfg.Database.ReportingDSN)
		if err != nil {
			log.Fatalf("connect reporting db: %v", err)
		}
		defer reportDB.Close()
		sessionOpts = append(sessionOpts, sessions.WithReporter(repository.NewReportRepository(reportDB)))
	}

	// The memory store is process-local, so its outbox is relayed here
	// instead of by cmd/worker.
	if outboxStore != nil {
		publisher, closePublisher, err := bootstrap.NewEventPublisher(ctx, cfg)
		if err != nil {
			log.Fatalf("event publisher: %v", err)
		}
		defer closePublisher()
		if publisher != nil {
			relay := outbox.NewRelay(outboxStore, publisher, clk, cfg.Worker.RelayBatchSize)
			go relay.Run(ctx, time.Duration(cfg.Worker.RelayIntervalSeconds)*time.Second)
		}
	}

	sessionService := sessions.NewSessionService(slotLedger, sessionOpts...)
	bookingService := booking.NewBookingService(slotLedger, bookingOpts...)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	log.Printf("serving http on %s, grpc on %s", cfg.HTTP.Address, cfg.GRPC.Address)
	if err := bootstrap.Run(ctx, cfg, sessionService, bookingService, tokens); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
