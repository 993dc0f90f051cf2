package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/shalinipalla005/Walletwise/internal/auth"
	"github.com/shalinipalla005/Walletwise/internal/config"
	"github.com/shalinipalla005/Walletwise/internal/events"
	"github.com/shalinipalla005/Walletwise/internal/ledger"
	"github.com/shalinipalla005/Walletwise/internal/metrics"
	"github.com/shalinipalla005/Walletwise/internal/middleware"
	"github.com/shalinipalla005/Walletwise/internal/service"
	"github.com/shalinipalla005/Walletwise/internal/storage/sqlite"
	"github.com/shalinipalla005/Walletwise/pkg/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func run(cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m, err := metrics.New()
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	l := ledger.New(store,
		ledger.WithPublisher(publisher),
		ledger.WithMetrics(m),
		ledger.WithStatsDays(cfg.StatsDefaultDays),
		ledger.WithDefaultCurrency(cfg.DefaultCurrency),
	)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	mux := http.NewServeMux()
	service.Register(mux, l, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	))
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", healthHandler(store))

	// h2c serves HTTP/2 without TLS for Connect and gRPC clients
	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{}),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newPublisher connects to the broker when one is configured.
func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP_URL not set, ledger events are disabled")
		return events.NopPublisher{}, nil
	}
	p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingPrefix)
	if err != nil {
		return nil, err
	}
	slog.Info("Publishing ledger events", "exchange", cfg.AMQPExchange)
	return p, nil
}
