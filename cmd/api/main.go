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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/outbidhq/auction-service/internal/adapters/api"
	"github.com/outbidhq/auction-service/internal/adapters/clients"
	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/adapters/events"
	"github.com/outbidhq/auction-service/internal/adapters/scheduler"
	"github.com/outbidhq/auction-service/internal/app"
	"github.com/outbidhq/auction-service/internal/config"
	"github.com/outbidhq/auction-service/internal/observability"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("postgres connected")

	if err := database.Migrate(pool); err != nil {
		return err
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info("rabbitmq connected")

	publisher, err := events.NewRabbitMQPublisher(conn, cfg.Exchange)
	if err != nil {
		return err
	}
	defer publisher.Close()

	metrics := observability.NewMetrics()
	txManager := database.NewTransactionManager(pool)
	auctionRepo := database.NewAuctionRepository(pool)
	autoBidRepo := database.NewAutoBidRepository(pool)
	taskRepo := database.NewAuctionTaskRepository(pool, cfg.TaskWindow)
	outboxRepo := database.NewOutboxRepository(pool, cfg.OutboxWindow)

	bus := events.NewBus(
		events.NewStoreOutboxMessage(outboxRepo, cfg.Stream),
		events.NewScheduleAuctionTask(taskRepo),
		events.NewWriteLogs(logger),
		events.NewPublishMetrics(metrics),
	)
	monitor := events.NewMonitorErrors(logger, metrics)
	executor := app.NewUseCaseExecutor(txManager, bus, monitor)

	users := clients.NewUsersClient(cfg.UsersServiceURL, cfg.ClientTimeout)
	items := clients.NewItemsClient(cfg.CatalogServiceURL, cfg.ClientTimeout)

	createAuction := app.NewCreateAuctionService(users, items, auctionRepo, executor, cfg.ExpirationPeriod, cfg.SellToHighestBidPeriod)
	openAuction := app.NewOpenAuctionService(auctionRepo, executor)
	placeBid := app.NewPlaceBidService(auctionRepo, users, executor)
	endAuction := app.NewEndAuctionService(auctionRepo, executor)
	createAutoBid := app.NewCreateAutoBidService(users, auctionRepo, autoBidRepo, executor)

	mux := http.NewServeMux()
	api.NewHandler(createAuction, placeBid, createAutoBid, logger).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	relay := events.NewOutboxRelay(outboxRepo, publisher, txManager, metrics, cfg.RelayInterval, logger)
	openPoller := scheduler.NewOpenTaskPoller(taskRepo, openAuction, txManager, cfg.PollInterval, logger)
	endPoller := scheduler.NewEndTaskPoller(taskRepo, endAuction, txManager, cfg.PollInterval, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return relay.Run(gctx) })
	g.Go(func() error { return openPoller.Run(gctx) })
	g.Go(func() error { return endPoller.Run(gctx) })
	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
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

	return g.Wait()
}
