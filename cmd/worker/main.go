package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/adapters/events"
	"github.com/outbidhq/auction-service/internal/adapters/messaging"
	"github.com/outbidhq/auction-service/internal/app"
	"github.com/outbidhq/auction-service/internal/config"
	"github.com/outbidhq/auction-service/internal/observability"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("worker exited", "error", err)
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

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info("rabbitmq connected")

	metrics := observability.NewMetrics()
	txManager := database.NewTransactionManager(pool)
	auctionRepo := database.NewAuctionRepository(pool)
	autoBidRepo := database.NewAutoBidRepository(pool)
	taskRepo := database.NewAuctionTaskRepository(pool, cfg.TaskWindow)
	outboxRepo := database.NewOutboxRepository(pool, cfg.OutboxWindow)

	// The saga's own writes go through the same outbox pipeline as the API:
	// its AutoBidPlaced and AutoBidDisabled events are staged here and
	// published by the relay running in the api process.
	bus := events.NewBus(
		events.NewStoreOutboxMessage(outboxRepo, cfg.Stream),
		events.NewScheduleAuctionTask(taskRepo),
		events.NewWriteLogs(logger),
		events.NewPublishMetrics(metrics),
	)
	monitor := events.NewMonitorErrors(logger, metrics)
	executor := app.NewUseCaseExecutor(txManager, bus, monitor)

	placeAutoBid := app.NewPlaceAutoBidService(autoBidRepo, auctionRepo, executor)
	disableAutoBid := app.NewDisableAutoBidService(autoBidRepo, auctionRepo, executor)

	consumer := messaging.NewBidPlacedConsumer(conn, cfg.Exchange, cfg.AutoBidQueue, autoBidRepo, placeAutoBid, disableAutoBid, logger)

	logger.Info("starting bid-placed consumer", "queue", cfg.AutoBidQueue)
	return consumer.Run(ctx, cfg.Stream)
}
