package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	amqpin "orders/internal/adapters/in/amqp"
	httpin "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/notify"
	"orders/internal/core/ports"
	"orders/internal/generated/servers"
	"orders/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	notifier, closeNotifier := buildNotifier(configs, logger)
	defer closeNotifier()

	app := cmd.NewCompositionRoot(configs, gormDB, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closeConsumer := startConsumer(ctx, configs, &app, logger)
	defer closeConsumer()

	jobManager := jobs.NewJobManager(app.Allocator(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Missing .env is fine: plain environment variables still apply.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: envOrDefault("DB_PASSWORD", "postgres"),
		DBName:     envOrDefault("DB_NAME", "orders"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),
		AmqpURL:    os.Getenv("AMQP_URL"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func buildNotifier(configs cmd.Config, logger *slog.Logger) (ports.Notifier, func()) {
	if configs.AmqpURL == "" {
		logger.Info("AMQP_URL not set, status notifications will only be logged")
		return notify.NewSlogNotifier(logger), func() {}
	}

	notifier, err := notify.NewAmqpNotifier(configs.AmqpURL, logger)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}
	return notifier, notifier.Close
}

func startConsumer(ctx context.Context, configs cmd.Config, app *cmd.CompositionRoot, logger *slog.Logger) func() {
	if configs.AmqpURL == "" {
		logger.Info("AMQP_URL not set, event ingestion disabled")
		return func() {}
	}

	consumer, err := amqpin.NewConsumer(
		configs.AmqpURL,
		app.CreateCreateOrderCommandHandler(),
		app.CreateApplyReleaseSnapshotCommandHandler(),
		app.CreateApplyShipmentSnapshotCommandHandler(),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create consumer: %v", err)
	}

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}
	return consumer.Close
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateUpdateLineStatusCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateGetOrderSnapshotsQueryHandler(),
		app.CreateGetShipmentByTrackingQueryHandler(),
	)
	servers.RegisterHandlersWithBaseURL(e, server, "/api/v1")

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}
