package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB := mustOpenDatabase(configs)
	redisClient := mustConnectRedis(ctx, configs)
	publisher, closePublisher := mustConnectBroker(configs)
	defer closePublisher()

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, publisher, kernel.SystemClock{}, logger)

	if configs.SeedDemo {
		if err := app.SeedDemo(ctx); err != nil {
			log.Fatalf("Failed to seed demo network: %v", err)
		}
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatal("Failed to start jobs:", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Variables already set in the process environment take precedence.
	if err := godotenv.Load(".env"); err != nil {
		log.Info("No .env file, using the process environment")
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}

func mustConnectRedis(ctx context.Context, configs cmd.Config) redis.UniversalClient {
	if configs.RedisAddr == "" {
		log.Info("REDIS_ADDR is empty, keeping stock in memory")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	return rdb
}

func mustConnectBroker(configs cmd.Config) (ports.EventPublisher, func()) {
	if configs.AMQPURL == "" {
		log.Info("AMQP_URL is empty, transition events are not published")
		return rabbitmq.NopPublisher{}, func() {}
	}

	publisher, err := rabbitmq.Dial(configs.AMQPURL, configs.AMQPExchange)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitmq: %v", err)
	}
	return publisher, func() { _ = publisher.Close() }
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e := echo.New()
	if err := app.CreateServer().Register(e); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
