package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"saccoledger/internal/app"
	"saccoledger/internal/pkg/cleanup"
	"saccoledger/internal/pkg/config"
	mongodb "saccoledger/internal/pkg/db/mongo"
	redisdb "saccoledger/internal/pkg/db/redis"
	"saccoledger/internal/pkg/logger"
)

// Runs the monthly interest accrual for the YYYY-MM month given as the
// single positional argument. Safe to re-run for the same month.
func main() {

	if len(os.Args) != 2 {
		log.Fatalf("usage: %s YYYY-MM", os.Args[0])
	}
	month := os.Args[1]

	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadFromConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logging.LogLevel)

	mongoClient, err := mongodb.ConnectToMongoDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	redisClient, err := redisdb.ConnectToRedis(ctx, cfg.Redis, nil)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	container := app.NewContainer(cfg, mongoClient, redisClient)

	result, err := container.Interest.AccrueMonthlyInterest(ctx, month)
	cleanup.CleanupResources(ctx, mongoClient, redisClient)
	if err != nil {
		logger.CtxError(ctx, "Monthly interest accrual failed", err, slog.String("month", month))
		os.Exit(1)
	}

	logger.CtxInfo(ctx, "Accrual batch finished",
		slog.String("month", result.Month),
		slog.Int("entries_posted", result.EntriesPosted),
		slog.Int("skipped", result.Skipped),
	)
}
