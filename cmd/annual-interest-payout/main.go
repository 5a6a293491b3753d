package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"saccoledger/internal/app"
	"saccoledger/internal/pkg/cleanup"
	"saccoledger/internal/pkg/config"
	mongodb "saccoledger/internal/pkg/db/mongo"
	redisdb "saccoledger/internal/pkg/db/redis"
	"saccoledger/internal/pkg/logger"
)

// Pays out accumulated interest accruals for the YYYY year given as the
// single positional argument. Safe to re-run for the same year.
func main() {

	if len(os.Args) != 2 {
		log.Fatalf("usage: %s YYYY", os.Args[0])
	}
	year, err := strconv.Atoi(os.Args[1])
	if err != nil {
		log.Fatalf("year must be an integer, got %q", os.Args[1])
	}

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

	result, err := container.Interest.AnnualInterestPayout(ctx, year)
	cleanup.CleanupResources(ctx, mongoClient, redisClient)
	if err != nil {
		logger.CtxError(ctx, "Annual interest payout failed", err, slog.Int("year", year))
		os.Exit(1)
	}

	logger.CtxInfo(ctx, "Payout batch finished",
		slog.Int("year", result.Year),
		slog.Int("members_paid", result.MembersPaid),
		slog.Int64("total_paid", result.TotalPaid),
	)
}
