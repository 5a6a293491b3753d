package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"saccoledger/internal/app"
	"saccoledger/internal/app/handlers"
	"saccoledger/internal/app/router"
	"saccoledger/internal/pkg/cleanup"
	"saccoledger/internal/pkg/config"
	mongodb "saccoledger/internal/pkg/db/mongo"
	redisdb "saccoledger/internal/pkg/db/redis"
	"saccoledger/internal/pkg/logger"
)

func main() {

	ctx := context.Background()

	// .env is optional; deployment environments set real variables.
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
	defer cleanup.CleanupResources(ctx, mongoClient, redisClient)

	container := app.NewContainer(cfg, mongoClient, redisClient)

	server := router.SetupRouter(router.Handlers{
		LoanManagement: handlers.NewLoanManagementHandler(container.Loans, container.Savings),
		Members:        handlers.NewMemberHandler(container.Members),
		Reports:        handlers.NewReportsHandler(container.Reports),
	})

	if err := server.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.CtxError(ctx, "Failed to start server", err)
	}
}
