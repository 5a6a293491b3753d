package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"saccoledger/internal/pkg/config"
	"saccoledger/internal/pkg/logger"
)

type RedisClient struct {
	Client *goredis.Client
}

// RedisConnector abstracts client creation so tests can stub it.
type RedisConnector interface {
	Connect(ctx context.Context, opts *goredis.Options) (*goredis.Client, error)
}

type DefaultRedisConnector struct{}

func (d *DefaultRedisConnector) Connect(ctx context.Context, opts *goredis.Options) (*goredis.Client, error) {
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func ConnectToRedis(ctx context.Context, cfg config.RedisConfig, connector RedisConnector) (*RedisClient, error) {
	if connector == nil {
		connector = &DefaultRedisConnector{}
	}

	opts := &goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.ConnectTimeout,
	}

	client, err := connector.Connect(ctx, opts)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to Redis", err, slog.String("addr", cfg.Addr))
		return nil, err
	}

	logger.CtxInfo(ctx, "Successfully connected to Redis", slog.String("addr", cfg.Addr))
	return &RedisClient{Client: client}, nil
}

func Disconnect(client *goredis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
