package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"saccoledger/internal/pkg/config"
	"saccoledger/internal/pkg/logger"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// MongoConnector abstracts the driver connect/ping so tests can stub it.
type MongoConnector interface {
	Connect(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)
	Ping(ctx context.Context, client *mongo.Client) error
}

type DefaultMongoConnector struct{}

func (d *DefaultMongoConnector) Connect(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(ctx, opts)
}

func (d *DefaultMongoConnector) Ping(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, nil)
}

func ConnectToMongoDB(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	return connectWithConnector(ctx, cfg, &DefaultMongoConnector{})
}

func connectWithConnector(ctx context.Context, cfg config.MongoConfig, connector MongoConnector) (*MongoClient, error) {

	mongoURI := cfg.URI
	if cfg.Username != "" {
		mongoURI = fmt.Sprintf("mongodb+srv://%s:%s@%s",
			url.QueryEscape(cfg.Username),
			url.QueryEscape(cfg.Password),
			strings.TrimPrefix(cfg.URI, "mongodb+srv://"),
		)
	}

	safeURI := redactMongoURI(mongoURI)

	logger.CtxInfo(ctx, "Connecting to MongoDB",
		slog.String("uri", safeURI),
		slog.String("database", cfg.DBName),
	)

	connectTimeout := cfg.ConnectTimeout
	clientOpts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout * 2).
		SetSocketTimeout(connectTimeout * 3).
		SetHeartbeatInterval(10 * time.Second).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	client, err := connector.Connect(ctx, clientOpts)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to MongoDB", err,
			slog.String("uri", safeURI),
			slog.String("database", cfg.DBName),
		)
		return nil, err
	}

	if err := connector.Ping(ctx, client); err != nil {
		logger.CtxError(ctx, "MongoDB ping failed", err,
			slog.String("uri", safeURI),
			slog.String("database", cfg.DBName),
		)
		return nil, err
	}

	logger.CtxInfo(ctx, "Successfully connected to MongoDB",
		slog.String("uri", safeURI),
		slog.String("database", cfg.DBName),
	)

	return &MongoClient{
		Client:   client,
		Database: client.Database(cfg.DBName),
	}, nil
}

func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(context.Background())
}

// redactMongoURI masks credentials for safe logging.
func redactMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := ""
	rest := uri
	if idx := strings.Index(uri, "://"); idx != -1 {
		scheme = uri[:idx+3]
		rest = uri[idx+3:]
		at = strings.LastIndex(rest, "@")
		if at == -1 {
			return uri
		}
	}
	return scheme + "*****:*****" + rest[at:]
}
