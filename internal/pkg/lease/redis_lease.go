package lease

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"saccoledger/internal/pkg/logger"
)

const repaymentKeyPrefix = "repayment-lease:"

// RedisLease is a per-loan mutual exclusion lease backed by SET NX with a
// TTL. The TTL bounds how long a crashed holder can block other writers.
type RedisLease struct {
	client *goredis.Client
}

func NewRedisLease(client *goredis.Client) *RedisLease {
	return &RedisLease{client: client}
}

func (l *RedisLease) Acquire(ctx context.Context, loanID string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, repaymentKeyPrefix+loanID, "1", ttl).Result()
	if err != nil {
		logger.CtxError(ctx, "Error acquiring repayment lease", err, slog.String("loan_id", loanID))
		return false, err
	}
	return acquired, nil
}

func (l *RedisLease) Release(ctx context.Context, loanID string) error {
	if err := l.client.Del(ctx, repaymentKeyPrefix+loanID).Err(); err != nil {
		logger.CtxError(ctx, "Error releasing repayment lease", err, slog.String("loan_id", loanID))
		return err
	}
	return nil
}
