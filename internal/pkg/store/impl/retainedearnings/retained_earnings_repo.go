package retainedearnings

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodb "saccoledger/internal/pkg/db/mongo"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/store/models"
	"saccoledger/internal/pkg/store/repository"
	"saccoledger/internal/service/interfaces"
)

type RetainedEarningsRepository struct {
	repo interfaces.DocumentStore[models.RetainedEarnings]
}

func NewRetainedEarningsRepository(client *mongodb.MongoClient, collection string) *RetainedEarningsRepository {
	repo := repository.NewMongoRepository[models.RetainedEarnings](client.Database.Collection(collection))
	return &RetainedEarningsRepository{repo: repo}
}

func NewRetainedEarningsRepositoryWithInterface(repo interfaces.DocumentStore[models.RetainedEarnings]) *RetainedEarningsRepository {
	return &RetainedEarningsRepository{repo: repo}
}

// GetByYear returns the retention percentage configured for the year, or nil
// when none was recorded (treated as zero retention).
func (rr *RetainedEarningsRepository) GetByYear(ctx context.Context, year int) (*models.RetainedEarnings, error) {
	record, err := rr.repo.FindOne(ctx, bson.M{"year": year}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "Error fetching retained earnings record", err, slog.Int("year", year))
		return nil, err
	}
	return &record, nil
}
