package interestmonthly

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

type InterestMonthlyRepository struct {
	repo interfaces.DocumentStore[models.InterestMonthly]
}

func NewInterestMonthlyRepository(client *mongodb.MongoClient, collection string) *InterestMonthlyRepository {
	repo := repository.NewMongoRepository[models.InterestMonthly](client.Database.Collection(collection))
	return &InterestMonthlyRepository{repo: repo}
}

func NewInterestMonthlyRepositoryWithInterface(repo interfaces.DocumentStore[models.InterestMonthly]) *InterestMonthlyRepository {
	return &InterestMonthlyRepository{repo: repo}
}

// GetByMonth returns the manually entered pool totals for a YYYY-MM month,
// or nil when none were recorded.
func (ir *InterestMonthlyRepository) GetByMonth(ctx context.Context, month string) (*models.InterestMonthly, error) {
	record, err := ir.repo.FindOne(ctx, bson.M{"month": month}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "Error fetching monthly interest record", err, slog.String("month", month))
		return nil, err
	}
	return &record, nil
}
