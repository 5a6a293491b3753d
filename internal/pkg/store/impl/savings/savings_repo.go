package savings

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongodb "saccoledger/internal/pkg/db/mongo"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/store/models"
	"saccoledger/internal/pkg/store/repository"
	"saccoledger/internal/service/interfaces"
)

type SavingsRepository struct {
	repo interfaces.DocumentStore[models.Saving]
}

func NewSavingsRepository(client *mongodb.MongoClient, collection string) *SavingsRepository {
	repo := repository.NewMongoRepository[models.Saving](client.Database.Collection(collection))
	return &SavingsRepository{repo: repo}
}

func NewSavingsRepositoryWithInterface(repo interfaces.DocumentStore[models.Saving]) *SavingsRepository {
	return &SavingsRepository{repo: repo}
}

// TotalByMember sums every contribution event for the member across all
// months. Negative reversal entries net out here by construction.
func (sr *SavingsRepository) TotalByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error) {
	entries, err := sr.repo.FindAllPaged(ctx, bson.M{"memberId": memberID})
	if err != nil {
		logger.CtxError(ctx, "Error summing member savings", err, slog.String("member_id", memberID.Hex()))
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		total += entry.Amount
	}
	return total, nil
}

// ListByMonth returns every contribution recorded for a YYYY-MM month.
func (sr *SavingsRepository) ListByMonth(ctx context.Context, month string) ([]models.Saving, error) {
	entries, err := sr.repo.FindAllPaged(ctx, bson.M{"month": month})
	if err != nil {
		logger.CtxError(ctx, "Error listing savings for month", err, slog.String("month", month))
		return nil, err
	}
	return entries, nil
}

func (sr *SavingsRepository) Create(ctx context.Context, saving *models.Saving) (primitive.ObjectID, error) {
	result, err := sr.repo.Create(ctx, saving)
	if err != nil {
		logger.CtxError(ctx, "Error creating savings entry", err,
			slog.String("member_id", saving.MemberID.Hex()),
			slog.String("month", saving.Month),
		)
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}
