package ledgerentries

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"saccoledger/internal/pkg/consts"
	mongodb "saccoledger/internal/pkg/db/mongo"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/store/models"
	"saccoledger/internal/pkg/store/repository"
	"saccoledger/internal/service/interfaces"
)

type LedgerEntriesRepository struct {
	repo interfaces.DocumentStore[models.LedgerEntry]
}

func NewLedgerEntriesRepository(client *mongodb.MongoClient, collection string) *LedgerEntriesRepository {
	repo := repository.NewMongoRepository[models.LedgerEntry](client.Database.Collection(collection))
	return &LedgerEntriesRepository{repo: repo}
}

func NewLedgerEntriesRepositoryWithInterface(repo interfaces.DocumentStore[models.LedgerEntry]) *LedgerEntriesRepository {
	return &LedgerEntriesRepository{repo: repo}
}

func (lr *LedgerEntriesRepository) Create(ctx context.Context, entry *models.LedgerEntry) (primitive.ObjectID, error) {
	result, err := lr.repo.Create(ctx, entry)
	if err != nil {
		logger.CtxError(ctx, "Error appending ledger entry", err,
			slog.String("type", string(entry.Type)),
			slog.Int64("amount", entry.Amount),
		)
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// AccrualKey identifies one accrual entry for idempotency checks.
func AccrualKey(entryType consts.LedgerEntryType, memberID string) string {
	return fmt.Sprintf("%s:%s", entryType, memberID)
}

// ExistingAccrualKeys returns the "type:memberId" keys of accrual entries
// already posted for the month. The accrual batch skips these on re-run.
func (lr *LedgerEntriesRepository) ExistingAccrualKeys(ctx context.Context, month string) (map[string]bool, error) {
	filter := bson.M{
		"month": month,
		"type":  bson.M{"$in": consts.AccrualTypes},
	}
	entries, err := lr.repo.FindAllPaged(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, "Error reading existing accrual entries", err, slog.String("month", month))
		return nil, err
	}

	keys := make(map[string]bool, len(entries))
	for _, entry := range entries {
		keys[AccrualKey(entry.Type, entry.MemberID)] = true
	}
	return keys, nil
}

// AccrualsByYear returns every accrual entry posted during the calendar year.
func (lr *LedgerEntriesRepository) AccrualsByYear(ctx context.Context, year int) ([]models.LedgerEntry, error) {
	filter := bson.M{
		"year": year,
		"type": bson.M{"$in": consts.AccrualTypes},
	}
	entries, err := lr.repo.FindAllPaged(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, "Error reading accrual entries for year", err, slog.Int("year", year))
		return nil, err
	}
	return entries, nil
}

// PayoutMemberIDs returns the set of members already paid out for the year.
func (lr *LedgerEntriesRepository) PayoutMemberIDs(ctx context.Context, year int) (map[string]bool, error) {
	filter := bson.M{
		"year": year,
		"type": consts.LedgerInterestPayout,
	}
	entries, err := lr.repo.FindAllPaged(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, "Error reading payout entries for year", err, slog.Int("year", year))
		return nil, err
	}

	paid := make(map[string]bool, len(entries))
	for _, entry := range entries {
		paid[entry.MemberID] = true
	}
	return paid, nil
}

type typeTotal struct {
	Type  consts.LedgerEntryType `bson:"_id"`
	Total int64                  `bson:"total"`
}

// SumByType reduces the year's entries to one net total per entry type.
func (lr *LedgerEntriesRepository) SumByType(ctx context.Context, year int) (map[consts.LedgerEntryType]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"year": year}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	var results []typeTotal
	if err := lr.repo.AggregateAll(ctx, pipeline, &results); err != nil {
		logger.CtxError(ctx, "Error aggregating ledger totals", err, slog.Int("year", year))
		return nil, err
	}

	totals := make(map[consts.LedgerEntryType]int64, len(results))
	for _, r := range results {
		totals[r.Type] = r.Total
	}
	return totals, nil
}

// ListByYear enumerates the full year partition, for reducing in memory when
// the aggregation path is unavailable.
func (lr *LedgerEntriesRepository) ListByYear(ctx context.Context, year int) ([]models.LedgerEntry, error) {
	entries, err := lr.repo.FindAllPaged(ctx, bson.M{"year": year})
	if err != nil {
		logger.CtxError(ctx, "Error listing ledger entries for year", err, slog.Int("year", year))
		return nil, err
	}
	return entries, nil
}
