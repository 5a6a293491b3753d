package loanrepayments

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodb "saccoledger/internal/pkg/db/mongo"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/store/models"
	"saccoledger/internal/pkg/store/repository"
	"saccoledger/internal/service/interfaces"
)

type LoanRepaymentsRepository struct {
	repo interfaces.DocumentStore[models.LoanRepayment]
}

func NewLoanRepaymentsRepository(client *mongodb.MongoClient, collection string) *LoanRepaymentsRepository {
	repo := repository.NewMongoRepository[models.LoanRepayment](client.Database.Collection(collection))
	return &LoanRepaymentsRepository{repo: repo}
}

func NewLoanRepaymentsRepositoryWithInterface(repo interfaces.DocumentStore[models.LoanRepayment]) *LoanRepaymentsRepository {
	return &LoanRepaymentsRepository{repo: repo}
}

func (rr *LoanRepaymentsRepository) Create(ctx context.Context, repayment *models.LoanRepayment) (primitive.ObjectID, error) {
	result, err := rr.repo.Create(ctx, repayment)
	if err != nil {
		logger.CtxError(ctx, "Error recording repayment", err,
			slog.String("loan_id", repayment.LoanID.Hex()),
			slog.Int("month", repayment.Month),
		)
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (rr *LoanRepaymentsRepository) ListByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.LoanRepayment, error) {
	repayments, err := rr.repo.FindAllPaged(ctx, bson.M{"loanId": loanID})
	if err != nil {
		logger.CtxError(ctx, "Error listing loan repayments", err, slog.String("loan_id", loanID.Hex()))
		return nil, err
	}
	return repayments, nil
}

// HasMonth reports whether a repayment already exists for the schedule month.
func (rr *LoanRepaymentsRepository) HasMonth(ctx context.Context, loanID primitive.ObjectID, month int) (bool, error) {
	_, err := rr.repo.FindOne(ctx, bson.M{"loanId": loanID, "month": month}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		logger.CtxError(ctx, "Error checking repayment month", err,
			slog.String("loan_id", loanID.Hex()),
			slog.Int("month", month),
		)
		return false, err
	}
	return true, nil
}
