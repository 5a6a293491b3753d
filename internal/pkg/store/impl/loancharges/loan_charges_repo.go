package loancharges

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

type LoanChargesRepository struct {
	repo interfaces.DocumentStore[models.LoanCharge]
}

func NewLoanChargesRepository(client *mongodb.MongoClient, collection string) *LoanChargesRepository {
	repo := repository.NewMongoRepository[models.LoanCharge](client.Database.Collection(collection))
	return &LoanChargesRepository{repo: repo}
}

func NewLoanChargesRepositoryWithInterface(repo interfaces.DocumentStore[models.LoanCharge]) *LoanChargesRepository {
	return &LoanChargesRepository{repo: repo}
}

func (cr *LoanChargesRepository) GetByID(ctx context.Context, chargeID primitive.ObjectID) (*models.LoanCharge, error) {
	charge, err := cr.repo.FindOne(ctx, bson.M{"_id": chargeID}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "Loan charge not found", slog.String("charge_id", chargeID.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error fetching loan charge", err, slog.String("charge_id", chargeID.Hex()))
		return nil, err
	}
	return &charge, nil
}

func (cr *LoanChargesRepository) ListByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.LoanCharge, error) {
	charges, err := cr.repo.FindAllPaged(ctx, bson.M{"loanId": loanID})
	if err != nil {
		logger.CtxError(ctx, "Error listing loan charges", err, slog.String("loan_id", loanID.Hex()))
		return nil, err
	}
	return charges, nil
}

// SumByLoan totals every charge attached to a loan. Collected in full with
// the first-month repayment.
func (cr *LoanChargesRepository) SumByLoan(ctx context.Context, loanID primitive.ObjectID) (int64, error) {
	charges, err := cr.ListByLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, charge := range charges {
		total += charge.Amount
	}
	return total, nil
}

func (cr *LoanChargesRepository) Create(ctx context.Context, charge *models.LoanCharge) (primitive.ObjectID, error) {
	result, err := cr.repo.Create(ctx, charge)
	if err != nil {
		logger.CtxError(ctx, "Error creating loan charge", err, slog.String("loan_id", charge.LoanID.Hex()))
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (cr *LoanChargesRepository) Update(ctx context.Context, chargeID primitive.ObjectID, description string, amount int64) error {
	update := bson.M{
		"description": description,
		"amount":      amount,
	}
	if err := cr.repo.UpdateOne(ctx, bson.M{"_id": chargeID}, update); err != nil {
		logger.CtxError(ctx, "Error updating loan charge", err, slog.String("charge_id", chargeID.Hex()))
		return err
	}
	return nil
}

func (cr *LoanChargesRepository) Delete(ctx context.Context, chargeID primitive.ObjectID) error {
	if err := cr.repo.Delete(ctx, bson.M{"_id": chargeID}); err != nil {
		logger.CtxError(ctx, "Error deleting loan charge", err, slog.String("charge_id", chargeID.Hex()))
		return err
	}
	return nil
}
