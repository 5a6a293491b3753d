package loans

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"saccoledger/internal/pkg/consts"
	mongodb "saccoledger/internal/pkg/db/mongo"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/store/models"
	"saccoledger/internal/pkg/store/repository"
	"saccoledger/internal/service/interfaces"
)

type LoansRepository struct {
	repo interfaces.DocumentStore[models.Loan]
}

func NewLoansRepository(client *mongodb.MongoClient, collection string) *LoansRepository {
	repo := repository.NewMongoRepository[models.Loan](client.Database.Collection(collection))
	return &LoansRepository{repo: repo}
}

func NewLoansRepositoryWithInterface(repo interfaces.DocumentStore[models.Loan]) *LoansRepository {
	return &LoansRepository{repo: repo}
}

func (lr *LoansRepository) GetByID(ctx context.Context, loanID primitive.ObjectID) (*models.Loan, error) {
	loan, err := lr.repo.FindOne(ctx, bson.M{"_id": loanID}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "Loan not found", slog.String("loan_id", loanID.Hex()))
			return nil, err
		}
		logger.CtxError(ctx, "Error fetching loan", err, slog.String("loan_id", loanID.Hex()))
		return nil, err
	}
	return &loan, nil
}

func (lr *LoansRepository) Create(ctx context.Context, loan *models.Loan) (primitive.ObjectID, error) {
	result, err := lr.repo.Create(ctx, loan)
	if err != nil {
		logger.CtxError(ctx, "Error creating loan", err, slog.String("member_id", loan.MemberID.Hex()))
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	logger.CtxInfo(ctx, "Loan application created",
		slog.String("loan_id", id.Hex()),
		slog.Int64("amount", loan.Amount),
	)
	return id, nil
}

// MarkApproved activates a pending loan and seeds its outstanding balance.
func (lr *LoansRepository) MarkApproved(ctx context.Context, loanID primitive.ObjectID, approvedAt time.Time, balance int64) error {
	update := bson.M{
		"status":     consts.LoanActive,
		"approvedAt": approvedAt,
		"balance":    balance,
	}
	if err := lr.repo.UpdateOne(ctx, bson.M{"_id": loanID}, update); err != nil {
		logger.CtxError(ctx, "Error approving loan", err, slog.String("loan_id", loanID.Hex()))
		return err
	}
	return nil
}

func (lr *LoansRepository) MarkRejected(ctx context.Context, loanID primitive.ObjectID, rejectedAt time.Time) error {
	update := bson.M{
		"status":     consts.LoanRejected,
		"rejectedAt": rejectedAt,
	}
	if err := lr.repo.UpdateOne(ctx, bson.M{"_id": loanID}, update); err != nil {
		logger.CtxError(ctx, "Error rejecting loan", err, slog.String("loan_id", loanID.Hex()))
		return err
	}
	return nil
}

// UpdateBalance persists the post-repayment balance and status in one write.
func (lr *LoansRepository) UpdateBalance(ctx context.Context, loanID primitive.ObjectID, balance int64, status consts.LoanStatus) error {
	update := bson.M{
		"balance": balance,
		"status":  status,
	}
	if err := lr.repo.UpdateOne(ctx, bson.M{"_id": loanID}, update); err != nil {
		logger.CtxError(ctx, "Error updating loan balance", err,
			slog.String("loan_id", loanID.Hex()),
			slog.Int64("balance", balance),
		)
		return err
	}
	return nil
}

// OutstandingActiveBalance sums balance (falling back to amount) over the
// member's active loans, excluding excludeLoanID when non-nil.
func (lr *LoansRepository) OutstandingActiveBalance(
	ctx context.Context,
	memberID primitive.ObjectID,
	excludeLoanID *primitive.ObjectID,
) (int64, error) {
	filter := bson.M{"memberId": memberID, "status": consts.LoanActive}
	loans, err := lr.repo.FindAllPaged(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, "Error fetching active loans", err, slog.String("member_id", memberID.Hex()))
		return 0, err
	}

	var total int64
	for i := range loans {
		if excludeLoanID != nil && loans[i].ID == *excludeLoanID {
			continue
		}
		total += loans[i].OutstandingBalance()
	}
	return total, nil
}

func (lr *LoansRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]models.Loan, error) {
	loans, err := lr.repo.FindAllPaged(ctx, bson.M{"memberId": memberID})
	if err != nil {
		logger.CtxError(ctx, "Error listing member loans", err, slog.String("member_id", memberID.Hex()))
		return nil, err
	}
	return loans, nil
}
