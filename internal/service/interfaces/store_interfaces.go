package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/store/models"
)

// Narrow store contracts consumed by the services. Each is implemented by
// the matching typed repository and mocked in tests.

type MembersStore interface {
	ListAll(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, memberID primitive.ObjectID) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) (primitive.ObjectID, error)
	FindByAuthUserID(ctx context.Context, authUserID string) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	BackfillAuthUserID(ctx context.Context, memberID primitive.ObjectID, authUserID string) error
}

type SavingsStore interface {
	TotalByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error)
	ListByMonth(ctx context.Context, month string) ([]models.Saving, error)
	Create(ctx context.Context, saving *models.Saving) (primitive.ObjectID, error)
}

type LoansStore interface {
	GetByID(ctx context.Context, loanID primitive.ObjectID) (*models.Loan, error)
	Create(ctx context.Context, loan *models.Loan) (primitive.ObjectID, error)
	MarkApproved(ctx context.Context, loanID primitive.ObjectID, approvedAt time.Time, balance int64) error
	MarkRejected(ctx context.Context, loanID primitive.ObjectID, rejectedAt time.Time) error
	UpdateBalance(ctx context.Context, loanID primitive.ObjectID, balance int64, status consts.LoanStatus) error
	OutstandingActiveBalance(ctx context.Context, memberID primitive.ObjectID, excludeLoanID *primitive.ObjectID) (int64, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]models.Loan, error)
}

type LoanChargesStore interface {
	GetByID(ctx context.Context, chargeID primitive.ObjectID) (*models.LoanCharge, error)
	ListByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.LoanCharge, error)
	SumByLoan(ctx context.Context, loanID primitive.ObjectID) (int64, error)
	Create(ctx context.Context, charge *models.LoanCharge) (primitive.ObjectID, error)
	Update(ctx context.Context, chargeID primitive.ObjectID, description string, amount int64) error
	Delete(ctx context.Context, chargeID primitive.ObjectID) error
}

type LoanRepaymentsStore interface {
	Create(ctx context.Context, repayment *models.LoanRepayment) (primitive.ObjectID, error)
	ListByLoan(ctx context.Context, loanID primitive.ObjectID) ([]models.LoanRepayment, error)
	HasMonth(ctx context.Context, loanID primitive.ObjectID, month int) (bool, error)
}

type FinancialConfigStore interface {
	GetOrCreateDefault(ctx context.Context) (*models.FinancialConfig, error)
	Save(ctx context.Context, cfg *models.FinancialConfig) error
}

type LedgerEntriesStore interface {
	Create(ctx context.Context, entry *models.LedgerEntry) (primitive.ObjectID, error)
	ExistingAccrualKeys(ctx context.Context, month string) (map[string]bool, error)
	AccrualsByYear(ctx context.Context, year int) ([]models.LedgerEntry, error)
	PayoutMemberIDs(ctx context.Context, year int) (map[string]bool, error)
	SumByType(ctx context.Context, year int) (map[consts.LedgerEntryType]int64, error)
	ListByYear(ctx context.Context, year int) ([]models.LedgerEntry, error)
}

type InterestMonthlyStore interface {
	GetByMonth(ctx context.Context, month string) (*models.InterestMonthly, error)
}

type RetainedEarningsStore interface {
	GetByYear(ctx context.Context, year int) (*models.RetainedEarnings, error)
}
