package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"saccoledger/internal/pkg/consts"
)

// All monetary amounts are integers in the minor currency unit (UGX has no
// minor subdivision in practice, so one unit = one shilling).

type Member struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	Phone            string             `bson:"phone"`
	MembershipNumber string             `bson:"membershipNumber"`
	AuthUserID       string             `bson:"authUserId,omitempty"`
	JoinDate         time.Time          `bson:"joinDate"`
	Status           string             `bson:"status"`
}

// Saving is one contribution event; multiple entries per member-month are
// summed. Negative amounts are reversal entries paired with a ledger
// adjustment.
type Saving struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	MemberID  primitive.ObjectID `bson:"memberId"`
	Amount    int64              `bson:"amount"`
	Month     string             `bson:"month"` // YYYY-MM
	CreatedAt time.Time          `bson:"createdAt"`
}

type Loan struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	MemberID      primitive.ObjectID   `bson:"memberId"`
	Amount        int64                `bson:"amount"`
	Duration      int                  `bson:"duration"`
	Purpose       string               `bson:"purpose"`
	RepaymentType consts.RepaymentType `bson:"repaymentType"`
	RepaymentPlan string               `bson:"repaymentPlan"` // JSON-serialized schedule
	Status        consts.LoanStatus    `bson:"status"`
	Balance       int64                `bson:"balance"`
	CreatedAt     time.Time            `bson:"createdAt"`
	ApprovedAt    *time.Time           `bson:"approvedAt,omitempty"`
	RejectedAt    *time.Time           `bson:"rejectedAt,omitempty"`
}

// OutstandingBalance is the remaining principal; a loan that was never
// disbursed falls back to the applied amount.
func (l *Loan) OutstandingBalance() int64 {
	if l.Balance > 0 {
		return l.Balance
	}
	if l.Status == consts.LoanCompleted {
		return 0
	}
	return l.Amount
}

type LoanCharge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	LoanID      primitive.ObjectID `bson:"loanId"`
	Description string             `bson:"description"`
	Amount      int64              `bson:"amount"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type LoanRepayment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	LoanID         primitive.ObjectID `bson:"loanId"`
	Amount         int64              `bson:"amount"`
	Month          int                `bson:"month"`
	PaidAt         time.Time          `bson:"paidAt"`
	IsEarlyPayment bool               `bson:"isEarlyPayment"`
}

type FinancialConfig struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty"`
	LoanInterestRate          float64            `bson:"loanInterestRate"`          // percent per month
	LoanEligibilityPercentage float64            `bson:"loanEligibilityPercentage"` // percent of savings
	DefaultBankCharge         int64              `bson:"defaultBankCharge"`
	EarlyRepaymentPenalty     float64            `bson:"earlyRepaymentPenalty"` // percent
	MaxLoanDuration           int                `bson:"maxLoanDuration"`
	MinLoanAmount             int64              `bson:"minLoanAmount"`
	MaxLoanAmount             int64              `bson:"maxLoanAmount"`
}

// LedgerEntry is append-only. Entries are never updated or deleted; a
// correction is a new entry with the negated amount and an explanatory note.
type LedgerEntry struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty"`
	Type      consts.LedgerEntryType `bson:"type"`
	Amount    int64                  `bson:"amount"`
	MemberID  string                 `bson:"memberId,omitempty"`
	LoanID    string                 `bson:"loanId,omitempty"`
	Month     string                 `bson:"month,omitempty"` // YYYY-MM
	Year      int                    `bson:"year,omitempty"`
	CreatedAt time.Time              `bson:"createdAt"`
	Notes     string                 `bson:"notes"`
}

// InterestMonthly is entered manually once per calendar month and read by
// the accrual batch.
type InterestMonthly struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Month              string             `bson:"month"` // YYYY-MM
	Year               int                `bson:"year"`
	LoanInterestTotal  int64              `bson:"loanInterestTotal"`
	TrustInterestTotal int64              `bson:"trustInterestTotal"`
	CreatedAt          time.Time          `bson:"createdAt"`
	Notes              string             `bson:"notes"`
}

type RetainedEarnings struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Year       int                `bson:"year"`
	Percentage float64            `bson:"percentage"`
	CreatedAt  time.Time          `bson:"createdAt"`
	Notes      string             `bson:"notes"`
}
