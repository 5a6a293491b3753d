package loans

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/finance"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/models"
	storemodels "saccoledger/internal/pkg/store/models"
	"saccoledger/internal/service/interfaces"
)

// LoansService drives the loan state machine: application, approval,
// rejection, charge management and repayment recording. Multi-document
// mutations have no transactional guarantee from the store; partial failures
// are logged with reconciliation_required=true for manual follow-up.
type LoansService struct {
	loans      interfaces.LoansStore
	charges    interfaces.LoanChargesStore
	repayments interfaces.LoanRepaymentsStore
	savings    interfaces.SavingsStore
	members    interfaces.MembersStore
	config     interfaces.FinancialConfigStore
	ledger     interfaces.LedgerPoster
	lease      interfaces.RepaymentLease
	leaseTTL   time.Duration
}

func NewLoansService(
	loans interfaces.LoansStore,
	charges interfaces.LoanChargesStore,
	repayments interfaces.LoanRepaymentsStore,
	savings interfaces.SavingsStore,
	members interfaces.MembersStore,
	config interfaces.FinancialConfigStore,
	ledger interfaces.LedgerPoster,
	lease interfaces.RepaymentLease,
	leaseTTL time.Duration,
) *LoansService {
	return &LoansService{
		loans:      loans,
		charges:    charges,
		repayments: repayments,
		savings:    savings,
		members:    members,
		config:     config,
		ledger:     ledger,
		lease:      lease,
		leaseTTL:   leaseTTL,
	}
}

type ApplyForLoanRequest struct {
	MemberID      string  `json:"memberId"`
	Amount        int64   `json:"amount"`
	Duration      int     `json:"duration"`
	Purpose       string  `json:"purpose"`
	RepaymentType string  `json:"repaymentType"`
	CustomAmounts []int64 `json:"customAmounts,omitempty"`
}

type ApplyForLoanResult struct {
	LoanID   string                 `json:"loanId"`
	Status   consts.LoanStatus      `json:"status"`
	Schedule []finance.ScheduleItem `json:"schedule"`
}

type RecordRepaymentResult struct {
	RepaymentID   string            `json:"repaymentId"`
	PaymentAmount int64             `json:"paymentAmount"`
	PrincipalPaid int64             `json:"principalPaid"`
	ChargeApplied int64             `json:"chargeApplied"`
	NewBalance    int64             `json:"newBalance"`
	Status        consts.LoanStatus `json:"status"`
}

func parseObjectID(hexID, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError(fmt.Sprintf("invalid %s: %s", label, hexID))
	}
	return id, nil
}

// ApplyForLoan validates the request against the financial config and the
// member's available credit, generates the repayment schedule and persists a
// pending loan.
func (s *LoansService) ApplyForLoan(ctx context.Context, req ApplyForLoanRequest) (*ApplyForLoanResult, error) {
	memberID, err := parseObjectID(req.MemberID, "memberId")
	if err != nil {
		return nil, err
	}

	cfg, err := s.config.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}

	if req.Amount < cfg.MinLoanAmount || req.Amount > cfg.MaxLoanAmount {
		return nil, models.NewValidationError(fmt.Sprintf(
			"loan amount must be between %s and %s",
			finance.FormatCurrency(cfg.MinLoanAmount), finance.FormatCurrency(cfg.MaxLoanAmount),
		))
	}
	if req.Duration < 1 || req.Duration > cfg.MaxLoanDuration {
		return nil, models.NewValidationError(fmt.Sprintf("loan duration must be between 1 and %d months", cfg.MaxLoanDuration))
	}

	repaymentType := consts.RepaymentType(req.RepaymentType)
	if repaymentType != consts.RepaymentEqual && repaymentType != consts.RepaymentCustom {
		return nil, models.NewValidationError("repaymentType must be \"equal\" or \"custom\"")
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, models.NewNotFoundError("member not found")
	}
	if member.Status != consts.MemberActive {
		return nil, models.NewInvalidStateError("member is not active")
	}

	totalSavings, err := s.savings.TotalByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	exposure, err := s.loans.OutstandingActiveBalance(ctx, memberID, nil)
	if err != nil {
		return nil, err
	}

	validation := finance.ValidateLoanApplication(req.Amount, totalSavings, exposure, cfg.LoanEligibilityPercentage/100)
	if !validation.IsValid {
		return nil, models.NewEligibilityError(fmt.Sprintf(
			"requested %s exceeds available credit %s",
			finance.FormatCurrency(req.Amount), finance.FormatCurrency(validation.AvailableCredit),
		))
	}

	monthlyRate := cfg.LoanInterestRate / 100
	var schedule []finance.ScheduleItem
	if repaymentType == consts.RepaymentCustom {
		payments, err := resolveCustomPayments(req.Amount, req.Duration, monthlyRate, req.CustomAmounts)
		if err != nil {
			return nil, err
		}
		schedule = finance.GenerateRepaymentSchedule(req.Amount, req.Duration, payments, monthlyRate)
	} else {
		schedule = finance.GenerateRepaymentSchedule(req.Amount, req.Duration, nil, monthlyRate)
	}

	planJSON, err := json.Marshal(schedule)
	if err != nil {
		return nil, err
	}

	loan := &storemodels.Loan{
		MemberID:      memberID,
		Amount:        req.Amount,
		Duration:      req.Duration,
		Purpose:       req.Purpose,
		RepaymentType: repaymentType,
		RepaymentPlan: string(planJSON),
		Status:        consts.LoanPending,
		CreatedAt:     time.Now().UTC(),
	}
	loanID, err := s.loans.Create(ctx, loan)
	if err != nil {
		return nil, err
	}

	return &ApplyForLoanResult{
		LoanID:   loanID.Hex(),
		Status:   consts.LoanPending,
		Schedule: schedule,
	}, nil
}

// resolveCustomPayments accepts either a full plan (one payment per month) or
// the first months-1 payments with the final installment auto-derived.
func resolveCustomPayments(principal int64, months int, monthlyRate float64, customAmounts []int64) ([]int64, error) {
	switch len(customAmounts) {
	case months:
		return customAmounts, nil
	case months - 1:
		final := finance.DeriveFinalCustomPayment(principal, months, monthlyRate, customAmounts)
		return append(append([]int64{}, customAmounts...), final), nil
	default:
		return nil, models.NewValidationError(fmt.Sprintf(
			"custom plan must supply %d or %d payments, got %d", months-1, months, len(customAmounts),
		))
	}
}

// ApproveLoan re-validates eligibility at approval time and activates the
// loan, posting a disbursement ledger entry.
func (s *LoansService) ApproveLoan(ctx context.Context, loanIDHex string) (*storemodels.Loan, error) {
	loanID, err := parseObjectID(loanIDHex, "loanId")
	if err != nil {
		return nil, err
	}
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, models.NewNotFoundError("loan not found")
	}
	if loan.Status != consts.LoanPending {
		return nil, models.NewInvalidStateError(fmt.Sprintf("cannot approve loan in status %q", loan.Status))
	}

	cfg, err := s.config.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	totalSavings, err := s.savings.TotalByMember(ctx, loan.MemberID)
	if err != nil {
		return nil, err
	}
	exposure, err := s.loans.OutstandingActiveBalance(ctx, loan.MemberID, &loanID)
	if err != nil {
		return nil, err
	}

	availableCredit := finance.AvailableCredit(totalSavings, exposure, cfg.LoanEligibilityPercentage/100)
	if loan.Amount > availableCredit {
		return nil, models.NewEligibilityError(fmt.Sprintf(
			"loan amount %s exceeds available credit %s",
			finance.FormatCurrency(loan.Amount), finance.FormatCurrency(availableCredit),
		))
	}

	now := time.Now().UTC()
	if err := s.loans.MarkApproved(ctx, loanID, now, loan.Amount); err != nil {
		return nil, err
	}

	if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
		Type:     consts.LedgerLoanDisbursement,
		Amount:   loan.Amount,
		MemberID: loan.MemberID.Hex(),
		LoanID:   loanID.Hex(),
		Notes:    fmt.Sprintf("Loan disbursement %s", finance.FormatCurrency(loan.Amount)),
	}); err != nil {
		logger.CtxWarn(ctx, "Loan approved but disbursement entry failed",
			slog.String("loan_id", loanID.Hex()),
			slog.Bool("reconciliation_required", true),
		)
	}

	loan.Status = consts.LoanActive
	loan.ApprovedAt = &now
	loan.Balance = loan.Amount
	logger.CtxInfo(ctx, "Loan approved",
		slog.String("loan_id", loanID.Hex()),
		slog.Int64("amount", loan.Amount),
	)
	return loan, nil
}

// RejectLoan is terminal and posts no ledger entry.
func (s *LoansService) RejectLoan(ctx context.Context, loanIDHex string) (*storemodels.Loan, error) {
	loanID, err := parseObjectID(loanIDHex, "loanId")
	if err != nil {
		return nil, err
	}
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, models.NewNotFoundError("loan not found")
	}
	if loan.Status != consts.LoanPending {
		return nil, models.NewInvalidStateError(fmt.Sprintf("cannot reject loan in status %q", loan.Status))
	}

	now := time.Now().UTC()
	if err := s.loans.MarkRejected(ctx, loanID, now); err != nil {
		return nil, err
	}

	loan.Status = consts.LoanRejected
	loan.RejectedAt = &now
	logger.CtxInfo(ctx, "Loan rejected", slog.String("loan_id", loanID.Hex()))
	return loan, nil
}

// AddLoanCharge attaches a bank/transfer charge to a loan. An omitted amount
// falls back to the configured default bank charge.
func (s *LoansService) AddLoanCharge(ctx context.Context, loanIDHex, description string, amount int64) (*storemodels.LoanCharge, error) {
	loanID, err := parseObjectID(loanIDHex, "loanId")
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, models.NewValidationError("charge amount cannot be negative")
	}

	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, models.NewNotFoundError("loan not found")
	}

	if amount == 0 {
		cfg, err := s.config.GetOrCreateDefault(ctx)
		if err != nil {
			return nil, err
		}
		amount = cfg.DefaultBankCharge
	}

	charge := &storemodels.LoanCharge{
		LoanID:      loanID,
		Description: description,
		Amount:      amount,
		CreatedAt:   time.Now().UTC(),
	}
	chargeID, err := s.charges.Create(ctx, charge)
	if err != nil {
		return nil, err
	}
	charge.ID = chargeID

	if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
		Type:     consts.LedgerTransferCharge,
		Amount:   amount,
		MemberID: loan.MemberID.Hex(),
		LoanID:   loanID.Hex(),
		Notes:    fmt.Sprintf("Loan charge: %s", description),
	}); err != nil {
		logger.CtxWarn(ctx, "Charge created but ledger entry failed",
			slog.String("charge_id", chargeID.Hex()),
			slog.Bool("reconciliation_required", true),
		)
	}
	return charge, nil
}

// UpdateLoanCharge edits a charge and posts the net delta so the ledger keeps
// reflecting outstanding charges.
func (s *LoansService) UpdateLoanCharge(ctx context.Context, chargeIDHex, description string, amount int64) (*storemodels.LoanCharge, error) {
	chargeID, err := parseObjectID(chargeIDHex, "chargeId")
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, models.NewValidationError("charge amount cannot be negative")
	}

	charge, err := s.charges.GetByID(ctx, chargeID)
	if err != nil {
		return nil, models.NewNotFoundError("loan charge not found")
	}

	delta := amount - charge.Amount
	if err := s.charges.Update(ctx, chargeID, description, amount); err != nil {
		return nil, err
	}

	if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
		Type:   consts.LedgerTransferCharge,
		Amount: delta,
		LoanID: charge.LoanID.Hex(),
		Notes:  fmt.Sprintf("Loan charge adjusted: %s", description),
	}); err != nil {
		logger.CtxWarn(ctx, "Charge updated but ledger entry failed",
			slog.String("charge_id", chargeID.Hex()),
			slog.Bool("reconciliation_required", true),
		)
	}

	charge.Description = description
	charge.Amount = amount
	return charge, nil
}

// DeleteLoanCharge removes a charge and posts its negation.
func (s *LoansService) DeleteLoanCharge(ctx context.Context, chargeIDHex string) error {
	chargeID, err := parseObjectID(chargeIDHex, "chargeId")
	if err != nil {
		return err
	}

	charge, err := s.charges.GetByID(ctx, chargeID)
	if err != nil {
		return models.NewNotFoundError("loan charge not found")
	}

	if err := s.charges.Delete(ctx, chargeID); err != nil {
		return err
	}

	if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
		Type:   consts.LedgerTransferCharge,
		Amount: -charge.Amount,
		LoanID: charge.LoanID.Hex(),
		Notes:  fmt.Sprintf("Loan charge removed: %s (reversal)", charge.Description),
	}); err != nil {
		logger.CtxWarn(ctx, "Charge deleted but ledger reversal failed",
			slog.String("charge_id", chargeID.Hex()),
			slog.Bool("reconciliation_required", true),
		)
	}
	return nil
}

// RecordRepayment applies a scheduled installment or an early payoff to an
// active loan. A per-loan lease serializes concurrent submissions; the loan
// snapshot is read inside the lease so the balance cannot go stale under a
// concurrent writer.
func (s *LoansService) RecordRepayment(ctx context.Context, loanIDHex string, month int, isEarlyPayment bool, paidAt time.Time) (*RecordRepaymentResult, error) {
	loanID, err := parseObjectID(loanIDHex, "loanId")
	if err != nil {
		return nil, err
	}
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	acquired, err := s.lease.Acquire(ctx, loanID.Hex(), s.leaseTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, models.NewConflictError("another repayment for this loan is in progress")
	}
	defer func() {
		if releaseErr := s.lease.Release(ctx, loanID.Hex()); releaseErr != nil {
			logger.CtxWarn(ctx, "Failed to release repayment lease", slog.String("loan_id", loanID.Hex()))
		}
	}()

	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, models.NewNotFoundError("loan not found")
	}
	if loan.Status != consts.LoanActive {
		return nil, models.NewInvalidStateError(fmt.Sprintf("cannot record repayment on %q loan", loan.Status))
	}

	alreadyPaid, err := s.repayments.HasMonth(ctx, loanID, month)
	if err != nil {
		return nil, err
	}
	if alreadyPaid {
		return nil, models.NewConflictError(fmt.Sprintf("repayment for month %d already recorded", month))
	}

	var schedule []finance.ScheduleItem
	if err := json.Unmarshal([]byte(loan.RepaymentPlan), &schedule); err != nil {
		return nil, models.NewScheduleNotFoundError("loan has no parseable repayment plan")
	}
	var scheduled *finance.ScheduleItem
	for i := range schedule {
		if schedule[i].Month == month {
			scheduled = &schedule[i]
			break
		}
	}
	if scheduled == nil && !isEarlyPayment {
		return nil, models.NewScheduleNotFoundError(fmt.Sprintf("no schedule entry for month %d", month))
	}

	bankCharge, err := s.charges.SumByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	hasFirstMonth, err := s.repayments.HasMonth(ctx, loanID, 1)
	if err != nil {
		return nil, err
	}
	// The bank charge is billed exactly once, with whichever repayment
	// covers month 1.
	var chargeAmount int64
	if month == 1 && !hasFirstMonth {
		chargeAmount = bankCharge
	}

	cfg, err := s.config.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}

	currentBalance := loan.OutstandingBalance()
	var paymentAmount, principalPaid int64
	if isEarlyPayment {
		payoffRate := (cfg.LoanInterestRate + cfg.EarlyRepaymentPenalty) / 100
		paymentAmount = int64(math.Ceil(float64(currentBalance) + float64(loan.Amount)*payoffRate + float64(chargeAmount)))
		principalPaid = currentBalance
	} else {
		paymentAmount = int64(math.Ceil(float64(scheduled.Payment) + float64(chargeAmount)))
		principalPaid = scheduled.Principal
	}

	repayment := &storemodels.LoanRepayment{
		LoanID:         loanID,
		Amount:         paymentAmount,
		Month:          month,
		PaidAt:         paidAt,
		IsEarlyPayment: isEarlyPayment,
	}
	repaymentID, err := s.repayments.Create(ctx, repayment)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
		Type:     consts.LedgerLoanRepayment,
		Amount:   paymentAmount,
		MemberID: loan.MemberID.Hex(),
		LoanID:   loanID.Hex(),
		Notes:    fmt.Sprintf("Repayment month %d (%s)", month, finance.FormatCurrency(paymentAmount)),
	}); err != nil {
		logger.CtxWarn(ctx, "Repayment recorded but ledger entry failed",
			slog.String("repayment_id", repaymentID.Hex()),
			slog.Bool("reconciliation_required", true),
		)
	}

	newBalance := currentBalance - principalPaid
	if newBalance < 0 {
		newBalance = 0
	}
	newStatus := consts.LoanActive
	if newBalance == 0 {
		newStatus = consts.LoanCompleted
	}
	if err := s.loans.UpdateBalance(ctx, loanID, newBalance, newStatus); err != nil {
		logger.CtxError(ctx, "Repayment recorded but balance update failed", err,
			slog.String("repayment_id", repaymentID.Hex()),
			slog.Bool("reconciliation_required", true),
		)
		return nil, err
	}

	logger.CtxInfo(ctx, "Repayment recorded",
		slog.String("loan_id", loanID.Hex()),
		slog.Int("month", month),
		slog.Int64("amount", paymentAmount),
		slog.Bool("early_payment", isEarlyPayment),
	)
	return &RecordRepaymentResult{
		RepaymentID:   repaymentID.Hex(),
		PaymentAmount: paymentAmount,
		PrincipalPaid: principalPaid,
		ChargeApplied: chargeAmount,
		NewBalance:    newBalance,
		Status:        newStatus,
	}, nil
}

// ValidateLoanApplication recomputes eligibility for an existing pending
// loan without mutating anything. Used for display before approval.
func (s *LoansService) ValidateLoanApplication(ctx context.Context, loanIDHex string) (*finance.LoanValidation, error) {
	loanID, err := parseObjectID(loanIDHex, "loanId")
	if err != nil {
		return nil, err
	}
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, models.NewNotFoundError("loan not found")
	}

	cfg, err := s.config.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	totalSavings, err := s.savings.TotalByMember(ctx, loan.MemberID)
	if err != nil {
		return nil, err
	}
	exposure, err := s.loans.OutstandingActiveBalance(ctx, loan.MemberID, &loanID)
	if err != nil {
		return nil, err
	}

	validation := finance.ValidateLoanApplication(loan.Amount, totalSavings, exposure, cfg.LoanEligibilityPercentage/100)
	return &validation, nil
}
