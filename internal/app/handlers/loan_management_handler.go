package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/models"
	"saccoledger/internal/service/loans"
	"saccoledger/internal/service/savings"
)

// LoanManagementHandler is the single serverless-style entry point for loan
// lifecycle operations, dispatched on the "action" field of the payload.
type LoanManagementHandler struct {
	loansService   *loans.LoansService
	savingsService *savings.SavingsService
}

func NewLoanManagementHandler(loansService *loans.LoansService, savingsService *savings.SavingsService) *LoanManagementHandler {
	return &LoanManagementHandler{
		loansService:   loansService,
		savingsService: savingsService,
	}
}

type loanManagementRequest struct {
	Action string `json:"action"`

	LoanID   string `json:"loanId,omitempty"`
	ChargeID string `json:"chargeId,omitempty"`
	MemberID string `json:"memberId,omitempty"`

	Amount         int64  `json:"amount,omitempty"`
	Description    string `json:"description,omitempty"`
	Month          int    `json:"month,omitempty"`
	IsEarlyPayment bool   `json:"isEarlyPayment,omitempty"`
	PaidAt         string `json:"paidAt,omitempty"`

	Duration      int     `json:"duration,omitempty"`
	Purpose       string  `json:"purpose,omitempty"`
	RepaymentType string  `json:"repaymentType,omitempty"`
	CustomAmounts []int64 `json:"customAmounts,omitempty"`

	SavingsMonth string `json:"savingsMonth,omitempty"`
	Reversal     bool   `json:"reversal,omitempty"`
}

func (h *LoanManagementHandler) LoanManagement(c *gin.Context) {
	var req loanManagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid JSON payload"))
		return
	}

	ctx := c.Request.Context()
	logger.CtxInfo(ctx, "Loan management action received", slog.String("action", req.Action))

	switch req.Action {
	case "applyForLoan":
		result, err := h.loansService.ApplyForLoan(ctx, loans.ApplyForLoanRequest{
			MemberID:      req.MemberID,
			Amount:        req.Amount,
			Duration:      req.Duration,
			Purpose:       req.Purpose,
			RepaymentType: req.RepaymentType,
			CustomAmounts: req.CustomAmounts,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"loan": result})

	case "approveLoan":
		loan, err := h.loansService.ApproveLoan(ctx, req.LoanID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"loanId": loan.ID.Hex(), "status": loan.Status, "balance": loan.Balance})

	case "rejectLoan":
		loan, err := h.loansService.RejectLoan(ctx, req.LoanID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"loanId": loan.ID.Hex(), "status": loan.Status})

	case "addLoanCharge":
		charge, err := h.loansService.AddLoanCharge(ctx, req.LoanID, req.Description, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"chargeId": charge.ID.Hex(), "amount": charge.Amount})

	case "updateLoanCharge":
		charge, err := h.loansService.UpdateLoanCharge(ctx, req.ChargeID, req.Description, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"chargeId": charge.ID.Hex(), "amount": charge.Amount})

	case "deleteLoanCharge":
		if err := h.loansService.DeleteLoanCharge(ctx, req.ChargeID); err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"chargeId": req.ChargeID, "deleted": true})

	case "recordRepayment":
		var paidAt time.Time
		if req.PaidAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.PaidAt)
			if err != nil {
				respondError(c, models.NewValidationError("paidAt must be RFC3339"))
				return
			}
			paidAt = parsed
		}
		result, err := h.loansService.RecordRepayment(ctx, req.LoanID, req.Month, req.IsEarlyPayment, paidAt)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"repayment": result})

	case "validateLoanApplication":
		validation, err := h.loansService.ValidateLoanApplication(ctx, req.LoanID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"validation": validation})

	case "recordSavings":
		saving, err := h.savingsService.RecordContribution(ctx, savings.RecordContributionRequest{
			MemberID: req.MemberID,
			Amount:   req.Amount,
			Month:    req.SavingsMonth,
			Reversal: req.Reversal,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, gin.H{"savingId": saving.ID.Hex(), "amount": saving.Amount, "month": saving.Month})

	default:
		respondError(c, models.NewValidationError(fmt.Sprintf("unknown action %q", req.Action)))
	}
}
