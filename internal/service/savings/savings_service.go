package savings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/finance"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/models"
	storemodels "saccoledger/internal/pkg/store/models"
	"saccoledger/internal/service/interfaces"
)

// SavingsService records member contributions and their reversals, keeping
// the ledger in step with the savings collection.
type SavingsService struct {
	savings interfaces.SavingsStore
	members interfaces.MembersStore
	ledger  interfaces.LedgerPoster
}

func NewSavingsService(savings interfaces.SavingsStore, members interfaces.MembersStore, ledger interfaces.LedgerPoster) *SavingsService {
	return &SavingsService{savings: savings, members: members, ledger: ledger}
}

type RecordContributionRequest struct {
	MemberID string `json:"memberId"`
	Amount   int64  `json:"amount"`
	Month    string `json:"month"`
	// Reversal marks a negative correction entry; it must reference the
	// month being corrected.
	Reversal bool `json:"reversal,omitempty"`
}

// RecordContribution appends one contribution event and mirrors it in the
// ledger. Negative amounts are only legal as reversal entries.
func (s *SavingsService) RecordContribution(ctx context.Context, req RecordContributionRequest) (*storemodels.Saving, error) {
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid memberId: %s", req.MemberID))
	}
	parsedMonth, err := time.Parse("2006-01", req.Month)
	if err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("month must be YYYY-MM, got %q", req.Month))
	}
	if req.Amount == 0 {
		return nil, models.NewValidationError("amount cannot be zero")
	}
	if req.Amount < 0 && !req.Reversal {
		return nil, models.NewValidationError("negative amount is only allowed on a reversal entry")
	}
	if req.Amount > 0 && req.Reversal {
		return nil, models.NewValidationError("a reversal entry must carry a negative amount")
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, models.NewNotFoundError("member not found")
	}
	if member.Status != consts.MemberActive {
		return nil, models.NewInvalidStateError("member is not active")
	}

	saving := &storemodels.Saving{
		MemberID:  memberID,
		Amount:    req.Amount,
		Month:     req.Month,
		CreatedAt: time.Now().UTC(),
	}
	savingID, err := s.savings.Create(ctx, saving)
	if err != nil {
		return nil, err
	}
	saving.ID = savingID

	notes := fmt.Sprintf("Savings contribution %s", finance.FormatCurrency(req.Amount))
	if req.Reversal {
		notes = fmt.Sprintf("Savings contribution %s (reversal)", finance.FormatCurrency(req.Amount))
	}
	if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
		Type:     consts.LedgerSavings,
		Amount:   req.Amount,
		MemberID: memberID.Hex(),
		Month:    req.Month,
		Year:     parsedMonth.Year(),
		Notes:    notes,
	}); err != nil {
		logger.CtxWarn(ctx, "Contribution recorded but ledger entry failed",
			slog.String("saving_id", savingID.Hex()),
			slog.Bool("reconciliation_required", true),
		)
	}

	logger.CtxInfo(ctx, "Contribution recorded",
		slog.String("member_id", memberID.Hex()),
		slog.String("month", req.Month),
		slog.Int64("amount", req.Amount),
	)
	return saving, nil
}
