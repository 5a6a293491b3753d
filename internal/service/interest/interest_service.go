package interest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/finance"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/models"
	"saccoledger/internal/pkg/store/impl/ledgerentries"
	storemodels "saccoledger/internal/pkg/store/models"
	"saccoledger/internal/service/interfaces"
)

// InterestService runs the monthly accrual and annual payout batches. Both
// are idempotent against re-running for the same period; neither is designed
// to run concurrently with itself.
type InterestService struct {
	members         interfaces.MembersStore
	savings         interfaces.SavingsStore
	interestMonthly interfaces.InterestMonthlyStore
	retained        interfaces.RetainedEarningsStore
	entries         interfaces.LedgerEntriesStore
	ledger          interfaces.LedgerPoster
}

func NewInterestService(
	members interfaces.MembersStore,
	savings interfaces.SavingsStore,
	interestMonthly interfaces.InterestMonthlyStore,
	retained interfaces.RetainedEarningsStore,
	entries interfaces.LedgerEntriesStore,
	ledger interfaces.LedgerPoster,
) *InterestService {
	return &InterestService{
		members:         members,
		savings:         savings,
		interestMonthly: interestMonthly,
		retained:        retained,
		entries:         entries,
		ledger:          ledger,
	}
}

type AccrualResult struct {
	Month         string `json:"month"`
	LoanPool      int64  `json:"loanPool"`
	TrustPool     int64  `json:"trustPool"`
	EntriesPosted int    `json:"entriesPosted"`
	Skipped       int    `json:"skipped"`
}

type PayoutResult struct {
	Year          int   `json:"year"`
	MembersPaid   int   `json:"membersPaid"`
	TotalPaid     int64 `json:"totalPaid"`
	AlreadyPaid   int   `json:"alreadyPaid"`
	ZeroOrNothing int   `json:"zeroOrNothing"`
}

func parseMonth(month string) (time.Time, error) {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, models.NewValidationError(fmt.Sprintf("month must be YYYY-MM, got %q", month))
	}
	return parsed, nil
}

// AccrueMonthlyInterest allocates the month's interest pools across members
// and posts one accrual entry per member and pool. Entries already present
// for the month are skipped, so re-running is safe.
func (s *InterestService) AccrueMonthlyInterest(ctx context.Context, month string) (*AccrualResult, error) {
	parsed, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	year := parsed.Year()

	if s.entries == nil {
		return nil, models.NewMissingDataError("ledger is not configured; accrual requires a ledger collection")
	}

	record, err := s.interestMonthly.GetByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, models.NewMissingDataError(fmt.Sprintf("no monthly interest record for %s", month))
	}

	var retainedPct float64
	if retained, err := s.retained.GetByYear(ctx, year); err != nil {
		return nil, err
	} else if retained != nil {
		retainedPct = retained.Percentage
	}

	retainedFactor := 1 - retainedPct/100
	if retainedFactor < 0 {
		retainedFactor = 0
	}
	loanPool := int64(math.Floor(float64(record.LoanInterestTotal) * retainedFactor))
	trustPool := int64(math.Floor(float64(record.TrustInterestTotal) * retainedFactor))

	memberList, err := s.members.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	memberIDs := make([]string, 0, len(memberList))
	for _, m := range memberList {
		memberIDs = append(memberIDs, m.ID.Hex())
	}

	monthSavings, err := s.savings.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	weights := make(map[string]int64, len(memberIDs))
	for _, saving := range monthSavings {
		weights[saving.MemberID.Hex()] += saving.Amount
	}

	existing, err := s.entries.ExistingAccrualKeys(ctx, month)
	if err != nil {
		return nil, err
	}

	loanAllocations := finance.AllocateEvenly(loanPool, memberIDs)
	trustAllocations := finance.AllocateByWeight(trustPool, weights)

	result := &AccrualResult{Month: month, LoanPool: loanPool, TrustPool: trustPool}
	post := func(entryType consts.LedgerEntryType, memberID string, amount int64) error {
		if amount == 0 {
			return nil
		}
		if existing[ledgerentries.AccrualKey(entryType, memberID)] {
			result.Skipped++
			return nil
		}
		label := "Loan interest accrual"
		if entryType == consts.LedgerTrustInterestAccrual {
			label = "Trust interest accrual"
		}
		if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
			Type:     entryType,
			Amount:   amount,
			MemberID: memberID,
			Month:    month,
			Year:     year,
			Notes:    fmt.Sprintf("%s for %s", label, month),
		}); err != nil {
			return err
		}
		result.EntriesPosted++
		return nil
	}

	for _, memberID := range memberIDs {
		if err := post(consts.LedgerLoanInterestAccrual, memberID, loanAllocations[memberID]); err != nil {
			return nil, err
		}
	}
	for _, memberID := range memberIDs {
		if err := post(consts.LedgerTrustInterestAccrual, memberID, trustAllocations[memberID]); err != nil {
			return nil, err
		}
	}

	logger.CtxInfo(ctx, "Monthly interest accrual completed",
		slog.String("month", month),
		slog.Int64("loan_pool", loanPool),
		slog.Int64("trust_pool", trustPool),
		slog.Int("entries_posted", result.EntriesPosted),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

// AnnualInterestPayout pays each member their accumulated accruals for the
// year in one InterestPayout entry. Members already paid for the year are
// skipped.
func (s *InterestService) AnnualInterestPayout(ctx context.Context, year int) (*PayoutResult, error) {
	if year < 2000 || year > 3000 {
		return nil, models.NewValidationError(fmt.Sprintf("implausible year %d", year))
	}
	if s.entries == nil {
		return nil, models.NewMissingDataError("ledger is not configured; payout requires a ledger collection")
	}

	accruals, err := s.entries.AccrualsByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, entry := range accruals {
		if _, seen := totals[entry.MemberID]; !seen {
			order = append(order, entry.MemberID)
		}
		totals[entry.MemberID] += entry.Amount
	}

	alreadyPaid, err := s.entries.PayoutMemberIDs(ctx, year)
	if err != nil {
		return nil, err
	}

	result := &PayoutResult{Year: year}
	for _, memberID := range order {
		total := totals[memberID]
		if total <= 0 {
			result.ZeroOrNothing++
			continue
		}
		if alreadyPaid[memberID] {
			result.AlreadyPaid++
			continue
		}
		if err := s.ledger.Post(ctx, storemodels.LedgerEntry{
			Type:     consts.LedgerInterestPayout,
			Amount:   total,
			MemberID: memberID,
			Year:     year,
			Notes:    fmt.Sprintf("Annual interest payout for %d", year),
		}); err != nil {
			return nil, err
		}
		result.MembersPaid++
		result.TotalPaid += total
	}

	logger.CtxInfo(ctx, "Annual interest payout completed",
		slog.Int("year", year),
		slog.Int("members_paid", result.MembersPaid),
		slog.Int64("total_paid", result.TotalPaid),
	)
	return result, nil
}
