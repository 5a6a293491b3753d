package reports

import (
	"context"
	"fmt"
	"log/slog"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/finance"
	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/models"
	"saccoledger/internal/service/interfaces"
)

// ReportsService reduces the ledger into per-type yearly summaries. When no
// ledger is configured it falls back to recomputing from the primary savings
// collection, which is a lower-fidelity approximation.
type ReportsService struct {
	entries interfaces.LedgerEntriesStore
	savings interfaces.SavingsStore
}

func NewReportsService(entries interfaces.LedgerEntriesStore, savings interfaces.SavingsStore) *ReportsService {
	return &ReportsService{entries: entries, savings: savings}
}

type LedgerSummary struct {
	Year       int               `json:"year"`
	Totals     map[string]int64  `json:"totals"`
	Formatted  map[string]string `json:"formatted"`
	FromLedger bool              `json:"fromLedger"`
}

// YearlySummary nets every ledger entry of the year per type.
func (s *ReportsService) YearlySummary(ctx context.Context, year int) (*LedgerSummary, error) {
	if year < 2000 || year > 3000 {
		return nil, models.NewValidationError(fmt.Sprintf("implausible year %d", year))
	}

	if s.entries != nil {
		byType, err := s.entries.SumByType(ctx, year)
		if err != nil {
			return nil, err
		}
		return buildSummary(year, byType, true), nil
	}

	logger.CtxWarn(ctx, "Ledger not configured, approximating summary from savings", slog.Int("year", year))
	var savingsTotal int64
	for monthIdx := 1; monthIdx <= 12; monthIdx++ {
		month := fmt.Sprintf("%04d-%02d", year, monthIdx)
		entries, err := s.savings.ListByMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			savingsTotal += entry.Amount
		}
	}
	byType := map[consts.LedgerEntryType]int64{consts.LedgerSavings: savingsTotal}
	return buildSummary(year, byType, false), nil
}

func buildSummary(year int, byType map[consts.LedgerEntryType]int64, fromLedger bool) *LedgerSummary {
	summary := &LedgerSummary{
		Year:       year,
		Totals:     make(map[string]int64, len(byType)),
		Formatted:  make(map[string]string, len(byType)),
		FromLedger: fromLedger,
	}
	for entryType, total := range byType {
		summary.Totals[string(entryType)] = total
		summary.Formatted[string(entryType)] = finance.FormatCurrency(total)
	}
	return summary
}
