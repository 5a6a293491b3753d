package ledger

import (
	"context"
	"log/slog"
	"time"

	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/store/models"
	"saccoledger/internal/service/interfaces"
)

// LedgerService appends entries to the append-only ledger. A nil entries
// store disables posting entirely; callers never branch on that themselves.
type LedgerService struct {
	entries interfaces.LedgerEntriesStore
}

func NewLedgerService(entries interfaces.LedgerEntriesStore) *LedgerService {
	return &LedgerService{entries: entries}
}

// Post appends one entry. Month and Year are derived from CreatedAt when the
// caller leaves them unset. When the ledger collection is not configured the
// call is a silent no-op so deployments without a ledger keep working.
func (ls *LedgerService) Post(ctx context.Context, entry models.LedgerEntry) error {
	if ls.entries == nil {
		logger.CtxDebug(ctx, "Ledger not configured, skipping entry", slog.String("type", string(entry.Type)))
		return nil
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Month == "" {
		entry.Month = entry.CreatedAt.Format("2006-01")
	}
	if entry.Year == 0 {
		entry.Year = entry.CreatedAt.Year()
	}

	if _, err := ls.entries.Create(ctx, &entry); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "Ledger entry posted",
		slog.String("type", string(entry.Type)),
		slog.Int64("amount", entry.Amount),
		slog.String("month", entry.Month),
	)
	return nil
}
