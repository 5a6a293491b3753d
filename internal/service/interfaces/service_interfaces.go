package interfaces

import (
	"context"
	"time"

	"saccoledger/internal/pkg/store/models"
)

// LedgerPoster appends entries to the append-only ledger. Implementations
// must treat posting as best-effort when the ledger is not configured.
type LedgerPoster interface {
	Post(ctx context.Context, entry models.LedgerEntry) error
}

// AuthAccounts is the downstream identity provider used when onboarding a
// member. DeleteAccount compensates a failed member insert.
type AuthAccounts interface {
	CreateAccount(ctx context.Context, email, name, phone string) (string, error)
	DeleteAccount(ctx context.Context, authUserID string) error
}

// RepaymentLease serializes repayment recording per loan. Acquire returns
// false when another request holds the lease.
type RepaymentLease interface {
	Acquire(ctx context.Context, loanID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, loanID string) error
}
