package app

import (
	"saccoledger/internal/pkg/config"
	mongodb "saccoledger/internal/pkg/db/mongo"
	redisdb "saccoledger/internal/pkg/db/redis"
	"saccoledger/internal/pkg/downstream/auth"
	"saccoledger/internal/pkg/lease"
	"saccoledger/internal/pkg/store/impl/financialconfig"
	"saccoledger/internal/pkg/store/impl/interestmonthly"
	"saccoledger/internal/pkg/store/impl/ledgerentries"
	"saccoledger/internal/pkg/store/impl/loancharges"
	"saccoledger/internal/pkg/store/impl/loanrepayments"
	loansrepo "saccoledger/internal/pkg/store/impl/loans"
	membersrepo "saccoledger/internal/pkg/store/impl/members"
	"saccoledger/internal/pkg/store/impl/retainedearnings"
	savingsrepo "saccoledger/internal/pkg/store/impl/savings"
	"saccoledger/internal/service/interest"
	"saccoledger/internal/service/interfaces"
	"saccoledger/internal/service/ledger"
	"saccoledger/internal/service/loans"
	"saccoledger/internal/service/members"
	"saccoledger/internal/service/reports"
	"saccoledger/internal/service/savings"
)

// Container wires repositories and services from live connections. Shared
// by the HTTP server and the batch binaries.
type Container struct {
	Loans    *loans.LoansService
	Savings  *savings.SavingsService
	Members  *members.MembersService
	Interest *interest.InterestService
	Reports  *reports.ReportsService
}

func NewContainer(cfg *config.AppConfig, mongoClient *mongodb.MongoClient, redisClient *redisdb.RedisClient) *Container {
	membersStore := membersrepo.NewMembersRepository(mongoClient, cfg.Collections.Members)
	savingsStore := savingsrepo.NewSavingsRepository(mongoClient, cfg.Collections.Savings)
	loansStore := loansrepo.NewLoansRepository(mongoClient, cfg.Collections.Loans)
	chargesStore := loancharges.NewLoanChargesRepository(mongoClient, cfg.Collections.LoanCharges)
	repaymentsStore := loanrepayments.NewLoanRepaymentsRepository(mongoClient, cfg.Collections.LoanRepayments)
	configStore := financialconfig.NewFinancialConfigRepository(mongoClient, cfg.Collections.FinancialConfig)
	interestStore := interestmonthly.NewInterestMonthlyRepository(mongoClient, cfg.Collections.InterestMonthly)
	retainedStore := retainedearnings.NewRetainedEarningsRepository(mongoClient, cfg.Collections.RetainedEarnings)

	// An unset ledger collection disables posting; the poster handles the
	// nil store itself.
	var entriesStore interfaces.LedgerEntriesStore
	if cfg.Collections.LedgerEntries != "" {
		entriesStore = ledgerentries.NewLedgerEntriesRepository(mongoClient, cfg.Collections.LedgerEntries)
	}
	poster := ledger.NewLedgerService(entriesStore)

	repaymentLease := lease.NewRedisLease(redisClient.Client)
	authClient := auth.NewClient(cfg.Auth)

	return &Container{
		Loans: loans.NewLoansService(
			loansStore, chargesStore, repaymentsStore, savingsStore, membersStore,
			configStore, poster, repaymentLease, cfg.Redis.LeaseTTL,
		),
		Savings:  savings.NewSavingsService(savingsStore, membersStore, poster),
		Members:  members.NewMembersService(membersStore, authClient),
		Interest: interest.NewInterestService(membersStore, savingsStore, interestStore, retainedStore, entriesStore, poster),
		Reports:  reports.NewReportsService(entriesStore, savingsStore),
	}
}
