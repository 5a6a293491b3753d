package consts

// Default collection names. Deployments override them through the
// collections section of the config file; an empty ledger collection
// disables ledger posting.
const (
	MembersCollection          = "members"
	SavingsCollection          = "savings"
	LoansCollection            = "loans"
	LoanChargesCollection      = "loan_charges"
	LoanRepaymentsCollection   = "loan_repayments"
	SubscriptionsCollection    = "subscriptions"
	ExpensesCollection         = "expenses"
	UnitTrustCollection        = "unit_trust"
	FinancialConfigCollection  = "financial_config"
	LedgerEntriesCollection    = "ledger_entries"
	InterestMonthlyCollection  = "interest_monthly"
	RetainedEarningsCollection = "retained_earnings"
)

// Cursor page size used when enumerating a whole collection.
const ListAllPageSize = 100
