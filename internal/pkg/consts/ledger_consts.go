package consts

// LedgerEntryType tags every ledger entry. The ledger is the append-only
// source of truth aggregate reports reduce over.
type LedgerEntryType string

const (
	LedgerSavings              LedgerEntryType = "Savings"
	LedgerLoanDisbursement     LedgerEntryType = "LoanDisbursement"
	LedgerLoanRepayment        LedgerEntryType = "LoanRepayment"
	LedgerTransferCharge       LedgerEntryType = "TransferCharge"
	LedgerSubscription         LedgerEntryType = "Subscription"
	LedgerUnitTrust            LedgerEntryType = "UnitTrust"
	LedgerExpense              LedgerEntryType = "Expense"
	LedgerCashAtBank           LedgerEntryType = "CashAtBank"
	LedgerLoanInterestAccrual  LedgerEntryType = "LoanInterestAccrual"
	LedgerTrustInterestAccrual LedgerEntryType = "TrustInterestAccrual"
	LedgerInterestPayout       LedgerEntryType = "InterestPayout"
)

// AccrualTypes are the entry types summed by the annual payout batch.
var AccrualTypes = []LedgerEntryType{LedgerLoanInterestAccrual, LedgerTrustInterestAccrual}
