package consts

// LoanStatus is the loan state machine:
// pending -> active -> completed, pending -> rejected.
// rejected and completed are terminal.
type LoanStatus string

const (
	LoanPending   LoanStatus = "pending"
	LoanActive    LoanStatus = "active"
	LoanRejected  LoanStatus = "rejected"
	LoanCompleted LoanStatus = "completed"
)

// RepaymentType selects how the schedule is generated.
type RepaymentType string

const (
	RepaymentEqual  RepaymentType = "equal"
	RepaymentCustom RepaymentType = "custom"
)

const (
	MemberActive = "active"
)
