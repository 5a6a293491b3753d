package finance

import (
	"fmt"
	"math"
	"strings"
)

// Rates are fractional (0.02 for 2% per month). All amounts are integer
// shillings. Interest is flat-rate: recomputed on the original principal
// every month, never on the declining balance.

// ScheduleItem is one installment of a repayment plan.
type ScheduleItem struct {
	Month     int   `json:"month"`
	Payment   int64 `json:"payment"`
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
	Balance   int64 `json:"balance"`
}

// LoanEligibility is the maximum a member may borrow against their savings.
func LoanEligibility(totalSavings int64, eligibilityPct float64) int64 {
	return int64(math.Floor(float64(totalSavings) * eligibilityPct))
}

// MonthlyInterest is the flat interest charged every month.
func MonthlyInterest(principal int64, monthlyRate float64) int64 {
	return int64(math.Floor(float64(principal) * monthlyRate))
}

// EarlyRepaymentInterest is the extra interest charged on early payoff.
func EarlyRepaymentInterest(principal int64, penaltyRate float64) int64 {
	return int64(math.Floor(float64(principal) * penaltyRate))
}

// GenerateRepaymentSchedule builds the full plan for a loan. With
// customAmounts nil it produces equal monthly installments; otherwise each
// supplied amount becomes that month's payment and the interest stays flat.
func GenerateRepaymentSchedule(principal int64, months int, customAmounts []int64, monthlyRate float64) []ScheduleItem {
	monthlyInterest := MonthlyInterest(principal, monthlyRate)

	if customAmounts != nil {
		schedule := make([]ScheduleItem, 0, len(customAmounts))
		remainingBalance := principal
		for i, payment := range customAmounts {
			principalAmount := payment - monthlyInterest
			remainingBalance = maxInt64(0, remainingBalance-principalAmount)
			schedule = append(schedule, ScheduleItem{
				Month:     i + 1,
				Payment:   payment,
				Principal: principalAmount,
				Interest:  monthlyInterest,
				Balance:   remainingBalance,
			})
		}
		return schedule
	}

	totalInterest := monthlyInterest * int64(months)
	totalAmount := principal + totalInterest
	monthlyPayment := int64(math.Ceil(float64(totalAmount) / float64(months)))

	schedule := make([]ScheduleItem, 0, months)
	remainingBalance := principal
	for i := 0; i < months; i++ {
		principalAmount := monthlyPayment - monthlyInterest
		remainingBalance = maxInt64(0, remainingBalance-principalAmount)
		schedule = append(schedule, ScheduleItem{
			Month:     i + 1,
			Payment:   monthlyPayment,
			Principal: principalAmount,
			Interest:  monthlyInterest,
			Balance:   remainingBalance,
		})
	}
	return schedule
}

// DeriveFinalCustomPayment returns the auto-calculated last installment of a
// custom plan so the total collected matches principal plus flat interest.
// payments holds the first months-1 installments.
func DeriveFinalCustomPayment(principal int64, months int, monthlyRate float64, payments []int64) int64 {
	totalInterest := MonthlyInterest(principal, monthlyRate) * int64(months)
	totalRequired := principal + totalInterest
	var paidSoFar int64
	for _, p := range payments {
		paidSoFar += p
	}
	return maxInt64(0, totalRequired-paidSoFar)
}

// AvailableCredit is eligibility minus current active-loan exposure.
func AvailableCredit(totalSavings, activeExposure int64, eligibilityPct float64) int64 {
	return maxInt64(0, LoanEligibility(totalSavings, eligibilityPct)-activeExposure)
}

// LoanValidation carries the numbers behind an eligibility decision so the
// caller can show them back to the applicant.
type LoanValidation struct {
	IsValid         bool  `json:"isValid"`
	MaxEligible     int64 `json:"maxEligible"`
	CurrentExposure int64 `json:"currentExposure"`
	RequestedAmount int64 `json:"requestedAmount"`
	AvailableCredit int64 `json:"availableCredit"`
	TotalExposure   int64 `json:"totalExposure"`
}

// ValidateLoanApplication checks a requested amount against available credit.
// Client-side use is advisory only; the engine evaluates it again server-side.
func ValidateLoanApplication(amount, totalSavings, existingExposure int64, eligibilityPct float64) LoanValidation {
	maxEligible := LoanEligibility(totalSavings, eligibilityPct)
	availableCredit := AvailableCredit(totalSavings, existingExposure, eligibilityPct)
	return LoanValidation{
		IsValid:         amount <= availableCredit,
		MaxEligible:     maxEligible,
		CurrentExposure: existingExposure,
		RequestedAmount: amount,
		AvailableCredit: availableCredit,
		TotalExposure:   existingExposure + amount,
	}
}

// FormatCurrency renders an amount as a UGX display string.
func FormatCurrency(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := "UGX " + strings.Join(groups, ",")
	if negative {
		return "-" + formatted
	}
	return formatted
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
