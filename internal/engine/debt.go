package engine

import (
	"time"

	"furg/internal/models"
)

// LoanProgress summarizes payoff progress for one loan-carrying account.
type LoanProgress struct {
	AccountID        int64   `json:"account_id"`
	Name             string  `json:"name"`
	OriginalAmount   float64 `json:"original_amount"`
	RemainingBalance float64 `json:"remaining_balance"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	PercentPaid      float64 `json:"percent_paid"`
	MonthsRemaining  int     `json:"months_remaining"`
	TotalInterest    float64 `json:"total_interest"`
}

// DebtSummary aggregates payoff progress across all loans.
type DebtSummary struct {
	AggregatePercentPaid float64        `json:"aggregate_percent_paid"`
	TotalOriginal        float64        `json:"total_original"`
	TotalRemaining       float64        `json:"total_remaining"`
	TotalMonthlyPayments float64        `json:"total_monthly_payments"`
	DebtFreeDate         *time.Time     `json:"debt_free_date,omitempty"`
	Loans                []LoanProgress `json:"loans"`
}

// ProjectDebtPayoff summarizes payoff progress across liability accounts that
// carry loan details. The debt-free date is the latest payoff date; it is nil
// when no loans exist. Payment application order (snowball/avalanche) is
// deliberately not computed here.
func ProjectDebtPayoff(accounts []models.Account, now time.Time) DebtSummary {
	summary := DebtSummary{Loans: make([]LoanProgress, 0)}

	for _, a := range accounts {
		if a.Type.IsAsset() || a.Loan == nil {
			continue
		}
		loan := a.Loan

		summary.TotalOriginal += loan.OriginalAmount
		summary.TotalRemaining += loan.RemainingBalance
		summary.TotalMonthlyPayments += loan.MonthlyPayment

		if summary.DebtFreeDate == nil || loan.PayoffDate.After(*summary.DebtFreeDate) {
			payoff := loan.PayoffDate
			summary.DebtFreeDate = &payoff
		}

		summary.Loans = append(summary.Loans, LoanProgress{
			AccountID:        a.ID,
			Name:             a.Name,
			OriginalAmount:   loan.OriginalAmount,
			RemainingBalance: loan.RemainingBalance,
			MonthlyPayment:   loan.MonthlyPayment,
			PercentPaid:      loan.PercentPaid(),
			MonthsRemaining:  loan.MonthsRemaining(now),
			TotalInterest:    loan.TotalInterest(),
		})
	}

	if summary.TotalOriginal > 0 {
		summary.AggregatePercentPaid = (summary.TotalOriginal - summary.TotalRemaining) / summary.TotalOriginal * 100
	}
	return summary
}
