// Package engine implements the financial projection core: budget arithmetic,
// purchase scheduling, debt payoff projection, portfolio rebalancing, and
// insight generation. Every function is pure and total: callers pass
// immutable snapshots and identical inputs always produce identical outputs.
package engine

import (
	"math"

	"furg/internal/models"
)

// DisposableIncome returns income less expenses. May be negative.
func DisposableIncome(b models.Budget) float64 {
	return b.MonthlyIncome - b.MonthlyExpenses
}

// MonthlySavings returns the monthly amount set aside toward the savings goal.
// Negative disposable income clamps to zero, so savings is never negative.
func MonthlySavings(b models.Budget) float64 {
	disposable := DisposableIncome(b)
	if disposable < 0 {
		disposable = 0
	}
	return disposable * b.SavingsGoalPercent / 100
}

// TotalAssets sums balances over asset accounts.
func TotalAssets(accounts []models.Account) float64 {
	total := 0.0
	for _, a := range accounts {
		if a.Type.IsAsset() {
			total += a.Balance
		}
	}
	return total
}

// TotalLiabilities sums absolute balances over liability accounts. Liability
// balances may be stored positive or negative; aggregation normalizes.
func TotalLiabilities(accounts []models.Account) float64 {
	total := 0.0
	for _, a := range accounts {
		if !a.Type.IsAsset() {
			total += math.Abs(a.Balance)
		}
	}
	return total
}

// NetWorth returns total assets less total liabilities.
func NetWorth(accounts []models.Account) float64 {
	return TotalAssets(accounts) - TotalLiabilities(accounts)
}
