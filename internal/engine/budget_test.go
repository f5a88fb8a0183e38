package engine

import (
	"testing"

	"furg/internal/models"
)

func TestDisposableIncome(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses float64
		expected float64
	}{
		{"positive", 5000, 3000, 2000},
		{"zero", 3000, 3000, 0},
		{"negative", 2000, 3000, -1000},
	}

	for _, tc := range tests {
		b := models.Budget{MonthlyIncome: tc.income, MonthlyExpenses: tc.expenses}
		if got := DisposableIncome(b); got != tc.expected {
			t.Errorf("%s: DisposableIncome() = %f, want %f", tc.name, got, tc.expected)
		}
	}
}

func TestMonthlySavings_ClampsNegativeDisposableIncome(t *testing.T) {
	b := models.Budget{MonthlyIncome: 2000, MonthlyExpenses: 3000, SavingsGoalPercent: 50}
	if got := MonthlySavings(b); got != 0 {
		t.Errorf("MonthlySavings() = %f, want 0 for negative disposable income", got)
	}
}

func TestMonthlySavings(t *testing.T) {
	tests := []struct {
		name     string
		budget   models.Budget
		expected float64
	}{
		{"half of disposable", models.Budget{MonthlyIncome: 5000, MonthlyExpenses: 3000, SavingsGoalPercent: 50}, 1000},
		{"full disposable", models.Budget{MonthlyIncome: 4000, MonthlyExpenses: 1000, SavingsGoalPercent: 100}, 3000},
		{"zero percent", models.Budget{MonthlyIncome: 5000, MonthlyExpenses: 3000, SavingsGoalPercent: 0}, 0},
	}

	for _, tc := range tests {
		if got := MonthlySavings(tc.budget); got != tc.expected {
			t.Errorf("%s: MonthlySavings() = %f, want %f", tc.name, got, tc.expected)
		}
	}
}

func TestNetWorth_Additivity(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, Type: models.AccountChecking, Balance: 1500},
		{ID: 2, Type: models.AccountInvestment, Balance: 42000},
		{ID: 3, Type: models.AccountCreditCard, Balance: -800},
		{ID: 4, Type: models.AccountMortgage, Balance: -250000},
	}

	assets := TotalAssets(accounts)
	liabilities := TotalLiabilities(accounts)

	if assets != 43500 {
		t.Errorf("TotalAssets() = %f, want 43500", assets)
	}
	if liabilities != 250800 {
		t.Errorf("TotalLiabilities() = %f, want 250800", liabilities)
	}
	if got := NetWorth(accounts); got != assets-liabilities {
		t.Errorf("NetWorth() = %f, want assets-liabilities = %f", got, assets-liabilities)
	}
}

func TestNetWorth_EmptySet(t *testing.T) {
	if got := NetWorth(nil); got != 0 {
		t.Errorf("NetWorth(nil) = %f, want 0", got)
	}
	if got := NetWorth([]models.Account{}); got != 0 {
		t.Errorf("NetWorth(empty) = %f, want 0", got)
	}
}

func TestTotalLiabilities_NormalizesSign(t *testing.T) {
	// Liability balances may be stored positive or negative.
	negative := []models.Account{{Type: models.AccountLoan, Balance: -5000}}
	positive := []models.Account{{Type: models.AccountLoan, Balance: 5000}}

	if got := TotalLiabilities(negative); got != 5000 {
		t.Errorf("TotalLiabilities(negative) = %f, want 5000", got)
	}
	if got := TotalLiabilities(positive); got != 5000 {
		t.Errorf("TotalLiabilities(positive) = %f, want 5000", got)
	}
}
