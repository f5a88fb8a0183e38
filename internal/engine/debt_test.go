package engine

import (
	"testing"
	"time"

	"furg/internal/models"
)

var debtNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func loanAccount(id int64, name string, original, remaining, payment float64, payoff time.Time) models.Account {
	return models.Account{
		ID:      id,
		Name:    name,
		Type:    models.AccountLoan,
		Balance: -remaining,
		Loan: &models.LoanDetails{
			AccountID:        id,
			OriginalAmount:   original,
			RemainingBalance: remaining,
			MonthlyPayment:   payment,
			TermMonths:       120,
			PayoffDate:       payoff,
		},
	}
}

func TestProjectDebtPayoff_Aggregate(t *testing.T) {
	accounts := []models.Account{
		loanAccount(1, "Car loan", 20000, 5000, 350, time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC)),
		loanAccount(2, "Student loan", 40000, 25000, 450, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)),
	}

	summary := ProjectDebtPayoff(accounts, debtNow)

	// (60000 - 30000) / 60000 = 50%
	if summary.AggregatePercentPaid != 50 {
		t.Errorf("AggregatePercentPaid = %f, want 50", summary.AggregatePercentPaid)
	}
	if summary.TotalMonthlyPayments != 800 {
		t.Errorf("TotalMonthlyPayments = %f, want 800", summary.TotalMonthlyPayments)
	}
	if summary.DebtFreeDate == nil {
		t.Fatal("DebtFreeDate is nil, want the latest payoff date")
	}
	want := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !summary.DebtFreeDate.Equal(want) {
		t.Errorf("DebtFreeDate = %v, want %v", summary.DebtFreeDate, want)
	}
	if len(summary.Loans) != 2 {
		t.Fatalf("got %d loans, want 2", len(summary.Loans))
	}
}

func TestProjectDebtPayoff_AggregateBounds(t *testing.T) {
	tests := []struct {
		name      string
		original  float64
		remaining float64
	}{
		{"fresh loan", 10000, 10000},
		{"half paid", 10000, 5000},
		{"paid off", 10000, 0},
	}

	for _, tc := range tests {
		accounts := []models.Account{loanAccount(1, "Loan", tc.original, tc.remaining, 100, debtNow.AddDate(1, 0, 0))}
		summary := ProjectDebtPayoff(accounts, debtNow)
		if summary.AggregatePercentPaid < 0 || summary.AggregatePercentPaid > 100 {
			t.Errorf("%s: AggregatePercentPaid = %f, want within [0, 100]", tc.name, summary.AggregatePercentPaid)
		}
	}
}

func TestProjectDebtPayoff_EmptySet(t *testing.T) {
	summary := ProjectDebtPayoff(nil, debtNow)

	if summary.AggregatePercentPaid != 0 {
		t.Errorf("AggregatePercentPaid = %f, want 0 for empty set", summary.AggregatePercentPaid)
	}
	if summary.DebtFreeDate != nil {
		t.Error("DebtFreeDate should be nil when no loans exist")
	}
	if len(summary.Loans) != 0 {
		t.Errorf("got %d loans, want 0", len(summary.Loans))
	}
}

func TestProjectDebtPayoff_IgnoresAssetsAndLoanlessLiabilities(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, Type: models.AccountChecking, Balance: 5000},
		{ID: 2, Type: models.AccountCreditCard, Balance: -900}, // no loan details
		loanAccount(3, "Mortgage", 300000, 280000, 1600, debtNow.AddDate(25, 0, 0)),
	}

	summary := ProjectDebtPayoff(accounts, debtNow)

	if len(summary.Loans) != 1 {
		t.Fatalf("got %d loans, want 1", len(summary.Loans))
	}
	if summary.Loans[0].Name != "Mortgage" {
		t.Errorf("loan = %s, want Mortgage", summary.Loans[0].Name)
	}
}

func TestLoanDetails_Derived(t *testing.T) {
	loan := models.LoanDetails{
		OriginalAmount:   24000,
		RemainingBalance: 6000,
		MonthlyPayment:   250,
		TermMonths:       120,
		PayoffDate:       time.Date(2028, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	if got := loan.TotalPaid(); got != 18000 {
		t.Errorf("TotalPaid() = %f, want 18000", got)
	}
	if got := loan.PercentPaid(); got != 75 {
		t.Errorf("PercentPaid() = %f, want 75", got)
	}
	// 250 * 120 - 24000 = 6000
	if got := loan.TotalInterest(); got != 6000 {
		t.Errorf("TotalInterest() = %f, want 6000", got)
	}
	if got := loan.MonthsRemaining(debtNow); got != 24 {
		t.Errorf("MonthsRemaining() = %d, want 24", got)
	}
}

func TestLoanDetails_MonthsRemainingFloorsAtZero(t *testing.T) {
	loan := models.LoanDetails{PayoffDate: debtNow.AddDate(-1, 0, 0)}
	if got := loan.MonthsRemaining(debtNow); got != 0 {
		t.Errorf("MonthsRemaining() = %d, want 0 for past payoff date", got)
	}
}

func TestLoanDetails_PercentPaidGuards(t *testing.T) {
	zero := models.LoanDetails{OriginalAmount: 0, RemainingBalance: 0}
	if got := zero.PercentPaid(); got != 0 {
		t.Errorf("PercentPaid() = %f, want 0 when original amount is 0", got)
	}

	over := models.LoanDetails{OriginalAmount: 1000, RemainingBalance: -50}
	if got := over.PercentPaid(); got != 100 {
		t.Errorf("PercentPaid() = %f, want clamp to 100", got)
	}
}
