package repository

import (
	"path/filepath"
	"testing"
	"time"

	"furg/internal/database"
	"furg/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *database.DB) int64 {
	t.Helper()
	result, err := db.Exec(`
		INSERT INTO users (email, password_hash, name)
		VALUES (?, ?, ?)
	`, "test@example.com", "hashedpassword", "Test User")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	repo := NewAccountRepository(db)

	id, err := repo.Create(&models.Account{
		UserID:      userID,
		Name:        "Everyday Checking",
		Institution: "First National",
		Type:        models.AccountChecking,
		Balance:     2500.50,
	})
	if err != nil {
		t.Fatalf("Create() error = %v, want nil", err)
	}

	account, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID() error = %v, want nil", err)
	}
	if account == nil {
		t.Fatal("GetByID() returned nil for existing account")
	}
	if account.Name != "Everyday Checking" {
		t.Errorf("Name = %q, want %q", account.Name, "Everyday Checking")
	}
	if account.Type != models.AccountChecking {
		t.Errorf("Type = %q, want %q", account.Type, models.AccountChecking)
	}
	if account.Balance != 2500.50 {
		t.Errorf("Balance = %v, want 2500.50", account.Balance)
	}
	if account.PriorBalance != nil {
		t.Error("PriorBalance should be nil for a new account")
	}
}

func TestAccountRepository_GetByID_NonExistent_ReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)

	account, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("GetByID() error = %v, want nil", err)
	}
	if account != nil {
		t.Error("GetByID() should return nil for non-existent account")
	}
}

func TestAccountRepository_UpdateBalance_PreservesPrior(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	repo := NewAccountRepository(db)

	id, _ := repo.Create(&models.Account{
		UserID:  userID,
		Name:    "Savings",
		Type:    models.AccountSavings,
		Balance: 1000,
	})

	if err := repo.UpdateBalance(id, 1200); err != nil {
		t.Fatalf("UpdateBalance() error = %v, want nil", err)
	}

	account, _ := repo.GetByID(id)
	if account.Balance != 1200 {
		t.Errorf("Balance = %v, want 1200", account.Balance)
	}
	if account.PriorBalance == nil {
		t.Fatal("PriorBalance should be set after balance update")
	}
	if *account.PriorBalance != 1000 {
		t.Errorf("PriorBalance = %v, want 1000", *account.PriorBalance)
	}
	if change := account.BalanceChange(); change != 20 {
		t.Errorf("BalanceChange() = %v, want 20", change)
	}
}

func TestAccountRepository_LoanDetails_LoadedWithAccount(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	repo := NewAccountRepository(db)

	id, _ := repo.Create(&models.Account{
		UserID:  userID,
		Name:    "Car Loan",
		Type:    models.AccountAutoLoan,
		Balance: -15000,
	})

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	payoff := time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC)
	err := repo.SaveLoanDetails(&models.LoanDetails{
		AccountID:        id,
		OriginalAmount:   30000,
		InterestRate:     4.5,
		MonthlyPayment:   560,
		RemainingBalance: 15000,
		TermMonths:       60,
		StartDate:        start,
		PayoffDate:       payoff,
	})
	if err != nil {
		t.Fatalf("SaveLoanDetails() error = %v, want nil", err)
	}

	account, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID() error = %v, want nil", err)
	}
	if account.Loan == nil {
		t.Fatal("Loan details should be loaded for a loan account")
	}
	if account.Loan.OriginalAmount != 30000 {
		t.Errorf("OriginalAmount = %v, want 30000", account.Loan.OriginalAmount)
	}
	if pct := account.Loan.PercentPaid(); pct != 50 {
		t.Errorf("PercentPaid() = %v, want 50", pct)
	}
}

func TestAccountRepository_CreditCardDetails_LoadedWithAccount(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	repo := NewAccountRepository(db)

	id, _ := repo.Create(&models.Account{
		UserID:  userID,
		Name:    "Rewards Card",
		Type:    models.AccountCreditCard,
		Balance: -450,
	})

	err := repo.SaveCreditCardDetails(&models.CreditCardDetails{
		AccountID:      id,
		CreditLimit:    1000,
		CurrentBalance: 450,
		MinimumPayment: 25,
		APR:            21.9,
	})
	if err != nil {
		t.Fatalf("SaveCreditCardDetails() error = %v, want nil", err)
	}

	account, _ := repo.GetByID(id)
	if account.CreditCard == nil {
		t.Fatal("CreditCard details should be loaded for a credit card account")
	}
	if util := account.CreditCard.Utilization(); util != 45 {
		t.Errorf("Utilization() = %v, want 45", util)
	}
	if account.CreditCard.DueDate != nil {
		t.Error("DueDate should be nil when not set")
	}
}

func TestAccountRepository_PropertyDetails_WithValuations(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	repo := NewAccountRepository(db)

	id, _ := repo.Create(&models.Account{
		UserID:  userID,
		Name:    "Home",
		Type:    models.AccountProperty,
		Balance: 420000,
	})

	mortgage := 270000.0
	err := repo.SavePropertyDetails(&models.PropertyDetails{
		AccountID:       id,
		Address:         "12 Oak Lane",
		PurchasePrice:   350000,
		PurchaseDate:    time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		CurrentValue:    420000,
		PropertyType:    "house",
		MortgageBalance: &mortgage,
	})
	if err != nil {
		t.Fatalf("SavePropertyDetails() error = %v, want nil", err)
	}

	if err := repo.AddValuation(id, 400000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("AddValuation() error = %v, want nil", err)
	}
	if err := repo.AddValuation(id, 420000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("AddValuation() error = %v, want nil", err)
	}

	account, _ := repo.GetByID(id)
	if account.Property == nil {
		t.Fatal("Property details should be loaded for a property account")
	}
	if equity := account.Property.Equity(); equity != 150000 {
		t.Errorf("Equity() = %v, want 150000", equity)
	}
	if len(account.Property.Valuations) != 2 {
		t.Fatalf("Valuations count = %d, want 2", len(account.Property.Valuations))
	}
	if account.Property.Valuations[0].Value != 400000 {
		t.Errorf("first valuation = %v, want 400000 (oldest first)", account.Property.Valuations[0].Value)
	}
}

func TestAccountRepository_Delete_CascadesDetails(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	repo := NewAccountRepository(db)

	id, _ := repo.Create(&models.Account{
		UserID:  userID,
		Name:    "Old Card",
		Type:    models.AccountCreditCard,
		Balance: 0,
	})
	repo.SaveCreditCardDetails(&models.CreditCardDetails{AccountID: id, CreditLimit: 500})

	if err := repo.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM credit_card_details WHERE account_id = ?`, id).Scan(&count); err != nil {
		t.Fatalf("counting detail rows: %v", err)
	}
	if count != 0 {
		t.Errorf("detail rows remaining = %d, want 0", count)
	}
}

func TestAccountRepository_GetByUserID_SortedByName(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	repo := NewAccountRepository(db)

	repo.Create(&models.Account{UserID: userID, Name: "Zeta Savings", Type: models.AccountSavings})
	repo.Create(&models.Account{UserID: userID, Name: "Alpha Checking", Type: models.AccountChecking})

	accounts, err := repo.GetByUserID(userID)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v, want nil", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("len(accounts) = %d, want 2", len(accounts))
	}
	if accounts[0].Name != "Alpha Checking" {
		t.Errorf("first account = %q, want %q", accounts[0].Name, "Alpha Checking")
	}
}
