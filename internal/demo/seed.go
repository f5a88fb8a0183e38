// Package demo provides demo data seeding for demonstration deployments.
package demo

import (
	"log"
	"time"

	"furg/internal/auth"
	"furg/internal/database"
	"furg/internal/models"
	"furg/internal/repository"
)

// Seeder seeds the database with a demo user and representative data. All
// seeded values are fixed so repeated deployments look identical.
type Seeder struct {
	db           *database.DB
	userRepo     *repository.UserRepository
	accountRepo  *repository.AccountRepository
	budgetRepo   *repository.BudgetRepository
	wishlistRepo *repository.WishlistRepository
	snapshotRepo *repository.SnapshotRepository
	dealRepo     *repository.DealRepository
}

// NewSeeder creates a new demo data seeder.
func NewSeeder(db *database.DB) *Seeder {
	return &Seeder{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		accountRepo:  repository.NewAccountRepository(db),
		budgetRepo:   repository.NewBudgetRepository(db),
		wishlistRepo: repository.NewWishlistRepository(db),
		snapshotRepo: repository.NewSnapshotRepository(db),
		dealRepo:     repository.NewDealRepository(db),
	}
}

// SeedIfEmpty seeds demo data if the database has no users yet.
func (s *Seeder) SeedIfEmpty() error {
	count, err := s.userRepo.CountAll()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Database already has users, skipping demo seed")
		return nil
	}

	log.Println("Seeding demo data...")
	return s.Seed()
}

// Seed creates the demo user with sample accounts, budget, wishlist, deals,
// and a year of balance snapshots.
func (s *Seeder) Seed() error {
	passwordHash, err := auth.HashPassword("demo1234")
	if err != nil {
		return err
	}

	userID, err := s.userRepo.Create(&models.User{
		Email:        "demo@example.com",
		PasswordHash: passwordHash,
		Name:         "Demo User",
	})
	if err != nil {
		return err
	}
	log.Printf("Created demo user (ID: %d)", userID)

	accounts := []models.Account{
		{UserID: userID, Name: "Everyday Checking", Institution: "First National", Type: models.AccountChecking, Balance: 3200},
		{UserID: userID, Name: "Emergency Savings", Institution: "First National", Type: models.AccountSavings, Balance: 8500},
		{UserID: userID, Name: "Brokerage", Institution: "Vanguard", Type: models.AccountInvestment, Balance: 42000},
		{UserID: userID, Name: "401(k)", Institution: "Fidelity", Type: models.AccountRetirement, Balance: 38000},
		{UserID: userID, Name: "Crypto Wallet", Institution: "Coinbase", Type: models.AccountCrypto, Balance: 2400},
		{UserID: userID, Name: "Rewards Card", Institution: "Chase", Type: models.AccountCreditCard, Balance: -1350},
		{UserID: userID, Name: "Car Loan", Institution: "Ally", Type: models.AccountAutoLoan, Balance: -14500},
		{UserID: userID, Name: "Home", Institution: "", Type: models.AccountProperty, Balance: 385000},
	}

	accountIDs := make(map[string]int64, len(accounts))
	for i := range accounts {
		id, err := s.accountRepo.Create(&accounts[i])
		if err != nil {
			return err
		}
		accountIDs[accounts[i].Name] = id
	}
	log.Printf("Created %d accounts", len(accounts))

	if err := s.accountRepo.SaveCreditCardDetails(&models.CreditCardDetails{
		AccountID:            accountIDs["Rewards Card"],
		CreditLimit:          6000,
		CurrentBalance:       1350,
		MinimumPayment:       40,
		APR:                  22.9,
		LastStatementBalance: 1410,
	}); err != nil {
		return err
	}

	if err := s.accountRepo.SaveLoanDetails(&models.LoanDetails{
		AccountID:        accountIDs["Car Loan"],
		OriginalAmount:   29000,
		InterestRate:     5.2,
		MonthlyPayment:   550,
		RemainingBalance: 14500,
		TermMonths:       60,
		StartDate:        time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		PayoffDate:       time.Date(2028, 9, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		return err
	}

	mortgage := 262000.0
	if err := s.accountRepo.SavePropertyDetails(&models.PropertyDetails{
		AccountID:       accountIDs["Home"],
		Address:         "12 Oak Lane",
		PurchasePrice:   340000,
		PurchaseDate:    time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		CurrentValue:    385000,
		PropertyType:    "house",
		MortgageBalance: &mortgage,
	}); err != nil {
		return err
	}

	if err := s.budgetRepo.Upsert(&models.Budget{
		UserID:             userID,
		MonthlyIncome:      6800,
		MonthlyExpenses:    5200,
		SavingsGoalPercent: 60,
		CurrentSavings:     1400,
	}); err != nil {
		return err
	}

	wishlist := []models.WishlistItem{
		{UserID: userID, Name: "Laptop", Price: 1400, Priority: models.PriorityHigh, Active: true},
		{UserID: userID, Name: "Espresso Machine", Price: 650, Priority: models.PriorityMedium, Active: true},
		{UserID: userID, Name: "Summer Vacation", Price: 3200, Priority: models.PriorityLow, Active: true},
	}
	for i := range wishlist {
		if _, err := s.wishlistRepo.Create(&wishlist[i]); err != nil {
			return err
		}
	}

	dealExpiry := time.Now().AddDate(0, 1, 0)
	deals := []models.Deal{
		{Title: "Laptop", Merchant: "TechMart", Price: 1150, URL: "https://example.com/laptop", ExpiresAt: &dealExpiry},
		{Title: "Espresso machine", Merchant: "KitchenWorld", Price: 520, URL: "https://example.com/espresso", ExpiresAt: &dealExpiry},
	}
	for i := range deals {
		if _, err := s.dealRepo.Create(&deals[i]); err != nil {
			return err
		}
	}

	if err := s.seedSnapshots(accountIDs); err != nil {
		return err
	}

	log.Println("Demo seed complete (login: demo@example.com / demo1234)")
	return nil
}

// seedSnapshots backfills twelve months of balance history with fixed monthly
// steps per account, ending at today's balances.
func (s *Seeder) seedSnapshots(accountIDs map[string]int64) error {
	// Monthly change working backwards from the current balance.
	steps := map[string]struct {
		current float64
		step    float64
	}{
		"Everyday Checking": {3200, 50},
		"Emergency Savings": {8500, 300},
		"Brokerage":         {42000, 900},
		"401(k)":            {38000, 700},
		"Crypto Wallet":     {2400, 80},
		"Rewards Card":      {-1350, -60},
		"Car Loan":          {-14500, 550},
		"Home":              {385000, 1200},
	}

	now := time.Now().UTC()
	for name, cfg := range steps {
		id, ok := accountIDs[name]
		if !ok {
			continue
		}
		for monthsAgo := 11; monthsAgo >= 0; monthsAgo-- {
			balance := cfg.current - cfg.step*float64(monthsAgo)
			recordedAt := now.AddDate(0, -monthsAgo, 0)
			if _, err := s.snapshotRepo.Record(id, balance, recordedAt); err != nil {
				return err
			}
		}
	}
	return nil
}
