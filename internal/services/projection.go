// Package services contains the business logic for the Furg backend.
package services

import (
	"fmt"
	"time"

	"furg/internal/config"
	"furg/internal/engine"
	apperrors "furg/internal/errors"
	"furg/internal/models"
	"furg/internal/repository"
)

// ProjectionService materializes a consistent snapshot of a user's financial
// state from the repositories and runs the engine over it. The engine itself
// never touches storage.
type ProjectionService struct {
	accountRepo  *repository.AccountRepository
	budgetRepo   *repository.BudgetRepository
	wishlistRepo *repository.WishlistRepository
	snapshotRepo *repository.SnapshotRepository
	cfg          config.EngineConfig
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(
	accountRepo *repository.AccountRepository,
	budgetRepo *repository.BudgetRepository,
	wishlistRepo *repository.WishlistRepository,
	snapshotRepo *repository.SnapshotRepository,
	cfg config.EngineConfig,
) *ProjectionService {
	return &ProjectionService{
		accountRepo:  accountRepo,
		budgetRepo:   budgetRepo,
		wishlistRepo: wishlistRepo,
		snapshotRepo: snapshotRepo,
		cfg:          cfg,
	}
}

// Overview is the headline budget and net-worth summary.
type Overview struct {
	NetWorth         float64 `json:"net_worth"`
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	DisposableIncome float64 `json:"disposable_income"`
	MonthlySavings   float64 `json:"monthly_savings"`
	AccountCount     int     `json:"account_count"`
}

// GetOverview computes the user's headline numbers.
func (s *ProjectionService) GetOverview(userID int64) (*Overview, error) {
	accounts, err := s.loadAccounts(userID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		NetWorth:         engine.NetWorth(accounts),
		TotalAssets:      engine.TotalAssets(accounts),
		TotalLiabilities: engine.TotalLiabilities(accounts),
		AccountCount:     len(accounts),
	}

	budget, err := s.budgetRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	if budget != nil {
		overview.DisposableIncome = engine.DisposableIncome(*budget)
		overview.MonthlySavings = engine.MonthlySavings(*budget)
	}
	return overview, nil
}

// GetNetWorthSeries builds the monthly net-worth history from stored balance
// snapshots.
func (s *ProjectionService) GetNetWorthSeries(userID int64) ([]models.NetWorthPoint, error) {
	accounts, err := s.loadAccounts(userID)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.snapshotRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return engine.BuildNetWorthSeries(accounts, snapshots), nil
}

// GetPurchaseTimeline schedules the user's active wishlist against their
// budget. Without a budget the schedule comes back empty and unbounded.
func (s *ProjectionService) GetPurchaseTimeline(userID int64, now time.Time) (engine.PurchaseSchedule, error) {
	budget, err := s.budgetRepo.Get(userID)
	if err != nil {
		return engine.PurchaseSchedule{}, err
	}
	items, err := s.wishlistRepo.GetActiveByUserID(userID)
	if err != nil {
		return engine.PurchaseSchedule{}, err
	}

	var b models.Budget
	if budget != nil {
		b = *budget
	}
	return engine.SchedulePurchases(b, derefItems(items), now), nil
}

// GetDebtProjection summarizes payoff progress across the user's loans.
func (s *ProjectionService) GetDebtProjection(userID int64, now time.Time) (engine.DebtSummary, error) {
	accounts, err := s.loadAccounts(userID)
	if err != nil {
		return engine.DebtSummary{}, err
	}
	return engine.ProjectDebtPayoff(accounts, now), nil
}

// GetRebalancePlan computes the rebalancing recommendation for a risk profile.
func (s *ProjectionService) GetRebalancePlan(userID int64, profile models.RiskProfile) (engine.RebalancePlan, error) {
	if !profile.Valid() {
		return engine.RebalancePlan{}, apperrors.Validation(fmt.Sprintf("unknown risk profile %q", profile))
	}

	targetCfg, ok := s.cfg.Targets[string(profile)]
	if !ok {
		return engine.RebalancePlan{}, apperrors.Validation(fmt.Sprintf("no targets configured for profile %q", profile))
	}
	targets := engine.AllocationTargets{
		Stocks:      targetCfg.Stocks,
		Bonds:       targetCfg.Bonds,
		Alternative: targetCfg.Alternative,
		Cash:        targetCfg.Cash,
	}

	accounts, err := s.loadAccounts(userID)
	if err != nil {
		return engine.RebalancePlan{}, err
	}

	classes := AssetClasses(accounts)
	return engine.Rebalance(classes, profile, targets, s.cfg.RebalanceThreshold), nil
}

// AllocationBreakdown is the current portfolio composition plus a
// diversification score.
type AllocationBreakdown struct {
	Total                float64              `json:"total"`
	Classes              []models.AssetClass  `json:"classes"`
	DiversificationScore float64              `json:"diversification_score"`
	Factors              []engine.ScoreFactor `json:"factors"`
}

// GetAllocation returns the current allocation breakdown across asset
// categories with a diversification score.
func (s *ProjectionService) GetAllocation(userID int64) (*AllocationBreakdown, error) {
	accounts, err := s.loadAccounts(userID)
	if err != nil {
		return nil, err
	}

	classes := AssetClasses(accounts)
	total := 0.0
	for _, c := range classes {
		total += c.Amount
	}

	factors := diversificationFactors(classes)
	return &AllocationBreakdown{
		Total:                total,
		Classes:              classes,
		DiversificationScore: engine.DiversificationScore(factors, s.cfg.DiversificationWeights),
		Factors:              factors,
	}, nil
}

// GetInsights evaluates the insight rules over the user's current state.
func (s *ProjectionService) GetInsights(userID int64) ([]models.Insight, error) {
	accounts, err := s.loadAccounts(userID)
	if err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	return engine.GenerateInsights(accounts, budget, s.insightConfig()), nil
}

func (s *ProjectionService) insightConfig() engine.InsightConfig {
	cfg := engine.DefaultInsightConfig()
	if s.cfg.BaseLivingExpenses > 0 {
		cfg.BaseLivingExpenses = s.cfg.BaseLivingExpenses
	}
	if s.cfg.EmergencyMinMonths > 0 {
		cfg.EmergencyMinMonths = s.cfg.EmergencyMinMonths
	}
	if s.cfg.EmergencyMaxMonths > 0 {
		cfg.EmergencyMaxMonths = s.cfg.EmergencyMaxMonths
	}
	if s.cfg.UtilizationWarning > 0 {
		cfg.UtilizationWarning = s.cfg.UtilizationWarning
	}
	if s.cfg.InvestmentThreshold > 0 {
		cfg.InvestmentThreshold = s.cfg.InvestmentThreshold
	}
	if s.cfg.MilestoneMinimum > 0 {
		cfg.MilestoneMinimum = s.cfg.MilestoneMinimum
	}
	if s.cfg.MilestoneStep > 0 {
		cfg.MilestoneStep = s.cfg.MilestoneStep
	}
	return cfg
}

func (s *ProjectionService) loadAccounts(userID int64) ([]models.Account, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return derefAccounts(accounts), nil
}

// AssetClasses groups asset accounts into allocation categories. Liability
// accounts never contribute. Checking and savings count as cash, investment
// and retirement as stocks, crypto and property as alternative. No account
// type maps to bonds; bond exposure shows up only through its zero weight in
// the current allocation.
func AssetClasses(accounts []models.Account) []models.AssetClass {
	amounts := map[models.AssetCategory]float64{}
	for _, a := range accounts {
		if !a.Type.IsAsset() {
			continue
		}
		amounts[categoryForType(a.Type)] += a.Balance
	}

	total := 0.0
	for _, amount := range amounts {
		total += amount
	}

	classes := make([]models.AssetClass, 0, len(amounts))
	for _, category := range []models.AssetCategory{
		models.CategoryStocks,
		models.CategoryBonds,
		models.CategoryAlternative,
		models.CategoryCash,
	} {
		amount, ok := amounts[category]
		if !ok {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = amount / total * 100
		}
		classes = append(classes, models.AssetClass{
			Name:       string(category),
			Category:   category,
			Amount:     amount,
			Percentage: pct,
		})
	}
	return classes
}

func categoryForType(t models.AccountType) models.AssetCategory {
	switch t {
	case models.AccountInvestment, models.AccountRetirement:
		return models.CategoryStocks
	case models.AccountCrypto, models.AccountProperty:
		return models.CategoryAlternative
	default:
		return models.CategoryCash
	}
}

// diversificationFactors derives score factors from the current allocation:
// breadth rewards holding more of the four categories, balance rewards not
// concentrating in a single one.
func diversificationFactors(classes []models.AssetClass) []engine.ScoreFactor {
	held := 0
	largest := 0.0
	for _, c := range classes {
		if c.Amount > 0 {
			held++
		}
		if c.Percentage > largest {
			largest = c.Percentage
		}
	}

	breadth := float64(held) / 4 * 100
	balance := 100 - largest
	if held == 0 {
		balance = 0
	}

	return []engine.ScoreFactor{
		{Name: "breadth", Score: breadth},
		{Name: "balance", Score: balance},
	}
}

func derefAccounts(accounts []*models.Account) []models.Account {
	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, *a)
	}
	return out
}

func derefItems(items []*models.WishlistItem) []models.WishlistItem {
	out := make([]models.WishlistItem, 0, len(items))
	for _, i := range items {
		out = append(out, *i)
	}
	return out
}
