package repository

import (
	"database/sql"
	"fmt"
	"time"

	"furg/internal/database"
	"furg/internal/models"
)

// BudgetRepository handles budget storage. Each user has at most one budget.
type BudgetRepository struct {
	db *database.DB
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db *database.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Get retrieves a user's budget. Returns nil if none has been set.
func (r *BudgetRepository) Get(userID int64) (*models.Budget, error) {
	budget := &models.Budget{}
	err := r.db.QueryRow(`
		SELECT user_id, monthly_income, monthly_expenses, savings_goal_percent, current_savings, updated_at
		FROM budgets
		WHERE user_id = ?
	`, userID).Scan(
		&budget.UserID,
		&budget.MonthlyIncome,
		&budget.MonthlyExpenses,
		&budget.SavingsGoalPercent,
		&budget.CurrentSavings,
		&budget.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting budget: %w", err)
	}
	return budget, nil
}

// Upsert creates or replaces a user's budget.
func (r *BudgetRepository) Upsert(budget *models.Budget) error {
	_, err := r.db.Exec(`
		INSERT INTO budgets (user_id, monthly_income, monthly_expenses, savings_goal_percent, current_savings, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			monthly_income = excluded.monthly_income,
			monthly_expenses = excluded.monthly_expenses,
			savings_goal_percent = excluded.savings_goal_percent,
			current_savings = excluded.current_savings,
			updated_at = excluded.updated_at
	`, budget.UserID, budget.MonthlyIncome, budget.MonthlyExpenses,
		budget.SavingsGoalPercent, budget.CurrentSavings, time.Now())
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}
	return nil
}

// Delete removes a user's budget.
func (r *BudgetRepository) Delete(userID int64) error {
	_, err := r.db.Exec(`DELETE FROM budgets WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	return nil
}
