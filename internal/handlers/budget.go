package handlers

import (
	"net/http"

	apperrors "furg/internal/errors"
	"furg/internal/middleware"
	"furg/internal/models"
	"furg/internal/repository"
)

// BudgetHandler handles the per-user budget.
type BudgetHandler struct {
	budgetRepo *repository.BudgetRepository
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetRepo *repository.BudgetRepository) *BudgetHandler {
	return &BudgetHandler{budgetRepo: budgetRepo}
}

// Get returns the user's budget.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	budget, err := h.budgetRepo.Get(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if budget == nil {
		respondError(w, apperrors.NotFound("budget"))
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

type budgetRequest struct {
	MonthlyIncome      float64 `json:"monthly_income"`
	MonthlyExpenses    float64 `json:"monthly_expenses"`
	SavingsGoalPercent float64 `json:"savings_goal_percent"`
	CurrentSavings     float64 `json:"current_savings"`
}

// Put creates or replaces the user's budget.
func (h *BudgetHandler) Put(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req budgetRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.MonthlyIncome < 0 || req.MonthlyExpenses < 0 || req.CurrentSavings < 0 {
		respondError(w, apperrors.Validation("amounts cannot be negative"))
		return
	}
	if req.SavingsGoalPercent < 0 || req.SavingsGoalPercent > 100 {
		respondError(w, apperrors.Validation("savings_goal_percent must be between 0 and 100"))
		return
	}

	budget := &models.Budget{
		UserID:             user.ID,
		MonthlyIncome:      req.MonthlyIncome,
		MonthlyExpenses:    req.MonthlyExpenses,
		SavingsGoalPercent: req.SavingsGoalPercent,
		CurrentSavings:     req.CurrentSavings,
	}
	if err := h.budgetRepo.Upsert(budget); err != nil {
		respondError(w, err)
		return
	}

	saved, err := h.budgetRepo.Get(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}
