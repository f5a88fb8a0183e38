package handlers

import (
	"net/http"
	"time"

	"furg/internal/middleware"
	"furg/internal/models"
	"furg/internal/services"
)

// ProjectionHandler exposes the read-only projection endpoints.
type ProjectionHandler struct {
	projections *services.ProjectionService
}

// NewProjectionHandler creates a new ProjectionHandler.
func NewProjectionHandler(projections *services.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{projections: projections}
}

// Overview returns the headline budget and net-worth numbers.
func (h *ProjectionHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	overview, err := h.projections.GetOverview(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// NetWorth returns the monthly net-worth series.
func (h *ProjectionHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	series, err := h.projections.GetNetWorthSeries(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

// Purchases returns the wishlist purchase timeline.
func (h *ProjectionHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	schedule, err := h.projections.GetPurchaseTimeline(user.ID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// Debt returns the debt payoff projection.
func (h *ProjectionHandler) Debt(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	summary, err := h.projections.GetDebtProjection(user.ID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Rebalance returns the rebalancing plan for the ?profile= risk profile,
// defaulting to moderate.
func (h *ProjectionHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	profile := models.RiskProfile(r.URL.Query().Get("profile"))
	if profile == "" {
		profile = models.ProfileModerate
	}

	plan, err := h.projections.GetRebalancePlan(user.ID, profile)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// Allocation returns the current allocation breakdown and diversification
// score.
func (h *ProjectionHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	breakdown, err := h.projections.GetAllocation(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

// Insights returns the rule-based insights for the user's current state.
func (h *ProjectionHandler) Insights(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	insights, err := h.projections.GetInsights(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, insights)
}
