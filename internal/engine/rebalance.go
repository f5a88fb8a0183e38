package engine

import (
	"math"
	"sort"

	"furg/internal/models"
)

// AllocationTargets holds target percentages per asset category for one risk
// profile. The four categories are expected to sum to 100.
type AllocationTargets struct {
	Stocks      float64 `json:"stocks"`
	Bonds       float64 `json:"bonds"`
	Alternative float64 `json:"alternative"`
	Cash        float64 `json:"cash"`
}

// Percent returns the target percentage for a category.
func (t AllocationTargets) Percent(c models.AssetCategory) float64 {
	switch c {
	case models.CategoryStocks:
		return t.Stocks
	case models.CategoryBonds:
		return t.Bonds
	case models.CategoryAlternative:
		return t.Alternative
	case models.CategoryCash:
		return t.Cash
	}
	return 0
}

// RebalanceMove is the computed adjustment for one asset category.
type RebalanceMove struct {
	Category   models.AssetCategory `json:"category"`
	CurrentPct float64              `json:"current_pct"`
	TargetPct  float64              `json:"target_pct"`
	DeltaPct   float64              `json:"delta_pct"` // target - current
	Amount     float64              `json:"amount"`    // absolute dollars to move
	Action     string               `json:"action"`    // "buy", "sell", "hold"
}

// TradeSuggestion is a concrete sell/buy derived from the category deltas.
type TradeSuggestion struct {
	Action   string               `json:"action"`
	Category models.AssetCategory `json:"category"`
	Amount   float64              `json:"amount"`
}

// RebalancePlan is the full rebalancing recommendation for one risk profile.
type RebalancePlan struct {
	Profile        models.RiskProfile `json:"profile"`
	TotalPortfolio float64            `json:"total_portfolio"`
	Moves          []RebalanceMove    `json:"moves"`
	Trades         []TradeSuggestion  `json:"trades"`
	OffBalance     bool               `json:"off_balance"`
}

var rebalanceCategories = []models.AssetCategory{
	models.CategoryStocks,
	models.CategoryBonds,
	models.CategoryAlternative,
	models.CategoryCash,
}

// Rebalance computes the delta between the current allocation and the
// profile's targets, the dollar amount to move per category, and derived trade
// suggestions (sell over-weighted categories, buy under-weighted ones, largest
// first). The plan is flagged off-balance when the stock or bond delta exceeds
// the threshold in percentage points.
func Rebalance(classes []models.AssetClass, profile models.RiskProfile, targets AllocationTargets, threshold float64) RebalancePlan {
	plan := RebalancePlan{
		Profile: profile,
		Moves:   make([]RebalanceMove, 0, len(rebalanceCategories)),
		Trades:  make([]TradeSuggestion, 0),
	}

	currentByCategory := make(map[models.AssetCategory]float64)
	for _, c := range classes {
		currentByCategory[c.Category] += c.Amount
		plan.TotalPortfolio += c.Amount
	}

	for _, cat := range rebalanceCategories {
		currentPct := 0.0
		if plan.TotalPortfolio > 0 {
			currentPct = currentByCategory[cat] / plan.TotalPortfolio * 100
		}
		targetPct := targets.Percent(cat)
		delta := targetPct - currentPct
		amount := plan.TotalPortfolio * math.Abs(delta) / 100

		action := "hold"
		switch {
		case delta > 0 && amount > 0:
			action = "buy"
		case delta < 0 && amount > 0:
			action = "sell"
		}

		plan.Moves = append(plan.Moves, RebalanceMove{
			Category:   cat,
			CurrentPct: currentPct,
			TargetPct:  targetPct,
			DeltaPct:   delta,
			Amount:     amount,
			Action:     action,
		})

		if cat == models.CategoryStocks || cat == models.CategoryBonds {
			if math.Abs(delta) > threshold {
				plan.OffBalance = true
			}
		}
	}

	// Sells free the money the buys spend, so list sells first, each group
	// largest amount first.
	for _, m := range plan.Moves {
		if m.Action == "sell" {
			plan.Trades = append(plan.Trades, TradeSuggestion{Action: "sell", Category: m.Category, Amount: m.Amount})
		}
	}
	for _, m := range plan.Moves {
		if m.Action == "buy" {
			plan.Trades = append(plan.Trades, TradeSuggestion{Action: "buy", Category: m.Category, Amount: m.Amount})
		}
	}
	sort.SliceStable(plan.Trades, func(i, j int) bool {
		if plan.Trades[i].Action != plan.Trades[j].Action {
			return plan.Trades[i].Action == "sell"
		}
		return plan.Trades[i].Amount > plan.Trades[j].Amount
	})

	return plan
}
