package engine

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"furg/internal/models"
)

// Insight kinds, in rule evaluation order.
const (
	InsightEmergencyFund      = "emergency_fund"
	InsightHighUtilization    = "high_utilization"
	InsightInvestmentStrength = "investment_strength"
	InsightPropertyEquity     = "property_equity"
	InsightNetWorthMilestone  = "net_worth_milestone"
)

// InsightConfig holds the thresholds the insight rules fire on.
type InsightConfig struct {
	// BaseLivingExpenses estimates non-debt monthly living costs when no
	// budget is configured.
	BaseLivingExpenses float64
	// EmergencyMinMonths and EmergencyMaxMonths bound the recommended
	// emergency fund as multiples of monthly expenses.
	EmergencyMinMonths float64
	EmergencyMaxMonths float64
	// UtilizationWarning is the utilization percentage above which a credit
	// card triggers a warning.
	UtilizationWarning float64
	// InvestmentThreshold is the combined investment+retirement balance that
	// earns a positive insight.
	InvestmentThreshold float64
	// MilestoneMinimum is the net worth above which milestone insights fire;
	// MilestoneStep is the rounding step for the reported milestone.
	MilestoneMinimum float64
	MilestoneStep    float64
}

// DefaultInsightConfig returns the stock thresholds.
func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		BaseLivingExpenses:  2500,
		EmergencyMinMonths:  3,
		EmergencyMaxMonths:  6,
		UtilizationWarning:  30,
		InvestmentThreshold: 50000,
		MilestoneMinimum:    100000,
		MilestoneStep:       50000,
	}
}

// insightNamespace makes insight IDs deterministic: the same state always
// produces the same IDs, keeping projections idempotent.
var insightNamespace = uuid.MustParse("6e7a2f5c-1b9d-4c38-8f02-f44f2b1a9d63")

// GenerateInsights evaluates every insight rule over the aggregated account
// state. Rules are independent: all that can fire do fire, in a fixed order,
// and each contributes at most one insight.
func GenerateInsights(accounts []models.Account, budget *models.Budget, cfg InsightConfig) []models.Insight {
	insights := make([]models.Insight, 0)

	// 1. Emergency fund: liquid assets below the minimum multiple of
	// estimated monthly expenses.
	liquid := 0.0
	investments := 0.0
	loanPayments := 0.0
	hasProperty := false
	var property *models.PropertyDetails

	for i := range accounts {
		a := &accounts[i]
		switch a.Type {
		case models.AccountChecking, models.AccountSavings:
			liquid += a.Balance
		case models.AccountInvestment, models.AccountRetirement:
			investments += a.Balance
		case models.AccountProperty:
			hasProperty = true
			if property == nil && a.Property != nil {
				property = a.Property
			}
		}
		if !a.Type.IsAsset() && a.Loan != nil {
			loanPayments += a.Loan.MonthlyPayment
		}
	}

	expenses := cfg.BaseLivingExpenses + loanPayments
	if budget != nil && budget.MonthlyExpenses > 0 {
		expenses = budget.MonthlyExpenses
	}
	minTarget := expenses * cfg.EmergencyMinMonths
	maxTarget := expenses * cfg.EmergencyMaxMonths
	if liquid < minTarget {
		insights = append(insights, newInsight(
			InsightEmergencyFund,
			"Build your emergency fund",
			fmt.Sprintf("Your liquid savings of $%s are below the recommended emergency fund. Aim for $%s to $%s (%.0f to %.0f months of expenses).",
				humanize.Commaf(liquid), humanize.Commaf(minTarget), humanize.Commaf(maxTarget),
				cfg.EmergencyMinMonths, cfg.EmergencyMaxMonths),
		))
	}

	// 2. Credit utilization above the warning threshold on any card.
	for i := range accounts {
		card := accounts[i].CreditCard
		if card == nil {
			continue
		}
		if u := card.Utilization(); u > cfg.UtilizationWarning {
			insights = append(insights, newInsight(
				InsightHighUtilization,
				"High credit utilization",
				fmt.Sprintf("%s is at %.0f%% utilization. Keeping utilization under %.0f%% helps your credit score.",
					accounts[i].Name, u, cfg.UtilizationWarning),
			))
			break
		}
	}

	// 3. Investment strength.
	if investments > cfg.InvestmentThreshold {
		insights = append(insights, newInsight(
			InsightInvestmentStrength,
			"Strong investment position",
			fmt.Sprintf("Your investment and retirement accounts total $%s. Keep up the consistent contributions.",
				humanize.Commaf(investments)),
		))
	}

	// 4. Property equity.
	if hasProperty {
		msg := "You hold real estate. Property equity is a significant part of your net worth."
		if property != nil {
			msg = fmt.Sprintf("Your property has $%s in equity and has appreciated %.1f%% since purchase.",
				humanize.Commaf(property.Equity()), property.AppreciationPercent())
		}
		insights = append(insights, newInsight(InsightPropertyEquity, "Property equity", msg))
	}

	// 5. Net worth milestone, rounded down to the nearest step.
	netWorth := NetWorth(accounts)
	if netWorth > cfg.MilestoneMinimum && cfg.MilestoneStep > 0 {
		milestone := math.Floor(netWorth/cfg.MilestoneStep) * cfg.MilestoneStep
		insights = append(insights, newInsight(
			InsightNetWorthMilestone,
			"Net worth milestone",
			fmt.Sprintf("Your net worth has passed $%s.", humanize.Commaf(milestone)),
		))
	}

	return insights
}

// newInsight builds an insight with a deterministic ID derived from its
// content.
func newInsight(kind, title, message string) models.Insight {
	return models.Insight{
		ID:      uuid.NewSHA1(insightNamespace, []byte(kind+"|"+message)).String(),
		Kind:    kind,
		Title:   title,
		Message: message,
	}
}
