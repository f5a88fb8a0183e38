package engine

import (
	"sort"
	"time"

	"furg/internal/models"
)

// UnboundedMonths is the sentinel TotalMonths for a schedule that never
// completes: an empty wishlist or a budget with no positive monthly savings.
const UnboundedMonths = -1

// PurchasePlan is one scheduled wishlist purchase.
type PurchasePlan struct {
	Item         models.WishlistItem `json:"item"`
	PurchaseDate time.Time           `json:"purchase_date"`
	MonthOffset  int                 `json:"month_offset"`
}

// PurchaseSchedule is the full ordered purchase timeline.
type PurchaseSchedule struct {
	Plans       []PurchasePlan `json:"plans"`
	TotalMonths int            `json:"total_months"`
}

// SchedulePurchases orders wishlist items and assigns estimated purchase
// dates. Items are taken by priority descending, ties broken by ascending
// price. A running balance starts at the budget's current savings and grows by
// the monthly savings each simulated month; each item is scheduled at the
// first month the balance covers its price, and the leftover carries forward
// to the next item.
//
// A budget with non-positive monthly savings is a recoverable condition, not
// an error: the schedule comes back empty with TotalMonths set to
// UnboundedMonths and the caller presents a "no budget configured" state.
func SchedulePurchases(budget models.Budget, items []models.WishlistItem, now time.Time) PurchaseSchedule {
	schedule := PurchaseSchedule{
		Plans:       make([]PurchasePlan, 0, len(items)),
		TotalMonths: UnboundedMonths,
	}

	monthly := MonthlySavings(budget)
	if monthly <= 0 || len(items) == 0 {
		return schedule
	}

	sorted := make([]models.WishlistItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].Price < sorted[j].Price
	})

	available := budget.CurrentSavings
	month := 0
	for _, item := range sorted {
		for available < item.Price {
			month++
			available += monthly
		}
		schedule.Plans = append(schedule.Plans, PurchasePlan{
			Item:         item,
			PurchaseDate: now.AddDate(0, month, 0),
			MonthOffset:  month,
		})
		available -= item.Price
	}

	schedule.TotalMonths = month
	return schedule
}
