package engine

import (
	"math"
	"sort"
	"time"

	"furg/internal/models"
)

// BuildNetWorthSeries assembles the monthly net-worth time series from stored
// balance snapshots. Each point carries the latest known balance per account
// at the end of that month; balances carry forward across months without a
// snapshot. Snapshots for unknown accounts are ignored.
//
// The series is derived entirely from recorded history; there is no
// synthetic or randomized backfill.
func BuildNetWorthSeries(accounts []models.Account, snapshots []models.BalanceSnapshot) []models.NetWorthPoint {
	if len(snapshots) == 0 {
		return []models.NetWorthPoint{}
	}

	isAsset := make(map[int64]bool, len(accounts))
	for _, a := range accounts {
		isAsset[a.ID] = a.Type.IsAsset()
	}

	sorted := make([]models.BalanceSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if _, known := isAsset[s.AccountID]; known {
			sorted = append(sorted, s)
		}
	}
	if len(sorted) == 0 {
		return []models.NetWorthPoint{}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	first := monthStart(sorted[0].RecordedAt)
	last := monthStart(sorted[len(sorted)-1].RecordedAt)

	points := make([]models.NetWorthPoint, 0)
	balances := make(map[int64]float64)
	idx := 0
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		nextMonth := month.AddDate(0, 1, 0)
		for idx < len(sorted) && sorted[idx].RecordedAt.Before(nextMonth) {
			balances[sorted[idx].AccountID] = sorted[idx].Balance
			idx++
		}

		point := models.NetWorthPoint{Date: month}
		for accountID, balance := range balances {
			if isAsset[accountID] {
				point.TotalAssets += balance
			} else {
				point.TotalLiabilities += math.Abs(balance)
			}
		}
		points = append(points, point)
	}
	return points
}

// monthStart truncates t to the first instant of its month in UTC.
func monthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
