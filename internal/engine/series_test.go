package engine

import (
	"testing"
	"time"

	"furg/internal/models"
)

func seriesDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestBuildNetWorthSeries_MonthlyCadence(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, Type: models.AccountChecking},
		{ID: 2, Type: models.AccountCreditCard},
	}
	snapshots := []models.BalanceSnapshot{
		{AccountID: 1, Balance: 1000, RecordedAt: seriesDate(2026, time.January, 10)},
		{AccountID: 2, Balance: -200, RecordedAt: seriesDate(2026, time.January, 15)},
		{AccountID: 1, Balance: 1500, RecordedAt: seriesDate(2026, time.March, 5)},
	}

	points := BuildNetWorthSeries(accounts, snapshots)

	if len(points) != 3 {
		t.Fatalf("got %d points, want 3 (Jan, Feb, Mar)", len(points))
	}

	jan := points[0]
	if jan.TotalAssets != 1000 || jan.TotalLiabilities != 200 {
		t.Errorf("Jan = %f assets / %f liabilities, want 1000 / 200", jan.TotalAssets, jan.TotalLiabilities)
	}
	if jan.NetWorth() != 800 {
		t.Errorf("Jan net worth = %f, want 800", jan.NetWorth())
	}

	// February has no snapshots: balances carry forward.
	feb := points[1]
	if feb.TotalAssets != 1000 || feb.TotalLiabilities != 200 {
		t.Errorf("Feb = %f assets / %f liabilities, want carried-forward 1000 / 200", feb.TotalAssets, feb.TotalLiabilities)
	}

	mar := points[2]
	if mar.TotalAssets != 1500 {
		t.Errorf("Mar assets = %f, want updated 1500", mar.TotalAssets)
	}
}

func TestBuildNetWorthSeries_LatestSnapshotInMonthWins(t *testing.T) {
	accounts := []models.Account{{ID: 1, Type: models.AccountSavings}}
	snapshots := []models.BalanceSnapshot{
		{AccountID: 1, Balance: 100, RecordedAt: seriesDate(2026, time.May, 1)},
		{AccountID: 1, Balance: 300, RecordedAt: seriesDate(2026, time.May, 28)},
		{AccountID: 1, Balance: 200, RecordedAt: seriesDate(2026, time.May, 14)},
	}

	points := BuildNetWorthSeries(accounts, snapshots)

	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].TotalAssets != 300 {
		t.Errorf("assets = %f, want the latest snapshot in the month (300)", points[0].TotalAssets)
	}
}

func TestBuildNetWorthSeries_Empty(t *testing.T) {
	points := BuildNetWorthSeries(nil, nil)
	if len(points) != 0 {
		t.Errorf("got %d points, want 0", len(points))
	}
}

func TestBuildNetWorthSeries_IgnoresUnknownAccounts(t *testing.T) {
	accounts := []models.Account{{ID: 1, Type: models.AccountChecking}}
	snapshots := []models.BalanceSnapshot{
		{AccountID: 1, Balance: 500, RecordedAt: seriesDate(2026, time.April, 1)},
		{AccountID: 99, Balance: 9999, RecordedAt: seriesDate(2026, time.April, 2)},
	}

	points := BuildNetWorthSeries(accounts, snapshots)

	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].TotalAssets != 500 {
		t.Errorf("assets = %f, want 500 (unknown account ignored)", points[0].TotalAssets)
	}
}
