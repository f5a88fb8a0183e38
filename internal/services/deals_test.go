package services

import (
	"testing"

	"furg/internal/models"
)

func TestNormalizedDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "laptop", "laptop", 0},
		{"case insensitive", "Laptop", "LAPTOP", 0},
		{"whitespace trimmed", "  laptop ", "laptop", 0},
		{"both empty", "", "", 0},
		{"completely different", "abc", "xyz", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizedDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("normalizedDistance(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMatchItems_CloseTitleMatches(t *testing.T) {
	s := NewDealService(nil, nil, 0.4)

	items := []models.WishlistItem{
		{ID: 1, Name: "MacBook Pro 14", Price: 2000},
	}
	deals := []models.Deal{
		{ID: 10, Title: "Macbook Pro 14\"", Price: 1750},
	}

	matches := s.MatchItems(items, deals)
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Deal.ID != 10 {
		t.Errorf("matched deal = %d, want 10", matches[0].Deal.ID)
	}
	if matches[0].Savings != 250 {
		t.Errorf("Savings = %v, want 250", matches[0].Savings)
	}
}

func TestMatchItems_DistantTitleDoesNotMatch(t *testing.T) {
	s := NewDealService(nil, nil, 0.4)

	items := []models.WishlistItem{
		{ID: 1, Name: "Espresso Machine", Price: 500},
	}
	deals := []models.Deal{
		{ID: 10, Title: "Lawn Mower", Price: 300},
	}

	matches := s.MatchItems(items, deals)
	if len(matches) != 0 {
		t.Fatalf("len(matches) = %d, want 0", len(matches))
	}
}

func TestMatchItems_PicksBestDealPerItem(t *testing.T) {
	s := NewDealService(nil, nil, 0.4)

	items := []models.WishlistItem{
		{ID: 1, Name: "headphones", Price: 300},
	}
	deals := []models.Deal{
		{ID: 10, Title: "headphones", Price: 250},
		{ID: 11, Title: "headphones", Price: 200},
		{ID: 12, Title: "headphonez", Price: 100},
	}

	matches := s.MatchItems(items, deals)
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	// Exact title beats the cheaper near-miss; the cheaper exact title wins
	// the tie.
	if matches[0].Deal.ID != 11 {
		t.Errorf("matched deal = %d, want 11", matches[0].Deal.ID)
	}
}

func TestMatchItems_SavingsFlooredAtZero(t *testing.T) {
	s := NewDealService(nil, nil, 0.4)

	items := []models.WishlistItem{
		{ID: 1, Name: "monitor", Price: 150},
	}
	deals := []models.Deal{
		{ID: 10, Title: "monitor", Price: 200},
	}

	matches := s.MatchItems(items, deals)
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Savings != 0 {
		t.Errorf("Savings = %v, want 0", matches[0].Savings)
	}
}

func TestMatchItems_SortedBySavingsDescending(t *testing.T) {
	s := NewDealService(nil, nil, 0.4)

	items := []models.WishlistItem{
		{ID: 1, Name: "keyboard", Price: 150},
		{ID: 2, Name: "standing desk", Price: 800},
	}
	deals := []models.Deal{
		{ID: 10, Title: "keyboard", Price: 120},
		{ID: 11, Title: "standing desk", Price: 500},
	}

	matches := s.MatchItems(items, deals)
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Item.ID != 2 {
		t.Errorf("first match item = %d, want 2 (largest savings first)", matches[0].Item.ID)
	}
}

func TestNewDealService_NonPositiveThreshold_UsesDefault(t *testing.T) {
	s := NewDealService(nil, nil, 0)
	if s.threshold != DefaultDealMatchThreshold {
		t.Errorf("threshold = %v, want %v", s.threshold, DefaultDealMatchThreshold)
	}
}
