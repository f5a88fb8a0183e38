package services

import (
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"furg/internal/models"
	"furg/internal/repository"
)

// DefaultDealMatchThreshold is the maximum normalized edit distance for a
// deal title to count as a match for a wishlist item.
const DefaultDealMatchThreshold = 0.4

// DealService matches deals from the feed against wishlist items so purchase
// plans can be annotated with potential savings.
type DealService struct {
	dealRepo     *repository.DealRepository
	wishlistRepo *repository.WishlistRepository
	threshold    float64
}

// NewDealService creates a new DealService. A non-positive threshold falls
// back to the default.
func NewDealService(dealRepo *repository.DealRepository, wishlistRepo *repository.WishlistRepository, threshold float64) *DealService {
	if threshold <= 0 {
		threshold = DefaultDealMatchThreshold
	}
	return &DealService{
		dealRepo:     dealRepo,
		wishlistRepo: wishlistRepo,
		threshold:    threshold,
	}
}

// DealMatch pairs a wishlist item with a matching deal.
type DealMatch struct {
	Item     models.WishlistItem `json:"item"`
	Deal     models.Deal         `json:"deal"`
	Distance float64             `json:"distance"`
	Savings  float64             `json:"savings"`
}

// FindMatches matches the user's active wishlist against live deals. Each
// item gets at most its best match: lowest distance, ties broken by lowest
// deal price. Savings is the item price less the deal price, floored at 0.
func (s *DealService) FindMatches(userID int64, now time.Time) ([]DealMatch, error) {
	items, err := s.wishlistRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	deals, err := s.dealRepo.GetActive(now)
	if err != nil {
		return nil, err
	}
	return s.MatchItems(derefItems(items), derefDeals(deals)), nil
}

// MatchItems runs the matching rule over in-memory items and deals.
func (s *DealService) MatchItems(items []models.WishlistItem, deals []models.Deal) []DealMatch {
	matches := make([]DealMatch, 0)

	for _, item := range items {
		var best *DealMatch
		for _, deal := range deals {
			dist := normalizedDistance(item.Name, deal.Title)
			if dist >= s.threshold {
				continue
			}
			if best != nil && (dist > best.Distance || (dist == best.Distance && deal.Price >= best.Deal.Price)) {
				continue
			}
			savings := item.Price - deal.Price
			if savings < 0 {
				savings = 0
			}
			best = &DealMatch{Item: item, Deal: deal, Distance: dist, Savings: savings}
		}
		if best != nil {
			matches = append(matches, *best)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Savings > matches[j].Savings
	})
	return matches
}

// normalizedDistance is the Levenshtein distance between the lowercased
// strings divided by the longer length. Identical strings score 0, fully
// dissimilar strings approach 1.
func normalizedDistance(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 0
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

func derefDeals(deals []*models.Deal) []models.Deal {
	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		out = append(out, *d)
	}
	return out
}
