package handlers

import (
	"net/http"
	"strings"
	"time"

	apperrors "furg/internal/errors"
	"furg/internal/middleware"
	"furg/internal/models"
	"furg/internal/repository"
	"furg/internal/services"
)

// DealHandler handles the deals feed and deal-to-wishlist matching.
type DealHandler struct {
	dealRepo    *repository.DealRepository
	dealService *services.DealService
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(dealRepo *repository.DealRepository, dealService *services.DealService) *DealHandler {
	return &DealHandler{
		dealRepo:    dealRepo,
		dealService: dealService,
	}
}

// List returns the currently live deals.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := h.dealRepo.GetActive(time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deals)
}

type dealRequest struct {
	Title     string     `json:"title"`
	Merchant  string     `json:"merchant"`
	Price     float64    `json:"price"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Create adds a deal to the feed.
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, apperrors.Validation("title is required"))
		return
	}
	if req.Price < 0 {
		respondError(w, apperrors.Validation("price cannot be negative"))
		return
	}

	deal := &models.Deal{
		Title:     req.Title,
		Merchant:  req.Merchant,
		Price:     req.Price,
		URL:       req.URL,
		ExpiresAt: req.ExpiresAt,
	}
	id, err := h.dealRepo.Create(deal)
	if err != nil {
		respondError(w, err)
		return
	}
	deal.ID = id

	respondJSON(w, http.StatusCreated, deal)
}

// Delete removes a deal from the feed.
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.dealRepo.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Matches returns live deals matched against the user's active wishlist,
// largest savings first.
func (h *DealHandler) Matches(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	matches, err := h.dealService.FindMatches(user.ID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}
