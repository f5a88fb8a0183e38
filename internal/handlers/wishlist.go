package handlers

import (
	"net/http"
	"strings"

	apperrors "furg/internal/errors"
	"furg/internal/middleware"
	"furg/internal/models"
	"furg/internal/repository"
)

// WishlistHandler handles wishlist item routes.
type WishlistHandler struct {
	wishlistRepo *repository.WishlistRepository
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlistRepo *repository.WishlistRepository) *WishlistHandler {
	return &WishlistHandler{wishlistRepo: wishlistRepo}
}

// List returns all of the user's wishlist items, highest priority first.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	items, err := h.wishlistRepo.GetByUserID(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type wishlistRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Priority string  `json:"priority"`
	Active   *bool   `json:"active"`
}

func (req *wishlistRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperrors.Validation("name is required")
	}
	if req.Price <= 0 {
		return apperrors.Validation("price must be positive")
	}
	return nil
}

// Create adds a wishlist item.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req wishlistRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	item := &models.WishlistItem{
		UserID:   user.ID,
		Name:     req.Name,
		Price:    req.Price,
		Priority: models.ParsePriority(req.Priority),
		Active:   active,
	}
	id, err := h.wishlistRepo.Create(item)
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.wishlistRepo.GetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ownedItem loads a wishlist item and verifies ownership.
func (h *WishlistHandler) ownedItem(r *http.Request) (*models.WishlistItem, error) {
	id, err := urlID(r)
	if err != nil {
		return nil, err
	}
	item, err := h.wishlistRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	user := middleware.GetUser(r)
	if item == nil || user == nil || item.UserID != user.ID {
		return nil, apperrors.NotFound("wishlist item")
	}
	return item, nil
}

// Update changes a wishlist item.
func (h *WishlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, err := h.ownedItem(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req wishlistRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Priority = models.ParsePriority(req.Priority)
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := h.wishlistRepo.Update(item); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// Delete removes a wishlist item.
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.ownedItem(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.wishlistRepo.Delete(item.ID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
