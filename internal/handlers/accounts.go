package handlers

import (
	"net/http"
	"strings"
	"time"

	apperrors "furg/internal/errors"
	"furg/internal/middleware"
	"furg/internal/models"
	"furg/internal/repository"
)

// AccountHandler handles account routes, including balance sync and the
// per-type detail records.
type AccountHandler struct {
	accountRepo  *repository.AccountRepository
	snapshotRepo *repository.SnapshotRepository
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountRepo *repository.AccountRepository, snapshotRepo *repository.SnapshotRepository) *AccountHandler {
	return &AccountHandler{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
	}
}

// ownedAccount loads an account and verifies it belongs to the requesting user.
func (h *AccountHandler) ownedAccount(r *http.Request) (*models.Account, error) {
	id, err := urlID(r)
	if err != nil {
		return nil, err
	}
	account, err := h.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	user := middleware.GetUser(r)
	if account == nil || user == nil || account.UserID != user.ID {
		return nil, apperrors.NotFound("account")
	}
	return account, nil
}

// List returns all of the user's accounts with details loaded.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	accounts, err := h.accountRepo.GetByUserID(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

// Get returns a single account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

type accountRequest struct {
	Name        string  `json:"name"`
	Institution string  `json:"institution"`
	Type        string  `json:"type"`
	Balance     float64 `json:"balance"`
}

func (req *accountRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperrors.Validation("name is required")
	}
	if !models.AccountType(req.Type).Valid() {
		return apperrors.Validation("unknown account type")
	}
	return nil
}

// Create adds an account and records its first balance snapshot.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	account := &models.Account{
		UserID:      user.ID,
		Name:        req.Name,
		Institution: req.Institution,
		Type:        models.AccountType(req.Type),
		Balance:     req.Balance,
	}
	id, err := h.accountRepo.Create(account)
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.snapshotRepo.Record(id, req.Balance, time.Now()); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.accountRepo.GetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update changes an account's metadata.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	account.Name = req.Name
	account.Institution = req.Institution
	account.Type = models.AccountType(req.Type)
	if err := h.accountRepo.Update(account); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// Delete removes an account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.accountRepo.Delete(account.ID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type balanceRequest struct {
	Balance float64 `json:"balance"`
}

// SyncBalance records a new balance and writes a balance snapshot, preserving
// the prior balance for change reporting.
func (h *AccountHandler) SyncBalance(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req balanceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.accountRepo.UpdateBalance(account.ID, req.Balance); err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.snapshotRepo.Record(account.ID, req.Balance, time.Now()); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.accountRepo.GetByID(account.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// PutLoanDetails sets the loan details on a loan-type account.
func (h *AccountHandler) PutLoanDetails(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}
	switch account.Type {
	case models.AccountLoan, models.AccountMortgage, models.AccountStudentLoan, models.AccountAutoLoan:
	default:
		respondError(w, apperrors.Validation("account is not a loan"))
		return
	}

	var details models.LoanDetails
	if err := decodeBody(r, &details); err != nil {
		respondError(w, err)
		return
	}
	details.AccountID = account.ID
	if details.OriginalAmount <= 0 {
		respondError(w, apperrors.Validation("original_amount must be positive"))
		return
	}

	if err := h.accountRepo.SaveLoanDetails(&details); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// PutCreditCardDetails sets the credit card details on a card account.
func (h *AccountHandler) PutCreditCardDetails(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if account.Type != models.AccountCreditCard {
		respondError(w, apperrors.Validation("account is not a credit card"))
		return
	}

	var details models.CreditCardDetails
	if err := decodeBody(r, &details); err != nil {
		respondError(w, err)
		return
	}
	details.AccountID = account.ID
	if details.CreditLimit < 0 {
		respondError(w, apperrors.Validation("credit_limit cannot be negative"))
		return
	}

	if err := h.accountRepo.SaveCreditCardDetails(&details); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// PutPropertyDetails sets the property details on a property account.
func (h *AccountHandler) PutPropertyDetails(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if account.Type != models.AccountProperty {
		respondError(w, apperrors.Validation("account is not a property"))
		return
	}

	var details models.PropertyDetails
	if err := decodeBody(r, &details); err != nil {
		respondError(w, err)
		return
	}
	details.AccountID = account.ID

	if err := h.accountRepo.SavePropertyDetails(&details); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

type valuationRequest struct {
	Value    float64   `json:"value"`
	ValuedAt time.Time `json:"valued_at"`
}

// AddValuation appends a valuation point to a property account.
func (h *AccountHandler) AddValuation(w http.ResponseWriter, r *http.Request) {
	account, err := h.ownedAccount(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if account.Type != models.AccountProperty {
		respondError(w, apperrors.Validation("account is not a property"))
		return
	}

	var req valuationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.ValuedAt.IsZero() {
		req.ValuedAt = time.Now()
	}

	if err := h.accountRepo.AddValuation(account.ID, req.Value, req.ValuedAt); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, models.ValuationPoint{Date: req.ValuedAt, Value: req.Value})
}
