package repository

import (
	"database/sql"
	"fmt"
	"time"

	"furg/internal/database"
	"furg/internal/models"
)

// AccountRepository handles account database operations, including the
// per-type detail tables for loans, credit cards, and properties.
type AccountRepository struct {
	db *database.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and returns its ID.
func (r *AccountRepository) Create(account *models.Account) (int64, error) {
	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO accounts (user_id, name, institution, type, balance, prior_balance, last_updated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, account.UserID, account.Name, account.Institution, string(account.Type),
		account.Balance, account.PriorBalance, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating account: %w", err)
	}
	return result.LastInsertId()
}

// GetByID retrieves an account by ID with its detail record loaded.
// Returns nil if not found.
func (r *AccountRepository) GetByID(id int64) (*models.Account, error) {
	row := r.db.QueryRow(`
		SELECT id, user_id, name, institution, type, balance, prior_balance, last_updated, created_at
		FROM accounts
		WHERE id = ?
	`, id)

	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account by id: %w", err)
	}

	if err := r.loadDetails(account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetByUserID retrieves all accounts for a user with details loaded,
// sorted by name.
func (r *AccountRepository) GetByUserID(userID int64) ([]*models.Account, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, name, institution, type, balance, prior_balance, last_updated, created_at
		FROM accounts
		WHERE user_id = ?
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("getting accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if err := r.loadDetails(account); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	account := &models.Account{}
	var institution sql.NullString
	var priorBalance sql.NullFloat64
	var accountType string

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&institution,
		&accountType,
		&account.Balance,
		&priorBalance,
		&account.LastUpdated,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Type = models.AccountType(accountType)
	if institution.Valid {
		account.Institution = institution.String
	}
	if priorBalance.Valid {
		account.PriorBalance = &priorBalance.Float64
	}
	return account, nil
}

// loadDetails attaches the detail record matching the account's type.
func (r *AccountRepository) loadDetails(account *models.Account) error {
	switch account.Type {
	case models.AccountLoan, models.AccountMortgage, models.AccountStudentLoan, models.AccountAutoLoan:
		loan, err := r.getLoanDetails(account.ID)
		if err != nil {
			return err
		}
		account.Loan = loan
	case models.AccountCreditCard:
		card, err := r.getCreditCardDetails(account.ID)
		if err != nil {
			return err
		}
		account.CreditCard = card
	case models.AccountProperty:
		property, err := r.getPropertyDetails(account.ID)
		if err != nil {
			return err
		}
		account.Property = property
	}
	return nil
}

// UpdateBalance records a new balance, preserving the previous one so
// percentage change can be computed.
func (r *AccountRepository) UpdateBalance(id int64, balance float64) error {
	result, err := r.db.Exec(`
		UPDATE accounts
		SET prior_balance = balance, balance = ?, last_updated = ?
		WHERE id = ?
	`, balance, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("account %d not found", id)
	}
	return nil
}

// Update updates an account's metadata.
func (r *AccountRepository) Update(account *models.Account) error {
	result, err := r.db.Exec(`
		UPDATE accounts
		SET name = ?, institution = ?, type = ?
		WHERE id = ?
	`, account.Name, account.Institution, string(account.Type), account.ID)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("account %d not found", account.ID)
	}
	return nil
}

// Delete removes an account by ID. Detail rows cascade.
func (r *AccountRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("account %d not found", id)
	}
	return nil
}

// SaveLoanDetails inserts or replaces the loan detail row for an account.
func (r *AccountRepository) SaveLoanDetails(d *models.LoanDetails) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO loan_details
			(account_id, original_amount, interest_rate, monthly_payment, remaining_balance, term_months, start_date, payoff_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.AccountID, d.OriginalAmount, d.InterestRate, d.MonthlyPayment,
		d.RemainingBalance, d.TermMonths, d.StartDate, d.PayoffDate)
	if err != nil {
		return fmt.Errorf("saving loan details: %w", err)
	}
	return nil
}

func (r *AccountRepository) getLoanDetails(accountID int64) (*models.LoanDetails, error) {
	d := &models.LoanDetails{}
	err := r.db.QueryRow(`
		SELECT account_id, original_amount, interest_rate, monthly_payment, remaining_balance, term_months, start_date, payoff_date
		FROM loan_details
		WHERE account_id = ?
	`, accountID).Scan(
		&d.AccountID,
		&d.OriginalAmount,
		&d.InterestRate,
		&d.MonthlyPayment,
		&d.RemainingBalance,
		&d.TermMonths,
		&d.StartDate,
		&d.PayoffDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting loan details: %w", err)
	}
	return d, nil
}

// SaveCreditCardDetails inserts or replaces the credit card detail row.
func (r *AccountRepository) SaveCreditCardDetails(d *models.CreditCardDetails) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO credit_card_details
			(account_id, credit_limit, current_balance, minimum_payment, due_date, apr, last_statement_balance)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.AccountID, d.CreditLimit, d.CurrentBalance, d.MinimumPayment,
		d.DueDate, d.APR, d.LastStatementBalance)
	if err != nil {
		return fmt.Errorf("saving credit card details: %w", err)
	}
	return nil
}

func (r *AccountRepository) getCreditCardDetails(accountID int64) (*models.CreditCardDetails, error) {
	d := &models.CreditCardDetails{}
	var dueDate sql.NullTime
	err := r.db.QueryRow(`
		SELECT account_id, credit_limit, current_balance, minimum_payment, due_date, apr, last_statement_balance
		FROM credit_card_details
		WHERE account_id = ?
	`, accountID).Scan(
		&d.AccountID,
		&d.CreditLimit,
		&d.CurrentBalance,
		&d.MinimumPayment,
		&dueDate,
		&d.APR,
		&d.LastStatementBalance,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting credit card details: %w", err)
	}
	if dueDate.Valid {
		d.DueDate = &dueDate.Time
	}
	return d, nil
}

// SavePropertyDetails inserts or replaces the property detail row.
func (r *AccountRepository) SavePropertyDetails(d *models.PropertyDetails) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO property_details
			(account_id, address, purchase_price, purchase_date, current_value, property_type,
			 square_footage, bedrooms, bathrooms, mortgage_balance, monthly_rent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.AccountID, d.Address, d.PurchasePrice, d.PurchaseDate, d.CurrentValue, d.PropertyType,
		d.SquareFootage, d.Bedrooms, d.Bathrooms, d.MortgageBalance, d.MonthlyRent)
	if err != nil {
		return fmt.Errorf("saving property details: %w", err)
	}
	return nil
}

func (r *AccountRepository) getPropertyDetails(accountID int64) (*models.PropertyDetails, error) {
	d := &models.PropertyDetails{}
	var address, propertyType sql.NullString
	var squareFootage, bedrooms sql.NullInt64
	var bathrooms, mortgageBalance, monthlyRent sql.NullFloat64

	err := r.db.QueryRow(`
		SELECT account_id, address, purchase_price, purchase_date, current_value, property_type,
		       square_footage, bedrooms, bathrooms, mortgage_balance, monthly_rent
		FROM property_details
		WHERE account_id = ?
	`, accountID).Scan(
		&d.AccountID,
		&address,
		&d.PurchasePrice,
		&d.PurchaseDate,
		&d.CurrentValue,
		&propertyType,
		&squareFootage,
		&bedrooms,
		&bathrooms,
		&mortgageBalance,
		&monthlyRent,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting property details: %w", err)
	}

	if address.Valid {
		d.Address = address.String
	}
	if propertyType.Valid {
		d.PropertyType = propertyType.String
	}
	if squareFootage.Valid {
		v := int(squareFootage.Int64)
		d.SquareFootage = &v
	}
	if bedrooms.Valid {
		v := int(bedrooms.Int64)
		d.Bedrooms = &v
	}
	if bathrooms.Valid {
		d.Bathrooms = &bathrooms.Float64
	}
	if mortgageBalance.Valid {
		d.MortgageBalance = &mortgageBalance.Float64
	}
	if monthlyRent.Valid {
		d.MonthlyRent = &monthlyRent.Float64
	}

	valuations, err := r.getValuations(accountID)
	if err != nil {
		return nil, err
	}
	d.Valuations = valuations
	return d, nil
}

// AddValuation appends a point to a property's valuation history.
func (r *AccountRepository) AddValuation(accountID int64, value float64, valuedAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO property_valuations (account_id, value, valued_at)
		VALUES (?, ?, ?)
	`, accountID, value, valuedAt)
	if err != nil {
		return fmt.Errorf("adding valuation: %w", err)
	}
	return nil
}

func (r *AccountRepository) getValuations(accountID int64) ([]models.ValuationPoint, error) {
	rows, err := r.db.Query(`
		SELECT value, valued_at
		FROM property_valuations
		WHERE account_id = ?
		ORDER BY valued_at ASC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("getting valuations: %w", err)
	}
	defer rows.Close()

	var points []models.ValuationPoint
	for rows.Next() {
		var p models.ValuationPoint
		if err := rows.Scan(&p.Value, &p.Date); err != nil {
			return nil, fmt.Errorf("scanning valuation: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
