// Package models contains the domain models for the Furg backend.
package models

import "time"

// User represents a registered user of the mobile app.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents a user session for authentication.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AccountType classifies a financial account.
type AccountType string

// Account types reported by the account-linking collaborator.
const (
	AccountChecking    AccountType = "checking"
	AccountSavings     AccountType = "savings"
	AccountInvestment  AccountType = "investment"
	AccountCrypto      AccountType = "crypto"
	AccountCreditCard  AccountType = "credit_card"
	AccountLoan        AccountType = "loan"
	AccountMortgage    AccountType = "mortgage"
	AccountStudentLoan AccountType = "student_loan"
	AccountAutoLoan    AccountType = "auto_loan"
	AccountProperty    AccountType = "property"
	AccountRetirement  AccountType = "retirement"
)

// IsAsset reports whether accounts of this type count toward assets.
// Credit cards and all loan types are liabilities; everything else is an asset.
func (t AccountType) IsAsset() bool {
	switch t {
	case AccountCreditCard, AccountLoan, AccountMortgage, AccountStudentLoan, AccountAutoLoan:
		return false
	default:
		return true
	}
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountInvestment, AccountCrypto,
		AccountCreditCard, AccountLoan, AccountMortgage, AccountStudentLoan,
		AccountAutoLoan, AccountProperty, AccountRetirement:
		return true
	}
	return false
}

// Account represents a financial holding synced from an external source.
// Liability accounts conventionally carry a negative balance; aggregation
// normalizes to the absolute value.
type Account struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	Name         string      `json:"name"`
	Institution  string      `json:"institution,omitempty"`
	Type         AccountType `json:"type"`
	Balance      float64     `json:"balance"`
	PriorBalance *float64    `json:"prior_balance,omitempty"`
	LastUpdated  time.Time   `json:"last_updated"`
	CreatedAt    time.Time   `json:"created_at"`

	Loan       *LoanDetails       `json:"loan,omitempty"`
	CreditCard *CreditCardDetails `json:"credit_card,omitempty"`
	Property   *PropertyDetails   `json:"property,omitempty"`
}

// BalanceChange returns the percentage change since the prior sync.
// Defined only when a non-zero prior balance exists; otherwise 0.
func (a *Account) BalanceChange() float64 {
	if a.PriorBalance == nil || *a.PriorBalance == 0 {
		return 0
	}
	prior := *a.PriorBalance
	return (a.Balance - prior) / abs(prior) * 100
}

// LoanDetails describes the amortization schedule attached to a liability account.
type LoanDetails struct {
	AccountID        int64     `json:"account_id"`
	OriginalAmount   float64   `json:"original_amount"`
	InterestRate     float64   `json:"interest_rate"` // annual, percent
	MonthlyPayment   float64   `json:"monthly_payment"`
	RemainingBalance float64   `json:"remaining_balance"`
	TermMonths       int       `json:"term_months"`
	StartDate        time.Time `json:"start_date"`
	PayoffDate       time.Time `json:"payoff_date"`
}

// TotalPaid returns the principal paid so far.
func (l *LoanDetails) TotalPaid() float64 {
	return l.OriginalAmount - l.RemainingBalance
}

// PercentPaid returns the payoff progress, clamped to [0, 100].
func (l *LoanDetails) PercentPaid() float64 {
	if l.OriginalAmount == 0 {
		return 0
	}
	pct := l.TotalPaid() / l.OriginalAmount * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// MonthsRemaining returns whole months between now and the payoff date,
// floored at 0.
func (l *LoanDetails) MonthsRemaining(now time.Time) int {
	if !l.PayoffDate.After(now) {
		return 0
	}
	months := (l.PayoffDate.Year()-now.Year())*12 + int(l.PayoffDate.Month()) - int(now.Month())
	if l.PayoffDate.Day() < now.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// TotalInterest returns the interest paid over the full term.
func (l *LoanDetails) TotalInterest() float64 {
	return l.MonthlyPayment*float64(l.TermMonths) - l.OriginalAmount
}

// CreditCardDetails describes a credit card account. CurrentBalance is a
// positive magnitude regardless of how the account balance is signed.
type CreditCardDetails struct {
	AccountID            int64      `json:"account_id"`
	CreditLimit          float64    `json:"credit_limit"`
	CurrentBalance       float64    `json:"current_balance"`
	MinimumPayment       float64    `json:"minimum_payment"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	APR                  float64    `json:"apr"`
	LastStatementBalance float64    `json:"last_statement_balance"`
}

// Utilization returns balance/limit as a percentage, 0 when the limit is 0.
func (c *CreditCardDetails) Utilization() float64 {
	if c.CreditLimit == 0 {
		return 0
	}
	return c.CurrentBalance / c.CreditLimit * 100
}

// AvailableCredit returns the remaining credit on the card.
func (c *CreditCardDetails) AvailableCredit() float64 {
	return c.CreditLimit - c.CurrentBalance
}

// PropertyDetails describes a real-estate account.
type PropertyDetails struct {
	AccountID       int64            `json:"account_id"`
	Address         string           `json:"address"`
	PurchasePrice   float64          `json:"purchase_price"`
	PurchaseDate    time.Time        `json:"purchase_date"`
	CurrentValue    float64          `json:"current_value"`
	PropertyType    string           `json:"property_type"`
	SquareFootage   *int             `json:"square_footage,omitempty"`
	Bedrooms        *int             `json:"bedrooms,omitempty"`
	Bathrooms       *float64         `json:"bathrooms,omitempty"`
	MortgageBalance *float64         `json:"mortgage_balance,omitempty"`
	MonthlyRent     *float64         `json:"monthly_rent,omitempty"`
	Valuations      []ValuationPoint `json:"valuations,omitempty"`
}

// ValuationPoint is one point in a property's valuation history.
type ValuationPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Equity returns current value less any mortgage balance.
func (p *PropertyDetails) Equity() float64 {
	mortgage := 0.0
	if p.MortgageBalance != nil {
		mortgage = *p.MortgageBalance
	}
	return p.CurrentValue - mortgage
}

// Appreciation returns the gain over the purchase price.
func (p *PropertyDetails) Appreciation() float64 {
	return p.CurrentValue - p.PurchasePrice
}

// AppreciationPercent returns appreciation as a percentage of the purchase
// price, 0 when the purchase price is 0.
func (p *PropertyDetails) AppreciationPercent() float64 {
	if p.PurchasePrice == 0 {
		return 0
	}
	return p.Appreciation() / p.PurchasePrice * 100
}

// Budget is a user's monthly financial plan. It is not tied to any account.
type Budget struct {
	UserID             int64     `json:"user_id"`
	MonthlyIncome      float64   `json:"monthly_income"`
	MonthlyExpenses    float64   `json:"monthly_expenses"`
	SavingsGoalPercent float64   `json:"savings_goal_percent"` // 0-100
	CurrentSavings     float64   `json:"current_savings"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Priority orders wishlist items. Higher values are purchased sooner.
type Priority int

// Wishlist priorities, lowest to highest.
const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	}
	return "unknown"
}

// ParsePriority converts a priority name to its value. Unknown names map to low.
func ParsePriority(s string) Priority {
	switch s {
	case "urgent":
		return PriorityUrgent
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	}
	return PriorityLow
}

// WishlistItem is a desired purchase.
type WishlistItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Priority  Priority  `json:"priority"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Deal is an offer from the deals feed that may match a wishlist item.
type Deal struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Merchant  string     `json:"merchant,omitempty"`
	Price     float64    `json:"price"`
	URL       string     `json:"url,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AssetCategory is the target bucket an asset class belongs to.
type AssetCategory string

// Asset categories used for allocation analysis.
const (
	CategoryStocks      AssetCategory = "stocks"
	CategoryBonds       AssetCategory = "bonds"
	CategoryAlternative AssetCategory = "alternative"
	CategoryCash        AssetCategory = "cash"
)

// AssetClass is a named slice of a portfolio for allocation analysis.
type AssetClass struct {
	Name       string        `json:"name"`
	Percentage float64       `json:"percentage"`
	Amount     float64       `json:"amount"`
	Category   AssetCategory `json:"category"`
}

// RiskProfile selects a target allocation for rebalancing.
type RiskProfile string

// Supported risk profiles.
const (
	ProfileConservative RiskProfile = "conservative"
	ProfileModerate     RiskProfile = "moderate"
	ProfileAggressive   RiskProfile = "aggressive"
)

// Valid reports whether p is a known risk profile.
func (p RiskProfile) Valid() bool {
	switch p {
	case ProfileConservative, ProfileModerate, ProfileAggressive:
		return true
	}
	return false
}

// BalanceSnapshot records an account balance at a point in time. Snapshots are
// written on every sync and feed the net-worth series.
type BalanceSnapshot struct {
	ID         int64     `json:"id"`
	AccountID  int64     `json:"account_id"`
	Balance    float64   `json:"balance"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NetWorthPoint is one point in the net-worth time series.
type NetWorthPoint struct {
	Date             time.Time `json:"date"`
	TotalAssets      float64   `json:"total_assets"`
	TotalLiabilities float64   `json:"total_liabilities"`
}

// NetWorth returns assets less liabilities at this point.
func (p NetWorthPoint) NetWorth() float64 {
	return p.TotalAssets - p.TotalLiabilities
}

// Insight is a rule-based observation over aggregated financial state.
type Insight struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
