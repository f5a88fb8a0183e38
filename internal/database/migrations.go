package database

// SQL migrations for the Furg database.
// All migrations use IF NOT EXISTS to be idempotent.

const migrationUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const migrationSessions = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expires_at DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const migrationAccounts = `
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    institution TEXT,
    type TEXT NOT NULL,
    balance REAL NOT NULL DEFAULT 0,
    prior_balance REAL,
    last_updated DATETIME DEFAULT CURRENT_TIMESTAMP,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(user_id, name)
);
`

const migrationLoanDetails = `
CREATE TABLE IF NOT EXISTS loan_details (
    account_id INTEGER PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
    original_amount REAL NOT NULL,
    interest_rate REAL NOT NULL DEFAULT 0,
    monthly_payment REAL NOT NULL DEFAULT 0,
    remaining_balance REAL NOT NULL DEFAULT 0,
    term_months INTEGER NOT NULL DEFAULT 0,
    start_date DATETIME,
    payoff_date DATETIME
);
`

const migrationCreditCardDetails = `
CREATE TABLE IF NOT EXISTS credit_card_details (
    account_id INTEGER PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
    credit_limit REAL NOT NULL DEFAULT 0,
    current_balance REAL NOT NULL DEFAULT 0,
    minimum_payment REAL NOT NULL DEFAULT 0,
    due_date DATETIME,
    apr REAL NOT NULL DEFAULT 0,
    last_statement_balance REAL NOT NULL DEFAULT 0
);
`

const migrationPropertyDetails = `
CREATE TABLE IF NOT EXISTS property_details (
    account_id INTEGER PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
    address TEXT,
    purchase_price REAL NOT NULL DEFAULT 0,
    purchase_date DATETIME,
    current_value REAL NOT NULL DEFAULT 0,
    property_type TEXT,
    square_footage INTEGER,
    bedrooms INTEGER,
    bathrooms REAL,
    mortgage_balance REAL,
    monthly_rent REAL
);
`

const migrationValuations = `
CREATE TABLE IF NOT EXISTS property_valuations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    value REAL NOT NULL,
    valued_at DATETIME NOT NULL
);
`

const migrationBudgets = `
CREATE TABLE IF NOT EXISTS budgets (
    user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    monthly_income REAL NOT NULL DEFAULT 0,
    monthly_expenses REAL NOT NULL DEFAULT 0,
    savings_goal_percent REAL NOT NULL DEFAULT 0,
    current_savings REAL NOT NULL DEFAULT 0,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const migrationWishlistItems = `
CREATE TABLE IF NOT EXISTS wishlist_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    priority INTEGER NOT NULL DEFAULT 0,
    active INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const migrationBalanceSnapshots = `
CREATE TABLE IF NOT EXISTS balance_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    balance REAL NOT NULL,
    recorded_at DATETIME NOT NULL
);
`

const migrationDeals = `
CREATE TABLE IF NOT EXISTS deals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    merchant TEXT,
    price REAL NOT NULL,
    url TEXT,
    expires_at DATETIME,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const migrationIndexes = `
CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id);
CREATE INDEX IF NOT EXISTS idx_wishlist_user ON wishlist_items(user_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_account ON balance_snapshots(account_id, recorded_at);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_valuations_account ON property_valuations(account_id, valued_at);
`
