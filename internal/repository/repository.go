package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lalax124/arthaai/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const schema = `
CREATE SCHEMA IF NOT EXISTS artha;

CREATE TABLE IF NOT EXISTS artha.users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	email TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artha.income_data (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES artha.users (id),
	amount DOUBLE PRECISION NOT NULL,
	source TEXT,
	recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artha.expenses (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES artha.users (id),
	category TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artha.assets (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES artha.users (id),
	name TEXT NOT NULL,
	value DOUBLE PRECISION NOT NULL,
	recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artha.liabilities (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES artha.users (id),
	name TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artha.financial_goals (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES artha.users (id),
	name TEXT NOT NULL,
	target_amount DOUBLE PRECISION NOT NULL,
	current_amount DOUBLE PRECISION DEFAULT 0,
	deadline TEXT,
	priority INT DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artha.investment_portfolio (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES artha.users (id),
	ticker TEXT NOT NULL,
	shares DOUBLE PRECISION NOT NULL,
	cost_basis DOUBLE PRECISION NOT NULL,
	purchase_date TEXT,
	added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artha.ai_insights (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES artha.users (id),
	insight_type TEXT NOT NULL,
	content TEXT NOT NULL,
	generated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the schema and tables if they do not exist
func (r *Repository) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// GetOrCreateUser returns the user with the given username, creating it
// on first sight
func (r *Repository) GetOrCreateUser(ctx context.Context, username, email string) (*models.User, error) {
	user := &models.User{Username: username, Email: email}

	query := `
		SELECT id, username, COALESCE(email, ''), created_at
		FROM artha.users
		WHERE username = $1`
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	insert := `
		INSERT INTO artha.users (username, email)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, insert, username, email).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by id
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, COALESCE(email, ''), created_at
		FROM artha.users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d not found: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsersWithEmail returns all users that have an email address
func (r *Repository) ListUsersWithEmail(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, created_at
		FROM artha.users
		WHERE email IS NOT NULL AND email <> ''
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveIncome appends an income record for a user. Reads always use the
// most recent record, so history is preserved.
func (r *Repository) SaveIncome(ctx context.Context, userID int64, amount float64, source string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO artha.income_data (user_id, amount, source)
		VALUES ($1, $2, NULLIF($3, ''))`,
		userID, amount, source)
	if err != nil {
		return fmt.Errorf("failed to save income: %w", err)
	}
	return nil
}

// LatestIncome returns the most recent income amount for a user, or 0
// when none has been recorded
func (r *Repository) LatestIncome(ctx context.Context, userID int64) (float64, error) {
	var amount float64
	err := r.db.QueryRowContext(ctx, `
		SELECT amount FROM artha.income_data
		WHERE user_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1`, userID).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read income: %w", err)
	}
	return amount, nil
}

// replaceCategories deletes and reinserts all rows of a category table
// for a user inside one transaction. Insertion order is preserved
// through the serial id.
func (r *Repository) replaceCategories(ctx context.Context, table, keyCol, valCol string, userID int64, m *models.CategoryMap) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM artha.%s WHERE user_id = $1`, table), userID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	insert := fmt.Sprintf(`INSERT INTO artha.%s (user_id, %s, %s) VALUES ($1, $2, $3)`, table, keyCol, valCol)
	var insertErr error
	m.Each(func(name string, amount float64) {
		if insertErr != nil {
			return
		}
		if _, err := tx.ExecContext(ctx, insert, userID, name, amount); err != nil {
			insertErr = fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	})
	if insertErr != nil {
		return insertErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}

func (r *Repository) getCategories(ctx context.Context, table, keyCol, valCol string, userID int64) (*models.CategoryMap, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, %s FROM artha.%s WHERE user_id = $1 ORDER BY id`, keyCol, valCol, table),
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	m := models.NewCategoryMap()
	for rows.Next() {
		var name string
		var amount float64
		if err := rows.Scan(&name, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		m.Set(name, amount)
	}
	return m, rows.Err()
}

// ReplaceExpenses replaces all expenses for a user
func (r *Repository) ReplaceExpenses(ctx context.Context, userID int64, expenses *models.CategoryMap) error {
	return r.replaceCategories(ctx, "expenses", "category", "amount", userID, expenses)
}

// GetExpenses returns a user's expenses in insertion order
func (r *Repository) GetExpenses(ctx context.Context, userID int64) (*models.CategoryMap, error) {
	return r.getCategories(ctx, "expenses", "category", "amount", userID)
}

// ReplaceAssets replaces all assets for a user
func (r *Repository) ReplaceAssets(ctx context.Context, userID int64, assets *models.CategoryMap) error {
	return r.replaceCategories(ctx, "assets", "name", "value", userID, assets)
}

// GetAssets returns a user's assets in insertion order
func (r *Repository) GetAssets(ctx context.Context, userID int64) (*models.CategoryMap, error) {
	return r.getCategories(ctx, "assets", "name", "value", userID)
}

// ReplaceLiabilities replaces all liabilities for a user
func (r *Repository) ReplaceLiabilities(ctx context.Context, userID int64, liabilities *models.CategoryMap) error {
	return r.replaceCategories(ctx, "liabilities", "name", "amount", userID, liabilities)
}

// GetLiabilities returns a user's liabilities in insertion order
func (r *Repository) GetLiabilities(ctx context.Context, userID int64) (*models.CategoryMap, error) {
	return r.getCategories(ctx, "liabilities", "name", "amount", userID)
}

// ReplaceGoals replaces all financial goals for a user
func (r *Repository) ReplaceGoals(ctx context.Context, userID int64, goals []models.Goal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM artha.financial_goals WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear goals: %w", err)
	}

	for _, g := range goals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO artha.financial_goals (user_id, name, target_amount, current_amount, deadline, priority)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
			userID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Priority)
		if err != nil {
			return fmt.Errorf("failed to insert goal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit goals: %w", err)
	}
	return nil
}

// GetGoals returns a user's goals ordered by priority, highest first
func (r *Repository) GetGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, target_amount, current_amount, COALESCE(deadline, ''), priority
		FROM artha.financial_goals
		WHERE user_id = $1
		ORDER BY priority DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// ReplacePortfolio replaces a user's investment portfolio
func (r *Repository) ReplacePortfolio(ctx context.Context, userID int64, holdings []models.Holding) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM artha.investment_portfolio WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear portfolio: %w", err)
	}

	for _, h := range holdings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO artha.investment_portfolio (user_id, ticker, shares, cost_basis, purchase_date)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
			userID, h.Ticker, h.Shares, h.CostBasis, h.PurchaseDate)
		if err != nil {
			return fmt.Errorf("failed to insert holding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit portfolio: %w", err)
	}
	return nil
}

// GetPortfolio returns a user's investment portfolio
func (r *Repository) GetPortfolio(ctx context.Context, userID int64) ([]models.Holding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ticker, shares, cost_basis, COALESCE(purchase_date, '')
		FROM artha.investment_portfolio
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio: %w", err)
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.Ticker, &h.Shares, &h.CostBasis, &h.PurchaseDate); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// SaveInsight appends an AI-generated insight for a user
func (r *Repository) SaveInsight(ctx context.Context, userID int64, insightType, content string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO artha.ai_insights (user_id, insight_type, content)
		VALUES ($1, $2, $3)`,
		userID, insightType, content)
	if err != nil {
		return fmt.Errorf("failed to save insight: %w", err)
	}
	return nil
}

// GetInsights returns the latest insights for a user, optionally
// filtered by type
func (r *Repository) GetInsights(ctx context.Context, userID int64, insightType string, limit int) ([]models.Insight, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT id, user_id, insight_type, content, generated_at
		FROM artha.ai_insights
		WHERE user_id = $1`
	args := []any{userID}
	if insightType != "" {
		query += ` AND insight_type = $2`
		args = append(args, insightType)
	}
	query += fmt.Sprintf(` ORDER BY generated_at DESC, id DESC LIMIT %d`, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read insights: %w", err)
	}
	defer rows.Close()

	insights := []models.Insight{}
	for rows.Next() {
		var in models.Insight
		if err := rows.Scan(&in.ID, &in.UserID, &in.InsightType, &in.Content, &in.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}
		insights = append(insights, in)
	}
	return insights, rows.Err()
}
