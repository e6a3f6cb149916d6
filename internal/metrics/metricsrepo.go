package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

// MetricsRepository aggregates platform activity for the dashboard. Reads
// over the users table expect the schema managed by users.SQLiteUserRepository.
type MetricsRepository interface {
	// UserCounts returns daily sign-up counts split by verification state
	UserCounts(ctx context.Context) (*UserCountMetrics, error)

	// UsersByCountry returns the number of users per country, largest first
	UsersByCountry(ctx context.Context) ([]CountryCount, error)

	// SubscriptionCounts returns the number of subscriptions per plan
	SubscriptionCounts(ctx context.Context) ([]PlanCount, error)

	// CampaignCounts returns daily campaign creation counts
	CampaignCounts(ctx context.Context) (*CampaignMetrics, error)

	// ConversationCounts returns daily conversation counts
	ConversationCounts(ctx context.Context) (*ConversationMetrics, error)

	// AppointmentCounts returns daily appointment counts
	AppointmentCounts(ctx context.Context) (*AppointmentMetrics, error)

	// PlanChanges returns monthly upgrade and downgrade counts
	PlanChanges(ctx context.Context) ([]PlanChangeCount, error)

	// RecordSubscription stores a subscription for a user
	RecordSubscription(ctx context.Context, userID int64, plan string, createdAt time.Time) error

	// RecordCampaign stores a campaign creation event
	RecordCampaign(ctx context.Context, kind string, createdAt time.Time) error

	// RecordConversation stores a conversation start event
	RecordConversation(ctx context.Context, kind string, createdAt time.Time) error

	// RecordAppointment stores an appointment booking event
	RecordAppointment(ctx context.Context, createdAt time.Time) error

	// RecordPlanChange stores a plan upgrade or downgrade for a user
	RecordPlanChange(ctx context.Context, userID int64, direction string, createdAt time.Time) error
}

// SQLiteMetricsRepository implements MetricsRepository using SQLite
type SQLiteMetricsRepository struct {
	db *sql.DB
}

// NewSQLiteMetricsRepository creates a new SQLite-based MetricsRepository
func NewSQLiteMetricsRepository(database *sql.DB) (*SQLiteMetricsRepository, error) {
	repo := &SQLiteMetricsRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *SQLiteMetricsRepository) createTables() error {
	createMetricsTables := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		plan TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS campaigns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS conversations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS appointments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS plan_changes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		direction TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_campaigns_created_at ON campaigns(created_at);
	CREATE INDEX IF NOT EXISTS idx_conversations_created_at ON conversations(created_at);
	CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments(created_at);`

	_, err := r.db.Exec(createMetricsTables)
	return err
}

// UserCounts returns daily sign-up counts split by verification state
func (r *SQLiteMetricsRepository) UserCounts(ctx context.Context) (*UserCountMetrics, error) {
	query := `
	SELECT substr(created_at, 1, 10) AS day,
		SUM(is_verified), SUM(1 - is_verified)
	FROM users
	GROUP BY day ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user counts: %w", err)
	}
	defer rows.Close()

	result := &UserCountMetrics{DailyCounts: []DailyUserCount{}}
	for rows.Next() {
		var count DailyUserCount
		if err := rows.Scan(&count.Date, &count.Verified, &count.Unverified); err != nil {
			return nil, fmt.Errorf("failed to scan user count: %w", err)
		}
		result.DailyCounts = append(result.DailyCounts, count)
		result.TotalUsers += count.Verified + count.Unverified
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user counts: %w", err)
	}

	return result, nil
}

// UsersByCountry returns the number of users per country, largest first
func (r *SQLiteMetricsRepository) UsersByCountry(ctx context.Context) ([]CountryCount, error) {
	query := `
	SELECT country, COUNT(*) FROM users
	WHERE country != ''
	GROUP BY country ORDER BY COUNT(*) DESC, country`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by country: %w", err)
	}
	defer rows.Close()

	result := []CountryCount{}
	for rows.Next() {
		var count CountryCount
		if err := rows.Scan(&count.Country, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan country count: %w", err)
		}
		result = append(result, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate country counts: %w", err)
	}

	return result, nil
}

// SubscriptionCounts returns the number of subscriptions per plan
func (r *SQLiteMetricsRepository) SubscriptionCounts(ctx context.Context) ([]PlanCount, error) {
	query := `
	SELECT plan, COUNT(*) FROM subscriptions
	GROUP BY plan ORDER BY COUNT(*) DESC, plan`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription counts: %w", err)
	}
	defer rows.Close()

	result := []PlanCount{}
	for rows.Next() {
		var count PlanCount
		if err := rows.Scan(&count.Plan, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan plan count: %w", err)
		}
		result = append(result, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan counts: %w", err)
	}

	return result, nil
}

// CampaignCounts returns daily campaign creation counts
func (r *SQLiteMetricsRepository) CampaignCounts(ctx context.Context) (*CampaignMetrics, error) {
	query := `
	SELECT substr(created_at, 1, 10) AS day,
		SUM(kind = ?), SUM(kind = ?)
	FROM campaigns
	GROUP BY day ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query, KindOutreach, KindSales)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign counts: %w", err)
	}
	defer rows.Close()

	result := &CampaignMetrics{DailyCounts: []DailyCampaignCount{}}
	for rows.Next() {
		var count DailyCampaignCount
		if err := rows.Scan(&count.Date, &count.Outreach, &count.Sales); err != nil {
			return nil, fmt.Errorf("failed to scan campaign count: %w", err)
		}
		result.DailyCounts = append(result.DailyCounts, count)
		result.TotalOutreach += count.Outreach
		result.TotalSales += count.Sales
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaign counts: %w", err)
	}

	return result, nil
}

// ConversationCounts returns daily conversation counts
func (r *SQLiteMetricsRepository) ConversationCounts(ctx context.Context) (*ConversationMetrics, error) {
	query := `
	SELECT substr(created_at, 1, 10) AS day,
		SUM(kind = ?), SUM(kind = ?), SUM(kind = ?), SUM(kind = ?)
	FROM conversations
	GROUP BY day ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query, KindOutreach, KindSales, KindWebAgents, KindWebAgentChat)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation counts: %w", err)
	}
	defer rows.Close()

	result := &ConversationMetrics{DailyCounts: []DailyConversationCount{}}
	for rows.Next() {
		var count DailyConversationCount
		if err := rows.Scan(&count.Date, &count.Outreach, &count.Sales, &count.WebAgents, &count.WebAgentChat); err != nil {
			return nil, fmt.Errorf("failed to scan conversation count: %w", err)
		}
		result.DailyCounts = append(result.DailyCounts, count)
		result.TotalOutreach += count.Outreach
		result.TotalSales += count.Sales
		result.TotalWebAgents += count.WebAgents
		result.TotalWebAgentChat += count.WebAgentChat
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversation counts: %w", err)
	}

	return result, nil
}

// AppointmentCounts returns daily appointment counts
func (r *SQLiteMetricsRepository) AppointmentCounts(ctx context.Context) (*AppointmentMetrics, error) {
	query := `
	SELECT substr(created_at, 1, 10) AS day, COUNT(*)
	FROM appointments
	GROUP BY day ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment counts: %w", err)
	}
	defer rows.Close()

	result := &AppointmentMetrics{DailyAppointments: []DailyAppointmentCount{}}
	for rows.Next() {
		var count DailyAppointmentCount
		if err := rows.Scan(&count.Date, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan appointment count: %w", err)
		}
		result.DailyAppointments = append(result.DailyAppointments, count)
		result.TotalAppointments += count.Count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointment counts: %w", err)
	}

	return result, nil
}

// PlanChanges returns monthly upgrade and downgrade counts
func (r *SQLiteMetricsRepository) PlanChanges(ctx context.Context) ([]PlanChangeCount, error) {
	query := `
	SELECT CAST(substr(created_at, 6, 2) AS INTEGER) AS month,
		CAST(substr(created_at, 1, 4) AS INTEGER) AS year,
		SUM(direction = ?), SUM(direction = ?)
	FROM plan_changes
	GROUP BY year, month ORDER BY year, month`

	rows, err := r.db.QueryContext(ctx, query, DirectionUpgrade, DirectionDowngrade)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan changes: %w", err)
	}
	defer rows.Close()

	result := []PlanChangeCount{}
	for rows.Next() {
		var count PlanChangeCount
		if err := rows.Scan(&count.Month, &count.Year, &count.Upgraded, &count.Downgraded); err != nil {
			return nil, fmt.Errorf("failed to scan plan change count: %w", err)
		}
		result = append(result, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan changes: %w", err)
	}

	return result, nil
}

// RecordSubscription stores a subscription for a user
func (r *SQLiteMetricsRepository) RecordSubscription(ctx context.Context, userID int64, plan string, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO subscriptions (user_id, plan, created_at) VALUES (?, ?, ?)",
		userID, plan, db.TimeToString(createdAt))
	if err != nil {
		return fmt.Errorf("failed to record subscription: %w", err)
	}
	return nil
}

// RecordCampaign stores a campaign creation event
func (r *SQLiteMetricsRepository) RecordCampaign(ctx context.Context, kind string, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO campaigns (kind, created_at) VALUES (?, ?)",
		kind, db.TimeToString(createdAt))
	if err != nil {
		return fmt.Errorf("failed to record campaign: %w", err)
	}
	return nil
}

// RecordConversation stores a conversation start event
func (r *SQLiteMetricsRepository) RecordConversation(ctx context.Context, kind string, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO conversations (kind, created_at) VALUES (?, ?)",
		kind, db.TimeToString(createdAt))
	if err != nil {
		return fmt.Errorf("failed to record conversation: %w", err)
	}
	return nil
}

// RecordAppointment stores an appointment booking event
func (r *SQLiteMetricsRepository) RecordAppointment(ctx context.Context, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO appointments (created_at) VALUES (?)",
		db.TimeToString(createdAt))
	if err != nil {
		return fmt.Errorf("failed to record appointment: %w", err)
	}
	return nil
}

// RecordPlanChange stores a plan upgrade or downgrade for a user
func (r *SQLiteMetricsRepository) RecordPlanChange(ctx context.Context, userID int64, direction string, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO plan_changes (user_id, direction, created_at) VALUES (?, ?, ?)",
		userID, direction, db.TimeToString(createdAt))
	if err != nil {
		return fmt.Errorf("failed to record plan change: %w", err)
	}
	return nil
}
