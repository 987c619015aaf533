package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chatbot/internal/database"
	"chatbot/internal/domain"

	"go.uber.org/zap"
)

// ErrStoreUnavailable marks failures of the exchange store itself, as opposed
// to bad input.
var ErrStoreUnavailable = errors.New("exchange store unavailable")

// SQLExchangeRepository is the database/sql implementation of
// domain.ExchangeRepository. It works with both SQLite and PostgreSQL.
type SQLExchangeRepository struct {
	db      *sql.DB
	dialect database.Dialect
	logger  *zap.Logger
}

// NewSQLExchangeRepository creates a repository over an opened store.
func NewSQLExchangeRepository(db *database.DB, logger *zap.Logger) *SQLExchangeRepository {
	return &SQLExchangeRepository{db: db.DB, dialect: db.Dialect, logger: logger}
}

var _ domain.ExchangeRepository = (*SQLExchangeRepository)(nil)

// Record appends one exchange. The store assigns the id and the timestamp.
// A dedicated connection is held for the write and released on every path.
func (r *SQLExchangeRepository) Record(ctx context.Context, userMessage, botResponse string) (domain.Exchange, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("%w: acquire connection: %w", ErrStoreUnavailable, err)
	}
	defer conn.Close()

	query := fmt.Sprintf(`
    INSERT INTO conversations (user_message, bot_response)
    VALUES (%s, %s)
    RETURNING id, timestamp`, r.dialect.Placeholder(1), r.dialect.Placeholder(2))

	ex := domain.Exchange{UserMessage: userMessage, BotResponse: botResponse}
	var ts storeTime
	if err := conn.QueryRowContext(ctx, query, userMessage, botResponse).Scan(&ex.ID, &ts); err != nil {
		return domain.Exchange{}, fmt.Errorf("%w: save exchange: %w", ErrStoreUnavailable, err)
	}
	ex.Timestamp = ts.Time

	r.logger.Debug("exchange saved", zap.Int64("id", ex.ID), zap.Time("timestamp", ex.Timestamp))
	return ex, nil
}

// List returns the newest limit exchanges in ascending id order.
// A non-positive limit returns the whole log.
func (r *SQLExchangeRepository) List(ctx context.Context, limit int) ([]domain.Exchange, error) {
	query := `
    SELECT id, user_message, bot_response, timestamp
    FROM conversations
    ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT " + r.dialect.Placeholder(1)
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query exchanges: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Exchange
	for rows.Next() {
		var ex domain.Exchange
		var ts storeTime
		if err := rows.Scan(&ex.ID, &ex.UserMessage, &ex.BotResponse, &ts); err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		ex.Timestamp = ts.Time
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate exchanges: %w", ErrStoreUnavailable, err)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Count returns the number of logged exchanges.
func (r *SQLExchangeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count exchanges: %w", ErrStoreUnavailable, err)
	}
	return n, nil
}

// Ping reports whether the store answers.
func (r *SQLExchangeRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// sqlite hands DATETIME columns back as text or time.Time depending on how the
// value was produced; postgres always returns time.Time.
type storeTime struct {
	time.Time
}

var storeTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05Z07:00",
	time.RFC3339Nano,
}

func (t *storeTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *storeTime) parse(s string) error {
	for _, layout := range storeTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
