package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the quote journal operations.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveQuote inserts a quote and sets its ID and CreatedAt.
	SaveQuote(ctx context.Context, quote *Quote) error

	// GetRecentQuotes returns the user's newest quotes, newest first.
	GetRecentQuotes(ctx context.Context, userID int64, limit int) ([]Quote, error)

	// GetQuoteStats counts quotes overall and per category.
	GetQuoteStats(ctx context.Context) (*QuoteStats, error)

	// DeleteQuotesBefore removes quotes created before cutoff and returns
	// how many were removed.
	DeleteQuotesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

const maxRecentQuotes = 50

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveQuote(ctx context.Context, quote *Quote) error {
	if quote == nil {
		return errors.New("cannot save nil quote")
	}
	if quote.UserID == 0 {
		return errors.New("quote must have a non-zero user_id")
	}
	if quote.Category == "" {
		return errors.New("quote must have a category")
	}
	if quote.Price <= 0 {
		return fmt.Errorf("quote must have a positive price, got %d", quote.Price)
	}
	if quote.Source == "" {
		quote.Source = SourceText
	}
	quote.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
		}
	}()

	const query = `
        INSERT INTO quotes (chat_id, user_id, brand, model, year, engine_volume_cc, fuel_type, category, price, source, created_at)
        VALUES (:chat_id, :user_id, :brand, :model, :year, :engine_volume_cc, :fuel_type, :category, :price, :source, :created_at);
    `
	result, err := tx.NamedExecContext(ctx, query, quote)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving quote", "user_id", quote.UserID, "category", quote.Category, "error", err)
		return fmt.Errorf("failed to save quote (user %d): %w", quote.UserID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		//nolint:gosec // row ids are positive
		quote.ID = uint(id)
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving quote", "error", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.DebugContext(ctx, "Quote saved",
		"quote_id", quote.ID, "user_id", quote.UserID, "category", quote.Category, "price", quote.Price)
	return nil
}

func (s *sqlxStore) GetRecentQuotes(ctx context.Context, userID int64, limit int) ([]Quote, error) {
	if userID == 0 {
		return nil, errors.New("user_id cannot be zero")
	}
	if limit <= 0 {
		limit = 5
	} else if limit > maxRecentQuotes {
		limit = maxRecentQuotes
	}

	const query = `
        SELECT id, chat_id, user_id, brand, model, year, engine_volume_cc, fuel_type, category, price, source, created_at
        FROM quotes
        WHERE user_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT ?;
    `
	quotes := []Quote{}
	if err := s.db.SelectContext(ctx, &quotes, query, userID, limit); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get recent quotes for user %d: %w", userID, err)
	}
	return quotes, nil
}

func (s *sqlxStore) GetQuoteStats(ctx context.Context) (*QuoteStats, error) {
	stats := &QuoteStats{ByCategory: []CategoryCount{}}

	row := s.db.QueryRowxContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT user_id) FROM quotes;`)
	if err := row.Scan(&stats.Total, &stats.Users); err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	const byCategory = `
        SELECT category, COUNT(*) AS count
        FROM quotes
        GROUP BY category
        ORDER BY count DESC, category ASC;
    `
	if err := s.db.SelectContext(ctx, &stats.ByCategory, byCategory); err != nil {
		return nil, fmt.Errorf("failed to count quotes per category: %w", err)
	}
	return stats, nil
}

func (s *sqlxStore) DeleteQuotesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, errors.New("cutoff cannot be zero")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE created_at < ?;`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete quotes before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not read affected rows after quote cleanup", "error", err)
		return 0, nil
	}
	return affected, nil
}

// RunSQLMaintenance runs VACUUM and ANALYZE. VACUUM cannot run inside a
// transaction in SQLite, so it goes straight to the pool.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)")

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
		}
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		s.logger.WarnContext(ctx, "ANALYZE failed after VACUUM", "error", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}
