package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/msepulse/internal/domain/models"
)

// TickersRepository defines contract for the tickers reference table.
type TickersRepository interface {
	FindIDsBySymbol(ctx context.Context, symbol string) ([]int64, error)
	ListTickers(ctx context.Context, sector string) ([]models.Ticker, error)
	CompanyDetail(ctx context.Context, tickerID int64) (*models.CompanyDetail, error)
	UpsertTickers(ctx context.Context, tickers []models.Ticker) error
}

type tickersRepository struct {
	db *sql.DB
}

func NewTickersRepository(db *sql.DB) TickersRepository {
	return &tickersRepository{db: db}
}

// FindIDsBySymbol returns every counter_id whose symbol matches
// case-insensitively, smallest first. More than one id means the reference
// data holds duplicate symbols.
func (r *tickersRepository) FindIDsBySymbol(ctx context.Context, symbol string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT counter_id FROM tickers WHERE LOWER(ticker) = LOWER($1) ORDER BY counter_id`,
		strings.TrimSpace(symbol))
	if err != nil {
		return nil, fmt.Errorf("query ticker ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan ticker id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticker ids: %w", err)
	}
	return ids, nil
}

// ListTickers returns all tickers ordered by symbol. A non-empty sector is
// matched trimmed and case-insensitively.
func (r *tickersRepository) ListTickers(ctx context.Context, sector string) ([]models.Ticker, error) {
	query := `SELECT counter_id, ticker, name, sector, date_listed FROM tickers`
	var args []interface{}
	if s := strings.TrimSpace(sector); s != "" {
		query += ` WHERE LOWER(TRIM(sector)) = LOWER($1)`
		args = append(args, s)
	}
	query += ` ORDER BY ticker, counter_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tickers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Ticker, 0)
	for rows.Next() {
		var (
			t          models.Ticker
			sec        sql.NullString
			dateListed sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.Symbol, &t.Name, &sec, &dateListed); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		applyNullable(&t, sec, dateListed)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickers: %w", err)
	}
	return out, nil
}

// CompanyDetail loads one ticker and counts its price rows. It returns nil,
// nil when the id does not exist.
func (r *tickersRepository) CompanyDetail(ctx context.Context, tickerID int64) (*models.CompanyDetail, error) {
	var (
		d          models.CompanyDetail
		sec        sql.NullString
		dateListed sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT t.counter_id, t.ticker, t.name, t.sector, t.date_listed,
		       (SELECT COUNT(*) FROM daily_prices d WHERE d.counter_id = t.counter_id) AS total_records
		FROM tickers t
		WHERE t.counter_id = $1
	`, tickerID).Scan(&d.Company.ID, &d.Company.Symbol, &d.Company.Name, &sec, &dateListed, &d.TotalRecords)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query company detail: %w", err)
	}
	applyNullable(&d.Company, sec, dateListed)
	return &d, nil
}

func applyNullable(t *models.Ticker, sector sql.NullString, dateListed sql.NullTime) {
	if sector.Valid {
		s := sector.String
		t.Sector = &s
	}
	if dateListed.Valid {
		d := models.DateOf(dateListed.Time)
		t.DateListed = &d
	}
}

// UpsertTickers inserts or refreshes reference rows keyed by symbol.
func (r *tickersRepository) UpsertTickers(ctx context.Context, tickers []models.Ticker) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tickers (ticker, name, sector, date_listed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticker) DO UPDATE SET
			name = EXCLUDED.name,
			sector = EXCLUDED.sector,
			date_listed = EXCLUDED.date_listed
	`)
	if err != nil {
		return fmt.Errorf("prepare ticker upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range tickers {
		var sector, listed interface{}
		if t.Sector != nil {
			sector = *t.Sector
		}
		if t.DateListed != nil {
			listed = t.DateListed.Time
		}
		if _, err := stmt.ExecContext(ctx, t.Symbol, t.Name, sector, listed); err != nil {
			return fmt.Errorf("upsert ticker %s: %w", t.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
