package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/guttosm/msepulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// PriceFilter narrows a daily_prices read to one ticker.
//
// From and To are inclusive and optional. Limit <= 0 means no limit.
type PriceFilter struct {
	TickerID int64
	From     *models.Date
	To       *models.Date
	Limit    int
}

// PricesRepository defines contract for daily_prices and import_log access.
type PricesRepository interface {
	QueryPrices(ctx context.Context, f PriceFilter) ([]models.PriceRecord, error)
	LatestPrices(ctx context.Context, tickerID int64, n int) ([]models.PriceRecord, error)
	InsertPricesBatch(ctx context.Context, prices []models.PriceRecord, replace bool) error
	HasImport(ctx context.Context, filename string) (bool, error)
	UpsertImportLog(ctx context.Context, filename string, rowCount int) error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

const priceColumns = `id, counter_id, trade_date, open_mwk, high_mwk, low_mwk, close_mwk, volume`

// QueryPrices returns matching rows ordered by trade_date then insertion
// order, so a LIMIT always keeps the same rows.
func (r *pricesRepository) QueryPrices(ctx context.Context, f PriceFilter) ([]models.PriceRecord, error) {
	// $1 is always the ticker id. Subsequent placeholders depend on provided filters.
	conditions := "counter_id = $1"
	args := []interface{}{f.TickerID}
	if f.From != nil {
		args = append(args, f.From.Time)
		conditions += fmt.Sprintf(" AND trade_date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, f.To.Time)
		conditions += fmt.Sprintf(" AND trade_date <= $%d", len(args))
	}

	query := fmt.Sprintf(`SELECT %s FROM daily_prices WHERE %s ORDER BY trade_date ASC, id ASC`, priceColumns, conditions)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily prices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanPrices(rows)
}

// LatestPrices returns up to n rows, most recent first. Same-day rows are
// ordered by insertion, latest insert first.
func (r *pricesRepository) LatestPrices(ctx context.Context, tickerID int64, n int) ([]models.PriceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+priceColumns+` FROM daily_prices WHERE counter_id = $1 ORDER BY trade_date DESC, id DESC LIMIT $2`,
		tickerID, n)
	if err != nil {
		return nil, fmt.Errorf("query latest prices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanPrices(rows)
}

func scanPrices(rows *sql.Rows) ([]models.PriceRecord, error) {
	out := make([]models.PriceRecord, 0)
	for rows.Next() {
		var (
			rec                         models.PriceRecord
			tradeDate                   time.Time
			openPx, highPx, lowPx, clPx sql.NullFloat64
			volume                      sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.TickerID, &tradeDate, &openPx, &highPx, &lowPx, &clPx, &volume); err != nil {
			return nil, fmt.Errorf("scan daily price: %w", err)
		}
		rec.TradeDate = models.DateOf(tradeDate)
		rec.Open = finiteOrNil(openPx)
		rec.High = finiteOrNil(highPx)
		rec.Low = finiteOrNil(lowPx)
		rec.Close = finiteOrNil(clPx)
		if volume.Valid {
			v := volume.Int64
			rec.Volume = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily prices: %w", err)
	}
	return out, nil
}

// finiteOrNil maps SQL NULL, NaN and ±Inf to nil.
func finiteOrNil(v sql.NullFloat64) *float64 {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return nil
	}
	f := v.Float64
	return &f
}

// InsertPricesBatch bulk-loads prices in a single transaction.
//
// With replace set, rows already stored for each ticker inside the date
// window covered by prices are deleted first, in the same transaction,
// under a transaction-scoped advisory lock on each ticker id.
func (r *pricesRepository) InsertPricesBatch(ctx context.Context, prices []models.PriceRecord, replace bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if replace {
		windows := priceWindows(prices)
		// Concurrent replaces of overlapping windows would each delete only
		// what their snapshot sees. Serialize per ticker, in ascending id
		// order so two batches never wait on each other in a cycle.
		for _, w := range windows {
			if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, w.tickerID); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("lock ticker %d: %w", w.tickerID, err)
			}
		}
		for _, w := range windows {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM daily_prices WHERE counter_id = $1 AND trade_date BETWEEN $2 AND $3`,
				w.tickerID, w.from, w.to); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"daily_prices",
		"counter_id",
		"trade_date",
		"open_mwk",
		"high_mwk",
		"low_mwk",
		"close_mwk",
		"volume",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range prices {
		if _, err := stmt.ExecContext(ctx,
			rec.TickerID,
			rec.TradeDate.Time,
			nullableFloat(rec.Open),
			nullableFloat(rec.High),
			nullableFloat(rec.Low),
			nullableFloat(rec.Close),
			nullableInt(rec.Volume),
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

type priceWindow struct {
	tickerID int64
	from, to time.Time
}

// priceWindows returns the [min, max] trade date per ticker, ordered by ticker id.
func priceWindows(prices []models.PriceRecord) []priceWindow {
	byTicker := map[int64]*priceWindow{}
	for _, p := range prices {
		w, ok := byTicker[p.TickerID]
		if !ok {
			byTicker[p.TickerID] = &priceWindow{tickerID: p.TickerID, from: p.TradeDate.Time, to: p.TradeDate.Time}
			continue
		}
		if p.TradeDate.Before(w.from) {
			w.from = p.TradeDate.Time
		}
		if p.TradeDate.After(w.to) {
			w.to = p.TradeDate.Time
		}
	}
	out := make([]priceWindow, 0, len(byTicker))
	for _, w := range byTicker {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].tickerID < out[j].tickerID })
	return out
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// HasImport checks if a file was already recorded in import_log.
func (r *pricesRepository) HasImport(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM import_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertImportLog records (or refreshes) an import entry for a file.
func (r *pricesRepository) UpsertImportLog(ctx context.Context, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO import_log (filename, row_count)
		VALUES ($1, $2)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  imported_at = NOW()
	`, filename, rowCount)
	return err
}
