package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/msepulse/internal/domain/apperr"
	"github.com/guttosm/msepulse/internal/domain/models"
	"github.com/guttosm/msepulse/internal/logger"
	"github.com/guttosm/msepulse/internal/service"
	"github.com/guttosm/msepulse/internal/storage"
)

const (
	tickersFile   = "tickers.csv"
	pricesPattern = "daily_prices*.csv"
	maxParallel   = 4
)

// repoCtor is an indirection for creating the repositories; tests can override this.
var repoCtor = func(db *sql.DB) (storage.TickersRepository, storage.PricesRepository) {
	return storage.NewTickersRepository(db), storage.NewPricesRepository(db)
}

// ProcessDirectory loads reference data and daily prices from dir.
//
//   - dir: directory containing tickers.csv and daily_prices*.csv files.
//   - db:  open *sql.DB (PostgreSQL).
//
// Behavior:
//   - tickers.csv, when present, is upserted first so price files can refer to new symbols.
//   - Price files run concurrently, at most parallel at a time (0 = min(NumCPU, 4)).
//   - A file already recorded in import_log is skipped unless force is set. With force,
//     the rows it covers are replaced in the same transaction.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	tickers, prices := repoCtor(db)
	lg := logger.Component("importer")

	tickersPath := filepath.Join(dir, tickersFile)
	hasTickers := true
	if _, err := os.Stat(tickersPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat failed for %s: %w", tickersPath, err)
		}
		hasTickers = false
	}

	files, err := filepath.Glob(filepath.Join(dir, pricesPattern))
	if err != nil {
		return fmt.Errorf("list price files: %w", err)
	}
	sort.Strings(files)

	if !hasTickers && len(files) == 0 {
		return fmt.Errorf("no %s or %s files in %s", tickersFile, pricesPattern, dir)
	}

	if hasTickers {
		start := time.Now()
		list, err := parseTickersFile(ctx, tickersPath)
		if err != nil {
			return fmt.Errorf("file %s: %w", tickersPath, err)
		}
		if err := tickers.UpsertTickers(ctx, list); err != nil {
			return fmt.Errorf("file %s: upsert tickers: %w", tickersPath, err)
		}
		lg.Info().Str("file", tickersFile).Int("rows", len(list)).Dur("elapsed", time.Since(start)).Msg("tickers loaded")
	}

	workers := workerCount(parallel)
	lg.Info().Int("files", len(files)).Int("max_parallel", workers).Str("dir", dir).Bool("force", force).Msg("import start")

	resolver := service.NewTickerResolver(tickers)

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range files {
		idx, f := i, file
		g.Go(func() error {
			return importPricesFile(gctx, f, idx+1, len(files), resolver, prices, force)
		})
	}

	return g.Wait()
}

func workerCount(parallel int) int {
	if parallel > 0 {
		return parallel
	}
	if c := runtime.NumCPU(); c < maxParallel {
		return c
	}
	return maxParallel
}

// importPricesFile parses one price file, resolves its symbols and stores
// the rows in a single transaction.
func importPricesFile(ctx context.Context, path string, idx, total int, resolver service.TickerResolver, repo storage.PricesRepository, force bool) error {
	lg := logger.Component("importer")
	start := time.Now()
	base := filepath.Base(path)

	// Idempotency: skip if already imported, unless force
	exists, err := repo.HasImport(ctx, base)
	if err != nil {
		lg.Error().Str("file", base).Err(err).Msg("check import log failed")
		return fmt.Errorf("file %s: check import log: %w", path, err)
	}
	if exists && !force {
		lg.Info().Int("idx", idx).Int("total", total).Str("file", base).Bool("skipped", true).Msg("already imported")
		return nil
	}

	rows, err := parsePricesFile(ctx, path)
	if err != nil {
		lg.Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
		return fmt.Errorf("file %s: %w", path, err)
	}

	recs, err := resolveRows(ctx, resolver, rows)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			lg.Warn().Str("event", "unknown_ticker").Str("file", base).Err(err).Msg("price file refers to a ticker missing from tickers.csv")
		} else {
			lg.Error().Str("file", base).Err(err).Msg("resolve tickers failed")
		}
		return fmt.Errorf("file %s: %w", path, err)
	}

	if len(recs) > 0 {
		if err := repo.InsertPricesBatch(ctx, recs, force); err != nil {
			lg.Error().Str("file", base).Err(err).Msg("insert failed")
			return fmt.Errorf("file %s: insert prices: %w", path, err)
		}
	}
	if err := repo.UpsertImportLog(ctx, base, len(recs)); err != nil {
		lg.Error().Str("file", base).Err(err).Msg("update import log failed")
		return fmt.Errorf("file %s: upsert import log: %w", path, err)
	}

	lg.Info().Int("idx", idx).Int("total", total).Str("file", base).Int("rows", len(recs)).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
	return nil
}

// resolveRows maps each row's symbol to a ticker id, resolving each distinct
// symbol once.
func resolveRows(ctx context.Context, resolver service.TickerResolver, rows []priceRow) ([]models.PriceRecord, error) {
	memo := make(map[string]int64)
	out := make([]models.PriceRecord, 0, len(rows))
	for _, row := range rows {
		id, ok := memo[row.symbol]
		if !ok {
			var err error
			id, err = resolver.Resolve(ctx, row.symbol)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", row.line, err)
			}
			memo[row.symbol] = id
		}
		rec := row.rec
		rec.TickerID = id
		out = append(out, rec)
	}
	return out, nil
}
