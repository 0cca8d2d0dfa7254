package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/guttosm/msepulse/internal/domain/models"
)

// tickerHeaders and priceHeaders enforce strict column ordering.
// If a header doesn't match EXACTLY (order + count), the file fails.
var (
	tickerHeaders = []string{"ticker", "name", "sector", "date_listed"}
	priceHeaders  = []string{"ticker", "trade_date", "open", "high", "low", "close", "volume"}
)

// priceRow is one parsed line of a daily prices file, before its symbol is
// resolved to a ticker id.
type priceRow struct {
	line   int
	symbol string
	rec    models.PriceRecord
}

// readCSV opens path, validates its header against want and calls fn for
// every data row with its 1-based line number.
func readCSV(ctx context.Context, path string, want []string, fn func(line int, rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // checked explicitly for better messages
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(want) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(want), len(header))
	}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if !strings.EqualFold(strings.TrimSpace(h), want[i]) {
			return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, want[i], h)
		}
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(want) {
			return fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(want), len(rec))
		}
		if err := fn(line, rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

// parseTickersFile reads tickers.csv. Symbols are upper-cased; empty sector
// and date_listed cells become nil.
func parseTickersFile(ctx context.Context, path string) ([]models.Ticker, error) {
	var out []models.Ticker
	seen := map[string]int{}

	err := readCSV(ctx, path, tickerHeaders, func(line int, rec []string) error {
		t := models.Ticker{
			Symbol: strings.ToUpper(strings.TrimSpace(rec[0])),
			Name:   strings.TrimSpace(rec[1]),
		}
		if t.Symbol == "" {
			return errors.New("ticker is empty")
		}
		if t.Name == "" {
			return fmt.Errorf("name is empty for %s", t.Symbol)
		}
		if prev, dup := seen[t.Symbol]; dup {
			return fmt.Errorf("duplicate ticker %s (first seen on line %d)", t.Symbol, prev)
		}
		seen[t.Symbol] = line

		if s := strings.TrimSpace(rec[2]); s != "" {
			t.Sector = &s
		}
		if s := strings.TrimSpace(rec[3]); s != "" {
			d, err := models.ParseDate(s)
			if err != nil {
				return fmt.Errorf("invalid date_listed: %w", err)
			}
			t.DateListed = &d
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// parsePricesFile reads one daily_prices*.csv file.
//
// It is STRICT about types/format but TOLERATES empty numeric cells, which
// become nil (NULL in the database), never 0.
func parsePricesFile(ctx context.Context, path string) ([]priceRow, error) {
	var out []priceRow

	err := readCSV(ctx, path, priceHeaders, func(line int, rec []string) error {
		row := priceRow{line: line, symbol: strings.ToUpper(strings.TrimSpace(rec[0]))}
		if row.symbol == "" {
			return errors.New("ticker is empty")
		}

		d, err := models.ParseDate(strings.TrimSpace(rec[1]))
		if err != nil {
			return fmt.Errorf("invalid trade_date: %w", err)
		}
		row.rec.TradeDate = d

		for i, dst := range []**float64{&row.rec.Open, &row.rec.High, &row.rec.Low, &row.rec.Close} {
			v, err := parseDecimal(rec[2+i])
			if err != nil {
				return fmt.Errorf("invalid %s: %w", priceHeaders[2+i], err)
			}
			*dst = v
		}

		vol, err := parseVolume(rec[6])
		if err != nil {
			return fmt.Errorf("invalid volume: %w", err)
		}
		row.rec.Volume = vol

		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// cleanNumber trims s and drops thousands separators ("1,234.50" -> "1234.50").
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, ",", "")
}

func parseDecimal(s string) (*float64, error) {
	s = cleanNumber(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("non-finite value %q", s)
	}
	return &v, nil
}

// parseVolume accepts non-negative whole numbers, including "1200.0" as some
// exports write them.
func parseVolume(s string) (*int64, error) {
	s = cleanNumber(s)
	if s == "" {
		return nil, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return nil, fmt.Errorf("volume %q is negative", s)
		}
		return &v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("volume %q is not a whole number", s)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f < 0 || f >= math.MaxInt64 {
		return nil, fmt.Errorf("volume %q is out of range", s)
	}
	v := int64(f)
	return &v, nil
}
