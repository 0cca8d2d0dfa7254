//go:build integration
// +build integration

package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/msepulse/internal/pgtest"
)

func TestIngestion_EndToEnd_ProcessDirectory(t *testing.T) {
	pg := pgtest.Start(t)

	tdir := t.TempDir()
	writeTempFile(t, tdir, "tickers.csv", tickerHeader+"NICO,NICO Holdings,Finance,2008-03-04\n")
	writeTempFile(t, tdir, "daily_prices_2024.csv", priceHeader+
		"NICO,2024-01-02,18,18.5,17.9,18.01,12000\n"+
		"NICO,2024-01-03,,,,,\n")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := ProcessDirectory(ctx, tdir, pg.DB, 2, false); err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}

	count := func() int {
		var n int
		if err := pg.DB.QueryRow(`SELECT COUNT(*) FROM daily_prices d JOIN tickers t USING (counter_id) WHERE t.ticker = 'NICO'`).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		return n
	}
	if n := count(); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}

	var nulls int
	if err := pg.DB.QueryRow(`SELECT COUNT(*) FROM daily_prices WHERE close_mwk IS NULL AND volume IS NULL`).Scan(&nulls); err != nil {
		t.Fatalf("nulls: %v", err)
	}
	if nulls != 1 {
		t.Fatalf("empty cells must import as NULL, got %d null rows", nulls)
	}

	// second run is a no-op, forced run replaces instead of duplicating
	if err := ProcessDirectory(ctx, tdir, pg.DB, 1, false); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if err := ProcessDirectory(ctx, tdir, pg.DB, 1, true); err != nil {
		t.Fatalf("forced run: %v", err)
	}
	if n := count(); n != 2 {
		t.Fatalf("expected 2 rows after re-runs, got %d", n)
	}
}
