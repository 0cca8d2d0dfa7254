//go:build integration
// +build integration

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guttosm/msepulse/config"
	"github.com/guttosm/msepulse/internal/app"
	"github.com/guttosm/msepulse/internal/pgtest"
)

func TestAPI_E2E(t *testing.T) {
	pg := pgtest.Start(t)
	pg.Exec(t,
		`INSERT INTO tickers (ticker, name, sector) VALUES ('AIRTEL', 'Airtel Malawi', 'Telecommunication'), ('NICO', 'NICO Holdings', ' Finance ')`,
		`INSERT INTO daily_prices (counter_id, trade_date, close_mwk) SELECT counter_id, '2024-01-01', 100 FROM tickers WHERE ticker = 'AIRTEL'`,
		`INSERT INTO daily_prices (counter_id, trade_date, close_mwk) SELECT counter_id, '2024-01-02', 110 FROM tickers WHERE ticker = 'AIRTEL'`,
	)

	// Point application config to containerized DB
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig.Postgres.Host = pg.Host
	config.AppConfig.Postgres.Port = pg.Port
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "mse"
	config.AppConfig.Postgres.SSLMode = "disable"

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	get := func(path string) (int, map[string]any) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		return w.Code, body
	}

	code, body := get("/prices/latest?ticker=airtel")
	if code != http.StatusOK || body["change_percentage"] != "10.000%" || body["latest_date"] != "2024-01-02" {
		t.Fatalf("latest: %d %v", code, body)
	}

	code, body = get("/prices/daily?ticker=AIRTEL&limit=1")
	if code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("daily: %d %v", code, body)
	}

	code, body = get("/companies?sector=finance")
	if code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("sector: %d %v", code, body)
	}

	code, body = get("/companies/AIRTEL")
	if code != http.StatusOK || body["total_records"] != float64(2) {
		t.Fatalf("company: %d %v", code, body)
	}

	if code, _ = get("/prices/latest?ticker=XYZ"); code != http.StatusNotFound {
		t.Fatalf("unknown ticker: %d", code)
	}
	if code, _ = get("/prices/latest?ticker=NICO"); code != http.StatusNotFound {
		t.Fatalf("no history: %d", code)
	}
	if code, _ = get("/readyz"); code != http.StatusOK {
		t.Fatalf("readyz: %d", code)
	}
}
