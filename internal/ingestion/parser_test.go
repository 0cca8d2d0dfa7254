package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	tickerHeader = "ticker,name,sector,date_listed\n"
	priceHeader  = "ticker,trade_date,open,high,low,close,volume\n"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}

func TestParsePricesFile_TableDriven(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name     string
		content  string
		wantErr  string
		wantRows int
	}{
		{name: "ok single row", content: priceHeader + "nico,2024-01-02,18.00,18.50,17.90,18.01,12000\n", wantRows: 1},
		{name: "empty cells", content: priceHeader + "NICO,2024-01-02,,,,,\n", wantRows: 1},
		{name: "thousands separators", content: priceHeader + "AIRTEL,2024-01-02,\"1,850.50\",\"1,860\",1845,\"1,855.01\",\"24,500\"\n", wantRows: 1},
		{name: "header only", content: priceHeader, wantRows: 0},
		{name: "bom and upper-case header", content: "\ufeffTICKER,Trade_Date,open,high,low,close,volume\nNICO,2024-01-02,1,1,1,1,1\n", wantRows: 1},
		{name: "bad header order", content: "trade_date,ticker,open,high,low,close,volume\n", wantErr: "invalid header at col 1"},
		{name: "bad header length", content: "ticker,trade_date,close\n", wantErr: "invalid header length"},
		{name: "bad column count", content: priceHeader + "NICO,2024-01-02,1\n", wantErr: "invalid column count on line 2"},
		{name: "bad date", content: priceHeader + "NICO,02/01/2024,1,1,1,1,1\n", wantErr: "invalid trade_date"},
		{name: "bad price", content: priceHeader + "NICO,2024-01-02,abc,1,1,1,1\n", wantErr: "invalid open"},
		{name: "nan price", content: priceHeader + "NICO,2024-01-02,1,1,1,NaN,1\n", wantErr: "invalid close"},
		{name: "fractional volume", content: priceHeader + "NICO,2024-01-02,1,1,1,1,10.5\n", wantErr: "invalid volume"},
		{name: "empty ticker", content: priceHeader + ",2024-01-02,1,1,1,1,1\n", wantErr: "ticker is empty"},
		{name: "empty file", content: "", wantErr: "read header"},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeTempFile(t, dir, "daily_prices_"+string(rune('a'+i))+".csv", tc.content)
			rows, err := parsePricesFile(context.Background(), p)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rows) != tc.wantRows {
				t.Fatalf("rows=%d want %d", len(rows), tc.wantRows)
			}
		})
	}
}

func TestParsePricesFile_Values(t *testing.T) {
	dir := t.TempDir()
	p := writeTempFile(t, dir, "daily_prices.csv", priceHeader+
		"airtel,2024-01-02,\"1,850.50\",1860,1845,1855.01,\"24,500\"\n"+
		"AIRTEL,2024-01-03,,,,,\n"+
		"AIRTEL,2024-01-04,1,2,0.5,1.5,1200.0\n")

	rows, err := parsePricesFile(context.Background(), p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d", len(rows))
	}

	r0 := rows[0]
	if r0.symbol != "AIRTEL" || r0.line != 2 || r0.rec.TradeDate.String() != "2024-01-02" {
		t.Fatalf("unexpected first row: %+v", r0)
	}
	if r0.rec.Open == nil || *r0.rec.Open != 1850.50 || r0.rec.Close == nil || *r0.rec.Close != 1855.01 {
		t.Fatalf("prices not parsed: %+v", r0.rec)
	}
	if r0.rec.Volume == nil || *r0.rec.Volume != 24500 {
		t.Fatalf("volume not parsed: %+v", r0.rec.Volume)
	}

	r1 := rows[1].rec
	if r1.Open != nil || r1.High != nil || r1.Low != nil || r1.Close != nil || r1.Volume != nil {
		t.Fatalf("empty cells must stay nil: %+v", r1)
	}

	if v := rows[2].rec.Volume; v == nil || *v != 1200 {
		t.Fatalf("whole float volume not accepted: %v", v)
	}
}

func TestParseTickersFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("ok", func(t *testing.T) {
		p := writeTempFile(t, dir, "tickers_ok.csv", tickerHeader+
			"nico,NICO Holdings,Finance,2008-03-04\n"+
			"PCL,Press Corporation,,\n")
		out, err := parseTickersFile(context.Background(), p)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("want 2 tickers got %d", len(out))
		}
		if out[0].Symbol != "NICO" || out[0].Sector == nil || *out[0].Sector != "Finance" || out[0].DateListed.String() != "2008-03-04" {
			t.Fatalf("unexpected first ticker: %+v", out[0])
		}
		if out[1].Sector != nil || out[1].DateListed != nil {
			t.Fatalf("empty cells must stay nil: %+v", out[1])
		}
	})

	for _, tc := range []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "duplicate", content: tickerHeader + "NICO,a,,\nnico,b,,\n", wantErr: "duplicate ticker NICO"},
		{name: "missing name", content: tickerHeader + "NICO,,,\n", wantErr: "name is empty"},
		{name: "bad date", content: tickerHeader + "NICO,NICO Holdings,Finance,04/03/2008\n", wantErr: "invalid date_listed"},
		{name: "bad header", content: "symbol,name,sector,date_listed\n", wantErr: "invalid header"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := writeTempFile(t, dir, "tickers_"+strings.ReplaceAll(tc.name, " ", "_")+".csv", tc.content)
			_, err := parseTickersFile(context.Background(), p)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParsePricesFile_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	p := writeTempFile(t, dir, "daily_prices.csv", priceHeader+"NICO,2024-01-02,1,1,1,1,1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := parsePricesFile(ctx, p); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestParseVolume(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		isNil   bool
		wantErr bool
	}{
		{in: "", isNil: true},
		{in: "  ", isNil: true},
		{in: "42", want: 42},
		{in: "1,000", want: 1000},
		{in: "1200.0", want: 1200},
		{in: "1.5", wantErr: true},
		{in: "x", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "-5.0", wantErr: true},
		{in: "1e20", wantErr: true},
		{in: "9223372036854775808", wantErr: true},
		{in: "9223372036854775807", want: 9223372036854775807},
	}
	for _, c := range cases {
		v, err := parseVolume(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("parseVolume(%q) expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseVolume(%q): %v", c.in, err)
		}
		if c.isNil != (v == nil) || (v != nil && *v != c.want) {
			t.Fatalf("parseVolume(%q)=%v want %d nil=%v", c.in, v, c.want, c.isNil)
		}
	}
}
