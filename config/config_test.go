package config

import (
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded and DSN is constructed.
func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "REQUEST_TIMEOUT", "PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE", "TRUSTED_PROXIES"} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Server.TrustedProxies != nil {
		t.Fatalf("expected no trusted proxies by default, got %v", AppConfig.Server.TrustedProxies)
	}
	if AppConfig.Server.RequestTimeout != 10*time.Second {
		t.Fatalf("expected 10s request timeout, got %v", AppConfig.Server.RequestTimeout)
	}
	pg := AppConfig.Postgres
	if pg.Host != "localhost" || pg.Port != 5432 || pg.User != "postgres" || pg.Password != "" || pg.DBName != "mse" || pg.SSLMode != "disable" {
		t.Fatalf("unexpected defaults: %+v", pg)
	}
	if pg.MaxOpenConns != 10 || pg.MaxIdleConns != 5 || pg.ConnMaxLifetime != 30*time.Minute || pg.ConnectRetries != 3 {
		t.Fatalf("unexpected pool defaults: %+v", pg)
	}
	if want := "postgres://postgres@localhost:5432/mse?sslmode=disable"; pg.DSN() != want {
		t.Fatalf("dsn %q, want %q", pg.DSN(), want)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", " 6543\n")
	t.Setenv("PGUSER", "reader")
	t.Setenv("PGPASSWORD", "p@ss:word")
	t.Setenv("PGDATABASE", "mse_lab")

	LoadConfig()

	pg := AppConfig.Postgres
	if pg.Port != 6543 {
		t.Fatalf("expected sanitized port 6543, got %d", pg.Port)
	}
	if !strings.Contains(pg.DSN(), "reader:p%40ss%3Aword@db.internal:6543/mse_lab") {
		t.Fatalf("credentials not escaped in dsn %q", pg.DSN())
	}
	if strings.Contains(pg.Redacted(), "p%40ss") {
		t.Fatalf("redacted dsn leaks password: %q", pg.Redacted())
	}
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,172.16.0.0/12 ")

	LoadConfig()

	got := AppConfig.Server.TrustedProxies
	if len(got) != 2 || got[0] != "10.0.0.1" || got[1] != "172.16.0.0/12" {
		t.Fatalf("unexpected trusted proxies %v", got)
	}
}

func TestParsePort(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5432", 5432},
		{" 5433 ", 5433},
		{"tcp/6000", 6000},
		{"", 5432},
		{"abc", 5432},
	}
	for _, c := range cases {
		if got := parsePort(c.in); got != c.want {
			t.Fatalf("parsePort(%q)=%d, want %d", c.in, got, c.want)
		}
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
