package config

import (
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as HTTP server behaviour and the PostgreSQL connection.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	REQUEST_TIMEOUT=10s
//	TRUSTED_PROXIES=10.0.0.0/8
//	PGHOST=localhost
//	PGPORT=5432
//	PGUSER=postgres
//	PGPASSWORD=secret
//	PGDATABASE=mse
//	PGSSLMODE=disable
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Deadline applied to every request context
	RateLimitRPS   float64       // Sustained requests per second allowed per client IP
	RateLimitBurst int           // Burst size per client IP
	TrustedProxies []string      // Proxy IPs/CIDRs whose X-Forwarded-For is honoured; empty trusts none
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host, Port, User, Password, DBName, SSLMode: libpq-style connection parameters.
//   - MaxOpenConns, MaxIdleConns, ConnMaxLifetime: database/sql pool limits.
//   - ConnectRetries: extra ping attempts at startup before giving up.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  int
}

// DSN builds a postgres:// connection string. Credentials are URL-escaped,
// and the password is omitted entirely when empty (trust/peer auth).
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.DBName,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	} else {
		u.User = url.User(p.User)
	}
	return u.String()
}

// Redacted returns the DSN with the password masked, safe for logs.
func (p PostgresConfig) Redacted() string {
	if p.Password == "" {
		return p.DSN()
	}
	masked := p
	masked.Password = "xxxxx"
	return masked.DSN()
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// The PG* variable names follow the libpq convention so the same .env works
// with psql.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("TRUSTED_PROXIES", "")

	viper.SetDefault("PGHOST", "localhost")
	viper.SetDefault("PGPORT", "5432")
	viper.SetDefault("PGUSER", "postgres")
	viper.SetDefault("PGPASSWORD", "")
	viper.SetDefault("PGDATABASE", "mse")
	viper.SetDefault("PGSSLMODE", "disable")
	viper.SetDefault("PG_MAX_OPEN_CONNS", 10)
	viper.SetDefault("PG_MAX_IDLE_CONNS", 5)
	viper.SetDefault("PG_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("PG_CONNECT_RETRIES", 3)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           strings.TrimSpace(viper.GetString("SERVER_PORT")),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
			TrustedProxies: splitList(viper.GetString("TRUSTED_PROXIES")),
		},
		Postgres: PostgresConfig{
			Host:            strings.TrimSpace(viper.GetString("PGHOST")),
			Port:            parsePort(viper.GetString("PGPORT")),
			User:            strings.TrimSpace(viper.GetString("PGUSER")),
			Password:        strings.TrimSpace(viper.GetString("PGPASSWORD")),
			DBName:          strings.TrimSpace(viper.GetString("PGDATABASE")),
			SSLMode:         strings.TrimSpace(viper.GetString("PGSSLMODE")),
			MaxOpenConns:    viper.GetInt("PG_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("PG_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("PG_CONN_MAX_LIFETIME"),
			ConnectRetries:  viper.GetInt("PG_CONNECT_RETRIES"),
		},
	}

	validateConfig()
}

// splitList turns "10.0.0.1, 10.1.0.0/16" into its trimmed, non-empty items.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parsePort keeps only the digits of raw ("5432 " and "tcp/5432" both yield 5432).
// Anything without digits falls back to 5432.
func parsePort(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 5432
	}
	port, err := strconv.Atoi(b.String())
	if err != nil {
		return 5432
	}
	return port
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "PGHOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "PGPORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "PGUSER")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "PGDATABASE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
