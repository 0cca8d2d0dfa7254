// Package db embeds the goose migrations for the tickers, daily_prices and
// import_log tables.
package db

import "embed"

// Migrations holds every migrations/*.sql file.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads.
const MigrationsDir = "migrations"
