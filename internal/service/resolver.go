package service

import (
	"context"
	"strings"

	"github.com/guttosm/msepulse/internal/domain/apperr"
	"github.com/guttosm/msepulse/internal/domain/models"
	"github.com/guttosm/msepulse/internal/logger"
	"github.com/guttosm/msepulse/internal/storage"
)

// TickerResolver maps user-supplied symbols to ticker identifiers.
type TickerResolver interface {
	// Resolve returns the identifier for symbol. Empty symbols are a
	// validation error and unknown ones a not-found error.
	Resolve(ctx context.Context, symbol string) (int64, error)
	// List returns the listed companies, optionally restricted to a sector.
	List(ctx context.Context, sector string) ([]models.Ticker, error)
}

type tickerResolver struct {
	repo storage.TickersRepository
}

// NewTickerResolver builds a TickerResolver backed by the tickers table.
func NewTickerResolver(repo storage.TickersRepository) TickerResolver {
	return &tickerResolver{repo: repo}
}

// Resolve matches symbol case-insensitively. Duplicate symbols resolve to
// the smallest identifier and are reported as a data-integrity warning.
func (r *tickerResolver) Resolve(ctx context.Context, symbol string) (int64, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return 0, apperr.Validation("ticker is required")
	}

	ids, err := r.repo.FindIDsBySymbol(ctx, symbol)
	if err != nil {
		return 0, apperr.Upstream("failed to resolve ticker", err)
	}
	switch len(ids) {
	case 0:
		return 0, apperr.NotFound("ticker %q not found", symbol)
	case 1:
		return ids[0], nil
	}

	lg := logger.Component("resolver")
	lg.Warn().
		Str("event", "ticker_ambiguous").
		Str("ticker", symbol).
		Ints64("candidates", ids).
		Int64("chosen", ids[0]).
		Msg("duplicate ticker symbol in reference data")
	return ids[0], nil
}

// List returns every ticker, or the ones in sector when it is not blank.
func (r *tickerResolver) List(ctx context.Context, sector string) ([]models.Ticker, error) {
	sector = strings.TrimSpace(sector)
	out, err := r.repo.ListTickers(ctx, sector)
	if err != nil {
		return nil, apperr.Upstream("failed to list companies", err)
	}
	if sector != "" && len(out) == 0 {
		return nil, apperr.NotFound("no companies found in sector %q", sector)
	}
	return out, nil
}
