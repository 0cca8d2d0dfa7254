package service

import (
	"context"
	"strings"
	"time"

	"github.com/guttosm/msepulse/internal/domain/apperr"
	"github.com/guttosm/msepulse/internal/domain/models"
	"github.com/guttosm/msepulse/internal/storage"
)

// PriceService answers price and company queries for a ticker symbol.
//
// Every method resolves the symbol first, so an unknown ticker surfaces as
// a not-found error before any price query runs.
type PriceService interface {
	// DailyPrices returns records inside the optional inclusive date window,
	// oldest first, truncated to the effective limit.
	DailyPrices(ctx context.Context, q models.PriceQuery) ([]models.PriceRecord, error)
	// PricesForPeriod returns a calendar year, or one month of it.
	PricesForPeriod(ctx context.Context, symbol string, year int, month *int) ([]models.PriceRecord, error)
	// LatestPrice compares the two most recent closes.
	LatestPrice(ctx context.Context, symbol string) (*models.PriceDelta, error)
	// CompanyDetail returns the ticker row and its number of price records.
	CompanyDetail(ctx context.Context, symbol string) (*models.CompanyDetail, error)
}

type priceService struct {
	resolver TickerResolver
	prices   storage.PricesRepository
	tickers  storage.TickersRepository
}

// NewPriceService wires the price queries to a resolver and the two repositories.
func NewPriceService(resolver TickerResolver, prices storage.PricesRepository, tickers storage.TickersRepository) PriceService {
	return &priceService{resolver: resolver, prices: prices, tickers: tickers}
}

// DailyPrices validates q before resolving, so malformed queries never
// reach the database.
func (s *priceService) DailyPrices(ctx context.Context, q models.PriceQuery) ([]models.PriceRecord, error) {
	q.Symbol = strings.TrimSpace(q.Symbol)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	id, err := s.resolver.Resolve(ctx, q.Symbol)
	if err != nil {
		return nil, err
	}

	out, err := s.prices.QueryPrices(ctx, storage.PriceFilter{
		TickerID: id,
		From:     q.StartDate,
		To:       q.EndDate,
		Limit:    q.EffectiveLimit(),
	})
	if err != nil {
		return nil, apperr.Upstream("failed to query daily prices", err)
	}
	return out, nil
}

// PricesForPeriod returns every record of a calendar year, or of one month
// of it when month is set, oldest first.
func (s *priceService) PricesForPeriod(ctx context.Context, symbol string, year int, month *int) ([]models.PriceRecord, error) {
	from, to, err := periodWindow(year, month)
	if err != nil {
		return nil, err
	}
	id, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}

	out, err := s.prices.QueryPrices(ctx, storage.PriceFilter{TickerID: id, From: &from, To: &to})
	if err != nil {
		return nil, apperr.Upstream("failed to query prices for period", err)
	}
	return out, nil
}

// periodWindow translates year and optional month into an inclusive date range.
func periodWindow(year int, month *int) (models.Date, models.Date, error) {
	if year < 1 || year > 9999 {
		return models.Date{}, models.Date{}, apperr.Validation("year must be between 1 and 9999")
	}
	if month == nil {
		return models.NewDate(year, time.January, 1), models.NewDate(year, time.December, 31), nil
	}
	if *month < 1 || *month > 12 {
		return models.Date{}, models.Date{}, apperr.Validation("month must be between 1 and 12")
	}
	m := time.Month(*month)
	first := models.NewDate(year, m, 1)
	last := models.DateOf(first.AddDate(0, 1, -1))
	return first, last, nil
}

// LatestPrice reports a not-found error when the ticker exists but has no
// stored prices.
func (s *priceService) LatestPrice(ctx context.Context, symbol string) (*models.PriceDelta, error) {
	id, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}
	recs, err := s.prices.LatestPrices(ctx, id, 2)
	if err != nil {
		return nil, apperr.Upstream("failed to query latest prices", err)
	}
	if len(recs) == 0 {
		return nil, apperr.NotFound("no price history for ticker %q", strings.TrimSpace(symbol))
	}
	return ComputeDelta(strings.TrimSpace(symbol), recs), nil
}

// CompanyDetail treats a ticker removed between resolve and load as not found.
func (s *priceService) CompanyDetail(ctx context.Context, symbol string) (*models.CompanyDetail, error) {
	id, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}
	d, err := s.tickers.CompanyDetail(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("failed to load company", err)
	}
	if d == nil {
		return nil, apperr.NotFound("ticker %q not found", strings.TrimSpace(symbol))
	}
	return d, nil
}
