package service

import (
	"context"
	"strings"

	"github.com/guttosm/msepulse/internal/domain/models"
	"github.com/guttosm/msepulse/internal/storage"
)

type stubTickers struct {
	ids     map[string][]int64
	list    []models.Ticker
	detail  *models.CompanyDetail
	err     error
	sectors []string
}

func (s *stubTickers) FindIDsBySymbol(_ context.Context, symbol string) ([]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids[strings.ToUpper(symbol)], nil
}

func (s *stubTickers) ListTickers(_ context.Context, sector string) ([]models.Ticker, error) {
	s.sectors = append(s.sectors, sector)
	return s.list, s.err
}

func (s *stubTickers) CompanyDetail(_ context.Context, _ int64) (*models.CompanyDetail, error) {
	return s.detail, s.err
}

func (s *stubTickers) UpsertTickers(_ context.Context, _ []models.Ticker) error { return nil }

type stubPrices struct {
	recs    []models.PriceRecord
	err     error
	filter  storage.PriceFilter
	latestN int
}

func (s *stubPrices) QueryPrices(_ context.Context, f storage.PriceFilter) ([]models.PriceRecord, error) {
	s.filter = f
	return s.recs, s.err
}

func (s *stubPrices) LatestPrices(_ context.Context, tickerID int64, n int) ([]models.PriceRecord, error) {
	s.filter.TickerID = tickerID
	s.latestN = n
	return s.recs, s.err
}

func (s *stubPrices) InsertPricesBatch(_ context.Context, _ []models.PriceRecord, _ bool) error {
	return nil
}
func (s *stubPrices) HasImport(_ context.Context, _ string) (bool, error)      { return false, nil }
func (s *stubPrices) UpsertImportLog(_ context.Context, _ string, _ int) error { return nil }

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
