package models

import (
	"github.com/guttosm/msepulse/internal/domain/apperr"
)

const (
	// DefaultLimit is applied when a daily price query carries no limit.
	DefaultLimit = 100
	// MaxLimit caps any requested limit.
	MaxLimit = 1000
)

// PriceRecord is one trading day's quote for a ticker, prices in MWK.
//
// Every numeric field is nullable: a missing value is nil and serializes as
// JSON null, never 0. ID is the storage insertion order and only serves as a
// tie-breaker between same-day rows.
//
// swagger:model PriceRecord
type PriceRecord struct {
	ID        int64    `json:"-"`
	TickerID  int64    `json:"-"`
	TradeDate Date     `json:"trade_date" swaggertype:"string" example:"2024-01-02"`
	Open      *float64 `json:"open" example:"1850.5"`
	High      *float64 `json:"high" example:"1860"`
	Low       *float64 `json:"low" example:"1845"`
	Close     *float64 `json:"close" example:"1855.01"`
	Volume    *int64   `json:"volume" example:"24500"`
}

// PriceQuery holds the filter criteria of one daily-prices request.
type PriceQuery struct {
	Symbol    string
	StartDate *Date
	EndDate   *Date
	Limit     *int
}

// EffectiveLimit is min(requested or DefaultLimit, MaxLimit).
func (q PriceQuery) EffectiveLimit() int {
	if q.Limit == nil {
		return DefaultLimit
	}
	if *q.Limit > MaxLimit {
		return MaxLimit
	}
	return *q.Limit
}

// Validate rejects queries that must not reach the database.
func (q PriceQuery) Validate() error {
	if q.Symbol == "" {
		return apperr.Validation("ticker is required")
	}
	if q.Limit != nil && *q.Limit <= 0 {
		return apperr.Validation("limit must be a positive integer")
	}
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(q.EndDate.Time) {
		return apperr.Validation("start_date %s is after end_date %s", q.StartDate, q.EndDate)
	}
	return nil
}

// PriceDelta compares the latest close with the one before it.
//
// PreviousPrice, Change and ChangePercentage are nil when fewer than two
// records exist. ChangePercentage is formatted with three decimals and a "%"
// suffix.
//
// swagger:model PriceDelta
type PriceDelta struct {
	Ticker           string   `json:"ticker" example:"AIRTEL"`
	LatestDate       Date     `json:"latest_date" swaggertype:"string" example:"2024-01-02"`
	LatestPrice      *float64 `json:"latest_price" example:"110"`
	PreviousPrice    *float64 `json:"previous_price" example:"100"`
	Change           *float64 `json:"change" example:"10"`
	ChangePercentage *string  `json:"change_percentage" example:"10.000%"`
}
