package service

import (
	"github.com/guttosm/msepulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ComputeDelta builds a PriceDelta from records ordered most recent first.
// It expects at least one record.
func ComputeDelta(symbol string, recs []models.PriceRecord) *models.PriceDelta {
	latest := recs[0]
	out := &models.PriceDelta{
		Ticker:      symbol,
		LatestDate:  latest.TradeDate,
		LatestPrice: latest.Close,
	}
	if len(recs) < 2 {
		return out
	}
	out.PreviousPrice = recs[1].Close
	if out.LatestPrice == nil || out.PreviousPrice == nil {
		return out
	}

	l := decimal.NewFromFloat(*out.LatestPrice)
	p := decimal.NewFromFloat(*out.PreviousPrice)
	change := l.Sub(p)
	changeF := change.InexactFloat64()
	out.Change = &changeF

	pct := "0.000%"
	if !p.IsZero() {
		pct = change.Div(p).Mul(decimal.NewFromInt(100)).StringFixed(3) + "%"
	}
	out.ChangePercentage = &pct
	return out
}
