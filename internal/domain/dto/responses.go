package dto

import "github.com/guttosm/msepulse/internal/domain/models"

// WelcomeResponse is returned by GET /.
type WelcomeResponse struct {
	Message string `json:"message" example:"WELCOME TO MALAWI STOCK EXCHANGE DATABASE"`
}

// CompaniesResponse is returned by GET /companies.
type CompaniesResponse struct {
	Count int             `json:"count" example:"16"`
	Data  []models.Ticker `json:"data"`
}

// DailyPricesResponse is returned by GET /prices/daily.
type DailyPricesResponse struct {
	Name  string               `json:"name" example:"NICO"`
	Count int                  `json:"count" example:"100"`
	Data  []models.PriceRecord `json:"data"`
}

// RangePricesResponse is returned by GET /prices/range.
type RangePricesResponse struct {
	Company string               `json:"company" example:"NICO"`
	Count   int                  `json:"count" example:"21"`
	Data    []models.PriceRecord `json:"data"`
}
