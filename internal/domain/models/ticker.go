package models

// Ticker is one listed security (a "counter" on the MSE board).
//
// ID is the internal counter_id used to join against daily_prices and is
// never exposed through the API. Sector and DateListed are nullable in the
// reference table.
//
// swagger:model Ticker
type Ticker struct {
	ID         int64   `json:"-"`
	Symbol     string  `json:"ticker" example:"NICO"`
	Name       string  `json:"name" example:"NICO Holdings Plc"`
	Sector     *string `json:"sector" example:"Finance"`
	DateListed *Date   `json:"date_listed" swaggertype:"string" example:"1999-06-07"`
}

// CompanyDetail is a ticker plus the number of price rows stored for it.
//
// swagger:model CompanyDetail
type CompanyDetail struct {
	Company      Ticker `json:"company_details"`
	TotalRecords int64  `json:"total_records" example:"1240"`
}
