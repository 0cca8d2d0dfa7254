package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/msepulse/internal/domain/apperr"
	"github.com/guttosm/msepulse/internal/domain/dto"
	"github.com/guttosm/msepulse/internal/domain/models"
	"github.com/guttosm/msepulse/internal/middleware"
	"github.com/guttosm/msepulse/internal/service"
)

const welcomeMessage = "WELCOME TO MALAWI STOCK EXCHANGE DATABASE"

// Handler provides HTTP handlers for the company and price endpoints.
//
// Responsibilities:
//   - Parse and validate query parameters
//   - Call the resolver and price services
//   - Translate results and application errors into JSON responses
type Handler struct {
	resolver service.TickerResolver
	prices   service.PriceService
}

// NewHandler constructs a Handler with its service dependencies.
func NewHandler(resolver service.TickerResolver, prices service.PriceService) *Handler {
	return &Handler{resolver: resolver, prices: prices}
}

// Home godoc
// @Summary      Welcome banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  dto.WelcomeResponse
// @Router       / [get]
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, dto.WelcomeResponse{Message: welcomeMessage})
}

// ListCompanies godoc
// @Summary      List listed companies
// @Description  Returns every ticker, optionally restricted to one sector (case-insensitive)
// @Tags         companies
// @Produce      json
// @Param        sector  query     string  false  "Sector name"  example(Finance)
// @Success      200     {object}  dto.CompaniesResponse
// @Failure      404     {object}  dto.ErrorResponse  "Unknown sector"
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /companies [get]
func (h *Handler) ListCompanies(c *gin.Context) {
	tickers, err := h.resolver.List(c.Request.Context(), c.Query("sector"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CompaniesResponse{Count: len(tickers), Data: tickers})
}

// GetCompany godoc
// @Summary      Company details
// @Description  Returns the company record and how many daily prices are stored for it
// @Tags         companies
// @Produce      json
// @Param        ticker  path      string  true  "Ticker symbol"  example(NICO)
// @Success      200     {object}  models.CompanyDetail
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /companies/{ticker} [get]
func (h *Handler) GetCompany(c *gin.Context) {
	d, err := h.prices.CompanyDetail(c.Request.Context(), symbolOf(c.Param("ticker")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DailyPrices godoc
// @Summary      Daily prices
// @Description  Daily quotes oldest first, inclusive date window, limit defaults to 100 and is capped at 1000
// @Tags         prices
// @Produce      json
// @Param        ticker      query     string  true   "Ticker symbol"            example(AIRTEL)
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"    example(2024-01-01)
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"     example(2024-01-31)
// @Param        limit       query     int     false  "Maximum rows returned"    example(100)
// @Success      200         {object}  dto.DailyPricesResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /prices/daily [get]
func (h *Handler) DailyPrices(c *gin.Context) {
	q := models.PriceQuery{Symbol: symbolOf(c.Query("ticker"))}

	var ok bool
	if q.StartDate, ok = dateParam(c, "start_date"); !ok {
		return
	}
	if q.EndDate, ok = dateParam(c, "end_date"); !ok {
		return
	}
	if s := strings.TrimSpace(c.Query("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "limit must be an integer", err)
			return
		}
		q.Limit = &n
	}

	recs, err := h.prices.DailyPrices(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DailyPricesResponse{Name: q.Symbol, Count: len(recs), Data: recs})
}

// PriceRange godoc
// @Summary      Prices for a year or month
// @Description  Every daily quote of the calendar year, or of one month of it, oldest first
// @Tags         prices
// @Produce      json
// @Param        ticker  query     string  true   "Ticker symbol"  example(NICO)
// @Param        year    query     int     true   "Year"           example(2023)
// @Param        month   query     int     false  "Month 1-12"     example(6)
// @Success      200     {object}  dto.RangePricesResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /prices/range [get]
func (h *Handler) PriceRange(c *gin.Context) {
	symbol := symbolOf(c.Query("ticker"))
	if symbol == "" {
		fail(c, apperr.Validation("ticker is required"))
		return
	}

	ys := strings.TrimSpace(c.Query("year"))
	if ys == "" {
		fail(c, apperr.Validation("year is required"))
		return
	}
	year, err := strconv.Atoi(ys)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "year must be an integer", err)
		return
	}

	var month *int
	if ms := strings.TrimSpace(c.Query("month")); ms != "" {
		m, err := strconv.Atoi(ms)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "month must be an integer", err)
			return
		}
		month = &m
	}

	recs, err := h.prices.PricesForPeriod(c.Request.Context(), symbol, year, month)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RangePricesResponse{Company: symbol, Count: len(recs), Data: recs})
}

// LatestPrice godoc
// @Summary      Latest price and daily change
// @Description  Compares the most recent close with the one before it
// @Tags         prices
// @Produce      json
// @Param        ticker  query     string  true  "Ticker symbol"  example(AIRTEL)
// @Success      200     {object}  models.PriceDelta
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /prices/latest [get]
func (h *Handler) LatestPrice(c *gin.Context) {
	symbol := symbolOf(c.Query("ticker"))
	if symbol == "" {
		fail(c, apperr.Validation("ticker is required"))
		return
	}

	d, err := h.prices.LatestPrice(c.Request.Context(), symbol)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func symbolOf(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// dateParam parses an optional YYYY-MM-DD query parameter. On a malformed
// value it writes a 400 and returns ok=false.
func dateParam(c *gin.Context, name string) (*models.Date, bool) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, true
	}
	d, err := models.ParseDate(s)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid "+name+" format, expected YYYY-MM-DD", err)
		return nil, false
	}
	return &d, true
}

// fail maps an application error to its status and error body.
func fail(c *gin.Context, err error) {
	middleware.AbortWithError(c, apperr.HTTPStatus(err), apperr.PublicMessage(err), err)
}
