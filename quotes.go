package jquants

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/jquants/date"
	"github.com/shopspring/decimal"
)

// DailyQuote is one day of OHLC data for a single security, as returned by
// the prices/daily_quotes endpoint. The adjustment columns carry the values
// corrected for splits. Days without trading come back as nulls and decode
// to zero.
type DailyQuote struct {
	Code             string          `json:"Code"`
	Date             date.Date       `json:"Date"`
	Open             decimal.Decimal `json:"Open"`
	High             decimal.Decimal `json:"High"`
	Low              decimal.Decimal `json:"Low"`
	Close            decimal.Decimal `json:"Close"`
	Volume           decimal.Decimal `json:"Volume"`
	TurnoverValue    decimal.Decimal `json:"TurnoverValue"`
	AdjustmentFactor decimal.Decimal `json:"AdjustmentFactor"`
	AdjustmentOpen   decimal.Decimal `json:"AdjustmentOpen"`
	AdjustmentHigh   decimal.Decimal `json:"AdjustmentHigh"`
	AdjustmentLow    decimal.Decimal `json:"AdjustmentLow"`
	AdjustmentClose  decimal.Decimal `json:"AdjustmentClose"`
	AdjustmentVolume decimal.Decimal `json:"AdjustmentVolume"`
}

// DailyQuotes fetches the daily quotes for code between from and to, both
// included, following the pagination key until exhaustion. code is the
// padded 5-character form (see LongCode).
//
// Error mapping is the same as ListedInfo: ErrFetch on a non-success
// status, ErrParse on an undecodable body, and a mid-pagination failure
// discards everything fetched so far.
func (c *Client) DailyQuotes(token, code string, from, to date.Date) ([]DailyQuote, error) {
	var all []DailyQuote
	header := bearer(token)

	paginationKey := ""
	for {
		query := url.Values{}
		query.Set("code", code)
		query.Set("from", from.String())
		query.Set("to", to.String())
		if paginationKey != "" {
			query.Set("pagination_key", paginationKey)
		}
		addr := c.baseURL + "/prices/daily_quotes?" + query.Encode()

		status, payload, err := wget(c.data, addr, header)
		if err != nil {
			return nil, fmt.Errorf("%w: quotes for %s: %v", ErrFetch, code, err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("%w: daily quotes for %s returned %d: %s", ErrFetch, code, status, apiMessage(payload))
		}

		var page struct {
			DailyQuotes   []DailyQuote `json:"daily_quotes"`
			PaginationKey string       `json:"pagination_key"`
		}
		if err := json.Unmarshal(payload, &page); err != nil {
			return nil, fmt.Errorf("%w: decoding daily quotes for %s: %v", ErrParse, code, err)
		}

		all = append(all, page.DailyQuotes...)
		if page.PaginationKey == "" {
			return all, nil
		}
		paginationKey = page.PaginationKey
	}
}
