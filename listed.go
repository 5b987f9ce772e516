package jquants

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/jquants/date"
)

// Security is one listed security as returned by the listed/info endpoint.
// Field order is the export order.
type Security struct {
	Code               string    `json:"Code"`
	CompanyName        string    `json:"CompanyName"`
	CompanyNameEnglish string    `json:"CompanyNameEnglish"`
	Sector             string    `json:"Sector17CodeName"`
	MarketCode         string    `json:"MarketCode"`
	ListingDate        date.Date `json:"ListingDate"`
}

// ShortCode collapses a 5-character code with a trailing zero to the
// familiar 4-character form. The API pads common-stock codes this way.
func ShortCode(code string) string {
	if len(code) == 5 && strings.HasSuffix(code, "0") {
		return code[:4]
	}
	return code
}

// LongCode is the inverse of ShortCode; the quotes endpoint expects the
// padded 5-character form.
func LongCode(code string) string {
	if len(code) == 4 {
		return code + "0"
	}
	return code
}

// ListedInfo fetches all listed securities, following the pagination key
// until the API stops returning one. Records are returned in API order,
// pages concatenated in fetch order.
//
// A non-success status wraps ErrFetch, an undecodable body wraps ErrParse.
// A failure on any page discards everything fetched so far.
func (c *Client) ListedInfo(token string) ([]Security, error) {
	var all []Security
	header := bearer(token)

	paginationKey := ""
	for {
		addr := c.baseURL + "/listed/info"
		if paginationKey != "" {
			addr += "?pagination_key=" + url.QueryEscape(paginationKey)
		}

		status, payload, err := wget(c.data, addr, header)
		if err != nil {
			return nil, fmt.Errorf("%w: listing securities: %v", ErrFetch, err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("%w: listed info returned %d: %s", ErrFetch, status, apiMessage(payload))
		}

		var page struct {
			Info          []Security `json:"info"`
			PaginationKey string     `json:"pagination_key"`
		}
		if err := json.Unmarshal(payload, &page); err != nil {
			return nil, fmt.Errorf("%w: decoding listed info: %v", ErrParse, err)
		}

		all = append(all, page.Info...)
		if page.PaginationKey == "" {
			return all, nil
		}
		paginationKey = page.PaginationKey
	}
}
