package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// QueryParams captures common list query parameters.
type QueryParams struct {
	Page  int
	Limit int
}

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// FromEcho reads paging parameters from the request, applying defaults and bounds.
func FromEcho(c echo.Context) QueryParams {
	p := QueryParams{Page: defaultPage, Limit: defaultLimit}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		p.Limit = v
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
	}
	return p
}

// Offset returns the SQL offset for the current page.
func (p QueryParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
