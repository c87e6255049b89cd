// README: Pagination parameters, listing filters, and page metadata.
package trip

import (
	"time"

	"tripdesk/internal/types"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// PageParams is 1-indexed. Values outside range fall back to defaults; the
// limit is capped to prevent runaway queries.
type PageParams struct {
	Page  int
	Limit int
}

func NewPageParams(page, limit int) PageParams {
	p := PageParams{Page: defaultPage, Limit: defaultLimit}
	if page >= 1 {
		p.Page = page
	}
	if limit >= 1 {
		p.Limit = limit
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata returned alongside every listing page.
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

func NewPagination(p PageParams, total int) Pagination {
	totalPages := (total + p.Limit - 1) / p.Limit
	return Pagination{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalRecords: total,
		HasNext:      p.Page*p.Limit < total,
		HasPrev:      p.Page > 1,
	}
}

// Filter narrows trip listings. Nil fields are skipped when the store builds
// the predicate. StartDate/EndDate bound the preferred travel date.
type Filter struct {
	CustomerID *types.ID
	Status     *Status
	Category   *Category
	StartDate  *time.Time
	EndDate    *time.Time
}
