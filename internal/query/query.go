// Package query holds the pagination, sorting and filtering contract shared
// by repositories and services.
package query

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Params carries pagination, sorting and search input from the caller.
// Zero values are filled with defaults by Normalize.
type Params struct {
	PageNumber int       `json:"page_number"`
	PageSize   int       `json:"page_size"`
	SortBy     string    `json:"sort_by"`
	SortOrder  SortOrder `json:"sort_order"`
	SearchTerm string    `json:"search_term"`
}

// Normalize applies defaults and the hard page-size ceiling. Page numbers
// below 1 become 1, page sizes above MaxPageSize are capped, and any sort
// order other than "desc" falls back to ascending.
func (p Params) Normalize() Params {
	if p.PageNumber < 1 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortOrder != SortOrderDesc {
		p.SortOrder = SortOrderAsc
	}
	return p
}

// Offset returns the zero-based row offset for the normalized page.
func (p Params) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Page wraps one page of items together with pagination metadata.
type Page[T any] struct {
	Items           []T  `json:"items"`
	PageNumber      int  `json:"page_number"`
	PageSize        int  `json:"page_size"`
	TotalCount      int  `json:"total_count"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// NewPage builds a Page from one page worth of items and the total row count.
// TotalPages is the integer ceiling of count/pageSize.
func NewPage[T any](items []T, totalCount, pageNumber, pageSize int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return &Page[T]{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasNextPage:     pageNumber < totalPages,
		HasPreviousPage: pageNumber > 1,
	}
}
