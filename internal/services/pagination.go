package services

import "math"

// Pagination defaults applied when the client omits or mangles page parameters.
const (
	DefaultPage        = 1
	DefaultPageSize    = 10
	DefaultMaxPageSize = 100
)

// Pagination is a normalised page request.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination replaces non-positive values with the defaults and clamps pageSize
// to maxPageSize. A non-positive maxPageSize means DefaultMaxPageSize.
func NewPagination(page, pageSize, maxPageSize int) Pagination {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset is the number of items before the page. It saturates at math.MaxInt
// for pages too far out to address.
func (p Pagination) Offset() int {
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages is ceil(totalItems / PageSize).
func (p Pagination) TotalPages(totalItems int64) int {
	size := int64(p.PageSize)
	return int((totalItems + size - 1) / size)
}
