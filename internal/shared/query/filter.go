// Package query holds the paging parameters shared by list use cases and
// repositories.
package query

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageFilter is a 1-based page request.
type PageFilter struct {
	Page     int
	PageSize int
}

// NewPageFilter returns a normalized filter: values below 1 fall back to
// the defaults and PageSize is capped at MaxPageSize.
func NewPageFilter(page, pageSize int) PageFilter {
	f := PageFilter{Page: page, PageSize: pageSize}
	f.Normalize()
	return f
}

func (f *PageFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

func (f PageFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// TotalPages returns the number of pages needed for total items.
func (f PageFilter) TotalPages(total int64) int {
	if f.PageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(f.PageSize) - 1) / int64(f.PageSize))
}
