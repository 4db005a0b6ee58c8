package shared

import "strings"

// Filter carries the listing options the admin endpoints accept: pagination,
// ordering, free-text search and column equality filters (asset type,
// product brand, option-group category and the like). Repositories decide
// which columns Search and Filters apply to.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter lists newest-first, 20 per page.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginate reports whether pagination was requested, with the row offset
// and limit to apply when it was.
func (f Filter) Paginate() (offset, limit int, ok bool) {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0, 0, false
	}
	return (f.Page - 1) * f.PageSize, f.PageSize, true
}

// OrderClause renders the ORDER BY expression, falling back to newest-first
// when no ordering was requested. Callers only pass column names they
// accept, never raw client input.
func (f Filter) OrderClause() string {
	if f.OrderBy == "" {
		return "created_at DESC"
	}
	dir := "ASC"
	if strings.EqualFold(f.OrderDir, "desc") {
		dir = "DESC"
	}
	return f.OrderBy + " " + dir
}
