package persistence

import "strings"

// sortColumn maps a client-requested ORDER BY column onto the entity's
// whitelist. Anything not on the list comes back empty, so the repository
// falls back to its default ordering instead of interpolating raw input
// into the SQL string.
func sortColumn(requested string, allowed map[string]bool) string {
	col := strings.TrimSpace(requested)
	if allowed[col] {
		return col
	}
	return ""
}

var productSortColumns = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"brand":       true,
	"category_id": true,
	"base_price":  true,
}

var optionGroupSortColumns = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"price_modifier": true,
}

var designSortColumns = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"product_id":     true,
	"quoted_price":   true,
	"customer_email": true,
}

var assetSortColumns = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"type":          true,
	"category":      true,
	"original_name": true,
	"size_bytes":    true,
}
