package catalog

import (
	"sort"

	"github.com/google/uuid"
)

// UncategorizedBucket is the bucket name for groups without a ui_config
// category; it always sorts last.
const UncategorizedBucket = "uncategorized"

// Selection records which item the customer has chosen per group so far
type Selection map[uuid.UUID]uuid.UUID

// OptionBucket is a display group of option groups sharing a ui_config
// category, in presentation order.
type OptionBucket struct {
	Category          string        `json:"category"`
	CategorySortOrder int           `json:"category_sort_order"`
	Groups            []OptionGroup `json:"groups"`
}

// MatchesRequiredTags reports whether an item gated by the given tags is
// visible for a product carrying productTags. An empty tag set always
// matches; otherwise every tag must be present (ALL-match, not ANY-match).
func MatchesRequiredTags(required []string, productTags []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(productTags))
	for _, t := range productTags {
		have[t] = struct{}{}
	}
	for _, t := range required {
		if _, ok := have[t]; !ok {
			return false
		}
	}
	return true
}

// EvaluateVisibility determines the ordered, bucketed list of option groups
// to present for a product, given its tag set and the selection state.
//
// A group with a dependency is visible only when the target group has a
// selected item and, when depends_on_option_id is set, that exact item is
// selected. A dependency pointing at a group that is not in the input set
// can never be satisfied, so the dependent group is hidden; this mirrors
// the behavior for references left dangling by a deletion.
//
// Items whose effective tag set does not match the product are filtered
// out; a group whose items are all filtered stays listed with no items.
func EvaluateVisibility(groups []OptionGroup, productTags []string, sel Selection) []OptionBucket {
	known := make(map[uuid.UUID]struct{}, len(groups))
	for i := range groups {
		known[groups[i].ID] = struct{}{}
	}

	visible := make([]OptionGroup, 0, len(groups))
	for i := range groups {
		if !dependencySatisfied(&groups[i], known, sel) {
			continue
		}
		g := groups[i]
		g.Items = filterItems(g.Items, productTags)
		visible = append(visible, g)
	}

	return bucketize(visible)
}

// dependencySatisfied checks the display dependency gate for a group
func dependencySatisfied(g *OptionGroup, known map[uuid.UUID]struct{}, sel Selection) bool {
	dep := g.UIConfig.DependsOnGroupID
	if dep == nil {
		return true
	}
	if _, exists := known[*dep]; !exists {
		// Dangling reference: condition never satisfied
		return false
	}
	selected, ok := sel[*dep]
	if !ok {
		return false
	}
	if g.UIConfig.DependsOnOptionID != nil {
		return selected == *g.UIConfig.DependsOnOptionID
	}
	return true
}

// filterItems keeps items whose effective tags match the product (ALL-match)
func filterItems(items []OptionItem, productTags []string) []OptionItem {
	kept := make([]OptionItem, 0, len(items))
	for i := range items {
		if MatchesRequiredTags(items[i].EffectiveTags(), productTags) {
			kept = append(kept, items[i])
		}
	}
	return kept
}

// bucketize groups the visible option groups by ui_config category. Buckets
// are ordered by category_sort_order (the minimum across members) with the
// uncategorized bucket last; within a bucket groups order by step then
// sort_order, stable on input order.
func bucketize(groups []OptionGroup) []OptionBucket {
	byCategory := make(map[string]*OptionBucket)
	order := make([]string, 0)

	for i := range groups {
		name := groups[i].UIConfig.Category
		if name == "" {
			name = UncategorizedBucket
		}
		bucket, ok := byCategory[name]
		if !ok {
			bucket = &OptionBucket{
				Category:          name,
				CategorySortOrder: groups[i].UIConfig.CategorySortOrder,
				Groups:            make([]OptionGroup, 0, 1),
			}
			byCategory[name] = bucket
			order = append(order, name)
		}
		if groups[i].UIConfig.CategorySortOrder < bucket.CategorySortOrder {
			bucket.CategorySortOrder = groups[i].UIConfig.CategorySortOrder
		}
		bucket.Groups = append(bucket.Groups, groups[i])
	}

	buckets := make([]OptionBucket, 0, len(order))
	for _, name := range order {
		bucket := byCategory[name]
		sort.SliceStable(bucket.Groups, func(i, j int) bool {
			if bucket.Groups[i].UIConfig.Step != bucket.Groups[j].UIConfig.Step {
				return bucket.Groups[i].UIConfig.Step < bucket.Groups[j].UIConfig.Step
			}
			return bucket.Groups[i].UIConfig.SortOrder < bucket.Groups[j].UIConfig.SortOrder
		})
		buckets = append(buckets, *bucket)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		if (buckets[i].Category == UncategorizedBucket) != (buckets[j].Category == UncategorizedBucket) {
			return buckets[j].Category == UncategorizedBucket
		}
		return buckets[i].CategorySortOrder < buckets[j].CategorySortOrder
	})

	return buckets
}
