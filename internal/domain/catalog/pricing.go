package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubSelection records the chosen option name per sub-attribute id
type SubSelection map[uuid.UUID]string

// QuoteTotal computes the total price for a product and selection:
// base price plus the price modifier of every selected option item plus the
// modifier of every selected sub-attribute option. An absent or unknown
// selection contributes zero.
func QuoteTotal(base decimal.Decimal, groups []OptionGroup, sel Selection, subSel SubSelection) decimal.Decimal {
	total := base

	for gi := range groups {
		group := &groups[gi]

		if itemID, ok := sel[group.ID]; ok {
			for ii := range group.Items {
				if group.Items[ii].ID == itemID {
					total = total.Add(group.Items[ii].PriceModifier)
					break
				}
			}
		}

		for ai := range group.SubAttributes {
			attr := &group.SubAttributes[ai]
			name, ok := subSel[attr.ID]
			if !ok {
				continue
			}
			for oi := range attr.Options {
				if attr.Options[oi].Name == name {
					total = total.Add(attr.Options[oi].PriceModifier)
					break
				}
			}
		}
	}

	return total
}
