package lv

// GroupByTrade organizes resolved positions by trade name. Relative order
// within each group follows the original position order.
func GroupByTrade(positions []ResolvedPosition) map[string][]ResolvedPosition {
	groups := make(map[string][]ResolvedPosition)
	for _, pos := range positions {
		groups[pos.Trade] = append(groups[pos.Trade], pos)
	}
	return groups
}

// TradeOrder returns the trade names of a position list in first-seen order,
// so callers can render the groups of GroupByTrade deterministically.
func TradeOrder(positions []ResolvedPosition) []string {
	var order []string
	seen := make(map[string]bool)
	for _, pos := range positions {
		if !seen[pos.Trade] {
			seen[pos.Trade] = true
			order = append(order, pos.Trade)
		}
	}
	return order
}

// GroupSubtotal sums the total prices of a group. Positions without a price
// contribute zero.
func GroupSubtotal(group []ResolvedPosition) float64 {
	var subtotal float64
	for _, pos := range group {
		if pos.TotalPrice != nil {
			subtotal += *pos.TotalPrice
		}
	}
	return subtotal
}
