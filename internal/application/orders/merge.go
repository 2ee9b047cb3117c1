package orders

import (
	"sort"
	"strings"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/storefront"
)

// MergeOrders reconciles the live API orders with the locally cached copies.
// Orders are deduplicated by normalized order number, falling back to the
// platform order id when no number exists; on conflict the API copy wins.
// The result is sorted by placed date, newest first, with unparsable dates
// (zero time) sorting last.
func MergeOrders(apiOrders, dbOrders []storefront.Order) []storefront.Order {
	merged := make([]storefront.Order, 0, len(apiOrders)+len(dbOrders))
	index := make(map[string]int, len(apiOrders))

	for _, o := range apiOrders {
		key := mergeKey(o)
		if pos, ok := index[key]; ok {
			merged[pos] = o
			continue
		}
		index[key] = len(merged)
		merged = append(merged, o)
	}

	for _, o := range dbOrders {
		if _, ok := index[mergeKey(o)]; ok {
			continue
		}
		index[mergeKey(o)] = len(merged)
		merged = append(merged, o)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PlacedDate.After(merged[j].PlacedDate)
	})

	return merged
}

// mergeKey identifies one logical order across sources
func mergeKey(o storefront.Order) string {
	if n := order.NormalizeOrderNumber(o.OrderNumber); n != "" {
		return "num:" + strings.ToLower(n)
	}
	return "id:" + string(o.Platform) + ":" + o.PlatformOrderID
}
