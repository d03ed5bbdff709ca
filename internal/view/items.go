package view

import "shoplist/internal/model"

// Pure reductions over an items slice. Recomputed on every render
// rather than maintained incrementally.

// TotalPrice sums quantity times the price captured at add-time.
func TotalPrice(items []model.ShoppingListItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Quantity * it.PriceAtAddition
	}
	return total
}

func CheckedCount(items []model.ShoppingListItem) int {
	n := 0
	for _, it := range items {
		if it.IsChecked {
			n++
		}
	}
	return n
}

func UncheckedCount(items []model.ShoppingListItem) int {
	return len(items) - CheckedCount(items)
}

// mergeItem replaces the item with the same id, or appends when it is
// new. This is the optimistic update applied from mutation responses
// instead of re-fetching the whole list.
func mergeItem(items []model.ShoppingListItem, item model.ShoppingListItem) []model.ShoppingListItem {
	for i := range items {
		if items[i].ListItemID == item.ListItemID {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func dropItem(items []model.ShoppingListItem, itemID int64) []model.ShoppingListItem {
	out := items[:0]
	for _, it := range items {
		if it.ListItemID != itemID {
			out = append(out, it)
		}
	}
	return out
}
