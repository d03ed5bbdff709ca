package view

import (
	"context"
	"sync"

	"shoplist/internal/api"
	"shoplist/internal/model"
	"shoplist/internal/session"
)

// ShoppingView backs the in-store screen: the list's items with
// check-off, progress counts and the running total. It shares no
// state with ListDetailView; each screen re-fetches what it shows.
type ShoppingView struct {
	lists  *api.ListAPI
	nav    session.Navigator
	banner *Banner

	mu       sync.Mutex
	listID   int64
	items    []model.ShoppingListItem
	itemsErr string
	loading  bool
}

func NewShoppingView(lists *api.ListAPI, nav session.Navigator, banner *Banner) *ShoppingView {
	return &ShoppingView{lists: lists, nav: nav, banner: banner}
}

// Activate guards the route parameter like the detail view does.
func (v *ShoppingView) Activate(ctx context.Context, listID int64) {
	if listID <= 0 {
		v.nav.Navigate(session.RouteDashboard)
		return
	}

	v.mu.Lock()
	v.listID = listID
	v.loading = true
	v.mu.Unlock()

	items, err := v.lists.Items(ctx, listID)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.itemsErr = errorMessage(err)
		return
	}
	v.itemsErr = ""
	v.items = items
}

func (v *ShoppingView) Items() []model.ShoppingListItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.ShoppingListItem, len(v.items))
	copy(out, v.items)
	return out
}

func (v *ShoppingView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.itemsErr
}

func (v *ShoppingView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Progress returns checked and unchecked counts for the header.
func (v *ShoppingView) Progress() (checked, unchecked int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return CheckedCount(v.items), UncheckedCount(v.items)
}

func (v *ShoppingView) Total() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return TotalPrice(v.items)
}

// Toggle checks or unchecks an item and merges the server response.
func (v *ShoppingView) Toggle(ctx context.Context, itemID int64) {
	item, err := v.lists.Toggle(ctx, itemID)
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	v.items = mergeItem(v.items, *item)
	v.mu.Unlock()
}
