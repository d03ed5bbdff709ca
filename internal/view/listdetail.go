package view

import (
	"context"
	"strconv"
	"sync"

	"shoplist/internal/api"
	"shoplist/internal/model"
	"shoplist/internal/session"
)

// Confirm asks the user to approve a destructive action. Returning
// false aborts before any request is issued.
type Confirm func(prompt string) bool

// ListDetailView backs the single-list screen: list metadata, its
// items and the full product catalog for the add-item picker. The
// three fetches run in parallel and fail independently; one failing
// leaves the other sections populated.
type ListDetailView struct {
	lists    *api.ListAPI
	products *api.ProductAPI
	nav      session.Navigator
	banner   *Banner

	mu          sync.Mutex
	list        *model.ShoppingList
	items       []model.ShoppingListItem
	catalog     []model.Product
	listErr     string
	itemsErr    string
	catalogErr  string
	loading     bool
}

func NewListDetailView(lists *api.ListAPI, products *api.ProductAPI, nav session.Navigator, banner *Banner) *ListDetailView {
	return &ListDetailView{lists: lists, products: products, nav: nav, banner: banner}
}

// Activate is called with the raw route parameter. A missing or
// malformed id redirects to the dashboard; that is a guard, not a
// recoverable state.
func (v *ListDetailView) Activate(ctx context.Context, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		v.nav.Navigate(session.RouteDashboard)
		return
	}
	v.Load(ctx, id)
}

// Load issues the three fetches in parallel, storing each result or
// error independently.
func (v *ListDetailView) Load(ctx context.Context, listID int64) {
	v.mu.Lock()
	v.loading = true
	v.listErr, v.itemsErr, v.catalogErr = "", "", ""
	v.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		list, err := v.lists.Get(ctx, listID)
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.listErr = errorMessage(err)
			return
		}
		v.list = list
	}()

	go func() {
		defer wg.Done()
		items, err := v.lists.Items(ctx, listID)
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.itemsErr = errorMessage(err)
			return
		}
		v.items = items
	}()

	go func() {
		defer wg.Done()
		catalog, err := v.products.List(ctx)
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.catalogErr = errorMessage(err)
			return
		}
		v.catalog = catalog
	}()

	wg.Wait()

	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
}

func (v *ListDetailView) List() *model.ShoppingList {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.list
}

// Items returns a copy of the current items slice.
func (v *ListDetailView) Items() []model.ShoppingListItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.ShoppingListItem, len(v.items))
	copy(out, v.items)
	return out
}

func (v *ListDetailView) Catalog() []model.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Product, len(v.catalog))
	copy(out, v.catalog)
	return out
}

// Errors returns the per-fetch error messages (list, items, catalog).
func (v *ListDetailView) Errors() (string, string, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listErr, v.itemsErr, v.catalogErr
}

func (v *ListDetailView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Total returns the running list total from captured add-time prices.
func (v *ListDetailView) Total() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return TotalPrice(v.items)
}

// Progress returns checked and unchecked item counts.
func (v *ListDetailView) Progress() (checked, unchecked int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return CheckedCount(v.items), UncheckedCount(v.items)
}

// AddItem posts the product to the list and merges the server's item
// into local state by id.
func (v *ListDetailView) AddItem(ctx context.Context, productID int64, quantity float64) {
	v.mu.Lock()
	list := v.list
	v.mu.Unlock()
	if list == nil {
		return
	}

	item, err := v.lists.AddItem(ctx, list.ListID, model.AddItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	v.items = mergeItem(v.items, *item)
	v.mu.Unlock()
	v.banner.Success("Added " + item.ProductName)
}

// ToggleItem flips an item's checked state and merges the response.
func (v *ListDetailView) ToggleItem(ctx context.Context, itemID int64) {
	item, err := v.lists.Toggle(ctx, itemID)
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	v.items = mergeItem(v.items, *item)
	v.mu.Unlock()
}

// UpdateQuantity changes an item's quantity and merges the response.
func (v *ListDetailView) UpdateQuantity(ctx context.Context, itemID int64, quantity float64) {
	item, err := v.lists.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	v.items = mergeItem(v.items, *item)
	v.mu.Unlock()
}

// RemoveItem deletes an item after confirmation.
func (v *ListDetailView) RemoveItem(ctx context.Context, itemID int64, confirm Confirm) {
	if !confirm("Remove this item from the list?") {
		return
	}

	if err := v.lists.RemoveItem(ctx, itemID); err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	v.items = dropItem(v.items, itemID)
	v.mu.Unlock()
	v.banner.Success("Item removed")
}

// Archive marks the current list archived after confirmation and
// returns to the dashboard.
func (v *ListDetailView) Archive(ctx context.Context, confirm Confirm) {
	v.mu.Lock()
	list := v.list
	v.mu.Unlock()
	if list == nil {
		return
	}

	if !confirm("Archive this list?") {
		return
	}

	updated, err := v.lists.Archive(ctx, list.ListID)
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	v.list = updated
	v.mu.Unlock()
	v.nav.Navigate(session.RouteDashboard)
}
