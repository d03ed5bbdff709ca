package view

import (
	"context"
	"sync"
	"time"

	"shoplist/internal/api"
	"shoplist/internal/model"
)

// searchDebounce bounds the request rate under fast typing.
const searchDebounce = 300 * time.Millisecond

// CatalogView backs the product browsing screen: the full product
// grid, the category filter and the debounced search box.
//
// Responses are generation-tagged: every search or filter bumps a
// counter and a response is applied only if its generation is still
// current, so a slow early response can never overwrite the result of
// a later query.
type CatalogView struct {
	products *api.ProductAPI
	banner   *Banner

	mu            sync.Mutex
	items         []model.Product
	categories    []model.Category
	productsErr   string
	categoriesErr string
	lastQuery     string
	generation    uint64
	debounce      *time.Timer
	loading       bool
}

func NewCatalogView(products *api.ProductAPI, banner *Banner) *CatalogView {
	return &CatalogView{products: products, banner: banner}
}

// Load fetches the product grid and the category filter in parallel;
// either may fail without blanking the other.
func (v *CatalogView) Load(ctx context.Context) {
	v.mu.Lock()
	v.loading = true
	v.productsErr, v.categoriesErr = "", ""
	gen := v.bumpLocked()
	v.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		items, err := v.products.List(ctx)
		v.apply(gen, items, err)
	}()

	go func() {
		defer wg.Done()
		categories, err := v.products.Categories(ctx)
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.categoriesErr = errorMessage(err)
			return
		}
		v.categories = categories
	}()

	wg.Wait()

	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
}

// SetQuery schedules a debounced search. Identical consecutive
// queries are deduplicated; an empty query reloads the full grid.
func (v *CatalogView) SetQuery(ctx context.Context, query string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if query == v.lastQuery {
		return
	}
	v.lastQuery = query

	if v.debounce != nil {
		v.debounce.Stop()
	}
	// The generation is taken now, not when the timer fires: Stop does
	// not catch a timer that has already fired, and such a straggler
	// must not outrank a search scheduled after it.
	gen := v.bumpLocked()
	v.debounce = time.AfterFunc(searchDebounce, func() {
		v.runSearch(ctx, query, gen)
	})
}

func (v *CatalogView) runSearch(ctx context.Context, query string, gen uint64) {
	var (
		items []model.Product
		err   error
	)
	if query == "" {
		items, err = v.products.List(ctx)
	} else {
		items, err = v.products.Search(ctx, query)
	}
	v.apply(gen, items, err)
}

// FilterCategory replaces the grid with one category's products.
func (v *CatalogView) FilterCategory(ctx context.Context, categoryID int64) {
	v.mu.Lock()
	gen := v.bumpLocked()
	v.mu.Unlock()

	items, err := v.products.ByCategory(ctx, categoryID)
	v.apply(gen, items, err)
}

func (v *CatalogView) bumpLocked() uint64 {
	v.generation++
	return v.generation
}

// apply commits a response only when no newer query has started.
func (v *CatalogView) apply(gen uint64, items []model.Product, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return
	}
	if err != nil {
		v.productsErr = errorMessage(err)
		return
	}
	v.productsErr = ""
	v.items = items
}

func (v *CatalogView) Products() []model.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Product, len(v.items))
	copy(out, v.items)
	return out
}

func (v *CatalogView) Categories() []model.Category {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Category, len(v.categories))
	copy(out, v.categories)
	return out
}

// Errors returns the products and categories error messages.
func (v *CatalogView) Errors() (string, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.productsErr, v.categoriesErr
}

func (v *CatalogView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}
