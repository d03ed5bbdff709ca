package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"shoplist/internal/api"
	"shoplist/internal/model"
)

func catalogBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	queries := []string{}

	r := mux.NewRouter()
	r.HandleFunc("/api/products", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(productsJSON))
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Dairy"},{"id":2,"name":"Bakery"}]`))
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/products/search", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		queries = append(queries, req.URL.Query().Get("query"))
		mu.Unlock()
		w.Write([]byte(`[{"id":10,"name":"Milk","price":6.49,"unit":"l","categoryId":1,"categoryName":"Dairy"}]`))
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/products/category/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"id":11,"name":"Bread","price":4.99,"unit":"pc","categoryId":2,"categoryName":"Bakery"}]`))
	}).Methods(http.MethodGet)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &queries
}

func newCatalogView(t *testing.T, srv *httptest.Server) *CatalogView {
	t.Helper()
	c := api.New(api.Config{BaseURL: srv.URL})
	return NewCatalogView(api.NewProductAPI(c), NewBanner(time.Hour))
}

func TestCatalogLoad(t *testing.T) {
	srv, _ := catalogBackend(t)
	v := newCatalogView(t, srv)

	v.Load(context.Background())

	if got := len(v.Products()); got != 2 {
		t.Errorf("products = %d, want 2", got)
	}
	if got := len(v.Categories()); got != 2 {
		t.Errorf("categories = %d, want 2", got)
	}
	if pErr, cErr := v.Errors(); pErr != "" || cErr != "" {
		t.Errorf("errors = (%q, %q)", pErr, cErr)
	}
}

func TestSearchDebounceCollapsesFastTyping(t *testing.T) {
	srv, queries := catalogBackend(t)
	v := newCatalogView(t, srv)
	ctx := context.Background()

	// Simulated fast typing: only the final query should hit the wire.
	v.SetQuery(ctx, "m")
	v.SetQuery(ctx, "mi")
	v.SetQuery(ctx, "mil")
	v.SetQuery(ctx, "milk")

	time.Sleep(searchDebounce + 200*time.Millisecond)

	if len(*queries) != 1 {
		t.Fatalf("search requests = %d (%v), want 1", len(*queries), *queries)
	}
	if (*queries)[0] != "milk" {
		t.Errorf("query = %q, want %q", (*queries)[0], "milk")
	}
	if got := len(v.Products()); got != 1 {
		t.Errorf("products = %d, want 1 search result", got)
	}
}

func TestSetQueryDeduplicatesRepeatedValue(t *testing.T) {
	srv, queries := catalogBackend(t)
	v := newCatalogView(t, srv)
	ctx := context.Background()

	v.SetQuery(ctx, "milk")
	time.Sleep(searchDebounce + 100*time.Millisecond)
	// Same value again: no new request.
	v.SetQuery(ctx, "milk")
	time.Sleep(searchDebounce + 100*time.Millisecond)

	if len(*queries) != 1 {
		t.Errorf("search requests = %d (%v), want 1", len(*queries), *queries)
	}
}

func TestFilterCategoryReplacesGrid(t *testing.T) {
	srv, _ := catalogBackend(t)
	v := newCatalogView(t, srv)
	ctx := context.Background()

	v.Load(ctx)
	v.FilterCategory(ctx, 2)

	products := v.Products()
	if len(products) != 1 || products[0].Name != "Bread" {
		t.Errorf("products = %+v, want only Bread", products)
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	srv, _ := catalogBackend(t)
	v := newCatalogView(t, srv)

	// An early, slow response must not overwrite a later one: capture
	// a generation, let a newer query bump it, then apply the stale
	// result.
	v.mu.Lock()
	stale := v.bumpLocked()
	newer := v.bumpLocked()
	v.mu.Unlock()

	v.apply(newer, []model.Product{{ID: 1, Name: "fresh"}}, nil)
	v.apply(stale, []model.Product{{ID: 2, Name: "stale"}}, nil)

	products := v.Products()
	if len(products) != 1 || products[0].Name != "fresh" {
		t.Errorf("products = %+v, want the fresh result only", products)
	}
}

func TestFiredTimerCannotOutrankLaterSearch(t *testing.T) {
	srv, _ := catalogBackend(t)
	v := newCatalogView(t, srv)
	ctx := context.Background()

	// A debounce timer that already fired slips past Stop. Its search
	// carries the generation taken when it was scheduled, so a query
	// scheduled after it still wins.
	v.mu.Lock()
	firedGen := v.bumpLocked()
	newer := v.bumpLocked()
	v.mu.Unlock()

	v.apply(newer, []model.Product{{ID: 1, Name: "fresh"}}, nil)
	v.runSearch(ctx, "milk", firedGen)

	products := v.Products()
	if len(products) != 1 || products[0].Name != "fresh" {
		t.Errorf("products = %+v, want the later result kept", products)
	}
}

func TestStaleErrorIsDroppedToo(t *testing.T) {
	srv, _ := catalogBackend(t)
	v := newCatalogView(t, srv)

	v.mu.Lock()
	stale := v.bumpLocked()
	newer := v.bumpLocked()
	v.mu.Unlock()

	v.apply(newer, []model.Product{{ID: 1, Name: "fresh"}}, nil)
	v.apply(stale, nil, &api.Error{Status: 500, Message: "boom"})

	if pErr, _ := v.Errors(); pErr != "" {
		t.Errorf("error = %q, want stale error dropped", pErr)
	}
}
