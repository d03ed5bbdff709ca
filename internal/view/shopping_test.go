package view

import (
	"context"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"shoplist/internal/api"
)

func newShoppingView(t *testing.T, srv *httptest.Server) (*ShoppingView, *fakeNav) {
	t.Helper()
	nav := &fakeNav{}
	c := api.New(api.Config{BaseURL: srv.URL})
	return NewShoppingView(api.NewListAPI(c), nav, NewBanner(time.Hour)), nav
}

func TestShoppingActivateLoadsItems(t *testing.T) {
	srv := detailBackend(t, false)
	v, _ := newShoppingView(t, srv)

	v.Activate(context.Background(), 5)

	if got := len(v.Items()); got != 2 {
		t.Fatalf("items = %d, want 2", got)
	}
	if got := v.Error(); got != "" {
		t.Errorf("error = %q, want none", got)
	}
	if v.Loading() {
		t.Error("loading should be finished after Activate returns")
	}
	checked, unchecked := v.Progress()
	if checked != 1 || unchecked != 1 {
		t.Errorf("progress = (%d, %d), want (1, 1)", checked, unchecked)
	}
	if got := v.Total(); math.Abs(got-27.95) > 0.01 {
		t.Errorf("total = %.2f, want 27.95", got)
	}
}

func TestShoppingActivateRejectsBadListID(t *testing.T) {
	srv := detailBackend(t, false)

	for _, id := range []int64{0, -4} {
		v, nav := newShoppingView(t, srv)
		v.Activate(context.Background(), id)

		if got := nav.last(); got != "/dashboard" {
			t.Errorf("Activate(%d): navigated to %q, want %q", id, got, "/dashboard")
		}
		if got := len(v.Items()); got != 0 {
			t.Errorf("Activate(%d): items = %d, want none fetched", id, got)
		}
	}
}

func TestShoppingToggleMergesResponse(t *testing.T) {
	srv := detailBackend(t, false)
	v, _ := newShoppingView(t, srv)
	ctx := context.Background()

	v.Activate(ctx, 5)
	v.Toggle(ctx, 2)

	checked, unchecked := v.Progress()
	if checked != 2 || unchecked != 0 {
		t.Errorf("progress after toggle = (%d, %d), want (2, 0)", checked, unchecked)
	}
	for _, item := range v.Items() {
		if item.ListItemID == 2 && !item.IsChecked {
			t.Error("item 2 still unchecked after toggle")
		}
	}
}

func TestShoppingItemsFailureSetsError(t *testing.T) {
	srv := detailBackend(t, true)
	v, nav := newShoppingView(t, srv)

	v.Activate(context.Background(), 5)

	if got := v.Error(); got == "" {
		t.Error("expected an error message when items fail to load")
	}
	if got := len(v.Items()); got != 0 {
		t.Errorf("items = %d, want none on failure", got)
	}
	if got := nav.last(); got != "" {
		t.Errorf("navigated to %q, want to stay on the screen", got)
	}
}
