package view

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"shoplist/internal/api"
	"shoplist/internal/session"
	"shoplist/internal/storage"
)

func listsBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()

	r.HandleFunc("/api/shopping-lists/active", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"listId":1,"title":"Weekly","isArchived":false}]`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/shopping-lists/all", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"listId":1,"title":"Weekly","isArchived":false},{"listId":2,"title":"Old","isArchived":true}]`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/shopping-lists", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"listId":3,"title":"Party","isArchived":false}`))
	}).Methods(http.MethodPost)

	r.HandleFunc("/api/shopping-lists/{id}", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"listId":%s,"title":"Renamed","isArchived":false}`, mux.Vars(req)["id"])
	}).Methods(http.MethodPut)

	r.HandleFunc("/api/shopping-lists/{id}/archive", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"listId":%s,"title":"Weekly","isArchived":true}`, mux.Vars(req)["id"])
	}).Methods(http.MethodPut)

	r.HandleFunc("/api/shopping-lists/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newDashboard(t *testing.T, srv *httptest.Server) *DashboardView {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "s.db"), filepath.Join(dir, "s.key"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client := api.New(api.Config{BaseURL: srv.URL})
	sess := session.New(store, api.NewAccountAPI(client), &fakeNav{}, slog.Default())
	client.BindSession(sess)

	return NewDashboardView(sess, api.NewListAPI(client), NewBanner(time.Hour))
}

func TestDashboardLoadActive(t *testing.T) {
	v := newDashboard(t, listsBackend(t))

	v.Load(context.Background())

	lists := v.Lists()
	if len(lists) != 1 || lists[0].Title != "Weekly" {
		t.Errorf("lists = %+v, want the one active list", lists)
	}
}

func TestDashboardShowArchived(t *testing.T) {
	v := newDashboard(t, listsBackend(t))

	v.SetShowArchived(context.Background(), true)

	lists := v.Lists()
	if len(lists) != 2 {
		t.Fatalf("lists = %d, want 2 including archived", len(lists))
	}
	if !lists[1].IsArchived {
		t.Error("expected second list archived")
	}
}

func TestCreateListPrepends(t *testing.T) {
	v := newDashboard(t, listsBackend(t))
	ctx := context.Background()
	v.Load(ctx)

	v.CreateList(ctx, "Party", "")

	lists := v.Lists()
	if len(lists) != 2 {
		t.Fatalf("lists = %d, want 2", len(lists))
	}
	if lists[0].Title != "Party" {
		t.Errorf("first list = %q, want the new one first", lists[0].Title)
	}
}

func TestRenameListMergesById(t *testing.T) {
	v := newDashboard(t, listsBackend(t))
	ctx := context.Background()
	v.Load(ctx)

	v.RenameList(ctx, 1, "Renamed")

	lists := v.Lists()
	if len(lists) != 1 || lists[0].Title != "Renamed" {
		t.Errorf("lists = %+v, want renamed in place", lists)
	}
}

func TestArchiveRemovesFromActiveView(t *testing.T) {
	v := newDashboard(t, listsBackend(t))
	ctx := context.Background()
	v.Load(ctx)

	v.ArchiveList(ctx, 1, yes)

	if lists := v.Lists(); len(lists) != 0 {
		t.Errorf("lists = %+v, want archived list gone from active view", lists)
	}
}

func TestArchiveDeclined(t *testing.T) {
	v := newDashboard(t, listsBackend(t))
	ctx := context.Background()
	v.Load(ctx)

	v.ArchiveList(ctx, 1, no)

	if lists := v.Lists(); len(lists) != 1 {
		t.Errorf("lists = %d, want untouched after declined confirm", len(lists))
	}
}

func TestDeleteListRemovesEntry(t *testing.T) {
	v := newDashboard(t, listsBackend(t))
	ctx := context.Background()
	v.Load(ctx)

	v.DeleteList(ctx, 1, yes)

	if lists := v.Lists(); len(lists) != 0 {
		t.Errorf("lists = %+v, want empty after delete", lists)
	}
}
