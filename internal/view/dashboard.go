package view

import (
	"context"
	"sync"

	"shoplist/internal/api"
	"shoplist/internal/model"
	"shoplist/internal/session"
)

// DashboardView backs the list-overview screen: the user's shopping
// lists, list creation, renames, archiving and deletion, plus the
// account actions.
type DashboardView struct {
	session *session.Session
	lists   *api.ListAPI
	banner  *Banner

	mu           sync.Mutex
	entries      []model.ShoppingList
	showArchived bool
	loadErr      string
	loading      bool
}

func NewDashboardView(sess *session.Session, lists *api.ListAPI, banner *Banner) *DashboardView {
	return &DashboardView{session: sess, lists: lists, banner: banner}
}

// Load fetches active lists, or every list including archived ones
// when showArchived is on.
func (v *DashboardView) Load(ctx context.Context) {
	v.mu.Lock()
	v.loading = true
	showArchived := v.showArchived
	v.mu.Unlock()

	var (
		entries []model.ShoppingList
		err     error
	)
	if showArchived {
		entries, err = v.lists.All(ctx)
	} else {
		entries, err = v.lists.Active(ctx)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.loadErr = errorMessage(err)
		return
	}
	v.loadErr = ""
	v.entries = entries
}

// SetShowArchived toggles the archived filter and reloads.
func (v *DashboardView) SetShowArchived(ctx context.Context, show bool) {
	v.mu.Lock()
	v.showArchived = show
	v.mu.Unlock()
	v.Load(ctx)
}

func (v *DashboardView) Lists() []model.ShoppingList {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.ShoppingList, len(v.entries))
	copy(out, v.entries)
	return out
}

func (v *DashboardView) LoadError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}

func (v *DashboardView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// CreateList creates a new list and prepends it locally.
func (v *DashboardView) CreateList(ctx context.Context, title, description string) {
	list, err := v.lists.Create(ctx, model.CreateListRequest{Title: title, Description: description})
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	v.entries = append([]model.ShoppingList{*list}, v.entries...)
	v.mu.Unlock()
	v.banner.Success("List created")
}

// RenameList updates a list title and merges the response by id.
func (v *DashboardView) RenameList(ctx context.Context, listID int64, title string) {
	list, err := v.lists.UpdateTitle(ctx, listID, title)
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	for i := range v.entries {
		if v.entries[i].ListID == list.ListID {
			v.entries[i] = *list
			break
		}
	}
	v.mu.Unlock()
}

// ArchiveList archives after confirmation. The list drops off the
// active view; with showArchived on it stays, flagged archived.
func (v *DashboardView) ArchiveList(ctx context.Context, listID int64, confirm Confirm) {
	if !confirm("Archive this list?") {
		return
	}

	list, err := v.lists.Archive(ctx, listID)
	if err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	if v.showArchived {
		for i := range v.entries {
			if v.entries[i].ListID == list.ListID {
				v.entries[i] = *list
				break
			}
		}
	} else {
		out := v.entries[:0]
		for _, e := range v.entries {
			if e.ListID != list.ListID {
				out = append(out, e)
			}
		}
		v.entries = out
	}
	v.mu.Unlock()
	v.banner.Success("List archived")
}

// DeleteList deletes after confirmation and removes the entry.
func (v *DashboardView) DeleteList(ctx context.Context, listID int64, confirm Confirm) {
	if !confirm("Delete this list permanently?") {
		return
	}

	if err := v.lists.Delete(ctx, listID); err != nil {
		v.banner.Error(errorMessage(err))
		return
	}

	v.mu.Lock()
	out := v.entries[:0]
	for _, e := range v.entries {
		if e.ListID != listID {
			out = append(out, e)
		}
	}
	v.entries = out
	v.mu.Unlock()
	v.banner.Success("List deleted")
}

// Logout ends the session; the session holder handles navigation.
func (v *DashboardView) Logout() {
	v.session.Logout()
}

// DeleteAccount removes the account after confirmation.
func (v *DashboardView) DeleteAccount(ctx context.Context, confirm Confirm) {
	if !confirm("Delete your account? This cannot be undone.") {
		return
	}
	if err := v.session.DeleteAccount(ctx); err != nil {
		v.banner.Error(errorMessage(err))
	}
}
