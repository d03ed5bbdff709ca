package api

import (
	"context"
	"fmt"

	"shoplist/internal/model"
)

// ListAPI wraps the shopping-list and list-item endpoints.
type ListAPI struct {
	c *Client
}

func NewListAPI(c *Client) *ListAPI {
	return &ListAPI{c: c}
}

// --- Lists ---

func (l *ListAPI) Create(ctx context.Context, req model.CreateListRequest) (*model.ShoppingList, error) {
	var res model.ShoppingList
	if err := l.c.post(ctx, epLists, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *ListAPI) Active(ctx context.Context) ([]model.ShoppingList, error) {
	var res []model.ShoppingList
	if err := l.c.get(ctx, epLists+"/active", &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *ListAPI) All(ctx context.Context) ([]model.ShoppingList, error) {
	var res []model.ShoppingList
	if err := l.c.get(ctx, epLists+"/all", &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *ListAPI) Get(ctx context.Context, id int64) (*model.ShoppingList, error) {
	var res model.ShoppingList
	if err := l.c.get(ctx, fmt.Sprintf("%s/%d", epLists, id), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *ListAPI) UpdateTitle(ctx context.Context, id int64, title string) (*model.ShoppingList, error) {
	var res model.ShoppingList
	if err := l.c.put(ctx, fmt.Sprintf("%s/%d", epLists, id), model.UpdateListTitleRequest{Title: title}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Archive marks the list inactive. Archived lists stay retrievable
// through All but drop out of Active.
func (l *ListAPI) Archive(ctx context.Context, id int64) (*model.ShoppingList, error) {
	var res model.ShoppingList
	if err := l.c.put(ctx, fmt.Sprintf("%s/%d/archive", epLists, id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *ListAPI) Delete(ctx context.Context, id int64) error {
	return l.c.delete(ctx, fmt.Sprintf("%s/%d", epLists, id), nil)
}

// --- Items ---

func (l *ListAPI) AddItem(ctx context.Context, listID int64, req model.AddItemRequest) (*model.ShoppingListItem, error) {
	var res model.ShoppingListItem
	if err := l.c.post(ctx, fmt.Sprintf("%s/%d/items", epLists, listID), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *ListAPI) Items(ctx context.Context, listID int64) ([]model.ShoppingListItem, error) {
	var res []model.ShoppingListItem
	if err := l.c.get(ctx, fmt.Sprintf("%s/%d/items", epLists, listID), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *ListAPI) UpdateQuantity(ctx context.Context, itemID int64, quantity float64) (*model.ShoppingListItem, error) {
	var res model.ShoppingListItem
	if err := l.c.put(ctx, fmt.Sprintf("%s/items/%d/quantity", epLists, itemID), model.UpdateQuantityRequest{Quantity: quantity}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Toggle flips the checked state server-side and returns the updated
// item.
func (l *ListAPI) Toggle(ctx context.Context, itemID int64) (*model.ShoppingListItem, error) {
	var res model.ShoppingListItem
	if err := l.c.put(ctx, fmt.Sprintf("%s/items/%d/toggle", epLists, itemID), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *ListAPI) RemoveItem(ctx context.Context, itemID int64) error {
	return l.c.delete(ctx, fmt.Sprintf("%s/items/%d", epLists, itemID), nil)
}
