package model

import "time"

// User is the profile the server returns after authentication. The
// password never appears here; it only travels in request payloads.
type User struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Unit         string    `json:"unit"`
	ImageURL     string    `json:"imageUrl"`
	Brand        string    `json:"brand"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ShoppingList struct {
	ListID      int64     `json:"listId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsArchived  bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ShoppingListItem struct {
	ListItemID      int64     `json:"listItemId"`
	ProductID       int64     `json:"productId"`
	ProductName     string    `json:"productName"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit"`
	PriceAtAddition float64   `json:"priceAtAddition"`
	IsChecked       bool      `json:"isChecked"`
	AddedAt         time.Time `json:"addedAt"`
}

// --- Request payloads ---

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type DeleteAccountRequest struct {
	Email string `json:"email"`
}

type CreateListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type UpdateListTitleRequest struct {
	Title string `json:"title"`
}

type AddItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// AuthResponse is the body of a successful login or register call.
type AuthResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Profile returns the storable user profile derived from the auth
// response. The token is deliberately excluded.
func (r AuthResponse) Profile() User {
	return User{Email: r.Email, FirstName: r.FirstName, LastName: r.LastName}
}
