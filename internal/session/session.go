// Package session owns the client's authentication state: the bearer
// token and user profile persisted in local storage, plus reactive
// cells the UI subscribes to. It is the only process-wide mutable
// state besides the loading gauge.
package session

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"

	"shoplist/internal/api"
	"shoplist/internal/model"
	"shoplist/internal/observe"
	"shoplist/internal/storage"
)

// Routes the session navigates to on auth transitions.
const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
)

// Navigator switches the active screen. The terminal front end and
// the tests both implement it.
type Navigator interface {
	Navigate(route string)
}

type Session struct {
	store    *storage.Store
	accounts *api.AccountAPI
	nav      Navigator
	logger   *slog.Logger

	authenticated *observe.Cell[bool]
	currentUser   *observe.Cell[*model.User]
}

// New seeds the session from whatever storage holds: token presence
// means authenticated, and a parseable stored profile becomes the
// initial user. A corrupt profile degrades to no user, not an error.
func New(store *storage.Store, accounts *api.AccountAPI, nav Navigator, logger *slog.Logger) *Session {
	token, err := store.Secret(storage.KeyAuthToken)
	if err != nil {
		logger.Warn("read stored token", "error", err)
	}

	var user *model.User
	if raw, err := store.Get(storage.KeyAuthUser); err == nil && raw != "" {
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			user = &u
		} else {
			logger.Warn("stored profile unparseable, treating as anonymous")
		}
	}

	return &Session{
		store:         store,
		accounts:      accounts,
		nav:           nav,
		logger:        logger,
		authenticated: observe.NewCell(token != ""),
		currentUser:   observe.NewCell(user),
	}
}

// Login authenticates and, on success, persists the session and
// navigates to the dashboard. The error (already normalized by the
// api layer) is returned for the login form to display.
func (s *Session) Login(ctx context.Context, email, password string) error {
	res, err := s.accounts.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	return s.establish(res)
}

// Register creates an account and establishes the session exactly
// like Login.
func (s *Session) Register(ctx context.Context, req model.RegisterRequest) error {
	res, err := s.accounts.Register(ctx, req)
	if err != nil {
		return err
	}
	return s.establish(res)
}

func (s *Session) establish(res *model.AuthResponse) error {
	if err := s.store.SetSecret(storage.KeyAuthToken, res.Token); err != nil {
		return err
	}

	user := res.Profile()
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(storage.KeyAuthUser, string(raw)); err != nil {
		return err
	}

	s.currentUser.Set(&user)
	s.authenticated.Set(true)
	s.logger.Info("session established", "email", user.Email)
	s.nav.Navigate(RouteDashboard)
	return nil
}

// Logout clears the persisted session and navigates to the login
// screen. No server call is made; the token simply stops being sent.
func (s *Session) Logout() {
	if err := s.store.Delete(storage.KeyAuthToken); err != nil {
		s.logger.Warn("clear token", "error", err)
	}
	if err := s.store.Delete(storage.KeyAuthUser); err != nil {
		s.logger.Warn("clear profile", "error", err)
	}
	s.currentUser.Set(nil)
	s.authenticated.Set(false)
	s.nav.Navigate(RouteLogin)
}

// DeleteAccount removes the server-side account for the current user
// and tears the session down. Callers must have confirmed the action.
func (s *Session) DeleteAccount(ctx context.Context) error {
	user := s.currentUser.Get()
	if user == nil {
		return nil
	}
	if err := s.accounts.DeleteAccount(ctx, user.Email); err != nil {
		return err
	}
	s.Logout()
	return nil
}

// Token returns the stored bearer token, or "" when anonymous.
// Satisfies api.Session.
func (s *Session) Token() string {
	token, err := s.store.Secret(storage.KeyAuthToken)
	if err != nil {
		s.logger.Warn("read token", "error", err)
		return ""
	}
	return token
}

// Invalidate tears the session down after an observed 401.
// Satisfies api.Session.
func (s *Session) Invalidate() {
	s.logger.Info("session invalidated by server")
	s.Logout()
}

// Authenticated exposes the reactive authenticated flag.
func (s *Session) Authenticated() *observe.Cell[bool] {
	return s.authenticated
}

// CurrentUser exposes the reactive profile; nil while anonymous.
func (s *Session) CurrentUser() *observe.Cell[*model.User] {
	return s.currentUser
}
