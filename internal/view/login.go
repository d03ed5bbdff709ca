package view

import (
	"context"
	"sync"

	"shoplist/internal/session"
)

// LoginView backs the login screen: two fields, local validation,
// and a submit that delegates to the session holder.
type LoginView struct {
	session *session.Session
	banner  *Banner

	mu       sync.Mutex
	email    string
	password string
	errors   fieldErrors
	loading  bool
}

func NewLoginView(sess *session.Session, banner *Banner) *LoginView {
	return &LoginView{session: sess, banner: banner, errors: fieldErrors{}}
}

func (v *LoginView) SetEmail(s string)    { v.mu.Lock(); v.email = s; v.mu.Unlock() }
func (v *LoginView) SetPassword(s string) { v.mu.Lock(); v.password = s; v.mu.Unlock() }

func (v *LoginView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// FieldError returns the validation message for a field, if any.
func (v *LoginView) FieldError(field string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors[field]
}

// Submit validates locally and, if the form is clean, attempts login.
// On success the session navigates to the dashboard; on failure the
// server's message lands in the banner.
func (v *LoginView) Submit(ctx context.Context) error {
	v.mu.Lock()
	fe := fieldErrors{}
	fe.required("email", v.email)
	fe.email("email", v.email)
	fe.required("password", v.password)
	v.errors = fe
	if !fe.ok() {
		v.mu.Unlock()
		return nil
	}
	email, password := v.email, v.password
	v.loading = true
	v.mu.Unlock()

	err := v.session.Login(ctx, email, password)

	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()

	if err != nil {
		v.banner.Error(errorMessage(err))
		return err
	}
	return nil
}
