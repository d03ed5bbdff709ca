package view

import (
	"context"
	"sync"

	"shoplist/internal/model"
	"shoplist/internal/session"
)

const minPasswordLen = 6

// RegisterView backs the registration form, including the cross-field
// password confirmation check.
type RegisterView struct {
	session *session.Session
	banner  *Banner

	mu              sync.Mutex
	email           string
	password        string
	confirmPassword string
	firstName       string
	lastName        string
	errors          fieldErrors
	loading         bool
}

func NewRegisterView(sess *session.Session, banner *Banner) *RegisterView {
	return &RegisterView{session: sess, banner: banner, errors: fieldErrors{}}
}

func (v *RegisterView) SetEmail(s string)           { v.mu.Lock(); v.email = s; v.mu.Unlock() }
func (v *RegisterView) SetPassword(s string)        { v.mu.Lock(); v.password = s; v.mu.Unlock() }
func (v *RegisterView) SetConfirmPassword(s string) { v.mu.Lock(); v.confirmPassword = s; v.mu.Unlock() }
func (v *RegisterView) SetFirstName(s string)       { v.mu.Lock(); v.firstName = s; v.mu.Unlock() }
func (v *RegisterView) SetLastName(s string)        { v.mu.Lock(); v.lastName = s; v.mu.Unlock() }

func (v *RegisterView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *RegisterView) FieldError(field string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors[field]
}

func (v *RegisterView) Submit(ctx context.Context) error {
	v.mu.Lock()
	fe := fieldErrors{}
	fe.required("firstName", v.firstName)
	fe.required("lastName", v.lastName)
	fe.required("email", v.email)
	fe.email("email", v.email)
	fe.required("password", v.password)
	fe.minLen("password", v.password, minPasswordLen)
	fe.match("confirmPassword", v.confirmPassword, v.password)
	v.errors = fe
	if !fe.ok() {
		v.mu.Unlock()
		return nil
	}
	req := model.RegisterRequest{
		Email:     v.email,
		Password:  v.password,
		FirstName: v.firstName,
		LastName:  v.lastName,
	}
	v.loading = true
	v.mu.Unlock()

	err := v.session.Register(ctx, req)

	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()

	if err != nil {
		v.banner.Error(errorMessage(err))
		return err
	}
	return nil
}
