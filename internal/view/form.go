package view

import (
	"errors"
	"regexp"
	"strings"

	"shoplist/internal/api"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// fieldErrors collects per-field validation messages. Validation runs
// entirely client-side; an invalid form never reaches the network.
type fieldErrors map[string]string

func (fe fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = "This field is required"
	}
}

func (fe fieldErrors) minLen(field, value string, n int) {
	if _, taken := fe[field]; taken {
		return
	}
	if len(value) < n {
		fe[field] = "Too short"
	}
}

func (fe fieldErrors) email(field, value string) {
	if _, taken := fe[field]; taken {
		return
	}
	if !emailPattern.MatchString(value) {
		fe[field] = "Enter a valid email address"
	}
}

func (fe fieldErrors) match(field, value, other string) {
	if _, taken := fe[field]; taken {
		return
	}
	if value != other {
		fe[field] = "Passwords do not match"
	}
}

func (fe fieldErrors) ok() bool {
	return len(fe) == 0
}

// errorMessage converts an error from the api layer into the banner
// text: normalized server messages pass through, anything else shows
// the generic fallback.
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}
