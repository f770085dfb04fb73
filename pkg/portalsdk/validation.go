package portalsdk

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	requiredReason = "required"
	minPassword    = 12
	maxPassword    = 128
	maxName        = 200
)

var validate = validator.New()

// Validate checks the bootstrap request before it is sent. It returns a map
// of field names to messages, or nil. The server applies the full password
// policy on top of the length check here.
func (b BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, b.Email)
	validateName(errs, "full_name", b.FullName, true)
	validatePassword(errs, b.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks a self-registration request before it is sent.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, r.Email)
	validateName(errs, "full_name", r.FullName, true)
	validateName(errs, "company_name", r.CompanyName, false)
	validatePassword(errs, r.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(errs map[string]string, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs["email"] = requiredReason
		return
	}
	if validate.Var(email, "email") != nil {
		errs["email"] = "must be a plain email address"
	}
}

func validateName(errs map[string]string, field, v string, required bool) {
	v = strings.TrimSpace(v)
	switch {
	case v == "" && required:
		errs[field] = requiredReason
	case validate.Var(v, "max=200") != nil:
		errs[field] = "too long (max 200)"
	}
}

func validatePassword(errs map[string]string, pw string) {
	if pw == "" {
		errs["password"] = requiredReason
		return
	}
	var fe validator.ValidationErrors
	if !errors.As(validate.Var(pw, "min=12,max=128"), &fe) {
		return
	}
	switch fe[0].Tag() {
	case "min":
		errs["password"] = "too short (min 12)"
	case "max":
		errs["password"] = "too long (max 128)"
	}
}
