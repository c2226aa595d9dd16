package forms

import (
	"net/mail"
	"strings"
	"unicode"
)

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"

	minPasswordLength = 8
)

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	fe := FieldErrors{}
	checkEmail(fe, f.Email)
	if f.Password == "" {
		fe[FieldPassword] = "required"
	}
	return fe.orNil()
}

type RegistrationForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate requires an email and a password of at least eight characters
// mixing upper case, lower case and digits, confirmed by a matching second
// entry.
func (f RegistrationForm) Validate() error {
	fe := FieldErrors{}
	checkEmail(fe, f.Email)

	if msg := passwordProblem(f.Password); msg != "" {
		fe[FieldPassword] = msg
	}
	if f.ConfirmPassword != f.Password {
		fe[FieldConfirmPassword] = "passwords do not match"
	}
	return fe.orNil()
}

func checkEmail(fe FieldErrors, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		fe[FieldEmail] = "required"
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fe[FieldEmail] = "not a valid email address"
	}
}

func passwordProblem(pw string) string {
	if pw == "" {
		return "required"
	}
	if len([]rune(pw)) < minPasswordLength {
		return "must be at least 8 characters"
	}

	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return "must contain upper case, lower case and a digit"
	}
	return ""
}
