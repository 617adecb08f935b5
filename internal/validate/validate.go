// Package validate holds the two input validators for the registration
// flow. Credentials is the server-side authority: every write path goes
// through it. SignupForm replicates the richer pre-submission feedback
// rules the frontend shows before a form is ever posted; it is
// intentionally stricter in places and is never a substitute for
// Credentials.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8
	MaxEmailLength    = 254
	MaxFullNameLength = 100
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	fullNamePattern = regexp.MustCompile(`^[\p{L} .'-]+$`)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Credentials applies the server-side schema rules: email shape and a
// minimum password length. No complexity rules here; tightening them
// would silently diverge from the signup-form rules below.
func Credentials(email, password string) FieldErrors {
	var errs FieldErrors

	if !ValidEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(password) < MinPasswordLength {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		})
	}

	return errs
}

func ValidEmail(email string) bool {
	return email != "" && len(email) <= MaxEmailLength && emailPattern.MatchString(email)
}

type SignupInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName"`
}

// SignupForm applies the pre-submission feedback rules. These are
// stricter than Credentials on purpose (password case/digit rules,
// name character class); the server never relies on them.
func SignupForm(in SignupInput) FieldErrors {
	var errs FieldErrors

	if !ValidEmail(in.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}

	errs = append(errs, passwordRules(in.Password)...)

	if in.ConfirmPassword != in.Password {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "passwords do not match"})
	}

	if in.FullName != "" {
		if len(in.FullName) > MaxFullNameLength {
			errs = append(errs, FieldError{
				Field:   "fullName",
				Message: fmt.Sprintf("must be at most %d characters", MaxFullNameLength),
			})
		} else if !fullNamePattern.MatchString(in.FullName) {
			errs = append(errs, FieldError{Field: "fullName", Message: "may only contain letters, spaces, dots, apostrophes and hyphens"})
		}
	}

	return errs
}

func passwordRules(password string) FieldErrors {
	var errs FieldErrors

	if len(password) < MinPasswordLength {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		})
	}

	var hasUpper, hasLower, hasDigit, hasSpace bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSpace(r):
			hasSpace = true
		}
	}

	if !hasUpper {
		errs = append(errs, FieldError{Field: "password", Message: "must contain an uppercase letter"})
	}
	if !hasLower {
		errs = append(errs, FieldError{Field: "password", Message: "must contain a lowercase letter"})
	}
	if !hasDigit {
		errs = append(errs, FieldError{Field: "password", Message: "must contain a digit"})
	}
	if hasSpace {
		errs = append(errs, FieldError{Field: "password", Message: "must not contain spaces"})
	}

	return errs
}
