// Package validation contains the pure field validators for raw user input.
// Each validator collects every violated constraint on its input and reports
// them together as a single aggregated, human-readable error.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"passport/internal/errors"
)

var (
	// namePattern allows letters (including latin diacritics) and spaces.
	namePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)

	// emailPattern enforces the local@domain.tld shape without attempting
	// full RFC 5322 parsing.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	must("person_name", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	must("email_format", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	must("password_policy", func(fl validator.FieldLevel) bool {
		return hasRequiredClasses(fl.Field().String())
	})

	return v
}

// hasRequiredClasses reports whether the password contains at least one
// lowercase letter, one uppercase letter and one digit.
func hasRequiredClasses(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return lower && upper && digit
}

// RegisterData is the raw input for account registration.
type RegisterData struct {
	Name     string `validate:"required,min=2,max=100,person_name"`
	Email    string `validate:"required,max=255,email_format"`
	Password string `validate:"required,min=6,max=100,password_policy"`
}

// LoginData is the raw input for login. Only shape is checked here; the
// password policy applies at registration, not authentication.
type LoginData struct {
	Email    string `validate:"required,email_format"`
	Password string `validate:"required"`
}

// UpdateData is the raw input for a partial profile update. Absent fields
// are left untouched; present fields follow the registration rules.
type UpdateData struct {
	Name     *string `validate:"omitnil,min=2,max=100,person_name"`
	Email    *string `validate:"omitnil,max=255,email_format"`
	Password *string `validate:"omitnil,min=6,max=100,password_policy"`
}

// RefreshData is the raw input for a token refresh request.
type RefreshData struct {
	RefreshToken string `validate:"required"`
}

// Register validates registration input.
func Register(data *RegisterData) error {
	return check(data)
}

// Login validates login input.
func Login(data *LoginData) error {
	return check(data)
}

// Update validates partial update input.
func Update(data *UpdateData) error {
	return check(data)
}

// Refresh validates refresh request input.
func Refresh(data *RefreshData) error {
	return check(data)
}

// Identifier validates that s is a canonical 36-character UUID string.
func Identifier(s string) error {
	if len(s) != 36 {
		return errors.New("id must be a valid UUID")
	}
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("id must be a valid UUID")
	}

	return nil
}

func check(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return errors.Wrap(err, "validate input")
	}

	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, messageFor(violation))
	}

	return errors.New(strings.Join(messages, ", "))
}

func messageFor(violation validator.FieldError) string {
	field := strings.ToLower(violation.Field())

	switch violation.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + violation.Param() + " characters"
	case "max":
		return field + " must be at most " + violation.Param() + " characters"
	case "person_name":
		return field + " must contain only letters and spaces"
	case "email_format":
		return field + " must be a valid email address"
	case "password_policy":
		return field + " must contain at least one lowercase letter, one uppercase letter and one digit"
	default:
		return field + " is invalid"
	}
}
