package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldError represents a single field's validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-()+]+$`)
)

// Validate aplica o schema do formulário de contato sobre o payload já sanitizado.
// Returns the typed form on success or the full list of field errors.
func (s ContactSubmission) Validate() (ContactForm, []FieldError) {
	var errs []FieldError

	name := strings.TrimSpace(s.Name)
	switch {
	case len(name) < 2:
		errs = append(errs, FieldError{"name", "must be at least 2 characters"})
	case len(name) > 100:
		errs = append(errs, FieldError{"name", "must not exceed 100 characters"})
	case !namePattern.MatchString(name):
		errs = append(errs, FieldError{"name", "contains invalid characters"})
	}

	email, emailErrs := validateEmail(s.Email)
	errs = append(errs, emailErrs...)

	// Limits count characters, not bytes, so multibyte text is measured the
	// way the form presents it.
	company := strings.TrimSpace(s.Company)
	if company != "" {
		if utf8.RuneCountInString(company) < 2 {
			errs = append(errs, FieldError{"company", "must be at least 2 characters"})
		} else if utf8.RuneCountInString(company) > 200 {
			errs = append(errs, FieldError{"company", "must not exceed 200 characters"})
		}
	}

	phone := strings.TrimSpace(s.Phone)
	if phone != "" {
		switch {
		case !phonePattern.MatchString(phone):
			errs = append(errs, FieldError{"phone", "contains invalid characters"})
		case len(phone) < 10:
			errs = append(errs, FieldError{"phone", "must be at least 10 characters"})
		case len(phone) > 20:
			errs = append(errs, FieldError{"phone", "must not exceed 20 characters"})
		}
	}

	message := strings.TrimSpace(s.Message)
	if utf8.RuneCountInString(message) < 10 {
		errs = append(errs, FieldError{"message", "must be at least 10 characters"})
	} else if utf8.RuneCountInString(message) > 2000 {
		errs = append(errs, FieldError{"message", "must not exceed 2000 characters"})
	}

	if strings.TrimSpace(s.TurnstileToken) == "" {
		errs = append(errs, FieldError{"turnstileToken", "verification token is required"})
	}

	if len(errs) > 0 {
		return ContactForm{}, errs
	}

	return ContactForm{
		Name:    name,
		Email:   email,
		Company: company,
		Phone:   phone,
		Message: message,
	}, nil
}

// Validate aplica o schema da inscrição de newsletter sobre o payload já sanitizado.
func (s NewsletterSubmission) Validate() (string, []FieldError) {
	var errs []FieldError

	email, emailErrs := validateEmail(s.Email)
	errs = append(errs, emailErrs...)

	if strings.TrimSpace(s.TurnstileToken) == "" {
		errs = append(errs, FieldError{"turnstileToken", "verification token is required"})
	}

	if len(errs) > 0 {
		return "", errs
	}
	return email, nil
}

func validateEmail(raw string) (string, []FieldError) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !isEmailAddress(email) {
		return "", []FieldError{{"email", "invalid email address"}}
	}
	if utf8.RuneCountInString(email) > 255 {
		return "", []FieldError{{"email", "must not exceed 255 characters"}}
	}
	return email, nil
}

func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
