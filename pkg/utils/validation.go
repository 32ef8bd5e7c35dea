package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateURL trims and validates a URL string, returning a normalized value
// or an error if the URL is empty, relative, or not http(s).
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid URL: scheme must be http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL: missing host")
	}
	return s, nil
}

// ValidateEmail trims and validates an email address.
func ValidateEmail(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("email is required")
	}
	if err := validate.Var(s, "email"); err != nil {
		return "", fmt.Errorf("invalid email: %s", s)
	}
	return s, nil
}
