package config

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var categories = map[string]bool{
	"che": true,
	"eco": true,
	"lit": true,
	"med": true,
	"pea": true,
	"phy": true,
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate API config
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid API base URL: %q", c.API.BaseURL),
		})
	}

	if c.API.Version == "" {
		errors = append(errors, ValidationError{
			Field:   "api.version",
			Message: "version is required",
		})
	}

	if !categories[c.API.Category] {
		errors = append(errors, ValidationError{
			Field:   "api.category",
			Message: fmt.Sprintf("unknown category %q", c.API.Category),
		})
	}

	if c.API.YearFrom < 1901 || c.API.YearTo < c.API.YearFrom {
		errors = append(errors, ValidationError{
			Field:   "api.year_from",
			Message: "year range must start at 1901 or later and not be reversed",
		})
	}

	if c.API.Limit < 1 {
		errors = append(errors, ValidationError{
			Field:   "api.limit",
			Message: "limit must be positive",
		})
	}

	if c.API.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "api.timeout",
			Message: "timeout must be positive",
		})
	}

	if c.API.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "api.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Validate Launcher config
	if strings.TrimSpace(c.Launcher.Program) == "" {
		errors = append(errors, ValidationError{
			Field:   "launcher.program",
			Message: "program is required",
		})
	}

	if len(c.Launcher.Install) == 0 || c.Launcher.Package == "" {
		errors = append(errors, ValidationError{
			Field:   "launcher.install",
			Message: "install command and package are required",
		})
	}

	// Validate Database config
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	return errors
}
