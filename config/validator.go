package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"task-manager/logging"
)

// ValidationError represents a single invalid or missing setting.
type ValidationError struct {
	Field   string // config key, e.g. "server.client_url"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d configuration errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidGinModes returns the accepted server.mode values.
func ValidGinModes() []string {
	return []string{"debug", "release", "test"}
}

// ValidateServer checks what `serve` needs.
func (c *Config) ValidateServer() error {
	var errs ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{"server.port", c.Server.Port, "must be between 1 and 65535"})
	}
	if c.Server.ClientURL == "" {
		errs = append(errs, ValidationError{"server.client_url", c.Server.ClientURL, "is required (set CLIENT_URL)"})
	} else if !isHTTPURL(c.Server.ClientURL) {
		errs = append(errs, ValidationError{"server.client_url", c.Server.ClientURL, "must be an http:// or https:// origin"})
	}
	if !slices.Contains(ValidGinModes(), c.Server.Mode) {
		errs = append(errs, ValidationError{"server.mode", c.Server.Mode, fmt.Sprintf("must be one of %v", ValidGinModes())})
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, ValidationError{"server.shutdown_timeout", c.Server.ShutdownTimeout, "must be positive"})
	}
	errs = append(errs, c.validateStore()...)
	errs = append(errs, c.validateLog()...)

	return errs.orNil()
}

// ValidateStore checks what commands that only open the store need.
func (c *Config) ValidateStore() error {
	errs := append(c.validateStore(), c.validateLog()...)
	return errs.orNil()
}

// ValidateClient checks what `ui` needs.
func (c *Config) ValidateClient() error {
	var errs ValidationErrors
	if c.Client.APIURL == "" {
		errs = append(errs, ValidationError{"client.api_url", c.Client.APIURL, "is required (set API_URL)"})
	} else if !isHTTPURL(c.Client.APIURL) {
		errs = append(errs, ValidationError{"client.api_url", c.Client.APIURL, "must be an http:// or https:// URL"})
	}
	return errs.orNil()
}

func (c *Config) validateStore() ValidationErrors {
	var errs ValidationErrors
	if c.Store.URI == "" {
		errs = append(errs, ValidationError{"store.uri", c.Store.URI, "is required (set STORE_URI or MONGODB_URI)"})
	}
	if c.Store.Timeout < 0 {
		errs = append(errs, ValidationError{"store.timeout", c.Store.Timeout, "must not be negative"})
	}
	return errs
}

func (c *Config) validateLog() ValidationErrors {
	var errs ValidationErrors
	if !slices.Contains(logging.ValidLevels(), strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{"log.level", c.Log.Level, fmt.Sprintf("must be one of %v", logging.ValidLevels())})
	}
	if !slices.Contains(logging.ValidFormats(), strings.ToLower(c.Log.Format)) {
		errs = append(errs, ValidationError{"log.format", c.Log.Format, fmt.Sprintf("must be one of %v", logging.ValidFormats())})
	}
	return errs
}

func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
