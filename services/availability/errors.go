package availability

import "fmt"

// ConfigurationError indicates a caller bug: an unusable slot template or an
// unresolvable timezone. Not retryable.
type ConfigurationError struct {
	Code    string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConfigurationError(msg string) error {
	return &ConfigurationError{
		Code:    "configurationError",
		Message: msg,
	}
}
