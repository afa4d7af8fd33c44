package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidHandler is returned (wrapped in a [ConfigError]) when a handler
// is registered with a matcher that is neither a pattern nor a function.
var ErrInvalidHandler = errors.New("handler should be a pattern or a function")

// ConfigError reports a registry build-time mistake. It is a programmer
// error, never a data error: parsing itself cannot fail.
type ConfigError struct {
	Name string // Handler name passed to AddHandler.
	Got  string // Dynamic type of the rejected matcher.
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("handler %q: %v (got %s)", e.Name, e.Err, e.Got)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func newConfigError(name string, matcher any, cause error) *ConfigError {
	err := ErrInvalidHandler
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidHandler, cause)
	}
	return &ConfigError{Name: name, Got: fmt.Sprintf("%T", matcher), Err: err}
}
