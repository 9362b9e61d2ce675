package heat

import (
	"errors"
	"fmt"
)

// Configuration errors reported by [Params.Validate].
var (
	// ErrInvalidGrid indicates a zero or negative grid dimension.
	ErrInvalidGrid = errors.New("heat: grid dimensions must be positive")

	// ErrInvalidChunk indicates a zero or negative chunk size.
	ErrInvalidChunk = errors.New("heat: chunk size must be positive")

	// ErrInvalidMaterial indicates a non-positive tile mass or heat capacity.
	ErrInvalidMaterial = errors.New("heat: tile mass and heat capacity must be positive")

	// ErrInvalidBounds indicates min heat is not below max heat.
	ErrInvalidBounds = errors.New("heat: min heat must be below max heat")

	// ErrInvalidRate indicates a negative or non-finite transfer speed.
	ErrInvalidRate = errors.New("heat: heat transfer speed must be non-negative")
)

// ConfigError names the parameter that failed validation.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
