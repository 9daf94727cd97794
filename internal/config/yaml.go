package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// ErrInputTooLarge is returned for config files above MaxInputSize.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// unmarshalStrict decodes data into v, rejecting unknown fields.
// Empty input leaves v untouched.
func unmarshalStrict(data []byte, v any) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if len(data) == 0 {
		return nil
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}
