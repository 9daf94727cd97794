package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName accepts bare names such as "document". Separators and
// dots are refused so a name stays inside its kind's directory and keeps
// its kind's extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\."):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
