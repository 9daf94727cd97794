package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/default.css templates/document.html
var shipped embed.FS

// EmbeddedLoader serves the document template and stylesheet built into
// the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/<name>.css. Only "default" ships.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readShipped(styleKind, name)
}

// LoadTemplate returns templates/<name>.html. Only "document" ships.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readShipped(templateKind, name)
}

func readShipped(kind assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := shipped.ReadFile(kind.relPath(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not embedded", kind.notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
