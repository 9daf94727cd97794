package assets

// Names of the two assets a document is built from.
const (
	DocumentTemplateName = "document" // templates/document.html
	DefaultStyleName     = "default"  // styles/default.css
)

// AssetLoader returns asset text by bare name: "document" resolves to
// templates/document.html and "default" to styles/default.css.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// assetKind is where one kind of asset lives under a base directory.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// relPath returns the slash-separated path of name, e.g. "styles/default.css".
func (k assetKind) relPath(name string) string {
	return k.dir + "/" + name + k.ext
}
