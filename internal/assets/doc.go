// Package assets provides the HTML page skeleton and stylesheet that wrap
// rendered Markdown before it is printed to PDF.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed copies shipped with the binary
//	    ├── FilesystemLoader  - a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// AssetResolver is what the converter uses. Overriding one file (for example
// only styles/default.css) keeps the embedded copy of everything else.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── default.css        # embedded <style> block
//	└── templates/
//	    └── document.html      # html/template page skeleton
//
// # Security
//
// Asset names are validated against path separators and dots.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
