package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// The page is printed from a temporary file, so paths relative to the
// Markdown source would resolve against the temp directory. These
// attributes are rewritten to absolute file:// URLs instead.
var rewrittenAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativePaths rewrites relative img[src] and a[href] values in an
// HTML body fragment to file:// URLs rooted at sourceDir. URLs, anchors,
// absolute paths and paths escaping sourceDir are left alone. An empty
// sourceDir returns the fragment unchanged.
func RewriteRelativePaths(fragment, sourceDir string) (string, error) {
	if sourceDir == "" || !hasRewritableAttr(fragment) {
		return fragment, nil
	}

	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, n := range nodes {
		rewriteTree(n, root)
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// hasRewritableAttr skips the parse/render round trip for fragments that
// cannot contain anything to rewrite, which keeps KaTeX output untouched.
func hasRewritableAttr(fragment string) bool {
	return strings.Contains(fragment, "src=") || strings.Contains(fragment, "href=")
}

func rewriteTree(n *html.Node, root string) {
	if n.Type == html.ElementNode {
		if key, ok := rewrittenAttrs[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key != key {
					continue
				}
				if resolved, ok := resolveLocal(n.Attr[i].Val, root); ok {
					n.Attr[i].Val = resolved
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteTree(c, root)
	}
}

// resolveLocal returns the file:// URL for a relative reference under root.
func resolveLocal(ref, root string) (string, bool) {
	if !isRelativeRef(ref) {
		return "", false
	}

	abs := filepath.Join(root, filepath.FromSlash(ref))
	if !isWithin(abs, root) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}

func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return false
	}
	// Any scheme (http:, https:, mailto:, data:, file:) means not a path.
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
