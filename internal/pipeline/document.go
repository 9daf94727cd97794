package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-katexpdf/internal/assets"
)

// Sentinel errors for document assembly.
var (
	ErrTemplateParse  = errors.New("document template parsing failed")
	ErrTemplateRender = errors.New("document template rendering failed")
)

// DocumentBuilder wraps rendered body HTML in the page skeleton: charset,
// font and stylesheet links (Inter, Fira Code, github-markdown-css, KaTeX)
// and the embedded style block.
type DocumentBuilder struct {
	tmpl  *template.Template
	style template.CSS
}

// documentData is the html/template input. Body is trusted: it is the
// renderer's output and may carry raw HTML on purpose.
type documentData struct {
	Style template.CSS
	Body  template.HTML
}

// NewDocumentBuilder loads the document template and default style once.
func NewDocumentBuilder(loader assets.AssetLoader) (*DocumentBuilder, error) {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	tmplContent, err := loader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}

	style, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading document style: %w", err)
	}

	tmpl, err := template.New(assets.DocumentTemplateName).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	return &DocumentBuilder{
		tmpl:  tmpl,
		style: template.CSS(style), // #nosec G203 -- shipped or user-owned stylesheet
	}, nil
}

// Build returns the complete HTML document for body.
func (b *DocumentBuilder) Build(body string) (string, error) {
	var sb strings.Builder
	data := documentData{
		Style: b.style,
		Body:  template.HTML(body), // #nosec G203 -- renderer output, raw HTML allowed
	}
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return sb.String(), nil
}
