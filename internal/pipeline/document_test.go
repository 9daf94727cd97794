package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-katexpdf/internal/assets"
)

// stubLoader serves fixed assets.
type stubLoader struct {
	style    string
	tmpl     string
	styleErr error
	tmplErr  error
}

func (s *stubLoader) LoadStyle(string) (string, error)    { return s.style, s.styleErr }
func (s *stubLoader) LoadTemplate(string) (string, error) { return s.tmpl, s.tmplErr }

func TestDocumentBuilder_Build(t *testing.T) {
	t.Parallel()

	builder, err := NewDocumentBuilder(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("NewDocumentBuilder() error = %v", err)
	}

	body := `<h1 id="t">T</h1><p><span class="katex">x</span> <div class="raw">&amp;</div></p>`
	got, err := builder.Build(body)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="UTF-8">`,
		"https://fonts.googleapis.com/css2?family=Inter",
		"github-markdown-css/5.2.0/github-markdown.min.css",
		"katex@0.16.8/dist/katex.min.css",
		"max-width: 850px",
		"font-weight: 800",
		"'Fira Code', monospace",
		`<body class="markdown-body">`,
		body,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() missing %q", want)
		}
	}
}

func TestDocumentBuilder_DependsOnlyOnBody(t *testing.T) {
	t.Parallel()

	builder, err := NewDocumentBuilder(nil)
	if err != nil {
		t.Fatalf("NewDocumentBuilder(nil) error = %v", err)
	}

	a, err := builder.Build("<p>same</p>")
	if err != nil {
		t.Fatal(err)
	}
	b, err := builder.Build("<p>same</p>")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Build() should be deterministic for identical bodies")
	}
}

func TestNewDocumentBuilder_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		loader  *stubLoader
		wantErr error
	}{
		{
			name:    "template load failure",
			loader:  &stubLoader{tmplErr: errBoom},
			wantErr: errBoom,
		},
		{
			name:    "style load failure",
			loader:  &stubLoader{tmpl: "{{.Body}}", styleErr: errBoom},
			wantErr: errBoom,
		},
		{
			name:    "template parse failure",
			loader:  &stubLoader{tmpl: "{{.Body", style: ""},
			wantErr: ErrTemplateParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewDocumentBuilder(tt.loader)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDocumentBuilder() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentBuilder_RenderError(t *testing.T) {
	t.Parallel()

	builder, err := NewDocumentBuilder(&stubLoader{tmpl: "{{.Missing}}"})
	if err != nil {
		t.Fatalf("NewDocumentBuilder() error = %v", err)
	}

	if _, err := builder.Build("x"); !errors.Is(err, ErrTemplateRender) {
		t.Errorf("Build() error = %v, want ErrTemplateRender", err)
	}
}
